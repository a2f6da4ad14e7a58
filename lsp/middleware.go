package lsp

import (
	"fmt"
	"runtime/debug"

	"bennypowers.dev/dtlint/internal/log"
	"bennypowers.dev/dtlint/lsp/methods/workspace"
	"bennypowers.dev/dtlint/lsp/types"
	"github.com/tliron/glsp"
)

// method wraps an LSP request handler with a request context, panic
// recovery, and logging. The returned function type matches the
// protocol.Handler field types.
func method[P, R any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	return func(ctx *glsp.Context, params P) (result R, err error) {
		req := types.NewRequestContext(s, ctx)

		// Panic recovery - prevents LSP server crashes
		defer func() {
			if r := recover(); r != nil {
				log.Error("PANIC in %s: %v\nStack trace:\n%s", methodName, r, debug.Stack())
				// Log panic to LSP client
				workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
				err = fmt.Errorf("internal error in %s", methodName)
				var zero R
				result = zero
			}
		}()

		log.Debug("%s started", methodName)

		result, err = handler(req, params)
		if err != nil {
			log.Error("%s error: %v", methodName, err)
			// Log error to LSP client via window/logMessage
			workspace.LogError(ctx, "%s: %v", methodName, err)
			return result, fmt.Errorf("%s: %w", methodName, err)
		}

		// Surface non-fatal warnings once the handler has succeeded
		for _, warning := range req.Warnings() {
			workspace.LogWarning(ctx, "%s: %v", methodName, warning)
		}

		log.Debug("%s completed", methodName)
		return result, nil
	}
}

// notify wraps an LSP notification handler that returns only error
func notify[P any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) error,
) func(*glsp.Context, P) error {
	return func(ctx *glsp.Context, params P) (err error) {
		req := types.NewRequestContext(s, ctx)

		defer func() {
			if r := recover(); r != nil {
				log.Error("PANIC in %s: %v\nStack trace:\n%s", methodName, r, debug.Stack())
				// Log panic to LSP client
				workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
				err = fmt.Errorf("internal error in %s", methodName)
			}
		}()

		log.Debug("%s started", methodName)

		if err = handler(req, params); err != nil {
			log.Error("%s error: %v", methodName, err)
			// Log error to LSP client via window/logMessage
			workspace.LogError(ctx, "%s: %v", methodName, err)
			return fmt.Errorf("%s: %w", methodName, err)
		}

		// Surface non-fatal warnings once the handler has succeeded
		for _, warning := range req.Warnings() {
			workspace.LogWarning(ctx, "%s: %v", methodName, warning)
		}

		log.Debug("%s completed", methodName)
		return nil
	}
}

// noParam wraps an LSP handler that takes no params (like Shutdown)
func noParam(
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext) error,
) func(*glsp.Context) error {
	return func(ctx *glsp.Context) (err error) {
		req := types.NewRequestContext(s, ctx)

		defer func() {
			if r := recover(); r != nil {
				log.Error("PANIC in %s: %v\nStack trace:\n%s", methodName, r, debug.Stack())
				// Log panic to LSP client
				workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
				err = fmt.Errorf("internal error in %s", methodName)
			}
		}()

		log.Debug("%s started", methodName)

		if err = handler(req); err != nil {
			log.Error("%s error: %v", methodName, err)
			// Log error to LSP client via window/logMessage
			workspace.LogError(ctx, "%s: %v", methodName, err)
			return fmt.Errorf("%s: %w", methodName, err)
		}

		for _, warning := range req.Warnings() {
			workspace.LogWarning(ctx, "%s: %v", methodName, warning)
		}

		log.Debug("%s completed", methodName)
		return nil
	}
}
