package lifecycle

import (
	"fmt"

	"bennypowers.dev/dtlint/internal/log"
	"bennypowers.dev/dtlint/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	log.Info("Server initialized")

	// Keep the context for later server-initiated publishes.
	req.Server.SetGLSPContext(req.GLSP)

	// First catalog load. A workspace without a catalog is not an
	// error: token checks stay off until one appears.
	if err := req.Server.ReloadCatalog(); err != nil {
		req.AddWarning(fmt.Errorf("failed to load token catalog: %w", err))
	}

	if err := req.Server.RegisterFileWatchers(req.GLSP); err != nil {
		req.AddWarning(fmt.Errorf("failed to register file watchers: %w", err))
	}

	return nil
}
