package lifecycle

import (
	"bennypowers.dev/dtlint/internal/log"
	"bennypowers.dev/dtlint/internal/parser/css"
	"bennypowers.dev/dtlint/internal/parser/html"
	"bennypowers.dev/dtlint/internal/parser/js"
	"bennypowers.dev/dtlint/lsp/types"
)

// Shutdown handles the LSP shutdown request
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")

	// Release the tree-sitter parser pools.
	css.ClosePool()
	html.ClosePool()
	js.ClosePool()

	return nil
}
