package workspace

import (
	"fmt"

	"bennypowers.dev/dtlint/internal/log"
	"bennypowers.dev/dtlint/internal/uriutil"
	"bennypowers.dev/dtlint/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeWatchedFiles handles the workspace/didChangeWatchedFiles
// notification. Only catalog file events matter here: any create,
// change, or delete of the catalog triggers a reload, and a deleted
// catalog simply reloads to nothing.
func DidChangeWatchedFiles(req *types.RequestContext, params *protocol.DidChangeWatchedFilesParams) error {
	log.Debug("Watched files changed: %d files", len(params.Changes))

	needsReload := false
	for _, change := range params.Changes {
		path := uriutil.URIToPath(change.URI)
		log.Debug("File change: %s (type: %d)", path, change.Type)

		if req.Server.IsCatalogFile(path) {
			needsReload = true
		}
	}

	if !needsReload {
		return nil
	}

	log.Info("Reloading token catalog after file change")
	if err := req.Server.ReloadCatalog(); err != nil {
		req.AddWarning(fmt.Errorf("failed to reload catalog: %w", err))
	}

	req.Server.PublishAll(req.GLSP)
	return nil
}
