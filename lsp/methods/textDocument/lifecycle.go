// Package textDocument implements the document synchronization
// notifications. Every sync event ends with a fresh lint pass for the
// affected document.
package textDocument

import (
	"bennypowers.dev/dtlint/internal/log"
	"bennypowers.dev/dtlint/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidOpen handles the textDocument/didOpen notification
func DidOpen(req *types.RequestContext, params *protocol.DidOpenTextDocumentParams) error {
	log.Debug("Document opened: %s (language: %s, version: %d)",
		params.TextDocument.URI, params.TextDocument.LanguageID, int(params.TextDocument.Version))

	err := req.Server.DocumentManager().DidOpen(params.TextDocument.URI, params.TextDocument.LanguageID,
		int(params.TextDocument.Version), params.TextDocument.Text)
	if err != nil {
		return err
	}

	if err := req.Server.PublishDiagnostics(req.GLSP, params.TextDocument.URI); err != nil {
		req.AddWarning(err)
	}

	return nil
}

// DidChange handles the textDocument/didChange notification
func DidChange(req *types.RequestContext, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	version := int(params.TextDocument.Version)

	log.Debug("Document changed: %s (version: %d, changes: %d)", uri, version, len(params.ContentChanges))

	// ContentChanges arrives as []any. Incremental edits decode to
	// TextDocumentContentChangeEvent; a whole-document replacement
	// decodes to the rangeless Whole variant and is folded into the
	// same shape, since a nil range already means "replace all".
	changes := make([]protocol.TextDocumentContentChangeEvent, 0, len(params.ContentChanges))
	for _, change := range params.ContentChanges {
		switch event := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			changes = append(changes, event)
		case protocol.TextDocumentContentChangeEventWhole:
			changes = append(changes, protocol.TextDocumentContentChangeEvent{Text: event.Text})
		}
	}

	if err := req.Server.DocumentManager().DidChange(uri, version, changes); err != nil {
		return err
	}

	if err := req.Server.PublishDiagnostics(req.GLSP, uri); err != nil {
		req.AddWarning(err)
	}

	return nil
}

// DidClose handles the textDocument/didClose notification
func DidClose(req *types.RequestContext, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	log.Debug("Document closed: %s", uri)

	if err := req.Server.DocumentManager().DidClose(uri); err != nil {
		return err
	}

	// Republishing for the now untracked document sends an empty list,
	// which clears any markers the client still shows for it.
	if err := req.Server.PublishDiagnostics(req.GLSP, uri); err != nil {
		req.AddWarning(err)
	}

	return nil
}
