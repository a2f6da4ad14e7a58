package lsp

import (
	"fmt"
	"path/filepath"
	"sync"

	"bennypowers.dev/dtlint/internal/catalog"
	"bennypowers.dev/dtlint/internal/documents"
	"bennypowers.dev/dtlint/internal/log"
	"bennypowers.dev/dtlint/internal/parser/css"
	"bennypowers.dev/dtlint/internal/parser/html"
	"bennypowers.dev/dtlint/internal/parser/js"
	"bennypowers.dev/dtlint/lsp/methods/lifecycle"
	"bennypowers.dev/dtlint/lsp/methods/textDocument"
	codeaction "bennypowers.dev/dtlint/lsp/methods/textDocument/codeAction"
	"bennypowers.dev/dtlint/lsp/methods/textDocument/diagnostic"
	"bennypowers.dev/dtlint/lsp/methods/workspace"
	"bennypowers.dev/dtlint/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Verify that Server implements ServerContext interface
var _ types.ServerContext = (*Server)(nil)

// Server represents the design tokens lint language server
type Server struct {
	documents   *documents.Manager
	catalog     catalog.TokenCatalog
	catalogErr  error
	catalogPath string
	glspServer  *server.Server
	context     *glsp.Context
	rootURI     string             // Workspace root URI
	rootPath    string             // Workspace root path (file system)
	config      types.ServerConfig // Server configuration
	mu          sync.RWMutex       // Protects config, context, root, and catalog state from concurrent access
}

// NewServer creates a new design tokens lint LSP server
func NewServer() (*Server, error) {
	s := &Server{
		documents: documents.NewManager(),
		config:    types.DefaultConfig(),
	}

	// Create the GLSP server with our handlers wrapped with middleware
	protocolHandler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		WorkspaceDidChangeWatchedFiles:  notify(s, "workspace/didChangeWatchedFiles", workspace.DidChangeWatchedFiles),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentCodeAction:          method(s, "textDocument/codeAction", codeaction.CodeAction),
	}

	// Create GLSP server with debug enabled for stdio
	s.glspServer = server.NewServer(&protocolHandler, "design-tokens-lint", true)

	return s, nil
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases server resources including the parser pools.
// It is safe to call Close multiple times.
// This method should be called when the server is no longer needed,
// typically in test cleanup via defer server.Close().
func (s *Server) Close() error {
	css.ClosePool()
	html.ClosePool()
	js.ClosePool()
	return nil
}

// ServerContext interface implementation

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns all tracked documents
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rootPath = path
}

// GLSPContext returns the GLSP context captured at initialization.
func (s *Server) GLSPContext() *glsp.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.context
}

// SetGLSPContext sets the GLSP context.
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.context = ctx
}

// PublishDiagnostics publishes diagnostics for a document
func (s *Server) PublishDiagnostics(context *glsp.Context, uri string) error {
	log.Info("Publishing diagnostics for: %s", uri)

	// Select a working context: use passed-in context if non-nil, otherwise fall back to server's context
	workingContext := context
	if workingContext == nil {
		workingContext = s.GLSPContext()
	}

	// If we still don't have a context, fail fast
	if workingContext == nil {
		return fmt.Errorf("cannot publish diagnostics: no client context available")
	}

	diagnostics, err := diagnostic.GetDiagnostics(s, uri)
	if err != nil {
		return err
	}

	// Publish diagnostics to the client using the selected context
	workingContext.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})

	return nil
}

// PublishAll republishes diagnostics for every open document. Publish
// failures are logged rather than returned so one bad document does not
// block the rest.
func (s *Server) PublishAll(context *glsp.Context) {
	for _, doc := range s.AllDocuments() {
		if err := s.PublishDiagnostics(context, doc.URI()); err != nil {
			log.Warn("Failed to publish diagnostics for %s: %v", doc.URI(), err)
		}
	}
}

// RegisterFileWatchers registers catalog file watchers with the client
func (s *Server) RegisterFileWatchers(context *glsp.Context) error {
	// Guard against nil or empty context (can happen in tests without real LSP connection)
	// An empty context (created with &glsp.Context{}) won't have Call initialized
	if context == nil || context.Call == nil {
		log.Info("Skipping file watcher registration (no client context)")
		return nil
	}

	watchers := s.catalogWatchers()
	if len(watchers) == 0 {
		log.Info("No file watchers to register")
		return nil
	}

	params := protocol.RegistrationParams{
		Registrations: []protocol.Registration{
			{
				ID:     "design-tokens-lint-catalog-watcher",
				Method: "workspace/didChangeWatchedFiles",
				RegisterOptions: protocol.DidChangeWatchedFilesRegistrationOptions{
					Watchers: watchers,
				},
			},
		},
	}

	// client/registerCapability is a request per the LSP spec, so it goes
	// through context.Call rather than context.Notify. The call happens in
	// a goroutine because the message handler loop is blocked inside this
	// handler and cannot read the client's response until it returns.
	// Call errors are caught and logged inside glsp; a rejected
	// registration only disables catalog watching.
	go func(ctx *glsp.Context) {
		var result any
		ctx.Call("client/registerCapability", params, &result)
		log.Info("File watcher registration completed")
	}(context)

	log.Info("Sent file watcher registration request (%d watchers)", len(watchers))
	return nil
}

// catalogWatchers builds glob patterns covering every file that could
// become the token catalog. With an explicit catalogPath only that file
// is watched; in discovery mode each well-known catalog name under the
// workspace root is watched so a newly created catalog is picked up.
func (s *Server) catalogWatchers() []protocol.FileSystemWatcher {
	cfg := s.GetConfig()
	root := s.RootPath()

	if cfg.CatalogPath != "" {
		// Glob patterns use forward-slash filesystem paths, not URIs
		pattern := cfg.CatalogPath
		switch {
		case filepath.IsAbs(pattern):
			pattern = filepath.ToSlash(filepath.Clean(pattern))
		case root != "":
			pattern = filepath.ToSlash(filepath.Clean(filepath.Join(root, pattern)))
		default:
			pattern = filepath.ToSlash(pattern)
		}
		return []protocol.FileSystemWatcher{{GlobPattern: pattern}}
	}

	if root == "" {
		return nil
	}

	base := filepath.ToSlash(filepath.Clean(root))
	watchers := make([]protocol.FileSystemWatcher, 0, len(catalog.DefaultNames))
	for _, name := range catalog.DefaultNames {
		watchers = append(watchers, protocol.FileSystemWatcher{
			GlobPattern: base + "/" + name,
		})
	}
	return watchers
}
