// Package testutil provides a configurable ServerContext implementation
// for handler tests.
package testutil

import (
	"path/filepath"
	"slices"
	"sync"

	"bennypowers.dev/dtlint/internal/catalog"
	"bennypowers.dev/dtlint/internal/documents"
	"bennypowers.dev/dtlint/lsp/types"
	"github.com/tliron/glsp"
)

// MockServerContext implements types.ServerContext for testing.
// Behavior can be overridden per test through the callback fields;
// without callbacks it behaves like a server with whatever catalog
// the test seeded.
type MockServerContext struct {
	docs        *documents.Manager
	catalog     catalog.TokenCatalog
	catalogErr  error
	catalogPath string
	rootURI     string
	rootPath    string
	config      types.ServerConfig
	glspContext *glsp.Context
	mu          sync.RWMutex

	// Optional callbacks for custom behavior in tests
	ReloadCatalogFunc      func() error
	RegisterWatchersFunc   func(*glsp.Context) error
	PublishDiagnosticsFunc func(*glsp.Context, string) error

	// Tracking for tests that verify calls happened
	ReloadCatalogCalled    bool
	RegisterWatchersCalled bool
	PublishedURIs          []string
}

// NewMockServerContext creates a mock with no catalog and default config
func NewMockServerContext() *MockServerContext {
	return &MockServerContext{
		docs:   documents.NewManager(),
		config: types.DefaultConfig(),
	}
}

// SeedCatalog installs a catalog as if it had been loaded from path
func (m *MockServerContext) SeedCatalog(cat catalog.TokenCatalog, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = cat
	m.catalogPath = path
	m.catalogErr = nil
}

// SeedCatalogError records a failed catalog load
func (m *MockServerContext) SeedCatalogError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = nil
	m.catalogErr = err
}

// Document returns the document with the given URI
func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

// DocumentManager returns the document manager
func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

// AllDocuments returns all tracked documents
func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

// Catalog returns the seeded catalog, or nil
func (m *MockServerContext) Catalog() catalog.TokenCatalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog
}

// CatalogError returns the seeded catalog load error, or nil
func (m *MockServerContext) CatalogError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalogErr
}

// CatalogPath returns the path the seeded catalog pretends to come from
func (m *MockServerContext) CatalogPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalogPath
}

// ReloadCatalog records the call and defers to ReloadCatalogFunc if set
func (m *MockServerContext) ReloadCatalog() error {
	m.mu.Lock()
	m.ReloadCatalogCalled = true
	m.mu.Unlock()
	if m.ReloadCatalogFunc != nil {
		return m.ReloadCatalogFunc()
	}
	return nil
}

// IsCatalogFile mirrors the server's catalog path comparison
func (m *MockServerContext) IsCatalogFile(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.catalogPath != "" {
		return filepath.Clean(path) == filepath.Clean(m.catalogPath)
	}
	return slices.Contains(catalog.DefaultNames, filepath.Base(path))
}

// RootURI returns the workspace root URI
func (m *MockServerContext) RootURI() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rootURI
}

// RootPath returns the workspace root path
func (m *MockServerContext) RootPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rootPath
}

// SetRootURI sets the workspace root URI
func (m *MockServerContext) SetRootURI(uri string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rootURI = uri
}

// SetRootPath sets the workspace root path
func (m *MockServerContext) SetRootPath(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rootPath = path
}

// GetConfig returns the server configuration
func (m *MockServerContext) GetConfig() types.ServerConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// SetConfig sets the server configuration
func (m *MockServerContext) SetConfig(config types.ServerConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = config
}

// RegisterFileWatchers records the call and defers to RegisterWatchersFunc if set
func (m *MockServerContext) RegisterFileWatchers(ctx *glsp.Context) error {
	m.mu.Lock()
	m.RegisterWatchersCalled = true
	m.mu.Unlock()
	if m.RegisterWatchersFunc != nil {
		return m.RegisterWatchersFunc(ctx)
	}
	return nil
}

// GLSPContext returns the GLSP context
func (m *MockServerContext) GLSPContext() *glsp.Context {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.glspContext
}

// SetGLSPContext sets the GLSP context
func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.glspContext = ctx
}

// PublishDiagnostics records the URI and defers to PublishDiagnosticsFunc if set
func (m *MockServerContext) PublishDiagnostics(context *glsp.Context, uri string) error {
	m.mu.Lock()
	m.PublishedURIs = append(m.PublishedURIs, uri)
	m.mu.Unlock()
	if m.PublishDiagnosticsFunc != nil {
		return m.PublishDiagnosticsFunc(context, uri)
	}
	return nil
}

// PublishAll publishes diagnostics for every open document
func (m *MockServerContext) PublishAll(context *glsp.Context) {
	for _, doc := range m.AllDocuments() {
		_ = m.PublishDiagnostics(context, doc.URI())
	}
}

// Verify interface compliance
var _ types.ServerContext = (*MockServerContext)(nil)
