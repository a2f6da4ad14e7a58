package types

import (
	"bennypowers.dev/dtlint/internal/catalog"
	"bennypowers.dev/dtlint/internal/documents"
	"github.com/tliron/glsp"
)

// ServerContext provides all dependencies needed for LSP handlers.
// This unified context eliminates the need for handler-specific
// interfaces and enables dependency injection for testing.
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Catalog operations. Catalog returns nil when no catalog is
	// available; CatalogError reports why the last load failed, if
	// it did.
	Catalog() catalog.TokenCatalog
	CatalogError() error
	CatalogPath() string
	ReloadCatalog() error
	IsCatalogFile(path string) bool

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// Configuration
	GetConfig() ServerConfig
	SetConfig(config ServerConfig)

	// Workspace initialization (called by the Initialized handler)
	RegisterFileWatchers(ctx *glsp.Context) error

	// LSP context (for publishing diagnostics, etc.)
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)

	// Diagnostics publishing
	PublishDiagnostics(context *glsp.Context, uri string) error
	PublishAll(context *glsp.Context)
}
