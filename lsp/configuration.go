package lsp

import (
	"path/filepath"
	"slices"

	"bennypowers.dev/dtlint/internal/catalog"
	"bennypowers.dev/dtlint/internal/log"
	"bennypowers.dev/dtlint/lsp/types"
)

// GetConfig returns the current server configuration (user settings only)
func (s *Server) GetConfig() types.ServerConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig updates the server configuration
func (s *Server) SetConfig(config types.ServerConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = config
}

// Catalog returns the loaded token catalog, or nil when none is loaded
func (s *Server) Catalog() catalog.TokenCatalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// CatalogError returns the error from the most recent catalog load, if any
func (s *Server) CatalogError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalogErr
}

// CatalogPath returns the resolved path of the catalog file the server
// loaded (or tried to load), or "" when none was found
func (s *Server) CatalogPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalogPath
}

// resolveCatalogPath determines which catalog file to load. An explicitly
// configured path wins; otherwise the workspace root is searched for the
// well-known catalog names.
func (s *Server) resolveCatalogPath() (string, bool) {
	cfg := s.GetConfig()
	root := s.RootPath()

	if cfg.CatalogPath != "" {
		path := cfg.CatalogPath
		if !filepath.IsAbs(path) && root != "" {
			path = filepath.Join(root, path)
		}
		return filepath.Clean(path), true
	}

	if root == "" {
		return "", false
	}
	return catalog.Discover(root)
}

// ReloadCatalog loads (or reloads) the token catalog from disk and stores
// the result. Finding no catalog in discovery mode clears the loaded
// catalog without reporting an error; an explicitly configured path that
// fails to load records the error so diagnostics can surface it.
func (s *Server) ReloadCatalog() error {
	path, found := s.resolveCatalogPath()

	if !found {
		s.mu.Lock()
		s.catalog = nil
		s.catalogErr = nil
		s.catalogPath = ""
		s.mu.Unlock()
		log.Info("No token catalog found")
		return nil
	}

	cat, err := catalog.Load(path)

	s.mu.Lock()
	s.catalogPath = path
	if err != nil {
		s.catalog = nil
		s.catalogErr = err
	} else {
		s.catalog = cat
		s.catalogErr = nil
	}
	s.mu.Unlock()

	if err != nil {
		log.Error("Failed to load token catalog %s: %v", path, err)
		return err
	}

	log.Info("Loaded token catalog %s (%d categories)", path, len(cat))
	return nil
}

// IsCatalogFile checks if a file path refers to the catalog the server is
// using, or could use. While no catalog is resolved, any of the well-known
// catalog names counts, so a newly created catalog is picked up without a
// restart.
func (s *Server) IsCatalogFile(path string) bool {
	if path == "" {
		return false
	}
	cleanPath := filepath.Clean(path)

	if loaded := s.CatalogPath(); loaded != "" {
		return cleanPath == filepath.Clean(loaded)
	}

	cfg := s.GetConfig()
	if cfg.CatalogPath != "" {
		configured := cfg.CatalogPath
		if root := s.RootPath(); root != "" && !filepath.IsAbs(configured) {
			configured = filepath.Join(root, configured)
		}
		return cleanPath == filepath.Clean(configured)
	}

	return slices.Contains(catalog.DefaultNames, filepath.Base(cleanPath))
}
