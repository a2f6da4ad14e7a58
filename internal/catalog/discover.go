package catalog

import (
	"os"
	"path/filepath"
)

// DefaultNames are the catalog file names probed, in order, when no
// path is configured.
var DefaultNames = []string{
	"tokens.json",
	"tokens.jsonc",
	"tokens.yaml",
	"tokens.yml",
	"design-tokens.json",
}

// Discover probes root for a catalog file under one of the well-known
// names and returns the first that exists. The probe order is fixed so
// discovery is deterministic when several names are present.
func Discover(root string) (string, bool) {
	for _, name := range DefaultNames {
		candidate := filepath.Join(root, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		return candidate, true
	}
	return "", false
}
