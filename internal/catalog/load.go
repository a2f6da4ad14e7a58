package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a catalog file. The format is chosen by
// extension: .json and .jsonc parse as JSONC, .yaml and .yml as YAML,
// anything else is tried as JSONC.
func Load(path string) (TokenCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalogUnreadable, path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes and validates catalog content. ext selects the format
// as in Load.
func Parse(data []byte, ext string) (TokenCatalog, error) {
	var raw map[string]rawCategory
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogMalformed, err)
		}
	default:
		// JSONC covers plain JSON; comments and trailing commas are
		// stripped before decoding.
		if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogMalformed, err)
		}
	}
	return validate(raw)
}
