package catalog

import (
	"fmt"

	"bennypowers.dev/dtlint/internal/collections"
)

// rawCategory mirrors TokenCategory with pointer fields so that absent
// keys are distinguishable from empty ones.
type rawCategory struct {
	Properties *[]string          `json:"properties" yaml:"properties"`
	Tokens     *map[string]string `json:"tokens" yaml:"tokens"`
}

// validate promotes a decoded raw catalog to a typed TokenCatalog.
//
// The check is a definedness check: each category must have both
// properties and tokens present. Token keys that can never match (wrong
// unit, arbitrary strings) are allowed through on purpose; they are
// unreachable for matching but still serve name lookups. Categories are
// visited in sorted order so the first failure is deterministic.
func validate(raw map[string]rawCategory) (TokenCatalog, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: catalog must be a mapping", ErrCatalogMalformed)
	}
	cat := make(TokenCatalog, len(raw))
	for _, name := range collections.SortedKeys(raw) {
		rc := raw[name]
		if rc.Properties == nil {
			return nil, NewShapeError(name, "properties")
		}
		if rc.Tokens == nil {
			return nil, NewShapeError(name, "tokens")
		}
		cat[name] = TokenCategory{
			Properties: *rc.Properties,
			Tokens:     *rc.Tokens,
		}
	}
	return cat, nil
}
