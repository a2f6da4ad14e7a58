// Package catalog defines the design-token catalog consumed by the
// matcher and loads it from JSON, JSONC, or YAML files.
//
// A catalog maps category names to token categories. It is validated
// once at the load boundary and treated as immutable for the rest of a
// linting pass; sharing it across goroutines needs no locking.
package catalog

import (
	"slices"

	"bennypowers.dev/dtlint/internal/collections"
)

// TokenCategory groups a set of applicable property names with the raw
// value to token name mapping that governs them.
type TokenCategory struct {
	// Properties are the lowercase property names this category covers.
	Properties []string `json:"properties" yaml:"properties"`
	// Tokens maps a raw value string, "16px" form or the literal "0",
	// to a token name. Keys in neither form are legal but never match.
	Tokens map[string]string `json:"tokens" yaml:"tokens"`
}

// AppliesTo reports whether the category governs the given lowercase
// property name.
func (c TokenCategory) AppliesTo(property string) bool {
	return slices.Contains(c.Properties, property)
}

// TokenCatalog maps category names to their categories.
type TokenCatalog map[string]TokenCategory

// Names returns the category names in sorted order. All catalog scans
// iterate in this order so that diagnostics are deterministic.
func (t TokenCatalog) Names() []string {
	return collections.SortedKeys(t)
}

// LookupName finds the raw value for a custom property reference such
// as "--space-4". Token names are matched either bare or wrapped in
// var(). Categories and keys are scanned in sorted order; the first hit
// wins.
func (t TokenCatalog) LookupName(ref string) (string, bool) {
	wrapped := "var(" + ref + ")"
	for _, name := range t.Names() {
		tokens := t[name].Tokens
		for _, raw := range collections.SortedKeys(tokens) {
			if tokens[raw] == ref || tokens[raw] == wrapped {
				return raw, true
			}
		}
	}
	return "", false
}
