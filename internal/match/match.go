// Package match decides whether a value node matches a design token
// exactly, nearly, or not at all.
//
// Matching is pure: the catalog is read-only, nodes are never mutated,
// and a Result lives only for the node evaluation that produced it.
package match

import (
	"math"
	"sort"
	"strings"

	"bennypowers.dev/dtlint/internal/catalog"
	"bennypowers.dev/dtlint/internal/collections"
	"bennypowers.dev/dtlint/internal/pixel"
	"bennypowers.dev/dtlint/internal/value"
)

// ResultKind discriminates a match outcome.
type ResultKind int

const (
	// NoMatch means the node is inapplicable or nothing qualified.
	NoMatch ResultKind = iota
	// Exact means the literal is a token map key, verbatim.
	Exact
	// Close means one or more tokens fall within the margin.
	Close
)

// Candidate is one close-match suggestion.
type Candidate struct {
	TokenName string
	RawValue  string
	Diff      float64
}

// Result is the outcome of evaluating one value node. TokenName is set
// for Exact results; Candidates holds Close results sorted ascending by
// Diff, ties in sorted token key order.
type Result struct {
	Kind       ResultKind
	TokenName  string
	Candidates []Candidate
}

// Select returns the categories governing a property, in sorted
// category name order. The property must already be lowercased.
func Select(c catalog.TokenCatalog, property string) []catalog.TokenCategory {
	var selected []catalog.TokenCategory
	for _, name := range c.Names() {
		if c[name].AppliesTo(property) {
			selected = append(selected, c[name])
		}
	}
	return selected
}

// Evaluate runs a node against every category that governs the
// property, in selector order. The first category producing a result
// wins; an exact match in an earlier category stops the scan before
// later categories are consulted.
func Evaluate(c catalog.TokenCatalog, property string, n *value.Node, margin float64) Result {
	for _, tc := range Select(c, property) {
		if r := Node(n, tc, margin); r.Kind != NoMatch {
			return r
		}
	}
	return Result{}
}

// Node evaluates a single value node against a single category under
// the given margin.
//
// Only Word nodes with a px literal or the literal "0" qualify. A bare
// "0" is exact-or-nothing: without a "0" token key the node is skipped
// entirely, and zero never appears as a close match. Margin 0 disables
// the close search; the exact check always runs.
func Node(n *value.Node, tc catalog.TokenCategory, margin float64) Result {
	if n.Kind != value.Word {
		return Result{}
	}
	lit := n.Value
	if lit == "0" {
		if name, ok := tc.Tokens["0"]; ok {
			return Result{Kind: Exact, TokenName: name}
		}
		return Result{}
	}
	if !strings.HasSuffix(lit, pixel.Suffix) {
		return Result{}
	}
	magnitude, ok := pixel.Parse(lit)
	if !ok {
		return Result{}
	}

	if name, ok := tc.Tokens[lit]; ok {
		return Result{Kind: Exact, TokenName: name}
	}

	if margin <= 0 {
		return Result{}
	}
	var candidates []Candidate
	for _, key := range collections.SortedKeys(tc.Tokens) {
		tokenMagnitude, ok := pixel.Parse(key)
		if !ok {
			continue
		}
		diff := math.Abs(magnitude - tokenMagnitude)
		// diff 0 under a different key is the same magnitude in another
		// spelling; it is not re-reported as close.
		if diff > 0 && diff <= margin {
			candidates = append(candidates, Candidate{
				TokenName: tc.Tokens[key],
				RawValue:  key,
				Diff:      diff,
			})
		}
	}
	if len(candidates) == 0 {
		return Result{}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Diff < candidates[j].Diff
	})
	return Result{Kind: Close, Candidates: candidates}
}
