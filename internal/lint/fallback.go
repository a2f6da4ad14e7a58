package lint

import (
	"fmt"
	"strings"

	"bennypowers.dev/dtlint/internal/parser/css"
	"bennypowers.dev/dtlint/internal/pixel"
	"bennypowers.dev/dtlint/internal/value"
	"github.com/mazznoer/csscolorparser"
)

// checkFallback verifies that a var() fallback agrees with the catalog
// value of the referenced token. Returns nil when the reference is
// unknown, there is no fallback, or the fallback checks out.
func (l *Linter) checkFallback(fn *value.Node, decl css.Declaration, base int) *Diagnostic {
	ref := firstWord(fn.Nodes)
	if ref == nil || !strings.HasPrefix(ref.Value, "--") {
		return nil
	}

	fallback := fallbackNodes(fn.Nodes)
	if len(fallback) == 0 {
		return nil
	}
	// Nested functions in a fallback (another var(), calc()) have no
	// textual catalog form to compare against.
	for _, n := range fallback {
		if n.Kind == value.Function {
			return nil
		}
	}

	raw, ok := l.catalog.LookupName(ref.Value)
	if !ok {
		return nil
	}

	fallbackText := value.Stringify(fallback)
	if fallbackEquivalent(fallbackText, raw) {
		return nil
	}

	start := base + decl.StartOffset + len(decl.Property) + len(decl.Between) + fallback[0].SourceIndex
	end := start + len(fallbackText)
	return &Diagnostic{
		Code:        CodeFallbackMismatch,
		Severity:    SeverityWarning,
		Message:     fmt.Sprintf("Token fallback %q does not match catalog value %q for %s", fallbackText, raw, ref.Value),
		StartOffset: start,
		EndOffset:   end,
		Fix:         &Fix{StartOffset: start, EndOffset: end, NewText: raw},
	}
}

// firstWord returns the first non-space argument node.
func firstWord(nodes []*value.Node) *value.Node {
	for _, n := range nodes {
		if n.Kind == value.Space {
			continue
		}
		if n.Kind == value.Word {
			return n
		}
		return nil
	}
	return nil
}

// fallbackNodes returns the argument nodes after the first comma, with
// surrounding whitespace trimmed and interior nodes kept.
func fallbackNodes(nodes []*value.Node) []*value.Node {
	comma := -1
	for i, n := range nodes {
		if n.Kind == value.Div && n.Value == "," {
			comma = i
			break
		}
	}
	if comma < 0 {
		return nil
	}
	rest := nodes[comma+1:]
	for len(rest) > 0 && rest[0].Kind == value.Space {
		rest = rest[1:]
	}
	for len(rest) > 0 && rest[len(rest)-1].Kind == value.Space {
		rest = rest[:len(rest)-1]
	}
	return rest
}

// fallbackEquivalent compares a written fallback with a catalog raw
// value. Pixel values compare by magnitude, colors by canonical hex,
// anything else by whitespace- and case-insensitive text.
func fallbackEquivalent(fallback, raw string) bool {
	if fpx, ok := pixel.Parse(fallback); ok {
		rpx, ok := pixel.Parse(raw)
		return ok && fpx == rpx
	}
	if fc, err := csscolorparser.Parse(fallback); err == nil {
		rc, err := csscolorparser.Parse(raw)
		return err == nil && fc.HexString() == rc.HexString()
	}
	return normalizeValue(fallback) == normalizeValue(raw)
}

// normalizeValue strips whitespace and lowercases for a tolerant
// textual comparison.
func normalizeValue(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\t", "")
	s = strings.ReplaceAll(s, "\n", "")
	return strings.ToLower(s)
}
