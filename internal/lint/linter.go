// Package lint runs the token matcher over documents and turns match
// results into diagnostics with exact source spans and fixes.
package lint

import (
	"fmt"
	"sort"
	"strings"

	"bennypowers.dev/dtlint/internal/catalog"
	"bennypowers.dev/dtlint/internal/match"
	"bennypowers.dev/dtlint/internal/parser/css"
	"bennypowers.dev/dtlint/internal/parser/html"
	"bennypowers.dev/dtlint/internal/parser/js"
	"bennypowers.dev/dtlint/internal/value"
)

// DefaultMargin is the close-match tolerance used when none is
// configured.
const DefaultMargin = 2

// Options tune one linting pass.
type Options struct {
	// Margin is the close-match tolerance in pixels. 0 disables the
	// close search entirely; exact matches still report.
	Margin float64
	// CheckFallbacks enables the var() fallback consistency check.
	CheckFallbacks bool
}

// DefaultOptions returns the options hosts start from.
func DefaultOptions() Options {
	return Options{Margin: DefaultMargin, CheckFallbacks: true}
}

// Linter matches document values against one immutable catalog. A
// Linter is cheap, holds no parser state, and is safe for concurrent
// use.
type Linter struct {
	catalog catalog.TokenCatalog
	opts    Options
}

// New builds a Linter over a validated catalog. Negative margins are
// clamped to 0.
func New(cat catalog.TokenCatalog, opts Options) *Linter {
	if opts.Margin < 0 {
		opts.Margin = 0
	}
	return &Linter{catalog: cat, opts: opts}
}

// Lintable reports whether documents with the given LSP language
// identifier are inspected at all.
func Lintable(languageID string) bool {
	switch languageID {
	case "css", "html", "javascript", "typescript", "javascriptreact", "typescriptreact":
		return true
	}
	return false
}

// LintDocument lints a whole source file, dispatching on the LSP
// language identifier. Unknown languages produce no diagnostics.
func (l *Linter) LintDocument(languageID, source string) []Diagnostic {
	if len(l.catalog) == 0 {
		return nil
	}
	switch languageID {
	case "css":
		return l.LintCSS(source)
	case "html":
		return l.lintHTML(source)
	case "javascript", "typescript", "javascriptreact", "typescriptreact":
		return l.lintJS(source)
	}
	return nil
}

// LintCSS lints stylesheet text. Diagnostics come back in document
// order with offsets into source.
func (l *Linter) LintCSS(source string) []Diagnostic {
	if len(l.catalog) == 0 {
		return nil
	}
	parser := css.AcquireParser()
	defer css.ReleaseParser(parser)
	return l.lintDeclarations(parser.Declarations(source), 0)
}

// lintHTML lints the embedded CSS regions of an HTML document.
func (l *Linter) lintHTML(source string) []Diagnostic {
	htmlParser := html.AcquireParser()
	defer html.ReleaseParser(htmlParser)
	return l.lintRegions(htmlParser.Regions(source))
}

// lintJS lints the tagged-template CSS regions of a JS/TS source.
func (l *Linter) lintJS(source string) []Diagnostic {
	jsParser := js.AcquireParser()
	defer js.ReleaseParser(jsParser)
	return l.lintRegions(jsParser.Regions(source))
}

// lintRegions lints each embedded region, shifting every span by the
// region's offset in the host file.
func (l *Linter) lintRegions(regions []html.Region) []Diagnostic {
	cssParser := css.AcquireParser()
	defer css.ReleaseParser(cssParser)

	var diags []Diagnostic
	for _, region := range regions {
		var decls []css.Declaration
		if region.Inline {
			decls = cssParser.InlineDeclarations(region.Text)
		} else {
			decls = cssParser.Declarations(region.Text)
		}
		diags = append(diags, l.lintDeclarations(decls, region.Offset)...)
	}
	return diags
}

func (l *Linter) lintDeclarations(decls []css.Declaration, base int) []Diagnostic {
	var diags []Diagnostic
	for _, decl := range decls {
		diags = append(diags, l.lintDeclaration(decl, base)...)
	}
	return diags
}

// lintDeclaration tokenizes one declaration value and evaluates its
// nodes. The walk descends into functions like calc() but not var():
// a var() reference is already tokenized, and its fallback belongs to
// the fallback check, not the matcher.
func (l *Linter) lintDeclaration(decl css.Declaration, base int) []Diagnostic {
	property := strings.ToLower(decl.Property)
	var diags []Diagnostic
	value.Walk(value.Parse(decl.Value), func(n *value.Node) bool {
		switch n.Kind {
		case value.Function:
			if n.Value == "var" {
				if l.opts.CheckFallbacks {
					if d := l.checkFallback(n, decl, base); d != nil {
						diags = append(diags, *d)
					}
				}
				return false
			}
			return true
		case value.Word:
			if d := l.matchDiagnostic(n, property, decl, base); d != nil {
				diags = append(diags, *d)
			}
		}
		return true
	})
	return diags
}

// matchDiagnostic evaluates one word node and builds its diagnostic.
// The span covers exactly the matched literal within the declaration:
// declaration start, plus property name and separator, plus the node's
// index within the value.
func (l *Linter) matchDiagnostic(n *value.Node, property string, decl css.Declaration, base int) *Diagnostic {
	r := match.Evaluate(l.catalog, property, n, l.opts.Margin)
	if r.Kind == match.NoMatch {
		return nil
	}

	start := base + decl.StartOffset + len(decl.Property) + len(decl.Between) + n.SourceIndex
	end := start + len(n.Value)

	if r.Kind == match.Exact {
		d := &Diagnostic{
			Code:        CodeExactMatch,
			Severity:    SeverityError,
			Message:     fmt.Sprintf("Use %s instead of %q for %q", r.TokenName, n.Value, decl.Property),
			StartOffset: start,
			EndOffset:   end,
		}
		if r.TokenName != n.Value {
			d.Fix = &Fix{StartOffset: start, EndOffset: end, NewText: r.TokenName}
		}
		return d
	}

	best := r.Candidates[0]
	message := fmt.Sprintf("%q is close to token %s ('%s')", n.Value, best.TokenName, best.RawValue)
	if len(r.Candidates) > 1 {
		parts := make([]string, 0, len(r.Candidates)-1)
		for _, c := range r.Candidates[1:] {
			parts = append(parts, fmt.Sprintf("%s ('%s')", c.TokenName, c.RawValue))
		}
		message += "; other candidates: " + strings.Join(parts, ", ")
	}
	return &Diagnostic{
		Code:        CodeCloseMatch,
		Severity:    SeverityWarning,
		Message:     message,
		StartOffset: start,
		EndOffset:   end,
	}
}

// ApplyFixes splices every carried fix into source, highest offset
// first so earlier spans stay valid. A fix whose span already holds
// its replacement text is skipped, which makes fixing idempotent.
func ApplyFixes(source string, diags []Diagnostic) string {
	var fixes []Fix
	for _, d := range diags {
		if d.Fix != nil {
			fixes = append(fixes, *d.Fix)
		}
	}
	sort.Slice(fixes, func(i, j int) bool {
		return fixes[i].StartOffset > fixes[j].StartOffset
	})

	out := source
	for _, f := range fixes {
		if f.StartOffset < 0 || f.EndOffset > len(out) || f.StartOffset > f.EndOffset {
			continue
		}
		if out[f.StartOffset:f.EndOffset] == f.NewText {
			continue
		}
		out = out[:f.StartOffset] + f.NewText + out[f.EndOffset:]
	}
	return out
}
