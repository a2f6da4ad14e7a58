// Package diagnostic turns lint findings into LSP diagnostics.
package diagnostic

import (
	"bennypowers.dev/dtlint/internal/lint"
	"bennypowers.dev/dtlint/internal/position"
	"bennypowers.dev/dtlint/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Source identifies this server in published diagnostics.
const Source = "design-tokens-lint"

// GetDiagnostics lints a tracked document and converts the findings to
// protocol diagnostics. The raw findings, byte offsets and fixes
// included, are cached on the document manager so code actions can
// reuse them without another pass.
func GetDiagnostics(ctx types.ServerContext, uri string) ([]protocol.Diagnostic, error) {
	doc := ctx.Document(uri)
	if doc == nil {
		return nil, nil
	}

	if !lint.Lintable(doc.LanguageID()) {
		return nil, nil
	}

	var diags []lint.Diagnostic
	if err := ctx.CatalogError(); err != nil {
		// An unusable catalog gets one document-level notice and no
		// token checks.
		diags = []lint.Diagnostic{lint.CatalogProblem(err)}
	} else if cat := ctx.Catalog(); cat != nil {
		linter := lint.New(cat, ctx.GetConfig().LintOptions())
		diags = linter.LintDocument(doc.LanguageID(), doc.Content())
	}
	// No catalog and no load error means token checks are simply off.

	if err := ctx.DocumentManager().SetDiagnostics(uri, diags); err != nil {
		return nil, err
	}

	content := doc.Content()
	protocolDiags := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		protocolDiags = append(protocolDiags, ToProtocol(d, content))
	}
	return protocolDiags, nil
}

// ToProtocol converts one finding into a protocol diagnostic, mapping
// its byte span in content to UTF-16 line and character positions.
func ToProtocol(d lint.Diagnostic, content string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityWarning
	if d.Severity == lint.SeverityError {
		severity = protocol.DiagnosticSeverityError
	}

	code := protocol.IntegerOrString{Value: d.Code}
	source := Source

	return protocol.Diagnostic{
		Range:    SpanRange(content, d.StartOffset, d.EndOffset),
		Severity: &severity,
		Code:     &code,
		Source:   &source,
		Message:  d.Message,
	}
}

// SpanRange converts a byte span into a protocol range.
func SpanRange(content string, start, end int) protocol.Range {
	s := position.FromByteOffset(content, start)
	e := position.FromByteOffset(content, end)
	return protocol.Range{
		Start: protocol.Position{
			Line:      protocol.UInteger(s.Line),
			Character: protocol.UInteger(s.Character),
		},
		End: protocol.Position{
			Line:      protocol.UInteger(e.Line),
			Character: protocol.UInteger(e.Character),
		},
	}
}
