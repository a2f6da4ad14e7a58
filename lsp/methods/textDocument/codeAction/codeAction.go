// Package codeaction offers quick fixes built from lint findings.
package codeaction

import (
	"fmt"
	"strings"

	"bennypowers.dev/dtlint/internal/lint"
	"bennypowers.dev/dtlint/lsp/methods/textDocument/diagnostic"
	"bennypowers.dev/dtlint/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// FixAllKind is the action kind that rewrites every fixable value in
// the document at once. glsp v0.2.2 defines no constant for it.
const FixAllKind = protocol.CodeActionKind("source.fixAll")

// CodeAction handles the textDocument/codeAction request. A fresh lint
// pass runs first so the offered edits always match the document as it
// stands, then quick fixes come from the findings that pass cached.
func CodeAction(req *types.RequestContext, params *protocol.CodeActionParams) (any, error) {
	uri := params.TextDocument.URI

	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, nil
	}
	if !lint.Lintable(doc.LanguageID()) {
		return nil, nil
	}

	if _, err := diagnostic.GetDiagnostics(req.Server, uri); err != nil {
		return nil, err
	}
	findings := req.Server.DocumentManager().Diagnostics(uri)

	content := doc.Content()
	var actions []protocol.CodeAction

	if kindRequested(params.Context.Only, protocol.CodeActionKindQuickFix) {
		for _, finding := range findings {
			if finding.Fix == nil {
				continue
			}
			span := diagnostic.SpanRange(content, finding.StartOffset, finding.EndOffset)
			if !RangesIntersect(params.Range, span) {
				continue
			}
			actions = append(actions, quickFix(uri, content, finding))
		}
	}

	if kindRequested(params.Context.Only, FixAllKind) {
		if action := fixAllAction(uri, content, findings); action != nil {
			actions = append(actions, *action)
		}
	}

	return actions, nil
}

// quickFix builds the single-edit action for one finding.
func quickFix(uri, content string, finding lint.Diagnostic) protocol.CodeAction {
	oldText := content[finding.Fix.StartOffset:finding.Fix.EndOffset]
	kind := protocol.CodeActionKindQuickFix
	action := protocol.CodeAction{
		Title: fmt.Sprintf("Replace %q with %s", oldText, finding.Fix.NewText),
		Kind:  &kind,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[string][]protocol.TextEdit{
				uri: {{
					Range:   diagnostic.SpanRange(content, finding.Fix.StartOffset, finding.Fix.EndOffset),
					NewText: finding.Fix.NewText,
				}},
			},
		},
		Diagnostics: []protocol.Diagnostic{diagnostic.ToProtocol(finding, content)},
	}
	if finding.Code == lint.CodeExactMatch {
		preferred := true
		action.IsPreferred = &preferred
	}
	return action
}

// fixAllAction bundles every carried fix into one edit, in document
// order. Returns nil when nothing is fixable.
func fixAllAction(uri, content string, findings []lint.Diagnostic) *protocol.CodeAction {
	var edits []protocol.TextEdit
	for _, finding := range findings {
		if finding.Fix == nil {
			continue
		}
		edits = append(edits, protocol.TextEdit{
			Range:   diagnostic.SpanRange(content, finding.Fix.StartOffset, finding.Fix.EndOffset),
			NewText: finding.Fix.NewText,
		})
	}
	if len(edits) == 0 {
		return nil
	}

	kind := FixAllKind
	return &protocol.CodeAction{
		Title: "Apply all design token fixes",
		Kind:  &kind,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[string][]protocol.TextEdit{uri: edits},
		},
	}
}

// kindRequested honors the client's Only filter. Kinds form a
// hierarchy, so a request for "source" includes "source.fixAll".
func kindRequested(only []protocol.CodeActionKind, kind protocol.CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	for _, o := range only {
		if o == kind || strings.HasPrefix(string(kind), string(o)+".") {
			return true
		}
	}
	return false
}

// RangesIntersect reports whether two ranges overlap. Touching ranges
// do not count: a collapsed cursor sitting at a span boundary selects
// nothing inside it.
func RangesIntersect(a, b protocol.Range) bool {
	if a.End.Line < b.Start.Line {
		return false
	}
	if a.End.Line == b.Start.Line && a.End.Character <= b.Start.Character {
		return false
	}
	if b.End.Line < a.Start.Line {
		return false
	}
	if b.End.Line == a.Start.Line && b.End.Character <= a.Start.Character {
		return false
	}
	return true
}
