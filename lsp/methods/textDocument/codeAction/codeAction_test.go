package codeaction

import (
	"testing"

	"bennypowers.dev/dtlint/internal/catalog"
	"bennypowers.dev/dtlint/lsp/testutil"
	"bennypowers.dev/dtlint/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func spacingCatalog() catalog.TokenCatalog {
	return catalog.TokenCatalog{
		"spacing": {
			Properties: []string{"margin", "padding", "gap"},
			Tokens: map[string]string{
				"0":    "var(--space-0)",
				"4px":  "var(--space-1)",
				"8px":  "var(--space-2)",
				"16px": "var(--space-4)",
			},
		},
	}
}

func lintingContext(t *testing.T, uri, content string) *testutil.MockServerContext {
	t.Helper()
	ctx := testutil.NewMockServerContext()
	ctx.SeedCatalog(spacingCatalog(), "/workspace/tokens.json")
	require.NoError(t, ctx.DocumentManager().DidOpen(uri, "css", 1, content))
	return ctx
}

func requestActions(t *testing.T, ctx *testutil.MockServerContext, uri string, requested protocol.Range, only []protocol.CodeActionKind) []protocol.CodeAction {
	t.Helper()
	req := types.NewRequestContext(ctx, nil)
	result, err := CodeAction(req, &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Range:        requested,
		Context:      protocol.CodeActionContext{Only: only},
	})
	require.NoError(t, err)
	if result == nil {
		return nil
	}
	actions, ok := result.([]protocol.CodeAction)
	require.True(t, ok, "result should be []protocol.CodeAction")
	return actions
}

func collapsed(line, character protocol.UInteger) protocol.Range {
	p := protocol.Position{Line: line, Character: character}
	return protocol.Range{Start: p, End: p}
}

func TestCodeAction(t *testing.T) {
	const uri = "file:///styles.css"

	t.Run("offers a quick fix for the finding under the cursor", func(t *testing.T) {
		ctx := lintingContext(t, uri, ".card { margin: 16px; padding: 8px; }")

		actions := requestActions(t, ctx, uri, collapsed(0, 18), nil)
		require.Len(t, actions, 2)

		fix := actions[0]
		assert.Equal(t, `Replace "16px" with var(--space-4)`, fix.Title)
		require.NotNil(t, fix.Kind)
		assert.Equal(t, protocol.CodeActionKindQuickFix, *fix.Kind)
		require.NotNil(t, fix.IsPreferred)
		assert.True(t, *fix.IsPreferred)

		require.NotNil(t, fix.Edit)
		edits := fix.Edit.Changes[uri]
		require.Len(t, edits, 1)
		assert.Equal(t, protocol.Range{
			Start: protocol.Position{Line: 0, Character: 16},
			End:   protocol.Position{Line: 0, Character: 20},
		}, edits[0].Range)
		assert.Equal(t, "var(--space-4)", edits[0].NewText)

		require.Len(t, fix.Diagnostics, 1)
		require.NotNil(t, fix.Diagnostics[0].Code)
		assert.Equal(t, "token-exact-match", fix.Diagnostics[0].Code.Value)

		all := actions[1]
		require.NotNil(t, all.Kind)
		assert.Equal(t, FixAllKind, *all.Kind)
	})

	t.Run("cursor away from findings still offers the fix-all action", func(t *testing.T) {
		ctx := lintingContext(t, uri, ".card { margin: 16px; padding: 8px; }")

		actions := requestActions(t, ctx, uri, collapsed(0, 0), nil)
		require.Len(t, actions, 1)

		all := actions[0]
		assert.Equal(t, "Apply all design token fixes", all.Title)
		require.NotNil(t, all.Kind)
		assert.Equal(t, FixAllKind, *all.Kind)

		require.NotNil(t, all.Edit)
		edits := all.Edit.Changes[uri]
		require.Len(t, edits, 2)
		assert.Equal(t, "var(--space-4)", edits[0].NewText)
		assert.Equal(t, "var(--space-2)", edits[1].NewText)
	})

	t.Run("only quickfix filters out the fix-all action", func(t *testing.T) {
		ctx := lintingContext(t, uri, ".card { margin: 16px; padding: 8px; }")
		wholeLine := protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 38},
		}

		actions := requestActions(t, ctx, uri, wholeLine, []protocol.CodeActionKind{protocol.CodeActionKindQuickFix})
		require.Len(t, actions, 2)
		for _, action := range actions {
			require.NotNil(t, action.Kind)
			assert.Equal(t, protocol.CodeActionKindQuickFix, *action.Kind)
		}
	})

	t.Run("a request for source kinds includes fix-all", func(t *testing.T) {
		ctx := lintingContext(t, uri, ".card { margin: 16px; }")

		actions := requestActions(t, ctx, uri, collapsed(0, 18), []protocol.CodeActionKind{protocol.CodeActionKindSource})
		require.Len(t, actions, 1)
		require.NotNil(t, actions[0].Kind)
		assert.Equal(t, FixAllKind, *actions[0].Kind)
	})

	t.Run("close matches carry no quick fix", func(t *testing.T) {
		ctx := lintingContext(t, uri, ".card { margin: 17px; }")
		wholeLine := protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 23},
		}

		actions := requestActions(t, ctx, uri, wholeLine, nil)
		assert.Empty(t, actions)
	})

	t.Run("fallback mismatch fix restores the catalog value", func(t *testing.T) {
		ctx := lintingContext(t, uri, ".a { margin: var(--space-4, 15px); }")

		actions := requestActions(t, ctx, uri, collapsed(0, 30), nil)
		require.Len(t, actions, 2)

		fix := actions[0]
		assert.Equal(t, `Replace "15px" with 16px`, fix.Title)
		assert.Nil(t, fix.IsPreferred)

		require.NotNil(t, fix.Edit)
		edits := fix.Edit.Changes[uri]
		require.Len(t, edits, 1)
		assert.Equal(t, protocol.Range{
			Start: protocol.Position{Line: 0, Character: 28},
			End:   protocol.Position{Line: 0, Character: 32},
		}, edits[0].Range)
		assert.Equal(t, "16px", edits[0].NewText)
	})

	t.Run("unknown document yields nothing", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		actions := requestActions(t, ctx, "file:///missing.css", collapsed(0, 0), nil)
		assert.Nil(t, actions)
	})
}

func TestRangesIntersect(t *testing.T) {
	span := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 10},
		End:   protocol.Position{Line: 1, Character: 14},
	}

	tests := []struct {
		name string
		a    protocol.Range
		want bool
	}{
		{
			name: "collapsed cursor inside",
			a:    collapsed(1, 12),
			want: true,
		},
		{
			name: "collapsed cursor at span start",
			a:    collapsed(1, 10),
			want: false,
		},
		{
			name: "collapsed cursor at span end",
			a:    collapsed(1, 14),
			want: false,
		},
		{
			name: "selection overlapping the tail",
			a: protocol.Range{
				Start: protocol.Position{Line: 1, Character: 12},
				End:   protocol.Position{Line: 1, Character: 20},
			},
			want: true,
		},
		{
			name: "selection on another line",
			a: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: 0, Character: 40},
			},
			want: false,
		},
		{
			name: "multi-line selection spanning the span",
			a: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: 2, Character: 0},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RangesIntersect(tt.a, span))
			assert.Equal(t, tt.want, RangesIntersect(span, tt.a))
		})
	}
}
