package workspace

import (
	"errors"
	"testing"

	"bennypowers.dev/dtlint/lsp/testutil"
	"bennypowers.dev/dtlint/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDidChangeConfiguration(t *testing.T) {
	t.Run("applies new settings and reloads the catalog", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		require.NoError(t, ctx.DocumentManager().DidOpen("file:///a.css", "css", 1, ""))
		require.NoError(t, ctx.DocumentManager().DidOpen("file:///b.css", "css", 1, ""))
		req := types.NewRequestContext(ctx, nil)

		err := DidChangeConfiguration(req, &protocol.DidChangeConfigurationParams{
			Settings: map[string]any{
				"designTokensLint": map[string]any{
					"catalogPath":      "design/tokens.yaml",
					"tokenMatchMargin": 3,
				},
			},
		})
		require.NoError(t, err)

		config := ctx.GetConfig()
		assert.Equal(t, "design/tokens.yaml", config.CatalogPath)
		assert.Equal(t, 3.0, config.TokenMatchMargin)
		assert.True(t, ctx.ReloadCatalogCalled)
		assert.ElementsMatch(t, []string{"file:///a.css", "file:///b.css"}, ctx.PublishedURIs)
	})

	t.Run("bad settings keep the previous configuration", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		previous := ctx.GetConfig()
		previous.CatalogPath = "keep/me.json"
		ctx.SetConfig(previous)
		req := types.NewRequestContext(ctx, nil)

		err := DidChangeConfiguration(req, &protocol.DidChangeConfigurationParams{
			Settings: "not a map",
		})
		require.NoError(t, err)

		assert.Equal(t, "keep/me.json", ctx.GetConfig().CatalogPath)
		assert.True(t, req.HasWarnings())
		assert.False(t, ctx.ReloadCatalogCalled)
	})

	t.Run("reload failure is a warning, not an error", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		ctx.ReloadCatalogFunc = func() error { return errors.New("no such file") }
		require.NoError(t, ctx.DocumentManager().DidOpen("file:///a.css", "css", 1, ""))
		req := types.NewRequestContext(ctx, nil)

		err := DidChangeConfiguration(req, &protocol.DidChangeConfigurationParams{
			Settings: map[string]any{"designTokensLint": map[string]any{}},
		})
		require.NoError(t, err)

		assert.True(t, req.HasWarnings())
		// Findings still republish so the client sees the catalog notice.
		assert.Equal(t, []string{"file:///a.css"}, ctx.PublishedURIs)
	})
}
