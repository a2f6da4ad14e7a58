package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/dtlint/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseJSON(t *testing.T) {
	t.Run("well-formed catalog", func(t *testing.T) {
		cat, err := catalog.Parse([]byte(`{
			"spacing": {
				"properties": ["margin", "padding"],
				"tokens": { "16px": "var(--space-4)", "0": "var(--space-0)" }
			}
		}`), ".json")
		require.NoError(t, err)
		require.Len(t, cat, 1)
		assert.Equal(t, []string{"margin", "padding"}, cat["spacing"].Properties)
		assert.Equal(t, "var(--space-4)", cat["spacing"].Tokens["16px"])
	})

	t.Run("jsonc comments and trailing commas", func(t *testing.T) {
		cat, err := catalog.Parse([]byte(`{
			// spacing scale
			"spacing": {
				"properties": ["margin"],
				"tokens": { "8px": "var(--space-2)", },
			},
		}`), ".jsonc")
		require.NoError(t, err)
		assert.Equal(t, "var(--space-2)", cat["spacing"].Tokens["8px"])
	})

	t.Run("empty object is a valid empty catalog", func(t *testing.T) {
		cat, err := catalog.Parse([]byte(`{}`), ".json")
		require.NoError(t, err)
		assert.Empty(t, cat)
	})

	t.Run("null top level is malformed", func(t *testing.T) {
		_, err := catalog.Parse([]byte(`null`), ".json")
		assert.ErrorIs(t, err, catalog.ErrCatalogMalformed)
	})

	t.Run("array top level is malformed", func(t *testing.T) {
		_, err := catalog.Parse([]byte(`[]`), ".json")
		assert.ErrorIs(t, err, catalog.ErrCatalogMalformed)
	})

	t.Run("invalid syntax is malformed", func(t *testing.T) {
		_, err := catalog.Parse([]byte(`{"spacing":`), ".json")
		assert.ErrorIs(t, err, catalog.ErrCatalogMalformed)
	})
}

func TestParseYAML(t *testing.T) {
	t.Run("well-formed catalog", func(t *testing.T) {
		cat, err := catalog.Parse([]byte(`
spacing:
  properties: [margin, gap]
  tokens:
    16px: var(--space-4)
    "0": var(--space-0)
`), ".yaml")
		require.NoError(t, err)
		assert.Equal(t, []string{"margin", "gap"}, cat["spacing"].Properties)
		assert.Equal(t, "var(--space-0)", cat["spacing"].Tokens["0"])
	})

	t.Run("scalar top level is malformed", func(t *testing.T) {
		_, err := catalog.Parse([]byte(`just a string`), ".yml")
		assert.ErrorIs(t, err, catalog.ErrCatalogMalformed)
	})
}

func TestValidation(t *testing.T) {
	t.Run("missing tokens rejects the whole catalog", func(t *testing.T) {
		_, err := catalog.Parse([]byte(`{
			"valid": { "properties": ["margin"], "tokens": {} },
			"broken": { "properties": ["padding"] }
		}`), ".json")
		require.Error(t, err)
		assert.ErrorIs(t, err, catalog.ErrCatalogMalformed)

		var shapeErr *catalog.ShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, "broken", shapeErr.Category)
		assert.Equal(t, "tokens", shapeErr.Missing)
	})

	t.Run("missing properties rejects the whole catalog", func(t *testing.T) {
		_, err := catalog.Parse([]byte(`{
			"broken": { "tokens": { "16px": "var(--a)" } }
		}`), ".json")
		var shapeErr *catalog.ShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, "properties", shapeErr.Missing)
	})

	t.Run("empty properties and tokens pass the shape check", func(t *testing.T) {
		cat, err := catalog.Parse([]byte(`{
			"sparse": { "properties": [], "tokens": {} }
		}`), ".json")
		require.NoError(t, err)
		assert.Len(t, cat, 1)
	})

	t.Run("non-numeric token keys are permitted", func(t *testing.T) {
		cat, err := catalog.Parse([]byte(`{
			"color": {
				"properties": ["color"],
				"tokens": { "#ff0000": "var(--red)" }
			}
		}`), ".json")
		require.NoError(t, err)
		assert.Equal(t, "var(--red)", cat["color"].Tokens["#ff0000"])
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads json file", func(t *testing.T) {
		path := writeCatalogFile(t, "tokens.json", `{
			"spacing": { "properties": ["margin"], "tokens": { "16px": "var(--s-4)" } }
		}`)
		cat, err := catalog.Load(path)
		require.NoError(t, err)
		assert.Len(t, cat, 1)
	})

	t.Run("loads yaml file", func(t *testing.T) {
		path := writeCatalogFile(t, "tokens.yaml", `
spacing:
  properties: [margin]
  tokens:
    16px: var(--s-4)
`)
		cat, err := catalog.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "var(--s-4)", cat["spacing"].Tokens["16px"])
	})

	t.Run("missing file is unreadable", func(t *testing.T) {
		_, err := catalog.Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, catalog.ErrCatalogUnreadable)
	})
}

func TestCategoryHelpers(t *testing.T) {
	cat := catalog.TokenCatalog{
		"spacing": {
			Properties: []string{"margin", "padding"},
			Tokens:     map[string]string{"16px": "var(--space-4)"},
		},
		"radius": {
			Properties: []string{"border-radius"},
			Tokens:     map[string]string{"4px": "--radius-sm"},
		},
	}

	t.Run("AppliesTo", func(t *testing.T) {
		assert.True(t, cat["spacing"].AppliesTo("margin"))
		assert.False(t, cat["spacing"].AppliesTo("border-radius"))
	})

	t.Run("Names are sorted", func(t *testing.T) {
		assert.Equal(t, []string{"radius", "spacing"}, cat.Names())
	})

	t.Run("LookupName matches wrapped names", func(t *testing.T) {
		raw, ok := cat.LookupName("--space-4")
		require.True(t, ok)
		assert.Equal(t, "16px", raw)
	})

	t.Run("LookupName matches bare names", func(t *testing.T) {
		raw, ok := cat.LookupName("--radius-sm")
		require.True(t, ok)
		assert.Equal(t, "4px", raw)
	})

	t.Run("LookupName miss", func(t *testing.T) {
		_, ok := cat.LookupName("--unknown")
		assert.False(t, ok)
	})
}

func TestDiscover(t *testing.T) {
	t.Run("finds a well-known name", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tokens.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

		found, ok := catalog.Discover(dir)
		require.True(t, ok)
		assert.Equal(t, path, found)
	})

	t.Run("probe order is fixed", func(t *testing.T) {
		dir := t.TempDir()
		jsonPath := filepath.Join(dir, "tokens.json")
		require.NoError(t, os.WriteFile(jsonPath, []byte("{}"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "tokens.yaml"), []byte("{}"), 0o644))

		found, ok := catalog.Discover(dir)
		require.True(t, ok)
		assert.Equal(t, jsonPath, found, "tokens.json should win over tokens.yaml")
	})

	t.Run("directories do not count", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "tokens.json"), 0o755))

		_, ok := catalog.Discover(dir)
		assert.False(t, ok)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, ok := catalog.Discover(t.TempDir())
		assert.False(t, ok)
	})
}
