package documents_test

import (
	"testing"

	"bennypowers.dev/dtlint/internal/documents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	t.Run("creates document with correct fields", func(t *testing.T) {
		doc := documents.NewDocument("file:///styles.css", "css", 1, ".card {}")

		assert.Equal(t, "file:///styles.css", doc.URI())
		assert.Equal(t, "css", doc.LanguageID())
		assert.Equal(t, 1, doc.Version())
		assert.Equal(t, ".card {}", doc.Content())
		assert.Empty(t, doc.Diagnostics())
	})

	t.Run("handles empty content", func(t *testing.T) {
		doc := documents.NewDocument("file:///empty.css", "css", 0, "")

		assert.Equal(t, "", doc.Content())
		assert.Equal(t, 0, doc.Version())
	})
}

func TestDocument_SetContent(t *testing.T) {
	t.Run("accepts newer version", func(t *testing.T) {
		doc := documents.NewDocument("file:///styles.css", "css", 1, "margin: 17px;")

		err := doc.SetContent("margin: 16px;", 2)
		require.NoError(t, err)
		assert.Equal(t, "margin: 16px;", doc.Content())
		assert.Equal(t, 2, doc.Version())
	})

	t.Run("accepts same version", func(t *testing.T) {
		doc := documents.NewDocument("file:///styles.css", "css", 1, "margin: 17px;")

		err := doc.SetContent("margin: 16px;", 1)
		require.NoError(t, err)
		assert.Equal(t, "margin: 16px;", doc.Content())
		assert.Equal(t, 1, doc.Version())
	})

	t.Run("rejects stale update", func(t *testing.T) {
		doc := documents.NewDocument("file:///styles.css", "css", 5, "margin: 16px;")

		err := doc.SetContent("margin: 17px;", 3)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "stale")
		// Content should remain unchanged
		assert.Equal(t, "margin: 16px;", doc.Content())
		assert.Equal(t, 5, doc.Version())
	})

	t.Run("error message includes version numbers", func(t *testing.T) {
		doc := documents.NewDocument("file:///styles.css", "css", 10, "margin: 16px;")

		err := doc.SetContent("margin: 17px;", 5)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "10")
		assert.Contains(t, err.Error(), "5")
	})
}
