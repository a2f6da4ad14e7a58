package html_test

import (
	"strings"
	"testing"

	"bennypowers.dev/dtlint/internal/parser/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegions(t *testing.T) {
	parser := html.AcquireParser()
	defer html.ReleaseParser(parser)

	t.Run("style element", func(t *testing.T) {
		source := `<html><head><style>.a { margin: 16px; }</style></head></html>`
		regions := parser.Regions(source)
		require.Len(t, regions, 1)

		r := regions[0]
		assert.Equal(t, ".a { margin: 16px; }", r.Text)
		assert.False(t, r.Inline)
		assert.Equal(t, strings.Index(source, ".a {"), r.Offset)
		assert.Equal(t, r.Text, source[r.Offset:r.Offset+len(r.Text)])
	})

	t.Run("style attribute", func(t *testing.T) {
		source := `<div style="margin: 16px"></div>`
		regions := parser.Regions(source)
		require.Len(t, regions, 1)

		r := regions[0]
		assert.Equal(t, "margin: 16px", r.Text)
		assert.True(t, r.Inline)
		assert.Equal(t, strings.Index(source, "margin"), r.Offset)
	})

	t.Run("single quoted style attribute", func(t *testing.T) {
		source := `<div style='padding: 8px'></div>`
		regions := parser.Regions(source)
		require.Len(t, regions, 1)
		assert.Equal(t, "padding: 8px", regions[0].Text)
		assert.True(t, regions[0].Inline)
	})

	t.Run("multiple regions in document order", func(t *testing.T) {
		source := `<html>
<head>
  <style>.a { margin: 16px; }</style>
</head>
<body>
  <div style="gap: 8px"></div>
  <style>.b { padding: 4px; }</style>
</body>
</html>`
		regions := parser.Regions(source)
		require.Len(t, regions, 3)
		assert.False(t, regions[0].Inline)
		assert.Contains(t, regions[0].Text, "margin: 16px")
		assert.True(t, regions[1].Inline)
		assert.Equal(t, "gap: 8px", regions[1].Text)
		assert.False(t, regions[2].Inline)
		assert.Contains(t, regions[2].Text, "padding: 4px")
		assert.Less(t, regions[0].Offset, regions[1].Offset)
		assert.Less(t, regions[1].Offset, regions[2].Offset)
	})

	t.Run("multiline style content keeps offsets", func(t *testing.T) {
		source := "<style>\n.a {\n  margin: 16px;\n}\n</style>"
		regions := parser.Regions(source)
		require.Len(t, regions, 1)
		assert.Equal(t, regions[0].Text, source[regions[0].Offset:regions[0].Offset+len(regions[0].Text)])
	})

	t.Run("other attributes are ignored", func(t *testing.T) {
		source := `<div class="margin: 16px" data-style="gap: 8px"></div>`
		assert.Empty(t, parser.Regions(source))
	})

	t.Run("no styles", func(t *testing.T) {
		assert.Empty(t, parser.Regions(`<p>hello</p>`))
	})
}
