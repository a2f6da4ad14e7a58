package html

// Region is a slice of CSS embedded in an HTML document.
//
// Offset is the byte offset of Text within the HTML source, so
// diagnostics computed against Text map back to the host file by
// adding it. Inline regions hold bare declarations from a style
// attribute rather than a full stylesheet.
type Region struct {
	Text   string
	Offset int
	Inline bool
}
