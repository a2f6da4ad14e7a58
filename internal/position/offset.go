package position

import "strings"

// Position is a zero-based line and UTF-16 character pair, the shape
// protocol positions take.
type Position struct {
	Line      int
	Character int
}

// FromByteOffset converts a byte offset into content to a Position.
// Offsets out of range clamp to the nearest document edge.
func FromByteOffset(content string, offset int) Position {
	offset = clampOffset(content, offset)
	before := content[:offset]
	line := strings.Count(before, "\n")
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return Position{
		Line:      line,
		Character: ByteOffsetToUTF16(content[lineStart:], offset-lineStart),
	}
}

// LineColumn converts a byte offset into content to one-based line and
// column numbers for human-readable reports. Columns count bytes, the
// way compiler positions do.
func LineColumn(content string, offset int) (line, col int) {
	offset = clampOffset(content, offset)
	before := content[:offset]
	line = strings.Count(before, "\n") + 1
	col = offset - strings.LastIndexByte(before, '\n')
	return line, col
}

func clampOffset(content string, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(content) {
		return len(content)
	}
	return offset
}
