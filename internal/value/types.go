// Package value tokenizes a single CSS declaration value into a tree of
// typed nodes with source offsets, and serializes the tree back to text.
//
// The node kinds form a closed set. Matching only ever acts on Word
// nodes; everything else exists so that Stringify reproduces the input
// byte for byte, which is what makes in-place fixes safe.
package value

// Kind classifies a value node.
type Kind int

const (
	// Word is a run of plain literal text ("16px", "auto", "!important").
	Word Kind = iota
	// Function is a name followed by a parenthesized argument list.
	Function
	// String is a single- or double-quoted string.
	String
	// Space is a run of whitespace.
	Space
	// Div is a value separator, "," or "/".
	Div
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Function:
		return "function"
	case String:
		return "string"
	case Space:
		return "space"
	case Div:
		return "div"
	}
	return "unknown"
}

// Node is one unit of a parsed value.
//
// SourceIndex is the byte offset of the node within the parsed value
// string, absolute even for nodes nested inside functions. Value holds
// the literal text for Word, Space and Div nodes, the name for Function
// nodes, and the unquoted content for String nodes.
type Node struct {
	Kind        Kind
	Value       string
	SourceIndex int
	// Nodes holds a Function's arguments, separators included.
	Nodes []*Node
	// Quote is the delimiter byte of a String node.
	Quote byte
	// Unclosed marks a Function missing its ")" or a String missing its
	// closing quote; Stringify omits the closer to preserve round-trips.
	Unclosed bool
}
