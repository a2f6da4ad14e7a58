package value

import "strings"

// Stringify serializes nodes back to value text. With unmodified nodes
// the result is byte-identical to the parsed input; after editing a
// node's Value only that node's text changes.
func Stringify(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		stringifyNode(&sb, n)
	}
	return sb.String()
}

func stringifyNode(sb *strings.Builder, n *Node) {
	switch n.Kind {
	case Function:
		sb.WriteString(n.Value)
		sb.WriteByte('(')
		for _, c := range n.Nodes {
			stringifyNode(sb, c)
		}
		if !n.Unclosed {
			sb.WriteByte(')')
		}
	case String:
		sb.WriteByte(n.Quote)
		sb.WriteString(n.Value)
		if !n.Unclosed {
			sb.WriteByte(n.Quote)
		}
	default:
		sb.WriteString(n.Value)
	}
}
