package value

// Walk visits nodes depth-first. fn's return controls descent: returning
// false for a Function node skips its arguments, in the manner of
// ast.Inspect. The return is ignored for leaf kinds.
func Walk(nodes []*Node, fn func(*Node) bool) {
	for _, n := range nodes {
		if fn(n) && n.Kind == Function {
			Walk(n.Nodes, fn)
		}
	}
}
