package value

// Parse tokenizes a declaration value. Every byte of the input lands in
// exactly one node, so Stringify(Parse(v)) == v for any v.
func Parse(input string) []*Node {
	p := parser{input: input}
	nodes, _ := p.parseNodes(0, false)
	return nodes
}

type parser struct {
	input string
}

// parseNodes scans from i until end of input, or until an unconsumed ")"
// when inFunction is set. Returns the nodes and the next unread index.
func (p *parser) parseNodes(i int, inFunction bool) ([]*Node, int) {
	nodes := []*Node{}
	for i < len(p.input) {
		c := p.input[i]
		switch {
		case c == ')' && inFunction:
			return nodes, i
		case isSpace(c):
			j := i + 1
			for j < len(p.input) && isSpace(p.input[j]) {
				j++
			}
			nodes = append(nodes, &Node{Kind: Space, Value: p.input[i:j], SourceIndex: i})
			i = j
		case c == ',' || c == '/':
			nodes = append(nodes, &Node{Kind: Div, Value: string(c), SourceIndex: i})
			i++
		case c == '"' || c == '\'':
			node, j := p.parseString(i)
			nodes = append(nodes, node)
			i = j
		case c == '(':
			// bare parenthesized group, a function with an empty name
			node, j := p.parseFunction("", i, i)
			nodes = append(nodes, node)
			i = j
		default:
			j := i + 1
			for j < len(p.input) && !isStop(p.input[j]) {
				j++
			}
			word := p.input[i:j]
			if j < len(p.input) && p.input[j] == '(' {
				node, k := p.parseFunction(word, i, j)
				nodes = append(nodes, node)
				i = k
			} else {
				nodes = append(nodes, &Node{Kind: Word, Value: word, SourceIndex: i})
				i = j
			}
		}
	}
	return nodes, i
}

// parseFunction parses a function whose name starts at start and whose
// "(" sits at open. An unterminated argument list consumes to end of
// input and marks the node Unclosed.
func (p *parser) parseFunction(name string, start, open int) (*Node, int) {
	children, j := p.parseNodes(open+1, true)
	node := &Node{Kind: Function, Value: name, SourceIndex: start, Nodes: children}
	if j < len(p.input) && p.input[j] == ')' {
		j++
	} else {
		node.Unclosed = true
	}
	return node, j
}

// parseString parses a quoted string starting at the quote byte.
// Backslash escapes are carried through verbatim.
func (p *parser) parseString(i int) (*Node, int) {
	quote := p.input[i]
	j := i + 1
	for j < len(p.input) {
		if p.input[j] == '\\' && j+1 < len(p.input) {
			j += 2
			continue
		}
		if p.input[j] == quote {
			return &Node{Kind: String, Value: p.input[i+1 : j], SourceIndex: i, Quote: quote}, j + 1
		}
		j++
	}
	return &Node{Kind: String, Value: p.input[i+1:], SourceIndex: i, Quote: quote, Unclosed: true}, j
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isStop(c byte) bool {
	return isSpace(c) || c == ',' || c == '/' || c == '(' || c == ')' || c == '"' || c == '\''
}
