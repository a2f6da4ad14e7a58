// Package css extracts declarations from stylesheets using tree-sitter.
package css

import (
	"fmt"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser handles parsing CSS with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool is a pool of reusable CSS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return &Parser{parser: parser}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// Declarations extracts every declaration in the stylesheet, nested
// rules included, in document order.
func (p *Parser) Declarations(source string) []Declaration {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	var decls []Declaration
	collectDeclarations(tree.RootNode(), sourceBytes, &decls)
	return decls
}

// InlineDeclarations parses bare declaration text, as found in a style
// attribute. The text is wrapped in a synthetic rule to make it a valid
// stylesheet; returned offsets index the bare text again.
func (p *Parser) InlineDeclarations(source string) []Declaration {
	decls := p.Declarations("x{" + source + "}")
	for i := range decls {
		decls[i].StartOffset -= 2
		decls[i].ValueOffset -= 2
	}
	return decls
}

// collectDeclarations recursively walks the tree collecting declaration nodes
func collectDeclarations(node *sitter.Node, source []byte, decls *[]Declaration) {
	if node == nil {
		return
	}

	if node.Kind() == "declaration" {
		if d, ok := extractDeclaration(node, source); ok {
			*decls = append(*decls, d)
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		collectDeclarations(node.Child(i), source, decls)
	}
}

// extractDeclaration reads the property name and the value span out of
// a declaration node. The value span runs from the first to the last
// named value child, so interior separators and whitespace come along
// verbatim.
func extractDeclaration(node *sitter.Node, source []byte) (Declaration, bool) {
	var propertyNode *sitter.Node
	valueStart, valueEnd := -1, -1
	important := false

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if !child.IsNamed() {
			continue
		}
		switch child.Kind() {
		case "property_name":
			propertyNode = child
		case "important":
			important = true
		default:
			if valueStart < 0 {
				valueStart = int(child.StartByte())
			}
			valueEnd = int(child.EndByte())
		}
	}

	if propertyNode == nil || valueStart < 0 {
		return Declaration{}, false
	}

	propStart := int(propertyNode.StartByte())
	propEnd := int(propertyNode.EndByte())
	return Declaration{
		Property:    string(source[propStart:propEnd]),
		Between:     string(source[propEnd:valueStart]),
		Value:       string(source[valueStart:valueEnd]),
		Important:   important,
		StartOffset: propStart,
		ValueOffset: valueStart,
	}, true
}
