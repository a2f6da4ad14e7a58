// Package js extracts embedded CSS regions from JS and TS sources:
// css`...` tagged template literals, plus <style> content inside
// html`...` templates.
package js

import (
	"fmt"
	"sort"
	"sync"

	"bennypowers.dev/dtlint/internal/parser/html"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// Parser handles parsing JS/TS to extract CSS from tagged template literals
type Parser struct {
	parser        *sitter.Parser
	templateQuery *sitter.Query
	genericQuery  *sitter.Query // matches css<Type>`...` (generic form parsed by JS grammar as binary_expression)
}

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

// parserPool is a pool of reusable JS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}

		templateQuery, qerr := sitter.NewQuery(jsLang, `
			(call_expression
				function: (identifier) @tag
				arguments: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile template query: %v", qerr))
		}

		// Generic form: css<Type>`...` is valid TypeScript (since TS 2.9) but both
		// tree-sitter-javascript and tree-sitter-typescript misparse it as binary
		// expressions instead of a call_expression with type_arguments.
		// See: https://github.com/tree-sitter/tree-sitter-typescript/issues/341
		genericQuery, qerr := sitter.NewQuery(jsLang, `
			(binary_expression
				left: (binary_expression
					left: (identifier) @tag)
				right: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile generic query: %v", qerr))
		}

		return &Parser{
			parser:        parser,
			templateQuery: templateQuery,
			genericQuery:  genericQuery,
		}
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
	if p.templateQuery != nil {
		p.templateQuery.Close()
	}
	if p.genericQuery != nil {
		p.genericQuery.Close()
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

// Regions extracts embedded CSS regions with byte offsets into the
// JS/TS source. A ${...} interpolation splits its template into
// separate regions, so declarations broken across an interpolation are
// simply not seen.
func (p *Parser) Regions(source string) []html.Region {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	var regions []html.Region

	// Run both queries: standard tagged templates and generic form
	for _, query := range []*sitter.Query{p.templateQuery, p.genericQuery} {
		regions = p.runTemplateQuery(query, root, sourceBytes, regions)
	}

	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Offset < regions[j].Offset
	})
	return regions
}

// runTemplateQuery executes one tree-sitter query against the parsed
// tree, appending regions for css and html tagged templates.
func (p *Parser) runTemplateQuery(query *sitter.Query, root *sitter.Node, sourceBytes []byte, regions []html.Region) []html.Region {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(query, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var tagName string
		var templateNode sitter.Node
		foundTemplate := false

		for _, capture := range match.Captures {
			captureName := query.CaptureNames()[capture.Index]
			switch captureName {
			case "tag":
				tagName = string(sourceBytes[capture.Node.StartByte():capture.Node.EndByte()])
			case "template":
				templateNode = capture.Node
				foundTemplate = true
			}
		}

		if !foundTemplate {
			continue
		}

		switch tagName {
		case "css":
			for _, seg := range extractSegments(&templateNode, sourceBytes) {
				regions = append(regions, html.Region{Text: seg.text, Offset: seg.offset})
			}
		case "html":
			regions = append(regions, nestedHTMLRegions(&templateNode, sourceBytes)...)
		}
	}

	return regions
}

// segment is one literal run of a template string, between ${...}
// expression boundaries
type segment struct {
	text   string
	offset int
}

// extractSegments splits a template_string node into literal text
// segments (string_fragment nodes), skipping ${...} substitutions
func extractSegments(templateNode *sitter.Node, sourceBytes []byte) []segment {
	var segments []segment

	for i := uint(0); i < templateNode.ChildCount(); i++ {
		child := templateNode.Child(i)
		if child.Kind() == "string_fragment" {
			segments = append(segments, segment{
				text:   string(sourceBytes[child.StartByte():child.EndByte()]),
				offset: int(child.StartByte()),
			})
		}
	}

	return segments
}

// nestedHTMLRegions parses the fragments of an html template as HTML
// and lifts the style regions inside to absolute offsets.
func nestedHTMLRegions(templateNode *sitter.Node, sourceBytes []byte) []html.Region {
	htmlParser := html.AcquireParser()
	defer html.ReleaseParser(htmlParser)

	var regions []html.Region
	for _, seg := range extractSegments(templateNode, sourceBytes) {
		for _, r := range htmlParser.Regions(seg.text) {
			r.Offset += seg.offset
			regions = append(regions, r)
		}
	}
	return regions
}
