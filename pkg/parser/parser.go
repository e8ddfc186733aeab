// Package parser wraps tree-sitter parsing of Rust source files.
package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// Parser wraps a tree-sitter parser configured for the Rust grammar.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains the parsed syntax tree and its source.
type ParseResult struct {
	Tree   *sitter.Tree
	Source []byte
	Path   string
}

// ParseError is a structured parse failure for one source unit.
type ParseError struct {
	Path string
	Line uint32
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// New creates a new parser instance.
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(rust.GetLanguage())
	return &Parser{parser: p}
}

// IsRustFile reports whether the path names a Rust source file.
func IsRustFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".rs"
}

// ParseFile reads and parses a Rust source file.
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if !IsRustFile(path) {
		return nil, &ParseError{Path: path, Msg: "not a Rust source file"}
	}
	return p.Parse(source, path)
}

// Parse parses Rust source text. Malformed input yields a *ParseError
// carrying the location of the first syntax error; the caller is expected
// to log it and skip the unit.
func (p *Parser) Parse(source []byte, path string) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstErrorNode(root); bad != nil {
			return nil, &ParseError{
				Path: path,
				Line: bad.StartPoint().Row + 1,
				Msg:  "syntax error",
			}
		}
		return nil, &ParseError{Path: path, Msg: "syntax error"}
	}

	return &ParseResult{Tree: tree, Source: source, Path: path}, nil
}

// firstErrorNode finds the first ERROR or MISSING node in the tree.
func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := firstErrorNode(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// GetNodeText returns the source text covered by a node.
func GetNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(source)
}

// NodeVisitor is a function that visits syntax tree nodes. Returning false
// stops descent into the node's children.
type NodeVisitor func(node *sitter.Node, source []byte) bool

// Walk traverses the tree calling visitor for each node.
func Walk(node *sitter.Node, source []byte, visitor NodeVisitor) {
	if node == nil {
		return
	}
	if !visitor(node, source) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		Walk(node.Child(i), source, visitor)
	}
}

// NamedChildren returns the named children of a node.
func NamedChildren(node *sitter.Node) []*sitter.Node {
	n := int(node.NamedChildCount())
	children := make([]*sitter.Node, 0, n)
	for i := 0; i < n; i++ {
		children = append(children, node.NamedChild(i))
	}
	return children
}
