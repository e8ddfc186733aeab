package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxidelab/ferrolens/pkg/parser"
)

// bodyComplexity computes the cyclomatic complexity of a function body:
// one base path plus one per branching construct, counted by structural
// recursion so nested constructs contribute wherever they appear.
func bodyComplexity(block *sitter.Node) int {
	c := 1
	for _, stmt := range parser.NamedChildren(block) {
		c += stmtComplexity(stmt)
	}
	return c
}

func stmtComplexity(node *sitter.Node) int {
	switch node.Type() {
	case "let_declaration":
		if value := node.ChildByFieldName("value"); value != nil {
			return exprComplexity(value)
		}
		return 0
	case "expression_statement":
		if inner := node.NamedChild(0); inner != nil {
			return exprComplexity(inner)
		}
		return 0
	default:
		return exprComplexity(node)
	}
}

// exprComplexity returns the branch count contributed by one expression.
// An if adds one for its condition-bearing branch point; while, for and
// loop each add one; match adds a flat one regardless of arm count. The
// else clause contributes only through recursion, so a chained else-if is
// never double-counted. Blocks accumulate their statements without adding
// anything themselves; unmatched shapes contribute zero.
func exprComplexity(node *sitter.Node) int {
	switch node.Type() {
	case "if_expression":
		c := 1
		if cond := node.ChildByFieldName("condition"); cond != nil {
			c += exprComplexity(cond)
		}
		if cons := node.ChildByFieldName("consequence"); cons != nil {
			c += blockComplexity(cons)
		}
		if alt := node.ChildByFieldName("alternative"); alt != nil {
			if inner := alt.NamedChild(0); inner != nil {
				c += exprComplexity(inner)
			}
		}
		return c

	case "while_expression", "while_let_expression":
		c := 1
		if cond := node.ChildByFieldName("condition"); cond != nil {
			c += exprComplexity(cond)
		}
		if body := node.ChildByFieldName("body"); body != nil {
			c += blockComplexity(body)
		}
		return c

	case "for_expression":
		c := 1
		if value := node.ChildByFieldName("value"); value != nil {
			c += exprComplexity(value)
		}
		if body := node.ChildByFieldName("body"); body != nil {
			c += blockComplexity(body)
		}
		return c

	case "loop_expression":
		c := 1
		if body := node.ChildByFieldName("body"); body != nil {
			c += blockComplexity(body)
		}
		return c

	case "match_expression":
		c := 1
		if body := node.ChildByFieldName("body"); body != nil {
			for _, arm := range parser.NamedChildren(body) {
				if arm.Type() != "match_arm" {
					continue
				}
				if value := arm.ChildByFieldName("value"); value != nil {
					c += exprComplexity(value)
				}
			}
		}
		return c

	case "block":
		return blockComplexity(node)

	default:
		return 0
	}
}

func blockComplexity(block *sitter.Node) int {
	c := 0
	for _, stmt := range parser.NamedChildren(block) {
		c += stmtComplexity(stmt)
	}
	return c
}
