package extractor

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxidelab/ferrolens/pkg/models"
	"github.com/oxidelab/ferrolens/pkg/parser"
)

// funcScan accumulates the signal gathered from one function body: which
// of the owner's fields are read through self, and which external type
// names the body references.
type funcScan struct {
	owner    *models.TypeRecord
	source   []byte
	fields   map[string]bool
	external map[string]bool
}

// analyzeFunction produces the method record for one function_item inside
// an inherent impl block.
func analyzeFunction(fn *sitter.Node, owner *models.TypeRecord, source []byte) models.Method {
	m := models.Method{
		Name:       parser.GetNodeText(fn.ChildByFieldName("name"), source),
		Complexity: 1,
	}

	body := fn.ChildByFieldName("body")
	if body == nil {
		return m
	}

	scan := &funcScan{
		owner:    owner,
		source:   source,
		fields:   make(map[string]bool),
		external: make(map[string]bool),
	}
	scan.block(body)

	m.FieldsAccessed = sortedKeys(scan.fields)
	m.ExternalTypes = sortedKeys(scan.external)
	m.Complexity = bodyComplexity(body)
	return m
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *funcScan) block(block *sitter.Node) {
	for _, stmt := range parser.NamedChildren(block) {
		s.stmt(stmt)
	}
}

func (s *funcScan) stmt(node *sitter.Node) {
	switch node.Type() {
	case "let_declaration":
		if value := node.ChildByFieldName("value"); value != nil {
			s.expr(value)
		}
	case "expression_statement":
		if inner := node.NamedChild(0); inner != nil {
			s.expr(inner)
		}
	default:
		// A block's trailing expression appears without a statement
		// wrapper.
		s.expr(node)
	}
}

// expr recursively matches the closed set of expression shapes the
// analyzer understands. Unmatched shapes contribute no signal.
func (s *funcScan) expr(node *sitter.Node) {
	switch node.Type() {
	case "field_expression":
		value := node.ChildByFieldName("value")
		field := node.ChildByFieldName("field")
		if value != nil && value.Type() == "self" && field != nil {
			name := parser.GetNodeText(field, s.source)
			if s.owner.HasField(name) {
				s.fields[name] = true
			}
		}

	case "call_expression":
		if fn := node.ChildByFieldName("function"); fn != nil {
			if fn.Type() == "field_expression" {
				// Method call: recurse into the receiver chain but do
				// not treat the method name as a field read.
				if recv := fn.ChildByFieldName("value"); recv != nil {
					s.expr(recv)
				}
			} else {
				s.expr(fn)
			}
		}
		if args := node.ChildByFieldName("arguments"); args != nil {
			for _, arg := range parser.NamedChildren(args) {
				s.expr(arg)
			}
		}

	case "binary_expression":
		if left := node.ChildByFieldName("left"); left != nil {
			s.expr(left)
		}
		if right := node.ChildByFieldName("right"); right != nil {
			s.expr(right)
		}

	case "unary_expression":
		if inner := node.NamedChild(0); inner != nil {
			s.expr(inner)
		}

	case "reference_expression":
		if value := node.ChildByFieldName("value"); value != nil {
			s.expr(value)
		}

	case "block":
		s.block(node)

	case "if_expression":
		if cond := node.ChildByFieldName("condition"); cond != nil {
			s.expr(cond)
		}
		if cons := node.ChildByFieldName("consequence"); cons != nil {
			s.block(cons)
		}
		if alt := node.ChildByFieldName("alternative"); alt != nil {
			// else_clause wraps either a block or a chained if.
			if inner := alt.NamedChild(0); inner != nil {
				s.expr(inner)
			}
		}

	case "while_expression", "while_let_expression":
		if cond := node.ChildByFieldName("condition"); cond != nil {
			s.expr(cond)
		}
		if body := node.ChildByFieldName("body"); body != nil {
			s.block(body)
		}

	case "for_expression":
		if value := node.ChildByFieldName("value"); value != nil {
			s.expr(value)
		}
		if body := node.ChildByFieldName("body"); body != nil {
			s.block(body)
		}

	case "loop_expression":
		if body := node.ChildByFieldName("body"); body != nil {
			s.block(body)
		}

	case "match_expression":
		if value := node.ChildByFieldName("value"); value != nil {
			s.expr(value)
		}
		s.matchArms(node)

	case "struct_expression":
		s.structLiteral(node)

	case "scoped_identifier", "scoped_type_identifier":
		s.qualifiedPath(node)
	}
}

func (s *funcScan) matchArms(match *sitter.Node) {
	body := match.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, arm := range parser.NamedChildren(body) {
		if arm.Type() != "match_arm" {
			continue
		}
		if pat := arm.ChildByFieldName("pattern"); pat != nil {
			if guard := pat.ChildByFieldName("condition"); guard != nil {
				s.expr(guard)
			}
		}
		if value := arm.ChildByFieldName("value"); value != nil {
			s.expr(value)
		}
	}
}

// structLiteral records the constructed type as an external reference
// unless its name contains one of the owner's field names, then recurses
// into every field initializer. The containment check is a deliberate
// heuristic, not type resolution.
func (s *funcScan) structLiteral(node *sitter.Node) {
	if name := node.ChildByFieldName("name"); name != nil {
		text := parser.GetNodeText(name, s.source)
		contained := false
		for _, f := range s.owner.Fields {
			if strings.Contains(text, f.Name) {
				contained = true
				break
			}
		}
		if !contained {
			s.external[text] = true
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, init := range parser.NamedChildren(body) {
		switch init.Type() {
		case "field_initializer":
			if value := init.ChildByFieldName("value"); value != nil {
				s.expr(value)
			}
		case "shorthand_field_initializer", "base_field_initializer":
			if inner := init.NamedChild(0); inner != nil {
				s.expr(inner)
			}
		}
	}
}

// qualifiedPath records paths like Foo::bar as external references unless
// they are rooted at the receiver or the current crate.
func (s *funcScan) qualifiedPath(node *sitter.Node) {
	text := parser.GetNodeText(node, s.source)
	if !strings.Contains(text, "::") {
		return
	}
	if strings.HasPrefix(text, "self") || strings.HasPrefix(text, "crate") {
		return
	}
	s.external[text] = true
}
