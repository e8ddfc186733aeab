// Package extractor builds the structural model of Rust types from a
// parsed syntax tree: struct declarations, their fields, and the functions
// attached through impl blocks.
package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxidelab/ferrolens/pkg/models"
	"github.com/oxidelab/ferrolens/pkg/parser"
)

// Extract walks the tree twice and returns the type records declared at
// the top level of the source unit, in declaration order.
//
// Pass 1 collects struct declarations and their named fields. Pass 2
// attaches impl blocks by self-type name: trait impls record the trait
// name only, inherent impls contribute analyzed methods. Impl blocks whose
// self-type matches no known struct are ignored; that is expected when the
// struct lives in a file that failed to parse.
func Extract(result *parser.ParseResult) []models.TypeRecord {
	root := result.Tree.RootNode()
	source := result.Source

	var records []models.TypeRecord

	for _, item := range parser.NamedChildren(root) {
		if item.Type() == "struct_item" {
			records = append(records, extractStruct(item, source, result.Path))
		}
	}

	for _, item := range parser.NamedChildren(root) {
		if item.Type() == "impl_item" {
			attachImpl(item, source, records)
		}
	}

	return records
}

// extractStruct builds a TypeRecord from a struct_item node. Tuple and
// unit structs have no named fields and produce an empty field list.
func extractStruct(node *sitter.Node, source []byte, path string) models.TypeRecord {
	rec := models.TypeRecord{
		Name: parser.GetNodeText(node.ChildByFieldName("name"), source),
		File: path,
	}

	body := node.ChildByFieldName("body")
	if body == nil || body.Type() != "field_declaration_list" {
		return rec
	}

	for _, field := range parser.NamedChildren(body) {
		if field.Type() != "field_declaration" {
			continue
		}
		name := field.ChildByFieldName("name")
		typ := field.ChildByFieldName("type")
		if name == nil || typ == nil {
			continue
		}
		rec.Fields = append(rec.Fields, models.Field{
			Name: parser.GetNodeText(name, source),
			Type: parser.GetNodeText(typ, source),
		})
	}

	return rec
}

// attachImpl resolves an impl block against the known records and either
// records the implemented trait or appends analyzed methods.
func attachImpl(node *sitter.Node, source []byte, records []models.TypeRecord) {
	selfType := implSelfTypeName(node, source)
	if selfType == "" {
		return
	}

	var rec *models.TypeRecord
	for i := range records {
		if records[i].Name == selfType {
			rec = &records[i]
			break
		}
	}
	if rec == nil {
		return
	}

	if trait := node.ChildByFieldName("trait"); trait != nil {
		// Trait impls are recorded for coupling but their functions are
		// not extracted as methods.
		name := parser.GetNodeText(trait, source)
		for _, existing := range rec.Traits {
			if existing == name {
				return
			}
		}
		rec.Traits = append(rec.Traits, name)
		return
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for _, item := range parser.NamedChildren(body) {
		if item.Type() != "function_item" {
			continue
		}
		rec.Methods = append(rec.Methods, analyzeFunction(item, rec, source))
	}
}

// implSelfTypeName returns the base name of an impl block's self type:
// the identifier itself, the container of a generic type, or the last
// segment of a qualified path.
func implSelfTypeName(node *sitter.Node, source []byte) string {
	typ := node.ChildByFieldName("type")
	if typ == nil {
		return ""
	}
	for {
		switch typ.Type() {
		case "type_identifier":
			return parser.GetNodeText(typ, source)
		case "generic_type":
			inner := typ.ChildByFieldName("type")
			if inner == nil {
				return ""
			}
			typ = inner
		case "scoped_type_identifier":
			name := typ.ChildByFieldName("name")
			if name == nil {
				return ""
			}
			return parser.GetNodeText(name, source)
		case "reference_type":
			inner := typ.ChildByFieldName("type")
			if inner == nil {
				return ""
			}
			typ = inner
		default:
			return ""
		}
	}
}
