package metrics

import (
	"strings"

	"github.com/oxidelab/ferrolens/pkg/models"
)

// CBO computes Coupling Between Objects: the number of distinct other
// known types (and implemented traits) this type depends on.
//
// Three sources feed the set: external references collected from method
// bodies and base names extracted from field types, both counted only when
// they name another type in the analyzed corpus; and implemented trait
// names, counted unconditionally. Only the field-type source excludes the
// type's own name, so a recursive field does not couple a type to itself
// while trait coupling always registers.
func CBO(rec *models.TypeRecord, all []models.TypeRecord) int {
	known := make(map[string]bool, len(all))
	for i := range all {
		known[all[i].Name] = true
	}

	coupled := make(map[string]bool)

	for _, method := range rec.Methods {
		for _, ref := range method.ExternalTypes {
			if known[ref] {
				coupled[ref] = true
			}
		}
	}

	for _, field := range rec.Fields {
		for _, name := range TypeNameCandidates(field.Type) {
			if known[name] && name != rec.Name {
				coupled[name] = true
			}
		}
	}

	for _, trait := range rec.Traits {
		coupled[trait] = true
	}

	return len(coupled)
}

// TypeNameCandidates extracts every base type name mentioned in a raw
// declared-type expression. Reference and mutable-reference prefixes are
// unwrapped; a generic expression yields both the container name and every
// top-level comma-separated parameter, recursively. "Vec<Box<User>>"
// yields Vec, Box and User; "&mut String" yields String.
func TypeNameCandidates(raw string) []string {
	var names []string
	collectTypeNames(raw, &names)
	return names
}

func collectTypeNames(raw string, names *[]string) {
	ty := strings.TrimSpace(raw)

	// Unwrap reference prefixes, including lifetimes.
	for strings.HasPrefix(ty, "&") {
		ty = strings.TrimSpace(ty[1:])
		if strings.HasPrefix(ty, "'") {
			if i := strings.IndexAny(ty, " \t"); i >= 0 {
				ty = strings.TrimSpace(ty[i:])
			} else {
				return
			}
		}
		ty = strings.TrimSpace(strings.TrimPrefix(ty, "mut "))
	}
	if ty == "" {
		return
	}

	open := strings.Index(ty, "<")
	if open < 0 {
		*names = append(*names, ty)
		return
	}

	outer := strings.TrimSpace(ty[:open])
	if outer != "" {
		*names = append(*names, outer)
	}

	end := strings.LastIndex(ty, ">")
	if end <= open {
		return
	}

	for _, param := range splitTopLevel(ty[open+1 : end]) {
		collectTypeNames(param, names)
	}
}

// splitTopLevel splits a generic parameter list on commas that are not
// nested inside another angle-bracket pair.
func splitTopLevel(params string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range params {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, params[start:i])
				start = i + 1
			}
		}
	}
	if strings.TrimSpace(params[start:]) != "" {
		parts = append(parts, params[start:])
	}
	return parts
}
