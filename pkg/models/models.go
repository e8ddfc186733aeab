// Package models defines the extracted structural model of Rust types and
// the per-type metric results produced from it.
package models

import (
	"sort"
	"time"
)

// Field represents one named struct field.
type Field struct {
	Name string `json:"name"`
	// Type is the raw declared-type text as written in the source
	// (e.g. "Vec<Address>", "&mut String"). Never resolved against imports.
	Type string `json:"type"`
}

// Method represents one function defined in an inherent impl block.
type Method struct {
	Name string `json:"name"`

	// FieldsAccessed lists the owning type's fields read through the
	// receiver (self.<field>). Sorted; always a subset of the declared
	// field names.
	FieldsAccessed []string `json:"fields_accessed,omitempty"`

	// ExternalTypes lists raw qualified paths and constructed type names
	// referenced in the body that are not rooted at self or crate. Sorted.
	ExternalTypes []string `json:"external_types,omitempty"`

	// Complexity is the cyclomatic complexity of the body, always >= 1.
	Complexity int `json:"complexity"`
}

// TypeRecord is the extracted structural model of one declared struct.
type TypeRecord struct {
	Name string `json:"name"`
	File string `json:"file"`

	// Fields and Methods are kept in declaration order.
	Fields  []Field  `json:"fields,omitempty"`
	Methods []Method `json:"methods,omitempty"`

	// Traits lists the trait names from trait impl blocks for this type,
	// in encounter order, deduplicated. Trait impls contribute no methods.
	Traits []string `json:"traits,omitempty"`
}

// FieldNames returns the declared field names in declaration order.
func (t *TypeRecord) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// HasField reports whether name is a declared field of the type.
func (t *TypeRecord) HasField(name string) bool {
	for _, f := range t.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Result holds the computed metrics for a single type.
type Result struct {
	TypeName string `json:"type_name"`
	File     string `json:"file"`

	// LCOM is the Henderson-Sellers lack of cohesion, clamped to [0,1].
	// Higher means less cohesive.
	LCOM float64 `json:"lcom"`

	// CBO counts distinct other known types and implemented traits this
	// type depends on.
	CBO int `json:"cbo"`

	// WMC is the sum of per-method cyclomatic complexity.
	WMC int `json:"wmc"`
}

// Summary provides aggregate statistics over all analyzed types.
type Summary struct {
	TotalTypes int     `json:"total_types"`
	TotalFiles int     `json:"total_files"`
	AvgLCOM    float64 `json:"avg_lcom"`
	AvgCBO     float64 `json:"avg_cbo"`
	AvgWMC     float64 `json:"avg_wmc"`
	MaxLCOM    float64 `json:"max_lcom"`
	MaxCBO     int     `json:"max_cbo"`
	MaxWMC     int     `json:"max_wmc"`

	// Types with LCOM above 0.5 that may need refactoring.
	LowCohesionCount int `json:"low_cohesion_count"`
}

// Analysis represents the full structural metrics analysis for a run.
// Results are in extraction order: files in scan order, types in
// declaration order within each file.
type Analysis struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Types       []TypeRecord `json:"types,omitempty"`
	Results     []Result     `json:"results"`
	Summary     Summary      `json:"summary"`
}

// TypeByName returns the record for the first type with the given name,
// or nil. Duplicate names across files are separate records; callers that
// care about the others should scan Types directly.
func (a *Analysis) TypeByName(name string) *TypeRecord {
	for i := range a.Types {
		if a.Types[i].Name == name {
			return &a.Types[i]
		}
	}
	return nil
}

// SortByLCOM orders results least cohesive first.
func (a *Analysis) SortByLCOM() {
	sort.SliceStable(a.Results, func(i, j int) bool {
		return a.Results[i].LCOM > a.Results[j].LCOM
	})
}

// SortByCBO orders results most coupled first.
func (a *Analysis) SortByCBO() {
	sort.SliceStable(a.Results, func(i, j int) bool {
		return a.Results[i].CBO > a.Results[j].CBO
	})
}

// SortByWMC orders results heaviest first.
func (a *Analysis) SortByWMC() {
	sort.SliceStable(a.Results, func(i, j int) bool {
		return a.Results[i].WMC > a.Results[j].WMC
	})
}

// CalculateSummary computes summary statistics from the results.
func (a *Analysis) CalculateSummary() {
	s := Summary{TotalTypes: len(a.Results)}

	files := make(map[string]bool)
	for _, r := range a.Results {
		files[r.File] = true
		s.AvgLCOM += r.LCOM
		s.AvgCBO += float64(r.CBO)
		s.AvgWMC += float64(r.WMC)
		if r.LCOM > s.MaxLCOM {
			s.MaxLCOM = r.LCOM
		}
		if r.CBO > s.MaxCBO {
			s.MaxCBO = r.CBO
		}
		if r.WMC > s.MaxWMC {
			s.MaxWMC = r.WMC
		}
		if r.LCOM > 0.5 {
			s.LowCohesionCount++
		}
	}
	s.TotalFiles = len(files)

	if len(a.Results) > 0 {
		n := float64(len(a.Results))
		s.AvgLCOM /= n
		s.AvgCBO /= n
		s.AvgWMC /= n
	}

	a.Summary = s
}
