package models

import (
	"testing"
	"time"
)

func TestAnalysis_CalculateSummary(t *testing.T) {
	a := &Analysis{
		GeneratedAt: time.Now(),
		Results: []Result{
			{TypeName: "User", File: "a.rs", LCOM: 0.8, CBO: 3, WMC: 10},
			{TypeName: "Order", File: "a.rs", LCOM: 0.2, CBO: 1, WMC: 4},
			{TypeName: "Address", File: "b.rs", LCOM: 0.0, CBO: 0, WMC: 1},
		},
	}
	a.CalculateSummary()

	if a.Summary.TotalTypes != 3 {
		t.Errorf("TotalTypes = %d, want 3", a.Summary.TotalTypes)
	}
	if a.Summary.TotalFiles != 2 {
		t.Errorf("TotalFiles = %d, want 2", a.Summary.TotalFiles)
	}
	if a.Summary.MaxWMC != 10 {
		t.Errorf("MaxWMC = %d, want 10", a.Summary.MaxWMC)
	}
	if a.Summary.MaxCBO != 3 {
		t.Errorf("MaxCBO = %d, want 3", a.Summary.MaxCBO)
	}
	if a.Summary.LowCohesionCount != 1 {
		t.Errorf("LowCohesionCount = %d, want 1", a.Summary.LowCohesionCount)
	}
	wantAvg := 5.0
	if a.Summary.AvgWMC != wantAvg {
		t.Errorf("AvgWMC = %f, want %f", a.Summary.AvgWMC, wantAvg)
	}
}

func TestAnalysis_CalculateSummary_Empty(t *testing.T) {
	a := &Analysis{}
	a.CalculateSummary()

	if a.Summary.TotalTypes != 0 || a.Summary.AvgLCOM != 0 {
		t.Errorf("empty analysis should produce zero summary, got %+v", a.Summary)
	}
}

func TestAnalysis_SortByLCOM(t *testing.T) {
	a := &Analysis{
		Results: []Result{
			{TypeName: "A", LCOM: 0.1},
			{TypeName: "B", LCOM: 0.9},
			{TypeName: "C", LCOM: 0.5},
		},
	}
	a.SortByLCOM()

	want := []string{"B", "C", "A"}
	for i, name := range want {
		if a.Results[i].TypeName != name {
			t.Errorf("Results[%d] = %s, want %s", i, a.Results[i].TypeName, name)
		}
	}
}

func TestAnalysis_SortStable(t *testing.T) {
	// Ties keep extraction order so repeated runs stay deterministic.
	a := &Analysis{
		Results: []Result{
			{TypeName: "First", WMC: 5},
			{TypeName: "Second", WMC: 5},
			{TypeName: "Third", WMC: 7},
		},
	}
	a.SortByWMC()

	want := []string{"Third", "First", "Second"}
	for i, name := range want {
		if a.Results[i].TypeName != name {
			t.Errorf("Results[%d] = %s, want %s", i, a.Results[i].TypeName, name)
		}
	}
}

func TestTypeRecord_HasField(t *testing.T) {
	rec := TypeRecord{
		Name:   "User",
		Fields: []Field{{Name: "name", Type: "String"}, {Name: "age", Type: "u32"}},
	}

	if !rec.HasField("name") {
		t.Error("expected HasField(name) to be true")
	}
	if rec.HasField("email") {
		t.Error("expected HasField(email) to be false")
	}
	if got := rec.FieldNames(); len(got) != 2 || got[0] != "name" || got[1] != "age" {
		t.Errorf("FieldNames() = %v", got)
	}
}

func TestAnalysis_TypeByName(t *testing.T) {
	a := &Analysis{
		Types: []TypeRecord{
			{Name: "User", File: "a.rs"},
			{Name: "Order", File: "b.rs"},
		},
	}

	if rec := a.TypeByName("Order"); rec == nil || rec.File != "b.rs" {
		t.Errorf("TypeByName(Order) = %+v", rec)
	}
	if rec := a.TypeByName("Missing"); rec != nil {
		t.Errorf("TypeByName(Missing) = %+v, want nil", rec)
	}
}
