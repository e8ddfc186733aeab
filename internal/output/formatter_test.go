package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"json":     FormatJSON,
		"JSON":     FormatJSON,
		"csv":      FormatCSV,
		"markdown": FormatMarkdown,
		"md":       FormatMarkdown,
		"text":     FormatText,
		"":         FormatText,
		"bogus":    FormatText,
	}
	for in, want := range cases {
		if got := ParseFormat(in); got != want {
			t.Errorf("ParseFormat(%q) = %s, want %s", in, got, want)
		}
	}
}

func sampleTable() *Table {
	return NewTable("Cohesion", []string{"Type", "LCOM"}, [][]string{
		{"Order", "0.500"},
		{"User", "0.000"},
	}, nil, nil)
}

func TestTable_RenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleTable().RenderText(&buf, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Cohesion", "Order", "0.500", "User"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestTable_RenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleTable().RenderMarkdown(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "## Cohesion") {
		t.Errorf("missing markdown title:\n%s", out)
	}
	if !strings.Contains(out, "| Type | LCOM |") {
		t.Errorf("missing header row:\n%s", out)
	}
	if !strings.Contains(out, "| --- | --- |") {
		t.Errorf("missing separator row:\n%s", out)
	}
}

func TestTable_RenderCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleTable().RenderCSV(&buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %v, want header + 2 rows", lines)
	}
	if lines[0] != "Type,LCOM" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Order,0.500" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestTable_RenderData(t *testing.T) {
	data := sampleTable().RenderData()
	rows, ok := data.([]map[string]string)
	if !ok {
		t.Fatalf("unexpected type %T", data)
	}
	if rows[0]["Type"] != "Order" || rows[0]["LCOM"] != "0.500" {
		t.Errorf("rows[0] = %v", rows[0])
	}

	wrapped := NewTable("", nil, nil, nil, map[string]int{"types": 2})
	if _, ok := wrapped.RenderData().(map[string]int); !ok {
		t.Error("explicit Data should pass through unchanged")
	}
}

func TestFormatter_JSON(t *testing.T) {
	f := &Formatter{format: FormatJSON, writer: &bytes.Buffer{}}
	buf := f.writer.(*bytes.Buffer)

	table := NewTable("", []string{"Type"}, [][]string{{"Order"}}, nil, nil)
	if err := f.Output(table); err != nil {
		t.Fatal(err)
	}

	var decoded []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if decoded[0]["Type"] != "Order" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestSection_RenderText(t *testing.T) {
	s := &Section{
		Title:   "Order",
		Content: "fields: 2",
		Sections: []Section{
			{Title: "methods", Content: "total"},
		},
	}

	var buf bytes.Buffer
	if err := s.RenderText(&buf, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Order\n=====") {
		t.Errorf("missing top-level underline:\n%s", out)
	}
	if !strings.Contains(out, "methods\n-------") {
		t.Errorf("missing nested underline:\n%s", out)
	}
}
