package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oxidelab/ferrolens/internal/analyzer"
	"github.com/oxidelab/ferrolens/internal/output"
	"github.com/oxidelab/ferrolens/internal/scanner"
	"github.com/oxidelab/ferrolens/pkg/models"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <type> [path...]",
	Short: "Show the extracted structural model of one struct",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringP("format", "f", "", "Output format: text, json, csv, markdown")
	inspectCmd.Flags().StringP("output", "o", "", "Write output to file")
	inspectCmd.Flags().Bool("include-tests", false, "Include test files in analysis")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	typeName := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if includeTests, _ := cmd.Flags().GetBool("include-tests"); includeTests {
		cfg.Analysis.IncludeTests = true
	}

	paths := getPaths(args[1:])
	files, err := collectFiles(scanner.NewScanner(cfg), paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no Rust source files found in %v", paths)
	}

	a := analyzer.New(
		analyzer.WithIncludeTests(cfg.Analysis.IncludeTests),
		analyzer.WithMaxFileSize(cfg.Analysis.MaxFileSize),
		analyzer.WithWorkers(cfg.Analysis.Workers),
	)
	defer a.Close()
	analysis, err := a.AnalyzeProjectWithProgress(files, nil, func(path string, err error) {
		logger.Warn("skipping file", "path", path, "error", err)
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	// Duplicate names across files are separate records; show them all.
	var matches []models.TypeRecord
	for _, rec := range analysis.Types {
		if rec.Name == typeName {
			matches = append(matches, rec)
		}
	}
	if len(matches) == 0 {
		return fmt.Errorf("no struct named %q found", typeName)
	}

	format := getFormat(cmd)
	if format == "" {
		format = cfg.Output.Format
	}
	formatter, err := output.NewFormatter(output.ParseFormat(format), getOutputFile(cmd), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	for i := range matches {
		section := typeSection(&matches[i], analysis)
		if err := formatter.Output(section); err != nil {
			return err
		}
	}
	return nil
}

// typeSection renders one type record with its metrics as a section tree.
func typeSection(rec *models.TypeRecord, analysis *models.Analysis) *output.Section {
	section := &output.Section{
		Title:   fmt.Sprintf("%s (%s)", rec.Name, rec.File),
		Data:    rec,
		Content: fmt.Sprintf("fields: %d, methods: %d, traits: %d", len(rec.Fields), len(rec.Methods), len(rec.Traits)),
	}

	for _, r := range analysis.Results {
		if r.TypeName == rec.Name && r.File == rec.File {
			section.Sections = append(section.Sections, output.Section{
				Title:   "Metrics",
				Content: fmt.Sprintf("LCOM: %.3f\nCBO: %d\nWMC: %d", r.LCOM, r.CBO, r.WMC),
			})
			break
		}
	}

	if len(rec.Fields) > 0 {
		var b strings.Builder
		for _, f := range rec.Fields {
			fmt.Fprintf(&b, "%s: %s\n", f.Name, f.Type)
		}
		section.Sections = append(section.Sections, output.Section{
			Title:   "Fields",
			Content: strings.TrimRight(b.String(), "\n"),
		})
	}

	if len(rec.Methods) > 0 {
		var b strings.Builder
		for _, m := range rec.Methods {
			fmt.Fprintf(&b, "%s (complexity %d)\n", m.Name, m.Complexity)
			if len(m.FieldsAccessed) > 0 {
				fmt.Fprintf(&b, "  fields: %s\n", strings.Join(m.FieldsAccessed, ", "))
			}
			if len(m.ExternalTypes) > 0 {
				fmt.Fprintf(&b, "  external: %s\n", strings.Join(m.ExternalTypes, ", "))
			}
		}
		section.Sections = append(section.Sections, output.Section{
			Title:   "Methods",
			Content: strings.TrimRight(b.String(), "\n"),
		})
	}

	if len(rec.Traits) > 0 {
		section.Sections = append(section.Sections, output.Section{
			Title:   "Traits",
			Content: strings.Join(rec.Traits, ", "),
		})
	}

	return section
}
