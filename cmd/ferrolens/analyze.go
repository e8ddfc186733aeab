package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oxidelab/ferrolens/internal/analyzer"
	"github.com/oxidelab/ferrolens/internal/output"
	"github.com/oxidelab/ferrolens/internal/progress"
	"github.com/oxidelab/ferrolens/internal/scanner"
	"github.com/oxidelab/ferrolens/pkg/models"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze [path...]",
	Aliases: []string{"a"},
	Short:   "Compute LCOM, CBO and WMC for all structs",
	RunE:    runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("format", "f", "", "Output format: text, json, csv, markdown")
	analyzeCmd.Flags().StringP("output", "o", "", "Write output to file")
	analyzeCmd.Flags().StringSlice("metrics", nil, "Metrics to show: lcom, cbo, wmc (default all)")
	analyzeCmd.Flags().String("sort", "", "Sort by: lcom, cbo, wmc (default source order)")
	analyzeCmd.Flags().Int("top", 0, "Show only the top N types (0 = all)")
	analyzeCmd.Flags().Bool("include-tests", false, "Include test files in analysis")

	rootCmd.AddCommand(analyzeCmd)
}

// collectFiles scans each path, accepting both directories and single
// files, and returns the combined file list.
func collectFiles(s *scanner.Scanner, paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := s.ScanDir(p)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		ok, err := s.ScanFile(p)
		if err != nil {
			return nil, err
		}
		if ok {
			files = append(files, p)
		}
	}
	return files, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if includeTests, _ := cmd.Flags().GetBool("include-tests"); includeTests {
		cfg.Analysis.IncludeTests = true
	}

	paths := getPaths(args)
	files, err := collectFiles(scanner.NewScanner(cfg), paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no Rust source files found in %v", paths)
	}

	tracker := progress.NewTracker("Analyzing structs", len(files))
	a := analyzer.New(
		analyzer.WithIncludeTests(cfg.Analysis.IncludeTests),
		analyzer.WithMaxFileSize(cfg.Analysis.MaxFileSize),
		analyzer.WithWorkers(cfg.Analysis.Workers),
	)
	defer a.Close()
	analysis, err := a.AnalyzeProjectWithProgress(files, tracker.Tick, func(path string, err error) {
		logger.Warn("skipping file", "path", path, "error", err)
	})
	if err != nil {
		tracker.FinishError(err)
		return fmt.Errorf("analysis failed: %w", err)
	}
	tracker.FinishSuccess()

	if len(analysis.Results) == 0 {
		color.Yellow("No struct definitions found in %d files", len(files))
		return nil
	}

	switch getSort(cmd, "") {
	case "lcom":
		analysis.SortByLCOM()
	case "cbo":
		analysis.SortByCBO()
	case "wmc":
		analysis.SortByWMC()
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

	metricsSel, _ := cmd.Flags().GetStringSlice("metrics")
	topN, _ := cmd.Flags().GetInt("top")

	return formatter.Output(resultsTable(analysis, metricsSel, topN, formatter))
}

// resultsTable builds the metrics table, filtered to the selected metric
// columns and truncated to the top N rows.
func resultsTable(analysis *models.Analysis, metricsSel []string, topN int, formatter *output.Formatter) *output.Table {
	selected := func(name string) bool {
		if len(metricsSel) == 0 {
			return true
		}
		for _, m := range metricsSel {
			if m == name || m == "all" {
				return true
			}
		}
		return false
	}
	showLCOM := selected("lcom")
	showCBO := selected("cbo")
	showWMC := selected("wmc")

	headers := []string{"Type", "File"}
	if showLCOM {
		headers = append(headers, "LCOM")
	}
	if showCBO {
		headers = append(headers, "CBO")
	}
	if showWMC {
		headers = append(headers, "WMC")
	}

	results := analysis.Results
	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}

	colorize := formatter.Colored() && formatter.Format() == output.FormatText

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		row := []string{r.TypeName, r.File}
		if showLCOM {
			lcomStr := fmt.Sprintf("%.3f", r.LCOM)
			if colorize {
				lcomStr = output.CohesionColor(r.LCOM, lcomStr)
			}
			row = append(row, lcomStr)
		}
		if showCBO {
			row = append(row, fmt.Sprintf("%d", r.CBO))
		}
		if showWMC {
			row = append(row, fmt.Sprintf("%d", r.WMC))
		}
		rows = append(rows, row)
	}

	return output.NewTable(
		"Structural Metrics",
		headers,
		rows,
		[]string{
			fmt.Sprintf("Types: %d", analysis.Summary.TotalTypes),
			fmt.Sprintf("Files: %d", analysis.Summary.TotalFiles),
			fmt.Sprintf("Low Cohesion (LCOM>0.5): %d", analysis.Summary.LowCohesionCount),
			fmt.Sprintf("Avg WMC: %.1f", analysis.Summary.AvgWMC),
			fmt.Sprintf("Max CBO: %d", analysis.Summary.MaxCBO),
		},
		analysis,
	)
}
