// Package analyzer orchestrates the two analysis stages: structural
// extraction per file, then metric computation over the merged model.
package analyzer

import (
	"os"
	"time"

	"github.com/oxidelab/ferrolens/internal/extractor"
	"github.com/oxidelab/ferrolens/internal/fileproc"
	"github.com/oxidelab/ferrolens/internal/metrics"
	"github.com/oxidelab/ferrolens/internal/scanner"
	"github.com/oxidelab/ferrolens/pkg/models"
	"github.com/oxidelab/ferrolens/pkg/parser"
)

// StructuralAnalyzer extracts type models from Rust sources and computes
// cohesion and coupling metrics over them. File extraction uses per-worker
// parsers; the held parser serves single-source analysis.
type StructuralAnalyzer struct {
	parser       *parser.Parser
	skipTestFile bool
	maxFileSize  int64
	workers      int
}

// Option is a functional option for configuring StructuralAnalyzer.
type Option func(*StructuralAnalyzer)

// WithIncludeTests enables or disables analyzing test files.
func WithIncludeTests(include bool) Option {
	return func(a *StructuralAnalyzer) {
		a.skipTestFile = !include
	}
}

// WithMaxFileSize sets the maximum file size to analyze (0 = no limit).
func WithMaxFileSize(maxSize int64) Option {
	return func(a *StructuralAnalyzer) {
		a.maxFileSize = maxSize
	}
}

// WithWorkers bounds the extraction worker pool (0 = 2x NumCPU).
func WithWorkers(workers int) Option {
	return func(a *StructuralAnalyzer) {
		a.workers = workers
	}
}

// New creates a new structural analyzer.
func New(opts ...Option) *StructuralAnalyzer {
	a := &StructuralAnalyzer{
		parser:       parser.New(),
		skipTestFile: true,
		maxFileSize:  0,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeProject extracts and scores all types found in the given files.
func (a *StructuralAnalyzer) AnalyzeProject(files []string) (*models.Analysis, error) {
	return a.AnalyzeProjectWithProgress(files, nil, nil)
}

// AnalyzeProjectWithProgress extracts and scores all types, reporting
// per-file progress and parse failures through the callbacks. Failed
// files are skipped; their absence shows up only through onError. Metric
// computation starts only after every file's extraction has finished, so
// cross-type references resolve against the complete model.
func (a *StructuralAnalyzer) AnalyzeProjectWithProgress(files []string, onProgress fileproc.ProgressFunc, onError fileproc.ErrorFunc) (*models.Analysis, error) {
	analysis := &models.Analysis{
		GeneratedAt: time.Now().UTC(),
		Types:       make([]models.TypeRecord, 0),
	}

	perFile, ok := fileproc.MapFilesIndexed(files, a.workers, func(psr *parser.Parser, path string) ([]models.TypeRecord, error) {
		if a.skipTestFile && scanner.IsTestFile(path) {
			return nil, nil
		}
		if a.maxFileSize > 0 {
			if info, err := os.Stat(path); err == nil && info.Size() > a.maxFileSize {
				return nil, nil
			}
		}

		result, err := psr.ParseFile(path)
		if err != nil {
			return nil, err
		}
		return extractor.Extract(result), nil
	}, onProgress, onError)

	// Merge in input order so identical inputs produce identical output.
	for i, records := range perFile {
		if !ok[i] {
			continue
		}
		analysis.Types = append(analysis.Types, records...)
	}

	analysis.Results = metrics.ComputeAll(analysis.Types)
	analysis.CalculateSummary()

	return analysis, nil
}

// AnalyzeSource extracts and scores types from in-memory source text.
// Useful for tooling that has no file on disk.
func (a *StructuralAnalyzer) AnalyzeSource(source []byte, path string) (*models.Analysis, error) {
	result, err := a.parser.Parse(source, path)
	if err != nil {
		return nil, err
	}

	analysis := &models.Analysis{
		GeneratedAt: time.Now().UTC(),
		Types:       extractor.Extract(result),
	}
	analysis.Results = metrics.ComputeAll(analysis.Types)
	analysis.CalculateSummary()

	return analysis, nil
}

// Close releases parser resources.
func (a *StructuralAnalyzer) Close() {
	if a.parser != nil {
		a.parser.Close()
	}
}
