// Package fileproc provides concurrent file processing utilities.
package fileproc

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/oxidelab/ferrolens/pkg/parser"
)

// ProcessingError represents an error that occurred while processing a file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e ProcessingError) Unwrap() error {
	return e.Err
}

// ProcessingErrors collects multiple file processing errors.
type ProcessingErrors struct {
	Errors []ProcessingError
	mu     sync.Mutex
}

// Add appends an error to the collection (thread-safe).
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors returns true if any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
}

// DefaultWorkerMultiplier is applied to NumCPU for the worker count. 2x
// suits the mixed I/O and CGO workload of reading plus tree-sitter parsing.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

// ErrorFunc is called when a file fails processing. A nil ErrorFunc drops
// errors silently.
type ErrorFunc func(path string, err error)

// MapFilesIndexed processes files in parallel, calling fn for each file
// with a dedicated parser, and returns one result slot per input file in
// input order. Failed files leave their slot at the zero value and their
// index unset in the returned ok mask. Slot-indexed collection keeps the
// output order independent of goroutine scheduling.
func MapFilesIndexed[T any](files []string, maxWorkers int, fn func(*parser.Parser, string) (T, error), onProgress ProgressFunc, onError ErrorFunc) ([]T, []bool) {
	if len(files) == 0 {
		return nil, nil
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	results := make([]T, len(files))
	ok := make([]bool, len(files))

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for i, path := range files {
		p.Go(func() {
			psr := parser.New()
			defer psr.Close()

			result, err := fn(psr, path)
			if err != nil {
				if onError != nil {
					onError(path, err)
				}
			} else {
				results[i] = result
				ok[i] = true
			}

			if onProgress != nil {
				onProgress()
			}
		})
	}
	p.Wait()

	return results, ok
}

// MapFilesCollectErrors processes files in parallel, preserving input
// order, and collects all errors instead of reporting them through a
// callback.
func MapFilesCollectErrors[T any](files []string, fn func(*parser.Parser, string) (T, error)) ([]T, []bool, *ProcessingErrors) {
	errs := &ProcessingErrors{}
	results, ok := MapFilesIndexed(files, 0, fn, nil, errs.Add)
	if !errs.HasErrors() {
		return results, ok, nil
	}
	return results, ok, errs
}
