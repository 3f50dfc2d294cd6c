package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Stats summarizes one converted document
type Stats struct {
	Paragraphs int
	Warnings   int
}

// Converter converts a single input file to an HTML file
type Converter interface {
	ConvertFile(ctx context.Context, input, output string) (Stats, error)
}

// ConvertJob represents a single document conversion
type ConvertJob struct {
	Index     int
	Input     string
	Output    string
	Converter Converter
	Limiter   *Limiter
}

// Execute executes the conversion job
func (j *ConvertJob) Execute(ctx context.Context) Result {
	result := &ConvertResult{
		Index:  j.Index,
		Input:  j.Input,
		Output: j.Output,
	}
	if err := j.Limiter.Wait(ctx); err != nil {
		result.Error = err
		return result
	}
	result.Stats, result.Error = j.Converter.ConvertFile(ctx, j.Input, j.Output)
	return result
}

// ConvertResult represents the result of a conversion job
type ConvertResult struct {
	Index  int
	Input  string
	Output string
	Stats  Stats
	Error  error
}

// GetError returns the error from the conversion
func (r *ConvertResult) GetError() error {
	return r.Error
}

// BatchProcessor converts many documents concurrently, one job per document
type BatchProcessor struct {
	converter   Converter
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(converter Converter, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		converter:   converter,
		concurrency: concurrency,
	}
}

// WithLimiter throttles extractor launches
func (b *BatchProcessor) WithLimiter(l *Limiter) *BatchProcessor {
	b.limiter = l
	return b
}

// Process converts every input, writing each output next to its input or
// into outDir when set. Results are returned in input order; inputs not
// reached before ctx was cancelled carry the context error.
func (b *BatchProcessor) Process(ctx context.Context, inputs []string, outDir string) []*ConvertResult {
	if len(inputs) == 0 {
		return []*ConvertResult{}
	}

	jobs := make([]Job, len(inputs))
	for i, input := range inputs {
		jobs[i] = &ConvertJob{
			Index:     i,
			Input:     input,
			Output:    OutputPath(input, outDir),
			Converter: b.converter,
			Limiter:   b.limiter,
		}
	}

	results := NewPool(ctx, b.concurrency).Run(jobs)

	converted := make([]*ConvertResult, len(inputs))
	for _, result := range results {
		r := result.(*ConvertResult)
		converted[r.Index] = r
	}

	// jobs never started because ctx was cancelled
	for i, r := range converted {
		if r == nil {
			job := jobs[i].(*ConvertJob)
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			converted[i] = &ConvertResult{Index: i, Input: job.Input, Output: job.Output, Error: err}
		}
	}
	return converted
}

// OutputPath returns the HTML path for input: the same base name with an
// .html extension, in outDir or beside the input
func OutputPath(input, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".html"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(input), base)
}

// ReadInputsFromFile reads input paths from a file (one per line)
func ReadInputsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var inputs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			inputs = append(inputs, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return inputs, nil
}
