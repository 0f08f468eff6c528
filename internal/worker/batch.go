package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hearsay-nlp/hearsay/internal/model"
)

// Analyzer runs one stance analysis for a single input (a URL or a local
// file path). The pipeline implements this.
type Analyzer interface {
	Analyze(ctx context.Context, input string) (*model.Report, error)
}

// AnalyzeJob is one batch input bound to the analyzer that will run it.
type AnalyzeJob struct {
	Input    string
	Analyzer Analyzer
}

// Execute runs the analysis and wraps the outcome.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.Analyze(ctx, j.Input)
	return &AnalyzeResult{Input: j.Input, Report: report, Error: err}
}

// AnalyzeResult is the outcome of one batch input.
type AnalyzeResult struct {
	Input  string
	Report *model.Report
	Error  error
}

// Err returns the analysis error, if any.
func (r *AnalyzeResult) Err() error {
	return r.Error
}

// BatchProcessor analyzes many inputs concurrently over a worker pool.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a processor running at most concurrency
// analyses at once.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{analyzer: analyzer, concurrency: concurrency}
}

// ProcessInputs analyzes every input and returns one result per input.
// Result order follows completion, not submission.
func (b *BatchProcessor) ProcessInputs(ctx context.Context, inputs []string) []*AnalyzeResult {
	if len(inputs) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, input := range inputs {
		pool.Submit(&AnalyzeJob{Input: input, Analyzer: b.analyzer})
	}

	results := pool.Wait()
	out := make([]*AnalyzeResult, len(results))
	for i, res := range results {
		out[i] = res.(*AnalyzeResult)
	}
	return out
}

// ProcessFile reads inputs from a list file and analyzes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*AnalyzeResult, error) {
	inputs, err := ReadInputs(path)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}
	return b.ProcessInputs(ctx, inputs), nil
}

// ReadInputs reads one input per line: blank lines and '#' comments are
// skipped, duplicates collapse to their first occurrence.
func ReadInputs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var inputs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
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
