package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hearsay-nlp/hearsay/internal/model"
)

type stubAnalyzer struct {
	shouldErr bool
}

func (a *stubAnalyzer) Analyze(ctx context.Context, input string) (*model.Report, error) {
	time.Sleep(5 * time.Millisecond)
	if a.shouldErr {
		return nil, errors.New("analysis error")
	}
	return &model.Report{Subject: "stub", Source: input}, nil
}

func TestBatchProcessor_ProcessInputs(t *testing.T) {
	p := NewBatchProcessor(&stubAnalyzer{}, 2)

	inputs := []string{"http://a.example", "http://b.example", "doc.txt"}
	results := p.ProcessInputs(context.Background(), inputs)

	if len(results) != len(inputs) {
		t.Fatalf("expected %d results, got %d", len(inputs), len(results))
	}
	for _, res := range results {
		if res.Err() != nil {
			t.Errorf("unexpected error for %s: %v", res.Input, res.Error)
		}
		if res.Report == nil {
			t.Errorf("expected report for %s", res.Input)
		} else if res.Report.Source != res.Input {
			t.Errorf("report source %q does not match input %q", res.Report.Source, res.Input)
		}
	}
}

func TestBatchProcessor_ProcessInputs_Error(t *testing.T) {
	p := NewBatchProcessor(&stubAnalyzer{shouldErr: true}, 2)

	results := p.ProcessInputs(context.Background(), []string{"http://a.example"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Err() == nil {
		t.Error("expected error result")
	}
	if results[0].Report != nil {
		t.Error("expected nil report on error")
	}
}

func TestBatchProcessor_ProcessInputs_Empty(t *testing.T) {
	p := NewBatchProcessor(&stubAnalyzer{}, 2)
	results := p.ProcessInputs(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadInputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.txt")
	content := `# article batch
http://example.com/one

http://example.com/two
http://example.com/one
reports/doc.json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	inputs, err := ReadInputs(path)
	if err != nil {
		t.Fatalf("ReadInputs: %v", err)
	}

	want := []string{"http://example.com/one", "http://example.com/two", "reports/doc.json"}
	if len(inputs) != len(want) {
		t.Fatalf("expected %d inputs, got %d: %v", len(want), len(inputs), inputs)
	}
	for i, w := range want {
		if inputs[i] != w {
			t.Errorf("input %d: expected %q, got %q", i, w, inputs[i])
		}
	}
}

func TestReadInputs_MissingFile(t *testing.T) {
	if _, err := ReadInputs(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.txt")
	if err := os.WriteFile(path, []byte("http://a.example\nhttp://b.example\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p := NewBatchProcessor(&stubAnalyzer{}, 2)
	results, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}
