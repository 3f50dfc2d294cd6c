package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// mockConverter records conversions and fails for inputs in failFor
type mockConverter struct {
	mu      sync.Mutex
	calls   map[string]string
	failFor map[string]bool
}

func newMockConverter() *mockConverter {
	return &mockConverter{calls: make(map[string]string), failFor: make(map[string]bool)}
}

func (c *mockConverter) ConvertFile(ctx context.Context, input, output string) (Stats, error) {
	c.mu.Lock()
	c.calls[input] = output
	c.mu.Unlock()

	if c.failFor[input] {
		return Stats{}, errors.New("conversion failed")
	}
	return Stats{Paragraphs: len(input), Warnings: 1}, nil
}

func TestBatchProcessor_Process(t *testing.T) {
	conv := newMockConverter()
	conv.failFor["b.pdf"] = true

	inputs := []string{"a.pdf", "b.pdf", "dir/c.xml", "d.pdf", "e.pdf"}
	results := NewBatchProcessor(conv, 3).Process(context.Background(), inputs, "")

	if len(results) != len(inputs) {
		t.Fatalf("expected %d results, got %d", len(inputs), len(results))
	}

	for i, r := range results {
		if r.Input != inputs[i] {
			t.Errorf("result %d: expected input %s, got %s", i, inputs[i], r.Input)
		}
	}

	if results[1].GetError() == nil {
		t.Error("expected b.pdf to fail")
	}
	if results[0].GetError() != nil {
		t.Errorf("unexpected error: %v", results[0].GetError())
	}
	if results[0].Stats.Paragraphs != len("a.pdf") {
		t.Errorf("expected stats to be carried, got %+v", results[0].Stats)
	}
	if results[2].Output != filepath.Join("dir", "c.html") {
		t.Errorf("expected output beside input, got %s", results[2].Output)
	}
	if len(conv.calls) != len(inputs) {
		t.Errorf("expected %d conversions, got %d", len(inputs), len(conv.calls))
	}
}

func TestBatchProcessor_OutDir(t *testing.T) {
	conv := newMockConverter()

	results := NewBatchProcessor(conv, 2).Process(context.Background(), []string{"books/a.pdf"}, "out")

	if results[0].Output != filepath.Join("out", "a.html") {
		t.Errorf("expected output in out dir, got %s", results[0].Output)
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	results := NewBatchProcessor(newMockConverter(), 2).Process(context.Background(), nil, "")
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBatchProcessor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewBatchProcessor(newMockConverter(), 2).Process(ctx, []string{"a.pdf", "b.pdf"}, "")

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r == nil {
			t.Fatal("expected a result for every input")
		}
	}
}

func TestBatchProcessor_WithLimiter(t *testing.T) {
	conv := newMockConverter()
	results := NewBatchProcessor(conv, 2).
		WithLimiter(NewLimiter(1000, 2)).
		Process(context.Background(), []string{"a.pdf", "b.pdf", "c.pdf"}, "")

	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("unexpected error: %v", r.GetError())
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		outDir string
		want   string
	}{
		{"book.pdf", "", "book.html"},
		{"a/b/book.PDF", "", filepath.Join("a", "b", "book.html")},
		{"a/data.xml", "out", filepath.Join("out", "data.html")},
		{"noext", "", "noext.html"},
	}

	for _, tt := range tests {
		if got := OutputPath(tt.input, tt.outDir); got != tt.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.input, tt.outDir, got, tt.want)
		}
	}
}

func TestReadInputsFromFile(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "inputs")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := "# books\nbook1.pdf\n\nbook2.pdf\nbook1.pdf\n  book3.xml  \n"
	if _, err := tmpfile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	tmpfile.Close()

	inputs, err := ReadInputsFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadInputsFromFile failed: %v", err)
	}

	want := []string{"book1.pdf", "book2.pdf", "book3.xml"}
	if len(inputs) != len(want) {
		t.Fatalf("expected %d inputs, got %d: %v", len(want), len(inputs), inputs)
	}
	for i := range want {
		if inputs[i] != want[i] {
			t.Errorf("input %d: expected %s, got %s", i, want[i], inputs[i])
		}
	}

	if _, err := ReadInputsFromFile("/nonexistent/inputs.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
