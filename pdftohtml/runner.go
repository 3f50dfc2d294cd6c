package pdftohtml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/tsawler/pdf2html/pdfxml"
)

// DefaultBinary is the extractor looked up on PATH when Runner.Binary is empty
const DefaultBinary = "pdftohtml"

// waitDelay bounds how long a killed extractor may hold its output pipes
const waitDelay = 2 * time.Second

// ErrNotFound is returned when the extractor binary cannot be located
var ErrNotFound = errors.New("pdftohtml binary not found")

// Runner invokes the external pdftohtml extractor in XML mode. Images are
// never extracted.
type Runner struct {
	// Binary is the extractor executable; empty means DefaultBinary on PATH
	Binary string

	// Keep leaves the scratch directory and its XML in place
	Keep bool

	// TempDir is the parent of the scratch directory; empty means the
	// system temporary directory
	TempDir string

	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger
}

// NewRunner creates a runner using pdftohtml from PATH
func NewRunner() *Runner {
	return &Runner{}
}

// Output is the result of one extractor run
type Output struct {
	// XMLPath is the pdf2xml file written by the extractor
	XMLPath string

	// Dir is the scratch directory holding XMLPath
	Dir string

	keep bool
}

// Close removes the scratch directory unless the runner was told to keep it
func (o *Output) Close() error {
	if o == nil || o.keep {
		return nil
	}
	return os.RemoveAll(o.Dir)
}

// Run extracts pdfPath to XML in a fresh scratch directory. The caller must
// Close the returned output. The process is killed when ctx is done.
func (r *Runner) Run(ctx context.Context, pdfPath string) (*Output, error) {
	bin := r.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	dir, err := os.MkdirTemp(r.TempDir, "pdf2html")
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}
	out := &Output{
		XMLPath: filepath.Join(dir, "data.xml"),
		Dir:     dir,
		keep:    r.Keep,
	}

	// pdftohtml appends .xml to the output base name
	cmd := exec.CommandContext(ctx, path, "-xml", "-i", pdfPath, filepath.Join(dir, "data"))
	var stderr bytes.Buffer
	cmd.Stdout = &stderr
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	r.logger().Debug("running extractor", "binary", path, "input", pdfPath, "dir", dir)
	if err := cmd.Run(); err != nil {
		out.Close()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("pdftohtml %s: %w", pdfPath, ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("pdftohtml %s: %w", pdfPath, err)
		}
		return nil, fmt.Errorf("pdftohtml %s: %w: %s", pdfPath, err, msg)
	}

	if _, err := os.Stat(out.XMLPath); err != nil {
		out.Close()
		return nil, fmt.Errorf("pdftohtml %s: no XML output: %w", pdfPath, err)
	}

	if r.Keep {
		r.logger().Info("keeping intermediate XML", "path", out.XMLPath)
	}
	return out, nil
}

// Open extracts pdfPath and parses the resulting XML. The scratch
// directory is cleaned up before returning unless Keep is set.
func (r *Runner) Open(ctx context.Context, pdfPath string) (*pdfxml.Reader, error) {
	out, err := r.Run(ctx, pdfPath)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	reader, err := pdfxml.Open(out.XMLPath)
	if err != nil {
		return nil, fmt.Errorf("pdftohtml %s: %w", pdfPath, err)
	}
	return reader, nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}
