package pdf2html

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tsawler/pdf2html/config"
	"github.com/tsawler/pdf2html/format"
	"github.com/tsawler/pdf2html/htmlout"
	"github.com/tsawler/pdf2html/layout"
	"github.com/tsawler/pdf2html/model"
	"github.com/tsawler/pdf2html/pdftohtml"
	"github.com/tsawler/pdf2html/pdfxml"
)

// ErrUnsupportedFormat is returned for input that is neither a PDF nor a
// pdf2xml document.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Converter provides a fluent interface for converting one document.
// Each configuration method returns a new Converter instance, making it
// safe for concurrent use and allowing method chaining.
type Converter struct {
	// Source: a file, a parsed pdf2xml document, or raw records
	filename string
	xml      *pdfxml.Reader
	records  []model.RawText
	specs    []model.FontSpec
	raw      bool

	options config.Options
	runner  *pdftohtml.Runner
	logger  *slog.Logger
}

// FromReader creates a Converter from an already-parsed pdf2xml document.
//
// Example:
//
//	r, err := pdfxml.Open("data.xml")
//	if err != nil {
//	    // handle error
//	}
//	html, _, err := pdf2html.FromReader(r).HTML(ctx)
func FromReader(r *pdfxml.Reader) *Converter {
	return &Converter{xml: r}
}

// FromRecords creates a Converter from raw extractor records and the font
// declarations they refer to. Records must be in reading order.
func FromRecords(records []model.RawText, specs []model.FontSpec) *Converter {
	return &Converter{
		records: records,
		specs:   specs,
		raw:     true,
	}
}

// clone creates a shallow copy of the Converter. Options are merged into a
// fresh value, so chains never share option pointers.
func (c *Converter) clone() *Converter {
	newConv := *c
	newConv.options = config.Options{}.Merge(c.options)
	return &newConv
}

// WithOptions overlays every option set in opts
//
// Example:
//
//	rc, _ := config.LoadRC(config.RCPathFor("book.pdf"))
//	opts, _ := rc.Apply(config.Options{}, "book.pdf")
//	html, _, err := pdf2html.Open("book.pdf").WithOptions(opts).HTML(ctx)
func (c *Converter) WithOptions(opts config.Options) *Converter {
	newConv := c.clone()
	newConv.options = newConv.options.Merge(opts)
	return newConv
}

// WithRunner sets the extractor runner used for PDF input
func (c *Converter) WithRunner(r *pdftohtml.Runner) *Converter {
	newConv := c.clone()
	newConv.runner = r
	return newConv
}

// WithLogger sets the logger that receives conversion diagnostics
func (c *Converter) WithLogger(l *slog.Logger) *Converter {
	newConv := c.clone()
	newConv.logger = l
	return newConv
}

// Options returns the options set on this Converter
func (c *Converter) Options() config.Options {
	return config.Options{}.Merge(c.options)
}

// Document converts the input into a paragraph document. The context
// bounds the external extractor run for PDF input.
//
// Example:
//
//	doc, warnings, err := pdf2html.Open("document.pdf").Document(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range doc.Paragraphs {
//	    fmt.Println(p.Text)
//	}
func (c *Converter) Document(ctx context.Context) (*model.Document, []Warning, error) {
	resolved := c.options.Resolve()
	cfg := resolved.Layout
	cfg.Logger = c.logger
	if !resolved.SkipGenerator {
		cfg.Metadata.Generator = Generator()
	}
	if err := c.options.Validate(); err != nil {
		return nil, nil, err
	}

	records, specs, err := c.load(ctx, resolved)
	if err != nil {
		return nil, nil, err
	}

	doc, warns, err := layout.NewEngineWithConfig(cfg).ConvertRecords(records, specs)
	if err != nil {
		return nil, nil, err
	}
	return doc, newWarnings(warns), nil
}

// WriteHTML converts the input and writes HTML to w
func (c *Converter) WriteHTML(ctx context.Context, w io.Writer) ([]Warning, error) {
	doc, warnings, err := c.Document(ctx)
	if err != nil {
		return warnings, err
	}
	if err := c.writer().Write(w, doc); err != nil {
		return warnings, fmt.Errorf("write html: %w", err)
	}
	return warnings, nil
}

// HTML converts the input and returns the HTML as a string
//
// Example:
//
//	html, _, err := pdf2html.Open("document.pdf").Title("Report").HTML(ctx)
func (c *Converter) HTML(ctx context.Context) (string, []Warning, error) {
	var buf bytes.Buffer
	warnings, err := c.WriteHTML(ctx, &buf)
	if err != nil {
		return "", warnings, err
	}
	return buf.String(), warnings, nil
}

// WriteFile converts the input and writes HTML to filename. Without a
// title, the output file's base name is used for the page title.
func (c *Converter) WriteFile(ctx context.Context, filename string) ([]Warning, error) {
	doc, warnings, err := c.Document(ctx)
	if err != nil {
		return warnings, err
	}
	if err := c.writer().WriteFile(filename, doc); err != nil {
		return warnings, err
	}
	return warnings, nil
}

func (c *Converter) writer() *htmlout.Writer {
	return htmlout.NewWriter()
}

// load returns the records and font declarations of the input
func (c *Converter) load(ctx context.Context, resolved config.Resolved) ([]model.RawText, []model.FontSpec, error) {
	if c.raw {
		return c.records, c.specs, nil
	}

	r := c.xml
	if r == nil {
		var err error
		if r, err = c.open(ctx, resolved); err != nil {
			return nil, nil, err
		}
	}
	c.log().Debug("loaded pdf2xml",
		"producer", r.Producer(),
		"pages", r.PageCount(),
		"sorted", resolved.SortByPosition)
	return r.Records(pdfxml.RecordOptions{SortByPosition: resolved.SortByPosition}), r.FontSpecs(), nil
}

func (c *Converter) open(ctx context.Context, resolved config.Resolved) (*pdfxml.Reader, error) {
	if c.filename == "" {
		return nil, fmt.Errorf("no input specified")
	}

	f, err := format.DetectFile(c.filename)
	if err != nil {
		return nil, err
	}

	switch f {
	case format.PDFXML:
		r, err := pdfxml.Open(c.filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", c.filename, err)
		}
		return r, nil

	case format.PDF:
		runner := pdftohtml.NewRunner()
		if c.runner != nil {
			copied := *c.runner
			runner = &copied
		}
		runner.Keep = runner.Keep || resolved.Keep
		if runner.Logger == nil {
			runner.Logger = c.logger
		}
		return runner.Open(ctx, c.filename)

	default:
		return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedFormat, c.filename, f)
	}
}

func (c *Converter) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(slog.DiscardHandler)
}
