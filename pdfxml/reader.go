// Package pdfxml reads the positioned-text XML produced by "pdftohtml -xml".
package pdfxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"golang.org/x/net/html/charset"

	"github.com/tsawler/pdf2html/model"
)

// ErrNotPDF2XML is returned when the root element is not <pdf2xml>.
var ErrNotPDF2XML = errors.New("not a pdf2xml document")

// Reader provides access to a parsed pdf2xml document.
type Reader struct {
	doc *documentXML
}

// Open parses the pdf2xml file at path.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses pdf2xml from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	dec := xml.NewDecoder(r)
	// pdftohtml honours -enc, so the declared encoding may be anything
	// poppler supports.
	dec.CharsetReader = charset.NewReaderLabel
	// Older pdftohtml releases emit HTML entities such as &nbsp;.
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	var doc documentXML
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing pdf2xml: %w", err)
	}
	if doc.XMLName.Local != "pdf2xml" {
		return nil, fmt.Errorf("%w: root element is <%s>", ErrNotPDF2XML, doc.XMLName.Local)
	}

	return &Reader{doc: &doc}, nil
}

// Producer returns the producer attribute of the root element.
func (r *Reader) Producer() string {
	return r.doc.Producer
}

// PageCount returns the number of pages in the document.
func (r *Reader) PageCount() int {
	return len(r.doc.Pages)
}

// Pages returns the page dimensions in document order.
func (r *Reader) Pages() []model.Page {
	pages := make([]model.Page, 0, len(r.doc.Pages))
	for i, p := range r.doc.Pages {
		pages = append(pages, model.Page{
			Number: pageNumber(p, i),
			Width:  p.Width,
			Height: p.Height,
		})
	}
	return pages
}

// FontSpecs returns every font declaration in the document, in order of
// appearance.
func (r *Reader) FontSpecs() []model.FontSpec {
	var specs []model.FontSpec
	for _, p := range r.doc.Pages {
		for _, fs := range p.FontSpecs {
			specs = append(specs, model.FontSpec{
				ID:     fs.ID,
				Size:   fs.Size,
				Family: fs.Family,
				Color:  fs.Color,
			})
		}
	}
	return specs
}

// RecordOptions controls how text records are listed.
type RecordOptions struct {
	// SortByPosition orders each page's records top to bottom, then left to
	// right. pdftohtml writes records in content-stream order, which is not
	// always reading order.
	SortByPosition bool
}

// Records returns the text records of all pages.
func (r *Reader) Records(opts RecordOptions) []model.RawText {
	var records []model.RawText
	for i, p := range r.doc.Pages {
		number := pageNumber(p, i)
		pageRecords := make([]model.RawText, 0, len(p.Texts))
		for _, t := range p.Texts {
			pageRecords = append(pageRecords, model.RawText{
				Page:       number,
				PageHeight: p.Height,
				Top:        t.Top,
				Left:       t.Left,
				Width:      t.Width,
				Height:     t.Height,
				Font:       t.Font,
				Text:       t.Text,
				Bold:       t.Bold,
			})
		}
		if opts.SortByPosition {
			sortByPosition(pageRecords)
		}
		records = append(records, pageRecords...)
	}
	return records
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func pageNumber(p pageXML, index int) int {
	if p.Number > 0 {
		return p.Number
	}
	return index + 1
}

// sortByPosition stable-sorts records by (top, left). Records whose
// coordinates do not parse inherit the key of the record before them, so
// they stay where the extractor put them.
func sortByPosition(records []model.RawText) {
	type key struct{ top, left float64 }
	keys := make([]key, len(records))
	var last key
	for i, rec := range records {
		top, errTop := strconv.ParseFloat(rec.Top, 64)
		left, errLeft := strconv.ParseFloat(rec.Left, 64)
		if errTop == nil && errLeft == nil && finite(top) && finite(left) {
			last = key{top, left}
		}
		keys[i] = last
	}

	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.top != kb.top {
			return ka.top < kb.top
		}
		return ka.left < kb.left
	})

	sorted := make([]model.RawText, len(records))
	for i, j := range idx {
		sorted[i] = records[j]
	}
	copy(records, sorted)
}
