package model

import "math"

// FontID identifies a font (size and family) within one conversion run.
// IDs are assigned by the font index and are not stable across documents.
type FontID int

// NoFont is the FontID of a fragment whose font is unknown.
const NoFont FontID = -1

// FontSpec is a font declaration as reported by the extractor.
// Values are kept verbatim; the font index parses them.
type FontSpec struct {
	ID     string
	Size   string
	Family string
	Color  string
}

// Page describes one page of the extracted document.
type Page struct {
	Number int // 1-indexed page number
	Width  float64
	Height float64
}

// RawText is one positioned text record exactly as the extractor produced it.
// Geometry attributes are unparsed strings; an empty string means the
// attribute was missing.
type RawText struct {
	Page       int
	PageHeight float64

	Top    string
	Left   string
	Width  string
	Height string
	Font   string

	Text string

	// Bold is set when the extractor marked the whole text bold
	Bold bool
}

// Fragment is the atomic unit of input to the paragraph engine: one
// positioned run of decoded text.
type Fragment struct {
	Text string

	// Page is the 1-based page index
	Page int

	// PageHeight is the height of the page in points, 0 when unknown
	PageHeight float64

	Top    float64
	Bottom float64
	Left   float64
	Right  float64

	FontID FontID

	// Bold is set when the whole text was marked bold
	Bold bool
}

// Height returns the vertical extent of the fragment
func (f Fragment) Height() float64 {
	return f.Bottom - f.Top
}

// Width returns the horizontal extent of the fragment
func (f Fragment) Width() float64 {
	return f.Right - f.Left
}

// BBox returns the fragment's bounding box
func (f Fragment) BBox() BBox {
	return NewBBoxFromEdges(f.Left, f.Top, f.Right, f.Bottom)
}

// SameLine reports whether f sits on the same visual line as prev: both on
// one page with tops closer than half of the smaller height.
func (f Fragment) SameLine(prev Fragment) bool {
	if f.Page != prev.Page {
		return false
	}
	h := math.Min(f.Height(), prev.Height())
	if h <= 0 {
		return f.Top == prev.Top
	}
	return math.Abs(f.Top-prev.Top) < h/2
}
