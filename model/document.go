package model

import "strings"

// ParagraphKind classifies a paragraph for the serializer
type ParagraphKind int

const (
	KindBody ParagraphKind = iota
	KindHeading
)

// String returns the HTML element name used for the kind
func (k ParagraphKind) String() string {
	if k == KindHeading {
		return "h2"
	}
	return "p"
}

// Paragraph is an ordered run of fragments judged contiguous.
// Once closed by the segmenter it is never mutated again, apart from the
// Text and Kind fields filled in by the normalizer.
type Paragraph struct {
	// Fragments are the source fragments in input order
	Fragments []Fragment

	// LineStarts holds the indices into Fragments that begin a new visual line.
	// The first fragment is always a line start.
	LineStarts []int

	// Joins holds, for each fragment after the first, how it attaches to its
	// predecessor. len(Joins) == len(Fragments)-1.
	Joins []Join

	// Text is the normalized paragraph text
	Text string

	// Page is the page of the first fragment
	Page int

	// Index is the paragraph's position in the document (0-based)
	Index int

	Kind ParagraphKind
}

// Join describes how a fragment attaches to the fragment before it
type Join int

const (
	// JoinSameLine continues the current visual line
	JoinSameLine Join = iota
	// JoinNewLine starts a new visual line within the paragraph
	JoinNewLine
	// JoinDropCap glues a fragment to an enlarged initial letter
	JoinDropCap
)

// LineCount returns the number of visual lines in the paragraph
func (p *Paragraph) LineCount() int {
	if p == nil {
		return 0
	}
	return len(p.LineStarts)
}

// BBox returns the union of the fragments' bounding boxes on the first page.
func (p *Paragraph) BBox() BBox {
	var box BBox
	for _, f := range p.Fragments {
		if f.Page != p.Page {
			break
		}
		box = box.Union(f.BBox())
	}
	return box
}

// Metadata carries document-level information for the serializer
type Metadata struct {
	Title    string
	Subtitle string

	// SkippedPages is the number of leading pages excluded from conversion
	SkippedPages int

	// Encoding is the declared output character encoding
	Encoding string

	// Generator is the generator meta value; empty suppresses the tag
	Generator string
}

// Document is the output of one conversion
type Document struct {
	Metadata   Metadata
	Paragraphs []Paragraph

	// Thresholds are the values the conversion actually used
	Thresholds Thresholds
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Metadata: Metadata{
			Encoding: "UTF-8",
		},
		Paragraphs: make([]Paragraph, 0),
	}
}

// AddParagraph appends a paragraph and assigns its index
func (d *Document) AddParagraph(p Paragraph) {
	p.Index = len(d.Paragraphs)
	d.Paragraphs = append(d.Paragraphs, p)
}

// ParagraphCount returns the number of paragraphs
func (d *Document) ParagraphCount() int {
	return len(d.Paragraphs)
}

// Headings returns the paragraphs classified as headings
func (d *Document) Headings() []Paragraph {
	var headings []Paragraph
	for _, p := range d.Paragraphs {
		if p.Kind == KindHeading {
			headings = append(headings, p)
		}
	}
	return headings
}

// Text returns all paragraph text separated by blank lines
func (d *Document) Text() string {
	var sb strings.Builder
	for i, p := range d.Paragraphs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}
