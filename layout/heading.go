package layout

import (
	"math"

	"github.com/tsawler/pdf2html/model"
	"github.com/tsawler/pdf2html/text"
)

// HeadingConfig holds configuration for heading classification
type HeadingConfig struct {
	// MaxLines is the maximum number of lines for a heading
	// Default: 3
	MaxLines int

	// MinHeightRatio is the minimum fragment height relative to the body
	// text height
	// Default: 1.2 (20% taller)
	MinHeightRatio float64
}

// DefaultHeadingConfig returns sensible default configuration
func DefaultHeadingConfig() HeadingConfig {
	return HeadingConfig{
		MaxLines:       3,
		MinHeightRatio: 1.2,
	}
}

// HeadingClassifier marks short paragraphs set in a non-body font as
// headings: bold text at least body height, page-number-like digits taller
// than body text, or any text in a clearly larger font
type HeadingClassifier struct {
	config     HeadingConfig
	bodyFont   model.FontID
	bodyHeight float64
}

// NewHeadingClassifier creates a classifier whose notion of body text is the
// most common font and fragment height in frags
func NewHeadingClassifier(config HeadingConfig, frags []model.Fragment) *HeadingClassifier {
	c := &HeadingClassifier{
		config:   config,
		bodyFont: model.NoFont,
	}

	fontCounts := make(map[model.FontID]int)
	heights := NewHistogram(DefaultBinWidth)
	for _, f := range frags {
		fontCounts[f.FontID]++
		if h := f.Height(); h > 0 {
			heights.Add(h)
		}
	}

	best := 0
	for id, n := range fontCounts {
		if n > best || (n == best && id < c.bodyFont) {
			best = n
			c.bodyFont = id
		}
	}
	c.bodyHeight, _ = heights.Mode()
	return c
}

// BodyFont returns the font taken as body text
func (c *HeadingClassifier) BodyFont() model.FontID {
	return c.bodyFont
}

// BodyHeight returns the fragment height taken as body text
func (c *HeadingClassifier) BodyHeight() float64 {
	return c.bodyHeight
}

// Classify returns KindHeading when p qualifies as a heading. p.Text must
// already be normalized.
func (c *HeadingClassifier) Classify(p model.Paragraph) model.ParagraphKind {
	if len(p.Fragments) == 0 || c.bodyHeight <= 0 {
		return model.KindBody
	}
	if c.config.MaxLines > 0 && p.LineCount() > c.config.MaxLines {
		return model.KindBody
	}

	bold := true
	minHeight := math.Inf(1)
	for _, f := range p.Fragments {
		if f.FontID == c.bodyFont {
			return model.KindBody
		}
		bold = bold && f.Bold
		minHeight = math.Min(minHeight, f.Height())
	}

	switch {
	case bold && minHeight >= c.bodyHeight && text.HasLetter(p.Text):
		return model.KindHeading
	case minHeight > c.bodyHeight && text.IsDigits(p.Text):
		return model.KindHeading
	case minHeight >= c.bodyHeight*math.Max(c.config.MinHeightRatio, 1) && text.HasLetter(p.Text):
		return model.KindHeading
	}
	return model.KindBody
}
