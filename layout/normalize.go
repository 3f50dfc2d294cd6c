package layout

import (
	"bytes"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/pdf2html/model"
	"github.com/tsawler/pdf2html/text"
)

// NormalizerConfig holds configuration for paragraph text assembly
type NormalizerConfig struct {
	// JoinHyphenated removes a line-final hyphen when the next line starts
	// with a lowercase letter
	// Default: true
	JoinHyphenated bool

	// FoldLigatures replaces typographic ligatures with plain letters
	// Default: true
	FoldLigatures bool

	// SpaceGapRatio is the horizontal gap, as a fraction of fragment height,
	// above which two fragments on one line are separated by a space
	// Default: 0.2
	SpaceGapRatio float64
}

// DefaultNormalizerConfig returns sensible default configuration
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		JoinHyphenated: true,
		FoldLigatures:  true,
		SpaceGapRatio:  0.2,
	}
}

// TextNormalizer turns a closed paragraph into one text run
type TextNormalizer struct {
	config NormalizerConfig
}

// NewTextNormalizer creates a normalizer with the given configuration
func NewTextNormalizer(config NormalizerConfig) *TextNormalizer {
	return &TextNormalizer{config: config}
}

// Normalize returns the paragraph text. Visual lines are joined by exactly
// one space and no line break survives. White space inside a line is kept
// as the extractor produced it. The result is trimmed.
func (n *TextNormalizer) Normalize(p model.Paragraph) string {
	var buf []byte

	for i, f := range p.Fragments {
		s := text.FlattenBreaks(f.Text)
		if n.config.FoldLigatures {
			s = text.FoldLigatures(s)
		}

		if i == 0 {
			buf = append(buf, s...)
			continue
		}

		join := model.JoinNewLine
		if i-1 < len(p.Joins) {
			join = p.Joins[i-1]
		}

		switch join {
		case model.JoinDropCap:
			buf = bytes.TrimRightFunc(buf, unicode.IsSpace)
			buf = append(buf, strings.TrimLeftFunc(s, unicode.IsSpace)...)

		case model.JoinSameLine:
			if n.needsSpace(p.Fragments[i-1], f, buf, s) {
				buf = append(buf, ' ')
			}
			buf = append(buf, s...)

		default:
			buf = bytes.TrimRightFunc(buf, unicode.IsSpace)
			s = strings.TrimLeftFunc(s, unicode.IsSpace)
			if n.config.JoinHyphenated && bytes.HasSuffix(buf, []byte("-")) {
				if _, ok := text.Dehyphenate(string(buf), s); ok {
					buf = append(buf[:len(buf)-1], s...)
					continue
				}
			}
			if len(buf) > 0 && s != "" {
				buf = append(buf, ' ')
			}
			buf = append(buf, s...)
		}
	}

	return strings.TrimSpace(string(buf))
}

// needsSpace reports whether two fragments on one line are far enough apart
// to be separate words and carry no white space of their own at the seam.
func (n *TextNormalizer) needsSpace(prev, f model.Fragment, buf []byte, s string) bool {
	if len(buf) == 0 || s == "" {
		return false
	}
	if r, _ := utf8.DecodeLastRune(buf); unicode.IsSpace(r) || text.StartsWithSpace(s) {
		return false
	}
	h := math.Min(prev.Height(), f.Height())
	return f.Left-prev.Right > n.config.SpaceGapRatio*h
}
