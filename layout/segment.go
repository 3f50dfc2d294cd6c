package layout

import (
	"iter"
	"log/slog"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/pdf2html/model"
)

// SegmenterState is the state of the paragraph state machine
type SegmenterState int

const (
	NoParagraph SegmenterState = iota
	InParagraph
)

func (s SegmenterState) String() string {
	if s == InParagraph {
		return "in-paragraph"
	}
	return "no-paragraph"
}

// SegmenterConfig holds configuration for paragraph segmentation
type SegmenterConfig struct {
	// DetectDropCaps glues an enlarged initial letter to the text beside it
	// Default: true
	DetectDropCaps bool

	// DropCapMaxRunes is the longest text treated as a drop cap
	// Default: 2
	DropCapMaxRunes int
}

// DefaultSegmenterConfig returns sensible default configuration
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		DetectDropCaps:  true,
		DropCapMaxRunes: 2,
	}
}

// Segmenter groups an ordered fragment stream into paragraphs. It sees each
// fragment once, in order, and keeps only the open paragraph and the state
// of its current visual line.
type Segmenter struct {
	thresholds model.Thresholds
	config     SegmenterConfig
	logger     *slog.Logger

	state   SegmenterState
	current model.Paragraph
	prev    model.Fragment

	// current visual line
	lineStart    int
	lineLeft     float64
	lineRight    float64
	lineBottom   float64
	lineIndented bool
}

// NewSegmenter creates a segmenter driven by the thresholds t
func NewSegmenter(t model.Thresholds, config SegmenterConfig) *Segmenter {
	return &Segmenter{
		thresholds: t,
		config:     config,
		logger:     discardLogger,
	}
}

// WithLogger sets the logger that traces paragraph breaks
func (s *Segmenter) WithLogger(logger *slog.Logger) *Segmenter {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// State returns the current state
func (s *Segmenter) State() SegmenterState {
	return s.state
}

// Reset discards any open paragraph
func (s *Segmenter) Reset() {
	s.state = NoParagraph
	s.current = model.Paragraph{}
	s.prev = model.Fragment{}
}

// Push feeds the next fragment. When f closes the open paragraph, the
// closed paragraph is returned with ok set and f opens the next one.
func (s *Segmenter) Push(f model.Fragment) (closed model.Paragraph, ok bool) {
	if s.state == NoParagraph {
		s.open(f)
		return model.Paragraph{}, false
	}

	if join, cont := s.classify(f); cont {
		s.extend(f, join)
		return model.Paragraph{}, false
	}

	closed = s.close()
	s.open(f)
	return closed, true
}

// Flush closes and returns the open paragraph, if any
func (s *Segmenter) Flush() (model.Paragraph, bool) {
	if s.state == NoParagraph {
		return model.Paragraph{}, false
	}
	return s.close(), true
}

// Paragraphs returns a lazy sequence of the paragraphs in seq. The stream
// is consumed once, forward only; the last paragraph is flushed when seq
// ends.
func (s *Segmenter) Paragraphs(seq iter.Seq[model.Fragment]) iter.Seq[model.Paragraph] {
	return func(yield func(model.Paragraph) bool) {
		for f := range seq {
			if p, ok := s.Push(f); ok {
				if !yield(p) {
					return
				}
			}
		}
		if p, ok := s.Flush(); ok {
			yield(p)
		}
	}
}

// Segment resets the segmenter and returns all paragraphs in frags
func (s *Segmenter) Segment(frags []model.Fragment) []model.Paragraph {
	s.Reset()
	var paragraphs []model.Paragraph
	for p := range s.Paragraphs(slices.Values(frags)) {
		paragraphs = append(paragraphs, p)
	}
	return paragraphs
}

func (s *Segmenter) open(f model.Fragment) {
	s.state = InParagraph
	s.current = model.Paragraph{
		Fragments:  []model.Fragment{f},
		LineStarts: []int{0},
		Page:       f.Page,
	}
	s.startLine(f, 0)
	s.prev = f
}

func (s *Segmenter) close() model.Paragraph {
	p := s.current
	s.current = model.Paragraph{}
	s.state = NoParagraph
	return p
}

func (s *Segmenter) startLine(f model.Fragment, idx int) {
	s.lineStart = idx
	s.lineLeft = f.Left
	s.lineRight = f.Right
	s.lineBottom = f.Bottom
	s.lineIndented = s.indented(f)
}

func (s *Segmenter) extend(f model.Fragment, join model.Join) {
	idx := len(s.current.Fragments)
	s.current.Fragments = append(s.current.Fragments, f)
	s.current.Joins = append(s.current.Joins, join)

	if join == model.JoinNewLine {
		s.current.LineStarts = append(s.current.LineStarts, idx)
		s.startLine(f, idx)
	} else {
		s.lineRight = math.Max(s.lineRight, f.Right)
		s.lineBottom = math.Max(s.lineBottom, f.Bottom)
	}
	s.prev = f
}

// classify decides how f attaches to the open paragraph. cont is false
// when f must start a new paragraph.
func (s *Segmenter) classify(f model.Fragment) (join model.Join, cont bool) {
	t := s.thresholds
	prev := s.prev

	if s.config.DetectDropCaps && s.isDropCap(f) {
		return model.JoinDropCap, true
	}
	if f.SameLine(prev) && f.Left >= prev.Left-t.HorizLeeway {
		return model.JoinSameLine, true
	}

	if t.MinLineWidth > 0 && s.lineRight-s.lineLeft < t.MinLineWidth {
		s.trace("short line", f)
		return 0, false
	}

	aligned := s.aligned(f)
	if f.Page != prev.Page {
		if aligned {
			return model.JoinNewLine, true
		}
		s.trace("page boundary", f)
		return 0, false
	}

	if gap := f.Top - s.lineBottom; gap > t.Leading+t.HorizLeeway {
		s.trace("vertical gap", f)
		return 0, false
	}
	if s.indented(f) && !s.lineIndented {
		s.trace("indent", f)
		return 0, false
	}
	return model.JoinNewLine, true
}

func (s *Segmenter) aligned(f model.Fragment) bool {
	return math.Abs(f.Left-s.thresholds.MarginFor(f.Page)) <= s.thresholds.HorizLeeway
}

func (s *Segmenter) indented(f model.Fragment) bool {
	offset := f.Left - s.thresholds.MarginFor(f.Page)
	return math.Abs(offset-s.thresholds.Indent) <= s.thresholds.HorizLeeway
}

// isDropCap reports whether the previous fragment is an enlarged initial
// standing alone on its line, with f right beside it but not aligned to it.
func (s *Segmenter) isDropCap(f model.Fragment) bool {
	prev := s.prev
	if s.lineStart != len(s.current.Fragments)-1 || prev.Page != f.Page {
		return false
	}

	limit := s.config.DropCapMaxRunes
	if limit <= 0 {
		limit = 2
	}
	n := utf8.RuneCountInString(strings.TrimSpace(prev.Text))
	if n < 1 || n > limit {
		return false
	}

	if prev.Height() <= f.Height() {
		return false
	}
	if math.Abs(f.Left-prev.Right) > prev.Width()/2 {
		return false
	}

	tol := prev.Height() / 4
	return math.Abs(prev.Top-f.Top) > tol || math.Abs(prev.Bottom-f.Bottom) > tol
}

func (s *Segmenter) trace(reason string, f model.Fragment) {
	s.logger.Debug("paragraph break", "reason", reason, "page", f.Page, "top", f.Top, "left", f.Left)
}
