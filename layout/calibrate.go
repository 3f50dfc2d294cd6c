package layout

import (
	"log/slog"
	"math"

	"github.com/tsawler/pdf2html/model"
)

// Calibration defaults, used when a document offers no usable statistic
const (
	DefaultBinWidth       = 1.0
	DefaultOutlierFactor  = 3.0
	DefaultLeewayFraction = 0.25
	DefaultLineWidthRatio = 0.8

	DefaultLeading     = 3.0
	DefaultIndent      = 18.0
	DefaultLeftMargin  = 72.0
	DefaultHorizLeeway = 2.0
)

// histogramTop is the number of bins logged per histogram
const histogramTop = 5

// CalibrationConfig holds configuration for threshold calibration
type CalibrationConfig struct {
	// BinWidth is the histogram bucket width in points
	// Default: 1
	BinWidth float64

	// OutlierFactor excludes vertical gaps larger than this multiple of the
	// median gap from the leading estimate
	// Default: 3
	OutlierFactor float64

	// LeewayFraction is the horizontal leeway as a fraction of the modal font size
	// Default: 0.25
	LeewayFraction float64

	// MirrorMargins calibrates odd and even pages' left margins separately
	// Default: false
	MirrorMargins bool

	// GuessMinLineWidth derives the minimum paragraph line width from the
	// widest of the three most frequent fragment widths
	// Default: false
	GuessMinLineWidth bool

	// LineWidthRatio scales the guessed text width into the minimum line width
	// Default: 0.8
	LineWidthRatio float64
}

// DefaultCalibrationConfig returns sensible default configuration
func DefaultCalibrationConfig() CalibrationConfig {
	return CalibrationConfig{
		BinWidth:       DefaultBinWidth,
		OutlierFactor:  DefaultOutlierFactor,
		LeewayFraction: DefaultLeewayFraction,
		LineWidthRatio: DefaultLineWidthRatio,
	}
}

// Overrides are operator-supplied thresholds. A nil field is calibrated;
// a set field is used verbatim.
type Overrides struct {
	Leading     *float64
	Indent      *float64
	LeftMargin  *float64
	HorizLeeway *float64
}

// Float returns a pointer to v, for filling Overrides
func Float(v float64) *float64 {
	return &v
}

// Calibrator derives segmentation thresholds from document statistics
type Calibrator struct {
	config CalibrationConfig
	logger *slog.Logger
}

// NewCalibrator creates a calibrator with the given configuration
func NewCalibrator(config CalibrationConfig) *Calibrator {
	return &Calibrator{
		config: config,
		logger: discardLogger,
	}
}

// WithLogger sets the logger that receives histogram diagnostics
func (c *Calibrator) WithLogger(logger *slog.Logger) *Calibrator {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// line is a visual line found by scanning fragments in order
type line struct {
	first  int
	page   int
	left   float64
	top    float64
	bottom float64
}

// scanLines groups fragments into visual lines. A fragment starts a line
// when it is the first of its page or is not on the previous fragment's line.
func scanLines(frags []model.Fragment) []line {
	var lines []line
	for i, f := range frags {
		if i == 0 || !f.SameLine(frags[i-1]) {
			lines = append(lines, line{
				first:  i,
				page:   f.Page,
				left:   f.Left,
				top:    f.Top,
				bottom: f.Bottom,
			})
			continue
		}
		cur := &lines[len(lines)-1]
		cur.bottom = math.Max(cur.bottom, f.Bottom)
	}
	return lines
}

// Calibrate computes thresholds for frags. Thresholds that cannot be
// derived fall back to documented defaults, each reported as a
// *DegenerateCalibrationWarning. Calibration never fails.
//
// Header and footer positions are returned disabled; they are never
// calibrated.
func (c *Calibrator) Calibrate(frags []model.Fragment, fonts *FontIndex, o Overrides) (model.Thresholds, []error) {
	t := model.Thresholds{
		HeaderPos:     model.Disabled,
		FooterPos:     model.Disabled,
		MirrorMargins: c.config.MirrorMargins,
	}
	var warnings []error
	fallback := func(name string, def float64, reason string) float64 {
		warnings = append(warnings, &DegenerateCalibrationWarning{
			Threshold: name,
			Default:   def,
			Reason:    reason,
		})
		c.logger.Debug("calibration fell back to default", "threshold", name, "value", def, "reason", reason)
		return def
	}

	lines := scanLines(frags)

	if o.HorizLeeway != nil {
		t.HorizLeeway = *o.HorizLeeway
	} else if size, ok := c.modalFontSize(frags, fonts); ok && size > 0 {
		t.HorizLeeway = c.leewayFraction() * size
		c.guessed("horiz_leeway", t.HorizLeeway)
	} else {
		t.HorizLeeway = fallback("horiz_leeway", DefaultHorizLeeway, "no font size")
	}

	switch {
	case o.LeftMargin != nil:
		t.LeftMargin = *o.LeftMargin
		t.EvenLeftMargin = *o.LeftMargin
	case c.config.MirrorMargins:
		odd, okOdd := c.leftMargin(frags, lines, "left_margin_odd", func(p int) bool { return p%2 == 1 })
		even, okEven := c.leftMargin(frags, lines, "left_margin_even", func(p int) bool { return p%2 == 0 })
		switch {
		case okOdd && okEven:
			t.LeftMargin, t.EvenLeftMargin = odd, even
		case okOdd:
			t.LeftMargin, t.EvenLeftMargin = odd, odd
		case okEven:
			t.LeftMargin, t.EvenLeftMargin = even, even
		default:
			t.LeftMargin = fallback("left_margin", DefaultLeftMargin, "no line starts")
			t.EvenLeftMargin = t.LeftMargin
		}
	default:
		m, ok := c.leftMargin(frags, lines, "left_margin", nil)
		if !ok {
			m = fallback("left_margin", DefaultLeftMargin, "no line starts")
		}
		t.LeftMargin, t.EvenLeftMargin = m, m
	}

	if o.Leading != nil {
		t.Leading = *o.Leading
	} else if v, ok := c.leading(frags); ok {
		t.Leading = v
	} else {
		t.Leading = fallback("leading", DefaultLeading, "no vertical gaps")
	}

	if o.Indent != nil {
		t.Indent = *o.Indent
	} else if v, ok := c.indent(lines, t); ok {
		t.Indent = v
	} else {
		t.Indent = fallback("indent", DefaultIndent, "no indented line starts")
	}

	if c.config.GuessMinLineWidth {
		if v, ok := c.minLineWidth(frags); ok {
			t.MinLineWidth = v
		} else {
			c.logger.Debug("minimum line width not guessed", "reason", "no fragment widths")
		}
	}

	c.logger.Debug("calibrated thresholds", "thresholds", t.String())
	return t, warnings
}

func (c *Calibrator) leewayFraction() float64 {
	if c.config.LeewayFraction <= 0 {
		return DefaultLeewayFraction
	}
	return c.config.LeewayFraction
}

func (c *Calibrator) lineWidthRatio() float64 {
	if c.config.LineWidthRatio <= 0 {
		return DefaultLineWidthRatio
	}
	return c.config.LineWidthRatio
}

// minLineWidth takes the widest of the three most frequent fragment widths
// as the text width and scales it by the line width ratio.
func (c *Calibrator) minLineWidth(frags []model.Fragment) (float64, bool) {
	widths := NewHistogram(c.config.BinWidth)
	for _, f := range frags {
		if w := f.Width(); w > 0 {
			widths.Add(w)
		}
	}
	c.dump("text_width", widths)

	top := widths.Top(3)
	if len(top) == 0 {
		return 0, false
	}
	textWidth := top[0].Value
	for _, b := range top[1:] {
		textWidth = math.Max(textWidth, b.Value)
	}
	v := textWidth * c.lineWidthRatio()
	c.guessed("min_line_width", v)
	return v, true
}

func (c *Calibrator) outlierFactor() float64 {
	if c.config.OutlierFactor <= 0 {
		return DefaultOutlierFactor
	}
	return c.config.OutlierFactor
}

// modalFontSize returns the most common font size, preferring the font
// index and falling back to fragment height.
func (c *Calibrator) modalFontSize(frags []model.Fragment, fonts *FontIndex) (float64, bool) {
	h := NewHistogram(c.config.BinWidth)
	for _, f := range frags {
		size := fonts.Size(f.FontID)
		if size <= 0 {
			size = f.Height()
		}
		if size > 0 {
			h.Add(size)
		}
	}
	c.dump("font_size", h)
	return h.Mode()
}

// leftMargin returns the modal left edge of line starts on pages accepted
// by onPage (all pages when nil).
func (c *Calibrator) leftMargin(frags []model.Fragment, lines []line, name string, onPage func(int) bool) (float64, bool) {
	h := NewHistogram(c.config.BinWidth)
	for _, ln := range lines {
		if onPage != nil && !onPage(ln.page) {
			continue
		}
		h.Add(frags[ln.first].Left)
	}
	c.dump(name, h)
	v, ok := h.Mode()
	if ok {
		c.guessed(name, v)
	}
	return v, ok
}

// leading returns the modal positive gap between consecutive fragments on
// the same page, ignoring gaps above OutlierFactor times the median.
func (c *Calibrator) leading(frags []model.Fragment) (float64, bool) {
	var gaps []float64
	for i := 1; i < len(frags); i++ {
		prev, f := frags[i-1], frags[i]
		if prev.Page != f.Page {
			continue
		}
		if gap := f.Top - prev.Bottom; gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) == 0 {
		return 0, false
	}

	limit := c.outlierFactor() * median(gaps)
	h := NewHistogram(c.config.BinWidth)
	for _, g := range gaps {
		if g <= limit {
			h.Add(g)
		}
	}
	c.dump("leading", h)
	v, ok := h.Mode()
	if ok {
		c.guessed("leading", v)
	}
	return v, ok
}

// indent estimates the first-line indent in two passes. The first pass
// samples lines that the vertical gap alone marks as paragraph starts, plus
// the document's first line, and needs at least two agreeing samples. The
// second pass samples lines that follow a body-aligned line. A lone first
// pass sample is the last resort.
func (c *Calibrator) indent(lines []line, t model.Thresholds) (float64, bool) {
	gapStarts := NewHistogram(c.config.BinWidth)
	for i, ln := range lines {
		seed := i == 0
		if i > 0 {
			prev := lines[i-1]
			seed = prev.page == ln.page && ln.top-prev.bottom > t.Leading+t.HorizLeeway
		}
		if !seed {
			continue
		}
		if off := ln.left - t.MarginFor(ln.page); off > t.HorizLeeway {
			gapStarts.Add(off)
		}
	}
	c.dump("indent_gap_starts", gapStarts)
	if top := gapStarts.Top(1); len(top) == 1 && top[0].Count >= 2 {
		c.guessed("indent", top[0].Value)
		return top[0].Value, true
	}

	afterBody := NewHistogram(c.config.BinWidth)
	for i := 1; i < len(lines); i++ {
		prev, ln := lines[i-1], lines[i]
		if math.Abs(prev.left-t.MarginFor(prev.page)) > t.HorizLeeway {
			continue
		}
		if off := ln.left - t.MarginFor(ln.page); off > t.HorizLeeway {
			afterBody.Add(off)
		}
	}
	c.dump("indent_after_body", afterBody)
	if v, ok := afterBody.Mode(); ok {
		c.guessed("indent", v)
		return v, true
	}

	v, ok := gapStarts.Mode()
	if ok {
		c.guessed("indent", v)
	}
	return v, ok
}

func (c *Calibrator) dump(name string, h *Histogram) {
	c.logger.Debug("top 5 most frequent values", "threshold", name, "samples", h.Len(), "bins", formatBins(h.Top(histogramTop)))
}

func (c *Calibrator) guessed(name string, v float64) {
	c.logger.Debug("guessed threshold", "threshold", name, "value", v)
}
