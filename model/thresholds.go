package model

import "fmt"

// Disabled is the sentinel header/footer position meaning "no cutoff".
const Disabled = -1.0

// Thresholds are the calibrated or operator-supplied scalars that drive
// paragraph segmentation. All values are in points.
type Thresholds struct {
	// Leading is the expected vertical gap between two lines of the same paragraph
	Leading float64

	// Indent is the expected first-line offset from the left margin
	Indent float64

	// LeftMargin is the body's left edge
	LeftMargin float64

	// EvenLeftMargin is the body's left edge on even pages.
	// It is only consulted when MirrorMargins is set.
	EvenLeftMargin float64

	// MirrorMargins selects EvenLeftMargin on even pages
	MirrorMargins bool

	// HorizLeeway is the tolerance for treating two X coordinates as aligned
	HorizLeeway float64

	// HeaderPos drops text above this Y; Disabled turns it off
	HeaderPos float64

	// FooterPos drops text below this Y; Disabled turns it off.
	// Other negative values are offsets from the page bottom.
	FooterPos float64

	// MinLineWidth ends a paragraph after a line narrower than this; 0 disables
	MinLineWidth float64
}

// MarginFor returns the left margin that applies to the given page
func (t Thresholds) MarginFor(page int) float64 {
	if t.MirrorMargins && page%2 == 0 {
		return t.EvenLeftMargin
	}
	return t.LeftMargin
}

// HeaderEnabled reports whether a header cutoff is configured
func (t Thresholds) HeaderEnabled() bool {
	return t.HeaderPos != Disabled
}

// FooterEnabled reports whether a footer cutoff is configured
func (t Thresholds) FooterEnabled() bool {
	return t.FooterPos != Disabled
}

// FooterCutoff returns the absolute footer Y for a page of the given height.
// ok is false when the footer is disabled or is a bottom offset on a page
// whose height is unknown.
func (t Thresholds) FooterCutoff(pageHeight float64) (cutoff float64, ok bool) {
	switch {
	case !t.FooterEnabled():
		return 0, false
	case t.FooterPos >= 0:
		return t.FooterPos, true
	case pageHeight <= 0:
		return 0, false
	default:
		return pageHeight + t.FooterPos, true
	}
}

// String formats the thresholds for diagnostics
func (t Thresholds) String() string {
	return fmt.Sprintf("leading=%.1f indent=%.1f left_margin=%.1f/%.1f horiz_leeway=%.1f header_pos=%.0f footer_pos=%.0f min_line_width=%.1f",
		t.Leading, t.Indent, t.LeftMargin, t.EvenLeftMargin, t.HorizLeeway, t.HeaderPos, t.FooterPos, t.MinLineWidth)
}
