package layout

import (
	"log/slog"

	"github.com/tsawler/pdf2html/model"
)

// RegionType names the vertical band a fragment falls into
type RegionType int

const (
	Body RegionType = iota
	Header
	Footer
)

func (r RegionType) String() string {
	switch r {
	case Header:
		return "header"
	case Footer:
		return "footer"
	default:
		return "body"
	}
}

// HeaderFooterFilter drops fragments above the header cutoff or below the
// footer cutoff. With both cutoffs disabled it is the identity.
type HeaderFooterFilter struct {
	thresholds model.Thresholds
	logger     *slog.Logger
}

// NewHeaderFooterFilter creates a filter for the header and footer
// positions in t
func NewHeaderFooterFilter(t model.Thresholds) *HeaderFooterFilter {
	return &HeaderFooterFilter{
		thresholds: t,
		logger:     discardLogger,
	}
}

// WithLogger sets the logger that traces dropped fragments
func (h *HeaderFooterFilter) WithLogger(logger *slog.Logger) *HeaderFooterFilter {
	if logger != nil {
		h.logger = logger
	}
	return h
}

// Region classifies f against the cutoffs. A negative footer offset on a
// page of unknown height never matches.
func (h *HeaderFooterFilter) Region(f model.Fragment) RegionType {
	t := h.thresholds
	if t.HeaderEnabled() && f.Top < t.HeaderPos {
		return Header
	}
	if cutoff, ok := t.FooterCutoff(f.PageHeight); ok && f.Bottom > cutoff {
		return Footer
	}
	return Body
}

// Keep reports whether f lies inside the kept region
func (h *HeaderFooterFilter) Keep(f model.Fragment) bool {
	return h.Region(f) == Body
}

// Filter returns the kept fragments in their original order
func (h *HeaderFooterFilter) Filter(frags []model.Fragment) []model.Fragment {
	if !h.thresholds.HeaderEnabled() && !h.thresholds.FooterEnabled() {
		return frags
	}

	kept := make([]model.Fragment, 0, len(frags))
	for _, f := range frags {
		if region := h.Region(f); region != Body {
			h.logger.Debug("dropped fragment", "region", region.String(), "page", f.Page, "top", f.Top, "bottom", f.Bottom, "text", f.Text)
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// SkipPages drops every fragment on the first n pages
func SkipPages(frags []model.Fragment, n int) []model.Fragment {
	if n <= 0 {
		return frags
	}
	kept := make([]model.Fragment, 0, len(frags))
	for _, f := range frags {
		if f.Page > n {
			kept = append(kept, f)
		}
	}
	return kept
}
