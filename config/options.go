package config

import (
	"github.com/tsawler/pdf2html/htmlout"
	"github.com/tsawler/pdf2html/layout"
	"github.com/tsawler/pdf2html/model"
)

// Options are conversion settings from one source: a flag set, the
// environment, a config file section. A nil field is unset and leaves the
// value from a lower layer in place.
type Options struct {
	Debug    *bool   `yaml:"debug,omitempty"`
	Keep     *bool   `yaml:"keep,omitempty"`
	Title    *string `yaml:"title,omitempty"`
	Subtitle *string `yaml:"subtitle,omitempty"`

	HeaderPos        *float64 `yaml:"header_pos,omitempty"`
	FooterPos        *float64 `yaml:"footer_pos,omitempty"`
	SkipInitialPages *int     `yaml:"skip_initial_pages,omitempty"`
	SkipGenerator    *bool    `yaml:"skip_generator,omitempty"`

	Leading      *float64 `yaml:"leading,omitempty"`
	Indent       *float64 `yaml:"indent,omitempty"`
	LeftMargin   *float64 `yaml:"left_margin,omitempty"`
	HorizLeeway  *float64 `yaml:"horiz_leeway,omitempty"`
	MinLineWidth *float64 `yaml:"min_line_width,omitempty"`

	GuessMinLineWidth *bool `yaml:"guess_min_line_width,omitempty"`
	MirrorMargins     *bool `yaml:"mirror_margins,omitempty"`
	JoinHyphenated    *bool `yaml:"join_hyphenated,omitempty"`
	DetectHeadings    *bool `yaml:"detect_headings,omitempty"`
	SortByPosition    *bool `yaml:"sort_by_position,omitempty"`

	Encoding *string `yaml:"encoding,omitempty"`
}

// Bool returns a pointer to v
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v
func Int(v int) *int { return &v }

// Float returns a pointer to v
func Float(v float64) *float64 { return &v }

// String returns a pointer to v
func String(v string) *string { return &v }

// Defaults returns every option that has a fixed default. Calibrated
// thresholds stay unset.
func Defaults() Options {
	return Options{
		Debug:            Bool(false),
		Keep:             Bool(false),
		HeaderPos:        Float(model.Disabled),
		FooterPos:        Float(model.Disabled),
		SkipInitialPages: Int(0),
		SkipGenerator:    Bool(false),
		MinLineWidth:      Float(0),
		GuessMinLineWidth: Bool(false),
		MirrorMargins:     Bool(false),
		JoinHyphenated:    Bool(true),
		DetectHeadings:    Bool(true),
		SortByPosition:    Bool(true),
		Encoding:          String("UTF-8"),
	}
}

// Merge returns o overlaid with every field set in over
func (o Options) Merge(over Options) Options {
	merge(&o.Debug, over.Debug)
	merge(&o.Keep, over.Keep)
	merge(&o.Title, over.Title)
	merge(&o.Subtitle, over.Subtitle)
	merge(&o.HeaderPos, over.HeaderPos)
	merge(&o.FooterPos, over.FooterPos)
	merge(&o.SkipInitialPages, over.SkipInitialPages)
	merge(&o.SkipGenerator, over.SkipGenerator)
	merge(&o.Leading, over.Leading)
	merge(&o.Indent, over.Indent)
	merge(&o.LeftMargin, over.LeftMargin)
	merge(&o.HorizLeeway, over.HorizLeeway)
	merge(&o.MinLineWidth, over.MinLineWidth)
	merge(&o.GuessMinLineWidth, over.GuessMinLineWidth)
	merge(&o.MirrorMargins, over.MirrorMargins)
	merge(&o.JoinHyphenated, over.JoinHyphenated)
	merge(&o.DetectHeadings, over.DetectHeadings)
	merge(&o.SortByPosition, over.SortByPosition)
	merge(&o.Encoding, over.Encoding)
	return o
}

func merge[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// Resolved is the fully resolved configuration for one conversion
type Resolved struct {
	// Layout configures the paragraph engine
	Layout layout.Config

	// SortByPosition orders each page's records top to bottom before conversion
	SortByPosition bool

	// SkipGenerator suppresses the generator meta tag
	SkipGenerator bool

	// Keep leaves the extractor's intermediate XML in place
	Keep bool

	Debug bool
}

// Resolve fills every unset option with its default and builds the engine
// configuration. Metadata.Generator is left for the caller.
func (o Options) Resolve() Resolved {
	o = Defaults().Merge(o)

	c := layout.DefaultConfig()
	c.Overrides = layout.Overrides{
		Leading:     o.Leading,
		Indent:      o.Indent,
		LeftMargin:  o.LeftMargin,
		HorizLeeway: o.HorizLeeway,
	}
	c.HeaderPos = *o.HeaderPos
	c.FooterPos = *o.FooterPos
	c.SkipInitialPages = *o.SkipInitialPages
	c.MinLineWidth = *o.MinLineWidth
	c.Calibration.MirrorMargins = *o.MirrorMargins
	c.Calibration.GuessMinLineWidth = *o.GuessMinLineWidth
	c.Normalizer.JoinHyphenated = *o.JoinHyphenated
	c.DetectHeadings = *o.DetectHeadings
	c.Metadata.Encoding = *o.Encoding
	if o.Title != nil {
		c.Metadata.Title = *o.Title
	}
	if o.Subtitle != nil {
		c.Metadata.Subtitle = *o.Subtitle
	}

	return Resolved{
		Layout:         c,
		SortByPosition: *o.SortByPosition,
		SkipGenerator:  *o.SkipGenerator,
		Keep:           *o.Keep,
		Debug:          *o.Debug,
	}
}

// Validate reports conflicting settings as a *layout.ConfigurationConflictError
// and an unknown output encoding as htmlout.ErrUnsupportedEncoding
func (o Options) Validate() error {
	r := o.Resolve()
	if err := r.Layout.Validate(); err != nil {
		return err
	}
	_, _, err := htmlout.ResolveEncoding(r.Layout.Metadata.Encoding)
	return err
}
