package layout

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/tsawler/pdf2html/model"
)

var discardLogger = slog.New(slog.DiscardHandler)

// Config holds the resolved settings for one conversion
type Config struct {
	// Overrides replace calibrated thresholds
	Overrides Overrides

	// HeaderPos drops text above this Y; model.Disabled turns it off
	HeaderPos float64

	// FooterPos drops text below this Y; model.Disabled turns it off.
	// Values below -1 are offsets from the page bottom.
	FooterPos float64

	// MinLineWidth ends a paragraph after a narrower line; 0 disables unless
	// Calibration.GuessMinLineWidth is set
	MinLineWidth float64

	// SkipInitialPages drops the first n pages entirely
	SkipInitialPages int

	// DetectHeadings classifies short large-font paragraphs as headings
	DetectHeadings bool

	Calibration CalibrationConfig
	Segmenter   SegmenterConfig
	Normalizer  NormalizerConfig
	Heading     HeadingConfig

	// Metadata is copied into the output document
	Metadata model.Metadata

	// Logger receives debug diagnostics. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used when nothing is set:
// every threshold calibrated, no header or footer cutoff
func DefaultConfig() Config {
	return Config{
		HeaderPos:      model.Disabled,
		FooterPos:      model.Disabled,
		DetectHeadings: true,
		Calibration:    DefaultCalibrationConfig(),
		Segmenter:      DefaultSegmenterConfig(),
		Normalizer:     DefaultNormalizerConfig(),
		Heading:        DefaultHeadingConfig(),
		Metadata: model.Metadata{
			Encoding: "UTF-8",
		},
	}
}

// Validate reports contradictory or out-of-range settings as a
// *ConfigurationConflictError
func (c Config) Validate() error {
	for _, o := range []struct {
		name  string
		value *float64
	}{
		{"leading", c.Overrides.Leading},
		{"indent", c.Overrides.Indent},
		{"left_margin", c.Overrides.LeftMargin},
		{"horiz_leeway", c.Overrides.HorizLeeway},
	} {
		if o.value != nil && *o.value < 0 {
			return &ConfigurationConflictError{Field: o.name, Reason: fmt.Sprintf("must not be negative, got %g", *o.value)}
		}
	}

	if c.MinLineWidth < 0 {
		return &ConfigurationConflictError{Field: "min_line_width", Reason: fmt.Sprintf("must not be negative, got %g", c.MinLineWidth)}
	}
	if c.SkipInitialPages < 0 {
		return &ConfigurationConflictError{Field: "skip_initial_pages", Reason: fmt.Sprintf("must not be negative, got %d", c.SkipInitialPages)}
	}
	if c.HeaderPos < model.Disabled {
		return &ConfigurationConflictError{Field: "header_pos", Reason: fmt.Sprintf("must be -1 or a position, got %g", c.HeaderPos)}
	}
	if c.HeaderPos != model.Disabled && c.FooterPos >= 0 && c.HeaderPos >= c.FooterPos {
		return &ConfigurationConflictError{
			Field:  "header_pos",
			Reason: fmt.Sprintf("header position %g is not above footer position %g", c.HeaderPos, c.FooterPos),
		}
	}
	return nil
}

// Engine converts positioned text fragments into a document of paragraphs
type Engine struct {
	config Config
	logger *slog.Logger
}

// NewEngine creates an engine with default configuration
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultConfig())
}

// NewEngineWithConfig creates an engine with custom configuration
func NewEngineWithConfig(config Config) *Engine {
	logger := config.Logger
	if logger == nil {
		logger = discardLogger
	}
	return &Engine{
		config: config,
		logger: logger,
	}
}

// Config returns the engine's configuration
func (e *Engine) Config() Config {
	return e.config
}

// Convert runs calibration, header/footer filtering, segmentation and text
// normalization over frags, which must already be in reading order. fonts
// may be nil, in which case fragment heights stand in for font sizes.
//
// Non-fatal problems are returned as warnings; the only error is a
// *ConfigurationConflictError, reported before any work is done.
func (e *Engine) Convert(frags []model.Fragment, fonts *FontIndex) (*model.Document, []error, error) {
	if err := e.config.Validate(); err != nil {
		return nil, nil, err
	}

	doc := model.NewDocument()
	doc.Metadata = e.config.Metadata
	if doc.Metadata.Encoding == "" {
		doc.Metadata.Encoding = "UTF-8"
	}
	doc.Metadata.SkippedPages = e.config.SkipInitialPages
	doc.Thresholds = model.Thresholds{
		HeaderPos:    e.config.HeaderPos,
		FooterPos:    e.config.FooterPos,
		MinLineWidth: e.config.MinLineWidth,
	}

	frags = SkipPages(frags, e.config.SkipInitialPages)
	if len(frags) == 0 {
		return doc, nil, nil
	}

	t, warnings := NewCalibrator(e.config.Calibration).
		WithLogger(e.logger).
		Calibrate(frags, fonts, e.config.Overrides)
	t.HeaderPos = e.config.HeaderPos
	t.FooterPos = e.config.FooterPos
	if e.config.MinLineWidth > 0 || !e.config.Calibration.GuessMinLineWidth {
		t.MinLineWidth = e.config.MinLineWidth
	}
	doc.Thresholds = t

	kept := NewHeaderFooterFilter(t).WithLogger(e.logger).Filter(frags)

	var headings *HeadingClassifier
	if e.config.DetectHeadings {
		headings = NewHeadingClassifier(e.config.Heading, kept)
	}

	segmenter := NewSegmenter(t, e.config.Segmenter).WithLogger(e.logger)
	normalizer := NewTextNormalizer(e.config.Normalizer)

	for p := range segmenter.Paragraphs(slices.Values(kept)) {
		p.Text = normalizer.Normalize(p)
		if p.Text == "" {
			e.logger.Debug("dropped blank paragraph", "page", p.Page, "fragments", len(p.Fragments))
			continue
		}
		if headings != nil {
			p.Kind = headings.Classify(p)
		}
		doc.AddParagraph(p)
	}

	e.logger.Debug("converted document",
		"fragments", len(frags),
		"kept", len(kept),
		"paragraphs", doc.ParagraphCount(),
		"warnings", len(warnings))
	return doc, warnings, nil
}

// ConvertRecords normalizes raw extractor records with the given font
// declarations and converts them. Malformed records are reported as
// warnings ahead of any calibration warnings.
func (e *Engine) ConvertRecords(records []model.RawText, specs []model.FontSpec) (*model.Document, []error, error) {
	if err := e.config.Validate(); err != nil {
		return nil, nil, err
	}

	fonts := NewFontIndex()
	fonts.AddAll(specs)
	frags, malformed := fonts.Normalize(records)
	for _, w := range malformed {
		e.logger.Debug("dropped record", "error", w)
	}

	doc, warnings, err := e.Convert(frags, fonts)
	if err != nil {
		return nil, nil, err
	}
	return doc, append(malformed, warnings...), nil
}

// Convert is a convenience wrapper for NewEngineWithConfig(config).Convert
// without a font index
func Convert(frags []model.Fragment, config Config) (*model.Document, []error, error) {
	return NewEngineWithConfig(config).Convert(frags, nil)
}
