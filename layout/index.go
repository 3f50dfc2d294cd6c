package layout

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/tsawler/pdf2html/model"
)

var (
	// errMissing marks an absent geometry attribute
	errMissing = errors.New("missing attribute")

	errNotFinite = errors.New("not a finite number")
	errNegative  = errors.New("negative extent")
)

type fontKey struct {
	size   float64
	family string
}

// FontIndex maps extractor font declarations to per-run FontIDs. Two
// declarations with the same rendered size and family share one FontID,
// whatever ids the extractor gave them.
type FontIndex struct {
	byKey  map[fontKey]model.FontID
	byRaw  map[string]model.FontID
	sizes  []float64
	family []string
}

// NewFontIndex creates an empty font index
func NewFontIndex() *FontIndex {
	return &FontIndex{
		byKey: make(map[fontKey]model.FontID),
		byRaw: make(map[string]model.FontID),
	}
}

// Add registers a font declaration and returns its FontID.
// An unparsable size is recorded as 0.
func (x *FontIndex) Add(spec model.FontSpec) model.FontID {
	size, err := strconv.ParseFloat(strings.TrimSpace(spec.Size), 64)
	if err != nil || size < 0 {
		size = 0
	}
	key := fontKey{size: size, family: spec.Family}

	id, ok := x.byKey[key]
	if !ok {
		id = model.FontID(len(x.sizes))
		x.byKey[key] = id
		x.sizes = append(x.sizes, size)
		x.family = append(x.family, spec.Family)
	}
	x.byRaw[spec.ID] = id
	return id
}

// AddAll registers every declaration in specs
func (x *FontIndex) AddAll(specs []model.FontSpec) {
	for _, spec := range specs {
		x.Add(spec)
	}
}

// Lookup returns the FontID registered for an extractor font id
func (x *FontIndex) Lookup(raw string) (model.FontID, bool) {
	if x == nil {
		return model.NoFont, false
	}
	id, ok := x.byRaw[raw]
	return id, ok
}

// Size returns the font size of id, or 0 when unknown
func (x *FontIndex) Size(id model.FontID) float64 {
	if x == nil || id < 0 || int(id) >= len(x.sizes) {
		return 0
	}
	return x.sizes[id]
}

// Family returns the font family of id, or "" when unknown
func (x *FontIndex) Family(id model.FontID) string {
	if x == nil || id < 0 || int(id) >= len(x.family) {
		return ""
	}
	return x.family[id]
}

// Len returns the number of distinct fonts
func (x *FontIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.sizes)
}

// Normalize converts extractor records into fragments. Records with missing
// or unparsable geometry are dropped and reported as *MalformedInputError;
// records with empty text are dropped silently. An unknown font id yields
// model.NoFont.
func (x *FontIndex) Normalize(records []model.RawText) ([]model.Fragment, []error) {
	fragments := make([]model.Fragment, 0, len(records))
	var errs []error

	for i, rec := range records {
		if rec.Text == "" {
			continue
		}

		var geom [4]float64
		var bad error
		for j, field := range [...]struct{ name, value string }{
			{"top", rec.Top},
			{"left", rec.Left},
			{"width", rec.Width},
			{"height", rec.Height},
		} {
			v, err := parseCoord(field.value)
			if err == nil && j >= 2 && v < 0 {
				err = errNegative
			}
			if err != nil {
				bad = &MalformedInputError{
					Page:  rec.Page,
					Index: i,
					Field: field.name,
					Value: field.value,
					Err:   err,
				}
				break
			}
			geom[j] = v
		}
		if bad != nil {
			errs = append(errs, bad)
			continue
		}

		top, left, width, height := geom[0], geom[1], geom[2], geom[3]
		font, ok := x.Lookup(rec.Font)
		if !ok {
			font = model.NoFont
		}

		fragments = append(fragments, model.Fragment{
			Text:       rec.Text,
			Page:       rec.Page,
			PageHeight: rec.PageHeight,
			Top:        top,
			Bottom:     top + height,
			Left:       left,
			Right:      left + width,
			FontID:     font,
			Bold:       rec.Bold,
		})
	}

	return fragments, errs
}

func parseCoord(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errMissing
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}
