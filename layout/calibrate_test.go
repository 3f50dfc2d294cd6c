package layout

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdf2html/model"
)

func TestCalibrator_SampleDocument(t *testing.T) {
	c := NewCalibrator(DefaultCalibrationConfig())

	th, warnings := c.Calibrate(sampleFragments(), nil, Overrides{})

	assert.Empty(t, warnings)
	assert.Equal(t, 72.0, th.LeftMargin)
	assert.Equal(t, 72.0, th.EvenLeftMargin)
	assert.Equal(t, 2.0, th.Leading)
	assert.Equal(t, 18.0, th.Indent)
	assert.Equal(t, 3.0, th.HorizLeeway)
	assert.Equal(t, model.Disabled, th.HeaderPos)
	assert.Equal(t, model.Disabled, th.FooterPos)
}

func TestCalibrator_GapSeparatedParagraphs(t *testing.T) {
	// Paragraphs separated by a blank line and indented by 24pt
	frags := []model.Fragment{
		makeLine(1, 96, 100, "one"),
		makeLine(1, 72, 114, "one, continued"),
		makeLine(1, 96, 142, "two"),
		makeLine(1, 72, 156, "two, continued"),
		makeLine(1, 96, 184, "three"),
		makeLine(1, 72, 198, "three, continued"),
	}

	th, warnings := NewCalibrator(DefaultCalibrationConfig()).Calibrate(frags, nil, Overrides{})

	assert.Empty(t, warnings)
	assert.Equal(t, 2.0, th.Leading)
	assert.Equal(t, 24.0, th.Indent)
}

func TestCalibrator_FontIndexSetsLeeway(t *testing.T) {
	fonts := NewFontIndex()
	body := fonts.Add(model.FontSpec{ID: "0", Size: "10", Family: "Times"})

	frags := sampleFragments()
	for i := range frags {
		frags[i].FontID = body
	}

	th, _ := NewCalibrator(DefaultCalibrationConfig()).Calibrate(frags, fonts, Overrides{})
	assert.Equal(t, 2.5, th.HorizLeeway)
}

func TestCalibrator_SingleFragment(t *testing.T) {
	frags := []model.Fragment{makeFragment(1, 100, 200, 50, 8, "alone")}

	th, warnings := NewCalibrator(DefaultCalibrationConfig()).Calibrate(frags, nil, Overrides{})

	assert.Equal(t, 100.0, th.LeftMargin)
	assert.Equal(t, 2.0, th.HorizLeeway)
	assert.Equal(t, DefaultLeading, th.Leading)
	assert.Equal(t, DefaultIndent, th.Indent)

	require.Len(t, warnings, 2)
	names := make([]string, 0, len(warnings))
	for _, w := range warnings {
		var degenerate *DegenerateCalibrationWarning
		require.True(t, errors.As(w, &degenerate))
		names = append(names, degenerate.Threshold)
	}
	assert.Equal(t, []string{"leading", "indent"}, names)
}

func TestCalibrator_Empty(t *testing.T) {
	th, warnings := NewCalibrator(DefaultCalibrationConfig()).Calibrate(nil, nil, Overrides{})

	assert.Len(t, warnings, 4)
	assert.Equal(t, DefaultLeading, th.Leading)
	assert.Equal(t, DefaultIndent, th.Indent)
	assert.Equal(t, DefaultLeftMargin, th.LeftMargin)
	assert.Equal(t, DefaultHorizLeeway, th.HorizLeeway)
}

func TestCalibrator_Overrides(t *testing.T) {
	o := Overrides{
		Leading:     Float(5),
		Indent:      Float(10),
		LeftMargin:  Float(50),
		HorizLeeway: Float(1),
	}

	th, warnings := NewCalibrator(DefaultCalibrationConfig()).Calibrate(nil, nil, o)

	assert.Empty(t, warnings)
	assert.Equal(t, 5.0, th.Leading)
	assert.Equal(t, 10.0, th.Indent)
	assert.Equal(t, 50.0, th.LeftMargin)
	assert.Equal(t, 50.0, th.EvenLeftMargin)
	assert.Equal(t, 1.0, th.HorizLeeway)
}

func TestCalibrator_MirrorMargins(t *testing.T) {
	var frags []model.Fragment
	for page := 1; page <= 4; page++ {
		left := 72.0
		if page%2 == 0 {
			left = 100
		}
		for i := 0; i < 3; i++ {
			frags = append(frags, makeLine(page, left, 100+float64(i)*14, "text"))
		}
	}

	config := DefaultCalibrationConfig()
	config.MirrorMargins = true
	th, _ := NewCalibrator(config).Calibrate(frags, nil, Overrides{})

	assert.True(t, th.MirrorMargins)
	assert.Equal(t, 72.0, th.LeftMargin)
	assert.Equal(t, 100.0, th.EvenLeftMargin)
	assert.Equal(t, 72.0, th.MarginFor(3))
	assert.Equal(t, 100.0, th.MarginFor(4))

	th, _ = NewCalibrator(DefaultCalibrationConfig()).Calibrate(frags, nil, Overrides{})
	assert.False(t, th.MirrorMargins)
	assert.Equal(t, 72.0, th.MarginFor(4), "tie between margins goes to the smaller one")
}

func TestCalibrator_GuessMinLineWidth(t *testing.T) {
	var frags []model.Fragment
	top := 100.0
	for _, w := range []float64{300, 300, 300, 250, 250, 50, 500} {
		frags = append(frags, makeFragment(1, 72, top, w, 12, "line"))
		top += 14
	}

	th, _ := NewCalibrator(DefaultCalibrationConfig()).Calibrate(frags, nil, Overrides{})
	assert.Equal(t, 0.0, th.MinLineWidth, "off unless asked for")

	config := DefaultCalibrationConfig()
	config.GuessMinLineWidth = true
	th, _ = NewCalibrator(config).Calibrate(frags, nil, Overrides{})

	// The three most frequent widths are 300, 250 and 50; the one-off 500
	// is not among them.
	assert.Equal(t, 240.0, th.MinLineWidth)

	th, _ = NewCalibrator(config).Calibrate(nil, nil, Overrides{})
	assert.Equal(t, 0.0, th.MinLineWidth)
}

func TestCalibrator_OutlierGapsIgnored(t *testing.T) {
	// Line gaps of 2, 3 and 4 points once each, then two 30pt gaps. The
	// 30pt bin is the most populated but lies above three times the median.
	frags := []model.Fragment{
		makeLine(1, 72, 100, "a"),
		makeLine(1, 72, 114, "b"),
		makeLine(1, 72, 129, "c"),
		makeLine(1, 72, 145, "d"),
		makeLine(1, 72, 187, "e"),
		makeLine(1, 72, 229, "f"),
	}

	th, _ := NewCalibrator(DefaultCalibrationConfig()).Calibrate(frags, nil, Overrides{})
	assert.Equal(t, 2.0, th.Leading)
}

func TestCalibrator_Deterministic(t *testing.T) {
	c := NewCalibrator(DefaultCalibrationConfig())
	first, _ := c.Calibrate(sampleFragments(), nil, Overrides{})
	for i := 0; i < 10; i++ {
		again, _ := c.Calibrate(sampleFragments(), nil, Overrides{})
		assert.Equal(t, first, again)
	}
}

func TestCalibrator_LogsHistograms(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewCalibrator(DefaultCalibrationConfig()).WithLogger(logger).Calibrate(sampleFragments(), nil, Overrides{})

	out := buf.String()
	assert.Contains(t, out, "top 5 most frequent values")
	assert.Contains(t, out, "threshold=left_margin")
	assert.Contains(t, out, "guessed threshold")
}
