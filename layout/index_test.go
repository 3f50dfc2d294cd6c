package layout

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdf2html/model"
)

// makeFragment creates a test fragment from a top-left corner and a size
func makeFragment(page int, left, top, width, height float64, txt string) model.Fragment {
	return model.Fragment{
		Text:   txt,
		Page:   page,
		Top:    top,
		Bottom: top + height,
		Left:   left,
		Right:  left + width,
	}
}

// makeLine creates a 12pt high, 200pt wide single-fragment line
func makeLine(page int, left, top float64, txt string) model.Fragment {
	return makeFragment(page, left, top, 200, 12, txt)
}

// sampleFragments is one page of three indented paragraphs set on a 14pt
// pitch with 2pt between lines
func sampleFragments() []model.Fragment {
	return []model.Fragment{
		makeLine(1, 90, 100, "It was a bright"),
		makeLine(1, 72, 114, "cold day in April, and"),
		makeLine(1, 72, 128, "the clocks were striking thirteen."),
		makeLine(1, 90, 142, "Winston Smith, his chin nuzzled"),
		makeLine(1, 72, 156, "into his breast in an effort to"),
		makeLine(1, 72, 170, "escape the vile wind."),
		makeLine(1, 90, 184, "The hallway smelt of boiled"),
		makeLine(1, 72, 198, "cabbage and old rag mats."),
	}
}

func rawText(page int, top, left, width, height, font, txt string) model.RawText {
	return model.RawText{
		Page:   page,
		Top:    top,
		Left:   left,
		Width:  width,
		Height: height,
		Font:   font,
		Text:   txt,
	}
}

func TestFontIndex_Add(t *testing.T) {
	idx := NewFontIndex()

	a := idx.Add(model.FontSpec{ID: "0", Size: "12", Family: "Times"})
	b := idx.Add(model.FontSpec{ID: "1", Size: "18", Family: "Times"})
	c := idx.Add(model.FontSpec{ID: "7", Size: "12.0", Family: "Times"})
	d := idx.Add(model.FontSpec{ID: "8", Size: "12", Family: "Helvetica"})

	assert.Equal(t, a, c, "same size and family share an id")
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, d)
	assert.Equal(t, 3, idx.Len())

	assert.Equal(t, 12.0, idx.Size(a))
	assert.Equal(t, 18.0, idx.Size(b))
	assert.Equal(t, "Helvetica", idx.Family(d))
	assert.Equal(t, 0.0, idx.Size(model.NoFont))
	assert.Equal(t, 0.0, idx.Size(99))

	id, ok := idx.Lookup("7")
	require.True(t, ok)
	assert.Equal(t, a, id)

	_, ok = idx.Lookup("missing")
	assert.False(t, ok)
}

func TestFontIndex_NilIsEmpty(t *testing.T) {
	var idx *FontIndex

	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, 0.0, idx.Size(0))
	_, ok := idx.Lookup("0")
	assert.False(t, ok)
}

func TestFontIndex_Normalize(t *testing.T) {
	idx := NewFontIndex()
	idx.Add(model.FontSpec{ID: "3", Size: "11", Family: "Times"})

	records := []model.RawText{
		rawText(1, "100", "72", "200", "12", "3", "Hello"),
		rawText(1, "", "72", "200", "12", "3", "no top"),
		rawText(1, "114", "72", "200", "12", "3", ""),
		rawText(2, "128", "seventy", "200", "12", "3", "bad left"),
		rawText(2, "142.5", "72.25", "100", "12", "9", "unknown font"),
	}
	records[0].PageHeight = 792

	frags, errs := idx.Normalize(records)

	require.Len(t, frags, 2)
	assert.Equal(t, model.Fragment{
		Text:       "Hello",
		Page:       1,
		PageHeight: 792,
		Top:        100,
		Bottom:     112,
		Left:       72,
		Right:      272,
		FontID:     0,
	}, frags[0])
	assert.Equal(t, model.NoFont, frags[1].FontID)
	assert.Equal(t, 142.5, frags[1].Top)
	assert.Equal(t, 72.25, frags[1].Left)

	require.Len(t, errs, 2)

	var malformed *MalformedInputError
	require.True(t, errors.As(errs[0], &malformed))
	assert.Equal(t, "top", malformed.Field)
	assert.Equal(t, 1, malformed.Index)
	assert.ErrorIs(t, errs[0], errMissing)
	assert.Contains(t, errs[0].Error(), "missing top")

	require.True(t, errors.As(errs[1], &malformed))
	assert.Equal(t, "left", malformed.Field)
	assert.Equal(t, "seventy", malformed.Value)
	assert.Equal(t, 2, malformed.Page)
	assert.ErrorIs(t, errs[1], strconv.ErrSyntax)
}

func TestFontIndex_NormalizeRejectsNonFinite(t *testing.T) {
	records := []model.RawText{
		rawText(1, "100", "72", "200", "12", "", "first"),
		rawText(1, "NaN", "72", "200", "12", "", "nan top"),
		rawText(1, "114", "Inf", "200", "12", "", "inf left"),
		rawText(1, "128", "72", "+Inf", "12", "", "inf width"),
		rawText(1, "142", "72", "200", "-12", "", "negative height"),
		rawText(1, "156", "72", "200", "12", "", "last"),
	}

	frags, errs := NewFontIndex().Normalize(records)

	require.Len(t, frags, 2)
	assert.Equal(t, "first", frags[0].Text)
	assert.Equal(t, "last", frags[1].Text)

	require.Len(t, errs, 4)
	fields := []string{"top", "left", "width", "height"}
	for i, err := range errs {
		var malformed *MalformedInputError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, fields[i], malformed.Field)
		assert.Equal(t, i+1, malformed.Index)
	}
	assert.ErrorIs(t, errs[0], errNotFinite)
	assert.ErrorIs(t, errs[1], errNotFinite)
	assert.ErrorIs(t, errs[2], errNotFinite)
	assert.ErrorIs(t, errs[3], errNegative)
}
