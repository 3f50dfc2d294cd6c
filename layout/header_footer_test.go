package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsawler/pdf2html/model"
)

func cutoffs(header, footer float64) model.Thresholds {
	return model.Thresholds{HeaderPos: header, FooterPos: footer}
}

func TestHeaderFooterFilter_DisabledIsIdentity(t *testing.T) {
	frags := []model.Fragment{
		makeLine(1, 72, 10, "running head"),
		makeLine(1, 72, 400, "body"),
		makeLine(1, 72, 780, "12"),
	}

	f := NewHeaderFooterFilter(cutoffs(model.Disabled, model.Disabled))

	assert.Equal(t, frags, f.Filter(frags))
	for _, fr := range frags {
		assert.True(t, f.Keep(fr))
	}
}

func TestHeaderFooterFilter_Region(t *testing.T) {
	tests := []struct {
		name   string
		header float64
		footer float64
		frag   model.Fragment
		want   RegionType
	}{
		{"above header", 50, model.Disabled, makeFragment(1, 72, 30, 100, 12, "x"), Header},
		{"at header", 50, model.Disabled, makeFragment(1, 72, 50, 100, 12, "x"), Body},
		{"below footer", model.Disabled, 700, makeFragment(1, 72, 695, 100, 12, "x"), Footer},
		{"touching footer", model.Disabled, 700, makeFragment(1, 72, 688, 100, 12, "x"), Body},
		{"between", 50, 700, makeFragment(1, 72, 300, 100, 12, "x"), Body},
		{"header off", model.Disabled, 700, makeFragment(1, 72, 0, 100, 12, "x"), Body},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewHeaderFooterFilter(cutoffs(tt.header, tt.footer))
			assert.Equal(t, tt.want, f.Region(tt.frag))
		})
	}
}

func TestHeaderFooterFilter_NegativeFooterOffset(t *testing.T) {
	f := NewHeaderFooterFilter(cutoffs(model.Disabled, -72))

	low := makeFragment(1, 72, 725, 100, 12, "page 1")
	low.PageHeight = 792
	assert.False(t, f.Keep(low), "bottom 737 is below 792-72")

	high := makeFragment(1, 72, 700, 100, 12, "body")
	high.PageHeight = 792
	assert.True(t, f.Keep(high))

	unknown := makeFragment(1, 72, 725, 100, 12, "no page height")
	assert.True(t, f.Keep(unknown), "unknown page height keeps the fragment")
}

func TestHeaderFooterFilter_Idempotent(t *testing.T) {
	frags := []model.Fragment{
		makeLine(1, 72, 20, "head"),
		makeLine(1, 72, 100, "one"),
		makeLine(1, 72, 114, "two"),
		makeLine(1, 72, 760, "foot"),
		makeLine(2, 72, 20, "head"),
		makeLine(2, 72, 100, "three"),
	}

	f := NewHeaderFooterFilter(cutoffs(50, 700))
	once := f.Filter(frags)
	twice := f.Filter(once)

	assert.Equal(t, once, twice)
	texts := make([]string, len(once))
	for i, fr := range once {
		texts[i] = fr.Text
	}
	assert.Equal(t, []string{"one", "two", "three"}, texts)
}

func TestSkipPages(t *testing.T) {
	frags := []model.Fragment{
		makeLine(1, 72, 100, "cover"),
		makeLine(2, 72, 100, "contents"),
		makeLine(3, 72, 100, "chapter"),
	}

	assert.Equal(t, frags, SkipPages(frags, 0))
	assert.Equal(t, frags[2:], SkipPages(frags, 2))
	assert.Empty(t, SkipPages(frags, 5))
}

func TestRegionType_String(t *testing.T) {
	assert.Equal(t, "header", Header.String())
	assert.Equal(t, "footer", Footer.String())
	assert.Equal(t, "body", Body.String())
}
