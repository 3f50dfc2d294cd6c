package layout

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Bin is one histogram bucket: the bucket's representative value and the
// number of samples that fell into it.
type Bin struct {
	Value float64
	Count int
}

func (b Bin) String() string {
	return fmt.Sprintf("%g:%d", b.Value, b.Count)
}

// Histogram counts samples in fixed-width bins. A sample v falls into the
// bin whose value is v rounded to the nearest multiple of the bin width.
type Histogram struct {
	width  float64
	counts map[int64]int
	total  int
}

// NewHistogram creates a histogram with the given bin width.
// A non-positive width falls back to DefaultBinWidth.
func NewHistogram(width float64) *Histogram {
	if width <= 0 {
		width = DefaultBinWidth
	}
	return &Histogram{
		width:  width,
		counts: make(map[int64]int),
	}
}

// Add records one sample
func (h *Histogram) Add(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	h.counts[int64(math.Round(v/h.width))]++
	h.total++
}

// Len returns the number of samples recorded
func (h *Histogram) Len() int {
	return h.total
}

// Mode returns the value of the most populated bin. Ties go to the smallest
// value so the result does not depend on map order. ok is false when the
// histogram is empty.
func (h *Histogram) Mode() (value float64, ok bool) {
	bins := h.Top(1)
	if len(bins) == 0 {
		return 0, false
	}
	return bins[0].Value, true
}

// Top returns up to n bins ordered by descending count, then ascending value.
func (h *Histogram) Top(n int) []Bin {
	bins := make([]Bin, 0, len(h.counts))
	for k, c := range h.counts {
		bins = append(bins, Bin{Value: float64(k) * h.width, Count: c})
	}
	sort.Slice(bins, func(i, j int) bool {
		if bins[i].Count != bins[j].Count {
			return bins[i].Count > bins[j].Count
		}
		return bins[i].Value < bins[j].Value
	})
	if n >= 0 && len(bins) > n {
		bins = bins[:n]
	}
	return bins
}

func formatBins(bins []Bin) string {
	parts := make([]string, len(bins))
	for i, b := range bins {
		parts[i] = b.String()
	}
	return strings.Join(parts, " ")
}

// median returns the median of values, or 0 for an empty slice
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
