package reading

import (
	"math"
	"sync/atomic"
)

// DefaultScrollTopThreshold is the scroll offset past which the "back to top"
// affordance is shown.
const DefaultScrollTopThreshold = 400

// UnitsPerRow converts a terminal row into scroll units, so the threshold
// above keeps its meaning when offsets are measured in rows.
const UnitsPerRow = 20

// Rect is the article's bounding box relative to the viewport. Top is
// negative once the article's start has scrolled above the viewport.
type Rect struct {
	Top    float64
	Height float64
}

// Percent returns how far the reader has progressed through the article,
// clamped to [0, 100]. A zero or negative height yields 0.
func Percent(top, height float64) float64 {
	if height <= 0 || math.IsNaN(height) || math.IsNaN(top) {
		return 0
	}
	p := (-top / height) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// Percent computes the progress for r.
func (r Rect) Percent() float64 {
	return Percent(r.Top, r.Height)
}

// ScrollTopVisible reports whether the scroll-to-top control should show.
func ScrollTopVisible(offset, threshold float64) bool {
	return offset > threshold
}

// RowsToUnits converts a row offset into scroll units.
func RowsToUnits(rows int) float64 {
	return float64(rows * UnitsPerRow)
}

// Cell holds the latest progress value. One writer, any number of readers.
type Cell struct {
	bits atomic.Uint64
}

// Set stores p.
func (c *Cell) Set(p float64) {
	c.bits.Store(math.Float64bits(p))
}

// Load returns the last stored value, 0 if none.
func (c *Cell) Load() float64 {
	return math.Float64frombits(c.bits.Load())
}

// Reset returns the cell to 0.
func (c *Cell) Reset() {
	c.bits.Store(0)
}
