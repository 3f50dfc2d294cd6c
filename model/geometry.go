package model

import "math"

// BBox represents a bounding box in page coordinates.
// The origin is the top-left corner of the page and Y grows downward,
// matching the coordinate system of the pdf2xml extractor output.
type BBox struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from its top-left corner and size
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromEdges creates a bounding box from its four edges
func NewBBoxFromEdges(left, top, right, bottom float64) BBox {
	return BBox{
		X:      math.Min(left, right),
		Y:      math.Min(top, bottom),
		Width:  math.Abs(right - left),
		Height: math.Abs(bottom - top),
	}
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Union returns the smallest box containing both boxes.
// An empty receiver is treated as the identity.
func (b BBox) Union(other BBox) BBox {
	if b.IsEmpty() && b.X == 0 && b.Y == 0 {
		return other
	}

	return NewBBoxFromEdges(
		math.Min(b.Left(), other.Left()),
		math.Min(b.Top(), other.Top()),
		math.Max(b.Right(), other.Right()),
		math.Max(b.Bottom(), other.Bottom()),
	)
}

// Intersects checks if two bounding boxes intersect
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Bottom() < other.Top() ||
		b.Top() > other.Bottom())
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}
