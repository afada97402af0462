// Package layout is the rendering collaborator of the editing core. It lays
// the document tree out on a grid of terminal cells, answers geometry queries
// used for hit-testing and vertical motion, and schedules deferred layout
// passes.
package layout

import "github.com/zjrosen/ezwrite/internal/document"

// Rect is an axis-aligned box in terminal cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Bottom returns the first row below r.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// CenterX returns the horizontal middle of r.
func (r Rect) CenterX() int {
	return r.X + r.Width/2
}

func (r Rect) union(o Rect) Rect {
	if r.Width == 0 && r.Height == 0 {
		return o
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.Width, o.X+o.Width), max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Geometry answers per-entity geometry queries after a layout pass. The
// editing core only ever hands it word indices and word-relative offsets.
type Geometry interface {
	// Bounds returns the box of an entity in root coordinates.
	Bounds(id document.ID) (Rect, bool)
	// PointInside reports whether the root coordinate (x, y) hits the entity.
	PointInside(id document.ID, x, y int) bool
	// WordIndexAt returns the word index closest to the offset dx from the
	// left edge of a token.
	WordIndexAt(id document.ID, dx int) int
	// OffsetOf returns the offset of word index idx from the left edge of a
	// token.
	OffsetOf(id document.ID, idx int) int
}
