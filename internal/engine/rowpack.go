package engine

import (
	"log"
	"math"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
)

// Arrange lays shapes out in rows, left to right and top to bottom, in
// input order. It is deterministic, never rotates and never backtracks;
// rows are spaced by the tallest shape in the row plus the gap, so
// shapes in a valid result cannot overlap by construction.
//
// A shape whose row would run past the slab height is still placed (and
// logged); callers detect a slab that is too small by validating the
// result or comparing against the slab bounds.
func Arrange(shapes []model.Shape, spacing float64, slab model.Slab) []model.Shape {
	gap := math.Max(spacing, MinSpacing)

	x := EdgeMargin
	y := EdgeMargin
	rowHeight := 0.0

	placed := make([]model.Shape, 0, len(shapes))
	for _, s := range shapes {
		box := s.Bounds()
		w, h := box.Width(), box.Height()

		if x+w+EdgeMargin > slab.Width && x > EdgeMargin {
			x = EdgeMargin
			y += rowHeight + gap
			rowHeight = 0
		}
		if y+h+EdgeMargin > slab.Height {
			log.Printf("arrange: shape %s (%.1fx%.1f) does not fit below y=%.1f on %.0fx%.0f slab",
				s.ShapeID(), w, h, y, slab.Width, slab.Height)
		}

		placed = append(placed, s.MoveTo(x, y))
		x += w + gap
		if h > rowHeight {
			rowHeight = h
		}
	}
	return placed
}
