// Package engine implements the nesting core: collision detection,
// greedy row packing, max-rectangles bin packing and the strategy
// search that picks the most efficient layout. All functions are pure
// over their inputs; the engine holds no state between calls.
package engine

import (
	"math"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
)

const (
	// EdgeMargin is the keep-out distance from the slab edges, in cm.
	EdgeMargin = 1.0
	// MinSpacing is the smallest gap enforced between packed pieces, in cm.
	MinSpacing = 0.5

	// boundsEps absorbs float drift when comparing placements against
	// the slab edges.
	boundsEps = 1e-9
)

// Collides reports whether two shapes overlap when kept buffer apart.
//
// Circle pairs use the exact center-distance test. Everything else goes
// through a buffered bounding-box rejection followed by the exact
// outline test: vertex-in-polygon both ways (handles containment), then
// pairwise edge intersection (handles crossings with no contained
// vertex). The buffer applies to the bounding-box pre-check only, not
// to the outline test; it is packer spacing, not a geometric dilation.
func Collides(a, b model.Shape, buffer float64) bool {
	if ca, ok := a.(model.Circle); ok {
		if cb, ok := b.(model.Circle); ok {
			pa, pb := ca.Center(), cb.Center()
			dx, dy := pa.X-pb.X, pa.Y-pb.Y
			return math.Sqrt(dx*dx+dy*dy) < ca.Radius+cb.Radius+buffer
		}
	}

	if !a.Bounds().Expand(buffer).Intersects(b.Bounds().Expand(buffer)) {
		return false
	}

	outlineA := a.OutlinePolygon()
	outlineB := b.OutlinePolygon()

	for _, p := range outlineA {
		if pointInPolygon(p, outlineB) {
			return true
		}
	}
	for _, p := range outlineB {
		if pointInPolygon(p, outlineA) {
			return true
		}
	}
	return outlinesIntersect(outlineA, outlineB)
}

// WithinBounds reports whether the shape's bounding box lies within
// [margin, slabWidth-margin] x [margin, slabHeight-margin].
func WithinBounds(s model.Shape, slab model.Slab, margin float64) bool {
	b := s.Bounds()
	return b.MinX >= margin-boundsEps &&
		b.MinY >= margin-boundsEps &&
		b.MaxX <= slab.Width-margin+boundsEps &&
		b.MaxY <= slab.Height-margin+boundsEps
}

// IsValidArrangement reports whether every shape is in bounds (margin
// EdgeMargin) and every pair of distinct shapes clears spacing/2.
// Quadratic in shape count, which is fine for the tens of pieces a slab
// holds; a spatial index would only pay off far beyond that.
func IsValidArrangement(shapes []model.Shape, slab model.Slab, spacing float64) bool {
	for _, s := range shapes {
		if !WithinBounds(s, slab, EdgeMargin) {
			return false
		}
	}
	for i := 0; i < len(shapes); i++ {
		for j := i + 1; j < len(shapes); j++ {
			if Collides(shapes[i], shapes[j], spacing/2) {
				return false
			}
		}
	}
	return true
}

// pointInPolygon performs a ray-casting test. Points exactly on the
// boundary are not considered inside.
func pointInPolygon(pt model.Point2D, poly model.Outline) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) &&
			pt.X < (pj.X-pi.X)*(pt.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// outlinesIntersect reports whether any edge of a crosses any edge of b.
func outlinesIntersect(a, b model.Outline) bool {
	for i := 0; i < len(a); i++ {
		a1 := a[i]
		a2 := a[(i+1)%len(a)]
		for j := 0; j < len(b); j++ {
			b1 := b[j]
			b2 := b[(j+1)%len(b)]
			if segmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// orientation returns the sign of the cross product (q-p) x (r-p):
// 1 for counter-clockwise, -1 for clockwise, 0 for collinear.
func orientation(p, q, r model.Point2D) int {
	cross := (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
	switch {
	case cross > 0:
		return 1
	case cross < 0:
		return -1
	default:
		return 0
	}
}

// onSegment reports whether collinear point q lies on segment pr.
func onSegment(p, q, r model.Point2D) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// segmentsIntersect tests segments p1p2 and q1q2, including collinear
// overlap.
func segmentsIntersect(p1, p2, q1, q2 model.Point2D) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	if o1 == 0 && onSegment(p1, q1, p2) {
		return true
	}
	if o2 == 0 && onSegment(p1, q2, p2) {
		return true
	}
	if o3 == 0 && onSegment(q1, p1, q2) {
		return true
	}
	if o4 == 0 && onSegment(q1, p2, q2) {
		return true
	}
	return false
}
