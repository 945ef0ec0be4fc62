package engine

import (
	"math"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
)

// PackShapes places the shapes' bounding boxes on the slab with a
// max-rectangles packer and reconstructs true shape geometry from the
// packed rectangles. Pieces are inserted in input order with a padding
// of max(spacing, MinSpacing) between them; the usable area excludes
// EdgeMargin on every side.
//
// Rotation applies only to kinds that support it: rectangles and
// triangles come back with swapped dimensions when the packer flipped
// them, while circles and L-shapes are always inserted upright
// regardless of allowRotate. Shapes that cannot be fitted are omitted
// from the result; callers compare output count against input count.
func PackShapes(shapes []model.Shape, spacing float64, slab model.Slab, allowRotate bool) []model.Shape {
	usableW := slab.Width - 2*EdgeMargin
	usableH := slab.Height - 2*EdgeMargin
	if usableW <= 0 || usableH <= 0 {
		return nil
	}

	pad := math.Max(spacing, MinSpacing)
	packer := newMaxRectsPacker(EdgeMargin, EdgeMargin, usableW, usableH, pad)

	placed := make([]model.Shape, 0, len(shapes))
	for _, s := range shapes {
		box := s.Bounds()
		w, h := box.Width(), box.Height()
		tryFlip := allowRotate && model.Rotatable(s) && w != h

		ok, x, y, flipped := packer.insert(w, h, tryFlip)
		if !ok {
			continue
		}

		out := s
		if flipped {
			out, _ = model.Rotate90(s)
		}
		placed = append(placed, out.MoveTo(x, y))
	}
	return placed
}

const packEps = 0.001

// freeRect is a maximal free rectangle in slab coordinates.
type freeRect struct {
	x, y, w, h float64
}

// maxRectsPacker maintains the list of maximal free rectangles over the
// usable slab area. Each insertion picks the free rect with the best
// short-side fit and splits every overlapping free rect around the
// placement, which keeps free areas maximal rather than guillotined.
type maxRectsPacker struct {
	freeRects []freeRect
	pad       float64
}

func newMaxRectsPacker(x, y, width, height, pad float64) *maxRectsPacker {
	return &maxRectsPacker{
		freeRects: []freeRect{{x: x, y: y, w: width, h: height}},
		pad:       pad,
	}
}

// insert places a w x h piece, optionally also scoring the flipped
// orientation, and returns the placement position and whether the
// flipped orientation won. The padding is consumed to the right of and
// below the piece, so neighboring placements keep at least pad apart.
func (mp *maxRectsPacker) insert(w, h float64, tryFlip bool) (ok bool, x, y float64, flipped bool) {
	bestShort := math.MaxFloat64
	bestLong := math.MaxFloat64
	found := false
	var bestX, bestY float64
	bestFlip := false

	score := func(pw, ph float64, flip bool) {
		wk := pw + mp.pad
		hk := ph + mp.pad
		for _, r := range mp.freeRects {
			if wk > r.w+packEps || hk > r.h+packEps {
				continue
			}
			leftoverHoriz := math.Abs(r.w - wk)
			leftoverVert := math.Abs(r.h - hk)
			shortSide := math.Min(leftoverHoriz, leftoverVert)
			longSide := math.Max(leftoverHoriz, leftoverVert)
			if shortSide < bestShort || (shortSide == bestShort && longSide < bestLong) {
				bestShort = shortSide
				bestLong = longSide
				bestX, bestY = r.x, r.y
				bestFlip = flip
				found = true
			}
		}
	}

	score(w, h, false)
	if tryFlip {
		score(h, w, true)
	}
	if !found {
		return false, 0, 0, false
	}

	pw, ph := w, h
	if bestFlip {
		pw, ph = h, w
	}
	mp.splitAroundPlacement(freeRect{x: bestX, y: bestY, w: pw + mp.pad, h: ph + mp.pad})
	return true, bestX, bestY, bestFlip
}

// splitAroundPlacement removes all free rects overlapping the placed
// rect and generates maximal sub-rects from the non-overlapping
// portions, then prunes rects contained within another.
func (mp *maxRectsPacker) splitAroundPlacement(placed freeRect) {
	var next []freeRect

	for _, r := range mp.freeRects {
		if !freeRectsOverlap(r, placed) {
			next = append(next, r)
			continue
		}

		// Left strip (full height of the original rect)
		if placed.x > r.x+packEps {
			next = append(next, freeRect{x: r.x, y: r.y, w: placed.x - r.x, h: r.h})
		}
		// Right strip
		if placed.x+placed.w < r.x+r.w-packEps {
			next = append(next, freeRect{
				x: placed.x + placed.w, y: r.y,
				w: (r.x + r.w) - (placed.x + placed.w), h: r.h,
			})
		}
		// Top strip (full width of the original rect)
		if placed.y > r.y+packEps {
			next = append(next, freeRect{x: r.x, y: r.y, w: r.w, h: placed.y - r.y})
		}
		// Bottom strip
		if placed.y+placed.h < r.y+r.h-packEps {
			next = append(next, freeRect{
				x: r.x, y: placed.y + placed.h,
				w: r.w, h: (r.y + r.h) - (placed.y + placed.h),
			})
		}
	}

	mp.freeRects = pruneContainedRects(next)
}

// freeRectsOverlap returns true if two rects overlap (not just touch).
func freeRectsOverlap(a, b freeRect) bool {
	return a.x < b.x+b.w-packEps && a.x+a.w > b.x+packEps &&
		a.y < b.y+b.h-packEps && a.y+a.h > b.y+packEps
}

// pruneContainedRects removes any rect fully contained within another.
func pruneContainedRects(rects []freeRect) []freeRect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]freeRect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i != j && containsFreeRect(b, a) && (a != b || i > j) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

// containsFreeRect returns true if outer fully contains inner.
func containsFreeRect(outer, inner freeRect) bool {
	return outer.x <= inner.x+packEps && outer.y <= inner.y+packEps &&
		outer.x+outer.w >= inner.x+inner.w-packEps &&
		outer.y+outer.h >= inner.y+inner.h-packEps
}
