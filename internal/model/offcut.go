package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant area left over after
// cutting. Coordinates are in cm from the slab origin.
type Offcut struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the offcut area in square cm.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// MinOffcutDimension is the minimum width or height (in cm) for a
// remnant to be considered a usable offcut. Smaller remnants are waste.
const MinOffcutDimension = 5.0

// MinOffcutArea is the minimum area (in square cm) for a remnant to be
// considered usable.
const MinOffcutArea = 100.0

// DetectOffcuts identifies rectangular remnant areas of a layout that
// are large enough to be reused. Placed shapes are blocked out by their
// bounding boxes; the remaining free rectangles are filtered by the
// minimum-size thresholds and returned largest first.
func DetectOffcuts(l Layout) []Offcut {
	free := []Box{{MinX: 0, MinY: 0, MaxX: l.Slab.Width, MaxY: l.Slab.Height}}
	for _, s := range l.Shapes {
		blocked := s.Bounds()
		var next []Box
		for _, f := range free {
			next = append(next, subtractBox(f, blocked)...)
		}
		free = pruneContained(next)
	}

	var offcuts []Offcut
	for _, f := range free {
		w, h := f.Width(), f.Height()
		if w < MinOffcutDimension || h < MinOffcutDimension || w*h < MinOffcutArea {
			continue
		}
		offcuts = append(offcuts, Offcut{
			ID:     uuid.New().String()[:8],
			X:      f.MinX,
			Y:      f.MinY,
			Width:  w,
			Height: h,
		})
	}

	sort.Slice(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}

// TotalOffcutArea returns the combined area of the offcuts. Offcuts may
// overlap (maximal rectangles), so this is an upper bound on reusable
// material.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}

// subtractBox removes sub from base, returning up to four maximal
// rectangles covering the remainder.
func subtractBox(base, sub Box) []Box {
	if !base.Intersects(sub) {
		return []Box{base}
	}

	var result []Box
	// Left strip
	if sub.MinX > base.MinX {
		result = append(result, Box{MinX: base.MinX, MinY: base.MinY, MaxX: sub.MinX, MaxY: base.MaxY})
	}
	// Right strip
	if sub.MaxX < base.MaxX {
		result = append(result, Box{MinX: sub.MaxX, MinY: base.MinY, MaxX: base.MaxX, MaxY: base.MaxY})
	}
	// Top strip
	if sub.MinY > base.MinY {
		result = append(result, Box{MinX: base.MinX, MinY: base.MinY, MaxX: base.MaxX, MaxY: sub.MinY})
	}
	// Bottom strip
	if sub.MaxY < base.MaxY {
		result = append(result, Box{MinX: base.MinX, MinY: sub.MaxY, MaxX: base.MaxX, MaxY: base.MaxY})
	}
	return result
}

// pruneContained removes any box fully contained within another.
func pruneContained(boxes []Box) []Box {
	if len(boxes) <= 1 {
		return boxes
	}
	kept := make([]Box, 0, len(boxes))
	for i, a := range boxes {
		contained := false
		for j, b := range boxes {
			if i == j {
				continue
			}
			if b.Contains(a) && (a != b || i > j) {
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
