package model

import "math"

// MMPerCM converts internal centimeter coordinates to the millimeter
// coordinates used by interchange files (DXF, SVG).
const MMPerCM = 10.0

// Point2D represents a 2D coordinate in cm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the axis-aligned box enclosing the outline.
func (o Outline) BoundingBox() Box {
	if len(o) == 0 {
		return Box{}
	}
	b := Box{MinX: o[0].X, MinY: o[0].Y, MaxX: o[0].X, MaxY: o[0].Y}
	for _, p := range o[1:] {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	return b
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Area computes the absolute enclosed area using the shoelace formula.
func (o Outline) Area() float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return math.Abs(area) / 2
}

// Box is an axis-aligned bounding box in cm.
type Box struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent of the box.
func (b Box) Height() float64 {
	return b.MaxY - b.MinY
}

// Area returns the box area. Degenerate boxes report zero.
func (b Box) Area() float64 {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Expand grows the box by d on all four sides.
func (b Box) Expand(d float64) Box {
	return Box{MinX: b.MinX - d, MinY: b.MinY - d, MaxX: b.MaxX + d, MaxY: b.MaxY + d}
}

// Intersects reports whether two boxes overlap. Boxes that merely touch
// along an edge do not count as intersecting.
func (b Box) Intersects(other Box) bool {
	return b.MinX < other.MaxX && other.MinX < b.MaxX &&
		b.MinY < other.MaxY && other.MinY < b.MaxY
}

// Contains reports whether inner lies entirely within the box, edges included.
func (b Box) Contains(inner Box) bool {
	return b.MinX <= inner.MinX && b.MinY <= inner.MinY &&
		b.MaxX >= inner.MaxX && b.MaxY >= inner.MaxY
}
