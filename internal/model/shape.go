package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Kind identifies the shape family of a placeable piece.
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindLShapeTL  Kind = "l-shape-tl"
	KindLShapeTR  Kind = "l-shape-tr"
	KindLShapeBL  Kind = "l-shape-bl"
	KindLShapeBR  Kind = "l-shape-br"
	KindTriangle  Kind = "triangle"
	KindCircle    Kind = "circle"
)

// CircleSegments is the number of samples used to approximate a circle
// outline for collision testing. Exact center-distance tests are used
// when both shapes are circles.
const CircleSegments = 16

// Shape is a placeable 2D cut piece. Implementations are immutable
// values: operations return new shapes with the ID preserved, and the
// engine never mutates caller-owned shapes in place.
//
// Position is the top-left corner of the shape's bounding box, in cm
// from the slab origin (circles store the top-left of their bounding
// box, not their center).
type Shape interface {
	ShapeID() string
	Label() string
	Kind() Kind
	Position() (x, y float64)
	// MoveTo returns a copy of the shape with its bounding-box top-left
	// at (x, y).
	MoveTo(x, y float64) Shape
	// Bounds returns the axis-aligned bounding box. Calling it twice on
	// the same value yields identical output.
	Bounds() Box
	// OutlinePolygon returns the exact boundary as a closed vertex list
	// in a fixed winding order.
	OutlinePolygon() Outline
}

func newID() string {
	return uuid.New().String()[:8]
}

// Rectangle is an axis-aligned rectangular piece.
type Rectangle struct {
	ID     string  `json:"id"`
	Name   string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func NewRectangle(name string, w, h float64) Rectangle {
	return Rectangle{ID: newID(), Name: name, Width: w, Height: h}
}

func (r Rectangle) ShapeID() string          { return r.ID }
func (r Rectangle) Label() string            { return r.Name }
func (r Rectangle) Kind() Kind               { return KindRectangle }
func (r Rectangle) Position() (x, y float64) { return r.X, r.Y }

func (r Rectangle) MoveTo(x, y float64) Shape {
	r.X, r.Y = x, y
	return r
}

func (r Rectangle) Bounds() Box {
	return Box{MinX: r.X, MinY: r.Y, MaxX: r.X + math.Max(r.Width, 0), MaxY: r.Y + math.Max(r.Height, 0)}
}

func (r Rectangle) OutlinePolygon() Outline {
	b := r.Bounds()
	return Outline{
		{X: b.MinX, Y: b.MinY},
		{X: b.MaxX, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}
}

// Corner identifies which corner of an L-shape's bounding box carries
// the rectangular notch.
type Corner int

const (
	CornerTL Corner = iota
	CornerTR
	CornerBL
	CornerBR
)

func (c Corner) String() string {
	switch c {
	case CornerTL:
		return "tl"
	case CornerTR:
		return "tr"
	case CornerBL:
		return "bl"
	default:
		return "br"
	}
}

// LShape is a rectangle with a rectangular notch removed from one corner.
// Width and Height describe the outer bounding box; LegWidth and
// LegHeight describe the notch, each strictly less than the outer
// dimension.
type LShape struct {
	ID        string  `json:"id"`
	Name      string  `json:"label"`
	Corner    Corner  `json:"corner"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	LegWidth  float64 `json:"leg_width"`
	LegHeight float64 `json:"leg_height"`
}

func NewLShape(name string, corner Corner, w, h, legW, legH float64) LShape {
	return LShape{ID: newID(), Name: name, Corner: corner, Width: w, Height: h, LegWidth: legW, LegHeight: legH}
}

func (l LShape) ShapeID() string          { return l.ID }
func (l LShape) Label() string            { return l.Name }
func (l LShape) Position() (x, y float64) { return l.X, l.Y }

func (l LShape) Kind() Kind {
	switch l.Corner {
	case CornerTL:
		return KindLShapeTL
	case CornerTR:
		return KindLShapeTR
	case CornerBL:
		return KindLShapeBL
	default:
		return KindLShapeBR
	}
}

func (l LShape) MoveTo(x, y float64) Shape {
	l.X, l.Y = x, y
	return l
}

func (l LShape) Bounds() Box {
	return Box{MinX: l.X, MinY: l.Y, MaxX: l.X + math.Max(l.Width, 0), MaxY: l.Y + math.Max(l.Height, 0)}
}

// Validate reports whether the notch fits strictly inside the outer box.
// The upstream form layer enforces this, but the engine re-checks so it
// stays safe as a standalone library.
func (l LShape) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("l-shape %s: outer dimensions must be positive", l.ID)
	}
	if l.LegWidth <= 0 || l.LegHeight <= 0 {
		return fmt.Errorf("l-shape %s: leg dimensions must be positive", l.ID)
	}
	if l.LegWidth >= l.Width || l.LegHeight >= l.Height {
		return fmt.Errorf("l-shape %s: leg %.2fx%.2f must be smaller than outer %.2fx%.2f",
			l.ID, l.LegWidth, l.LegHeight, l.Width, l.Height)
	}
	return nil
}

// OutlinePolygon traces the six corners of the L without self-crossing.
// Out-of-range leg dimensions are clamped to the outer box so malformed
// input degrades to a rectangle instead of a self-intersecting polygon.
func (l LShape) OutlinePolygon() Outline {
	b := l.Bounds()
	lw := math.Min(math.Max(l.LegWidth, 0), b.Width())
	lh := math.Min(math.Max(l.LegHeight, 0), b.Height())

	switch l.Corner {
	case CornerTL:
		return Outline{
			{X: b.MinX + lw, Y: b.MinY},
			{X: b.MaxX, Y: b.MinY},
			{X: b.MaxX, Y: b.MaxY},
			{X: b.MinX, Y: b.MaxY},
			{X: b.MinX, Y: b.MinY + lh},
			{X: b.MinX + lw, Y: b.MinY + lh},
		}
	case CornerTR:
		return Outline{
			{X: b.MinX, Y: b.MinY},
			{X: b.MaxX - lw, Y: b.MinY},
			{X: b.MaxX - lw, Y: b.MinY + lh},
			{X: b.MaxX, Y: b.MinY + lh},
			{X: b.MaxX, Y: b.MaxY},
			{X: b.MinX, Y: b.MaxY},
		}
	case CornerBL:
		return Outline{
			{X: b.MinX, Y: b.MinY},
			{X: b.MaxX, Y: b.MinY},
			{X: b.MaxX, Y: b.MaxY},
			{X: b.MinX + lw, Y: b.MaxY},
			{X: b.MinX + lw, Y: b.MaxY - lh},
			{X: b.MinX, Y: b.MaxY - lh},
		}
	default: // CornerBR
		return Outline{
			{X: b.MinX, Y: b.MinY},
			{X: b.MaxX, Y: b.MinY},
			{X: b.MaxX, Y: b.MaxY - lh},
			{X: b.MaxX - lw, Y: b.MaxY - lh},
			{X: b.MaxX - lw, Y: b.MaxY},
			{X: b.MinX, Y: b.MaxY},
		}
	}
}

// Triangle is an isosceles triangle with the apex centered over the
// base, pointing up. Base runs along the bottom of the bounding box.
type Triangle struct {
	ID     string  `json:"id"`
	Name   string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Base   float64 `json:"base"`
	Height float64 `json:"height"`
}

func NewTriangle(name string, base, height float64) Triangle {
	return Triangle{ID: newID(), Name: name, Base: base, Height: height}
}

func (t Triangle) ShapeID() string          { return t.ID }
func (t Triangle) Label() string            { return t.Name }
func (t Triangle) Kind() Kind               { return KindTriangle }
func (t Triangle) Position() (x, y float64) { return t.X, t.Y }

func (t Triangle) MoveTo(x, y float64) Shape {
	t.X, t.Y = x, y
	return t
}

func (t Triangle) Bounds() Box {
	return Box{MinX: t.X, MinY: t.Y, MaxX: t.X + math.Max(t.Base, 0), MaxY: t.Y + math.Max(t.Height, 0)}
}

// OutlinePolygon returns apex, bottom-right, bottom-left.
func (t Triangle) OutlinePolygon() Outline {
	b := t.Bounds()
	return Outline{
		{X: b.MinX + b.Width()/2, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}
}

// Circle stores the top-left of its bounding box, like every other
// shape; the center sits at (X+Radius, Y+Radius).
type Circle struct {
	ID     string  `json:"id"`
	Name   string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

func NewCircle(name string, radius float64) Circle {
	return Circle{ID: newID(), Name: name, Radius: radius}
}

func (c Circle) ShapeID() string          { return c.ID }
func (c Circle) Label() string            { return c.Name }
func (c Circle) Kind() Kind               { return KindCircle }
func (c Circle) Position() (x, y float64) { return c.X, c.Y }

func (c Circle) MoveTo(x, y float64) Shape {
	c.X, c.Y = x, y
	return c
}

// Center returns the circle's center point.
func (c Circle) Center() Point2D {
	return Point2D{X: c.X + c.Radius, Y: c.Y + c.Radius}
}

func (c Circle) Bounds() Box {
	d := 2 * math.Max(c.Radius, 0)
	return Box{MinX: c.X, MinY: c.Y, MaxX: c.X + d, MaxY: c.Y + d}
}

// OutlinePolygon approximates the circle with CircleSegments evenly
// spaced samples, starting at angle 0 (the rightmost point).
func (c Circle) OutlinePolygon() Outline {
	center := c.Center()
	outline := make(Outline, CircleSegments)
	for i := 0; i < CircleSegments; i++ {
		angle := 2 * math.Pi * float64(i) / CircleSegments
		outline[i] = Point2D{
			X: center.X + c.Radius*math.Cos(angle),
			Y: center.Y + c.Radius*math.Sin(angle),
		}
	}
	return outline
}

// Rotatable reports whether 90-degree rotation applies to the shape's
// kind. Circles are rotation-invariant and L-shapes keep their corner
// orientation, so neither is rotated by the packer.
func Rotatable(s Shape) bool {
	switch s.(type) {
	case Rectangle, Triangle:
		return true
	default:
		return false
	}
}

// Rotate90 returns a copy of the shape rotated 90 degrees (dimensions
// swapped) and true, or the shape unchanged and false when the kind
// does not support rotation.
func Rotate90(s Shape) (Shape, bool) {
	switch v := s.(type) {
	case Rectangle:
		v.Width, v.Height = v.Height, v.Width
		return v, true
	case Triangle:
		v.Base, v.Height = v.Height, v.Base
		return v, true
	default:
		return s, false
	}
}
