package engine

import (
	"testing"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCollides_RectanglesOverlap(t *testing.T) {
	a := model.NewRectangle("A", 10, 10).MoveTo(0, 0)
	b := model.NewRectangle("B", 10, 10).MoveTo(5, 5)

	assert.True(t, Collides(a, b, 0))
}

func TestCollides_RectanglesSeparated(t *testing.T) {
	a := model.NewRectangle("A", 10, 10).MoveTo(1, 1)
	b := model.NewRectangle("B", 10, 10).MoveTo(12, 1)

	// Exactly 1 cm apart: clears a 0.5 buffer
	assert.False(t, Collides(a, b, 0.5))
}

func TestCollides_Containment(t *testing.T) {
	// A small piece fully inside a large one has no edge crossings; the
	// vertex-in-polygon pass must still catch it.
	big := model.NewRectangle("Big", 20, 20).MoveTo(0, 0)
	small := model.NewRectangle("Small", 2, 2).MoveTo(9, 9)

	assert.True(t, Collides(big, small, 0))
	assert.True(t, Collides(small, big, 0))
}

func TestCollides_EdgeCrossingWithoutContainedVertex(t *testing.T) {
	// A tall thin piece crossing a wide flat one: edges intersect but no
	// vertex of either lies inside the other.
	wide := model.NewRectangle("Wide", 20, 2).MoveTo(0, 9)
	tall := model.NewRectangle("Tall", 2, 20).MoveTo(9, 0)

	assert.True(t, Collides(wide, tall, 0))
}

func TestCollides_CirclesExactDistance(t *testing.T) {
	// Centers 10 apart, radii 4+4: a 1.9 buffer clears, a 2.1 does not.
	a := model.NewCircle("A", 4).MoveTo(0, 0)
	b := model.NewCircle("B", 4).MoveTo(10, 0)

	assert.False(t, Collides(a, b, 1.9))
	assert.True(t, Collides(a, b, 2.1))
}

func TestCollides_CirclesDiagonal(t *testing.T) {
	// Bounding boxes overlap on the diagonal but the circles clear; the
	// exact center-distance test must win over the box approximation.
	a := model.NewCircle("A", 5).MoveTo(0, 0)
	b := model.NewCircle("B", 5).MoveTo(7.5, 7.5)

	// Center distance ~10.6 > 10
	assert.False(t, Collides(a, b, 0))
}

func TestCollides_TrianglesInSharedBox(t *testing.T) {
	// Two triangles whose bounding boxes overlap with the buffer applied
	// but whose outlines stay clear. The buffer widens only the box
	// pre-check, so the outline test must report no collision.
	a := model.NewTriangle("A", 10, 10).MoveTo(0, 0)
	b := model.NewTriangle("B", 10, 10).MoveTo(10.5, 0)

	assert.False(t, Collides(a, b, 1))
}

func TestCollides_LShapeNotchClearance(t *testing.T) {
	// A small piece sitting inside an L-shape's notch area does not
	// touch the L's material.
	l := model.NewLShape("L", model.CornerTL, 20, 20, 10, 10).MoveTo(0, 0)
	inNotch := model.NewRectangle("N", 4, 4).MoveTo(2, 2)
	onLeg := model.NewRectangle("M", 4, 4).MoveTo(14, 2)

	assert.False(t, Collides(l, inNotch, 0))
	assert.True(t, Collides(l, onLeg, 0))
}

func TestWithinBounds(t *testing.T) {
	slab := model.NewSlab(100, 50)

	inside := model.NewRectangle("A", 10, 10).MoveTo(1, 1)
	assert.True(t, WithinBounds(inside, slab, EdgeMargin))

	atFarEdge := model.NewRectangle("B", 10, 10).MoveTo(89, 39)
	assert.True(t, WithinBounds(atFarEdge, slab, EdgeMargin))

	tooClose := model.NewRectangle("C", 10, 10).MoveTo(0.5, 1)
	assert.False(t, WithinBounds(tooClose, slab, EdgeMargin))

	overflow := model.NewRectangle("D", 10, 10).MoveTo(95, 1)
	assert.False(t, WithinBounds(overflow, slab, EdgeMargin))
}

func TestIsValidArrangement(t *testing.T) {
	slab := model.NewSlab(100, 50)

	valid := []model.Shape{
		model.NewRectangle("A", 10, 10).MoveTo(1, 1),
		model.NewRectangle("B", 10, 10).MoveTo(12, 1),
	}
	assert.True(t, IsValidArrangement(valid, slab, 1.0))

	overlapping := []model.Shape{
		model.NewRectangle("A", 10, 10).MoveTo(1, 1),
		model.NewRectangle("B", 10, 10).MoveTo(5, 5),
	}
	assert.False(t, IsValidArrangement(overlapping, slab, 1.0))

	outOfBounds := []model.Shape{
		model.NewRectangle("A", 10, 10).MoveTo(0, 0),
	}
	assert.False(t, IsValidArrangement(outOfBounds, slab, 1.0))

	assert.True(t, IsValidArrangement(nil, slab, 1.0))
}
