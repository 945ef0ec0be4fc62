package engine

import (
	"testing"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackShapes_ProducesValidArrangement(t *testing.T) {
	slab := model.NewSlab(100, 60)
	shapes := []model.Shape{
		model.NewRectangle("A", 30, 20),
		model.NewRectangle("B", 25, 15),
		model.NewTriangle("T", 20, 10),
		model.NewCircle("C", 8),
		model.NewLShape("L", model.CornerBL, 24, 18, 10, 8),
	}

	placed := PackShapes(shapes, 1.0, slab, false)

	require.Len(t, placed, len(shapes))
	assert.True(t, IsValidArrangement(placed, slab, 1.0))
}

func TestPackShapes_OmitsWhatDoesNotFit(t *testing.T) {
	slab := model.NewSlab(40, 40)
	shapes := []model.Shape{
		model.NewRectangle("fits", 20, 20),
		model.NewRectangle("too big", 50, 50),
	}

	placed := PackShapes(shapes, 1.0, slab, false)

	require.Len(t, placed, 1)
	assert.Equal(t, "fits", placed[0].Label())
}

func TestPackShapes_RotationPlacesTallPiece(t *testing.T) {
	// Usable area is 28x8: a 5x20 rectangle fits only rotated.
	slab := model.NewSlab(30, 10)
	shapes := []model.Shape{model.NewRectangle("tall", 5, 20)}

	withRotation := PackShapes(shapes, 0.5, slab, true)
	require.Len(t, withRotation, 1)
	b := withRotation[0].Bounds()
	assert.Equal(t, 20.0, b.Width())
	assert.Equal(t, 5.0, b.Height())

	withoutRotation := PackShapes(shapes, 0.5, slab, false)
	assert.Empty(t, withoutRotation)
}

func TestPackShapes_NeverFlipsCirclesOrLShapes(t *testing.T) {
	// Both pieces fit upright; with rotation enabled their orientation
	// and kind must be unchanged.
	slab := model.NewSlab(100, 60)
	shapes := []model.Shape{
		model.NewCircle("C", 10),
		model.NewLShape("L", model.CornerTR, 30, 20, 12, 8),
	}

	placed := PackShapes(shapes, 1.0, slab, true)

	require.Len(t, placed, 2)
	c := placed[0].(model.Circle)
	assert.Equal(t, 10.0, c.Radius)

	l := placed[1].(model.LShape)
	assert.Equal(t, model.CornerTR, l.Corner)
	assert.Equal(t, 30.0, l.Width)
	assert.Equal(t, 20.0, l.Height)
}

func TestPackShapes_RespectsEdgeMargin(t *testing.T) {
	slab := model.NewSlab(50, 50)
	placed := PackShapes([]model.Shape{model.NewRectangle("A", 10, 10)}, 1.0, slab, false)

	require.Len(t, placed, 1)
	x, y := placed[0].Position()
	assert.GreaterOrEqual(t, x, EdgeMargin)
	assert.GreaterOrEqual(t, y, EdgeMargin)
}

func TestPackShapes_DegenerateSlab(t *testing.T) {
	placed := PackShapes([]model.Shape{model.NewRectangle("A", 10, 10)}, 1.0, model.NewSlab(1, 1), false)
	assert.Empty(t, placed)
}
