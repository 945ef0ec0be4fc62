package model

import (
	"testing"
)

func TestDetectOffcutsEmptyLayout(t *testing.T) {
	l := Layout{Slab: NewSlab(250, 120)}
	offcuts := DetectOffcuts(l)
	if len(offcuts) != 1 {
		t.Fatalf("expected 1 offcut for empty slab, got %d", len(offcuts))
	}
	if offcuts[0].Width != 250 || offcuts[0].Height != 120 {
		t.Errorf("expected full slab as offcut, got %.0fx%.0f", offcuts[0].Width, offcuts[0].Height)
	}
}

func TestDetectOffcutsRightStrip(t *testing.T) {
	l := Layout{
		Slab:   NewSlab(250, 120),
		Shapes: ShapeList{NewRectangle("P1", 100, 120)},
	}
	offcuts := DetectOffcuts(l)
	// Should find a right strip: X=100, Width=150, Height=120
	foundRight := false
	for _, o := range offcuts {
		if o.X >= 100 && o.Width >= 149 && o.Height >= 119 {
			foundRight = true
			break
		}
	}
	if !foundRight {
		t.Error("expected to find right strip offcut")
	}
}

func TestDetectOffcutsSmallRemnantIgnored(t *testing.T) {
	l := Layout{
		Slab:   NewSlab(50, 50),
		Shapes: ShapeList{NewRectangle("P1", 48, 48)},
	}
	offcuts := DetectOffcuts(l)
	// Only 2 cm strips remain, below the 5 cm minimum dimension
	if len(offcuts) != 0 {
		t.Errorf("expected no offcuts, got %d", len(offcuts))
	}
}

func TestDetectOffcutsSortedByArea(t *testing.T) {
	l := Layout{
		Slab:   NewSlab(100, 100),
		Shapes: ShapeList{NewRectangle("P1", 60, 80)},
	}
	offcuts := DetectOffcuts(l)
	if len(offcuts) < 2 {
		t.Fatalf("expected at least 2 offcuts, got %d", len(offcuts))
	}
	for i := 1; i < len(offcuts); i++ {
		if offcuts[i].Area() > offcuts[i-1].Area() {
			t.Error("offcuts should be sorted largest first")
		}
	}
}

func TestTotalOffcutArea(t *testing.T) {
	offcuts := []Offcut{
		{Width: 10, Height: 20},
		{Width: 5, Height: 5},
	}
	if got := TotalOffcutArea(offcuts); got != 225 {
		t.Errorf("expected 225, got %.0f", got)
	}
}
