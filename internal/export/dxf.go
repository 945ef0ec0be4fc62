// Package export writes nested layouts to interchange and print formats:
// DXF and SVG for CAD/CAM handoff, PDF for shop drawings and QR-coded
// piece labels. Interchange files are in millimeters; the model works in
// centimeters, so every coordinate is scaled by model.MMPerCM on the way
// out.
package export

import (
	"fmt"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names. The slab boundary and the nested shapes go on
// separate layers so CAM software can toggle them independently.
const (
	LayerSlab   = "SLAB"
	LayerShapes = "SHAPES"
)

// ExportDXF writes the layout as a DXF drawing in millimeters. The slab
// boundary is a closed polyline on the SLAB layer; each shape becomes a
// closed polyline (or a true circle entity) on the SHAPES layer.
func ExportDXF(path string, layout model.Layout) error {
	if layout.Slab.Width <= 0 || layout.Slab.Height <= 0 {
		return fmt.Errorf("slab dimensions must be positive, got %.1fx%.1f",
			layout.Slab.Width, layout.Slab.Height)
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(LayerSlab, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add slab layer: %w", err)
	}
	sw := layout.Slab.Width * model.MMPerCM
	sh := layout.Slab.Height * model.MMPerCM
	if _, err := d.LwPolyline(true,
		[]float64{0, 0},
		[]float64{sw, 0},
		[]float64{sw, sh},
		[]float64{0, sh},
	); err != nil {
		return fmt.Errorf("failed to write slab boundary: %w", err)
	}

	if _, err := d.AddLayer(LayerShapes, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add shapes layer: %w", err)
	}
	for _, s := range layout.Shapes {
		if err := writeShape(d, s); err != nil {
			return fmt.Errorf("failed to write shape %s: %w", s.ShapeID(), err)
		}
	}

	return d.SaveAs(path)
}

// writeShape emits one shape in mm. Circles use the native CIRCLE
// entity so downstream CAM gets the exact arc instead of a polygon
// approximation; everything else is a closed LWPOLYLINE over the
// shape's outline vertices.
func writeShape(d *drawing.Drawing, s model.Shape) error {
	if c, ok := s.(model.Circle); ok {
		center := c.Center()
		_, err := d.Circle(center.X*model.MMPerCM, center.Y*model.MMPerCM, 0, c.Radius*model.MMPerCM)
		return err
	}

	outline := s.OutlinePolygon()
	vertices := make([][]float64, len(outline))
	for i, p := range outline {
		vertices[i] = []float64{p.X * model.MMPerCM, p.Y * model.MMPerCM}
	}
	_, err := d.LwPolyline(true, vertices...)
	return err
}
