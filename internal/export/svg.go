package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
)

// shapeColor represents an RGB fill color for a placed shape.
type shapeColor struct {
	R, G, B int
}

// shapeColors is the palette cycled through placed shapes, matching the
// PDF export so a piece keeps its color across formats.
var shapeColors = []shapeColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

func (c shapeColor) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ExportSVG writes the layout as an SVG document in millimeters. The
// slab is a tan rectangle; each shape is a filled polygon (or circle)
// with a centered label. SVG's Y axis matches the model's, so no flip
// is needed.
func ExportSVG(path string, layout model.Layout) error {
	svg, err := RenderSVG(layout)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(svg), 0o644)
}

// RenderSVG builds the SVG document text for a layout.
func RenderSVG(layout model.Layout) (string, error) {
	if layout.Slab.Width <= 0 || layout.Slab.Height <= 0 {
		return "", fmt.Errorf("slab dimensions must be positive, got %.1fx%.1f",
			layout.Slab.Width, layout.Slab.Height)
	}

	sw := layout.Slab.Width * model.MMPerCM
	sh := layout.Slab.Height * model.MMPerCM

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.1fmm" height="%.1fmm" viewBox="0 0 %.1f %.1f">`+"\n", sw, sh, sw, sh)
	fmt.Fprintf(&b, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#d2b48c" stroke="#646464" stroke-width="2"/>`+"\n", sw, sh)

	for i, s := range layout.Shapes {
		col := shapeColors[i%len(shapeColors)]
		writeSVGShape(&b, s, col)
	}

	b.WriteString("</svg>\n")
	return b.String(), nil
}

func writeSVGShape(b *strings.Builder, s model.Shape, col shapeColor) {
	if c, ok := s.(model.Circle); ok {
		center := c.Center()
		fmt.Fprintf(b, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="#1e1e1e" stroke-width="1"/>`+"\n",
			center.X*model.MMPerCM, center.Y*model.MMPerCM, c.Radius*model.MMPerCM, col.hex())
	} else {
		points := make([]string, 0, len(s.OutlinePolygon()))
		for _, p := range s.OutlinePolygon() {
			points = append(points, fmt.Sprintf("%.1f,%.1f", p.X*model.MMPerCM, p.Y*model.MMPerCM))
		}
		fmt.Fprintf(b, `  <polygon points="%s" fill="%s" stroke="#1e1e1e" stroke-width="1"/>`+"\n",
			strings.Join(points, " "), col.hex())
	}

	bounds := s.Bounds()
	cx := (bounds.MinX + bounds.MaxX) / 2 * model.MMPerCM
	cy := (bounds.MinY + bounds.MaxY) / 2 * model.MMPerCM
	fmt.Fprintf(b, `  <text x="%.1f" y="%.1f" font-size="24" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		cx, cy, escapeXML(s.Label()))
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
