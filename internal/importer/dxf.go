package importer

import (
	"fmt"
	"math"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// dxfTolerance is the snapping tolerance for classifying vertices, in
// mm. CAD output routinely carries float noise well below this.
const dxfTolerance = 0.01

// segment represents a line segment between two 2D points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start model.Point2D
	end   model.Point2D
}

// ImportDXF imports a layout from a DXF file in millimeters. Closed
// outlines (LWPOLYLINE or chains of connected LINEs) are classified
// back into shape kinds by their vertex structure: four axis-aligned
// corners make a rectangle, three vertices a triangle, six rectilinear
// vertices an L-shape; CIRCLE entities map directly. The largest
// rectangle enclosing every other entity is treated as the slab
// boundary, and all positions are reported relative to its origin.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []model.Outline
	var circles []model.Circle
	var segments []segment

	circleNum := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineToOutline(e)
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			circleNum++
			c := model.NewCircle(fmt.Sprintf("Circle %d", circleNum), e.Radius/model.MMPerCM)
			circles = append(circles, c.MoveTo(
				(e.Center[0]-e.Radius)/model.MMPerCM,
				(e.Center[1]-e.Radius)/model.MMPerCM,
			).(model.Circle))

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point2D{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	for _, co := range chainSegments(segments, dxfTolerance) {
		if len(co) >= 3 {
			outlines = append(outlines, co)
		}
	}

	if len(outlines) == 0 && len(circles) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	shapeNum := 0
	var shapes []model.Shape
	for _, outline := range outlines {
		shapeNum++
		s, warn := classifyOutline(outline, fmt.Sprintf("Shape %d", shapeNum))
		if warn != "" {
			result.Warnings = append(result.Warnings, warn)
		}
		if s != nil {
			shapes = append(shapes, s)
		}
	}
	for _, c := range circles {
		shapes = append(shapes, c)
	}

	shapes, slab := extractSlab(shapes)
	if slab == nil {
		result.Warnings = append(result.Warnings,
			"No slab boundary found; shape positions are in drawing coordinates")
	}
	result.Slab = slab
	result.Shapes = shapes
	return result
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to an Outline,
// dropping a duplicated closing vertex. Bulged (arc) segments are not
// representable in the shape model and come through as straight edges.
func lwPolylineToOutline(lw *entity.LwPolyline) model.Outline {
	outline := make(model.Outline, 0, len(lw.Vertices))
	for _, v := range lw.Vertices {
		outline = append(outline, model.Point2D{X: v[0], Y: v[1]})
	}
	if len(outline) >= 2 && pointsClose(outline[0], outline[len(outline)-1], dxfTolerance) {
		outline = outline[:len(outline)-1]
	}
	return outline
}

// classifyOutline maps a closed outline in mm back to a shape value in
// cm, positioned at its bounding-box origin. Outlines that fit none of
// the known kinds are skipped with a warning.
func classifyOutline(outline model.Outline, label string) (model.Shape, string) {
	box := outline.BoundingBox()
	w := box.Width() / model.MMPerCM
	h := box.Height() / model.MMPerCM
	x := box.MinX / model.MMPerCM
	y := box.MinY / model.MMPerCM

	if w < dxfTolerance || h < dxfTolerance {
		return nil, fmt.Sprintf("Skipped degenerate outline (%.2f x %.2f mm)", box.Width(), box.Height())
	}

	switch len(outline) {
	case 3:
		t := model.NewTriangle(label, w, h)
		return t.MoveTo(x, y), ""

	case 4:
		if isAxisAlignedRect(outline, box) {
			r := model.NewRectangle(label, w, h)
			return r.MoveTo(x, y), ""
		}
		return nil, fmt.Sprintf("Skipped non-rectangular 4-vertex outline at (%.1f, %.1f)", x, y)

	case 6:
		if ls, ok := classifyLShape(outline, box, label); ok {
			return ls.MoveTo(x, y), ""
		}
		return nil, fmt.Sprintf("Skipped non-rectilinear 6-vertex outline at (%.1f, %.1f)", x, y)

	default:
		return nil, fmt.Sprintf("Skipped outline with %d vertices at (%.1f, %.1f)", len(outline), x, y)
	}
}

// isAxisAlignedRect reports whether the four vertices are exactly the
// four corners of the bounding box.
func isAxisAlignedRect(outline model.Outline, box model.Box) bool {
	corners := []model.Point2D{
		{X: box.MinX, Y: box.MinY},
		{X: box.MaxX, Y: box.MinY},
		{X: box.MaxX, Y: box.MaxY},
		{X: box.MinX, Y: box.MaxY},
	}
	for _, c := range corners {
		found := false
		for _, p := range outline {
			if pointsClose(p, c, dxfTolerance) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// classifyLShape reconstructs an L-shape from a six-vertex rectilinear
// outline. The bounding-box corner absent from the vertex set marks the
// notch; the interior vertex gives the notch dimensions.
func classifyLShape(outline model.Outline, box model.Box, label string) (model.LShape, bool) {
	hasCorner := func(cx, cy float64) bool {
		for _, p := range outline {
			if pointsClose(p, model.Point2D{X: cx, Y: cy}, dxfTolerance) {
				return true
			}
		}
		return false
	}

	type cornerSpot struct {
		corner model.Corner
		x, y   float64
	}
	spots := []cornerSpot{
		{model.CornerTL, box.MinX, box.MinY},
		{model.CornerTR, box.MaxX, box.MinY},
		{model.CornerBL, box.MinX, box.MaxY},
		{model.CornerBR, box.MaxX, box.MaxY},
	}

	missing := -1
	for i, s := range spots {
		if !hasCorner(s.x, s.y) {
			if missing != -1 {
				return model.LShape{}, false
			}
			missing = i
		}
	}
	if missing == -1 {
		return model.LShape{}, false
	}

	var interior *model.Point2D
	for i, p := range outline {
		onX := math.Abs(p.X-box.MinX) < dxfTolerance || math.Abs(p.X-box.MaxX) < dxfTolerance
		onY := math.Abs(p.Y-box.MinY) < dxfTolerance || math.Abs(p.Y-box.MaxY) < dxfTolerance
		if !onX && !onY {
			if interior != nil {
				return model.LShape{}, false
			}
			interior = &outline[i]
		}
	}
	if interior == nil {
		return model.LShape{}, false
	}

	spot := spots[missing]
	legW := math.Abs(interior.X-spot.x) / model.MMPerCM
	legH := math.Abs(interior.Y-spot.y) / model.MMPerCM
	w := box.Width() / model.MMPerCM
	h := box.Height() / model.MMPerCM

	ls := model.NewLShape(label, spot.corner, w, h, legW, legH)
	if err := ls.Validate(); err != nil {
		return model.LShape{}, false
	}
	return ls, true
}

// extractSlab finds the rectangle whose bounds contain every other
// shape. When found it is removed from the list, returned as the slab,
// and the remaining positions are shifted to slab-relative coordinates.
func extractSlab(shapes []model.Shape) ([]model.Shape, *model.Slab) {
	best := -1
	var bestArea float64
	for i, s := range shapes {
		r, ok := s.(model.Rectangle)
		if !ok {
			continue
		}
		box := r.Bounds()
		containsAll := true
		for j, other := range shapes {
			if i == j {
				continue
			}
			if !box.Contains(other.Bounds()) {
				containsAll = false
				break
			}
		}
		if containsAll && box.Area() > bestArea {
			best = i
			bestArea = box.Area()
		}
	}
	if best == -1 || len(shapes) < 2 {
		return shapes, nil
	}

	slabRect := shapes[best].(model.Rectangle)
	slab := &model.Slab{Width: slabRect.Width, Height: slabRect.Height}

	origin := slabRect.Bounds()
	rest := make([]model.Shape, 0, len(shapes)-1)
	for i, s := range shapes {
		if i == best {
			continue
		}
		px, py := s.Bounds().MinX, s.Bounds().MinY
		rest = append(rest, s.MoveTo(px-origin.MinX, py-origin.MinY))
	}
	return rest, slab
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them
// connected.
func chainSegments(segs []segment, tolerance float64) []model.Outline {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []model.Outline

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []model.Point2D{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// A closed chain repeats its first point at the end
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, model.Outline(chain[:len(chain)-1]))
		}
	}

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b model.Point2D, tolerance float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}
