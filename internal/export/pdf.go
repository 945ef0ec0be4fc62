package export

import (
	"fmt"
	"math"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
	"github.com/go-pdf/fpdf"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF shop drawing for a nesting result. The
// layout is rendered to scale on the first page; a summary page follows
// with statistics, any unplaced pieces and the usable offcuts.
func ExportPDF(path string, result model.NestResult, settings model.Settings) error {
	if result.Layout.Slab.Width <= 0 || result.Layout.Slab.Height <= 0 {
		return fmt.Errorf("slab dimensions must be positive, got %.1fx%.1f",
			result.Layout.Slab.Width, result.Layout.Slab.Height)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, result)

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the slab with its nested shapes on the current
// PDF page.
func renderLayoutPage(pdf *fpdf.Fpdf, result model.NestResult) {
	slab := result.Layout.Slab

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Slab Layout (%.0f x %.0f cm)", slab.Width, slab.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Shapes: %d/%d | Efficiency: %.1f%% | Strategy: %s",
		result.PlacedCount(), result.InputCount, result.Efficiency, strategyLabel(result))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Scale the slab into the drawing area (page mm per model cm)
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/slab.Width, drawHeight/slab.Height)

	canvasW := slab.Width * scale
	canvasH := slab.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Slab background (stone color)
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, s := range result.Layout.Shapes {
		col := shapeColors[i%len(shapeColors)]
		drawShape(pdf, s, col, scale, offsetX, offsetY)
	}

	drawDimensionAnnotations(pdf, slab, offsetX, offsetY, canvasW, canvasH)
	drawShapesLegend(pdf, result.Layout.Shapes, offsetY+canvasH+5)
}

// drawShape renders one shape's true outline, not just its bounding
// box, so L-shapes, triangles and circles appear as they will be cut.
func drawShape(pdf *fpdf.Fpdf, s model.Shape, col shapeColor, scale, offsetX, offsetY float64) {
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)

	if c, ok := s.(model.Circle); ok {
		center := c.Center()
		pdf.Circle(offsetX+center.X*scale, offsetY+center.Y*scale, c.Radius*scale, "FD")
	} else {
		outline := s.OutlinePolygon()
		points := make([]fpdf.PointType, len(outline))
		for i, p := range outline {
			points[i] = fpdf.PointType{X: offsetX + p.X*scale, Y: offsetY + p.Y*scale}
		}
		pdf.Polygon(points, "FD")
	}

	// Label centered in the bounding box, if it fits
	b := s.Bounds()
	bw := b.Width() * scale
	bh := b.Height() * scale
	if bw > 15 && bh > 8 {
		pdf.SetFont("Helvetica", "", labelFontSize(bw, bh))
		pdf.SetTextColor(0, 0, 0)
		label := s.Label()
		labelW := pdf.GetStringWidth(label)
		if labelW < bw-2 {
			cx := offsetX + (b.MinX+b.MaxX)/2*scale
			cy := offsetY + (b.MinY+b.MaxY)/2*scale
			pdf.SetXY(cx-labelW/2, cy-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}
}

// drawDimensionAnnotations adds width and height labels outside the
// slab rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, slab model.Slab, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f cm", slab.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f cm", slab.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawShapesLegend renders a compact legend of placed shapes at the
// bottom of the layout page.
func drawShapesLegend(pdf *fpdf.Fpdf, shapes model.ShapeList, startY float64) {
	if len(shapes) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Shapes placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, s := range shapes {
		col := shapeColors[i%len(shapeColors)]
		b := s.Bounds()
		label := fmt.Sprintf("%s (%.0fx%.0f)", s.Label(), b.Width(), b.Height())
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with statistics,
// unplaced pieces and usable offcuts.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.NestResult, settings model.Settings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Nesting Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	slab := result.Layout.Slab
	summaryItems := []struct {
		label string
		value string
	}{
		{"Slab Size", fmt.Sprintf("%.0f x %.0f cm", slab.Width, slab.Height)},
		{"Shapes Placed", fmt.Sprintf("%d of %d", result.PlacedCount(), result.InputCount)},
		{"Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency)},
		{"Waste", fmt.Sprintf("%.1f%%", 100.0-result.Efficiency)},
		{"Strategy", strategyLabel(result)},
		{"Shape Spacing", fmt.Sprintf("%.1f cm", settings.Spacing)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if result.UnplacedCount() > 0 {
		y += 5
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, fmt.Sprintf("WARNING: %d shape(s) did not fit on the slab", result.UnplacedCount()), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		y += 8
	}

	// Offcut table
	offcuts := model.DetectOffcuts(result.Layout)
	if len(offcuts) == 0 {
		return
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Usable Offcuts", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{30, 50, 50, 40}
	headers := []string{"Offcut", "Position (cm)", "Size (cm)", "Area (cm²)"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, o := range offcuts {
		if y > pageHeight-marginBottom-10 {
			break
		}
		xPos = marginLeft
		rowData := []string{
			o.ID,
			fmt.Sprintf("%.1f, %.1f", o.X, o.Y),
			fmt.Sprintf("%.1f x %.1f", o.Width, o.Height),
			fmt.Sprintf("%.0f", o.Area()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}
}

// strategyLabel formats the winning strategy with its rotation mode.
func strategyLabel(result model.NestResult) string {
	if result.Strategy == "" {
		return "manual"
	}
	if result.Rotation {
		return result.Strategy + " + rotation"
	}
	return result.Strategy
}

// labelFontSize returns an appropriate font size based on the rectangle
// dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
