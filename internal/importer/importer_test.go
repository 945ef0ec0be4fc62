package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Name,Type,Width,Height\nCounter,rect,120,60\nTop,circle,90,\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Name;Type;Width;Height\nCounter;rect;120;60\nTop;circle;90;\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Name\tType\tWidth\tHeight\nCounter\trect\t120\t60\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Name", "Type", "Width", "Height", "Leg Width", "Leg Height", "Qty"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Label != 0 || mapping.Kind != 1 || mapping.Width != 2 || mapping.Height != 3 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
	if mapping.LegWidth != 4 || mapping.LegHeight != 5 || mapping.Quantity != 6 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"Counter", "rect", "120", "60"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("numeric row should not be detected as a header")
	}
	if mapping.Label != 0 || mapping.Kind != 1 || mapping.Width != 2 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── ParseKind Tests ───────────────────────────────────────

func TestParseKind(t *testing.T) {
	cases := map[string]model.Kind{
		"rectangle":  model.KindRectangle,
		"RECT":       model.KindRectangle,
		"l-shape-tl": model.KindLShapeTL,
		" l-br ":     model.KindLShapeBR,
		"Triangle":   model.KindTriangle,
		"circle":     model.KindCircle,
		"round":      model.KindCircle,
	}
	for in, want := range cases {
		got, ok := ParseKind(in)
		if !ok || got != want {
			t.Errorf("ParseKind(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}

	if _, ok := ParseKind("hexagon"); ok {
		t.Error("unknown kind should not parse")
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSV_MixedShapes(t *testing.T) {
	csv := strings.Join([]string{
		"Name,Type,Width,Height,Leg Width,Leg Height,Qty",
		"Counter,rect,120,60,,,1",
		"Corner,l-shape-br,80,60,30,20,1",
		"Splash,triangle,40,30,,,1",
		"Table,circle,90,,,,1",
	}, "\n")

	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Shapes) != 4 {
		t.Fatalf("expected 4 shapes, got %d", len(result.Shapes))
	}

	if result.Shapes[0].Kind() != model.KindRectangle {
		t.Errorf("expected rectangle, got %s", result.Shapes[0].Kind())
	}

	l := result.Shapes[1].(model.LShape)
	if l.Corner != model.CornerBR || l.LegWidth != 30 || l.LegHeight != 20 {
		t.Errorf("unexpected l-shape %+v", l)
	}

	// Circle diameter comes from the width column
	c := result.Shapes[3].(model.Circle)
	if c.Radius != 45 {
		t.Errorf("expected radius 45, got %.1f", c.Radius)
	}
}

func TestImportCSV_QuantityExpansion(t *testing.T) {
	csv := "Name,Type,Width,Height,Qty\nShelf,rect,60,30,3\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Shapes) != 3 {
		t.Fatalf("expected 3 shapes, got %d", len(result.Shapes))
	}
	seen := map[string]bool{}
	for _, s := range result.Shapes {
		if seen[s.ShapeID()] {
			t.Error("expanded shapes must have distinct IDs")
		}
		seen[s.ShapeID()] = true
	}
	if result.Shapes[1].Label() == result.Shapes[0].Label() {
		t.Error("expanded shapes should carry numbered labels")
	}
}

func TestImportCSV_RowErrors(t *testing.T) {
	csv := strings.Join([]string{
		"Name,Type,Width,Height",
		"Good,rect,100,50",
		"NoWidth,rect,,50",
		"BadKind,hexagon,10,10",
		"BadLeg,l-tl,20,16,25,6",
	}, "\n")
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Shapes) != 1 {
		t.Errorf("expected 1 good shape, got %d", len(result.Shapes))
	}
	if len(result.Errors) != 3 {
		t.Errorf("expected 3 row errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestImportCSV_MissingFile(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.csv")
	content := "Name;Type;Width;Height\nCounter;rect;120;60\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(result.Shapes))
	}
	// Semicolon delimiter should be detected and reported
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			found = true
		}
	}
	if !found {
		t.Error("expected a delimiter warning")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func TestImportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Name", "Type", "Width", "Height", "Qty"},
		{"Counter", "rect", 120, 60, 1},
		{"Table", "circle", 90, nil, 2},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	result := ImportExcel(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Shapes) != 3 {
		t.Fatalf("expected 3 shapes (1 rect + 2 circles), got %d", len(result.Shapes))
	}
}
