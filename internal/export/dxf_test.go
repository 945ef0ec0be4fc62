package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
)

func TestExportDXF_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")
	if err := ExportDXF(path, buildTestLayout()); err != nil {
		t.Fatalf("ExportDXF failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cannot read exported file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "ENTITIES") {
		t.Error("expected an ENTITIES section")
	}
	if !strings.Contains(content, "LWPOLYLINE") {
		t.Error("expected polyline entities for the slab and polygon shapes")
	}
	if !strings.Contains(content, "CIRCLE") {
		t.Error("expected a native circle entity")
	}
	if !strings.Contains(content, LayerSlab) || !strings.Contains(content, LayerShapes) {
		t.Error("expected slab and shapes layers")
	}
}

func TestExportDXF_InvalidSlab(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dxf")
	if err := ExportDXF(path, model.Layout{}); err == nil {
		t.Fatal("expected error for zero-size slab")
	}
}
