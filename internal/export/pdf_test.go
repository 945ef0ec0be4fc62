package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
)

func buildTestResult() model.NestResult {
	layout := buildTestLayout()
	return model.NestResult{
		Layout:     layout,
		Efficiency: layout.Efficiency(),
		Strategy:   "area-desc",
		Rotation:   true,
		InputCount: len(layout.Shapes) + 1, // one piece did not fit
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.pdf")

	if err := ExportPDF(path, buildTestResult(), model.DefaultSettings()); err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("exported file is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Error("exported file is not a PDF")
	}
}

func TestExportPDF_InvalidSlab(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pdf")
	err := ExportPDF(path, model.NestResult{}, model.DefaultSettings())
	if err == nil {
		t.Fatal("expected error for zero-size slab")
	}
}

func TestStrategyLabel(t *testing.T) {
	if got := strategyLabel(model.NestResult{}); got != "manual" {
		t.Errorf("expected manual for empty strategy, got %q", got)
	}
	r := model.NestResult{Strategy: "width-desc", Rotation: true}
	if got := strategyLabel(r); got != "width-desc + rotation" {
		t.Errorf("unexpected label %q", got)
	}
}
