package engine

import (
	"testing"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios(t *testing.T) {
	scenarios := BuildDefaultScenarios(model.DefaultSettings())

	require.NotEmpty(t, scenarios)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, model.DefaultSettings(), scenarios[0].Settings)

	// Default spacing is above the floor, so a minimum-spacing scenario
	// must be offered.
	foundMin := false
	for _, s := range scenarios {
		if s.Settings.Spacing == MinSpacing {
			foundMin = true
		}
	}
	assert.True(t, foundMin)
}

func TestBuildDefaultScenarios_AtMinimumSpacing(t *testing.T) {
	base := model.Settings{Spacing: MinSpacing}
	scenarios := BuildDefaultScenarios(base)

	for _, s := range scenarios[1:] {
		assert.NotEqual(t, base.Spacing, s.Settings.Spacing,
			"alternatives should differ from the base settings")
	}
}

func TestCompareScenarios(t *testing.T) {
	shapes := []model.Shape{
		model.NewRectangle("A", 30, 20),
		model.NewRectangle("B", 20, 20),
		model.NewCircle("C", 8),
	}
	slab := model.NewSlab(100, 60)

	scenarios := BuildDefaultScenarios(model.DefaultSettings())
	results := CompareScenarios(scenarios, shapes, slab)

	require.Len(t, results, len(scenarios))
	for i, r := range results {
		assert.Equal(t, scenarios[i].Name, r.Scenario.Name)
		assert.InDelta(t, 100.0-r.Result.Efficiency, r.WastePercent, 1e-9)
		assert.Equal(t, r.Result.UnplacedCount(), r.UnplacedCount)
	}
}
