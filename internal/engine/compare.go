package engine

import (
	"fmt"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the optimization result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.NestResult
	WastePercent  float64
	UnplacedCount int
}

// CompareScenarios runs the optimizer for each scenario and returns the
// results in scenario order, enabling side-by-side comparison of
// different spacing choices on the same shapes and slab.
func CompareScenarios(scenarios []ComparisonScenario, shapes []model.Shape, slab model.Slab) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		opt := New(scenario.Settings)
		result := opt.Optimize(shapes, slab, nil)

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			WastePercent:  100.0 - result.Efficiency,
			UnplacedCount: result.UnplacedCount(),
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying the spacing to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: minimum spacing the engine allows
	if baseSettings.Spacing > MinSpacing {
		tight := baseSettings
		tight.Spacing = MinSpacing
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Spacing %.1fcm (minimum)", tight.Spacing),
			Settings: tight,
		})
	}

	// Scenario: double spacing (simulate a wider cutting tool)
	wide := baseSettings
	wide.Spacing = baseSettings.Spacing * 2
	if wide.Spacing < MinSpacing {
		wide.Spacing = MinSpacing * 2
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Spacing %.1fcm (double)", wide.Spacing),
		Settings: wide,
	})

	return scenarios
}
