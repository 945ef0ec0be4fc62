package engine

import (
	"sort"

	"github.com/cssftj2-sketch/shapeforge-dxf/internal/model"
)

// SortStrategy names a comparator used to order shapes before packing.
// Less must be a strict weak ordering; ties keep input order (the sort
// is stable).
type SortStrategy struct {
	Name string
	Less func(a, b model.Shape) bool
}

func bboxArea(s model.Shape) float64 {
	return s.Bounds().Area()
}

func bboxPerimeter(s model.Shape) float64 {
	b := s.Bounds()
	return 2 * (b.Width() + b.Height())
}

func bboxAspect(s model.Shape) float64 {
	b := s.Bounds()
	if b.Height() == 0 {
		return 0
	}
	return b.Width() / b.Height()
}

// Strategies is the fixed menu of sorting heuristics the optimizer
// tries. The order is part of the engine's deterministic behavior.
var Strategies = []SortStrategy{
	{"area-desc", func(a, b model.Shape) bool { return bboxArea(a) > bboxArea(b) }},
	{"area-asc", func(a, b model.Shape) bool { return bboxArea(a) < bboxArea(b) }},
	{"width-desc", func(a, b model.Shape) bool { return a.Bounds().Width() > b.Bounds().Width() }},
	{"height-desc", func(a, b model.Shape) bool { return a.Bounds().Height() > b.Bounds().Height() }},
	{"perimeter-desc", func(a, b model.Shape) bool { return bboxPerimeter(a) > bboxPerimeter(b) }},
	{"aspect-desc", func(a, b model.Shape) bool { return bboxAspect(a) > bboxAspect(b) }},
	{"area-perimeter-desc", func(a, b model.Shape) bool {
		return bboxArea(a)+bboxPerimeter(a) > bboxArea(b)+bboxPerimeter(b)
	}},
}

// ProgressFunc receives the completion percentage and the best result
// found so far, after every search iteration.
type ProgressFunc func(percent float64, best model.NestResult)

// Optimizer runs the strategy search over the bin packer.
type Optimizer struct {
	Settings model.Settings

	// Yield, when non-nil, is called between iterations. Hosts driving
	// a UI can repaint there, or check a cancellation flag and abandon
	// the partial result.
	Yield func()
}

func New(settings model.Settings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Optimize searches the fixed cross-product of Strategies and rotation
// {on, off} for the placement with the most shapes, breaking ties by
// efficiency. Every candidate is re-validated with IsValidArrangement
// before it can become the best. The search is bounded and
// deterministic: exactly 2*len(Strategies) iterations, no early
// termination, no randomness.
//
// An empty shape list returns immediately with an empty layout and 0%
// efficiency. When no strategy yields a valid placement, the returned
// result has zero shapes rather than an error.
func (o *Optimizer) Optimize(shapes []model.Shape, slab model.Slab, onProgress ProgressFunc) model.NestResult {
	best := model.NestResult{
		Layout:     model.Layout{Slab: slab, Shapes: model.ShapeList{}},
		InputCount: len(shapes),
	}
	if len(shapes) == 0 {
		return best
	}

	total := len(Strategies) * 2
	iteration := 0

	for _, strat := range Strategies {
		for _, rotate := range []bool{true, false} {
			candidate := o.runStrategy(shapes, slab, strat, rotate)
			if candidate != nil && betterThan(*candidate, best) {
				best = *candidate
			}

			iteration++
			if onProgress != nil {
				onProgress(float64(iteration)/float64(total)*100.0, best)
			}
			if o.Yield != nil && iteration < total {
				o.Yield()
			}
		}
	}
	return best
}

// runStrategy packs one sorted copy of the shapes and validates the
// outcome. A panic from the packing internals discards this candidate
// only; the remaining strategies still run.
func (o *Optimizer) runStrategy(shapes []model.Shape, slab model.Slab, strat SortStrategy, rotate bool) (result *model.NestResult) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
		}
	}()

	sorted := make([]model.Shape, len(shapes))
	copy(sorted, shapes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strat.Less(sorted[i], sorted[j])
	})

	placed := PackShapes(sorted, o.Settings.Spacing, slab, rotate)
	if !IsValidArrangement(placed, slab, o.Settings.Spacing) {
		return nil
	}

	layout := model.Layout{Slab: slab, Shapes: placed}
	return &model.NestResult{
		Layout:     layout,
		Efficiency: layout.Efficiency(),
		Strategy:   strat.Name,
		Rotation:   rotate,
		InputCount: len(shapes),
	}
}

// betterThan prefers more placed shapes; on equal counts, strictly
// higher efficiency wins. Fitting more pieces always beats efficiency.
func betterThan(candidate, best model.NestResult) bool {
	if candidate.PlacedCount() != best.PlacedCount() {
		return candidate.PlacedCount() > best.PlacedCount()
	}
	return candidate.Efficiency > best.Efficiency
}
