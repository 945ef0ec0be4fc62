package model

// Slab represents the rectangular stock material being nested onto.
// There is exactly one slab per session; it is not part of the packable
// set. Dimensions are in cm.
type Slab struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func NewSlab(w, h float64) Slab {
	return Slab{Width: w, Height: h}
}

// Area returns the slab area in square cm.
func (s Slab) Area() float64 {
	return s.Width * s.Height
}

// Settings holds nesting parameters shared by the packers and exporters.
type Settings struct {
	// Spacing is the minimum clearance enforced between placed pieces, in cm.
	Spacing float64 `json:"spacing"`
}

func DefaultSettings() Settings {
	return Settings{Spacing: 1.0}
}

// Layout is a set of placed shapes on a slab.
type Layout struct {
	Slab   Slab      `json:"slab"`
	Shapes ShapeList `json:"shapes"`
}

// UsedArea returns the total bounding-box area of the placed shapes.
func (l Layout) UsedArea() float64 {
	var total float64
	for _, s := range l.Shapes {
		total += s.Bounds().Area()
	}
	return total
}

// Efficiency returns the slab usage percentage, in [0, 100].
func (l Layout) Efficiency() float64 {
	sa := l.Slab.Area()
	if sa <= 0 {
		return 0
	}
	return (l.UsedArea() / sa) * 100.0
}

// NestResult holds the outcome of an optimization run. Shapes that did
// not fit are absent from the layout; callers compare PlacedCount
// against InputCount to detect them.
type NestResult struct {
	Layout     Layout  `json:"layout"`
	Efficiency float64 `json:"efficiency"`
	Strategy   string  `json:"strategy,omitempty"`
	Rotation   bool    `json:"rotation,omitempty"`
	InputCount int     `json:"input_count"`
}

// PlacedCount returns the number of shapes the result placed.
func (r NestResult) PlacedCount() int {
	return len(r.Layout.Shapes)
}

// UnplacedCount returns how many input shapes could not be placed.
func (r NestResult) UnplacedCount() int {
	n := r.InputCount - r.PlacedCount()
	if n < 0 {
		return 0
	}
	return n
}

// Project ties everything together for save/load.
type Project struct {
	Name     string      `json:"name"`
	Shapes   ShapeList   `json:"shapes"`
	Slab     Slab        `json:"slab"`
	Settings Settings    `json:"settings"`
	Result   *NestResult `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Shapes:   ShapeList{},
		Slab:     NewSlab(250, 120),
		Settings: DefaultSettings(),
	}
}
