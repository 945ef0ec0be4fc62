package model

import (
	"encoding/json"
	"fmt"
)

// shapeEnvelope is the flat JSON representation of the Shape union.
// Kind discriminates which fields are meaningful.
type shapeEnvelope struct {
	Kind      Kind    `json:"kind"`
	ID        string  `json:"id"`
	Label     string  `json:"label,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	LegWidth  float64 `json:"leg_width,omitempty"`
	LegHeight float64 `json:"leg_height,omitempty"`
	Base      float64 `json:"base,omitempty"`
	Radius    float64 `json:"radius,omitempty"`
}

func encodeShape(s Shape) (shapeEnvelope, error) {
	switch v := s.(type) {
	case Rectangle:
		return shapeEnvelope{Kind: v.Kind(), ID: v.ID, Label: v.Name, X: v.X, Y: v.Y,
			Width: v.Width, Height: v.Height}, nil
	case LShape:
		return shapeEnvelope{Kind: v.Kind(), ID: v.ID, Label: v.Name, X: v.X, Y: v.Y,
			Width: v.Width, Height: v.Height, LegWidth: v.LegWidth, LegHeight: v.LegHeight}, nil
	case Triangle:
		return shapeEnvelope{Kind: v.Kind(), ID: v.ID, Label: v.Name, X: v.X, Y: v.Y,
			Base: v.Base, Height: v.Height}, nil
	case Circle:
		return shapeEnvelope{Kind: v.Kind(), ID: v.ID, Label: v.Name, X: v.X, Y: v.Y,
			Radius: v.Radius}, nil
	default:
		return shapeEnvelope{}, fmt.Errorf("unknown shape type %T", s)
	}
}

func decodeShape(env shapeEnvelope) (Shape, error) {
	switch env.Kind {
	case KindRectangle:
		return Rectangle{ID: env.ID, Name: env.Label, X: env.X, Y: env.Y,
			Width: env.Width, Height: env.Height}, nil
	case KindLShapeTL, KindLShapeTR, KindLShapeBL, KindLShapeBR:
		corner := map[Kind]Corner{
			KindLShapeTL: CornerTL,
			KindLShapeTR: CornerTR,
			KindLShapeBL: CornerBL,
			KindLShapeBR: CornerBR,
		}[env.Kind]
		return LShape{ID: env.ID, Name: env.Label, Corner: corner, X: env.X, Y: env.Y,
			Width: env.Width, Height: env.Height,
			LegWidth: env.LegWidth, LegHeight: env.LegHeight}, nil
	case KindTriangle:
		return Triangle{ID: env.ID, Name: env.Label, X: env.X, Y: env.Y,
			Base: env.Base, Height: env.Height}, nil
	case KindCircle:
		return Circle{ID: env.ID, Name: env.Label, X: env.X, Y: env.Y,
			Radius: env.Radius}, nil
	default:
		return nil, fmt.Errorf("unknown shape kind %q", env.Kind)
	}
}

// ShapeList is a Shape slice that knows how to (un)marshal the union.
type ShapeList []Shape

func (sl ShapeList) MarshalJSON() ([]byte, error) {
	envs := make([]shapeEnvelope, 0, len(sl))
	for _, s := range sl {
		env, err := encodeShape(s)
		if err != nil {
			return nil, err
		}
		envs = append(envs, env)
	}
	return json.Marshal(envs)
}

func (sl *ShapeList) UnmarshalJSON(data []byte) error {
	var envs []shapeEnvelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return err
	}
	shapes := make(ShapeList, 0, len(envs))
	for _, env := range envs {
		s, err := decodeShape(env)
		if err != nil {
			return err
		}
		shapes = append(shapes, s)
	}
	*sl = shapes
	return nil
}
