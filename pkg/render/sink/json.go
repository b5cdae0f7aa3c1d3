package sink

import (
	"encoding/json"

	"github.com/matzehuels/otelviz/pkg/scene"
)

type jsonOutput struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Shapes []jsonShape `json:"shapes"`
}

// jsonShape is a tagged union over the scene shapes.
type jsonShape struct {
	Type scene.Kind `json:"type"`

	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`
	RX     float64  `json:"rx,omitempty"`

	X1 *float64 `json:"x1,omitempty"`
	Y1 *float64 `json:"y1,omitempty"`
	X2 *float64 `json:"x2,omitempty"`
	Y2 *float64 `json:"y2,omitempty"`

	Points [][2]float64 `json:"points,omitempty"`

	Fill        string  `json:"fill,omitempty"`
	FillOpacity float64 `json:"fill_opacity,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Dashed      bool    `json:"dashed,omitempty"`
	Arrow       bool    `json:"arrow,omitempty"`

	Text   string  `json:"text,omitempty"`
	Anchor string  `json:"anchor,omitempty"`
	Middle bool    `json:"middle,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Weight int     `json:"weight,omitempty"`

	Class    string      `json:"class,omitempty"`
	Key      string      `json:"key,omitempty"`
	Children []jsonShape `json:"children,omitempty"`
}

// RenderJSON exports the scene's positioned shapes.
func RenderJSON(sc scene.Scene) ([]byte, error) {
	out := jsonOutput{Width: sc.Width, Height: sc.Height, Shapes: toJSONShapes(sc.Shapes)}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONShapes(shapes []scene.Shape) []jsonShape {
	out := make([]jsonShape, 0, len(shapes))
	for _, sh := range shapes {
		out = append(out, toJSONShape(sh))
	}
	return out
}

func ptr(v float64) *float64 { return &v }

func toJSONShape(sh scene.Shape) jsonShape {
	js := jsonShape{Type: sh.Kind()}
	switch s := sh.(type) {
	case scene.Rect:
		js.X, js.Y, js.Width, js.Height, js.RX = ptr(s.X), ptr(s.Y), s.W, s.H, s.RX
		js.Fill, js.FillOpacity, js.Opacity = s.Fill, s.FillOpacity, s.Opacity
		js.Stroke, js.StrokeWidth = s.Stroke, s.StrokeWidth
	case scene.Line:
		js.X1, js.Y1, js.X2, js.Y2 = ptr(s.X1), ptr(s.Y1), ptr(s.X2), ptr(s.Y2)
		js.Stroke, js.StrokeWidth, js.Dashed, js.Arrow = s.Stroke, s.StrokeWidth, s.Dashed, s.Arrow
	case scene.Polygon:
		for _, p := range s.Points {
			js.Points = append(js.Points, [2]float64{p.X, p.Y})
		}
		js.Fill = s.Fill
	case scene.Text:
		js.X, js.Y = ptr(s.X), ptr(s.Y)
		js.Text, js.Anchor, js.Middle = s.Content, s.Anchor, s.Middle
		js.Fill, js.Size, js.Weight, js.Opacity = s.Fill, s.Size, s.Weight, s.Opacity
	case scene.Group:
		js.Class, js.Key = s.Class, s.Key
		js.Children = toJSONShapes(s.Shapes)
	}
	return js
}
