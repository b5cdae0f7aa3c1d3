package sink

import (
	"encoding/json"
	"testing"
)

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sampleScene())
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var out struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
		Shapes []struct {
			Type     string           `json:"type"`
			Class    string           `json:"class"`
			X1       *float64         `json:"x1"`
			Arrow    bool             `json:"arrow"`
			Points   [][2]float64     `json:"points"`
			Children []map[string]any `json:"children"`
		} `json:"shapes"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.Width != 200 || out.Height != 62.5 {
		t.Errorf("size = %vx%v", out.Width, out.Height)
	}
	if len(out.Shapes) != 3 {
		t.Fatalf("got %d shapes, want 3", len(out.Shapes))
	}

	g := out.Shapes[0]
	if g.Type != "group" || g.Class != "box" || len(g.Children) != 2 {
		t.Errorf("group = %+v", g)
	}
	if g.Children[1]["text"] != "<SDK>" {
		t.Errorf("text child = %v", g.Children[1])
	}
	// Coordinates are always emitted, zero or not.
	if _, ok := g.Children[0]["x"]; !ok {
		t.Error("rect x missing")
	}

	line := out.Shapes[1]
	if line.Type != "line" || line.X1 == nil || *line.X1 != 60 || !line.Arrow {
		t.Errorf("line = %+v", line)
	}
	if poly := out.Shapes[2]; len(poly.Points) != 3 {
		t.Errorf("polygon points = %v", poly.Points)
	}
}
