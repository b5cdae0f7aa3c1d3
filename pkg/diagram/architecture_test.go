package diagram

import (
	"testing"

	"github.com/matzehuels/otelviz/pkg/geom"
)

func TestArchitectureSkipsUnknownEndpoints(t *testing.T) {
	spec := ArchitectureSpec{
		Boxes: []Box{
			{ID: "app", Label: "App", X: 20, Y: 20},
			{ID: "col", Label: "Collector", X: 300, Y: 20},
		},
		Connections: []Connection{
			{From: "app", To: "col", Label: "OTLP"},
			{From: "app", To: "missing"},
			{From: "ghost", To: "col"},
		},
	}

	sc := Architecture(spec)
	conns := sc.Groups("connection")
	if len(conns) != 1 {
		t.Fatalf("got %d connections, want 1", len(conns))
	}
	if conns[0].Key != "app->col" {
		t.Errorf("connection key = %q, want app->col", conns[0].Key)
	}
	if got := len(sc.Groups("box")); got != 2 {
		t.Errorf("got %d boxes, want 2", got)
	}
	if texts := textsOf(conns[0]); len(texts) != 1 || texts[0] != "OTLP" {
		t.Errorf("connection label = %v, want [OTLP]", texts)
	}
}

func TestArchitectureDefaults(t *testing.T) {
	sc := Architecture(ArchitectureSpec{Boxes: []Box{{ID: "a"}}})
	if sc.Width != ArchitectureWidth || sc.Height != ArchitectureHeight {
		t.Errorf("canvas = %vx%v, want 600x400", sc.Width, sc.Height)
	}
	r := rectOf(sc.Groups("box")[0])
	if r.W != BoxWidth || r.H != BoxHeight {
		t.Errorf("box = %vx%v, want %vx%v", r.W, r.H, BoxWidth, BoxHeight)
	}
}

func TestArchitectureSubItemsGrowBoxNotConnector(t *testing.T) {
	spec := ArchitectureSpec{
		Boxes: []Box{
			{ID: "a", X: 0, Y: 0, SubItems: []string{"receivers", "processors"}},
			{ID: "b", X: 0, Y: 300},
		},
		Connections: []Connection{{From: "a", To: "b", Dashed: true}},
	}
	sc := Architecture(spec)

	a := rectOf(sc.Groups("box")[0])
	if want := float64(BoxHeight + 2*SubItemRow + SubItemPadding); a.H != want {
		t.Errorf("grown height = %v, want %v", a.H, want)
	}

	line := linesOf(sc.Groups("connection")[0])[0]
	if line.Y1 != BoxHeight {
		t.Errorf("connector starts at y=%v, want declared bottom %v", line.Y1, BoxHeight)
	}
	if !line.Dashed || !line.Arrow {
		t.Errorf("line = %+v, want dashed with arrow", line)
	}
}

func TestArchitectureConnectorOnBoundary(t *testing.T) {
	boxes := []Box{
		{ID: "a", X: 10, Y: 10},
		{ID: "b", X: 400, Y: 60, Width: 100, Height: 40},
		{ID: "c", X: 40, Y: 250},
	}
	spec := ArchitectureSpec{Boxes: boxes, Connections: []Connection{
		{From: "a", To: "b"}, {From: "a", To: "c"}, {From: "c", To: "b"},
	}}
	byID := indexBoxes(boxes)

	for _, g := range Architecture(spec).Groups("connection") {
		var from, to string
		for _, c := range spec.Connections {
			if c.From+"->"+c.To == g.Key {
				from, to = c.From, c.To
			}
		}
		l := linesOf(g)[0]
		if !byID[from].Rect().OnBoundary(geom.Point{X: l.X1, Y: l.Y1}, 1e-9) {
			t.Errorf("%s: start not on source boundary", g.Key)
		}
		if !byID[to].Rect().OnBoundary(geom.Point{X: l.X2, Y: l.Y2}, 1e-9) {
			t.Errorf("%s: end not on target boundary", g.Key)
		}
	}
}

func TestArchitectureDuplicateIDFirstWins(t *testing.T) {
	spec := ArchitectureSpec{
		Boxes: []Box{
			{ID: "a", X: 0, Y: 0},
			{ID: "a", X: 500, Y: 0},
			{ID: "b", X: 0, Y: 200},
		},
		Connections: []Connection{{From: "a", To: "b"}},
	}
	l := linesOf(Architecture(spec).Groups("connection")[0])[0]
	if l.X1 != BoxWidth/2 {
		t.Errorf("connector x = %v, want first box center %v", l.X1, BoxWidth/2)
	}
}
