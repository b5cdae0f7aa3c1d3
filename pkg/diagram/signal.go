package diagram

import (
	"strconv"

	"github.com/matzehuels/otelviz/pkg/geom"
	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/scene"
)

// Signal layout constants.
const (
	SignalWidth          = 450
	SignalCollectorWidth = 600
	SignalInset          = 20
	SignalLineGap        = 20
	signalBoxWidth       = 120
	signalBoxHeight      = 50
)

// SignalSpec describes telemetry flowing from a source to a destination,
// optionally through a collector. Signals defaults to ["all"].
type SignalSpec struct {
	From           string   `json:"from" yaml:"from" toml:"from"`
	To             string   `json:"to" yaml:"to" toml:"to"`
	Signals        []string `json:"signals,omitempty" yaml:"signals,omitempty" toml:"signals,omitempty"`
	ShowCollector  bool     `json:"show_collector,omitempty" yaml:"show_collector,omitempty" toml:"show_collector,omitempty"`
	CollectorLabel string   `json:"collector_label,omitempty" yaml:"collector_label,omitempty" toml:"collector_label,omitempty"`
}

func (s SignalSpec) signals() []string {
	if len(s.Signals) == 0 {
		return []string{"all"}
	}
	return s.Signals
}

// SignalSize returns the canvas size. One signal fits in 80 units; more
// lines need at least 120 and grow by one line gap per extra signal.
func SignalSize(spec SignalSpec) (w, h float64) {
	w = SignalWidth
	if spec.ShowCollector {
		w = SignalCollectorWidth
	}
	n := len(spec.signals())
	h = 80
	if n > 1 {
		h = max(120, 80+float64(n-1)*SignalLineGap)
	}
	return w, h
}

// SignalOffset is the vertical offset of line i of n from the center line.
func SignalOffset(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return (float64(i) - float64(n-1)/2) * SignalLineGap
}

// Signal draws the source, optional collector and destination boxes with one
// colored line per signal between them.
func Signal(spec SignalSpec) scene.Scene {
	w, h := SignalSize(spec)
	sc := scene.Scene{Width: w, Height: h}
	cy := h / 2

	from := geom.Rect{X: SignalInset, Y: cy - signalBoxHeight/2, W: signalBoxWidth, H: signalBoxHeight}
	to := geom.Rect{X: w - SignalInset - signalBoxWidth, Y: from.Y, W: signalBoxWidth, H: signalBoxHeight}
	collector := geom.Rect{X: w/2 - signalBoxWidth/2, Y: from.Y, W: signalBoxWidth, H: signalBoxHeight}

	sc.Shapes = append(sc.Shapes, signalBox("from", from, spec.From, palette.Blue))
	if spec.ShowCollector {
		sc.Shapes = append(sc.Shapes, signalBox("collector", collector, or(spec.CollectorLabel, "Collector"), palette.Slate))
	}
	sc.Shapes = append(sc.Shapes, signalBox("to", to, spec.To, palette.Green))

	signals := spec.signals()
	startX := from.Right() + 10
	endX := to.Left() - 10
	for i, sig := range signals {
		y := cy + SignalOffset(i, len(signals))
		color := palette.Signal(sig)
		g := scene.Group{Class: "signal", Key: sig + "#" + strconv.Itoa(i)}

		labelX := (startX + endX) / 2
		if spec.ShowCollector {
			midX := collector.Left() - 10
			g.Shapes = append(g.Shapes,
				scene.Line{X1: startX, Y1: y, X2: midX, Y2: y, Stroke: color, StrokeWidth: strokeWidth},
				scene.Line{X1: collector.Right() + 10, Y1: y, X2: endX, Y2: y, Stroke: color, StrokeWidth: strokeWidth},
			)
			labelX = (startX + midX) / 2
		} else {
			g.Shapes = append(g.Shapes, scene.Line{X1: startX, Y1: y, X2: endX, Y2: y, Stroke: color, StrokeWidth: strokeWidth})
		}
		g.Shapes = append(g.Shapes,
			scene.Polygon{Points: geom.Arrowhead(geom.Point{X: endX + 8, Y: y}, geom.Right, 8, 5), Fill: color},
			caption(labelX, y-8, sig, color, 10, 500),
		)
		sc.Shapes = append(sc.Shapes, g)
	}
	return sc
}

func signalBox(key string, r geom.Rect, label, color string) scene.Group {
	box := filledBox(r, color)
	box.Opacity = 0
	return scene.Group{Class: "box", Key: key, Shapes: []scene.Shape{
		box,
		centered(r.CenterX(), r.CenterY(), label, white, labelSize, 500),
	}}
}
