package diagram

import (
	"strconv"

	"github.com/matzehuels/otelviz/pkg/geom"
	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/scene"
)

// Pipeline layout constants.
const (
	StageWidth    = 140
	StageHeight   = 80
	StageArrow    = 50
	StagePadding  = 30
	StageItemRow  = 16
	stageItemBase = 45
)

// Stage is one pipeline step with optional bullet items.
type Stage struct {
	Label string   `json:"label" yaml:"label" toml:"label"`
	Items []string `json:"items,omitempty" yaml:"items,omitempty" toml:"items,omitempty"`
	Color string   `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
}

// PipelineSpec describes left-to-right processing stages.
type PipelineSpec struct {
	Stages []Stage `json:"stages" yaml:"stages" toml:"stages"`
	Title  string  `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
}

// Height is the drawn height of the stage including its items.
func (s Stage) Height() float64 {
	if len(s.Items) == 0 {
		return StageHeight
	}
	return StageHeight + float64(len(s.Items))*StageItemRow
}

// PipelineSize returns the canvas size. The height fits the tallest stage.
func PipelineSize(spec PipelineSpec) (w, h float64) {
	tallest := float64(StageHeight)
	for _, s := range spec.Stages {
		tallest = max(tallest, s.Height())
	}
	w = span(len(spec.Stages), StageWidth, StageArrow) + 2*StagePadding
	h = tallest + 2*StagePadding + withTitle(spec.Title)
	return w, h
}

// Pipeline lays out the stages in a row. A stage without a color takes
// palette.Stages[i mod 5]. Arrows sit at the mid-height of the base stage.
func Pipeline(spec PipelineSpec) scene.Scene {
	w, h := PipelineSize(spec)
	sc := scene.Scene{Width: w, Height: h}
	if spec.Title != "" {
		sc.Shapes = append(sc.Shapes, title(w, spec.Title))
	}

	y := StagePadding + withTitle(spec.Title)
	for i, stage := range spec.Stages {
		r := geom.Rect{X: StagePadding + float64(i)*(StageWidth+StageArrow), Y: y, W: StageWidth, H: stage.Height()}
		color := palette.Resolve(stage.Color, palette.Stages, i, palette.Blue)

		g := scene.Group{Class: "stage", Key: strconv.Itoa(i), Shapes: []scene.Shape{filledBox(r, color)}}
		labelY := y + StageHeight/2
		if len(stage.Items) > 0 {
			labelY = y + 25
		}
		g.Shapes = append(g.Shapes, centered(r.CenterX(), labelY, stage.Label, white, labelSize, 600))
		for j, item := range stage.Items {
			t := caption(r.CenterX(), y+stageItemBase+float64(j)*StageItemRow, "• "+item, white, itemSize, 0)
			t.Opacity = boxOpacity
			g.Shapes = append(g.Shapes, t)
		}
		if i < len(spec.Stages)-1 {
			mid := y + StageHeight/2
			g.Shapes = append(g.Shapes, arrow(
				geom.Point{X: r.Right() + 10, Y: mid},
				geom.Point{X: r.Right() + StageArrow - 5, Y: mid},
				10, 6, palette.Slate,
			))
		}
		sc.Shapes = append(sc.Shapes, g)
	}
	return sc
}
