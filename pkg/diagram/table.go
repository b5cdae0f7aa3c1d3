package diagram

import (
	"strconv"

	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/scene"
)

// Comparison table layout constants.
const (
	TableLabelWidth  = 160
	TableColumnWidth = 200
	TableHeader      = 36
	TableRow         = 32
	TablePadding     = 20
	tableCellInset   = 10
)

// ComparisonItem is one row of a before/after table.
type ComparisonItem struct {
	Label  string `json:"label" yaml:"label" toml:"label"`
	Before string `json:"before" yaml:"before" toml:"before"`
	After  string `json:"after" yaml:"after" toml:"after"`
}

// ComparisonTableSpec describes a before/after table. Titles default to
// "Before" and "After", colors to slate and green.
type ComparisonTableSpec struct {
	Items       []ComparisonItem `json:"items" yaml:"items" toml:"items"`
	BeforeTitle string           `json:"before_title,omitempty" yaml:"before_title,omitempty" toml:"before_title,omitempty"`
	AfterTitle  string           `json:"after_title,omitempty" yaml:"after_title,omitempty" toml:"after_title,omitempty"`
	BeforeColor string           `json:"before_color,omitempty" yaml:"before_color,omitempty" toml:"before_color,omitempty"`
	AfterColor  string           `json:"after_color,omitempty" yaml:"after_color,omitempty" toml:"after_color,omitempty"`
}

// TableSize returns the canvas size.
func TableSize(spec ComparisonTableSpec) (w, h float64) {
	return TableLabelWidth + 2*TableColumnWidth + 2*TablePadding,
		TableHeader + float64(len(spec.Items))*TableRow + 2*TablePadding
}

// Table draws the header row and one row per item separated by rules.
func Table(spec ComparisonTableSpec) scene.Scene {
	w, h := TableSize(spec)
	sc := scene.Scene{Width: w, Height: h}

	beforeX := float64(TablePadding + TableLabelWidth)
	afterX := beforeX + TableColumnWidth
	right := afterX + TableColumnWidth

	header := scene.Group{Class: "header", Shapes: []scene.Shape{
		scene.Text{X: beforeX + tableCellInset, Y: TablePadding + TableHeader/2, Content: or(spec.BeforeTitle, "Before"), Anchor: "start", Middle: true,
			Fill: palette.Or(spec.BeforeColor, palette.Slate), Size: 13, Weight: 600},
		scene.Text{X: afterX + tableCellInset, Y: TablePadding + TableHeader/2, Content: or(spec.AfterTitle, "After"), Anchor: "start", Middle: true,
			Fill: palette.Or(spec.AfterColor, palette.Green), Size: 13, Weight: 600},
		scene.Line{X1: TablePadding, Y1: TablePadding + TableHeader, X2: right, Y2: TablePadding + TableHeader, Stroke: cardBorder, StrokeWidth: strokeWidth},
	}}
	sc.Shapes = append(sc.Shapes, header)

	for i, item := range spec.Items {
		top := TablePadding + TableHeader + float64(i)*TableRow
		cy := top + TableRow/2
		g := scene.Group{Class: "row", Key: strconv.Itoa(i), Shapes: []scene.Shape{
			scene.Text{X: TablePadding + tableCellInset, Y: cy, Content: item.Label, Anchor: "start", Middle: true, Fill: palette.Ink, Size: 12, Weight: 600},
			scene.Text{X: beforeX + tableCellInset, Y: cy, Content: item.Before, Anchor: "start", Middle: true, Fill: palette.Slate, Size: 12},
			scene.Text{X: afterX + tableCellInset, Y: cy, Content: item.After, Anchor: "start", Middle: true, Fill: palette.Text, Size: 12},
		}}
		if i < len(spec.Items)-1 {
			g.Shapes = append(g.Shapes, scene.Line{X1: TablePadding, Y1: top + TableRow, X2: right, Y2: top + TableRow, Stroke: cardBorder, StrokeWidth: 1})
		}
		sc.Shapes = append(sc.Shapes, g)
	}
	return sc
}
