package diagram

import (
	"strconv"

	"github.com/matzehuels/otelviz/pkg/geom"
	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/scene"
)

// Card grid layout constants.
const (
	CardWidth      = 200
	CardGap        = 16
	CardPadding    = 20
	DefaultColumns = 3
	cardInset      = 14
	cardStripe     = 4
	cardRow        = 18
)

// Card is one tile of a card grid.
type Card struct {
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Icon        string   `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty"`
	Color       string   `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Items       []string `json:"items,omitempty" yaml:"items,omitempty" toml:"items,omitempty"`
}

// CardGridSpec describes cards flowing left to right into Columns columns.
// Columns below 1 uses 3.
type CardGridSpec struct {
	Cards   []Card `json:"cards" yaml:"cards" toml:"cards"`
	Columns int    `json:"columns,omitempty" yaml:"columns,omitempty" toml:"columns,omitempty"`
}

func (s CardGridSpec) columns() int {
	if s.Columns < 1 {
		return DefaultColumns
	}
	return s.Columns
}

// Height is the card's content height.
func (c Card) Height() float64 {
	h := float64(2*cardInset + 22)
	if c.Icon != "" {
		h += 26
	}
	if c.Description != "" {
		h += cardRow
	}
	return h + float64(len(c.Items))*cardRow
}

// rowHeights returns the height of each grid row, sized to its tallest card.
func (s CardGridSpec) rowHeights() []float64 {
	cols := s.columns()
	var rows []float64
	for i, c := range s.Cards {
		if i%cols == 0 {
			rows = append(rows, 0)
		}
		rows[len(rows)-1] = max(rows[len(rows)-1], c.Height())
	}
	return rows
}

// CardsSize returns the canvas size.
func CardsSize(spec CardGridSpec) (w, h float64) {
	rows := spec.rowHeights()
	h = 2 * CardPadding
	for i, rh := range rows {
		if i > 0 {
			h += CardGap
		}
		h += rh
	}
	return span(spec.columns(), CardWidth, CardGap) + 2*CardPadding, h
}

// Cards draws a grid of white cards with a colored top stripe.
func Cards(spec CardGridSpec) scene.Scene {
	w, h := CardsSize(spec)
	sc := scene.Scene{Width: w, Height: h}
	cols := spec.columns()
	rows := spec.rowHeights()

	y := float64(CardPadding)
	for row, rh := range rows {
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(spec.Cards) {
				break
			}
			r := geom.Rect{X: CardPadding + float64(col)*(CardWidth+CardGap), Y: y, W: CardWidth, H: rh}
			sc.Shapes = append(sc.Shapes, card(strconv.Itoa(i), r, spec.Cards[i]))
		}
		y += rh + CardGap
	}
	return sc
}

func card(key string, r geom.Rect, c Card) scene.Group {
	color := palette.Or(c.Color, palette.Blue)
	g := scene.Group{Class: "card", Key: key, Shapes: []scene.Shape{
		scene.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H, RX: cornerRadius, Fill: "#ffffff", Stroke: cardBorder, StrokeWidth: 1},
		scene.Rect{X: r.X, Y: r.Y, W: r.W, H: cardStripe, Fill: color},
	}}
	x := r.X + cardInset
	y := r.Y + cardInset
	if c.Icon != "" {
		g.Shapes = append(g.Shapes, scene.Text{X: x, Y: y + 20, Content: c.Icon, Anchor: "start", Size: 20})
		y += 26
	}
	y += 16
	g.Shapes = append(g.Shapes, scene.Text{X: x, Y: y, Content: c.Title, Anchor: "start", Fill: palette.Ink, Size: labelSize, Weight: 600})
	if c.Description != "" {
		y += cardRow
		g.Shapes = append(g.Shapes, scene.Text{X: x, Y: y, Content: c.Description, Anchor: "start", Fill: palette.Text, Size: itemSize})
	}
	for _, item := range c.Items {
		y += cardRow
		g.Shapes = append(g.Shapes, scene.Text{X: x, Y: y, Content: "• " + item, Anchor: "start", Fill: palette.Text, Size: itemSize})
	}
	return g
}
