package diagram

import (
	"strconv"

	"github.com/matzehuels/otelviz/pkg/geom"
	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/scene"
)

// Tree layout constants.
const (
	TreeBoxWidth         = 120
	TreeBoxHeight        = 44
	TreeCompactBoxWidth  = 96
	TreeCompactBoxHeight = 34
	TreeSiblingGap       = 16
	TreeLevelGap         = 40
	TreePadding          = 20
)

// TreeNode is a node of a hierarchy.
type TreeNode struct {
	Label    string     `json:"label" yaml:"label" toml:"label"`
	Color    string     `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Icon     string     `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty"`
	Children []TreeNode `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// TreeSpec describes a rooted hierarchy drawn top-down.
type TreeSpec struct {
	Root    TreeNode `json:"root" yaml:"root" toml:"root"`
	Compact bool     `json:"compact,omitempty" yaml:"compact,omitempty" toml:"compact,omitempty"`
}

func (n TreeNode) empty() bool { return n.Label == "" && n.Icon == "" && len(n.Children) == 0 }

func (n TreeNode) depth() int {
	d := 0
	for _, c := range n.Children {
		d = max(d, c.depth()+1)
	}
	return d
}

type treeLayout struct {
	boxW, boxH float64
	fontSize   float64
	edges      []scene.Shape
	nodes      []scene.Shape
}

// width is the horizontal extent of the subtree rooted at n.
func (t *treeLayout) width(n TreeNode) float64 {
	if len(n.Children) == 0 {
		return t.boxW
	}
	sum := 0.0
	for i, c := range n.Children {
		if i > 0 {
			sum += TreeSiblingGap
		}
		sum += t.width(c)
	}
	return max(t.boxW, sum)
}

// place positions n centered over its subtree starting at left and returns
// the node's box.
func (t *treeLayout) place(n TreeNode, left, top float64, key string) geom.Rect {
	w := t.width(n)
	r := geom.Rect{X: left + w/2 - t.boxW/2, Y: top, W: t.boxW, H: t.boxH}

	childW := 0.0
	for i, c := range n.Children {
		if i > 0 {
			childW += TreeSiblingGap
		}
		childW += t.width(c)
	}
	x := left + (w-childW)/2
	for i, c := range n.Children {
		ck := key + "." + strconv.Itoa(i)
		cr := t.place(c, x, top+t.boxH+TreeLevelGap, ck)
		t.edges = append(t.edges, scene.Group{Class: "branch", Key: ck, Shapes: []scene.Shape{
			scene.Line{X1: r.CenterX(), Y1: r.Bottom(), X2: cr.CenterX(), Y2: cr.Top(), Stroke: palette.Slate, StrokeWidth: 1.5, Arrow: true},
		}})
		x += t.width(c) + TreeSiblingGap
	}

	t.nodes = append(t.nodes, scene.Group{Class: "node", Key: key, Shapes: []scene.Shape{
		filledBox(r, palette.Or(n.Color, palette.Blue)),
		centered(r.CenterX(), r.CenterY(), iconLabel(n.Icon, n.Label), white, t.fontSize, 500),
	}})
	return r
}

// Tree lays the hierarchy out top-down. Each subtree is as wide as the
// larger of its box and its children side by side, and parents are centered
// over their children.
func Tree(spec TreeSpec) scene.Scene {
	t := &treeLayout{boxW: TreeBoxWidth, boxH: TreeBoxHeight, fontSize: 13}
	if spec.Compact {
		t.boxW, t.boxH, t.fontSize = TreeCompactBoxWidth, TreeCompactBoxHeight, itemSize
	}
	if spec.Root.empty() {
		return scene.Scene{Width: 2 * TreePadding, Height: 2 * TreePadding}
	}

	levels := float64(spec.Root.depth() + 1)
	sc := scene.Scene{
		Width:  t.width(spec.Root) + 2*TreePadding,
		Height: levels*t.boxH + (levels-1)*TreeLevelGap + 2*TreePadding,
	}
	t.place(spec.Root, TreePadding, TreePadding, "0")
	sc.Shapes = append(sc.Shapes, t.edges...)
	sc.Shapes = append(sc.Shapes, t.nodes...)
	return sc
}
