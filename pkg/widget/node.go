package widget

import "github.com/matzehuels/otelviz/pkg/geom"

// NodeType names a composable.
type NodeType string

const (
	NodeBox       NodeType = "box"
	NodeArrow     NodeType = "arrow"
	NodeRow       NodeType = "row"
	NodeColumn    NodeType = "column"
	NodeGroup     NodeType = "group"
	NodeContainer NodeType = "container"
)

// Node is a declarative composable tree. Fields that do not apply to a
// node's type are ignored.
type Node struct {
	Type      NodeType `json:"type" yaml:"type" toml:"type"`
	Label     string   `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Title     string   `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Color     string   `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Variant   Variant  `json:"variant,omitempty" yaml:"variant,omitempty" toml:"variant,omitempty"`
	Size      Size     `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	Icon      string   `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty"`
	Direction string   `json:"direction,omitempty" yaml:"direction,omitempty" toml:"direction,omitempty"`
	Gap       Gap      `json:"gap,omitempty" yaml:"gap,omitempty" toml:"gap,omitempty"`
	Align     Align    `json:"align,omitempty" yaml:"align,omitempty" toml:"align,omitempty"`
	NoWrap    bool     `json:"no_wrap,omitempty" yaml:"no_wrap,omitempty" toml:"no_wrap,omitempty"`
	Children  []Node   `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// Render produces the fragment for the tree. Unknown node types render
// nothing.
func (n Node) Render() HTML {
	switch n.Type {
	case NodeBox:
		return Box(n.Label, BoxOptions{Color: n.Color, Variant: n.Variant, Size: n.Size, Icon: n.Icon})
	case NodeArrow:
		return Arrow(geom.ParseDirection(n.Direction), n.Label, n.Color)
	case NodeRow:
		return Row(n.flex(), n.children()...)
	case NodeColumn:
		return Column(n.flex(), n.children()...)
	case NodeGroup:
		return Group(n.Title, n.Color, n.Direction, n.children()...)
	case NodeContainer:
		return Container(n.Title, n.children()...)
	default:
		return ""
	}
}

// flex returns the node's flex options. Rows wrap unless NoWrap is set.
func (n Node) flex() FlexOptions {
	return FlexOptions{Gap: n.Gap, Align: n.Align, Wrap: !n.NoWrap}
}

func (n Node) children() []HTML {
	out := make([]HTML, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, c.Render())
	}
	return out
}
