package widget

import (
	"strings"

	"github.com/matzehuels/otelviz/pkg/palette"
)

// HTML is a rendered, already-escaped markup fragment.
type HTML string

// Variant selects how a box uses its color.
type Variant string

const (
	VariantFilled   Variant = "filled"
	VariantOutlined Variant = "outlined"
	VariantSubtle   Variant = "subtle"
)

// Size selects box padding and font size.
type Size string

const (
	SizeSm Size = "sm"
	SizeMd Size = "md"
	SizeLg Size = "lg"
)

// Gap selects the spacing between flex children.
type Gap string

const (
	GapSm Gap = "sm"
	GapMd Gap = "md"
	GapLg Gap = "lg"
)

// Align selects cross-axis alignment of flex children.
type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

// Decl is one CSS declaration.
type Decl struct {
	Prop, Value string
}

// Style is an ordered list of declarations.
type Style []Decl

// String renders the style attribute value.
func (s Style) String() string {
	parts := make([]string, 0, len(s))
	for _, d := range s {
		parts = append(parts, d.Prop+": "+d.Value)
	}
	return strings.Join(parts, "; ")
}

// Get returns the value of prop, or "" when unset.
func (s Style) Get(prop string) string {
	for _, d := range s {
		if d.Prop == prop {
			return d.Value
		}
	}
	return ""
}

// BoxStyle returns the color declarations for a box variant. Subtle boxes
// use the color at low alpha for the background and border.
func BoxStyle(color string, v Variant) Style {
	switch v {
	case VariantOutlined:
		return Style{{"border", "2px solid " + color}, {"color", color}, {"background", "transparent"}}
	case VariantSubtle:
		return Style{{"background", palette.WithAlpha(color, 0x20)}, {"color", color}, {"border", "1px solid " + palette.WithAlpha(color, 0x40)}}
	default:
		return Style{{"background", color}, {"color", "white"}}
	}
}

// SizeStyle returns padding and font size for a box size.
func SizeStyle(s Size) Style {
	switch s {
	case SizeSm:
		return Style{{"padding", "0.375rem 0.75rem"}, {"font-size", "0.8rem"}}
	case SizeLg:
		return Style{{"padding", "0.75rem 1.5rem"}, {"font-size", "1rem"}}
	default:
		return Style{{"padding", "0.5rem 1rem"}, {"font-size", "0.9rem"}}
	}
}

// GapSize maps a gap name to its CSS length. Unknown names use md.
func GapSize(g Gap) string {
	switch g {
	case GapSm:
		return "0.5rem"
	case GapLg:
		return "1.5rem"
	default:
		return "1rem"
	}
}

func alignValue(a Align) string {
	switch a {
	case AlignStart:
		return "flex-start"
	case AlignEnd:
		return "flex-end"
	default:
		return "center"
	}
}
