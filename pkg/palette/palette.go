// Package palette defines the diagram color set and the single rule used to
// pick a color for an element.
//
// Every variant resolves colors the same way:
//
//	explicit color → palette[index mod len(palette)] → fallback
//
// [Resolve] implements that order. Variants never re-derive it at call sites.
package palette

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Named colors.
const (
	Blue   = "#3b82f6"
	Purple = "#8b5cf6"
	Green  = "#10b981"
	Orange = "#f59e0b"
	Red    = "#ef4444"
	Slate  = "#64748b"
	Cyan   = "#06b6d4"
	Pink   = "#ec4899"

	Ink  = "#1e293b" // titles
	Text = "#374151" // body text on light backgrounds
)

// Stages is the default cycle for pipeline stages.
var Stages = []string{Blue, Purple, Green, Orange, Red}

// Layers is the default cycle for layer diagrams.
var Layers = []string{Blue, Purple, Green, Orange, Red, Slate}

// Named maps color names accepted in description files to their hex values.
var Named = map[string]string{
	"blue":   Blue,
	"purple": Purple,
	"green":  Green,
	"orange": Orange,
	"red":    Red,
	"slate":  Slate,
	"cyan":   Cyan,
	"pink":   Pink,
}

// Pick returns p[i mod len(p)], or "" for an empty palette.
// Negative indexes are treated as 0.
func Pick(p []string, i int) string {
	if len(p) == 0 {
		return ""
	}
	if i < 0 {
		i = 0
	}
	return p[i%len(p)]
}

// Resolve applies the resolution order: a non-empty explicit color wins, then
// the palette entry for index, then fallback. Named colors are expanded.
func Resolve(explicit string, p []string, index int, fallback string) string {
	if c := strings.TrimSpace(explicit); c != "" {
		return Lookup(c)
	}
	if c := Pick(p, index); c != "" {
		return c
	}
	return Lookup(fallback)
}

// Or returns explicit when set and fallback otherwise.
func Or(explicit, fallback string) string {
	return Resolve(explicit, nil, 0, fallback)
}

// Lookup expands a color name to its hex value. Anything else is returned as is.
func Lookup(c string) string {
	if hex, ok := Named[strings.ToLower(c)]; ok {
		return hex
	}
	return c
}

// Normalize parses a hex color and returns its canonical lower-case
// #rrggbb form.
func Normalize(c string) (string, error) {
	col, err := colorful.Hex(Lookup(c))
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", c, err)
	}
	return col.Clamped().Hex(), nil
}

// WithAlpha appends an alpha channel to a color, producing #rrggbbaa.
// Colors that cannot be parsed are returned unchanged.
func WithAlpha(c string, alpha uint8) string {
	hex, err := Normalize(c)
	if err != nil {
		return c
	}
	return fmt.Sprintf("%s%02x", hex, alpha)
}

// Tint blends c toward white by amount (0 keeps c, 1 yields white).
// Colors that cannot be parsed are returned unchanged.
func Tint(c string, amount float64) string {
	col, err := colorful.Hex(Lookup(c))
	if err != nil {
		return c
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return col.BlendRgb(white, amount).Clamped().Hex()
}

// signals maps telemetry signal names to their colors.
var signals = map[string]string{
	"traces":  Purple,
	"metrics": Green,
	"logs":    Orange,
	"all":     Blue,
}

// Signal returns the color for a telemetry signal. Unknown signals are slate.
func Signal(name string) string {
	if c, ok := signals[strings.ToLower(name)]; ok {
		return c
	}
	return Slate
}
