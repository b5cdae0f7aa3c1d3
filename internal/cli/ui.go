package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/otelviz/pkg/diagram"
	"github.com/matzehuels/otelviz/pkg/palette"
)

// =============================================================================
// Colors
// =============================================================================

// Terminal output borrows the diagram palette so CLI colors match the
// rendered artifacts.
var (
	colorAccent = lipgloss.Color(palette.Cyan)
	colorOK     = lipgloss.Color(palette.Green)
	colorWarn   = lipgloss.Color(palette.Orange)
	colorFail   = lipgloss.Color(palette.Red)
	colorLink   = lipgloss.Color(palette.Blue)
	colorMuted  = lipgloss.Color(palette.Slate)
	colorBright = lipgloss.Color("255")
	colorFaint  = lipgloss.Color("240")
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorLink).Underline(true)

	StyleDim     = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue   = lipgloss.NewStyle().Foreground(colorBright)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	// StyleOutputError for the output of a snippet that raised.
	StyleOutputError = lipgloss.NewStyle().Foreground(colorFail)
)

var (
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
)

// marker is a colored glyph leading a status line.
type marker struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK      = marker{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markFail    = marker{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markWarn    = marker{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	markInfo    = marker{"›", lipgloss.NewStyle().Foreground(colorMuted)}
	markSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

func (m marker) println(text string) {
	fmt.Println(m.style.Render(m.glyph) + " " + text)
}

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) { markOK.println(fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { markFail.println(fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { markInfo.println(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	markWarn.println(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written artifact path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Render Stats
// =============================================================================

// kindStyle colors a diagram kind by its position in the sorted kind list.
func kindStyle(kind string) lipgloss.Style {
	for i, k := range diagram.Kinds() {
		if string(k) == kind {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Pick(palette.Layers, i)))
		}
	}
	return StyleDim
}

// statsLine summarizes one rendered document: kind, shape count, skipped
// formats and whether the artifacts came from the cache.
func statsLine(kind string, shapes int, skipped []string, cached bool) string {
	sep := StyleDim.Render(" · ")
	parts := []string{kindStyle(kind).Render(kind)}
	if shapes > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d shapes", shapes)))
	}
	if len(skipped) > 0 {
		parts = append(parts, StyleDim.Render("skipped "+strings.Join(skipped, ",")))
	}
	if cached {
		parts = append(parts, markOK.style.Render("cached"))
	} else {
		parts = append(parts, StyleDim.Render("fresh"))
	}
	return "  " + strings.Join(parts, sep)
}
