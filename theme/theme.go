// Package theme renders palette colors and decode outcomes for the terminal.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"palconv/palette"
)

// Only abnormal states (skipped units, failures) get a foreground color;
// normal text is left to the terminal theme.
type Theme struct {
	Warn   string
	Danger string
}

func Default() Theme {
	return Theme{
		Warn:   "#d08770", // orange
		Danger: "#bf616a", // red
	}
}

type Severity int

const (
	SeverityNormal Severity = iota
	SeverityWarn
	SeverityDanger
)

// ColorFor returns the hex color and true if severity maps to a color.
func (t Theme) ColorFor(sev Severity) (string, bool) {
	switch sev {
	case SeverityWarn:
		return t.Warn, true
	case SeverityDanger:
		return t.Danger, true
	default:
		return "", false
	}
}

// Paint colors text for sev; normal text is returned unchanged.
func (t Theme) Paint(sev Severity, text string) string {
	c, ok := t.ColorFor(sev)
	if !ok {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(text)
}

// Hex formats c as #rrggbb, clamping out-of-range channels.
func Hex(c palette.Color) string {
	return toColorful(c).Clamped().Hex()
}

// Swatch renders a block of width cells filled with c.
func Swatch(c palette.Color, width int) string {
	if width < 1 {
		width = 1
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(Hex(c))).Render(strings.Repeat(" ", width))
}

// Describe returns "#rrggbb rgba(r, g, b, a)" and, when withHSL is set, the
// color's hue in degrees and saturation/lightness in percent.
func Describe(c palette.Color, withHSL bool) string {
	s := fmt.Sprintf("%s rgba(%d, %d, %d, %.2f)", Hex(c), channel(c.R), channel(c.G), channel(c.B), c.A)
	if withHSL {
		h, sat, l := toColorful(c).Clamped().Hsl()
		s += fmt.Sprintf(" hsl(%.0f, %.0f%%, %.0f%%)", h, sat*100, l*100)
	}
	return s
}

func toColorful(c palette.Color) colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func channel(v float64) int {
	return int(v*255 + 0.5)
}
