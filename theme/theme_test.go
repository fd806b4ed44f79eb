package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"palconv/palette"
)

func TestHex(t *testing.T) {
	assert.Equal(t, "#ff0000", Hex(palette.RGB(1, 0, 0)))
	assert.Equal(t, "#ff00ff", Hex(palette.Color{R: 3, G: -1, B: 1, A: 1}))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "#0080ff rgba(0, 128, 255, 1.00)", Describe(palette.RGB255(0, 128, 255), false))
	assert.Equal(t, "#ff0000 rgba(255, 0, 0, 0.50) hsl(0, 100%, 50%)", Describe(palette.Color{R: 1, A: 0.5}, true))
}

func TestSwatchWidth(t *testing.T) {
	assert.Equal(t, 4, lipgloss.Width(Swatch(palette.RGB(0, 0, 1), 4)))
	assert.Equal(t, 1, lipgloss.Width(Swatch(palette.RGB(0, 0, 1), 0)))
}

func TestColorFor(t *testing.T) {
	th := Default()
	_, ok := th.ColorFor(SeverityNormal)
	assert.False(t, ok)
	c, ok := th.ColorFor(SeverityDanger)
	assert.True(t, ok)
	assert.Equal(t, "#bf616a", c)
	assert.Equal(t, "plain", th.Paint(SeverityNormal, "plain"))
}
