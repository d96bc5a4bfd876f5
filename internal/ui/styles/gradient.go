package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders text bold with its color blended from the theme's
// primary to secondary color, one step per grapheme.
func (t *Theme) Gradient(text string) string {
	return Blend(text, t.Primary, t.Secondary)
}

// Blend renders bold text with a horizontal color gradient. Blending runs in
// HCL space so the steps look even.
func Blend(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return lipgloss.NewStyle().Bold(true).Foreground(from).Render(text)
	}

	c1, _ := colorful.MakeColor(toColor(from))
	c2, _ := colorful.MakeColor(toColor(to))
	last := float64(len(clusters) - 1)

	var b strings.Builder
	for i, cluster := range clusters {
		step := c1.BlendHcl(c2, float64(i)/last).Clamped()
		b.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(step.Hex())).
			Render(cluster))
	}
	return b.String()
}

// toColor parses a #rrggbb lipgloss color. ANSI palette colors map to gray.
func toColor(c lipgloss.Color) color.Color {
	if hex := string(c); len(hex) == 7 && hex[0] == '#' {
		if col, err := colorful.Hex(hex); err == nil {
			return col
		}
	}
	return color.RGBA{R: 128, G: 128, B: 128, A: 255}
}
