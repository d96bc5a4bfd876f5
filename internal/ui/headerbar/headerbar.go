// Package headerbar renders the one-line title bar of the demo.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/audiosession/internal/ui/styles"
)

// Height is the fixed height of the header bar.
const Height = 1

// Surface is a named presentation surface and whether it is live.
type Surface struct {
	Name   string
	Active bool
}

// Render shows the app name on the left and the surfaces on the right.
// Widths under 20 render nothing.
func Render(title string, surfaces []Surface, width int) string {
	if width < 20 {
		return ""
	}
	t := styles.T()
	s := t.S()

	parts := make([]string, 0, len(surfaces))
	for _, sf := range surfaces {
		if sf.Active {
			parts = append(parts, s.Base.Render("● "+sf.Name))
		} else {
			parts = append(parts, s.Subtle.Render("○ "+sf.Name))
		}
	}
	right := strings.Join(parts, s.Subtle.Render(" │ "))
	left := " " + t.Gradient(title)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right + " "
}
