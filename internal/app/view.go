package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/audiosession/internal/ui/headerbar"
	"github.com/llehouerou/audiosession/internal/ui/playerbar"
	"github.com/llehouerou/audiosession/internal/ui/render"
	"github.com/llehouerou/audiosession/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerbar.Render(m.opts.Title, m.opts.Surfaces, m.Width))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.Browser.View(), m.Queue.View()))

	if bar := playerbar.Render(m.playerState(), m.Width); bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

// playerState builds the player bar state, adding the cover file when the
// resolver already has it.
func (m Model) playerState() playerbar.State {
	s := playerbar.NewState(m.Status, m.Item, m.Position, m.DisplayMode)
	if s.ArtFile == "" && m.Item != nil && m.Item.ArtURI != "" && m.opts.Art != nil {
		if path, ok := m.opts.Art.Cached(m.Item.ArtURI); ok {
			s.ArtFile = path
		}
	}
	return s
}

func (m Model) footer() string {
	if m.ErrorMsg != "" {
		return styles.T().S().Error.Render(render.Truncate(m.ErrorMsg, m.Width))
	}
	return m.help.View(m.keys)
}

func (m Model) footerHeight() int {
	if m.help.ShowAll {
		return lipgloss.Height(m.help.View(m.keys))
	}
	return 1
}

// layout sizes the panels to the space the bars leave.
func (m *Model) layout() {
	m.help.Width = m.Width

	bar := 0
	if m.playerState().Loaded() {
		bar = playerbar.Height(m.DisplayMode)
	}
	height := max(m.Height-headerbar.Height-bar-m.footerHeight(), 0)

	browserWidth := m.Width * 3 / 5
	m.Browser.SetSize(browserWidth, height)
	m.Queue.SetSize(m.Width-browserWidth, height)
}
