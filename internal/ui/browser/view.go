package browser

import (
	"strings"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/ui"
	"github.com/llehouerou/audiosession/internal/ui/render"
	"github.com/llehouerou/audiosession/internal/ui/styles"
)

// View renders the browser panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	width := m.Width() - ui.BorderHeight
	s := styles.T().S()

	titles := make([]string, len(m.path))
	for i, c := range m.path {
		titles[i] = render.Sanitize(c.title)
	}
	header := s.Title.Render(render.Fit(strings.Join(titles, " / "), width))

	rows := m.ListHeight()
	lines := make([]string, 0, rows)
	switch {
	case m.loading:
		lines = append(lines, s.Muted.Render(render.Fit("Loading…", width)))
	case m.err != "":
		lines = append(lines, s.Error.Render(render.Fit(m.err, width)))
	case m.Len() == 0:
		lines = append(lines, s.Subtle.Render(render.Fit("Empty", width)))
	default:
		start, end := m.VisibleRange()
		items := m.Items()
		for i := start; i < end; i++ {
			line := render.Fit(label(items[i]), width)
			switch {
			case i == m.Pos() && m.IsFocused():
				line = s.Cursor.Render(line)
			case !items[i].Playable:
				line = s.Title.Render(line)
			default:
				line = s.Base.Render(line)
			}
			lines = append(lines, line)
		}
	}
	for len(lines) < rows {
		lines = append(lines, render.Blank(width))
	}

	content := header + "\n" + strings.Repeat("─", width) + "\n" + strings.Join(lines, "\n")
	return styles.T().Panel(m.IsFocused()).Width(width).Render(content)
}

func label(it media.Item) string {
	title := it.Title
	if title == "" {
		title = it.DisplayTitle
	}
	if !it.Playable {
		return title + "/"
	}
	if it.HasDuration() {
		return title + "  " + render.Clock(it.Duration)
	}
	return title
}
