package queuepanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/ui"
	"github.com/llehouerou/audiosession/internal/ui/render"
	"github.com/llehouerou/audiosession/internal/ui/styles"
)

// View renders the queue panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	innerWidth := m.Width() - ui.BorderHeight

	content := m.renderHeader(innerWidth) + "\n" +
		strings.Repeat("─", innerWidth) + "\n" +
		m.renderItems(innerWidth)

	return styles.T().Panel(m.IsFocused()).Width(innerWidth).Render(content)
}

// renderHeader shows the title, the current position and the mode icons.
func (m Model) renderHeader(width int) string {
	text := fmt.Sprintf("%s (%d/%d)", m.title, m.CurrentIndex()+1, m.Len())
	modes := m.modes()
	left := render.Fit(text, max(width-lipgloss.Width(modes), 0))
	return headerStyle().Render(left) + modeStyle().Render(modes)
}

func (m Model) modes() string {
	var parts []string
	switch m.repeat {
	case playback.RepeatOne:
		parts = append(parts, "🔂")
	case playback.RepeatAll, playback.RepeatGroup:
		parts = append(parts, "🔁")
	case playback.RepeatNone:
	}
	if m.shuffle != playback.ShuffleNone {
		parts = append(parts, "🔀")
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + " "
}

func (m Model) renderItems(width int) string {
	rows := m.ListHeight()
	items := m.Items()
	current := m.CurrentIndex()
	start, end := m.VisibleRange()

	lines := make([]string, 0, rows)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderItem(items[i], i, current, width))
	}
	for len(lines) < rows {
		lines = append(lines, render.Blank(width))
	}
	return strings.Join(lines, "\n")
}

// renderItem lays out one row: marker, title and artist in two columns,
// duration on the right.
func (m Model) renderItem(it media.Item, idx, current, width int) string {
	prefix := "  "
	if idx == current {
		prefix = playingSymbol + " "
	}
	dur := ""
	if it.HasDuration() {
		dur = " " + render.Clock(it.Duration)
	}

	contentWidth := max(width-2-lipgloss.Width(dur), 0)
	titleWidth := contentWidth / 2
	title := render.Fit(itemTitle(it), titleWidth)
	artist := render.Fit(it.Artist, contentWidth-titleWidth)

	return m.rowStyle(idx, current).Render(prefix + title + artist + dur)
}

func itemTitle(it media.Item) string {
	if it.Title != "" {
		return it.Title
	}
	return it.DisplayTitle
}

func (m Model) rowStyle(idx, current int) lipgloss.Style {
	isCursor := idx == m.Pos() && m.IsFocused()
	isPlaying := idx == current
	isPlayed := current >= 0 && idx < current

	switch {
	case isCursor && isPlaying:
		return cursorStyle().Inherit(playingStyle())
	case isCursor:
		return cursorStyle()
	case isPlaying:
		return playingStyle()
	case isPlayed:
		return dimmedStyle()
	default:
		return itemStyle()
	}
}
