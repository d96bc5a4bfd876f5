// Package playerbar renders the now-playing bar of the terminal demo.
package playerbar

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/ui/render"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // Single-line view
	ModeExpanded                    // Cover art and metadata
)

// State holds everything needed to render the player bar.
type State struct {
	Processing playback.ProcessingState
	Playing    bool
	Title      string
	Artist     string
	Album      string
	Genre      string
	Track      int
	Position   time.Duration
	Duration   time.Duration
	Speed      float64
	Repeat     playback.RepeatMode
	Shuffle    playback.ShuffleMode
	ArtFile    string // local cover file, empty if none
	Error      string

	DisplayMode DisplayMode
}

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return contentRows + 2
	}
	return 3 // top border + content + bottom border
}

// NewState combines the latest status, item and sampled position. The
// state is empty when nothing is loaded.
func NewState(st playback.Status, item *media.Item, pos time.Duration, mode DisplayMode) State {
	if item == nil || st.ProcessingState == playback.ProcessingIdle {
		return State{}
	}

	s := State{
		Processing:  st.ProcessingState,
		Playing:     st.Playing,
		Title:       render.Sanitize(item.Title),
		Artist:      render.Sanitize(item.Artist),
		Album:       render.Sanitize(item.Album),
		Genre:       render.Sanitize(item.Genre),
		Position:    pos,
		Duration:    item.Duration,
		Speed:       st.Speed,
		Repeat:      st.Repeat,
		Shuffle:     st.Shuffle,
		Error:       st.ErrorMessage,
		DisplayMode: mode,
	}
	if s.Title == "" {
		s.Title = render.Sanitize(item.DisplayTitle)
	}
	if n, ok := item.Extras[media.ExtraTrackNumber].(int); ok {
		s.Track = n
	}
	if f, ok := item.Extras[media.ExtraArtCacheFile].(string); ok {
		s.ArtFile = f
	}
	return s
}

// Loaded reports whether there is anything to show.
func (s State) Loaded() bool {
	return s.Processing != playback.ProcessingIdle
}

// Render returns the player bar for the given width, or "" when nothing is
// loaded.
func Render(s State, width int) string {
	if !s.Loaded() {
		return ""
	}
	if s.DisplayMode == ModeExpanded {
		return RenderExpanded(s, width)
	}
	return renderCompact(s, width)
}

func renderCompact(s State, width int) string {
	innerWidth := max(width-6, 0) // border and padding

	title := s.Title
	if title == "" {
		title = "Unknown Track"
	}
	info := render.Join(" · ", s.Artist, s.Album)
	trackNum := ""
	if s.Track > 0 {
		trackNum = strconv.Itoa(s.Track)
	}
	modes := modeIndicators(s)
	timeStr := render.Clock(s.Position) + " / " + durationText(s.Duration)

	const separator = "   "
	sepWidth := lipgloss.Width(separator)
	status := statusSymbol(s)
	statusWidth := lipgloss.Width(status + "  ")
	timeWidth := lipgloss.Width(timeStr)
	minBarWidth := 10

	extras := render.Join(" ", trackNum, modes)
	extrasSpace := 0
	if extras != "" {
		extrasSpace = lipgloss.Width(extras) + sepWidth
	}
	available := innerWidth - statusWidth - timeWidth - sepWidth*2 - minBarWidth - extrasSpace

	titleWidth := lipgloss.Width(title)
	infoWidth := lipgloss.Width(info)

	var styledTitle, styledInfo string
	var used int
	switch {
	case info == "" && titleWidth <= available:
		styledTitle = titleStyle().Render(title)
		used = titleWidth
	case info != "" && titleWidth+sepWidth+infoWidth <= available:
		styledTitle = titleStyle().Render(title)
		styledInfo = artistStyle().Render(info)
		used = titleWidth + sepWidth + infoWidth
	case info != "" && titleWidth+sepWidth < available:
		maxInfo := available - titleWidth - sepWidth
		styledTitle = titleStyle().Render(title)
		styledInfo = artistStyle().Render(render.Truncate(info, maxInfo))
		used = titleWidth + sepWidth + lipgloss.Width(render.Truncate(info, maxInfo))
	default:
		maxTitle := max(available, 10)
		cut := render.Truncate(title, maxTitle)
		styledTitle = titleStyle().Render(cut)
		used = lipgloss.Width(cut)
	}

	barWidth := max(innerWidth-used-extrasSpace-statusWidth-timeWidth-sepWidth*2, 5)
	filled := filledCells(s.Position, s.Duration, barWidth)

	var content strings.Builder
	content.WriteString(styledTitle)
	if styledInfo != "" {
		content.WriteString(separator)
		content.WriteString(styledInfo)
	}
	if extras != "" {
		content.WriteString(separator)
		content.WriteString(metaStyle().Render(extras))
	}
	content.WriteString(separator)
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(progressFilledStyle().Render(strings.Repeat("━", filled)))
	content.WriteString(progressEmptyStyle().Render(strings.Repeat("─", barWidth-filled)))
	content.WriteString(separator)
	content.WriteString(progressTimeStyle().Render(timeStr))

	return barStyle().Padding(0, 2).Width(width - 2).Render(content.String())
}

func statusSymbol(s State) string {
	switch {
	case s.Processing == playback.ProcessingError:
		return errorStyle().Render("✖")
	case s.Processing == playback.ProcessingCompleted:
		return "■"
	case s.Processing == playback.ProcessingLoading, s.Processing == playback.ProcessingBuffering:
		return "…"
	case s.Playing:
		return "▶"
	default:
		return "⏸"
	}
}

// modeIndicators shows the non-default repeat, shuffle and speed settings.
func modeIndicators(s State) string {
	var parts []string
	switch s.Repeat {
	case playback.RepeatOne:
		parts = append(parts, "🔂")
	case playback.RepeatAll, playback.RepeatGroup:
		parts = append(parts, "🔁")
	case playback.RepeatNone:
	}
	if s.Shuffle != playback.ShuffleNone {
		parts = append(parts, "🔀")
	}
	if speed := speedText(s.Speed); speed != "" {
		parts = append(parts, speed)
	}
	return strings.Join(parts, " ")
}

func durationText(d time.Duration) string {
	if d <= 0 {
		return "--:--"
	}
	return render.Clock(d)
}

func filledCells(position, duration time.Duration, width int) int {
	if duration <= 0 || width <= 0 {
		return 0
	}
	ratio := float64(position) / float64(duration)
	return min(max(int(float64(width)*ratio), 0), width)
}
