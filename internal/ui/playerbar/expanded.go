package playerbar

import (
	"fmt"
	"strings"

	"github.com/llehouerou/audiosession/internal/ui/kittyimg"
	"github.com/llehouerou/audiosession/internal/ui/render"
)

const (
	artCols     = 20
	artRows     = 10
	contentRows = 10
)

// RenderExpanded renders the cover art next to the track metadata. Widths
// too narrow for the cover fall back to the compact bar.
func RenderExpanded(s State, width int) string {
	innerWidth := max(width-2, 0)
	if innerWidth < 40 {
		return renderCompact(s, width)
	}
	metaWidth := innerWidth - artCols - 2

	title := or(s.Title, "Unknown Track")
	if s.Track > 0 {
		title = fmt.Sprintf("%02d - %s", s.Track, title)
	}

	meta := []string{
		render.Truncate(or(s.Artist, "Unknown Artist"), metaWidth),
		render.Truncate(or(s.Album, "Unknown Album"), metaWidth),
		"",
		titleStyle().Render(render.Truncate(title, metaWidth)),
		labeled("Genre", s.Genre, metaWidth),
		labeled("Mode", modeIndicators(s), metaWidth),
		"",
		errorStyle().Render(render.Truncate(s.Error, metaWidth)),
		RenderProgressBar(s, metaWidth),
		"",
	}

	art := kittyimg.Placeholder(artCols, contentRows)
	lines := make([]string, contentRows)
	for i := range contentRows {
		lines[i] = art[i] + "  " + meta[i]
	}
	rendered := barStyle().Width(innerWidth).Render(strings.Join(lines, "\n"))

	if s.ArtFile == "" {
		return rendered
	}
	img, err := kittyimg.File(s.ArtFile, artCols, artRows)
	if err != nil {
		return rendered
	}
	return overlay(rendered, img)
}

// overlay writes the image sequence right after the left border of the
// first content row, so the image covers the placeholder.
func overlay(rendered, img string) string {
	top, rest, ok := strings.Cut(rendered, "\n")
	i := strings.Index(rest, "│")
	if !ok || i < 0 {
		return rendered
	}
	i += len("│")
	return top + "\n" + rest[:i] + img + rest[i:]
}

func labeled(label, value string, width int) string {
	if value == "" {
		return ""
	}
	return render.Truncate(label+": "+value, width)
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
