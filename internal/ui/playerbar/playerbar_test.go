package playerbar

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
)

func playing() playback.Status {
	st := playback.IdleStatus()
	st.ProcessingState = playback.ProcessingReady
	st.Playing = true
	return st
}

func song() *media.Item {
	it := media.NewItem("/music/kind-of-blue/02.mp3", "Freddie Freeloader")
	it.Artist = "Miles Davis"
	it.Album = "Kind of Blue"
	it.Genre = "Jazz"
	it.Duration = 9*time.Minute + 46*time.Second
	it = it.WithExtra(media.ExtraTrackNumber, 2)
	return &it
}

func TestNewState(t *testing.T) {
	st := playing()
	st.Repeat = playback.RepeatAll
	item := song().WithExtra(media.ExtraArtCacheFile, "/cache/ab.jpg")

	s := NewState(st, &item, 83*time.Second, ModeExpanded)

	assert.Equal(t, "Freddie Freeloader", s.Title)
	assert.Equal(t, "Miles Davis", s.Artist)
	assert.Equal(t, 2, s.Track)
	assert.Equal(t, "/cache/ab.jpg", s.ArtFile)
	assert.Equal(t, 83*time.Second, s.Position)
	assert.Equal(t, item.Duration, s.Duration)
	assert.Equal(t, playback.RepeatAll, s.Repeat)
	assert.True(t, s.Playing)
	assert.True(t, s.Loaded())
}

func TestNewState_NothingLoaded(t *testing.T) {
	assert.False(t, NewState(playing(), nil, 0, ModeCompact).Loaded())
	assert.False(t, NewState(playback.IdleStatus(), song(), 0, ModeCompact).Loaded())
	assert.Empty(t, Render(State{}, 80))
}

func TestNewState_SanitizesTags(t *testing.T) {
	item := song()
	item.Title = "Blue\x1b[31m in Green"
	s := NewState(playing(), item, 0, ModeCompact)
	assert.NotContains(t, s.Title, "\x1b")
}

func TestRenderCompact(t *testing.T) {
	s := NewState(playing(), song(), 83*time.Second, ModeCompact)
	out := Render(s, 120)
	plain := ansi.Strip(out)

	assert.Equal(t, Height(ModeCompact), strings.Count(out, "\n")+1)
	for _, want := range []string{"Freddie Freeloader", "Miles Davis · Kind of Blue", "▶", "1:23 / 9:46"} {
		assert.Contains(t, plain, want)
	}
	for i, line := range strings.Split(out, "\n") {
		assert.Equal(t, 120, lipgloss.Width(line), "line %d", i)
	}
}

func TestRenderCompact_NarrowTruncatesTitle(t *testing.T) {
	item := song()
	item.Title = strings.Repeat("Very Long Title ", 10)
	out := Render(NewState(playing(), item, 0, ModeCompact), 60)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 60)
	}
	assert.Contains(t, ansi.Strip(out), "…")
}

func TestStatusSymbol(t *testing.T) {
	tests := []struct {
		name string
		st   func() playback.Status
		want string
	}{
		{"playing", playing, "▶"},
		{"paused", func() playback.Status {
			st := playing()
			st.Playing = false
			return st
		}, "⏸"},
		{"buffering", func() playback.Status {
			st := playing()
			st.ProcessingState = playback.ProcessingBuffering
			return st
		}, "…"},
		{"completed", func() playback.Status {
			st := playing()
			st.ProcessingState = playback.ProcessingCompleted
			return st
		}, "■"},
		{"error", func() playback.Status {
			st := playing()
			st.ProcessingState = playback.ProcessingError
			return st
		}, "✖"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(tt.st(), song(), 0, ModeCompact)
			assert.Equal(t, tt.want, ansi.Strip(statusSymbol(s)))
		})
	}
}

func TestModeIndicators(t *testing.T) {
	st := playing()
	assert.Empty(t, modeIndicators(NewState(st, song(), 0, ModeCompact)))

	st.Repeat = playback.RepeatOne
	st.Shuffle = playback.ShuffleAll
	st.Speed = 1.5
	assert.Equal(t, "🔂 🔀 1.5×", modeIndicators(NewState(st, song(), 0, ModeCompact)))
}

func TestUnknownDuration(t *testing.T) {
	item := song()
	item.Duration = 0
	s := NewState(playing(), item, 42*time.Second, ModeCompact)

	assert.Contains(t, ansi.Strip(Render(s, 100)), "0:42 / --:--")
	assert.Zero(t, filledCells(s.Position, s.Duration, 20))
}

func TestRenderProgressBar(t *testing.T) {
	s := NewState(playing(), song(), 0, ModeExpanded)
	s.Position = s.Duration / 2

	bar := RenderProgressBar(s, 41)
	assert.Equal(t, 41, lipgloss.Width(bar))
	assert.Equal(t, strings.Count(bar, filledBlock), strings.Count(bar, emptyBlock))

	assert.Equal(t, "▶  4:53 / 9:46", RenderProgressBar(s, 10))
}

func TestRenderExpanded(t *testing.T) {
	st := playing()
	out := Render(NewState(st, song(), time.Minute, ModeExpanded), 100)
	plain := ansi.Strip(out)

	assert.Equal(t, Height(ModeExpanded), strings.Count(out, "\n")+1)
	assert.Contains(t, plain, "02 - Freddie Freeloader")
	assert.Contains(t, plain, "Genre: Jazz")
	assert.Contains(t, plain, "♪", "placeholder drawn without cover")
	assert.NotContains(t, out, "\x1b_G")
}

func TestRenderExpanded_NarrowFallsBack(t *testing.T) {
	out := Render(NewState(playing(), song(), 0, ModeExpanded), 30)
	assert.Equal(t, Height(ModeCompact), strings.Count(out, "\n")+1)
}

func TestRenderExpanded_DrawsCover(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	path := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	item := song().WithExtra(media.ExtraArtCacheFile, path)
	out := Render(NewState(playing(), &item, 0, ModeExpanded), 100)
	assert.Contains(t, out, "\x1b_Ga=T,f=100,c=20,r=10")

	item = song().WithExtra(media.ExtraArtCacheFile, filepath.Join(t.TempDir(), "gone.png"))
	out = Render(NewState(playing(), &item, 0, ModeExpanded), 100)
	assert.NotContains(t, out, "\x1b_G", "unreadable cover keeps the placeholder")
}
