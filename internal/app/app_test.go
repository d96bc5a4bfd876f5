package app

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/session"
	"github.com/llehouerou/audiosession/internal/ui/browser"
	"github.com/llehouerou/audiosession/internal/ui/playerbar"
)

type call struct {
	name string
	args []any
}

type fakeSession struct {
	mu       sync.Mutex
	calls    []call
	err      error
	children map[string][]media.Item

	status chan playback.Status
	item   chan *media.Item
	queue  chan []media.Item
	events chan any
	subEnd chan struct{}
	done   chan struct{}
	pos    chan time.Duration
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		children: map[string][]media.Item{},
		status:   make(chan playback.Status, 4),
		item:     make(chan *media.Item, 4),
		queue:    make(chan []media.Item, 4),
		events:   make(chan any, 4),
		subEnd:   make(chan struct{}),
		done:     make(chan struct{}),
		pos:      make(chan time.Duration, 4),
	}
}

func (f *fakeSession) Dispatch(_ context.Context, name string, args ...any) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{name, args})
	return nil, f.err
}

func (f *fakeSession) Subscribe() *session.Subscription {
	return &session.Subscription{
		StatusChanged: f.status,
		ItemChanged:   f.item,
		QueueChanged:  f.queue,
		Events:        f.events,
		Done:          f.subEnd,
	}
}

func (f *fakeSession) Unsubscribe(*session.Subscription) {}

func (f *fakeSession) Positions(context.Context) <-chan time.Duration { return f.pos }

func (f *fakeSession) Children(_ context.Context, parentID string) (playback.Observable[[]media.Item], error) {
	items, ok := f.children[parentID]
	if !ok {
		return nil, errors.New("no such folder")
	}
	return playback.NewValueStream(items), nil
}

func (f *fakeSession) Done() <-chan struct{} { return f.done }

func (f *fakeSession) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

// run executes cmd, flattening batches and sequences.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for i := range v.Len() {
		if c, ok := v.Index(i).Interface().(tea.Cmd); ok {
			out = append(out, run(c)...)
		}
	}
	return out
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func press(s string) tea.KeyMsg {
	switch s {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func playingStatus() playback.Status {
	st := playback.IdleStatus()
	st.ProcessingState = playback.ProcessingReady
	st.Playing = true
	return st
}

func newModel(t *testing.T) (Model, *fakeSession) {
	t.Helper()
	f := newFakeSession()
	m := New(context.Background(), f, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, f
}

func TestPlayPause_FollowsStatus(t *testing.T) {
	m, f := newModel(t)

	_, cmd := update(t, m, press("space"))
	run(cmd)

	m, _ = update(t, m, StatusMsg{Status: playingStatus()})
	_, cmd = update(t, m, press("space"))
	run(cmd)

	calls := f.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, session.CmdPlay, calls[0].name)
	assert.Equal(t, session.CmdPause, calls[1].name)
}

func TestKeysDispatchCommands(t *testing.T) {
	tests := []struct {
		key  string
		name string
		args []any
	}{
		{"n", session.CmdSkipToNext, nil},
		{"N", session.CmdSkipToPrevious, nil},
		{"s", session.CmdStop, nil},
		{"c", session.CmdClick, nil},
		{"R", session.CmdSetRepeatMode, []any{int(playback.RepeatOne)}},
		{"S", session.CmdSetShuffleMode, []any{int(playback.ShuffleAll)}},
		{"]", session.CmdSetSpeed, []any{1.25}},
		{"[", session.CmdSetSpeed, []any{0.75}},
		{"C", session.CustomActionPrefix + "clearQueue", nil},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, f := newModel(t)
			_, cmd := update(t, m, press(tt.key))
			run(cmd)
			calls := f.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.name, calls[0].name)
			assert.Equal(t, tt.args, calls[0].args)
		})
	}
}

func TestCycleRepeat_Wraps(t *testing.T) {
	m, f := newModel(t)
	st := playingStatus()
	st.Repeat = playback.RepeatAll
	m, _ = update(t, m, StatusMsg{Status: st})

	_, cmd := update(t, m, press("R"))
	run(cmd)
	assert.Equal(t, []any{int(playback.RepeatNone)}, f.Calls()[0].args)
}

func TestContinuousSeekToggles(t *testing.T) {
	m, f := newModel(t)

	m, cmd := update(t, m, press(">"))
	run(cmd)
	m, cmd = update(t, m, press("<"))
	run(cmd)
	_, cmd = update(t, m, press("<"))
	run(cmd)

	assert.Equal(t, []call{
		{session.CmdSeekForward, []any{true}},
		{session.CmdSeekForward, []any{false}},
		{session.CmdSeekBackward, []any{true}},
		{session.CmdSeekBackward, []any{false}},
	}, f.Calls())
}

func TestRate_TogglesHeart(t *testing.T) {
	m, f := newModel(t)
	_, cmd := update(t, m, press("*"))
	assert.Empty(t, run(cmd), "nothing to rate")

	it := media.NewItem("a", "A")
	m, _ = update(t, m, ItemMsg{Item: &it})
	_, cmd = update(t, m, press("*"))
	run(cmd)
	require.Len(t, f.Calls(), 1)
	assert.Equal(t, []any{media.NewHeartRating(true)}, f.Calls()[0].args)
}

func TestCommandFailureShowsError(t *testing.T) {
	m, f := newModel(t)
	f.err = errors.New("speaker busy")

	_, cmd := update(t, m, press("space"))
	msgs := run(cmd)
	require.Len(t, msgs, 1)
	m, _ = update(t, m, msgs[0])

	assert.Equal(t, "Failed to start playback: speaker busy", m.ErrorMsg)
	assert.Contains(t, ansi.Strip(m.View()), "speaker busy")

	m, _ = update(t, m, press("n"))
	assert.Empty(t, m.ErrorMsg, "next action clears the error")
}

func TestBrowseAndPlay(t *testing.T) {
	m, f := newModel(t)
	folder := media.NewItem("/music/jazz", "jazz")
	folder.Playable = false
	song := media.NewItem("/music/jazz/so-what.mp3", "So What")
	f.children[playback.RootID] = []media.Item{folder}
	f.children["/music/jazz"] = []media.Item{song}

	msgs := run(m.loadChildren(playback.RootID))
	m, _ = update(t, m, msgs[0])
	assert.Contains(t, ansi.Strip(m.View()), "jazz/")

	m, cmd := update(t, m, press("enter"))
	msgs = run(cmd)
	require.Equal(t, []tea.Msg{browser.OpenMsg{ID: "/music/jazz"}}, msgs)
	m, cmd = update(t, m, msgs[0])
	msgs = run(cmd)
	m, _ = update(t, m, msgs[0])
	assert.Contains(t, ansi.Strip(m.View()), "So What")

	m, cmd = update(t, m, press("enter"))
	m, cmd = update(t, m, run(cmd)[0])
	run(cmd)
	_, cmd = update(t, m, press("a"))
	m, cmd = update(t, m, run(cmd)[0])
	run(cmd)

	calls := f.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, call{session.CmdPlayFromMediaID, []any{song.ID}}, calls[0])
	assert.Equal(t, call{session.CmdAddQueueItem, []any{song}}, calls[1])
}

func TestBrowseError(t *testing.T) {
	m, _ := newModel(t)
	m, _ = update(t, m, run(m.loadChildren(playback.RootID))[0])
	assert.Contains(t, ansi.Strip(m.View()), "Failed to browse library: no such folder")
}

func TestQueuePanelCommands(t *testing.T) {
	m, f := newModel(t)
	items := []media.Item{media.NewItem("a", "A"), media.NewItem("b", "B")}
	m, _ = update(t, m, QueueMsg{Items: items})
	m, _ = update(t, m, press("tab"))
	assert.Equal(t, FocusQueue, m.Focus)

	m, _ = update(t, m, press("j"))
	m, cmd := update(t, m, press("enter"))
	m, cmd = update(t, m, run(cmd)[0])
	run(cmd)
	_, cmd = update(t, m, press("d"))
	m, cmd = update(t, m, run(cmd)[0])
	run(cmd)

	assert.Equal(t, []call{
		{session.CmdSkipToQueueItem, []any{"b"}},
		{session.CmdRemoveQueueItemAt, []any{1}},
	}, f.Calls())
}

func TestWatchSession(t *testing.T) {
	m, f := newModel(t)

	f.status <- playingStatus()
	assert.IsType(t, StatusMsg{}, run(m.watchSession())[0])

	it := media.NewItem("a", "A")
	f.item <- &it
	assert.Equal(t, ItemMsg{Item: &it}, run(m.watchSession())[0])

	f.events <- "ping"
	assert.Equal(t, EventMsg{Event: "ping"}, run(m.watchSession())[0])

	close(f.done)
	assert.Equal(t, SessionClosedMsg{}, run(m.watchSession())[0])
}

func TestSessionClosedQuits(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := update(t, m, SessionClosedMsg{})
	assert.Equal(t, []tea.Msg{tea.QuitMsg{}}, run(cmd))
}

func TestPositionsAreClamped(t *testing.T) {
	m, f := newModel(t)
	it := media.NewItem("a", "A").WithDuration(time.Minute)
	m, _ = update(t, m, ItemMsg{Item: &it})

	m, cmd := update(t, m, PositionMsg(2*time.Minute))
	assert.Equal(t, time.Minute, m.Position)

	f.pos <- 5 * time.Second
	assert.Equal(t, []tea.Msg{PositionMsg(5 * time.Second)}, run(cmd))
}

func TestView_PlayerBarAndDisplayToggle(t *testing.T) {
	m, _ := newModel(t)
	it := media.NewItem("a", "Freddie Freeloader").WithDuration(time.Minute)
	m, _ = update(t, m, ItemMsg{Item: &it})
	m, _ = update(t, m, StatusMsg{Status: playingStatus()})

	view := m.View()
	assert.Contains(t, ansi.Strip(view), "Freddie Freeloader")
	assert.Equal(t, 30, strings.Count(view, "\n")+1, "fills the window")

	m, _ = update(t, m, press("v"))
	assert.Equal(t, playerbar.ModeExpanded, m.DisplayMode)
	assert.Equal(t, 30, strings.Count(m.View(), "\n")+1)
}
