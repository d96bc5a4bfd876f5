// Package app is the terminal front end of the demo: it browses and queues
// media through a playback session and shows what the session publishes.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/audiosession/internal/keymap"
	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/session"
	"github.com/llehouerou/audiosession/internal/ui/browser"
	"github.com/llehouerou/audiosession/internal/ui/headerbar"
	"github.com/llehouerou/audiosession/internal/ui/playerbar"
	"github.com/llehouerou/audiosession/internal/ui/queuepanel"
)

// Session is the part of a playback session the UI drives.
type Session interface {
	Dispatch(ctx context.Context, name string, args ...any) (any, error)
	Subscribe() *session.Subscription
	Unsubscribe(sub *session.Subscription)
	Positions(ctx context.Context) <-chan time.Duration
	Children(ctx context.Context, parentID string) (playback.Observable[[]media.Item], error)
	Done() <-chan struct{}
}

// ArtLookup finds already resolved cover files for the expanded view.
type ArtLookup interface {
	Cached(uri string) (string, bool)
}

// FocusTarget is the panel receiving navigation keys.
type FocusTarget int

const (
	FocusBrowser FocusTarget = iota
	FocusQueue
)

// Options configures the UI.
type Options struct {
	Title    string
	Surfaces []headerbar.Surface
	Art      ArtLookup
	Logger   *slog.Logger
}

// Model is the root application model.
type Model struct {
	ctx     context.Context
	sess    Session
	sub     *session.Subscription
	pos     <-chan time.Duration
	opts    Options
	keys    *keymap.Resolver
	help    help.Model
	logger  *slog.Logger
	Browser browser.Model
	Queue   queuepanel.Model

	Focus       FocusTarget
	DisplayMode playerbar.DisplayMode
	Status      playback.Status
	Item        *media.Item
	Position    time.Duration
	seeking     int // +1 seeking forward, -1 backward, 0 not seeking
	ErrorMsg    string
	Width       int
	Height      int
}

// New subscribes to sess. The subscription ends when ctx is done or the
// session closes.
func New(ctx context.Context, sess Session, opts Options) Model {
	if opts.Title == "" {
		opts.Title = "audiosession"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := Model{
		ctx:     ctx,
		sess:    sess,
		sub:     sess.Subscribe(),
		pos:     sess.Positions(ctx),
		opts:    opts,
		keys:    keymap.NewResolver(keymap.Default),
		help:    help.New(),
		logger:  logger,
		Browser: browser.New(),
		Queue:   queuepanel.New("Queue"),
		Status:  playback.IdleStatus(),
	}
	m.Browser.SetFocused(true)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.watchSession(),
		m.watchPositions(),
		m.loadChildren(m.Browser.ParentID()),
		WatchStderr(),
	)
}

// Close releases the subscription.
func (m Model) Close() {
	m.sess.Unsubscribe(m.sub)
}
