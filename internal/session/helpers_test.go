package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/surface"
)

// fakeHandler records the commands it receives.
type fakeHandler struct {
	*playback.BaseHandler

	mu         sync.Mutex
	calls      []string
	seeks      []time.Duration
	fetches    map[string]int
	children   map[string][]media.Item
	actionArgs map[string]any
	closed     bool
}

func newFakeHandler() *fakeHandler {
	return &fakeHandler{
		BaseHandler: playback.NewBaseHandler(),
		fetches:     make(map[string]int),
		children:    make(map[string][]media.Item),
	}
}

func (f *fakeHandler) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeHandler) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeHandler) Play(context.Context) error {
	f.record("play")
	return nil
}

func (f *fakeHandler) Pause(context.Context) error {
	f.record("pause")
	return errors.New("pause refused")
}

func (f *fakeHandler) Prepare(context.Context) error {
	panic("prepare exploded")
}

func (f *fakeHandler) SeekTo(_ context.Context, pos time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, pos)
	return nil
}

func (f *fakeHandler) SetRepeatMode(_ context.Context, mode playback.RepeatMode) error {
	f.record("repeat:" + mode.String())
	return nil
}

func (f *fakeHandler) GetChildren(_ context.Context, parentID string, _ map[string]any) ([]media.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches[parentID]++
	return f.children[parentID], nil
}

func (f *fakeHandler) CustomAction(_ context.Context, name string, args map[string]any) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actionArgs = args
	return "done:" + name, nil
}

func (f *fakeHandler) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// fakeSurface records what the session sends it.
type fakeSurface struct {
	mu         sync.Mutex
	cfg        surface.Config
	dispatcher surface.Dispatcher
	startErr   error
	states     []playback.StatusRecord
	items      []map[string]any
	queues     [][]map[string]any
	closed     bool
}

func (f *fakeSurface) Start(_ context.Context, cfg surface.Config, d surface.Dispatcher) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg, f.dispatcher = cfg, d
	return f.startErr
}

func (f *fakeSurface) SetState(st playback.StatusRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states = append(f.states, st)
	return nil
}

func (f *fakeSurface) SetMediaItem(item map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, item)
	return nil
}

func (f *fakeSurface) SetQueue(items []map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queues = append(f.queues, items)
	return nil
}

func (f *fakeSurface) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSurface) Items() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.items...)
}

// fakeArt resolves URIs from a fixed table.
type fakeArt struct {
	mu       sync.Mutex
	cached   map[string]string
	files    map[string]string
	resolved []string
	closed   bool
	// gate, when set, holds Resolve until closed.
	gate chan struct{}
}

func newFakeArt() *fakeArt {
	return &fakeArt{cached: make(map[string]string), files: make(map[string]string)}
}

func (f *fakeArt) Cached(uri string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path, ok := f.cached[uri]
	return path, ok
}

func (f *fakeArt) Resolve(_ context.Context, uri string) (string, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolved = append(f.resolved, uri)
	path, ok := f.files[uri]
	if !ok {
		return "", errors.New("no such artwork")
	}
	f.cached[uri] = path
	return path, nil
}

func (f *fakeArt) Resolved() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.resolved...)
}

func (f *fakeArt) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func testConfig() surface.Config {
	return surface.Config{
		FastForwardInterval: 10 * time.Second,
		RewindInterval:      10 * time.Second,
		QueueEnabled:        true,
	}
}

// open opens a session around h and closes it when the test ends.
func open(t *testing.T, cfg surface.Config, h playback.Handler, opts ...Option) *Session {
	t.Helper()
	s, err := Open(context.Background(), cfg, func(context.Context, surface.Config) (playback.Handler, error) {
		return h, nil
	}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func artFile(rec map[string]any) string {
	extras, _ := rec[media.KeyExtras].(map[string]any)
	path, _ := extras[media.ExtraArtCacheFile].(string)
	return path
}
