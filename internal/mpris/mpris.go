//go:build linux

// Package mpris mirrors a playback session on the session bus as an MPRIS
// media player, so desktop control centers and media keys can drive it.
package mpris

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/quarckster/go-mpris-server/pkg/server"

	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/surface"
)

var _ surface.Surface = (*Adapter)(nil)

// Adapter is a surface that serves MPRIS over D-Bus.
type Adapter struct {
	identity string
	logger   *slog.Logger

	mu     sync.RWMutex
	snap   snapshot
	server *server.Server
	ctx    context.Context
	d      surface.Dispatcher
}

// New returns an adapter announcing itself as identity. It connects to the
// bus on Start.
func New(identity string, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{identity: identity, logger: logger}
}

// Start registers the player on the session bus.
func (a *Adapter) Start(ctx context.Context, _ surface.Config, d surface.Dispatcher) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.server != nil {
		return errors.New("mpris: already started")
	}
	a.ctx, a.d = ctx, d
	a.server = server.NewServer(a.identity, &rootAdapter{identity: a.identity}, &playerAdapter{a: a})

	srv := a.server
	go func() {
		if err := srv.Listen(); err != nil {
			a.logger.Warn("mpris server stopped", "error", err)
		}
	}()
	return nil
}

func (a *Adapter) SetState(status playback.StatusRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snap.status = status
	return nil
}

func (a *Adapter) SetMediaItem(item map[string]any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snap.item = item
	return nil
}

func (a *Adapter) SetQueue(items []map[string]any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snap.queue = items
	return nil
}

// Close releases the bus name.
func (a *Adapter) Close() error {
	a.mu.Lock()
	srv := a.server
	a.server = nil
	a.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Stop()
}

func (a *Adapter) snapshot() snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap
}

func (a *Adapter) dispatch(name string, args ...any) error {
	a.mu.RLock()
	ctx, d := a.ctx, a.d
	a.mu.RUnlock()
	if d == nil {
		return errors.New("mpris: not started")
	}
	_, err := d.Dispatch(ctx, name, args...)
	return err
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	identity string
}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - the application owns its lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return r.identity, nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav"}, nil
}
