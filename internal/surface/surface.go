// Package surface defines the boundary between a playback session and the
// presentation layers that mirror it: desktop control centers, notification
// popups, lock screens.
//
// A surface only sees wire records. It never holds handler or stream
// references; commands flow back through the Dispatcher it is started with.
package surface

import (
	"context"
	"errors"
	"time"

	"github.com/llehouerou/audiosession/internal/playback"
)

// Config is sent to every surface once, when the session starts.
type Config struct {
	ChannelID          string
	ChannelName        string
	ChannelDescription string
	Color              string // "#rrggbb", empty for the platform default
	Icon               string

	ShowBadge             bool
	Ongoing               bool
	StopForegroundOnPause bool
	ResumeOnClick         bool

	// ArtDownscaleWidth and ArtDownscaleHeight bound resolved artwork.
	// Zero means no downscaling.
	ArtDownscaleWidth  int
	ArtDownscaleHeight int

	QueueEnabled   bool
	PreloadArtwork bool

	FastForwardInterval time.Duration
	RewindInterval      time.Duration
}

// Dispatcher routes a named command with positional arguments to the
// session's handler chain.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, args ...any) (any, error)
}

// Surface receives state records from a session.
//
// Set methods are called from the goroutine that published the change and
// must not block on the session.
type Surface interface {
	Start(ctx context.Context, cfg Config, d Dispatcher) error
	SetState(status playback.StatusRecord) error
	// SetMediaItem receives nil when there is no current item.
	SetMediaItem(item map[string]any) error
	SetQueue(items []map[string]any) error
	Close() error
}

// Multi fans every call out to each surface in order.
type Multi []Surface

var _ Surface = Multi(nil)

func (m Multi) Start(ctx context.Context, cfg Config, d Dispatcher) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Start(ctx, cfg, d))
	}
	return errors.Join(errs...)
}

func (m Multi) SetState(status playback.StatusRecord) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.SetState(status))
	}
	return errors.Join(errs...)
}

func (m Multi) SetMediaItem(item map[string]any) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.SetMediaItem(item))
	}
	return errors.Join(errs...)
}

func (m Multi) SetQueue(items []map[string]any) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.SetQueue(items))
	}
	return errors.Join(errs...)
}

// Close closes every surface, even if some fail.
func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Start(context.Context, Config, Dispatcher) error { return nil }
func (Nop) SetState(playback.StatusRecord) error            { return nil }
func (Nop) SetMediaItem(map[string]any) error               { return nil }
func (Nop) SetQueue([]map[string]any) error                 { return nil }
func (Nop) Close() error                                    { return nil }
