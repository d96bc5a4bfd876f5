//go:build !linux

package mpris

import (
	"context"
	"log/slog"

	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/surface"
)

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ string, _ *slog.Logger) *Adapter {
	return &Adapter{}
}

func (a *Adapter) Start(context.Context, surface.Config, surface.Dispatcher) error { return nil }
func (a *Adapter) SetState(playback.StatusRecord) error                            { return nil }
func (a *Adapter) SetMediaItem(map[string]any) error                               { return nil }
func (a *Adapter) SetQueue([]map[string]any) error                                 { return nil }
func (a *Adapter) Close() error                                                    { return nil }
