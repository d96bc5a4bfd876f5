package session

import (
	"log/slog"

	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/surface"
)

// Chain wraps base in the standard layers, innermost first: queue
// bookkeeping when the config enables the queue, seeking with the
// configured intervals, then media button handling.
func Chain(base playback.Handler, cfg surface.Config, logger *slog.Logger) (playback.Handler, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := base
	if cfg.QueueEnabled {
		q, err := playback.NewQueueLayer(h)
		if err != nil {
			return nil, err
		}
		h = q
	}

	seeker, err := playback.NewSeeker(h,
		playback.WithIntervals(cfg.FastForwardInterval, cfg.RewindInterval),
		playback.WithSeekLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	buttons, err := playback.NewButtons(seeker)
	if err != nil {
		return nil, err
	}
	return buttons, nil
}
