package player

import "time"

// Interface is the audio backend driven by the local handler. Player is the
// speaker-backed implementation; Mock stands in for it in tests.
type Interface interface {
	// Play loads path and starts it from the beginning.
	Play(path string) error
	Stop()
	Pause()
	Resume()
	SeekTo(pos time.Duration) error

	State() State
	TrackInfo() *TrackInfo
	Position() time.Duration
	Duration() time.Duration

	// Finished signals each natural end of track. Stop does not signal.
	Finished() <-chan struct{}
}

var (
	_ Interface = (*Player)(nil)
	_ Interface = (*Mock)(nil)
)
