package playback

import (
	"context"
	"time"

	"github.com/llehouerou/audiosession/internal/media"
)

// Sampler defaults.
const (
	DefaultSamplerSteps     = 800
	DefaultSamplerMinPeriod = 16 * time.Millisecond
	DefaultSamplerMaxPeriod = 200 * time.Millisecond
)

// StateSource is what a Sampler reads from.
type StateSource interface {
	PlaybackStatus() Observable[Status]
	MediaItem() Observable[*media.Item]
}

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler)

// WithSteps sets how many samples to aim for over the item's duration.
func WithSteps(steps int) SamplerOption {
	return func(s *Sampler) {
		if steps > 0 {
			s.steps = steps
		}
	}
}

// WithPeriodBounds sets the minimum and maximum tick period.
func WithPeriodBounds(minPeriod, maxPeriod time.Duration) SamplerOption {
	return func(s *Sampler) {
		if minPeriod > 0 && maxPeriod >= minPeriod {
			s.minPeriod = minPeriod
			s.maxPeriod = maxPeriod
		}
	}
}

// Sampler derives a smooth position signal for progress animation from the
// status and current item streams.
type Sampler struct {
	source    StateSource
	steps     int
	minPeriod time.Duration
	maxPeriod time.Duration
}

// NewSampler returns a sampler reading from source.
func NewSampler(source StateSource, opts ...SamplerOption) *Sampler {
	s := &Sampler{
		source:    source,
		steps:     DefaultSamplerSteps,
		minPeriod: DefaultSamplerMinPeriod,
		maxPeriod: DefaultSamplerMaxPeriod,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Period returns the tick period for item: its duration divided by the step
// count, clamped to the period bounds. Items without a duration use the
// maximum period.
func (s *Sampler) Period(item *media.Item) time.Duration {
	if item == nil || !item.HasDuration() {
		return s.maxPeriod
	}
	return min(max(item.Duration/time.Duration(s.steps), s.minPeriod), s.maxPeriod)
}

// Positions starts a position sequence that lives until ctx is done. The
// current position is sent first, then a value on every tick where the
// position changed. The channel is unbuffered, so nothing is produced while
// no one receives, and it is closed once the sampler has detached.
func (s *Sampler) Positions(ctx context.Context) <-chan time.Duration {
	out := make(chan time.Duration)
	go s.run(ctx, out)
	return out
}

func (s *Sampler) run(ctx context.Context, out chan<- time.Duration) {
	defer close(out)

	status := s.source.PlaybackStatus()
	item := s.source.MediaItem()

	changed := make(chan struct{}, 1)
	notify := func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}
	cancelStatus := status.Listen(func(Status) { notify() })
	defer cancelStatus()
	cancelItem := item.Listen(func(*media.Item) { notify() })
	defer cancelItem()

	ticker := time.NewTicker(s.Period(item.Value()))
	defer ticker.Stop()

	var last time.Duration
	emit := func(pos time.Duration) bool {
		select {
		case out <- pos:
			last = pos
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !emit(status.Value().CurrentPosition()) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-changed:
			ticker.Reset(s.Period(item.Value()))
		case <-ticker.C:
			pos := status.Value().CurrentPosition()
			if pos == last {
				continue
			}
			if !emit(pos) {
				return
			}
		}
	}
}
