package playback

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/llehouerou/audiosession/internal/media"
)

const (
	// DefaultSeekInterval is the fast-forward and rewind interval used when
	// none is configured.
	DefaultSeekInterval = 10 * time.Second

	// ContinuousSeekStep is how far each continuous-seek tick moves.
	ContinuousSeekStep = 10 * time.Second
	// ContinuousSeekTick is the period between continuous-seek nudges.
	ContinuousSeekTick = time.Second
)

// SeekerOption configures a Seeker.
type SeekerOption func(*Seeker)

// WithIntervals sets the default fast-forward and rewind intervals.
// Non-positive values keep DefaultSeekInterval.
func WithIntervals(fastForward, rewind time.Duration) SeekerOption {
	return func(s *Seeker) {
		if fastForward > 0 {
			s.fastForward = fastForward
		}
		if rewind > 0 {
			s.rewind = rewind
		}
	}
}

// WithSeekLogger sets the logger for failed stepper seeks.
func WithSeekLogger(logger *slog.Logger) SeekerOption {
	return func(s *Seeker) {
		s.logger = logger
	}
}

// Seeker turns relative and continuous seeking into SeekTo calls.
//
// FastForward, Rewind, SeekForward and SeekBackward are consumed by this
// layer: they are expressed as SeekTo on the inner handler and not forwarded.
type Seeker struct {
	*Composite

	fastForward time.Duration
	rewind      time.Duration
	logger      *slog.Logger

	mu      sync.Mutex
	stepper *stepper
}

// NewSeeker wraps inner with relative and continuous seeking.
func NewSeeker(inner Handler, opts ...SeekerOption) (*Seeker, error) {
	c, err := NewComposite(inner)
	if err != nil {
		return nil, err
	}
	s := &Seeker{
		Composite:   c,
		fastForward: DefaultSeekInterval,
		rewind:      DefaultSeekInterval,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// FastForward seeks forward by interval, or by the default when zero.
func (s *Seeker) FastForward(ctx context.Context, interval time.Duration) error {
	if interval == 0 {
		interval = s.fastForward
	}
	return s.seekRelative(ctx, interval)
}

// Rewind seeks backward by interval, or by the default when zero.
func (s *Seeker) Rewind(ctx context.Context, interval time.Duration) error {
	if interval == 0 {
		interval = s.rewind
	}
	return s.seekRelative(ctx, -interval)
}

// SeekForward starts or stops continuous forward seeking.
func (s *Seeker) SeekForward(_ context.Context, begin bool) error {
	s.seekContinuously(begin, ContinuousSeekStep)
	return nil
}

// SeekBackward starts or stops continuous backward seeking.
func (s *Seeker) SeekBackward(_ context.Context, begin bool) error {
	s.seekContinuously(begin, -ContinuousSeekStep)
	return nil
}

// Seeking reports whether a continuous seek is running.
func (s *Seeker) Seeking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepper != nil
}

// Close stops any continuous seek.
func (s *Seeker) Close() error {
	s.seekContinuously(false, 0)
	return nil
}

func (s *Seeker) seekRelative(ctx context.Context, offset time.Duration) error {
	pos := s.PlaybackStatus().Value().CurrentPosition() + offset
	return s.SeekTo(ctx, clampPosition(pos, s.MediaItem().Value()))
}

func (s *Seeker) seekContinuously(begin bool, step time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stepper != nil {
		s.stepper.stop()
		s.stepper = nil
	}
	if !begin {
		return
	}

	// The stepper clamps against the item current at start, even if the
	// item changes while it runs.
	item := s.MediaItem().Value()
	if item == nil || !item.HasDuration() {
		return
	}
	s.stepper = startStepper(s, step, ContinuousSeekTick, *item, s.logger)
}

// clampPosition bounds pos to [0, item duration]. Without a known duration
// only the lower bound applies.
func clampPosition(pos time.Duration, item *media.Item) time.Duration {
	pos = max(pos, 0)
	if item != nil && item.HasDuration() {
		pos = min(pos, item.Duration)
	}
	return pos
}

// stepper nudges the position by step every tick until stopped. The first
// nudge happens immediately. Seeks are fired without waiting for them; a
// tick is skipped while the previous seek is still running.
//
// Nudges fall at 0, tick, 2*tick and so on, so stopping anywhere in
// [n*tick, (n+1)*tick) yields n+1 seeks. A stop landing exactly on a tick
// races that tick's nudge and may or may not include it.
type stepper struct {
	target Handler
	step   time.Duration
	tick   time.Duration
	item   media.Item
	logger *slog.Logger

	mu       sync.Mutex
	stopped  bool
	inFlight atomic.Bool

	cancel context.CancelFunc
	done   chan struct{}
}

func startStepper(target Handler, step, tick time.Duration, item media.Item, logger *slog.Logger) *stepper {
	ctx, cancel := context.WithCancel(context.Background())
	st := &stepper{
		target: target,
		step:   step,
		tick:   tick,
		item:   item,
		logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go st.run(ctx)
	return st
}

func (st *stepper) run(ctx context.Context) {
	defer close(st.done)

	ticker := time.NewTicker(st.tick)
	defer ticker.Stop()

	if !st.nudge() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !st.nudge() {
				return
			}
		}
	}
}

// nudge issues one seek. It returns false once the stepper is stopped.
func (st *stepper) nudge() bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.stopped {
		return false
	}
	if !st.inFlight.CompareAndSwap(false, true) {
		return true
	}

	pos := st.target.PlaybackStatus().Value().CurrentPosition() + st.step
	pos = clampPosition(pos, &st.item)

	go func() {
		defer st.inFlight.Store(false)
		if err := st.target.SeekTo(context.Background(), pos); err != nil {
			st.logger.Debug("continuous seek failed", "position", pos, "error", err)
		}
	}()
	return true
}

// stop is idempotent. No nudge is issued after it returns.
func (st *stepper) stop() {
	st.mu.Lock()
	st.stopped = true
	st.mu.Unlock()

	st.cancel()
	<-st.done
}
