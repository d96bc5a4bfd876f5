// Package session owns the single active playback session: the handler
// chain, the surfaces mirroring its state and the in-process subscribers.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/surface"
)

var (
	// ErrSessionActive is returned by Open while another session is open.
	ErrSessionActive = errors.New("session: a session is already active")
	// ErrClosed is returned by commands sent to a closed session.
	ErrClosed = errors.New("session: closed")
	// ErrInvalidConfig is returned by Open for a config it cannot run with.
	ErrInvalidConfig = errors.New("session: invalid config")
)

var (
	activeMu sync.Mutex
	active   *Session
)

// BuildFunc builds the handler chain for a new session and returns its
// outermost layer.
type BuildFunc func(ctx context.Context, cfg surface.Config) (playback.Handler, error)

// ArtResolver turns artwork URIs into local file paths.
type ArtResolver interface {
	// Cached returns the local path without doing any I/O beyond a lookup.
	Cached(uri string) (string, bool)
	Resolve(ctx context.Context, uri string) (string, error)
}

// Option configures a Session.
type Option func(*Session)

// WithSurface adds a surface mirroring the session state.
func WithSurface(s surface.Surface) Option {
	return func(sess *Session) {
		sess.surfaces = append(sess.surfaces, s)
	}
}

// WithArtResolver sets the resolver for item artwork. The session closes it
// if it implements io.Closer.
func WithArtResolver(r ArtResolver) Option {
	return func(s *Session) {
		s.art = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithSamplerOptions configures the position sampler.
func WithSamplerOptions(opts ...playback.SamplerOption) Option {
	return func(s *Session) {
		s.samplerOpts = append(s.samplerOpts, opts...)
	}
}

// Session is an open playback session.
type Session struct {
	id     string
	cfg    surface.Config
	logger *slog.Logger

	handler  playback.Handler
	attacher playback.Attacher
	surfaces surface.Multi
	art      ArtResolver

	samplerOpts []playback.SamplerOption
	sampler     *playback.Sampler

	ctx    context.Context
	cancel context.CancelFunc
	// goMu orders background starts against Close: once ctx is cancelled
	// under it, no goroutine joins wg.
	goMu    sync.Mutex
	wg      sync.WaitGroup
	cancels []playback.Cancel

	// itemSeq invalidates pending artwork emissions for older items.
	itemMu  sync.Mutex
	itemSeq atomic.Uint64

	childMu  sync.Mutex
	children map[string]*playback.ValueStream[[]media.Item]

	subsMu sync.Mutex
	subs   []*Subscription

	closeOnce sync.Once
	closeErr  error
}

// Open builds the handler chain with build, binds it to the session and
// starts mirroring its state to the surfaces. Only one session may be open
// at a time; Close releases the slot.
func Open(ctx context.Context, cfg surface.Config, build BuildFunc, opts ...Option) (*Session, error) {
	if cfg.FastForwardInterval <= 0 || cfg.RewindInterval <= 0 {
		return nil, fmt.Errorf("%w: seek intervals must be positive", ErrInvalidConfig)
	}

	activeMu.Lock()
	defer activeMu.Unlock()
	if active != nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionActive, active.id)
	}

	sessCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s := &Session{
		id:       uuid.NewString(),
		cfg:      cfg,
		logger:   slog.New(slog.DiscardHandler),
		ctx:      sessCtx,
		cancel:   cancel,
		children: make(map[string]*playback.ValueStream[[]media.Item]),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id)

	handler, err := build(ctx, cfg)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("build handler chain: %w", err)
	}
	if handler == nil {
		cancel()
		return nil, playback.ErrNilHandler
	}
	attacher, err := playback.AttacherOf(handler)
	if err != nil {
		cancel()
		return nil, err
	}
	s.handler = handler
	s.attacher = attacher
	s.sampler = playback.NewSampler(handler, s.samplerOpts...)

	attacher.Attach(handler, s.teardown)
	if err := s.surfaces.Start(sessCtx, cfg, s); err != nil {
		cancel()
		closeErr := errors.Join(s.closeLayers()...)
		attacher.Detach()
		_ = s.surfaces.Close()
		if closeErr != nil {
			s.logger.Warn("closing handler chain failed", "error", closeErr)
		}
		return nil, fmt.Errorf("start surfaces: %w", err)
	}
	s.listen()

	active = s
	s.logger.Info("session opened", "surfaces", len(s.surfaces))
	return s, nil
}

// Active returns the open session, or nil.
func Active() *Session {
	activeMu.Lock()
	defer activeMu.Unlock()
	return active
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Config returns the config the session was opened with.
func (s *Session) Config() surface.Config { return s.cfg }

// Handler returns the outermost layer of the handler chain.
func (s *Session) Handler() playback.Handler { return s.handler }

// Done is closed once the session is closed.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

// Positions returns the derived playback position. The channel closes when
// ctx ends or the session closes.
func (s *Session) Positions(ctx context.Context) <-chan time.Duration {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)
	context.AfterFunc(ctx, func() { stop() })
	return s.sampler.Positions(ctx)
}

// teardown is the chain's stop hook.
func (s *Session) teardown(context.Context) error {
	return s.Close()
}

// Close stops everything the session started, closes the layers, surfaces
// and artwork resolver, and lets a new session open. It is idempotent.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.goMu.Lock()
		s.cancel()
		s.goMu.Unlock()
		for _, cancel := range s.cancels {
			cancel()
		}
		s.wg.Wait()

		errs := s.closeLayers()
		s.attacher.Detach()
		errs = append(errs, s.surfaces.Close())
		if c, ok := s.art.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
		s.closeSubscriptions()
		s.closeChildren()

		activeMu.Lock()
		if active == s {
			active = nil
		}
		activeMu.Unlock()

		s.closeErr = errors.Join(errs...)
		s.logger.Info("session closed")
	})
	return s.closeErr
}

// closeLayers closes every layer of the chain that holds resources.
func (s *Session) closeLayers() []error {
	var errs []error
	for _, layer := range playback.Layers(s.handler) {
		if c, ok := layer.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errs
}

// goBackground runs fn on a goroutine Close waits for. It does nothing once
// the session is closing.
func (s *Session) goBackground(fn func()) {
	s.goMu.Lock()
	defer s.goMu.Unlock()
	if s.ctx.Err() != nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}
