// Package localaudio is a playback handler for audio files on disk.
//
// Item ids are absolute file paths; folders are browsable, non-playable
// items. The handler expects a queue layer in front of it for skipping and
// queue edits, and advances through the queue on its own when a track ends.
package localaudio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/player"
)

// Custom actions understood by the handler.
const (
	ActionClearQueue = "clearQueue"
	ActionProbe      = "probe"
)

var (
	// ErrUnsupportedSpeed is returned for any speed other than 1.
	ErrUnsupportedSpeed = errors.New("localaudio: playback speed not supported")
	// ErrUnknownAction is returned by CustomAction for names it does not handle.
	ErrUnknownAction = errors.New("localaudio: unknown custom action")
	// ErrOutsideLibrary is returned when browsing above the library root.
	ErrOutsideLibrary = errors.New("localaudio: path outside library")
	// ErrNotFound is returned when a media id names nothing playable.
	ErrNotFound = errors.New("localaudio: media not found")
)

var systemActions = playback.NewActionSet(
	playback.ActionSeek,
	playback.ActionSeekForward,
	playback.ActionSeekBackward,
	playback.ActionFastForward,
	playback.ActionRewind,
	playback.ActionSkipToQueueItem,
	playback.ActionSetRating,
	playback.ActionSetRepeatMode,
	playback.ActionSetShuffleMode,
	playback.ActionPlayFromMediaID,
	playback.ActionPrepareFromMediaID,
)

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger for playback failures.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// Handler drives a player.Interface from playback commands.
type Handler struct {
	*playback.BaseHandler

	player player.Interface
	root   string
	logger *slog.Logger

	// cmdMu serializes transport changes.
	cmdMu sync.Mutex

	mu      sync.Mutex
	repeat  playback.RepeatMode
	shuffle playback.ShuffleMode

	cancel context.CancelFunc
	done   chan struct{}
}

// New returns a handler browsing root and playing through p. It watches p
// for finished tracks until Close.
func New(p player.Interface, root string, opts ...Option) *Handler {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handler{
		BaseHandler: playback.NewBaseHandler(),
		player:      p,
		root:        root,
		logger:      slog.New(slog.DiscardHandler),
		cancel:      cancel,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	go h.watch(ctx)
	return h
}

// Close stops the watcher and the player.
func (h *Handler) Close() error {
	h.cancel()
	<-h.done
	h.player.Stop()
	return nil
}

func (h *Handler) watch(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.player.Finished():
			h.advance(ctx)
		}
	}
}

// advance moves to the next track after one ended, honoring the repeat
// mode. It goes through the chain head so outer layers see the skip.
func (h *Handler) advance(ctx context.Context) {
	cur := h.MediaItem().Value()
	if cur == nil {
		return
	}
	queue := h.Queue().Value()

	h.mu.Lock()
	repeat := h.repeat
	h.mu.Unlock()

	if repeat == playback.RepeatOne {
		h.cmdMu.Lock()
		defer h.cmdMu.Unlock()
		h.logIfFailed("repeat track", h.start(*cur))
		return
	}

	next := media.IndexOf(queue, cur.ID) + 1
	if next <= 0 || next >= len(queue) {
		if repeat != playback.RepeatAll || len(queue) == 0 {
			h.cmdMu.Lock()
			defer h.cmdMu.Unlock()
			h.publish(playback.ProcessingCompleted, false, cur.Duration)
			return
		}
		next = 0
	}

	var target playback.Handler = h
	if head := h.Head(); head != nil {
		target = head
	}
	h.logIfFailed("advance", target.SkipToQueueItem(ctx, queue[next].ID))
}

func (h *Handler) logIfFailed(op string, err error) {
	if err != nil {
		h.logger.Warn("playback failed", "op", op, "error", err)
	}
}

// status builds a status for the current modes.
func (h *Handler) status(state playback.ProcessingState, playing bool, pos time.Duration) playback.Status {
	h.mu.Lock()
	repeat, shuffle := h.repeat, h.shuffle
	h.mu.Unlock()

	toggle := playback.PlayControl
	if playing {
		toggle = playback.PauseControl
	}
	var index *int
	if cur := h.MediaItem().Value(); cur != nil {
		if i := media.IndexOf(h.Queue().Value(), cur.ID); i >= 0 {
			index = &i
		}
	}
	return playback.Status{
		ProcessingState: state,
		Playing:         playing,
		Controls: []playback.Control{
			playback.SkipToPreviousControl,
			toggle,
			playback.SkipToNextControl,
			playback.StopControl,
		},
		SystemActions:    systemActions,
		CompactIndices:   []int{0, 1, 2},
		Position:         pos,
		BufferedPosition: h.player.Duration(),
		Speed:            1,
		UpdateTime:       time.Now(),
		Repeat:           repeat,
		Shuffle:          shuffle,
		QueueIndex:       index,
	}
}

func (h *Handler) publish(state playback.ProcessingState, playing bool, pos time.Duration) {
	h.logIfFailed("publish status", h.PublishStatus(h.status(state, playing, pos)))
}

// start plays item from the beginning. It must be called with cmdMu held.
func (h *Handler) start(item media.Item) error {
	if cur := h.MediaItem().Value(); cur == nil || cur.ID != item.ID {
		h.PublishMediaItem(&item)
	}

	if err := h.player.Play(item.ID); err != nil {
		st := h.status(playback.ProcessingError, false, 0)
		st.ErrorMessage = err.Error()
		h.logIfFailed("publish status", h.PublishStatus(st))
		return fmt.Errorf("play %s: %w", item.ID, err)
	}

	// The duration is only known once the file is decoded.
	if d := h.player.Duration(); d > 0 && item.Duration != d {
		h.replaceItem(item.WithDuration(d))
	}
	h.publish(playback.ProcessingReady, true, 0)
	return nil
}

// replaceItem republishes item as the current item and in the queue.
func (h *Handler) replaceItem(item media.Item) {
	queue := slices.Clone(h.Queue().Value())
	if idx := media.IndexOf(queue, item.ID); idx >= 0 {
		queue[idx] = item
		h.PublishQueue(queue)
	}
	if cur := h.MediaItem().Value(); cur != nil && cur.ID == item.ID {
		h.PublishMediaItem(&item)
	}
}

// Play resumes, or starts the current item (or the first queued one).
func (h *Handler) Play(context.Context) error {
	h.cmdMu.Lock()
	defer h.cmdMu.Unlock()

	switch h.player.State() {
	case player.Playing:
		return nil
	case player.Paused:
		h.player.Resume()
		h.publish(playback.ProcessingReady, true, h.player.Position())
		return nil
	case player.Stopped:
	}

	if cur := h.MediaItem().Value(); cur != nil {
		return h.start(*cur)
	}
	if queue := h.Queue().Value(); len(queue) > 0 {
		return h.start(queue[0])
	}
	return nil
}

func (h *Handler) Pause(context.Context) error {
	h.cmdMu.Lock()
	defer h.cmdMu.Unlock()

	if h.player.State() != player.Playing {
		return nil
	}
	h.player.Pause()
	h.publish(playback.ProcessingReady, false, h.player.Position())
	return nil
}

// Stop stops the player and ends the session.
func (h *Handler) Stop(ctx context.Context) error {
	h.cmdMu.Lock()
	h.player.Stop()
	h.publish(playback.ProcessingIdle, false, 0)
	h.cmdMu.Unlock()

	return h.BaseHandler.Stop(ctx)
}

func (h *Handler) SeekTo(_ context.Context, pos time.Duration) error {
	h.cmdMu.Lock()
	defer h.cmdMu.Unlock()

	state := h.player.State()
	if !state.IsActive() {
		return nil
	}
	if err := h.player.SeekTo(pos); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	h.publish(playback.ProcessingReady, state == player.Playing, h.player.Position())
	return nil
}

// SkipToQueueItem plays the queued item with id.
func (h *Handler) SkipToQueueItem(_ context.Context, id string) error {
	h.cmdMu.Lock()
	defer h.cmdMu.Unlock()

	queue := h.Queue().Value()
	idx := media.IndexOf(queue, id)
	if idx < 0 {
		return nil
	}
	return h.start(queue[idx])
}

// PlayFromMediaID queues the folder id, or the folder holding the file id,
// and plays from id.
func (h *Handler) PlayFromMediaID(ctx context.Context, id string, _ map[string]any) error {
	items, start, err := h.load(ctx, id)
	if err != nil {
		return err
	}

	h.cmdMu.Lock()
	defer h.cmdMu.Unlock()
	h.PublishQueue(items)
	return h.start(items[start])
}

// PrepareFromMediaID queues like PlayFromMediaID without starting playback.
func (h *Handler) PrepareFromMediaID(ctx context.Context, id string, _ map[string]any) error {
	items, start, err := h.load(ctx, id)
	if err != nil {
		return err
	}

	h.cmdMu.Lock()
	defer h.cmdMu.Unlock()
	h.player.Stop()
	h.PublishQueue(items)
	h.PublishMediaItem(&items[start])
	h.publish(playback.ProcessingReady, false, 0)
	return nil
}

// PlayMediaItem plays item, appending it to the queue if absent.
func (h *Handler) PlayMediaItem(_ context.Context, item media.Item) error {
	h.cmdMu.Lock()
	defer h.cmdMu.Unlock()

	if queue := h.Queue().Value(); media.IndexOf(queue, item.ID) < 0 {
		h.PublishQueue(append(slices.Clone(queue), item))
	}
	return h.start(item)
}

func (h *Handler) SetRepeatMode(_ context.Context, mode playback.RepeatMode) error {
	h.mu.Lock()
	h.repeat = mode
	h.mu.Unlock()
	return h.republishModes()
}

// SetShuffleMode shuffles the queue behind the current item when turned on.
func (h *Handler) SetShuffleMode(_ context.Context, mode playback.ShuffleMode) error {
	h.mu.Lock()
	was := h.shuffle
	h.shuffle = mode
	h.mu.Unlock()

	if mode == playback.ShuffleAll && was != playback.ShuffleAll {
		h.shuffleQueue()
	}
	return h.republishModes()
}

func (h *Handler) shuffleQueue() {
	queue := slices.Clone(h.Queue().Value())
	cur := h.MediaItem().Value()
	if cur == nil {
		h.PublishQueue(lo.Shuffle(queue))
		return
	}
	rest := lo.Reject(queue, func(it media.Item, _ int) bool { return it.ID == cur.ID })
	if len(rest) == len(queue) {
		h.PublishQueue(lo.Shuffle(queue))
		return
	}
	h.PublishQueue(append([]media.Item{*cur}, lo.Shuffle(rest)...))
}

func (h *Handler) republishModes() error {
	st := h.PlaybackStatus().Value().Clone()
	h.mu.Lock()
	st.Repeat, st.Shuffle = h.repeat, h.shuffle
	h.mu.Unlock()
	return h.PublishStatus(st)
}

func (h *Handler) SetSpeed(_ context.Context, speed float64) error {
	if speed != 1 {
		return fmt.Errorf("%w: %g", ErrUnsupportedSpeed, speed)
	}
	return nil
}

// SetRating rates the current item.
func (h *Handler) SetRating(_ context.Context, rating media.Rating, _ map[string]any) error {
	cur := h.MediaItem().Value()
	if cur == nil {
		return nil
	}
	h.replaceItem(cur.WithRating(rating))
	return nil
}

// CustomAction handles ActionClearQueue and ActionProbe. Probe takes an
// "id" argument and returns the file's duration in milliseconds.
func (h *Handler) CustomAction(_ context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case ActionClearQueue:
		h.cmdMu.Lock()
		defer h.cmdMu.Unlock()
		h.player.Stop()
		h.PublishQueue(nil)
		h.PublishMediaItem(nil)
		h.publish(playback.ProcessingIdle, false, 0)
		return nil, nil
	case ActionProbe:
		id, _ := args["id"].(string)
		if id == "" || !h.within(id) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		info, err := player.Probe(id)
		if err != nil {
			return nil, err
		}
		return info.Duration.Milliseconds(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}

// OnTaskRemoved stops playback when the owning UI goes away.
func (h *Handler) OnTaskRemoved(ctx context.Context) error {
	return h.Stop(ctx)
}
