package playback

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/llehouerou/audiosession/internal/media"
)

// Verify BaseHandler implements Handler and Publisher at compile time.
var (
	_ Handler   = (*BaseHandler)(nil)
	_ Publisher = (*BaseHandler)(nil)
	_ Attacher  = (*BaseHandler)(nil)
)

// TeardownFunc deactivates audio output and ends the session.
type TeardownFunc func(ctx context.Context) error

// BaseHandler is the terminal handler of a chain. It owns the state streams
// and implements every command as a no-op, except Stop and
// OnNotificationDeleted.
//
// Applications embed *BaseHandler, override the commands they support and
// publish new state with the Publish methods. The streams are not reachable
// any other way.
type BaseHandler struct {
	status     *ValueStream[Status]
	queue      *ValueStream[[]media.Item]
	queueTitle *ValueStream[string]
	mediaItem  *ValueStream[*media.Item]
	events     *EventStream[any]

	mu       sync.Mutex
	head     Handler
	teardown TeardownFunc
	now      func() time.Time
}

// NewBaseHandler returns a handler with idle status, an empty queue and no
// current item.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{
		status:     NewValueStream(IdleStatus()),
		queue:      NewValueStream([]media.Item{}),
		queueTitle: NewValueStream(""),
		mediaItem:  NewValueStream[*media.Item](nil),
		events:     NewEventStream[any](),
		now:        time.Now,
	}
}

// Attach records the head of the handler chain and the session teardown.
// The session calls it once the chain is built.
func (b *BaseHandler) Attach(head Handler, teardown TeardownFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.head = head
	b.teardown = teardown
}

// Head returns the outermost handler of the chain, or nil before Attach.
// Handlers that trigger commands on their own, such as auto-advance at the
// end of a track, go through it so every layer sees the command.
func (b *BaseHandler) Head() Handler {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.head
}

// Detach closes the state streams. Called by the session on close.
func (b *BaseHandler) Detach() {
	b.mu.Lock()
	b.head = nil
	b.teardown = nil
	b.mu.Unlock()

	b.status.Close()
	b.queue.Close()
	b.queueTitle.Close()
	b.mediaItem.Close()
	b.events.close()
}

// PublishStatus validates s and makes it the current status. The status is
// stamped with the current time unless the caller set a fresh UpdateTime.
func (b *BaseHandler) PublishStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	next := restamp(b.status.Value(), s.Clone(), b.now())
	b.status.Publish(next)
	return nil
}

// PublishQueue makes items the current queue.
func (b *BaseHandler) PublishQueue(items []media.Item) {
	b.queue.Publish(slices.Clone(items))
}

// PublishQueueTitle sets the queue title.
func (b *BaseHandler) PublishQueueTitle(title string) {
	b.queueTitle.Publish(title)
}

// PublishMediaItem sets the current item; nil clears it.
func (b *BaseHandler) PublishMediaItem(item *media.Item) {
	if item != nil {
		c := item.Clone()
		item = &c
	}
	b.mediaItem.Publish(item)
}

// EmitCustomEvent broadcasts an application-defined event.
func (b *BaseHandler) EmitCustomEvent(event any) {
	b.events.emit(event)
}

func (b *BaseHandler) PlaybackStatus() Observable[Status] { return b.status }
func (b *BaseHandler) Queue() Observable[[]media.Item]    { return b.queue }
func (b *BaseHandler) QueueTitle() Observable[string]     { return b.queueTitle }
func (b *BaseHandler) MediaItem() Observable[*media.Item] { return b.mediaItem }
func (b *BaseHandler) CustomEvents() Events[any]          { return b.events }

// Stop deactivates audio output and signals session teardown. Handlers that
// override Stop must still call it.
func (b *BaseHandler) Stop(ctx context.Context) error {
	b.mu.Lock()
	teardown := b.teardown
	b.mu.Unlock()
	if teardown == nil {
		return nil
	}
	return teardown(ctx)
}

// OnNotificationDeleted stops playback through the head of the chain, so
// that every layer's Stop runs.
func (b *BaseHandler) OnNotificationDeleted(ctx context.Context) error {
	b.mu.Lock()
	head := b.head
	b.mu.Unlock()
	if head == nil {
		return b.Stop(ctx)
	}
	return head.Stop(ctx)
}

func (b *BaseHandler) Prepare(context.Context) error { return nil }

func (b *BaseHandler) PrepareFromMediaID(context.Context, string, map[string]any) error {
	return nil
}

func (b *BaseHandler) Play(context.Context) error { return nil }

func (b *BaseHandler) PlayFromMediaID(context.Context, string, map[string]any) error {
	return nil
}

func (b *BaseHandler) PlayMediaItem(context.Context, media.Item) error { return nil }

func (b *BaseHandler) Pause(context.Context) error { return nil }

func (b *BaseHandler) Click(context.Context, MediaButton) error { return nil }

func (b *BaseHandler) AddQueueItem(context.Context, media.Item) error { return nil }

func (b *BaseHandler) AddQueueItems(context.Context, []media.Item) error { return nil }

func (b *BaseHandler) InsertQueueItem(context.Context, int, media.Item) error { return nil }

func (b *BaseHandler) UpdateQueue(context.Context, []media.Item) error { return nil }

func (b *BaseHandler) ReplaceQueueRange(context.Context, int, int, []media.Item) error {
	return nil
}

func (b *BaseHandler) UpdateMediaItem(context.Context, media.Item) error { return nil }

func (b *BaseHandler) RemoveQueueItem(context.Context, media.Item) error { return nil }

func (b *BaseHandler) RemoveQueueItemAt(context.Context, int) error { return nil }

func (b *BaseHandler) SkipToNext(context.Context) error { return nil }

func (b *BaseHandler) SkipToPrevious(context.Context) error { return nil }

func (b *BaseHandler) SkipToQueueItem(context.Context, string) error { return nil }

func (b *BaseHandler) FastForward(context.Context, time.Duration) error { return nil }

func (b *BaseHandler) Rewind(context.Context, time.Duration) error { return nil }

func (b *BaseHandler) SeekTo(context.Context, time.Duration) error { return nil }

func (b *BaseHandler) SeekForward(context.Context, bool) error { return nil }

func (b *BaseHandler) SeekBackward(context.Context, bool) error { return nil }

func (b *BaseHandler) SetRating(context.Context, media.Rating, map[string]any) error {
	return nil
}

func (b *BaseHandler) SetRepeatMode(context.Context, RepeatMode) error { return nil }

func (b *BaseHandler) SetShuffleMode(context.Context, ShuffleMode) error { return nil }

func (b *BaseHandler) SetSpeed(context.Context, float64) error { return nil }

func (b *BaseHandler) CustomAction(context.Context, string, map[string]any) (any, error) {
	return nil, nil //nolint:nilnil // no custom actions by default
}

func (b *BaseHandler) OnTaskRemoved(context.Context) error { return nil }

func (b *BaseHandler) GetChildren(context.Context, string, map[string]any) ([]media.Item, error) {
	return []media.Item{}, nil
}

func (b *BaseHandler) GetMediaItem(context.Context, string) (*media.Item, error) {
	return nil, nil //nolint:nilnil // unknown id
}

func (b *BaseHandler) Search(context.Context, string, map[string]any) ([]media.Item, error) {
	return []media.Item{}, nil
}
