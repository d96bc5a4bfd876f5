package playback

import (
	"context"
	"errors"
	"time"

	"github.com/llehouerou/audiosession/internal/media"
)

var (
	// ErrNilHandler is returned when a layer is built around a nil handler.
	ErrNilHandler = errors.New("playback: nil inner handler")
	// ErrIndexOutOfRange is returned by queue operations given a bad index.
	ErrIndexOutOfRange = errors.New("playback: queue index out of range")
	// ErrItemNotInQueue is returned when an item to update is not queued.
	ErrItemNotInQueue = errors.New("playback: item not in queue")
	// ErrNoPublisher is returned when a layer needs to publish state but no
	// handler in its chain owns state streams.
	ErrNoPublisher = errors.New("playback: no state owner in handler chain")
)

// RootID is the parent id of the top level of the browse tree.
const RootID = "root"

// Handler is the capability set of a playback controller.
//
// Commands block until done and may fail; a failed command leaves previously
// published state unchanged. The observables are value streams: a new
// listener first receives the latest value.
type Handler interface {
	Prepare(ctx context.Context) error
	PrepareFromMediaID(ctx context.Context, id string, extras map[string]any) error
	Play(ctx context.Context) error
	PlayFromMediaID(ctx context.Context, id string, extras map[string]any) error
	PlayMediaItem(ctx context.Context, item media.Item) error
	Pause(ctx context.Context) error
	Click(ctx context.Context, button MediaButton) error
	Stop(ctx context.Context) error

	AddQueueItem(ctx context.Context, item media.Item) error
	AddQueueItems(ctx context.Context, items []media.Item) error
	InsertQueueItem(ctx context.Context, index int, item media.Item) error
	UpdateQueue(ctx context.Context, items []media.Item) error
	ReplaceQueueRange(ctx context.Context, start, end int, items []media.Item) error
	UpdateMediaItem(ctx context.Context, item media.Item) error
	RemoveQueueItem(ctx context.Context, item media.Item) error
	RemoveQueueItemAt(ctx context.Context, index int) error

	SkipToNext(ctx context.Context) error
	SkipToPrevious(ctx context.Context) error
	SkipToQueueItem(ctx context.Context, id string) error

	// FastForward and Rewind seek relative to the current position. A zero
	// interval selects the configured default.
	FastForward(ctx context.Context, interval time.Duration) error
	Rewind(ctx context.Context, interval time.Duration) error
	SeekTo(ctx context.Context, position time.Duration) error
	// SeekForward and SeekBackward start (begin=true) or stop continuous seeking.
	SeekForward(ctx context.Context, begin bool) error
	SeekBackward(ctx context.Context, begin bool) error

	SetRating(ctx context.Context, rating media.Rating, extras map[string]any) error
	SetRepeatMode(ctx context.Context, mode RepeatMode) error
	SetShuffleMode(ctx context.Context, mode ShuffleMode) error
	SetSpeed(ctx context.Context, speed float64) error

	// CustomAction is the escape hatch for application-defined commands.
	CustomAction(ctx context.Context, name string, args map[string]any) (any, error)

	OnTaskRemoved(ctx context.Context) error
	OnNotificationDeleted(ctx context.Context) error

	GetChildren(ctx context.Context, parentID string, options map[string]any) ([]media.Item, error)
	GetMediaItem(ctx context.Context, id string) (*media.Item, error)
	Search(ctx context.Context, query string, extras map[string]any) ([]media.Item, error)

	PlaybackStatus() Observable[Status]
	Queue() Observable[[]media.Item]
	QueueTitle() Observable[string]
	MediaItem() Observable[*media.Item]
	CustomEvents() Events[any]
}

// Events is the read side of an event stream.
type Events[T any] interface {
	Listen(fn func(T)) Cancel
}

// Publisher is implemented by the handler that owns the state streams.
type Publisher interface {
	PublishStatus(s Status) error
	PublishQueue(items []media.Item)
	PublishQueueTitle(title string)
	PublishMediaItem(item *media.Item)
	EmitCustomEvent(event any)
}

// Attacher is implemented by the terminal handler of a chain, which the
// session binds to the chain head and its teardown.
type Attacher interface {
	Attach(head Handler, teardown TeardownFunc)
	Detach()
}

// Layers returns the handlers of the chain starting at h, outermost first.
func Layers(h Handler) []Handler {
	var layers []Handler
	for h != nil {
		layers = append(layers, h)
		u, ok := h.(interface{ Unwrap() Handler })
		if !ok {
			break
		}
		h = u.Unwrap()
	}
	return layers
}

// PublisherOf walks the handler chain inward and returns the first handler
// that owns state streams.
func PublisherOf(h Handler) (Publisher, error) {
	for _, layer := range Layers(h) {
		if p, ok := layer.(Publisher); ok {
			return p, nil
		}
	}
	return nil, ErrNoPublisher
}

// AttacherOf walks the handler chain inward and returns the terminal
// handler's lifecycle hooks.
func AttacherOf(h Handler) (Attacher, error) {
	for _, layer := range Layers(h) {
		if a, ok := layer.(Attacher); ok {
			return a, nil
		}
	}
	return nil, ErrNoPublisher
}
