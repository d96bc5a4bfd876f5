package playback

import (
	"context"
	"time"

	"github.com/llehouerou/audiosession/internal/media"
)

// Verify Composite implements Handler at compile time.
var _ Handler = (*Composite)(nil)

// Composite forwards every command and observable to the handler it wraps.
//
// Feature layers embed *Composite and override only the methods they change.
// An override must still call the method it replaces on Inner(); skipping
// it cuts every layer below out of that command.
type Composite struct {
	inner Handler
}

// NewComposite wraps inner.
func NewComposite(inner Handler) (*Composite, error) {
	if inner == nil {
		return nil, ErrNilHandler
	}
	return &Composite{inner: inner}, nil
}

// Inner returns the wrapped handler.
func (c *Composite) Inner() Handler { return c.inner }

// Unwrap returns the wrapped handler.
func (c *Composite) Unwrap() Handler { return c.inner }

func (c *Composite) Prepare(ctx context.Context) error {
	return c.inner.Prepare(ctx)
}

func (c *Composite) PrepareFromMediaID(ctx context.Context, id string, extras map[string]any) error {
	return c.inner.PrepareFromMediaID(ctx, id, extras)
}

func (c *Composite) Play(ctx context.Context) error {
	return c.inner.Play(ctx)
}

func (c *Composite) PlayFromMediaID(ctx context.Context, id string, extras map[string]any) error {
	return c.inner.PlayFromMediaID(ctx, id, extras)
}

func (c *Composite) PlayMediaItem(ctx context.Context, item media.Item) error {
	return c.inner.PlayMediaItem(ctx, item)
}

func (c *Composite) Pause(ctx context.Context) error {
	return c.inner.Pause(ctx)
}

func (c *Composite) Click(ctx context.Context, button MediaButton) error {
	return c.inner.Click(ctx, button)
}

func (c *Composite) Stop(ctx context.Context) error {
	return c.inner.Stop(ctx)
}

func (c *Composite) AddQueueItem(ctx context.Context, item media.Item) error {
	return c.inner.AddQueueItem(ctx, item)
}

func (c *Composite) AddQueueItems(ctx context.Context, items []media.Item) error {
	return c.inner.AddQueueItems(ctx, items)
}

func (c *Composite) InsertQueueItem(ctx context.Context, index int, item media.Item) error {
	return c.inner.InsertQueueItem(ctx, index, item)
}

func (c *Composite) UpdateQueue(ctx context.Context, items []media.Item) error {
	return c.inner.UpdateQueue(ctx, items)
}

func (c *Composite) ReplaceQueueRange(ctx context.Context, start, end int, items []media.Item) error {
	return c.inner.ReplaceQueueRange(ctx, start, end, items)
}

func (c *Composite) UpdateMediaItem(ctx context.Context, item media.Item) error {
	return c.inner.UpdateMediaItem(ctx, item)
}

func (c *Composite) RemoveQueueItem(ctx context.Context, item media.Item) error {
	return c.inner.RemoveQueueItem(ctx, item)
}

func (c *Composite) RemoveQueueItemAt(ctx context.Context, index int) error {
	return c.inner.RemoveQueueItemAt(ctx, index)
}

func (c *Composite) SkipToNext(ctx context.Context) error {
	return c.inner.SkipToNext(ctx)
}

func (c *Composite) SkipToPrevious(ctx context.Context) error {
	return c.inner.SkipToPrevious(ctx)
}

func (c *Composite) SkipToQueueItem(ctx context.Context, id string) error {
	return c.inner.SkipToQueueItem(ctx, id)
}

func (c *Composite) FastForward(ctx context.Context, interval time.Duration) error {
	return c.inner.FastForward(ctx, interval)
}

func (c *Composite) Rewind(ctx context.Context, interval time.Duration) error {
	return c.inner.Rewind(ctx, interval)
}

func (c *Composite) SeekTo(ctx context.Context, position time.Duration) error {
	return c.inner.SeekTo(ctx, position)
}

func (c *Composite) SeekForward(ctx context.Context, begin bool) error {
	return c.inner.SeekForward(ctx, begin)
}

func (c *Composite) SeekBackward(ctx context.Context, begin bool) error {
	return c.inner.SeekBackward(ctx, begin)
}

func (c *Composite) SetRating(ctx context.Context, rating media.Rating, extras map[string]any) error {
	return c.inner.SetRating(ctx, rating, extras)
}

func (c *Composite) SetRepeatMode(ctx context.Context, mode RepeatMode) error {
	return c.inner.SetRepeatMode(ctx, mode)
}

func (c *Composite) SetShuffleMode(ctx context.Context, mode ShuffleMode) error {
	return c.inner.SetShuffleMode(ctx, mode)
}

func (c *Composite) SetSpeed(ctx context.Context, speed float64) error {
	return c.inner.SetSpeed(ctx, speed)
}

func (c *Composite) CustomAction(ctx context.Context, name string, args map[string]any) (any, error) {
	return c.inner.CustomAction(ctx, name, args)
}

func (c *Composite) OnTaskRemoved(ctx context.Context) error {
	return c.inner.OnTaskRemoved(ctx)
}

func (c *Composite) OnNotificationDeleted(ctx context.Context) error {
	return c.inner.OnNotificationDeleted(ctx)
}

func (c *Composite) GetChildren(ctx context.Context, parentID string, options map[string]any) ([]media.Item, error) {
	return c.inner.GetChildren(ctx, parentID, options)
}

func (c *Composite) GetMediaItem(ctx context.Context, id string) (*media.Item, error) {
	return c.inner.GetMediaItem(ctx, id)
}

func (c *Composite) Search(ctx context.Context, query string, extras map[string]any) ([]media.Item, error) {
	return c.inner.Search(ctx, query, extras)
}

func (c *Composite) PlaybackStatus() Observable[Status] { return c.inner.PlaybackStatus() }
func (c *Composite) Queue() Observable[[]media.Item]    { return c.inner.Queue() }
func (c *Composite) QueueTitle() Observable[string]     { return c.inner.QueueTitle() }
func (c *Composite) MediaItem() Observable[*media.Item] { return c.inner.MediaItem() }
func (c *Composite) CustomEvents() Events[any]          { return c.inner.CustomEvents() }
