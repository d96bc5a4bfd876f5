package playback

import (
	"context"
	"slices"

	"github.com/samber/lo"

	"github.com/llehouerou/audiosession/internal/media"
)

// QueueLayer keeps the queue stream as the source of truth for ordering.
//
// Every queue mutation publishes the full new queue exactly once and only
// then calls the inner handler, so listeners see the new membership before
// any side effect runs.
type QueueLayer struct {
	*Composite
	pub Publisher
}

// NewQueueLayer wraps inner with queue bookkeeping. Some handler in the
// chain below must own the state streams.
func NewQueueLayer(inner Handler) (*QueueLayer, error) {
	c, err := NewComposite(inner)
	if err != nil {
		return nil, err
	}
	pub, err := PublisherOf(inner)
	if err != nil {
		return nil, err
	}
	return &QueueLayer{Composite: c, pub: pub}, nil
}

func (q *QueueLayer) current() []media.Item {
	return slices.Clone(q.Queue().Value())
}

// AddQueueItem appends item.
func (q *QueueLayer) AddQueueItem(ctx context.Context, item media.Item) error {
	q.pub.PublishQueue(append(q.current(), item))
	return q.Inner().AddQueueItem(ctx, item)
}

// AddQueueItems appends items in order.
func (q *QueueLayer) AddQueueItems(ctx context.Context, items []media.Item) error {
	q.pub.PublishQueue(append(q.current(), items...))
	return q.Inner().AddQueueItems(ctx, items)
}

// InsertQueueItem inserts item at index, which must be in [0, len].
func (q *QueueLayer) InsertQueueItem(ctx context.Context, index int, item media.Item) error {
	queue := q.current()
	if index < 0 || index > len(queue) {
		return ErrIndexOutOfRange
	}
	q.pub.PublishQueue(slices.Insert(queue, index, item))
	return q.Inner().InsertQueueItem(ctx, index, item)
}

// UpdateQueue replaces the whole queue.
func (q *QueueLayer) UpdateQueue(ctx context.Context, items []media.Item) error {
	q.pub.PublishQueue(items)
	return q.Inner().UpdateQueue(ctx, items)
}

// ReplaceQueueRange replaces queue[start:end] with items, which may be of a
// different length.
func (q *QueueLayer) ReplaceQueueRange(ctx context.Context, start, end int, items []media.Item) error {
	queue := q.current()
	if start < 0 || end < start || end > len(queue) {
		return ErrIndexOutOfRange
	}
	q.pub.PublishQueue(slices.Replace(queue, start, end, items...))
	return q.Inner().ReplaceQueueRange(ctx, start, end, items)
}

// UpdateMediaItem replaces the first queued item with the same id. If it is
// also the current item, the current item is republished too.
func (q *QueueLayer) UpdateMediaItem(ctx context.Context, item media.Item) error {
	queue := q.current()
	idx := media.IndexOf(queue, item.ID)
	if idx < 0 {
		return ErrItemNotInQueue
	}
	queue[idx] = item
	q.pub.PublishQueue(queue)
	if cur := q.MediaItem().Value(); cur != nil && cur.Equal(item) {
		q.pub.PublishMediaItem(&item)
	}
	return q.Inner().UpdateMediaItem(ctx, item)
}

// RemoveQueueItem removes the first queued item with the same id.
func (q *QueueLayer) RemoveQueueItem(ctx context.Context, item media.Item) error {
	queue := q.current()
	if _, idx, ok := lo.FindIndexOf(queue, item.Equal); ok {
		queue = slices.Delete(queue, idx, idx+1)
	}
	q.pub.PublishQueue(queue)
	return q.Inner().RemoveQueueItem(ctx, item)
}

// RemoveQueueItemAt removes the item at index.
func (q *QueueLayer) RemoveQueueItemAt(ctx context.Context, index int) error {
	queue := q.current()
	if index < 0 || index >= len(queue) {
		return ErrIndexOutOfRange
	}
	q.pub.PublishQueue(slices.Delete(queue, index, index+1))
	return q.Inner().RemoveQueueItemAt(ctx, index)
}

// SkipToNext moves to the item after the current one through the inner
// SkipToQueueItem. Nothing changes, and nothing is delegated, if the current
// item is last or not queued.
func (q *QueueLayer) SkipToNext(ctx context.Context) error {
	return q.skip(ctx, 1)
}

// SkipToPrevious is SkipToNext in the other direction.
func (q *QueueLayer) SkipToPrevious(ctx context.Context) error {
	return q.skip(ctx, -1)
}

// SkipToQueueItem makes the first queued item with id current. Unknown ids
// are ignored.
func (q *QueueLayer) SkipToQueueItem(ctx context.Context, id string) error {
	queue := q.Queue().Value()
	idx := media.IndexOf(queue, id)
	if idx < 0 {
		return nil
	}
	return q.skipTo(ctx, queue, idx)
}

func (q *QueueLayer) skip(ctx context.Context, offset int) error {
	cur := q.MediaItem().Value()
	if cur == nil {
		return nil
	}
	queue := q.Queue().Value()
	idx := media.IndexOf(queue, cur.ID)
	if idx < 0 {
		return nil
	}
	next := idx + offset
	if next < 0 || next >= len(queue) {
		return nil
	}
	return q.skipTo(ctx, queue, next)
}

// skipTo publishes queue[idx] as the current item and the status pointing
// at idx, then hands the skip to the inner handler.
func (q *QueueLayer) skipTo(ctx context.Context, queue []media.Item, idx int) error {
	item := queue[idx]
	q.pub.PublishMediaItem(&item)
	if err := q.pub.PublishStatus(q.PlaybackStatus().Value().WithQueueIndex(idx)); err != nil {
		return err
	}
	return q.Inner().SkipToQueueItem(ctx, item.ID)
}
