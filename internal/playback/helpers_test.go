package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/llehouerou/audiosession/internal/media"
)

var errRejected = errors.New("rejected")

// recorder is an application handler that records the commands reaching it.
type recorder struct {
	*BaseHandler

	mu            sync.Mutex
	pauses        int
	plays         int
	stops         int
	clicks        []MediaButton
	seeks         []time.Duration
	skippedTo     []string
	skipNexts     int
	skipPrevs     int
	queueAtAdd    [][]media.Item
	failSeek      bool
	seekPublishes bool
}

func newRecorder() *recorder {
	return &recorder{BaseHandler: NewBaseHandler(), seekPublishes: true}
}

func (r *recorder) Pause(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pauses++
	return nil
}

func (r *recorder) Play(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plays++
	return nil
}

func (r *recorder) Stop(ctx context.Context) error {
	r.mu.Lock()
	r.stops++
	r.mu.Unlock()
	return r.BaseHandler.Stop(ctx)
}

func (r *recorder) Click(_ context.Context, b MediaButton) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clicks = append(r.clicks, b)
	return nil
}

func (r *recorder) SeekTo(_ context.Context, pos time.Duration) error {
	r.mu.Lock()
	if r.failSeek {
		r.mu.Unlock()
		return errRejected
	}
	r.seeks = append(r.seeks, pos)
	publish := r.seekPublishes
	r.mu.Unlock()

	if publish {
		return r.PublishStatus(r.PlaybackStatus().Value().WithPosition(pos, time.Now()))
	}
	return nil
}

func (r *recorder) SkipToQueueItem(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skippedTo = append(r.skippedTo, id)
	return nil
}

func (r *recorder) SkipToNext(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipNexts++
	return nil
}

func (r *recorder) SkipToPrevious(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipPrevs++
	return nil
}

func (r *recorder) AddQueueItem(context.Context, media.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queueAtAdd = append(r.queueAtAdd, r.Queue().Value())
	return nil
}

func (r *recorder) seekCalls() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.seeks...)
}

func item(id string, d time.Duration) media.Item {
	return media.NewItem(id, "Title "+id).WithDuration(d)
}

func ids(items []media.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// pausedAt returns a ready, paused status at pos.
func pausedAt(pos time.Duration) Status {
	s := IdleStatus()
	s.ProcessingState = ProcessingReady
	return s.WithPosition(pos, time.Now())
}
