package mpris

import (
	"net/url"
	"slices"
	"time"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
)

// snapshot is the latest state the session sent. D-Bus property reads are
// answered from it.
type snapshot struct {
	status playback.StatusRecord
	item   map[string]any
	queue  []map[string]any
}

func (s snapshot) playing() bool {
	return s.status.Playing
}

// stopped reports whether there is nothing loaded to resume.
func (s snapshot) stopped() bool {
	if s.item == nil {
		return true
	}
	switch playback.ProcessingState(s.status.ProcessingState) {
	case playback.ProcessingIdle, playback.ProcessingError:
		return true
	default:
		return false
	}
}

// position extrapolates the status position to now.
func (s snapshot) position(now time.Time) time.Duration {
	pos := time.Duration(s.status.PositionMs) * time.Millisecond
	if !s.status.Playing || playback.ProcessingState(s.status.ProcessingState) != playback.ProcessingReady {
		return pos
	}
	elapsed := now.Sub(time.UnixMilli(s.status.UpdateTimeMs))
	pos += time.Duration(float64(elapsed) * s.status.Speed)
	if d := s.duration(); d > 0 && pos > d {
		return d
	}
	return pos
}

func (s snapshot) hasAction(a playback.Action) bool {
	return slices.Contains(s.status.SystemActions, int(a)) ||
		slices.ContainsFunc(s.status.Controls, func(c playback.ControlRecord) bool {
			return c.Action == int(a)
		})
}

// queueIndex returns the index of the current item in the queue, or -1.
// The status index wins when it points at the current item, which tells
// repeated entries apart.
func (s snapshot) queueIndex() int {
	id := s.str(media.KeyID)
	if id == "" {
		return -1
	}
	if i := s.status.QueueIndex; i != nil && *i >= 0 && *i < len(s.queue) && s.queue[*i][media.KeyID] == id {
		return *i
	}
	return slices.IndexFunc(s.queue, func(rec map[string]any) bool {
		return rec[media.KeyID] == id
	})
}

func (s snapshot) hasNext() bool {
	idx := s.queueIndex()
	if idx < 0 {
		return s.hasAction(playback.ActionSkipToNext)
	}
	return idx < len(s.queue)-1
}

func (s snapshot) hasPrevious() bool {
	idx := s.queueIndex()
	if idx < 0 {
		return s.hasAction(playback.ActionSkipToPrevious)
	}
	return idx > 0
}

func (s snapshot) str(key string) string {
	v, _ := s.item[key].(string)
	return v
}

func (s snapshot) duration() time.Duration {
	ms, _ := s.item[media.KeyDuration].(int64)
	return time.Duration(ms) * time.Millisecond
}

func (s snapshot) extra(key string) any {
	extras, _ := s.item[media.KeyExtras].(map[string]any)
	return extras[key]
}

func (s snapshot) trackNumber() int {
	switch n := s.extra(media.ExtraTrackNumber).(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// artURL prefers the resolved local file over the original URI.
func (s snapshot) artURL() string {
	if path, _ := s.extra(media.ExtraArtCacheFile).(string); path != "" {
		return (&url.URL{Scheme: "file", Path: path}).String()
	}
	return s.str(media.KeyArtURI)
}
