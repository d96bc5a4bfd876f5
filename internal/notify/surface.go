package notify

import (
	"context"
	"strings"
	"sync"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/surface"
)

const musicCategory = "x-gnome.music"

// TrackSurface shows a desktop notification for the current track. Updates
// of the same track, such as its artwork arriving, replace the notification
// in place. It only reads state; it never sends commands.
type TrackSurface struct {
	notifier Notifier

	mu      sync.Mutex
	cfg     surface.Config
	id      uint32
	trackID string
	item    map[string]any
	playing bool
	failed  string
}

var _ surface.Surface = (*TrackSurface)(nil)

// NewTrackSurface returns a surface sending notifications through n.
func NewTrackSurface(n Notifier) *TrackSurface {
	return &TrackSurface{notifier: n}
}

func (s *TrackSurface) Start(_ context.Context, cfg surface.Config, _ surface.Dispatcher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	return nil
}

// SetState hides the notification on pause when configured to, and reports
// playback errors.
func (s *TrackSurface) SetState(status playback.StatusRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasPlaying := s.playing
	s.playing = status.Playing

	if playback.ProcessingState(status.ProcessingState) == playback.ProcessingError {
		if status.ErrorMessage == "" || status.ErrorMessage == s.failed {
			return nil
		}
		s.failed = status.ErrorMessage
		return s.show(Notification{
			Title:   "Playback error",
			Body:    status.ErrorMessage,
			Icon:    s.cfg.Icon,
			Timeout: -1,
			Urgency: UrgencyCritical,
			Channel: s.cfg.ChannelID,
		})
	}
	s.failed = ""

	switch {
	case !status.Playing && wasPlaying && s.cfg.StopForegroundOnPause:
		return s.hide()
	case status.Playing && !wasPlaying && s.item != nil && s.id == 0:
		return s.showItem()
	}
	return nil
}

// SetMediaItem notifies about a new current item, or replaces the
// notification for the same one. A nil item hides it.
func (s *TrackSurface) SetMediaItem(item map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.item = item
	if item == nil {
		s.trackID = ""
		return s.hide()
	}
	id, _ := item[media.KeyID].(string)
	if id != s.trackID {
		s.trackID = id
	} else if s.id == 0 {
		// Hidden while paused: wait for playback to resume.
		return nil
	}
	if !s.playing && s.cfg.StopForegroundOnPause {
		return nil
	}
	return s.showItem()
}

func (s *TrackSurface) SetQueue([]map[string]any) error { return nil }

// Close hides the notification.
func (s *TrackSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hide()
}

func (s *TrackSurface) showItem() error {
	n := Notification{
		Title:    str(s.item, media.KeyDisplayTitle, media.KeyTitle),
		Body:     body(s.item),
		Icon:     s.cfg.Icon,
		Timeout:  -1,
		Urgency:  UrgencyLow,
		Category: musicCategory,
		Resident: s.cfg.Ongoing,
		Channel:  s.cfg.ChannelID,
	}
	if s.cfg.Ongoing {
		n.Timeout = 0
	}
	if extras, ok := s.item[media.KeyExtras].(map[string]any); ok {
		if art, _ := extras[media.ExtraArtCacheFile].(string); art != "" {
			n.Icon = art
		}
	}
	return s.show(n)
}

func (s *TrackSurface) show(n Notification) error {
	n.ReplacesID = s.id
	id, err := s.notifier.Notify(n)
	if err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *TrackSurface) hide() error {
	if s.id == 0 {
		return nil
	}
	id := s.id
	s.id = 0
	return s.notifier.Close(id)
}

// str returns the first non-empty string among keys.
func str(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, _ := rec[k].(string); v != "" {
			return v
		}
	}
	return ""
}

// body joins the subtitle, or artist and album, with a dash.
func body(rec map[string]any) string {
	if sub := str(rec, media.KeyDisplaySubtitle); sub != "" {
		return sub
	}
	var parts []string
	for _, k := range []string{media.KeyArtist, media.KeyAlbum} {
		if v := str(rec, k); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " - ")
}
