package session

import (
	"net/url"

	"github.com/samber/lo"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
)

// listen mirrors the chain's streams to surfaces and subscribers. Every
// stream delivers its current value right away.
func (s *Session) listen() {
	h := s.handler
	s.cancels = append(s.cancels,
		h.PlaybackStatus().Listen(s.onStatus),
		h.Queue().Listen(s.onQueue),
		h.MediaItem().Listen(s.onMediaItem),
		h.CustomEvents().Listen(s.onEvent),
	)
}

func (s *Session) onStatus(st playback.Status) {
	s.logIfFailed("set state", s.surfaces.SetState(st.Record()))
	s.broadcast(func(sub *Subscription) { sub.sendStatus(st) })
}

func (s *Session) onQueue(items []media.Item) {
	if s.cfg.QueueEnabled {
		s.logIfFailed("set queue", s.surfaces.SetQueue(media.Records(items)))
	}
	s.broadcast(func(sub *Subscription) { sub.sendQueue(items) })
	if s.cfg.PreloadArtwork {
		s.preload(items)
	}
}

func (s *Session) onEvent(event any) {
	s.broadcast(func(sub *Subscription) { sub.sendEvent(event) })
}

// onMediaItem publishes the item with its artwork resolved to a local file.
// Remote art that is not cached yet is fetched in the background: the item
// goes out once without art, then again once the file is ready.
func (s *Session) onMediaItem(item *media.Item) {
	seq := s.itemSeq.Add(1)
	s.broadcast(func(sub *Subscription) { sub.sendItem(item) })

	if item == nil || item.ArtURI == "" || s.art == nil {
		s.setMediaItem(seq, item, "")
		return
	}
	if path, ok := s.art.Cached(item.ArtURI); ok {
		s.setMediaItem(seq, item, path)
		return
	}
	if !isRemote(item.ArtURI) {
		path, err := s.art.Resolve(s.ctx, item.ArtURI)
		s.logArtFailure(item.ArtURI, err)
		s.setMediaItem(seq, item, path)
		return
	}

	s.setMediaItem(seq, item, "")
	it := item.Clone()
	s.goBackground(func() {
		path, err := s.art.Resolve(s.ctx, it.ArtURI)
		if err != nil {
			s.logArtFailure(it.ArtURI, err)
			return
		}
		s.setMediaItem(seq, &it, path)
	})
}

// setMediaItem sends item to the surfaces unless a newer item was published
// since seq.
func (s *Session) setMediaItem(seq uint64, item *media.Item, artPath string) {
	s.itemMu.Lock()
	defer s.itemMu.Unlock()
	if s.itemSeq.Load() != seq || s.ctx.Err() != nil {
		return
	}
	if item == nil {
		s.logIfFailed("set media item", s.surfaces.SetMediaItem(nil))
		return
	}
	it := *item
	if artPath != "" {
		it = it.WithExtra(media.ExtraArtCacheFile, artPath)
	}
	s.logIfFailed("set media item", s.surfaces.SetMediaItem(it.Record()))
}

// preload resolves the artwork of queued items in the background.
func (s *Session) preload(items []media.Item) {
	if s.art == nil {
		return
	}
	uris := lo.Uniq(lo.FilterMap(items, func(it media.Item, _ int) (string, bool) {
		if it.ArtURI == "" {
			return "", false
		}
		_, cached := s.art.Cached(it.ArtURI)
		return it.ArtURI, !cached
	}))
	if len(uris) == 0 {
		return
	}

	s.goBackground(func() {
		for _, uri := range uris {
			if s.ctx.Err() != nil {
				return
			}
			_, err := s.art.Resolve(s.ctx, uri)
			s.logArtFailure(uri, err)
		}
	})
}

func (s *Session) logIfFailed(op string, err error) {
	if err != nil {
		s.logger.Warn("surface update failed", "op", op, "error", err)
	}
}

func (s *Session) logArtFailure(uri string, err error) {
	if err != nil && s.ctx.Err() == nil {
		s.logger.Debug("artwork unavailable", "uri", uri, "error", err)
	}
}

func isRemote(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}
