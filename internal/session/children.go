package session

import (
	"context"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
)

// Children returns the browse children of parentID as a value stream. The
// first call for a parent fetches from the handler chain; later calls return
// the same stream without fetching again. Failed fetches are not cached.
func (s *Session) Children(ctx context.Context, parentID string) (playback.Observable[[]media.Item], error) {
	s.childMu.Lock()
	defer s.childMu.Unlock()

	if stream, ok := s.children[parentID]; ok {
		return stream, nil
	}
	items, err := s.handler.GetChildren(ctx, parentID, nil)
	if err != nil {
		return nil, err
	}
	stream := playback.NewValueStream(items)
	s.children[parentID] = stream
	return stream, nil
}

// NotifyChildrenChanged refetches the children of parentID if they were
// loaded before, so listeners of the cached stream see the change.
func (s *Session) NotifyChildrenChanged(ctx context.Context, parentID string) error {
	s.childMu.Lock()
	defer s.childMu.Unlock()

	stream, ok := s.children[parentID]
	if !ok {
		return nil
	}
	items, err := s.handler.GetChildren(ctx, parentID, nil)
	if err != nil {
		return err
	}
	stream.Publish(items)
	return nil
}

func (s *Session) closeChildren() {
	s.childMu.Lock()
	defer s.childMu.Unlock()
	for _, stream := range s.children {
		stream.Close()
	}
	clear(s.children)
}
