package session

import (
	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
)

const eventBufferSize = 16

// Subscription provides state channels for an in-process subscriber. Each
// channel first receives the value current at Subscribe. Sends never block
// the session: a full buffer drops the update.
type Subscription struct {
	StatusChanged <-chan playback.Status
	ItemChanged   <-chan *media.Item
	QueueChanged  <-chan []media.Item
	Events        <-chan any
	// Done is closed when the subscription ends.
	Done <-chan struct{}

	statusCh chan playback.Status
	itemCh   chan *media.Item
	queueCh  chan []media.Item
	eventCh  chan any
	doneCh   chan struct{}
	closed   bool
}

func newSubscription() *Subscription {
	s := &Subscription{
		statusCh: make(chan playback.Status, eventBufferSize),
		itemCh:   make(chan *media.Item, eventBufferSize),
		queueCh:  make(chan []media.Item, eventBufferSize),
		eventCh:  make(chan any, eventBufferSize),
		doneCh:   make(chan struct{}),
	}
	s.StatusChanged = s.statusCh
	s.ItemChanged = s.itemCh
	s.QueueChanged = s.queueCh
	s.Events = s.eventCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	if !s.closed {
		s.closed = true
		close(s.doneCh)
	}
}

func (s *Subscription) sendStatus(st playback.Status) {
	select {
	case s.statusCh <- st:
	default:
	}
}

func (s *Subscription) sendItem(item *media.Item) {
	select {
	case s.itemCh <- item:
	default:
	}
}

func (s *Subscription) sendQueue(items []media.Item) {
	select {
	case s.queueCh <- items:
	default:
	}
}

func (s *Subscription) sendEvent(event any) {
	select {
	case s.eventCh <- event:
	default:
	}
}

// Subscribe returns a subscription that lasts until Unsubscribe or Close.
// On a closed session it returns a subscription that is already done.
func (s *Session) Subscribe() *Subscription {
	sub := newSubscription()

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if s.ctx.Err() != nil {
		sub.close()
		return sub
	}
	sub.sendStatus(s.handler.PlaybackStatus().Value())
	sub.sendItem(s.handler.MediaItem().Value())
	sub.sendQueue(s.handler.Queue().Value())
	s.subs = append(s.subs, sub)
	return sub
}

// Unsubscribe ends sub.
func (s *Session) Unsubscribe(sub *Subscription) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for i, existing := range s.subs {
		if existing == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			break
		}
	}
	sub.close()
}

func (s *Session) broadcast(send func(*Subscription)) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, sub := range s.subs {
		send(sub)
	}
}

func (s *Session) closeSubscriptions() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
}
