// Package notify shows the current track as a desktop notification.
package notify

import "errors"

// ErrUnavailable is returned by New when no notification server can be
// reached. Callers may fall back to Discard.
var ErrUnavailable = errors.New("notification server unavailable")

// Urgency levels of the freedesktop notification protocol.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification is one popup. A zero ReplacesID opens a new one.
type Notification struct {
	Title      string
	Body       string
	Icon       string // icon name or image path
	Timeout    int32  // ms, -1 server default, 0 never expires
	ReplacesID uint32
	Urgency    Urgency
	Category   string
	Resident   bool
	Channel    string // grouping key, sent as the desktop-entry hint
}

// Hints returns the protocol hints for n. Channel falls back to appName.
func (n Notification) Hints(appName string) map[string]any {
	h := map[string]any{"urgency": byte(n.Urgency)}
	entry := n.Channel
	if entry == "" {
		entry = appName
	}
	if entry != "" {
		h["desktop-entry"] = entry
	}
	if n.Category != "" {
		h["category"] = n.Category
	}
	if n.Resident {
		h["resident"] = true
	}
	return h
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns the id the server assigned.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// Discard is a Notifier that shows nothing.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notification) (uint32, error) { return 0, nil }
func (discard) Close(uint32) error                  { return nil }
