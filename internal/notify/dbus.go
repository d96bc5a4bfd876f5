//go:build linux

package notify

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = "/org/freedesktop/Notifications"
	busMethod = busName + ".Notify"
	busClose  = busName + ".CloseNotification"
)

type busNotifier struct {
	appName string
	obj     dbus.BusObject
}

// New connects to the session bus. It returns ErrUnavailable, and Discard,
// when there is no bus.
func New(appName string) (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Discard, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return &busNotifier{
		appName: appName,
		obj:     conn.Object(busName, busPath),
	}, nil
}

func (b *busNotifier) Notify(n Notification) (uint32, error) {
	hints := make(map[string]dbus.Variant)
	for k, v := range n.Hints(strings.ToLower(b.appName)) {
		hints[k] = dbus.MakeVariant(v)
	}

	var id uint32
	err := b.obj.Call(busMethod, 0,
		b.appName, n.ReplacesID, n.Icon, n.Title, n.Body,
		[]string{}, hints, n.Timeout,
	).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("notify: %w", err)
	}
	return id, nil
}

func (b *busNotifier) Close(id uint32) error {
	if err := b.obj.Call(busClose, 0, id).Err; err != nil {
		return fmt.Errorf("close notification %d: %w", id, err)
	}
	return nil
}
