//go:build linux

package notify

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func busNotifierOrSkip(t *testing.T) Notifier {
	t.Helper()
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no session bus")
	}
	n, err := New("Audiosession")
	if err != nil {
		t.Skipf("notification server: %v", err)
	}
	return n
}

func TestBusNotifier_ReplaceKeepsID(t *testing.T) {
	n := busNotifierOrSkip(t)

	first, err := n.Notify(Notification{Title: "Track 1", Timeout: 2000})
	if err != nil {
		t.Skipf("no notification daemon: %v", err)
	}
	require.NotZero(t, first)

	second, err := n.Notify(Notification{Title: "Track 2", Timeout: 1000, ReplacesID: first})
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.NoError(t, n.Close(second))
}
