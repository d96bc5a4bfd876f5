package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationHints(t *testing.T) {
	tests := []struct {
		name string
		n    Notification
		want map[string]any
	}{
		{
			name: "defaults to app name",
			n:    Notification{},
			want: map[string]any{"urgency": byte(0), "desktop-entry": "audiosession"},
		},
		{
			name: "channel overrides app name",
			n:    Notification{Channel: "playback", Urgency: UrgencyCritical},
			want: map[string]any{"urgency": byte(2), "desktop-entry": "playback"},
		},
		{
			name: "music resident",
			n:    Notification{Category: musicCategory, Resident: true},
			want: map[string]any{
				"urgency":       byte(0),
				"desktop-entry": "audiosession",
				"category":      musicCategory,
				"resident":      true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.n.Hints("audiosession"))
		})
	}
}

func TestDiscard(t *testing.T) {
	id, err := Discard.Notify(Notification{Title: "x"})
	assert.NoError(t, err)
	assert.Zero(t, id)
	assert.NoError(t, Discard.Close(7))
}
