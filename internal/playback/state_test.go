// internal/playback/state_test.go
package playback

import "testing"

func TestProcessingState_String(t *testing.T) {
	tests := []struct {
		state ProcessingState
		want  string
	}{
		{ProcessingIdle, "Idle"},
		{ProcessingLoading, "Loading"},
		{ProcessingBuffering, "Buffering"},
		{ProcessingReady, "Ready"},
		{ProcessingCompleted, "Completed"},
		{ProcessingError, "Error"},
		{ProcessingState(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestProcessingState_IsActive(t *testing.T) {
	tests := []struct {
		state ProcessingState
		want  bool
	}{
		{ProcessingIdle, false},
		{ProcessingLoading, true},
		{ProcessingBuffering, true},
		{ProcessingReady, true},
		{ProcessingCompleted, false},
		{ProcessingError, false},
	}
	for _, tt := range tests {
		if got := tt.state.IsActive(); got != tt.want {
			t.Errorf("%v.IsActive() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestRepeatMode_String(t *testing.T) {
	tests := []struct {
		mode RepeatMode
		want string
	}{
		{RepeatNone, "None"},
		{RepeatOne, "One"},
		{RepeatAll, "All"},
		{RepeatGroup, "Group"},
		{RepeatMode(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestShuffleMode_String(t *testing.T) {
	tests := []struct {
		mode ShuffleMode
		want string
	}{
		{ShuffleNone, "None"},
		{ShuffleAll, "All"},
		{ShuffleGroup, "Group"},
		{ShuffleMode(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
