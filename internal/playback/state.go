// internal/playback/state.go
package playback

// ProcessingState describes what the underlying player is doing.
// The numeric values are the wire codes sent to the control surface.
type ProcessingState int

const (
	ProcessingIdle ProcessingState = iota
	ProcessingLoading
	ProcessingBuffering
	ProcessingReady
	ProcessingCompleted
	ProcessingError
)

// String returns the state name.
func (s ProcessingState) String() string {
	switch s {
	case ProcessingIdle:
		return "Idle"
	case ProcessingLoading:
		return "Loading"
	case ProcessingBuffering:
		return "Buffering"
	case ProcessingReady:
		return "Ready"
	case ProcessingCompleted:
		return "Completed"
	case ProcessingError:
		return "Error"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded or about to be.
func (s ProcessingState) IsActive() bool {
	return s == ProcessingLoading || s == ProcessingBuffering || s == ProcessingReady
}

// RepeatMode defines the repeat behavior.
type RepeatMode int

const (
	RepeatNone RepeatMode = iota
	RepeatOne
	RepeatAll
	RepeatGroup
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatNone:
		return "None"
	case RepeatOne:
		return "One"
	case RepeatAll:
		return "All"
	case RepeatGroup:
		return "Group"
	default:
		return "Unknown"
	}
}

// ShuffleMode defines the shuffle behavior.
type ShuffleMode int

const (
	ShuffleNone ShuffleMode = iota
	ShuffleAll
	ShuffleGroup
)

// String returns the shuffle mode name.
func (m ShuffleMode) String() string {
	switch m {
	case ShuffleNone:
		return "None"
	case ShuffleAll:
		return "All"
	case ShuffleGroup:
		return "Group"
	default:
		return "Unknown"
	}
}

// MediaButton identifies a headset or keyboard media button.
type MediaButton int

const (
	ButtonMedia MediaButton = iota
	ButtonNext
	ButtonPrevious
)

// String returns the button name.
func (b MediaButton) String() string {
	switch b {
	case ButtonMedia:
		return "Media"
	case ButtonNext:
		return "Next"
	case ButtonPrevious:
		return "Previous"
	default:
		return "Unknown"
	}
}
