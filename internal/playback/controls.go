package playback

// Action is a transport action a control surface may offer.
// The numeric values are the wire codes sent to the control surface.
type Action int

const (
	ActionStop Action = iota
	ActionPause
	ActionPlay
	ActionRewind
	ActionSkipToPrevious
	ActionSkipToNext
	ActionFastForward
	ActionSetRating
	ActionSeek
	ActionPlayPause
	ActionPlayFromMediaID
	ActionPlayFromSearch
	ActionSkipToQueueItem
	ActionPlayFromURI
	ActionPrepare
	ActionPrepareFromMediaID
	ActionPrepareFromSearch
	ActionPrepareFromURI
	ActionSetRepeatMode
	ActionSetShuffleMode
	ActionSetCaptioningEnabled
	ActionSetSpeed
	ActionSeekForward
	ActionSeekBackward
)

var actionNames = [...]string{
	"stop", "pause", "play", "rewind", "skipToPrevious", "skipToNext",
	"fastForward", "setRating", "seek", "playPause", "playFromMediaId",
	"playFromSearch", "skipToQueueItem", "playFromUri", "prepare",
	"prepareFromMediaId", "prepareFromSearch", "prepareFromUri",
	"setRepeatMode", "setShuffleMode", "setCaptioningEnabled", "setSpeed",
	"seekForward", "seekBackward",
}

// String returns the action name.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Control is a button shown by the control surface.
type Control struct {
	Icon   string // freedesktop icon name or image path
	Label  string
	Action Action
}

// Predefined controls.
var (
	PlayControl = Control{
		Icon: "media-playback-start", Label: "Play", Action: ActionPlay,
	}
	PauseControl = Control{
		Icon: "media-playback-pause", Label: "Pause", Action: ActionPause,
	}
	StopControl = Control{
		Icon: "media-playback-stop", Label: "Stop", Action: ActionStop,
	}
	SkipToNextControl = Control{
		Icon: "media-skip-forward", Label: "Next", Action: ActionSkipToNext,
	}
	SkipToPreviousControl = Control{
		Icon: "media-skip-backward", Label: "Previous", Action: ActionSkipToPrevious,
	}
	FastForwardControl = Control{
		Icon: "media-seek-forward", Label: "Fast Forward", Action: ActionFastForward,
	}
	RewindControl = Control{
		Icon: "media-seek-backward", Label: "Rewind", Action: ActionRewind,
	}
)

// ActionSet is a set of enabled system actions.
type ActionSet map[Action]struct{}

// NewActionSet returns a set containing the given actions.
func NewActionSet(actions ...Action) ActionSet {
	s := make(ActionSet, len(actions))
	for _, a := range actions {
		s[a] = struct{}{}
	}
	return s
}

// Has reports whether a is in the set.
func (s ActionSet) Has(a Action) bool {
	_, ok := s[a]
	return ok
}
