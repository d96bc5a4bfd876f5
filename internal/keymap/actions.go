// Package keymap binds keys to the demo's actions.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	ActionNone Action = ""

	// Global
	ActionQuit          Action = "quit"
	ActionSwitchFocus   Action = "switch_focus"
	ActionToggleDisplay Action = "toggle_display"
	ActionHelp          Action = "help"

	// Playback, each mapped to a session command
	ActionPlayPause    Action = "play_pause"
	ActionClick        Action = "click"
	ActionStop         Action = "stop"
	ActionNext         Action = "next"
	ActionPrevious     Action = "previous"
	ActionFastForward  Action = "fast_forward"
	ActionRewind       Action = "rewind"
	ActionSeekForward  Action = "seek_forward"  // toggles continuous seeking
	ActionSeekBackward Action = "seek_backward" // toggles continuous seeking
	ActionCycleRepeat  Action = "cycle_repeat"
	ActionShuffle      Action = "toggle_shuffle"
	ActionSpeedUp      Action = "speed_up"
	ActionSpeedDown    Action = "speed_down"
	ActionRateUp       Action = "rate_up"
	ActionClearQueue   Action = "clear_queue"
)
