package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Binding ties an action to its keys and help text.
type Binding struct {
	Action Action
	key.Binding
}

func bind(a Action, help string, keys ...string) Binding {
	name := keys[0]
	if name == " " {
		name = "space"
	}
	return Binding{Action: a, Binding: key.NewBinding(key.WithKeys(keys...), key.WithHelp(name, help))}
}

// Default contains the demo's bindings. Panel keys (j/k, g/G, h/l, enter,
// a, d, pgup/pgdown) are handled by the panels themselves.
var Default = []Binding{
	bind(ActionQuit, "quit", "q", "ctrl+c"),
	bind(ActionSwitchFocus, "switch panel", "tab"),
	bind(ActionToggleDisplay, "cover view", "v"),
	bind(ActionHelp, "help", "?"),

	bind(ActionPlayPause, "play/pause", " ", "p"),
	bind(ActionClick, "headset click", "c"),
	bind(ActionStop, "stop & close", "s"),
	bind(ActionNext, "next", "n"),
	bind(ActionPrevious, "previous", "N"),
	bind(ActionFastForward, "fast forward", "right", "shift+right"),
	bind(ActionRewind, "rewind", "left", "shift+left"),
	bind(ActionSeekForward, "hold forward", ">"),
	bind(ActionSeekBackward, "hold backward", "<"),
	bind(ActionCycleRepeat, "repeat", "R"),
	bind(ActionShuffle, "shuffle", "S"),
	bind(ActionSpeedUp, "faster", "]"),
	bind(ActionSpeedDown, "slower", "["),
	bind(ActionRateUp, "rate", "*"),
	bind(ActionClearQueue, "clear queue", "C"),
}

// Resolver maps key presses to actions.
type Resolver struct {
	bindings []Binding
}

// NewResolver creates a resolver from bindings. Earlier bindings win when
// keys overlap.
func NewResolver(bindings []Binding) *Resolver {
	return &Resolver{bindings: bindings}
}

// Resolve returns the action bound to msg, or ActionNone.
func (r *Resolver) Resolve(msg tea.KeyMsg) Action {
	for _, b := range r.bindings {
		if key.Matches(msg, b.Binding) {
			return b.Action
		}
	}
	return ActionNone
}

// ShortHelp implements help.KeyMap.
func (r *Resolver) ShortHelp() []key.Binding {
	short := []Action{ActionPlayPause, ActionNext, ActionFastForward, ActionRewind, ActionHelp, ActionQuit}
	out := make([]key.Binding, 0, len(short))
	for _, a := range short {
		if b, ok := r.find(a); ok {
			out = append(out, b)
		}
	}
	return out
}

// FullHelp implements help.KeyMap, four bindings per column.
func (r *Resolver) FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	for i := 0; i < len(r.bindings); i += 4 {
		end := min(i+4, len(r.bindings))
		col := make([]key.Binding, 0, end-i)
		for _, b := range r.bindings[i:end] {
			col = append(col, b.Binding)
		}
		cols = append(cols, col)
	}
	return cols
}

func (r *Resolver) find(a Action) (key.Binding, bool) {
	for _, b := range r.bindings {
		if b.Action == a {
			return b.Binding, true
		}
	}
	return key.Binding{}, false
}
