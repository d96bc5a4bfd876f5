package player

// State is the transport state of a Player.
//
//	Stopped ──Play──▶ Playing ◀──Resume── Paused
//	   ▲                 │ └────Pause────▶  │
//	   └──────Stop───────┴──────Stop────────┘
//
// Pause outside Playing and Resume outside Paused do nothing. Play while a
// track is loaded replaces it.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

var stateNames = [...]string{Stopped: "stopped", Playing: "playing", Paused: "paused"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// IsActive reports whether a track is loaded.
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
