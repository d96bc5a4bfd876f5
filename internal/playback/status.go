package playback

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"
)

// MaxCompactControls is the number of controls a compact surface view can show.
const MaxCompactControls = 3

// ErrInvalidStatus is returned when a status fails validation.
var ErrInvalidStatus = errors.New("invalid playback status")

// Status is an immutable snapshot of the transport state.
//
// Status is passed by value; Clone it before modifying the Controls,
// SystemActions or CompactIndices of a status obtained from a stream.
type Status struct {
	ProcessingState  ProcessingState
	Playing          bool
	Controls         []Control
	SystemActions    ActionSet
	CompactIndices   []int // indices into Controls, at most MaxCompactControls
	Position         time.Duration
	BufferedPosition time.Duration
	Speed            float64
	UpdateTime       time.Time
	Repeat           RepeatMode
	Shuffle          ShuffleMode
	ErrorCode        int
	ErrorMessage     string
	QueueIndex       *int // index of the current item in the queue, nil if unknown
}

// IdleStatus returns the status of a session with nothing loaded.
func IdleStatus() Status {
	return Status{
		ProcessingState: ProcessingIdle,
		Speed:           1.0,
		UpdateTime:      time.Now(),
	}
}

// Advancing reports whether the position moves with wall time.
func (s Status) Advancing() bool {
	return s.Playing && s.ProcessingState == ProcessingReady
}

// PositionAt returns the position extrapolated to t. The stored position is
// returned verbatim unless the status is advancing.
func (s Status) PositionAt(t time.Time) time.Duration {
	if !s.Advancing() {
		return s.Position
	}
	elapsed := t.Sub(s.UpdateTime)
	return s.Position + time.Duration(float64(elapsed)*s.Speed)
}

// CurrentPosition returns the position extrapolated to now.
func (s Status) CurrentPosition() time.Duration {
	return s.PositionAt(time.Now())
}

// WithPosition returns a copy whose position was observed at t.
func (s Status) WithPosition(pos time.Duration, t time.Time) Status {
	s.Position = pos
	s.UpdateTime = t
	return s
}

// WithQueueIndex returns a copy pointing at queue index i.
func (s Status) WithQueueIndex(i int) Status {
	s.QueueIndex = &i
	return s
}

// CurrentIndex returns the queue index, if one is set.
func (s Status) CurrentIndex() (int, bool) {
	if s.QueueIndex == nil {
		return 0, false
	}
	return *s.QueueIndex, true
}

// Clone returns a deep copy.
func (s Status) Clone() Status {
	s.Controls = slices.Clone(s.Controls)
	s.SystemActions = maps.Clone(s.SystemActions)
	s.CompactIndices = slices.Clone(s.CompactIndices)
	if i, ok := s.CurrentIndex(); ok {
		s.QueueIndex = &i
	}
	return s
}

// Validate checks the compact indices.
func (s Status) Validate() error {
	if len(s.CompactIndices) > MaxCompactControls {
		return fmt.Errorf("%w: %d compact controls, max %d",
			ErrInvalidStatus, len(s.CompactIndices), MaxCompactControls)
	}
	for _, idx := range s.CompactIndices {
		if idx < 0 || idx >= len(s.Controls) {
			return fmt.Errorf("%w: compact index %d out of range [0,%d)",
				ErrInvalidStatus, idx, len(s.Controls))
		}
	}
	if s.Speed < 0 {
		return fmt.Errorf("%w: negative speed %v", ErrInvalidStatus, s.Speed)
	}
	if i, ok := s.CurrentIndex(); ok && i < 0 {
		return fmt.Errorf("%w: negative queue index %d", ErrInvalidStatus, i)
	}
	return nil
}

// restamp gives next its own update time. A status copied from prev without
// a fresh UpdateTime is stamped with now, and if its position was left as-is
// the position is carried forward to where prev had extrapolated it.
func restamp(prev, next Status, now time.Time) Status {
	if !next.UpdateTime.IsZero() && !next.UpdateTime.Equal(prev.UpdateTime) {
		return next
	}
	if next.Position == prev.Position {
		next.Position = prev.PositionAt(now)
	}
	next.UpdateTime = now
	return next
}

// ControlRecord is the wire form of a Control.
type ControlRecord struct {
	Icon   string `json:"androidIcon"`
	Label  string `json:"label"`
	Action int    `json:"action"`
}

// StatusRecord is the wire form of a Status sent to the control surface.
// Times are in milliseconds.
type StatusRecord struct {
	ProcessingState    int             `json:"processingState"`
	Playing            bool            `json:"playing"`
	Controls           []ControlRecord `json:"controls"`
	SystemActions      []int           `json:"systemActions"`
	CompactIndices     []int           `json:"androidCompactActionIndices"`
	PositionMs         int64           `json:"updatePosition"`
	BufferedPositionMs int64           `json:"bufferedPosition"`
	Speed              float64         `json:"speed"`
	UpdateTimeMs       int64           `json:"updateTime"`
	RepeatMode         int             `json:"repeatMode"`
	ShuffleMode        int             `json:"shuffleMode"`
	ErrorCode          int             `json:"errorCode,omitempty"`
	ErrorMessage       string          `json:"errorMessage,omitempty"`
	QueueIndex         *int            `json:"queueIndex,omitempty"`
}

// Record returns the wire form. System actions are sorted by code.
func (s Status) Record() StatusRecord {
	controls := make([]ControlRecord, len(s.Controls))
	for i, c := range s.Controls {
		controls[i] = ControlRecord{Icon: c.Icon, Label: c.Label, Action: int(c.Action)}
	}
	actions := make([]int, 0, len(s.SystemActions))
	for _, a := range slices.Sorted(maps.Keys(s.SystemActions)) {
		actions = append(actions, int(a))
	}
	var index *int
	if i, ok := s.CurrentIndex(); ok {
		index = &i
	}
	return StatusRecord{
		ProcessingState:    int(s.ProcessingState),
		Playing:            s.Playing,
		Controls:           controls,
		SystemActions:      actions,
		CompactIndices:     slices.Clone(s.CompactIndices),
		PositionMs:         s.Position.Milliseconds(),
		BufferedPositionMs: s.BufferedPosition.Milliseconds(),
		Speed:              s.Speed,
		UpdateTimeMs:       s.UpdateTime.UnixMilli(),
		RepeatMode:         int(s.Repeat),
		ShuffleMode:        int(s.Shuffle),
		ErrorCode:          s.ErrorCode,
		ErrorMessage:       s.ErrorMessage,
		QueueIndex:         index,
	}
}
