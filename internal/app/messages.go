package app

import (
	"time"

	"github.com/llehouerou/audiosession/internal/errmsg"
	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
)

// StatusMsg carries a new playback status.
type StatusMsg struct{ Status playback.Status }

// ItemMsg carries the new current item, nil when nothing is loaded.
type ItemMsg struct{ Item *media.Item }

// QueueMsg carries the new queue.
type QueueMsg struct{ Items []media.Item }

// EventMsg carries a custom event emitted by the handler chain.
type EventMsg struct{ Event any }

// PositionMsg carries a sampled playback position.
type PositionMsg time.Duration

// ChildrenMsg carries the result of loading a browse level.
type ChildrenMsg struct {
	ParentID string
	Items    []media.Item
	Err      error
}

// CommandDoneMsg reports a dispatched command.
type CommandDoneMsg struct {
	Name string
	Op   errmsg.Op
	Err  error
}

// SessionClosedMsg is sent once the session is gone.
type SessionClosedMsg struct{}

// StderrMsg carries a line written to stderr by C audio libraries.
type StderrMsg struct{ Line string }
