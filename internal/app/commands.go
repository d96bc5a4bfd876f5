package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/audiosession/internal/errmsg"
	"github.com/llehouerou/audiosession/internal/stderr"
)

// watchSession waits for the next value on any subscription channel.
func (m Model) watchSession() tea.Cmd {
	sub := m.sub
	done := m.sess.Done()
	return func() tea.Msg {
		select {
		case st := <-sub.StatusChanged:
			return StatusMsg{Status: st}
		case it := <-sub.ItemChanged:
			return ItemMsg{Item: it}
		case items := <-sub.QueueChanged:
			return QueueMsg{Items: items}
		case e := <-sub.Events:
			return EventMsg{Event: e}
		case <-sub.Done:
			return SessionClosedMsg{}
		case <-done:
			return SessionClosedMsg{}
		}
	}
}

func (m Model) watchPositions() tea.Cmd {
	return waitForChannel(m.pos, func(pos time.Duration, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return PositionMsg(pos)
	})
}

// loadChildren fetches one browse level through the session cache.
func (m Model) loadChildren(parentID string) tea.Cmd {
	ctx, sess := m.ctx, m.sess
	return func() tea.Msg {
		stream, err := sess.Children(ctx, parentID)
		if err != nil {
			return ChildrenMsg{ParentID: parentID, Err: err}
		}
		return ChildrenMsg{ParentID: parentID, Items: stream.Value()}
	}
}

// dispatch sends a command to the session off the UI goroutine.
func (m Model) dispatch(op errmsg.Op, name string, args ...any) tea.Cmd {
	ctx, sess := m.ctx, m.sess
	return func() tea.Msg {
		_, err := sess.Dispatch(ctx, name, args...)
		return CommandDoneMsg{Name: name, Op: op, Err: err}
	}
}

// waitForChannel waits for one value from ch and converts it to a message.
// onResult gets false once the channel is closed.
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		v, ok := <-ch
		return onResult(v, ok)
	}
}

// WatchStderr returns a command that waits for stderr output from C libraries.
func WatchStderr() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-stderr.Messages
		if !ok {
			return nil
		}
		return StderrMsg{Line: line}
	}
}
