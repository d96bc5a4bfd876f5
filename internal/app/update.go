package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/audiosession/internal/errmsg"
	"github.com/llehouerou/audiosession/internal/keymap"
	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/session"
	"github.com/llehouerou/audiosession/internal/ui/browser"
	"github.com/llehouerou/audiosession/internal/ui/playerbar"
	"github.com/llehouerou/audiosession/internal/ui/queuepanel"
)

const (
	minSpeed  = 0.5
	maxSpeed  = 2.0
	speedStep = 0.25
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case StatusMsg:
		m.Status = msg.Status
		m.Queue.SetModes(msg.Status.Repeat, msg.Status.Shuffle)
		if !msg.Status.Advancing() {
			m.Position = msg.Status.Position
		}
		m.layout()
		return m, m.watchSession()

	case ItemMsg:
		m.Item = msg.Item
		m.Queue.SetCurrent(msg.Item)
		m.layout()
		return m, m.watchSession()

	case QueueMsg:
		m.Queue.SetItems(msg.Items)
		return m, m.watchSession()

	case EventMsg:
		m.logger.Debug("custom event", "event", msg.Event)
		return m, m.watchSession()

	case PositionMsg:
		m.Position = clampPosition(m.Item, msg)
		return m, m.watchPositions()

	case ChildrenMsg:
		if msg.Err != nil {
			m.Browser.SetError(msg.ParentID, errmsg.Format(errmsg.OpBrowse, msg.Err))
			return m, nil
		}
		m.Browser.SetChildren(msg.ParentID, msg.Items)
		return m, nil

	case CommandDoneMsg:
		if msg.Err != nil {
			m.logger.Warn("command failed", "command", msg.Name, "error", msg.Err)
			m.ErrorMsg = errmsg.Format(msg.Op, msg.Err)
		}
		return m, nil

	case SessionClosedMsg:
		return m, tea.Quit

	case StderrMsg:
		m.ErrorMsg = msg.Line
		return m, WatchStderr()

	case browser.OpenMsg:
		return m, m.loadChildren(msg.ID)
	case browser.PlayMsg:
		m.ErrorMsg = ""
		return m, m.dispatch(errmsg.OpPlaybackStart, session.CmdPlayFromMediaID, msg.Item.ID)
	case browser.EnqueueMsg:
		return m, m.dispatch(errmsg.OpQueueAdd, session.CmdAddQueueItem, msg.Item)
	case queuepanel.JumpToItemMsg:
		return m, m.dispatch(errmsg.OpPlaybackSkip, session.CmdSkipToQueueItem, msg.ID)
	case queuepanel.RemoveItemMsg:
		return m, m.dispatch(errmsg.OpQueueRemove, session.CmdRemoveQueueItemAt, msg.Index)

	case tea.KeyMsg:
		if cmd, ok := m.handleKey(msg); ok {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.Focus == FocusQueue {
		m.Queue, cmd = m.Queue.Update(msg)
	} else {
		m.Browser, cmd = m.Browser.Update(msg)
	}
	return m, cmd
}

// handleKey runs global key actions. It reports false for keys the focused
// panel should get.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	action := m.keys.Resolve(msg)
	if action == keymap.ActionNone {
		return nil, false
	}
	if action != keymap.ActionHelp {
		m.ErrorMsg = ""
	}

	switch action {
	case keymap.ActionQuit:
		return tea.Quit, true
	case keymap.ActionSwitchFocus:
		m.switchFocus()
		return nil, true
	case keymap.ActionToggleDisplay:
		if m.DisplayMode == playerbar.ModeCompact {
			m.DisplayMode = playerbar.ModeExpanded
		} else {
			m.DisplayMode = playerbar.ModeCompact
		}
		m.layout()
		return nil, true
	case keymap.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return nil, true
	}
	return m.playbackCommand(action), true
}

// playbackCommand maps a playback action to a session command.
func (m *Model) playbackCommand(action keymap.Action) tea.Cmd {
	switch action {
	case keymap.ActionPlayPause:
		if m.Status.Playing {
			return m.dispatch(errmsg.OpPlaybackPause, session.CmdPause)
		}
		return m.dispatch(errmsg.OpPlaybackStart, session.CmdPlay)
	case keymap.ActionClick:
		return m.dispatch(errmsg.OpPlaybackStart, session.CmdClick)
	case keymap.ActionStop:
		return m.dispatch(errmsg.OpPlaybackStop, session.CmdStop)
	case keymap.ActionNext:
		return m.dispatch(errmsg.OpPlaybackSkip, session.CmdSkipToNext)
	case keymap.ActionPrevious:
		return m.dispatch(errmsg.OpPlaybackSkip, session.CmdSkipToPrevious)
	case keymap.ActionFastForward:
		return m.dispatch(errmsg.OpPlaybackSeek, session.CmdFastForward)
	case keymap.ActionRewind:
		return m.dispatch(errmsg.OpPlaybackSeek, session.CmdRewind)
	case keymap.ActionSeekForward:
		return m.toggleSeek(1)
	case keymap.ActionSeekBackward:
		return m.toggleSeek(-1)
	case keymap.ActionCycleRepeat:
		next := (m.Status.Repeat + 1) % (playback.RepeatAll + 1)
		return m.dispatch(errmsg.OpPlaybackMode, session.CmdSetRepeatMode, int(next))
	case keymap.ActionShuffle:
		mode := playback.ShuffleAll
		if m.Status.Shuffle != playback.ShuffleNone {
			mode = playback.ShuffleNone
		}
		return m.dispatch(errmsg.OpPlaybackMode, session.CmdSetShuffleMode, int(mode))
	case keymap.ActionSpeedUp:
		return m.dispatch(errmsg.OpPlaybackMode, session.CmdSetSpeed, min(m.speed()+speedStep, maxSpeed))
	case keymap.ActionSpeedDown:
		return m.dispatch(errmsg.OpPlaybackMode, session.CmdSetSpeed, max(m.speed()-speedStep, minSpeed))
	case keymap.ActionRateUp:
		if m.Item == nil {
			return nil
		}
		rating := media.NewHeartRating(!m.Item.Rating.HasHeart())
		return m.dispatch(errmsg.OpRate, session.CmdSetRating, rating)
	case keymap.ActionClearQueue:
		return m.dispatch(errmsg.OpQueueClear, session.CustomActionPrefix+"clearQueue")
	case keymap.ActionNone, keymap.ActionQuit, keymap.ActionSwitchFocus,
		keymap.ActionToggleDisplay, keymap.ActionHelp:
	}
	return nil
}

// toggleSeek starts continuous seeking in dir, or ends the seek in progress.
// Starting one direction ends the other.
func (m *Model) toggleSeek(dir int) tea.Cmd {
	var cmds []tea.Cmd
	if m.seeking != 0 {
		cmds = append(cmds, m.dispatch(errmsg.OpPlaybackSeek, seekCommand(m.seeking), false))
	}
	if m.seeking == dir {
		m.seeking = 0
	} else {
		m.seeking = dir
		cmds = append(cmds, m.dispatch(errmsg.OpPlaybackSeek, seekCommand(dir), true))
	}
	return tea.Sequence(cmds...)
}

func seekCommand(dir int) string {
	if dir > 0 {
		return session.CmdSeekForward
	}
	return session.CmdSeekBackward
}

func (m *Model) speed() float64 {
	if m.Status.Speed <= 0 {
		return 1
	}
	return m.Status.Speed
}

func (m *Model) switchFocus() {
	if m.Focus == FocusBrowser {
		m.Focus = FocusQueue
	} else {
		m.Focus = FocusBrowser
	}
	m.Browser.SetFocused(m.Focus == FocusBrowser)
	m.Queue.SetFocused(m.Focus == FocusQueue)
}

func clampPosition(item *media.Item, pos PositionMsg) time.Duration {
	d := time.Duration(pos)
	if item != nil && item.HasDuration() {
		d = min(d, item.Duration)
	}
	return max(d, 0)
}
