// Package queuepanel shows the play queue and the current item.
package queuepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/ui/list"
)

// JumpToItemMsg asks to skip to the queue item with ID.
type JumpToItemMsg struct {
	ID string
}

// RemoveItemMsg asks to remove the queue item at Index.
type RemoveItemMsg struct {
	Index int
}

// Model represents the queue panel state.
type Model struct {
	list.Model[media.Item]
	title     string
	currentID string
	repeat    playback.RepeatMode
	shuffle   playback.ShuffleMode
}

// New creates a queue panel. title is shown in the header.
func New(title string) Model {
	return Model{title: title}
}

// SetCurrent marks the item being played.
func (m *Model) SetCurrent(item *media.Item) {
	m.currentID = ""
	if item != nil {
		m.currentID = item.ID
	}
}

// SetModes updates the repeat and shuffle indicators.
func (m *Model) SetModes(repeat playback.RepeatMode, shuffle playback.ShuffleMode) {
	m.repeat = repeat
	m.shuffle = shuffle
}

// SetTitle replaces the header title.
func (m *Model) SetTitle(title string) {
	m.title = title
}

// CurrentIndex returns the position of the current item, -1 if it is not
// queued.
func (m Model) CurrentIndex() int {
	return media.IndexOf(m.Items(), m.currentID)
}

// Update handles messages for the queue panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	res := m.Model.Update(msg)
	items := m.Items()
	switch res.Action {
	case list.ActionEnter:
		id := items[res.Index].ID
		return m, func() tea.Msg { return JumpToItemMsg{ID: id} }
	case list.ActionDelete:
		return m, func() tea.Msg { return RemoveItemMsg{Index: res.Index} }
	case list.ActionNone, list.ActionAdd:
	}
	return m, nil
}
