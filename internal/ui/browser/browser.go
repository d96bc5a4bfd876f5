// Package browser lists the children of a media id and walks the tree.
package browser

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/ui/list"
)

// OpenMsg asks the parent to load the children of ID.
type OpenMsg struct {
	ID string
}

// PlayMsg asks to play the item.
type PlayMsg struct {
	Item media.Item
}

// EnqueueMsg asks to append the item to the queue.
type EnqueueMsg struct {
	Item media.Item
}

type crumb struct {
	id    string
	title string
	pos   int // cursor to restore when coming back
}

// Model represents the browser state.
type Model struct {
	list.Model[media.Item]
	path    []crumb
	loading bool
	err     string
}

// New returns a browser at the root.
func New() Model {
	return Model{path: []crumb{{id: playback.RootID, title: "Library"}}}
}

// ParentID is the id whose children are listed.
func (m Model) ParentID() string {
	return m.path[len(m.path)-1].id
}

// SetChildren shows items if they belong to the listed parent.
func (m *Model) SetChildren(parentID string, items []media.Item) {
	if parentID != m.ParentID() {
		return
	}
	m.loading = false
	m.err = ""
	m.SetItems(items)
	m.Jump(m.path[len(m.path)-1].pos)
}

// SetError shows a load failure for parentID.
func (m *Model) SetError(parentID, msg string) {
	if parentID != m.ParentID() {
		return
	}
	m.loading = false
	m.err = msg
	m.SetItems(nil)
}

// Update handles messages for the browser.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.IsFocused() {
		switch key.String() {
		case "h", "backspace":
			return m.back()
		case "l":
			if it, ok := m.Selected(); ok && !it.Playable {
				return m.open(it)
			}
			return m, nil
		}
	}

	res := m.Model.Update(msg)
	if res.Index < 0 {
		return m, nil
	}
	it := m.Items()[res.Index]
	switch res.Action {
	case list.ActionEnter:
		if !it.Playable {
			return m.open(it)
		}
		return m, func() tea.Msg { return PlayMsg{Item: it} }
	case list.ActionAdd:
		if it.Playable {
			return m, func() tea.Msg { return EnqueueMsg{Item: it} }
		}
	case list.ActionNone, list.ActionDelete:
	}
	return m, nil
}

func (m Model) open(it media.Item) (Model, tea.Cmd) {
	m.path[len(m.path)-1].pos = m.Pos()
	m.path = append(m.path[:len(m.path):len(m.path)], crumb{id: it.ID, title: it.Title})
	return m.load()
}

func (m Model) back() (Model, tea.Cmd) {
	if len(m.path) == 1 {
		return m, nil
	}
	m.path = m.path[:len(m.path)-1]
	return m.load()
}

func (m Model) load() (Model, tea.Cmd) {
	m.loading = true
	m.err = ""
	m.SetItems(nil)
	id := m.ParentID()
	return m, func() tea.Msg { return OpenMsg{ID: id} }
}
