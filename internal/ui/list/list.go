// Package list provides a scrollable list of items for the panels.
package list

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/audiosession/internal/ui"
)

// Action represents what happened during Update.
type Action int

const (
	ActionNone   Action = iota
	ActionEnter         // enter pressed on an item
	ActionAdd           // a pressed on an item
	ActionDelete        // d or delete pressed on an item
)

// Result is returned from Update to tell the parent what happened.
type Result struct {
	Action Action
	Index  int // item the action applies to, -1 if none
}

// Model is a scrollable list. The parent renders the rows in
// VisibleRange and reacts to the Result of Update.
type Model[T any] struct {
	ui.Base
	items  []T
	pos    int
	offset int
}

// SetItems replaces the items and keeps the cursor in bounds.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.pos = min(m.pos, max(len(items)-1, 0))
	m.scroll()
}

// Items returns the current items.
func (m Model[T]) Items() []T {
	return m.items
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the item under the cursor.
func (m Model[T]) Selected() (T, bool) {
	if m.pos >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.pos], true
}

// Pos returns the cursor position.
func (m Model[T]) Pos() int {
	return m.pos
}

// Jump moves the cursor to i, clamped to the list.
func (m *Model[T]) Jump(i int) {
	m.pos = min(max(i, 0), max(len(m.items)-1, 0))
	m.scroll()
}

// Move moves the cursor by delta.
func (m *Model[T]) Move(delta int) {
	m.Jump(m.pos + delta)
}

// VisibleRange returns the [start, end) indices to render.
func (m Model[T]) VisibleRange() (start, end int) {
	return m.offset, min(m.offset+m.ListHeight(), len(m.items))
}

// scroll keeps the cursor ScrollMargin rows away from the panel edges.
func (m *Model[T]) scroll() {
	height := m.ListHeight()
	if height <= 0 {
		m.offset = 0
		return
	}
	margin := min(ui.ScrollMargin, (height-1)/2)
	if m.pos < m.offset+margin {
		m.offset = m.pos - margin
	}
	if m.pos >= m.offset+height-margin {
		m.offset = m.pos - height + margin + 1
	}
	m.offset = min(max(m.offset, 0), max(len(m.items)-height, 0))
}

// SetSize resizes the list and keeps the cursor visible.
func (m *Model[T]) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.scroll()
}

// Update handles navigation keys and reports item actions. Unfocused
// lists ignore input.
func (m *Model[T]) Update(msg tea.Msg) Result {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return Result{Index: -1}
	}

	page := max(m.ListHeight()-1, 1)
	switch key.String() {
	case "j", "down":
		m.Move(1)
	case "k", "up":
		m.Move(-1)
	case "pgdown", "ctrl+d":
		m.Move(page)
	case "pgup", "ctrl+u":
		m.Move(-page)
	case "g", "home":
		m.Jump(0)
	case "G", "end":
		m.Jump(len(m.items) - 1)
	case "enter":
		return m.act(ActionEnter)
	case "a":
		return m.act(ActionAdd)
	case "d", "delete":
		return m.act(ActionDelete)
	}
	return Result{Index: -1}
}

func (m Model[T]) act(a Action) Result {
	if len(m.items) == 0 {
		return Result{Index: -1}
	}
	return Result{Action: a, Index: m.pos}
}
