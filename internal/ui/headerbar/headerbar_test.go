package headerbar

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	out := Render("audiosession", []Surface{{"MPRIS", true}, {"Notifications", false}}, 80)
	plain := ansi.Strip(out)

	assert.Equal(t, 80, lipgloss.Width(out))
	assert.Contains(t, plain, "audiosession")
	assert.Contains(t, plain, "● MPRIS")
	assert.Contains(t, plain, "○ Notifications")
}

func TestRender_Narrow(t *testing.T) {
	assert.Empty(t, Render("audiosession", nil, 10))
	out := Render("audiosession", []Surface{{"A very long surface name", true}}, 30)
	assert.Equal(t, " audiosession", ansi.Strip(out))
}
