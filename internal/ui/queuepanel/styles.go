package queuepanel

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/audiosession/internal/ui/styles"
)

const playingSymbol = "▶"

func headerStyle() lipgloss.Style { return styles.T().S().Title }

func itemStyle() lipgloss.Style { return styles.T().S().Base }

func playingStyle() lipgloss.Style { return styles.T().S().Playing }

func cursorStyle() lipgloss.Style { return styles.T().S().Cursor }

func dimmedStyle() lipgloss.Style { return styles.T().S().Subtle }

func modeStyle() lipgloss.Style { return styles.T().S().Muted }
