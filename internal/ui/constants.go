// Package ui provides shared layout helpers for the terminal views.
package ui

// Layout constants shared by the panels.
const (
	// ScrollMargin is the number of items kept visible above and below the cursor.
	ScrollMargin = 2
	// BorderHeight is the vertical space consumed by a panel border.
	BorderHeight = 2
	// HeaderHeight is the space for a panel header and its separator.
	HeaderHeight = 2
	// PanelOverhead is the vertical space a panel uses around its list.
	PanelOverhead = BorderHeight + HeaderHeight
)
