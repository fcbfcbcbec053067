package ui

import "time"

// LayoutCompactWidth is the width below which the header drops labels.
const LayoutCompactWidth = 100

// chromeHeight is the rows taken by the header, command bar and footer.
const chromeHeight = 3

// Log display limits.
const (
	// LogFetchLimit is the maximum number of log lines read per refresh.
	LogFetchLimit = 2000
)

// Timing constants.
const (
	// NoticeTTL is how long an outcome notice stays on screen.
	NoticeTTL = 2500 * time.Millisecond

	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = 500 * time.Millisecond
)
