package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the sidebar is hidden.
	LayoutCompactWidth = 100

	// LayoutMenuWidth is the sidebar width including its border.
	LayoutMenuWidth = 26
)

// Table sizing.
const (
	minColumnWidth = 4
	maxColumnWidth = 32
	markerWidth    = 2
	columnGap      = 1
)

// Vertical chrome: header, command bar and the pane's borders and table
// heading, plus the footer line.
const (
	chromeHeight     = 2
	paneChromeHeight = 4
)

// Timing constants.
const (
	// DefaultUIInterval is how often the UI re-reads the store.
	DefaultUIInterval = time.Second

	// FetchTimeout bounds a single page fetch issued by the UI.
	FetchTimeout = 10 * time.Second
)

// LogTailLines is how many log lines the activity view loads.
const LogTailLines = 200

// pageSizes are the steps +/- move through.
var pageSizes = []int{5, 10, 20, 50, 100}

func nextPageSize(current int, up bool) int {
	if up {
		for _, s := range pageSizes {
			if s > current {
				return s
			}
		}
		return pageSizes[len(pageSizes)-1]
	}
	for i := len(pageSizes) - 1; i >= 0; i-- {
		if pageSizes[i] < current {
			return pageSizes[i]
		}
	}
	return pageSizes[0]
}
