package ui

import "time"

// Board-to-terminal scale at zoom 1.0. Terminal cells are roughly twice as
// tall as they are wide, so a row covers twice the board units of a column.
const (
	UnitsPerCol = 8.0
	UnitsPerRow = 16.0
)

// Pin box geometry in board units.
const (
	// PinWidth is the on-board width of a text pin.
	PinWidth = 160.0

	// PinHeight is the on-board height of a text pin.
	PinHeight = 80.0

	// ImageBound is the longest side of an image pin on the board.
	ImageBound = 240.0

	// MinPinCols keeps pins legible when zoomed out.
	MinPinCols = 10

	// MinPinRows is border plus one line of text.
	MinPinRows = 3
)

// View navigation.
const (
	// ZoomStep is the zoom change per keypress.
	ZoomStep = 0.1

	// PanCells is how far one pan keypress scrolls, in terminal cells.
	PanCells = 8
)

// Chrome heights: header line plus status bar.
const (
	HeaderHeight = 1
	StatusHeight = 1
)

// Log view limits.
const (
	// LogTailLines is how many lines of the log file the log view loads.
	LogTailLines = 500

	// LogRefreshInterval is how often the open log view re-reads the file.
	LogRefreshInterval = 2 * time.Second
)

// NoticeTTL is how long a status bar notice stays visible.
const NoticeTTL = 4 * time.Second

// UIRefreshInterval is how often the model re-reads the store for changes
// made outside the key handlers, such as storage health.
const UIRefreshInterval = time.Second
