package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mikeyj777/detailed-modeling-data-analysis/internal/source"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/analysis"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/watcher"
)

// SurfaceState holds the controller and the frame last drawn from it
type SurfaceState struct {
	controller *viewer.Controller
	options    viewer.Options
	frame      viewer.Frame
	revision   uint64 // controller revision the frame was built from
	stats      *analysis.GridStats
	width      int // window size the viewport was fitted to
	height     int
}

// InteractionState holds mouse state between frames
type InteractionState struct {
	cursorOnScreen bool
}

// loadResult carries a grid loaded off the main thread
type loadResult struct {
	grid *grid.Grid
	err  error
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	source           source.Source
	fileWatcher      *watcher.FileWatcher
	loaded           chan loadResult
	isLoading        bool
	loadingStartTime time.Time
	lastError        string
}

// ViewSettings holds display toggles
type ViewSettings struct {
	showHelp  bool
	showStats bool
}

// UIState holds UI-related state
type UIState struct {
	font    rl.Font
	message string
	shownAt time.Time
}
