package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mikeyj777/detailed-modeling-data-analysis/internal/source"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/config"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

// Options configures the desktop viewer
type Options struct {
	Settings config.Settings
	Source   source.Source
	Watch    bool
}

type App struct {
	Surface     SurfaceState
	Interaction InteractionState
	FileWatch   FileWatchState
	View        ViewSettings
	UI          UIState
}

// Run opens the viewer window and blocks until it is closed
func Run(opts Options) error {
	g, err := opts.Source.Load()
	if err != nil {
		return err
	}

	screenWidth := int32(opts.Settings.Viewport.Width)
	screenHeight := int32(opts.Settings.Viewport.Height)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(screenWidth, screenHeight, "gosurf - "+opts.Source.Describe())
	rl.SetTargetFPS(60)

	app := &App{
		Surface: SurfaceState{
			controller: viewer.NewController(g, opts.Settings.CameraValue(), opts.Settings.InteractionValue()),
			options:    opts.Settings.Options(),
		},
		FileWatch: FileWatchState{
			source: opts.Source,
			loaded: make(chan loadResult, 1),
		},
		View: ViewSettings{showHelp: true, showStats: true},
	}
	app.UI.font = rl.GetFontDefault()
	app.rebuildFrame()

	if opts.Watch && opts.Source.Watchable() {
		if err := app.setupFileWatcher(); err != nil {
			fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
			fmt.Println("Auto-reload will not be available")
		} else {
			defer app.FileWatch.fileWatcher.Close()
		}
	}

	for !rl.WindowShouldClose() {
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyC) {
			break
		}

		app.pollFileChanges()
		app.applyLoadedGrid()

		app.handleInput()
		app.fitToWindow()
		if app.Surface.revision != app.Surface.controller.Revision() {
			app.rebuildFrame()
		}

		rl.BeginDrawing()
		app.drawFrame(app.Surface.frame)
		app.drawUI()
		rl.EndDrawing()
	}

	rl.CloseWindow()
	return nil
}

// rebuildFrame renders the controller state into primitives
func (app *App) rebuildFrame() {
	c := app.Surface.controller
	app.Surface.frame = c.Frame(app.Surface.options)
	app.Surface.revision = c.Revision()
	app.Surface.stats = nil
}

// fitToWindow keeps the viewport centred in a resized window
func (app *App) fitToWindow() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if w == app.Surface.width && h == app.Surface.height {
		return
	}
	app.Surface.width, app.Surface.height = w, h

	app.Surface.options.Viewport = app.Surface.options.Viewport.Fit(float64(w), float64(h))
	app.rebuildFrame()
}
