package app

import (
	"fmt"
	"time"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/watcher"
)

// setupFileWatcher watches the grid source for changes
func (app *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(500 * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fw.Watch(app.FileWatch.source.Path); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch files: %w", err)
	}
	fmt.Printf("Watching file for changes: %s\n", app.FileWatch.source.Path)

	fw.Start()
	app.FileWatch.fileWatcher = fw
	return nil
}

// pollFileChanges starts a reload when the watcher reported a change
func (app *App) pollFileChanges() {
	fw := app.FileWatch.fileWatcher
	if fw == nil {
		return
	}

	select {
	case changed := <-fw.Changes():
		fmt.Printf("\nFile changed: %s\n", changed)
		app.reloadGrid()
	case err := <-fw.Errors():
		fmt.Printf("Watcher error: %v\n", err)
	default:
	}
}

// reloadGrid loads the source in the background; the result is applied
// on the main thread by applyLoadedGrid
func (app *App) reloadGrid() {
	if app.FileWatch.isLoading {
		return
	}

	app.FileWatch.isLoading = true
	app.FileWatch.loadingStartTime = time.Now()
	fmt.Println("Reloading grid...")

	src := app.FileWatch.source
	loaded := app.FileWatch.loaded
	go func() {
		g, err := src.Load()
		loaded <- loadResult{grid: g, err: err}
	}()
}

// applyLoadedGrid swaps in a grid loaded in the background. The camera is
// kept so the view does not jump.
func (app *App) applyLoadedGrid() {
	var result loadResult
	select {
	case result = <-app.FileWatch.loaded:
	default:
		return
	}
	app.FileWatch.isLoading = false

	if result.err != nil {
		fmt.Printf("Error reloading grid: %v\n", result.err)
		app.FileWatch.lastError = result.err.Error()
		return
	}

	app.FileWatch.lastError = ""
	app.Surface.controller.LoadGrid(result.grid)

	elapsed := time.Since(app.FileWatch.loadingStartTime)
	fmt.Printf("Grid reloaded successfully in %.2fs!\n", elapsed.Seconds())
	app.showMessage(fmt.Sprintf("Reloaded %d x %d grid", result.grid.Rows(), result.grid.Cols()))
}
