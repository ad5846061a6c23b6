package gui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"github.com/mikeyj777/detailed-modeling-data-analysis/internal/source"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/config"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/watcher"
)

// Options configures the widget viewer
type Options struct {
	Settings config.Settings
	Source   source.Source
	Watch    bool
}

// Viewer is the surface and editor sharing one controller
type Viewer struct {
	Controller *viewer.Controller
	Surface    *Surface
	Editor     *Editor
}

// NewViewer wires a surface and an editor to one controller
func NewViewer(c *viewer.Controller, opts viewer.Options) *Viewer {
	v := &Viewer{Controller: c}
	v.Surface = NewSurface(c, opts)
	v.Editor = NewEditor(c, v.Surface.Update)
	v.Surface.SetOnChange(func() {
		// zooming changes the extents shown in the statistics
		v.Editor.Refresh()
	})
	return v
}

// Content lays the surface out next to the editor
func (v *Viewer) Content() fyne.CanvasObject {
	split := container.NewHSplit(v.Surface, v.Editor.Content())
	split.Offset = 0.65
	return split
}

// Run opens the viewer window and blocks until it is closed
func Run(opts Options) error {
	g, err := opts.Source.Load()
	if err != nil {
		return err
	}

	a := app.New()
	w := a.NewWindow("gosurf - " + opts.Source.Describe())

	c := viewer.NewController(g, opts.Settings.CameraValue(), opts.Settings.InteractionValue())
	v := NewViewer(c, opts.Settings.Options())

	w.Canvas().AddShortcut(&fyne.ShortcutPaste{}, func(fyne.Shortcut) {
		v.Editor.PasteClipboard()
	})
	w.Canvas().AddShortcut(&fyne.ShortcutCopy{}, func(fyne.Shortcut) {
		v.Editor.CopyClipboard()
	})

	if opts.Watch && opts.Source.Watchable() {
		fw, err := watchSource(opts.Source, v, w)
		if err != nil {
			fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
		} else {
			defer fw.Close()
		}
	}

	w.SetContent(v.Content())
	w.Resize(fyne.NewSize(1100, 700))
	w.ShowAndRun()
	return nil
}

// watchSource reloads the grid whenever the source file changes. Loading
// happens on the watcher goroutine and the result is handed to the UI
// goroutine with fyne.Do.
func watchSource(src source.Source, v *Viewer, w fyne.Window) (*watcher.FileWatcher, error) {
	fw, err := watcher.NewFileWatcher(500 * time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Watch(src.Path); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch files: %w", err)
	}
	fw.Start()
	fmt.Printf("Watching file for changes: %s\n", src.Path)

	go func() {
		for range fw.Changes() {
			g, err := src.Load()
			fyne.Do(func() {
				if err != nil {
					dialog.ShowError(fmt.Errorf("failed to reload: %w", err), w)
					return
				}
				v.Controller.LoadGrid(g)
				v.Editor.Refresh()
				v.Surface.Update()
			})
		}
	}()

	return fw, nil
}
