package gui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/analysis"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

// Editor is the side panel for editing grid cells and pasting new data
type Editor struct {
	controller *viewer.Controller
	onEdit     func()

	table      *widget.Table
	rowEntry   *widget.Entry
	colEntry   *widget.Entry
	valueEntry *widget.Entry
	pasteEntry *widget.Entry
	statsLabel *widget.Label
	status     *widget.Label
}

// NewEditor creates the editor panel. onEdit runs after every change to
// the grid so the surface can redraw.
func NewEditor(c *viewer.Controller, onEdit func()) *Editor {
	e := &Editor{
		controller: c,
		onEdit:     onEdit,
		rowEntry:   widget.NewEntry(),
		colEntry:   widget.NewEntry(),
		valueEntry: widget.NewEntry(),
		pasteEntry: widget.NewMultiLineEntry(),
		statsLabel: widget.NewLabel(""),
		status:     widget.NewLabel(""),
	}

	e.rowEntry.SetPlaceHolder("row")
	e.colEntry.SetPlaceHolder("col")
	e.valueEntry.SetPlaceHolder("value")
	e.pasteEntry.SetPlaceHolder("Paste tab-separated rows here")
	e.valueEntry.OnSubmitted = func(string) { e.SetCell() }

	e.table = widget.NewTable(
		func() (int, int) {
			g := e.controller.Grid()
			return g.Rows(), g.Cols()
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("-0.000")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			g := e.controller.Grid()
			if id.Row < g.Rows() && id.Col < g.Cols() {
				obj.(*widget.Label).SetText(fmt.Sprintf("%.3f", g.Value(id.Row, id.Col)))
			}
		},
	)
	e.table.OnSelected = func(id widget.TableCellID) {
		e.rowEntry.SetText(strconv.Itoa(id.Row))
		e.colEntry.SetText(strconv.Itoa(id.Col))
		e.valueEntry.SetText(strconv.FormatFloat(e.controller.Grid().Value(id.Row, id.Col), 'g', -1, 64))
	}

	e.Refresh()
	return e
}

// SetCell stores the value entry at the row and column entries
func (e *Editor) SetCell() bool {
	row, errRow := strconv.Atoi(e.rowEntry.Text)
	col, errCol := strconv.Atoi(e.colEntry.Text)
	if errRow != nil || errCol != nil {
		e.status.SetText("Row and column must be whole numbers")
		return false
	}

	if !e.controller.OnCellEdit(row, col, e.valueEntry.Text) {
		e.status.SetText(fmt.Sprintf("Cell [%d, %d] is outside the grid", row, col))
		return false
	}

	e.status.SetText(fmt.Sprintf("Set [%d, %d] = %g", row, col, e.controller.Grid().Value(row, col)))
	e.changed()
	return true
}

// Paste replaces the grid with tabular text
func (e *Editor) Paste(text string) bool {
	if !e.controller.OnPaste(text) {
		e.status.SetText("Nothing to paste")
		return false
	}

	g := e.controller.Grid()
	e.status.SetText(fmt.Sprintf("Pasted %d x %d grid", g.Rows(), g.Cols()))
	e.changed()
	return true
}

// PasteClipboard pastes the system clipboard
func (e *Editor) PasteClipboard() bool {
	return e.Paste(fyne.CurrentApp().Clipboard().Content())
}

// CopyClipboard puts the grid on the system clipboard as tab-separated text
func (e *Editor) CopyClipboard() {
	fyne.CurrentApp().Clipboard().SetContent(e.controller.Grid().Format())
	e.status.SetText("Grid copied")
}

// Refresh reloads the table and statistics from the grid
func (e *Editor) Refresh() {
	c := e.controller
	stats := analysis.AnalyzeGrid(c.Grid(), c.Camera().Scale)
	e.statsLabel.SetText(fmt.Sprintf(
		"Grid: %d x %d\nMin: %s\nMax: %s\nMean: %.4f\nStd dev: %.4f",
		stats.Rows, stats.Cols,
		analysis.FormatSample(stats.Min),
		analysis.FormatSample(stats.Max),
		stats.Mean, stats.StdDev,
	))
	e.table.Refresh()
}

func (e *Editor) changed() {
	e.Refresh()
	if e.onEdit != nil {
		e.onEdit()
	}
}

// Content builds the panel layout
func (e *Editor) Content() fyne.CanvasObject {
	cellForm := container.NewGridWithColumns(3, e.rowEntry, e.colEntry, e.valueEntry)

	setButton := widget.NewButton("Set Cell", func() { e.SetCell() })
	applyButton := widget.NewButton("Apply Text", func() { e.Paste(e.pasteEntry.Text) })
	clipboardButton := widget.NewButton("Paste Clipboard", func() { e.PasteClipboard() })
	copyButton := widget.NewButton("Copy Grid", e.CopyClipboard)
	resetButton := widget.NewButton("Reset View", func() {
		e.controller.ResetView()
		if e.onEdit != nil {
			e.onEdit()
		}
	})

	top := container.NewVBox(
		widget.NewLabel("Grid Information:"),
		widget.NewSeparator(),
		e.statsLabel,
		widget.NewSeparator(),
		widget.NewLabel("Edit Cell:"),
		cellForm,
		setButton,
		widget.NewSeparator(),
		widget.NewLabel("Paste Data:"),
		e.pasteEntry,
		container.NewGridWithColumns(2, applyButton, clipboardButton),
		copyButton,
		resetButton,
		e.status,
	)

	return container.NewBorder(top, nil, nil, nil, e.table)
}
