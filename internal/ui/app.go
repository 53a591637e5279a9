package ui

import (
	"MisPaint/internal/engine"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Options configures the window.
type Options struct {
	Title         string
	Width, Height float32
	// ShareLink is shown with a copy button when hosting.
	ShareLink string
	// ReadOnly shows the document without any way to change it.
	ReadOnly bool
}

// App is the painter window around one engine.
type App struct {
	fyne    fyne.App
	window  fyne.Window
	eng     *engine.Engine
	canvas  *Canvas
	toolbar *Toolbar
	info    *widget.Label
}

// NewApp creates the fyne application and the window for eng. It must be
// called before anything uses fyne.Do.
func NewApp(eng *engine.Engine, opts Options) *App {
	a := &App{
		fyne:    app.New(),
		eng:     eng,
		canvas:  NewCanvas(eng),
		toolbar: NewToolbar(eng, opts.ReadOnly),
		info:    widget.NewLabel(""),
	}
	a.canvas.ReadOnly = opts.ReadOnly
	eng.OnChange = a.canvas.Refresh

	a.window = a.fyne.NewWindow(opts.Title)
	a.window.Resize(fyne.NewSize(opts.Width, opts.Height))

	bottom := container.NewHBox(a.info)
	if opts.ShareLink != "" {
		a.info.SetText("Share: " + opts.ShareLink)
		link := opts.ShareLink
		bottom.Add(widget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() {
			a.window.Clipboard().SetContent(link)
		}))
	}

	if !opts.ReadOnly {
		a.addShortcuts()
	}

	a.window.SetContent(container.NewBorder(a.toolbar.Object(), bottom, nil, nil, a.canvas))
	return a
}

func (a *App) addShortcuts() {
	c := a.window.Canvas()
	mod := fyne.KeyModifierShortcutDefault
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: mod}, func(fyne.Shortcut) {
		a.eng.Undo()
	})
	redo := func(fyne.Shortcut) { a.eng.Redo() }
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: mod}, redo)
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: mod | fyne.KeyModifierShift}, redo)
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyN, Modifier: mod}, func(fyne.Shortcut) {
		a.eng.Clear()
	})
}

// SetStatus replaces the toolbar status line. UI goroutine only.
func (a *App) SetStatus(text string) {
	a.toolbar.SetStatus(text)
}

// SetInfo replaces the text in the bottom bar. UI goroutine only.
func (a *App) SetInfo(text string) {
	a.info.SetText(text)
}

// Sync refreshes the controls after the engine changed without them, as
// when a remote op is applied.
func (a *App) Sync() {
	a.toolbar.Sync()
	a.canvas.Refresh()
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() {
	a.window.ShowAndRun()
}
