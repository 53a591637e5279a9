package ui

import (
	"fmt"
	"image/color"

	"MisPaint/internal/engine"
	"MisPaint/internal/paint"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Size limits of the tool options, per slot.
const (
	brushMin, brushMax   = 1.0, 50.0
	eraserMin, eraserMax = 10.0, 100.0
)

var palette = []color.NRGBA{
	{A: 0xff},                            // Black
	{R: 0xff, A: 0xff},                   // Red
	{G: 0xff, A: 0xff},                   // Green
	{B: 0xff, A: 0xff},                   // Blue
	{R: 0xff, G: 0xff, A: 0xff},          // Yellow
	{R: 0xff, G: 0xa5, A: 0xff},          // Orange
	{R: 0x80, B: 0x80, A: 0xff},          // Purple
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, // White
}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.NRGBA
	OnTapped func(color.NRGBA)
}

func newColorSwatch(c color.NRGBA, tapped func(color.NRGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Toolbar holds the tool buttons, history actions and the options of the
// active tool. Sync must be called after the engine changes behind its back.
type Toolbar struct {
	eng *engine.Engine

	tools   map[paint.Tool]*widget.Button
	size    *widget.Slider
	opacity *widget.Slider
	hex     *widget.Entry
	preview *canvas.Image
	status  *widget.Label

	// opacityBox holds the opacity label and slider, shown for brush slot tools.
	opacityBox *fyne.Container

	// syncing suppresses the OnChanged callbacks fired by Sync itself.
	syncing bool

	root fyne.CanvasObject
}

var toolIcons = map[paint.Tool]fyne.Resource{
	paint.Brush:  theme.DocumentCreateIcon(),
	paint.Eraser: theme.ContentClearIcon(),
	paint.Fill:   theme.ColorPaletteIcon(),
	paint.Picker: theme.VisibilityIcon(),
}

// NewToolbar builds the toolbar for eng. A read-only toolbar only shows the
// status line.
func NewToolbar(eng *engine.Engine, readOnly bool) *Toolbar {
	t := &Toolbar{
		eng:    eng,
		tools:  make(map[paint.Tool]*widget.Button),
		status: widget.NewLabel("Ready"),
	}
	if readOnly {
		t.root = container.NewHBox(t.status, layout.NewSpacer())
		return t
	}

	toolBox := container.NewHBox()
	for _, tool := range paint.Tools() {
		b := widget.NewButtonWithIcon("", toolIcons[tool], func() {
			eng.SetTool(tool)
			t.Sync()
		})
		t.tools[tool] = b
		toolBox.Add(b)
	}

	history := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), eng.Undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), eng.Redo),
		widget.NewToolbarAction(theme.DeleteIcon(), eng.Clear),
	)

	// --- Color Palette ---
	onColorTapped := func(c color.NRGBA) {
		t.setColor(paint.Hex(c))
	}
	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}
	t.hex = widget.NewEntry()
	t.hex.SetPlaceHolder("#RRGGBB")
	t.hex.OnSubmitted = t.setColor
	hexBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(100, 35)), t.hex)

	// --- Stroke Width Slider ---
	t.size = widget.NewSlider(brushMin, brushMax)
	t.size.OnChanged = func(v float64) {
		if t.syncing {
			return
		}
		eng.SetBrushSize(v)
		t.Sync()
	}
	sizeBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.size)

	t.opacity = widget.NewSlider(0, 100)
	t.opacity.OnChanged = func(v float64) {
		if t.syncing {
			return
		}
		eng.SetBrushOpacity(paint.OpacityByte(v))
		t.Sync()
	}
	t.opacityBox = container.NewHBox(
		widget.NewLabel("Opacity:"),
		container.New(layout.NewGridWrapLayout(fyne.NewSize(100, 35)), t.opacity),
	)

	t.preview = canvas.NewImageFromImage(renderPreview(eng.Styles().For(eng.Tool())))
	t.preview.FillMode = canvas.ImageFillOriginal
	t.preview.SetMinSize(fyne.NewSize(previewSize, previewSize))

	// --- Assemble everything ---
	t.root = container.NewVBox(
		container.NewHBox(
			widget.NewLabel("Tool:"),
			toolBox,
			widget.NewSeparator(),
			history,
			widget.NewSeparator(),
			widget.NewLabel("Color:"),
			colorBox,
			hexBox,
		),
		container.NewHBox(
			widget.NewLabel("Size:"),
			sizeBox,
			t.opacityBox,
			t.preview,
			layout.NewSpacer(),
			t.status,
		),
	)
	t.Sync()
	return t
}

// Object returns the toolbar's canvas object.
func (t *Toolbar) Object() fyne.CanvasObject {
	return t.root
}

// SetStatus replaces the status line.
func (t *Toolbar) SetStatus(text string) {
	t.status.SetText(text)
}

func (t *Toolbar) setColor(s string) {
	err := t.eng.SetBrushColor(s)
	t.Sync()
	if err != nil {
		t.SetStatus(err.Error())
	}
}

// Sync brings every control in line with the engine's active tool and
// style.
func (t *Toolbar) Sync() {
	if t.size == nil {
		return
	}
	t.syncing = true
	defer func() { t.syncing = false }()

	active := t.eng.Tool()
	for tool, b := range t.tools {
		if tool == active {
			b.Importance = widget.HighImportance
		} else {
			b.Importance = widget.MediumImportance
		}
		b.Refresh()
	}

	if active == paint.Eraser {
		t.size.Min, t.size.Max = eraserMin, eraserMax
		t.opacityBox.Hide()
	} else {
		t.size.Min, t.size.Max = brushMin, brushMax
		t.opacityBox.Show()
	}
	t.size.SetValue(t.eng.BrushSize())
	t.opacity.SetValue(float64(paint.OpacityPercent(t.eng.BrushOpacity())))
	t.hex.SetText(t.eng.BrushColor())

	t.preview.Image = renderPreview(t.eng.Styles().For(active))
	t.preview.Refresh()

	t.SetStatus(fmt.Sprintf("%s · %gpx · %d%%", active, t.eng.BrushSize(), paint.OpacityPercent(t.eng.BrushOpacity())))
}
