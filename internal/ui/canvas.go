package ui

import (
	"image"
	"image/color"

	"MisPaint/internal/engine"
	"MisPaint/internal/gesture"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Canvas shows the document surface and feeds it pointer input. The
// surface is kept at the widget's size in device pixels, so event
// positions are scaled from fyne units before they reach the engine.
type Canvas struct {
	widget.BaseWidget
	eng    *engine.Engine
	raster *canvas.Raster

	// ReadOnly drops all pointer input, for viewers.
	ReadOnly bool

	last fyne.Position
}

var _ fyne.Widget = (*Canvas)(nil)
var _ fyne.Draggable = (*Canvas)(nil)
var _ desktop.Mouseable = (*Canvas)(nil)
var _ desktop.Hoverable = (*Canvas)(nil)
var _ desktop.Cursorable = (*Canvas)(nil)

func NewCanvas(eng *engine.Engine) *Canvas {
	c := &Canvas{eng: eng}
	c.raster = canvas.NewRaster(c.draw)
	c.ExtendBaseWidget(c)
	return c
}

// draw is the raster generator. It is handed the widget size in pixels,
// which is where the engine learns about viewport changes.
func (c *Canvas) draw(w, h int) image.Image {
	c.eng.Resize(w, h)
	if img := c.eng.Image(); img != nil {
		return img
	}
	return image.NewUniform(color.White)
}

func (c *Canvas) scale() float32 {
	if app := fyne.CurrentApp(); app != nil {
		if cv := app.Driver().CanvasForObject(c); cv != nil {
			return cv.Scale()
		}
	}
	return 1
}

func (c *Canvas) toPixels(p fyne.Position) (x, y float64) {
	s := c.scale()
	return float64(p.X * s), float64(p.Y * s)
}

func toButton(b desktop.MouseButton) gesture.Button {
	switch b {
	case desktop.MouseButtonSecondary:
		return gesture.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return gesture.ButtonTertiary
	}
	return gesture.ButtonPrimary
}

func (c *Canvas) MouseDown(e *desktop.MouseEvent) {
	if c.ReadOnly {
		return
	}
	c.last = e.Position
	x, y := c.toPixels(e.Position)
	c.eng.PointerDown(x, y, toButton(e.Button))
}

func (c *Canvas) MouseUp(e *desktop.MouseEvent) {
	if c.ReadOnly {
		return
	}
	x, y := c.toPixels(e.Position)
	c.eng.PointerUp(x, y, toButton(e.Button))
}

func (c *Canvas) Dragged(e *fyne.DragEvent) {
	c.move(e.Position)
}

// DragEnd finishes the stroke when the release happened outside the widget
// and no MouseUp was delivered.
func (c *Canvas) DragEnd() {
	if c.ReadOnly || !c.eng.Drawing() {
		return
	}
	x, y := c.toPixels(c.last)
	c.eng.PointerUp(x, y, gesture.ButtonPrimary)
}

func (c *Canvas) MouseMoved(e *desktop.MouseEvent) {
	c.move(e.Position)
}

func (c *Canvas) move(p fyne.Position) {
	if c.ReadOnly {
		return
	}
	c.last = p
	x, y := c.toPixels(p)
	c.eng.PointerMove(x, y)
}

func (c *Canvas) MouseIn(*desktop.MouseEvent) {}
func (c *Canvas) MouseOut()                   {}

func (c *Canvas) Cursor() desktop.Cursor {
	if c.ReadOnly {
		return desktop.DefaultCursor
	}
	return desktop.CrosshairCursor
}

func (c *Canvas) CreateRenderer() fyne.WidgetRenderer {
	return &canvasRenderer{canvas: c}
}

type canvasRenderer struct {
	canvas *Canvas
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *canvasRenderer) Refresh() {
	canvas.Refresh(r.canvas.raster)
}

func (r *canvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
}

func (r *canvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *canvasRenderer) Destroy() {}
