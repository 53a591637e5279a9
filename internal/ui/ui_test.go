package ui

import (
	"image/color"
	"testing"

	"MisPaint/internal/engine"
	"MisPaint/internal/paint"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestRenderPreview(t *testing.T) {
	assert := assert.New(t)

	img := renderPreview(paint.Style{Color: color.NRGBA{R: 0xff, A: 0xff}, Width: 10})
	require.Equal(t, previewSize, img.Bounds().Dx())

	r, g, b, _ := img.At(previewSize/2, previewSize/2).RGBA()
	assert.Equal([3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
	r, g, b, _ = img.At(1, 1).RGBA()
	assert.Equal([3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})

	// Widths beyond the icon are capped.
	img = renderPreview(paint.Style{Color: color.NRGBA{A: 0xff}, Width: 100})
	r, _, _, _ = img.At(0, 0).RGBA()
	assert.Equal(uint32(0xffff), r)
}

func TestCanvas_ForwardsPointer(t *testing.T) {
	assert := assert.New(t)
	app := test.NewApp()
	defer app.Quit()

	eng := engine.New()
	c := NewCanvas(eng)
	w := test.NewWindow(c)
	defer w.Close()
	c.draw(60, 60)

	c.MouseDown(mouse(5, 5))
	assert.True(eng.Drawing())
	c.Dragged(drag(15, 5))
	c.MouseMoved(mouse(25, 5))
	c.MouseUp(mouse(25, 5))

	assert.False(eng.Drawing())
	require.Len(t, eng.Strokes(), 1)
	assert.Len(eng.Strokes()[0].Points, 3)

	// A release outside the widget still ends the stroke.
	c.MouseDown(mouse(5, 30))
	c.Dragged(drag(20, 30))
	c.Dragged(drag(40, 30))
	c.DragEnd()
	assert.False(eng.Drawing())
	assert.Len(eng.Strokes(), 2)
	assert.Equal(desktop.CrosshairCursor, c.Cursor())
}

func TestCanvas_ReadOnlyIgnoresInput(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	eng := engine.New()
	c := NewCanvas(eng)
	c.ReadOnly = true

	c.MouseDown(mouse(5, 5))
	c.Dragged(drag(25, 5))
	c.MouseUp(mouse(25, 5))

	assert.False(t, eng.Drawing())
	assert.Empty(t, eng.Strokes())
	assert.Equal(t, desktop.DefaultCursor, c.Cursor())
}

func TestToolbar_FollowsActiveSlot(t *testing.T) {
	assert := assert.New(t)
	app := test.NewApp()
	defer app.Quit()

	eng := engine.New()
	tb := NewToolbar(eng, false)

	assert.Equal(brushMax, tb.size.Max)
	assert.Equal(2.0, tb.size.Value)
	assert.True(tb.opacityBox.Visible())

	test.Tap(tb.tools[paint.Eraser])
	assert.Equal(paint.Eraser, eng.Tool())
	assert.Equal(eraserMin, tb.size.Min)
	assert.Equal(eraserMax, tb.size.Max)
	assert.Equal(20.0, tb.size.Value)
	assert.False(tb.opacityBox.Visible())

	tb.size.SetValue(40)
	assert.Equal(40.0, eng.BrushSize())

	test.Tap(tb.tools[paint.Brush])
	assert.Equal(2.0, tb.size.Value)
	assert.Equal(40.0, eng.Styles().Eraser.Width)
}

func TestToolbar_ColorEntry(t *testing.T) {
	assert := assert.New(t)
	app := test.NewApp()
	defer app.Quit()

	eng := engine.New()
	tb := NewToolbar(eng, false)

	tb.hex.OnSubmitted("#00ff00")
	assert.Equal("#00FF00", eng.BrushColor())
	assert.Equal("#00FF00", tb.hex.Text)

	tb.opacity.SetValue(50)
	assert.Equal(uint8(0x80), eng.BrushOpacity())

	tb.hex.OnSubmitted("chartreuse-ish")
	assert.Equal("#00FF00", eng.BrushColor())
	assert.Contains(tb.status.Text, "bad color")
}
