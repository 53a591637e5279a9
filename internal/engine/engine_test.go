package engine

import (
	"image"
	"image/color"
	"testing"

	"MisPaint/internal/geom"
	"MisPaint/internal/gesture"
	"MisPaint/internal/paint"
	"MisPaint/internal/raster"
	"MisPaint/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	opaqueWhite = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	opaqueBlack = color.RGBA{A: 0xff}
	opaqueBlue  = color.RGBA{B: 0xff, A: 0xff}
)

// drag presses at the first point, moves through the rest and releases on
// the last one.
func drag(e *Engine, pts ...geom.Point) {
	e.PointerDown(pts[0].X, pts[0].Y, gesture.ButtonPrimary)
	for _, p := range pts[1:] {
		e.PointerMove(p.X, p.Y)
	}
	last := pts[len(pts)-1]
	e.PointerUp(last.X, last.Y, gesture.ButtonPrimary)
}

// hline is a drag along y from x0 to x1 in 5px steps.
func hline(e *Engine, y, x0, x1 float64) {
	var pts []geom.Point
	for x := x0; x <= x1; x += 5 {
		pts = append(pts, geom.Pt(x, y))
	}
	drag(e, pts...)
}

func pix(img *image.RGBA) []uint8 {
	return append([]uint8(nil), img.Pix...)
}

func blank(w, h int) []uint8 {
	s := raster.New()
	s.Resize(w, h)
	return pix(s.Image())
}

func newEngine(t *testing.T, w, h int) *Engine {
	t.Helper()
	e := New()
	e.Resize(w, h)
	require.NotNil(t, e.Image())
	return e
}

func TestEngine_Defaults(t *testing.T) {
	assert := assert.New(t)
	e := New()

	assert.Nil(e.Image())
	assert.Equal(paint.Brush, e.Tool())
	assert.Equal(2.0, e.BrushSize())
	assert.Equal("#000000", e.BrushColor())
	assert.Equal(uint8(0xff), e.BrushOpacity())

	e.SetTool(paint.Eraser)
	assert.Equal(20.0, e.BrushSize())
	assert.Equal("#FFFFFF", e.BrushColor())

	// Drawing before the first layout is silently dropped.
	e.SetTool(paint.Brush)
	hline(e, 5, 0, 20)
	assert.Nil(e.Image())
	assert.Len(e.Strokes(), 1)
}

func TestEngine_BrushAccessorsFollowActiveSlot(t *testing.T) {
	assert := assert.New(t)
	e := New()

	e.SetBrushSize(9)
	assert.NoError(e.SetBrushColor("#FF0000"))
	e.SetBrushOpacity(0x40)

	e.SetTool(paint.Eraser)
	assert.Equal(20.0, e.BrushSize())
	e.SetBrushSize(30)
	assert.Equal(uint8(0xff), e.BrushOpacity())

	e.SetTool(paint.Picker)
	assert.Equal(9.0, e.BrushSize())
	assert.Equal("#FF0000", e.BrushColor())
	assert.Equal(uint8(0x40), e.BrushOpacity())

	styles := e.Styles()
	assert.Equal(30.0, styles.Eraser.Width)
	assert.Equal(color.NRGBA{R: 0xff, A: 0x40}, styles.Brush.Color)

	// A new color without alpha is opaque again.
	assert.NoError(e.SetBrushColor("navy"))
	assert.Equal(uint8(0xff), e.BrushOpacity())

	err := e.SetBrushColor("#12")
	assert.ErrorIs(err, paint.ErrBadColor)
	assert.Equal("#000080", e.BrushColor())

	e.SetTool(paint.Tool(42))
	assert.Equal(paint.Picker, e.Tool())
}

func TestEngine_CommitReplacesPreviewWithReplay(t *testing.T) {
	e := newEngine(t, 60, 40)
	e.SetBrushSize(6)
	hline(e, 20, 5, 55)

	want := raster.New()
	want.Resize(60, 40)
	styles := e.Styles()
	want.Replay(e.Strokes(), &styles)

	assert.Equal(t, pix(want.Image()), pix(e.Image()))
	assert.Equal(t, opaqueBlack, e.Image().RGBAAt(30, 20))
}

func TestEngine_UndoRedoRestoresCommittedAndImage(t *testing.T) {
	assert := assert.New(t)
	e := newEngine(t, 60, 60)
	e.SetBrushSize(4)

	hline(e, 10, 5, 55)
	hline(e, 30, 5, 55)
	drag(e, geom.Pt(5, 50), geom.Pt(30, 45), geom.Pt(55, 50))

	before := e.Strokes()
	img := pix(e.Image())

	e.Undo()
	assert.Len(e.Strokes(), 2)
	e.Redo()

	assert.Equal(before, e.Strokes())
	assert.Empty(e.RedoStrokes())
	assert.Equal(img, pix(e.Image()))
}

func TestEngine_UndoAllLeavesBlankSurface(t *testing.T) {
	assert := assert.New(t)
	e := newEngine(t, 50, 50)

	const n = 4
	for i := range n {
		hline(e, float64(10+10*i), 5, 45)
	}
	assert.Len(e.Strokes(), n)

	for range n {
		e.Undo()
	}
	assert.Empty(e.Strokes())
	assert.Len(e.RedoStrokes(), n)
	assert.Equal(blank(50, 50), pix(e.Image()))

	// Undo on an empty history changes nothing.
	e.Undo()
	assert.Len(e.RedoStrokes(), n)
}

func TestEngine_UndoEraserRestoresReplayOfRemaining(t *testing.T) {
	assert := assert.New(t)
	e := newEngine(t, 60, 60)
	e.SetBrushSize(5)

	// A: an L made with the brush.
	drag(e,
		geom.Pt(10, 10), geom.Pt(10, 20), geom.Pt(10, 30), geom.Pt(10, 40),
		geom.Pt(20, 40), geom.Pt(30, 40), geom.Pt(40, 40),
	)
	a := e.Strokes()
	require.Len(t, a, 1)

	// B: the eraser across the foot of the L.
	e.SetTool(paint.Eraser)
	drag(e, geom.Pt(25, 25), geom.Pt(25, 35), geom.Pt(25, 45), geom.Pt(25, 55))
	assert.Equal(opaqueWhite, e.Image().RGBAAt(25, 40))

	e.Undo()

	want := raster.New()
	want.Resize(60, 60)
	styles := e.Styles()
	want.Replay(a, &styles)
	assert.Equal(pix(want.Image()), pix(e.Image()))
	assert.Equal(opaqueBlack, e.Image().RGBAAt(25, 40))
}

func TestEngine_ReplayRepaintsWithCurrentStyle(t *testing.T) {
	assert := assert.New(t)
	e := newEngine(t, 60, 60)
	e.SetBrushSize(6)

	assert.NoError(e.SetBrushColor("#FF0000"))
	hline(e, 20, 5, 55) // A
	assert.Equal(color.RGBA{R: 0xff, A: 0xff}, e.Image().RGBAAt(30, 20))

	assert.NoError(e.SetBrushColor("#0000FF"))
	// Changing the style alone does not repaint.
	assert.Equal(color.RGBA{R: 0xff, A: 0xff}, e.Image().RGBAAt(30, 20))

	hline(e, 45, 5, 55) // B
	e.Undo()

	assert.Len(e.Strokes(), 1)
	assert.Equal(opaqueBlue, e.Image().RGBAAt(30, 20))
	assert.Equal(opaqueWhite, e.Image().RGBAAt(30, 45))
}

func TestEngine_ClickAppendsWithoutClearingRedo(t *testing.T) {
	assert := assert.New(t)
	e := newEngine(t, 40, 40)
	e.SetBrushSize(6)

	hline(e, 30, 5, 35)
	hline(e, 35, 5, 35)
	e.Undo()
	require.Len(t, e.RedoStrokes(), 1)
	img := pix(e.Image())

	e.PointerDown(10, 10, gesture.ButtonPrimary)
	e.PointerUp(10, 10, gesture.ButtonPrimary)

	strokes := e.Strokes()
	require.Len(t, strokes, 2)
	assert.Equal([]geom.Point{geom.Pt(10, 10)}, strokes[1].Points)
	assert.Len(e.RedoStrokes(), 1)
	// No replay happened, and a lone point has no preview.
	assert.Equal(img, pix(e.Image()))

	// The dot shows up at the next replay.
	e.Resize(41, 41)
	assert.Equal(opaqueBlack, e.Image().RGBAAt(10, 10))

	// Redo still works across the appended click.
	e.Redo()
	assert.Len(e.Strokes(), 3)
}

func TestEngine_ResizeEmptyIsWhite(t *testing.T) {
	assert := assert.New(t)
	e := newEngine(t, 30, 30)

	e.Resize(70, 20)
	w, h := e.Size()
	assert.Equal(70, w)
	assert.Equal(20, h)
	assert.Equal(blank(70, 20), pix(e.Image()))
}

func TestEngine_ResizeReplaysHistory(t *testing.T) {
	e := newEngine(t, 40, 40)
	e.SetBrushSize(3)
	hline(e, 10, 5, 35)
	e.SetTool(paint.Eraser)
	drag(e, geom.Pt(20, 0), geom.Pt(20, 10), geom.Pt(20, 20))

	e.Resize(80, 50)

	want := raster.New()
	want.Resize(80, 50)
	styles := e.Styles()
	want.Replay(e.Strokes(), &styles)
	assert.Equal(t, pix(want.Image()), pix(e.Image()))
}

func TestEngine_ClearResetsEverything(t *testing.T) {
	assert := assert.New(t)
	e := newEngine(t, 30, 30)

	hline(e, 10, 5, 25)
	hline(e, 20, 5, 25)
	e.Undo()
	e.Clear()

	assert.Empty(e.Strokes())
	assert.Empty(e.RedoStrokes())
	assert.Equal(blank(30, 30), pix(e.Image()))
	e.Redo()
	assert.Empty(e.Strokes())
}

func TestEngine_FillAndPickerPaintWithBrush(t *testing.T) {
	e := newEngine(t, 40, 40)
	e.SetBrushSize(6)
	e.SetTool(paint.Fill)
	hline(e, 20, 5, 35)

	strokes := e.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, paint.Fill, strokes[0].Tool)
	assert.Equal(t, opaqueBlack, e.Image().RGBAAt(20, 20))
}

func TestEngine_OnChangeAndOps(t *testing.T) {
	assert := assert.New(t)
	e := newEngine(t, 40, 40)

	changes := 0
	var ops []state.Op
	e.OnChange = func() { changes++ }
	e.OnOp = func(op state.Op) { ops = append(ops, op) }

	hline(e, 20, 5, 20) // 4 points: 3 segments, then a commit
	e.Undo()
	e.Redo()
	e.Undo()
	e.Undo() // nothing left: no op
	e.SetBrushSize(4)
	e.Clear()

	var types []state.OpType
	for i, op := range ops {
		types = append(types, op.Type)
		assert.Equal(uint64(i+1), op.Lamport)
		assert.Equal(e.Site(), op.Site)
	}
	assert.Equal([]state.OpType{
		state.OpSegment, state.OpSegment, state.OpSegment, state.OpCommit,
		state.OpUndo, state.OpRedo, state.OpUndo,
		state.OpStyle, state.OpClear,
	}, types)
	assert.Equal(4.0, ops[7].Styles.Brush.Width)
	assert.Len(ops[3].Stroke.Points, 4)
	// 3 previews, commit, undo, redo, undo, clear.
	assert.Equal(8, changes)
}
