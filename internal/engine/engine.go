// Package engine is the painting document: the active tool and its style
// slots, the stroke history, the raster surface and the pointer controller,
// behind the operations a shell drives.
//
// An Engine is single threaded. Every method, including the pointer
// handlers, must be called from the same goroutine (normally the UI thread),
// and each one runs to completion before returning.
package engine

import (
	"fmt"
	"image"
	"time"

	"MisPaint/internal/geom"
	"MisPaint/internal/gesture"
	"MisPaint/internal/paint"
	"MisPaint/internal/raster"
	"MisPaint/internal/state"
)

// Engine is one painting document.
type Engine struct {
	styles  paint.Styles
	tool    paint.Tool
	surface *raster.Surface
	history *state.History
	gesture *gesture.Controller
	clock   *state.Clock

	// seen holds the last lamport applied from each remote site.
	seen     map[string]uint64
	applying bool

	// OnChange is called after anything that may have changed the image.
	OnChange func()
	// OnOp is called with every local change, stamped with the document's
	// clock. Changes applied through Apply are not reported.
	OnOp func(op state.Op)
}

// Option configures a new Engine.
type Option func(*Engine)

// WithStyles sets the initial brush and eraser styles.
func WithStyles(s paint.Styles) Option {
	return func(e *Engine) {
		e.styles = s
	}
}

// New returns an empty document with the brush active and an unallocated
// surface. Call Resize once the viewport size is known.
func New(opts ...Option) *Engine {
	e := &Engine{
		styles:  paint.DefaultStyles(),
		tool:    paint.Brush,
		surface: raster.New(),
		clock:   state.NewClock(),
		seen:    make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.history = state.NewHistory(e.replay)
	e.gesture = gesture.NewController(e.surface, e.history, &e.styles)
	e.gesture.OnSegment = e.segmentDrawn
	e.gesture.OnRelease = e.released
	return e
}

// SetTool makes t the active tool. Invalid tools are ignored.
func (e *Engine) SetTool(t paint.Tool) {
	if !t.Valid() {
		return
	}
	e.tool = t
	e.emitStyle()
}

// Tool returns the active tool.
func (e *Engine) Tool() paint.Tool {
	return e.tool
}

// Styles returns a copy of both style slots.
func (e *Engine) Styles() paint.Styles {
	return e.styles
}

// The brush accessors below read and write the style slot of the active
// tool: the eraser slot while the eraser is active, the brush slot
// otherwise.

func (e *Engine) BrushSize() float64 {
	return e.styles.For(e.tool).Width
}

func (e *Engine) SetBrushSize(w float64) {
	e.styles.SetWidth(e.tool, w)
	e.emitStyle()
}

// BrushColor returns the active slot color as "#RRGGBB".
func (e *Engine) BrushColor() string {
	return paint.Hex(e.styles.For(e.tool).Color)
}

// SetBrushColor parses s with paint.ParseColor and makes it the active slot
// color. A color without an alpha component is opaque, so this also resets
// the opacity. On error the style is left unchanged.
func (e *Engine) SetBrushColor(s string) error {
	c, err := paint.ParseColor(s)
	if err != nil {
		return fmt.Errorf("set brush color: %w", err)
	}
	e.styles.SetColor(e.tool, c)
	e.emitStyle()
	return nil
}

func (e *Engine) BrushOpacity() uint8 {
	return e.styles.For(e.tool).Opacity()
}

func (e *Engine) SetBrushOpacity(a uint8) {
	e.styles.SetOpacity(e.tool, a)
	e.emitStyle()
}

// Clear starts a new document: both history lists are emptied and the
// surface is cleared to white.
func (e *Engine) Clear() {
	e.history.Clear()
	Logger().Debug("clear")
	e.emit(state.Op{Type: state.OpClear})
}

// Undo takes back the last committed stroke, if any.
func (e *Engine) Undo() {
	if !e.history.Undo() {
		return
	}
	Logger().Debug("undo", "committed", e.history.Len(), "redo", e.history.RedoLen())
	e.emit(state.Op{Type: state.OpUndo})
}

// Redo restores the last undone stroke, if any.
func (e *Engine) Redo() {
	if !e.history.Redo() {
		return
	}
	Logger().Debug("redo", "committed", e.history.Len(), "redo", e.history.RedoLen())
	e.emit(state.Op{Type: state.OpRedo})
}

// PointerDown handles a button press at (x, y) in surface pixels.
func (e *Engine) PointerDown(x, y float64, b gesture.Button) {
	e.gesture.Down(geom.Pt(x, y), b, e.tool)
}

// PointerMove handles pointer motion to (x, y).
func (e *Engine) PointerMove(x, y float64) {
	e.gesture.Move(geom.Pt(x, y))
}

// PointerUp handles a button release at (x, y).
func (e *Engine) PointerUp(x, y float64, b gesture.Button) {
	e.gesture.Up(geom.Pt(x, y), b)
}

// Drawing reports whether a stroke is in progress.
func (e *Engine) Drawing() bool {
	return e.gesture.Drawing()
}

// Resize reallocates the surface for a w×h viewport and repaints the
// committed strokes. The previous pixels are discarded, not scaled.
func (e *Engine) Resize(w, h int) {
	if cw, ch := e.surface.Size(); cw == w && ch == h {
		return
	}
	e.surface.Resize(w, h)
	Logger().Debug("resize", "width", w, "height", h)
	e.history.Replay()
}

// Size returns the surface dimensions.
func (e *Engine) Size() (w, h int) {
	return e.surface.Size()
}

// Image returns the live surface buffer, nil before the first Resize.
func (e *Engine) Image() *image.RGBA {
	return e.surface.Image()
}

// Strokes returns the committed strokes, oldest first.
func (e *Engine) Strokes() []state.Stroke {
	return e.history.Strokes()
}

// RedoStrokes returns the undone strokes, most recently undone last.
func (e *Engine) RedoStrokes() []state.Stroke {
	return e.history.RedoStrokes()
}

// Site returns the identifier the document stamps its ops with.
func (e *Engine) Site() string {
	return e.clock.Site()
}

func (e *Engine) replay(strokes []state.Stroke) {
	start := time.Now()
	e.surface.Replay(strokes, &e.styles)
	Logger().Debug("replay", "strokes", len(strokes), "took", time.Since(start))
	e.changed()
}

func (e *Engine) segmentDrawn(from, to geom.Point, tool paint.Tool) {
	e.changed()
	e.emit(state.Op{Type: state.OpSegment, From: &from, To: &to, Tool: tool})
}

func (e *Engine) released(s state.Stroke, committed bool) {
	typ := state.OpAppend
	if committed {
		typ = state.OpCommit
	}
	Logger().Debug("stroke", "op", string(typ), "tool", s.Tool.String(), "points", len(s.Points))
	e.emit(state.Op{Type: typ, Stroke: &s})
}

func (e *Engine) emitStyle() {
	styles := e.styles
	e.emit(state.Op{Type: state.OpStyle, Styles: &styles, Tool: e.tool})
}

func (e *Engine) emit(op state.Op) {
	if e.applying || e.OnOp == nil {
		return
	}
	e.OnOp(e.clock.Stamp(op))
}

func (e *Engine) changed() {
	if e.OnChange != nil {
		e.OnChange()
	}
}
