// Package gesture turns pointer events into strokes.
//
// A Controller is a two-state machine, Idle and Drawing. A primary button
// press starts a stroke, motion grows it and paints an unsmoothed preview
// segment straight onto the canvas, and the release hands the finished
// stroke to the recorder.
package gesture

import (
	"MisPaint/internal/geom"
	"MisPaint/internal/paint"
	"MisPaint/internal/state"
)

// MinStep is the distance, in pixels, the pointer has to travel from the last
// recorded point before a new point is recorded.
const MinStep = 1.0

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonTertiary
)

// Canvas receives the live preview of a stroke in progress.
type Canvas interface {
	DrawSegment(from, to geom.Point, st paint.Style)
}

// Recorder receives finished strokes.
type Recorder interface {
	// Commit records s and repaints everything from history.
	Commit(s state.Stroke)
	// Append records s with no repaint and without touching the redo stack.
	Append(s state.Stroke)
	ClearRedo()
}

type phase int

const (
	idle phase = iota
	drawing
)

// Controller is the pointer state machine of one canvas.
type Controller struct {
	canvas   Canvas
	recorder Recorder
	styles   *paint.Styles

	phase   phase
	current state.Stroke

	// OnSegment, when set, is told about every preview segment drawn.
	OnSegment func(from, to geom.Point, tool paint.Tool)
	// OnRelease, when set, is told about every finished stroke and whether
	// it went through Commit.
	OnRelease func(s state.Stroke, committed bool)
}

// NewController wires a controller to the canvas it previews on, the
// recorder it hands strokes to, and the style slots it previews with.
func NewController(c Canvas, r Recorder, styles *paint.Styles) *Controller {
	return &Controller{canvas: c, recorder: r, styles: styles}
}

// Drawing reports whether a stroke is in progress, in which case the
// controller holds the pointer capture.
func (c *Controller) Drawing() bool {
	return c.phase == drawing
}

// Current returns a copy of the stroke in progress.
func (c *Controller) Current() (state.Stroke, bool) {
	if c.phase != drawing {
		return state.Stroke{}, false
	}
	return c.current.Clone(), true
}

// Down starts a stroke with tool at p when the primary button is pressed
// while idle. Other buttons, and presses during a stroke, are ignored.
func (c *Controller) Down(p geom.Point, b Button, tool paint.Tool) {
	if c.phase != idle || b != ButtonPrimary {
		return
	}
	c.phase = drawing
	c.current = state.Stroke{
		ID:     state.NewStrokeID(),
		Tool:   tool,
		Points: []geom.Point{p},
	}
}

// Move records p if it is more than MinStep away from the last recorded
// point and previews the new segment.
func (c *Controller) Move(p geom.Point) {
	if c.phase != drawing {
		return
	}
	last, _ := c.current.Last()
	if last.Dist(p) <= MinStep {
		return
	}
	c.current.Points = append(c.current.Points, p)
	c.canvas.DrawSegment(last, p, c.styles.For(c.current.Tool))
	if c.OnSegment != nil {
		c.OnSegment(last, p, c.current.Tool)
	}
}

// Up finishes the stroke in progress. Strokes of more than two points are
// committed, repainting the canvas from history with smoothing. Shorter
// ones are appended as they are, leaving the redo stack and the preview
// untouched. The release position itself is not recorded.
func (c *Controller) Up(p geom.Point, b Button) {
	if c.phase != drawing {
		return
	}
	s := c.current
	c.current = state.Stroke{}
	c.phase = idle

	committed := len(s.Points) > 2
	if committed {
		c.recorder.ClearRedo()
		c.recorder.Commit(s)
	} else {
		c.recorder.Append(s)
	}
	if c.OnRelease != nil {
		c.OnRelease(s, committed)
	}
}
