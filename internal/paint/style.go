package paint

import "image/color"

// Style is the paint used to rasterize a stroke. Caps and joins are always
// round and edges are always antialiased, so only color and width vary.
// Opacity lives in the alpha channel of Color.
type Style struct {
	Color color.NRGBA `json:"color"`
	Width float64     `json:"width"`
}

// DefaultBrush and DefaultEraser are the styles a new document starts with.
var (
	DefaultBrush  = Style{Color: color.NRGBA{A: 0xff}, Width: 2}
	DefaultEraser = Style{Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, Width: 20}
)

// Opacity returns the alpha channel of the style color.
func (s Style) Opacity() uint8 {
	return s.Color.A
}

// Styles holds the two independently mutable style slots. Strokes do not
// carry a style of their own; they are painted with whatever For returns at
// the time they are drawn.
type Styles struct {
	Brush  Style `json:"brush"`
	Eraser Style `json:"eraser"`
}

// DefaultStyles returns a fresh pair of default slots.
func DefaultStyles() Styles {
	return Styles{Brush: DefaultBrush, Eraser: DefaultEraser}
}

// For resolves the style a stroke made with t is painted with: the eraser
// slot for Eraser and the brush slot for every other tool.
func (s *Styles) For(t Tool) Style {
	return *s.slot(t)
}

func (s *Styles) slot(t Tool) *Style {
	if t == Eraser {
		return &s.Eraser
	}
	return &s.Brush
}

// SetColor replaces the color (and with it the opacity) of t's slot.
func (s *Styles) SetColor(t Tool, c color.NRGBA) {
	s.slot(t).Color = c
}

// SetWidth sets the stroke width of t's slot. Non-positive widths are
// ignored.
func (s *Styles) SetWidth(t Tool, w float64) {
	if w <= 0 {
		return
	}
	s.slot(t).Width = w
}

// SetOpacity replaces the alpha channel of t's slot color.
func (s *Styles) SetOpacity(t Tool, a uint8) {
	s.slot(t).Color.A = a
}
