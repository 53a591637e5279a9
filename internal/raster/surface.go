// Package raster owns the pixel buffer strokes are painted into.
//
// The buffer is an *image.RGBA, which stores premultiplied alpha. It starts
// out unallocated and is (re)allocated, cleared to opaque white, on every
// Resize. Drawing into an unallocated or zero-area surface does nothing.
//
// Coverage is computed with golang.org/x/image/vector, which antialiases
// analytically, and composited source-over.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"MisPaint/internal/geom"
	"MisPaint/internal/paint"
	"MisPaint/internal/state"

	"golang.org/x/image/vector"
)

// Surface is the raster target of a document. It is not safe for
// concurrent use.
type Surface struct {
	img *image.RGBA
	z   vector.Rasterizer
}

// New returns an unallocated surface; call Resize before drawing.
func New() *Surface {
	return &Surface{}
}

// Resize discards the current buffer and allocates a w×h one cleared to
// opaque white. Non-positive dimensions leave the surface unallocated.
func (s *Surface) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		s.img = nil
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	s.ClearToWhite()
}

// Size returns the buffer dimensions, zero when unallocated.
func (s *Surface) Size() (w, h int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the live buffer, or nil before the first Resize. The caller
// must not keep it across a Resize.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

func (s *Surface) ready() bool {
	return s.img != nil && !s.img.Rect.Empty()
}

// ClearToWhite fills the whole buffer with opaque white.
func (s *Surface) ClearToWhite() {
	if !s.ready() {
		return
	}
	draw.Draw(s.img, s.img.Rect, image.White, image.Point{}, draw.Src)
}

// DrawPath strokes path with st.
func (s *Surface) DrawPath(path geom.Path, st paint.Style) {
	if !s.ready() || len(path) == 0 || st.Width <= 0 {
		return
	}
	b := s.img.Rect
	s.z.Reset(b.Dx(), b.Dy())
	s.z.DrawOp = draw.Over
	outline(&s.z, path, st.Width)
	s.z.Draw(s.img, b, image.NewUniform(st.Color), image.Point{})
}

// DrawStroke smooths stroke and paints it with the style styles currently
// resolves for its tool.
func (s *Surface) DrawStroke(stroke state.Stroke, styles *paint.Styles) {
	s.DrawPath(geom.Smooth(stroke.Points), styles.For(stroke.Tool))
}

// DrawSegment paints a single unsmoothed segment on top of the current
// content. It is used for the live preview of a stroke in progress and
// leaves no record anywhere.
func (s *Surface) DrawSegment(from, to geom.Point, st paint.Style) {
	s.DrawPath(geom.Path{from, to}, st)
}

// Replay clears the buffer and paints strokes in order. It is the only way
// to bring the buffer back in line with a history.
func (s *Surface) Replay(strokes []state.Stroke, styles *paint.Styles) {
	if !s.ready() {
		return
	}
	s.ClearToWhite()
	for _, st := range strokes {
		s.DrawStroke(st, styles)
	}
}

// At returns the non-premultiplied color at (x, y), or transparent outside
// the buffer.
func (s *Surface) At(x, y int) color.NRGBA {
	if s.img == nil || !(image.Point{X: x, Y: y}).In(s.img.Rect) {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(s.img.RGBAAt(x, y)).(color.NRGBA)
}
