package ui

import (
	"image"
	"image/color"

	"MisPaint/internal/paint"

	"github.com/gogpu/gg"
)

const previewSize = 40

// renderPreview draws a dot of the style's width and color, capped to the
// icon, outlined so a white eraser still shows.
func renderPreview(st paint.Style) image.Image {
	dc := gg.NewContext(previewSize, previewSize)
	defer dc.Close()

	dc.ClearWithColor(gg.White)
	c := float64(previewSize) / 2
	r := min(max(st.Width/2, 1), c-2)

	dc.SetColor(st.Color)
	dc.DrawCircle(c, c, r)
	dc.FillPreserve()
	dc.SetColor(color.Gray{Y: 150})
	dc.SetLineWidth(1)
	dc.Stroke()

	return dc.Image()
}
