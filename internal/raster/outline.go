package raster

import (
	"math"

	"MisPaint/internal/geom"

	"golang.org/x/image/vector"
)

// joinEpsilon is the largest gap, in pixels, left open at a joint before a
// round join is added to cover it.
const joinEpsilon = 0.05

// outline adds the region covered by stroking path with a round-capped,
// round-joined pen of the given width to z.
//
// The region is built as a union of pieces: a rectangle along every segment
// and a disc on every vertex where the outline would otherwise show a gap
// (both ends, and every joint that turns). All pieces are wound the same
// way, and the rasterizer clamps accumulated coverage, so overlaps count
// once. A path that never leaves its first point becomes a single disc.
func outline(z *vector.Rasterizer, path geom.Path, width float64) {
	r := width / 2
	if r <= 0 || len(path) == 0 {
		return
	}

	pts := dedupe(path)
	if len(pts) == 1 {
		disc(z, pts[0], r)
		return
	}

	disc(z, pts[0], r)
	for i := 0; i+1 < len(pts); i++ {
		rect(z, pts[i], pts[i+1], r)
		if i+2 < len(pts) && turns(pts[i], pts[i+1], pts[i+2], r) {
			disc(z, pts[i+1], r)
		}
	}
	disc(z, pts[len(pts)-1], r)
}

// dedupe drops consecutive vertices that coincide, which the spline emits at
// every span boundary.
func dedupe(path geom.Path) geom.Path {
	out := make(geom.Path, 0, len(path))
	for _, p := range path {
		if n := len(out); n > 0 && out[n-1].Dist(p) < 1e-6 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// turns reports whether the joint at b leaves a visible wedge between the
// rectangles of a-b and b-c.
func turns(a, b, c geom.Point, r float64) bool {
	u := b.Sub(a)
	v := c.Sub(b)
	lu := math.Hypot(u.X, u.Y)
	lv := math.Hypot(v.X, v.Y)
	if lu == 0 || lv == 0 {
		return true
	}
	cos := (u.X*v.X + u.Y*v.Y) / (lu * lv)
	sin := (u.X*v.Y - u.Y*v.X) / (lu * lv)
	return cos < 0 || math.Abs(sin)*r > joinEpsilon
}

// rect adds the rectangle of half-width r around segment a-b.
func rect(z *vector.Rasterizer, a, b geom.Point, r float64) {
	d := b.Sub(a)
	l := math.Hypot(d.X, d.Y)
	n := geom.Pt(-d.Y/l*r, d.X/l*r)

	p0 := a.Add(n)
	p1 := b.Add(n)
	p2 := b.Sub(n)
	p3 := a.Sub(n)
	z.MoveTo(float32(p0.X), float32(p0.Y))
	z.LineTo(float32(p1.X), float32(p1.Y))
	z.LineTo(float32(p2.X), float32(p2.Y))
	z.LineTo(float32(p3.X), float32(p3.Y))
	z.ClosePath()
}

// disc adds a polygonal circle of radius r around c, wound the same way as
// rect.
func disc(z *vector.Rasterizer, c geom.Point, r float64) {
	n := discSegments(r)
	z.MoveTo(float32(c.X+r), float32(c.Y))
	for i := 1; i < n; i++ {
		a := -2 * math.Pi * float64(i) / float64(n)
		z.LineTo(float32(c.X+r*math.Cos(a)), float32(c.Y+r*math.Sin(a)))
	}
	z.ClosePath()
}

// discSegments keeps polygon edges around a pixel and a half long.
func discSegments(r float64) int {
	n := int(math.Ceil(2 * math.Pi * r / 1.5))
	return min(max(n, 12), 180)
}
