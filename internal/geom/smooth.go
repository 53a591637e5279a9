package geom

// SamplesPerSegment is the number of spline evaluations emitted for every
// pair of consecutive input points, t = 0, 0.2, ..., 1.
const SamplesPerSegment = 6

// Smooth turns an ordered list of pointer samples into a polyline that runs
// through every sample along a uniform Catmull-Rom spline.
//
// Two samples give the straight segment between them. For three or more, each
// span p[i]..p[i+1] is evaluated at SamplesPerSegment evenly spaced parameters
// using p[i-1] and p[i+2] as outer control points; the outer indices are
// clamped at both ends, which flattens the curve at the stroke's endpoints.
// Fewer than two samples yield the samples themselves.
//
// The parameter is derived from an integer step, never accumulated, and the
// span endpoints are emitted as the samples themselves, so the result is
// bit-identical between runs and starts and ends exactly on the first and
// last sample.
func Smooth(points []Point) Path {
	n := len(points)
	switch {
	case n == 0:
		return nil
	case n <= 2:
		return append(Path(nil), points...)
	}

	const steps = SamplesPerSegment - 1
	out := make(Path, 0, 1+(n-1)*SamplesPerSegment)
	out = append(out, points[0])
	for i := 0; i < n-1; i++ {
		p0 := points[max(0, i-1)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[min(n-1, i+2)]
		for k := 0; k <= steps; k++ {
			out = append(out, catmullRom(p0, p1, p2, p3, k, steps))
		}
	}
	return out
}

// catmullRom evaluates the span p1..p2 at t = k/steps.
func catmullRom(p0, p1, p2, p3 Point, k, steps int) Point {
	switch k {
	case 0:
		return p1
	case steps:
		return p2
	}
	t := float64(k) / float64(steps)
	t2 := t * t
	t3 := t2 * t
	return Point{
		X: crAxis(p0.X, p1.X, p2.X, p3.X, t, t2, t3),
		Y: crAxis(p0.Y, p1.Y, p2.Y, p3.Y, t, t2, t3),
	}
}

func crAxis(a, b, c, d, t, t2, t3 float64) float64 {
	return 0.5 * ((2 * b) +
		(-a+c)*t +
		(2*a-5*b+4*c-d)*t2 +
		(-a+3*b-3*c+d)*t3)
}
