package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmooth_TwoPointsIsStraightSegment(t *testing.T) {
	assert := assert.New(t)

	in := []Point{Pt(1, 2), Pt(30, 40)}
	out := Smooth(in)

	assert.Equal(Path{Pt(1, 2), Pt(30, 40)}, out)
	assert.Equal(1, out.Segments())
}

func TestSmooth_DegenerateInput(t *testing.T) {
	assert := assert.New(t)

	assert.Nil(Smooth(nil))
	assert.Equal(Path{Pt(5, 5)}, Smooth([]Point{Pt(5, 5)}))
}

func TestSmooth_EndpointsAreExact(t *testing.T) {
	inputs := [][]Point{
		{Pt(0, 0), Pt(10, 0), Pt(10, 10)},
		{Pt(0.1, 0.7), Pt(3.3, 9.9), Pt(17.17, 2.2), Pt(40.01, 33.3)},
		{Pt(-5, 12.5), Pt(100.25, 0.3), Pt(3, 3), Pt(64, 64), Pt(0.2, 199.9)},
	}
	for _, in := range inputs {
		out := Smooth(in)
		require.NotEmpty(t, out)
		assert.Equal(t, in[0], out[0])
		assert.Equal(t, in[len(in)-1], out[len(out)-1])
	}
}

func TestSmooth_PassesThroughEverySample(t *testing.T) {
	assert := assert.New(t)

	in := []Point{Pt(0, 0), Pt(4, 9), Pt(12, 3), Pt(20, 20)}
	out := Smooth(in)

	assert.Len(out, 1+(len(in)-1)*SamplesPerSegment)
	for i, p := range in {
		// Span i starts right after the leading move-to.
		if i < len(in)-1 {
			assert.Equal(p, out[1+i*SamplesPerSegment])
		}
	}
	assert.GreaterOrEqual(out.Segments(), len(in)-1)
}

func TestSmooth_Deterministic(t *testing.T) {
	in := []Point{Pt(1.1, 2.2), Pt(3.3, 7.7), Pt(9.9, 4.4), Pt(12.12, 13.13), Pt(2, 30)}
	first := Smooth(in)
	for range 10 {
		assert.Equal(t, first, Smooth(in))
	}
}

func TestSmooth_CollinearStaysOnLine(t *testing.T) {
	assert := assert.New(t)

	in := []Point{Pt(0, 5), Pt(10, 5), Pt(20, 5), Pt(30, 5)}
	for _, p := range Smooth(in) {
		assert.InDelta(5.0, p.Y, 1e-9)
		assert.True(p.X >= 0 && p.X <= 30)
	}
}

func TestSmooth_DoesNotMutateInput(t *testing.T) {
	in := []Point{Pt(0, 0), Pt(1, 5), Pt(8, 2)}
	cp := append([]Point(nil), in...)
	_ = Smooth(in)
	assert.Equal(t, cp, in)
}
