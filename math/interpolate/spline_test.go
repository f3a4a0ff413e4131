package interpolate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func linspace(lo, hi float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return xs
}

func TestSplineKnots(t *testing.T) {
	xs := []float64{0, 1, 1.5, 2, 3, 4, 5}
	ys := []float64{2, 1, 1, 0, 2, 3, 1}
	sp := NewSpline(xs, ys)

	for i := range xs {
		assert.InDelta(t, ys[i], sp.Eval(xs[i]), 1e-12, "knot %d", i)
	}
}

func TestSplineLinearData(t *testing.T) {
	// A natural spline through collinear points is the line itself.
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{2, 3, 4, 5, 6}
	sp := NewSpline(xs, ys)

	for _, x := range linspace(0, 4, 41) {
		assert.InDelta(t, x+2, sp.Eval(x), 1e-12, "x = %g", x)
		assert.InDelta(t, 1, sp.Diff(x, 1), 1e-12, "x = %g", x)
		assert.InDelta(t, 0, sp.Diff(x, 2), 1e-12, "x = %g", x)
	}
}

func TestSplineSmooth(t *testing.T) {
	xs := linspace(0, math.Pi, 50)
	ys := make([]float64, len(xs))
	for i := range xs {
		ys[i] = math.Sin(xs[i])
	}
	sp := NewSpline(xs, ys)

	for _, x := range linspace(0.1, 3, 17) {
		assert.InDelta(t, math.Sin(x), sp.Eval(x), 1e-4, "x = %g", x)
	}
	// Clamped outside the table.
	assert.InDelta(t, ys[0], sp.Eval(-1), 1e-12)
	assert.InDelta(t, ys[len(ys)-1], sp.Eval(4), 1e-12)
}

func TestUniformSpline(t *testing.T) {
	ys := []float64{0, 1, 4, 9, 16}
	sp := NewUniformSpline(0, 0.5, ys)
	for i, y := range ys {
		assert.InDelta(t, y, sp.Eval(0.5*float64(i)), 1e-12)
	}

	two := NewUniformSpline(1, 1, []float64{1, 3})
	assert.InDelta(t, 2, two.Eval(1.5), 1e-12)
}

func TestTriDiag(t *testing.T) {
	as := []float64{0, 1, 1}
	bs := []float64{4, 4, 4}
	cs := []float64{1, 1, 0}
	rs := []float64{5, 6, 5}
	out := make([]float64, 3)
	TriDiagAt(as, bs, cs, rs, out)
	assert.InDeltaSlice(t, []float64{1, 1, 1}, out, 1e-12)
}

func BenchmarkSplineEval(b *testing.B) {
	xs := linspace(6, 14, 200)
	ys := make([]float64, len(xs))
	for i := range xs {
		ys[i] = math.Exp(-xs[i])
	}
	sp := NewSpline(xs, ys)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sp.Eval(6 + 8*float64(i%1000)/1000)
	}
}
