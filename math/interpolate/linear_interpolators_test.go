package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func value(x, y float64) float64 {
	return 2*x + 3*y
}

func TestLinearGridPoints(t *testing.T) {
	xs := []float64{1, 2, 3, 7.5, 10}
	vals := []float64{10, 20, 10, 0.25, 4}
	lin := NewLinear(xs, vals)

	// Points on the grid return the tabulated value exactly.
	for i := range xs {
		assert.Equal(t, vals[i], lin.Eval(xs[i]), "grid point %d", i)
	}
}

func TestLinear(t *testing.T) {
	lin := NewLinear([]float64{1, 2, 3}, []float64{10, 20, 10})

	table := []struct {
		x, val float64
	}{
		{1.5, 15},
		{2.5, 15},
		{2.25, 17.5},
		// Out of range points are clamped.
		{0, 10},
		{-100, 10},
		{3.5, 10},
	}

	for i, test := range table {
		assert.InDelta(t, test.val, lin.Eval(test.x), 1e-12, "%d) x = %g", i, test.x)
	}

	out := lin.EvalAll([]float64{1, 1.5, 2})
	assert.InDeltaSlice(t, []float64{10, 15, 20}, out, 1e-12)

	lo, hi := lin.Range()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 3.0, hi)
}

func TestUniformLinear(t *testing.T) {
	vals := make([]float64, 200)
	for i := range vals {
		vals[i] = 3*(6+float64(i)*8/199) - 1
	}
	lin := NewUniformLinear(6, 8.0/199, vals)

	for _, x := range []float64{6, 6.01, 7.3, 10, 13.99, 14} {
		assert.InDelta(t, 3*x-1, lin.Eval(x), 1e-9, "x = %g", x)
	}
	assert.InDelta(t, vals[0], lin.Eval(5), 1e-12)
	assert.InDelta(t, vals[199], lin.Eval(15), 1e-12)
}

func TestLinearPanics(t *testing.T) {
	assert.Panics(t, func() { NewLinear([]float64{1, 2}, []float64{1}) })
	assert.Panics(t, func() { NewLinear([]float64{1}, []float64{1}) })
	assert.Panics(t, func() { NewLinear([]float64{1, 1}, []float64{1, 2}) })
}

func TestBiLinear(t *testing.T) {
	xs := []float64{0, 0.5, 1, 2}
	ys := []float64{0, 1, 3}
	vals := make([]float64, len(xs)*len(ys))
	for i, x := range xs {
		for j, y := range ys {
			vals[i*len(ys)+j] = value(x, y)
		}
	}
	bi := NewBiLinear(xs, ys, vals)

	// points on the grid should work
	for i, x := range xs {
		for j, y := range ys {
			assert.Equal(t, value(x, y), bi.Eval(x, y), "grid (%d, %d)", i, j)
		}
	}
	// points off the grid should also work
	assert.InDelta(t, value(0.51, 0.5), bi.Eval(0.51, 0.5), 1e-12, "nearby x")
	assert.InDelta(t, value(0.5, 2.2), bi.Eval(0.5, 2.2), 1e-12, "nearby y")
	assert.InDelta(t, value(1.7, 1.1), bi.Eval(1.7, 1.1), 1e-12, "interior")
	// points outside of the grid are clamped
	assert.InDelta(t, value(2, 3), bi.Eval(5, 10), 1e-12, "clamp high")
	assert.InDelta(t, value(0, 0), bi.Eval(-1, -1), 1e-12, "clamp low")
}
