package interpolate

import (
	"fmt"
)

///////////////////////////
// Linear Implementation //
///////////////////////////

// Linear is a linear interpolator.
type Linear struct {
	xs   searcher
	vals []float64
}

// NewLinear creates a linear interpolator for a sequence of strictly increasing
// points, xs, which take on the values given by vals.
//
// Lookups will occur in O(log |xs|).
func NewLinear(xs, vals []float64) *Linear {
	if len(xs) != len(vals) {
		panic(fmt.Sprintf(
			"len(xs) = %d, but len(vals) = %d", len(xs), len(vals),
		))
	}
	lin := &Linear{}
	lin.xs.init(xs)
	lin.vals = vals
	return lin
}

// NewUniformLinear creates a linear interplator where a uniformly spaced
// sequence of x values starting at x0 and separated by dx and whose values are
// given by vals.
//
// Lookups will be O(1).
func NewUniformLinear(x0, dx float64, vals []float64) *Linear {
	lin := &Linear{}
	lin.xs.unifInit(x0, dx, len(vals))
	lin.vals = vals
	return lin
}

// Eval returns the interpolated value at x. Points outside the tabulated range
// are clamped to it.
func (lin *Linear) Eval(x float64) float64 {
	x = lin.xs.clamp(x)
	i1 := lin.xs.search(x)
	i2 := i1 + 1
	x1, x2 := lin.xs.val(i1), lin.xs.val(i2)
	v1, v2 := lin.vals[i1], lin.vals[i2]

	// Written so that both cell edges reproduce their values exactly.
	t := (x - x1) / (x2 - x1)
	return (1-t)*v1 + t*v2
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (lin *Linear) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = lin.Eval(x)
	}
	return out[0]
}

// Range returns the smallest and largest tabulated x values.
func (lin *Linear) Range() (lo, hi float64) { return lin.xs.min(), lin.xs.max() }

/////////////////////////////
// BiLinear Implementation //
/////////////////////////////

// BiLinear is a bi-linear interpolator. Values are stored x-major: the value
// at (xs[i], ys[j]) is vals[i*len(ys) + j].
type BiLinear struct {
	xs, ys searcher
	vals   []float64
	ny     int
}

func NewBiLinear(xs, ys, vals []float64) *BiLinear {
	if len(xs)*len(ys) != len(vals) {
		panic(fmt.Sprintf(
			"len(vals) = %d, but len(xs) = %d and len(ys) = %d",
			len(vals), len(xs), len(ys),
		))
	}

	bi := &BiLinear{}
	bi.xs.init(xs)
	bi.ys.init(ys)
	bi.ny = len(ys)
	bi.vals = vals

	return bi
}

func (bi *BiLinear) Eval(x, y float64) float64 {
	x, y = bi.xs.clamp(x), bi.ys.clamp(y)
	ix1, iy1 := bi.xs.search(x), bi.ys.search(y)
	ix2, iy2 := ix1+1, iy1+1

	x1, x2 := bi.xs.val(ix1), bi.xs.val(ix2)
	y1, y2 := bi.ys.val(iy1), bi.ys.val(iy2)

	v11 := bi.vals[ix1*bi.ny+iy1]
	v12 := bi.vals[ix1*bi.ny+iy2]
	v21 := bi.vals[ix2*bi.ny+iy1]
	v22 := bi.vals[ix2*bi.ny+iy2]

	tx := (x - x1) / (x2 - x1)
	ty := (y - y1) / (y2 - y1)

	return (1-tx)*(1-ty)*v11 + (1-tx)*ty*v12 + tx*(1-ty)*v21 + tx*ty*v22
}
