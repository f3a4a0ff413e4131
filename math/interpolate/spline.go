package interpolate

import (
	"fmt"
)

type splineCoeff struct {
	a, b, c, d float64
}

// Spline represents a 1D natural cubic spline which can be used to
// interpolate between points.
type Spline struct {
	xs     searcher
	ys     []float64
	y2s    []float64
	coeffs []splineCoeff
}

// NewSpline creates a spline based off a table of x and y values. The x values
// must be strictly increasing.
//
// xs and ys are copied, so the caller may reuse them.
func NewSpline(xs, ys []float64) *Spline {
	if len(xs) != len(ys) {
		panic(fmt.Sprintf(
			"Table given to NewSpline() has len(xs) = %d but len(ys) = %d.",
			len(xs), len(ys),
		))
	}

	sp := new(Spline)
	sp.xs.init(append([]float64{}, xs...))
	sp.init(ys)
	return sp
}

// NewUniformSpline creates a spline over n = len(ys) uniformly spaced points
// starting at x0 and separated by dx.
func NewUniformSpline(x0, dx float64, ys []float64) *Spline {
	sp := new(Spline)
	sp.xs.unifInit(x0, dx, len(ys))
	sp.init(ys)
	return sp
}

func (sp *Spline) init(ys []float64) {
	n := sp.xs.n
	sp.ys = append([]float64{}, ys...)
	sp.y2s = make([]float64, n)
	sp.coeffs = make([]splineCoeff, n-1)
	sp.calcY2s()
	sp.calcCoeffs()
}

// Eval computes the value of the spline at the given point. Points outside
// the tabulated range are clamped to it.
func (sp *Spline) Eval(x float64) float64 {
	x = sp.xs.clamp(x)
	i := sp.xs.search(x)
	dx := x - sp.xs.val(i)
	a, b, c, d := sp.coeffs[i].a, sp.coeffs[i].b, sp.coeffs[i].c, sp.coeffs[i].d
	return a*dx*dx*dx + b*dx*dx + c*dx + d
}

// EvalAll evaluates the spline at all the given x values. If an output
// array is given, the output is written to that array.
func (sp *Spline) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = sp.Eval(x)
	}
	return out[0]
}

// Diff computes the derivative of spline at the given point to the
// specified order.
func (sp *Spline) Diff(x float64, order int) float64 {
	x = sp.xs.clamp(x)
	i := sp.xs.search(x)
	dx := x - sp.xs.val(i)
	a, b, c, d := sp.coeffs[i].a, sp.coeffs[i].b, sp.coeffs[i].c, sp.coeffs[i].d
	switch order {
	case 0:
		return a*dx*dx*dx + b*dx*dx + c*dx + d
	case 1:
		return 3*a*dx*dx + 2*b*dx + c
	case 2:
		return 6*a*dx + 2*b
	case 3:
		return 6 * a
	default:
		return 0
	}
}

// calcY2s computes the second derivative at every point in the table. The
// boundaries are set to zero (natural spline).
func (sp *Spline) calcY2s() {
	n := sp.xs.n
	sp.y2s[0], sp.y2s[n-1] = 0, 0
	if n < 3 {
		return
	}

	as, bs := make([]float64, n-2), make([]float64, n-2)
	cs, rs := make([]float64, n-2), make([]float64, n-2)

	x, ys := sp.xs.val, sp.ys
	for i := range rs {
		// j indexes into xs and ys.
		j := i + 1

		as[i] = (x(j) - x(j-1)) / 6
		bs[i] = (x(j+1) - x(j-1)) / 3
		cs[i] = (x(j+1) - x(j)) / 6
		rs[i] = ((ys[j+1] - ys[j]) / (x(j+1) - x(j))) -
			((ys[j] - ys[j-1]) / (x(j) - x(j-1)))
	}

	TriDiagAt(as, bs, cs, rs, sp.y2s[1:n-1])
}

func (sp *Spline) calcCoeffs() {
	coeffs, x, ys, y2s := sp.coeffs, sp.xs.val, sp.ys, sp.y2s
	for i := range coeffs {
		h := x(i+1) - x(i)
		coeffs[i].a = (y2s[i+1] - y2s[i]) / (6 * h)
		coeffs[i].b = y2s[i] / 2
		coeffs[i].c = (ys[i+1]-ys[i])/h - h*(2*y2s[i]+y2s[i+1])/6
		coeffs[i].d = ys[i]
	}
}

// TriDiagAt solves the system of equations
//
// | b0 c0 ..    |   | out0 |   | r0 |
// | a1 b1 c1 .. |   | out1 |   | r1 |
// | ..          | * | ..   | = | .. |
// | ..    an bn |   | outn |   | rn |
//
// For out0 .. outn in place in the given slice.
func TriDiagAt(as, bs, cs, rs, out []float64) {
	if len(as) != len(bs) || len(as) != len(cs) ||
		len(as) != len(out) || len(as) != len(rs) {
		panic("Length of arguments to TriDiagAt are unequal.")
	}

	tmp := make([]float64, len(as))

	beta := bs[0]
	if beta == 0 {
		panic("TriDiagAt cannot solve given system.")
	}
	out[0] = rs[0] / beta

	for i := 1; i < len(out); i++ {
		tmp[i] = cs[i-1] / beta
		beta = bs[i] - as[i]*tmp[i]
		if beta == 0 {
			panic("TriDiagAt cannot solve given system.")
		}
		out[i] = (rs[i] - as[i]*out[i-1]) / beta
	}

	for i := len(out) - 2; i >= 0; i-- {
		out[i] -= tmp[i+1] * out[i+1]
	}
}
