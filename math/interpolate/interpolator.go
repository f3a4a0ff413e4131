/*package interpolate contains one and two dimensional interpolators over
tabulated data.

Every interpolator clamps its arguments to the tabulated range: evaluating
below the first grid point returns the value at the first grid point and
evaluating above the last grid point returns the value at the last one.
Interpolators are immutable after construction and are safe for concurrent
use.
*/
package interpolate

type Interpolator interface {
	Eval(x float64) float64
	EvalAll(xs []float64, out ...[]float64) []float64
}

var (
	_ Interpolator = &Spline{}
	_ Interpolator = &Linear{}
)
