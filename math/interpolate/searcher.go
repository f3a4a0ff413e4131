package interpolate

import (
	"fmt"
	"sort"
)

// searcher locates the grid cell containing a point. Uniform grids are
// searched in O(1), general grids by bisection.
type searcher struct {
	xs      []float64
	x0, dx  float64
	n       int
	uniform bool
}

func (s *searcher) init(xs []float64) {
	if len(xs) < 2 {
		panic(fmt.Sprintf("Grid given to interpolator has length %d.", len(xs)))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			panic("Grid given to interpolator is not strictly increasing.")
		}
	}
	s.xs = xs
	s.n = len(xs)
	s.x0, s.dx = xs[0], xs[1]-xs[0]
	s.uniform = false
}

func (s *searcher) unifInit(x0, dx float64, n int) {
	if n < 2 {
		panic(fmt.Sprintf("Grid given to interpolator has length %d.", n))
	} else if dx <= 0 {
		panic(fmt.Sprintf("Grid given to interpolator has spacing %g.", dx))
	}
	s.xs = nil
	s.n = n
	s.x0, s.dx = x0, dx
	s.uniform = true
}

func (s *searcher) val(i int) float64 {
	if s.uniform {
		return s.x0 + float64(i)*s.dx
	}
	return s.xs[i]
}

func (s *searcher) min() float64 { return s.val(0) }
func (s *searcher) max() float64 { return s.val(s.n - 1) }

// clamp moves x onto the closest point of the grid's range.
func (s *searcher) clamp(x float64) float64 {
	if x < s.min() {
		return s.min()
	} else if x > s.max() {
		return s.max()
	}
	return x
}

// search returns the index of the lower edge of the cell containing x. x must
// already be clamped. The result is always in [0, n-2].
func (s *searcher) search(x float64) int {
	var i int
	if s.uniform {
		i = int((x - s.x0) / s.dx)
	} else {
		i = sort.SearchFloat64s(s.xs, x) - 1
		if i >= 0 && i+1 < s.n && s.xs[i+1] == x {
			i++
		}
	}

	if i < 0 {
		return 0
	} else if i > s.n-2 {
		return s.n - 2
	}
	return i
}
