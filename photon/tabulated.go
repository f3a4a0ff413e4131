package photon

import (
	"math"

	"gonum.org/v1/gonum/integrate"

	"github.com/phil-mansfield/nucprop/fault"
	"github.com/phil-mansfield/nucprop/math/interpolate"
)

// Tabulated is a photon background given on a grid of photon energies and,
// optionally, redshifts. Densities between grid points are interpolated
// linearly and densities outside the grid are clamped to its edge.
type Tabulated struct {
	Name string

	energies, densities []float64
	redshifts, scalings []float64

	intr1D  *interpolate.Linear
	intr2D  *interpolate.BiLinear
	scaling *interpolate.Linear
}

// NewTabulated creates a tabulated background. If redshifts is empty the
// background is redshift independent and densities holds one value per
// energy. Otherwise densities is energy-major: the density at energies[i] and
// redshifts[j] is densities[i*len(redshifts) + j].
//
// The slices are copied. A DataValidation error is returned if energies are
// not positive and strictly increasing, if a density is negative, if
// redshifts are not strictly increasing from exactly 0, or if a total density
// scaling factor comes out non-positive.
func NewTabulated(name string, energies, densities, redshifts []float64) (*Tabulated, error) {
	tab := &Tabulated{
		Name:      name,
		energies:  append([]float64{}, energies...),
		densities: append([]float64{}, densities...),
	}
	if len(redshifts) > 0 {
		tab.redshifts = append([]float64{}, redshifts...)
	}

	if err := tab.check(); err != nil {
		return nil, err
	}

	if !tab.IsRedshiftDependent() {
		tab.intr1D = interpolate.NewLinear(tab.energies, tab.densities)
		return tab, nil
	}

	tab.intr2D = interpolate.NewBiLinear(tab.energies, tab.redshifts, tab.densities)
	if err := tab.initRedshiftScaling(); err != nil {
		return nil, err
	}
	return tab, nil
}

// IsRedshiftDependent returns true if the background was given a redshift
// grid.
func (tab *Tabulated) IsRedshiftDependent() bool { return tab.redshifts != nil }

// Energies returns the energy grid. It must not be modified.
func (tab *Tabulated) Energies() []float64 { return tab.energies }

// Redshifts returns the redshift grid, nil for a redshift independent
// background. It must not be modified.
func (tab *Tabulated) Redshifts() []float64 { return tab.redshifts }

// Density returns the interpolated density at energy e and redshift z.
func (tab *Tabulated) Density(e, z float64) float64 {
	if tab.IsRedshiftDependent() {
		return tab.intr2D.Eval(e, z)
	}
	return tab.intr1D.Eval(e)
}

// RedshiftScaling returns 0 above the largest tabulated redshift, 1 below the
// smallest, and the interpolated ratio of the total density to its z = 0
// value otherwise. Redshift independent backgrounds always return 1.
func (tab *Tabulated) RedshiftScaling(z float64) float64 {
	if !tab.IsRedshiftDependent() {
		return 1
	}

	if z > tab.redshifts[len(tab.redshifts)-1] {
		return 0
	} else if z < tab.redshifts[0] {
		return 1
	}
	return tab.scaling.Eval(z)
}

func (tab *Tabulated) check() error {
	if len(tab.energies) < 2 {
		return fault.DataValidation(
			"%s: photon energy input has %d values, need at least 2",
			tab.Name, len(tab.energies),
		)
	}

	nz := 1
	if tab.IsRedshiftDependent() {
		nz = len(tab.redshifts)
	}
	if len(tab.densities) != len(tab.energies)*nz {
		return fault.DataValidation(
			"%s: photon density input has %d values, but there are %d "+
				"energies and %d redshifts",
			tab.Name, len(tab.densities), len(tab.energies), nz,
		)
	}

	prev := 0.0
	for i, e := range tab.energies {
		if !(e > 0) || math.IsInf(e, 0) {
			return fault.DataValidation(
				"%s: photon energy %d, %g, is not positive", tab.Name, i, e,
			)
		} else if e <= prev {
			return fault.DataValidation(
				"%s: photon energies are not strictly increasing at %d",
				tab.Name, i,
			)
		}
		prev = e
	}

	for i, n := range tab.densities {
		if !(n >= 0) || math.IsInf(n, 0) {
			return fault.DataValidation(
				"%s: photon density %d, %g, is negative", tab.Name, i, n,
			)
		}
	}

	if !tab.IsRedshiftDependent() {
		return nil
	}

	if tab.redshifts[0] != 0 {
		return fault.DataValidation(
			"%s: redshift input must start with 0, not %g",
			tab.Name, tab.redshifts[0],
		)
	} else if len(tab.redshifts) < 2 {
		return fault.DataValidation(
			"%s: redshift input has %d values, need at least 2",
			tab.Name, len(tab.redshifts),
		)
	}
	for i := 1; i < len(tab.redshifts); i++ {
		if !(tab.redshifts[i] > tab.redshifts[i-1]) {
			return fault.DataValidation(
				"%s: redshifts are not strictly increasing at %d", tab.Name, i,
			)
		}
	}

	return nil
}

// initRedshiftScaling integrates each redshift row of the table over energy
// (trapezoid rule) and normalizes by the z = 0 row.
func (tab *Tabulated) initRedshiftScaling() error {
	nz := len(tab.redshifts)
	totals := make([]float64, nz)
	row := make([]float64, len(tab.energies))
	for j := range totals {
		for i := range row {
			row[i] = tab.densities[i*nz+j]
		}
		totals[j] = integrate.Trapezoidal(tab.energies, row)
	}

	tab.scalings = make([]float64, nz)
	for j := range totals {
		tab.scalings[j] = totals[j] / totals[0]
		if !(tab.scalings[j] > 0) || math.IsInf(tab.scalings[j], 0) {
			return fault.DataValidation(
				"%s: redshift scaling at z = %g is %g, must be positive",
				tab.Name, tab.redshifts[j], tab.scalings[j],
			)
		}
	}
	// Exact by construction, whatever rounding did above.
	tab.scalings[0] = 1

	tab.scaling = interpolate.NewLinear(tab.redshifts, tab.scalings)
	return nil
}
