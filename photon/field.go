/*package photon models the diffuse photon backgrounds which cosmic ray nuclei
interact with.

A Field reports the photon density at a given photon energy and redshift,
expressed as eps dn/deps: the number of photons per unit volume (m^-3) per
logarithmic energy interval. Energies are in internal units (joules).

Fields are immutable after construction and safe for concurrent use.
*/
package photon

import (
	"math"

	"github.com/phil-mansfield/nucprop/units"
)

// Field is a photon background.
type Field interface {
	// Density returns eps dn/deps in m^-3 at photon energy e and redshift z.
	Density(e, z float64) float64
	// RedshiftScaling returns the total density at redshift z relative to
	// the total density at z = 0.
	RedshiftScaling(z float64) float64
}

var (
	_ Field = &Tabulated{}
	_ Field = &Blackbody{}
	_ Field = &PrimackIRB{}
)

// SpectralDensity converts the density of f into dn/deps in cm^-3 eV^-1 at a
// photon energy epsEV given in eV, the unit system of the photopion sampling
// tables.
func SpectralDensity(f Field, epsEV, z float64) float64 {
	if epsEV <= 0 {
		return 0
	}
	n := f.Density(epsEV*units.EV, z) / epsEV
	return n * math.Pow(units.CentiMeter, 3)
}
