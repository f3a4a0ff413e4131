package photon

import (
	"math"

	"github.com/phil-mansfield/nucprop/math/interpolate"
	"github.com/phil-mansfield/nucprop/units"
)

const (
	primackMaxRedshift = 5.0
	// nW m^-2 sr^-1 -> eV cm^-3
	primackFluxConversion = 3.82182e3
)

// log10 of the wavelength (micrometers) and of the intensity
// (nW m^-2 sr^-1) of the infrared background model of Primack et al. (1999).
var (
	primackLogLambda = []float64{
		-1.0, -0.75, -0.5, -0.25, 0.0, 0.25, 0.5, 0.75,
		1.0, 1.25, 1.5, 1.75, 2.0, 2.25, 2.5,
	}
	primackLogFlux = []float64{
		-0.214401, 0.349313, 0.720354, 0.890389, 1.16042, 1.24692, 1.06525,
		0.668659, 0.536312, 0.595859, 0.457456, 0.623521, 1.20208, 1.33657,
		1.04461,
	}
)

// PrimackIRB is the infrared background of Primack et al. (1999) with
// (1 + z)^4 intensity evolution up to z = 5 and no photons beyond.
//
// Below the shortest tabulated wavelength the density is zero and beyond the
// longest it is extrapolated along the last table segment.
type PrimackIRB struct {
	logFlux *interpolate.Linear
}

// NewPrimackIRB returns the Primack et al. (1999) infrared background.
func NewPrimackIRB() *PrimackIRB {
	return &PrimackIRB{
		logFlux: interpolate.NewLinear(primackLogLambda, primackLogFlux),
	}
}

// Density returns eps dn/deps in m^-3.
func (irb *PrimackIRB) Density(e, z float64) float64 {
	eps := e / units.EV
	n := irb.spectral(eps, z) // cm^-3 eV^-1
	return n * eps / math.Pow(units.CentiMeter, 3)
}

// RedshiftScaling returns (1+z)^3 up to z = 5 and 0 beyond: intensities grow
// as (1+z)^4 while each photon's energy grows by one power of (1+z).
func (irb *PrimackIRB) RedshiftScaling(z float64) float64 {
	if z > primackMaxRedshift {
		return 0
	}
	return math.Pow(1+z, 3)
}

// spectral returns dn/deps in cm^-3 eV^-1 at a photon energy in eV.
func (irb *PrimackIRB) spectral(eps, z float64) float64 {
	if z > primackMaxRedshift || eps <= 0 {
		return 0
	}

	// Wavelength in micrometers, hc = 1.2398 eV um.
	x := 1.2398 * (1 + z) / eps
	if x > 500 {
		return 0
	}

	lx := math.Log10(x)
	n := len(primackLogLambda)
	var lf float64
	switch {
	case lx <= primackLogLambda[0]:
		return 0
	case lx >= primackLogLambda[n-1]:
		x1, x2 := primackLogLambda[n-2], primackLogLambda[n-1]
		y1, y2 := primackLogFlux[n-2], primackLogFlux[n-1]
		lf = (y2-y1)/(x2-x1)*(lx-x1) + y1
	default:
		lf = irb.logFlux.Eval(lx)
	}

	return math.Pow(10, lf) * math.Pow(1+z, 4) / (eps * eps) /
		primackFluxConversion
}
