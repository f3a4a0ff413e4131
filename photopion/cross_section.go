/*package photopion samples the background photons which take part in
photopion production on nucleons.

The total photon-nucleon cross section is the empirical parameterization used
by the SOPHIA event generator: nine Breit-Wigner resonances, direct single-
and double-pion production, and a high energy multipion, diffractive and
fragmentation continuum.
*/
package photopion

import (
	"math"

	"github.com/phil-mansfield/nucprop/fault"
	"github.com/phil-mansfield/nucprop/units"
)

const (
	// ThresholdS is the invariant mass squared (GeV^2) at the pion
	// production threshold.
	ThresholdS = 1.1646

	resonances = 9
	// Cross sections are in microbarn.
	resonanceNorm = 4.893089117
)

// resonance describes one Breit-Wigner peak.
type resonance struct {
	mass, bGamma, width, ratioJ float64
}

// Resonance tables for proton and neutron targets.
var (
	protonResonances = [resonances]resonance{
		{1.231, 5.6, 0.11, 1.0},
		{1.440, 0.5, 0.35, 0.5},
		{1.515, 4.6, 0.11, 1.0},
		{1.525, 2.5, 0.1, 0.5},
		{1.675, 1.0, 0.16, 0.5},
		{1.680, 2.1, 0.125, 1.5},
		{1.690, 2.0, 0.29, 1.0},
		{1.895, 0.2, 0.35, 1.5},
		{1.950, 1.0, 0.3, 2.0},
	}
	neutronResonances = [resonances]resonance{
		{1.231, 6.1, 0.11, 1.0},
		{1.440, 0.3, 0.35, 0.5},
		{1.515, 4.0, 0.11, 1.0},
		{1.525, 2.5, 0.1, 0.5},
		{1.675, 0.0, 0.16, 0.5},
		{1.675, 0.2, 0.150, 1.5},
		{1.690, 2.0, 0.29, 1.0},
		{1.895, 0.2, 0.35, 1.5},
		{1.950, 1.0, 0.3, 2.0},
	}
)

// Nucleon masses squared (GeV^2) as used by the resonance normalization.
const (
	protonMass2  = 0.880351
	neutronMass2 = 0.882792
)

// Mass returns the rest mass in GeV of a proton or a neutron.
func Mass(isProton bool) float64 {
	if isProton {
		return units.ProtonMassGeV
	}
	return units.NeutronMassGeV
}

// S returns the invariant mass squared (GeV^2) of a photon with energy x
// (GeV, nucleon rest frame) colliding with a nucleon.
func S(x float64, isProton bool) float64 {
	m := Mass(isProton)
	return m*m + 2*m*x
}

// CrossSection returns the total photon-nucleon cross section in microbarn
// for a photon of energy x (GeV) in the nucleon rest frame. It is zero below
// the pion production threshold.
func CrossSection(x float64, isProton bool) float64 {
	s := S(x, isProton)
	if s < ThresholdS {
		return 0
	}

	res, dir := 0.0, 0.0
	if x <= 10 {
		res = resonant(x, isProton)
		dir = direct(x)
	}

	return res + dir + continuum(x, s, isProton)
}

// resonant sums the Breit-Wigner peaks. The lowest resonance switches on
// over its own energy window.
func resonant(x float64, isProton bool) float64 {
	table, m2 := &protonResonances, protonMass2
	if !isProton {
		table, m2 = &neutronResonances, neutronMass2
	}

	sum := 0.0
	for i := range table {
		r := &table[i]
		sigma0 := resonanceNorm / m2 * r.ratioJ * r.bGamma
		bw := breitWigner(sigma0, r.width, r.mass, x, isProton)
		if i == 0 {
			sum += bw * turnOn(x, 0.152, 0.17)
		} else {
			sum += bw * turnOn(x, 0.15, 0.38)
		}
	}
	return sum
}

// direct returns single- and double-pion production. The single-pion piece
// has a bump and a dip between 0.1 and 0.6 GeV.
func direct(x float64) float64 {
	single := 92.7 * powerLaw(x, 0.152, 0.25, 2)
	if x > 0.1 && x < 0.6 {
		single += 40*math.Exp(-(x-0.29)*(x-0.29)/0.002) -
			15*math.Exp(-(x-0.37)*(x-0.37)/0.002)
	}
	double := 37.7 * powerLaw(x, 0.4, 0.6, 2)
	return single + double
}

// continuum returns the fragmentation term together with, above 0.85 GeV, the
// multipion and diffractive terms. Any shortfall of the fragmentation term
// after the diffractive correction is taken from the multipion term.
func continuum(x, s float64, isProton bool) float64 {
	frag := 60.2
	if isProton {
		frag = 80.3
	}
	frag *= turnOn(x, 0.5, 0.1) * math.Pow(s, -0.34)

	if x <= 0.85 {
		return frag
	}

	c := 26.4
	if isProton {
		c = 29.3
	}
	ss1 := (x - 0.85) / 0.69
	ss2 := c*math.Pow(s, -0.34) + 59.3*math.Pow(s, 0.095)
	multiDiff := (1 - math.Exp(-ss1)) * ss2
	multi := 0.89 * multiDiff
	diffr := 0.11 * multiDiff

	ss1 = math.Pow(x-0.85, 0.75) / 0.64
	ss2 = 74.1*math.Pow(x, -0.44) + 62*math.Pow(s, 0.08)
	tmp := 0.96 * (1 - math.Exp(-ss1)) * ss2
	diffr1 := 0.14 * tmp
	diffr2 := 0.013 * tmp

	delta := frag - (diffr1 + diffr2 - diffr)
	if delta < 0 {
		frag = 0
		multi += delta
	} else {
		frag = delta
	}
	if multi < 0 {
		multi = 0
	}

	return multi + diffr1 + diffr2 + frag
}

// powerLaw is the SOPHIA threshold shape function: zero below xth, peaking
// near xmax and falling as a power law with index alpha above it.
func powerLaw(x, xth, xmax, alpha float64) float64 {
	if xth > x {
		return 0
	}
	a := alpha * xmax / xth
	prod1 := math.Pow((x-xth)/(xmax-xth), a-alpha)
	prod2 := math.Pow(x/xmax, -a)
	return prod1 * prod2
}

// turnOn ramps linearly from 0 at th to 1 at th + w.
func turnOn(x, th, w float64) float64 {
	wth := w + th
	switch {
	case x <= th:
		return 0
	case x > th && x < wth:
		return (x - th) / w
	case x >= wth:
		return 1
	}
	fault.Internal("turnOn(%g, %g, %g) is outside of its domain", x, th, w)
	return 0
}

// breitWigner returns the resonance shape with peak cross section sigma0,
// width gamma and mass mRes at rest frame photon energy eps.
func breitWigner(sigma0, gamma, mRes, eps float64, isProton bool) float64 {
	s := S(eps, isProton)
	gam2s := gamma * gamma * s
	ds := s - mRes*mRes
	return sigma0 * (s / eps / eps) * gam2s / (ds*ds + gam2s)
}
