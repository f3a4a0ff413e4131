package photopion

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/phil-mansfield/nucprop/fault"
	"github.com/phil-mansfield/nucprop/photon"
	"github.com/phil-mansfield/nucprop/units"
)

// Background selects the photon field a Sampler draws from.
type Background int

const (
	// CMB is the cosmic microwave background.
	CMB Background = 1
	// IRB is the infrared background of Primack et al. (1999).
	IRB Background = 2
)

const (
	// MaxIRBAttempts bounds the number of proposals in the IRB branch.
	MaxIRBAttempts = 100000

	// CMB photons above this many times the temperature (in eV per K) are
	// not considered.
	cmbCutoff = 0.007
	// Safety margin applied to the largest value found for the CMB
	// distribution.
	cmbEnvelope = 1.6
	// Number of points on the logarithmic grid searched for that value.
	cmbGridPoints = 64

	irbMinEps = 0.00395 // eV
	irbMaxEps = 12.2    // eV
	// Proposal power law index in the IRB branch.
	irbBeta = 4.0
)

func (bg Background) String() string {
	switch bg {
	case CMB:
		return "CMB"
	case IRB:
		return "IRB"
	}
	return fmt.Sprintf("Background(%d)", int(bg))
}

// Sampler draws the energy of the background photon which takes part in a
// photopion interaction. A Sampler is immutable and may be shared between
// goroutines as long as each goroutine supplies its own rand.Rand.
//
// The zero value is an unconfigured Sampler which returns a Configuration
// error from every call to Sample.
type Sampler struct {
	bg    Background
	field photon.Field
}

// NewSampler returns a Sampler for the given background. Only CMB and IRB
// are supported; anything else gives a Configuration error.
func NewSampler(bg Background) (*Sampler, error) {
	switch bg {
	case CMB:
		return &Sampler{bg, photon.CMB()}, nil
	case IRB:
		return &Sampler{bg, photon.NewPrimackIRB()}, nil
	}
	return nil, fault.Configuration(
		"photon field sampler background must be %s (%d) or %s (%d), not %d",
		CMB, int(CMB), IRB, int(IRB), int(bg),
	)
}

// Background returns the selected background.
func (s *Sampler) Background() Background { return s.bg }

// Sample returns the observer frame energy of a background photon drawn for
// a nucleon of total energy energy at redshift z. Energies are in internal
// units.
//
// If the interaction is kinematically forbidden the returned energy is 0 and
// the error is nil. If the IRB branch runs out of attempts the returned
// energy is 0 and the error wraps fault.ErrExhausted, which callers treat as
// no interaction.
func (s *Sampler) Sample(
	rng *rand.Rand, isProton bool, energy, z float64,
) (float64, error) {
	if s.field == nil {
		return 0, fault.Configuration(
			"photon field sampler used before a background was selected",
		)
	}

	eGeV := energy / units.GeV
	if eGeV <= Mass(isProton) {
		return 0, nil
	}

	lo, hi := s.bounds(isProton, eGeV, z)
	if lo > hi {
		return 0, nil
	}

	var eps float64
	switch s.bg {
	case CMB:
		eps = s.sampleCMB(rng, isProton, eGeV, z, lo, hi)
	case IRB:
		var err error
		if eps, err = s.sampleIRB(rng, z, lo, hi); err != nil {
			return 0, err
		}
	}
	return eps * units.EV, nil
}

// Bounds returns the range of photon energies which may be sampled for a
// nucleon of total energy energy at redshift z. The range is empty (lo > hi)
// when the pion production threshold cannot be reached.
func (s *Sampler) Bounds(isProton bool, energy, z float64) (lo, hi float64) {
	lo, hi = s.bounds(isProton, energy/units.GeV, z)
	return lo * units.EV, hi * units.EV
}

// Probability returns the unnormalized probability density that a photon of
// energy eps interacts with a nucleon of total energy energy at redshift z.
// Energies are in internal units.
func (s *Sampler) Probability(eps float64, isProton bool, energy, z float64) float64 {
	if s.field == nil {
		return 0
	}
	return s.probEps(eps/units.EV, isProton, energy/units.GeV, z)
}

// bounds works in eV (photons) and GeV (nucleons).
func (s *Sampler) bounds(isProton bool, eGeV, z float64) (lo, hi float64) {
	m := Mass(isProton)
	p := math.Sqrt(eGeV*eGeV - m*m)
	if math.IsNaN(p) {
		return 1, 0
	}
	head := (ThresholdS - m*m) / 2 / (eGeV + p) * 1e9

	switch s.bg {
	case CMB:
		return head, cmbCutoff * photon.CMBTemperature * (1 + z)
	case IRB:
		return math.Max(irbMinEps, head), irbMaxEps
	}
	return 1, 0
}

func (s *Sampler) sampleCMB(
	rng *rand.Rand, isProton bool, eGeV, z, lo, hi float64,
) float64 {
	prob := func(eps float64) float64 {
		return s.probEps(eps, isProton, eGeV, z)
	}
	norm, pMax := s.cmbEnvelope(isProton, eGeV, z, lo, hi)
	if !(norm > 0) {
		return 0
	}

	for {
		eps := lo + rng.Float64()*(hi-lo)
		if rng.Float64()*pMax <= prob(eps)/norm {
			return eps
		}
	}
}

// cmbEnvelope returns the integral of probEps over [lo, hi] and a constant
// which bounds probEps/norm everywhere on the interval. The bound is the
// larger of the value at the approximate peak and the largest value on a
// logarithmic grid, times cmbEnvelope.
func (s *Sampler) cmbEnvelope(isProton bool, eGeV, z, lo, hi float64) (norm, pMax float64) {
	prob := func(eps float64) float64 {
		return s.probEps(eps, isProton, eGeV, z)
	}
	norm = gauss16(prob, lo, hi)

	tbb := photon.CMBTemperature * (1 + z)
	kT := units.KBoltzmann * tbb / units.EV
	epsPeak := (3e-3*math.Pow(eGeV*kT*1e-9, -0.97) + 0.047) / 3.9e2 * tbb
	wMax := prob(epsPeak)

	// epsPeak follows T(1+z) but the density does not.
	grid := floats.LogSpan(make([]float64, cmbGridPoints), lo, hi)
	for _, eps := range grid {
		wMax = math.Max(wMax, prob(eps))
	}

	return norm, cmbEnvelope * wMax / norm
}

func (s *Sampler) sampleIRB(rng *rand.Rand, z, lo, hi float64) (float64, error) {
	// Bound eps^2 n(eps) on a logarithmic grid.
	bins := int(10*math.Log(hi/lo)) + 1
	de := math.Log(hi/lo) / float64(bins)
	rMax := 0.0
	for i := 0; i < bins; i++ {
		eps := lo * math.Exp(float64(i)*de)
		if r := eps * eps * photon.SpectralDensity(s.field, eps, z); r > rMax {
			rMax = r
		}
	}
	if rMax == 0 {
		return 0, nil
	}

	e1 := math.Pow(lo, 1-irbBeta)
	e2 := math.Pow(hi, 1-irbBeta)
	for i := 0; i < MaxIRBAttempts; i++ {
		eps := math.Pow(rng.Float64()*(e1-e2)+e2, 1/(1-irbBeta))
		r := eps * eps * photon.SpectralDensity(s.field, eps, z)
		if rng.Float64() < r/rMax {
			return eps, nil
		}
	}

	return 0, fault.Exhausted(
		"no IRB photon accepted after %d attempts at z = %g", MaxIRBAttempts, z,
	)
}

// probEps integrates the cross section over the reachable invariant masses
// and weights it by the photon density at eps (eV).
func (s *Sampler) probEps(eps float64, isProton bool, eGeV, z float64) float64 {
	n := photon.SpectralDensity(s.field, eps, z)
	if n == 0 {
		return 0
	}

	m := Mass(isProton)
	gamma := eGeV / m
	beta := math.Sqrt(1 - 1/gamma/gamma)
	sMax := math.Max(ThresholdS, m*m+2*eps/1e9*eGeV*(1+beta))
	sInt := gauss16(func(s float64) float64 {
		return functs(s, isProton)
	}, ThresholdS, sMax)

	return n / eps / eps * sInt / 8 / beta / eGeV / eGeV * 1e24
}

// gauss16 integrates f over [a, b] with the 16-point Gauss-Legendre rule.
func gauss16(f func(float64) float64, a, b float64) float64 {
	if !(b > a) {
		return 0
	}
	return quad.Fixed(f, a, b, 16, quad.Legendre{}, 0)
}

// functs is the integrand (s - m^2) sigma(s) of probEps.
func functs(s float64, isProton bool) float64 {
	m := Mass(isProton)
	factor := s - m*m
	return factor * CrossSection(factor/2/m, isProton)
}
