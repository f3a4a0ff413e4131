package photopion

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/nucprop/fault"
	"github.com/phil-mansfield/nucprop/units"
)

func TestCrossSectionThreshold(t *testing.T) {
	for _, isProton := range []bool{true, false} {
		m := Mass(isProton)
		xth := (ThresholdS - m*m) / (2 * m)

		for _, x := range []float64{0, 0.01, 0.1, xth * 0.999} {
			assert.Equal(t, 0.0, CrossSection(x, isProton),
				"x = %g, proton = %v", x, isProton)
		}
		assert.True(t, CrossSection(xth*1.01, isProton) >= 0)
	}
}

func TestCrossSectionShape(t *testing.T) {
	table := []struct {
		x        float64
		isProton bool
		lo, hi   float64
	}{
		// Delta resonance.
		{0.34, true, 300, 1000},
		{0.34, false, 300, 1000},
		// Above the resonance region only the continuum is left.
		{100, true, 50, 300},
		{1e4, false, 50, 500},
	}

	for i, test := range table {
		sigma := CrossSection(test.x, test.isProton)
		assert.True(t, sigma > test.lo && sigma < test.hi,
			"%d) sigma(%g) = %g, expected in (%g, %g)",
			i, test.x, sigma, test.lo, test.hi)
	}

	// The cross section never goes negative.
	for x := 0.15; x < 20; x *= 1.05 {
		assert.True(t, CrossSection(x, true) >= 0, "x = %g", x)
		assert.True(t, CrossSection(x, false) >= 0, "x = %g", x)
	}
}

func TestTurnOn(t *testing.T) {
	assert.Equal(t, 0.0, turnOn(0.1, 0.15, 0.38))
	assert.InDelta(t, 0.5, turnOn(0.34, 0.15, 0.38), 1e-12)
	assert.Equal(t, 1.0, turnOn(1, 0.15, 0.38))

	assert.Panics(t, func() { turnOn(math.NaN(), 0.15, 0.38) })
}

func TestNewSampler(t *testing.T) {
	for _, bg := range []Background{CMB, IRB} {
		s, err := NewSampler(bg)
		require.NoError(t, err)
		assert.Equal(t, bg, s.Background())
	}

	for _, bg := range []Background{0, 3, -1} {
		s, err := NewSampler(bg)
		assert.Nil(t, s)
		assert.True(t, errors.Is(err, fault.ErrConfiguration), "%v", err)
	}

	var s Sampler
	_, err := s.Sample(rand.New(rand.NewSource(1)), true, 1e20*units.EV, 0)
	assert.True(t, errors.Is(err, fault.ErrConfiguration), "%v", err)
}

func TestSampleBelowThreshold(t *testing.T) {
	s, err := NewSampler(CMB)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))

	lo, hi := s.Bounds(true, 1e18*units.EV, 0)
	assert.True(t, lo > hi)

	for i := 0; i < 100; i++ {
		eps, err := s.Sample(rng, true, 1e18*units.EV, 0)
		require.NoError(t, err)
		require.Equal(t, 0.0, eps)
	}

	// Below the rest mass there is nothing to sample either.
	eps, err := s.Sample(rng, false, 0.5*units.GeV, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, eps)
}

func TestSampleInBounds(t *testing.T) {
	table := []struct {
		bg       Background
		isProton bool
		energy   float64
		z        float64
		n        int
	}{
		{CMB, true, 1e20 * units.EV, 0, 200},
		{CMB, false, 3e20 * units.EV, 0.5, 200},
		{IRB, true, 1e20 * units.EV, 0, 200},
		{IRB, false, 1e19 * units.EV, 1, 200},
	}

	rng := rand.New(rand.NewSource(7))
	for i, test := range table {
		s, err := NewSampler(test.bg)
		require.NoError(t, err)

		lo, hi := s.Bounds(test.isProton, test.energy, test.z)
		require.True(t, lo < hi, "%d) [%g, %g]", i, lo, hi)
		lo, hi = lo*(1-1e-9), hi*(1+1e-9)

		for j := 0; j < test.n; j++ {
			eps, err := s.Sample(rng, test.isProton, test.energy, test.z)
			require.NoError(t, err)
			require.True(t, eps >= lo && eps <= hi,
				"%d) %s: eps = %g not in [%g, %g]", i, test.bg, eps, lo, hi)
		}
	}
}

func TestSampleIRBNoPhotons(t *testing.T) {
	s, err := NewSampler(IRB)
	require.NoError(t, err)

	eps, err := s.Sample(rand.New(rand.NewSource(3)), true, 1e20*units.EV, 6)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, eps)
}

func TestProbability(t *testing.T) {
	s, err := NewSampler(CMB)
	require.NoError(t, err)

	e := 1e20 * units.EV
	lo, hi := s.Bounds(true, e, 0)
	mid := math.Sqrt(lo * hi)
	assert.True(t, s.Probability(mid, true, e, 0) > 0)
	assert.Equal(t, 0.0, s.Probability(0, true, e, 0))

	var unset Sampler
	assert.Equal(t, 0.0, unset.Probability(mid, true, e, 0))
}

func TestGauss16(t *testing.T) {
	table := []struct {
		f    func(float64) float64
		a, b float64
		val  float64
	}{
		{func(x float64) float64 { return 1 }, 0, 3, 3},
		{func(x float64) float64 { return x * x }, -1, 2, 3},
		{func(x float64) float64 { return math.Pow(x, 7) }, 0, 1, 0.125},
		{math.Sin, 0, math.Pi, 2},
		{math.Exp, 0, 1, math.E - 1},
		{math.Exp, 1.5, 1.5, 0},
		{math.Exp, 2, 1, 0},
	}

	for i, test := range table {
		assert.InDelta(t, test.val, gauss16(test.f, test.a, test.b), 1e-10, "%d)", i)
	}
}

func TestCMBEnvelope(t *testing.T) {
	s, err := NewSampler(CMB)
	require.NoError(t, err)

	for _, z := range []float64{0, 1, 3} {
		for _, lgE := range []float64{19, 19.5, 20, 20.5, 21, 22} {
			eGeV := math.Pow(10, lgE) / 1e9
			lo, hi := s.bounds(true, eGeV, z)
			if !(lo < hi) {
				continue
			}
			norm, pMax := s.cmbEnvelope(true, eGeV, z, lo, hi)
			require.True(t, norm > 0)

			grid := append(
				floats.Span(make([]float64, 2001), lo, hi),
				floats.LogSpan(make([]float64, 2001), lo, hi)...,
			)
			for _, eps := range grid {
				w := s.probEps(eps, true, eGeV, z) / norm
				require.True(t, w <= pMax,
					"z = %g, E = 1e%g eV: w(%g) = %g > %g", z, lgE, eps, w, pMax)
			}
		}
	}
}

func TestSampleCMBDistribution(t *testing.T) {
	s, err := NewSampler(CMB)
	require.NoError(t, err)

	table := []struct {
		lgE, z float64
		seed   int64
	}{
		{20, 0, 11},
		{19, 1, 12},
		{19.5, 3, 13},
	}

	n, bins := 10000, 20
	for _, test := range table {
		e := math.Pow(10, test.lgE) * units.EV
		eGeV := e / units.GeV
		lo, hi := s.bounds(true, eGeV, test.z)
		require.True(t, lo < hi)

		// Expected fraction in each bin.
		edges := floats.Span(make([]float64, bins+1), lo, hi)
		fracs := make([]float64, bins)
		for k := range fracs {
			fracs[k] = gauss16(func(eps float64) float64 {
				return s.probEps(eps, true, eGeV, test.z)
			}, edges[k], edges[k+1])
		}
		floats.Scale(1/floats.Sum(fracs), fracs)

		counts := make([]float64, bins)
		rng := rand.New(rand.NewSource(test.seed))
		for i := 0; i < n; i++ {
			eps, err := s.Sample(rng, true, e, test.z)
			require.NoError(t, err)
			k := int((eps/units.EV - lo) / (hi - lo) * float64(bins))
			if k == bins {
				k--
			}
			counts[k]++
		}

		// Bins expecting fewer than 5 draws are pooled.
		chi2, poolExp, poolObs := 0.0, 0.0, 0.0
		for k := range counts {
			exp := fracs[k] * float64(n)
			if exp < 5 {
				poolExp += exp
				poolObs += counts[k]
				continue
			}
			chi2 += (counts[k] - exp) * (counts[k] - exp) / exp
		}
		if poolExp > 0 {
			chi2 += (poolObs - poolExp) * (poolObs - poolExp) / math.Max(poolExp, 1)
		}
		assert.True(t, chi2 < 55, "E = 1e%g eV, z = %g: chi^2 = %g",
			test.lgE, test.z, chi2)
	}
}

// spikes is nonzero only on the grid which sampleIRB uses to bound the
// density, so every proposal is rejected.
type spikes struct {
	lo, de float64
}

func (sp spikes) Density(e, z float64) float64 {
	k := math.Log(e/units.EV/sp.lo) / sp.de
	if math.Abs(k-math.Round(k)) < 1e-11 {
		return 1
	}
	return 0
}

func (sp spikes) RedshiftScaling(z float64) float64 { return 1 }

func TestSampleIRBExhausted(t *testing.T) {
	e := 1e20 * units.EV
	s := &Sampler{bg: IRB}
	lo, hi := s.bounds(true, e/units.GeV, 0)
	bins := int(10*math.Log(hi/lo)) + 1
	s.field = spikes{lo: lo, de: math.Log(hi/lo) / float64(bins)}

	eps, err := s.Sample(rand.New(rand.NewSource(5)), true, e, 0)
	assert.Equal(t, 0.0, eps)
	assert.True(t, errors.Is(err, fault.ErrExhausted))
	assert.False(t, fault.IsFatal(err))
}

func BenchmarkSampleCMB(b *testing.B) {
	s, _ := NewSampler(CMB)
	rng := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Sample(rng, true, 1e20*units.EV, 0)
	}
}
