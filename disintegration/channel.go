package disintegration

import (
	"github.com/phil-mansfield/nucprop/fault"
	"github.com/phil-mansfield/nucprop/particle"
)

// Species indexes the particles a disintegration can emit. The order is the
// digit order of a Channel, most significant digit first.
type Species int

const (
	Neutrons Species = iota
	Protons
	Deuterons
	Tritons
	Helium3s
	Helium4s
	SpeciesCount
)

// Emitted holds the particle ID of every species.
var Emitted = [SpeciesCount]particle.ID{
	particle.Neutron, particle.Proton, particle.Deuteron,
	particle.Triton, particle.Helium3, particle.Helium4,
}

// Counts is the number of particles of each species emitted in a
// disintegration.
type Counts [SpeciesCount]int

// Channel is a disintegration outcome packed into six decimal digits:
// neutrons, protons, deuterons, tritons, helium-3 and helium-4 from the most
// significant digit to the least. 000001 emits a single alpha particle and
// 200000 emits two neutrons.
type Channel int

// digitPlaces[s] is the place value of species s in a Channel.
var digitPlaces = [SpeciesCount]int{100000, 10000, 1000, 100, 10, 1}

// Encode packs counts into a Channel. Every count must be a single digit.
func Encode(counts Counts) (Channel, error) {
	ch := 0
	for s, n := range counts {
		if n < 0 || n > 9 {
			return 0, fault.DataValidation(
				"cannot encode %d %s into a disintegration channel",
				n, Species(s),
			)
		}
		ch += n * digitPlaces[s]
	}
	return Channel(ch), nil
}

// Counts unpacks the channel.
func (ch Channel) Counts() Counts {
	var counts Counts
	for s, place := range digitPlaces {
		counts[s] = (int(ch) / place) % 10
	}
	return counts
}

// DeltaA returns the change in the parent's mass number, i.e. minus the mass
// number of everything emitted.
func (c Counts) DeltaA() int {
	dA := 0
	for s, n := range c {
		dA -= n * Emitted[s].MassNumber()
	}
	return dA
}

// DeltaZ returns the change in the parent's charge number.
func (c Counts) DeltaZ() int {
	dZ := 0
	for s, n := range c {
		dZ -= n * Emitted[s].ChargeNumber()
	}
	return dZ
}

// Total returns the number of emitted particles.
func (c Counts) Total() int {
	sum := 0
	for _, n := range c {
		sum += n
	}
	return sum
}

// check returns a DataValidation error unless ch is a non-empty channel that
// a nucleus with charge number z and neutron number n can undergo.
func (ch Channel) check(z, n int) error {
	if ch <= 0 || ch > 999999 {
		return fault.DataValidation(
			"disintegration channel %06d of (Z=%d, N=%d) is not six digits",
			int(ch), z, n,
		)
	}

	counts := ch.Counts()
	dA, dZ := counts.DeltaA(), counts.DeltaZ()
	switch {
	case -dZ > z:
		return fault.DataValidation(
			"disintegration channel %06d emits %d protons from (Z=%d, N=%d)",
			int(ch), -dZ, z, n,
		)
	case -(dA - dZ) > n:
		return fault.DataValidation(
			"disintegration channel %06d emits %d neutrons from (Z=%d, N=%d)",
			int(ch), -(dA - dZ), z, n,
		)
	}
	return nil
}

func (s Species) String() string {
	switch s {
	case Neutrons:
		return "neutrons"
	case Protons:
		return "protons"
	case Deuterons:
		return "deuterons"
	case Tritons:
		return "tritons"
	case Helium3s:
		return "helium-3 nuclei"
	case Helium4s:
		return "helium-4 nuclei"
	}
	return "unknown species"
}
