package particle

import (
	"fmt"
)

// ID packs the charge number Z and mass number A of a nucleus into the
// nuclear code 10LZZZAAAI with L = I = 0, i.e. 1000000000 + 10000 Z + 10 A.
type ID int

const nucleusBase = 1000000000

// Commonly emitted particles.
var (
	Neutron  = NucleusID(1, 0)
	Proton   = NucleusID(1, 1)
	Deuteron = NucleusID(2, 1)
	Triton   = NucleusID(3, 1)
	Helium3  = NucleusID(3, 2)
	Helium4  = NucleusID(4, 2)
)

// NucleusID returns the code of the nucleus with mass number a and charge
// number z. It panics on an unphysical combination.
func NucleusID(a, z int) ID {
	if a < 1 || z < 0 || z > a || a > 999 {
		panic(fmt.Sprintf("No nucleus with A = %d and Z = %d.", a, z))
	}
	return ID(nucleusBase + 10000*z + 10*a)
}

// IsNucleus returns true if id is a nuclear code.
func (id ID) IsNucleus() bool { return id >= nucleusBase }

// MassNumber returns A.
func (id ID) MassNumber() int { return (int(id) / 10) % 1000 }

// ChargeNumber returns Z.
func (id ID) ChargeNumber() int { return (int(id) / 10000) % 1000 }

// NeutronNumber returns N = A - Z.
func (id ID) NeutronNumber() int { return id.MassNumber() - id.ChargeNumber() }

func (id ID) String() string {
	return fmt.Sprintf("%d(A=%d,Z=%d)", int(id), id.MassNumber(), id.ChargeNumber())
}
