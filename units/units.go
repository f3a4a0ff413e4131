/*package units defines the internal unit system used throughout nucprop.

All quantities are stored in SI base units: lengths in meters, energies in
joules, masses in kilograms, and temperatures in kelvin. Multiplying a number
by one of the constants below converts it into internal units, and dividing
converts it back out, e.g.

    e := 200 * units.EeV
    fmt.Println(e / units.EeV)
*/
package units

// Base units.
const (
	Meter    = 1.0
	Second   = 1.0
	Kilogram = 1.0
	Joule    = 1.0
	Kelvin   = 1.0
)

// Lengths.
const (
	CentiMeter = 1e-2 * Meter
	KiloMeter  = 1e3 * Meter

	Parsec = 3.0856775807e16 * Meter
	KPC    = 1e3 * Parsec
	MPC    = 1e6 * Parsec
	GPC    = 1e9 * Parsec
)

// Energies.
const (
	EV  = 1.602176487e-19 * Joule
	KeV = 1e3 * EV
	MeV = 1e6 * EV
	GeV = 1e9 * EV
	TeV = 1e12 * EV
	PeV = 1e15 * EV
	EeV = 1e18 * EV
)

// Physical constants.
const (
	CLight     = 2.99792458e8 * Meter / Second
	HPlanck    = 6.62606896e-34 * Joule * Second
	KBoltzmann = 1.3806503e-23 * Joule / Kelvin

	AMU         = 1.660538921e-27 * Kilogram
	MassProton  = 1.67262158e-27 * Kilogram
	MassNeutron = 1.67492735e-27 * Kilogram
)

// Rest energies in GeV, the unit of the photopion kinematics tables.
const (
	ProtonMassGeV  = 0.93827
	NeutronMassGeV = 0.93947
)
