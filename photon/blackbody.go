package photon

import (
	"math"

	"github.com/phil-mansfield/nucprop/units"
)

// CMBTemperature is the present day temperature of the cosmic microwave
// background.
const CMBTemperature = 2.73 * units.Kelvin

// Blackbody is a thermal photon background with a fixed temperature.
type Blackbody struct {
	Name        string
	Temperature float64
}

// NewBlackbody returns a blackbody background at temperature t (kelvin).
func NewBlackbody(name string, t float64) *Blackbody {
	return &Blackbody{Name: name, Temperature: t}
}

// CMB returns the cosmic microwave background at z = 0.
func CMB() *Blackbody { return NewBlackbody("CMB", CMBTemperature) }

// Density returns 8 pi (e / (h c))^3 / (exp(e / (k T)) - 1). The redshift is
// ignored: the temperature is not rescaled.
func (bb *Blackbody) Density(e, z float64) float64 {
	x := e / (units.HPlanck * units.CLight)
	return 8 * math.Pi * x * x * x /
		math.Expm1(e/(units.KBoltzmann*bb.Temperature))
}

// RedshiftScaling always returns 1.
func (bb *Blackbody) RedshiftScaling(z float64) float64 { return 1 }
