/*package particle contains the particle states and propagation candidates
which the interaction modules act on.
*/
package particle

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/nucprop/units"
)

// Vec3 is a cartesian three-vector.
type Vec3 [3]float64

func (v Vec3) Add(u Vec3) Vec3 { return Vec3{v[0] + u[0], v[1] + u[1], v[2] + u[2]} }
func (v Vec3) Sub(u Vec3) Vec3 { return Vec3{v[0] - u[0], v[1] - u[1], v[2] - u[2]} }
func (v Vec3) Scale(a float64) Vec3 { return Vec3{a * v[0], a * v[1], a * v[2]} }
func (v Vec3) Dot(u Vec3) float64 { return v[0]*u[0] + v[1]*u[1] + v[2]*u[2] }
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Unit returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Unit() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Phi returns the azimuthal angle of v.
func (v Vec3) Phi() float64 { return math.Atan2(v[1], v[0]) }

// Theta returns the polar angle of v.
func (v Vec3) Theta() float64 {
	n := v.Norm()
	if n == 0 {
		return 0
	}
	return math.Acos(v[2] / n)
}

// State is the kinematic state of a single particle.
type State struct {
	ID        ID
	Energy    float64 // Kinetic energy in internal units.
	Position  Vec3
	Direction Vec3 // Unit length.
}

// MassNumber returns the mass number of the particle.
func (s *State) MassNumber() int { return s.ID.MassNumber() }

// ChargeNumber returns the charge number of the particle.
func (s *State) ChargeNumber() int { return s.ID.ChargeNumber() }

// Mass returns the rest mass of the particle, taken as A atomic mass units.
func (s *State) Mass() float64 {
	return float64(s.ID.MassNumber()) * units.AMU
}

// LorentzFactor returns E / (m c^2).
func (s *State) LorentzFactor() float64 {
	return s.Energy / (s.Mass() * units.CLight * units.CLight)
}

// SetLorentzFactor sets the energy so that LorentzFactor() returns gamma.
func (s *State) SetLorentzFactor(gamma float64) {
	s.Energy = gamma * s.Mass() * units.CLight * units.CLight
}

func (s State) String() string {
	return fmt.Sprintf(
		"%v, E = %g EeV, x = (%.3g, %.3g, %.3g) Mpc",
		s.ID, s.Energy/units.EeV, s.Position[0]/units.MPC,
		s.Position[1]/units.MPC, s.Position[2]/units.MPC,
	)
}
