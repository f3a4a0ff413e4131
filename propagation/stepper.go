package propagation

import (
	"math"

	"github.com/phil-mansfield/nucprop/particle"
)

// Stepper moves a candidate along its trajectory.
type Stepper interface {
	// Step advances c by at most limit and returns the distance actually
	// travelled. It updates the position and trajectory length of c.
	Step(c *particle.Candidate, limit float64) float64
}

// Rectilinear moves candidates in straight lines with steps no longer than
// MaxStep.
type Rectilinear struct {
	MaxStep float64
}

// Step implements Stepper.
func (r *Rectilinear) Step(c *particle.Candidate, limit float64) float64 {
	step := math.Min(r.MaxStep, limit)
	if step < 0 {
		step = 0
	}
	c.Current.Position = c.Current.Position.Add(c.Current.Direction.Scale(step))
	c.TrajectoryLength += step
	return step
}

// Condition ends the propagation of candidates which meet some criterion.
// Conditions are run after every step.
type Condition interface {
	Process(c *particle.Candidate)
}

// StepLimiter is implemented by conditions which need to stop a candidate at
// a precise point. LimitStep is run before every step.
type StepLimiter interface {
	LimitStep(c *particle.Candidate)
}

// MinimumEnergy deactivates candidates whose energy falls below Energy.
type MinimumEnergy struct {
	Energy float64
}

func (me *MinimumEnergy) Process(c *particle.Candidate) {
	if c.Current.Energy < me.Energy {
		c.Deactivate()
	}
}

// MaximumTrajectoryLength deactivates candidates which have travelled Length
// and keeps steps from overshooting it.
type MaximumTrajectoryLength struct {
	Length float64
}

func (mt *MaximumTrajectoryLength) Process(c *particle.Candidate) {
	if c.TrajectoryLength >= mt.Length {
		c.Deactivate()
	}
}

func (mt *MaximumTrajectoryLength) LimitStep(c *particle.Candidate) {
	c.LimitNextStep(mt.Length - c.TrajectoryLength)
}

// SphericalBoundary detects and deactivates candidates which leave the sphere
// of the given radius around Center.
type SphericalBoundary struct {
	Center particle.Vec3
	Radius float64
}

func (sb *SphericalBoundary) Process(c *particle.Candidate) {
	if c.Current.Position.Sub(sb.Center).Norm() >= sb.Radius {
		c.Detected = true
		c.Deactivate()
	}
}

var (
	_ Stepper     = &Rectilinear{}
	_ Condition   = &MinimumEnergy{}
	_ Condition   = &MaximumTrajectoryLength{}
	_ StepLimiter = &MaximumTrajectoryLength{}
	_ Condition   = &SphericalBoundary{}
)
