/*package nucprop sets up and runs the propagation of nuclei through photon
backgrounds from a [Run] configuration.
*/
package nucprop

import (
	"log"
	"math"
	"math/rand"

	"github.com/phil-mansfield/nucprop/disintegration"
	"github.com/phil-mansfield/nucprop/io"
	"github.com/phil-mansfield/nucprop/particle"
	"github.com/phil-mansfield/nucprop/photon"
	"github.com/phil-mansfield/nucprop/propagation"
	"github.com/phil-mansfield/nucprop/units"
)

var _ propagation.Interaction = &disintegration.Module{}

// Simulation holds everything needed to run a configuration.
type Simulation struct {
	Config    *io.RunConfig
	Module    *disintegration.Module
	Scheduler *propagation.Scheduler
	// Field is the tabulated photon field scaling the disintegration
	// rates, nil if none was configured.
	Field *photon.Tabulated

	log bool
}

// NewSimulation loads the data tables named by con and builds the scheduler.
// con must already have been checked.
func NewSimulation(con *io.RunConfig, logFlag bool) (*Simulation, error) {
	sim := &Simulation{Config: con, log: logFlag}

	bg, err := disintegration.ParseBackground(con.Background)
	if err != nil {
		return nil, err
	}
	in, err := disintegration.ParseInterpolation(con.RateInterpolation)
	if err != nil {
		return nil, err
	}
	opts := disintegration.Options{Interpolation: in}

	if con.ValidPhotonField() {
		sim.Field, err = photon.LoadTabulated(
			con.DataDir, con.PhotonField, con.PhotonFieldRedshift,
		)
		if err != nil {
			return nil, err
		}
		opts.Field = sim.Field
		if sim.log {
			log.Printf(
				"Loaded photon field %s: %d energies, %d redshifts",
				sim.Field.Name, len(sim.Field.Energies()),
				len(sim.Field.Redshifts()),
			)
		}
	}

	sim.Module, err = disintegration.New(bg, con.DataDir, opts)
	if err != nil {
		return nil, err
	}
	if sim.log {
		log.Printf(
			"Loaded %s: %d channels of %d nuclides", sim.Module.Name(),
			sim.Module.Table().Len(), sim.Module.Table().Nuclides(),
		)
	}

	conds := []propagation.Condition{
		&propagation.MinimumEnergy{Energy: con.MinEnergy * units.EeV},
		&propagation.MaximumTrajectoryLength{Length: con.MaxTrajectory * units.MPC},
	}
	if con.ValidSphereRadius() {
		conds = append(conds, &propagation.SphericalBoundary{
			Radius: con.SphereRadius * units.MPC,
		})
	}

	sim.Scheduler = propagation.NewScheduler(
		&propagation.Rectilinear{MaxStep: con.Step * units.MPC}, conds, sim.Module,
	)
	sim.Scheduler.Seed = con.Seed
	sim.Scheduler.MaxSteps = con.MaxSteps
	if con.ValidThreads() {
		sim.Scheduler.Workers = con.Threads
	}
	sim.Scheduler.Log(logFlag)

	return sim, nil
}

// Candidates returns the injected nuclei: all start at the origin with the
// configured nucleus, energy and redshift, and move in isotropically
// distributed directions drawn from a generator seeded with Seed.
func (sim *Simulation) Candidates() []*particle.Candidate {
	con := sim.Config
	rng := rand.New(rand.NewSource(con.Seed))
	id := particle.NucleusID(con.MassNumber, con.ChargeNumber)

	cs := make([]*particle.Candidate, con.Candidates)
	for i := range cs {
		s := particle.State{
			ID:        id,
			Energy:    con.Energy * units.EeV,
			Direction: isotropic(rng),
		}
		cs[i] = sim.Scheduler.NewCandidate(s, con.Redshift)
	}
	return cs
}

// Run propagates Candidates(). If traj is non-nil every step is written to
// it.
func (sim *Simulation) Run(traj *io.TrajectoryOutput) (*io.FinalOutput, error) {
	if traj != nil {
		sim.Scheduler.Observer = traj.Observe
	}

	finished, stats := sim.Scheduler.Run(sim.Candidates())
	if sim.log {
		log.Printf(
			"Finished %d candidates (%d secondaries) in %d steps, %d detected",
			stats.Candidates, stats.Secondaries, stats.Steps, stats.Detected,
		)
	}

	if traj != nil {
		if err := traj.Flush(); err != nil {
			return nil, err
		}
	}
	return io.NewFinalOutput(finished, stats), nil
}

func isotropic(rng *rand.Rand) particle.Vec3 {
	cosTheta := 2*rng.Float64() - 1
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
	phi := 2 * math.Pi * rng.Float64()
	return particle.Vec3{
		sinTheta * math.Cos(phi), sinTheta * math.Sin(phi), cosTheta,
	}
}
