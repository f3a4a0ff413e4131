package io

import (
	"encoding/csv"
	"io"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/phil-mansfield/nucprop/particle"
	"github.com/phil-mansfield/nucprop/propagation"
	"github.com/phil-mansfield/nucprop/units"
)

// TrajectoryHeader names the columns written by TrajectoryOutput.
var TrajectoryHeader = []string{
	"D_Mpc", "ID", "E_EeV", "X_Mpc", "Y_Mpc", "Z_Mpc", "Px", "Py", "Pz",
}

// TrajectoryOutput writes one CSV line per observed step. It can be used
// from several goroutines at once.
type TrajectoryOutput struct {
	mu  sync.Mutex
	w   *csv.Writer
	row []string
	err error
}

// NewTrajectoryOutput writes the header to w and returns the output.
func NewTrajectoryOutput(w io.Writer) (*TrajectoryOutput, error) {
	out := &TrajectoryOutput{
		w:   csv.NewWriter(w),
		row: make([]string, len(TrajectoryHeader)),
	}
	if err := out.w.Write(TrajectoryHeader); err != nil {
		return nil, err
	}
	return out, nil
}

// Observe writes the current state of c. It has the signature of a
// propagation.Observer. The first write error is kept and returned by Flush.
func (out *TrajectoryOutput) Observe(c *particle.Candidate) {
	out.mu.Lock()
	defer out.mu.Unlock()
	if out.err != nil {
		return
	}

	s := &c.Current
	out.row[0] = formatFloat(c.TrajectoryLength / units.MPC)
	out.row[1] = strconv.Itoa(int(s.ID))
	out.row[2] = formatFloat(s.Energy / units.EeV)
	for i := 0; i < 3; i++ {
		out.row[3+i] = formatFloat(s.Position[i] / units.MPC)
		out.row[6+i] = formatFloat(s.Direction[i])
	}
	out.err = out.w.Write(out.row)
}

// Flush writes buffered lines and returns the first error encountered.
func (out *TrajectoryOutput) Flush() error {
	out.mu.Lock()
	defer out.mu.Unlock()
	if out.err != nil {
		return out.err
	}
	out.w.Flush()
	return out.w.Error()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', 8, 64)
}

// CandidateRecord is the final state of a candidate in the units used by
// configuration files: EeV and Mpc.
type CandidateRecord struct {
	ID               int        `yaml:"id"`
	MassNumber       int        `yaml:"mass_number"`
	ChargeNumber     int        `yaml:"charge_number"`
	Energy           float64    `yaml:"energy_eev"`
	InitialID        int        `yaml:"initial_id"`
	InitialEnergy    float64    `yaml:"initial_energy_eev"`
	TrajectoryLength float64    `yaml:"trajectory_mpc"`
	Position         [3]float64 `yaml:"position_mpc,flow"`
	Redshift         float64    `yaml:"redshift"`
	Steps            int        `yaml:"steps"`
	Detected         bool       `yaml:"detected"`
}

// FinalOutput is the YAML document written at the end of a run.
type FinalOutput struct {
	Stats      propagation.Stats `yaml:"stats"`
	Candidates []CandidateRecord `yaml:"candidates"`
}

// NewFinalOutput converts finished candidates into records.
func NewFinalOutput(finished []*particle.Candidate, stats propagation.Stats) *FinalOutput {
	out := &FinalOutput{
		Stats:      stats,
		Candidates: make([]CandidateRecord, len(finished)),
	}
	for i, c := range finished {
		rec := &out.Candidates[i]
		rec.ID = int(c.Current.ID)
		rec.MassNumber = c.Current.MassNumber()
		rec.ChargeNumber = c.Current.ChargeNumber()
		rec.Energy = c.Current.Energy / units.EeV
		rec.InitialID = int(c.Initial.ID)
		rec.InitialEnergy = c.Initial.Energy / units.EeV
		rec.TrajectoryLength = c.TrajectoryLength / units.MPC
		for k := 0; k < 3; k++ {
			rec.Position[k] = c.Current.Position[k] / units.MPC
		}
		rec.Redshift = c.Redshift
		rec.Steps = c.Steps
		rec.Detected = c.Detected
	}
	return out
}

// Write encodes out as YAML.
func (out *FinalOutput) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}

// ReadFinalOutput decodes a document written by FinalOutput.Write.
func ReadFinalOutput(r io.Reader) (*FinalOutput, error) {
	out := &FinalOutput{}
	if err := yaml.NewDecoder(r).Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}
