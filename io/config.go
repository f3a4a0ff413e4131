package io

import (
	"os"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/nucprop/disintegration"
	"github.com/phil-mansfield/nucprop/fault"
	"github.com/phil-mansfield/nucprop/photopion"
)

const (
	ExampleRunFile = `[Run]

#######################
# Required Parameters #
#######################

# Directory containing the data tables. The disintegration tables are read
# from DataDir/PhotoDisintegration/PDtable_<Background>.txt.
DataDir = path/to/data/dir

# The photon background the disintegration rates were computed for. Must be
# one of [ CMB | IRB | CMB_IRB ].
Background = CMB_IRB

# The injected nucleus. Iron-56 by default.
MassNumber = 56
ChargeNumber = 26

# Initial energy of each nucleus in EeV.
Energy = 100

# Number of nuclei to inject.
Candidates = 1000

# File which the final state of every candidate is written to as YAML.
Output = path/to/output.yaml

#######################
# Optional Parameters #
#######################

# Redshift of the source. Default is 0.
# Redshift = 0

# Interpolation of the rate curves between tabulated points. Must be one of
# [ Linear | Cubic ]. Default is Linear.
# RateInterpolation = Linear

# Seed of the random number generators. Worker i is seeded with Seed + i, so
# runs with the same Seed and Threads give identical results.
# Seed = 0

# Propagation parameters. Step is the largest step in Mpc, MinEnergy stops
# candidates below that energy in EeV, and MaxTrajectory stops them after
# that many Mpc. If SphereRadius is set, candidates which get SphereRadius
# Mpc away from the source are counted as detected.
# Step = 1
# MinEnergy = 1
# MaxTrajectory = 1000
# SphereRadius = 100

# Hard limit on the number of steps taken by a single candidate.
# MaxSteps = 1000000

# A tabulated photon field read from DataDir/<PhotonField>_photonEnergy.txt,
# DataDir/<PhotonField>_photonDensity.txt, and, if PhotonFieldRedshift is
# set, DataDir/<PhotonField>_redshift.txt. Its redshift evolution scales the
# disintegration rates.
# PhotonField = IRB_Kneiske04
# PhotonFieldRedshift = true

# Writes a line for every step of every candidate to a CSV file.
# TrajectoryFile = path/to/trajectories.csv

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`
	ExamplePlotFile = `[Plot]

#######################
# Required Parameters #
#######################

# Directory containing the data tables.
DataDir = path/to/data/dir

# Directory which the plots will be written to.
Output = path/to/plot/dir

#######################
# Optional Parameters #
#######################

# Background of the disintegration table to plot. Default is CMB.
# Background = CMB

# Nucleus whose disintegration rates are plotted. Default is iron-56.
# MassNumber = 56
# ChargeNumber = 26

# Background used by the photopion sampler. Must be one of [ CMB | IRB ].
# Default is CMB.
# PhotopionBackground = CMB

# Proton energy in EeV and redshift at which photon energies are sampled.
# Energy = 100
# Redshift = 0

# Number of photon energies to sample.
# Samples = 100000

# Seed = 0

# Same meanings as in [Run].
# PhotonField = IRB_Kneiske04
# PhotonFieldRedshift = true
# ProfileFile = prof.out
# LogFile = log.out`
)

type SharedConfig struct {
	// Required
	DataDir, Output string
	// Optional
	LogFile, ProfileFile string
	PhotonField         string
	PhotonFieldRedshift bool
	Seed                int64
}

func (con *SharedConfig) ValidDataDir() bool {
	info, err := os.Stat(con.DataDir)
	return con.DataDir != "" && err == nil && info.IsDir()
}
func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}
func (con *SharedConfig) ValidPhotonField() bool {
	return con.PhotonField != ""
}

type RunConfig struct {
	SharedConfig

	// Required
	Background               string
	MassNumber, ChargeNumber int
	Energy                   float64
	Candidates               int

	// Optional
	Redshift          float64
	RateInterpolation string
	Threads           int
	Step, MinEnergy   float64
	MaxTrajectory     float64
	SphereRadius      float64
	MaxSteps          int
	TrajectoryFile    string
}

type RunWrapper struct {
	Run RunConfig
}

func DefaultRunWrapper() *RunWrapper {
	con := RunConfig{}
	con.MassNumber = 56
	con.ChargeNumber = 26
	con.RateInterpolation = "Linear"
	con.Step = 1
	con.MinEnergy = 1
	con.MaxTrajectory = 1000
	con.MaxSteps = 1000000
	return &RunWrapper{con}
}

func (con *RunConfig) ValidBackground() bool {
	_, err := disintegration.ParseBackground(con.Background)
	return err == nil
}
func (con *RunConfig) ValidNucleus() bool {
	return con.MassNumber > 0 && con.ChargeNumber >= 0 &&
		con.ChargeNumber <= con.MassNumber
}
func (con *RunConfig) ValidEnergy() bool {
	return con.Energy > 0
}
func (con *RunConfig) ValidCandidates() bool {
	return con.Candidates > 0
}
func (con *RunConfig) ValidRedshift() bool {
	return con.Redshift >= 0
}
func (con *RunConfig) ValidRateInterpolation() bool {
	_, err := disintegration.ParseInterpolation(con.RateInterpolation)
	return err == nil
}
func (con *RunConfig) ValidThreads() bool {
	return con.Threads > 0
}
func (con *RunConfig) ValidStep() bool {
	return con.Step > 0
}
func (con *RunConfig) ValidMinEnergy() bool {
	return con.MinEnergy >= 0
}
func (con *RunConfig) ValidMaxTrajectory() bool {
	return con.MaxTrajectory > 0
}
func (con *RunConfig) ValidSphereRadius() bool {
	return con.SphereRadius > 0
}
func (con *RunConfig) ValidMaxSteps() bool {
	return con.MaxSteps >= 0
}
func (con *RunConfig) ValidTrajectoryFile() bool {
	return con.TrajectoryFile != ""
}

// Check returns a Configuration error naming the first invalid required
// value.
func (con *RunConfig) Check() error {
	switch {
	case !con.ValidDataDir():
		return fault.Configuration("Invalid/non-existent 'DataDir' value.")
	case !con.ValidOutput():
		return fault.Configuration("Invalid/non-existent 'Output' value.")
	case !con.ValidBackground():
		return fault.Configuration("Invalid/non-existent 'Background' value.")
	case !con.ValidNucleus():
		return fault.Configuration(
			"Invalid 'MassNumber' and 'ChargeNumber' pair, (%d, %d).",
			con.MassNumber, con.ChargeNumber,
		)
	case !con.ValidEnergy():
		return fault.Configuration("Invalid/non-existent 'Energy' value.")
	case !con.ValidCandidates():
		return fault.Configuration("Invalid/non-existent 'Candidates' value.")
	case !con.ValidRedshift():
		return fault.Configuration("Invalid 'Redshift' value.")
	case !con.ValidRateInterpolation():
		return fault.Configuration("Invalid 'RateInterpolation' value.")
	case !con.ValidStep():
		return fault.Configuration("Invalid 'Step' value.")
	case !con.ValidMinEnergy():
		return fault.Configuration("Invalid 'MinEnergy' value.")
	case !con.ValidMaxTrajectory():
		return fault.Configuration("Invalid 'MaxTrajectory' value.")
	case !con.ValidMaxSteps():
		return fault.Configuration("Invalid 'MaxSteps' value.")
	case con.PhotonFieldRedshift && !con.ValidPhotonField():
		return fault.Configuration(
			"'PhotonFieldRedshift' is set, but 'PhotonField' is not.",
		)
	}
	return nil
}

type PlotConfig struct {
	SharedConfig

	// Optional
	Background               string
	PhotopionBackground      string
	MassNumber, ChargeNumber int
	Energy, Redshift         float64
	Samples                  int
}

type PlotWrapper struct {
	Plot PlotConfig
}

func DefaultPlotWrapper() *PlotWrapper {
	con := PlotConfig{}
	con.Background = "CMB"
	con.PhotopionBackground = "CMB"
	con.MassNumber = 56
	con.ChargeNumber = 26
	con.Energy = 100
	con.Samples = 100000
	return &PlotWrapper{con}
}

func (con *PlotConfig) ValidBackground() bool {
	_, err := disintegration.ParseBackground(con.Background)
	return err == nil
}
func (con *PlotConfig) ValidPhotopionBackground() bool {
	_, err := ParsePhotopionBackground(con.PhotopionBackground)
	return err == nil
}
func (con *PlotConfig) ValidNucleus() bool {
	return con.MassNumber > 0 && con.ChargeNumber >= 0 &&
		con.ChargeNumber <= con.MassNumber
}
func (con *PlotConfig) ValidEnergy() bool {
	return con.Energy > 0
}
func (con *PlotConfig) ValidRedshift() bool {
	return con.Redshift >= 0
}
func (con *PlotConfig) ValidSamples() bool {
	return con.Samples > 0
}

// Check returns a Configuration error naming the first invalid value.
func (con *PlotConfig) Check() error {
	switch {
	case !con.ValidDataDir():
		return fault.Configuration("Invalid/non-existent 'DataDir' value.")
	case !con.ValidOutput():
		return fault.Configuration("Invalid/non-existent 'Output' value.")
	case !con.ValidBackground():
		return fault.Configuration("Invalid 'Background' value.")
	case !con.ValidPhotopionBackground():
		return fault.Configuration("Invalid 'PhotopionBackground' value.")
	case !con.ValidNucleus():
		return fault.Configuration(
			"Invalid 'MassNumber' and 'ChargeNumber' pair, (%d, %d).",
			con.MassNumber, con.ChargeNumber,
		)
	case !con.ValidEnergy():
		return fault.Configuration("Invalid 'Energy' value.")
	case !con.ValidRedshift():
		return fault.Configuration("Invalid 'Redshift' value.")
	case !con.ValidSamples():
		return fault.Configuration("Invalid 'Samples' value.")
	}
	return nil
}

// ParsePhotopionBackground converts a configuration string into a photopion
// sampler background.
func ParsePhotopionBackground(s string) (photopion.Background, error) {
	switch s {
	case "CMB":
		return photopion.CMB, nil
	case "IRB":
		return photopion.IRB, nil
	}
	return 0, fault.Configuration(
		"photopion background must be 'CMB' or 'IRB', not '%s'", s,
	)
}

// ReadRunConfig reads and checks the [Run] section of fname.
func ReadRunConfig(fname string) (*RunConfig, error) {
	wrap := DefaultRunWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, fault.Configuration("%s: %v", fname, err)
	}
	con := &wrap.Run
	if err := con.Check(); err != nil {
		return nil, err
	}
	return con, nil
}

// ReadPlotConfig reads and checks the [Plot] section of fname.
func ReadPlotConfig(fname string) (*PlotConfig, error) {
	wrap := DefaultPlotWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, fault.Configuration("%s: %v", fname, err)
	}
	con := &wrap.Plot
	if err := con.Check(); err != nil {
		return nil, err
	}
	return con, nil
}
