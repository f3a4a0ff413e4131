package io

import (
	"errors"
	"io/ioutil"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/nucprop/fault"
	"github.com/phil-mansfield/nucprop/photopion"
)

func writeConfig(t *testing.T, text string) string {
	fname := path.Join(t.TempDir(), "config.txt")
	require.NoError(t, ioutil.WriteFile(fname, []byte(text), 0644))
	return fname
}

func TestReadRunConfig(t *testing.T) {
	dir := t.TempDir()
	text := strings.Join([]string{
		"[Run]",
		"DataDir = " + dir,
		"Output = out.yaml",
		"Background = CMB_IRB",
		"Energy = 50",
		"Candidates = 10",
		"Seed = 12",
		"RateInterpolation = Cubic",
		"PhotonField = IRB_Kneiske04",
		"PhotonFieldRedshift = true",
		"SphereRadius = 20",
	}, "\n")

	con, err := ReadRunConfig(writeConfig(t, text))
	require.NoError(t, err)
	assert.Equal(t, dir, con.DataDir)
	assert.Equal(t, "CMB_IRB", con.Background)
	assert.Equal(t, 50.0, con.Energy)
	assert.Equal(t, 10, con.Candidates)
	assert.Equal(t, int64(12), con.Seed)
	assert.Equal(t, "Cubic", con.RateInterpolation)
	assert.True(t, con.PhotonFieldRedshift)
	assert.True(t, con.ValidSphereRadius())
	assert.False(t, con.ValidTrajectoryFile())
	assert.False(t, con.ValidThreads())

	// Defaults.
	assert.Equal(t, 56, con.MassNumber)
	assert.Equal(t, 26, con.ChargeNumber)
	assert.Equal(t, 1.0, con.Step)
	assert.Equal(t, 1000.0, con.MaxTrajectory)
	assert.Equal(t, 1000000, con.MaxSteps)
}

func TestReadRunConfigErrors(t *testing.T) {
	dir := t.TempDir()
	base := []string{
		"[Run]",
		"DataDir = " + dir,
		"Output = out.yaml",
		"Energy = 50",
		"Candidates = 10",
	}

	table := []struct {
		name  string
		extra []string
	}{
		{"background", []string{"Background = UV"}},
		{"missing background", nil},
		{"nucleus", []string{"Background = CMB", "ChargeNumber = 60"}},
		{"interpolation", []string{"Background = CMB", "RateInterpolation = Quintic"}},
		{"redshift", []string{"Background = CMB", "Redshift = -1"}},
		{"photon field", []string{"Background = CMB", "PhotonFieldRedshift = true"}},
		{"unknown key", []string{"Background = CMB", "Colour = red"}},
	}

	for _, test := range table {
		text := strings.Join(append(append([]string{}, base...), test.extra...), "\n")
		_, err := ReadRunConfig(writeConfig(t, text))
		assert.True(t, errors.Is(err, fault.ErrConfiguration), test.name)
	}

	_, err := ReadRunConfig(path.Join(dir, "missing.txt"))
	assert.True(t, errors.Is(err, fault.ErrConfiguration))
}

func TestReadPlotConfig(t *testing.T) {
	dir := t.TempDir()
	text := strings.Join([]string{
		"[Plot]",
		"DataDir = " + dir,
		"Output = " + dir,
		"PhotopionBackground = IRB",
		"Samples = 10",
	}, "\n")

	con, err := ReadPlotConfig(writeConfig(t, text))
	require.NoError(t, err)
	assert.Equal(t, "IRB", con.PhotopionBackground)
	assert.Equal(t, "CMB", con.Background)
	assert.Equal(t, 10, con.Samples)
	assert.Equal(t, 100.0, con.Energy)

	text = strings.Replace(text, "IRB", "UV", 1)
	_, err = ReadPlotConfig(writeConfig(t, text))
	assert.True(t, errors.Is(err, fault.ErrConfiguration))
}

func TestExampleFiles(t *testing.T) {
	// The examples must parse, even if their paths do not exist.
	wrap := DefaultRunWrapper()
	require.NoError(t, gcfg.ReadStringInto(wrap, ExampleRunFile))
	assert.Equal(t, "CMB_IRB", wrap.Run.Background)
	assert.True(t, wrap.Run.ValidBackground())
	assert.True(t, wrap.Run.ValidNucleus())

	plot := DefaultPlotWrapper()
	require.NoError(t, gcfg.ReadStringInto(plot, ExamplePlotFile))
	assert.True(t, plot.Plot.ValidPhotopionBackground())
}

func TestParsePhotopionBackground(t *testing.T) {
	bg, err := ParsePhotopionBackground("IRB")
	require.NoError(t, err)
	assert.Equal(t, photopion.IRB, bg)
	_, err = ParsePhotopionBackground("CMB_IRB")
	assert.True(t, errors.Is(err, fault.ErrConfiguration))
}
