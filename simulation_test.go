package nucprop

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/nucprop/disintegration"
	"github.com/phil-mansfield/nucprop/io"
	"github.com/phil-mansfield/nucprop/particle"
)

func writeFile(t *testing.T, fname string, lines ...string) {
	require.NoError(t, os.MkdirAll(path.Dir(fname), 0755))
	text := strings.Join(lines, "\n") + "\n"
	require.NoError(t, ioutil.WriteFile(fname, []byte(text), 0644))
}

func rateLine(z, n, ch int, rate float64) string {
	fields := []string{fmt.Sprint(z), fmt.Sprint(n), fmt.Sprint(ch)}
	for i := 0; i < disintegration.Samples; i++ {
		fields = append(fields, fmt.Sprint(rate))
	}
	return strings.Join(fields, " ")
}

// dataDir writes a CMB table in which He-4 becomes two deuterons and each
// deuteron a neutron and a proton, all with a rate of 1 / Mpc.
func dataDir(t *testing.T) string {
	dir := t.TempDir()
	writeFile(t, disintegration.TablePath(dir, disintegration.CMB),
		"# Z N channel rates",
		rateLine(2, 2, 1000, 1),
		rateLine(1, 1, 10000, 1),
	)
	return dir
}

func runConfig(dir string) *io.RunConfig {
	con := &io.DefaultRunWrapper().Run
	con.DataDir = dir
	con.Output = path.Join(dir, "out.yaml")
	con.Background = "CMB"
	con.MassNumber, con.ChargeNumber = 4, 2
	con.Energy = 10
	con.Candidates = 20
	con.MinEnergy = 0
	con.Step = 5
	con.Threads = 3
	con.Seed = 7
	return con
}

func TestSimulationRun(t *testing.T) {
	con := runConfig(dataDir(t))
	require.NoError(t, con.Check())

	sim, err := NewSimulation(con, false)
	require.NoError(t, err)
	assert.Equal(t, 3, sim.Scheduler.Workers)
	assert.Nil(t, sim.Field)

	buf := &bytes.Buffer{}
	traj, err := io.NewTrajectoryOutput(buf)
	require.NoError(t, err)

	out, err := sim.Run(traj)
	require.NoError(t, err)
	assert.Equal(t, 80, len(out.Candidates))
	assert.Equal(t, 60, out.Stats.Secondaries)
	assert.Equal(t, 60, out.Stats.Interactions["PhotoDisintegration:CMB"])

	nucleons := 0
	for _, rec := range out.Candidates {
		if rec.MassNumber == 1 {
			nucleons++
		}
		assert.InDelta(t, 2.5, rec.Energy, 1e-9)
	}
	assert.Equal(t, 80, nucleons)

	lines := strings.Count(buf.String(), "\n")
	assert.Equal(t, out.Stats.Steps+1, lines)
}

func TestSimulationDetection(t *testing.T) {
	con := runConfig(dataDir(t))
	con.MassNumber, con.ChargeNumber = 1, 1
	con.SphereRadius = 19

	sim, err := NewSimulation(con, false)
	require.NoError(t, err)
	out, err := sim.Run(nil)
	require.NoError(t, err)

	assert.Equal(t, 20, out.Stats.Detected)
	for _, rec := range out.Candidates {
		assert.True(t, rec.Detected)
		assert.InDelta(t, 20, rec.TrajectoryLength, 1e-9)
		assert.Equal(t, 4, rec.Steps)
	}
}

func TestSimulationPhotonField(t *testing.T) {
	dir := dataDir(t)
	writeFile(t, path.Join(dir, "IRB_test_photonEnergy.txt"), "0.01", "0.1")
	writeFile(t, path.Join(dir, "IRB_test_photonDensity.txt"),
		"1", "2", "1", "2")
	writeFile(t, path.Join(dir, "IRB_test_redshift.txt"), "0", "1")

	con := runConfig(dir)
	con.PhotonField = "IRB_test"
	con.PhotonFieldRedshift = true
	sim, err := NewSimulation(con, false)
	require.NoError(t, err)
	require.NotNil(t, sim.Field)
	assert.InDelta(t, 2, sim.Field.RedshiftScaling(1), 1e-12)
	assert.Equal(t, []float64{0, 1}, sim.Field.Redshifts())

	con.PhotonField = "missing"
	_, err = NewSimulation(con, false)
	assert.Error(t, err)
}

func TestSimulationMissingTable(t *testing.T) {
	con := runConfig(t.TempDir())
	_, err := NewSimulation(con, false)
	assert.Error(t, err)
}

func TestCandidates(t *testing.T) {
	con := runConfig(dataDir(t))
	sim, err := NewSimulation(con, false)
	require.NoError(t, err)

	cs := sim.Candidates()
	require.Len(t, cs, 20)
	for _, c := range cs {
		assert.Equal(t, particle.Helium4, c.Current.ID)
		assert.InDelta(t, 1, c.Current.Direction.Norm(), 1e-12)
		assert.Equal(t, 1, c.Slots())
		assert.True(t, c.IsActive())
	}
	assert.Equal(t, cs[0].Current.Direction, sim.Candidates()[0].Current.Direction)
}
