/*package disintegration implements photodisintegration of nuclei on a photon
background: a nucleus absorbs a background photon and breaks up, emitting
nucleons and light nuclei.

Channels and their rates are read from pre-computed tables, one per photon
background. A Module draws a free path for every channel of the current
nucleus and keeps the shortest as the candidate's pending interaction.
*/
package disintegration

import (
	"fmt"
	"math"
	"math/rand"
	"path"

	"github.com/phil-mansfield/nucprop/fault"
	"github.com/phil-mansfield/nucprop/particle"
)

// Background selects which photon fields a table was computed for.
type Background int

const (
	CMB Background = iota + 1
	IRB
	CMBIRB
)

// ParseBackground converts a configuration string into a Background.
func ParseBackground(s string) (Background, error) {
	switch s {
	case "CMB":
		return CMB, nil
	case "IRB":
		return IRB, nil
	case "CMB_IRB":
		return CMBIRB, nil
	}
	return 0, fault.Configuration(
		"photon background must be 'CMB', 'IRB' or 'CMB_IRB', not '%s'", s,
	)
}

func (bg Background) String() string {
	switch bg {
	case CMB:
		return "CMB"
	case IRB:
		return "IRB"
	case CMBIRB:
		return "CMB_IRB"
	}
	return fmt.Sprintf("Background(%d)", int(bg))
}

// TablePath returns the location of the table for bg inside dataDir.
func TablePath(dataDir string, bg Background) string {
	return path.Join(dataDir, "PhotoDisintegration",
		fmt.Sprintf("PDtable_%s.txt", bg))
}

// Module is the photodisintegration interaction. It is immutable and may be
// shared by every worker of a scheduler.
type Module struct {
	name  string
	table *Table
}

// New loads the table for bg from dataDir.
func New(bg Background, dataDir string, opts Options) (*Module, error) {
	switch bg {
	case CMB, IRB, CMBIRB:
	default:
		return nil, fault.Configuration("unknown photon background %d", int(bg))
	}

	tab, err := Load(TablePath(dataDir, bg), opts)
	if err != nil {
		return nil, err
	}
	return NewModule("PhotoDisintegration:"+bg.String(), tab), nil
}

// NewModule wraps an already built table.
func NewModule(name string, tab *Table) *Module {
	return &Module{name: name, table: tab}
}

// Name identifies the module in statistics and logs.
func (m *Module) Name() string { return m.name }

// Table returns the module's channel table.
func (m *Module) Table() *Table { return m.table }

// Propose draws a free path for every channel of the current nucleus of c
// and stores the shortest, with its channel, in the given slot. It returns
// false, leaving the slot alone, if there are no channels for the nucleus,
// if its Lorentz factor is outside of the tabulated range, if every channel
// has a rate of zero, or if the table's photon field has vanished at the
// candidate's redshift.
func (m *Module) Propose(c *particle.Candidate, slot int, rng *rand.Rand) bool {
	a := c.Current.MassNumber()
	z := c.Current.ChargeNumber()
	entries := m.table.Channels(z, a-z)
	if len(entries) == 0 {
		return false
	}

	// Background photon energies grow as (1 + z), which is the same as
	// boosting the nucleus.
	zr := c.Redshift
	lg := math.Log10(c.Current.LorentzFactor() * (1 + zr))
	if !(lg >= LgMin && lg <= LgMax) {
		return false
	}

	dist := math.Inf(+1)
	var ch Channel
	for i := range entries {
		rate := entries[i].Rate(lg)
		if rate <= 0 {
			continue
		}
		d := -math.Log(uniform(rng)) / rate
		if d < dist {
			dist, ch = d, entries[i].Channel
		}
	}
	if math.IsInf(dist, +1) {
		return false
	}

	// Photon number densities grow as (1 + z)^3.
	dist /= (1 + zr) * (1 + zr) * (1 + zr)
	if m.table.field != nil {
		scale := m.table.field.RedshiftScaling(zr)
		if scale <= 0 {
			return false
		}
		dist /= scale
	}

	c.SetPending(slot, int(ch), dist)
	return true
}

// Commit performs the interaction pending in slot and clears the slot. The
// energy per nucleon is conserved: the remnant keeps (E/A) per nucleon and
// every emitted particle gets (E/A) times its own mass number. If nothing is
// left of the nucleus, c is deactivated.
//
// Committing an empty slot is an internal fault.
func (m *Module) Commit(c *particle.Candidate, slot int, rng *rand.Rand) {
	p, ok := c.TakePending(slot)
	if !ok {
		fault.Internal("%s: commit on empty slot %d", m.name, slot)
	}

	counts := Channel(p.Channel).Counts()
	dA, dZ := counts.DeltaA(), counts.DeltaZ()

	a := c.Current.MassNumber()
	z := c.Current.ChargeNumber()
	epa := c.Current.Energy / float64(a)

	if a+dA > 0 {
		c.Current.ID = particle.NucleusID(a+dA, z+dZ)
		c.Current.Energy = epa * float64(a+dA)
	} else {
		c.Deactivate()
	}

	for s, n := range counts {
		id := Emitted[s]
		for i := 0; i < n; i++ {
			c.AddSecondary(id, epa*float64(id.MassNumber()))
		}
	}
}

// uniform returns a number in (0, 1).
func uniform(rng *rand.Rand) float64 {
	for {
		if u := rng.Float64(); u > 0 {
			return u
		}
	}
}
