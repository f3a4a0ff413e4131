package disintegration

import (
	"fmt"
	"math"
	"os"
	"path"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/nucprop/fault"
	"github.com/phil-mansfield/nucprop/math/interpolate"
	"github.com/phil-mansfield/nucprop/photon"
	"github.com/phil-mansfield/nucprop/units"
)

// The rate curves are sampled on a uniform grid in log10 of the Lorentz
// factor.
const (
	Samples = 200
	LgMin   = 6.0
	LgMax   = 14.0
	LgStep  = (LgMax - LgMin) / (Samples - 1)
)

// Interpolation selects how rate curves are interpolated between samples.
type Interpolation int

const (
	Linear Interpolation = iota
	Cubic
)

// ParseInterpolation converts a configuration string into an Interpolation.
func ParseInterpolation(s string) (Interpolation, error) {
	switch s {
	case "Linear", "":
		return Linear, nil
	case "Cubic":
		return Cubic, nil
	}
	return Linear, fault.Configuration(
		"rate interpolation must be 'Linear' or 'Cubic', not '%s'", s,
	)
}

func (in Interpolation) String() string {
	if in == Cubic {
		return "Cubic"
	}
	return "Linear"
}

// Options configure how a Table is built.
type Options struct {
	Interpolation Interpolation
	// Field, if set, is the background the table was computed for. Its
	// RedshiftScaling multiplies every rate on top of the (1 + z)^3 growth
	// of photon number densities.
	Field photon.Field
}

// Row is one line of a disintegration table. Rates are given per Mpc on the
// lg grid.
type Row struct {
	Z, N    int
	Channel Channel
	Rates   []float64
}

// Entry is one channel of a nuclide together with its rate curve.
type Entry struct {
	Channel Channel
	rate    interpolate.Interpolator
}

// Rate returns the interaction rate (per meter) at lg = log10(gamma).
// Arguments outside [LgMin, LgMax] are clamped.
func (e *Entry) Rate(lg float64) float64 { return e.rate.Eval(lg) }

type nuclide struct{ z, n int }

// Table holds the disintegration channels of every tabulated nuclide. It is
// immutable after construction.
type Table struct {
	Name     string
	channels map[nuclide][]Entry
	rows     int
	field    photon.Field
}

// NewTable builds a table from rows. A DataValidation error is returned for
// rows with the wrong number of rates, negative or non-finite rates, or
// channels the row's nuclide cannot undergo.
func NewTable(name string, rows []Row, opts Options) (*Table, error) {
	tab := &Table{Name: name, channels: map[nuclide][]Entry{}, field: opts.Field}

	for i := range rows {
		row := &rows[i]
		if row.Z < 0 || row.N < 0 || row.Z+row.N < 1 {
			return nil, fault.DataValidation(
				"%s: row %d has no nucleus with Z = %d and N = %d",
				name, i, row.Z, row.N,
			)
		} else if len(row.Rates) != Samples {
			return nil, fault.DataValidation(
				"%s: row %d has %d rates, not %d",
				name, i, len(row.Rates), Samples,
			)
		} else if err := row.Channel.check(row.Z, row.N); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", name, i, err)
		}

		rates := make([]float64, Samples)
		for j, r := range row.Rates {
			if !(r >= 0) || math.IsInf(r, 0) {
				return nil, fault.DataValidation(
					"%s: row %d has rate %g at lg = %g", name, i, r, lgAt(j),
				)
			}
			rates[j] = r / units.MPC
		}

		key := nuclide{row.Z, row.N}
		tab.channels[key] = append(tab.channels[key], Entry{
			Channel: row.Channel,
			rate:    newRate(rates, opts.Interpolation),
		})
		tab.rows++
	}

	return tab, nil
}

// Load reads a disintegration table. Lines starting with '#' are comments
// and every other line has the form
//
//     Z N channel r_0 r_1 ... r_199
//
// where r_i is the rate in Mpc^-1 at lg = 6 + 8 i / 199. A missing or
// unreadable file gives a DataFile error and bad contents a DataValidation
// error.
func Load(fname string, opts Options) (*Table, error) {
	if _, err := os.Stat(fname); err != nil {
		return nil, fault.DataFile("could not open %s: %v", fname, err)
	}

	colIdxs := make([]int, Samples+3)
	for i := range colIdxs {
		colIdxs[i] = i
	}
	cols, err := table.ReadTable(fname, colIdxs, nil)
	if err != nil {
		return nil, fault.DataFile("could not read %s: %v", fname, err)
	}

	name := path.Base(fname)
	rows := make([]Row, len(cols[0]))
	for i := range rows {
		z, okZ := asInt(cols[0][i])
		n, okN := asInt(cols[1][i])
		ch, okCh := asInt(cols[2][i])
		if !okZ || !okN || !okCh {
			return nil, fault.DataValidation(
				"%s: data line %d does not start with three integers",
				name, i+1,
			)
		}

		rates := make([]float64, Samples)
		for j := range rates {
			rates[j] = cols[j+3][i]
		}
		rows[i] = Row{Z: z, N: n, Channel: Channel(ch), Rates: rates}
	}

	return NewTable(name, rows, opts)
}

// Channels returns the entries of the nuclide with charge number z and
// neutron number n, nil if there are none. The slice must not be modified.
func (tab *Table) Channels(z, n int) []Entry {
	return tab.channels[nuclide{z, n}]
}

// Len returns the total number of channels in the table.
func (tab *Table) Len() int { return tab.rows }

// Nuclides returns the number of nuclides with at least one channel.
func (tab *Table) Nuclides() int { return len(tab.channels) }

func newRate(rates []float64, in Interpolation) interpolate.Interpolator {
	if in == Cubic {
		return nonNegative{interpolate.NewUniformSpline(LgMin, LgStep, rates)}
	}
	return interpolate.NewUniformLinear(LgMin, LgStep, rates)
}

// nonNegative floors spline overshoot at zero.
type nonNegative struct {
	*interpolate.Spline
}

func (nn nonNegative) Eval(x float64) float64 {
	return math.Max(0, nn.Spline.Eval(x))
}

func (nn nonNegative) EvalAll(xs []float64, out ...[]float64) []float64 {
	res := nn.Spline.EvalAll(xs, out...)
	for i := range res {
		res[i] = math.Max(0, res[i])
	}
	return res
}

func lgAt(i int) float64 { return LgMin + float64(i)*LgStep }

func asInt(x float64) (int, bool) {
	i := int(x)
	return i, float64(i) == x
}
