package photon

import (
	"os"
	"path"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/nucprop/fault"
	"github.com/phil-mansfield/nucprop/units"
)

// File name suffixes of a tabulated background called <name> in a data
// directory.
const (
	EnergySuffix   = "_photonEnergy.txt"
	DensitySuffix  = "_photonDensity.txt"
	RedshiftSuffix = "_redshift.txt"
)

// LoadTabulated reads the background called name from dir. The files hold one
// value per non-empty line:
//
//     <name>_photonEnergy.txt   photon energies in eV
//     <name>_photonDensity.txt  eps dn/deps in m^-3, energy-major
//     <name>_redshift.txt       redshifts, only read if redshiftDependent
//
// Missing or unreadable files give a DataFile error, invalid contents a
// DataValidation error.
func LoadTabulated(dir, name string, redshiftDependent bool) (*Tabulated, error) {
	energies, err := readColumn(path.Join(dir, name+EnergySuffix))
	if err != nil {
		return nil, err
	}
	for i := range energies {
		energies[i] *= units.EV
	}

	densities, err := readColumn(path.Join(dir, name+DensitySuffix))
	if err != nil {
		return nil, err
	}

	var redshifts []float64
	if redshiftDependent {
		redshifts, err = readColumn(path.Join(dir, name+RedshiftSuffix))
		if err != nil {
			return nil, err
		}
		if len(redshifts) == 0 {
			return nil, fault.DataValidation("%s: redshift file is empty", name)
		}
	}

	return NewTabulated(name, energies, densities, redshifts)
}

func readColumn(fname string) ([]float64, error) {
	if _, err := os.Stat(fname); err != nil {
		return nil, fault.DataFile("could not open %s: %v", fname, err)
	}

	cols, err := table.ReadTable(fname, []int{0}, nil)
	if err != nil {
		return nil, fault.DataFile("could not read %s: %v", fname, err)
	}
	return cols[0], nil
}
