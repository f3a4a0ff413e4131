package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path"
	"runtime/pprof"
	"strings"

	plt "github.com/phil-mansfield/pyplot"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/nucprop"
	"github.com/phil-mansfield/nucprop/disintegration"
	"github.com/phil-mansfield/nucprop/fault"
	"github.com/phil-mansfield/nucprop/io"
	"github.com/phil-mansfield/nucprop/particle"
	"github.com/phil-mansfield/nucprop/photon"
	"github.com/phil-mansfield/nucprop/photopion"
	"github.com/phil-mansfield/nucprop/units"
)

const (
	curvePoints = 400
	histBins    = 60
)

var (
	colors = []string{
		"DarkSlateBlue", "DarkSlateGray", "DarkTurquoise",
		"DarkViolet", "DeepPink", "DimGray",
	}
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var (
		run, plot     string
		exampleConfig string
		threads       int
	)
	vars := map[string]*string{
		"Run":           &run,
		"Plot":          &plot,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&threads, "Threads", 0,
		"Number of threads used. Overrides the 'Threads' value of the "+
			"configuration file. Default is the number of logical cores.",
	)
	flag.StringVar(&run, "Run", "", "Configuration file for [Run] mode.")
	flag.StringVar(&plot, "Plot", "", "Configuration file for [Plot] mode.")
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. Accepted arguments are 'Run' and "+
			"'Plot'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Run":
		con, err := io.ReadRunConfig(run)
		if err != nil {
			log.Fatal(err.Error())
		}
		if threads > 0 {
			con.Threads = threads
		}
		runMain(con)

	case "Plot":
		con, err := io.ReadPlotConfig(plot)
		if err != nil {
			log.Fatal(err.Error())
		}
		plotMain(con)

	case "ExampleConfig":
		switch exampleConfig {
		case "Run":
			fmt.Println(io.ExampleRunFile)
		case "Plot":
			fmt.Println(io.ExamplePlotFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'Run' and 'Plot'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but nucprop "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// setupIO opens the log and profile files named by con.
func setupIO(con *io.SharedConfig) *FileGroup {
	var err error
	fg := new(FileGroup)

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	return fg
}

func runMain(con *io.RunConfig) {
	fg := setupIO(&con.SharedConfig)
	defer fg.Close()

	sim, err := nucprop.NewSimulation(con, true)
	if err != nil {
		log.Fatal(err.Error())
	}

	var traj *io.TrajectoryOutput
	if con.ValidTrajectoryFile() {
		f, err := os.Create(con.TrajectoryFile)
		if err != nil {
			log.Fatalf("Could not create %s.", con.TrajectoryFile)
		}
		defer f.Close()
		traj, err = io.NewTrajectoryOutput(f)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	out, err := sim.Run(traj)
	if err != nil {
		log.Fatal(err.Error())
	}

	log.Printf("Writing to %s", con.Output)
	f, err := os.Create(con.Output)
	if err != nil {
		log.Fatalf("Could not create %s.", con.Output)
	}
	defer f.Close()
	if err = out.Write(f); err != nil {
		log.Fatal(err.Error())
	}
}

func plotMain(con *io.PlotConfig) {
	fg := setupIO(&con.SharedConfig)
	defer fg.Close()

	if err := os.MkdirAll(con.Output, 0777); err != nil {
		log.Fatal(err.Error())
	}

	plotCrossSection(path.Join(con.Output, "cross_section.png"))

	bg, _ := disintegration.ParseBackground(con.Background)
	mod, err := disintegration.New(bg, con.DataDir, disintegration.Options{})
	if err != nil {
		log.Fatal(err.Error())
	}
	plotRates(path.Join(con.Output, fmt.Sprintf(
		"rates_%d_%d_%s.png", con.MassNumber, con.ChargeNumber, bg,
	)), mod.Table(), con.MassNumber, con.ChargeNumber)

	fields := []photon.Field{photon.CMB(), photon.NewPrimackIRB()}
	names := []string{"CMB", "Primack IRB"}
	if con.ValidPhotonField() {
		tab, err := photon.LoadTabulated(
			con.DataDir, con.PhotonField, con.PhotonFieldRedshift,
		)
		if err != nil {
			log.Fatal(err.Error())
		}
		fields = append(fields, tab)
		names = append(names, con.PhotonField)
	}
	plotFields(path.Join(con.Output, "photon_fields.png"),
		fields, names, con.Redshift)

	ppBg, _ := io.ParsePhotopionBackground(con.PhotopionBackground)
	sampler, err := photopion.NewSampler(ppBg)
	if err != nil {
		log.Fatal(err.Error())
	}
	plotSamples(path.Join(con.Output, fmt.Sprintf(
		"photopion_%s.png", ppBg,
	)), sampler, con)

	plt.Execute()
}

func plotCrossSection(fname string) {
	xs := floats.LogSpan(make([]float64, curvePoints), 0.1, 1e4)
	ps, ns := make([]float64, len(xs)), make([]float64, len(xs))
	for i, x := range xs {
		ps[i] = photopion.CrossSection(x, true)
		ns[i] = photopion.CrossSection(x, false)
	}

	plt.Figure()
	plt.Plot(xs, ps, plt.LW(3), plt.C(colors[0]))
	plt.Plot(xs, ns, plt.LW(3), plt.C(colors[4]))
	plt.Title("Photopion cross section (proton, neutron)")
	plt.XLabel(`$\epsilon'$ [GeV]`, plt.FontSize(16))
	plt.YLabel(`$\sigma$ [$\mu$b]`, plt.FontSize(16))
	plt.XScale("log")
	plt.YScale("log")
	plt.XLim(0.1, 1e4)
	plt.Grid(plt.Axis("y"))
	plt.Grid(plt.Axis("x"), plt.Which("both"))
	plt.SaveFig(fname)
}

func plotRates(fname string, tab *disintegration.Table, a, z int) {
	entries := tab.Channels(z, a-z)
	if len(entries) == 0 {
		log.Printf("No disintegration channels for A = %d, Z = %d.", a, z)
		return
	}

	lgs := floats.Span(
		make([]float64, curvePoints), disintegration.LgMin, disintegration.LgMax,
	)

	plt.Figure()
	for ei := range entries {
		rates := make([]float64, len(lgs))
		for i, lg := range lgs {
			rates[i] = entries[ei].Rate(lg) * units.MPC
		}
		plt.Plot(lgs, rates, plt.LW(2), plt.C(colors[ei%len(colors)]))
	}
	plt.Title(fmt.Sprintf(
		"%s: %d channels of %s", tab.Name, len(entries), particle.NucleusID(a, z),
	))
	plt.XLabel(`$\log_{10}\gamma$`, plt.FontSize(16))
	plt.YLabel(`Rate [Mpc$^{-1}$]`, plt.FontSize(16))
	plt.YScale("log")
	plt.Grid(plt.Axis("y"), plt.Which("both"))
	plt.SaveFig(fname)
}

func plotFields(fname string, fields []photon.Field, names []string, z float64) {
	eps := floats.LogSpan(make([]float64, curvePoints), 1e-5, 10)

	plt.Figure()
	for fi, f := range fields {
		ns := make([]float64, len(eps))
		for i := range eps {
			ns[i] = f.Density(eps[i]*units.EV, z) * units.CentiMeter *
				units.CentiMeter * units.CentiMeter
		}
		plt.Plot(eps, ns, plt.LW(3), plt.C(colors[fi%len(colors)]))
	}
	plt.Title(fmt.Sprintf("%s at z = %g", strings.Join(names, ", "), z))
	plt.XLabel(`$\epsilon$ [eV]`, plt.FontSize(16))
	plt.YLabel(`$\epsilon\,dn/d\epsilon$ [cm$^{-3}$]`, plt.FontSize(16))
	plt.XScale("log")
	plt.YScale("log")
	plt.YLim(1e-10, 1e4)
	plt.Grid(plt.Axis("y"))
	plt.Grid(plt.Axis("x"), plt.Which("both"))
	plt.SaveFig(fname)
}

func plotSamples(fname string, s *photopion.Sampler, con *io.PlotConfig) {
	rng := rand.New(rand.NewSource(con.Seed))
	energy := con.Energy * units.EeV
	lo, hi := s.Bounds(true, energy, con.Redshift)
	if !(lo < hi) {
		log.Printf(
			"A %g EeV proton is below the %s photopion threshold.",
			con.Energy, s.Background(),
		)
		return
	}

	lgLo, lgHi := math.Log10(lo/units.EV), math.Log10(hi/units.EV)
	dlg := (lgHi - lgLo) / histBins
	counts := make([]float64, histBins)
	misses := 0
	for i := 0; i < con.Samples; i++ {
		eps, err := s.Sample(rng, true, energy, con.Redshift)
		if fault.IsFatal(err) {
			log.Fatal(err.Error())
		} else if err != nil || eps == 0 {
			misses++
			continue
		}

		j := int((math.Log10(eps/units.EV) - lgLo) / dlg)
		if j == histBins {
			j--
		}
		if j >= 0 && j < histBins {
			counts[j]++
		}
	}
	if misses > 0 {
		log.Printf("%d of %d photopion samples failed.", misses, con.Samples)
	}

	// Step histogram in dN / dlog10(eps), normalized to unit area.
	xs, ys := make([]float64, 2*histBins), make([]float64, 2*histBins)
	norm := float64(con.Samples-misses) * dlg
	for j := range counts {
		xs[2*j] = math.Pow(10, lgLo+float64(j)*dlg)
		xs[2*j+1] = math.Pow(10, lgLo+float64(j+1)*dlg)
		ys[2*j], ys[2*j+1] = counts[j]/norm, counts[j]/norm
	}

	plt.Figure()
	plt.Plot(xs, ys, "k", plt.LW(2))
	plt.Title(fmt.Sprintf(
		"%s photons seen by a %g EeV proton at z = %g",
		s.Background(), con.Energy, con.Redshift,
	))
	plt.XLabel(`$\epsilon$ [eV]`, plt.FontSize(16))
	plt.YLabel(`$dP/d\log_{10}\epsilon$`, plt.FontSize(16))
	plt.XScale("log")
	plt.XLim(xs[0], xs[len(xs)-1])
	plt.Grid(plt.Axis("y"))
	plt.Grid(plt.Axis("x"), plt.Which("both"))
	plt.SaveFig(fname)
}
