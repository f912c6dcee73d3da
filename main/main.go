package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/gcfg.v1"

	plt "github.com/phil-mansfield/pyplot"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/halolens/sdens/deposit"
	"github.com/halolens/sdens/grid"
	"github.com/halolens/sdens/io"
	"github.com/halolens/sdens/lens"
)

func main() {
	var (
		depositStr     string
		exampleConfig  string
		workers, chunk int
	)

	flag.StringVar(
		&depositStr, "Deposit", "",
		"Configuration file for [Deposit] mode.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'Deposit'.",
	)
	flag.IntVar(
		&workers, "Workers", deposit.DefaultWorkers,
		"Worker goroutines used by the parallel schemes. Overridden by "+
			"the config file's Workers value, if set.",
	)
	flag.IntVar(
		&chunk, "Chunk", deposit.DefaultChunk,
		"Particles claimed by a worker per scheduling step.",
	)

	flag.Parse()

	switch {
	case exampleConfig != "":
		if exampleConfig != "Deposit" {
			log.Fatalf(
				"Unrecognized config type '%s'. Only 'Deposit' is "+
					"supported.", exampleConfig,
			)
		}
		fmt.Println(io.ExampleDepositFile)

	case depositStr != "":
		wrap := io.DefaultDepositWrapper()
		if err := gcfg.ReadFileInto(wrap, depositStr); err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Deposit

		if !con.ValidInput() {
			log.Fatal("Invalid/non-existent 'Input' value.")
		} else if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		} else if !con.ValidCells() {
			log.Fatal("Invalid 'Cells' value.")
		} else if !con.ValidScheme() {
			log.Fatalf(
				"Invalid 'Scheme' value '%s'. Must be one of "+
					"[ ngp | ngp_w | cic | rebin ].", con.Scheme,
			)
		} else if !con.ValidCatalogCols() {
			log.Fatal("Invalid 'CatalogCol1'/'CatalogCol2' values.")
		}

		if con.Workers == 0 {
			con.Workers = workers
		}
		if con.Chunk == 0 {
			con.Chunk = chunk
		}

		if con.LogFile != "" {
			f, err := os.Create(con.LogFile)
			if err != nil {
				log.Fatal(err.Error())
			}
			defer f.Close()
			log.SetOutput(f)
		}

		mainDeposit(con)

	default:
		log.Fatal("You must select a mode. Run with -help for details.")
	}
}

func mainDeposit(con *io.DepositConfig) {
	props, err := io.ReadProperties(
		filepath.Join(con.Input, "properties.csv"),
	)
	if err != nil {
		log.Fatal(err.Error())
	}

	in := lens.NewInputs(
		props.HaloRedshift, props.SodHaloMass,
		props.BoxRadiusArcsec, props.BoxRadiusMpc,
		props.MPP, con.Cells,
	)

	src := con.Input
	if con.Catalog != "" {
		src = con.Catalog
	}

	x1, x2, mp := readParticles(con)
	if len(x1) == 0 {
		log.Fatalf("No particles found in %s.", src)
	}
	log.Printf(
		"Read %d particles from %s (halo z = %g, fov = %g arcsec)",
		len(x1), src, in.HaloRedshift, in.BszArc,
	)

	// The cutout coordinates are absolute sky positions, so the field of
	// view is centered on their mean.
	g := in.Geometry(stat.Mean(x1, nil), stat.Mean(x2, nil))

	if con.Weighted() && mp == nil {
		mp = make([]float64, len(x1))
		for i := range mp {
			mp[i] = in.MPP
		}
	}

	opt := &deposit.Options{Workers: con.Workers, Chunk: con.Chunk}
	rho := make([]float64, g.Cells())

	switch strings.ToLower(con.Scheme) {
	case "ngp":
		err = deposit.Density(g, x1, x2, rho, opt)
	case "ngp_w":
		err = deposit.WeightedDensity(g, x1, x2, mp, rho, opt)
	case "cic":
		err = deposit.CICDensity(g, x1, x2, rho, opt)
	case "rebin":
		err = deposit.Rebin(g, x1, x2, mp, rho)
	}
	if err != nil {
		log.Fatal(err.Error())
	}

	log.Printf(
		"Deposited grid: total %.6g, mean %.6g, max %.6g, stddev %.6g",
		floats.Sum(rho), stat.Mean(rho, nil),
		floats.Max(rho), stat.StdDev(rho, nil),
	)

	f, err := os.Create(con.Output)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer f.Close()

	hd := io.NewGridHeader(g, len(x1))
	if err := io.WriteGrid(f, hd, rho); err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Wrote %s", con.Output)

	if con.PlotFile != "" {
		plotRowSums(g, rho, con.PlotFile)
	}
}

// readParticles reads the two position columns and, for the weighted
// schemes, the weight column. Positions come from the cutout's binary
// columns, or from a whitespace-delimited text catalog when one is
// configured. A nil mp means no per-particle weights were read.
func readParticles(con *io.DepositConfig) (x1, x2, mp []float64) {
	if con.Catalog != "" {
		colIdxs := []int{con.CatalogCol1, con.CatalogCol2}
		if con.Weighted() && con.CatalogWeightCol >= 0 {
			colIdxs = append(colIdxs, con.CatalogWeightCol)
		}
		cols, err := io.ReadTextCatalog(con.Catalog, colIdxs)
		if err != nil {
			log.Fatal(err.Error())
		}
		if len(cols) == 3 {
			mp = cols[2]
		}
		return cols[0], cols[1], mp
	}

	cols, err := io.ReadCutoutColumns(con.Input, con.Col1, con.Col2)
	if err != nil {
		log.Fatal(err.Error())
	}
	x1, x2 = cols[0], cols[1]

	if con.Weighted() && con.WeightCol != "" {
		wCols, err := io.ReadCutoutColumns(con.Input, con.WeightCol)
		if err != nil {
			log.Fatal(err.Error())
		}
		mp = wCols[0]
		if len(mp) != len(x1) {
			log.Fatalf(
				"Weight column %s has %d entries, expected %d.",
				con.WeightCol, len(mp), len(x1),
			)
		}
	}
	return x1, x2, mp
}

// plotRowSums writes a matplotlib figure of the deposited map summed along
// the second axis, a quick visual check of the field's radial structure.
func plotRowSums(g *grid.Geometry, rho []float64, fname string) {
	xs := g.Centers1()
	sums := make([]float64, g.Nx)
	for i := 0; i < g.Nx; i++ {
		sums[i] = floats.Sum(rho[i*g.Ny : (i+1)*g.Ny])
	}

	plt.Figure()
	plt.Plot(xs, sums, "k", plt.LW(2))
	plt.XLabel(`$x_1$ [arcsec]`, plt.FontSize(16))
	plt.YLabel(`$\Sigma$ [${\rm M_\odot}/{\rm Mpc}^2$]`, plt.FontSize(16))
	plt.SaveFig(fname)
	plt.Execute()
}
