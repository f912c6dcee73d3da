package io

import (
	"strings"
)

const ExampleDepositFile = `[Deposit]

#######################
# Required Parameters #
#######################

# Directory containing the halo cutout: a properties.csv file and the
# binary particle columns (theta.bin, phi.bin, ...).
Input = path/to/cutout/dir

# File the deposited grid will be written to.
Output = path/to/output/file.sdens

# Number of grid cells per side of the field of view.
Cells = 1024

# Deposition scheme. Must be one of:
# [ ngp | ngp_w | cic | rebin ]
# ngp    deposits 1/cell^2 into the nearest cell of each particle.
# ngp_w  is ngp scaled by the per-particle weight.
# cic    splits each contribution bilinearly across 4 neighboring cells.
# rebin  deposits raw weights with no cell-area normalization.
Scheme = ngp

#######################
# Optional Parameters #
#######################

# Names of the binary columns holding the two sky coordinates. Defaults
# are theta and phi.
# Col1 = theta
# Col2 = phi

# Name of the binary column holding per-particle weights for the ngp_w and
# rebin schemes. If unset, every particle carries the cutout's mass per
# particle (the mpp property).
# WeightCol =

# Whitespace-delimited text catalog to read particle positions from instead
# of the cutout's binary columns. Lines starting with '#' are skipped.
# CatalogCol1 and CatalogCol2 are the zero-indexed position columns, and
# CatalogWeightCol, if non-negative, supplies the weights of the ngp_w and
# rebin schemes.
# Catalog = path/to/catalog.txt
# CatalogCol1 = 0
# CatalogCol2 = 1
# CatalogWeightCol = -1

# Worker goroutines and particles-per-scheduling-step of the parallel
# schemes. Defaults are 4 and 16.
# Workers = 4
# Chunk = 16

# Writes a matplotlib figure of the deposited map's row sums.
# PlotFile = profile.png

# Redirects log output to a file.
# LogFile = log.out`

// DepositConfig holds the [Deposit] mode configuration.
type DepositConfig struct {
	// Required
	Input, Output string
	Cells         int
	Scheme        string

	// Optional
	Col1, Col2, WeightCol string
	Catalog               string
	CatalogCol1           int
	CatalogCol2           int
	CatalogWeightCol      int
	Workers, Chunk        int
	PlotFile              string
	LogFile               string
}

// DepositWrapper wraps DepositConfig for gcfg.
type DepositWrapper struct {
	Deposit DepositConfig
}

// DefaultDepositWrapper returns a wrapper with the documented defaults
// filled in.
func DefaultDepositWrapper() *DepositWrapper {
	con := DepositConfig{}
	con.Cells = 1024
	con.Scheme = "ngp"
	con.Col1, con.Col2 = "theta", "phi"
	con.CatalogCol1, con.CatalogCol2 = 0, 1
	con.CatalogWeightCol = -1
	return &DepositWrapper{con}
}

func (con *DepositConfig) ValidInput() bool {
	return con.Input != ""
}

func (con *DepositConfig) ValidOutput() bool {
	return con.Output != ""
}

func (con *DepositConfig) ValidCells() bool {
	return con.Cells > 0
}

// ValidCatalogCols reports whether the text catalog column indices are
// usable. Vacuously true when no catalog is configured.
func (con *DepositConfig) ValidCatalogCols() bool {
	if con.Catalog == "" {
		return true
	}
	return con.CatalogCol1 >= 0 && con.CatalogCol2 >= 0 &&
		con.CatalogCol1 != con.CatalogCol2
}

func (con *DepositConfig) ValidScheme() bool {
	switch strings.ToLower(con.Scheme) {
	case "ngp", "ngp_w", "cic", "rebin":
		return true
	}
	return false
}

// Weighted returns true if the configured scheme consumes per-particle
// weights.
func (con *DepositConfig) Weighted() bool {
	switch strings.ToLower(con.Scheme) {
	case "ngp_w", "rebin":
		return true
	}
	return false
}
