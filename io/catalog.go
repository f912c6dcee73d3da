/*
package io reads halo cutout inputs and reads and writes density grids.

A cutout directory holds one properties.csv row of halo properties plus a
set of little-endian float32 binary columns (x.bin, y.bin, theta.bin, ...),
one value per particle.
*/
package io

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/phil-mansfield/table"
)

var end = binary.LittleEndian

// HaloProperties mirrors one row of a cutout properties.csv file. Columns
// absent from a particular file are left zero.
type HaloProperties struct {
	HaloRedshift    float64 `csv:"halo_redshift"`
	SodHaloMass     float64 `csv:"sod_halo_mass"`
	SodHaloRadius   float64 `csv:"sod_halo_radius"`
	SodHaloCDelta   float64 `csv:"sod_halo_cdelta"`
	HaloLCX         float64 `csv:"halo_lc_x"`
	HaloLCY         float64 `csv:"halo_lc_y"`
	HaloLCZ         float64 `csv:"halo_lc_z"`
	BoxRadiusMpc    float64 `csv:"boxRadius_Mpc"`
	BoxRadiusArcsec float64 `csv:"boxRadius_arcsec"`
	MPP             float64 `csv:"mpp"`
}

// ReadProperties parses a properties.csv halo property file. The header
// line is '#'-prefixed and its column names may carry padding spaces, so
// it is normalized before parsing.
func ReadProperties(path string) (*HaloProperties, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines := strings.SplitN(string(b), "\n", 2)
	if len(lines) < 2 || strings.TrimSpace(lines[1]) == "" {
		return nil, fmt.Errorf("io: property file %s has no data row", path)
	}
	names := strings.Split(strings.TrimPrefix(lines[0], "#"), ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	clean := strings.Join(names, ",") + "\n" + lines[1]

	rows := []*HaloProperties{}
	if err := gocsv.UnmarshalString(clean, &rows); err != nil {
		return nil, fmt.Errorf("io: parsing %s: %v", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("io: property file %s has no rows", path)
	}
	return rows[0], nil
}

// ReadColumn reads one little-endian float32 binary column and widens it
// to float64.
func ReadColumn(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size()%4 != 0 {
		return nil, fmt.Errorf(
			"io: %s has %d bytes, not a whole number of float32 values",
			path, info.Size(),
		)
	}

	buf := make([]float32, info.Size()/4)
	if err := binary.Read(f, end, buf); err != nil {
		return nil, err
	}

	out := make([]float64, len(buf))
	for i, x := range buf {
		out[i] = float64(x)
	}
	return out, nil
}

// ReadCutoutColumns reads the named binary columns ("theta" -> theta.bin)
// from a cutout directory and checks that their lengths agree.
func ReadCutoutColumns(dir string, names ...string) ([][]float64, error) {
	cols := make([][]float64, len(names))
	for i, name := range names {
		col, err := ReadColumn(filepath.Join(dir, name+".bin"))
		if err != nil {
			return nil, err
		}
		if i > 0 && len(col) != len(cols[0]) {
			return nil, fmt.Errorf(
				"io: column %s has %d entries, %s has %d",
				names[i], len(col), names[0], len(cols[0]),
			)
		}
		cols[i] = col
	}
	return cols, nil
}

// ReadTextCatalog reads the given columns of a whitespace-delimited text
// catalog. The table library panics on unreadable files, so that panic is
// converted back into a returned error.
func ReadTextCatalog(path string, colIdxs []int) (cols [][]float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			cols, err = nil, fmt.Errorf("io: reading catalog %s: %v", path, r)
		}
	}()
	return table.TextFile(path).ReadFloat64s(colIdxs), nil
}
