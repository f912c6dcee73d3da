package io

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halolens/sdens/grid"
)

func TestGridRoundTrip(t *testing.T) {
	g := grid.New(1.5, -2.5, 0.25, 8, 6)
	rho := make([]float64, g.Cells())
	for i := range rho {
		rho[i] = float64(i) * 0.5
	}

	buf := &bytes.Buffer{}
	err := WriteGrid(buf, NewGridHeader(g, 1000), rho)
	assert.NoError(t, err)

	hd, got, err := ReadGrid(buf)
	assert.NoError(t, err)
	assert.Equal(t, int64(-1), hd.Endianness)
	assert.Equal(t, int64(1000), hd.Particles)
	assert.Equal(t, g, hd.Geometry())
	assert.Equal(t, rho, got)
}

func TestWriteGridLengthMismatch(t *testing.T) {
	g := grid.New(0, 0, 1, 4, 4)
	err := WriteGrid(&bytes.Buffer{}, NewGridHeader(g, 0), make([]float64, 3))
	assert.Error(t, err)
}

func TestReadProperties(t *testing.T) {
	text := "#halo_redshift, sod_halo_mass, sod_halo_radius, " +
		"sod_halo_cdelta, halo_lc_x, halo_lc_y, halo_lc_z, " +
		"boxRadius_Mpc, boxRadius_arcsec, mpp\n" +
		"0.300000,100000000000000.000000,1.200000,5.500000," +
		"0.000000,0.000000,0.000000,2.500000,180.000000," +
		"1000000000.000000\n"

	path := filepath.Join(t.TempDir(), "properties.csv")
	assert.NoError(t, os.WriteFile(path, []byte(text), 0644))

	props, err := ReadProperties(path)
	assert.NoError(t, err)
	assert.InDelta(t, 0.3, props.HaloRedshift, 1e-12)
	assert.InDelta(t, 1e14, props.SodHaloMass, 1e2)
	assert.InDelta(t, 5.5, props.SodHaloCDelta, 1e-12)
	assert.InDelta(t, 2.5, props.BoxRadiusMpc, 1e-12)
	assert.InDelta(t, 180.0, props.BoxRadiusArcsec, 1e-12)
	assert.InDelta(t, 1e9, props.MPP, 1e-3)
}

// Point-mass cutouts carry fewer columns; the missing ones stay zero.
func TestReadPropertiesShortRow(t *testing.T) {
	text := "#halo_redshift, sod_halo_mass, halo_lc_x, halo_lc_y, " +
		"halo_lc_z, boxRadius_Mpc, boxRadius_arcsec, mpp\n" +
		"0.500000,1000000000000.000000,0.000000,0.000000,0.000000," +
		"3.000000,200.000000,1000000000000.000000\n"

	path := filepath.Join(t.TempDir(), "properties.csv")
	assert.NoError(t, os.WriteFile(path, []byte(text), 0644))

	props, err := ReadProperties(path)
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, props.HaloRedshift, 1e-12)
	assert.Equal(t, 0.0, props.SodHaloRadius)
	assert.InDelta(t, 200.0, props.BoxRadiusArcsec, 1e-12)
}

func TestReadPropertiesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "properties.csv")
	assert.NoError(t, os.WriteFile(path, []byte("#halo_redshift\n"), 0644))

	_, err := ReadProperties(path)
	assert.Error(t, err)
}

func TestReadColumn(t *testing.T) {
	vals := []float32{1.5, -2.25, 0, 1e8}
	buf := &bytes.Buffer{}
	assert.NoError(t, binary.Write(buf, binary.LittleEndian, vals))

	dir := t.TempDir()
	path := filepath.Join(dir, "x.bin")
	assert.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	got, err := ReadColumn(path)
	assert.NoError(t, err)
	assert.Equal(t, len(vals), len(got))
	for i := range vals {
		assert.Equal(t, float64(vals[i]), got[i], "value %d", i)
	}

	// Truncated files are rejected rather than silently misread.
	assert.NoError(t, os.WriteFile(path, buf.Bytes()[:6], 0644))
	_, err = ReadColumn(path)
	assert.Error(t, err)
}

func TestReadCutoutColumns(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, vals []float32) {
		buf := &bytes.Buffer{}
		assert.NoError(t, binary.Write(buf, binary.LittleEndian, vals))
		assert.NoError(t, os.WriteFile(
			filepath.Join(dir, name+".bin"), buf.Bytes(), 0644,
		))
	}

	write("theta", []float32{1, 2, 3})
	write("phi", []float32{4, 5, 6})
	cols, err := ReadCutoutColumns(dir, "theta", "phi")
	assert.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, cols)

	write("phi", []float32{4, 5})
	_, err = ReadCutoutColumns(dir, "theta", "phi")
	assert.Error(t, err)
}

func TestReadTextCatalog(t *testing.T) {
	text := "#id x y m\n" +
		"0 1.5 -2.0 100.0\n" +
		"1 0.25 3.0 200.0\n" +
		"2 -4.0 0.5 300.0\n"

	path := filepath.Join(t.TempDir(), "catalog.txt")
	assert.NoError(t, os.WriteFile(path, []byte(text), 0644))

	cols, err := ReadTextCatalog(path, []int{1, 2, 3})
	assert.NoError(t, err)
	assert.Equal(t, [][]float64{
		{1.5, 0.25, -4.0},
		{-2.0, 3.0, 0.5},
		{100.0, 200.0, 300.0},
	}, cols)

	_, err = ReadTextCatalog(filepath.Join(t.TempDir(), "none.txt"), []int{0})
	assert.Error(t, err)
}

func TestDepositConfigValidation(t *testing.T) {
	wrap := DefaultDepositWrapper()
	con := &wrap.Deposit

	assert.False(t, con.ValidInput())
	assert.False(t, con.ValidOutput())
	assert.True(t, con.ValidCells())
	assert.True(t, con.ValidScheme())
	assert.False(t, con.Weighted())

	con.Scheme = "Rebin"
	assert.True(t, con.ValidScheme())
	assert.True(t, con.Weighted())

	con.Scheme = "dtfe"
	assert.False(t, con.ValidScheme())

	assert.True(t, con.ValidCatalogCols())
	con.Catalog = "catalog.txt"
	assert.True(t, con.ValidCatalogCols())
	con.CatalogCol2 = 0
	assert.False(t, con.ValidCatalogCols())
	con.CatalogCol2 = -1
	assert.False(t, con.ValidCatalogCols())
}
