package io

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/halolens/sdens/grid"

	"unsafe"
)

// GridHeader is the fixed-size binary header preceding a flattened density
// grid in a .sdens file. All fields are little-endian.
type GridHeader struct {
	Endianness int64
	HeaderSize int64

	Nx, Ny                 int64
	Center1, Center2, Cell float64

	Particles int64
}

// NewGridHeader builds the header for a grid with the given geometry,
// deposited from particles particles.
func NewGridHeader(g *grid.Geometry, particles int) *GridHeader {
	return &GridHeader{
		Nx: int64(g.Nx), Ny: int64(g.Ny),
		Center1: g.Center1, Center2: g.Center2, Cell: g.Cell,
		Particles: int64(particles),
	}
}

// Geometry reconstructs the grid geometry recorded in the header.
func (hd *GridHeader) Geometry() *grid.Geometry {
	return grid.New(hd.Center1, hd.Center2, hd.Cell, int(hd.Nx), int(hd.Ny))
}

// WriteGrid writes the header and the flattened grid. The Endianness and
// HeaderSize fields are filled in here.
func WriteGrid(wr io.Writer, hd *GridHeader, rho []float64) error {
	if int(hd.Nx*hd.Ny) != len(rho) {
		return fmt.Errorf(
			"io: grid has %d cells, header records %d x %d",
			len(rho), hd.Nx, hd.Ny,
		)
	}

	hd.Endianness = -1
	hd.HeaderSize = int64(unsafe.Sizeof(*hd))

	if err := binary.Write(wr, end, hd); err != nil {
		return err
	}
	return binary.Write(wr, end, rho)
}

// ReadGrid reads a header and grid written by WriteGrid.
func ReadGrid(rd io.Reader) (*GridHeader, []float64, error) {
	hd := &GridHeader{}
	if err := binary.Read(rd, end, hd); err != nil {
		return nil, nil, err
	}
	if hd.Nx <= 0 || hd.Ny <= 0 {
		return nil, nil, fmt.Errorf(
			"io: corrupted grid header, dimensions %d x %d", hd.Nx, hd.Ny,
		)
	}

	rho := make([]float64, hd.Nx*hd.Ny)
	if err := binary.Read(rd, end, rho); err != nil {
		return nil, nil, err
	}
	return hd, rho, nil
}
