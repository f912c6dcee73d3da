/*package grid describes the geometry of a regular 2D surface-density grid
and the mapping from physical positions onto grid cells.
*/
package grid

import (
	"fmt"
	"math"
)

// Geometry fully determines the affine map from a physical position to a
// fractional cell coordinate: an Nx x Ny grid of square cells of side Cell,
// centered on (Center1, Center2). Grids are flattened row-major, with the
// first coordinate indexing rows.
type Geometry struct {
	Center1, Center2 float64
	Cell             float64
	Nx, Ny           int
}

// New returns the geometry of an nx x ny grid of square cells of side cell,
// centered on (center1, center2).
func New(center1, center2, cell float64, nx, ny int) *Geometry {
	return &Geometry{center1, center2, cell, nx, ny}
}

// NewFOV returns the geometry of a square field of view with total side
// length bsz split into nnn cells per side. Cell centers run from
// -bsz/2 + cell/2 to +bsz/2 - cell/2 around the given center.
func NewFOV(bsz float64, nnn int, center1, center2 float64) *Geometry {
	return &Geometry{center1, center2, bsz / float64(nnn), nnn, nnn}
}

// Validate returns an error describing the first invalid geometry
// parameter, if any.
func (g *Geometry) Validate() error {
	if g.Cell <= 0 {
		return fmt.Errorf("grid: cell size must be positive, got %g", g.Cell)
	}
	if g.Nx <= 0 || g.Ny <= 0 {
		return fmt.Errorf(
			"grid: dimensions must be positive, got %d x %d", g.Nx, g.Ny,
		)
	}
	return nil
}

// Cells returns the total number of cells in the grid.
func (g *Geometry) Cells() int { return g.Nx * g.Ny }

// Idx returns the flattened row-major index of cell (i, j).
func (g *Geometry) Idx(i, j int) int { return i*g.Ny + j }

// RoundCell maps a physical position to the nearest grid cell using the
// rounding convention
//
//	xb = (p - center)/cell + n/2 - cell/2
//	i  = round(xb)
//
// and reports whether the cell lies inside the grid. Halfway values round
// away from zero.
func (g *Geometry) RoundCell(p1, p2 float64) (i, j int, ok bool) {
	xb1 := (p1-g.Center1)/g.Cell + float64(g.Nx)/2 - 0.5*g.Cell
	xb2 := (p2-g.Center2)/g.Cell + float64(g.Ny)/2 - 0.5*g.Cell

	i = int(math.Round(xb1))
	j = int(math.Round(xb2))

	if i < 0 || i > g.Nx-1 || j < 0 || j > g.Ny-1 {
		return i, j, false
	}
	return i, j, true
}

// FloorCell maps a physical position to its base cell using the truncating
// convention
//
//	xb = (p - center)/cell + n/2 - 1/2
//	i  = trunc(xb)
//
// and reports whether the cell lies inside the grid. The upper bound leaves
// room for the (i+1, j+1) neighbors, so valid cells satisfy i <= nx-2 and
// j <= ny-2.
func (g *Geometry) FloorCell(p1, p2 float64) (i, j int, ok bool) {
	xb1 := (p1-g.Center1)/g.Cell + float64(g.Nx)/2 - 0.5
	xb2 := (p2-g.Center2)/g.Cell + float64(g.Ny)/2 - 0.5

	i = int(xb1)
	j = int(xb2)

	if i < 0 || i > g.Nx-2 || j < 0 || j > g.Ny-2 {
		return i, j, false
	}
	return i, j, true
}

// FloorFrac is FloorCell plus the bilinear weights of the base cell,
// wx = 1 - (xb1 - i) and wy = 1 - (xb2 - j).
func (g *Geometry) FloorFrac(p1, p2 float64) (i, j int, wx, wy float64, ok bool) {
	xb1 := (p1-g.Center1)/g.Cell + float64(g.Nx)/2 - 0.5
	xb2 := (p2-g.Center2)/g.Cell + float64(g.Ny)/2 - 0.5

	i = int(xb1)
	j = int(xb2)

	if i < 0 || i > g.Nx-2 || j < 0 || j > g.Ny-2 {
		return i, j, 0, 0, false
	}

	wx = 1 - (xb1 - float64(i))
	wy = 1 - (xb2 - float64(j))
	return i, j, wx, wy, true
}

// Centers1 returns the physical coordinates of the cell centers along the
// first axis.
func (g *Geometry) Centers1() []float64 { return g.centers(g.Center1, g.Nx) }

// Centers2 returns the physical coordinates of the cell centers along the
// second axis.
func (g *Geometry) Centers2() []float64 { return g.centers(g.Center2, g.Ny) }

func (g *Geometry) centers(center float64, n int) []float64 {
	xs := make([]float64, n)
	low := center - float64(n)*g.Cell/2 + g.Cell/2
	for i := range xs {
		xs[i] = low + float64(i)*g.Cell
	}
	return xs
}
