/*package deposit interpolates sequences of particle positions onto a 2D
surface-density grid.

Positions are given as two parallel slices, x1 and x2, optionally joined by
a slice of per-particle weights of the same length. Every kernel accumulates
into a caller-owned grid of geometry.Cells() float64 values: callers must
zero the grid before a fresh computation, and repeated calls add to the
existing contents. Particles that map outside the grid are skipped.
*/
package deposit

import (
	"fmt"

	"github.com/halolens/sdens/grid"
)

// Default scheduling parameters of the parallel kernels.
const (
	DefaultWorkers = 4
	DefaultChunk   = 16
)

// Options tunes the scheduling of the parallel kernels. The zero value and
// a nil pointer both select the defaults.
type Options struct {
	// Workers is the number of worker goroutines. Values below 2 force the
	// single-threaded path.
	Workers int
	// Chunk is the number of particles a worker claims per scheduling step.
	Chunk int
}

func (opt *Options) workers() int {
	if opt == nil || opt.Workers == 0 {
		return DefaultWorkers
	}
	return opt.Workers
}

func (opt *Options) chunk() int {
	if opt == nil || opt.Chunk <= 0 {
		return DefaultChunk
	}
	return opt.Chunk
}

// check validates the geometry, the grid length, and that all particle
// columns share one length.
func check(g *grid.Geometry, rho []float64, cols ...[]float64) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if len(rho) != g.Cells() {
		return fmt.Errorf(
			"deposit: grid has %d cells, geometry requires %d",
			len(rho), g.Cells(),
		)
	}
	for _, col := range cols[1:] {
		if len(col) != len(cols[0]) {
			return fmt.Errorf(
				"deposit: mismatched column lengths, %d and %d",
				len(cols[0]), len(col),
			)
		}
	}
	return nil
}

// Density deposits 1/(cell*cell) into the nearest grid cell of every
// in-bounds particle, using the rounding convention of grid.RoundCell. The
// particle range is split dynamically across opt.Workers goroutines; each
// accumulates into a private scratch grid that is folded into rho once the
// worker finishes, so cell sums match the single-threaded result up to
// floating-point addition order.
func Density(g *grid.Geometry, x1, x2, rho []float64, opt *Options) error {
	if err := check(g, rho, x1, x2); err != nil {
		return err
	}

	ds := 1 / (g.Cell * g.Cell)
	reduce(rho, len(x1), opt.workers(), opt.chunk(),
		func(rho []float64, lo, hi int) {
			for m := lo; m < hi; m++ {
				if i, j, ok := g.RoundCell(x1[m], x2[m]); ok {
					rho[g.Idx(i, j)] += ds
				}
			}
		})
	return nil
}

// WeightedDensity is Density with every contribution scaled by the
// particle's weight: mp[m]/(cell*cell) lands in the nearest cell.
func WeightedDensity(g *grid.Geometry, x1, x2, mp, rho []float64, opt *Options) error {
	if err := check(g, rho, x1, x2, mp); err != nil {
		return err
	}

	ds := 1 / (g.Cell * g.Cell)
	reduce(rho, len(x1), opt.workers(), opt.chunk(),
		func(rho []float64, lo, hi int) {
			for m := lo; m < hi; m++ {
				if i, j, ok := g.RoundCell(x1[m], x2[m]); ok {
					rho[g.Idx(i, j)] += mp[m] * ds
				}
			}
		})
	return nil
}

// CICDensity splits each particle's 1/(cell*cell) contribution across the
// four cells surrounding its fractional position, weighted bilinearly, so
// the four contributions of one particle always sum to 1/(cell*cell).
//
// The reference estimator runs this scheme single-threaded, and so does a
// nil opt. Setting opt.Workers above 1 runs the same bilinear math through
// the scratch-and-merge reduction used by Density.
func CICDensity(g *grid.Geometry, x1, x2, rho []float64, opt *Options) error {
	if err := check(g, rho, x1, x2); err != nil {
		return err
	}

	workers := 1
	if opt != nil && opt.Workers > 1 {
		workers = opt.Workers
	}

	ds := 1 / (g.Cell * g.Cell)
	reduce(rho, len(x1), workers, opt.chunk(),
		func(rho []float64, lo, hi int) {
			for m := lo; m < hi; m++ {
				i, j, wx, wy, ok := g.FloorFrac(x1[m], x2[m])
				if !ok {
					continue
				}

				idx := g.Idx(i, j)
				rho[idx] += wx * wy * ds
				rho[idx+1] += wx * (1 - wy) * ds
				rho[idx+g.Ny] += (1 - wx) * wy * ds
				rho[idx+g.Ny+1] += (1 - wx) * (1 - wy) * ds
			}
		})
	return nil
}

// WeightedDensitySerial deposits mp[m]/(cell*cell) into a single cell per
// particle, single-threaded, using the truncating convention of
// grid.FloorCell. Only one cell is touched, but the bounds check is the
// conservative nx-2/ny-2 one shared with CICDensity: particles mapping to
// the last row or column are dropped, exactly as in the reference
// estimator.
func WeightedDensitySerial(g *grid.Geometry, x1, x2, mp, rho []float64) error {
	if err := check(g, rho, x1, x2, mp); err != nil {
		return err
	}

	ds := 1 / (g.Cell * g.Cell)
	for m := range x1 {
		if i, j, ok := g.FloorCell(x1[m], x2[m]); ok {
			rho[g.Idx(i, j)] += mp[m] * ds
		}
	}
	return nil
}

// Rebin deposits each particle's raw weight into its nearest cell, using
// the same rounding convention as Density but without the cell-area
// normalization. The result is a rebinned weight sum rather than a surface
// density.
func Rebin(g *grid.Geometry, x1, x2, mp, rho []float64) error {
	if err := check(g, rho, x1, x2, mp); err != nil {
		return err
	}

	for m := range x1 {
		if i, j, ok := g.RoundCell(x1[m], x2[m]); ok {
			rho[g.Idx(i, j)] += mp[m]
		}
	}
	return nil
}
