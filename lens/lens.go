/*package lens assembles the inputs for depositing a halo cutout onto
lens-plane grids: the field-of-view geometry implied by the cutout box
radius, and the redshift edges of the lens planes along the line of sight.
*/
package lens

import (
	"fmt"
	"math"

	"github.com/halolens/sdens/cosmo"
	"github.com/halolens/sdens/grid"
)

// Inputs collects the cutout quantities needed to deposit a halo's
// particles onto a lens-plane grid. Angles are stored both in degrees and
// arcsec because the property files record the box radius in arcsec while
// the deposition grids work in arcsec directly.
type Inputs struct {
	HaloRedshift float64
	HaloMass     float64 // Msun
	MPP          float64 // Msun per particle

	Bsz    float64 // field of view, degrees
	BszMpc float64 // field of view, comoving Mpc
	Nnn    int     // cells per side

	Dsx    float64 // cell size, degrees
	BszArc float64 // field of view, arcsec
	DsxArc float64 // cell size, arcsec

	ZS0  float64 // fiducial source redshift
	NPad int
}

// NewInputs derives the field-of-view quantities from a cutout's box
// radius (half the square side length, in arcsec and comoving Mpc) and the
// grid resolution nnn.
func NewInputs(
	haloRedshift, haloMass, boxRadiusArcsec, boxRadiusMpc, mpp float64,
	nnn int,
) *Inputs {
	in := &Inputs{
		HaloRedshift: haloRedshift,
		HaloMass:     haloMass,
		MPP:          mpp,
		Nnn:          nnn,
	}

	in.Bsz = 2 * boxRadiusArcsec / 3600
	in.BszMpc = 2 * boxRadiusMpc
	in.Dsx = in.Bsz / float64(nnn)
	in.BszArc = in.Bsz * 3600
	in.DsxArc = in.Dsx * 3600
	in.ZS0 = 10.0
	in.NPad = 5

	return in
}

// Geometry returns the field-of-view grid in arcsec, centered on the given
// sky position.
func (in *Inputs) Geometry(center1, center2 float64) *grid.Geometry {
	return grid.NewFOV(in.BszArc, in.Nnn, center1, center2)
}

// PlaneConfig controls the construction of lens-plane edges along the line
// of sight.
type PlaneConfig struct {
	MaxRedshift float64
	// MinDepth drops any edge below this redshift, for lines of sight
	// that are empty except near one object.
	MinDepth float64
	// SafeZone is the comoving distance, in Mpc, within which an edge is
	// considered to cut through the halo and is removed.
	SafeZone float64
	// MeanWidth is the target comoving width of one plane in Mpc.
	MeanWidth float64
}

// DefaultPlaneConfig returns the plane construction defaults used for halo
// cutouts.
func DefaultPlaneConfig(maxRedshift float64) PlaneConfig {
	return PlaneConfig{MaxRedshift: maxRedshift, SafeZone: 20, MeanWidth: 70}
}

// PlaneEdges splits the line of sight out to cfg.MaxRedshift into planes
// roughly cfg.MeanWidth comoving Mpc wide. Edges within cfg.SafeZone Mpc
// of the halo's comoving distance are removed so no plane boundary slices
// through the halo, and edges below cfg.MinDepth are dropped. The returned
// edges bound len(edges)-1 planes.
func PlaneEdges(in *Inputs, cfg PlaneConfig, c *cosmo.FlatLCDM) ([]float64, error) {
	if cfg.MaxRedshift <= 0 {
		return nil, fmt.Errorf(
			"lens: max redshift must be positive, got %g", cfg.MaxRedshift,
		)
	}
	if cfg.MeanWidth <= 0 {
		return nil, fmt.Errorf(
			"lens: mean plane width must be positive, got %g", cfg.MeanWidth,
		)
	}

	depth := c.ComovingDistance(cfg.MaxRedshift)
	n := int(depth / cfg.MeanWidth)
	if n < 1 {
		n = 1
	}
	edges := linspace(0, cfg.MaxRedshift, n+1)

	dHalo := c.ComovingDistance(in.HaloRedshift)
	kept := edges[:0]
	for _, z := range edges {
		if math.Abs(dHalo-c.ComovingDistance(z)) <= cfg.SafeZone {
			continue
		}
		if z < cfg.MinDepth {
			continue
		}
		kept = append(kept, z)
	}

	if len(kept) < 2 {
		return nil, fmt.Errorf(
			"lens: no planes remain out to z = %g", cfg.MaxRedshift,
		)
	}
	return kept, nil
}

func linspace(lo, hi float64, n int) []float64 {
	xs := make([]float64, n)
	dx := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + float64(i)*dx
	}
	xs[n-1] = hi
	return xs
}
