package lens

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halolens/sdens/cosmo"
)

func TestNewInputs(t *testing.T) {
	// boxRadius of 180 arcsec gives a 0.1 degree field of view.
	in := NewInputs(0.3, 1e14, 180, 2.5, 1e9, 1024)

	assert.InDelta(t, 0.1, in.Bsz, 1e-12)
	assert.InDelta(t, 5.0, in.BszMpc, 1e-12)
	assert.InDelta(t, 360.0, in.BszArc, 1e-12)
	assert.InDelta(t, in.Bsz/1024, in.Dsx, 1e-15)
	assert.InDelta(t, in.BszArc/1024, in.DsxArc, 1e-12)
	assert.Equal(t, 10.0, in.ZS0)
	assert.Equal(t, 5, in.NPad)
}

func TestGeometry(t *testing.T) {
	in := NewInputs(0.3, 1e14, 180, 2.5, 1e9, 1024)
	g := in.Geometry(0, 0)

	assert.Equal(t, 1024, g.Nx)
	assert.Equal(t, 1024, g.Ny)
	assert.InDelta(t, in.DsxArc, g.Cell, 1e-12)

	// Cell centers must span the field of view symmetrically.
	c1 := g.Centers1()
	assert.InDelta(t, -in.BszArc/2+g.Cell/2, c1[0], 1e-9)
	assert.InDelta(t, in.BszArc/2-g.Cell/2, c1[len(c1)-1], 1e-9)
}

func TestPlaneEdges(t *testing.T) {
	c := cosmo.OuterRim()
	in := NewInputs(0.3, 1e14, 180, 2.5, 1e9, 1024)
	cfg := DefaultPlaneConfig(1.0)

	edges, err := PlaneEdges(in, cfg, c)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(edges), 2)

	// Edges increase strictly and start from the front of the volume.
	for i := 1; i < len(edges); i++ {
		assert.Greater(t, edges[i], edges[i-1], "edge %d", i)
	}
	assert.Equal(t, 0.0, edges[0])
	assert.Equal(t, 1.0, edges[len(edges)-1])

	// No surviving edge sits within the safe zone of the halo.
	dHalo := c.ComovingDistance(in.HaloRedshift)
	for _, z := range edges {
		assert.Greater(t,
			math.Abs(dHalo-c.ComovingDistance(z)), cfg.SafeZone,
			"edge z = %g", z)
	}
}

func TestPlaneEdgesMinDepth(t *testing.T) {
	c := cosmo.OuterRim()
	in := NewInputs(0.3, 1e14, 180, 2.5, 1e9, 1024)
	cfg := DefaultPlaneConfig(1.0)
	cfg.MinDepth = 0.2

	edges, err := PlaneEdges(in, cfg, c)
	assert.NoError(t, err)
	for _, z := range edges {
		assert.GreaterOrEqual(t, z, 0.2)
	}
}

func TestPlaneEdgesErrors(t *testing.T) {
	c := cosmo.OuterRim()
	in := NewInputs(0.3, 1e14, 180, 2.5, 1e9, 1024)

	_, err := PlaneEdges(in, PlaneConfig{MaxRedshift: 0}, c)
	assert.Error(t, err)

	cfg := DefaultPlaneConfig(1.0)
	cfg.MeanWidth = 0
	_, err = PlaneEdges(in, cfg, c)
	assert.Error(t, err)
}
