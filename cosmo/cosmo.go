/*package cosmo evaluates background quantities of a flat LCDM cosmology:
line-of-sight distances, densities, and the critical surface density used
to turn deposited mass maps into lensing convergence.
*/
package cosmo

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// Physical constants: C in km/s, G in Mpc/Msun (km/s)^2, Apr in arcsec per
// radian.
const (
	C   = 299792.458
	G   = 4.30091e-9
	Apr = 3600 * 180 / math.Pi
)

// Gauss-Legendre node count for the distance integrals.
const quadNodes = 64

// FlatLCDM is a flat Lambda-CDM background. OmegaL is fixed to 1 - OmegaM.
type FlatLCDM struct {
	H0     float64 // km/s/Mpc
	OmegaM float64
	OmegaB float64
}

// OuterRim returns the cosmology of the OuterRim simulation.
func OuterRim() *FlatLCDM {
	return &FlatLCDM{H0: 71, OmegaM: 0.220, OmegaB: 0.02258 / (0.71 * 0.71)}
}

// OmegaL returns the dark energy density parameter.
func (c *FlatLCDM) OmegaL() float64 { return 1 - c.OmegaM }

// E returns the dimensionless Hubble parameter H(z)/H0.
func (c *FlatLCDM) E(z float64) float64 {
	zp := 1 + z
	return math.Sqrt(c.OmegaM*zp*zp*zp + c.OmegaL())
}

// ComovingDistance returns the line-of-sight comoving distance to redshift
// z in Mpc.
func (c *FlatLCDM) ComovingDistance(z float64) float64 {
	if z <= 0 {
		return 0
	}
	dh := C / c.H0
	return dh * quad.Fixed(
		func(zz float64) float64 { return 1 / c.E(zz) },
		0, z, quadNodes, nil, 0,
	)
}

// ComovingDistance2 returns the comoving distance between redshifts z1 and
// z2 in Mpc.
func (c *FlatLCDM) ComovingDistance2(z1, z2 float64) float64 {
	return c.ComovingDistance(z2) - c.ComovingDistance(z1)
}

// AngularDiameterDistance returns the angular diameter distance to z in
// proper Mpc.
func (c *FlatLCDM) AngularDiameterDistance(z float64) float64 {
	return c.ComovingDistance(z) / (1 + z)
}

// AngularDiameterDistance2 returns the angular diameter distance between
// redshifts z1 and z2 in proper Mpc, valid for a flat universe.
func (c *FlatLCDM) AngularDiameterDistance2(z1, z2 float64) float64 {
	return c.ComovingDistance2(z1, z2) / (1 + z2)
}

// RhoCrit0 returns the critical density at z = 0 in Msun/Mpc^3.
func (c *FlatLCDM) RhoCrit0() float64 {
	return 3 * c.H0 * c.H0 / (8 * math.Pi * G)
}

// ParticleMass returns the mass per particle, in Msun, of a simulation
// with np particles in a periodic box of comoving side l Mpc.
func (c *FlatLCDM) ParticleMass(l, np float64) float64 {
	return c.RhoCrit0() * c.OmegaM * l * l * l / np
}

// ProjectedRhoMean returns the mean matter density of the universe
// integrated between the comoving distances to z1 and z2, in Msun/Mpc^2.
func (c *FlatLCDM) ProjectedRhoMean(z1, z2 float64) float64 {
	return c.OmegaM * c.RhoCrit0() * c.ComovingDistance2(z1, z2)
}

// SigmaCrit returns the critical surface density for a lens at zl and a
// source at zs, in Msun/Mpc^2.
func (c *FlatLCDM) SigmaCrit(zl, zs float64) float64 {
	return C * C / (4 * math.Pi * G) *
		c.AngularDiameterDistance(zs) /
		(c.AngularDiameterDistance(zl) * c.AngularDiameterDistance2(zl, zs))
}
