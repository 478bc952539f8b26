package ARZ

import (
	"math"

	"github.com/notargets/gotraffic/utils"
)

/*
	Closure laws for the ARZ model. Density is a fraction of jam density and must lie in
	the open interval (0,1); nothing here clamps or validates.
*/

// Hesitation h(rho) = 25 rho^0.2 / (1-rho)^0.1
func Hesitation(rho float64) float64 {
	return 25. * math.Pow(rho, 0.2) / math.Pow(1.-rho, 0.1)
}

// G is the smoothed kink shaping the equilibrium speed curve
func G(y float64) float64 {
	a := 10. * (y - 1./3)
	return math.Sqrt(1. + a*a)
}

var (
	g0 = G(0.)
	g1 = G(1.)
)

// DesiredVelocity is the equilibrium speed U(rho), undefined at rho = 0
func DesiredVelocity(rho float64) float64 {
	return 1.4976 * (g0 + (g1-g0)*rho - G(rho)) / rho
}

func HesitationVec(rho utils.Vector) (h utils.Vector) {
	h = rho.Copy().Apply(Hesitation)
	return
}

func DesiredVelocityVec(rho utils.Vector) (U utils.Vector) {
	U = rho.Copy().Apply(DesiredVelocity)
	return
}

// Velocity recovers u = q/rho - h(rho) from the conserved pair
func Velocity(rho, q float64) float64 {
	return q/rho - Hesitation(rho)
}
