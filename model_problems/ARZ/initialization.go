package ARZ

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/gotraffic/utils"
)

const (
	XLower = 0.
	XUpper = 500.
)

// Domain is the 1D interval divided into NumCells equal finite volume cells
type Domain struct {
	XLower   float64 `json:"x_lower"`
	XUpper   float64 `json:"x_upper"`
	NumCells int     `json:"num_cells"`
}

func NewDomain(NumCells int) (d Domain, err error) {
	if NumCells <= 0 {
		err = fmt.Errorf("number of cells = %d must be positive: %w", NumCells, ErrInvalidParameter)
		return
	}
	d = Domain{XLower: XLower, XUpper: XUpper, NumCells: NumCells}
	return
}

func (d Domain) Dx() float64 {
	return (d.XUpper - d.XLower) / float64(d.NumCells)
}

// Centers returns the cell center coordinates
func (d Domain) Centers() (xc utils.Vector) {
	var (
		dx = d.Dx()
	)
	xc = utils.NewVector(d.NumCells)
	xD := xc.Data()
	for i := range xD {
		xD[i] = d.XLower + (float64(i)+0.5)*dx
	}
	return
}

type InitType uint

const (
	// WIGGLES is a small two mode perturbation of a uniform 0.6 density at rest
	WIGGLES InitType = iota
	// RP1 is a Riemann problem, dense traffic on the left and light traffic on the right
	RP1
)

var (
	InitNames = map[string]InitType{
		"wiggles": WIGGLES,
		"rp1":     RP1,
	}
	InitPrintNames = []string{"Wiggles (periodic perturbation)", "RP1 (Riemann problem)"}
)

func NewInitType(label string) (it InitType, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if it, ok = InitNames[label]; !ok {
		err = fmt.Errorf("unable to use init type named %q, must be one of [wiggles rp1]: %w",
			label, ErrUnknownInitType)
	}
	return
}

func (it InitType) Print() (txt string) {
	txt = InitPrintNames[it]
	return
}

// BoundaryCondition is the tag the initial condition dictates for both domain edges
func (it InitType) BoundaryCondition() utils.BCType {
	if it == RP1 {
		return utils.BCExtrapolate
	}
	return utils.BCPeriodic
}

// Relaxes is false for RP1, which studies the bare hyperbolic Riemann problem
func (it InitType) Relaxes() bool {
	return it != RP1
}

// Defaults returns the run length and output count used unless overridden
func (it InitType) Defaults() (FinalTime float64, NumOutputTimes int) {
	switch it {
	case RP1:
		return 10., 10
	default:
		return 600., 1800
	}
}

// Initialize evaluates the initial conserved state at the cell centers of d
func (it InitType) Initialize(d Domain) (Q utils.Matrix) {
	switch it {
	case RP1:
		Q = InitializeRP1(d, 0.9, 0.1, 250.)
	default:
		Q = InitializeWiggles(d)
	}
	return
}

// InitializeWiggles sets a zero velocity state, so q = rho h(rho)
func InitializeWiggles(d Domain) (Q utils.Matrix) {
	var (
		xc = d.Centers().Data()
		L  = d.XUpper - d.XLower
	)
	Q = utils.NewMatrix(2, d.NumCells)
	rho, q := Q.RowView(0), Q.RowView(1)
	for i, x := range xc {
		rho[i] = 0.6 + 0.005*math.Sin(2*math.Pi*x/L) + 0.005*math.Sin(24*math.Pi*x/L)
		q[i] = rho[i] * Hesitation(rho[i])
	}
	return
}

// InitializeRP1 splits the domain at x0 with unit velocity on both sides, so q = rho (1 + h(rho))
func InitializeRP1(d Domain, rhoL, rhoR, x0 float64) (Q utils.Matrix) {
	var (
		xc = d.Centers().Data()
	)
	Q = utils.NewMatrix(2, d.NumCells)
	rho, q := Q.RowView(0), Q.RowView(1)
	for i, x := range xc {
		if x < x0 {
			rho[i] = rhoL
		} else {
			rho[i] = rhoR
		}
		q[i] = rho[i] * (1. + Hesitation(rho[i]))
	}
	return
}
