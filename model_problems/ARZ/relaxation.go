package ARZ

import (
	"fmt"
	"math"

	"github.com/notargets/gotraffic/utils"
)

const DefaultTau = 5.

// ApplicationMode selects how the relaxation increment reaches the solution
type ApplicationMode uint

const (
	// InPlace adds the increment to the momentum row and returns a zero residual. Used by
	// the classic solver, which applies the source as a split step after the flux update.
	InPlace ApplicationMode = iota
	// ResidualOnly returns the increment in the momentum row and leaves the state alone.
	// Used by SharpClaw, whose Runge-Kutta stages fold the residual into their own update.
	ResidualOnly
)

var (
	ModePrintNames = []string{"In Place (step source)", "Residual Only (dq source)"}
)

func (m ApplicationMode) Print() (txt string) {
	txt = ModePrintNames[m]
	return
}

/*
	Relaxation drives the velocity u = q/rho - h(rho) toward the equilibrium U(rho) on the
	time scale Tau:

		dq = dt * (U(rho) - u) / Tau

	The explicit form overshoots once dt approaches Tau. That is a property of the stiff
	source, the stepping engine is responsible for keeping dt well below Tau.
*/
type Relaxation struct {
	Tau           float64
	Partitions    *utils.PartitionMap
	StrictDensity bool // Reject densities outside (0,1) before touching the state
}

func NewRelaxation(tau float64, ProcLimit, NumCells int) (r *Relaxation, err error) {
	if !(tau > 0) || math.IsInf(tau, 0) {
		err = fmt.Errorf("relaxation time tau = %v must be positive: %w", tau, ErrInvalidParameter)
		return
	}
	if NumCells <= 0 {
		err = fmt.Errorf("number of cells = %d must be positive: %w", NumCells, ErrInvalidParameter)
		return
	}
	NP := utils.ParallelDegree(ProcLimit, NumCells)
	r = &Relaxation{
		Tau:        tau,
		Partitions: utils.NewPartitionMap(NP, NumCells),
	}
	return
}

// increment is the single definition of the relaxation update for one cell
func (r *Relaxation) increment(rho, q, dt float64) (dq float64) {
	velocity := Velocity(rho, q)
	dq = dt * (DesiredVelocity(rho) - velocity) / r.Tau
	return
}

// Apply evaluates the relaxation term for every cell of Q (row 0 density, row 1 momentum).
// The returned src always has the shape of Q. In InPlace mode src is zero and Q's
// momentum row has been advanced, in ResidualOnly mode src holds the increment in its
// momentum row and Q is unchanged.
func (r *Relaxation) Apply(Q utils.Matrix, dt float64, mode ApplicationMode) (src utils.Matrix, err error) {
	var (
		nr, nc = Q.Dims()
	)
	if nr != 2 {
		err = fmt.Errorf("state has %d rows: %w", nr, ErrStateShape)
		return
	}
	if r.Partitions == nil || r.Partitions.MaxIndex != nc {
		err = fmt.Errorf("state has %d cells, relaxation was built for %d: %w",
			nc, r.partitionSize(), ErrStateShape)
		return
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		err = fmt.Errorf("dt = %v: %w", dt, ErrInvalidParameter)
		return
	}
	if mode != InPlace && mode != ResidualOnly {
		err = fmt.Errorf("application mode %d: %w", mode, ErrInvalidParameter)
		return
	}
	var (
		rho = Q.RowView(0)
		q   = Q.RowView(1)
	)
	if r.StrictDensity {
		if err = CheckDensity(rho); err != nil {
			return
		}
	}
	src = utils.NewMatrix(nr, nc)
	dq := src.RowView(1)
	switch mode {
	case InPlace:
		r.Partitions.Each(func(_, kMin, kMax int) {
			for k := kMin; k < kMax; k++ {
				q[k] = q[k] + r.increment(rho[k], q[k], dt)
			}
		})
	case ResidualOnly:
		r.Partitions.Each(func(_, kMin, kMax int) {
			for k := kMin; k < kMax; k++ {
				dq[k] = r.increment(rho[k], q[k], dt)
			}
		})
	}
	return
}

func (r *Relaxation) partitionSize() int {
	if r.Partitions == nil {
		return 0
	}
	return r.Partitions.MaxIndex
}

// CheckDensity reports the first cell whose density is not strictly inside (0,1)
func CheckDensity(rho []float64) (err error) {
	for k, val := range rho {
		if !(val > 0 && val < 1) {
			err = fmt.Errorf("cell %d has rho = %v: %w", k, val, ErrDensityOutOfRange)
			return
		}
	}
	return
}

// SourceTerm binds the relaxation operator to the hook slot the engine calls it from
type SourceTerm struct {
	Relax *Relaxation
	Mode  ApplicationMode
}

// Evaluate is the callback the stepping engine invokes, once per step for InPlace and
// once per Runge-Kutta stage for ResidualOnly
func (st *SourceTerm) Evaluate(Q utils.Matrix, dt float64) (utils.Matrix, error) {
	return st.Relax.Apply(Q, dt, st.Mode)
}
