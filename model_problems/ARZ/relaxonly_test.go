package ARZ

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotraffic/utils"
)

func relaxScenario(t *testing.T, N int, FinalTime float64) (sc *Scenario, Q utils.Matrix) {
	var (
		err  error
		opts = DefaultOptions()
	)
	opts.SolverType = "classic"
	opts.NumCells = N
	opts.FinalTime = FinalTime
	sc, Q, err = NewScenario(opts)
	require.NoError(t, err)
	return
}

func TestRelaxOnlyConverges(t *testing.T) {
	for _, st := range []string{"classic", "sharpclaw"} {
		sc, Q, err := NewScenario(Options{SolverType: st, RiemannSolver: "hll", InitType: "wiggles",
			NumCells: 1000, Tau: 5, WenoOrder: 5, FinalTime: 50})
		require.NoError(t, err)
		rho0 := Q.Row(0).Data()
		ro := &RelaxOnly{Dt: 0.1, ReportEvery: 100}
		require.NoError(t, sc.Run(context.Background(), ro, Q))
		// Reports at steps 0, 100, ..., 500, plus a final one if round off leaves a sliver
		assert.True(t, len(ro.History) == 6 || len(ro.History) == 7, "%d reports", len(ro.History))
		first, last := ro.History[0], ro.History[len(ro.History)-1]
		assert.Equal(t, 0, first.Step)
		assert.Equal(t, 100, ro.History[1].Step)
		assert.InDelta(t, 500, last.Step, 1)
		assert.InDelta(t, 50., last.Time, 1.e-9)
		// Monotone decay toward equilibrium
		for i := 1; i < len(ro.History); i++ {
			assert.LessOrEqual(t, ro.History[i].MaxDeviation, ro.History[i-1].MaxDeviation, st)
		}
		assert.Less(t, last.MaxDeviation, 1.e-5*first.MaxDeviation, st)
		// Density is untouched by the source
		assert.Equal(t, rho0, Q.RowView(0), st)
	}
}

func TestRelaxOnlyUnstable(t *testing.T) {
	sc, Q, err := NewScenario(Options{SolverType: "classic", RiemannSolver: "hll", InitType: "wiggles",
		NumCells: 64, Tau: 5, FinalTime: 1.e300})
	require.NoError(t, err)
	ro := &RelaxOnly{Dt: 1.e299}
	err = sc.Run(context.Background(), ro, Q)
	assert.True(t, errors.Is(err, ErrNonFinite), "%v", err)
}

func TestRelaxOnlyErrors(t *testing.T) {
	{
		sc, Q := relaxScenario(t, 20, 1)
		for _, dt := range []float64{0, -1, math.Inf(1), math.NaN()} {
			err := sc.Run(context.Background(), &RelaxOnly{Dt: dt}, Q)
			assert.True(t, errors.Is(err, ErrInvalidParameter), "dt = %v", dt)
		}
	}
	// RP1 has no relaxation to integrate
	{
		opts := DefaultOptions()
		opts.InitType = "rp1"
		opts.NumCells = 20
		sc, Q, err := NewScenario(opts)
		require.NoError(t, err)
		err = sc.Run(context.Background(), &RelaxOnly{Dt: 0.1}, Q)
		assert.True(t, errors.Is(err, ErrInvalidParameter))
	}
	// Cancellation is checked before every step
	{
		sc, Q := relaxScenario(t, 20, 1.e6)
		Q0 := Q.Copy()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ro := &RelaxOnly{Dt: 0.1}
		err := ro.Run(ctx, sc.Solver(), sc.Controller(), Q)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Len(t, ro.History, 1)
		assert.Equal(t, Q0.Data(), Q.Data())
	}
}
