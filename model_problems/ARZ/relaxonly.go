package ARZ

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gotraffic/utils"
)

type RelaxReport struct {
	Step         int
	Time         float64
	MaxDeviation float64 // max over cells of |U(rho) - u|
}

/*
	RelaxOnly integrates the relaxation source by itself with a fixed step Dt, there are no
	fluxes and no CFL control. Density never changes, so every cell is an independent
	linear ODE for the velocity:

		u(n+1) - U = (u(n) - U) * (1 - Dt/(Tau*rho))

	which decays for Dt < 2 Tau rho and grows without bound past it. Use it to look at
	the stiffness of a choice of Tau and Dt before handing the scenario to a real engine.
*/
type RelaxOnly struct {
	Dt          float64
	ReportEvery int // Steps between reports, 0 reports only the final state
	Verbose     bool
	History     []RelaxReport
}

func (ro *RelaxOnly) Run(ctx context.Context, solver *SolverConfig, ctl *ControllerConfig, Q utils.Matrix) (err error) {
	var (
		Time  float64
		steps int
		src   utils.Matrix
	)
	if solver.Source == nil {
		return fmt.Errorf("relaxation is disabled for this scenario: %w", ErrInvalidParameter)
	}
	if !(ro.Dt > 0) || math.IsInf(ro.Dt, 0) {
		return fmt.Errorf("dt = %v must be positive: %w", ro.Dt, ErrInvalidParameter)
	}
	ro.History = ro.History[:0]
	ro.report(steps, Time, Q)
	for Time < ctl.FinalTime {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		dt := math.Min(ro.Dt, ctl.FinalTime-Time)
		if src, err = solver.Source.Evaluate(Q, dt); err != nil {
			return fmt.Errorf("step %d, time %8.4f: %w", steps, Time, err)
		}
		if solver.Source.Mode == ResidualOnly {
			// Forward Euler is the one stage integrator here
			Q.Add(src)
		}
		Time += dt
		steps++
		if k := utils.FirstNonFinite(Q.RowView(1)); k != -1 {
			return fmt.Errorf("step %d, time %8.4f, cell %d: %w", steps, Time, k, ErrNonFinite)
		}
		isDone := Time >= ctl.FinalTime
		if isDone || (ro.ReportEvery > 0 && steps%ro.ReportEvery == 0) {
			ro.report(steps, Time, Q)
		}
	}
	return
}

func (ro *RelaxOnly) report(step int, Time float64, Q utils.Matrix) {
	var (
		rho = Q.Row(0)
		u   = Q.Row(1).Apply2(rho, func(q, r float64) float64 { return Velocity(r, q) })
		dev = DesiredVelocityVec(rho).Apply2(u, func(U, v float64) float64 { return U - v })
	)
	r := RelaxReport{Step: step, Time: Time, MaxDeviation: floats.Norm(dev.Data(), math.Inf(1))}
	ro.History = append(ro.History, r)
	if ro.Verbose {
		fmt.Printf("Time = %8.4f, step[%d], max |U - u| = %12.6e\n", r.Time, r.Step, r.MaxDeviation)
	}
}
