package ARZ

import (
	"context"
	"fmt"

	"github.com/notargets/gotraffic/utils"
)

// ControllerConfig holds the run parameters the engine's controller owns
type ControllerConfig struct {
	Domain         Domain  `json:"domain"`
	FinalTime      float64 `json:"tfinal"`
	NumOutputTimes int     `json:"num_output_times"`
	OutDir         string  `json:"outdir"`
	OutputFormat   string  `json:"output_format"` // Empty when output is disabled
	UsePetsc       bool    `json:"use_petsc"`
	ParallelDegree int     `json:"parallel_degree"`
	IPlot          bool    `json:"iplot"`
	HTMLPlot       bool    `json:"htmlplot"`
}

func (ctl *ControllerConfig) Print() {
	fmt.Printf("[%8.2f, %8.2f]\t= Domain, Num Cells = %d\n", ctl.Domain.XLower, ctl.Domain.XUpper, ctl.Domain.NumCells)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ctl.FinalTime)
	fmt.Printf("[%d]\t\t\t= Num Output Times\n", ctl.NumOutputTimes)
	if ctl.OutputFormat == "" {
		fmt.Printf("[disabled]\t\t= Output\n")
	} else {
		fmt.Printf("[%s]\t= Output Directory, Format = %s\n", ctl.OutDir, ctl.OutputFormat)
	}
	fmt.Printf("[%t]\t\t\t= Use PETSc, Parallel Degree = %d\n", ctl.UsePetsc, ctl.ParallelDegree)
}

/*
	Engine advances the conserved state. Implementations own flux evaluation, Riemann
	kernels, reconstruction, CFL control, boundary enforcement and output; they call back
	into solver.Source (when non-nil) according to its Mode. Q has 2 rows and
	ctl.Domain.NumCells columns and is mutated in place.
*/
type Engine interface {
	Run(ctx context.Context, solver *SolverConfig, ctl *ControllerConfig, Q utils.Matrix) error
}

// Run hands a validated initial state to the engine. Nothing is stepped if ctx is already
// done or Q does not match the scenario.
func (sc *Scenario) Run(ctx context.Context, engine Engine, Q utils.Matrix) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	if engine == nil {
		err = fmt.Errorf("no engine supplied: %w", ErrInvalidParameter)
		return
	}
	if err = sc.CheckState(Q); err != nil {
		return
	}
	if sc.verbose {
		fmt.Printf("Handing %d cells to the solver engine\n", sc.domain.NumCells)
	}
	err = engine.Run(ctx, sc.Solver(), sc.Controller(), Q)
	return
}

// CheckState verifies shape and the density range of Q
func (sc *Scenario) CheckState(Q utils.Matrix) (err error) {
	var (
		nr, nc = Q.Dims()
	)
	if nr != 2 || nc != sc.domain.NumCells {
		err = fmt.Errorf("state is [%d,%d], expected [2,%d]: %w", nr, nc, sc.domain.NumCells, ErrStateShape)
		return
	}
	err = CheckDensity(Q.RowView(0))
	return
}
