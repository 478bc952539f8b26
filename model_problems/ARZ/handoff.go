package ARZ

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"

	"github.com/notargets/gotraffic/utils"
)

const DefaultHandOffFile = "arz_run.yaml"

// RunDescription is the run as an external solver process reads it
type RunDescription struct {
	Solver     *SolverConfig     `json:"solver"`
	Controller *ControllerConfig `json:"controller"`
	Rho        []float64         `json:"rho"`
	Momentum   []float64         `json:"momentum"`
}

// HandOff is the engine used when the stepping solver runs out of process. It writes the
// solver, controller and initial state to OutDir for the solver to pick up.
type HandOff struct {
	FileName string
	Verbose  bool
	Path     string // Set after a successful Run
}

func (h *HandOff) Run(ctx context.Context, solver *SolverConfig, ctl *ControllerConfig, Q utils.Matrix) (err error) {
	var (
		data []byte
		name = h.FileName
	)
	if ctl.OutputFormat == "" {
		if h.Verbose {
			fmt.Printf("Output disabled, no run description written\n")
		}
		return
	}
	if len(name) == 0 {
		name = DefaultHandOffFile
	}
	desc := &RunDescription{
		Solver:     solver,
		Controller: ctl,
		Rho:        Q.Row(0).Data(),
		Momentum:   Q.Row(1).Data(),
	}
	if data, err = yaml.Marshal(desc); err != nil {
		return fmt.Errorf("marshal run description: %w", err)
	}
	if err = ctx.Err(); err != nil {
		return
	}
	if err = os.MkdirAll(ctl.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(ctl.OutDir, name)
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write run description: %w", err)
	}
	h.Path = path
	if h.Verbose {
		fmt.Printf("Run description written to %s\n", path)
	}
	return
}

// ReadRunDescription loads a description written by HandOff
func ReadRunDescription(path string) (desc *RunDescription, err error) {
	var (
		data []byte
	)
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	desc = &RunDescription{}
	if err = yaml.Unmarshal(data, desc); err != nil {
		desc = nil
		return
	}
	if desc.Solver == nil || desc.Controller == nil {
		desc, err = nil, fmt.Errorf("%s is missing the solver or controller section", path)
		return
	}
	if desc.Solver.Type, err = NewSolverType(desc.Solver.Name); err != nil {
		desc = nil
		return
	}
	if desc.Solver.Riemann.IsZero() {
		desc, err = nil, fmt.Errorf("%s has no riemann solver: %w", path, ErrUnknownRiemannStrategy)
		return
	}
	if desc.Solver.BCLower == utils.BCNone || desc.Solver.BCUpper == utils.BCNone {
		desc, err = nil, fmt.Errorf("%s has boundary conditions [%s, %s]: %w",
			path, desc.Solver.BCLower, desc.Solver.BCUpper, ErrInvalidParameter)
	}
	return
}
