package ARZ

import (
	"fmt"
	"strings"

	"github.com/notargets/gotraffic/utils"
)

type SolverType uint

const (
	// Classic is the wave propagation finite volume solver, second order in space with a
	// limiter, source applied by operator splitting
	Classic SolverType = iota
	// SharpClaw is the high order WENO solver with a method of lines Runge-Kutta integrator
	SharpClaw
)

var (
	SolverNames = map[string]SolverType{
		"classic":     Classic,
		"first-order": Classic,
		"sharpclaw":   SharpClaw,
		"high-order":  SharpClaw,
	}
	SolverPrintNames = []string{"Classic (MC limited, operator split source)", "SharpClaw (WENO, SSP Runge-Kutta)"}
)

func NewSolverType(label string) (st SolverType, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if st, ok = SolverNames[label]; !ok {
		err = fmt.Errorf("unable to use solver type named %q, must be one of [classic sharpclaw]: %w",
			label, ErrUnknownSolverType)
	}
	return
}

func (st SolverType) Print() (txt string) {
	txt = SolverPrintNames[st]
	return
}

// SourceMode is the hook slot each solver calls the relaxation operator from
func (st SolverType) SourceMode() ApplicationMode {
	if st == SharpClaw {
		return ResidualOnly
	}
	return InPlace
}

const (
	DefaultWenoOrder      = 5
	DefaultKernelLanguage = "Fortran"
)

/*
	SolverConfig is everything the stepping engine needs to advance the ARZ system.
	Riemann carries the kernel and the fluctuation flag together. Source is nil when
	relaxation is disabled, otherwise its Mode tells the engine which slot to call it from.
*/
type SolverConfig struct {
	Type           SolverType      `json:"-"`
	Name           string          `json:"solver_type"`
	Order          int             `json:"order,omitempty"`
	Limiter        string          `json:"limiter,omitempty"`
	WenoOrder      int             `json:"weno_order,omitempty"`
	TimeIntegrator string          `json:"time_integrator,omitempty"`
	CFLMax         float64         `json:"cfl_max"`
	CFLDesired     float64         `json:"cfl_desired"`
	KernelLanguage string          `json:"kernel_language"`
	Riemann        RiemannStrategy `json:"riemann"`
	BCLower        utils.BCType    `json:"bc_lower"`
	BCUpper        utils.BCType    `json:"bc_upper"`
	Source         *SourceTerm     `json:"-"`
	SourceSlot     string          `json:"source_slot,omitempty"`
}

// newSolverConfig fills in the tuning each solver family runs with
func newSolverConfig(st SolverType, wenoOrder int, kernelLanguage string) (sc *SolverConfig) {
	sc = &SolverConfig{
		Type:           st,
		KernelLanguage: kernelLanguage,
	}
	switch st {
	case Classic:
		sc.Name = "classic"
		sc.Order = 2
		sc.Limiter = "MC"
		sc.CFLMax = 0.45
		sc.CFLDesired = 0.4
	case SharpClaw:
		sc.Name = "sharpclaw"
		sc.WenoOrder = wenoOrder
		sc.TimeIntegrator = "SSP104"
		sc.CFLMax = 2.45
		sc.CFLDesired = 2.4
	}
	return
}

func (sc *SolverConfig) Print() {
	fmt.Printf("[%s]\t= Solver Type\n", sc.Type.Print())
	switch sc.Type {
	case Classic:
		fmt.Printf("[%d]\t\t\t= Order, Limiter = %s\n", sc.Order, sc.Limiter)
	case SharpClaw:
		fmt.Printf("[%d]\t\t\t= WENO Order, Time Integrator = %s\n", sc.WenoOrder, sc.TimeIntegrator)
	}
	fmt.Printf("%8.5f\t\t= CFL Max, CFL Desired = %8.5f\n", sc.CFLMax, sc.CFLDesired)
	fmt.Printf("[%s]\t= Riemann Solver\n", sc.Riemann.Print())
	fmt.Printf("[%s, %s]\t= BCs (lower, upper)\n", sc.BCLower, sc.BCUpper)
	if sc.Source == nil {
		fmt.Printf("[none]\t\t\t= Relaxation Source\n")
	} else {
		fmt.Printf("[%s]\t= Relaxation Source, Tau = %8.5f\n", sc.Source.Mode.Print(), sc.Source.Relax.Tau)
	}
}
