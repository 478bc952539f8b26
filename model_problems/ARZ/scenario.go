package ARZ

import (
	"fmt"
	"math"

	"github.com/notargets/gotraffic/utils"
)

// Options are the named choices a scenario is built from. Zero FinalTime or
// NumOutputTimes select the defaults of the initial condition.
type Options struct {
	SolverType     string
	RiemannSolver  string
	InitType       string
	NumCells       int
	Tau            float64
	WenoOrder      int
	FinalTime      float64
	NumOutputTimes int
	OutDir         string
	DisableOutput  bool
	IPlot          bool
	HTMLPlot       bool
	UsePetsc       bool
	ProcLimit      int // Go routines for cell partitions when UsePetsc is set, 0 is one per CPU
	KernelLanguage string
	Verbose        bool
}

func DefaultOptions() Options {
	return Options{
		SolverType:     "sharpclaw",
		RiemannSolver:  "hll",
		InitType:       "wiggles",
		NumCells:       8000,
		Tau:            DefaultTau,
		WenoOrder:      DefaultWenoOrder,
		OutDir:         "./_output",
		KernelLanguage: DefaultKernelLanguage,
	}
}

// Scenario is one fully specified run. It is immutable once built, accessors return copies.
type Scenario struct {
	solverType       SolverType
	riemann          RiemannStrategy
	initType         InitType
	domain           Domain
	bcLower, bcUpper utils.BCType
	relax            *Relaxation // nil when relaxation is disabled
	tau              float64
	wenoOrder        int
	kernelLanguage   string
	finalTime        float64
	numOutputTimes   int
	outDir           string
	disableOutput    bool
	iplot, htmlplot  bool
	usePetsc         bool
	parallelDegree   int
	verbose          bool
}

// NewScenario validates opts and returns the scenario with its initial conserved state
func NewScenario(opts Options) (sc *Scenario, Q utils.Matrix, err error) {
	var (
		st     SolverType
		rs     RiemannStrategy
		it     InitType
		domain Domain
	)
	if st, err = NewSolverType(opts.SolverType); err != nil {
		return
	}
	if rs, err = NewRiemannStrategy(opts.RiemannSolver); err != nil {
		return
	}
	if it, err = NewInitType(opts.InitType); err != nil {
		return
	}
	if domain, err = NewDomain(opts.NumCells); err != nil {
		return
	}
	if !(opts.Tau > 0) || math.IsInf(opts.Tau, 0) {
		err = fmt.Errorf("relaxation time tau = %v must be positive: %w", opts.Tau, ErrInvalidParameter)
		return
	}
	if st == SharpClaw && (opts.WenoOrder < 3 || opts.WenoOrder%2 == 0) {
		err = fmt.Errorf("weno order = %d must be odd and at least 3: %w", opts.WenoOrder, ErrInvalidParameter)
		return
	}
	if opts.FinalTime < 0 || math.IsNaN(opts.FinalTime) || math.IsInf(opts.FinalTime, 0) {
		err = fmt.Errorf("final time = %v: %w", opts.FinalTime, ErrInvalidParameter)
		return
	}
	if opts.NumOutputTimes < 0 {
		err = fmt.Errorf("number of output times = %d: %w", opts.NumOutputTimes, ErrInvalidParameter)
		return
	}
	sc = &Scenario{
		solverType:     st,
		riemann:        rs,
		initType:       it,
		domain:         domain,
		bcLower:        it.BoundaryCondition(),
		bcUpper:        it.BoundaryCondition(),
		tau:            opts.Tau,
		wenoOrder:      opts.WenoOrder,
		kernelLanguage: opts.KernelLanguage,
		outDir:         opts.OutDir,
		disableOutput:  opts.DisableOutput,
		iplot:          opts.IPlot,
		htmlplot:       opts.HTMLPlot,
		usePetsc:       opts.UsePetsc,
		verbose:        opts.Verbose,
	}
	if sc.kernelLanguage == "" {
		sc.kernelLanguage = DefaultKernelLanguage
	}
	sc.finalTime, sc.numOutputTimes = it.Defaults()
	if opts.FinalTime > 0 {
		sc.finalTime = opts.FinalTime
	}
	if opts.NumOutputTimes > 0 {
		sc.numOutputTimes = opts.NumOutputTimes
	}
	procLimit := 1
	if opts.UsePetsc {
		procLimit = opts.ProcLimit
	}
	sc.parallelDegree = utils.ParallelDegree(procLimit, domain.NumCells)
	if it.Relaxes() {
		if sc.relax, err = NewRelaxation(opts.Tau, sc.parallelDegree, domain.NumCells); err != nil {
			sc = nil
			return
		}
		sc.relax.StrictDensity = true
	}
	Q = it.Initialize(domain)
	if err = CheckDensity(Q.RowView(0)); err != nil {
		sc, Q = nil, utils.Matrix{}
		return
	}
	if sc.verbose {
		fmt.Printf("ARZ Traffic Model in 1 Dimension\n")
		fmt.Printf("Solving %s\n", it.Print())
		fmt.Printf("Using %d go routines in parallel\n", sc.parallelDegree)
	}
	return
}

func (sc *Scenario) SolverType() SolverType   { return sc.solverType }
func (sc *Scenario) Riemann() RiemannStrategy { return sc.riemann }
func (sc *Scenario) InitType() InitType       { return sc.initType }
func (sc *Scenario) Domain() Domain           { return sc.domain }
func (sc *Scenario) BCLower() utils.BCType    { return sc.bcLower }
func (sc *Scenario) BCUpper() utils.BCType    { return sc.bcUpper }
func (sc *Scenario) RelaxationEnabled() bool  { return sc.relax != nil }
func (sc *Scenario) Tau() float64             { return sc.tau }
func (sc *Scenario) FinalTime() float64       { return sc.finalTime }
func (sc *Scenario) NumOutputTimes() int      { return sc.numOutputTimes }
func (sc *Scenario) ParallelDegree() int      { return sc.parallelDegree }

// Solver builds the engine facing solver description, a fresh copy on every call
func (sc *Scenario) Solver() (s *SolverConfig) {
	s = newSolverConfig(sc.solverType, sc.wenoOrder, sc.kernelLanguage)
	s.Riemann = sc.riemann
	s.BCLower, s.BCUpper = sc.bcLower, sc.bcUpper
	if sc.relax != nil {
		relax := *sc.relax
		s.Source = &SourceTerm{Relax: &relax, Mode: sc.solverType.SourceMode()}
		switch s.Source.Mode {
		case InPlace:
			s.SourceSlot = "step_source"
		case ResidualOnly:
			s.SourceSlot = "dq_src"
		}
	}
	return
}

func (sc *Scenario) Controller() (ctl *ControllerConfig) {
	ctl = &ControllerConfig{
		Domain:         sc.domain,
		FinalTime:      sc.finalTime,
		NumOutputTimes: sc.numOutputTimes,
		OutDir:         sc.outDir,
		OutputFormat:   "ascii",
		UsePetsc:       sc.usePetsc,
		ParallelDegree: sc.parallelDegree,
		IPlot:          sc.iplot,
		HTMLPlot:       sc.htmlplot,
	}
	if sc.disableOutput {
		ctl.OutputFormat = ""
	}
	return
}

func (sc *Scenario) Print() {
	fmt.Printf("[%s]\t= InitType\n", sc.initType.Print())
	if sc.relax != nil {
		fmt.Printf("%8.5f\t\t= Tau\n", sc.tau)
	}
	sc.Solver().Print()
	sc.Controller().Print()
}
