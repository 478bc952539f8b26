package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/gotraffic/model_problems/ARZ"
)

// Parameters obtained from the YAML input file, zero values and absent switches leave the
// defaults alone. Switches are pointers so a file can turn them off as well as on.
type InputParametersARZ struct {
	Title          string  `yaml:"Title"`
	SolverType     string  `yaml:"SolverType"`
	RiemannSolver  string  `yaml:"RiemannSolver"`
	InitType       string  `yaml:"InitType"`
	NumCells       int     `yaml:"NumCells"`
	Tau            float64 `yaml:"Tau"`
	WenoOrder      int     `yaml:"WenoOrder"`
	FinalTime      float64 `yaml:"FinalTime"`
	NumOutputTimes int     `yaml:"NumOutputTimes"`
	OutDir         string  `yaml:"OutDir"`
	DisableOutput  *bool   `yaml:"DisableOutput"`
	IPlot          *bool   `yaml:"IPlot"`
	HTMLPlot       *bool   `yaml:"HTMLPlot"`
	UsePetsc       *bool   `yaml:"UsePetsc"`
	ProcLimit      int     `yaml:"ProcLimit"`
	KernelLanguage string  `yaml:"KernelLanguage"`
}

func (ip *InputParametersARZ) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParametersARZ) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Solver Type\n", ip.SolverType)
	fmt.Printf("[%s]\t\t\t= Riemann Solver\n", ip.RiemannSolver)
	fmt.Printf("[%s]\t\t= InitType\n", ip.InitType)
	fmt.Printf("[%d]\t\t\t= Num Cells\n", ip.NumCells)
	fmt.Printf("%8.5f\t\t= Tau\n", ip.Tau)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
}

// ApplyTo overlays every parameter set in the file onto opts
func (ip *InputParametersARZ) ApplyTo(opts *ARZ.Options) {
	if ip.SolverType != "" {
		opts.SolverType = ip.SolverType
	}
	if ip.RiemannSolver != "" {
		opts.RiemannSolver = ip.RiemannSolver
	}
	if ip.InitType != "" {
		opts.InitType = ip.InitType
	}
	if ip.NumCells != 0 {
		opts.NumCells = ip.NumCells
	}
	if ip.Tau != 0 {
		opts.Tau = ip.Tau
	}
	if ip.WenoOrder != 0 {
		opts.WenoOrder = ip.WenoOrder
	}
	if ip.FinalTime != 0 {
		opts.FinalTime = ip.FinalTime
	}
	if ip.NumOutputTimes != 0 {
		opts.NumOutputTimes = ip.NumOutputTimes
	}
	if ip.OutDir != "" {
		opts.OutDir = ip.OutDir
	}
	if ip.KernelLanguage != "" {
		opts.KernelLanguage = ip.KernelLanguage
	}
	if ip.ProcLimit != 0 {
		opts.ProcLimit = ip.ProcLimit
	}
	setSwitch := func(from *bool, to *bool) {
		if from != nil {
			*to = *from
		}
	}
	setSwitch(ip.DisableOutput, &opts.DisableOutput)
	setSwitch(ip.IPlot, &opts.IPlot)
	setSwitch(ip.HTMLPlot, &opts.HTMLPlot)
	setSwitch(ip.UsePetsc, &opts.UsePetsc)
}
