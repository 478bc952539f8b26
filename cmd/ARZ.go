/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gotraffic/InputParameters"
	"github.com/notargets/gotraffic/model_problems/ARZ"
	"github.com/notargets/gotraffic/utils"
)

// ARZCmd represents the arz command
var ARZCmd = &cobra.Command{
	Use:   "arz",
	Short: "Build an ARZ traffic scenario and hand it to the stepping engine",
	Long: `
Validates the scenario, sets the initial state and writes the solver, controller and
initial state to the output directory for the finite volume engine,

gotraffic arz -c rp1 -r fwave -k 2000`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return viper.BindPFlags(cmd.Flags())
	},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			opts ARZ.Options
			err  error
		)
		opts, err = scenarioOptions()
		exitOnError(err)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		exitOnError(RunARZ(ctx, opts, &ARZ.HandOff{Verbose: opts.Verbose}))
	},
}

func init() {
	rootCmd.AddCommand(ARZCmd)
	addScenarioFlags(ARZCmd)
}

// addScenarioFlags installs the flags every scenario building command shares
func addScenarioFlags(cmd *cobra.Command) {
	var (
		def = ARZ.DefaultOptions()
	)
	cmd.Flags().StringP("solver", "s", def.SolverType, "solver family: classic or sharpclaw")
	cmd.Flags().StringP("rp", "r", def.RiemannSolver, "Riemann solver: hll or fwave")
	cmd.Flags().StringP("ic", "c", def.InitType, "initial condition: wiggles or rp1")
	cmd.Flags().IntP("cells", "k", def.NumCells, "number of finite volume cells")
	cmd.Flags().Float64("tau", def.Tau, "relaxation time, must be positive")
	cmd.Flags().Int("weno", def.WenoOrder, "WENO reconstruction order for sharpclaw")
	cmd.Flags().Float64("finalTime", 0, "the target end time, 0 uses the initial condition's default")
	cmd.Flags().Int("numOutputTimes", 0, "number of output frames, 0 uses the initial condition's default")
	cmd.Flags().Bool("petsc", false, "run with the PETSc backend and partitioned source evaluation")
	cmd.Flags().Int("procs", 0, "go routines for the source when --petsc is set, 0 is one per CPU")
	cmd.Flags().StringP("outdir", "o", def.OutDir, "output directory")
	cmd.Flags().Bool("iplot", false, "interactive plotting in the engine")
	cmd.Flags().Bool("htmlplot", false, "html plots from the engine")
	cmd.Flags().Bool("disableOutput", false, "write no output")
	cmd.Flags().String("kernelLanguage", def.KernelLanguage, "language of the Riemann kernels")
	cmd.Flags().StringP("inputFile", "I", "", "YAML file of scenario parameters, flags take precedence")
}

// scenarioOptions layers defaults, the input file, then config, env and flags
func scenarioOptions() (opts ARZ.Options, err error) {
	opts = ARZ.DefaultOptions()
	if fileName := viper.GetString("inputFile"); len(fileName) != 0 {
		var (
			data []byte
			ip   = &InputParameters.InputParametersARZ{}
		)
		if fileName, err = homedir.Expand(fileName); err != nil {
			return
		}
		if data, err = os.ReadFile(fileName); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			err = fmt.Errorf("parsing %s: %w", fileName, err)
			return
		}
		if viper.GetBool("verbose") {
			ip.Print()
		}
		ip.ApplyTo(&opts)
	}
	setString := func(key string, target *string) {
		if viper.IsSet(key) {
			*target = viper.GetString(key)
		}
	}
	setInt := func(key string, target *int) {
		if viper.IsSet(key) {
			*target = viper.GetInt(key)
		}
	}
	setFloat := func(key string, target *float64) {
		if viper.IsSet(key) {
			*target = viper.GetFloat64(key)
		}
	}
	setBool := func(key string, target *bool) {
		if viper.IsSet(key) {
			*target = viper.GetBool(key)
		}
	}
	setString("solver", &opts.SolverType)
	setString("rp", &opts.RiemannSolver)
	setString("ic", &opts.InitType)
	setInt("cells", &opts.NumCells)
	setFloat("tau", &opts.Tau)
	setInt("weno", &opts.WenoOrder)
	setFloat("finalTime", &opts.FinalTime)
	setInt("numOutputTimes", &opts.NumOutputTimes)
	setBool("petsc", &opts.UsePetsc)
	setInt("procs", &opts.ProcLimit)
	setString("outdir", &opts.OutDir)
	setBool("iplot", &opts.IPlot)
	setBool("htmlplot", &opts.HTMLPlot)
	setBool("disableOutput", &opts.DisableOutput)
	setString("kernelLanguage", &opts.KernelLanguage)
	opts.Verbose = viper.GetBool("verbose")
	opts.OutDir, err = homedir.Expand(opts.OutDir)
	return
}

// RunARZ builds the scenario described by opts and runs it on engine
func RunARZ(ctx context.Context, opts ARZ.Options, engine ARZ.Engine) (err error) {
	var (
		sc *ARZ.Scenario
		Q  utils.Matrix
	)
	if sc, Q, err = ARZ.NewScenario(opts); err != nil {
		return
	}
	if opts.Verbose {
		sc.Print()
		rho := Q.Row(0)
		fmt.Printf("[%8.5f, %8.5f]\t= Initial Density Range\n", rho.Min(), rho.Max())
	}
	err = sc.Run(ctx, engine, Q)
	return
}
