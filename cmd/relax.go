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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gotraffic/model_problems/ARZ"
	"github.com/notargets/gotraffic/utils"
)

// RelaxCmd represents the relax command
var RelaxCmd = &cobra.Command{
	Use:   "relax",
	Short: "Integrate the relaxation source alone to check the stiffness of tau and dt",
	Long: `
Steps only the relaxation term with a fixed time step, no fluxes and no CFL control, and
reports the largest deviation of the velocity from the equilibrium velocity,

gotraffic relax --tau 5 --dt 0.1 --finalTime 50 --reportEvery 100`,
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
		ro := &ARZ.RelaxOnly{
			Dt:          viper.GetFloat64("dt"),
			ReportEvery: viper.GetInt("reportEvery"),
			Verbose:     true,
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		exitOnError(RunARZ(ctx, opts, ro))
		last := ro.History[len(ro.History)-1]
		fmt.Printf("Final max |U - u| = %12.6e after %d steps, reduced by %12.6e\n",
			last.MaxDeviation, last.Step, last.MaxDeviation/ro.History[0].MaxDeviation)
		fmt.Printf("%s\n", utils.GetMemUsage())
	},
}

func init() {
	rootCmd.AddCommand(RelaxCmd)
	addScenarioFlags(RelaxCmd)
	RelaxCmd.Flags().Float64("dt", 0.1, "fixed time step")
	RelaxCmd.Flags().Int("reportEvery", 100, "steps between reports, 0 reports only the end")
}
