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
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
	osExit   = os.Exit
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gotraffic",
	Short: "ARZ second order traffic flow scenarios",
	Long: `
Builds and validates scenarios for the Aw-Rascle-Zhang traffic model with a relaxation
source term, then hands them to a finite volume stepping engine.

gotraffic arz -c wiggles -s sharpclaw -r hll`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		profiler, err = startProfile(viper.GetString("profile"))
		return
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		stopProfile()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gotraffic.yaml)")
	rootCmd.PersistentFlags().String("profile", "", "write a profile for the run: cpu or mem")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print the scenario and progress")
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".gotraffic")
	}
	viper.SetEnvPrefix("GOTRAFFIC")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func startProfile(kind string) (p interface{ Stop() }, err error) {
	switch strings.ToLower(kind) {
	case "":
	case "cpu":
		p = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		p = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		err = fmt.Errorf("unknown profile %q, must be one of [cpu mem]", kind)
	}
	return
}

func stopProfile() {
	if profiler != nil {
		profiler.Stop()
		profiler = nil
	}
}

// exitOnError flushes any running profile first, os.Exit skips PersistentPostRun
func exitOnError(err error) {
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		stopProfile()
		osExit(1)
	}
}
