package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotraffic/model_problems/ARZ"
)

func TestScenarioOptions(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
SolverType: classic
InitType: rp1 # Can be wiggles
NumCells: 400
Tau: 2.
FinalTime: 4.
`)
	dir := t.TempDir()
	inputFile := filepath.Join(dir, "arz.yaml")
	require.NoError(t, os.WriteFile(inputFile, fileInput, 0o644))

	viper.Reset()
	defer viper.Reset()
	viper.Set("inputFile", inputFile)
	viper.Set("cells", 250)
	viper.Set("rp", "fwave")
	viper.Set("outdir", dir)
	var opts ARZ.Options
	opts, err = scenarioOptions()
	require.NoError(t, err)
	// Flags win over the file, the file wins over defaults
	assert.Equal(t, 250, opts.NumCells)
	assert.Equal(t, "fwave", opts.RiemannSolver)
	assert.Equal(t, "classic", opts.SolverType)
	assert.Equal(t, "rp1", opts.InitType)
	assert.Equal(t, 2., opts.Tau)
	assert.Equal(t, 4., opts.FinalTime)
	assert.Equal(t, ARZ.DefaultKernelLanguage, opts.KernelLanguage)

	h := &ARZ.HandOff{}
	require.NoError(t, RunARZ(context.Background(), opts, h))
	desc, err := ARZ.ReadRunDescription(h.Path)
	require.NoError(t, err)
	assert.Equal(t, ARZ.FWave, desc.Solver.Riemann)
	assert.Equal(t, 250, desc.Controller.Domain.NumCells)
	assert.Nil(t, desc.Solver.Source)
	assert.Empty(t, desc.Solver.SourceSlot)
}

func TestScenarioOptionsErrors(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	{
		viper.Set("inputFile", filepath.Join(t.TempDir(), "missing.yaml"))
		_, err := scenarioOptions()
		assert.Error(t, err)
	}
	{
		viper.Reset()
		viper.Set("solver", "implicit")
		opts, err := scenarioOptions()
		require.NoError(t, err)
		err = RunARZ(context.Background(), opts, &ARZ.HandOff{})
		assert.True(t, errors.Is(err, ARZ.ErrUnknownSolverType))
	}
}

func TestRunRelax(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("cells", 100)
	viper.Set("finalTime", 10.)
	opts, err := scenarioOptions()
	require.NoError(t, err)
	ro := &ARZ.RelaxOnly{Dt: 0.1, ReportEvery: 50}
	require.NoError(t, RunARZ(context.Background(), opts, ro))
	last := ro.History[len(ro.History)-1]
	assert.Less(t, last.MaxDeviation, ro.History[0].MaxDeviation)
}

type stopRecorder struct{ stops int }

func (sr *stopRecorder) Stop() { sr.stops++ }

func TestExitOnError(t *testing.T) {
	var (
		code = -1
		sr   = &stopRecorder{}
	)
	osExit = func(c int) { code = c }
	defer func() { osExit = os.Exit }()
	{
		profiler = sr
		exitOnError(nil)
		assert.Equal(t, -1, code)
		assert.Equal(t, 0, sr.stops)
	}
	{
		exitOnError(errors.New("bad tau"))
		assert.Equal(t, 1, code)
		assert.Equal(t, 1, sr.stops)
		assert.Nil(t, profiler)
	}
}

func TestStartProfile(t *testing.T) {
	p, err := startProfile("")
	assert.NoError(t, err)
	assert.Nil(t, p)
	_, err = startProfile("gpu")
	assert.Error(t, err)
}
