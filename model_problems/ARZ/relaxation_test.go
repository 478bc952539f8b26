package ARZ

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotraffic/utils"
)

// movingState is the wiggles profile with a velocity away from equilibrium
func movingState(t *testing.T, N int) (Q utils.Matrix) {
	d, err := NewDomain(N)
	require.NoError(t, err)
	Q = InitializeWiggles(d)
	rho, q := Q.RowView(0), Q.RowView(1)
	for k := range rho {
		q[k] = rho[k] * (1.5 + 0.25*math.Cos(float64(k)) + Hesitation(rho[k]))
	}
	return
}

func TestRelaxationModes(t *testing.T) {
	var (
		N  = 257
		dt = 0.37
	)
	r, err := NewRelaxation(DefaultTau, 1, N)
	require.NoError(t, err)
	Q0 := movingState(t, N)
	QA, QB := Q0.Copy(), Q0.Copy()

	srcA, err := r.Apply(QA, dt, InPlace)
	require.NoError(t, err)
	srcB, err := r.Apply(QB, dt, ResidualOnly)
	require.NoError(t, err)

	// InPlace returns a zero residual and advances momentum only
	assert.Equal(t, 0., srcA.AbsMax())
	assert.Equal(t, Q0.RowView(0), QA.RowView(0))
	// ResidualOnly leaves the state alone and carries no density term
	assert.Equal(t, Q0.Data(), QB.Data())
	for _, val := range srcB.RowView(0) {
		assert.Equal(t, 0., val)
	}
	// Both modes share one increment
	var (
		q0, qA, dq = Q0.RowView(1), QA.RowView(1), srcB.RowView(1)
	)
	for k := range q0 {
		// qA - q0 rounds and need not equal dq bitwise, exactness holds in the additive form
		assert.Equal(t, q0[k]+dq[k], qA[k])
		assert.InDelta(t, dq[k], qA[k]-q0[k], 1.e-12)
		assert.NotEqual(t, 0., dq[k])
	}
	// SourceTerm is a thin binding of the same operator
	{
		st := &SourceTerm{Relax: r, Mode: ResidualOnly}
		src, err := st.Evaluate(Q0.Copy(), dt)
		require.NoError(t, err)
		assert.Equal(t, srcB.Data(), src.Data())
	}
}

func TestRelaxationStep(t *testing.T) {
	// Cell count 1000, tau 5, dt 0.1 on the periodic profile
	var (
		N  = 1000
		dt = 0.1
	)
	sc, Q, err := NewScenario(Options{SolverType: "classic", RiemannSolver: "hll", InitType: "wiggles",
		NumCells: N, Tau: 5})
	require.NoError(t, err)
	Qold := Q.Copy()
	src, err := sc.Solver().Source.Evaluate(Q, dt)
	require.NoError(t, err)
	assert.Equal(t, 0., src.AbsMax())
	rho, qOld, qNew := Qold.RowView(0), Qold.RowView(1), Q.RowView(1)
	for k := 0; k < N; k++ {
		velocity := qOld[k]/rho[k] - Hesitation(rho[k])
		expected := qOld[k] + 0.1*(DesiredVelocity(rho[k])-velocity)/5
		assert.InDelta(t, expected, qNew[k], 1.e-12)
	}
	assert.Equal(t, Qold.RowView(0), Q.RowView(0))
}

func TestRelaxationScaling(t *testing.T) {
	var (
		N = 64
	)
	r5, err := NewRelaxation(5, 1, N)
	require.NoError(t, err)
	r10, err := NewRelaxation(10, 1, N)
	require.NoError(t, err)
	Q := movingState(t, N)
	d1, _ := r5.Apply(Q, 0.1, ResidualOnly)
	d2, _ := r5.Apply(Q, 0.2, ResidualOnly)
	dTau, _ := r10.Apply(Q, 0.2, ResidualOnly)
	for k := 0; k < N; k++ {
		assert.InDelta(t, 2*d1.At(1, k), d2.At(1, k), 1.e-12)
		assert.InDelta(t, d1.At(1, k), dTau.At(1, k), 1.e-12)
	}
	dZero, _ := r5.Apply(Q, 0, ResidualOnly)
	assert.Equal(t, 0., dZero.AbsMax())
}

func TestRelaxationParallel(t *testing.T) {
	var (
		N = 1001
	)
	serial, err := NewRelaxation(DefaultTau, 1, N)
	require.NoError(t, err)
	parallel, err := NewRelaxation(DefaultTau, 6, N)
	require.NoError(t, err)
	assert.Equal(t, 6, parallel.Partitions.ParallelDegree)
	for _, mode := range []ApplicationMode{InPlace, ResidualOnly} {
		Q1, Q2 := movingState(t, N), movingState(t, N)
		s1, err1 := serial.Apply(Q1, 0.25, mode)
		s2, err2 := parallel.Apply(Q2, 0.25, mode)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, Q1.Data(), Q2.Data(), mode.Print())
		assert.Equal(t, s1.Data(), s2.Data(), mode.Print())
	}
}

func TestRelaxationErrors(t *testing.T) {
	var (
		N = 10
	)
	{
		_, err := NewRelaxation(0, 1, N)
		assert.True(t, errors.Is(err, ErrInvalidParameter))
		_, err = NewRelaxation(-5, 1, N)
		assert.True(t, errors.Is(err, ErrInvalidParameter))
		_, err = NewRelaxation(math.NaN(), 1, N)
		assert.True(t, errors.Is(err, ErrInvalidParameter))
		_, err = NewRelaxation(5, 1, 0)
		assert.True(t, errors.Is(err, ErrInvalidParameter))
	}
	r, err := NewRelaxation(DefaultTau, 1, N)
	require.NoError(t, err)
	{
		_, err = r.Apply(utils.NewMatrix(3, N), 0.1, InPlace)
		assert.True(t, errors.Is(err, ErrStateShape))
		_, err = r.Apply(utils.NewMatrix(2, N+1), 0.1, InPlace)
		assert.True(t, errors.Is(err, ErrStateShape))
		assert.Contains(t, err.Error(), "wrong shape")
		assert.Contains(t, err.Error(), "11 cells")
		_, err = r.Apply(movingState(t, N), math.NaN(), InPlace)
		assert.True(t, errors.Is(err, ErrInvalidParameter))
		_, err = r.Apply(movingState(t, N), 0.1, ApplicationMode(7))
		assert.True(t, errors.Is(err, ErrInvalidParameter))
	}
	// Strict density leaves the state untouched
	{
		r.StrictDensity = true
		Q := movingState(t, N)
		Q.RowView(0)[3] = 1.
		Qcopy := Q.Copy()
		_, err = r.Apply(Q, 0.1, InPlace)
		assert.True(t, errors.Is(err, ErrDensityOutOfRange))
		assert.Contains(t, err.Error(), "cell 3")
		assert.Equal(t, Qcopy.Data(), Q.Data())
	}
	// Without it the singularity propagates
	{
		r.StrictDensity = false
		Q := movingState(t, N)
		Q.RowView(0)[3] = 1.
		_, err = r.Apply(Q, 0.1, InPlace)
		assert.NoError(t, err)
		assert.Equal(t, 3, utils.FirstNonFinite(Q.RowView(1)))
	}
	assert.NoError(t, CheckDensity([]float64{0.01, 0.99}))
	assert.Error(t, CheckDensity([]float64{0.5, 0}))
	assert.Error(t, CheckDensity([]float64{math.NaN()}))
}
