package ARZ

import "errors"

// Configuration errors stop a run before any stepping, numerical errors surface from the
// relaxation operator or the engines. Callers branch with errors.Is.
var (
	ErrUnknownSolverType      = errors.New("arz: unrecognized solver type")
	ErrUnknownRiemannStrategy = errors.New("arz: unrecognized riemann solver")
	ErrUnknownInitType        = errors.New("arz: unrecognized initial condition")
	ErrInvalidParameter       = errors.New("arz: parameter out of valid bounds")

	// ErrDensityOutOfRange means some cell has rho outside (0,1), where the closure laws are singular
	ErrDensityOutOfRange = errors.New("arz: density outside (0,1)")
	ErrStateShape        = errors.New("arz: conserved state has the wrong shape")
	ErrNonFinite         = errors.New("arz: non-finite value in conserved state")
)
