package pes

import (
	"github.com/cwbudde/pesweep/internal/chem"
	"github.com/cwbudde/pesweep/internal/qop"
)

// Eigensolver computes the minimum eigenvalue of a mapped operator. The
// solve is blocking; a sweep never overlaps two of them.
type Eigensolver interface {
	ComputeMinimumEigenvalue(op *qop.QubitOp) (*qop.MinimumResult, error)
}

// VariationalEigensolver is an Eigensolver that optimizes a parameter vector
// and can be warm-started through its initial point.
type VariationalEigensolver interface {
	Eigensolver

	// InitialPoint returns the current starting parameters, nil if unset.
	InitialPoint() []float64

	// SetInitialPoint replaces the starting parameters for the next solve.
	SetInitialPoint(point []float64)
}

// GroundStateSolver is a pre-bound solving capability: it already wraps a
// concrete eigensolver and knows how to solve a whole problem.
type GroundStateSolver interface {
	// Solve computes the ground state of the problem at its current geometry.
	Solve(problem *chem.StructureProblem) (*chem.EigenstateResult, error)

	// Eigensolver exposes the wrapped concrete eigensolver for warm-start
	// inspection.
	Eigensolver() Eigensolver
}

// SolverFactory materializes a concrete eigensolver for a specific problem.
// Samplers bound to a factory require a converter.
type SolverFactory interface {
	GetSolver(problem *chem.StructureProblem, converter qop.Converter) (Eigensolver, error)
}

// Extrapolator predicts parameter vectors for new points from the parameter
// history of already evaluated ones.
type Extrapolator interface {
	// Extrapolate returns a per-point parameter prediction for each
	// requested point.
	Extrapolate(points []float64, history *ParamHistory) (map[float64][]float64, error)
}

// WindowedExtrapolator additionally supports restricting the fit to the most
// recent window entries of the history. The window is owned by the sampler
// configuration and passed at call time.
type WindowedExtrapolator interface {
	Extrapolator

	ExtrapolateWindowed(window int, points []float64, history *ParamHistory) (map[float64][]float64, error)
}
