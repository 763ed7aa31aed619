package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/pesweep/internal/opt"
	"github.com/cwbudde/pesweep/internal/qop"
)

// VariationalEigensolver minimizes the expectation value of an operator over
// a hyperspherically parameterized state vector, driving the search with a
// pluggable optimizer. It supports warm starting through a mutable initial
// point, which is what lets a sweep reuse optima between neighboring
// geometry points.
type VariationalEigensolver struct {
	optimizer    opt.Optimizer
	tolerance    float64 // convergence target hint, honored by optimizers that support one
	initialPoint []float64
}

// NewVariationalEigensolver creates a variational eigensolver.
func NewVariationalEigensolver(optimizer opt.Optimizer, tolerance float64) *VariationalEigensolver {
	return &VariationalEigensolver{optimizer: optimizer, tolerance: tolerance}
}

// InitialPoint returns the current starting parameters, nil if unset.
func (s *VariationalEigensolver) InitialPoint() []float64 {
	return s.initialPoint
}

// SetInitialPoint replaces the starting parameters for the next solve.
func (s *VariationalEigensolver) SetInitialPoint(point []float64) {
	s.initialPoint = point
}

// ComputeMinimumEigenvalue searches for the parameter vector whose ansatz
// state minimizes the operator expectation value.
func (s *VariationalEigensolver) ComputeMinimumEigenvalue(op *qop.QubitOp) (*qop.MinimumResult, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	n := op.Dim()
	if n == 1 {
		return &qop.MinimumResult{Eigenvalue: op.Matrix.At(0, 0), OptimalPoint: []float64{}}, nil
	}

	dim := n - 1 // hyperspherical angles
	evals := 0
	eval := func(theta []float64) float64 {
		evals++
		return expectation(op.Matrix, stateVector(theta, n))
	}

	lower := make([]float64, dim)
	upper := make([]float64, dim)
	for i := range lower {
		lower[i] = -math.Pi
		upper[i] = math.Pi
	}

	var initial []float64
	if len(s.initialPoint) == dim {
		initial = s.initialPoint
	}

	best, cost := s.optimizer.Run(eval, lower, upper, dim, initial)
	return &qop.MinimumResult{Eigenvalue: cost, OptimalPoint: best, CostEvals: evals}, nil
}

// stateVector maps n-1 hyperspherical angles to a unit vector of length n.
func stateVector(theta []float64, n int) []float64 {
	x := make([]float64, n)
	sinProduct := 1.0
	for i := 0; i < n-1; i++ {
		x[i] = sinProduct * math.Cos(theta[i])
		sinProduct *= math.Sin(theta[i])
	}
	x[n-1] = sinProduct
	return x
}

// expectation computes x' H x for a unit vector x.
func expectation(h *mat.SymDense, x []float64) float64 {
	n := len(x)
	total := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			total += x[i] * h.At(i, j) * x[j]
		}
	}
	return total
}
