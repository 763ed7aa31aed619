// Package solver provides the concrete minimum-eigenvalue solving engines
// behind the sweep engine's capability interfaces.
package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/pesweep/internal/qop"
)

// ExactEigensolver computes the minimum eigenvalue by full symmetric
// eigendecomposition. It is not variational: it produces no optimal
// parameters and cannot be warm-started.
type ExactEigensolver struct{}

// NewExactEigensolver creates an exact eigensolver.
func NewExactEigensolver() *ExactEigensolver {
	return &ExactEigensolver{}
}

// ComputeMinimumEigenvalue diagonalizes the operator and returns its lowest
// eigenvalue.
func (s *ExactEigensolver) ComputeMinimumEigenvalue(op *qop.QubitOp) (*qop.MinimumResult, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(op.Matrix, false); !ok {
		return nil, fmt.Errorf("symmetric eigendecomposition did not converge")
	}
	values := eig.Values(nil) // ascending
	return &qop.MinimumResult{Eigenvalue: values[0]}, nil
}
