package qop

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SecondQuantizedOp is a named symmetric operator produced by a structure
// problem before qubit mapping.
type SecondQuantizedOp struct {
	Name   string
	Matrix *mat.SymDense
}

// NewSecondQuantizedOp creates a named operator from a symmetric matrix.
func NewSecondQuantizedOp(name string, matrix *mat.SymDense) *SecondQuantizedOp {
	return &SecondQuantizedOp{Name: name, Matrix: matrix}
}

// Dim returns the operator dimension.
func (op *SecondQuantizedOp) Dim() int {
	if op.Matrix == nil {
		return 0
	}
	n, _ := op.Matrix.Dims()
	return n
}

// QubitOp is an operator mapped into the solver representation. It is the
// object whose minimum eigenvalue the solvers seek.
type QubitOp struct {
	Matrix *mat.SymDense
	Sector int // symmetry sector selected during conversion, -1 if none
}

// Dim returns the operator dimension.
func (op *QubitOp) Dim() int {
	if op.Matrix == nil {
		return 0
	}
	n, _ := op.Matrix.Dims()
	return n
}

// Validate checks that the operator is usable by an eigensolver.
func (op *QubitOp) Validate() error {
	if op == nil || op.Matrix == nil {
		return fmt.Errorf("qubit operator has no matrix")
	}
	if op.Dim() < 1 {
		return fmt.Errorf("qubit operator is empty")
	}
	return nil
}

// MinimumResult is the raw output of a minimum-eigenvalue computation.
// OptimalPoint is nil for non-variational solvers.
type MinimumResult struct {
	Eigenvalue   float64
	OptimalPoint []float64
	CostEvals    int
}
