package qop

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SectorLocator picks a symmetry sector for an operator given the particle
// counts of the originating problem. A negative return means no reduction.
type SectorLocator func(op *SecondQuantizedOp, numParticles [2]int) int

// Converter maps a second-quantized operator into the representation
// consumed by the eigensolvers.
type Converter interface {
	Convert(op *SecondQuantizedOp, numParticles [2]int, locator SectorLocator) (*QubitOp, error)
}

// QubitConverter is the default Converter. It carries the operator matrix
// over unchanged and records the symmetry sector chosen by the locator, if
// any. The mapping mathematics beyond this boundary are not this package's
// concern.
type QubitConverter struct {
	// TwoQubitReduction mirrors the conventional mapper toggle; it only
	// affects the sector bookkeeping in this model converter.
	TwoQubitReduction bool
}

// NewQubitConverter creates a converter with reduction disabled.
func NewQubitConverter() *QubitConverter {
	return &QubitConverter{}
}

// Convert validates the operator and produces the mapped form.
func (c *QubitConverter) Convert(op *SecondQuantizedOp, numParticles [2]int, locator SectorLocator) (*QubitOp, error) {
	if op == nil || op.Matrix == nil {
		return nil, fmt.Errorf("cannot convert nil operator")
	}
	n := op.Dim()
	if n < 1 {
		return nil, fmt.Errorf("cannot convert empty operator %q", op.Name)
	}

	sector := -1
	if locator != nil {
		sector = locator(op, numParticles)
	}

	// Copy so downstream geometry mutations never alias the mapped operator.
	matrix := mat.NewSymDense(n, nil)
	matrix.CopySym(op.Matrix)

	return &QubitOp{Matrix: matrix, Sector: sector}, nil
}
