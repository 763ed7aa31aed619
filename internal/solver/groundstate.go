package solver

import (
	"fmt"

	"github.com/cwbudde/pesweep/internal/chem"
	"github.com/cwbudde/pesweep/internal/opt"
	"github.com/cwbudde/pesweep/internal/pes"
	"github.com/cwbudde/pesweep/internal/qop"
)

// GroundStateEigensolver is a pre-bound solving capability: an eigensolver
// paired with a converter, able to solve a whole structure problem.
type GroundStateEigensolver struct {
	eigensolver pes.Eigensolver
	converter   qop.Converter
}

// NewGroundStateEigensolver pairs an eigensolver with a converter.
func NewGroundStateEigensolver(eigensolver pes.Eigensolver, converter qop.Converter) *GroundStateEigensolver {
	return &GroundStateEigensolver{eigensolver: eigensolver, converter: converter}
}

// Eigensolver exposes the wrapped eigensolver for warm-start inspection.
func (g *GroundStateEigensolver) Eigensolver() pes.Eigensolver {
	return g.eigensolver
}

// Solve prepares the problem's main operator, computes its minimum
// eigenvalue, and interprets the result back into problem space.
func (g *GroundStateEigensolver) Solve(problem *chem.StructureProblem) (*chem.EigenstateResult, error) {
	op, err := pes.PrepareProblem(problem, g.converter)
	if err != nil {
		return nil, err
	}
	raw, err := g.eigensolver.ComputeMinimumEigenvalue(op)
	if err != nil {
		return nil, err
	}
	return problem.Interpret(raw)
}

// VariationalSolverFactory materializes a fresh variational eigensolver per
// problem, with the optimizer built from the configured budget.
type VariationalSolverFactory struct {
	MaxIters  int
	PopSize   int
	Seed      int64
	Tolerance float64
}

// GetSolver builds a variational eigensolver for the problem.
func (f *VariationalSolverFactory) GetSolver(problem *chem.StructureProblem, converter qop.Converter) (pes.Eigensolver, error) {
	if problem == nil {
		return nil, fmt.Errorf("factory requires a problem")
	}
	if converter == nil {
		return nil, fmt.Errorf("factory requires a converter")
	}
	return NewVariationalEigensolver(opt.NewMayfly(f.MaxIters, f.PopSize, f.Seed), f.Tolerance), nil
}

// ExactSolverFactory materializes exact eigensolvers. Useful when the sweep
// should run without any warm-start machinery.
type ExactSolverFactory struct{}

// GetSolver builds an exact eigensolver for the problem.
func (f *ExactSolverFactory) GetSolver(problem *chem.StructureProblem, converter qop.Converter) (pes.Eigensolver, error) {
	if problem == nil {
		return nil, fmt.Errorf("factory requires a problem")
	}
	if converter == nil {
		return nil, fmt.Errorf("factory requires a converter")
	}
	return NewExactEigensolver(), nil
}
