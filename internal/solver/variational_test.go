package solver

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/pesweep/internal/opt"
	"github.com/cwbudde/pesweep/internal/qop"
)

func TestVariationalEigensolver_ConvergesToGroundState(t *testing.T) {
	// [[1, 2], [2, 1]] has minimum eigenvalue -1.
	h := mat.NewSymDense(2, []float64{1, 2, 2, 1})

	s := NewVariationalEigensolver(opt.NewMayfly(200, 30, 42), 1e-3)
	res, err := s.ComputeMinimumEigenvalue(&qop.QubitOp{Matrix: h, Sector: -1})
	if err != nil {
		t.Fatalf("ComputeMinimumEigenvalue failed: %v", err)
	}

	if math.Abs(res.Eigenvalue-(-1)) > 0.05 {
		t.Errorf("Expected eigenvalue near -1, got %f", res.Eigenvalue)
	}
	if len(res.OptimalPoint) != 1 {
		t.Errorf("Expected 1 optimization parameter for a 2x2 operator, got %d", len(res.OptimalPoint))
	}
	if res.CostEvals == 0 {
		t.Error("Expected the solver to count cost evaluations")
	}
}

func TestVariationalEigensolver_OneDimensionalShortcut(t *testing.T) {
	h := mat.NewSymDense(1, []float64{-2.5})

	s := NewVariationalEigensolver(opt.NewMayfly(10, 5, 1), 1e-3)
	res, err := s.ComputeMinimumEigenvalue(&qop.QubitOp{Matrix: h, Sector: -1})
	if err != nil {
		t.Fatalf("ComputeMinimumEigenvalue failed: %v", err)
	}
	if res.Eigenvalue != -2.5 {
		t.Errorf("Expected eigenvalue -2.5, got %f", res.Eigenvalue)
	}
	if res.OptimalPoint == nil || len(res.OptimalPoint) != 0 {
		t.Errorf("Expected empty (non-nil) optimal point, got %v", res.OptimalPoint)
	}
}

func TestVariationalEigensolver_InitialPointRoundTrip(t *testing.T) {
	s := NewVariationalEigensolver(opt.NewMayfly(10, 5, 1), 1e-3)

	if s.InitialPoint() != nil {
		t.Error("Expected nil initial point on a fresh solver")
	}

	point := []float64{0.25, -0.5}
	s.SetInitialPoint(point)
	got := s.InitialPoint()
	if len(got) != 2 || got[0] != 0.25 || got[1] != -0.5 {
		t.Errorf("Expected initial point %v, got %v", point, got)
	}
}

func TestVariationalEigensolver_InvalidOperator(t *testing.T) {
	s := NewVariationalEigensolver(opt.NewMayfly(10, 5, 1), 1e-3)
	if _, err := s.ComputeMinimumEigenvalue(&qop.QubitOp{}); err == nil {
		t.Error("Expected error for operator without matrix")
	}
}

func TestStateVector_IsNormalized(t *testing.T) {
	for _, theta := range [][]float64{
		{0.3},
		{0.3, 1.1},
		{-2.0, 0.5, 1.7, -0.1},
	} {
		x := stateVector(theta, len(theta)+1)
		norm := 0.0
		for _, v := range x {
			norm += v * v
		}
		if math.Abs(norm-1) > 1e-12 {
			t.Errorf("State vector for %v has norm %f, want 1", theta, norm)
		}
	}
}

func TestExpectation_MatchesDiagonal(t *testing.T) {
	h := mat.NewSymDense(2, []float64{3, 0, 0, 7})

	// Basis state e_0: expectation is the first diagonal entry.
	if got := expectation(h, []float64{1, 0}); math.Abs(got-3) > 1e-12 {
		t.Errorf("Expected expectation 3, got %f", got)
	}
	if got := expectation(h, []float64{0, 1}); math.Abs(got-7) > 1e-12 {
		t.Errorf("Expected expectation 7, got %f", got)
	}
}
