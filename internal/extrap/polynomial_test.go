package extrap

import (
	"math"
	"testing"

	"github.com/cwbudde/pesweep/internal/pes"
)

func TestPolynomialExtrapolator_LinearTrend(t *testing.T) {
	history := pes.NewParamHistory()
	// Two parameter components, each linear in the point: p and 2p+1.
	for _, x := range []float64{0.1, 0.2, 0.3} {
		history.Set(x, []float64{x, 2*x + 1})
	}

	ex := NewPolynomialExtrapolator(1)
	sets, err := ex.Extrapolate([]float64{0.4}, history)
	if err != nil {
		t.Fatalf("Extrapolate failed: %v", err)
	}

	params, ok := sets[0.4]
	if !ok {
		t.Fatal("Expected a prediction for 0.4")
	}
	if math.Abs(params[0]-0.4) > 1e-9 {
		t.Errorf("Expected first component 0.4, got %f", params[0])
	}
	if math.Abs(params[1]-1.8) > 1e-9 {
		t.Errorf("Expected second component 1.8, got %f", params[1])
	}
}

func TestPolynomialExtrapolator_QuadraticTrend(t *testing.T) {
	history := pes.NewParamHistory()
	for _, x := range []float64{1, 2, 3, 4} {
		history.Set(x, []float64{x * x})
	}

	ex := NewPolynomialExtrapolator(2)
	sets, err := ex.Extrapolate([]float64{5}, history)
	if err != nil {
		t.Fatalf("Extrapolate failed: %v", err)
	}
	if math.Abs(sets[5][0]-25) > 1e-6 {
		t.Errorf("Expected quadratic prediction 25, got %f", sets[5][0])
	}
}

func TestPolynomialExtrapolator_DegreeClampedToHistory(t *testing.T) {
	history := pes.NewParamHistory()
	history.Set(1, []float64{1})
	history.Set(2, []float64{2})

	// Degree 5 with two points degrades to a determined linear fit.
	ex := NewPolynomialExtrapolator(5)
	sets, err := ex.Extrapolate([]float64{3}, history)
	if err != nil {
		t.Fatalf("Extrapolate failed: %v", err)
	}
	if math.Abs(sets[3][0]-3) > 1e-9 {
		t.Errorf("Expected clamped linear prediction 3, got %f", sets[3][0])
	}
}

func TestPolynomialExtrapolator_NeedsTwoPoints(t *testing.T) {
	history := pes.NewParamHistory()
	history.Set(1, []float64{1})

	ex := NewPolynomialExtrapolator(1)
	if _, err := ex.Extrapolate([]float64{2}, history); err == nil {
		t.Error("Expected error with a single history point")
	}
}

func TestPolynomialExtrapolator_InconsistentDimensions(t *testing.T) {
	history := pes.NewParamHistory()
	history.Set(1, []float64{1, 2})
	history.Set(2, []float64{3})

	ex := NewPolynomialExtrapolator(1)
	if _, err := ex.Extrapolate([]float64{3}, history); err == nil {
		t.Error("Expected error for inconsistent parameter dimensions")
	}
}

func TestNewPolynomialExtrapolator_MinimumDegree(t *testing.T) {
	if d := NewPolynomialExtrapolator(0).Degree(); d != 1 {
		t.Errorf("Expected degree raised to 1, got %d", d)
	}
	if d := NewPolynomialExtrapolator(-3).Degree(); d != 1 {
		t.Errorf("Expected degree raised to 1, got %d", d)
	}
	if d := NewPolynomialExtrapolator(3).Degree(); d != 3 {
		t.Errorf("Expected degree 3, got %d", d)
	}
}
