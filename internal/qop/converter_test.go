package qop

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestQubitConverter_CopiesMatrix(t *testing.T) {
	src := mat.NewSymDense(2, []float64{1, 2, 2, 3})
	op := NewSecondQuantizedOp("Energy", src)

	conv := NewQubitConverter()
	mapped, err := conv.Convert(op, [2]int{1, 1}, nil)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	if mapped.Dim() != 2 {
		t.Fatalf("Expected dimension 2, got %d", mapped.Dim())
	}
	if mapped.Matrix.At(0, 1) != 2 {
		t.Errorf("Expected matrix entries carried over, got %f", mapped.Matrix.At(0, 1))
	}

	// The mapped operator must not alias the source.
	src.SetSym(0, 1, 99)
	if mapped.Matrix.At(0, 1) != 2 {
		t.Error("Expected the mapped matrix to be an independent copy")
	}
}

func TestQubitConverter_SectorLocator(t *testing.T) {
	op := NewSecondQuantizedOp("Energy", mat.NewSymDense(2, nil))
	conv := NewQubitConverter()

	mapped, err := conv.Convert(op, [2]int{1, 1}, nil)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if mapped.Sector != -1 {
		t.Errorf("Expected sector -1 without a locator, got %d", mapped.Sector)
	}

	locator := func(op *SecondQuantizedOp, numParticles [2]int) int {
		return numParticles[0] - numParticles[1]
	}
	mapped, err = conv.Convert(op, [2]int{2, 1}, locator)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if mapped.Sector != 1 {
		t.Errorf("Expected sector 1 from the locator, got %d", mapped.Sector)
	}
}

func TestQubitConverter_InvalidOperators(t *testing.T) {
	conv := NewQubitConverter()

	if _, err := conv.Convert(nil, [2]int{}, nil); err == nil {
		t.Error("Expected error converting nil operator")
	}
	if _, err := conv.Convert(&SecondQuantizedOp{Name: "Empty"}, [2]int{}, nil); err == nil {
		t.Error("Expected error converting operator without matrix")
	}
}

func TestQubitOp_Validate(t *testing.T) {
	valid := &QubitOp{Matrix: mat.NewSymDense(2, nil), Sector: -1}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid operator, got %v", err)
	}

	if err := (&QubitOp{}).Validate(); err == nil {
		t.Error("Expected error for operator without matrix")
	}
}
