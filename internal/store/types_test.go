package store

import (
	"testing"
	"time"
)

func validRecord() *SweepRecord {
	return &SweepRecord{
		RunID:     "run-1",
		Points:    []float64{-0.1, 0.0, 0.1},
		Energies:  []float64{-1.1, -1.13, -1.12},
		Timestamp: time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
		Config: SweepConfig{
			Molecule:   "H H",
			BondLength: 1.4,
			Driver:     "electronic",
			Solver:     "exact",
			Tolerance:  1e-3,
		},
	}
}

func TestSweepRecord_Validate(t *testing.T) {
	if err := validRecord().Validate(); err != nil {
		t.Errorf("Expected valid record, got %v", err)
	}
}

func TestSweepRecord_ValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SweepRecord)
		field  string
	}{
		{"empty run ID", func(r *SweepRecord) { r.RunID = "" }, "RunID"},
		{"no points", func(r *SweepRecord) { r.Points = nil }, "Points"},
		{"energy length mismatch", func(r *SweepRecord) { r.Energies = r.Energies[:2] }, "Energies"},
		{"params length mismatch", func(r *SweepRecord) { r.OptimalParams = [][]float64{{1}} }, "OptimalParams"},
		{"zero timestamp", func(r *SweepRecord) { r.Timestamp = time.Time{} }, "Timestamp"},
		{"empty molecule", func(r *SweepRecord) { r.Config.Molecule = "" }, "Config.Molecule"},
		{"empty solver", func(r *SweepRecord) { r.Config.Solver = "" }, "Config.Solver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			tt.mutate(record)

			err := record.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			vErr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("Expected ValidationError, got %T: %v", err, err)
			}
			if vErr.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, vErr.Field)
			}
		})
	}
}

func TestSweepRecord_ToInfo(t *testing.T) {
	record := validRecord()
	info := record.ToInfo()

	if info.RunID != record.RunID {
		t.Errorf("RunID mismatch: got %s, want %s", info.RunID, record.RunID)
	}
	if info.NumPoints != 3 {
		t.Errorf("Expected 3 points, got %d", info.NumPoints)
	}
	if info.MinEnergy != -1.13 {
		t.Errorf("Expected min energy -1.13, got %f", info.MinEnergy)
	}
	if info.MinPoint != 0.0 {
		t.Errorf("Expected min point 0.0, got %f", info.MinPoint)
	}
	if info.Solver != "exact" {
		t.Errorf("Expected solver exact, got %s", info.Solver)
	}
	if info.Molecule != "H H" {
		t.Errorf("Expected molecule 'H H', got %s", info.Molecule)
	}
}

func TestNewSweepRecord_SetsTimestamp(t *testing.T) {
	record := NewSweepRecord("run-2",
		[]float64{0.0}, []float64{-1.0}, nil,
		SweepConfig{Molecule: "H H", Solver: "exact"})

	if record.Timestamp.IsZero() {
		t.Error("Expected timestamp to be set")
	}
	if err := record.Validate(); err != nil {
		t.Errorf("Expected valid record, got %v", err)
	}
}
