package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setupTestStore creates a temporary directory and returns an FSStore for testing.
func setupTestStore(t *testing.T) (*FSStore, string) {
	t.Helper()

	tempDir := t.TempDir() // Automatically cleaned up after test
	store, err := NewFSStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}

	return store, tempDir
}

// createTestSweep creates a sweep record with test data.
func createTestSweep(runID string) *SweepRecord {
	return &SweepRecord{
		RunID:    runID,
		Points:   []float64{-0.2, -0.1, 0.0, 0.1, 0.2},
		Energies: []float64{-1.05, -1.11, -1.13, -1.12, -1.08},
		OptimalParams: [][]float64{
			{0.10, 0.02}, {0.12, 0.03}, {0.13, 0.03}, {0.12, 0.04}, {0.11, 0.04},
		},
		Timestamp: time.Now(),
		Config: SweepConfig{
			Molecule:   "H H",
			BondLength: 1.4,
			Driver:     "electronic",
			Solver:     "variational",
			Bootstrap:  true,
			Tolerance:  1e-3,
			Iters:      200,
			PopSize:    30,
			Seed:       42,
		},
	}
}

func TestFSStore_SaveAndLoadSweep(t *testing.T) {
	store, _ := setupTestStore(t)

	runID := "test-run-123"
	original := createTestSweep(runID)

	if err := store.SaveSweep(runID, original); err != nil {
		t.Fatalf("Failed to save sweep: %v", err)
	}

	loaded, err := store.LoadSweep(runID)
	if err != nil {
		t.Fatalf("Failed to load sweep: %v", err)
	}

	if loaded.RunID != original.RunID {
		t.Errorf("RunID mismatch: got %s, want %s", loaded.RunID, original.RunID)
	}
	if len(loaded.Points) != len(original.Points) {
		t.Fatalf("Points length mismatch: got %d, want %d", len(loaded.Points), len(original.Points))
	}
	for i, p := range original.Points {
		if loaded.Points[i] != p {
			t.Errorf("Point %d mismatch: got %f, want %f", i, loaded.Points[i], p)
		}
		if loaded.Energies[i] != original.Energies[i] {
			t.Errorf("Energy %d mismatch: got %f, want %f", i, loaded.Energies[i], original.Energies[i])
		}
	}
	if loaded.Config.Molecule != original.Config.Molecule {
		t.Errorf("Molecule mismatch: got %s, want %s", loaded.Config.Molecule, original.Config.Molecule)
	}
	if loaded.Config.Solver != original.Config.Solver {
		t.Errorf("Solver mismatch: got %s, want %s", loaded.Config.Solver, original.Config.Solver)
	}
}

func TestFSStore_SaveOverwritesExisting(t *testing.T) {
	store, _ := setupTestStore(t)

	runID := "test-run-overwrite"

	first := createTestSweep(runID)
	if err := store.SaveSweep(runID, first); err != nil {
		t.Fatalf("Failed to save first sweep: %v", err)
	}

	second := createTestSweep(runID)
	second.Energies = []float64{-2.05, -2.11, -2.13, -2.12, -2.08}
	if err := store.SaveSweep(runID, second); err != nil {
		t.Fatalf("Failed to save second sweep: %v", err)
	}

	loaded, err := store.LoadSweep(runID)
	if err != nil {
		t.Fatalf("Failed to load sweep: %v", err)
	}
	if loaded.Energies[0] != -2.05 {
		t.Errorf("Expected overwritten energies, got %f", loaded.Energies[0])
	}
}

func TestFSStore_LoadNonexistentSweep(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.LoadSweep("nonexistent-run")
	if err == nil {
		t.Fatal("Expected error loading nonexistent sweep")
	}

	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("Expected NotFoundError, got %T: %v", err, err)
	}
}

func TestFSStore_SaveInvalidInput(t *testing.T) {
	store, _ := setupTestStore(t)

	if err := store.SaveSweep("", createTestSweep("x")); err == nil {
		t.Error("Expected error saving with empty runID")
	}
	if err := store.SaveSweep("run-id", nil); err == nil {
		t.Error("Expected error saving nil record")
	}
}

func TestFSStore_ListSweeps(t *testing.T) {
	store, _ := setupTestStore(t)

	// Empty store lists no sweeps
	infos, err := store.ListSweeps()
	if err != nil {
		t.Fatalf("Failed to list sweeps: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("Expected 0 sweeps, got %d", len(infos))
	}

	// Save several sweeps
	for i := 0; i < 3; i++ {
		runID := fmt.Sprintf("test-run-%d", i)
		if err := store.SaveSweep(runID, createTestSweep(runID)); err != nil {
			t.Fatalf("Failed to save sweep %s: %v", runID, err)
		}
	}

	infos, err = store.ListSweeps()
	if err != nil {
		t.Fatalf("Failed to list sweeps: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("Expected 3 sweeps, got %d", len(infos))
	}

	for _, info := range infos {
		if info.NumPoints != 5 {
			t.Errorf("Expected 5 points, got %d", info.NumPoints)
		}
		if info.MinEnergy != -1.13 {
			t.Errorf("Expected min energy -1.13, got %f", info.MinEnergy)
		}
		if info.MinPoint != 0.0 {
			t.Errorf("Expected min point 0.0, got %f", info.MinPoint)
		}
	}
}

func TestFSStore_ListSkipsCorruptedRecords(t *testing.T) {
	store, tempDir := setupTestStore(t)

	runID := "good-run"
	if err := store.SaveSweep(runID, createTestSweep(runID)); err != nil {
		t.Fatalf("Failed to save sweep: %v", err)
	}

	// Write a corrupted record alongside
	badDir := filepath.Join(tempDir, "sweeps", "bad-run")
	if err := os.MkdirAll(badDir, 0755); err != nil {
		t.Fatalf("Failed to create bad sweep dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(badDir, "sweep.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupted record: %v", err)
	}

	infos, err := store.ListSweeps()
	if err != nil {
		t.Fatalf("Failed to list sweeps: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("Expected 1 sweep (corrupted skipped), got %d", len(infos))
	}
	if infos[0].RunID != runID {
		t.Errorf("Expected run %s, got %s", runID, infos[0].RunID)
	}
}

func TestFSStore_DeleteSweep(t *testing.T) {
	store, tempDir := setupTestStore(t)

	runID := "test-run-delete"
	if err := store.SaveSweep(runID, createTestSweep(runID)); err != nil {
		t.Fatalf("Failed to save sweep: %v", err)
	}

	if err := store.DeleteSweep(runID); err != nil {
		t.Fatalf("Failed to delete sweep: %v", err)
	}

	// Directory should be gone
	sweepDir := filepath.Join(tempDir, "sweeps", runID)
	if _, err := os.Stat(sweepDir); !os.IsNotExist(err) {
		t.Error("Expected sweep directory to be removed")
	}

	// Loading should fail with NotFoundError
	if _, err := store.LoadSweep(runID); err == nil {
		t.Error("Expected error loading deleted sweep")
	}

	// Deleting again should fail with NotFoundError
	err := store.DeleteSweep(runID)
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("Expected NotFoundError, got %T: %v", err, err)
	}
}

func TestFSStore_AtomicWrite(t *testing.T) {
	store, tempDir := setupTestStore(t)

	runID := "test-run-atomic"
	if err := store.SaveSweep(runID, createTestSweep(runID)); err != nil {
		t.Fatalf("Failed to save sweep: %v", err)
	}

	// No temp file should remain after a successful save
	tempPath := filepath.Join(tempDir, "sweeps", runID, "sweep.json.tmp")
	if _, err := os.Stat(tempPath); !os.IsNotExist(err) {
		t.Error("Expected temp file to be cleaned up after save")
	}
}
