package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FSStore implements the Store interface using filesystem-based persistence.
// Sweep records are stored in a directory structure: <baseDir>/sweeps/<runID>/
//
// Thread-safety: This implementation uses atomic file operations (rename)
// and does not require locks. Multiple goroutines can safely call methods
// concurrently.
type FSStore struct {
	baseDir string // Root directory for all sweep data (e.g., "./data")
}

// NewFSStore creates a new filesystem-based store.
// The baseDir will be created if it doesn't exist.
func NewFSStore(baseDir string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FSStore{
		baseDir: baseDir,
	}, nil
}

// sweepDir returns the directory path for a given run ID.
func (fs *FSStore) sweepDir(runID string) string {
	return filepath.Join(fs.baseDir, "sweeps", runID)
}

// recordPath returns the path to the sweep.json file for a run.
func (fs *FSStore) recordPath(runID string) string {
	return filepath.Join(fs.sweepDir(runID), "sweep.json")
}

// SaveSweep atomically saves a sweep record for the given run.
// Uses temp file + rename pattern to ensure atomicity.
func (fs *FSStore) SaveSweep(runID string, record *SweepRecord) error {
	if runID == "" {
		return fmt.Errorf("runID cannot be empty")
	}
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}

	sweepDir := fs.sweepDir(runID)
	if err := os.MkdirAll(sweepDir, 0755); err != nil {
		return fmt.Errorf("failed to create sweep directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize sweep record: %w", err)
	}

	// Write to temporary file first (atomic pattern)
	tempPath := fs.recordPath(runID) + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp sweep file: %w", err)
	}

	finalPath := fs.recordPath(runID)
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename sweep file: %w", err)
	}

	slog.Debug("Sweep record saved", "runID", runID, "path", finalPath)
	return nil
}

// LoadSweep retrieves the sweep record for the given run.
func (fs *FSStore) LoadSweep(runID string) (*SweepRecord, error) {
	if runID == "" {
		return nil, fmt.Errorf("runID cannot be empty")
	}

	path := fs.recordPath(runID)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &NotFoundError{RunID: runID}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat sweep file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sweep file: %w", err)
	}

	var record SweepRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to deserialize sweep record: %w", err)
	}

	slog.Debug("Sweep record loaded", "runID", runID, "path", path)
	return &record, nil
}

// ListSweeps returns metadata for all available sweep records.
func (fs *FSStore) ListSweeps() ([]SweepInfo, error) {
	sweepsDir := filepath.Join(fs.baseDir, "sweeps")

	if _, err := os.Stat(sweepsDir); os.IsNotExist(err) {
		// No sweeps exist yet, return empty slice
		return []SweepInfo{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat sweeps directory: %w", err)
	}

	entries, err := os.ReadDir(sweepsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sweeps directory: %w", err)
	}

	var infos []SweepInfo

	for _, entry := range entries {
		if !entry.IsDir() {
			continue // Skip non-directory entries
		}

		runID := entry.Name()
		recordPath := fs.recordPath(runID)

		if _, err := os.Stat(recordPath); os.IsNotExist(err) {
			continue // Skip directories without sweep.json
		}

		record, err := fs.LoadSweep(runID)
		if err != nil {
			slog.Warn("Failed to load sweep for listing", "runID", runID, "error", err)
			continue // Skip corrupted records
		}

		infos = append(infos, record.ToInfo())
	}

	slog.Debug("Listed sweeps", "count", len(infos))
	return infos, nil
}

// DeleteSweep removes the sweep record and all associated artifacts.
func (fs *FSStore) DeleteSweep(runID string) error {
	if runID == "" {
		return fmt.Errorf("runID cannot be empty")
	}

	sweepDir := fs.sweepDir(runID)

	if _, err := os.Stat(sweepDir); os.IsNotExist(err) {
		return &NotFoundError{RunID: runID}
	} else if err != nil {
		return fmt.Errorf("failed to stat sweep directory: %w", err)
	}

	if err := os.RemoveAll(sweepDir); err != nil {
		return fmt.Errorf("failed to remove sweep directory: %w", err)
	}

	slog.Debug("Sweep deleted", "runID", runID, "path", sweepDir)
	return nil
}
