package store

// Store defines the interface for sweep persistence operations.
// Implementations must be thread-safe and handle concurrent access gracefully.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return ErrNotFound if a sweep doesn't exist (for Load/Delete)
//   - Return descriptive errors for I/O, serialization, or validation failures
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveSweep atomically saves a sweep record under the given run ID.
	// If a record already exists for this run, it is overwritten. The
	// implementation should use atomic write strategies (temp file + rename)
	// to prevent corruption in case of failures.
	SaveSweep(runID string, record *SweepRecord) error

	// LoadSweep retrieves the sweep record for the given run.
	// Returns ErrNotFound if no record exists for this runID.
	LoadSweep(runID string) (*SweepRecord, error)

	// ListSweeps returns metadata for all available sweep records.
	// The returned slice may be empty if no records exist.
	ListSweeps() ([]SweepInfo, error)

	// DeleteSweep removes the sweep record and all associated artifacts
	// for the given run, including sweep.json and trace.jsonl.
	// Returns ErrNotFound if no record exists for this runID.
	DeleteSweep(runID string) error
}

// ErrNotFound is returned when a requested sweep record does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing sweep record error.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "sweep not found: " + e.RunID
	}
	return "sweep not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
