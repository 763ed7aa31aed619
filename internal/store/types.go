package store

import (
	"fmt"
	"time"
)

// SweepConfig holds the configuration a sweep ran with (record copy).
// This avoids import cycles with the cmd package.
type SweepConfig struct {
	Molecule     string  `json:"molecule"` // e.g. "H H"
	BondLength   float64 `json:"bondLength"`
	Driver       string  `json:"driver"` // electronic, vibrational
	Solver       string  `json:"solver"` // exact, variational
	Bootstrap    bool    `json:"bootstrap"`
	NumBootstrap int     `json:"numBootstrap,omitempty"`
	Extrapolate  bool    `json:"extrapolate"`
	Tolerance    float64 `json:"tolerance"`
	Iters        int     `json:"iters,omitempty"`
	PopSize      int     `json:"popSize,omitempty"`
	Seed         int64   `json:"seed,omitempty"`
}

// SweepRecord is the persisted outcome of one surface sweep: the evaluated
// points, the parallel energies, and the configuration that produced them.
// All fields are serialized to JSON for persistence.
//
// The record stores only the result table, not solver internals: re-running
// a sweep from a record starts the solvers cold, while the energies remain
// the source of truth for plotting and comparison.
type SweepRecord struct {
	// RunID is the unique identifier for this sweep run
	RunID string `json:"runId"`

	// Points are the sweep points in evaluation order
	Points []float64 `json:"points"`

	// Energies are the total energies parallel to Points
	Energies []float64 `json:"energies"`

	// OptimalParams maps recorded points to the variational parameters
	// found there, insertion-ordered parallel to Points. Empty for
	// non-variational sweeps.
	OptimalParams [][]float64 `json:"optimalParams,omitempty"`

	// Timestamp records when this sweep completed
	Timestamp time.Time `json:"timestamp"`

	// Config holds the sweep configuration, kept for provenance and for
	// validating comparisons between runs.
	Config SweepConfig `json:"config"`
}

// SweepInfo contains metadata about a sweep without the full result table.
// Used for listing sweeps efficiently.
type SweepInfo struct {
	// RunID is the unique identifier for this sweep
	RunID string `json:"runId"`

	// Timestamp records when this sweep completed
	Timestamp time.Time `json:"timestamp"`

	// NumPoints is the number of evaluated points
	NumPoints int `json:"numPoints"`

	// MinEnergy is the lowest energy in the sweep
	MinEnergy float64 `json:"minEnergy"`

	// MinPoint is the point at which MinEnergy occurred
	MinPoint float64 `json:"minPoint"`

	// Solver is the solver kind the sweep ran with
	Solver string `json:"solver"`

	// Molecule is the molecule the sweep ran on
	Molecule string `json:"molecule"`
}

// NewSweepRecord creates a record from sweep results.
func NewSweepRecord(runID string, points, energies []float64, optimalParams [][]float64, config SweepConfig) *SweepRecord {
	return &SweepRecord{
		RunID:         runID,
		Points:        points,
		Energies:      energies,
		OptimalParams: optimalParams,
		Timestamp:     time.Now(),
		Config:        config,
	}
}

// ToInfo converts a full SweepRecord to SweepInfo (metadata only).
func (r *SweepRecord) ToInfo() SweepInfo {
	info := SweepInfo{
		RunID:     r.RunID,
		Timestamp: r.Timestamp,
		NumPoints: len(r.Points),
		Solver:    r.Config.Solver,
		Molecule:  r.Config.Molecule,
	}
	for i, e := range r.Energies {
		if i == 0 || e < info.MinEnergy {
			info.MinEnergy = e
			info.MinPoint = r.Points[i]
		}
	}
	return info
}

// Validate checks if the record has valid data.
// Returns an error if any required field is missing or inconsistent.
func (r *SweepRecord) Validate() error {
	if r.RunID == "" {
		return &ValidationError{Field: "RunID", Reason: "cannot be empty"}
	}
	if len(r.Points) == 0 {
		return &ValidationError{Field: "Points", Reason: "cannot be empty"}
	}
	if len(r.Energies) != len(r.Points) {
		return &ValidationError{
			Field:  "Energies",
			Reason: fmt.Sprintf("length mismatch: %d energies for %d points", len(r.Energies), len(r.Points)),
		}
	}
	if r.OptimalParams != nil && len(r.OptimalParams) != len(r.Points) {
		return &ValidationError{
			Field:  "OptimalParams",
			Reason: fmt.Sprintf("length mismatch: %d parameter sets for %d points", len(r.OptimalParams), len(r.Points)),
		}
	}
	if r.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "cannot be zero"}
	}
	if r.Config.Molecule == "" {
		return &ValidationError{Field: "Config.Molecule", Reason: "cannot be empty"}
	}
	if r.Config.Solver == "" {
		return &ValidationError{Field: "Config.Solver", Reason: "cannot be empty"}
	}
	return nil
}

// ValidationError represents a sweep record validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}
