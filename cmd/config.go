package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// SweepSpec is the YAML sweep definition accepted by `pesweep run --config`.
// Fields left at their zero value fall back to the corresponding flag
// defaults.
type SweepSpec struct {
	Molecule   string  `yaml:"molecule"` // two space-separated symbols, e.g. "H H"
	BondLength float64 `yaml:"bondLength"`
	Driver     string  `yaml:"driver"` // electronic, vibrational
	BasisSize  int     `yaml:"basisSize"`

	// Either an explicit point list or a start/stop/step range.
	Points []float64 `yaml:"points"`
	Start  float64   `yaml:"start"`
	Stop   float64   `yaml:"stop"`
	Step   float64   `yaml:"step"`

	Solver       string  `yaml:"solver"` // exact, variational
	Bootstrap    *bool   `yaml:"bootstrap"`
	NumBootstrap int     `yaml:"numBootstrap"`
	Extrapolate  bool    `yaml:"extrapolate"`
	Tolerance    float64 `yaml:"tolerance"`
	Iters        int     `yaml:"iters"`
	PopSize      int     `yaml:"popSize"`
	Seed         int64   `yaml:"seed"`
}

// LoadSweepSpec reads and parses a YAML sweep definition.
func LoadSweepSpec(path string) (*SweepSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sweep config: %w", err)
	}

	var spec SweepSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse sweep config: %w", err)
	}
	return &spec, nil
}

// SweepPoints resolves the point list: an explicit list wins, otherwise the
// start/stop/step range is expanded (stop inclusive up to rounding).
func (s *SweepSpec) SweepPoints() ([]float64, error) {
	if len(s.Points) > 0 {
		return s.Points, nil
	}
	if s.Step <= 0 {
		return nil, fmt.Errorf("sweep range requires a positive step, got %f", s.Step)
	}
	if s.Stop < s.Start {
		return nil, fmt.Errorf("sweep range stop %f is before start %f", s.Stop, s.Start)
	}

	var points []float64
	for p := s.Start; p <= s.Stop+1e-9; p += s.Step {
		points = append(points, p)
	}
	return points, nil
}

// parsePointList parses a comma-separated point list flag value.
func parsePointList(value string) ([]float64, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	points := make([]float64, 0, len(parts))
	for _, part := range parts {
		p, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid point %q: %w", part, err)
		}
		points = append(points, p)
	}
	return points, nil
}
