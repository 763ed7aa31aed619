package chem

import (
	"fmt"

	"github.com/cwbudde/pesweep/internal/qop"
)

// OpGrouping selects how a problem hands its operators to the sampler.
type OpGrouping int

const (
	// GroupNamed yields a name-keyed operator map; the main operator is
	// looked up (and removed) by the problem's main property name.
	GroupNamed OpGrouping = iota
	// GroupOrdered yields an ordered operator list; the main operator is
	// the first entry.
	GroupOrdered
)

// OpSet is the tagged result of SecondQOps: exactly one of Ordered or Named
// is populated.
type OpSet struct {
	Ordered []*qop.SecondQuantizedOp
	Named   map[string]*qop.SecondQuantizedOp
}

// StructureProblem binds a driver to the solving contract: operator
// production, particle metadata, and interpretation of raw eigensolver
// results back into problem space.
type StructureProblem struct {
	driver   Driver
	grouping OpGrouping
	locator  qop.SectorLocator
}

// NewStructureProblem creates a problem with named operator grouping.
func NewStructureProblem(driver Driver) *StructureProblem {
	return &StructureProblem{driver: driver, grouping: GroupNamed}
}

// WithGrouping sets the operator grouping and returns the problem.
func (p *StructureProblem) WithGrouping(g OpGrouping) *StructureProblem {
	p.grouping = g
	return p
}

// WithSectorLocator sets the symmetry sector locator and returns the problem.
func (p *StructureProblem) WithSectorLocator(loc qop.SectorLocator) *StructureProblem {
	p.locator = loc
	return p
}

// Driver returns the underlying driver.
func (p *StructureProblem) Driver() Driver {
	return p.driver
}

// MainPropertyName names the operator to minimize.
func (p *StructureProblem) MainPropertyName() string {
	if p.driver == nil {
		return ""
	}
	return p.driver.MainPropertyName()
}

// NumParticles returns the (alpha, beta) electron split, zero for problems
// without electrons.
func (p *StructureProblem) NumParticles() [2]int {
	if p.driver == nil {
		return [2]int{}
	}
	mol := p.driver.Molecule()
	if mol == nil {
		return [2]int{}
	}
	electrons, err := mol.NumElectrons()
	if err != nil {
		return [2]int{}
	}
	alpha := (electrons + 1) / 2
	return [2]int{alpha, electrons - alpha}
}

// SectorLocator returns the configured symmetry sector locator, nil if none.
func (p *StructureProblem) SectorLocator() qop.SectorLocator {
	return p.locator
}

// SecondQOps builds the operators at the driver's current geometry, grouped
// per the problem configuration.
func (p *StructureProblem) SecondQOps() (*OpSet, error) {
	if p.driver == nil {
		return nil, fmt.Errorf("problem has no driver")
	}
	named, err := p.driver.SecondQOps()
	if err != nil {
		return nil, fmt.Errorf("building operators: %w", err)
	}
	if p.grouping == GroupNamed {
		return &OpSet{Named: named}, nil
	}

	// Ordered grouping: main operator first, auxiliaries after.
	ordered := make([]*qop.SecondQuantizedOp, 0, len(named))
	if main, ok := named[p.MainPropertyName()]; ok {
		ordered = append(ordered, main)
	}
	for name, op := range named {
		if name != p.MainPropertyName() {
			ordered = append(ordered, op)
		}
	}
	return &OpSet{Ordered: ordered}, nil
}

// EigenstateResult is a raw eigensolver result interpreted back into problem
// space. TotalEnergies carries the primary energy first.
type EigenstateResult struct {
	Eigenvalues            []float64
	TotalEnergies          []float64
	NuclearRepulsionEnergy float64
	Raw                    *qop.MinimumResult
}

// Interpret lifts a raw minimum-eigenvalue result into problem space,
// adding the nuclear repulsion energy at the current geometry.
func (p *StructureProblem) Interpret(raw *qop.MinimumResult) (*EigenstateResult, error) {
	if raw == nil {
		return nil, fmt.Errorf("cannot interpret nil result")
	}
	repulsion := 0.0
	if p.driver != nil {
		if _, electronic := p.driver.(*ElectronicStructureMoleculeDriver); electronic {
			if mol := p.driver.Molecule(); mol != nil {
				repulsion = mol.NuclearRepulsion()
			}
		}
	}
	return &EigenstateResult{
		Eigenvalues:            []float64{raw.Eigenvalue},
		TotalEnergies:          []float64{raw.Eigenvalue + repulsion},
		NuclearRepulsionEnergy: repulsion,
		Raw:                    raw,
	}, nil
}
