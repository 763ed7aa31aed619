package pes

import (
	"fmt"

	"github.com/cwbudde/pesweep/internal/chem"
	"github.com/cwbudde/pesweep/internal/qop"
)

// PrepareProblem extracts the primary operator from a problem and maps it
// through the converter. An ordered operator set yields its first entry; a
// named set has its main entry removed and returned (the remaining entries
// are auxiliary operators not handled here). A missing main entry is a
// malformed problem definition, reported as a ConfigError.
func PrepareProblem(problem *chem.StructureProblem, converter qop.Converter) (*qop.QubitOp, error) {
	if problem == nil {
		return nil, &ConfigError{Reason: "no problem supplied"}
	}
	if converter == nil {
		return nil, &ConfigError{Reason: "no converter supplied"}
	}

	ops, err := problem.SecondQOps()
	if err != nil {
		return nil, fmt.Errorf("preparing problem: %w", err)
	}

	var main *qop.SecondQuantizedOp
	switch {
	case ops.Ordered != nil:
		if len(ops.Ordered) == 0 {
			return nil, &ConfigError{Reason: "problem produced no operators"}
		}
		main = ops.Ordered[0]
	case ops.Named != nil:
		name := problem.MainPropertyName()
		main = ops.Named[name]
		delete(ops.Named, name)
		if main == nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("main operator %q missing from problem", name)}
		}
	default:
		return nil, &ConfigError{Reason: "problem produced no operators"}
	}

	mapped, err := converter.Convert(main, problem.NumParticles(), problem.SectorLocator())
	if err != nil {
		return nil, fmt.Errorf("converting main operator: %w", err)
	}
	return mapped, nil
}
