package pes

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/pesweep/internal/chem"
	"github.com/cwbudde/pesweep/internal/qop"
)

// Options configures a Sampler.
type Options struct {
	// Tolerance is passed through to solvers that honor a convergence
	// target; the sampling loop itself does not use it numerically.
	Tolerance float64

	// Bootstrap enables warm-starting variational solvers from previously
	// evaluated points.
	Bootstrap bool

	// NumBootstrap is the bootstrap window: the history size up to which
	// nearest-neighbor reuse applies before extrapolation takes over.
	// Zero means unset; an explicit value below 2 is rejected, and any
	// explicit value requires a windowed extrapolation capability.
	NumBootstrap int

	// Extrapolator predicts warm-start parameters once the history outgrows
	// the bootstrap window. Optional.
	Extrapolator Extrapolator

	// Converter maps problem operators for solving. Required when the
	// sampler is bound to a solver factory.
	Converter qop.Converter
}

// DefaultOptions returns the standard sampler configuration: bootstrapping
// enabled, no extrapolation.
func DefaultOptions() Options {
	return Options{
		Tolerance: 1e-3,
		Bootstrap: true,
	}
}

type boundKind int

const (
	preBound boundKind = iota
	factoryBound
)

// binding is the resolved solving capability: either a pre-bound
// ground-state solver or a factory materialized once per sweep, plus the
// variational view of the concrete eigensolver when it has one.
type binding struct {
	kind    boundKind
	gss     GroundStateSolver
	factory SolverFactory

	eigensolver  Eigensolver
	variational  VariationalEigensolver
	initialPoint []float64 // caller-configured starting point, restored each sweep
}

// Sampler evaluates a potential energy surface by solving the ground-state
// problem at a sequence of geometry points, warm-starting variational
// solvers from the points already evaluated.
//
// A Sampler may be reused across Sample calls with different problems, but
// concurrent Sample calls on one instance are not safe: each call resets the
// shared history and solver state.
type Sampler struct {
	opts   Options
	window int // resolved bootstrap window, meaningful only with an extrapolator
	bound  binding

	history *ParamHistory
	results *ResultSet
}

// New creates a sampler bound to a pre-built ground-state solver.
func New(gss GroundStateSolver, opts Options) (*Sampler, error) {
	if gss == nil {
		return nil, &ConfigError{Reason: "no ground-state solver supplied"}
	}
	s := &Sampler{opts: opts, bound: binding{kind: preBound, gss: gss}}
	if err := s.resolveWindow(); err != nil {
		return nil, err
	}

	s.bound.eigensolver = gss.Eigensolver()
	if v, ok := s.bound.eigensolver.(VariationalEigensolver); ok {
		s.bound.variational = v
		// Save the caller-configured starting point so the first solve of
		// every sweep is not clobbered by stale warm-start state.
		s.bound.initialPoint = clonePoint(v.InitialPoint())
	}
	return s, nil
}

// NewWithFactory creates a sampler bound to a solver factory. The concrete
// eigensolver is materialized once per Sample call, before the first point.
func NewWithFactory(factory SolverFactory, opts Options) (*Sampler, error) {
	if factory == nil {
		return nil, &ConfigError{Reason: "no solver factory supplied"}
	}
	if opts.Converter == nil {
		return nil, &ConfigError{Reason: "a converter is required when using a solver factory"}
	}
	s := &Sampler{opts: opts, bound: binding{kind: factoryBound, factory: factory}}
	if err := s.resolveWindow(); err != nil {
		return nil, err
	}
	return s, nil
}

// resolveWindow validates the bootstrap configuration and fixes the window.
func (s *Sampler) resolveWindow() error {
	if s.opts.NumBootstrap == 0 {
		if s.opts.Extrapolator != nil {
			s.window = 2
		}
		return nil
	}
	if s.opts.NumBootstrap < 2 {
		return &ConfigError{Reason: fmt.Sprintf("bootstrap window must be at least 2, got %d", s.opts.NumBootstrap)}
	}
	if s.opts.Extrapolator == nil {
		return &ConfigError{Reason: "an explicit bootstrap window requires an extrapolation capability"}
	}
	if _, ok := s.opts.Extrapolator.(WindowedExtrapolator); !ok {
		return &ConfigError{Reason: "the extrapolation capability does not support windowing"}
	}
	s.window = s.opts.NumBootstrap
	return nil
}

// Sample runs the sweep over the given points, in the caller-supplied order,
// and returns the complete result table. The problem's molecule perturbation
// is mutated in place before every solve and is owned by the sampler for the
// duration of the call. A failure at any point aborts the sweep with no
// partial result.
func (s *Sampler) Sample(problem *chem.StructureProblem, points []float64) (*Result, error) {
	if problem == nil {
		return nil, &ConfigError{Reason: "no problem supplied"}
	}
	if err := validateDriver(problem); err != nil {
		return nil, err
	}

	// Fresh sweep state: warm-start decisions never leak across Sample calls.
	s.history = NewParamHistory()
	s.results = NewResultSet()

	if s.bound.kind == factoryBound {
		// Run the problem adapter once for its validation side effects,
		// then materialize the concrete solver before the first point.
		if _, err := PrepareProblem(problem, s.opts.Converter); err != nil {
			return nil, err
		}
		es, err := s.bound.factory.GetSolver(problem, s.opts.Converter)
		if err != nil {
			return nil, fmt.Errorf("materializing solver: %w", err)
		}
		s.bound.eigensolver = es
		s.bound.variational = nil
		if v, ok := es.(VariationalEigensolver); ok {
			s.bound.variational = v
			if s.bound.initialPoint == nil {
				s.bound.initialPoint = clonePoint(v.InitialPoint())
			}
		}
	}

	if s.bound.variational != nil {
		s.bound.variational.SetInitialPoint(clonePoint(s.bound.initialPoint))
	}

	for i, point := range points {
		slog.Info("Evaluating sweep point", "index", i+1, "total", len(points), "point", point)
		res, err := s.runSinglePoint(problem, point)
		if err != nil {
			return nil, err
		}
		s.results.Set(point, res)
	}

	return s.aggregate(), nil
}

// runSinglePoint evaluates one point: geometry update, warm start, solve,
// history update.
func (s *Sampler) runSinglePoint(problem *chem.StructureProblem, point float64) (*chem.EigenstateResult, error) {
	// Defensive re-check: driver and molecule could in principle change
	// between iterations.
	if err := validateDriver(problem); err != nil {
		return nil, err
	}
	problem.Driver().Molecule().Perturbations = []float64{point}

	if s.bound.variational != nil && s.opts.Bootstrap {
		guess, err := s.initialPoint(point)
		if err != nil {
			return nil, err
		}
		if guess != nil {
			s.bound.variational.SetInitialPoint(guess)
		}
	}

	var (
		res *chem.EigenstateResult
		err error
	)
	switch s.bound.kind {
	case preBound:
		res, err = s.bound.gss.Solve(problem)
	case factoryBound:
		var op *qop.QubitOp
		op, err = PrepareProblem(problem, s.opts.Converter)
		if err != nil {
			return nil, err
		}
		var raw *qop.MinimumResult
		raw, err = s.bound.eigensolver.ComputeMinimumEigenvalue(op)
		if err == nil {
			res, err = problem.Interpret(raw)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("solving point %v: %w", point, err)
	}

	if s.bound.variational != nil && res.Raw != nil && res.Raw.OptimalPoint != nil {
		s.history.Set(point, clonePoint(res.Raw.OptimalPoint))
	}
	return res, nil
}

// validateDriver checks that the problem's driver is one of the two
// supported molecule driver kinds and carries a molecule.
func validateDriver(problem *chem.StructureProblem) error {
	drv := problem.Driver()
	switch drv.(type) {
	case *chem.ElectronicStructureMoleculeDriver, *chem.VibrationalStructureMoleculeDriver:
	default:
		return &DriverError{Reason: "driver must be an electronic or vibrational structure molecule driver"}
	}
	if drv.Molecule() == nil {
		return &DriverError{Reason: "driver must be configured with a molecule"}
	}
	return nil
}

func clonePoint(p []float64) []float64 {
	if p == nil {
		return nil
	}
	return append([]float64{}, p...)
}
