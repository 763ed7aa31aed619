package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cwbudde/pesweep/internal/chem"
	"github.com/cwbudde/pesweep/internal/extrap"
	"github.com/cwbudde/pesweep/internal/opt"
	"github.com/cwbudde/pesweep/internal/pes"
	"github.com/cwbudde/pesweep/internal/qop"
	"github.com/cwbudde/pesweep/internal/solver"
	"github.com/cwbudde/pesweep/internal/store"
)

var (
	configPath   string
	moleculeSpec string
	bondLength   float64
	driverKind   string
	basisSize    int
	pointsFlag   string
	sweepStart   float64
	sweepStop    float64
	sweepStep    float64
	solverKind   string
	bootstrap    bool
	numBootstrap int
	extrapolate  bool
	tolerance    float64
	iters        int
	popSize      int
	seed         int64
	dataDir      string
	saveSweep    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a potential energy surface sweep",
	Long: `Runs a ground-state sweep over the configured geometry points and
prints the resulting energy table. Sweep parameters come from flags or a
YAML sweep file (--config); flags fill in anything the file leaves unset.`,
	RunE: runSweepCmd,
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML sweep definition file")
	runCmd.Flags().StringVar(&moleculeSpec, "molecule", "H H", "Two space-separated element symbols")
	runCmd.Flags().Float64Var(&bondLength, "bond-length", 1.4, "Base bond length in bohr")
	runCmd.Flags().StringVar(&driverKind, "driver", "electronic", "Driver kind: electronic, vibrational")
	runCmd.Flags().IntVar(&basisSize, "basis", 4, "Model basis dimension")
	runCmd.Flags().StringVar(&pointsFlag, "points", "", "Comma-separated perturbation points")
	runCmd.Flags().Float64Var(&sweepStart, "start", -0.5, "Range start (used when --points is empty)")
	runCmd.Flags().Float64Var(&sweepStop, "stop", 0.5, "Range stop, inclusive")
	runCmd.Flags().Float64Var(&sweepStep, "step", 0.1, "Range step")
	runCmd.Flags().StringVar(&solverKind, "solver", "exact", "Solver kind: exact, variational")
	runCmd.Flags().BoolVar(&bootstrap, "bootstrap", true, "Warm-start variational solves from prior points")
	runCmd.Flags().IntVar(&numBootstrap, "num-bootstrap", 0, "Bootstrap window (requires --extrapolate, min 2)")
	runCmd.Flags().BoolVar(&extrapolate, "extrapolate", false, "Extrapolate parameters once history exceeds the window")
	runCmd.Flags().Float64Var(&tolerance, "tolerance", 1e-3, "Convergence target hint for solvers")
	runCmd.Flags().IntVar(&iters, "iters", 200, "Optimizer iterations per point (variational)")
	runCmd.Flags().IntVar(&popSize, "pop", 30, "Optimizer population size (variational)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")
	runCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Base directory for sweep storage")
	runCmd.Flags().BoolVar(&saveSweep, "save", true, "Persist the sweep record and trace")

	rootCmd.AddCommand(runCmd)
}

func runSweepCmd(cmd *cobra.Command, args []string) error {
	spec, err := resolveSpec()
	if err != nil {
		return err
	}

	points, err := spec.SweepPoints()
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no sweep points configured")
	}

	symbols := strings.Fields(spec.Molecule)
	if len(symbols) != 2 {
		return fmt.Errorf("molecule must be two space-separated symbols, got %q", spec.Molecule)
	}
	mol := chem.NewDiatomic(symbols[0], symbols[1], spec.BondLength)

	var driver chem.Driver
	switch spec.Driver {
	case "electronic":
		driver = chem.NewElectronicStructureMoleculeDriver(mol, spec.BasisSize)
	case "vibrational":
		driver = chem.NewVibrationalStructureMoleculeDriver(mol, spec.BasisSize)
	default:
		return fmt.Errorf("unknown driver kind: %s", spec.Driver)
	}
	problem := chem.NewStructureProblem(driver)
	converter := qop.NewQubitConverter()

	opts := pes.DefaultOptions()
	opts.Tolerance = spec.Tolerance
	if spec.Bootstrap != nil {
		opts.Bootstrap = *spec.Bootstrap
	}
	opts.NumBootstrap = spec.NumBootstrap
	opts.Converter = converter
	if spec.Extrapolate {
		opts.Extrapolator = extrap.NewWindowExtrapolator(nil)
	}

	var eigensolver pes.Eigensolver
	switch spec.Solver {
	case "exact":
		eigensolver = solver.NewExactEigensolver()
	case "variational":
		eigensolver = solver.NewVariationalEigensolver(
			opt.NewMayfly(spec.Iters, spec.PopSize, spec.Seed), spec.Tolerance)
	default:
		return fmt.Errorf("unknown solver kind: %s", spec.Solver)
	}

	sampler, err := pes.New(solver.NewGroundStateEigensolver(eigensolver, converter), opts)
	if err != nil {
		return err
	}

	slog.Info("Starting sweep",
		"molecule", spec.Molecule,
		"driver", spec.Driver,
		"solver", spec.Solver,
		"points", len(points),
	)

	start := time.Now()
	result, err := sampler.Sample(problem, points)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}
	elapsed := time.Since(start)

	printResult(result)

	minPoint, minEnergy := result.MinEnergy()
	slog.Info("Sweep complete",
		"elapsed", elapsed,
		"points", len(result.Points),
		"min_point", minPoint,
		"min_energy", minEnergy,
	)

	if saveSweep {
		runID, err := persistResult(spec, result)
		if err != nil {
			return err
		}
		fmt.Printf("Saved sweep %s (%d points, minimum %.6f at %+.3f)\n",
			runID, len(result.Points), minEnergy, minPoint)
	}

	return nil
}

// resolveSpec merges the YAML file (if any) over the flag defaults. Flags
// the file does not mention keep their command-line values.
func resolveSpec() (*SweepSpec, error) {
	flagPoints, err := parsePointList(pointsFlag)
	if err != nil {
		return nil, err
	}

	spec := &SweepSpec{
		Molecule:     moleculeSpec,
		BondLength:   bondLength,
		Driver:       driverKind,
		BasisSize:    basisSize,
		Points:       flagPoints,
		Start:        sweepStart,
		Stop:         sweepStop,
		Step:         sweepStep,
		Solver:       solverKind,
		Bootstrap:    &bootstrap,
		NumBootstrap: numBootstrap,
		Extrapolate:  extrapolate,
		Tolerance:    tolerance,
		Iters:        iters,
		PopSize:      popSize,
		Seed:         seed,
	}
	if configPath == "" {
		return spec, nil
	}

	fileSpec, err := LoadSweepSpec(configPath)
	if err != nil {
		return nil, err
	}
	if fileSpec.Molecule != "" {
		spec.Molecule = fileSpec.Molecule
	}
	if fileSpec.BondLength != 0 {
		spec.BondLength = fileSpec.BondLength
	}
	if fileSpec.Driver != "" {
		spec.Driver = fileSpec.Driver
	}
	if fileSpec.BasisSize != 0 {
		spec.BasisSize = fileSpec.BasisSize
	}
	if len(fileSpec.Points) > 0 || fileSpec.Step != 0 {
		spec.Points = fileSpec.Points
		spec.Start = fileSpec.Start
		spec.Stop = fileSpec.Stop
		spec.Step = fileSpec.Step
	}
	if fileSpec.Solver != "" {
		spec.Solver = fileSpec.Solver
	}
	if fileSpec.Bootstrap != nil {
		spec.Bootstrap = fileSpec.Bootstrap
	}
	if fileSpec.NumBootstrap != 0 {
		spec.NumBootstrap = fileSpec.NumBootstrap
	}
	if fileSpec.Extrapolate {
		spec.Extrapolate = true
	}
	if fileSpec.Tolerance != 0 {
		spec.Tolerance = fileSpec.Tolerance
	}
	if fileSpec.Iters != 0 {
		spec.Iters = fileSpec.Iters
	}
	if fileSpec.PopSize != 0 {
		spec.PopSize = fileSpec.PopSize
	}
	if fileSpec.Seed != 0 {
		spec.Seed = fileSpec.Seed
	}
	return spec, nil
}

// printResult renders the energy table to stdout.
func printResult(result *pes.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POINT\tENERGY")
	fmt.Fprintln(w, "-----\t------")
	for i, p := range result.Points {
		fmt.Fprintf(w, "%+.4f\t%.8f\n", p, result.Energies[i])
	}
	w.Flush()
}

// persistResult writes the sweep record and its per-point trace.
func persistResult(spec *SweepSpec, result *pes.Result) (string, error) {
	sweepStore, err := store.NewFSStore(dataDir)
	if err != nil {
		return "", fmt.Errorf("failed to create sweep store: %w", err)
	}

	runID := uuid.New().String()

	var optimalParams [][]float64
	for _, p := range result.Points {
		res, ok := result.Raw.Get(p)
		if !ok || res.Raw == nil || res.Raw.OptimalPoint == nil {
			continue
		}
		optimalParams = append(optimalParams, res.Raw.OptimalPoint)
	}
	if len(optimalParams) != len(result.Points) {
		optimalParams = nil // non-variational sweep, no parameters to keep
	}

	record := store.NewSweepRecord(runID, result.Points, result.Energies, optimalParams, store.SweepConfig{
		Molecule:     spec.Molecule,
		BondLength:   spec.BondLength,
		Driver:       spec.Driver,
		Solver:       spec.Solver,
		Bootstrap:    spec.Bootstrap != nil && *spec.Bootstrap,
		NumBootstrap: spec.NumBootstrap,
		Extrapolate:  spec.Extrapolate,
		Tolerance:    spec.Tolerance,
		Iters:        spec.Iters,
		PopSize:      spec.PopSize,
		Seed:         spec.Seed,
	})
	if err := sweepStore.SaveSweep(runID, record); err != nil {
		return "", fmt.Errorf("failed to save sweep: %w", err)
	}

	trace, err := store.NewTraceWriter(dataDir, runID, false)
	if err != nil {
		return "", fmt.Errorf("failed to create trace: %w", err)
	}
	defer trace.Close()

	for i, p := range result.Points {
		entry := store.TraceEntry{
			Index:     i,
			Point:     p,
			Energy:    result.Energies[i],
			Timestamp: record.Timestamp,
		}
		if optimalParams != nil {
			entry.Params = optimalParams[i]
		}
		if err := trace.Write(entry); err != nil {
			return "", fmt.Errorf("failed to write trace entry: %w", err)
		}
	}
	if err := trace.Flush(); err != nil {
		return "", err
	}

	return runID, nil
}
