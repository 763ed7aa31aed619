package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/pesweep/internal/store"
)

var (
	sweepsDataDir string
	keepLast      int
	olderThanDays int
	forceClean    bool
	showTrace     bool
)

var sweepsCmd = &cobra.Command{
	Use:   "sweeps",
	Short: "Manage stored sweep results",
	Long: `Manage persisted sweep results: list stored runs, inspect a single
run's energy table, and clean old runs by retention policy.`,
}

var listSweepsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored sweeps",
	Long:  `Display all stored sweeps with run ID, timestamp, point count, minimum energy, and disk usage.`,
	RunE:  runListSweeps,
}

var showSweepCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a stored sweep's energy table",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowSweep,
}

var cleanSweepsCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean old sweeps",
	Long: `Delete stored sweeps based on retention policy.
You can keep only the most recent N sweeps or delete sweeps older than N days.`,
	RunE: runCleanSweeps,
}

func init() {
	rootCmd.AddCommand(sweepsCmd)

	sweepsCmd.AddCommand(listSweepsCmd)
	sweepsCmd.AddCommand(showSweepCmd)
	sweepsCmd.AddCommand(cleanSweepsCmd)

	sweepsCmd.PersistentFlags().StringVar(&sweepsDataDir, "data-dir", "./data", "Base directory for sweep storage")

	showSweepCmd.Flags().BoolVar(&showTrace, "trace", false, "Include per-point trace entries")

	cleanSweepsCmd.Flags().IntVar(&keepLast, "keep-last", 0, "Keep only the most recent N sweeps (0 = keep all)")
	cleanSweepsCmd.Flags().IntVar(&olderThanDays, "older-than", 0, "Delete sweeps older than N days (0 = no age limit)")
	cleanSweepsCmd.Flags().BoolVarP(&forceClean, "force", "f", false, "Skip confirmation prompt")
}

func runListSweeps(cmd *cobra.Command, args []string) error {
	sweepStore, err := store.NewFSStore(sweepsDataDir)
	if err != nil {
		return fmt.Errorf("failed to create sweep store: %w", err)
	}

	infos, err := sweepStore.ListSweeps()
	if err != nil {
		return fmt.Errorf("failed to list sweeps: %w", err)
	}

	if len(infos) == 0 {
		fmt.Println("No sweeps found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tTIMESTAMP\tMOLECULE\tSOLVER\tPOINTS\tMIN ENERGY\tSIZE")
	fmt.Fprintln(w, "------\t---------\t--------\t------\t------\t----------\t----")

	for _, info := range infos {
		sweepDir := filepath.Join(sweepsDataDir, "sweeps", info.RunID)
		size, err := getDirSize(sweepDir)
		sizeStr := "unknown"
		if err == nil {
			sizeStr = formatBytes(size)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.6f\t%s\n",
			shortRunID(info.RunID),
			info.Timestamp.Format("2006-01-02 15:04:05"),
			info.Molecule,
			info.Solver,
			info.NumPoints,
			info.MinEnergy,
			sizeStr,
		)
	}

	w.Flush()

	fmt.Printf("\nTotal sweeps: %d\n", len(infos))
	return nil
}

func runShowSweep(cmd *cobra.Command, args []string) error {
	runID := args[0]

	sweepStore, err := store.NewFSStore(sweepsDataDir)
	if err != nil {
		return fmt.Errorf("failed to create sweep store: %w", err)
	}

	record, err := sweepStore.LoadSweep(runID)
	if err != nil {
		return fmt.Errorf("failed to load sweep: %w", err)
	}

	fmt.Printf("Run:       %s\n", record.RunID)
	fmt.Printf("Timestamp: %s\n", record.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("Molecule:  %s (bond length %.4f)\n", record.Config.Molecule, record.Config.BondLength)
	fmt.Printf("Driver:    %s\n", record.Config.Driver)
	fmt.Printf("Solver:    %s\n", record.Config.Solver)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POINT\tENERGY")
	fmt.Fprintln(w, "-----\t------")
	for i, p := range record.Points {
		fmt.Fprintf(w, "%+.4f\t%.8f\n", p, record.Energies[i])
	}
	w.Flush()

	info := record.ToInfo()
	fmt.Printf("\nMinimum %.8f at %+.4f\n", info.MinEnergy, info.MinPoint)

	if showTrace {
		if err := printTrace(runID); err != nil {
			return err
		}
	}

	return nil
}

// printTrace dumps the per-point trace for a run, if one exists.
func printTrace(runID string) error {
	reader, err := store.NewTraceReader(sweepsDataDir, runID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Println("\nNo trace recorded for this sweep.")
			return nil
		}
		return fmt.Errorf("failed to open trace: %w", err)
	}
	defer reader.Close()

	fmt.Println("\nTrace:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tPOINT\tENERGY\tPARAMS")
	for {
		entry, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read trace: %w", err)
		}
		fmt.Fprintf(w, "%d\t%+.4f\t%.8f\t%v\n", entry.Index, entry.Point, entry.Energy, entry.Params)
	}
	return w.Flush()
}

func runCleanSweeps(cmd *cobra.Command, args []string) error {
	if keepLast == 0 && olderThanDays == 0 {
		return fmt.Errorf("must specify either --keep-last or --older-than")
	}

	sweepStore, err := store.NewFSStore(sweepsDataDir)
	if err != nil {
		return fmt.Errorf("failed to create sweep store: %w", err)
	}

	infos, err := sweepStore.ListSweeps()
	if err != nil {
		return fmt.Errorf("failed to list sweeps: %w", err)
	}

	if len(infos) == 0 {
		fmt.Println("No sweeps to clean.")
		return nil
	}

	toDelete := selectSweepsForDeletion(infos, keepLast, olderThanDays)

	if len(toDelete) == 0 {
		fmt.Println("No sweeps match deletion criteria.")
		return nil
	}

	fmt.Printf("Found %d sweep(s) to delete:\n", len(toDelete))
	for _, info := range toDelete {
		fmt.Printf("  - %s (%d points, %s)\n",
			shortRunID(info.RunID),
			info.NumPoints,
			info.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}

	if !forceClean {
		fmt.Print("\nProceed with deletion? [y/N]: ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	deleted := 0
	failed := 0
	for _, info := range toDelete {
		if err := sweepStore.DeleteSweep(info.RunID); err != nil {
			slog.Error("Failed to delete sweep", "run_id", info.RunID, "error", err)
			failed++
		} else {
			slog.Info("Deleted sweep", "run_id", info.RunID)
			deleted++
		}
	}

	fmt.Printf("\nDeleted %d sweep(s), %d failed.\n", deleted, failed)
	return nil
}

// selectSweepsForDeletion applies the retention policy: sweeps beyond the
// most recent keepLast, plus sweeps older than the day cutoff.
func selectSweepsForDeletion(infos []store.SweepInfo, keepLast, olderThanDays int) []store.SweepInfo {
	marked := make(map[string]bool)
	var toDelete []store.SweepInfo

	if olderThanDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -olderThanDays)
		for _, info := range infos {
			if info.Timestamp.Before(cutoff) && !marked[info.RunID] {
				marked[info.RunID] = true
				toDelete = append(toDelete, info)
			}
		}
	}

	if keepLast > 0 && len(infos) > keepLast {
		sorted := make([]store.SweepInfo, len(infos))
		copy(sorted, infos)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		})

		for _, info := range sorted[:len(sorted)-keepLast] {
			if !marked[info.RunID] {
				marked[info.RunID] = true
				toDelete = append(toDelete, info)
			}
		}
	}

	return toDelete
}

// shortRunID truncates long run IDs for display.
func shortRunID(runID string) string {
	if len(runID) > 12 {
		return runID[:12] + "..."
	}
	return runID
}

// getDirSize calculates the total size of a directory.
func getDirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}

// formatBytes formats bytes as human-readable string.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
