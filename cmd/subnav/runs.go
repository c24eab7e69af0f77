package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/subnav/internal/config"
	"github.com/vovakirdan/subnav/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored runs",
	Long: `Display the most recent runs saved by "run --save", "watch", the SSH
server and the HTTP API.

Examples:
  subnav runs
  subnav runs --limit 50
  subnav runs show 3f2b8c1e
  subnav runs best
  subnav runs clear`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored run and its map",
	Args:  cobra.ExactArgs(1),
	Run:   runRunsShow,
}

var runsBestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the run with the highest result",
	Args:  cobra.NoArgs,
	Run:   runRunsBest,
}

var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored run",
	Args:  cobra.NoArgs,
	Run:   runRunsClear,
}

func init() {
	runsCmd.Flags().IntVarP(&flagRunsLimit, "limit", "n", 20, "Number of runs to list")

	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsBestCmd)
	runsCmd.AddCommand(runsClearCmd)
}

// openStore opens the run database or exits.
func openStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runRuns(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Save one with 'subnav run --save <script>'.")
		return
	}

	fmt.Printf("  %-8s  %-7s  %14s  %8s  %8s  %-14s  %s\n", "ID", "Variant", "Result", "Commands", "Cells", "When", "Source")
	fmt.Printf("  %-8s  %-7s  %14s  %8s  %8s  %-14s  %s\n", "--", "-------", "------", "--------", "-----", "----", "------")
	for _, r := range runs {
		fmt.Printf("  %-8s  %-7s  %14s  %8s  %8s  %-14s  %s\n",
			shortID(r.ID),
			r.Variant,
			humanize.Comma(int64(r.Result)),
			humanize.Comma(int64(r.Commands)),
			humanize.Comma(int64(r.Cells)),
			humanize.Time(r.CreatedAt),
			r.Source,
		)
	}

	total, err := store.CountRuns()
	if err == nil && total > len(runs) {
		fmt.Println()
		fmt.Printf("Showing %d of %s runs\n", len(runs), humanize.Comma(int64(total)))
	}
}

func runRunsShow(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	id, err := store.ResolveID(args[0])
	if errors.Is(err, storage.ErrAmbiguousID) {
		fmt.Fprintf(os.Stderr, "Error: %q matches several runs, use a longer id\n", args[0])
		os.Exit(1)
	}
	if errors.Is(err, storage.ErrRunNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no run with id %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'subnav runs' to list stored runs.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}

	run, err := store.RunByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}
	printRun(cfg, store, run)
}

func runRunsBest(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	run, ok, err := store.BestRun()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving best run: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Println("No runs recorded yet.")
		return
	}
	printRun(cfg, store, run)
}

func runRunsClear(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	if err := store.ClearRuns(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Run history cleared.")
}

// printRun prints a run summary followed by its stored map.
func printRun(cfg config.Config, store *storage.Store, run storage.Run) {
	opts := mapOptions(cfg)
	m, err := store.RunCells(run.ID, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving map: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run %s\n", run.ID)
	fmt.Printf("  Variant:  %s\n", run.Variant)
	fmt.Printf("  Source:   %s\n", run.Source)
	fmt.Printf("  Saved:    %s (%s)\n", run.CreatedAt.Local().Format("2006-01-02 15:04"), humanize.Time(run.CreatedAt))
	fmt.Printf("  Commands: %s\n", humanize.Comma(int64(run.Commands)))
	fmt.Printf("  Position: horizontal %d, depth %d, aim %d\n", run.Horizontal, run.Depth, run.Aim)
	fmt.Printf("  Result:   %s\n", humanize.Comma(int64(run.Result)))
	fmt.Println()
	m.Print(os.Stdout)
}

// shortID abbreviates a run ID for listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
