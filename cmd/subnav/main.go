// subnav pilots a submarine through a command script and charts the sonar
// scans it collects along the way.
//
// Usage:
//
//	subnav run <script>         - Run a script and print the map
//	subnav watch <script>       - Replay a script in the terminal, one command per tick
//	subnav scan generate        - Write a scan dataset from procedural terrain
//	subnav scan show <dataset>  - Print every sample in a dataset as one map
//	subnav runs                 - List stored runs
//	subnav serve                - Serve the replay over SSH and the JSON API over HTTP
//
// Global flags:
//
//	--config <path>   - Config file (default search: ~/.subnav/config.yaml, ./configs/subnav.yaml)
//	--variant <name>  - Navigation variant: simple or aimed
//	--db <path>       - Run history database (default: ~/.subnav/runs.db)
//	--verbose         - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/subnav/internal/config"
	"github.com/vovakirdan/subnav/internal/scan"
	"github.com/vovakirdan/subnav/internal/session"
	"github.com/vovakirdan/subnav/internal/sonarmap"
)

var (
	// Global flags
	flagConfig  string
	flagVariant string
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "subnav",
	Short: "Submarine navigator and sonar map aggregator",
	Long: `subnav executes submarine movement scripts ("forward 5", "down 3", "up 1"),
scans the sea floor at every position it reaches and merges the 3x3 scans
into one map.

Available commands:
  run      - Run a script and print the final map and result
  watch    - Replay a script interactively
  scan     - Generate or inspect scan datasets
  runs     - Browse the run history
  serve    - Serve replays over SSH and runs over HTTP

Examples:
  subnav run dive.sub
  subnav run --variant simple dive.sub
  subnav watch dive.sub
  subnav scan generate --out trench.yaml
  subnav runs
  subnav serve --http :8088`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagVariant, "variant", "", "Navigation variant (simple or aimed)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the config and applies global flag overrides.
// Exits on error like the other command helpers.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flagVariant != "" {
		cfg.Navigation.Variant = flagVariant
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds a stderr logger for a component.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// mustSource builds the configured scan source or exits.
func mustSource(cfg config.Config) scan.Source {
	src, err := cfg.Scan.Source()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scan data: %v\n", err)
		os.Exit(1)
	}
	return src
}

// mapOptions derives sonar map options from the config.
func mapOptions(cfg config.Config) []sonarmap.Option {
	opts := []sonarmap.Option{sonarmap.WithMaxCells(cfg.Render.MaxCells)}
	if r := cfg.BlankRune(); r != 0 {
		opts = append(opts, sonarmap.WithBlank(r))
	}
	return opts
}

// sessionOptions derives session options from the config.
func sessionOptions(cfg config.Config, src scan.Source, logger *log.Logger) session.Options {
	return session.Options{
		Variant:      cfg.Variant(),
		Source:       src,
		Blank:        cfg.BlankRune(),
		EnforceModes: cfg.Navigation.EnforceModes,
		MaxCells:     cfg.Render.MaxCells,
		Logger:       logger,
	}
}
