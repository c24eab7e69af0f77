package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/subnav/internal/core"
	"github.com/vovakirdan/subnav/internal/platform/tui"
	"github.com/vovakirdan/subnav/internal/scan"
	"github.com/vovakirdan/subnav/internal/sonarmap"
)

var (
	flagGenOut      string
	flagGenName     string
	flagGenSeed     int64
	flagGenCoverage float64
	flagGenFrom     []int
	flagGenTo       []int
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Generate or inspect scan datasets",
	Long: `Scan datasets map "(x,y)" keys to 3x3 samples written as nine characters
in row-major order.

Examples:
  subnav scan generate --out trench.yaml
  subnav scan generate --from -20,0 --to 60,40 --seed 7 --coverage 0.6
  subnav scan show trench.yaml`,
}

var scanGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a dataset sampled from procedural terrain",
	Args:  cobra.NoArgs,
	Run:   runScanGenerate,
}

var scanShowCmd = &cobra.Command{
	Use:   "show <dataset>",
	Short: "Print every sample of a dataset merged into one map",
	Args:  cobra.ExactArgs(1),
	Run:   runScanShow,
}

func init() {
	scanGenerateCmd.Flags().StringVarP(&flagGenOut, "out", "o", "", "Output file (default stdout)")
	scanGenerateCmd.Flags().StringVar(&flagGenName, "name", "terrain", "Dataset name")
	scanGenerateCmd.Flags().Int64Var(&flagGenSeed, "seed", 0, "Terrain seed (default from config)")
	scanGenerateCmd.Flags().Float64Var(&flagGenCoverage, "coverage", -1, "Fraction of scanned coordinates, 0..1 (default from config)")
	scanGenerateCmd.Flags().IntSliceVar(&flagGenFrom, "from", []int{-10, 0}, "Top-left corner x,y")
	scanGenerateCmd.Flags().IntSliceVar(&flagGenTo, "to", []int{40, 30}, "Bottom-right corner x,y")

	scanShowCmd.Flags().BoolVar(&flagStyled, "styled", false, "Draw the map with colours and a border")

	scanCmd.AddCommand(scanGenerateCmd)
	scanCmd.AddCommand(scanShowCmd)
}

func runScanGenerate(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()

	if len(flagGenFrom) != 2 || len(flagGenTo) != 2 {
		fmt.Fprintln(os.Stderr, "Error: --from and --to take two integers: x,y")
		os.Exit(1)
	}

	terrainCfg := scan.TerrainConfig{
		Seed:      cfg.Scan.Terrain.Seed,
		Frequency: cfg.Scan.Terrain.Frequency,
		Coverage:  cfg.Scan.Terrain.Coverage,
	}
	if cmd.Flags().Changed("seed") {
		terrainCfg.Seed = flagGenSeed
	}
	if flagGenCoverage >= 0 {
		terrainCfg.Coverage = flagGenCoverage
	}

	box := core.NewBounds(core.C(flagGenFrom[0], flagGenFrom[1]), core.C(flagGenTo[0], flagGenTo[1]))
	table := scan.Generate(flagGenName, scan.NewTerrain(terrainCfg), box)

	if flagGenOut == "" {
		if err := scan.WriteDataset(os.Stdout, table); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := scan.SaveDataset(flagGenOut, table); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d samples to %s\n", table.Len(), flagGenOut)
}

func runScanShow(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	table, err := scan.LoadDataset(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := mapOptions(cfg)
	m := sonarmap.New(table, opts...)
	for _, c := range table.Coords() {
		m.Ingest(c)
	}

	if flagStyled {
		fmt.Println(tui.RenderMap(m, tui.RenderOptions{Title: table.Name, Color: cfg.Render.Color}))
	} else {
		m.Print(os.Stdout)
	}
	fmt.Printf("%d samples, %d cells\n", table.Len(), m.Len())
}
