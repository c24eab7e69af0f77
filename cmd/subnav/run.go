package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/subnav/internal/nav"
	"github.com/vovakirdan/subnav/internal/platform/tui"
	"github.com/vovakirdan/subnav/internal/session"
	"github.com/vovakirdan/subnav/internal/storage"
)

var (
	flagStyled bool
	flagSave   bool
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run a command script and print the sonar map",
	Long: `Execute every command of a script, scanning at the origin and after each
command, then print the aggregated sonar map and horizontal * depth.

Use "-" to read the script from stdin. Blank lines are ignored; the first
malformed command stops the run and is reported with its line number.

Examples:
  subnav run dive.sub
  subnav run --variant simple dive.sub
  subnav run --styled --save dive.sub
  printf 'down 1\nforward 10\n' | subnav run -`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagStyled, "styled", false, "Draw the map with colours and a border")
	runCmd.Flags().BoolVar(&flagSave, "save", false, "Save the run to the history database")
}

func runRun(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger("subnav")

	lines, err := readScript(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sess := session.New(sessionOptions(cfg, mustSource(cfg), logger))
	if err := sess.RunScript(lines); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagStyled {
		pos := sess.Position().Coord()
		opts := tui.RenderOptions{Title: cfg.Render.Title, Color: cfg.Render.Color, Marker: &pos}
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			opts.MaxWidth = w - 4
			opts.MaxHeight = h - 6
		}
		fmt.Println(tui.RenderMap(sess.Map(), opts))
	} else {
		sess.Map().Print(os.Stdout)
	}

	state := sess.State()
	fmt.Printf("Position: horizontal %d, depth %d", state.Horizontal, state.Depth)
	if sess.Variant() == nav.VariantAimed {
		fmt.Printf(", aim %d", state.Aim)
	}
	fmt.Println()
	fmt.Printf("Result: %d\n", sess.Result())

	if !flagSave {
		return
	}
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	run, err := store.SaveSession(sess, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving run: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved run %s\n", run.ID)
}

// readScript loads a script from a path, or from stdin for "-".
func readScript(path string) ([]nav.Line, error) {
	if path == "-" {
		return nav.ReadScript(os.Stdin)
	}
	return nav.LoadScript(path)
}
