package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/subnav/internal/core"
	"github.com/vovakirdan/subnav/internal/platform/tui"
	"github.com/vovakirdan/subnav/internal/storage"
)

var (
	flagTickRate int
	flagNoSave   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <script>",
	Short: "Replay a script in the terminal",
	Long: `Replay a command script one command per tick while the sonar map grows.

Controls:
  space/p  pause or resume
  n        execute one command while paused
  r        restart from the origin
  e        declare an emergency (all commands legal afterwards)
  q        quit

Finished runs are saved to the history database unless --no-save is set.

Examples:
  subnav watch dive.sub
  subnav watch --rate 10 dive.sub`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&flagTickRate, "rate", 0, "Commands per second (default from config)")
	watchCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not save the finished run")
}

func runWatch(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger("subnav")

	lines, err := readScript(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runtime := core.DefaultConfig()
	runtime.TickRate = cfg.Render.TickRate
	if flagTickRate > 0 {
		runtime.TickRate = flagTickRate
	}
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	var store *storage.Store
	if !flagNoSave {
		store, err = storage.Open(cfg.Storage.DBPath)
		if err != nil {
			logger.Warn("could not open run database, runs will not be saved", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	// The session logger would draw over the alt screen.
	opts := tui.ReplayOptions{
		Session: sessionOptions(cfg, mustSource(cfg), nil),
		Script:  lines,
		Label:   args[0],
		Store:   store,
		Render:  tui.RenderOptions{Title: cfg.Render.Title, Color: cfg.Render.Color},
		Runtime: runtime,
	}
	if err := tui.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
