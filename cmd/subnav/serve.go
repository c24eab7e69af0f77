package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/subnav/internal/api"
	"github.com/vovakirdan/subnav/internal/core"
	"github.com/vovakirdan/subnav/internal/platform/tui"
	"github.com/vovakirdan/subnav/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
	flagScript      string
	flagNoSSH       bool
	flagNoHTTP      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve replays over SSH and runs over HTTP",
	Long: `Start the SSH server, the HTTP API, or both.

The SSH server replays --script for every connection; each finished replay
is saved to the shared run history. The HTTP API accepts command lists and
serves the stored runs:

  POST /api/runs       {"variant":"aimed","commands":["down 1","forward 10"]}
  GET  /api/runs       recent runs (?limit=N)
  GET  /api/runs/:id   one run with its rendered map
  GET  /healthz

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.subnav/host_key

Examples:
  subnav serve --script dive.sub           # SSH and HTTP on the configured addresses
  subnav serve --no-ssh --http :9000       # HTTP API only
  subnav serve --no-http --ssh :2222 --script dive.sub

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
	serveCmd.Flags().StringVar(&flagScript, "script", "", "Command script replayed for SSH sessions")
	serveCmd.Flags().BoolVar(&flagNoSSH, "no-ssh", false, "Do not start the SSH server")
	serveCmd.Flags().BoolVar(&flagNoHTTP, "no-http", false, "Do not start the HTTP API")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger("subnav")

	if flagNoSSH && flagNoHTTP {
		fmt.Fprintln(os.Stderr, "Error: nothing to serve, both --no-ssh and --no-http are set")
		os.Exit(1)
	}
	if !flagNoSSH && flagScript == "" {
		fmt.Fprintln(os.Stderr, "Error: --script is required for the SSH server (or pass --no-ssh)")
		os.Exit(1)
	}

	sshAddr := cfg.Server.SSHAddress
	if flagSSHAddr != "" {
		sshAddr = flagSSHAddr
	}
	httpAddr := cfg.Server.HTTPAddress
	if flagHTTPAddr != "" {
		httpAddr = flagHTTPAddr
	}
	hostKey := cfg.Server.HostKeyPath
	if flagHostKey != "" {
		hostKey = flagHostKey
	}
	idle := cfg.Server.IdleTimeoutMinutes
	if flagIdleTimeout > 0 {
		idle = flagIdleTimeout
	}

	src := mustSource(cfg)

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open run database, runs will not be saved", "error", err)
		store = nil
	}
	closeStore := func() {
		if store == nil {
			return
		}
		if err := store.Close(); err != nil {
			logger.Warn("could not close run database", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	start := func(name string, serve func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := serve(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
				stop()
			}
		}()
	}

	if !flagNoSSH {
		lines, err := readScript(flagScript)
		if err != nil {
			stop()
			closeStore()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		runtime := core.DefaultConfig()
		runtime.TickRate = cfg.Render.TickRate

		sshCfg := tui.DefaultSSHServerConfig()
		if sshAddr != "" {
			sshCfg.Address = sshAddr
		}
		if idle > 0 {
			sshCfg.IdleTimeout = time.Duration(idle) * time.Minute
		}
		sshCfg.HostKeyPath = hostKey
		sshCfg.Replay = tui.ReplayOptions{
			Session: sessionOptions(cfg, src, nil),
			Script:  lines,
			Label:   flagScript,
			Store:   store,
			Render:  tui.RenderOptions{Title: cfg.Render.Title, Color: cfg.Render.Color},
			Runtime: runtime,
		}

		server, err := tui.NewSSHServer(sshCfg, newLogger("subnav-ssh"))
		if err != nil {
			stop()
			closeStore()
			fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("SSH replay of %s on %s\n", flagScript, server.Addr())
		start("ssh", server.ListenAndServe)
	}

	if !flagNoHTTP {
		handler := api.Handler{
			Source:         src,
			Blank:          cfg.BlankRune(),
			DefaultVariant: cfg.Variant(),
			EnforceModes:   cfg.Navigation.EnforceModes,
			MaxCells:       cfg.Render.MaxCells,
			Store:          store,
			Logger:         newLogger("subnav-http"),
		}
		fmt.Printf("HTTP API on %s\n", httpAddr)
		start("http", func(ctx context.Context) error {
			return api.Serve(ctx, httpAddr, handler)
		})
	}

	fmt.Println("Press Ctrl+C to stop")
	wg.Wait()
	stop()
	closeStore()

	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		}
		os.Exit(1)
	}
}
