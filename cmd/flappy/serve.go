package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/httpserver"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagHTTPAddr    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the flappy SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection plays its own independent game. Finished runs from
all sessions go to one in-memory journal, which is lost when the server
stops. With --http the journal is also served read-only as JSON:

  GET /health
  GET /runs/top?limit=N
  GET /runs/recent?limit=N
  GET /runs/{id}
  GET /stats

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.flappy/host_key

Examples:
  flappy serve                           # Listen on :23234
  flappy serve --ssh :2222               # Listen on port 2222
  flappy serve --http :8080              # Also serve the runs API
  flappy serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config, :23234)")
	f.StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	f.DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Disconnect idle sessions after this long (default from config, 10m)")
	f.StringVar(&flagHTTPAddr, "http", "", "Serve the runs API on this address (disabled if empty)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Server.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.Server.HostKey = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.Server.IdleTimeout = flagIdleTimeout
	}
	if flags.Changed("http") {
		cfg.Server.HTTP = flagHTTPAddr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger, logCloser, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	journal, err := storage.OpenMemory()
	if err != nil {
		return err
	}
	defer journal.Close()

	sshCfg := tui.SSHServerConfig{
		Address:     cfg.Server.Address,
		HostKeyPath: cfg.Server.HostKey,
		IdleTimeout: cfg.Server.IdleTimeout,
		TickRate:    cfg.Runtime.TickRate,
		Theme:       tui.ThemeFromConfig(cfg.Render),
	}
	server, err := tui.NewSSHServer(sshCfg, journal, logger.WithPrefix("ssh"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	running := 1
	if cfg.Server.HTTP != "" {
		api := httpserver.New(journal, logger.WithPrefix("http"))
		running++
		go func() {
			if err := api.ListenAndServe(ctx, cfg.Server.HTTP); err != nil {
				errCh <- fmt.Errorf("http server: %w", err)
				return
			}
			errCh <- nil
		}()
	}
	go func() {
		if err := server.ListenAndServe(ctx); err != nil {
			errCh <- fmt.Errorf("ssh server: %w", err)
			return
		}
		errCh <- nil
	}()

	fmt.Printf("Starting flappy SSH server on %s\n", server.Addr())
	if cfg.Server.HTTP != "" {
		fmt.Printf("Runs API on %s\n", cfg.Server.HTTP)
	}
	fmt.Println("Press Ctrl+C to stop")

	// The first failure stops everything
	var firstErr error
	for range running {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			stop()
		}
	}

	if stats, err := journal.Stats(context.Background()); err == nil && stats.Runs > 0 {
		logger.Info("server stopped", "runs", stats.Runs, "high_score", stats.HighScore, "players", stats.Players)
	}
	return firstErr
}
