package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Space/Up/W  - Flap (also starts and restarts)
  Click       - Press Start/Restart, or flap during a run
  Tab         - Recent runs (outside a run)
  Ctrl+S      - Save a text screenshot to ~/.flappy/screenshots
  Q/Ctrl+C    - Quit

Runs are journaled for the lifetime of the process only.
If the config file changes while playing, colors are reloaded live.

Examples:
  flappy play
  flappy play --seed 42 --fps 30
  flappy play --config ./my-flappy.yaml --log-file flappy.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Never log onto the alt screen
	logger, logCloser, err := newLogger(cfg.Log, io.Discard)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	journal, err := storage.OpenMemory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		// Continue without a journal - game still works
		journal = nil
	}

	opts := tui.Options{
		Player: playerName(),
		Logger: logger,
	}
	if journal != nil {
		defer journal.Close()
		opts.Journal = journal
	}

	if cfg.Path != "" {
		watcher, watchErr := config.Watch(cfg.Path)
		if watchErr != nil {
			logger.Warn("config hot reload disabled", "error", watchErr)
		} else {
			defer watcher.Close()
			opts.Reloads = watcher.Updates()
		}
	}

	game := flappy.New()
	game.SetTheme(tui.ThemeFromConfig(cfg.Render))

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Runtime.TickRate,
		Seed:     cfg.Runtime.Seed,
	}
	if err := tui.Run(game, runtime, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if journal != nil {
		printSessionSummary(journal)
	}
	return nil
}

// printSessionSummary reports the session's best run after the alt
// screen is gone.
func printSessionSummary(journal *storage.Store) {
	stats, err := journal.Stats(context.Background())
	if err != nil || stats.Runs == 0 {
		return
	}
	fmt.Printf("Runs: %d  Best: %d  Average: %.1f\n", stats.Runs, stats.HighScore, stats.AvgScore)
}

// playerName is the name recorded with local runs.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "anonymous"
}
