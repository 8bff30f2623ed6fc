package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// helpRows is the space kept below the playfield for the help bar.
const helpRows = 1

// Options are the collaborators of a Model. All fields are optional.
type Options struct {
	Journal       Journal              // Finished runs are saved here
	Player        string               // Name recorded with each run
	Logger        *log.Logger          // Nil discards
	Reloads       <-chan config.Reload // Live config updates
	ScreenshotDir string               // Empty means ~/.flappy/screenshots
	Renderer      *lipgloss.Renderer   // Per-session renderer for SSH
}

// ReloadMsg carries a config file change into the update loop.
type ReloadMsg config.Reload

// Model is the Bubble Tea model for a flappy session.
type Model struct {
	game       *flappy.Game
	screen     *core.Screen
	palette    *Palette
	journal    Journal
	player     string
	logger     *log.Logger
	reloads    <-chan config.Reload
	shotDir    string
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	board      RunsBoard
	showRuns   bool
	inputFrame core.InputFrame
	gameState  core.GameState
	lastRun    *storage.Run // Most recently saved run
	quitting   bool
}

// NewModel creates a Bubble Tea model driving game. The game is reset
// with cfg immediately.
func NewModel(game *flappy.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = "anonymous"
	}

	game.SetLogger(logger)
	game.Reset(cfg)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 0)),
		palette:    NewPalette(opts.Renderer),
		journal:    opts.Journal,
		player:     player,
		logger:     logger,
		reloads:    opts.Reloads,
		shotDir:    opts.ScreenshotDir,
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       h,
		board:      NewRunsBoard(opts.Journal, cfg.ScreenW, cfg.ScreenH),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop and, when configured, the reload listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), waitForReload(m.reloads))
}

// waitForReload blocks on the watcher channel and turns the next value
// into a message. A nil or closed channel ends the listener.
func waitForReload(ch <-chan config.Reload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return ReloadMsg(r)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.showRuns {
			m.keys.MapMouseToFrame(msg, m.screen.Width(), m.screen.Height(),
				flappy.WorldWidth, flappy.WorldHeight, &m.inputFrame)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ReloadMsg:
		m.applyReload(config.Reload(msg))
		return m, waitForReload(m.reloads)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showRuns {
		if m.keys.MapKey(msg) == core.ActionQuit {
			m.inputFrame.Quit()
			return m, nil
		}
		closed, cmd := m.board.Update(msg)
		if closed {
			m.showRuns = false
		}
		return m, cmd
	}

	switch m.keys.MapKeyToFrame(msg, &m.inputFrame) {
	case core.ActionScreenshot:
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
	case core.ActionRuns:
		// The board would hide a live run
		if m.game.Mode() != flappy.ModePlaying {
			m.board.Reload()
			m.showRuns = true
		}
	}

	return m, nil
}

// handleResize processes window resize events. The world is resolution
// independent, so the game keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpRows, 0))
	m.board.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	for _, ev := range m.game.Events() {
		if ev.Kind == flappy.EventCollided {
			m.saveRun(ev.Score)
		}
	}

	if result.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// saveRun journals the run that just ended. Failures are logged and the
// game continues.
func (m *Model) saveRun(score int) {
	if m.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalBudget)
	defer cancel()

	run, err := m.journal.SaveRun(ctx, storage.Run{
		Player: m.player,
		Score:  score,
		Ticks:  int64(m.game.RunTicks()),
		Flaps:  m.game.RunFlaps(),
	})
	if err != nil {
		m.logger.Error("could not save run", "error", err)
		return
	}
	m.lastRun = &run
	m.logger.Debug("run saved", "id", run.ID, "score", run.Score)
}

// applyReload switches to the reloaded render settings. Invalid files are
// reported and the current look is kept.
func (m *Model) applyReload(r config.Reload) {
	if r.Err != nil {
		m.logger.Warn("config reload rejected", "error", r.Err)
		return
	}
	m.game.SetTheme(ThemeFromConfig(r.Config.Render))
	m.logger.Info("config reloaded", "path", r.Config.Path)
}

// saveScreenshot writes the current screen to a text file and returns its path.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := m.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		dir = filepath.Join(home, ".flappy", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405.000")
	path := filepath.Join(dir, fmt.Sprintf("flappy_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// LastRun returns the most recently journaled run, or nil.
func (m Model) LastRun() *storage.Run {
	return m.lastRun
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showRuns {
		return m.board.View()
	}

	m.game.Render(m.screen)

	helpStyle := m.palette.NewStyle().
		Foreground(lipgloss.Color("241"))
	return m.palette.RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// Run starts a Bubble Tea program for game in the local terminal.
func Run(game *flappy.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks hit the start and restart controls
	)

	_, err := p.Run()
	return err
}
