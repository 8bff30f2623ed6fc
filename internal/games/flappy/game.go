// Package flappy implements the Flappy Bird simulation.
// The player keeps a bird airborne and steers it through gaps in scrolling pipes.
package flappy

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Game owns the whole simulation and advances it one fixed tick at a time.
// It is not safe for concurrent use; the platform steps it from one goroutine.
type Game struct {
	params Params
	config core.RuntimeConfig
	clock  core.Clock
	rng    *rand.Rand
	logger *log.Logger
	theme  Theme

	mode    Mode
	bird    Bird
	pipes   []Pipe
	spawner Spawner
	effects *Effects

	score     int
	highScore int
	passes    int    // Pipes counted in the current run
	flaps     int    // Flaps in the current run
	runs      int    // Runs started since Reset
	tick      uint64 // Ticks since Reset
	runTicks  uint64 // Playing ticks in the current run
	lastCue   int64
	quit      bool
	events    []Event
}

// New creates a new Flappy Bird game. Call Reset before stepping it.
func New() *Game {
	return &Game{
		params: DefaultParams(),
		logger: log.New(io.Discard),
		theme:  DefaultTheme(),
	}
}

// SetLogger routes run and invariant messages to l.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// SetTheme changes the palette used by Render.
func (g *Game) SetTheme(t Theme) {
	g.theme = t
}

// Reset fully re-initialises the game into Idle. The high score is only
// cleared here.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.clock = cfg.Clock
	if g.clock == nil {
		g.clock = core.NewSystemClock()
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))

	g.mode = ModeIdle
	g.bird = NewBird(&g.params)
	if g.pipes == nil {
		g.pipes = make([]Pipe, 0, 8)
	}
	g.pipes = g.pipes[:0]
	if g.effects == nil {
		g.effects = NewEffects(&g.params)
	}
	g.effects.Clear()

	now := g.clock.NowMillis()
	g.spawner = NewSpawner(now, &g.params)
	g.lastCue = now - g.params.ScoreCueCooldownMS

	g.score = 0
	g.highScore = 0
	g.passes = 0
	g.flaps = 0
	g.runs = 0
	g.tick = 0
	g.runTicks = 0
	g.quit = false
	g.events = g.events[:0]
}

// Step advances the game by one tick: input, bird, spawner, pipes,
// pruning, effects and the invariant check, in that order.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = g.events[:0]
	g.quit = false
	g.tick++

	ctx := Context{
		Now:    g.clock.NowMillis(),
		Rand:   g.rng,
		Params: &g.params,
	}

	for _, ev := range in.Events {
		g.handleInput(&ctx, ev)
	}

	switch g.mode {
	case ModeIdle:
		g.bird.Y = g.params.Height / 2
	case ModePlaying:
		g.runTicks++
		g.bird.Update(&ctx)
		g.pipes, _ = g.spawner.MaybeSpawn(&ctx, g.pipes)
		g.advancePipes(&ctx)
		g.pipes = prunePipes(g.pipes, g.params.PruneMargin)
	}

	g.effects.Update()
	g.checkInvariants()

	return core.StepResult{State: g.State(), Quit: g.quit}
}

func (g *Game) handleInput(ctx *Context, ev core.InputEvent) {
	switch Dispatch(g.mode, ev, &g.params) {
	case CmdQuit:
		g.quit = true
	case CmdStart:
		g.startRun()
	case CmdFlap:
		g.bird.Flap()
		g.flaps++
		g.effects.Burst(ctx, g.bird.X, g.bird.Y, g.theme.FlapBurst, FlapBurst)
		g.emit(EventFlapped, g.bird.X, g.bird.Y)
	}
}

// startRun enters Playing from Idle or GameOver. Particles survive.
func (g *Game) startRun() {
	g.mode = ModePlaying
	g.bird.Reset(&g.params)
	g.pipes = g.pipes[:0]
	g.score = 0
	g.passes = 0
	g.flaps = 0
	g.runTicks = 0
	g.runs++

	g.emit(EventRunStarted, g.bird.X, g.bird.Y)
	g.logger.Debug("run started", "run", g.runs, "tick", g.tick)
}

// advancePipes scrolls every pipe and, while the run is live, scores and
// collides them in spawn order.
func (g *Game) advancePipes(ctx *Context) {
	for i := range g.pipes {
		p := &g.pipes[i]
		p.Update(ctx)

		if g.mode != ModePlaying {
			continue
		}

		if !p.Passed && p.Right() < g.bird.X {
			p.Passed = true
			g.score++
			g.passes++
			x, y := p.GapMid()
			g.effects.Burst(ctx, x, y, g.theme.ScoreBurst, ScoreBurst)
			g.emit(EventScored, x, y)
			if ctx.Now-g.lastCue >= g.params.ScoreCueCooldownMS {
				g.lastCue = ctx.Now
				g.emit(EventScoreCue, x, y)
			}
		}

		if p.Collides(&g.bird) {
			g.endRun(ctx)
		}
	}
}

// endRun moves Playing to GameOver and folds the score into the high score.
func (g *Game) endRun(ctx *Context) {
	g.mode = ModeGameOver
	if g.score > g.highScore {
		g.highScore = g.score
	}
	g.effects.Burst(ctx, g.bird.X, g.bird.Y, g.theme.CrashBurst, CollisionBurst)
	g.emit(EventCollided, g.bird.X, g.bird.Y)

	g.logger.Info("run ended",
		"run", g.runs,
		"score", g.score,
		"high", g.highScore,
		"ticks", g.runTicks,
	)
}

func (g *Game) emit(kind EventKind, x, y float64) {
	g.events = append(g.events, Event{Kind: kind, X: x, Y: y, Score: g.score})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Mode:      g.mode.String(),
		Score:     g.score,
		HighScore: g.highScore,
		GameOver:  g.mode == ModeGameOver,
	}
}

// Mode returns the current top-level state.
func (g *Game) Mode() Mode {
	return g.mode
}

// Runs returns how many runs were started since Reset.
func (g *Game) Runs() int {
	return g.runs
}

// RunTicks returns the number of Playing ticks in the current or last run.
func (g *Game) RunTicks() uint64 {
	return g.runTicks
}

// RunFlaps returns the number of flaps in the current or last run.
func (g *Game) RunFlaps() int {
	return g.flaps
}

// Events returns the side effects of the last tick. The slice is reused
// by the next Step; use Snapshot for a stable copy.
func (g *Game) Events() []Event {
	return g.events
}
