package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this for deterministic simulation; the screen size only
// affects how the platform scales the world into terminal cells.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
	Clock    Clock // Millisecond time source; nil means SystemClock
	Strict   bool  // Panic on invariant violations instead of clamping
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by State() to communicate status to the platform.
type GameState struct {
	Mode      string // "idle", "playing" or "game_over"
	Score     int    // Score of the current or last run
	HighScore int    // Best score since the game was created
	GameOver  bool   // Whether the last run has ended
}

// StepResult is returned by Step() after each simulation tick.
type StepResult struct {
	State GameState
	Quit  bool // A quit event was consumed this tick
}
