package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// World geometry. The playfield is measured in pixels of an 800x600 field;
// the platform scales it to whatever terminal it gets.
const (
	WorldWidth   = 800
	WorldHeight  = 600
	GroundHeight = 100
)

// Physics constants, per tick at 60 ticks per second.
const (
	Gravity     = 0.5
	FlapPower   = -8.0
	TiltScale   = 3.0
	MaxTilt     = 30.0
	BirdX       = 150
	BirdRadius  = 20
	ScrollSpeed = 3
)

// Pipe and spawn constants.
const (
	PipeWidth       = 80
	PipeGap         = 200
	MinGapCenter    = 150
	MaxGapCenter    = 400
	SpawnIntervalMS = 1800
	PruneMargin     = 100
)

// Effect constants.
const (
	ParticleLifetime = 30
	MinParticleSize  = 2
	MaxParticleSize  = 5
	ParticleDecay    = 0.1

	FlapBurst      = 5
	ScoreBurst     = 15
	CollisionBurst = 30

	ScoreCueCooldownMS = 500
)

// Params bundles the fixed constants the entities read through a Context.
// Only DefaultParams is used outside tests; difficulty is not configurable.
type Params struct {
	Width, Height float64
	GroundHeight  float64

	Gravity    float64
	FlapPower  float64
	TiltScale  float64
	MaxTilt    float64
	BirdX      float64
	BirdRadius float64

	ScrollSpeed     float64
	PipeWidth       float64
	PipeGap         float64
	MinGapCenter    int
	MaxGapCenter    int
	SpawnIntervalMS int64
	PruneMargin     float64

	ParticleLifetime int
	MinParticleSize  int
	MaxParticleSize  int
	ParticleDecay    float64

	ScoreCueCooldownMS int64

	StartButton   core.RectF // Start control shown while idle
	RestartButton core.RectF // Restart control shown after a run ends
}

// DefaultParams returns the game's fixed tuning.
func DefaultParams() Params {
	return Params{
		Width:        WorldWidth,
		Height:       WorldHeight,
		GroundHeight: GroundHeight,

		Gravity:    Gravity,
		FlapPower:  FlapPower,
		TiltScale:  TiltScale,
		MaxTilt:    MaxTilt,
		BirdX:      BirdX,
		BirdRadius: BirdRadius,

		ScrollSpeed:     ScrollSpeed,
		PipeWidth:       PipeWidth,
		PipeGap:         PipeGap,
		MinGapCenter:    MinGapCenter,
		MaxGapCenter:    MaxGapCenter,
		SpawnIntervalMS: SpawnIntervalMS,
		PruneMargin:     PruneMargin,

		ParticleLifetime: ParticleLifetime,
		MinParticleSize:  MinParticleSize,
		MaxParticleSize:  MaxParticleSize,
		ParticleDecay:    ParticleDecay,

		ScoreCueCooldownMS: ScoreCueCooldownMS,

		StartButton:   core.NewRectF(WorldWidth/2-100, WorldHeight/2+50, 200, 60),
		RestartButton: core.NewRectF(WorldWidth/2-100, WorldHeight/2+100, 200, 60),
	}
}

// FloorY is the lowest y the bird's center may reach.
func (p *Params) FloorY() float64 {
	return p.Height - p.GroundHeight
}

// Context is passed into every entity update. It carries the tick's clock
// reading, the seeded RNG and the constants, so nothing reaches for globals.
type Context struct {
	Now    int64 // Milliseconds from the game's clock
	Rand   *rand.Rand
	Params *Params
}
