package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// BirdView is the renderable part of the bird.
type BirdView struct {
	X, Y     float64
	Radius   float64
	Velocity float64
	Tilt     float64
}

// PipeView is the renderable part of a pipe.
type PipeView struct {
	X         float64
	GapCenter float64
	Top       core.RectF
	Bottom    core.RectF
	Passed    bool
}

// ParticleView is the renderable part of a particle.
type ParticleView struct {
	X, Y  float64
	Size  float64
	Color core.Color
}

// Snapshot is a deep copy of everything a renderer or observer needs for
// one tick. It shares no memory with the Game.
type Snapshot struct {
	Tick      uint64
	RunTicks  uint64
	RunFlaps  int
	Runs      int
	Mode      Mode
	Score     int
	HighScore int
	Quit      bool

	Width, Height float64
	FloorY        float64

	Bird      BirdView
	Pipes     []PipeView
	Particles []ParticleView
	Events    []Event

	StartButton   core.RectF
	RestartButton core.RectF
}

// Snapshot publishes the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      g.tick,
		RunTicks:  g.runTicks,
		RunFlaps:  g.flaps,
		Runs:      g.runs,
		Mode:      g.mode,
		Score:     g.score,
		HighScore: g.highScore,
		Quit:      g.quit,

		Width:  g.params.Width,
		Height: g.params.Height,
		FloorY: g.params.FloorY(),

		Bird: BirdView{
			X:        g.bird.X,
			Y:        g.bird.Y,
			Radius:   g.bird.Radius,
			Velocity: g.bird.Velocity,
			Tilt:     g.bird.Tilt,
		},

		StartButton:   g.params.StartButton,
		RestartButton: g.params.RestartButton,
	}

	s.Pipes = make([]PipeView, len(g.pipes))
	for i := range g.pipes {
		p := &g.pipes[i]
		s.Pipes[i] = PipeView{
			X:         p.X,
			GapCenter: p.GapCenter,
			Top:       p.Top(),
			Bottom:    p.Bottom(),
			Passed:    p.Passed,
		}
	}

	particles := g.effects.Particles()
	s.Particles = make([]ParticleView, len(particles))
	for i, p := range particles {
		s.Particles[i] = ParticleView{X: p.X, Y: p.Y, Size: p.Size, Color: p.Color}
	}

	s.Events = make([]Event, len(g.events))
	copy(s.Events, g.events)

	return s
}

// HasEvent reports whether an event of the given kind happened this tick.
func (s Snapshot) HasEvent(kind EventKind) bool {
	for _, ev := range s.Events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
