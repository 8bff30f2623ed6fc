package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Pipe is a pair of obstacles with a vertical gap between them.
// The gap center is chosen when the pipe spawns and never changes.
type Pipe struct {
	X         float64 // Left edge
	GapCenter float64 // Vertical center of the passable gap
	Width     float64
	Gap       float64
	FieldH    float64 // Height of the playfield, the bottom piece extends to it
	Passed    bool    // Set once, when the pipe has been counted
}

// NewPipe creates a pipe at x with the given gap center.
func NewPipe(x, gapCenter float64, p *Params) Pipe {
	return Pipe{
		X:         x,
		GapCenter: gapCenter,
		Width:     p.PipeWidth,
		Gap:       p.PipeGap,
		FieldH:    p.Height,
	}
}

// Update scrolls the pipe left by one tick's worth.
func (p *Pipe) Update(ctx *Context) {
	p.X -= ctx.Params.ScrollSpeed
}

// Right returns the x of the right edge.
func (p *Pipe) Right() float64 {
	return p.X + p.Width
}

// Top returns the upper obstacle rectangle.
func (p *Pipe) Top() core.RectF {
	return core.NewRectF(p.X, 0, p.Width, p.GapCenter-p.Gap/2)
}

// Bottom returns the lower obstacle rectangle.
func (p *Pipe) Bottom() core.RectF {
	return core.NewRectF(p.X, p.GapCenter+p.Gap/2, p.Width, p.FieldH)
}

// GapMid returns the center point of the gap.
func (p *Pipe) GapMid() (float64, float64) {
	return p.X + p.Width/2, p.GapCenter
}

// Collides reports whether the bird's box overlaps either obstacle.
func (p *Pipe) Collides(b *Bird) bool {
	box := b.Bounds()
	return box.Intersects(p.Top()) || box.Intersects(p.Bottom())
}

// Spawner emits a new pipe at the right edge whenever the spawn interval
// has elapsed on the game clock.
type Spawner struct {
	lastSpawn int64
}

// NewSpawner creates a spawner that is due immediately at now.
func NewSpawner(now int64, p *Params) Spawner {
	return Spawner{lastSpawn: now - p.SpawnIntervalMS}
}

// MaybeSpawn appends a pipe if the interval has passed and returns the
// updated slice and whether a pipe was added.
func (s *Spawner) MaybeSpawn(ctx *Context, pipes []Pipe) ([]Pipe, bool) {
	p := ctx.Params
	if ctx.Now-s.lastSpawn <= p.SpawnIntervalMS {
		return pipes, false
	}

	center := p.MinGapCenter + ctx.Rand.Intn(p.MaxGapCenter-p.MinGapCenter+1)
	pipes = append(pipes, NewPipe(p.Width, float64(center), p))
	s.lastSpawn = ctx.Now
	return pipes, true
}

// LastSpawn returns the clock reading of the most recent spawn.
func (s *Spawner) LastSpawn() int64 {
	return s.lastSpawn
}

// prunePipes drops pipes whose left edge has scrolled past -margin.
// Survivors keep their order.
func prunePipes(pipes []Pipe, margin float64) []Pipe {
	kept := pipes[:0]
	for _, p := range pipes {
		if p.X > -margin {
			kept = append(kept, p)
		}
	}
	return kept
}
