package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Particle is a short-lived visual effect with no identity of its own.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Life   int // Updates remaining
	Color  core.Color
}

func (p *Particle) update(decay float64) {
	p.X += p.VX
	p.Y += p.VY
	p.Life--
	p.Size -= decay
	if p.Size < 0 {
		p.Size = 0
	}
}

// Effects owns the active particle collection.
type Effects struct {
	particles []Particle
	lifetime  int
	minSize   int
	maxSize   int
	decay     float64
}

// NewEffects creates an empty effect system with room for a collision burst.
func NewEffects(p *Params) *Effects {
	return &Effects{
		particles: make([]Particle, 0, CollisionBurst*2),
		lifetime:  p.ParticleLifetime,
		minSize:   p.MinParticleSize,
		maxSize:   p.MaxParticleSize,
		decay:     p.ParticleDecay,
	}
}

// Burst spawns count particles at (x, y), each with its own random
// velocity and size.
func (e *Effects) Burst(ctx *Context, x, y float64, c core.Color, count int) {
	rng := ctx.Rand
	for i := 0; i < count; i++ {
		e.particles = append(e.particles, Particle{
			X:     x,
			Y:     y,
			VX:    rng.Float64()*4 - 2,
			VY:    rng.Float64()*2 - 3,
			Size:  float64(e.minSize + rng.Intn(e.maxSize-e.minSize+1)),
			Life:  e.lifetime,
			Color: c,
		})
	}
}

// Update ages every particle by one tick and compacts out the expired ones.
func (e *Effects) Update() {
	for i := range e.particles {
		e.particles[i].update(e.decay)
	}
	e.compact()
}

// compact drops expired particles in place, keeping the rest in order.
func (e *Effects) compact() {
	alive := e.particles[:0]
	for _, p := range e.particles {
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	e.particles = alive
}

// Len returns the number of live particles.
func (e *Effects) Len() int {
	return len(e.particles)
}

// Particles exposes the live particles. The slice is reused between ticks.
func (e *Effects) Particles() []Particle {
	return e.particles
}

// Clear drops all particles.
func (e *Effects) Clear() {
	e.particles = e.particles[:0]
}
