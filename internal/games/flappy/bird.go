package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Bird is the player-controlled entity. It owns its vertical velocity.
type Bird struct {
	X        float64 // Fixed horizontal position of the center
	Y        float64 // Vertical position of the center
	Velocity float64 // Vertical velocity, negative is up
	Radius   float64 // Collision half-size
	Tilt     float64 // Visual rotation in degrees, rendering only

	flapPower float64
}

// NewBird creates a bird at its starting position.
func NewBird(p *Params) Bird {
	b := Bird{}
	b.Reset(p)
	return b
}

// Reset puts the bird back at mid-screen with no motion.
func (b *Bird) Reset(p *Params) {
	b.X = p.BirdX
	b.Y = p.Height / 2
	b.Velocity = 0
	b.Radius = p.BirdRadius
	b.Tilt = 0
	b.flapPower = p.FlapPower
}

// Flap replaces the current velocity with the flap impulse.
func (b *Bird) Flap() {
	b.Velocity = b.flapPower
}

// Update integrates gravity for one tick and keeps the bird between the
// ceiling and the ground. Hitting either only stops vertical motion.
func (b *Bird) Update(ctx *Context) {
	p := ctx.Params

	b.Velocity += p.Gravity
	b.Y += b.Velocity
	b.Tilt = math.Min(b.Velocity*p.TiltScale, p.MaxTilt)

	b.clamp(p.FloorY())
}

// clamp pins Y into [0, floor] and zeroes velocity when it had to.
// Returns true if the bird touched the ceiling or the ground.
func (b *Bird) clamp(floor float64) bool {
	y := core.ClampF(b.Y, 0, floor)
	if y == b.Y {
		return false
	}
	b.Y = y
	b.Velocity = 0
	return true
}

// Bounds returns the square collision box around the bird's center.
func (b *Bird) Bounds() core.RectF {
	return core.NewRectF(b.X-b.Radius, b.Y-b.Radius, b.Radius*2, b.Radius*2)
}
