package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestBurstRanges(t *testing.T) {
	ctx := testContext(0, 3)
	e := NewEffects(ctx.Params)
	e.Burst(ctx, 150, 300, core.ColorOrange, 200)

	if e.Len() != 200 {
		t.Fatalf("Len() = %d, expected 200", e.Len())
	}
	for i, p := range e.Particles() {
		if p.X != 150 || p.Y != 300 {
			t.Errorf("particle %d spawned at (%v, %v)", i, p.X, p.Y)
		}
		if p.VX < -2 || p.VX > 2 {
			t.Errorf("particle %d vx = %v, expected within [-2, 2]", i, p.VX)
		}
		if p.VY < -3 || p.VY > -1 {
			t.Errorf("particle %d vy = %v, expected within [-3, -1]", i, p.VY)
		}
		if p.Size < 2 || p.Size > 5 || p.Size != float64(int(p.Size)) {
			t.Errorf("particle %d size = %v, expected an integer in [2, 5]", i, p.Size)
		}
		if p.Life != ParticleLifetime {
			t.Errorf("particle %d life = %d, expected %d", i, p.Life, ParticleLifetime)
		}
		if p.Color != core.ColorOrange {
			t.Errorf("particle %d color = %v", i, p.Color)
		}
	}
}

func TestParticlesExpireAfterLifetime(t *testing.T) {
	ctx := testContext(0, 3)
	e := NewEffects(ctx.Params)
	e.Burst(ctx, 0, 0, core.ColorRed, CollisionBurst)

	for i := 1; i < ParticleLifetime; i++ {
		e.Update()
		if e.Len() != CollisionBurst {
			t.Fatalf("after %d updates Len() = %d, expected %d", i, e.Len(), CollisionBurst)
		}
		for _, p := range e.Particles() {
			if p.Size < 0 {
				t.Fatalf("after %d updates size = %v, expected >= 0", i, p.Size)
			}
			if p.Life <= 0 {
				t.Fatalf("after %d updates a particle with life %d is still listed", i, p.Life)
			}
		}
	}

	e.Update()
	if e.Len() != 0 {
		t.Errorf("after %d updates Len() = %d, expected 0", ParticleLifetime, e.Len())
	}
}

func TestParticleSizeFloor(t *testing.T) {
	p := Particle{Size: 0.25, Life: 10}
	for i := 0; i < 5; i++ {
		p.update(ParticleDecay)
	}
	if p.Size != 0 {
		t.Errorf("size = %v, expected 0", p.Size)
	}
}

func TestEffectsCompactionKeepsYoungerBurst(t *testing.T) {
	ctx := testContext(0, 3)
	e := NewEffects(ctx.Params)
	e.Burst(ctx, 0, 0, core.ColorRed, 4)

	for i := 0; i < 10; i++ {
		e.Update()
	}
	e.Burst(ctx, 50, 50, core.ColorGreen, 3)

	for i := 0; i < 20; i++ {
		e.Update()
	}

	if e.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3 survivors", e.Len())
	}
	for _, p := range e.Particles() {
		if p.Color != core.ColorGreen || p.Life != ParticleLifetime-20 {
			t.Errorf("unexpected survivor %+v", p)
		}
	}
}
