package flappy

import (
	"fmt"
)

// checkInvariants runs at the end of every tick. In strict mode a broken
// invariant panics; otherwise it is logged and the value is repaired.
func (g *Game) checkInvariants() {
	for _, p := range g.effects.Particles() {
		if p.Life <= 0 {
			g.violation("particle with life %d survived compaction", p.Life)
			g.effects.compact()
			break
		}
	}

	if g.score != g.passes {
		g.violation("score %d differs from %d pipes passed", g.score, g.passes)
		g.score = g.passes
	}

	floor := g.params.FloorY()
	if g.bird.Y < 0 || g.bird.Y > floor {
		g.violation("bird y %.2f outside [0, %.0f]", g.bird.Y, floor)
		g.bird.clamp(floor)
	}

	if g.bird.Tilt > g.params.MaxTilt {
		g.violation("bird tilt %.2f above %.0f", g.bird.Tilt, g.params.MaxTilt)
		g.bird.Tilt = g.params.MaxTilt
	}

	for i := 1; i < len(g.pipes); i++ {
		if g.pipes[i].X < g.pipes[i-1].X {
			g.violation("pipe %d at x %.1f is left of pipe %d at x %.1f",
				i, g.pipes[i].X, i-1, g.pipes[i-1].X)
			break
		}
	}
}

func (g *Game) violation(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if g.config.Strict {
		panic("flappy: invariant violated: " + msg)
	}
	g.logger.Error("invariant violated", "detail", msg, "tick", g.tick, "mode", g.mode)
}
