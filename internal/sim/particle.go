package sim

import (
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/ecs"
)

const particleLife = 20

// explode scatters n particles from p.
func (c *Context) explode(p core.Vec2, color core.Color, n int) {
	for i := 0; i < n; i++ {
		angle := c.rng.NextFixed().Mul(core.FromInt(2).Mul(core.Pi))
		speed := core.One.Add(c.rng.NextFixed().Mul(core.FromInt(3)))
		c.idx.CreateWith(
			ecs.With(Transform{Centre: p}),
			ecs.With(Motion{Velocity: core.FromPolar(angle, speed)}),
			ecs.With(Particle{Timer: particleLife + int(c.rng.NextBelow(particleLife))}),
			ecs.With(Sprite{Glyph: '*', Color: color}),
			ecs.With(Behavior{Update: updateParticle}),
		)
	}
}

func updateParticle(c *Context, h ecs.Handle) {
	pt := ecs.Get[Particle](c.idx, h.ID())
	t := ecs.Get[Transform](c.idx, h.ID())
	m := ecs.Get[Motion](c.idx, h.ID())

	t.Centre = t.Centre.Add(m.Velocity)
	pt.Timer--
	if pt.Timer <= 0 {
		c.Destroy(h)
	}
}
