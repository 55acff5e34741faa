package sim

import (
	"github.com/vovakirdan/tui-shooter/internal/collision"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/ecs"
)

func (c *Context) spawnShot(owner int, at, velocity core.Vec2) ecs.Handle {
	return c.idx.CreateWith(
		ecs.With(Transform{Centre: at, Rotation: velocity.Angle()}),
		ecs.With(Motion{Velocity: velocity}),
		ecs.With(ShotTag{Owner: owner}),
		ecs.With(Sprite{Glyph: '·', Color: core.PlayerColor(owner)}),
		ecs.With(Behavior{Update: updateShot}),
	)
}

func updateShot(c *Context, h ecs.Handle) {
	t := ecs.Get[Transform](c.idx, h.ID())
	m := ecs.Get[Motion](c.idx, h.ID())
	s := ecs.Get[ShotTag](c.idx, h.ID())

	t.Centre = t.Centre.Add(m.Velocity)
	if t.Centre.X < 0 || t.Centre.X > c.opts.Width || t.Centre.Y < 0 || t.Centre.Y > c.opts.Height {
		c.Destroy(h)
		return
	}
	if c.coll.PointOverlaps(t.Centre, collision.Shield) {
		c.Destroy(h)
		return
	}
	hits := c.coll.PointMatches(t.Centre, collision.Vulnerable)
	for _, hit := range hits {
		c.damage(hit.Handle, 1, s.Owner)
	}
	if len(hits) > 0 {
		c.Destroy(h)
	}
}
