package sim

import (
	"github.com/vovakirdan/tui-shooter/internal/collision"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/ecs"
)

const (
	chaserSize    = 8
	chaserBounds  = 12
	chaserPoints  = 10
	drifterRadius = 10
	shieldRadius  = 22
	drifterPoints = 20
)

var shieldSpin = core.Tenth

func (c *Context) spawnChaser(at core.Vec2) ecs.Handle {
	size := core.FromInt(chaserSize)
	body := collision.NewBody(core.FromInt(chaserBounds), collision.Box{
		Placement: collision.Placement{Flags: collision.Vulnerable | collision.Dangerous},
		Width:     size,
		Height:    size,
	})
	return c.idx.CreateWith(
		ecs.With(Transform{Centre: at}),
		ecs.With(Motion{}),
		ecs.With(EnemyTag{Kind: KindChaser, Health: c.rules.EnemyHealth, Points: chaserPoints}),
		ecs.With(Sprite{Glyph: 'X', Color: core.ColorRed}),
		ecs.With(Behavior{Update: updateChaser}),
		ecs.With(body),
	)
}

// nearestPlayer returns the closest living player ship to p.
func (c *Context) nearestPlayer(p core.Vec2) (core.Vec2, bool) {
	var (
		best  core.Vec2
		dist  core.Fixed
		found bool
	)
	for _, h := range c.players {
		if ecs.Get[PlayerTag](c.idx, h.ID()).Dead {
			continue
		}
		centre := ecs.Get[Transform](c.idx, h.ID()).Centre
		d := centre.Sub(p).LengthSquared()
		if !found || d < dist {
			best, dist, found = centre, d, true
		}
	}
	return best, found
}

func updateChaser(c *Context, h ecs.Handle) {
	t := ecs.Get[Transform](c.idx, h.ID())
	m := ecs.Get[Motion](c.idx, h.ID())

	if target, ok := c.nearestPlayer(t.Centre); ok {
		d := target.Sub(t.Centre)
		if !d.IsZero() {
			m.Velocity = d.Normalised().Scale(c.rules.EnemySpeed)
			t.Rotation = d.Angle()
		}
	}
	t.Centre = t.Centre.Add(m.Velocity)
}

func (c *Context) spawnDrifter(at core.Vec2) ecs.Handle {
	body := collision.NewBody(core.FromInt(shieldRadius),
		collision.Polygon{
			Placement: collision.Placement{Flags: collision.Vulnerable | collision.Dangerous},
			Radius:    core.FromInt(drifterRadius),
			Sides:     6,
		},
		collision.PolyArc{
			Placement: collision.Placement{Flags: collision.Shield},
			Radius:    core.FromInt(shieldRadius),
			Sides:     4,
			Segments:  1,
		},
	)
	heading := c.rng.NextFixed().Mul(core.FromInt(2).Mul(core.Pi))
	return c.idx.CreateWith(
		ecs.With(Transform{Centre: at}),
		ecs.With(Motion{Velocity: core.FromPolar(heading, c.rules.EnemySpeed)}),
		ecs.With(EnemyTag{Kind: KindDrifter, Health: c.rules.EnemyHealth + 1, Points: drifterPoints}),
		ecs.With(Sprite{Glyph: 'O', Color: core.ColorCyan}),
		ecs.With(Behavior{Update: updateDrifter}),
		ecs.With(body),
	)
}

func updateDrifter(c *Context, h ecs.Handle) {
	t := ecs.Get[Transform](c.idx, h.ID())
	m := ecs.Get[Motion](c.idx, h.ID())

	t.Centre = t.Centre.Add(m.Velocity)
	if (t.Centre.X < 0 && m.Velocity.X < 0) || (t.Centre.X > c.opts.Width && m.Velocity.X > 0) {
		m.Velocity.X = m.Velocity.X.Neg()
	}
	if (t.Centre.Y < 0 && m.Velocity.Y < 0) || (t.Centre.Y > c.opts.Height && m.Velocity.Y > 0) {
		m.Velocity.Y = m.Velocity.Y.Neg()
	}
	t.Rotation = t.Rotation.Add(shieldSpin)
	if t.Rotation > core.FromInt(2).Mul(core.Pi) {
		t.Rotation = t.Rotation.Sub(core.FromInt(2).Mul(core.Pi))
	}
}

// damage hurts an enemy, destroying it and crediting owner when its health
// runs out. Owner is a player number, or -1.
func (c *Context) damage(h ecs.Handle, amount, owner int) {
	if c.Destroyed(h) {
		return
	}
	e := ecs.Get[EnemyTag](c.idx, h.ID())
	if e == nil {
		return
	}
	e.Health -= amount
	if e.Health > 0 {
		return
	}
	if t := ecs.Get[Transform](c.idx, h.ID()); t != nil {
		c.explode(t.Centre, ecs.Get[Sprite](c.idx, h.ID()).Color, 6)
	}
	if owner >= 0 && owner < len(c.players) {
		p := ecs.Get[PlayerTag](c.idx, c.players[owner].ID())
		p.Score += e.Points * c.rules.PointsMultiplier
		p.Kills++
	}
	c.Destroy(h)
}
