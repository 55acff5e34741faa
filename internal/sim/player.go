package sim

import (
	"github.com/vovakirdan/tui-shooter/internal/collision"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/ecs"
)

const (
	playerRadius        = 5
	respawnDelay        = 50
	respawnInvulnerable = 100
	bombRadius          = 150
	bombDamage          = 100
)

func (c *Context) playerStart(n int) core.Vec2 {
	x := c.opts.Width.Mul(core.FromInt(int32(n + 1))).Div(core.FromInt(int32(c.conditions.Players + 1)))
	return core.V(x, c.opts.Height.Div(core.FromInt(2)))
}

func (c *Context) spawnPlayer(n int) ecs.Handle {
	return c.idx.CreateWith(
		ecs.With(Transform{Centre: c.playerStart(n), Rotation: core.Pi.Neg().Div(core.FromInt(2))}),
		ecs.With(PlayerTag{Number: n, Bombs: c.rules.Bombs, Invulnerable: respawnInvulnerable}),
		ecs.With(Sprite{Glyph: '@', Color: core.PlayerColor(n)}),
		ecs.With(Behavior{Update: updatePlayer}),
	)
}

func updatePlayer(c *Context, h ecs.Handle) {
	p := ecs.Get[PlayerTag](c.idx, h.ID())
	t := ecs.Get[Transform](c.idx, h.ID())
	in := c.Input(p.Number)

	if p.Dead {
		if p.RespawnTimer > 0 {
			p.RespawnTimer--
			if p.RespawnTimer == 0 {
				p.Dead = false
				p.Invulnerable = respawnInvulnerable
				p.Bombs = max(p.Bombs, c.rules.Bombs)
				t.Centre = c.playerStart(p.Number)
			}
		}
		return
	}

	v := in.Velocity.ClampLength(core.One)
	if !v.IsZero() {
		t.Rotation = v.Angle()
	}
	r := core.FromInt(playerRadius)
	t.Centre = t.Centre.Add(v.Scale(c.rules.PlayerSpeed))
	t.Centre.X = t.Centre.X.Clamp(r, c.opts.Width.Sub(r))
	t.Centre.Y = t.Centre.Y.Clamp(r, c.opts.Height.Sub(r))

	if p.FireTimer > 0 {
		p.FireTimer--
	}
	if in.Has(core.KeyFire) && p.FireTimer == 0 {
		aim := in.AimFrom(t.Centre).Sub(t.Centre)
		if !aim.IsZero() {
			c.spawnShot(p.Number, t.Centre, aim.Normalised().Scale(c.rules.ShotSpeed))
			p.FireTimer = c.rules.FireCooldown
		}
	}

	if in.Has(core.KeyBomb) && p.Bombs > 0 {
		p.Bombs--
		c.explode(t.Centre, core.ColorWhite, 16)
		for _, e := range c.coll.EntitiesWithinRadius(t.Centre, core.FromInt(bombRadius), collision.Vulnerable) {
			c.damage(e, bombDamage, p.Number)
		}
	}

	if p.Invulnerable > 0 {
		p.Invulnerable--
		return
	}
	if c.coll.PointOverlaps(t.Centre, collision.Dangerous) {
		c.killPlayer(p, t)
	}
}

func (c *Context) killPlayer(p *PlayerTag, t *Transform) {
	c.explode(t.Centre, core.PlayerColor(p.Number), 12)
	p.Dead = true
	if c.lives > 0 {
		c.lives--
		p.RespawnTimer = respawnDelay
		return
	}
	p.RespawnTimer = -1
}
