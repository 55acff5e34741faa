package sim

import (
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/ecs"
)

// rampTicks is how often the wave interval shrinks by one tick.
const rampTicks = 250

// updateSpawner releases a wave of enemies whenever the spawn timer runs out.
func (c *Context) updateSpawner() {
	if c.spawnTimer > 0 {
		c.spawnTimer--
		return
	}
	interval := c.rules.SpawnInterval - int(c.tick/rampTicks)
	c.spawnTimer = max(c.rules.MinSpawnInterval, interval)

	weights := []uint32{c.rules.ChaserWeight, c.rules.DrifterWeight}
	for i := 0; i < c.rules.WaveSize; i++ {
		if ecs.Count[EnemyTag](c.idx) >= c.rules.MaxEnemies {
			return
		}
		at := c.edgePoint()
		switch EnemyKind(c.rng.WeightedChoice(weights)) {
		case KindChaser:
			c.spawnChaser(at)
		case KindDrifter:
			c.spawnDrifter(at)
		}
	}
}

// edgePoint picks a random point on the playfield border.
func (c *Context) edgePoint() core.Vec2 {
	side := c.rng.NextBelow(4)
	f := c.rng.NextFixed()
	switch side {
	case 0:
		return core.V(c.opts.Width.Mul(f), 0)
	case 1:
		return core.V(c.opts.Width.Mul(f), c.opts.Height)
	case 2:
		return core.V(0, c.opts.Height.Mul(f))
	}
	return core.V(c.opts.Width, c.opts.Height.Mul(f))
}
