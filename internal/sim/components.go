package sim

import (
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/ecs"
)

// Transform places an entity in the playfield.
type Transform struct {
	Centre   core.Vec2
	Rotation core.Fixed
}

// Motion is the per-tick displacement of an entity.
type Motion struct {
	Velocity core.Vec2
}

// Behavior runs once per tick for its entity.
type Behavior struct {
	Update func(*Context, ecs.Handle)
}

// PlayerTag marks a player ship.
type PlayerTag struct {
	Number       int
	Score        int64
	FireTimer    int
	Bombs        int
	Dead         bool
	RespawnTimer int // ticks until respawn, or -1 when out of lives
	Invulnerable int
	Kills        int
}

// EnemyKind distinguishes enemy behaviors for scoring and rendering.
type EnemyKind int

const (
	KindChaser EnemyKind = iota
	KindDrifter
)

// EnemyTag marks something players can shoot.
type EnemyTag struct {
	Kind   EnemyKind
	Health int
	Points int64
}

// ShotTag marks a player projectile.
type ShotTag struct {
	Owner int
}

// Particle is a short-lived visual effect.
type Particle struct {
	Timer int
}

// Sprite is how an entity is drawn.
type Sprite struct {
	Glyph rune
	Color core.Color
}
