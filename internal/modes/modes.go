// Package modes registers the shooter's game modes (normal, boss, hard,
// fast, what) with the registry. Each mode is a sim.Game.
//
// The rules of a mode are fixed here rather than read from the
// configuration: a replay records only its conditions, so anything that
// changes the outcome of a run must be derivable from them. The
// configuration supplies titles and the collision mode new runs record.
package modes

import (
	"sync"

	"github.com/vovakirdan/tui-shooter/internal/collision"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/replay"
	"github.com/vovakirdan/tui-shooter/internal/sim"
)

var (
	active = config.DefaultConfig()
	mu     sync.RWMutex
)

func init() {
	for _, m := range replay.Modes() {
		registry.Register(m.String(), func() registry.Game {
			return New(m)
		})
	}
}

// Configure replaces the configuration used by games created afterwards.
func Configure(cfg config.Config) {
	mu.Lock()
	defer mu.Unlock()
	active = cfg
}

// New creates a game for mode. Runs it starts record the configured
// collision mode.
func New(mode replay.GameMode) *sim.Game {
	mu.RLock()
	cfg := active
	mu.RUnlock()

	mc, _ := cfg.Mode(mode.String())
	title := mc.Title
	if title == "" {
		title = mode.String()
	}
	strict := collision.ParseMode(cfg.Sim.CollisionMode) == collision.Strict
	return sim.NewGame(mode.String(), title, mode, Rules(mode), sim.DefaultOptions()).
		WithStrictCollision(strict)
}

// Rules returns the rules of mode. Unknown modes get the normal rules.
func Rules(mode replay.GameMode) sim.Rules {
	r := sim.DefaultRules()
	switch mode {
	case replay.ModeHard:
		r.Lives = 1
		r.SpawnInterval = 100
		r.MinSpawnInterval = 25
		r.WaveSize = 4
		r.MaxEnemies = 60
		r.EnemyHealth = 2
		r.EnemySpeed = core.FromInt(3)
		r.DrifterWeight = 2
		r.PointsMultiplier = 2
	case replay.ModeFast:
		r.SpawnInterval = 75
		r.MinSpawnInterval = 20
		r.MaxEnemies = 50
		r.EnemySpeed = core.FromInt(4)
		r.PlayerSpeed = core.FromInt(8)
		r.ShotSpeed = core.FromInt(16)
		r.FireCooldown = 3
		r.PointsMultiplier = 2
	case replay.ModeWhat:
		r.Lives = 3
		r.Bombs = 3
		r.SpawnInterval = 60
		r.MinSpawnInterval = 15
		r.WaveSize = 6
		r.MaxEnemies = 80
		r.PlayerSpeed = core.FromInt(6)
		r.ShotSpeed = core.FromInt(12)
		r.FireCooldown = 2
		r.ChaserWeight = 1
		r.DrifterWeight = 3
		r.PointsMultiplier = 3
	case replay.ModeBoss:
		r.Lives = 3
		r.Bombs = 2
		r.SpawnInterval = 200
		r.MinSpawnInterval = 100
		r.WaveSize = 8
		r.MaxEnemies = 30
		r.EnemyHealth = 4
		r.ChaserWeight = 1
		r.PointsMultiplier = 5
	}
	return r
}
