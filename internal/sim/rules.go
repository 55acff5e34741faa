package sim

import "github.com/vovakirdan/tui-shooter/internal/core"

// Rules tune a game mode. Speeds are playfield units per tick.
type Rules struct {
	Lives            int
	Bombs            int
	SpawnInterval    int // ticks between waves at the start of a run
	MinSpawnInterval int
	WaveSize         int
	MaxEnemies       int
	EnemyHealth      int
	EnemySpeed       core.Fixed
	PlayerSpeed      core.Fixed
	ShotSpeed        core.Fixed
	FireCooldown     int
	ChaserWeight     uint32
	DrifterWeight    uint32
	PointsMultiplier int64
}

// DefaultRules are the normal-mode rules.
func DefaultRules() Rules {
	return Rules{
		Lives:            2,
		Bombs:            1,
		SpawnInterval:    150,
		MinSpawnInterval: 40,
		WaveSize:         3,
		MaxEnemies:       40,
		EnemyHealth:      1,
		EnemySpeed:       core.FromInt(2),
		PlayerSpeed:      core.FromInt(5),
		ShotSpeed:        core.FromInt(10),
		FireCooldown:     5,
		ChaserWeight:     2,
		DrifterWeight:    1,
		PointsMultiplier: 1,
	}
}

// Options are mode-independent simulation settings. The collision mode is
// not among them: it belongs to the run's conditions.
type Options struct {
	Width, Height core.Fixed
	// CollisionThreshold is the bounding width a body must exceed to be
	// indexed for point queries.
	CollisionThreshold core.Fixed
	// CompactInterval compacts component storage every N ticks. Zero disables.
	CompactInterval int
}

// DefaultOptions returns a 640x480 playfield compacted every tick.
func DefaultOptions() Options {
	return Options{
		Width:              core.FromInt(640),
		Height:             core.FromInt(480),
		CollisionThreshold: core.One,
		CompactInterval:    1,
	}
}
