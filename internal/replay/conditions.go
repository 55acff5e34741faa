package replay

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// GameMode selects the rule set a run was played under.
type GameMode uint32

const (
	ModeNormal GameMode = iota
	ModeBoss
	ModeHard
	ModeFast
	ModeWhat
)

var modeNames = [...]string{"normal", "boss", "hard", "fast", "what"}

func (m GameMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", uint32(m))
}

// ParseMode looks up a mode by name.
func ParseMode(s string) (GameMode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(s, n) {
			return GameMode(i), nil
		}
	}
	return 0, fmt.Errorf("replay: unknown game mode %q", s)
}

// Modes lists every game mode in declaration order.
func Modes() []GameMode {
	return []GameMode{ModeNormal, ModeBoss, ModeHard, ModeFast, ModeWhat}
}

// filePrefix is the mode tag used in replay file names.
func (m GameMode) filePrefix() string {
	switch m {
	case ModeBoss:
		return "bossmode_"
	case ModeHard:
		return "hardmode_"
	case ModeFast:
		return "fastmode_"
	case ModeWhat:
		return "w-hatmode_"
	}
	return ""
}

// Compatibility records which simulation rules produced a replay.
type Compatibility uint32

const (
	CompatLegacy Compatibility = iota
	CompatCurrent
)

func (c Compatibility) String() string {
	if c == CompatLegacy {
		return "legacy"
	}
	return "current"
}

// Conditions are the initial conditions of a run.
type Conditions struct {
	Compatibility     Compatibility
	Mode              GameMode
	Players           int
	Seed              uint32
	CanFaceSecretBoss bool
	// StrictCollision records that the run re-sorted the collision index
	// before every query instead of once per tick.
	StrictCollision bool
}

// Normalize clamps the player count into 1..MaxPlayers.
func (c Conditions) Normalize() Conditions {
	c.Players = max(1, min(core.MaxPlayers, c.Players))
	return c
}
