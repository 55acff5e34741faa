// Package sim advances a deterministic shooter simulation one tick at a
// time. A Context owns all mutable state of a run; two contexts built from
// the same conditions and fed the same frames stay bit-identical.
package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-shooter/internal/collision"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/ecs"
	"github.com/vovakirdan/tui-shooter/internal/random"
	"github.com/vovakirdan/tui-shooter/internal/replay"
)

// ErrFrameCount is returned by Step when the frame count differs from the
// player count.
var ErrFrameCount = errors.New("sim: wrong number of input frames")

// gameOverDelay is how long the playfield keeps running after the last life is lost.
const gameOverDelay = 50

// Status summarises the run after a tick.
type Status struct {
	Tick     uint64
	Score    int64
	Lives    int
	GameOver bool
	Entities int
}

// GameState converts the status for the platform layer.
func (s Status) GameState() core.GameState {
	return core.GameState{Tick: s.Tick, Score: s.Score, Lives: s.Lives, GameOver: s.GameOver}
}

// Context is one running simulation.
type Context struct {
	conditions replay.Conditions
	rules      Rules
	opts       Options

	idx     *ecs.Index
	coll    *collision.Index
	rng     *random.Engine
	tick    uint64
	lives   int
	players []ecs.Handle
	input   []core.InputFrame

	kill   []ecs.Handle
	killed map[ecs.EntityID]bool

	spawnTimer    int
	gameOverTimer int
	gameOver      bool
}

// New builds a context and places the player ships.
func New(cond replay.Conditions, rules Rules, opts Options) *Context {
	cond = cond.Normalize()
	c := &Context{
		conditions:    cond,
		rules:         rules,
		opts:          opts,
		idx:           ecs.NewIndex(),
		rng:           random.New(cond.Seed),
		lives:         rules.Lives,
		killed:        make(map[ecs.EntityID]bool),
		spawnTimer:    rules.SpawnInterval,
		gameOverTimer: -1,
	}
	mode := collision.Legacy
	if cond.StrictCollision {
		mode = collision.Strict
	}
	c.coll = collision.Attach(c.idx, c.locate, collision.Options{
		Mode:      mode,
		Threshold: opts.CollisionThreshold,
	})
	for i := 0; i < cond.Players; i++ {
		c.players = append(c.players, c.spawnPlayer(i))
	}
	return c
}

func (c *Context) locate(h ecs.Handle) (core.Vec2, core.Fixed) {
	t := ecs.Get[Transform](c.idx, h.ID())
	if t == nil {
		return core.Vec2{}, 0
	}
	return t.Centre, t.Rotation
}

func (c *Context) Conditions() replay.Conditions { return c.conditions }
func (c *Context) Rules() Rules                  { return c.rules }
func (c *Context) Tick() uint64                  { return c.tick }
func (c *Context) Index() *ecs.Index             { return c.idx }
func (c *Context) Collision() *collision.Index   { return c.coll }

// Random exposes the run's random engine. Only simulation code may draw from
// it; any other draw desynchronises replays.
func (c *Context) Random() *random.Engine { return c.rng }

// Input returns the frame for player during the current tick.
func (c *Context) Input(player int) core.InputFrame {
	if player < 0 || player >= len(c.input) {
		return core.InputFrame{}
	}
	return c.input[player]
}

// Player returns the handle of a player's ship.
func (c *Context) Player(n int) ecs.Handle {
	return c.players[n]
}

// Destroy queues an entity for removal at the end of the behavior pass.
func (c *Context) Destroy(h ecs.Handle) {
	if c.killed[h.ID()] {
		return
	}
	c.killed[h.ID()] = true
	c.kill = append(c.kill, h)
}

// Destroyed reports whether h is queued for removal or already gone.
func (c *Context) Destroyed(h ecs.Handle) bool {
	return c.killed[h.ID()] || !h.Valid()
}

func (c *Context) flushDestroyed() {
	for _, h := range c.kill {
		h.Destroy()
	}
	c.kill = c.kill[:0]
	clear(c.killed)
}

// Status reports the current state without advancing.
func (c *Context) Status() Status {
	var score int64
	for _, h := range c.players {
		if p := ecs.Get[PlayerTag](c.idx, h.ID()); p != nil {
			score += p.Score
		}
	}
	return Status{
		Tick:     c.tick,
		Score:    score,
		Lives:    c.lives,
		GameOver: c.gameOver,
		Entities: c.idx.Size(),
	}
}

// Step advances one tick with one frame per player.
func (c *Context) Step(frames []core.InputFrame) (Status, error) {
	if len(frames) != len(c.players) {
		return c.Status(), fmt.Errorf("%w: got %d, expected %d", ErrFrameCount, len(frames), len(c.players))
	}
	if c.gameOver {
		return c.Status(), nil
	}
	c.input = frames

	c.coll.BeginTick()
	ecs.Iterate(c.idx, func(h ecs.Handle, b *Behavior) {
		if b.Update != nil && !c.killed[h.ID()] {
			b.Update(c, h)
		}
	}, false)
	c.flushDestroyed()
	c.updateSpawner()

	if n := c.opts.CompactInterval; n > 0 && (c.tick+1)%uint64(n) == 0 {
		c.idx.Compact()
	}
	c.tick++
	c.updateGameOver()
	c.input = nil
	return c.Status(), nil
}

func (c *Context) updateGameOver() {
	if c.gameOverTimer < 0 {
		for _, h := range c.players {
			p := ecs.Get[PlayerTag](c.idx, h.ID())
			if !p.Dead || p.RespawnTimer >= 0 {
				return
			}
		}
		c.gameOverTimer = gameOverDelay
	}
	if c.gameOverTimer > 0 {
		c.gameOverTimer--
	}
	if c.gameOverTimer == 0 {
		c.gameOver = true
	}
}

// Run steps the simulation with frames from src until the game ends, the
// source fails, maxTicks ticks have run (zero means no limit) or ctx is
// cancelled. Cancellation is only observed between ticks.
func (c *Context) Run(ctx context.Context, src replay.Source, maxTicks uint64) (Status, error) {
	for {
		if err := ctx.Err(); err != nil {
			return c.Status(), err
		}
		if maxTicks > 0 && c.tick >= maxTicks {
			return c.Status(), nil
		}
		frames, err := src.Frames(c.tick)
		if err != nil {
			return c.Status(), fmt.Errorf("sim: tick %d: %w", c.tick, err)
		}
		st, err := c.Step(frames)
		if err != nil {
			return st, err
		}
		if st.GameOver {
			return st, nil
		}
	}
}
