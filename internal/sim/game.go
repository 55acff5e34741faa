package sim

import (
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/replay"
)

// Game adapts a Context to the platform's game interface. Reset starts a new
// run; the other methods delegate to the current run.
type Game struct {
	id     string
	title  string
	mode   replay.GameMode
	rules  Rules
	opts   Options
	strict bool
	run    *Context
}

// NewGame returns a game for one mode. It has no run until Reset is called.
func NewGame(id, title string, mode replay.GameMode, rules Rules, opts Options) *Game {
	return &Game{id: id, title: title, mode: mode, rules: rules, opts: opts}
}

// WithStrictCollision makes runs started by Reset use strict collision.
// Runs started by ResetWith follow their conditions.
func (g *Game) WithStrictCollision(on bool) *Game {
	g.strict = on
	return g
}

func (g *Game) ID() string    { return g.id }
func (g *Game) Title() string { return g.title }

// Reset starts a new run with the seed and player count from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.ResetWith(replay.Conditions{
		Compatibility:   replay.CompatCurrent,
		Mode:            g.mode,
		Players:         cfg.Players,
		Seed:            cfg.Seed,
		StrictCollision: g.strict,
	})
}

// ResetWith starts a new run under explicit conditions, e.g. from a replay.
func (g *Game) ResetWith(c replay.Conditions) {
	c.Mode = g.mode
	g.run = New(c, g.rules, g.opts)
}

func (g *Game) Step(frames []core.InputFrame) (core.StepResult, error) {
	st, err := g.run.Step(frames)
	return core.StepResult{State: st.GameState()}, err
}

func (g *Game) Render(dst *core.Screen) {
	g.run.Render(dst)
}

func (g *Game) State() core.GameState {
	if g.run == nil {
		return core.GameState{}
	}
	return g.run.Status().GameState()
}

// Conditions returns the conditions of the current run.
func (g *Game) Conditions() replay.Conditions {
	if g.run == nil {
		return replay.Conditions{Mode: g.mode}
	}
	return g.run.Conditions()
}

// Context returns the current run.
func (g *Game) Context() *Context {
	return g.run
}
