// Package random provides the deterministic pseudo-random engine used by all
// gameplay logic. The sequence depends only on the seed and the order of calls,
// so replays reproduce exactly on every platform.
package random

import "github.com/vovakirdan/tui-shooter/internal/core"

// Max is the largest value Next can return.
const Max = 0x7fff

const (
	multiplier = 1103515245
	increment  = 12345
)

// Engine is a 32-bit linear congruential generator.
// It is not safe for concurrent use; each simulation owns its own engine.
type Engine struct {
	state uint32
}

// New creates an engine seeded with seed.
func New(seed uint32) *Engine {
	return &Engine{state: seed}
}

// Seed resets the engine state.
func (e *Engine) Seed(seed uint32) {
	e.state = seed
}

// State returns the current internal state.
func (e *Engine) State() uint32 {
	return e.state
}

// Next advances the generator and returns a value in [0, Max].
func (e *Engine) Next() uint32 {
	e.state = multiplier*e.state + increment
	return (e.state >> 16) & Max
}

// NextBelow returns Next() % bound. The modulo bias is part of the replay
// format and must not be corrected. Panics if bound is zero.
func (e *Engine) NextBelow(bound uint32) uint32 {
	if bound == 0 {
		panic("random: NextBelow called with zero bound")
	}
	return e.Next() % bound
}

// NextFixed returns a fixed-point value in [0, 1].
func (e *Engine) NextFixed() core.Fixed {
	return core.FromInt(int32(e.Next())).Div(core.FromInt(Max))
}

// Bool returns a fair coin flip.
func (e *Engine) Bool() bool {
	return e.NextBelow(2) != 0
}

// Shuffle permutes n elements through swap, drawing n-1 values.
func (e *Engine) Shuffle(n int, swap func(i, j int)) {
	size := uint32(n)
	for i := uint32(0); i+1 < size; i++ {
		j := i + e.NextBelow(size-i)
		swap(int(i), int(j))
	}
}

// Choice returns a uniformly drawn index in [0, n), or -1 without drawing when n is 0.
func (e *Engine) Choice(n int) int {
	if n <= 0 {
		return -1
	}
	return int(e.NextBelow(uint32(n)))
}

// WeightedChoice draws an index with probability proportional to its weight.
// Returns -1 without drawing when all weights are zero.
func (e *Engine) WeightedChoice(weights []uint32) int {
	var total uint32
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return -1
	}
	r := e.NextBelow(total)
	total = 0
	for i, w := range weights {
		total += w
		if r < total {
			return i
		}
	}
	return -1
}
