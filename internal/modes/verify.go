package modes

import (
	"context"

	"github.com/vovakirdan/tui-shooter/internal/replay"
	"github.com/vovakirdan/tui-shooter/internal/sim"
)

// Verification is the outcome of re-simulating a recording.
type Verification struct {
	Status sim.Status
	// Leftover counts recorded frames the run never consumed, which happens
	// when the game ended earlier than it did when recorded.
	Leftover int
}

// Complete reports whether every recorded frame was consumed.
func (v Verification) Complete() bool {
	return v.Leftover == 0
}

// Verify replays r through a fresh run of its mode. The outcome depends
// only on r.
func Verify(ctx context.Context, r *replay.Replay) (Verification, error) {
	run := NewRun(r.Conditions)
	reader := replay.NewReader(r)
	st, err := run.Run(ctx, replay.NewPlaybackSource(reader), uint64(r.Ticks()))
	return Verification{Status: st, Leftover: reader.Remaining()}, err
}

// NewRun creates a simulation for cond. It does not consult the
// configuration, so every recording of cond re-simulates the same way.
func NewRun(cond replay.Conditions) *sim.Context {
	return sim.New(cond, Rules(cond.Mode), sim.DefaultOptions())
}
