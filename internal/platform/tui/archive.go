package tui

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/metrics"
	"github.com/vovakirdan/tui-shooter/internal/modes"
	"github.com/vovakirdan/tui-shooter/internal/replay"
	"github.com/vovakirdan/tui-shooter/internal/save"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

// Archive persists finished runs: the replay file, the save file's high
// score tables and the run ledger. Empty or nil destinations are skipped.
// One Archive may be shared by concurrent sessions.
type Archive struct {
	ReplayDir string
	SavePath  string
	Store     *storage.Store
	Metrics   *metrics.Metrics
	Logger    *log.Logger

	// VerifyRuns re-simulates each run before it enters the ledger. Only
	// runs that reproduce their score are marked verified.
	VerifyRuns bool

	mu sync.Mutex // guards the save file's read-modify-write
}

// Outcome describes where a finished run was stored.
type Outcome struct {
	ReplayPath string
	Digest     string
	Rank       int // position in the save file's table, -1 if not placed
	RunID      uuid.UUID
	Verified   bool
}

// Finish stores a finalized replay and its result. All destinations are
// attempted; the returned error joins every failure.
func (a *Archive) Finish(r *replay.Replay, player string, st core.GameState) (Outcome, error) {
	digest := r.Digest()
	out := Outcome{Digest: hex.EncodeToString(digest[:]), Rank: -1}
	name := playerName(player)
	cond := r.Conditions

	var errs []error
	if a.ReplayDir != "" {
		dir := config.ExpandPath(a.ReplayDir)
		path := filepath.Join(dir, replay.FileName(cond, name, st.Score))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			errs = append(errs, fmt.Errorf("archive: create %s: %w", dir, err))
		} else if err := r.Save(path); err != nil {
			errs = append(errs, err)
		} else {
			out.ReplayPath = path
		}
	}

	if a.SavePath != "" && st.Score > 0 {
		rank, err := a.recordHighScore(cond, name, st.Score)
		if err != nil {
			errs = append(errs, err)
		}
		out.Rank = rank
	}

	if a.VerifyRuns {
		out.Verified = a.verify(r, st)
	}

	if a.Store != nil {
		id, err := a.Store.RecordRun(storage.Run{
			Mode:     cond.Mode.String(),
			Player:   name,
			Players:  cond.Players,
			Seed:     cond.Seed,
			Score:    st.Score,
			Ticks:    st.Tick,
			Digest:   out.Digest,
			Verified: out.Verified,
		})
		if err != nil {
			errs = append(errs, err)
		}
		out.RunID = id
	}

	if a.Metrics != nil {
		a.Metrics.RecordRun(cond.Mode.String(), st.Score)
	}

	err := errors.Join(errs...)
	if a.Logger != nil {
		if err != nil {
			a.Logger.Warn("could not archive run", "mode", cond.Mode, "error", err)
		} else {
			a.Logger.Info("run archived", "mode", cond.Mode, "players", cond.Players,
				"seed", cond.Seed, "score", st.Score, "ticks", st.Tick, "replay", out.ReplayPath)
		}
	}
	return out, err
}

// verify replays r and reports whether it reproduces st.
func (a *Archive) verify(r *replay.Replay, st core.GameState) bool {
	v, err := modes.Verify(context.Background(), r)
	result := metrics.ResultMatch
	switch {
	case err != nil:
		result = metrics.ResultError
	case !v.Complete() || v.Status.Score != st.Score || v.Status.Tick != st.Tick:
		result = metrics.ResultMismatch
	}
	if a.Metrics != nil {
		a.Metrics.RecordVerification(result)
	}
	if result != metrics.ResultMatch && a.Logger != nil {
		a.Logger.Warn("run did not reproduce", "mode", r.Conditions.Mode, "seed", r.Conditions.Seed,
			"result", result, "score", st.Score, "replayed", v.Status.Score, "error", err)
	}
	return result == metrics.ResultMatch
}

func (a *Archive) recordHighScore(cond replay.Conditions, name string, score int64) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	path := config.ExpandPath(a.SavePath)
	sg, err := save.LoadFile(path)
	if err != nil {
		return -1, err
	}
	rank := sg.HighScores.AddScore(cond.Mode, cond.Players, name, uint64(score))
	if rank < 0 {
		return -1, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return -1, fmt.Errorf("archive: create %s: %w", filepath.Dir(path), err)
	}
	return rank, sg.SaveFile(path)
}

// playerName makes a name safe for the save file and replay file names.
func playerName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == '_' || r < ' ' {
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "anon"
	}
	return save.ClipName(name)
}
