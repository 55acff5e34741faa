package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/collision"
	"github.com/vovakirdan/tui-shooter/internal/modes"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/replay"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Inspect, verify or watch replay files",
	Long: `Work with recorded runs. Replay files are written to paths.replay_dir
when a run ends and are named <seed>_<players>p_<mode><name>_<score>.wrp.

Examples:
  shooter replay info 42_1p_ada_1200.wrp
  shooter replay verify 42_1p_ada_1200.wrp
  shooter replay view 42_1p_ada_1200.wrp`,
}

var replayInfoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show a replay's conditions and size",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayInfo,
}

var replayVerifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Re-simulate a replay and record it in the run ledger",
	Long: `Runs the replay through a fresh simulation of its mode. The replay is
valid only when the simulation consumes every recorded frame. Valid runs
are recorded in the ledger as verified.`,
	Args: cobra.ExactArgs(1),
	Run:  runReplayVerify,
}

var replayViewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Watch a replay",
	Long: `Plays a replay back in the terminal.

Controls:
  P        - Pause
  +/-      - Faster / slower
  Q/Esc    - Quit`,
	Args: cobra.ExactArgs(1),
	Run:  runReplayView,
}

func init() {
	replayCmd.AddCommand(replayInfoCmd)
	replayCmd.AddCommand(replayVerifyCmd)
	replayCmd.AddCommand(replayViewCmd)
}

func loadReplay(path string) *replay.Replay {
	r, err := replay.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return r
}

func runReplayInfo(_ *cobra.Command, args []string) {
	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	r := loadReplay(path)
	c := r.Conditions
	digest := r.Digest()

	fmt.Printf("File:       %s (%s, recorded %s)\n", filepath.Base(path), humanize.Bytes(uint64(info.Size())), humanize.Time(info.ModTime()))
	fmt.Printf("Version:    %s\n", r.Version)
	fmt.Printf("Mode:       %s\n", c.Mode)
	fmt.Printf("Players:    %d\n", c.Players)
	fmt.Printf("Seed:       %d\n", c.Seed)
	fmt.Printf("Rules:      %s\n", c.Compatibility)
	collisionMode := collision.Legacy
	if c.StrictCollision {
		collisionMode = collision.Strict
	}
	fmt.Printf("Collision:  %s\n", collisionMode)
	fmt.Printf("Ticks:      %s\n", humanize.Comma(int64(r.Ticks())))
	if rate := cfg.Sim.TickRate; rate > 0 {
		fmt.Printf("Length:     %.1fs at %d ticks/s\n", float64(r.Ticks())/float64(rate), rate)
	}
	fmt.Printf("Digest:     %s\n", hex.EncodeToString(digest[:]))
}

func runReplayVerify(_ *cobra.Command, args []string) {
	path := args[0]
	r := loadReplay(path)
	digest := r.Digest()
	digestHex := hex.EncodeToString(digest[:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	v, err := modes.Verify(ctx, r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: replay %s did not complete: %v\n", filepath.Base(path), err)
		os.Exit(1)
	}
	if !v.Complete() {
		fmt.Fprintf(os.Stderr, "Invalid: run ended at tick %d with %d frames unused\n", v.Status.Tick, v.Leftover)
		os.Exit(1)
	}

	fmt.Printf("Valid: %s ticks, score %s\n", humanize.Comma(int64(v.Status.Tick)), humanize.Comma(v.Status.Score))

	if cfg.Paths.Database == "" {
		return
	}
	store, err := storage.Open(cfg.Paths.Database)
	if err != nil {
		logger.Warn("could not open run ledger, not recording", "error", err)
		return
	}
	defer store.Close()

	prior, err := store.RunByDigest(digestHex)
	if err != nil {
		logger.Warn("ledger lookup failed", "error", err)
	}
	if prior != nil && prior.Score != v.Status.Score {
		logger.Warn("ledger score differs from replay", "ledger", prior.Score, "replayed", v.Status.Score)
	}

	c := r.Conditions
	id, err := store.RecordRun(storage.Run{
		Mode:     c.Mode.String(),
		Player:   playerFromFileName(path),
		Players:  c.Players,
		Seed:     c.Seed,
		Score:    v.Status.Score,
		Ticks:    v.Status.Tick,
		Digest:   digestHex,
		Verified: true,
	})
	if err != nil {
		logger.Warn("could not record run", "error", err)
		return
	}
	logger.Info("run recorded as verified", "id", id, "digest", digestHex[:12])
}

func runReplayView(_ *cobra.Command, args []string) {
	r := loadReplay(args[0])
	width, height := terminalSize()

	final, err := tui.RunViewer(r, modes.NewRun(r.Conditions), cfg.Sim.TickRate, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
	if err := final.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Playback stopped: %v\n", err)
		os.Exit(1)
	}
}

// playerFromFileName recovers the player name from a replay file name of
// the form <seed>_<players>p_<mode><name>_<score>.wrp. Names never contain
// an underscore, so the name is the field before the score.
func playerFromFileName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(base, "_")
	if len(parts) < 4 {
		return "unknown"
	}
	return parts[len(parts)-2]
}
