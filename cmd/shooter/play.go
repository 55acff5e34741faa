package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-shooter/internal/metrics"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

var (
	flagPlayers int
	flagName    string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the specified mode. Without a mode, a menu lets you
pick the mode and the number of players. The menu only offers modes the
save file has unlocked; naming a mode here plays it regardless.

Controls:
  WASD / Arrows     - Move player 1 / player 2
  Space / Enter     - Fire
  E / '/'           - Bomb
  P                 - Pause
  R                 - Restart (after game over)
  Esc               - Back
  Q/Ctrl+C          - Quit

Every run is saved as a replay under paths.replay_dir.

Examples:
  shooter play
  shooter play normal
  shooter play hard --players 2
  shooter play fast --seed 12345 --name ada`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPlayers, "players", 1, "Number of players sharing the keyboard")
	playCmd.Flags().StringVar(&flagName, "name", os.Getenv("USER"), "Name for high scores and replay files")
}

func runPlay(_ *cobra.Command, args []string) {
	width, height := terminalSize()

	archive := openArchive(nil)
	defer closeArchive(archive)

	opts := tui.PlayOptions{
		Players:  flagPlayers,
		Seed:     flagSeed,
		TickRate: cfg.Sim.TickRate,
		Width:    width,
		Height:   height,
		Player:   flagName,
		Archive:  archive,
	}

	if len(args) == 0 {
		if err := tui.RunSession(archive, opts); err != nil {
			closeArchive(archive)
			fmt.Fprintf(os.Stderr, "Error running menu: %v\n", err)
			os.Exit(1)
		}
		return
	}

	modeID := args[0]
	if !registry.Exists(modeID) {
		closeArchive(archive)
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'shooter modes' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(modeID)
	if err != nil {
		closeArchive(archive)
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger.Debug("run starting", "mode", modeID, "players", flagPlayers, "seed", flagSeed)
	final, err := tui.Run(game, opts)
	if err != nil {
		closeArchive(archive)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}

	if out := final.Outcome(); out.ReplayPath != "" {
		fmt.Printf("Score %d, replay saved to %s\n", final.State().Score, out.ReplayPath)
	}
	if err := final.Err(); err != nil {
		logger.Warn("run ended with an error", "error", err)
	}
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// openArchive builds the run archive from the configured paths. A ledger
// that cannot be opened is skipped with a warning; the game still works.
func openArchive(m *metrics.Metrics) *tui.Archive {
	return &tui.Archive{
		ReplayDir: cfg.Paths.ReplayDir,
		SavePath:  cfg.Paths.SaveFile,
		Store:     openStore(),
		Metrics:   m,
		Logger:    logger,
	}
}

func closeArchive(a *tui.Archive) {
	if a.Store == nil {
		return
	}
	if err := a.Store.Close(); err != nil {
		logger.Warn("closing run ledger", "error", err)
	}
	a.Store = nil
}
