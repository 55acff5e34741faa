package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/replay"
	"github.com/vovakirdan/tui-shooter/internal/save"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

var flagScorePlayers int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the save file's high score table for a mode and player count,
followed by the best runs in the run ledger. Without a mode, opens the
interactive scoreboard.

Examples:
  shooter scores
  shooter scores normal
  shooter scores hard --players 2`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScorePlayers, "players", 1, "Player count of the table to show")
}

func loadSave() *save.SaveGame {
	sg, err := save.LoadFile(config.ExpandPath(cfg.Paths.SaveFile))
	if err != nil {
		logger.Warn("could not read save file, showing empty tables", "error", err)
		return save.New()
	}
	return sg
}

func openStore() *storage.Store {
	if cfg.Paths.Database == "" {
		return nil
	}
	store, err := storage.Open(cfg.Paths.Database)
	if err != nil {
		logger.Warn("could not open run ledger", "error", err)
		return nil
	}
	return store
}

func runScores(_ *cobra.Command, args []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if len(args) == 0 {
		width, height := terminalSize()
		if _, err := tui.RunScoreboard(loadSave(), store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	modeID := args[0]
	mode, err := replay.ParseMode(modeID)
	if err != nil || !registry.Exists(mode.String()) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'shooter modes' to see available modes.")
		os.Exit(1)
	}
	if flagScorePlayers < 1 || flagScorePlayers > core.MaxPlayers {
		fmt.Fprintf(os.Stderr, "Error: --players must be between 1 and %d\n", core.MaxPlayers)
		os.Exit(1)
	}

	game, err := registry.Create(mode.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s (%dp)\n", game.Title(), flagScorePlayers)
	fmt.Println()

	entries := loadSave().HighScores.Entries(mode, flagScorePlayers)
	printed := 0
	fmt.Printf("  %-4s  %-17s  %s\n", "Rank", "Name", "Score")
	fmt.Printf("  %-4s  %-17s  %s\n", "----", "----", "-----")
	for i, e := range entries {
		if e.Name == "" && e.Score == 0 {
			continue
		}
		fmt.Printf("  %-4d  %-17s  %s\n", i+1, e.Name, e.Display())
		printed++
	}
	if printed == 0 {
		fmt.Println("  No scores recorded yet.")
	}

	if store == nil {
		return
	}
	runs, err := store.TopRuns(mode.String(), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Best runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("  No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'shooter play %s' to set the first score!\n", mode)
		return
	}
	fmt.Printf("  %-4s  %-17s  %-7s  %-12s  %-8s  %s\n", "Rank", "Player", "Players", "Score", "Verified", "Played")
	fmt.Printf("  %-4s  %-17s  %-7s  %-12s  %-8s  %s\n", "----", "------", "-------", "-----", "--------", "------")
	for i, run := range runs {
		verified := "no"
		if run.Verified {
			verified = "yes"
		}
		fmt.Printf("  %-4d  %-17s  %-7d  %-12s  %-8s  %s\n",
			i+1, run.Player, run.Players, humanize.Comma(run.Score), verified, humanize.Time(run.CreatedAt))
	}
}
