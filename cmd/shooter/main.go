// shooter is a deterministic terminal arcade shooter with recorded replays.
//
// Usage:
//
//	shooter modes                   - List game modes
//	shooter play [mode]             - Play a mode, or pick one from the menu
//	shooter replay info <file>      - Describe a replay file
//	shooter replay verify <file>    - Re-simulate a replay and record it
//	shooter replay view <file>      - Watch a replay
//	shooter scores [mode]           - Show high scores
//	shooter serve                   - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search path, then embedded)
//	--seed <value>      - RNG seed for new runs (0 = from the clock)
//	--db <path>         - Run ledger database (default: paths.database)
//	--log-level <lvl>   - Override logging.level
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/logging"
	"github.com/vovakirdan/tui-shooter/internal/modes"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     uint32
	flagDBPath   string
	flagLogLevel string

	// Set by the root PersistentPreRunE
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shooter",
	Short: "Shooter - a deterministic arcade shooter in your terminal",
	Long: `Shooter is a terminal arcade shooter for one to four players.

Every run is recorded. A replay holds the seed and the per-tick input of
each player, so replaying it through the simulation reproduces the run
exactly. Replays can be watched, verified and ranked.

Available commands:
  modes    - Show the game modes
  play     - Play a mode directly or pick one from the menu
  replay   - Inspect, verify or watch a replay file
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  shooter play
  shooter play hard --players 2
  shooter replay verify ~/.shooter/replays/42_1p_ada_1200.wrp
  shooter serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run ledger database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		loaded.Paths.Database = flagDBPath
	}
	if flagLogLevel != "" {
		loaded.Logging.Level = flagLogLevel
	}

	l, err := logging.New(loaded.Logging)
	if err != nil {
		return err
	}

	cfg = loaded
	logger = l
	modes.Configure(cfg)
	logger.Debug("configuration loaded", "config", flagConfig, "database", cfg.Paths.Database)
	return nil
}
