package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/replay"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all game modes",
	Long: `Shows every registered game mode and whether the save file has
unlocked it for the menu.`,
	Args: cobra.NoArgs,
	Run:  runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	sg := loadSave()

	titles := make(map[string]string)
	maxIDLen := 2 // "ID" header
	for _, g := range registry.List() {
		titles[g.ID] = g.Title
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	if len(titles) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()
	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "ID", "Menu", "Title")
	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "--", "----", "-----")

	for _, mode := range replay.Modes() {
		title, ok := titles[mode.String()]
		if !ok {
			continue
		}
		state := "open"
		if !sg.Unlocked(mode) {
			state = "locked"
		}
		fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, mode.String(), state, title)
	}

	fmt.Println()
	fmt.Println("Run 'shooter play <id>' to play a mode.")
}
