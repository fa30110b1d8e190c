package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:     "levels",
	Aliases: []string{"list"},
	Short:   "List all available levels",
	Long:    `Shows the built-in levels, or the levels found under --levels.`,
	RunE:    runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	lvls, err := loadLevels()
	if err != nil {
		return err
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-*s  %-16s  %-5s  %-5s  %s\n", maxIDLen, "ID", "Name", "Size", "Moves", "Target")
	fmt.Printf("  %-*s  %-16s  %-5s  %-5s  %s\n", maxIDLen, "--", "----", "----", "-----", "------")

	for _, l := range lvls {
		size := fmt.Sprintf("%dx%d", l.Width, l.Height)
		fmt.Printf("  %-*s  %-16s  %-5s  %-5d  %d\n", maxIDLen, l.ID, l.Name, size, l.Moves, l.Target)
	}

	fmt.Println()
	fmt.Println("Run 'blockpop play <id>' to play a level.")
	return nil
}
