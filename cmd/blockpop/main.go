// blockpop is a tile-popping puzzle game for the terminal.
//
// Usage:
//
//	blockpop levels            - List available levels
//	blockpop play <level>      - Play a level
//	blockpop menu              - Pick levels interactively
//	blockpop scores <level>    - Show high scores and recent runs
//	blockpop simulate <level>  - Replay taps headless and print the events
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 30)
//	--seed <value>         - Set RNG seed for reproducible refills
//	--db <path>            - Set database path (default: ~/.blockpop/scores.db)
//	--config <path>        - Game config YAML (scoring, timing, rules)
//	--levels <dir>         - Load levels from a directory instead of the built-in set
//	--difficulty <preset>  - easy, normal or hard
//	--log-level <level>    - debug, info, warn or error
//	--metrics-addr <addr>  - Serve Prometheus metrics while playing
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS         int
	flagSeed        int64
	flagDBPath      string
	flagConfig      string
	flagLevels      string
	flagDifficulty  string
	flagLogLevel    string
	flagMetricsAddr string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockpop",
	Short: "blockpop - pop coloured blocks in your terminal",
	Long: `blockpop is a tile-matching puzzle. Pop groups of same-coloured blocks,
fire rockets along rows and columns, and break stones before you run out
of moves.

Available commands:
  levels    - Show all available levels
  play      - Play a specific level directly
  menu      - Interactive level picker
  scores    - View high scores and recent runs
  simulate  - Replay a sequence of taps without a terminal

Examples:
  blockpop levels
  blockpop play 01-warmup
  blockpop menu --difficulty easy
  blockpop simulate 03-launch --tap 2,1 --tap 4,4`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockpop/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory with level files (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}
