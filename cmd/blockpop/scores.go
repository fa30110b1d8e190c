package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockpop/internal/storage"
)

var flagRuns bool

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show high scores for a level",
	Long: `Display the top 10 high scores for the specified level.
With --runs, list the most recent runs instead, including abandoned ones.

Examples:
  blockpop scores 01-warmup
  blockpop scores 02-quarry --runs`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "List recent runs instead of high scores")
}

func runScores(_ *cobra.Command, args []string) error {
	lvls, err := loadLevels()
	if err != nil {
		return err
	}
	level, err := findLevel(lvls, args[0])
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagRuns {
		return printRuns(store, level.ID, level.Name)
	}

	scores, err := store.TopScores(level.ID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", level.Name)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockpop play %s' to set the first high score!\n", level.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(level.ID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printRuns(store *storage.Store, levelID, name string) error {
	runs, err := store.RecentRuns(levelID, 20)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Recent Runs - %s\n", name)
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-36s  %-9s  %-6s  %-5s  %s\n", "Run", "Result", "Score", "Moves", "Started")
	for _, r := range runs {
		fmt.Printf("  %-36s  %-9s  %-6d  %-5d  %s\n",
			r.ID, r.Status, r.Score, r.Moves, r.StartedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
