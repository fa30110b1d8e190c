package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockpop/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Start playing the specified level.

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Enter/Space       - Pop the group under the cursor or fire a rocket
  P                 - Pause
  R                 - Restart (after the level ends)
  B/Esc             - Leave the level
  Ctrl+S            - Save a screenshot to ~/.blockpop/screenshots
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Five extra moves, pairs pop
  normal - The level as designed
  hard   - Three fewer moves, groups need at least three blocks

Examples:
  blockpop play 01-warmup
  blockpop play 02-quarry --difficulty hard
  blockpop play my-level --levels ./levels --config ./blockpop.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

// tuiLogger logs to the log file so the alt screen stays clean.
func tuiLogger() (*log.Logger, func(), error) {
	f, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		logger, lerr := newLogger(io.Discard)
		return logger, func() {}, lerr
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	lvls, err := loadLevels()
	if err != nil {
		return err
	}
	level, err := findLevel(lvls, args[0])
	if err != nil {
		return err
	}

	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	sess, err := newSession(logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	game := sess.newGame(level)
	if _, err := tui.Run(game, runtimeConfig(), tui.RunOptions{ScreenshotDir: screenshotDir()}); err != nil {
		return fmt.Errorf("running %s: %w", level.ID, err)
	}
	return nil
}
