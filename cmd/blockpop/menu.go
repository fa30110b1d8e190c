package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockpop/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start blockpop with a level picker menu",
	Long: `Start blockpop in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a level.
Leaving a level with B/Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play level
  Tab          - Scoreboard
  Q            - Quit

Examples:
  blockpop menu
  blockpop menu --fps 60
  blockpop menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	lvls, err := loadLevels()
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

	cfg := runtimeConfig()
	for {
		menuResult, err := tui.RunMenu(lvls, sess.store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(lvls, sess.store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		level, err := findLevel(lvls, menuResult.LevelID)
		if err != nil {
			return err
		}

		// Fresh refills for every run unless --seed pins them.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		res, err := tui.Run(sess.newGame(level), cfg, tui.RunOptions{ScreenshotDir: screenshotDir()})
		if err != nil {
			return fmt.Errorf("running %s: %w", level.ID, err)
		}
		cfg = res.Config
		if !res.Back {
			return nil
		}
	}
}
