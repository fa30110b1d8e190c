package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/blockpop/internal/config"
	platformcore "github.com/vovakirdan/blockpop/internal/core"
	"github.com/vovakirdan/blockpop/internal/games/blockpop"
	"github.com/vovakirdan/blockpop/internal/games/blockpop/core"
	"github.com/vovakirdan/blockpop/internal/games/blockpop/levels"
	"github.com/vovakirdan/blockpop/internal/metrics"
	"github.com/vovakirdan/blockpop/internal/storage"
)

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockpop",
		Level:           level,
	}), nil
}

// openLogFile opens ~/.blockpop/blockpop.log for appending, so logging
// does not draw over the alt screen.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".blockpop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "blockpop.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// screenshotDir is where ctrl+s writes screen dumps.
func screenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockpop", "screenshots")
}

// runtimeConfig returns the runtime config for the current terminal.
func runtimeConfig() platformcore.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return platformcore.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// loadGameConfig loads the game config and applies --difficulty.
func loadGameConfig() (config.GameConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.GameConfig{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.GameConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// loadLevels loads the level set selected by --levels.
func loadLevels() ([]levels.Level, error) {
	loader := levels.Builtin()
	if flagLevels != "" {
		loader = levels.NewDirLoader(flagLevels)
	}
	lvls, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("no levels found")
	}
	return lvls, nil
}

// findLevel returns the level with the given id.
func findLevel(lvls []levels.Level, id string) (levels.Level, error) {
	for _, l := range lvls {
		if l.ID == id {
			return l, nil
		}
	}
	return levels.Level{}, fmt.Errorf("unknown level %q (run 'blockpop levels' to see available levels)", id)
}

// session holds what every played level shares: config, storage and
// metrics.
type session struct {
	logger  *log.Logger
	config  config.GameConfig
	store   *storage.Store
	metrics *metrics.Collector
	stop    context.CancelFunc
}

// newSession opens storage and starts the metrics endpoint if requested.
// A database that cannot be opened only disables score keeping.
func newSession(logger *log.Logger) (*session, error) {
	cfg, err := loadGameConfig()
	if err != nil {
		return nil, err
	}
	s := &session{logger: logger, config: cfg, stop: func() {}}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "path", flagDBPath, "error", err)
	} else {
		s.store = store
	}

	if flagMetricsAddr != "" {
		s.metrics = metrics.NewCollector()
		ctx, cancel := context.WithCancel(context.Background())
		s.stop = cancel
		go func() {
			if err := s.metrics.Serve(ctx, flagMetricsAddr, logger); err != nil {
				logger.Error("metrics endpoint stopped", "error", err)
			}
		}()
	}
	return s, nil
}

// Close stops the metrics endpoint and closes storage.
func (s *session) Close() {
	s.stop()
	if s.store != nil {
		//nolint:errcheck // Nothing left to do with a close error on exit
		s.store.Close()
	}
}

// newGame creates a game for level wired to the session's storage and
// metrics.
func (s *session) newGame(level levels.Level) *blockpop.Game {
	opts := blockpop.Options{
		Config: s.config,
		Logger: s.logger,
		Reporter: core.ErrorReporterFunc(func(err error) {
			s.logger.Warn("block fault", "level", level.ID, "error", err)
		}),
	}

	if s.store != nil {
		var runID string
		opts.NewKeeper = func(levelID string, seed int64) (core.ScoreKeeper, error) {
			id, err := s.store.StartRun(levelID, seed)
			if err != nil {
				runID = ""
				return nil, err
			}
			runID = id
			s.logger.Debug("run recorded", "run", id, "level", levelID)
			return storage.NewRunScoreKeeper(s.store, id), nil
		}
		opts.OnFinish = func(r blockpop.Result) {
			if runID == "" {
				return
			}
			if err := s.store.FinishRun(runID, runStatus(r), r.MovesUsed); err != nil {
				s.logger.Error("could not finish run", "run", runID, "error", err)
			}
			runID = ""
		}
	}

	if s.metrics != nil {
		opts.OnEngine = func(e *core.Engine) func() {
			return s.metrics.Attach(e.Bus())
		}
		opts.OnCascade = s.metrics.ObserveCascade
	}

	return blockpop.New(level, opts)
}

func runStatus(r blockpop.Result) storage.RunStatus {
	switch {
	case r.Abandoned:
		return storage.RunAbandoned
	case r.Won:
		return storage.RunWon
	default:
		return storage.RunLost
	}
}
