// Package blockpop provides the tile-popping puzzle game played on top of
// the rules engine in the core package.
package blockpop

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockpop/internal/config"
	platformcore "github.com/vovakirdan/blockpop/internal/core"
	"github.com/vovakirdan/blockpop/internal/games/blockpop/core"
	"github.com/vovakirdan/blockpop/internal/games/blockpop/levels"
)

// phase is what the game loop is waiting for.
type phase int

const (
	phaseIdle      phase = iota // accepting input
	phaseResolving              // pops running, gravity pending
	phaseFalling                // gravity and spawn animations running
)

// Result describes how a run on a level ended.
type Result struct {
	LevelID   string
	Score     int
	MovesUsed int
	Won       bool
	Abandoned bool
}

// Options wires the game to its collaborators. Every field is optional.
type Options struct {
	Config   config.GameConfig
	Logger   *log.Logger
	Sound    core.SoundPlayer
	Reporter core.ErrorReporter

	// NewKeeper creates the score sink for a run, called on every Reset.
	NewKeeper func(levelID string, seed int64) (core.ScoreKeeper, error)
	// OnFinish is called once per run, when it is won, lost or abandoned.
	OnFinish func(Result)
	// OnEngine is called with every engine built; the returned function
	// is called when the engine is discarded.
	OnEngine func(*core.Engine) func()
	// OnCascade receives the report of every resolution pass.
	OnCascade func(core.CascadeReport)
}

// Game implements platformcore.Game for one level.
type Game struct {
	opts  Options
	level levels.Level
	rng   *rand.Rand

	engine *core.Engine
	detach func()
	runOn  bool

	cursor    core.Coord
	group     []core.BlockID
	hinted    core.BlockID
	idleTicks int

	phase     phase
	moves     int
	movesUsed int
	gameOver  bool
	won       bool
	paused    bool
	failure   string

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game for level.
func New(level levels.Level, opts Options) *Game {
	if opts.Config == (config.GameConfig{}) {
		opts.Config = config.DefaultGameConfig()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Game{opts: opts, level: level}
}

// ID returns the game identifier, the level id.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.level.Name != "" {
		return g.level.Name
	}
	return g.level.ID
}

// Engine returns the engine of the current run.
func (g *Game) Engine() *core.Engine {
	return g.engine
}

// Cursor returns the cursor position.
func (g *Game) Cursor() core.Coord {
	return g.cursor
}

// Reset starts a new run. A run in progress is reported as abandoned.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) error {
	g.Abandon()
	g.discardEngine()

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.phase = phaseIdle
	g.moves = max(g.level.Moves+g.opts.Config.Rules.ExtraMoves, 1)
	g.movesUsed = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.failure = ""
	g.group = nil
	g.hinted = 0
	g.idleTicks = 0

	svc := core.Services{
		Sound:    g.opts.Sound,
		Logger:   g.opts.Logger,
		Reporter: g.opts.Reporter,
	}
	if g.opts.NewKeeper != nil {
		keeper, err := g.opts.NewKeeper(g.level.ID, cfg.Seed)
		if err != nil {
			// Play on with the in-memory counter.
			g.opts.Logger.Error("score keeper unavailable", "level", g.level.ID, "error", err)
		} else {
			svc.Score = keeper
		}
	}

	e, err := g.level.Build(svc, g.opts.Config.Tuning())
	if err != nil {
		g.gameOver = true
		g.failure = err.Error()
		return fmt.Errorf("blockpop: reset %s: %w", g.level.ID, err)
	}
	g.engine = e
	if g.opts.OnEngine != nil {
		g.detach = g.opts.OnEngine(e)
	}
	g.runOn = true

	g.cursor = core.C(e.Grid().W()/2, e.Grid().H()/2)
	g.checkScreenSize()
	g.ensureMoves()
	g.refreshSelection()
	g.opts.Logger.Info("run started", "level", g.level.ID, "seed", cfg.Seed, "moves", g.moves)
	return nil
}

func (g *Game) discardEngine() {
	if g.detach != nil {
		g.detach()
		g.detach = nil
	}
	if g.engine != nil {
		g.engine.Close()
		g.engine = nil
	}
}

// Abandon ends a run in progress without a result.
func (g *Game) Abandon() {
	if !g.runOn {
		return
	}
	g.finish(Result{Abandoned: true})
}

func (g *Game) finish(r Result) {
	g.runOn = false
	r.LevelID = g.level.ID
	r.Score = g.engine.Score()
	r.MovesUsed = g.movesUsed
	g.opts.Logger.Info("run finished", "level", r.LevelID, "score", r.Score, "won", r.Won, "abandoned", r.Abandoned)
	if g.opts.OnFinish != nil {
		g.opts.OnFinish(r)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if in.Has(platformcore.ActionRestart) && g.gameOver && g.failure == "" {
		if err := g.Reset(platformcore.RuntimeConfig{
			ScreenW: g.screenW,
			ScreenH: g.screenH,
			Seed:    g.rng.Int63(),
		}); err != nil {
			g.opts.Logger.Error("restart failed", "level", g.level.ID, "error", err)
		}
		return g.result()
	}

	if in.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.engine == nil || g.paused {
		return g.result()
	}

	g.engine.Advance()

	switch g.phase {
	case phaseIdle:
		if !g.gameOver {
			g.handleInput(in)
		}
	case phaseResolving:
		if !g.engine.Animator().Busy() {
			if g.collapse() {
				g.phase = phaseFalling
			} else {
				g.settled()
			}
		}
	case phaseFalling:
		if !g.engine.Animator().Busy() {
			g.settled()
		}
	}

	return g.result()
}

func (g *Game) result() platformcore.StepResult {
	return platformcore.StepResult{
		State:   g.State(),
		Settled: g.phase == phaseIdle && (g.engine == nil || !g.engine.Animator().Busy()),
	}
}

func (g *Game) handleInput(in platformcore.InputFrame) {
	if in.Empty() {
		g.idleTicks++
		if hint := g.opts.Config.Timing.HintAfter; hint > 0 && g.idleTicks == hint {
			g.showHint()
		}
		return
	}
	g.idleTicks = 0
	g.clearHint()

	dx, dy := 0, 0
	switch {
	case in.Has(platformcore.ActionLeft):
		dx = -1
	case in.Has(platformcore.ActionRight):
		dx = 1
	case in.Has(platformcore.ActionUp):
		dy = -1
	case in.Has(platformcore.ActionDown):
		dy = 1
	}
	if dx != 0 || dy != 0 {
		g.moveCursor(dx, dy)
	}

	if in.Has(platformcore.ActionConfirm) {
		g.confirm()
	}
}

func (g *Game) moveCursor(dx, dy int) {
	grid := g.engine.Grid()
	next := core.C(
		platformcore.Clamp(g.cursor.X+dx, 0, grid.W()-1),
		platformcore.Clamp(g.cursor.Y+dy, 0, grid.H()-1),
	)
	if next == g.cursor {
		return
	}
	g.cursor = next
	g.refreshSelection()
}

// confirm spends a move on the group under the cursor.
func (g *Game) confirm() {
	b := g.engine.BlockAt(g.cursor)
	if b == nil {
		return
	}
	b.OnInput()

	requests, ok := g.popRequests(b)
	if !ok {
		b.Shake()
		return
	}

	g.clearSelection()
	report := g.engine.ResolveWith(requests)
	if g.opts.OnCascade != nil {
		g.opts.OnCascade(report)
	}
	g.opts.Logger.Debug("pass resolved",
		"cursor", g.cursor, "popped", len(report.Popped), "damaged", len(report.Damaged),
		"waves", report.Waves, "score", report.Score)

	g.moves--
	g.movesUsed++
	g.phase = phaseResolving
}

// popRequests returns what confirming on b pops, or false when the move
// is not allowed.
func (g *Game) popRequests(b core.Block) ([]core.PopRequest, bool) {
	switch b.(type) {
	case *core.Rocket:
		return []core.PopRequest{{Block: b}}, true
	case *core.SimpleBlock:
	default:
		return nil, false
	}

	group := g.groupAt(b.Slot())
	rules := g.opts.Config.Rules
	if len(group) < rules.MinGroup {
		return nil, false
	}

	requests := make([]core.PopRequest, 0, len(group))
	for _, m := range group {
		requests = append(requests, core.PopRequest{Block: m})
	}
	if d, ok := g.rocketFor(group); ok {
		requests[0].Replacement = &d
	}
	return requests, true
}

// rocketFor picks the rocket a group of this size and shape leaves behind.
func (g *Game) rocketFor(group []core.Block) (core.Descriptor, bool) {
	rules := g.opts.Config.Rules
	n := len(group)
	switch {
	case rules.BilinearGroup > 0 && n >= rules.BilinearGroup:
		return core.RocketOf(core.OrientationBilinear), true
	case rules.RocketGroup > 0 && n >= rules.RocketGroup:
		minX, maxX, minY, maxY := bounds(group)
		if maxX-minX >= maxY-minY {
			return core.RocketOf(core.OrientationHorizontal), true
		}
		return core.RocketOf(core.OrientationVertical), true
	}
	return core.Descriptor{}, false
}

// settled runs once the board is still again after a move.
func (g *Game) settled() {
	g.phase = phaseIdle
	if err := g.engine.Grid().CheckLinks(); err != nil {
		g.opts.Logger.Error("board links broken", "error", err)
	}

	score := g.engine.Score()
	switch {
	case g.level.Target > 0 && score >= g.level.Target:
		g.won = true
		g.gameOver = true
		g.finish(Result{Won: true})
		return
	case g.moves <= 0:
		g.gameOver = true
		g.finish(Result{})
		return
	}

	g.ensureMoves()
	g.refreshSelection()
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Target:    g.level.Target,
		MovesLeft: g.moves,
		GameOver:  g.gameOver,
		Won:       g.won,
		Paused:    g.paused,
	}
	if g.engine != nil {
		st.Score = g.engine.Score()
	}
	return st
}

func (g *Game) checkScreenSize() {
	if g.engine == nil || g.screenW == 0 || g.screenH == 0 {
		g.tooSmall = false
		return
	}
	w, h := boardSize(g.engine.Grid())
	g.tooSmall = g.screenW < w+2 || g.screenH < h+hudHeight+2
}

// Resize updates the screen dimensions.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.checkScreenSize()
}
