package blockpop

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vovakirdan/blockpop/internal/config"
	platformcore "github.com/vovakirdan/blockpop/internal/core"
	"github.com/vovakirdan/blockpop/internal/games/blockpop/core"
	"github.com/vovakirdan/blockpop/internal/games/blockpop/levels"
	"github.com/vovakirdan/blockpop/internal/games/blockpop/levels/formats"
)

func testLevel(t *testing.T, moves, target int, colors string, rows ...string) levels.Level {
	t.Helper()
	var sb strings.Builder
	fmt.Fprintf(&sb, "id: test\nname: Test\nsize: { w: %d, h: %d }\n", len(strings.Fields(rows[0])), len(rows))
	fmt.Fprintf(&sb, "moves: %d\ntarget: %d\ncolors: [%s]\nlayout:\n", moves, target, colors)
	for _, r := range rows {
		fmt.Fprintf(&sb, "  - %q\n", r)
	}
	parsed, err := formats.ParseYAML([]byte(sb.String()))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	return levels.Level{Level: parsed}
}

func testConfig() config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Timing.HintAfter = 0
	return cfg
}

func newTestGame(t *testing.T, level levels.Level, opts Options) *Game {
	t.Helper()
	if opts.Config == (config.GameConfig{}) {
		opts.Config = testConfig()
	}
	g := New(level, opts)
	if err := g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 7}); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return g
}

func press(g *Game, actions ...platformcore.Action) platformcore.StepResult {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 500; i++ {
		if press(g).Settled {
			return
		}
	}
	t.Fatal("game did not settle")
}

func TestConfirmPopsGroupAndRefills(t *testing.T) {
	g := newTestGame(t, testLevel(t, 10, 0, "blue",
		"R R R",
		"G B G",
		"B G B",
	), Options{})

	press(g, platformcore.ActionUp)
	if g.Cursor() != core.C(1, 0) {
		t.Fatalf("cursor = %s, expected (1,0)", g.Cursor())
	}
	if !g.Engine().BlockAt(core.C(0, 0)).IsHighlighted() {
		t.Error("group member should be highlighted")
	}
	if !g.Engine().BlockAt(core.C(1, 0)).IsSelected() {
		t.Error("cursor block should be selected")
	}

	press(g, platformcore.ActionConfirm)
	settle(t, g)

	st := g.State()
	if st.MovesLeft != 9 {
		t.Errorf("MovesLeft = %d, expected 9", st.MovesLeft)
	}
	if st.Score != 3 {
		t.Errorf("Score = %d, expected 3", st.Score)
	}
	for x := 0; x < 3; x++ {
		b, ok := g.Engine().BlockAt(core.C(x, 0)).(*core.SimpleBlock)
		if !ok || b.Color() != core.ColorBlue {
			t.Errorf("top row should be refilled with blue, got %v at x=%d", b, x)
		}
	}
	if err := g.Engine().Grid().CheckLinks(); err != nil {
		t.Errorf("CheckLinks: %v", err)
	}
}

func TestLargeGroupLeavesRocket(t *testing.T) {
	g := newTestGame(t, testLevel(t, 10, 0, "green",
		"R R R R R",
		"G B G B G",
	), Options{})

	press(g, platformcore.ActionUp)
	press(g, platformcore.ActionConfirm)
	settle(t, g)

	r, ok := g.Engine().BlockAt(core.C(2, 0)).(*core.Rocket)
	if !ok {
		t.Fatalf("tapped slot should hold a rocket, got %v", g.Engine().BlockAt(core.C(2, 0)))
	}
	if r.Orientation() != core.OrientationHorizontal {
		t.Errorf("orientation = %s, expected horizontal", r.Orientation())
	}
	for _, x := range []int{0, 1, 3, 4} {
		if _, ok := g.Engine().BlockAt(core.C(x, 0)).(*core.SimpleBlock); !ok {
			t.Errorf("slot (%d,0) should be respawned", x)
		}
	}
}

func TestConfirmOnStoneIsRejected(t *testing.T) {
	g := newTestGame(t, testLevel(t, 5, 0, "red",
		"R B R",
		"B S Y",
		"G G G",
	), Options{})

	press(g, platformcore.ActionConfirm)

	stone, ok := g.Engine().BlockAt(core.C(1, 1)).(*core.Stone)
	if !ok {
		t.Fatal("cursor should start on the stone")
	}
	if !stone.Pose().Shaking {
		t.Error("rejected move should shake the block")
	}
	if g.State().MovesLeft != 5 {
		t.Errorf("rejected move should not spend a move, MovesLeft = %d", g.State().MovesLeft)
	}
}

func TestGravityRespectsStones(t *testing.T) {
	g := newTestGame(t, testLevel(t, 5, 0, "purple",
		"R Y",
		"S G",
		"G G",
	), Options{})

	e := g.Engine()
	red := e.BlockAt(core.C(0, 0)).ID()
	yellow := e.BlockAt(core.C(1, 0)).ID()

	press(g, platformcore.ActionConfirm)
	settle(t, g)

	if b := e.BlockAt(core.C(0, 2)); b != nil {
		t.Errorf("nothing should fall across the stone, got %v", b)
	}
	if b := e.BlockAt(core.C(0, 0)); b == nil || b.ID() != red {
		t.Error("block above the stone should stay put")
	}
	if b := e.BlockAt(core.C(1, 2)); b == nil || b.ID() != yellow {
		t.Error("yellow block should fall to the bottom of its column")
	}
	stone, ok := e.BlockAt(core.C(0, 1)).(*core.Stone)
	if !ok || stone.Stage() != core.StoneDamagedLittle {
		t.Errorf("stone should take one hit, got %v", e.BlockAt(core.C(0, 1)))
	}
	if got := g.State().Score; got != 23 {
		t.Errorf("Score = %d, expected 3 pops + 20 for the stone hit", got)
	}
}

func TestWinReportsResultAndKeepsScore(t *testing.T) {
	var results []Result
	keeper := &core.ScoreCounter{}
	var keeperLevel string

	g := newTestGame(t, testLevel(t, 5, 3, "blue", "R R R"), Options{
		NewKeeper: func(levelID string, seed int64) (core.ScoreKeeper, error) {
			keeperLevel = levelID
			return keeper, nil
		},
		OnFinish: func(r Result) { results = append(results, r) },
	})

	press(g, platformcore.ActionConfirm)
	settle(t, g)

	st := g.State()
	if !st.GameOver || !st.Won {
		t.Fatalf("state = %+v, expected won", st)
	}
	if len(results) != 1 || !results[0].Won || results[0].Score != 3 || results[0].MovesUsed != 1 {
		t.Errorf("results = %+v", results)
	}
	if keeperLevel != "test" || keeper.Total() != 3 {
		t.Errorf("keeper for %q got %d, expected 3", keeperLevel, keeper.Total())
	}

	// Input is ignored once the run is over.
	press(g, platformcore.ActionConfirm)
	if g.State().MovesLeft != 4 {
		t.Errorf("finished run should not take moves, MovesLeft = %d", g.State().MovesLeft)
	}
}

func TestOutOfMovesAndRestart(t *testing.T) {
	var results []Result
	g := newTestGame(t, testLevel(t, 1, 100, "blue", "R R R"), Options{
		OnFinish: func(r Result) { results = append(results, r) },
	})

	press(g, platformcore.ActionConfirm)
	settle(t, g)

	st := g.State()
	if !st.GameOver || st.Won {
		t.Fatalf("state = %+v, expected lost", st)
	}
	if len(results) != 1 || results[0].Won || results[0].Abandoned {
		t.Fatalf("results = %+v", results)
	}

	press(g, platformcore.ActionRestart)
	st = g.State()
	if st.GameOver || st.MovesLeft != 1 || st.Score != 0 {
		t.Errorf("restart state = %+v", st)
	}
	if len(results) != 1 {
		t.Errorf("a finished run must not be reported twice, got %+v", results)
	}
}

func TestResetAbandonsRunInProgress(t *testing.T) {
	var results []Result
	var engines, detached int
	g := newTestGame(t, testLevel(t, 5, 0, "blue", "R R B"), Options{
		OnFinish: func(r Result) { results = append(results, r) },
		OnEngine: func(*core.Engine) func() {
			engines++
			return func() { detached++ }
		},
	})

	if err := g.Reset(platformcore.RuntimeConfig{Seed: 1}); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(results) != 1 || !results[0].Abandoned {
		t.Errorf("results = %+v, expected one abandoned run", results)
	}
	if engines != 2 || detached != 1 {
		t.Errorf("engines built %d, detached %d", engines, detached)
	}
}

func TestPauseFreezesTheBoard(t *testing.T) {
	g := newTestGame(t, testLevel(t, 5, 0, "blue", "R R B"), Options{})

	press(g, platformcore.ActionPause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	press(g, platformcore.ActionLeft)
	if g.Cursor() != core.C(1, 0) {
		t.Errorf("paused game moved the cursor to %s", g.Cursor())
	}
	press(g, platformcore.ActionPause)
	press(g, platformcore.ActionLeft)
	if g.Cursor() != core.C(0, 0) {
		t.Errorf("cursor = %s, expected (0,0)", g.Cursor())
	}
}

func TestCascadeReportsReachObserver(t *testing.T) {
	var reports []core.CascadeReport
	g := newTestGame(t, testLevel(t, 5, 0, "blue", "R H G"), Options{
		OnCascade: func(r core.CascadeReport) { reports = append(reports, r) },
	})

	// cursor starts on the rocket
	press(g, platformcore.ActionConfirm)
	settle(t, g)

	if len(reports) != 1 {
		t.Fatalf("reports = %d, expected 1", len(reports))
	}
	if n := len(reports[0].Popped); n != 3 {
		t.Errorf("rocket should pop the whole row, popped %d", n)
	}
}

func TestRenderDrawsBoard(t *testing.T) {
	g := newTestGame(t, testLevel(t, 5, 0, "blue", "R S H"), Options{})

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Test", "Moves 5", "●", "█", "↔", "["} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}

	g.Resize(5, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("tiny screen should show the size warning")
	}
}
