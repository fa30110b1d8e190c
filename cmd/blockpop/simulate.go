package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	platformcore "github.com/vovakirdan/blockpop/internal/core"
	"github.com/vovakirdan/blockpop/internal/games/blockpop"
	"github.com/vovakirdan/blockpop/internal/games/blockpop/core"
	"github.com/vovakirdan/blockpop/internal/storage"
)

const simulateMaxTicks = 5000

var (
	flagTaps       []string
	flagShowBoard  bool
	flagShowEvents bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <level>",
	Short: "Replay taps on a level without a terminal",
	Long: `Play a level headless. Each --tap moves the cursor to x,y and confirms,
then waits for the board to settle. Events from the notification bus and
a summary of every resolution pass are printed as they happen.

The seed defaults to 1 so runs are reproducible.

Examples:
  blockpop simulate 01-warmup --tap 0,0
  blockpop simulate 03-launch --tap 2,1 --tap 5,1 --board`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringArrayVar(&flagTaps, "tap", nil, "Cell to confirm on, as x,y (repeatable)")
	simulateCmd.Flags().BoolVar(&flagShowBoard, "board", false, "Print the board after every tap")
	simulateCmd.Flags().BoolVar(&flagShowEvents, "events", true, "Print bus events")
}

// parseTap parses an "x,y" cell.
func parseTap(s string) (core.Coord, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return core.Coord{}, fmt.Errorf("invalid tap %q, want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return core.Coord{}, fmt.Errorf("invalid tap %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return core.Coord{}, fmt.Errorf("invalid tap %q: %w", s, err)
	}
	return core.C(x, y), nil
}

func runSimulate(_ *cobra.Command, args []string) error {
	taps := make([]core.Coord, 0, len(flagTaps))
	for _, s := range flagTaps {
		c, err := parseTap(s)
		if err != nil {
			return err
		}
		taps = append(taps, c)
	}

	lvls, err := loadLevels()
	if err != nil {
		return err
	}
	level, err := findLevel(lvls, args[0])
	if err != nil {
		return err
	}
	for _, c := range taps {
		if c.X < 0 || c.Y < 0 || c.X >= level.Width || c.Y >= level.Height {
			return fmt.Errorf("tap %s outside the %dx%d grid", c, level.Width, level.Height)
		}
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	cfg.Timing.HintAfter = 0

	out := os.Stdout
	sim := &simulation{out: out}
	game := blockpop.New(level, blockpop.Options{
		Config:    cfg,
		Logger:    logger,
		OnEngine:  sim.attach,
		OnCascade: sim.report,
		OnFinish:  func(r blockpop.Result) { sim.result = &r },
	})

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}
	fmt.Fprintf(out, "simulation %s level=%s seed=%d\n", storage.NewRunID(), level.ID, seed)
	if err := game.Reset(platformcore.RuntimeConfig{Seed: seed}); err != nil {
		return err
	}
	if err := sim.settle(game); err != nil {
		return err
	}
	if flagShowBoard {
		sim.board(game)
	}

	for i, c := range taps {
		if game.State().GameOver {
			fmt.Fprintf(out, "level over, skipping %d remaining taps\n", len(taps)-i)
			break
		}
		fmt.Fprintf(out, "tap %d at %s\n", i+1, c)
		if err := sim.tap(game, c); err != nil {
			return err
		}
		if err := game.Engine().Grid().CheckLinks(); err != nil {
			return fmt.Errorf("after tap %d: %w", i+1, err)
		}
		if flagShowBoard {
			sim.board(game)
		}
	}

	st := game.State()
	fmt.Fprintf(out, "score=%d moves_left=%d game_over=%t won=%t\n", st.Score, st.MovesLeft, st.GameOver, st.Won)
	stats := game.Engine().Bus().Stats()
	fmt.Fprintf(out, "events pop_began=%d pop_finished=%d replace=%d\n", stats.PopBegan, stats.PopFinished, stats.ReplaceRequested)
	if r := sim.result; r != nil {
		fmt.Fprintf(out, "run finished after %d moves with %d points\n", r.MovesUsed, r.Score)
	}
	game.Abandon()
	return nil
}

// simulation drives a game headless and prints what happens.
type simulation struct {
	out    io.Writer
	result *blockpop.Result
}

func (s *simulation) attach(e *core.Engine) func() {
	if !flagShowEvents {
		return func() {}
	}
	bus := e.Bus()
	offs := []func(){
		bus.OnPopBegan(func(ev core.PopEvent) {
			fmt.Fprintf(s.out, "  pop-began     %-16s %s\n", ev.Block.Descriptor(), ev.Slot)
		}),
		bus.OnPopFinished(func(ev core.PopEvent) {
			line := fmt.Sprintf("  pop-finished  %-16s %s", ev.Block.Descriptor(), ev.Slot)
			if ev.Replacement != nil {
				line += " -> " + ev.Replacement.String()
			}
			fmt.Fprintln(s.out, line)
		}),
		bus.OnReplaceRequested(func(ev core.ReplaceEvent) {
			fmt.Fprintf(s.out, "  replace       %-16s %s -> %s\n", ev.Block.Descriptor(), ev.Slot, ev.Replacement)
		}),
	}
	return func() {
		for _, off := range offs {
			off()
		}
	}
}

func (s *simulation) report(r core.CascadeReport) {
	fmt.Fprintf(s.out, "  pass: popped=%d damaged=%d waves=%d score=+%d\n", len(r.Popped), len(r.Damaged), r.Waves, r.Score)
}

// tap moves the cursor to c one cell per tick, confirms and waits for
// the board to settle.
func (s *simulation) tap(g *blockpop.Game, c core.Coord) error {
	for g.Cursor() != c {
		cur := g.Cursor()
		var a platformcore.Action
		switch {
		case cur.X < c.X:
			a = platformcore.ActionRight
		case cur.X > c.X:
			a = platformcore.ActionLeft
		case cur.Y < c.Y:
			a = platformcore.ActionDown
		default:
			a = platformcore.ActionUp
		}
		step(g, a)
	}

	before := g.State().MovesLeft
	step(g, platformcore.ActionConfirm)
	if g.State().MovesLeft == before {
		fmt.Fprintf(s.out, "  nothing to pop at %s\n", c)
	}
	return s.settle(g)
}

func (s *simulation) settle(g *blockpop.Game) error {
	for i := 0; i < simulateMaxTicks; i++ {
		if step(g).Settled {
			return nil
		}
	}
	return fmt.Errorf("board did not settle within %d ticks", simulateMaxTicks)
}

func (s *simulation) board(g *blockpop.Game) {
	screen := platformcore.NewScreen(80, g.Engine().Grid().H()+8)
	g.Render(screen)
	for y, h := 0, screen.Height(); y < h; y++ {
		if row := strings.TrimRight(screen.Row(y), " "); row != "" {
			fmt.Fprintln(s.out, row)
		}
	}
}

func step(g *blockpop.Game, actions ...platformcore.Action) platformcore.StepResult {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}
