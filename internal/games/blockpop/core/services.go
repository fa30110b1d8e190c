package core

import (
	"io"

	"github.com/charmbracelet/log"
)

// ScoreKeeper receives score increments.
type ScoreKeeper interface {
	IncreaseScore(amount int) error
}

// ScoreCounter is an in-memory ScoreKeeper.
type ScoreCounter struct {
	total int
}

// IncreaseScore adds amount to the running total.
func (c *ScoreCounter) IncreaseScore(amount int) error {
	c.total += amount
	return nil
}

// Total returns the accumulated score.
func (c *ScoreCounter) Total() int {
	return c.total
}

// Reset zeroes the counter.
func (c *ScoreCounter) Reset() {
	c.total = 0
}

// Animation names a presentation effect and its length in ticks.
type Animation struct {
	Name  string
	Ticks int
}

// Animator schedules presentation effects. Completion callbacks are invoked
// later, on the same goroutine that calls Advance.
type Animator interface {
	Play(owner BlockID, anim Animation, done func())
	Cancel(owner BlockID)
	Advance()
	Busy() bool
}

// SoundPlayer plays a named one-shot sound.
type SoundPlayer interface {
	Play(name string)
}

// ErrorReporter receives faults that were absorbed inside the block lifecycle.
type ErrorReporter interface {
	Report(err error)
}

// ErrorReporterFunc adapts a function to ErrorReporter.
type ErrorReporterFunc func(err error)

// Report calls f(err).
func (f ErrorReporterFunc) Report(err error) { f(err) }

// Services bundles the collaborators blocks talk to. Nil fields are filled
// with defaults by NewEngine.
type Services struct {
	Score    ScoreKeeper
	Animator Animator
	Sound    SoundPlayer
	Logger   *log.Logger
	Reporter ErrorReporter
}

func (s Services) withDefaults() Services {
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}
	if s.Score == nil {
		s.Score = &ScoreCounter{}
	}
	if s.Animator == nil {
		s.Animator = NewTimeline()
	}
	if s.Sound == nil {
		s.Sound = logSound{logger: s.Logger}
	}
	if s.Reporter == nil {
		s.Reporter = ErrorReporterFunc(func(error) {})
	}
	return s
}

type logSound struct {
	logger *log.Logger
}

func (s logSound) Play(name string) {
	s.logger.Debug("sound", "name", name)
}

// fault logs an absorbed error with context and forwards it to the reporter.
func (s Services) fault(msg string, err error, keyvals ...any) {
	s.Logger.Error(msg, append([]any{"error", err}, keyvals...)...)
	s.Reporter.Report(err)
}

// Tuning holds the numbers the rules depend on: score contributions and
// animation lengths in ticks.
type Tuning struct {
	Score  ScoreTable
	Timing TimingTable
}

// ScoreTable lists fixed score contributions.
type ScoreTable struct {
	PopBegan         int // every pop-began notification
	NoEffect         int // silent pops
	RocketSingleAxis int // horizontal or vertical sweep
	RocketBilinear   int // cross sweep
	StoneHit         int // every stone hit, breaking or not
	Replace          int // replace requests that ask for score
}

// TimingTable lists animation lengths in ticks.
type TimingTable struct {
	Move        int
	Select      int
	SimplePop   int
	RocketSweep int
	StoneBreak  int
	Replace     int
}

// DefaultTuning returns the stock rules.
func DefaultTuning() Tuning {
	return Tuning{
		Score: ScoreTable{
			PopBegan:         1,
			NoEffect:         1,
			RocketSingleAxis: 60,
			RocketBilinear:   110,
			StoneHit:         20,
			Replace:          1,
		},
		Timing: TimingTable{
			Move:        8,
			Select:      6,
			SimplePop:   12,
			RocketSweep: 18,
			StoneBreak:  10,
			Replace:     8,
		},
	}
}

// scoreTally wraps a ScoreKeeper and remembers what went through it.
type scoreTally struct {
	inner ScoreKeeper
	total int
}

func (t *scoreTally) IncreaseScore(amount int) error {
	if err := t.inner.IncreaseScore(amount); err != nil {
		return err
	}
	t.total += amount
	return nil
}
