package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockpop/internal/core"
)

// resizer is implemented by games that adapt to a new screen size without
// restarting.
type resizer interface {
	Resize(w, h int)
}

// abandoner is implemented by games that track runs and must be told when
// the player walks away from one.
type abandoner interface {
	Abandon()
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game          core.Game
	screen        *core.Screen
	config        core.RuntimeConfig
	keys          *KeyMapper
	inputFrame    core.InputFrame
	gameState     core.GameState
	screenshotDir string
	quitting      bool
	back          bool // left for the menu rather than quitting
	err           error
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game core.Game, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// WithScreenshotDir sets where ctrl+s writes screen dumps. Empty disables it.
func (m Model) WithScreenshotDir(dir string) Model {
	m.screenshotDir = dir
	return m
}

// Init starts the tick loop. The game must already be reset.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) {
		m.leave()
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// leave abandons the run in progress, if any.
func (m Model) leave() {
	if a, ok := m.game.(abandoner); ok {
		a.Abandon()
	}
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	// Games without resize support restart at the new size.
	if !m.gameState.GameOver {
		if err := m.game.Reset(m.config); err != nil {
			m.err = err
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.screenshotDir == "" {
		return
	}
	m.game.Render(m.screen)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.screenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(m.screenshotDir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// GoingBack reports whether the player left for the menu.
func (m Model) GoingBack() bool {
	return m.back
}

// Config returns the runtime config, updated by resizes.
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// RunOptions configures Run.
type RunOptions struct {
	ScreenshotDir string
}

// RunResult describes how the game screen was left.
type RunResult struct {
	Back   bool
	Config core.RuntimeConfig
}

// Run resets the game and drives it until the player quits or goes back.
func Run(game core.Game, cfg core.RuntimeConfig, opts RunOptions) (RunResult, error) {
	model := NewModel(game, cfg).WithScreenshotDir(opts.ScreenshotDir)
	if err := game.Reset(model.config); err != nil {
		return RunResult{Config: cfg}, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return RunResult{Config: cfg}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return RunResult{Config: cfg}, nil
	}
	return RunResult{Back: m.GoingBack(), Config: m.Config()}, m.err
}
