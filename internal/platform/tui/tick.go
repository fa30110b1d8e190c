// Package tui provides the Bubble Tea front end for blockpop.
// It runs the tick loop, maps keys to actions and draws screen buffers.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxTickRate caps the simulation rate; terminals gain nothing above it.
const maxTickRate = 120

// TickMsg advances the game by one step.
type TickMsg time.Time

// tickInterval returns the delay between ticks for rate, clamped to
// [1, maxTickRate] ticks per second.
func tickInterval(rate int) time.Duration {
	rate = min(max(rate, 1), maxTickRate)
	return time.Second / time.Duration(rate)
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
