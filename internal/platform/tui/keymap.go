package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockpop/internal/core"
)

// actionBinding ties a game action to its keys.
type actionBinding struct {
	action  core.Action
	binding key.Binding
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct {
	quit    key.Binding
	actions []actionBinding
	menu    map[MenuAction]key.Binding
}

// NewKeyMapper creates a key mapper with the default bindings: arrows,
// WASD and vim keys move, Enter or Space pops.
func NewKeyMapper() *KeyMapper {
	bind := func(help string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
	}
	return &KeyMapper{
		quit: bind("quit", "q", "ctrl+c"),
		actions: []actionBinding{
			{core.ActionUp, bind("up", "up", "w", "k")},
			{core.ActionDown, bind("down", "down", "s", "j")},
			{core.ActionLeft, bind("left", "left", "a", "h")},
			{core.ActionRight, bind("right", "right", "d", "l")},
			{core.ActionConfirm, bind("pop", "enter", " ")},
			{core.ActionBack, bind("menu", "esc", "b")},
			{core.ActionPause, bind("pause", "p")},
			{core.ActionRestart, bind("restart", "r")},
		},
		menu: map[MenuAction]key.Binding{
			MenuActionUp:         bind("up", "up", "w", "k"),
			MenuActionDown:       bind("down", "down", "s", "j"),
			MenuActionSelect:     bind("play", "enter", " "),
			MenuActionBack:       bind("back", "esc", "b"),
			MenuActionScoreboard: bind("scores", "tab"),
		},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.quit) {
		return core.ActionQuit, true
	}
	for _, ab := range km.actions {
		if key.Matches(msg, ab.binding) {
			return ab.action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	if key.Matches(msg, km.quit) {
		return MenuActionQuit
	}
	for a := MenuActionUp; a < MenuActionQuit; a++ {
		if key.Matches(msg, km.menu[a]) {
			return a
		}
	}
	return MenuActionNone
}
