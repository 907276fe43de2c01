package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Jump    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Quit    key.Binding
	Kill    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Jump, k.Pause}, {k.Restart, k.Quit}}
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w", "enter"),
			key.WithHelp("space", "flap"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "pause"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
		Kill: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// KeyMapper translates Bubble Tea input messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings, for help rendering.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to an action. While the run is over only
// restart and quit are meaningful; flap keys, enter included, are dropped so
// a late flap cannot start the next run.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, gameOver bool) core.Action {
	switch {
	case key.Matches(msg, km.keys.Kill), key.Matches(msg, km.keys.Quit):
		return core.ActionQuit
	case gameOver && key.Matches(msg, km.keys.Restart):
		return core.ActionRestart
	case gameOver:
		return core.ActionNone
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause
	case key.Matches(msg, km.keys.Jump):
		return core.ActionJump
	}
	return core.ActionNone
}

// MapKeyToFrame queues the action for a key message on frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, gameOver bool, frame *core.InputFrame) bool {
	action := km.MapKey(msg, gameOver)
	frame.Set(action)
	return action == core.ActionQuit
}

// MapMouse translates a mouse message. A left-button release flaps while
// running and restarts when it lands on the restart button after game over.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, gameOver bool, button core.Rect) core.Action {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return core.ActionNone
	}
	if gameOver {
		if button.Contains(msg.X, msg.Y) {
			return core.ActionRestart
		}
		return core.ActionNone
	}
	return core.ActionJump
}

// IsKill reports whether msg should end the whole program.
func (km *KeyMapper) IsKill(msg tea.KeyMsg) bool {
	return key.Matches(msg, km.keys.Kill)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
