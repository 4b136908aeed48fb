package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/zone-arena/internal/core"
)

// DefaultHoldWindow is how long a key counts as held after its last press.
// Terminals report presses and auto-repeats but no releases, so the window has
// to outlast the initial repeat delay.
const DefaultHoldWindow = 250 * time.Millisecond

// Command is a host-level request derived from a key. It never reaches the
// simulation as an action.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandPause   // Toggle pause
	CommandRestart // Only honored after game over
	CommandBack    // Back to the setup menu
)

// KeyMapper translates Bubble Tea key messages to game actions and commands.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action or a command.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, Command) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionNone, CommandQuit
	case "p", "esc":
		return core.ActionNone, CommandPause
	case "r":
		return core.ActionNone, CommandRestart
	case "b":
		return core.ActionNone, CommandBack
	}

	switch msg.String() {
	case "w", "up":
		return core.ActionMoveUp, CommandNone
	case "s", "down":
		return core.ActionMoveDown, CommandNone
	case "a", "left":
		return core.ActionMoveLeft, CommandNone
	case "d", "right":
		return core.ActionMoveRight, CommandNone
	case " ":
		return core.ActionDash, CommandNone
	case "e":
		return core.ActionGrenade, CommandNone
	case "f":
		return core.ActionFire, CommandNone
	}

	return core.ActionNone, CommandNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
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
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// HoldTracker turns discrete key presses into held actions: an action stays
// held until window has passed since its last press.
type HoldTracker struct {
	window time.Duration
	last   map[core.Action]time.Time
}

// NewHoldTracker creates a tracker. A non-positive window uses DefaultHoldWindow.
func NewHoldTracker(window time.Duration) *HoldTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldTracker{
		window: window,
		last:   make(map[core.Action]time.Time),
	}
}

// Press records a press or auto-repeat of a.
func (h *HoldTracker) Press(a core.Action, at time.Time) {
	if a == core.ActionNone {
		return
	}
	h.last[a] = at
}

// Release drops every held action.
func (h *HoldTracker) Release() {
	clear(h.last)
}

// Apply sets the actions held at now on f, releasing everything else.
func (h *HoldTracker) Apply(f *core.InputFrame, now time.Time) {
	f.Clear()
	for a, t := range h.last {
		if now.Sub(t) <= h.window {
			f.Set(a)
		} else {
			delete(h.last, a)
		}
	}
}
