package core

import (
	"strings"
	"sync/atomic"
)

// Action represents a semantic input, abstracted from physical keys or buttons.
// Hosts translate keyboard/mouse/network input into held actions.
type Action uint16

const (
	ActionNone      Action = iota
	ActionMoveUp           // W, Up arrow
	ActionMoveDown         // S, Down arrow
	ActionMoveLeft         // A, Left arrow
	ActionMoveRight        // D, Right arrow
	ActionFire             // Mouse button / F
	ActionDash             // Space
	ActionGrenade          // E
	actionCount
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveUp:
		return "Up"
	case ActionMoveDown:
		return "Down"
	case ActionMoveLeft:
		return "Left"
	case ActionMoveRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionDash:
		return "Dash"
	case ActionGrenade:
		return "Grenade"
	default:
		return "Unknown"
	}
}

// ParseAction maps a wire name ("up", "fire", ...) to an Action.
// Unknown names return ActionNone.
func ParseAction(name string) Action {
	switch strings.ToLower(name) {
	case "up":
		return ActionMoveUp
	case "down":
		return ActionMoveDown
	case "left":
		return ActionMoveLeft
	case "right":
		return ActionMoveRight
	case "fire":
		return ActionFire
	case "dash":
		return ActionDash
	case "grenade":
		return ActionGrenade
	default:
		return ActionNone
	}
}

// InputFrame is the held-input state seen by one simulation tick:
// the set of currently held actions plus the latest pointer position in arena units.
// It is a plain value so snapshots can be copied freely.
type InputFrame struct {
	held    uint32
	Pointer Vec2
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as held.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.held |= 1 << a
}

// Unset marks an action as released.
func (f *InputFrame) Unset(a Action) {
	f.held &^= 1 << a
}

// Has returns true if the given action is held.
func (f InputFrame) Has(a Action) bool {
	if a == ActionNone || a >= actionCount {
		return false
	}
	return f.held&(1<<a) != 0
}

// Clear releases all actions. The pointer is kept.
func (f *InputFrame) Clear() {
	f.held = 0
}

// Held returns the held actions in declaration order.
func (f InputFrame) Held() []Action {
	var out []Action
	for a := ActionMoveUp; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// InputSource supplies the latest input snapshot to the simulation.
type InputSource interface {
	Load() InputFrame
}

// InputState is the single shared-mutable boundary between asynchronous input
// handlers and the tick. Writers replace the snapshot atomically; the tick only
// loads it.
type InputState struct {
	frame atomic.Pointer[InputFrame]
}

// NewInputState creates an input state holding an empty frame.
func NewInputState() *InputState {
	s := &InputState{}
	s.Store(NewInputFrame())
	return s
}

// Load returns a copy of the latest snapshot.
func (s *InputState) Load() InputFrame {
	if f := s.frame.Load(); f != nil {
		return *f
	}
	return InputFrame{}
}

// Store replaces the snapshot.
func (s *InputState) Store(f InputFrame) {
	s.frame.Store(&f)
}

// Update applies fn to a copy of the current snapshot and publishes the result.
// Concurrent writers are serialized by compare-and-swap.
func (s *InputState) Update(fn func(f *InputFrame)) {
	for {
		old := s.frame.Load()
		var next InputFrame
		if old != nil {
			next = *old
		}
		fn(&next)
		if s.frame.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Reset releases every action and keeps the pointer.
func (s *InputState) Reset() {
	s.Update(func(f *InputFrame) { f.Clear() })
}
