package core

// Action represents a semantic game action, abstracted from physical input.
// The simulation only ever sees these categories, never keys or mouse buttons.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, Up, Enter, W, mouse release - start a climb
	ActionPause          // P, Pause - toggle pause
	ActionRestart        // R or the Restart button on the game-over view
	ActionQuit           // Q, Esc, Ctrl+C - terminate
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the queue of actions delivered during one tick, in arrival
// order. Order and multiplicity matter: two pause presses in one tick
// toggle twice, and a quit stops processing of the actions behind it.
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{}
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set appends an action to the frame. ActionNone is dropped.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// Has returns true if the given action was delivered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Actions returns the queued actions in arrival order.
func (f InputFrame) Actions() []Action {
	return f.actions
}

// Len returns the number of queued actions.
func (f InputFrame) Len() int {
	return len(f.actions)
}

// Clear resets the frame for the next tick, keeping its capacity.
func (f *InputFrame) Clear() {
	f.actions = f.actions[:0]
}

// Clone creates an independent copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	if len(f.actions) == 0 {
		return InputFrame{}
	}
	clone := make([]Action, len(f.actions))
	copy(clone, f.actions)
	return InputFrame{actions: clone}
}
