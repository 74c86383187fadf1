package core

import "time"

// Action represents a semantic viewer action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionPanUp              // Up arrow, W
	ActionPanDown            // Down arrow, S
	ActionPanLeft            // Left arrow, A
	ActionPanRight           // Right arrow, D
	ActionToggleGrid         // G
	ActionToggleDebug        // I
	ActionQuit               // Esc, Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPanUp:
		return "PanUp"
	case ActionPanDown:
		return "PanDown"
	case ActionPanLeft:
		return "PanLeft"
	case ActionPanRight:
		return "PanRight"
	case ActionToggleGrid:
		return "ToggleGrid"
	case ActionToggleDebug:
		return "ToggleDebug"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsPan reports whether the action moves the camera.
func (a Action) IsPan() bool {
	return a >= ActionPanUp && a <= ActionPanRight
}

// InputFrame is the set of actions held during one frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Axis returns the pan direction as (-1|0|1, -1|0|1).
// Opposite keys held together cancel out.
func (f InputFrame) Axis() (dx, dy int) {
	if f.Has(ActionPanLeft) {
		dx--
	}
	if f.Has(ActionPanRight) {
		dx++
	}
	if f.Has(ActionPanUp) {
		dy--
	}
	if f.Has(ActionPanDown) {
		dy++
	}
	return dx, dy
}

// HeldKeys turns key presses into a held-key set.
// Terminals only report presses (with auto-repeat), never releases, so an action
// counts as held until Hold has passed since its last press.
type HeldKeys struct {
	Hold time.Duration
	last map[Action]time.Time
}

// NewHeldKeys creates a tracker with the given hold window.
func NewHeldKeys(hold time.Duration) *HeldKeys {
	return &HeldKeys{
		Hold: hold,
		last: make(map[Action]time.Time),
	}
}

// Press records a press of a at time now.
func (h *HeldKeys) Press(a Action, now time.Time) {
	if a == ActionNone {
		return
	}
	h.last[a] = now
}

// Frame returns the actions still held at time now and forgets expired ones.
func (h *HeldKeys) Frame(now time.Time) InputFrame {
	frame := NewInputFrame()
	for a, t := range h.last {
		if now.Sub(t) < h.Hold {
			frame.Set(a)
			continue
		}
		delete(h.last, a)
	}
	return frame
}

// Release forgets every held action.
func (h *HeldKeys) Release() {
	for a := range h.last {
		delete(h.last, a)
	}
}
