package core

import "fmt"

// Action represents a semantic platform action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionFlap              // Space, W, Up - flap, start or restart
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionRuns              // Tab - toggle the recent runs board
	ActionBack              // B, Escape - close an overlay
	ActionScreenshot        // Ctrl+S - dump the screen buffer to a file
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionQuit:
		return "Quit"
	case ActionRuns:
		return "Runs"
	case ActionBack:
		return "Back"
	case ActionScreenshot:
		return "Screenshot"
	default:
		return "Unknown"
	}
}

// InputKind enumerates the input events the simulation understands.
type InputKind int

const (
	InputQuit        InputKind = iota // Host asked the loop to stop
	InputFlap                         // Flap key went down
	InputPointerDown                  // Primary pointer pressed at (X, Y)
)

// String returns a human-readable name for the input kind.
func (k InputKind) String() string {
	switch k {
	case InputQuit:
		return "Quit"
	case InputFlap:
		return "Flap"
	case InputPointerDown:
		return "PointerDown"
	default:
		return fmt.Sprintf("InputKind(%d)", int(k))
	}
}

// InputEvent is a single discrete input. Pointer coordinates are in world units.
type InputEvent struct {
	Kind InputKind
	X, Y float64
}

// InputFrame collects the input events delivered during one simulation tick,
// in arrival order.
type InputFrame struct {
	Events []InputEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Events: make([]InputEvent, 0, 4),
	}
}

// Push appends an event to the frame.
func (f *InputFrame) Push(ev InputEvent) {
	f.Events = append(f.Events, ev)
}

// Flap appends a flap key event.
func (f *InputFrame) Flap() {
	f.Push(InputEvent{Kind: InputFlap})
}

// PointerDown appends a pointer press at world coordinates (x, y).
func (f *InputFrame) PointerDown(x, y float64) {
	f.Push(InputEvent{Kind: InputPointerDown, X: x, Y: y})
}

// Quit appends a quit event.
func (f *InputFrame) Quit() {
	f.Push(InputEvent{Kind: InputQuit})
}

// Has returns true if an event of the given kind was delivered this frame.
func (f InputFrame) Has(k InputKind) bool {
	for _, ev := range f.Events {
		if ev.Kind == k {
			return true
		}
	}
	return false
}

// Len returns the number of queued events.
func (f InputFrame) Len() int {
	return len(f.Events)
}

// Clear resets the frame for the next tick, keeping its capacity.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{Events: make([]InputEvent, len(f.Events))}
	copy(clone.Events, f.Events)
	return clone
}
