package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// KeyMap holds the bindings of the game screen. It doubles as the help
// bar's source.
type KeyMap struct {
	Flap       key.Binding
	Runs       key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flap, k.Runs, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Flap, k.Runs, k.Back},
		{k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Flap: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space", "flap"),
		),
		Runs: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "recent runs"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea messages to platform actions and input
// events. This centralizes bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit
	case key.Matches(msg, km.keys.Flap):
		return core.ActionFlap
	case key.Matches(msg, km.keys.Runs):
		return core.ActionRuns
	case key.Matches(msg, km.keys.Back):
		return core.ActionBack
	case key.Matches(msg, km.keys.Screenshot):
		return core.ActionScreenshot
	}
	return core.ActionNone
}

// MapKeyToFrame pushes the simulation input for a key onto frame.
// Returns the action so the caller can handle platform-only ones.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) core.Action {
	action := km.MapKey(msg)
	switch action {
	case core.ActionFlap:
		frame.Flap()
	case core.ActionQuit:
		frame.Quit()
	}
	return action
}

// MapMouseToFrame pushes a pointer press for a left button press. Cell
// coordinates are converted to world units at the cell's center, so the
// press lands inside whatever the renderer drew in that cell.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, cols, rows int, worldW, worldH float64, frame *core.InputFrame) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	x, y, ok := CellToWorld(msg.X, msg.Y, cols, rows, worldW, worldH)
	if !ok {
		return false
	}
	frame.PointerDown(x, y)
	return true
}

// CellToWorld maps a terminal cell to the world point at its center.
func CellToWorld(cx, cy, cols, rows int, worldW, worldH float64) (float64, float64, bool) {
	if cols <= 0 || rows <= 0 || cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		return 0, 0, false
	}
	x := (float64(cx) + 0.5) * worldW / float64(cols)
	y := (float64(cy) + 0.5) * worldH / float64(rows)
	return x, y, true
}
