package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionFlap},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionFlap},
		{"w", runeKey('w'), core.ActionFlap},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionRuns},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"b", runeKey('b'), core.ActionBack},
		{"ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionScreenshot},
		{"unbound", runeKey('x'), core.ActionNone},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKey(tc.msg); got != tc.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeySpace}, &frame)
	km.MapKeyToFrame(runeKey('x'), &frame)
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyTab}, &frame)
	km.MapKeyToFrame(runeKey('q'), &frame)

	if frame.Len() != 2 {
		t.Fatalf("frame has %d events, expected 2: %+v", frame.Len(), frame.Events)
	}
	if frame.Events[0].Kind != core.InputFlap || frame.Events[1].Kind != core.InputQuit {
		t.Errorf("events out of order: %+v", frame.Events)
	}
}

func TestCellToWorld(t *testing.T) {
	tests := []struct {
		name       string
		cx, cy     int
		cols, rows int
		x, y       float64
		ok         bool
	}{
		{"origin cell", 0, 0, 80, 24, 5, 12.5, true},
		{"last cell", 79, 23, 80, 24, 795, 587.5, true},
		{"one to one", 10, 20, 800, 600, 10.5, 20.5, true},
		{"column out of range", 80, 0, 80, 24, 0, 0, false},
		{"negative row", 0, -1, 80, 24, 0, 0, false},
		{"empty screen", 0, 0, 0, 0, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, ok := CellToWorld(tc.cx, tc.cy, tc.cols, tc.rows, 800, 600)
			if ok != tc.ok || x != tc.x || y != tc.y {
				t.Errorf("CellToWorld(%d, %d) = (%v, %v, %v), expected (%v, %v, %v)",
					tc.cx, tc.cy, x, y, ok, tc.x, tc.y, tc.ok)
			}
		})
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.MouseMsg
		pushed bool
	}{
		{"left press", tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, true},
		{"left release", tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, false},
		{"right press", tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, false},
		{"motion", tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionMotion}, false},
		{"outside playfield", tea.MouseMsg{X: 40, Y: 30, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			pushed := km.MapMouseToFrame(tc.msg, 80, 24, 800, 600, &frame)
			if pushed != tc.pushed || frame.Has(core.InputPointerDown) != tc.pushed {
				t.Errorf("pushed = %v, frame = %+v, expected pushed %v", pushed, frame.Events, tc.pushed)
			}
			if pushed {
				ev := frame.Events[0]
				if ev.X != 405 || ev.Y != 312.5 {
					t.Errorf("pointer at (%v, %v), expected (405, 312.5)", ev.X, ev.Y)
				}
			}
		})
	}
}
