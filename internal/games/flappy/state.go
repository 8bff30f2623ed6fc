package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Mode is the game's top-level state.
type Mode int

const (
	ModeIdle     Mode = iota // Title screen, waiting for the first start
	ModePlaying              // A run is in progress
	ModeGameOver             // The last run ended on a pipe
)

// String returns the mode name used in logs and summaries.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModePlaying:
		return "playing"
	case ModeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Command is what an input event asks the game to do in a given mode.
type Command int

const (
	CmdNone Command = iota
	CmdFlap
	CmdStart
	CmdQuit
)

// Dispatch maps one input event to a command for the current mode.
// Anything the mode does not react to becomes CmdNone.
func Dispatch(m Mode, ev core.InputEvent, p *Params) Command {
	if ev.Kind == core.InputQuit {
		return CmdQuit
	}

	switch m {
	case ModePlaying:
		if ev.Kind == core.InputFlap || ev.Kind == core.InputPointerDown {
			return CmdFlap
		}
	case ModeIdle:
		if pressed(ev, p.StartButton) {
			return CmdStart
		}
	case ModeGameOver:
		if pressed(ev, p.RestartButton) {
			return CmdStart
		}
	}
	return CmdNone
}

// pressed reports whether the event is the flap key or a pointer press
// inside the control.
func pressed(ev core.InputEvent, control core.RectF) bool {
	switch ev.Kind {
	case core.InputFlap:
		return true
	case core.InputPointerDown:
		return control.Contains(ev.X, ev.Y)
	}
	return false
}
