package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

func asciiPalette() *Palette {
	r := lipgloss.NewRenderer(&strings.Builder{})
	r.SetColorProfile(termenv.Ascii)
	return NewPalette(r)
}

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.ColorBlue)
	s.DrawText(0, 1, "xyz")

	got := asciiPalette().RenderScreen(s)
	expected := "abcd  \nxyz   "
	if got != expected {
		t.Errorf("RenderScreen() = %q, expected %q", got, expected)
	}
}

func TestRenderScreenGroupsRuns(t *testing.T) {
	r := lipgloss.NewRenderer(&strings.Builder{})
	r.SetColorProfile(termenv.ANSI256)
	p := NewPalette(r)

	s := core.NewScreen(4, 1)
	s.DrawTextColored(0, 0, "aaaa", core.ColorOrange)

	got := p.RenderScreen(s)
	if strings.Count(got, "\x1b[") != 2 {
		t.Errorf("expected one styled run (open + reset), got %q", got)
	}
	if !strings.Contains(got, "aaaa") {
		t.Errorf("run was split: %q", got)
	}
}

func TestPaletteCoversEveryColor(t *testing.T) {
	p := NewPalette(nil)
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		if _, ok := p.styles[c]; !ok {
			t.Errorf("no style for color %v", c)
		}
	}
}

func TestThemeFromConfig(t *testing.T) {
	rc := config.DefaultConfig().Render
	if got := ThemeFromConfig(rc); got != flappy.DefaultTheme() {
		t.Errorf("default render config should give the stock theme, got %+v", got)
	}

	rc.Clouds = false
	rc.Palette.Pipe = "magenta"
	rc.Palette.CrashBurst = "bright_blue"
	rc.Palette.Text = ""
	got := ThemeFromConfig(rc)

	if got.Clouds {
		t.Error("clouds should be off")
	}
	if got.Pipe != core.ColorMagenta || got.CrashBurst != core.ColorBrightBlue {
		t.Errorf("palette overrides not applied: %+v", got)
	}
	if got.Text != flappy.DefaultTheme().Text {
		t.Errorf("empty entry should keep the stock color, got %v", got.Text)
	}
}
