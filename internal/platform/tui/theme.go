package tui

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// ThemeFromConfig builds the game palette from the render section.
// Empty or unknown color names keep the stock color; Validate has already
// rejected unknown names for loaded files.
func ThemeFromConfig(rc config.RenderConfig) flappy.Theme {
	t := flappy.DefaultTheme()
	t.Clouds = rc.Clouds

	slots := map[string]*core.Color{
		"bird":        &t.Bird,
		"beak":        &t.Beak,
		"pipe":        &t.Pipe,
		"cap":         &t.Cap,
		"grass":       &t.Grass,
		"dirt":        &t.Dirt,
		"cloud":       &t.Cloud,
		"text":        &t.Text,
		"title":       &t.Title,
		"accent":      &t.Accent,
		"danger":      &t.Danger,
		"flap_burst":  &t.FlapBurst,
		"score_burst": &t.ScoreBurst,
		"crash_burst": &t.CrashBurst,
	}
	for _, e := range rc.Palette.Entries() {
		if e[1] == "" {
			continue
		}
		if c, ok := core.ParseColor(e[1]); ok {
			*slots[e[0]] = c
		}
	}
	return t
}
