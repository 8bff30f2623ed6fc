package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration. It matches the embedded
// defaults/flappy.yaml and is used if that file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Runtime: RuntimeConfig{
			TickRate: 60,
			Seed:     0,
		},
		Log: LogConfig{
			Level: "info",
		},
		Render: RenderConfig{
			Clouds: true,
			Palette: PaletteConfig{
				Bird:       "bright_yellow",
				Beak:       "orange",
				Pipe:       "green",
				Cap:        "bright_green",
				Grass:      "bright_green",
				Dirt:       "yellow",
				Cloud:      "white",
				Text:       "bright_white",
				Title:      "bright_yellow",
				Accent:     "bright_cyan",
				Danger:     "bright_red",
				FlapBurst:  "orange",
				ScoreBurst: "bright_yellow",
				CrashBurst: "red",
			},
		},
		Server: ServerConfig{
			Address:     ":23234",
			HostKey:     ".ssh/flappy_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
	}
}
