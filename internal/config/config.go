// Package config provides YAML-based configuration loading and live
// reloading for the flappy front ends.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Config is the whole configuration file. Game physics is deliberately
// absent; only presentation and hosting are configurable.
type Config struct {
	Runtime RuntimeConfig `yaml:"runtime"`
	Log     LogConfig     `yaml:"log"`
	Render  RenderConfig  `yaml:"render"`
	Server  ServerConfig  `yaml:"server"`

	// Path is the file the config was read from, empty for the embedded default.
	Path string `yaml:"-"`
}

// RuntimeConfig controls frame pacing and seeding.
type RuntimeConfig struct {
	TickRate int   `yaml:"tick_rate"` // Ticks per second
	Seed     int64 `yaml:"seed"`      // 0 picks a time-based seed
}

// LogConfig controls the charmbracelet logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Empty discards logs in the terminal front end
}

// RenderConfig controls how the world is drawn.
type RenderConfig struct {
	Clouds  bool          `yaml:"clouds"`
	Palette PaletteConfig `yaml:"palette"`
}

// PaletteConfig names a color for each drawable. Empty entries keep the
// built-in color.
type PaletteConfig struct {
	Bird       string `yaml:"bird"`
	Beak       string `yaml:"beak"`
	Pipe       string `yaml:"pipe"`
	Cap        string `yaml:"cap"`
	Grass      string `yaml:"grass"`
	Dirt       string `yaml:"dirt"`
	Cloud      string `yaml:"cloud"`
	Text       string `yaml:"text"`
	Title      string `yaml:"title"`
	Accent     string `yaml:"accent"`
	Danger     string `yaml:"danger"`
	FlapBurst  string `yaml:"flap_burst"`
	ScoreBurst string `yaml:"score_burst"`
	CrashBurst string `yaml:"crash_burst"`
}

// Entries returns the palette as name/value pairs in a stable order.
func (p PaletteConfig) Entries() [][2]string {
	return [][2]string{
		{"bird", p.Bird},
		{"beak", p.Beak},
		{"pipe", p.Pipe},
		{"cap", p.Cap},
		{"grass", p.Grass},
		{"dirt", p.Dirt},
		{"cloud", p.Cloud},
		{"text", p.Text},
		{"title", p.Title},
		{"accent", p.Accent},
		{"danger", p.Danger},
		{"flap_burst", p.FlapBurst},
		{"score_burst", p.ScoreBurst},
		{"crash_burst", p.CrashBurst},
	}
}

// ServerConfig controls the SSH and HTTP front ends.
type ServerConfig struct {
	Address     string        `yaml:"address"`      // SSH listen address
	HostKey     string        `yaml:"host_key"`     // Path to the SSH host key
	IdleTimeout time.Duration `yaml:"idle_timeout"` // Disconnect idle sessions
	HTTP        string        `yaml:"http"`         // Runs API address, empty disables it
}

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the values a file can get wrong.
func (c Config) Validate() error {
	if c.Runtime.TickRate < 1 || c.Runtime.TickRate > 240 {
		return fmt.Errorf("runtime.tick_rate %d out of range [1, 240]", c.Runtime.TickRate)
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	for _, e := range c.Render.Palette.Entries() {
		if e[1] == "" {
			continue
		}
		if _, ok := core.ParseColor(e[1]); !ok {
			return fmt.Errorf("render.palette.%s: unknown color %q", e[0], e[1])
		}
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("server.idle_timeout must not be negative")
	}
	return nil
}
