package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestEmbeddedMatchesDefaultConfig(t *testing.T) {
	if got := embedded(); !reflect.DeepEqual(got, DefaultConfig()) {
		t.Errorf("embedded defaults differ from DefaultConfig():\n%+v\n%+v", got, DefaultConfig())
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFileLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	writeFile(t, path, `
log:
  level: debug
render:
  clouds: false
  palette:
    pipe: bright_green
server:
  idle_timeout: 90s
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if cfg.Path != path {
		t.Errorf("Path = %q, expected %q", cfg.Path, path)
	}
	if cfg.Log.Level != "debug" || cfg.Render.Clouds {
		t.Errorf("overrides not applied: level=%q clouds=%v", cfg.Log.Level, cfg.Render.Clouds)
	}
	if cfg.Render.Palette.Pipe != "bright_green" {
		t.Errorf("palette.pipe = %q, expected bright_green", cfg.Render.Palette.Pipe)
	}
	if cfg.Server.IdleTimeout != 90*time.Second {
		t.Errorf("idle_timeout = %v, expected 90s", cfg.Server.IdleTimeout)
	}

	// Untouched keys keep their defaults.
	if cfg.Runtime.TickRate != 60 {
		t.Errorf("tick_rate = %d, expected 60", cfg.Runtime.TickRate)
	}
	if cfg.Render.Palette.Bird != "bright_yellow" {
		t.Errorf("palette.bird = %q, expected bright_yellow", cfg.Render.Palette.Bird)
	}
	if cfg.Server.Address != ":23234" {
		t.Errorf("address = %q, expected :23234", cfg.Server.Address)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"broken yaml", "render: [clouds", "failed to parse"},
		{"unknown color", "render:\n  palette:\n    bird: chartreuse\n", "unknown color"},
		{"tick rate", "runtime:\n  tick_rate: 0\n", "tick_rate"},
		{"log level", "log:\n  level: loud\n", "log.level"},
		{"negative timeout", "server:\n  idle_timeout: -5s\n", "idle_timeout"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".yaml")
			writeFile(t, path, tc.content)

			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.errText) {
				t.Errorf("error %q does not mention %q", err, tc.errText)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	userPath := filepath.Join(home, ".flappy", FileName)
	localPath := filepath.Join(work, "configs", "flappy.yaml")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("with no files Path = %q, expected the embedded default", cfg.Path)
	}

	writeFile(t, localPath, "runtime:\n  tick_rate: 30\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Runtime.TickRate != 30 {
		t.Errorf("tick_rate = %d, expected the local file's 30", cfg.Runtime.TickRate)
	}

	writeFile(t, userPath, "runtime:\n  tick_rate: 45\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Runtime.TickRate != 45 || cfg.Path != userPath {
		t.Errorf("tick_rate = %d from %q, expected the user file to win", cfg.Runtime.TickRate, cfg.Path)
	}

	// A broken user file falls through to the next location.
	writeFile(t, userPath, "runtime: [")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Runtime.TickRate != 30 {
		t.Errorf("tick_rate = %d, expected fallback to the local file", cfg.Runtime.TickRate)
	}

	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "runtime:\n  seed: 77\n")
	cfg, err = Load(custom)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Runtime.Seed != 77 || cfg.Runtime.TickRate != 60 {
		t.Errorf("custom path gave seed=%d tick_rate=%d", cfg.Runtime.Seed, cfg.Runtime.TickRate)
	}
}

func TestMarshalWritesReadableDurations(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	out := string(data)
	for _, want := range []string{"tick_rate: 60", "idle_timeout: 10m0s", "bird: bright_yellow"} {
		if !strings.Contains(out, want) {
			t.Errorf("marshalled config missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "path") {
		t.Error("Path should not be written")
	}
}
