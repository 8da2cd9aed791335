package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/star-catcher/internal/core"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, err := parseStars(defaultStarsYAML)
	if err != nil {
		t.Fatalf("embedded yaml invalid: %v", err)
	}
	if cfg != DefaultStarsConfig() {
		t.Errorf("embedded yaml = %+v\nwant %+v", cfg, DefaultStarsConfig())
	}
}

func TestDefaultValues(t *testing.T) {
	cfg := DefaultStarsConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := cfg.Catcher.MaxX(cfg.Field.Width); got != 440 {
		t.Errorf("MaxX() = %d, want 440", got)
	}
	if got := cfg.TickInterval(); got != 50*time.Millisecond {
		t.Errorf("TickInterval() = %v, want 50ms", got)
	}
	if cfg.Rules.HaltOnMiss {
		t.Error("halt_on_miss should default to false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StarsConfig)
		want   string
	}{
		{"wide catcher", func(c *StarsConfig) { c.Catcher.Width = 600 }, "exceeds field width"},
		{"zero step", func(c *StarsConfig) { c.Catcher.Step = 0 }, "step"},
		{"start outside", func(c *StarsConfig) { c.Catcher.StartX = 450 }, "start_x"},
		{"x range", func(c *StarsConfig) { c.Stars.MinX = 500 }, "min_x"},
		{"speed range", func(c *StarsConfig) { c.Stars.MinSpeed = 30 }, "max_speed"},
		{"no stars", func(c *StarsConfig) { c.Stars.Initial = 0 }, "initial"},
		{"dot sizes", func(c *StarsConfig) { c.Background.DotMinSize = 5 }, "dot sizes"},
		{"tick", func(c *StarsConfig) { c.Timing.TickMS = 0 }, "tick_ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultStarsConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadStarsCustomPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stars.yaml")
	data := "timing:\n  tick_ms: 40\nrules:\n  halt_on_miss: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, src, err := LoadStarsWithSource(path)
	if err != nil {
		t.Fatalf("LoadStars failed: %v", err)
	}
	if src != path {
		t.Errorf("source = %q, want %q", src, path)
	}
	if cfg.Timing.TickMS != 40 || !cfg.Rules.HaltOnMiss {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Catcher.Width != 60 {
		t.Errorf("missing keys should keep defaults, catcher width = %d", cfg.Catcher.Width)
	}
}

func TestLoadStarsCustomErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadStars(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("catcher: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStars(bad); err == nil {
		t.Error("malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("catcher:\n  width: 900\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStars(invalid); err == nil {
		t.Error("invalid values should fail")
	}
}

func TestLoadStarsSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, src, err := LoadStarsWithSource("")
	if err != nil {
		t.Fatalf("LoadStars failed: %v", err)
	}
	if src != "" || cfg != DefaultStarsConfig() {
		t.Errorf("expected embedded default, got source %q", src)
	}

	local := filepath.Join(work, "configs")
	if err := os.MkdirAll(local, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(local, "stars.yaml"), []byte("catcher:\n  step: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, src, _ = LoadStarsWithSource("")
	if cfg.Catcher.Step != 10 || src != filepath.Join("configs", "stars.yaml") {
		t.Errorf("local config not used: step=%d source=%q", cfg.Catcher.Step, src)
	}

	user := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(user, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(user, "stars.yaml"), []byte("catcher:\n  step: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, _ = LoadStarsWithSource("")
	if cfg.Catcher.Step != 30 {
		t.Errorf("user config should win over local, step = %d", cfg.Catcher.Step)
	}
}

func TestPalette(t *testing.T) {
	p := DefaultStarsConfig().HUD.Palette()
	if p.Label != core.White || p.LabelBackground != core.Black || p.GameOver != core.Red {
		t.Errorf("default palette = %+v", p)
	}

	h := DefaultStarsConfig().HUD
	h.GameOverColor = "not a color"
	if got := h.Palette().GameOver; got != core.Red {
		t.Errorf("invalid color should fall back to red, got %v", got)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#1e90ff")
	if err != nil {
		t.Fatalf("ParseColor failed: %v", err)
	}
	if c != (core.RGB{R: 0x1e, G: 0x90, B: 0xff}) {
		t.Errorf("ParseColor() = %v", c)
	}
	if _, err := ParseColor("blue"); err == nil {
		t.Error("named colors are not supported")
	}
}

func TestLiveReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stars.yaml")
	if err := os.WriteFile(path, []byte("catcher:\n  step: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadStarsFile(path)
	if err != nil {
		t.Fatal(err)
	}
	live := NewLive(cfg, path)

	if err := os.WriteFile(path, []byte("catcher:\n  step: 25\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := live.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if live.Current().Catcher.Step != 25 {
		t.Errorf("step = %d after reload, want 25", live.Current().Catcher.Step)
	}

	if err := os.WriteFile(path, []byte("catcher:\n  step: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := live.Reload(); err == nil {
		t.Error("invalid file should fail to reload")
	}
	if live.Current().Catcher.Step != 25 {
		t.Error("failed reload should keep the previous config")
	}
}

func TestLiveWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stars.yaml")
	if err := os.WriteFile(path, []byte("timing:\n  tick_ms: 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	live := NewLive(DefaultStarsConfig(), path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan StarsConfig, 8)
	err := live.Watch(ctx, func(cfg StarsConfig, err error) {
		if err == nil {
			changed <- cfg
		}
	})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("timing:\n  tick_ms: 80\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changed:
			if cfg.Timing.TickMS == 80 {
				return
			}
		case <-deadline:
			t.Fatal("watcher did not report the change")
		}
	}
}

func TestLiveEmbeddedIsStatic(t *testing.T) {
	live := NewLive(DefaultStarsConfig(), "")
	if err := live.Reload(); err != nil {
		t.Errorf("Reload without a file should be a no-op, got %v", err)
	}
	if err := live.Watch(context.Background(), nil); err != nil {
		t.Errorf("Watch without a file should be a no-op, got %v", err)
	}
}

func TestGetDefaultYAML(t *testing.T) {
	if len(GetDefaultYAML("stars")) == 0 {
		t.Error("stars should have embedded defaults")
	}
	if GetDefaultYAML("snake") != nil {
		t.Error("unknown games have no defaults")
	}
}
