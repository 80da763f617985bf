package ambient

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
liquid:
  mouseForce: 30
  autoDemo: false
  maxParticles: 50
  seed: 42
tech:
  density: 20000
  decorations: false
theme:
  primary: "hsl(262 83% 58%)"
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	if cfg.Liquid.MouseForce != 30 || cfg.Liquid.AutoDemo || cfg.Liquid.MaxParticles != 50 || cfg.Liquid.Seed != 42 {
		t.Errorf("liquid = %+v", cfg.Liquid)
	}
	// Omitted keys keep their defaults.
	if cfg.Liquid.CursorSize != 150 || cfg.Liquid.Damping != 0.96 || cfg.Liquid.AutoSpeed != 0.3 {
		t.Errorf("liquid defaults lost: %+v", cfg.Liquid)
	}
	if cfg.Tech.Density != 20000 || cfg.Tech.Decorations || cfg.Tech.LinkDistance != 120 {
		t.Errorf("tech = %+v", cfg.Tech)
	}
	if cfg.Theme.Primary != "hsl(262 83% 58%)" || cfg.Theme.Secondary != "#ff9ffc" {
		t.Errorf("theme = %+v", cfg.Theme)
	}
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("ParseConfig(nil): %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("empty config = %+v, want defaults", cfg)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"malformed", "liquid: [1, 2", "failed to parse"},
		{"wrong type", "liquid:\n  mouseForce: strong\n", "failed to parse"},
		{"negative force", "liquid:\n  mouseForce: -1\n", "liquid: mouseForce"},
		{"zero cap", "liquid:\n  maxParticles: 0\n", "liquid: maxParticles"},
		{"damping above one", "liquid:\n  damping: 1.5\n", "liquid: damping"},
		{"negative auto speed", "liquid:\n  autoSpeed: -0.1\n", "liquid: autoSpeed"},
		{"zero density", "tech:\n  density: 0\n", "tech: density"},
		{"zero link distance", "tech:\n  linkDistance: 0\n", "tech: link distances"},
		{"negative repel", "tech:\n  repelRadius: -5\n", "tech: repelRadius"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ambient.yaml")
	if err := os.WriteFile(path, []byte("tech:\n  repelRadius: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Tech.RepelRadius != 0 {
		t.Errorf("RepelRadius = %v, want 0", cfg.Tech.RepelRadius)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read ambient config") {
		t.Errorf("err = %v", err)
	}
}

func TestConfigWithDefaults(t *testing.T) {
	liquid := LiquidConfig{MouseForce: 5, Damping: 0.5}.withDefaults()
	if liquid.MouseForce != 5 || liquid.Damping != 0.5 {
		t.Errorf("explicit liquid fields overwritten: %+v", liquid)
	}
	if err := liquid.Validate(); err != nil {
		t.Errorf("defaulted liquid config invalid: %v", err)
	}
	if liquid.AutoDemo || liquid.AutoSpeed != 0 {
		t.Errorf("AutoDemo/AutoSpeed changed: %+v", liquid)
	}

	tech := TechConfig{Density: 5000}.withDefaults()
	if tech.Density != 5000 {
		t.Errorf("Density = %v, want 5000", tech.Density)
	}
	if err := tech.Validate(); err != nil {
		t.Errorf("defaulted tech config invalid: %v", err)
	}
	if tech.Decorations {
		t.Error("Decorations turned on by defaults")
	}
}
