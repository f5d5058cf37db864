package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML ArenaConfig
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if fromYAML != DefaultArenaConfig() {
		t.Errorf("embedded YAML differs from DefaultArenaConfig():\n yaml: %+v\n code: %+v", fromYAML, DefaultArenaConfig())
	}
}

func TestLoadCustomPathOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	data := []byte("hazards:\n  attack_rate: 7\nfield:\n  tick_rate: 60\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Hazards.AttackRate != 7 {
		t.Errorf("Expected attack_rate 7, got %d", cfg.Hazards.AttackRate)
	}
	if cfg.Field.TickRate != 60 {
		t.Errorf("Expected tick_rate 60, got %d", cfg.Field.TickRate)
	}
	if cfg.Hazards.Damage != 10 {
		t.Errorf("Expected untouched damage to stay 10, got %d", cfg.Hazards.Damage)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing custom config")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	if err := os.WriteFile(path, []byte("field:\n  tick_rate: 0\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected validation error for zero tick_rate")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultArenaConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: got enabled=%v level=%v", cfg.Difficulty.Enabled, cfg.Difficulty.InitialLevel)
	}

	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	if ParsePreset("bogus") != "" {
		t.Error("ParsePreset should reject unknown presets")
	}
}

func TestDifficultyAttackRate(t *testing.T) {
	base := 40

	fixed := NewDifficultyManager(DifficultyConfig{Enabled: false})
	if got := fixed.AttackRate(base, 100000); got != base {
		t.Errorf("disabled progression: expected %d, got %d", base, got)
	}

	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 100},
		Scaling:     ScalingConfig{AttackRateReduction: 20},
	})
	if got := d.AttackRate(base, 0); got != 40 {
		t.Errorf("tick 0: expected 40, got %d", got)
	}
	if got := d.AttackRate(base, 50); got != 30 {
		t.Errorf("tick 50: expected 30, got %d", got)
	}
	if got := d.AttackRate(base, 1000); got != 20 {
		t.Errorf("past max_at: expected 20, got %d", got)
	}

	steep := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 1},
		Scaling:     ScalingConfig{AttackRateReduction: 100},
	})
	if got := steep.AttackRate(base, 10); got != minAttackRate {
		t.Errorf("expected floor %d, got %d", minAttackRate, got)
	}
}
