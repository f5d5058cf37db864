package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the arena configuration.
// Search order: customPath -> ~/.ufo-race/configs/arena.yaml -> ./configs/arena.yaml -> embedded default.
// Keys missing from a file keep their default values.
func Load(customPath string) (ArenaConfig, error) {
	cfg := DefaultArenaConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	if userCfgPath := userConfigPath("arena.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = DefaultArenaConfig()
		}
	}

	if data, err := os.ReadFile("configs/arena.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = DefaultArenaConfig()
	}

	if err := yaml.Unmarshal(defaultArenaYAML, &cfg); err != nil {
		return DefaultArenaConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c ArenaConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("config: field must have positive size, got %vx%v", c.Field.Width, c.Field.Height)
	case c.Field.TickRate <= 0:
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.Field.TickRate)
	case c.Hazards.AttackRate < 0:
		return fmt.Errorf("config: attack_rate must not be negative, got %d", c.Hazards.AttackRate)
	case c.PowerUps.ConstellationSize < 1:
		return fmt.Errorf("config: constellation_size must be at least 1, got %d", c.PowerUps.ConstellationSize)
	case c.Network.EmitHz <= 0:
		return fmt.Errorf("config: emit_hz must be positive, got %d", c.Network.EmitHz)
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ufo-race", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *ArenaConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
