package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the built-in arena configuration.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Field: FieldConfig{
			Width:    800,
			Height:   600,
			TickRate: 30,
		},
		Ship: ShipConfig{
			RadiusRatio: 0.035,
			XRatio:      0.08,
			SpeedRatio:  0.02,
			StartScore:  100,
		},
		Hazards: HazardConfig{
			AttackRate:     40,
			Damage:         10,
			SpeedRatio:     0.015,
			BlackHoleBelow: 10,
			StarBelow:      40,
			BlackHoleSpeed: 0.8,
			Padding:        1.5,
		},
		Projectiles: ProjectileConfig{
			SpeedRatio:   0.025,
			RadiusFactor: 0.4,
			Margin:       50,
		},
		PowerUps: PowerUpConfig{
			ConstellationSize: 2,
			AutoShootSeconds:  15,
			FireCooldown:      10,
			SpeedFactor:       2.2,
		},
		Teleport: TeleportConfig{
			DurationSeconds:       10,
			CooldownSeconds:       2,
			ReturnCooldownSeconds: 1,
			HitDamage:             30,
			DeathScore:            -100,
		},
		Network: NetworkConfig{
			RelayURL: "ws://localhost:8765",
			EmitHz:   20,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 5400, // 3 minutes at 30 steps/s
			},
			Scaling: ScalingConfig{
				AttackRateReduction: 25,
			},
		},
	}
}

// DefaultYAML returns the embedded default arena YAML.
func DefaultYAML() []byte {
	return defaultArenaYAML
}
