// Package config provides YAML-based arena configuration loading and
// difficulty management.
package config

// ArenaConfig contains all tunables for one arena session.
// Ratios are relative to the field size so a resized field keeps its proportions.
type ArenaConfig struct {
	Field       FieldConfig      `yaml:"field"`
	Ship        ShipConfig       `yaml:"ship"`
	Hazards     HazardConfig     `yaml:"hazards"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	PowerUps    PowerUpConfig    `yaml:"powerups"`
	Teleport    TeleportConfig   `yaml:"teleport"`
	Network     NetworkConfig    `yaml:"network"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the logical playfield.
type FieldConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	TickRate int     `yaml:"tick_rate"` // Simulation steps per second
}

// ShipConfig defines ship geometry and handling.
type ShipConfig struct {
	RadiusRatio float64 `yaml:"radius_ratio"` // Fraction of field height
	XRatio      float64 `yaml:"x_ratio"`      // Home x as fraction of field width
	SpeedRatio  float64 `yaml:"speed_ratio"`  // Vertical step per tick as fraction of field height
	StartScore  int     `yaml:"start_score"`
}

// HazardConfig defines hazard spawning and damage.
type HazardConfig struct {
	AttackRate      int     `yaml:"attack_rate"`       // Spawn chance is 1/(attack_rate+1) per tick
	Damage          int     `yaml:"damage"`            // Standard hazard damage
	SpeedRatio      float64 `yaml:"speed_ratio"`       // Fraction of field width per tick
	BlackHoleBelow  int     `yaml:"black_hole_below"`  // Kind roll in [1,100] below this spawns a black hole
	StarBelow       int     `yaml:"star_below"`        // Kind roll below this (and not a black hole) spawns a star
	BlackHoleSpeed  float64 `yaml:"black_hole_speed"`  // Speed factor for black holes
	Padding         float64 `yaml:"padding"`           // Spawn band padding in ship radii
	SpawnRemoteSide bool    `yaml:"spawn_remote_side"` // Also roll spawns for the opposing universe
}

// ProjectileConfig defines projectile behavior.
type ProjectileConfig struct {
	SpeedRatio   float64 `yaml:"speed_ratio"`   // Fraction of field width per tick
	RadiusFactor float64 `yaml:"radius_factor"` // Multiple of ship radius
	Margin       float64 `yaml:"margin"`        // Horizontal slack beyond the field before pruning
}

// PowerUpConfig defines the constellation auto-shoot power-up.
type PowerUpConfig struct {
	ConstellationSize int     `yaml:"constellation_size"` // Distinct star pieces needed
	AutoShootSeconds  int     `yaml:"auto_shoot_seconds"`
	FireCooldown      int     `yaml:"fire_cooldown"` // Ticks between automatic shots
	SpeedFactor       float64 `yaml:"speed_factor"`  // Multiple of base projectile speed
}

// TeleportConfig defines black hole teleportation.
type TeleportConfig struct {
	DurationSeconds       int `yaml:"duration_seconds"`        // Auto-return deadline
	CooldownSeconds       int `yaml:"cooldown_seconds"`        // Re-entry cooldown after jumping away
	ReturnCooldownSeconds int `yaml:"return_cooldown_seconds"` // Re-entry cooldown after coming home
	HitDamage             int `yaml:"hit_damage"`              // Enemy shot damage at home
	DeathScore            int `yaml:"death_score"`             // Score forced on a ship shot while away
}

// NetworkConfig defines the peer link.
type NetworkConfig struct {
	RelayURL string `yaml:"relay_url"`
	EmitHz   int    `yaml:"emit_hz"`
}

// DifficultyConfig defines attack-rate progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "time" or "none"
	MaxAt int    `yaml:"max_at"` // Tick at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	AttackRateReduction int `yaml:"attack_rate_reduction"` // Attack rate reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// StepsFor converts a duration in seconds to ticks at the configured rate.
func (c ArenaConfig) StepsFor(seconds int) int {
	return seconds * c.Field.TickRate
}
