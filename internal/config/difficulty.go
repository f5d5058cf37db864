package config

import "math"

// minAttackRate keeps spawning from saturating every tick.
const minAttackRate = 5

// DifficultyManager derives the current attack rate from elapsed ticks.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0.0, 1.0)
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) at the given tick.
func (d *DifficultyManager) Level(ticks int) float64 {
	if !d.IsEnabled() {
		return d.cfg.InitialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.cfg.InitialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.cfg.InitialLevel + progress*(1.0-d.cfg.InitialLevel)
}

// AttackRate returns the spawn attack rate at the given tick.
// With progression disabled the base rate is returned unchanged.
func (d *DifficultyManager) AttackRate(base int, ticks int) int {
	if !d.cfg.Enabled {
		return base
	}
	reduction := int(d.Level(ticks) * float64(d.cfg.Scaling.AttackRateReduction))
	rate := base - reduction
	if rate < minAttackRate {
		rate = min(base, minAttackRate)
	}
	return rate
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
