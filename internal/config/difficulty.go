package config

import (
	"fmt"
	"math"
)

// DifficultyConfig defines how presets scale the level.
type DifficultyConfig struct {
	Scaling ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes between the
// easiest (0.0) and hardest (1.0) levels.
type ScalingConfig struct {
	MinLevel        int `yaml:"min_level"`        // boulders at 0.0
	MaxLevel        int `yaml:"max_level"`        // boulders at 1.0
	MaxRandomness   int `yaml:"max_randomness"`   // rnd at 1.0
	StartsReduction int `yaml:"starts_reduction"` // fewer restarts allowed at 1.0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets returns all presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset validates a preset name. Empty means fixed.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyFixed, nil
	}
	for _, p := range Presets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the difficulty level for a preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset leaves the loaded config alone.
// The zero preset is fixed, like ParsePreset("").
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed || preset == ""
}

// ApplyDrillPreset scales boulders, randomness and the restart limit for a
// preset. The fixed preset keeps the loaded values.
func ApplyDrillPreset(cfg *DrillConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		return
	}
	level := InitialLevelForPreset(preset)
	s := cfg.Difficulty.Scaling

	cfg.Terrain.Level = lerp(s.MinLevel, s.MaxLevel, level)
	cfg.Physics.Randomness = lerp(0, s.MaxRandomness, level)
	if cfg.Rules.MaxStarts > 0 {
		cfg.Rules.MaxStarts = max(1, cfg.Rules.MaxStarts-lerp(0, s.StartsReduction, level))
	}
}

// lerp interpolates between two ints, rounding to nearest.
func lerp(from, to int, t float64) int {
	t = math.Max(0, math.Min(1, t))
	return int(math.Round(float64(from) + t*float64(to-from)))
}
