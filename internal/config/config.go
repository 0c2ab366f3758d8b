// Package config provides YAML-based configuration loading and difficulty
// presets for the drill game.
package config

import (
	"errors"
	"fmt"
)

// DrillConfig contains all configuration for the drill game.
type DrillConfig struct {
	Physics    DrillPhysics     `yaml:"physics"`
	Terrain    DrillTerrain     `yaml:"terrain"`
	Rules      DrillRules       `yaml:"rules"`
	Replay     DrillReplay      `yaml:"replay"`
	Scoring    DrillScoring     `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DrillPhysics defines how the drill head moves.
type DrillPhysics struct {
	TurnAngle     float64 `yaml:"turn_angle"`    // radians per unit of travel
	SpeedDivider  int     `yaml:"speed_divider"` // ropd
	Randomness    int     `yaml:"randomness"`    // rnd, 0..100
	StartX        float64 `yaml:"start_x"`
	StartY        float64 `yaml:"start_y"`
	StartAngleDeg float64 `yaml:"start_angle_deg"` // below horizontal
}

// DrillTerrain defines level generation.
type DrillTerrain struct {
	Scene        string  `yaml:"scene"` // "full" or "classic"
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	GroundLevel  int     `yaml:"ground_level"`
	DirtLayers   int     `yaml:"dirt_layers"`
	Level        int     `yaml:"level"` // boulder count, 1..10
	Houses       int     `yaml:"houses"`
	Hills        int     `yaml:"hills"`
	GoalX        int     `yaml:"goal_x"`
	GoalW        int     `yaml:"goal_w"`
	TextureScale float64 `yaml:"texture_scale"`
}

// DrillRules defines pipe segments and failure limits.
type DrillRules struct {
	PipeLength      int     `yaml:"pipe_length"`      // steps per pipe segment
	ConnectionTicks int     `yaml:"connection_ticks"` // pause while a segment is added
	MaxStuck        int     `yaml:"max_stuck"`
	MaxStarts       int     `yaml:"max_starts"`
	MaxSideTracks   int     `yaml:"max_side_tracks"`
	SideTrackRadius float64 `yaml:"side_track_radius"`
}

// DrillReplay defines playback and sharing.
type DrillReplay struct {
	DelayTicks int    `yaml:"delay_ticks"` // wait after a pause or stuck event
	Scheme     string `yaml:"scheme"`      // "s4" or "sol"
}

// DrillScoring defines how a winning run is scored.
type DrillScoring struct {
	Base    int `yaml:"base"`
	Penalty int `yaml:"penalty"` // per stuck and side track
}

// Validate reports configuration values the game cannot run with.
func (c DrillConfig) Validate() error {
	var errs []error
	if c.Physics.TurnAngle <= 0 {
		errs = append(errs, fmt.Errorf("physics.turn_angle must be positive, got %v", c.Physics.TurnAngle))
	}
	if c.Physics.SpeedDivider < 1 {
		errs = append(errs, fmt.Errorf("physics.speed_divider must be at least 1, got %d", c.Physics.SpeedDivider))
	}
	if c.Physics.Randomness < 0 || c.Physics.Randomness > 100 {
		errs = append(errs, fmt.Errorf("physics.randomness must be within 0..100, got %d", c.Physics.Randomness))
	}
	if c.Terrain.Scene != "full" && c.Terrain.Scene != "classic" {
		errs = append(errs, fmt.Errorf("terrain.scene must be full or classic, got %q", c.Terrain.Scene))
	}
	if c.Terrain.Level < 1 || c.Terrain.Level > 10 {
		errs = append(errs, fmt.Errorf("terrain.level must be within 1..10, got %d", c.Terrain.Level))
	}
	if c.Rules.PipeLength < 1 {
		errs = append(errs, fmt.Errorf("rules.pipe_length must be at least 1, got %d", c.Rules.PipeLength))
	}
	if c.Replay.Scheme != "s4" && c.Replay.Scheme != "sol" {
		errs = append(errs, fmt.Errorf("replay.scheme must be s4 or sol, got %q", c.Replay.Scheme))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
