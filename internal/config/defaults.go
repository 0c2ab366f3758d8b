package config

import (
	_ "embed"
)

//go:embed defaults/drill.yaml
var defaultDrillYAML []byte

// DefaultDrillConfig returns the default drill configuration.
func DefaultDrillConfig() DrillConfig {
	return DrillConfig{
		Physics: DrillPhysics{
			TurnAngle:     0.01,
			SpeedDivider:  1,
			Randomness:    0,
			StartX:        10,
			StartY:        100,
			StartAngleDeg: 30,
		},
		Terrain: DrillTerrain{
			Scene:        "full",
			Width:        600,
			Height:       400,
			GroundLevel:  100,
			DirtLayers:   7,
			Level:        5,
			Houses:       3,
			Hills:        2,
			GoalX:        540,
			GoalW:        20,
			TextureScale: 25,
		},
		Rules: DrillRules{
			PipeLength:      40,
			ConnectionTicks: 20,
			MaxStuck:        3,
			MaxStarts:       12,
			MaxSideTracks:   3,
			SideTrackRadius: 1.5,
		},
		Replay: DrillReplay{
			DelayTicks: 15,
			Scheme:     "s4",
		},
		Scoring: DrillScoring{
			Base:    2000,
			Penalty: 100,
		},
		Difficulty: DifficultyConfig{
			Scaling: ScalingConfig{
				MinLevel:        2,
				MaxLevel:        10,
				MaxRandomness:   50,
				StartsReduction: 6,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "drill", "drill_classic":
		return defaultDrillYAML
	default:
		return nil
	}
}
