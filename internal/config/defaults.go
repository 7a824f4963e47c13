package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultConfig returns the default configuration. It mirrors
// defaults/breakout.yaml and is used when the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Field: FieldConfig{
			Width:  1024,
			Height: 768,
		},
		Paddle: PaddleConfig{
			Width:        409, // 2/5 of the field
			Height:       19,
			Speed:        800,
			BottomOffset: 20,
		},
		Ball: BallConfig{
			Width:    20,
			Height:   20,
			Speed:    400,
			Strength: 1,
		},
		Blocks: BlocksConfig{
			Gap:     5,
			MinRows: 13,
		},
		PowerUps: PowerUpsConfig{
			Width:     40,
			Height:    40,
			FallSpeed: 600,
			Probabilities: map[string]float64{
				"add-life":       0.1,
				"big-ball":       0.1,
				"small-ball":     0.1,
				"fast-ball":      0.1,
				"slow-ball":      0.1,
				"multiply-balls": 0.1,
				"super-ball":     0.1,
				"big-paddle":     0.1,
				"small-paddle":   0.1,
			},
			Durations: DurationsConfig{
				BallSize:     15,
				BallSpeed:    10,
				BallStrength: 20,
				PaddleSize:   15,
			},
			Factors: FactorsConfig{
				BigBall:     2,
				SmallBall:   0.5,
				FastBall:    2,
				SlowBall:    0.5,
				SuperBall:   2,
				BigPaddle:   2,
				SmallPaddle: 0.5,
			},
			SplitAngle: 15,
			MaxBalls:   20,
		},
		Gameplay: GameplayConfig{
			Lives:      3,
			MaxLives:   3,
			Mode:       ModeCampaign,
			StartLevel: "original",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 8,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}
