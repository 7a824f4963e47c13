package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/effect"
	"github.com/vovakirdan/tui-breakout/internal/level"
	"github.com/vovakirdan/tui-breakout/internal/physics"
	"github.com/vovakirdan/tui-breakout/internal/powerup"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"field.width", c.Field.Width},
		{"field.height", c.Field.Height},
		{"paddle.width", c.Paddle.Width},
		{"paddle.height", c.Paddle.Height},
		{"paddle.speed", c.Paddle.Speed},
		{"ball.width", c.Ball.Width},
		{"ball.height", c.Ball.Height},
		{"ball.speed", c.Ball.Speed},
		{"powerups.width", c.PowerUps.Width},
		{"powerups.height", c.PowerUps.Height},
		{"powerups.fall_speed", c.PowerUps.FallSpeed},
		{"powerups.durations.ball_size", c.PowerUps.Durations.BallSize},
		{"powerups.durations.ball_speed", c.PowerUps.Durations.BallSpeed},
		{"powerups.durations.ball_strength", c.PowerUps.Durations.BallStrength},
		{"powerups.durations.paddle_size", c.PowerUps.Durations.PaddleSize},
		{"powerups.factors.big_ball", c.PowerUps.Factors.BigBall},
		{"powerups.factors.small_ball", c.PowerUps.Factors.SmallBall},
		{"powerups.factors.fast_ball", c.PowerUps.Factors.FastBall},
		{"powerups.factors.slow_ball", c.PowerUps.Factors.SlowBall},
		{"powerups.factors.big_paddle", c.PowerUps.Factors.BigPaddle},
		{"powerups.factors.small_paddle", c.PowerUps.Factors.SmallPaddle},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return invalid("%s must be positive, got %v", p.name, p.v)
		}
	}

	if c.Paddle.Width > c.Field.Width {
		return invalid("paddle.width %v wider than the field %v", c.Paddle.Width, c.Field.Width)
	}
	if c.Paddle.BottomOffset < 0 || c.Paddle.BottomOffset+c.Paddle.Height > c.Field.Height {
		return invalid("paddle.bottom_offset %v puts the paddle outside the field", c.Paddle.BottomOffset)
	}
	if c.Ball.Strength < 1 {
		return invalid("ball.strength must be at least 1, got %d", c.Ball.Strength)
	}
	if c.PowerUps.Factors.SuperBall < 1 {
		return invalid("powerups.factors.super_ball must be at least 1, got %d", c.PowerUps.Factors.SuperBall)
	}
	if c.Blocks.Gap < 0 || c.Blocks.MinRows < 0 {
		return invalid("blocks.gap and blocks.min_rows must not be negative")
	}
	if c.PowerUps.MaxBalls < 1 {
		return invalid("powerups.max_balls must be at least 1, got %d", c.PowerUps.MaxBalls)
	}

	for name, prob := range c.PowerUps.Probabilities {
		if _, err := powerup.ParsePower(name); err != nil {
			return fmt.Errorf("config: powerups.probabilities: %w", err)
		}
		if prob < 0 || prob > 1 {
			return invalid("powerups.probabilities.%s must be in [0, 1], got %v", name, prob)
		}
	}

	if c.Gameplay.Lives < 1 || c.Gameplay.MaxLives < c.Gameplay.Lives {
		return invalid("gameplay.lives %d must be between 1 and max_lives %d", c.Gameplay.Lives, c.Gameplay.MaxLives)
	}
	switch c.Gameplay.Mode {
	case ModeCampaign, ModeEndless:
	default:
		return invalid("gameplay.mode %q must be %q or %q", c.Gameplay.Mode, ModeCampaign, ModeEndless)
	}

	switch c.Difficulty.Progression.Type {
	case "score", "level", "none":
	default:
		return invalid("difficulty.progression.type %q must be score, level or none", c.Difficulty.Progression.Type)
	}

	if _, err := c.Catalog(); err != nil {
		return err
	}
	return nil
}

// PhysicsField returns the play area.
func (c Config) PhysicsField() physics.Field {
	return physics.Field{Width: c.Field.Width, Height: c.Field.Height}
}

// Grid returns the block placement for layouts.
func (c Config) Grid() level.Grid {
	return level.Grid{
		FieldWidth:  c.Field.Width,
		FieldHeight: c.Field.Height,
		Gap:         c.Blocks.Gap,
		MinRows:     c.Blocks.MinRows,
	}
}

// Catalog returns the built-in levels followed by the configured ones.
func (c Config) Catalog() (*level.Catalog, error) {
	extra := make([]*level.Level, 0, len(c.Levels))
	for _, lc := range c.Levels {
		l, err := level.Parse(lc.ID, lc.Name, lc.Rows)
		if err != nil {
			return nil, fmt.Errorf("config: levels: %w", err)
		}
		extra = append(extra, l)
	}
	return level.NewCatalog(extra...), nil
}

// SpawnTable returns the power-up drop table.
func (c Config) SpawnTable() (*powerup.Table, error) {
	t, err := powerup.NewTable(c.PowerUps.Probabilities)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return t, nil
}

// EffectSettings returns the power-up effect tuning.
func (c Config) EffectSettings() effect.Settings {
	p := c.PowerUps
	return effect.Settings{
		Durations: powerup.Durations{
			BallSize:     p.Durations.BallSize,
			BallSpeed:    p.Durations.BallSpeed,
			BallStrength: p.Durations.BallStrength,
			PaddleSize:   p.Durations.PaddleSize,
		},
		BigBallFactor:     p.Factors.BigBall,
		SmallBallFactor:   p.Factors.SmallBall,
		FastBallFactor:    p.Factors.FastBall,
		SlowBallFactor:    p.Factors.SlowBall,
		SuperBallFactor:   p.Factors.SuperBall,
		BigPaddleFactor:   p.Factors.BigPaddle,
		SmallPaddleFactor: p.Factors.SmallPaddle,
		SplitAngle:        p.SplitAngle,
		MaxBalls:          p.MaxBalls,
	}
}
