// Package config provides YAML-based game configuration loading, validation
// and difficulty management.
package config

// Config contains all configuration for a game of Breakout.
type Config struct {
	Field      FieldConfig      `yaml:"field"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Ball       BallConfig       `yaml:"ball"`
	Blocks     BlocksConfig     `yaml:"blocks"`
	PowerUps   PowerUpsConfig   `yaml:"powerups"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Levels     []LevelConfig    `yaml:"levels"`
}

// FieldConfig defines the play area in world units.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PaddleConfig defines the paddle.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`         // Units per second
	BottomOffset float64 `yaml:"bottom_offset"` // Gap between paddle bottom and field bottom
}

// BallConfig defines a freshly served ball.
type BallConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Speed    float64 `yaml:"speed"`
	Strength int     `yaml:"strength"`
}

// BlocksConfig defines how layouts are placed on the field.
type BlocksConfig struct {
	Gap     float64 `yaml:"gap"`
	MinRows int     `yaml:"min_rows"` // Field height is split into at least this many rows
}

// PowerUpsConfig defines capsules and effect tuning.
type PowerUpsConfig struct {
	Width         float64            `yaml:"width"`
	Height        float64            `yaml:"height"`
	FallSpeed     float64            `yaml:"fall_speed"`
	Probabilities map[string]float64 `yaml:"probabilities"` // Power id -> chance in [0, 1]
	Durations     DurationsConfig    `yaml:"durations"`
	Factors       FactorsConfig      `yaml:"factors"`
	SplitAngle    float64            `yaml:"split_angle"` // Degrees
	MaxBalls      int                `yaml:"max_balls"`
}

// DurationsConfig is the timer length in seconds per effect category.
type DurationsConfig struct {
	BallSize     float64 `yaml:"ball_size"`
	BallSpeed    float64 `yaml:"ball_speed"`
	BallStrength float64 `yaml:"ball_strength"`
	PaddleSize   float64 `yaml:"paddle_size"`
}

// FactorsConfig is the multiplier each power applies to an original value.
type FactorsConfig struct {
	BigBall     float64 `yaml:"big_ball"`
	SmallBall   float64 `yaml:"small_ball"`
	FastBall    float64 `yaml:"fast_ball"`
	SlowBall    float64 `yaml:"slow_ball"`
	SuperBall   int     `yaml:"super_ball"`
	BigPaddle   float64 `yaml:"big_paddle"`
	SmallPaddle float64 `yaml:"small_paddle"`
}

// GameplayConfig defines lives and level progression.
type GameplayConfig struct {
	Lives      int    `yaml:"lives"`
	MaxLives   int    `yaml:"max_lives"`
	Mode       string `yaml:"mode"` // "campaign" or "endless"
	StartLevel string `yaml:"start_level"`
}

// LevelConfig is a custom layout appended after the built-in levels.
type LevelConfig struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "level", or "none"
	MaxAt int    `yaml:"max_at"` // Score or cleared levels at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to ball speed at max difficulty
}

// Game modes.
const (
	ModeCampaign = "campaign"
	ModeEndless  = "endless"
)
