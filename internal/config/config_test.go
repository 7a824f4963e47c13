package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/level"
	"github.com/vovakirdan/tui-breakout/internal/powerup"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, err := Parse(defaultBreakoutYAML)
	if err != nil {
		t.Fatalf("embedded config invalid: %v", err)
	}
	def := DefaultConfig()

	if cfg.Field != def.Field || cfg.Paddle != def.Paddle || cfg.Ball != def.Ball || cfg.Blocks != def.Blocks {
		t.Errorf("embedded geometry differs from DefaultConfig()")
	}
	if cfg.PowerUps.Durations != def.PowerUps.Durations || cfg.PowerUps.Factors != def.PowerUps.Factors {
		t.Errorf("embedded power-up tuning differs from DefaultConfig()")
	}
	if cfg.Gameplay != def.Gameplay {
		t.Errorf("embedded gameplay = %+v, expected %+v", cfg.Gameplay, def.Gameplay)
	}
	if len(cfg.PowerUps.Probabilities) != len(powerup.All()) {
		t.Errorf("embedded config lists %d powers, expected %d", len(cfg.PowerUps.Probabilities), len(powerup.All()))
	}
}

func TestDefaultsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() invalid: %v", err)
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte(`
ball:
  speed: 250
powerups:
  probabilities:
    big-ball: 0.5
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Ball.Speed != 250 {
		t.Errorf("ball.speed = %v, expected 250", cfg.Ball.Speed)
	}
	if cfg.Ball.Width != 20 {
		t.Errorf("ball.width = %v, expected default 20", cfg.Ball.Width)
	}
	if cfg.PowerUps.Probabilities["big-ball"] != 0.5 || cfg.PowerUps.Probabilities["add-life"] != 0.1 {
		t.Errorf("probabilities = %v", cfg.PowerUps.Probabilities)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"zero field", func(c *Config) { c.Field.Width = 0 }, ErrInvalid},
		{"negative duration", func(c *Config) { c.PowerUps.Durations.BallSpeed = -1 }, ErrInvalid},
		{"probability above one", func(c *Config) { c.PowerUps.Probabilities["big-ball"] = 2 }, ErrInvalid},
		{"unknown power", func(c *Config) { c.PowerUps.Probabilities["mega-ball"] = 0.1 }, powerup.ErrUnknownPower},
		{"bad mode", func(c *Config) { c.Gameplay.Mode = "arcade" }, ErrInvalid},
		{"lives above max", func(c *Config) { c.Gameplay.Lives = 9 }, ErrInvalid},
		{"bad layout", func(c *Config) {
			c.Levels = []LevelConfig{{ID: "x", Name: "X", Rows: []string{"1a1"}}}
		}, level.ErrMalformedLayout},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, tc.target) {
				t.Errorf("Validate() error = %v, expected %v", err, tc.target)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("gameplay:\n  mode: endless\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Gameplay.Mode != ModeEndless {
		t.Errorf("mode = %q, expected endless", cfg.Gameplay.Mode)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml"), nil); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}
}

func TestCustomLevelsAppended(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Levels = []LevelConfig{{ID: "mine", Name: "Mine", Rows: []string{"777"}}}

	cat, err := cfg.Catalog()
	if err != nil {
		t.Fatalf("Catalog() error: %v", err)
	}
	if cat.Index("mine") != cat.Len()-1 {
		t.Errorf("custom level at %d, expected last", cat.Index("mine"))
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		lives     int
		ballSpeed float64
		enabled   bool
	}{
		{DifficultyEasy, 5, 320, true},
		{DifficultyNormal, 3, 400, true},
		{DifficultyHard, 2, 500, true},
		{DifficultyFixed, 3, 400, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Gameplay.Lives != tc.lives || cfg.Ball.Speed != tc.ballSpeed || cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("got lives %d speed %v enabled %v", cfg.Gameplay.Lives, cfg.Ball.Speed, cfg.Difficulty.Enabled)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}

	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset() should reject unknown names")
	}
}

func TestDifficultyManager(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "level", MaxAt: 4},
		Scaling:      ScalingConfig{SpeedMultiplier: 0.5},
	})

	tests := []struct {
		cleared int
		want    float64
	}{
		{0, 0.2},
		{2, 0.6},
		{4, 1.0},
		{10, 1.0},
	}
	for _, tc := range tests {
		if got := dm.Level(0, tc.cleared); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Level(0, %d) = %v, expected %v", tc.cleared, got, tc.want)
		}
	}
	if got := dm.Speed(400, 0, 4); math.Abs(got-600) > 1e-9 {
		t.Errorf("Speed() at max = %v, expected 600", got)
	}
}
