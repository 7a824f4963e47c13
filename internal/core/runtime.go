package core

// RuntimeConfig is what the platform tells a game when it starts one.
// Games simulate in world units, so the screen size only affects rendering.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in cells
	ScreenH  int   // Terminal height in cells
	TickRate int   // Frames per second requested from the frame driver
	Seed     int64 // RNG seed, 0 lets the platform pick one
}

// Fallbacks for unset runtime fields.
const (
	DefaultScreenW  = 80
	DefaultScreenH  = 24
	DefaultTickRate = 60
)

// WithDefaults returns c with non-positive sizes and rates replaced by the
// defaults. The seed is left alone.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	if c.ScreenW <= 0 {
		c.ScreenW = DefaultScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = DefaultScreenH
	}
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	return c
}

// GameState is the part of a game's status the platform acts on.
type GameState struct {
	Score    int
	GameOver bool // Lost or won; the platform saves the score once
	Paused   bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
	Cues  []Cue // Sounds triggered during the tick, in order
}
