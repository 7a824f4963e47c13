// Package breakout adapts the round simulation to the platform's Game
// interface: it owns level progression, lives carried between levels, game
// states and the mapping of world units to terminal cells.
package breakout

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/level"
	"github.com/vovakirdan/tui-breakout/internal/powerup"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/round"
)

// Game states
const (
	StateServe    = "serve"    // Ball on paddle, waiting for launch
	StatePlaying  = "playing"  // Ball in play
	StatePaused   = "paused"   // Game paused
	StateGameOver = "gameover" // No lives left
	StateWin      = "win"      // All levels completed (campaign only)
)

// Game IDs, one per mode.
const (
	IDCampaign = "breakout"
	IDEndless  = "breakout_endless"
)

// Game implements registry.Game on top of a round.
type Game struct {
	mode   string
	cfg    config.Config
	logger *log.Logger

	catalog    *level.Catalog
	table      *powerup.Table
	difficulty *config.DifficultyManager
	rng        *core.SimpleRNG

	round      *round.Round
	state      string
	levelIndex int // Position in the catalog, may exceed Len in endless mode
	startIndex int
	cleared    int // Levels cleared this game

	runtime core.RuntimeConfig
	events  []round.Event // Events of the last tick
}

// New creates a game in the mode named by cfg.Gameplay.Mode.
// The config is assumed valid; a broken level list or drop table falls back
// to the built-in levels and no drops.
func New(cfg config.Config, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		mode:       cfg.Gameplay.Mode,
		cfg:        cfg,
		logger:     logger,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		logger.Warn("using built-in levels", "err", err)
		catalog = level.NewCatalog()
	}
	g.catalog = catalog

	table, err := cfg.SpawnTable()
	if err != nil {
		logger.Warn("power-ups disabled", "err", err)
	}
	g.table = table

	if id := cfg.Gameplay.StartLevel; id != "" {
		if i := catalog.Index(id); i >= 0 {
			g.startIndex = i
		} else {
			logger.Warn("unknown start level, using the first", "level", id)
		}
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == config.ModeEndless {
		return IDEndless
	}
	return IDCampaign
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == config.ModeEndless {
		return "Breakout (Endless)"
	}
	return "Breakout"
}

// Reset starts a new game from the start level with full lives.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = core.NewSimpleRNG(runtime.Seed)
	g.levelIndex = g.startIndex
	g.cleared = 0
	g.events = nil
	g.startRound(g.cfg.Gameplay.Lives, 0)
}

// startRound builds the round for the current level, carrying lives and score.
func (g *Game) startRound(lives, score int) {
	lvl := g.catalog.At(g.levelIndex)
	blocks := g.cfg.Grid().Build(lvl)

	s := g.settings(lives, score)
	g.round = round.New(s, blocks, g.table, g.rng, g.logger)
	g.state = StateServe

	g.logger.Info("level started",
		"mode", g.mode,
		"level", lvl.ID,
		"blocks", len(blocks),
		"lives", lives,
		"ball_speed", s.BallSpeed,
	)
}

// settings builds round parameters from the config and the current progress.
func (g *Game) settings(lives, score int) round.Settings {
	c := g.cfg
	return round.Settings{
		Field:              c.PhysicsField(),
		PaddleWidth:        c.Paddle.Width,
		PaddleHeight:       c.Paddle.Height,
		PaddleSpeed:        c.Paddle.Speed,
		PaddleBottomOffset: c.Paddle.BottomOffset,
		BallSize:           core.Vec{c.Ball.Width, c.Ball.Height},
		BallSpeed:          g.difficulty.Speed(c.Ball.Speed, score, g.cleared),
		BallStrength:       c.Ball.Strength,
		PowerUpSize:        core.Vec{c.PowerUps.Width, c.PowerUps.Height},
		PowerUpFallSpeed:   c.PowerUps.FallSpeed,
		Lives:              lives,
		MaxLives:           c.Gameplay.MaxLives,
		StartScore:         score,
		Effects:            c.EffectSettings(),
	}
}

// Step advances the game by dt seconds.
func (g *Game) Step(dt float64, in core.InputFrame) core.StepResult {
	g.events = g.events[:0]

	// Handle restart
	if in.Has(core.ActionRestart) && (g.state == StateGameOver || g.state == StateWin) {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		switch g.state {
		case StatePaused:
			g.state = g.runningState()
		case StatePlaying, StateServe:
			g.state = StatePaused
		}
	}

	if g.state == StatePaused || g.state == StateGameOver || g.state == StateWin {
		return core.StepResult{State: g.State()}
	}

	res := g.round.Tick(dt, round.Input{
		Left:   in.Has(core.ActionLeft),
		Right:  in.Has(core.ActionRight),
		Launch: in.Has(core.ActionLaunch),
	})
	g.events = append(g.events, res.Events...)
	cues := cuesFor(res.Events)

	switch {
	case res.Over:
		g.state = StateGameOver
		g.logger.Info("game over", "score", g.round.Score(), "cleared", g.cleared)
	case res.Cleared:
		g.advance()
	default:
		g.state = g.runningState()
	}

	return core.StepResult{State: g.State(), Cues: cues}
}

func (g *Game) runningState() string {
	if g.round.Serving() {
		return StateServe
	}
	return StatePlaying
}

// advance moves to the next level after a clear.
func (g *Game) advance() {
	g.cleared++
	g.levelIndex++

	if g.mode == config.ModeCampaign && g.levelIndex >= g.catalog.Len() {
		g.state = StateWin
		g.logger.Info("campaign complete", "score", g.round.Score())
		return
	}

	g.startRound(g.round.Lives(), g.round.Score())
}

// cuesFor maps tick events to sound cues.
func cuesFor(events []round.Event) []core.Cue {
	var cues []core.Cue
	for _, e := range events {
		var c core.Cue
		switch e.Kind {
		case round.EventWallBounce:
			c = core.CueWall
		case round.EventPaddleBounce, round.EventPaddleCatch:
			c = core.CuePaddle
		case round.EventBlockHit:
			c = core.CueBlock
		case round.EventBlockDestroyed:
			c = core.CueBreak
		case round.EventPowerUpCollected:
			c = core.CuePowerUp
		case round.EventLifeLost:
			c = core.CueLoseLife
		case round.EventLevelCleared:
			c = core.CueLevelUp
		case round.EventGameOver:
			c = core.CueGameOver
		default:
			continue
		}
		cues = append(cues, c)
	}
	return cues
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.round == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.round.Score(),
		GameOver: g.state == StateGameOver || g.state == StateWin,
		Paused:   g.state == StatePaused,
	}
}

// Phase returns the state name (serve, playing, paused, gameover, win).
func (g *Game) Phase() string {
	return g.state
}

// Round returns the round in progress.
func (g *Game) Round() *round.Round {
	return g.round
}

// Events returns the events of the last step.
func (g *Game) Events() []round.Event {
	return g.events
}

// Level returns the current level.
func (g *Game) Level() *level.Level {
	return g.catalog.At(g.levelIndex)
}

// LevelNumber returns the 1-based number of the current level, counting
// repeated levels in endless mode.
func (g *Game) LevelNumber() int {
	return g.levelIndex + 1
}

// Cleared returns how many levels were cleared this game.
func (g *Game) Cleared() int {
	return g.cleared
}

// Catalog returns the levels this game plays through.
func (g *Game) Catalog() *level.Catalog {
	return g.catalog
}

// Snapshot returns the encoded state of the current round.
func (g *Game) Snapshot() ([]byte, error) {
	return g.round.Snapshot().Marshal()
}

func init() {
	registry.Register(IDCampaign, func(opts registry.Options) registry.Game {
		cfg := opts.Config
		cfg.Gameplay.Mode = config.ModeCampaign
		return New(cfg, opts.Logger)
	})
	registry.Register(IDEndless, func(opts registry.Options) registry.Game {
		cfg := opts.Config
		cfg.Gameplay.Mode = config.ModeEndless
		return New(cfg, opts.Logger)
	})
}
