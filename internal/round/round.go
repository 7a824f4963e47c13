// Package round runs one level of play: it owns every entity on the field and
// advances them one tick at a time.
//
// A tick runs in a fixed order:
//
//  1. commit balls and power-ups queued during the previous tick
//  2. read paddle intent from input
//  3. advance power-up timers, reverting the ones that expire
//  4. move the paddle
//  5. balls: resting balls follow the paddle and may launch, active balls
//     move and resolve collisions, lost balls are removed afterwards
//  6. blocks: remove destroyed blocks and roll for power-up drops
//  7. power-ups: fall, get collected by the paddle or leave the field
//
// Entities created during a tick become visible at the start of the next one.
package round

import (
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/effect"
	"github.com/vovakirdan/tui-breakout/internal/entity"
	"github.com/vovakirdan/tui-breakout/internal/physics"
	"github.com/vovakirdan/tui-breakout/internal/powerup"
)

// Settings are the fixed parameters of a round.
type Settings struct {
	Field physics.Field

	PaddleWidth        float64
	PaddleHeight       float64
	PaddleSpeed        float64
	PaddleBottomOffset float64

	BallSize     core.Vec
	BallSpeed    float64
	BallStrength int

	PowerUpSize      core.Vec
	PowerUpFallSpeed float64

	Lives      int // Lives at the start of the round
	MaxLives   int
	StartScore int

	Effects effect.Settings
}

// Input is the player's intent for one tick.
type Input struct {
	Left   bool
	Right  bool
	Launch bool
}

// Round is one level in progress.
type Round struct {
	settings Settings
	rng      *core.SimpleRNG
	table    *powerup.Table
	logger   *log.Logger
	effects  *effect.Scheduler

	paddle   *entity.Paddle
	balls    []*entity.Ball
	blocks   []*entity.Block
	powerUps []*entity.PowerUp

	// Created or retired during a tick, applied at the start of the next.
	pendingBalls    []*entity.Ball
	pendingPowerUps []*entity.PowerUp
	retiredBalls    []*entity.Ball

	lives int
	score int
	ticks uint64
	over  bool
}

// New creates a round with the paddle centered and one ball resting on it.
// A nil table never drops power-ups; a nil logger discards output.
func New(s Settings, blocks []*entity.Block, table *powerup.Table, rng *core.SimpleRNG, logger *log.Logger) *Round {
	r := newRound(s, table, rng, logger)
	r.blocks = blocks
	r.paddle = entity.NewPaddle(
		s.Field.Width/2,
		s.Field.Height-s.PaddleBottomOffset,
		s.PaddleWidth, s.PaddleHeight, s.PaddleSpeed,
	)
	ball := entity.NewBall(s.BallSize, s.BallSpeed, s.BallStrength)
	ball.RestOn(r.paddle)
	ball.Snapshot()
	r.balls = []*entity.Ball{ball}
	return r
}

func newRound(s Settings, table *powerup.Table, rng *core.SimpleRNG, logger *log.Logger) *Round {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if rng == nil {
		rng = core.NewSimpleRNG(1)
	}
	r := &Round{
		settings: s,
		rng:      rng,
		table:    table,
		logger:   logger,
		lives:    s.Lives,
		score:    s.StartScore,
	}
	r.effects = effect.NewScheduler(target{r}, s.Effects, logger)
	return r
}

// Tick advances the round by dt seconds. A non-positive or non-finite dt, or
// a finished round, leaves everything untouched.
func (r *Round) Tick(dt float64, in Input) TickResult {
	var res TickResult
	if r.over || dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return res
	}
	r.ticks++

	r.commit()

	r.paddle.SetIntent(in.Left, in.Right)

	for _, p := range r.effects.Update(dt) {
		res.Events = append(res.Events, Event{Kind: EventPowerUpExpired, Power: p})
	}

	r.paddle.Move(dt, r.settings.Field.Width)

	r.updateBalls(dt, in, &res)
	if r.over {
		res.Over = true
		return res
	}
	r.updateBlocks(&res)
	r.updatePowerUps(dt, &res)

	res.Cleared = len(r.blocks) == 0
	if res.Cleared {
		res.Events = append(res.Events, Event{Kind: EventLevelCleared})
	}
	return res
}

// commit makes entities from the previous tick visible.
func (r *Round) commit() {
	if len(r.retiredBalls) > 0 {
		r.balls = slices.DeleteFunc(r.balls, func(b *entity.Ball) bool {
			return slices.Contains(r.retiredBalls, b)
		})
		r.retiredBalls = r.retiredBalls[:0]
	}
	r.balls = append(r.balls, r.pendingBalls...)
	r.pendingBalls = r.pendingBalls[:0]
	r.powerUps = append(r.powerUps, r.pendingPowerUps...)
	r.pendingPowerUps = r.pendingPowerUps[:0]
}

func (r *Round) updateBalls(dt float64, in Input, res *TickResult) {
	var lost []*entity.Ball

	for _, b := range r.balls {
		if !b.Active {
			b.RestOn(r.paddle)
			if in.Launch {
				r.launch(b)
				res.Events = append(res.Events, Event{Kind: EventLaunch, Pos: b.Center()})
			}
			continue
		}

		hit := physics.Step(b, dt, r.blocks, r.paddle, r.settings.Field)
		pos := b.Center()
		if hit.Wall {
			res.Events = append(res.Events, Event{Kind: EventWallBounce, Pos: pos})
		}
		switch {
		case hit.Lost:
			lost = append(lost, b)
			res.Events = append(res.Events, Event{Kind: EventBallLost, Pos: pos})
		case hit.Paddle:
			res.Events = append(res.Events, Event{Kind: EventPaddleBounce, Pos: pos})
		case hit.Missed:
			b.RestOn(r.paddle)
			res.Events = append(res.Events, Event{Kind: EventPaddleCatch, Pos: pos})
		}
		for _, blk := range hit.Blocks {
			res.Events = append(res.Events, Event{Kind: EventBlockHit, Pos: blk.Center()})
		}
	}

	if len(lost) == 0 {
		return
	}

	inPlay := len(r.balls) - len(lost) + len(r.pendingBalls)
	if inPlay > 0 {
		r.balls = slices.DeleteFunc(r.balls, func(b *entity.Ball) bool {
			return slices.Contains(lost, b)
		})
		r.logger.Debug("ball lost", "remaining", inPlay)
		return
	}

	// Last ball gone: keep one to serve again
	r.lives--
	res.Events = append(res.Events, Event{Kind: EventLifeLost})
	r.logger.Debug("life lost", "lives", r.lives)
	if r.lives <= 0 {
		r.over = true
		res.Events = append(res.Events, Event{Kind: EventGameOver})
		return
	}
	keep := lost[0]
	keep.Active = false
	keep.RestOn(r.paddle)
	keep.Snapshot()
	r.balls = []*entity.Ball{keep}
}

func (r *Round) launch(b *entity.Ball) {
	b.Active = true
	b.Dir = core.Vec{r.rng.Sign(), -1}
	b.Normalize()
}

func (r *Round) updateBlocks(res *TickResult) {
	r.blocks = slices.DeleteFunc(r.blocks, func(b *entity.Block) bool {
		if b.Alive() {
			return false
		}
		points := b.Points()
		r.score += points
		res.Points += points
		res.Events = append(res.Events, Event{Kind: EventBlockDestroyed, Pos: b.Center(), Points: points})
		if p, ok := r.OnBlockDestroyed(b); ok {
			res.Events = append(res.Events, Event{Kind: EventPowerUpSpawned, Pos: b.Center(), Power: p})
		}
		return true
	})
}

func (r *Round) updatePowerUps(dt float64, res *TickResult) {
	r.powerUps = slices.DeleteFunc(r.powerUps, func(p *entity.PowerUp) bool {
		p.Move(dt)
		if p.Rect().Intersects(r.paddle.Rect()) {
			res.Events = append(res.Events, Event{Kind: EventPowerUpCollected, Pos: p.Center(), Power: p.Power})
			r.OnPowerUpCollected(p.Power)
			return true
		}
		return p.OffField(r.settings.Field.Height)
	})
}

// OnBlockDestroyed rolls the drop table for a destroyed block. On success a
// capsule is queued at the block's center and the power is returned.
func (r *Round) OnBlockDestroyed(b *entity.Block) (powerup.Power, bool) {
	if r.table == nil {
		return 0, false
	}
	p, ok := r.table.Roll(r.rng)
	if !ok {
		return 0, false
	}
	capsule := entity.NewPowerUp(p, b.Center(), r.settings.PowerUpSize, r.settings.PowerUpFallSpeed)
	r.pendingPowerUps = append(r.pendingPowerUps, capsule)
	r.logger.Debug("power-up spawned", "power", p, "x", b.Center().X(), "y", b.Center().Y())
	return p, true
}

// OnPowerUpCollected applies a collected power.
func (r *Round) OnPowerUpCollected(p powerup.Power) {
	r.effects.Activate(p)
	r.paddle.ClampTo(r.settings.Field.Width)
}

// ActivateByName applies a power given by its external identifier.
func (r *Round) ActivateByName(name string) error {
	if err := r.effects.ActivateByName(name); err != nil {
		return err
	}
	r.paddle.ClampTo(r.settings.Field.Width)
	return nil
}

// Paddle returns the paddle.
func (r *Round) Paddle() *entity.Paddle {
	return r.paddle
}

// Balls returns the balls visible this tick.
func (r *Round) Balls() []*entity.Ball {
	return r.balls
}

// Blocks returns the remaining blocks.
func (r *Round) Blocks() []*entity.Block {
	return r.blocks
}

// PowerUps returns the falling capsules visible this tick.
func (r *Round) PowerUps() []*entity.PowerUp {
	return r.powerUps
}

// Settings returns the round parameters.
func (r *Round) Settings() Settings {
	return r.settings
}

// Lives returns the remaining lives.
func (r *Round) Lives() int {
	return r.lives
}

// Score returns the score including the score carried into the round.
func (r *Round) Score() int {
	return r.score
}

// Ticks returns the number of ticks run.
func (r *Round) Ticks() uint64 {
	return r.ticks
}

// Over reports whether the last life has been lost.
func (r *Round) Over() bool {
	return r.over
}

// Cleared reports whether every block is gone.
func (r *Round) Cleared() bool {
	return len(r.blocks) == 0
}

// Serving reports whether no ball is in flight.
func (r *Round) Serving() bool {
	for _, b := range r.balls {
		if b.Active {
			return false
		}
	}
	return len(r.pendingBalls) == 0
}

// ActivePowers returns the running timed powers.
func (r *Round) ActivePowers() []powerup.Power {
	return r.effects.Active()
}

// Remaining returns the seconds left on a category timer.
func (r *Round) Remaining(c powerup.Category) float64 {
	return r.effects.Remaining(c)
}

// target exposes the round to the effect scheduler. Its ball list includes
// queued balls and leaves out retired ones so effects reach every ball that
// will be in play next tick.
type target struct {
	r *Round
}

func (t target) Balls() []*entity.Ball {
	out := make([]*entity.Ball, 0, len(t.r.balls)+len(t.r.pendingBalls))
	for _, b := range t.r.balls {
		if !slices.Contains(t.r.retiredBalls, b) {
			out = append(out, b)
		}
	}
	return append(out, t.r.pendingBalls...)
}

func (t target) Paddle() *entity.Paddle {
	return t.r.paddle
}

func (t target) AddLife() {
	t.r.lives = min(t.r.lives+1, t.r.settings.MaxLives)
}

func (t target) SplitBall(parent *entity.Ball, children ...*entity.Ball) {
	if i := slices.Index(t.r.pendingBalls, parent); i >= 0 {
		t.r.pendingBalls = slices.Delete(t.r.pendingBalls, i, i+1)
	} else {
		t.r.retiredBalls = append(t.r.retiredBalls, parent)
	}
	t.r.pendingBalls = append(t.r.pendingBalls, children...)
}
