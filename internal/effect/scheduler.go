// Package effect applies collected power-ups to the paddle and balls and
// reverts timed effects when their category timer runs out.
//
// Every size, speed and strength change is computed from the entity's
// original value, so re-applying a power never compounds.
package effect

import (
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-breakout/internal/entity"
	"github.com/vovakirdan/tui-breakout/internal/powerup"
)

// Target is the world a scheduler mutates.
type Target interface {
	// Balls returns every ball the round owns, including ones not yet committed.
	Balls() []*entity.Ball
	Paddle() *entity.Paddle
	AddLife()
	// SplitBall replaces parent with children, visible from the next tick.
	SplitBall(parent *entity.Ball, children ...*entity.Ball)
}

// Settings tunes effect strength and duration.
type Settings struct {
	Durations powerup.Durations

	BigBallFactor     float64
	SmallBallFactor   float64
	FastBallFactor    float64
	SlowBallFactor    float64
	SuperBallFactor   int
	BigPaddleFactor   float64
	SmallPaddleFactor float64

	SplitAngle float64 // Degrees either side of the parent direction
	MaxBalls   int     // Multiply is skipped once the ball count exceeds this
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		Durations:         powerup.DefaultDurations(),
		BigBallFactor:     2,
		SmallBallFactor:   0.5,
		FastBallFactor:    2,
		SlowBallFactor:    0.5,
		SuperBallFactor:   2,
		BigPaddleFactor:   2,
		SmallPaddleFactor: 0.5,
		SplitAngle:        15,
		MaxBalls:          20,
	}
}

// Record is an active timed power with its timer.
type Record struct {
	Power powerup.Power `msgpack:"power"`
	Timer Timer         `msgpack:"timer"`
}

// Scheduler owns one timer per category.
type Scheduler struct {
	target   Target
	settings Settings
	logger   *log.Logger

	active map[powerup.Category]*Record
}

// NewScheduler creates a scheduler acting on target. A nil logger discards output.
func NewScheduler(target Target, settings Settings, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scheduler{
		target:   target,
		settings: settings,
		logger:   logger,
		active:   make(map[powerup.Category]*Record),
	}
}

// ActivateByName parses an external identifier and activates it. Unknown
// identifiers are logged and change nothing.
func (s *Scheduler) ActivateByName(name string) error {
	p, err := powerup.ParsePower(name)
	if err != nil {
		s.logger.Warn("ignoring power-up", "id", name, "err", err)
		return err
	}
	s.Activate(p)
	return nil
}

// Activate applies a power. Timed powers restart their category timer and
// displace the conflicting power.
func (s *Scheduler) Activate(p powerup.Power) {
	switch p {
	case powerup.AddLife:
		s.target.AddLife()
	case powerup.MultiplyBalls:
		s.multiply()
	case powerup.BigBall:
		s.eachBall(func(b *entity.Ball) { b.ScaleSize(s.settings.BigBallFactor) })
	case powerup.SmallBall:
		s.eachBall(func(b *entity.Ball) { b.ScaleSize(s.settings.SmallBallFactor) })
	case powerup.FastBall:
		s.eachBall(func(b *entity.Ball) { b.ScaleSpeed(s.settings.FastBallFactor) })
	case powerup.SlowBall:
		s.eachBall(func(b *entity.Ball) { b.ScaleSpeed(s.settings.SlowBallFactor) })
	case powerup.SuperBall:
		s.eachBall(func(b *entity.Ball) { b.ScaleStrength(s.settings.SuperBallFactor) })
	case powerup.BigPaddle:
		s.target.Paddle().ScaleWidth(s.settings.BigPaddleFactor)
	case powerup.SmallPaddle:
		s.target.Paddle().ScaleWidth(s.settings.SmallPaddleFactor)
	default:
		s.logger.Warn("ignoring power-up", "power", p)
		return
	}

	if !p.Timed() {
		s.logger.Debug("power-up applied", "power", p)
		return
	}

	c := p.Category()
	if prev, ok := s.active[c]; ok && prev.Power != p {
		s.logger.Debug("power-up displaced", "power", prev.Power, "by", p)
	}
	r := &Record{Power: p}
	r.Timer.Start(s.settings.Durations.For(c))
	s.active[c] = r
	s.logger.Debug("power-up activated", "power", p, "duration", r.Timer.Duration)
}

// Update advances every running timer by dt and reverts the categories that
// expired. It returns the powers that ran out.
func (s *Scheduler) Update(dt float64) []powerup.Power {
	var expired []powerup.Power
	for _, c := range powerup.Categories() {
		r, ok := s.active[c]
		if !ok {
			continue
		}
		if !r.Timer.Tick(dt) {
			continue
		}
		s.revert(c)
		delete(s.active, c)
		expired = append(expired, r.Power)
		s.logger.Debug("power-up expired", "power", r.Power)
	}
	return expired
}

// Active returns the running timed powers in category order.
func (s *Scheduler) Active() []powerup.Power {
	out := make([]powerup.Power, 0, len(s.active))
	for _, c := range powerup.Categories() {
		if r, ok := s.active[c]; ok {
			out = append(out, r.Power)
		}
	}
	return out
}

// IsActive reports whether p is currently running.
func (s *Scheduler) IsActive(p powerup.Power) bool {
	r, ok := s.active[p.Category()]
	return ok && r.Power == p
}

// Remaining returns the seconds left for the category.
func (s *Scheduler) Remaining(c powerup.Category) float64 {
	if r, ok := s.active[c]; ok {
		return r.Timer.Remaining()
	}
	return 0
}

// Records returns a copy of the active records for snapshots.
func (s *Scheduler) Records() []Record {
	out := make([]Record, 0, len(s.active))
	for _, r := range s.active {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Power.Category() < out[j].Power.Category()
	})
	return out
}

// Restore replaces the active records without touching entities, which are
// expected to already carry the effect values.
func (s *Scheduler) Restore(records []Record) {
	s.active = make(map[powerup.Category]*Record, len(records))
	for _, r := range records {
		if !r.Power.Timed() {
			continue
		}
		s.active[r.Power.Category()] = &r
	}
}

// Reset stops every timer and restores original values.
func (s *Scheduler) Reset() {
	for _, c := range powerup.Categories() {
		if _, ok := s.active[c]; ok {
			s.revert(c)
		}
	}
	s.active = make(map[powerup.Category]*Record)
}

func (s *Scheduler) revert(c powerup.Category) {
	switch c {
	case powerup.CategoryBallSize:
		s.eachBall((*entity.Ball).RestoreSize)
	case powerup.CategoryBallSpeed:
		s.eachBall((*entity.Ball).RestoreSpeed)
	case powerup.CategoryBallStrength:
		s.eachBall((*entity.Ball).RestoreStrength)
	case powerup.CategoryPaddleSize:
		s.target.Paddle().RestoreSize()
	}
}

func (s *Scheduler) eachBall(fn func(*entity.Ball)) {
	for _, b := range s.target.Balls() {
		fn(b)
	}
}

// multiply replaces every active ball with two copies deflected by the split
// angle. Resting balls are left alone.
func (s *Scheduler) multiply() {
	balls := s.target.Balls()
	if len(balls) > s.settings.MaxBalls {
		s.logger.Debug("multiply skipped", "balls", len(balls), "max", s.settings.MaxBalls)
		return
	}

	angle := mgl64.DegToRad(s.settings.SplitAngle)
	left := mgl64.Rotate2D(-angle)
	right := mgl64.Rotate2D(angle)

	for _, b := range balls {
		if !b.Active {
			continue
		}
		a := b.Clone()
		a.Dir = left.Mul2x1(b.Dir)
		a.Normalize()
		c := b.Clone()
		c.Dir = right.Mul2x1(b.Dir)
		c.Normalize()
		s.target.SplitBall(b, a, c)
	}
}
