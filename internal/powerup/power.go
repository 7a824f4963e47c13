// Package powerup defines the closed set of power-ups, the effect category each
// belongs to, and the weighted table used to decide which capsule a destroyed
// block drops.
package powerup

import (
	"errors"
	"fmt"
)

// ErrUnknownPower is returned when an external identifier names no power.
var ErrUnknownPower = errors.New("unknown power")

// Power identifies one of the nine power-ups.
type Power int

const (
	AddLife Power = iota
	BigBall
	SmallBall
	FastBall
	SlowBall
	MultiplyBalls
	SuperBall
	BigPaddle
	SmallPaddle
	powerCount // Sentinel for iteration
)

// Category is the effect family a timed power belongs to. Both powers of a
// conflicting pair share one category and therefore one timer.
type Category int

const (
	CategoryNone Category = iota // Untimed powers
	CategoryBallSize
	CategoryBallSpeed
	CategoryBallStrength
	CategoryPaddleSize
	categoryCount
)

// All returns every power in declaration order.
func All() []Power {
	out := make([]Power, 0, powerCount)
	for p := range powerCount {
		out = append(out, p)
	}
	return out
}

// Categories returns every timed category in declaration order.
func Categories() []Category {
	return []Category{CategoryBallSize, CategoryBallSpeed, CategoryBallStrength, CategoryPaddleSize}
}

var names = [powerCount]string{
	AddLife:       "add-life",
	BigBall:       "big-ball",
	SmallBall:     "small-ball",
	FastBall:      "fast-ball",
	SlowBall:      "slow-ball",
	MultiplyBalls: "multiply-balls",
	SuperBall:     "super-ball",
	BigPaddle:     "big-paddle",
	SmallPaddle:   "small-paddle",
}

// String returns the identifier used in config files and logs.
func (p Power) String() string {
	if !p.Valid() {
		return fmt.Sprintf("power(%d)", int(p))
	}
	return names[p]
}

// Valid reports whether p is one of the nine powers.
func (p Power) Valid() bool {
	return p >= 0 && p < powerCount
}

// ParsePower maps an external identifier such as "big-ball" to a Power.
func ParsePower(s string) (Power, error) {
	for p, name := range names {
		if name == s {
			return Power(p), nil
		}
	}
	return 0, fmt.Errorf("powerup: %w: %q", ErrUnknownPower, s)
}

// Category returns the effect family of the power.
func (p Power) Category() Category {
	switch p {
	case BigBall, SmallBall:
		return CategoryBallSize
	case FastBall, SlowBall:
		return CategoryBallSpeed
	case SuperBall:
		return CategoryBallStrength
	case BigPaddle, SmallPaddle:
		return CategoryPaddleSize
	default:
		return CategoryNone
	}
}

// Timed reports whether the power is tracked by a category timer.
func (p Power) Timed() bool {
	return p.Category() != CategoryNone
}

// Conflict returns the power that cannot be active at the same time as p.
func (p Power) Conflict() (Power, bool) {
	switch p {
	case BigBall:
		return SmallBall, true
	case SmallBall:
		return BigBall, true
	case FastBall:
		return SlowBall, true
	case SlowBall:
		return FastBall, true
	case BigPaddle:
		return SmallPaddle, true
	case SmallPaddle:
		return BigPaddle, true
	default:
		return 0, false
	}
}

// Glyph returns the display character for a capsule.
func (p Power) Glyph() rune {
	switch p {
	case AddLife:
		return '♥'
	case BigBall:
		return 'O'
	case SmallBall:
		return 'o'
	case FastBall:
		return '+'
	case SlowBall:
		return '-'
	case MultiplyBalls:
		return 'M'
	case SuperBall:
		return 'S'
	case BigPaddle:
		return 'W'
	case SmallPaddle:
		return 'N'
	default:
		return '?'
	}
}

// String returns the short label used in the HUD.
func (c Category) String() string {
	switch c {
	case CategoryBallSize:
		return "size"
	case CategoryBallSpeed:
		return "speed"
	case CategoryBallStrength:
		return "strength"
	case CategoryPaddleSize:
		return "paddle"
	default:
		return "none"
	}
}

// Durations holds the timer length in seconds for each timed category.
type Durations struct {
	BallSize     float64
	BallSpeed    float64
	BallStrength float64
	PaddleSize   float64
}

// DefaultDurations returns the stock effect lengths.
func DefaultDurations() Durations {
	return Durations{
		BallSize:     15,
		BallSpeed:    10,
		BallStrength: 20,
		PaddleSize:   15,
	}
}

// For returns the duration of a category, or 0 for CategoryNone.
func (d Durations) For(c Category) float64 {
	switch c {
	case CategoryBallSize:
		return d.BallSize
	case CategoryBallSpeed:
		return d.BallSpeed
	case CategoryBallStrength:
		return d.BallStrength
	case CategoryPaddleSize:
		return d.PaddleSize
	default:
		return 0
	}
}
