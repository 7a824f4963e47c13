package entity

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Ball is a bouncing ball. An inactive ball rests on the paddle until launch.
type Ball struct {
	Entity
	Dir      core.Vec // Unit direction while active
	Speed    float64  // World units per second
	Strength int      // Damage dealt to a block per hit
	Active   bool

	OriginalSize     core.Vec
	OriginalSpeed    float64
	OriginalStrength int
}

// NewBall creates a resting ball of the given size.
func NewBall(size core.Vec, speed float64, strength int) *Ball {
	b := &Ball{
		Entity:           Entity{Size: size},
		Dir:              core.Vec{0, -1},
		Speed:            speed,
		Strength:         strength,
		OriginalSize:     size,
		OriginalSpeed:    speed,
		OriginalStrength: strength,
	}
	b.Snapshot()
	return b
}

// Clone returns an independent copy of the ball, original values included.
func (b *Ball) Clone() *Ball {
	c := *b
	return &c
}

// Move advances the ball by direction * speed * dt.
func (b *Ball) Move(dt float64) {
	b.Snapshot()
	b.Pos = b.Pos.Add(b.Dir.Mul(b.Speed * dt))
}

// Normalize rescales the direction to unit length. A zero direction is left
// untouched.
func (b *Ball) Normalize() {
	if l := b.Dir.Len(); l != 0 {
		b.Dir = b.Dir.Mul(1 / l)
	}
}

// Velocity returns direction * speed.
func (b *Ball) Velocity() core.Vec {
	return b.Dir.Mul(b.Speed)
}

// RestOn seats the ball on the paddle's top edge.
func (b *Ball) RestOn(p *Paddle) {
	b.SetMidBottom(p.MidTop())
}

// ScaleSize sets the size to factor times the original size.
func (b *Ball) ScaleSize(factor float64) {
	b.Resize(b.OriginalSize.X()*factor, b.OriginalSize.Y()*factor)
}

// RestoreSize returns the ball to its original size.
func (b *Ball) RestoreSize() {
	b.Resize(b.OriginalSize.X(), b.OriginalSize.Y())
}

// ScaleSpeed sets the speed to factor times the original speed.
func (b *Ball) ScaleSpeed(factor float64) {
	b.Speed = b.OriginalSpeed * factor
}

// RestoreSpeed returns the ball to its original speed.
func (b *Ball) RestoreSpeed() {
	b.Speed = b.OriginalSpeed
}

// ScaleStrength sets the strength to factor times the original strength.
func (b *Ball) ScaleStrength(factor int) {
	b.Strength = b.OriginalStrength * factor
}

// RestoreStrength returns the ball to its original strength.
func (b *Ball) RestoreStrength() {
	b.Strength = b.OriginalStrength
}
