package entity

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Paddle is the player-controlled bat at the bottom of the field.
type Paddle struct {
	Entity
	Intent         float64 // -1 left, 0 idle, +1 right
	Speed          float64 // World units per second
	OriginalWidth  float64
	OriginalHeight float64
}

// NewPaddle creates a paddle centered at centerX with its bottom edge at bottom.
func NewPaddle(centerX, bottom, width, height, speed float64) *Paddle {
	p := &Paddle{
		Entity: Entity{
			Pos:  core.Vec{centerX - width/2, bottom - height},
			Size: core.Vec{width, height},
		},
		Speed:          speed,
		OriginalWidth:  width,
		OriginalHeight: height,
	}
	p.Snapshot()
	return p
}

// SetIntent sets the horizontal direction from the pressed keys.
// Right wins when both are held.
func (p *Paddle) SetIntent(left, right bool) {
	switch {
	case right:
		p.Intent = 1
	case left:
		p.Intent = -1
	default:
		p.Intent = 0
	}
}

// Move advances the paddle by its intent and clamps it to [0, fieldW].
func (p *Paddle) Move(dt, fieldW float64) {
	p.Snapshot()
	p.Pos[0] += p.Intent * p.Speed * dt
	p.ClampTo(fieldW)
}

// ClampTo keeps the paddle inside [0, fieldW] horizontally.
func (p *Paddle) ClampTo(fieldW float64) {
	if p.Rect().Right() > fieldW {
		p.SetRight(fieldW)
	}
	if p.Pos.X() < 0 {
		p.SetLeft(0)
	}
}

// ScaleWidth sets the width to factor times the original width, keeping the
// center and bottom edge in place.
func (p *Paddle) ScaleWidth(factor float64) {
	p.setSize(p.OriginalWidth*factor, p.OriginalHeight)
}

// RestoreSize returns the paddle to its original dimensions.
func (p *Paddle) RestoreSize() {
	p.setSize(p.OriginalWidth, p.OriginalHeight)
}

func (p *Paddle) setSize(w, h float64) {
	centerX := p.Rect().CenterX()
	bottom := p.Rect().Bottom()
	p.Size = core.Vec{w, h}
	p.Pos = core.Vec{centerX - w/2, bottom - h}
}
