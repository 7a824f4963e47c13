package entity

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/powerup"
)

// PowerUp is a capsule falling from a destroyed block.
type PowerUp struct {
	Entity
	Power    powerup.Power
	Velocity core.Vec
}

// NewPowerUp creates a capsule centered at center, falling at fallSpeed.
func NewPowerUp(p powerup.Power, center, size core.Vec, fallSpeed float64) *PowerUp {
	pu := &PowerUp{
		Entity: Entity{
			Pos:  core.Vec{center.X() - size.X()/2, center.Y() - size.Y()/2},
			Size: size,
		},
		Power:    p,
		Velocity: core.Vec{0, fallSpeed},
	}
	pu.Snapshot()
	return pu
}

// Move advances the capsule by velocity * dt.
func (p *PowerUp) Move(dt float64) {
	p.Snapshot()
	p.Pos = p.Pos.Add(p.Velocity.Mul(dt))
}

// OffField reports whether the capsule has fallen entirely below fieldH.
func (p *PowerUp) OffField(fieldH float64) bool {
	return p.Pos.Y() > fieldH
}
