package entity

import "github.com/vovakirdan/tui-breakout/internal/core"

// Block health bounds.
const (
	MinHealth = 1
	MaxHealth = 7
)

// Block is a destructible brick.
type Block struct {
	Entity
	Health        int
	InitialHealth int
	Row, Col      int // Cell in the level layout
}

// NewBlock creates a block at the given position.
func NewBlock(x, y, w, h float64, health int) *Block {
	b := &Block{
		Entity:        Entity{Pos: core.Vec{x, y}, Size: core.Vec{w, h}},
		Health:        health,
		InitialHealth: health,
	}
	b.Snapshot()
	return b
}

// Damage lowers health by amount.
func (b *Block) Damage(amount int) {
	b.Health -= amount
}

// Alive reports whether the block survives the next block pass.
func (b *Block) Alive() bool {
	return b.Health > 0
}

// Tier is the visual identity of the block, a pure function of its health.
func (b *Block) Tier() int {
	return core.Clamp(b.Health, MinHealth, MaxHealth)
}

// Points awarded when the block is destroyed.
func (b *Block) Points() int {
	return b.InitialHealth * 10
}
