// Package entity holds the plain records the simulation works on: the paddle,
// balls, blocks and falling power-ups, plus their motion integration.
//
// Every entity is an axis-aligned rectangle with its position at the top-left
// corner. Coordinates are world units (pixels of the play field), with Y
// growing downward.
package entity

import "github.com/vovakirdan/tui-breakout/internal/core"

// Entity is the rectangle shared by everything on the field.
type Entity struct {
	Pos  core.Vec  // Top-left corner
	Size core.Vec  // Width, height
	Prev core.Rect // Bounding box before the last update
}

// Rect returns the current bounding box.
func (e *Entity) Rect() core.Rect {
	return core.NewRect(e.Pos.X(), e.Pos.Y(), e.Size.X(), e.Size.Y())
}

// Width returns the current width.
func (e *Entity) Width() float64 {
	return e.Size.X()
}

// Height returns the current height.
func (e *Entity) Height() float64 {
	return e.Size.Y()
}

// Center returns the center of the bounding box.
func (e *Entity) Center() core.Vec {
	return e.Rect().Center()
}

// SetLeft moves the entity so its left edge is at x.
func (e *Entity) SetLeft(x float64) {
	e.Pos[0] = x
}

// SetRight moves the entity so its right edge is at x.
func (e *Entity) SetRight(x float64) {
	e.Pos[0] = x - e.Size.X()
}

// SetTop moves the entity so its top edge is at y.
func (e *Entity) SetTop(y float64) {
	e.Pos[1] = y
}

// SetBottom moves the entity so its bottom edge is at y.
func (e *Entity) SetBottom(y float64) {
	e.Pos[1] = y - e.Size.Y()
}

// SetMidBottom places the entity so the middle of its bottom edge is at p.
func (e *Entity) SetMidBottom(p core.Vec) {
	e.Pos = core.Vec{p.X() - e.Size.X()/2, p.Y() - e.Size.Y()}
}

// MidTop returns the middle of the top edge.
func (e *Entity) MidTop() core.Vec {
	return core.Vec{e.Pos.X() + e.Size.X()/2, e.Pos.Y()}
}

// Resize changes the size while keeping the center fixed.
func (e *Entity) Resize(w, h float64) {
	c := e.Center()
	e.Size = core.Vec{w, h}
	e.Pos = core.Vec{c.X() - w/2, c.Y() - h/2}
}

// Snapshot stores the current bounding box as the previous-frame box.
func (e *Entity) Snapshot() {
	e.Prev = e.Rect()
}
