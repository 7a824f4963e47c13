package round

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/powerup"
)

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventLaunch EventKind = iota
	EventWallBounce
	EventPaddleBounce
	EventPaddleCatch // Ball struck the paddle's side and came to rest
	EventBlockHit
	EventBlockDestroyed
	EventBallLost
	EventLifeLost
	EventPowerUpSpawned
	EventPowerUpCollected
	EventPowerUpExpired
	EventLevelCleared
	EventGameOver
)

// String returns a short name for logs.
func (k EventKind) String() string {
	switch k {
	case EventLaunch:
		return "launch"
	case EventWallBounce:
		return "wall"
	case EventPaddleBounce:
		return "paddle"
	case EventPaddleCatch:
		return "catch"
	case EventBlockHit:
		return "block-hit"
	case EventBlockDestroyed:
		return "block-destroyed"
	case EventBallLost:
		return "ball-lost"
	case EventLifeLost:
		return "life-lost"
	case EventPowerUpSpawned:
		return "powerup-spawned"
	case EventPowerUpCollected:
		return "powerup-collected"
	case EventPowerUpExpired:
		return "powerup-expired"
	case EventLevelCleared:
		return "level-cleared"
	case EventGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Event is one occurrence during a tick.
type Event struct {
	Kind   EventKind
	Pos    core.Vec      // Where it happened, when meaningful
	Power  powerup.Power // For power-up events
	Points int           // For EventBlockDestroyed
}

// TickResult reports the outcome of one tick.
type TickResult struct {
	Events  []Event
	Points  int  // Score gained this tick
	Cleared bool // No blocks remain
	Over    bool // No lives remain
}

// Has reports whether an event of the given kind occurred.
func (r TickResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Count returns how many events of the given kind occurred.
func (r TickResult) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
