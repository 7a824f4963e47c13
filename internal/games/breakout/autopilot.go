package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/entity"
)

// Autopilot plays the game on its own: it keeps the paddle under the lowest
// falling ball and launches whenever a ball is resting. The headless
// simulator and attract mode drive games with it.
type Autopilot struct {
	// Deadzone is how far the ball may drift from the paddle center before
	// the paddle moves, as a fraction of the paddle width.
	Deadzone float64
}

// DefaultAutopilot returns an autopilot with a small deadzone.
func DefaultAutopilot() Autopilot {
	return Autopilot{Deadzone: 0.1}
}

// Input returns the actions for the next step of g.
func (a Autopilot) Input(g *Game) core.InputFrame {
	in := core.NewInputFrame()
	r := g.Round()
	if r == nil {
		return in
	}
	if g.Phase() == StateServe {
		in.Set(core.ActionLaunch)
		return in
	}

	target := tracked(r.Balls())
	if target == nil {
		return in
	}

	p := r.Paddle()
	offset := target.Center().X() - p.Center().X()
	switch dead := p.Width() * a.Deadzone; {
	case offset < -dead:
		in.Set(core.ActionLeft)
	case offset > dead:
		in.Set(core.ActionRight)
	}
	return in
}

// tracked picks the active ball that will reach the paddle first: the lowest
// one moving down, or the lowest of all when every ball is rising.
func tracked(balls []*entity.Ball) *entity.Ball {
	var best *entity.Ball
	bestY := math.Inf(-1)
	falling := false
	for _, b := range balls {
		if !b.Active {
			continue
		}
		down := b.Dir.Y() > 0
		y := b.Center().Y()
		if (down && !falling) || (down == falling && y > bestY) {
			best, bestY, falling = b, y, down
		}
	}
	return best
}
