// Package tui provides the Bubble Tea front end for breakout: the frame
// driver, menus, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Frame clock limits.
const (
	// maxFrameDT caps the simulated time per frame so a stalled terminal
	// does not teleport the ball through blocks.
	maxFrameDT = 0.1

	// holdWindow is how long a direction key counts as held after its last
	// press. Terminals only report key repeats, never releases.
	holdWindow = 120 * time.Millisecond
)

// TickMsg carries the wall-clock time of a frame.
type TickMsg time.Time

// tickCmd schedules the next frame.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultTickRate
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the seconds to simulate for a tick at now. The first
// frame has no predecessor and uses one nominal tick.
func frameDelta(last, now time.Time, tickRate int) float64 {
	if last.IsZero() {
		return 1 / float64(max(tickRate, 1))
	}
	return core.ClampF(now.Sub(last).Seconds(), 0, maxFrameDT)
}
