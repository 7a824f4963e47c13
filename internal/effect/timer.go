package effect

// Timer counts elapsed seconds toward a fixed duration. The zero value is an
// idle timer.
type Timer struct {
	Duration float64 `msgpack:"duration"`
	Elapsed  float64 `msgpack:"elapsed"`
	Running  bool    `msgpack:"running"`
}

// Start (re)starts the timer for the given duration.
func (t *Timer) Start(duration float64) {
	t.Duration = duration
	t.Elapsed = 0
	t.Running = true
}

// Tick advances a running timer and reports whether it expired on this call.
// Expiry happens once elapsed time is strictly greater than the duration.
func (t *Timer) Tick(dt float64) bool {
	if !t.Running {
		return false
	}
	t.Elapsed += dt
	if t.Elapsed > t.Duration {
		t.Running = false
		return true
	}
	return false
}

// Stop makes the timer idle without reporting expiry.
func (t *Timer) Stop() {
	t.Running = false
	t.Elapsed = 0
}

// Remaining returns the seconds left, or 0 when idle.
func (t Timer) Remaining() float64 {
	if !t.Running {
		return 0
	}
	return max(t.Duration-t.Elapsed, 0)
}
