package effect

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/entity"
	"github.com/vovakirdan/tui-breakout/internal/powerup"
)

type fakeWorld struct {
	balls  []*entity.Ball
	paddle *entity.Paddle
	lives  int
}

func newFakeWorld(balls ...*entity.Ball) *fakeWorld {
	return &fakeWorld{
		balls:  balls,
		paddle: entity.NewPaddle(512, 748, 400, 20, 800),
	}
}

func (w *fakeWorld) Balls() []*entity.Ball { return w.balls }
func (w *fakeWorld) Paddle() *entity.Paddle { return w.paddle }
func (w *fakeWorld) AddLife() { w.lives++ }

func (w *fakeWorld) SplitBall(parent *entity.Ball, children ...*entity.Ball) {
	out := w.balls[:0:0]
	for _, b := range w.balls {
		if b != parent {
			out = append(out, b)
		}
	}
	w.balls = append(out, children...)
}

func activeBall(dir core.Vec) *entity.Ball {
	b := entity.NewBall(core.Vec{20, 20}, 400, 1)
	b.Pos = core.Vec{500, 300}
	b.Dir = dir
	b.Active = true
	return b
}

func TestTimerExpiresAfterDuration(t *testing.T) {
	var tm Timer
	tm.Start(1)

	if tm.Tick(0.5) {
		t.Fatal("expired early")
	}
	if tm.Tick(0.5) {
		t.Fatal("expired at exactly the duration, expected strictly greater")
	}
	if !tm.Tick(0.01) {
		t.Fatal("did not expire past the duration")
	}
	if tm.Running || tm.Tick(10) {
		t.Error("expired timer should stay idle")
	}
}

func TestFastThenSlowSharesOneTimer(t *testing.T) {
	b := activeBall(core.Vec{0, -1})
	w := newFakeWorld(b)
	s := NewScheduler(w, DefaultSettings(), nil)

	s.Activate(powerup.FastBall)
	if b.Speed != 800 {
		t.Fatalf("fast-ball speed = %v, expected 800", b.Speed)
	}
	s.Update(5)
	s.Activate(powerup.SlowBall)
	if b.Speed != 200 {
		t.Fatalf("slow-ball speed = %v, expected 200", b.Speed)
	}

	active := s.Active()
	if len(active) != 1 || active[0] != powerup.SlowBall {
		t.Fatalf("Active() = %v, expected [slow-ball]", active)
	}
	if s.IsActive(powerup.FastBall) {
		t.Error("fast-ball still recorded after slow-ball")
	}

	// slow-ball restarted the timer, so fast-ball's leftover 5s must not revert it
	if expired := s.Update(6); len(expired) != 0 {
		t.Fatalf("Update(6) expired %v", expired)
	}
	expired := s.Update(4.5)
	if len(expired) != 1 || expired[0] != powerup.SlowBall {
		t.Fatalf("Update() expired %v, expected [slow-ball]", expired)
	}
	if b.Speed != 400 {
		t.Errorf("speed after expiry = %v, expected original 400", b.Speed)
	}
	if len(s.Active()) != 0 {
		t.Errorf("Active() after expiry = %v", s.Active())
	}
}

func TestBigPaddleDoublesAndRestores(t *testing.T) {
	w := newFakeWorld()
	s := NewScheduler(w, DefaultSettings(), nil)

	s.Activate(powerup.BigPaddle)
	s.Activate(powerup.BigPaddle)
	if w.paddle.Width() != 800 {
		t.Fatalf("paddle width = %v, expected exactly 800", w.paddle.Width())
	}
	if w.paddle.Height() != 20 {
		t.Errorf("paddle height = %v, expected unchanged 20", w.paddle.Height())
	}

	s.Update(15.01)
	if w.paddle.Width() != 400 {
		t.Errorf("paddle width after expiry = %v, expected 400", w.paddle.Width())
	}
}

func TestTimersAreIndependent(t *testing.T) {
	b := activeBall(core.Vec{0, -1})
	w := newFakeWorld(b)
	s := NewScheduler(w, DefaultSettings(), nil)

	s.Activate(powerup.FastBall)  // 10s
	s.Activate(powerup.SuperBall) // 20s
	s.Activate(powerup.BigBall)   // 15s

	expired := s.Update(10.5)
	if len(expired) != 1 || expired[0] != powerup.FastBall {
		t.Fatalf("Update(10.5) expired %v, expected [fast-ball]", expired)
	}
	if b.Strength != 2 || b.Width() != 40 {
		t.Errorf("other effects reverted early: strength %d width %v", b.Strength, b.Width())
	}
	if got := s.Remaining(powerup.CategoryBallStrength); math.Abs(got-9.5) > 1e-9 {
		t.Errorf("Remaining(strength) = %v, expected 9.5", got)
	}
}

func TestMultiplySplitsActiveBalls(t *testing.T) {
	parent := activeBall(core.Vec{0, -1})
	resting := entity.NewBall(core.Vec{20, 20}, 400, 1)
	w := newFakeWorld(parent, resting)
	s := NewScheduler(w, DefaultSettings(), nil)

	s.Activate(powerup.MultiplyBalls)

	if len(w.balls) != 3 {
		t.Fatalf("ball count = %d, expected 3", len(w.balls))
	}
	for _, b := range w.balls {
		if b == parent {
			t.Fatal("parent ball still present")
		}
	}

	want := math.Sin(mglRad(15))
	a, c := w.balls[1], w.balls[2]
	if math.Abs(a.Dir.X()+want) > 1e-9 || math.Abs(c.Dir.X()-want) > 1e-9 {
		t.Errorf("children dir x = %v, %v, expected ∓%v", a.Dir.X(), c.Dir.X(), want)
	}
	for _, child := range []*entity.Ball{a, c} {
		if math.Abs(child.Dir.Len()-1) > 1e-9 {
			t.Errorf("child direction %v not unit", child.Dir)
		}
		if child.Pos != parent.Pos || child.Speed != parent.Speed {
			t.Errorf("child does not copy parent state: %+v", child)
		}
	}
	if len(s.Active()) != 0 {
		t.Error("multiply-balls should not be recorded as active")
	}
}

func TestMultiplyCeiling(t *testing.T) {
	tests := []struct {
		balls    int
		expected int
	}{
		{20, 40}, // At the ceiling, still splits
		{21, 21}, // Above it, skipped
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d balls", tt.balls), func(t *testing.T) {
			var balls []*entity.Ball
			for range tt.balls {
				balls = append(balls, activeBall(core.Vec{0, -1}))
			}
			w := newFakeWorld(balls...)
			s := NewScheduler(w, DefaultSettings(), nil)

			s.Activate(powerup.MultiplyBalls)
			if len(w.balls) != tt.expected {
				t.Errorf("ball count = %d, expected %d", len(w.balls), tt.expected)
			}
		})
	}
}

func TestAddLife(t *testing.T) {
	w := newFakeWorld()
	s := NewScheduler(w, DefaultSettings(), nil)
	s.Activate(powerup.AddLife)
	if w.lives != 1 {
		t.Errorf("lives = %d, expected 1", w.lives)
	}
}

func TestActivateByNameUnknown(t *testing.T) {
	b := activeBall(core.Vec{0, -1})
	w := newFakeWorld(b)
	s := NewScheduler(w, DefaultSettings(), nil)

	err := s.ActivateByName("mega-ball")
	if !errors.Is(err, powerup.ErrUnknownPower) {
		t.Fatalf("ActivateByName() error = %v, expected ErrUnknownPower", err)
	}
	if b.Speed != 400 || b.Width() != 20 || w.paddle.Width() != 400 || len(s.Active()) != 0 {
		t.Error("unknown power mutated state")
	}

	if err := s.ActivateByName("small-ball"); err != nil {
		t.Fatalf("ActivateByName(small-ball) error: %v", err)
	}
	if b.Width() != 10 {
		t.Errorf("small-ball width = %v, expected 10", b.Width())
	}
}

func TestRestoreRecords(t *testing.T) {
	w := newFakeWorld(activeBall(core.Vec{0, -1}))
	s := NewScheduler(w, DefaultSettings(), nil)
	s.Activate(powerup.SmallPaddle)
	s.Update(3)

	records := s.Records()
	other := NewScheduler(w, DefaultSettings(), nil)
	other.Restore(records)

	if !other.IsActive(powerup.SmallPaddle) {
		t.Fatal("restored scheduler lost small-paddle")
	}
	if got := other.Remaining(powerup.CategoryPaddleSize); got != 12 {
		t.Errorf("Remaining() = %v, expected 12", got)
	}
}

func mglRad(deg float64) float64 {
	return deg * math.Pi / 180
}
