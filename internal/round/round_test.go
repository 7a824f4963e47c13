package round

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/effect"
	"github.com/vovakirdan/tui-breakout/internal/entity"
	"github.com/vovakirdan/tui-breakout/internal/physics"
	"github.com/vovakirdan/tui-breakout/internal/powerup"
)

const eps = 1e-9

func testSettings() Settings {
	return Settings{
		Field:              physics.Field{Width: 1024, Height: 768},
		PaddleWidth:        400,
		PaddleHeight:       20,
		PaddleSpeed:        800,
		PaddleBottomOffset: 20,
		BallSize:           core.Vec{20, 20},
		BallSpeed:          400,
		BallStrength:       1,
		PowerUpSize:        core.Vec{40, 40},
		PowerUpFallSpeed:   600,
		Lives:              3,
		MaxLives:           3,
		Effects:            effect.DefaultSettings(),
	}
}

func newTestRound(t *testing.T, blocks []*entity.Block, probs map[string]float64) *Round {
	t.Helper()
	var table *powerup.Table
	if probs != nil {
		var err error
		table, err = powerup.NewTable(probs)
		if err != nil {
			t.Fatalf("NewTable() error: %v", err)
		}
	}
	return New(testSettings(), blocks, table, core.NewSimpleRNG(42), nil)
}

// fly puts the only ball in flight at (x, y) heading dir.
func fly(r *Round, x, y float64, dir core.Vec) *entity.Ball {
	b := r.Balls()[0]
	b.Active = true
	b.Pos = core.Vec{x, y}
	b.Dir = dir
	return b
}

func TestNewRound(t *testing.T) {
	r := newTestRound(t, nil, nil)

	p := r.Paddle()
	if p.Rect().CenterX() != 512 || p.Rect().Bottom() != 748 {
		t.Errorf("paddle at center %v bottom %v", p.Rect().CenterX(), p.Rect().Bottom())
	}
	if len(r.Balls()) != 1 || r.Balls()[0].Active {
		t.Fatal("round should start with one resting ball")
	}
	if r.Balls()[0].Rect().Bottom() != p.Rect().Top() {
		t.Error("resting ball not seated on the paddle")
	}
	if !r.Serving() || r.Lives() != 3 {
		t.Errorf("serving=%v lives=%d", r.Serving(), r.Lives())
	}
}

func TestTickIgnoresBadDelta(t *testing.T) {
	r := newTestRound(t, nil, nil)
	fly(r, 500, 300, core.Vec{0, -1})

	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		res := r.Tick(dt, Input{Right: true})
		if len(res.Events) != 0 || r.Ticks() != 0 {
			t.Errorf("Tick(%v) did something", dt)
		}
	}
	if r.Balls()[0].Pos != (core.Vec{500, 300}) {
		t.Error("ball moved on a rejected tick")
	}
}

func TestRestingBallFollowsPaddleAndLaunches(t *testing.T) {
	r := newTestRound(t, nil, nil)

	r.Tick(0.1, Input{Right: true})
	b := r.Balls()[0]
	if b.Center().X() != r.Paddle().Rect().CenterX() {
		t.Errorf("resting ball x %v, paddle center %v", b.Center().X(), r.Paddle().Rect().CenterX())
	}

	res := r.Tick(0.01, Input{Launch: true})
	if !res.Has(EventLaunch) || !b.Active {
		t.Fatal("launch did not activate the ball")
	}
	if math.Abs(b.Dir.Len()-1) > eps || b.Dir.Y() >= 0 || math.Abs(b.Dir.X()) != math.Abs(b.Dir.Y()) {
		t.Errorf("launch direction %v, expected diagonal up", b.Dir)
	}
	if r.Serving() {
		t.Error("Serving() true with a ball in flight")
	}
}

func TestDestroyedBlockGoneNextTick(t *testing.T) {
	blk := entity.NewBlock(480, 100, 80, 30, 1)
	other := entity.NewBlock(800, 100, 80, 30, 2)
	r := newTestRound(t, []*entity.Block{blk, other}, nil)
	fly(r, 500, 135, core.Vec{0, -1})

	res := r.Tick(0.02, Input{}) // moves 8 up into the block's bottom face

	if blk.Health != 0 {
		t.Fatalf("block health = %d, expected 0", blk.Health)
	}
	if !res.Has(EventBlockDestroyed) || res.Points != 10 || r.Score() != 10 {
		t.Errorf("destroy not scored: points %d score %d", res.Points, r.Score())
	}
	for _, b := range r.Blocks() {
		if b == blk {
			t.Fatal("destroyed block still collidable")
		}
	}
	if len(r.Blocks()) != 1 || res.Cleared {
		t.Errorf("remaining blocks = %d", len(r.Blocks()))
	}
}

func TestLevelCleared(t *testing.T) {
	blk := entity.NewBlock(480, 100, 80, 30, 1)
	r := newTestRound(t, []*entity.Block{blk}, nil)
	fly(r, 500, 135, core.Vec{0, -1})

	res := r.Tick(0.02, Input{})
	if !res.Cleared || !res.Has(EventLevelCleared) || !r.Cleared() {
		t.Error("level not reported cleared")
	}
}

func TestMultiplyVisibleNextTick(t *testing.T) {
	r := newTestRound(t, nil, nil)
	parent := fly(r, 500, 300, core.Vec{0, -1})

	r.OnPowerUpCollected(powerup.MultiplyBalls)
	if len(r.Balls()) != 1 || r.Balls()[0] != parent {
		t.Fatal("multiply result visible before the next tick")
	}

	r.Tick(0.001, Input{})

	balls := r.Balls()
	if len(balls) != 2 {
		t.Fatalf("ball count = %d, expected 2", len(balls))
	}
	want := math.Sin(15 * math.Pi / 180)
	xs := []float64{balls[0].Dir.X(), balls[1].Dir.X()}
	if math.Abs(xs[0]+want) > eps || math.Abs(xs[1]-want) > eps {
		t.Errorf("children dir x = %v, expected -%v and %v", xs, want, want)
	}
	for _, b := range balls {
		if b == parent {
			t.Error("parent still present")
		}
		if b.Speed != 400 || b.Strength != 1 || b.Dir.Y() >= 0 {
			t.Errorf("child %+v does not match parent", b)
		}
	}
}

func TestMultiplyTwiceInOneTick(t *testing.T) {
	r := newTestRound(t, nil, nil)
	fly(r, 500, 300, core.Vec{0, -1})

	r.OnPowerUpCollected(powerup.MultiplyBalls)
	r.OnPowerUpCollected(powerup.MultiplyBalls)
	r.Tick(0.001, Input{})

	if len(r.Balls()) != 4 {
		t.Errorf("ball count = %d, expected 4", len(r.Balls()))
	}
}

func TestTimersRunBeforePhysics(t *testing.T) {
	s := testSettings()
	s.Effects.Durations.BallSpeed = 0.05
	r := New(s, nil, nil, core.NewSimpleRNG(1), nil)
	b := fly(r, 500, 400, core.Vec{0, -1})

	r.OnPowerUpCollected(powerup.FastBall)
	if b.Speed != 800 {
		t.Fatalf("fast-ball speed = %v", b.Speed)
	}

	res := r.Tick(0.1, Input{})
	if !res.Has(EventPowerUpExpired) {
		t.Fatal("fast-ball did not expire")
	}
	if math.Abs(b.Pos.Y()-360) > eps {
		t.Errorf("ball y = %v, expected 360 (moved at original speed)", b.Pos.Y())
	}
}

func TestLastBallLostCostsLife(t *testing.T) {
	r := newTestRound(t, nil, nil)
	b := fly(r, 100, 745, core.Vec{0, 1})

	res := r.Tick(0.02, Input{})

	if !res.Has(EventBallLost) || !res.Has(EventLifeLost) {
		t.Fatalf("events = %v", res.Events)
	}
	if r.Lives() != 2 {
		t.Errorf("lives = %d, expected 2", r.Lives())
	}
	if len(r.Balls()) != 1 || r.Balls()[0] != b || b.Active {
		t.Error("lost ball not reseated")
	}
	if b.Rect().Bottom() != r.Paddle().Rect().Top() {
		t.Error("reseated ball not on the paddle")
	}
}

func TestLostBallWithOthersInPlay(t *testing.T) {
	r := newTestRound(t, nil, nil)
	fly(r, 500, 300, core.Vec{0, -1})
	r.OnPowerUpCollected(powerup.MultiplyBalls)
	r.Tick(0.001, Input{})

	doomed := r.Balls()[0]
	doomed.Pos = core.Vec{100, 745}
	doomed.Dir = core.Vec{0, 1}

	res := r.Tick(0.02, Input{})

	if !res.Has(EventBallLost) || res.Has(EventLifeLost) {
		t.Errorf("events = %v", res.Events)
	}
	if len(r.Balls()) != 1 || r.Lives() != 3 {
		t.Errorf("balls = %d lives = %d", len(r.Balls()), r.Lives())
	}
}

func TestGameOver(t *testing.T) {
	r := newTestRound(t, nil, nil)
	for range 3 {
		fly(r, 100, 745, core.Vec{0, 1})
		r.Tick(0.02, Input{})
	}
	if !r.Over() || r.Lives() != 0 {
		t.Fatalf("over=%v lives=%d", r.Over(), r.Lives())
	}
	if res := r.Tick(0.02, Input{}); len(res.Events) != 0 {
		t.Error("finished round kept ticking")
	}
}

func TestAddLifeCapped(t *testing.T) {
	r := newTestRound(t, nil, nil)
	r.OnPowerUpCollected(powerup.AddLife)
	if r.Lives() != 3 {
		t.Errorf("lives = %d, expected cap of 3", r.Lives())
	}
}

func TestPowerUpDropAndCollect(t *testing.T) {
	blk := entity.NewBlock(472, 100, 80, 30, 1)
	r := newTestRound(t, []*entity.Block{blk}, map[string]float64{"big-paddle": 1})
	fly(r, 500, 135, core.Vec{0, -1})

	res := r.Tick(0.02, Input{})
	if !res.Has(EventPowerUpSpawned) {
		t.Fatal("no power-up spawned with probability 1")
	}
	if len(r.PowerUps()) != 0 {
		t.Fatal("capsule visible in the tick it spawned")
	}

	r.Tick(0.01, Input{})
	if len(r.PowerUps()) != 1 {
		t.Fatalf("capsule count = %d after commit, expected 1", len(r.PowerUps()))
	}

	// keep the ball out of the way
	r.Balls()[0].Active = false

	collected := false
	for range 200 {
		res := r.Tick(0.01, Input{})
		if res.Has(EventPowerUpCollected) {
			collected = true
			break
		}
	}
	if !collected {
		t.Fatal("capsule never reached the paddle")
	}
	if r.Paddle().Width() != 800 {
		t.Errorf("paddle width = %v, expected 800", r.Paddle().Width())
	}
	if r.Paddle().Rect().Left() < 0 || r.Paddle().Rect().Right() > 1024 {
		t.Error("paddle left the field after growing")
	}
}

func TestActivateByNameUnknown(t *testing.T) {
	r := newTestRound(t, nil, nil)
	if err := r.ActivateByName("bogus"); err == nil {
		t.Error("expected an error for an unknown power")
	}
	if err := r.ActivateByName("super-ball"); err != nil {
		t.Errorf("ActivateByName(super-ball) error: %v", err)
	}
	if got := r.ActivePowers(); len(got) != 1 || got[0] != powerup.SuperBall {
		t.Errorf("ActivePowers() = %v", got)
	}
}
