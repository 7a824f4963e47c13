package round

import (
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/entity"
	"github.com/vovakirdan/tui-breakout/internal/level"
	"github.com/vovakirdan/tui-breakout/internal/powerup"
)

func testTable(t *testing.T) *powerup.Table {
	t.Helper()
	table, err := powerup.NewTable(map[string]float64{
		"multiply-balls": 0.3,
		"fast-ball":      0.3,
		"big-paddle":     0.3,
	})
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func buildRound(t *testing.T, seed int64) *Round {
	t.Helper()
	grid := level.Grid{FieldWidth: 1024, FieldHeight: 768, Gap: 5, MinRows: 13}
	lvl, err := level.NewCatalog().ByID("original")
	if err != nil {
		t.Fatal(err)
	}
	return New(testSettings(), grid.Build(lvl), testTable(t), core.NewSimpleRNG(seed), nil)
}

// autopilot keeps the paddle under the lowest ball.
func autopilot(r *Round, tick int) Input {
	in := Input{Launch: tick%30 == 0}
	var target *entity.Ball
	for _, b := range r.Balls() {
		if target == nil || b.Pos.Y() > target.Pos.Y() {
			target = b
		}
	}
	if target != nil {
		pc := r.Paddle().Rect().CenterX()
		in.Left = target.Center().X() < pc-20
		in.Right = target.Center().X() > pc+20
	}
	return in
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		r := buildRound(t, 12345)
		for i := range 3000 {
			r.Tick(1.0/60, autopilot(r, i))
			if r.Over() || r.Cleared() {
				break
			}
		}
		return r.Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("hashes differ: %d vs %d", a.Hash(), b.Hash())
	}
	if a.Score != b.Score || a.Ticks != b.Ticks {
		t.Errorf("score %d/%d ticks %d/%d", a.Score, b.Score, a.Ticks, b.Ticks)
	}
}

func TestSnapshotRestore(t *testing.T) {
	r := buildRound(t, 7)
	for i := range 600 {
		r.Tick(1.0/60, autopilot(r, i))
	}
	r.OnPowerUpCollected(powerup.SlowBall)

	data, err := r.Snapshot().Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	snap, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot() error: %v", err)
	}
	restored := Restore(testSettings(), snap, testTable(t), nil)

	if restored.Snapshot().Hash() != r.Snapshot().Hash() {
		t.Fatal("restored round differs from the original")
	}
	if !restored.effects.IsActive(powerup.SlowBall) {
		t.Error("restored round lost the active slow-ball")
	}

	// both continue identically
	for i := range 120 {
		in := autopilot(r, i)
		r.Tick(1.0/60, in)
		restored.Tick(1.0/60, in)
	}
	if restored.Snapshot().Hash() != r.Snapshot().Hash() {
		t.Error("restored round diverged")
	}
}

func TestUnmarshalSnapshotGarbage(t *testing.T) {
	if _, err := UnmarshalSnapshot([]byte{0xc1}); err == nil {
		t.Error("expected an error for invalid msgpack")
	}
}
