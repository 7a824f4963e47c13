package powerup

import (
	"errors"
	"testing"
)

func TestParsePower(t *testing.T) {
	for _, p := range All() {
		got, err := ParsePower(p.String())
		if err != nil {
			t.Errorf("ParsePower(%q) error: %v", p.String(), err)
			continue
		}
		if got != p {
			t.Errorf("ParsePower(%q) = %v, expected %v", p.String(), got, p)
		}
	}

	if _, err := ParsePower("mega-ball"); !errors.Is(err, ErrUnknownPower) {
		t.Errorf("ParsePower(unknown) error = %v, expected ErrUnknownPower", err)
	}
}

func TestConflictIsSymmetric(t *testing.T) {
	for _, p := range All() {
		other, ok := p.Conflict()
		if !ok {
			continue
		}
		back, ok := other.Conflict()
		if !ok || back != p {
			t.Errorf("%v conflicts with %v but not the reverse", p, other)
		}
		if p.Category() != other.Category() {
			t.Errorf("%v and %v conflict across categories", p, other)
		}
	}
}

func TestTimed(t *testing.T) {
	untimed := map[Power]bool{AddLife: true, MultiplyBalls: true}
	for _, p := range All() {
		if p.Timed() == untimed[p] {
			t.Errorf("%v.Timed() = %v", p, p.Timed())
		}
	}
	if _, ok := SuperBall.Conflict(); ok {
		t.Error("super-ball should have no conflict")
	}
}

func TestDurations(t *testing.T) {
	d := DefaultDurations()
	tests := []struct {
		c    Category
		want float64
	}{
		{CategoryBallSize, 15},
		{CategoryBallSpeed, 10},
		{CategoryBallStrength, 20},
		{CategoryPaddleSize, 15},
		{CategoryNone, 0},
	}
	for _, tc := range tests {
		if got := d.For(tc.c); got != tc.want {
			t.Errorf("For(%v) = %v, expected %v", tc.c, got, tc.want)
		}
	}
}
