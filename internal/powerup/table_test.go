package powerup

import (
	"errors"
	"testing"
)

type fixedSource struct {
	r     float64
	picks []int
}

func (s *fixedSource) Float64() float64 { return s.r }

func (s *fixedSource) Intn(n int) int {
	if len(s.picks) == 0 {
		return 0
	}
	i := s.picks[0] % n
	s.picks = s.picks[1:]
	return i
}

func TestRoll(t *testing.T) {
	table, err := NewTable(map[string]float64{
		"add-life":       0.1,
		"big-ball":       0.5,
		"multiply-balls": 0.5,
	})
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}

	tests := []struct {
		name   string
		r      float64
		pick   int
		want   Power
		wantOK bool
	}{
		{"roll above every probability", 0.7, 0, 0, false},
		{"only high-probability powers eligible", 0.3, 1, MultiplyBalls, true},
		{"all eligible", 0.05, 0, AddLife, true},
		{"boundary is inclusive", 0.1, 0, AddLife, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := table.Roll(&fixedSource{r: tc.r, picks: []int{tc.pick}})
			if ok != tc.wantOK {
				t.Fatalf("Roll() ok = %v, expected %v", ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Errorf("Roll() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestNewTableRejects(t *testing.T) {
	if _, err := NewTable(map[string]float64{"nope": 0.1}); !errors.Is(err, ErrUnknownPower) {
		t.Errorf("unknown name error = %v", err)
	}
	if _, err := NewTable(map[string]float64{"big-ball": 1.5}); err == nil {
		t.Error("probability above 1 should be rejected")
	}
}

func TestEntriesOrderedByPower(t *testing.T) {
	table, err := NewTable(map[string]float64{"small-paddle": 0.2, "add-life": 0.1, "fast-ball": 0.3})
	if err != nil {
		t.Fatalf("NewTable() failed: %v", err)
	}

	entries := table.Entries()
	expected := []Power{AddLife, FastBall, SmallPaddle}
	if len(entries) != len(expected) {
		t.Fatalf("len(Entries()) = %d, expected %d", len(entries), len(expected))
	}
	for i, e := range entries {
		if e.Power != expected[i] {
			t.Errorf("entry %d = %s, expected %s", i, e.Power, expected[i])
		}
	}

	entries[0].Probability = 1
	if table.Entries()[0].Probability != 0.1 {
		t.Error("Entries() should return a copy")
	}
}
