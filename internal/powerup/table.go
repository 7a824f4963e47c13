package powerup

import (
	"fmt"
	"sort"
)

// Source is the random source used for spawn rolls.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Entry is one row of the spawn table.
type Entry struct {
	Power       Power
	Probability float64
}

// Table decides which power, if any, a destroyed block drops.
type Table struct {
	entries []Entry
}

// NewTable builds a table from identifier -> probability pairs.
// Entries are ordered by power so rolls are reproducible for a given seed.
func NewTable(probabilities map[string]float64) (*Table, error) {
	t := &Table{entries: make([]Entry, 0, len(probabilities))}
	for name, prob := range probabilities {
		p, err := ParsePower(name)
		if err != nil {
			return nil, err
		}
		if prob < 0 || prob > 1 {
			return nil, fmt.Errorf("powerup: probability for %s out of range [0,1]: %v", name, prob)
		}
		t.entries = append(t.entries, Entry{Power: p, Probability: prob})
	}
	sort.Slice(t.entries, func(i, j int) bool {
		return t.entries[i].Power < t.entries[j].Power
	})
	return t, nil
}

// Entries returns a copy of the table rows.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Roll draws r in [0,1). Every power whose probability is at least r is
// eligible, and one of them is picked uniformly.
func (t *Table) Roll(rng Source) (Power, bool) {
	r := rng.Float64()

	eligible := make([]Power, 0, len(t.entries))
	for _, e := range t.entries {
		if r <= e.Probability {
			eligible = append(eligible, e.Power)
		}
	}
	if len(eligible) == 0 {
		return 0, false
	}
	return eligible[rng.Intn(len(eligible))], true
}
