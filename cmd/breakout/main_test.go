package main

import (
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

func TestGameID(t *testing.T) {
	tests := []struct {
		mode     string
		expected string
		ok       bool
	}{
		{"", breakout.IDCampaign, true},
		{"campaign", breakout.IDCampaign, true},
		{"endless", breakout.IDEndless, true},
		{"versus", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got, ok := gameID(tt.mode)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("gameID(%q) = %q, %v, expected %q, %v", tt.mode, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestPort(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"[::1]:22":       "22",
		"no-port-at-all": "no-port-at-all",
	}
	for addr, expected := range tests {
		if got := port(addr); got != expected {
			t.Errorf("port(%q) = %q, expected %q", addr, got, expected)
		}
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	opts, _, err := gameOptions(nil)
	if err != nil {
		t.Fatalf("gameOptions() failed: %v", err)
	}

	first, err := simulate(opts, breakout.IDCampaign, 99, 20, 1.0/60)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	second, err := simulate(opts, breakout.IDCampaign, 99, 20, 1.0/60)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	if first.hash != second.hash || first.ticks != second.ticks {
		t.Errorf("runs diverged: %016x/%d vs %016x/%d", first.hash, first.ticks, second.hash, second.ticks)
	}
	if first.ticks == 0 || len(first.data) == 0 {
		t.Errorf("simulate() = %+v, expected ticks and a snapshot", first)
	}
}
