package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/powerup"
)

var powerupsCmd = &cobra.Command{
	Use:   "powerups",
	Short: "List the power-ups and their drop chances",
	Long: `Shows every power-up of the config's drop table with its effect category,
duration and the power it cancels.

A destroyed block draws r in [0,1); every power whose chance is at least r
is eligible, and one of them drops.

Examples:
  breakout powerups
  breakout powerups --config ./my-breakout.yaml`,
	Run: runPowerUps,
}

func runPowerUps(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	table, err := cfg.SpawnTable()
	if err != nil {
		fail("%v", err)
	}
	durations := cfg.EffectSettings().Durations

	fmt.Printf("  %-3s  %-14s  %-13s  %8s  %6s  %s\n", "", "Power", "Category", "Duration", "Chance", "Cancels")
	fmt.Printf("  %-3s  %-14s  %-13s  %8s  %6s  %s\n", "", "-----", "--------", "--------", "------", "-------")

	for _, e := range table.Entries() {
		duration := "instant"
		if e.Power.Timed() {
			duration = fmt.Sprintf("%.0fs", durations.For(e.Power.Category()))
		}
		cancels := "-"
		if c, ok := e.Power.Conflict(); ok {
			cancels = c.String()
		}
		fmt.Printf("  %-3c  %-14s  %-13s  %8s  %5.0f%%  %s\n",
			e.Power.Glyph(), e.Power, e.Power.Category(), duration, e.Probability*100, cancels)
	}

	if len(table.Entries()) == 0 {
		fmt.Println()
		fmt.Println("No power-ups drop with this config.")
	}
}
