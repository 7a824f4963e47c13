package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagSimSeconds float64
	flagSimRuns    int
	flagSimMode    string
	flagSimVerify  bool
	flagSimSave    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless games with the autopilot",
	Long: `Play games without a terminal, steering the paddle with the autopilot.

Each run uses a fixed time step of 1/fps seconds and its own seed, starting
at --seed (or the current time). The summary ends with the hash of the final
round, so identical seeds must print identical hashes.

Examples:
  breakout sim --seed 42
  breakout sim --runs 10 --seconds 300 --difficulty hard
  breakout sim --seed 7 --verify
  breakout sim --mode endless --save`,
	Run: runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSimSeconds, "seconds", 120, "Simulated seconds per run")
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simCmd.Flags().StringVar(&flagSimMode, "mode", "campaign", "Mode: campaign or endless")
	simCmd.Flags().BoolVar(&flagSimVerify, "verify", false, "Run every seed twice and compare the final hashes")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the results in the scores database")
}

// simResult summarizes one headless run.
type simResult struct {
	seed    int64
	ticks   int
	state   core.GameState
	phase   string
	level   int
	cleared int
	lives   int
	hash    uint64
	data    []byte
}

// simulate plays one game with the autopilot for at most seconds of game time.
func simulate(opts registry.Options, id string, seed int64, seconds, dt float64) (simResult, error) {
	game, err := registry.Create(id, opts)
	if err != nil {
		return simResult{}, err
	}
	g, ok := game.(*breakout.Game)
	if !ok {
		return simResult{}, fmt.Errorf("game %s cannot be simulated", id)
	}

	g.Reset(core.RuntimeConfig{ScreenW: breakout.MinScreenW, ScreenH: breakout.MinScreenH, TickRate: flagFPS, Seed: seed})
	pilot := breakout.DefaultAutopilot()

	res := simResult{seed: seed}
	for elapsed := 0.0; elapsed < seconds; elapsed += dt {
		res.state = g.Step(dt, pilot.Input(g)).State
		res.ticks++
		if res.state.GameOver {
			break
		}
	}

	snap := g.Round().Snapshot()
	res.data, err = snap.Marshal()
	if err != nil {
		return simResult{}, err
	}
	res.phase = g.Phase()
	res.level = g.LevelNumber()
	res.cleared = g.Cleared()
	res.lives = g.Round().Lives()
	res.hash = snap.Hash()
	return res, nil
}

func runSim(_ *cobra.Command, _ []string) {
	id, ok := gameID(flagSimMode)
	if !ok {
		fail("unknown mode %q (campaign, endless)", flagSimMode)
	}
	if flagFPS <= 0 {
		fail("--fps must be positive")
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()
	if !flagDebug {
		// Per-level logs drown the summary
		logger.SetLevel(log.WarnLevel)
	}

	opts, preset, err := gameOptions(logger)
	if err != nil {
		fail("%v", err)
	}
	opts = tui.MenuChoice{GameID: id, Difficulty: preset}.Apply(opts)

	var store *storage.Store
	if flagSimSave {
		store = mustOpenStore()
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	dt := 1 / float64(flagFPS)

	fmt.Printf("  %-20s  %-8s  %6s  %5s  %7s  %5s  %-8s  %s\n", "Seed", "Phase", "Score", "Level", "Cleared", "Lives", "Time", "Hash")
	failed := false
	for i := range flagSimRuns {
		res, err := simulate(opts, id, seed+int64(i), flagSimSeconds, dt)
		if err != nil {
			fail("%v", err)
		}
		played := time.Duration(float64(res.ticks) * dt * float64(time.Second)).Round(time.Second)
		fmt.Printf("  %-20d  %-8s  %6d  %5d  %7d  %5d  %-8s  %016x\n",
			res.seed, res.phase, res.state.Score, res.level, res.cleared, res.lives, played, res.hash)

		if flagSimVerify {
			again, err := simulate(opts, id, res.seed, flagSimSeconds, dt)
			if err != nil {
				fail("%v", err)
			}
			if again.hash != res.hash || again.ticks != res.ticks {
				fmt.Printf("  seed %d diverged: %016x after %d ticks, then %016x after %d\n",
					res.seed, res.hash, res.ticks, again.hash, again.ticks)
				failed = true
			}
		}

		if store != nil {
			entry := storage.ScoreEntry{
				GameID:   id,
				Player:   "autopilot",
				Score:    res.state.Score,
				Level:    res.level,
				Cleared:  res.cleared,
				Seed:     res.seed,
				Snapshot: res.data,
			}
			if _, err := store.SaveScore(entry); err != nil {
				logger.Warn("result not saved", "seed", res.seed, "err", err)
			}
		}
	}

	if failed {
		fail("simulation is not deterministic")
	}
	if flagSimVerify {
		fmt.Println()
		fmt.Println("All runs reproduced their hashes.")
	}
}
