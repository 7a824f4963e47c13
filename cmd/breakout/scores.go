package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/round"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [campaign|endless]",
	Short: "Show high scores",
	Long: `Display the top scores of a mode (campaign by default).

Examples:
  breakout scores
  breakout scores endless --limit 20
  breakout scores snapshot 12
  breakout scores clear endless`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

var scoresSnapshotCmd = &cobra.Command{
	Use:   "snapshot <score-id>",
	Short: "Describe the final round saved with a score",
	Args:  cobra.ExactArgs(1),
	Run:   runScoresSnapshot,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear [campaign|endless]",
	Short: "Delete all scores of a mode",
	Args:  cobra.MaximumNArgs(1),
	Run:   runScoresClear,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.AddCommand(scoresSnapshotCmd)
	scoresCmd.AddCommand(scoresClearCmd)
}

// modeArg resolves the optional mode argument to a game id.
func modeArg(args []string) string {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	id, ok := gameID(mode)
	if !ok {
		fail("unknown mode %q (campaign, endless)", mode)
	}
	return id
}

// mustOpenStore opens the score database or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	return store
}

func runScores(_ *cobra.Command, args []string) {
	id := modeArg(args)

	store := mustOpenStore()
	defer store.Close()

	scores, err := store.TopScores(id, flagLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", id)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'breakout play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-12s  %-8s  %-5s  %s\n", "Rank", "ID", "Player", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-6s  %-12s  %-8s  %-5s  %s\n", "----", "--", "------", "-----", "-----", "----")

	for i, e := range scores {
		player := e.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-6d  %-12s  %-8d  %-5d  %s\n",
			i+1, e.ID, player, e.Score, e.Level, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GameStats(id); err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Average: %.0f  Furthest level: %d\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestLevel)
	}
}

func runScoresSnapshot(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fail("invalid score id %q", args[0])
	}

	store := mustOpenStore()
	defer store.Close()

	data, err := store.Snapshot(id)
	if errors.Is(err, storage.ErrNotFound) {
		fail("no score with id %d", id)
	}
	if err != nil {
		fail("%v", err)
	}
	if data == nil {
		fmt.Printf("Score %d was saved without a snapshot.\n", id)
		return
	}

	snap, err := round.UnmarshalSnapshot(data)
	if err != nil {
		fail("decoding snapshot: %v", err)
	}

	alive := 0
	for _, b := range snap.Blocks {
		if b.Health > 0 {
			alive++
		}
	}

	fmt.Printf("Snapshot of score %d\n\n", id)
	fmt.Printf("  Ticks:     %d\n", snap.Ticks)
	fmt.Printf("  Score:     %d\n", snap.Score)
	fmt.Printf("  Lives:     %d\n", snap.Lives)
	fmt.Printf("  Balls:     %d\n", len(snap.Balls))
	fmt.Printf("  Blocks:    %d of %d left\n", alive, len(snap.Blocks))
	fmt.Printf("  Capsules:  %d falling\n", len(snap.PowerUps))
	for _, e := range snap.Effects {
		fmt.Printf("  Effect:    %s, %.1fs left\n", e.Power, e.Timer.Remaining())
	}
	fmt.Printf("  Hash:      %016x\n", snap.Hash())
}

func runScoresClear(_ *cobra.Command, args []string) {
	id := modeArg(args)

	store := mustOpenStore()
	defer store.Close()

	if err := store.ClearScores(id); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Cleared all %s scores.\n", id)
}
