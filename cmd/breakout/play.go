package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

var flagLevel string

var playCmd = &cobra.Command{
	Use:   "play [campaign|endless]",
	Short: "Play a mode directly, skipping the menu",
	Long: `Start playing right away.

Campaign plays every level once and ends with a win. Endless keeps
cycling through the levels until the last life is lost.

Controls:
  Left/Right, A/D  - Move paddle
  Space/Up         - Launch ball
  P                - Pause
  R                - Restart (after game over)
  Esc              - Quit (when paused or over)
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 5 lives, wide paddle, slow ball
  normal - Default settings, speed grows with cleared levels
  hard   - 2 lives, narrow paddle, fast ball, starts faster
  fixed  - No speed progression

Examples:
  breakout play
  breakout play endless --difficulty hard
  breakout play --level pyramid
  breakout play --config ./my-breakout.yaml`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{config.ModeCampaign, config.ModeEndless},
	Run:       runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level id to start from (see 'breakout levels')")
}

// gameID maps a mode name to its registered game.
func gameID(mode string) (string, bool) {
	switch mode {
	case "", config.ModeCampaign:
		return breakout.IDCampaign, true
	case config.ModeEndless:
		return breakout.IDEndless, true
	}
	return "", false
}

func runPlay(_ *cobra.Command, args []string) {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	id, ok := gameID(mode)
	if !ok {
		fail("unknown mode %q (campaign, endless)", mode)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	opts, preset, err := gameOptions(logger)
	if err != nil {
		fail("%v", err)
	}
	choice := tui.MenuChoice{GameID: id, Level: flagLevel, Difficulty: preset}
	opts = choice.Apply(opts)

	if flagLevel != "" {
		catalog, err := opts.Config.Catalog()
		if err != nil {
			fail("%v", err)
		}
		if _, err := catalog.ByID(flagLevel); err != nil {
			fail("%v", err)
		}
	}

	game, err := registry.Create(id, opts)
	if err != nil {
		fail("creating game: %v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	sound := openSound(logger)
	defer sound.Close()

	gameOpts := tui.GameOptions{Store: store, Logger: logger, Player: os.Getenv("USER")}
	if sound != nil {
		gameOpts.Sound = sound
	}

	if err := tui.Run(game, runtimeConfig(), gameOpts); err != nil {
		fail("running game: %v", err)
	}
}
