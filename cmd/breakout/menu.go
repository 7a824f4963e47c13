package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start breakout with the menu.

Pick campaign, endless or a single level, change the difficulty with
left/right, or browse the high scores. After a game you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter/Space  - Select
  Q            - Quit

Examples:
  breakout menu
  breakout menu --difficulty easy --fps 30
  breakout menu --sound=false`,
	Run: runMenu,
}

// terminalSize returns the size of the controlling terminal, or 80x24.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// runtimeConfig builds the runtime config from the flags and the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := terminalSize()
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database. Failures only disable score saving.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "err", err)
		return nil
	}
	return store
}

// openSound starts the audio player when --sound is set. A nil player is
// silent.
func openSound(logger *log.Logger) *audio.Player {
	if !flagSound {
		return nil
	}
	player, err := audio.New(logger)
	if err != nil {
		logger.Warn("sound disabled", "err", err)
	}
	return player
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	opts, preset, err := gameOptions(logger)
	if err != nil {
		fail("%v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	sound := openSound(logger)
	defer sound.Close()

	cfg := tui.SessionConfig{
		Store:      store,
		Runtime:    runtimeConfig(),
		Player:     os.Getenv("USER"),
		Game:       opts,
		Difficulty: preset,
	}
	if sound != nil {
		cfg.Sound = sound
	}

	if err := tui.RunSession(cfg); err != nil {
		fail("%v", err)
	}
}
