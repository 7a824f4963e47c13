// breakout is a brick-breaking game for the terminal.
//
// Usage:
//
//	breakout                   - Start the menu (same as "breakout menu")
//	breakout play [mode]       - Play campaign or endless directly
//	breakout levels            - List the levels
//	breakout powerups          - List the power-ups and their drop chances
//	breakout scores [mode]     - Show high scores
//	breakout sim               - Run a headless game with the autopilot
//	breakout serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.breakout/scores.db)
//	--config <path>       - Load a custom breakout.yaml
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-file <path>     - Write logs to a file
//	--sound=false         - Mute sound effects
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/registry"

	// Register the game modes
	_ "github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagDebug      bool
	flagSound      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - break bricks in your terminal",
	Long: `Breakout is a brick-breaking game played in the terminal.

Available commands:
  menu     - Interactive menu (default)
  play     - Play a mode directly
  levels   - List the levels
  powerups - List the power-ups
  scores   - View high scores
  sim      - Headless autopilot run
  serve    - Start SSH server for remote play

Examples:
  breakout
  breakout play endless --difficulty hard
  breakout levels
  breakout serve --ssh :2222
  breakout scores endless`,
	Run: runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breakout/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom breakout.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", true, "Play sound effects")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(powerupsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger. Full-screen commands pass io.Discard
// as fallback so log lines never land on the game screen.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "breakout",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// gameOptions loads the configuration named by the flags. The difficulty
// preset is returned separately so the menu can offer to change it.
func gameOptions(logger *log.Logger) (registry.Options, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return registry.Options{}, "", err
	}

	cfg, err := config.Load(flagConfig, logger)
	if err != nil {
		return registry.Options{}, "", err
	}
	return registry.Options{Config: cfg, Logger: logger}, preset, nil
}

// fail prints an error and exits, the way every command reports fatal errors.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
