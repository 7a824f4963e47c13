package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels",
	Long: `Shows the built-in levels followed by the custom levels of the config.

Examples:
  breakout levels
  breakout levels --config ./my-breakout.yaml
  breakout levels show pyramid`,
	Run: runLevels,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the layout of a level",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsShow,
}

func init() {
	levelsCmd.AddCommand(levelsShowCmd)
}

// loadConfig loads the configuration named by the flags or exits.
func loadConfig() config.Config {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	opts, _, err := gameOptions(logger)
	if err != nil {
		fail("%v", err)
	}
	return opts.Config
}

// loadCatalog loads the config and builds its level catalog.
func loadCatalog() *level.Catalog {
	catalog, err := loadConfig().Catalog()
	if err != nil {
		fail("%v", err)
	}
	return catalog
}

func runLevels(_ *cobra.Command, _ []string) {
	levels := loadCatalog().All()

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %3s  %-*s  %6s  %5s  %s\n", "#", maxIDLen, "ID", "Blocks", "Size", "Name")
	fmt.Printf("  %3s  %-*s  %6s  %5s  %s\n", "--", maxIDLen, "--", "------", "----", "----")

	for i, l := range levels {
		size := fmt.Sprintf("%dx%d", l.Width, l.Height)
		fmt.Printf("  %3d  %-*s  %6d  %5s  %s\n", i+1, maxIDLen, l.ID, l.BlockCount(), size, l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'breakout play --level <id>' to start from a level.")
}

func runLevelsShow(_ *cobra.Command, args []string) {
	l, err := loadCatalog().ByID(args[0])
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("%s (%s), %d blocks\n\n", l.Name, l.ID, l.BlockCount())
	for _, row := range l.Rows() {
		fmt.Printf("  |%s|\n", row)
	}
}
