// hextrap is a hex-grid puzzle: trap the rustacean before it reaches the
// edge of the board.
//
// Usage:
//
//	hextrap                  - Main menu (same as "hextrap menu")
//	hextrap play [board]     - Play a board directly
//	hextrap list             - List available boards
//	hextrap stats            - Show lifetime statistics
//	hextrap history          - Show recorded runs and levels
//	hextrap config           - Print the effective configuration
//	hextrap serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: from config)
//	--seed <value>     - Set RNG seed for reproducible boards
//	--config <path>    - Use a specific hextrap.yaml
//	--stats <path>     - Stats file (default: ./configs/stats.json)
//	--db <path>        - History database (default: ~/.hextrap/history.db)
//	--log-file <path>  - Write logs to a file while a UI is running
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Registers the built-in boards.
	_ "github.com/vovakirdan/hextrap/internal/games/hextrap"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagConfig  string
	flagStats   string
	flagDBPath  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hextrap",
	Short: "Hextrap - trap the rustacean on a hex board",
	Long: `Hextrap is a turn-based puzzle played on a staggered hex grid.
Every turn you trap one tile; the rustacean then takes one step along the
shortest path to the edge. Surround it to win the level. Each new level
starts with fewer traps.

Available commands:
  menu     - Main menu (default)
  play     - Play a board directly
  list     - Show all boards
  stats    - Show lifetime statistics
  history  - Show recorded runs and levels
  config   - Print the effective configuration
  serve    - Start SSH server for remote play

Examples:
  hextrap
  hextrap play wide
  hextrap stats --json
  hextrap serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate in frames per second (0 = config value)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to hextrap.yaml")
	rootCmd.PersistentFlags().StringVar(&flagStats, "stats", "", "Path to the stats file (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}
