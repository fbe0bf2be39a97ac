// hextrap-gui plays hextrap in a window.
//
// Usage:
//
//	hextrap-gui [--board classic] [--seed 42] [--config path] [--stats path] [--db path]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hextrap/internal/config"
	"github.com/vovakirdan/hextrap/internal/platform/gui"
	"github.com/vovakirdan/hextrap/internal/registry"
	"github.com/vovakirdan/hextrap/internal/stats"
	"github.com/vovakirdan/hextrap/internal/storage"
)

var (
	flagBoard   string
	flagSeed    int64
	flagFPS     int
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
	Use:   "hextrap-gui",
	Short: "Hextrap in a window",
	Long: `Play hextrap in a window.

Controls:
  N / S / Q     - New game / Stats / Quit (main menu)
  Left/Right    - Choose board (main menu)
  Click         - Trap a tile
  Mouse wheel   - Zoom
  F11           - Toggle fullscreen
  Esc           - Back to the main menu`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagBoard, "board", "", "Preselected board (default from config)")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = config value)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to hextrap.yaml")
	rootCmd.Flags().StringVar(&flagStats, "stats", "", "Path to the stats file (default from config)")
	rootCmd.Flags().StringVar(&flagDBPath, "db", "", "Path to the history database (default from config)")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")
}

func run(_ *cobra.Command, _ []string) (err error) {
	var w io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "hextrap-gui",
	})

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	statsPath := flagStats
	if statsPath == "" {
		statsPath = cfg.Paths.Stats
	}
	record, err := stats.Open(statsPath)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, record.Flush())
	}()

	env := registry.Env{Config: cfg, Stats: record, Logger: logger}

	dbPath := flagDBPath
	if dbPath == "" {
		dbPath = cfg.Paths.History
	}
	if history, err := storage.Open(dbPath); err != nil {
		logger.Warn("could not open history database", "path", dbPath, "err", err)
	} else {
		defer history.Close()
		env.History = history
	}

	if flagBoard != "" {
		if _, ok := cfg.Variant(flagBoard); !ok {
			return fmt.Errorf("unknown board %q", flagBoard)
		}
	}

	game, err := gui.New(gui.Options{
		Env:      env,
		Variant:  flagBoard,
		Seed:     flagSeed,
		TickRate: flagFPS,
	})
	if err != nil {
		return err
	}
	return gui.Run(game)
}
