package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hextrap/internal/platform/tui"
	"github.com/vovakirdan/hextrap/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing the given board, or the configured default board.

Controls:
  Arrows/hjkl/wasd  - Move the cursor
  Enter/Space/Click - Trap a tile
  P                 - Pause
  R                 - Start a new game
  Esc/B             - Leave the game
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a text screenshot to ~/.hextrap/screenshots

Examples:
  hextrap play
  hextrap play wide
  hextrap play classic --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) (err error) {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()

	variant := a.cfg.Board.DefaultVariant
	if len(args) > 0 {
		variant = args[0]
	}
	if !registry.Exists(variant) {
		return fmt.Errorf("unknown board %q, run 'hextrap list' to see available boards", variant)
	}

	game, err := registry.Create(variant, a.env())
	if err != nil {
		return err
	}

	result, err := tui.Run(game, a.runtime())
	if err != nil {
		return fmt.Errorf("game %s: %w", variant, err)
	}
	a.logger.Info("game ended", "variant", variant, "level", result.State.Level)
	return nil
}
