package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hextrap/internal/platform/tui"
	"github.com/vovakirdan/hextrap/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start hextrap with the main menu",
	Long: `Start hextrap in interactive menu mode.

The main menu offers New Game, Stats and Quit. Pick the board with
left/right on the New Game entry. When a rustacean escapes you return to
the menu; quitting from anywhere saves your statistics.

Controls:
  Up/Down/j/k   - Navigate menu
  Left/Right    - Choose board
  Enter/Space   - Select
  N / S         - New game / Stats
  Q/Esc         - Quit

Examples:
  hextrap menu
  hextrap menu --fps 30
  hextrap menu --stats ./my-stats.json`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) (err error) {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()

	cfg := a.runtime()
	variant := a.cfg.Board.DefaultVariant

	for {
		menuResult, err := tui.RunMenu(cfg, a.stats.Current(), variant)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		switch {
		case menuResult.Quit:
			return nil

		case menuResult.WantsStats:
			goBack, err := tui.RunStats(a.stats.Current(), a.history, "", cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			variant = menuResult.Variant
			game, err := registry.Create(variant, a.env())
			if err != nil {
				return err
			}
			a.logger.Info("game started", "variant", variant)
			result, err := tui.Run(game, cfg)
			if err != nil {
				return fmt.Errorf("game %s: %w", variant, err)
			}
			a.logger.Info("game ended", "variant", variant, "level", result.State.Level)
			if !result.BackToMenu {
				return nil
			}
		}
	}
}
