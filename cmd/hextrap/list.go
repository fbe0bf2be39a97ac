package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hextrap/internal/config"
	"github.com/vovakirdan/hextrap/internal/games/hextrap"
	"github.com/vovakirdan/hextrap/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available boards",
	Long:  `Shows the built-in boards and the boards defined in the configuration.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	hextrap.RegisterConfigVariants(cfg)

	boards := registry.List()
	if len(boards) == 0 {
		fmt.Println("No boards available.")
		return nil
	}

	fmt.Println("Available boards:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, b := range boards {
		maxIDLen = max(maxIDLen, len(b.ID))
	}

	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Grid", "Title")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "----", "-----")

	for _, b := range boards {
		grid := "-"
		if v, ok := cfg.Variant(b.ID); ok {
			grid = v.Size().String()
		}
		marker := ""
		if b.ID == cfg.Board.DefaultVariant {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %-7s  %s%s\n", maxIDLen, b.ID, grid, b.Title, marker)
	}

	fmt.Println()
	fmt.Println("Run 'hextrap play <id>' to play a board.")
	return nil
}
