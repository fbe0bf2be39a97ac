package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hextrap/internal/games/hextrap/core"
	"github.com/vovakirdan/hextrap/internal/registry"
	"github.com/vovakirdan/hextrap/internal/stats"
)

var flagStatsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime statistics",
	Long: `Print the lifetime statistics record and, when the history database
is available, a summary per board.

Examples:
  hextrap stats
  hextrap stats --json
  hextrap stats --stats ./configs/stats.json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsJSON, "json", false, "Print the record in its file format")
}

func runStats(_ *cobra.Command, _ []string) (err error) {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()

	record := a.stats.Current()

	if flagStatsJSON {
		data, err := stats.Encode(record)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Statistics - %s\n", a.stats.Path())
	fmt.Println()
	fmt.Printf("  %-14s %d\n", "Record level", record.RecordLevel)
	fmt.Printf("  %-14s %d\n", "Games played", record.GamesPlayed)
	fmt.Printf("  %-14s %d\n", "Tiles tapped", record.TilesTapped)
	fmt.Printf("  %-14s %d\n", "Trapped", record.TigersTrapped)
	fmt.Printf("  %-14s %d\n", "Escaped", record.TigersEscaped)

	if a.history == nil {
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-10s  %-5s  %-5s  %-6s  %-7s  %-7s  %s\n",
		"Board", "Runs", "Best", "Avg", "Trapped", "Escaped", "Last played")
	fmt.Printf("  %-10s  %-5s  %-5s  %-6s  %-7s  %-7s  %s\n",
		"-----", "----", "----", "---", "-------", "-------", "-----------")

	for _, b := range registry.List() {
		vs, err := a.history.GetVariantStats(b.ID)
		if err != nil {
			return err
		}
		outcomes, err := a.history.OutcomeCounts(b.ID)
		if err != nil {
			return err
		}
		last := "never"
		if !vs.LastPlayed.IsZero() {
			last = vs.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-10s  %-5d  %-5d  %-6.1f  %-7d  %-7d  %s\n",
			b.ID, vs.Runs, vs.BestLevel, vs.AvgLevel,
			outcomes[string(core.OutcomeTrapped)], outcomes[string(core.OutcomeEscaped)], last)
	}
	return nil
}
