package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagHistoryBoard  string
	flagHistoryPlayer string
	flagHistoryLimit  int
	flagHistoryLevels bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs and levels",
	Long: `Display the deepest recorded runs, or the most recent finished levels
with --levels.

Examples:
  hextrap history
  hextrap history --board wide --limit 5
  hextrap history --levels --player alice`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryBoard, "board", "", "Only show runs on this board")
	historyCmd.Flags().StringVar(&flagHistoryPlayer, "player", "", "Only show levels of this player")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of rows")
	historyCmd.Flags().BoolVar(&flagHistoryLevels, "levels", false, "Show finished levels instead of runs")
}

func runHistory(_ *cobra.Command, _ []string) (err error) {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()

	if a.history == nil {
		return errors.New("history database is not available")
	}

	if flagHistoryLevels {
		return printLevels(a)
	}
	return printRuns(a)
}

func printRuns(a *app) error {
	runs, err := a.history.TopRuns(flagHistoryBoard, flagHistoryLimit)
	if err != nil {
		return err
	}

	fmt.Println("Best runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'hextrap play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-12s  %-5s  %-5s  %s\n", "Rank", "Board", "Player", "Level", "Taps", "Date")
	fmt.Printf("  %-4s  %-10s  %-12s  %-5s  %-5s  %s\n", "----", "-----", "------", "-----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-10s  %-12s  %-5d  %-5d  %s\n",
			i+1, r.Variant, r.Player, r.LevelReached, r.Taps, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if flagHistoryBoard != "" {
		if best, err := a.history.BestLevel(flagHistoryBoard); err == nil {
			fmt.Println()
			fmt.Printf("Best level on %s: %d\n", flagHistoryBoard, best)
		}
	}
	return nil
}

func printLevels(a *app) error {
	levels, err := a.history.RecentLevelResults(flagHistoryPlayer, flagHistoryLimit)
	if err != nil {
		return err
	}

	fmt.Println("Recent levels")
	fmt.Println()
	if len(levels) == 0 {
		fmt.Println("No levels recorded yet.")
		return nil
	}

	fmt.Printf("  %-10s  %-12s  %-5s  %-8s  %-4s  %-5s  %-7s  %s\n",
		"Board", "Player", "Level", "Outcome", "Taps", "Moves", "Time", "Date")
	fmt.Printf("  %-10s  %-12s  %-5s  %-8s  %-4s  %-5s  %-7s  %s\n",
		"-----", "------", "-----", "-------", "----", "-----", "----", "----")
	for _, l := range levels {
		fmt.Printf("  %-10s  %-12s  %-5d  %-8s  %-4d  %-5d  %-7s  %s\n",
			l.Variant, l.Player, l.Level, l.Outcome, l.Taps, l.Moves,
			fmt.Sprintf("%.1fs", l.Duration.Seconds()), l.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
