package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	flagScoresPlayer string
	flagScoresLimit  int
	flagScoresLang   string
	flagScoresStats  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the longest runs",
	Long: `Display the longest runs recorded in --db.

Examples:
  rollingstone scores
  rollingstone scores --player alice --limit 20
  rollingstone scores --stats --lang de`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show runs by this player")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresLang, "lang", "en", "Language tag used to format numbers")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Also show totals over every run")
}

func runScores(_ *cobra.Command, _ []string) {
	tag, err := language.Parse(flagScoresLang)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()

	runs, err := store.TopRuns(ctx, flagScoresPlayer, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	title := "Longest Runs"
	if flagScoresPlayer != "" {
		title += " - " + flagScoresPlayer
	}
	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'rollingstone play' to set the first record!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %10s  %8s  %-18s  %s\n", "Rank", "Player", "Distance", "Time", "Reason", "Date")
	fmt.Printf("  %-4s  %-16s  %10s  %8s  %-18s  %s\n", "----", "------", "--------", "----", "------", "----")

	for i, r := range runs {
		p.Printf("  %-4d  %-16s  %8d m  %8s  %-18s  %s\n",
			i+1, r.Player, r.Score, r.Duration.Round(time.Second), r.Reason,
			r.PlayedAt.Local().Format("2006-01-02 15:04"))
	}

	if !flagScoresStats {
		return
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	fmt.Println()
	p.Printf("Runs: %d by %d players\n", stats.Runs, stats.Players)
	p.Printf("Best: %d m, average %.1f m\n", stats.BestScore, stats.AvgScore)
	p.Printf("Total distance: %.0f\n", stats.TotalDistance)

	reasons := make([]string, 0, len(stats.Reasons))
	for r := range stats.Reasons {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool {
		return stats.Reasons[reasons[i]] > stats.Reasons[reasons[j]]
	})
	for _, r := range reasons {
		p.Printf("  %-18s %d\n", r, stats.Reasons[r])
	}
}
