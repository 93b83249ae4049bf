package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var flagReset bool

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the best score",
	Long: `Display the stored best score and who set it.

Examples:
  snake best
  snake best --db ./snake.db
  snake best --reset`,
	Args: cobra.NoArgs,
	Run:  runBest,
}

func init() {
	bestCmd.Flags().BoolVar(&flagReset, "reset", false, "Clear the stored best score")
}

func runBest(_ *cobra.Command, _ []string) {
	if err := best(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func best() error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening best score store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	if flagReset {
		if err := store.Reset(ctx); err != nil {
			return fmt.Errorf("resetting best score: %w", err)
		}
		fmt.Println("Best score cleared.")
		return nil
	}

	rec, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("retrieving best score: %w", err)
	}

	fmt.Println("Best Score - Snake")
	fmt.Println()
	if rec.Score == 0 {
		fmt.Println("No score recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-10s  %-8s  %s\n", "Score", "Initials", "Set")
	fmt.Printf("  %-10s  %-8s  %s\n", "-----", "--------", "---")
	when := "unknown"
	if !rec.UpdatedAt.IsZero() {
		when = humanize.Time(rec.UpdatedAt)
	}
	fmt.Printf("  %-10s  %-8s  %s\n", humanize.Comma(int64(rec.Score)), rec.Initials, when)
	return nil
}
