// snake is a toroidal Snake game for the terminal.
//
// Usage:
//
//	snake play             - Play in this terminal
//	snake serve            - Start SSH server for remote play
//	snake http             - Start the HTTP API
//	snake best [--reset]   - Show or clear the best score
//
// Global flags:
//
//	--config <path>        - Custom snake.yaml
//	--difficulty <preset>  - easy, normal, hard or fixed
//	--seed <value>         - Set RNG seed for reproducible food placement
//	--db <path>            - Set database path (default: ~/.snake/snake.db)
//	--store <kind>         - sqlite or memory
//	--log-level <level>    - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagDBPath     string
	flagStore      string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game on a wrapping board",
	Long: `Snake is played on a board whose edges wrap around: leave on the
right and you come back on the left. Eat food to grow and speed up; run
into yourself and the round is over. The best score is kept with your
initials.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  http     - Start the HTTP API
  best     - Show the best score

Examples:
  snake play
  snake play --difficulty hard --seed 42
  snake serve --ssh :2222 --watch-config
  snake http --addr :8080
  snake best`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/snake.db", "Path to best score database")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "sqlite", "Best score store: sqlite, memory")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(httpCmd)
	rootCmd.AddCommand(bestCmd)
}
