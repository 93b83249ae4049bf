package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in this terminal",
	Long: `Start a game of snake in the current terminal.

Controls:
  W A S D / Arrows  - Steer
  Space             - Start
  Enter             - Save initials after a new high score
  R                 - Restart (after game over)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slower start, gentle speed-up
  normal - Defaults from the configuration
  hard   - Faster start, steeper speed-up
  fixed  - Speed never changes

Logs are written to ~/.snake/snake.log.

Examples:
  snake play
  snake play --difficulty hard
  snake play --seed 42 --store memory
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	} else {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	logger, err := newLogger(logOut, "snake")
	if err != nil {
		return err
	}

	// Open best score storage
	var store snake.BestScoreStore
	if s, err := openStore(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open best score store: %v\n", err)
		logger.Warn("Playing without a best score store", "error", err)
		// Continue without storage - the record lives for this run only
	} else {
		defer s.Close()
		store = s
	}

	engine := snake.New(context.Background(), snake.RulesFromConfig(cfg), store,
		snake.WithLogger(logger),
		snake.WithSeed(seed()),
	)
	logger.Info("Session started",
		"grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
		"difficulty", flagDifficulty,
		"best", engine.Best().Score)

	opts := []tui.ModelOption{tui.WithLogger(logger)}
	// Get terminal size early so the first frame is laid out correctly
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		opts = append(opts, tui.WithScreenSize(w, h))
	}

	if err := tui.Run(engine, opts...); err != nil {
		logger.Error("TUI failed", "error", err)
		return fmt.Errorf("running game: %w", err)
	}
	logger.Info("Session ended", "score", engine.Snapshot().Score, "best", engine.Best().Score)
	return nil
}
