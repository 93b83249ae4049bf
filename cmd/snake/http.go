package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/httpapi"
	"github.com/vovakirdan/tui-snake/internal/session"
)

var (
	flagHTTPAddr       string
	flagSessionTimeout int
)

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Start the snake HTTP API",
	Long: `Start an HTTP server that runs snake sessions for remote clients.

Endpoints:
  POST   /api/sessions                  - Create a session
  GET    /api/sessions/:id              - Current snapshot (JSON)
  POST   /api/sessions/:id/input        - {"kind": "begin|direction|submit_initials|restart", "value": "..."}
  GET    /api/sessions/:id/board.png    - Board as PNG (?scale=1..8)
  GET    /api/sessions/:id/stream       - Snapshots as Server-Sent Events
  DELETE /api/sessions/:id              - Stop a session
  GET    /api/best                      - Best score
  GET    /healthz                       - Liveness

Sessions without input for --session-timeout minutes are stopped.
--watch-config behaves as for serve.

Examples:
  snake http
  snake http --addr :9090 --difficulty easy
  curl -X POST localhost:8080/api/sessions`,
	Args: cobra.NoArgs,
	Run:  runHTTP,
}

func init() {
	httpCmd.Flags().StringVar(&flagHTTPAddr, "addr", ":8080", "HTTP listen address (host:port)")
	httpCmd.Flags().IntVar(&flagSessionTimeout, "session-timeout", 15, "Minutes without input before a session is stopped (0 = never)")
	httpCmd.Flags().BoolVar(&flagWatchConfig, "watch-config", false, "Reload --config when the file changes")
}

func runHTTP(_ *cobra.Command, _ []string) {
	if err := serveHTTP(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveHTTP() error {
	logger, err := newLogger(os.Stderr, "snake-http")
	if err != nil {
		return err
	}
	if flagLogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	live := config.NewLive(cfg)

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening best score store: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := startWatcher(ctx, live); err != nil {
		return err
	}

	opts := httpapi.DefaultOptions()
	opts.IdleTimeout = time.Duration(flagSessionTimeout) * time.Minute
	if flagSeed != 0 {
		opts.Seed = func() int64 { return flagSeed }
	}

	srv := httpapi.New(ctx, session.NewRegistry(), store, live, logger, opts)
	fmt.Printf("Starting snake HTTP API on %s\n", flagHTTPAddr)
	fmt.Println("Press Ctrl+C to stop")
	return srv.ListenAndServe(flagHTTPAddr)
}
