package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagWatchConfig bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that allows users to connect and play snake.

Each SSH connection gets its own game. The best score is stored per-server
(all users compete for the same record).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/host_key

With --watch-config the configuration file given by --config is reloaded
when it changes. New connections use the new settings; running games keep
theirs.

Examples:
  snake serve                                  # Listen on :23234
  snake serve --ssh :2222                      # Listen on port 2222
  snake serve --host-key ./my_host_key         # Use specific host key
  snake serve --config ./snake.yaml --watch-config

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagWatchConfig, "watch-config", false, "Reload --config when the file changes")
}

func runServe(_ *cobra.Command, _ []string) {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve() error {
	logger, err := newLogger(os.Stderr, "snake-ssh")
	if err != nil {
		return err
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

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}, store, live, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting snake SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}

// startWatcher runs config.Watch for --config when --watch-config is set.
func startWatcher(ctx context.Context, live *config.Live) error {
	if !flagWatchConfig {
		return nil
	}
	if flagConfig == "" {
		return fmt.Errorf("--watch-config needs --config")
	}
	logger, err := newLogger(os.Stderr, "config")
	if err != nil {
		return err
	}
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	go func() {
		err := config.Watch(ctx, flagConfig, live, logger, func(c *config.SnakeConfig) {
			config.ApplyPreset(c, preset)
		})
		if err != nil {
			logger.Error("Config watcher stopped", "error", err)
		}
	}()
	return nil
}
