package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileview/internal/app"
	"github.com/vovakirdan/tileview/internal/logging"
	"github.com/vovakirdan/tileview/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetricsAddr string
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the viewer over SSH",
	Long: `Start an SSH server that gives every connection its own viewer.

All sessions look at the same world, each with its own camera. The world
is built once at startup and never changes.

Host key handling:
  - Uses serve.host_key (or --host-key)
  - The key is generated on first start if the file does not exist

Prometheus metrics are served on serve.metrics_address at /metrics
unless it is empty.

Examples:
  tileview serve                           # Listen on :23234
  tileview serve --ssh :2222               # Listen on port 2222
  tileview serve --metrics ""              # Disable /metrics
  tileview serve --width 100000 --height 100000

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Metrics address (empty string disables)")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 0, "Maximum concurrent sessions (0 = unlimited)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Serve.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.Serve.HostKey = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.Serve.IdleTimeoutMin = flagIdleTimeout
	}
	if flags.Changed("metrics") {
		cfg.Serve.MetricsAddress = flagMetricsAddr
	}
	if flags.Changed("max-sessions") {
		cfg.Serve.MaxSessions = flagMaxSessions
	}

	logger, err := logging.NewStderr("tileview-ssh", cfg.Log)
	if err != nil {
		return err
	}

	src, err := app.BuildWorld(cfg.World)
	if err != nil {
		return err
	}
	defer app.CloseWorld(src)

	server, err := tui.NewSSHServer(cfg, src, logger)
	if err != nil {
		return err
	}

	logger.Info("world ready",
		"size", fmt.Sprintf("%dx%d", src.Width(), src.Height()),
		"generator", cfg.World.Generator,
		"layout", app.LayoutOf(src),
	)
	fmt.Fprintf(os.Stderr, "Connect with: ssh localhost -p <port> (listening on %s)\n", server.Addr())
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx)
}
