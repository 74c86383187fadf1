package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tileview/internal/config"
	"github.com/vovakirdan/tileview/internal/metrics"
	"github.com/vovakirdan/tileview/internal/world"
)

// shutdownTimeout bounds how long Shutdown waits for open sessions.
const shutdownTimeout = 10 * time.Second

// SSHServer serves the viewer over SSH. Every connection gets its own camera
// and screen; the world is shared and read-only.
type SSHServer struct {
	serve   config.ServeConfig
	cfg     config.Config
	world   world.Source
	server  *ssh.Server
	http    *http.Server
	metrics *metrics.Metrics
	logger  *log.Logger
	active  atomic.Int64
}

// NewSSHServer creates an SSH server for src using the serve and view
// sections of cfg.
func NewSSHServer(cfg config.Config, src world.Source, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tileview-ssh",
		})
	}

	srv := &SSHServer{
		serve:   cfg.Serve,
		cfg:     cfg,
		world:   src,
		metrics: metrics.New(),
		logger:  logger,
	}

	hostKeyPath := config.ExpandPath(cfg.Serve.HostKey)
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	// Middlewares run last to first: limit, log, require a PTY, then the viewer.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Serve.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.Serve.IdleTimeout()),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.loggingMiddleware,
			srv.limitMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server

	if cfg.Serve.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", srv.metrics.Handler())
		srv.http = &http.Server{
			Addr:              cfg.Serve.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return srv, nil
}

// teaHandler creates a viewer model for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	model := NewModel(s.world, Options{
		Config:   s.cfg.Runtime(pty.Window.Width, pty.Window.Height),
		Hold:     s.cfg.View.Hold(),
		Renderer: bubbletea.MakeRenderer(sess),
		Metrics:  s.metrics,
		Logger:   s.logger,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	}
}

// limitMiddleware turns connections away once MaxSessions are open.
func (s *SSHServer) limitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		n := s.active.Add(1)
		defer s.active.Add(-1)

		if limit := s.serve.MaxSessions; limit > 0 && n > int64(limit) {
			s.logger.Warn("session rejected, server full", "remote", sess.RemoteAddr().String(), "active", n-1)
			wish.Fatalln(sess, "tileview: server is full, try again later")
			return
		}
		next(sess)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		id := uuid.NewString()
		start := time.Now()
		s.logger.Info("session started",
			"session", id,
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		s.metrics.SessionStarted()

		next(sess)

		s.metrics.SessionEnded()
		s.logger.Info("session ended",
			"session", id,
			"user", sess.User(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// Active returns the number of open sessions.
func (s *SSHServer) Active() int {
	return int(s.active.Load())
}

// Metrics returns the server's metrics.
func (s *SSHServer) Metrics() *metrics.Metrics {
	return s.metrics
}

// ListenAndServe starts the SSH server, and the metrics endpoint if
// configured, and blocks until ctx is done or a listener fails.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 2)

	s.logger.Info("starting SSH server", "address", s.serve.Address)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- fmt.Errorf("ssh server: %w", err)
		}
	}()

	if s.http != nil {
		s.logger.Info("serving metrics", "address", s.http.Addr, "path", "/metrics")
		go func() {
			if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	var err error
	select {
	case <-ctx.Done():
		s.logger.Info("shutting down...")
	case err = <-errc:
		s.logger.Error("server error", "error", err)
	}

	return errors.Join(err, s.Shutdown())
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if s.http != nil {
		errs = append(errs, s.http.Shutdown(ctx))
	}
	errs = append(errs, s.server.Shutdown(ctx))
	return errors.Join(errs...)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.serve.Address
}
