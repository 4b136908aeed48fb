package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/zone-arena/internal/games/arena"
	"github.com/vovakirdan/zone-arena/internal/storage"
	"github.com/vovakirdan/zone-arena/internal/telemetry"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the arena SSH host.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the host key file. Empty means ~/.arena/host_key,
	// generated on first start.
	HostKeyPath string

	// DBPath is the run history database opened when Deps.Store is nil.
	DBPath string

	// IdleTimeout closes connections with no traffic.
	IdleTimeout time.Duration

	// MaxSessions caps concurrent players. Zero means unlimited.
	MaxSessions int
}

// DefaultSSHServerConfig returns the config used by `arena serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      storage.DefaultPath,
		IdleTimeout: 30 * time.Minute,
		MaxSessions: 32,
	}
}

// SSHServer hosts one independent arena session per SSH connection.
type SSHServer struct {
	config SSHServerConfig
	deps   Deps
	server *ssh.Server
	logger *log.Logger
	active atomic.Int32
}

// NewSSHServer builds the server. The store opened from cfg.DBPath, or the
// one passed in deps, is closed on Shutdown.
func NewSSHServer(cfg SSHServerConfig, deps Deps) (*SSHServer, error) {
	if deps.Logger == nil {
		deps.Logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arena-ssh",
		})
	}
	if deps.Store == nil && cfg.DBPath != "" {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			deps.Logger.Warn("could not open run database", "error", err)
		} else {
			deps.Store = store
		}
	}

	srv := &SSHServer{config: cfg, logger: deps.Logger}
	if deps.Metrics == nil {
		m, err := telemetry.New(srv.Active)
		if err != nil {
			srv.logger.Warn("metrics disabled", "error", err)
		}
		deps.Metrics = m
	}
	srv.deps = deps.withDefaults()

	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		srv.closeStore()
		return nil, err
	}

	// Middlewares run last to first: log, cap, require a terminal, then the game.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.limitMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".arena", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler builds the app model for one connection, sized to its PTY.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		return nil, nil
	}

	deps := s.deps
	deps.Runtime.Seed = time.Now().UnixNano()
	deps.Logger = s.logger.With("user", sess.User())

	model := NewAppModel(deps, arena.DefaultSetup(), pty.Window.Width, pty.Window.Height)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

// limitMiddleware turns away connections past MaxSessions.
func (s *SSHServer) limitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		n := s.active.Add(1)
		defer s.active.Add(-1)

		if s.config.MaxSessions > 0 && int(n) > s.config.MaxSessions {
			s.logger.Warn("arena full", "user", sess.User(), "active", n-1)
			wish.Fatalln(sess, "The arena is full. Try again later.")
			return
		}
		next(sess)
	}
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		began := time.Now()
		remote := sess.RemoteAddr().String()
		s.logger.Info("ssh session started", "user", sess.User(), "remote", remote)
		next(sess)
		s.logger.Info("ssh session ended",
			"user", sess.User(),
			"remote", remote,
			"duration", time.Since(began).Round(time.Second),
		)
	}
}

// Active returns the number of connected sessions.
func (s *SSHServer) Active() int {
	return int(s.active.Load())
}

// Serve accepts connections on l until Shutdown.
func (s *SSHServer) Serve(l net.Listener) error {
	err := s.server.Serve(l)
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

// ListenAndServe listens on the configured address and blocks until SIGINT
// or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	l, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		s.closeStore()
		return fmt.Errorf("listen %s: %w", s.config.Address, err)
	}

	errc := make(chan error, 1)
	go func() { errc <- s.Serve(l) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errc:
		s.closeStore()
		return err
	case <-sig:
	}
	s.logger.Info("shutting down", "active", s.Active())
	return s.Shutdown()
}

// Shutdown stops accepting players, waits for open sessions up to a grace
// period, then closes the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.deps.Store == nil {
		return
	}
	if err := s.deps.Store.Close(); err != nil {
		s.logger.Warn("could not close run database", "error", err)
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
