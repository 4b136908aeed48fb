// Package web serves the arena to browsers over websockets. Each connection
// gets its own session; the browser sends held keys and the pointer and
// receives score, frame and narrative events.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
	"github.com/vovakirdan/zone-arena/internal/feed"
	"github.com/vovakirdan/zone-arena/internal/narrative"
	"github.com/vovakirdan/zone-arena/internal/storage"
	"github.com/vovakirdan/zone-arena/internal/telemetry"
)

// Environment variables read by LoadConfig.
const (
	EnvAddr       = "ARENA_WEB_ADDR"
	EnvFrameEvery = "ARENA_WEB_FRAME_EVERY"
)

// Config holds the web host settings.
type Config struct {
	Addr       string
	FrameEvery int // Ticks between frame events
	BufferSize int // Per-connection event buffer
	WriteWait  time.Duration
	ReadLimit  int64
}

// DefaultConfig returns the default web host settings.
func DefaultConfig() Config {
	return Config{
		Addr:       ":8080",
		FrameEvery: 2,
		BufferSize: feed.DefaultBufferSize,
		WriteWait:  10 * time.Second,
		ReadLimit:  4096,
	}
}

// LoadConfig loads env files into the environment (missing files are fine)
// and overlays the ARENA_WEB_* variables on the defaults.
// With no files it loads .env from the working directory.
func LoadConfig(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvFrameEvery); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("%w: %s must be a positive integer, got %q", config.ErrInvalid, EnvFrameEvery, v)
		}
		cfg.FrameEvery = n
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.FrameEvery < 1 {
		c.FrameEvery = d.FrameEvery
	}
	if c.BufferSize < 1 {
		c.BufferSize = d.BufferSize
	}
	if c.WriteWait <= 0 {
		c.WriteWait = d.WriteWait
	}
	if c.ReadLimit <= 0 {
		c.ReadLimit = d.ReadLimit
	}
	return c
}

// Deps are the collaborators shared by every connection.
type Deps struct {
	Config    config.ArenaConfig
	Runtime   core.RuntimeConfig
	Store     *storage.Store
	Narrative *narrative.Service
	Metrics   *telemetry.Metrics
	Logger    *log.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if d.Narrative == nil {
		d.Narrative = narrative.NewService(narrative.Offline{}, d.Logger)
	}
	if d.Config.Arena.Width <= 0 || d.Config.Arena.Height <= 0 {
		d.Config = config.DefaultArenaConfig()
	}
	if d.Runtime.TickRate <= 0 {
		d.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	return d
}

// Server is the websocket host.
type Server struct {
	cfg      Config
	deps     Deps
	registry *feed.Registry
	upgrader websocket.Upgrader
	router   chi.Router
	http     *http.Server
	logger   *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a server. Without deps.Metrics it records to the global
// meter, reporting the number of open connections.
func NewServer(cfg Config, deps Deps) *Server {
	deps = deps.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		cfg:      cfg.withDefaults(),
		deps:     deps,
		registry: feed.NewRegistry(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: deps.Logger,
		ctx:    ctx,
		cancel: cancel,
	}

	if s.deps.Metrics == nil {
		m, err := telemetry.New(s.registry.Count)
		if err != nil {
			s.logger.Warn("metrics disabled", "error", err)
		}
		s.deps.Metrics = m
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWebSocket)
	s.router = r

	s.http = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler with every route mounted.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the number of open websocket connections.
func (s *Server) Sessions() int {
	return s.registry.Count()
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

type health struct {
	Status    string `json:"status"`
	Sessions  int    `json:"sessions"`
	Narrative bool   `json:"narrative"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(health{
		Status:    "ok",
		Sessions:  s.registry.Count(),
		Narrative: s.deps.Narrative.Online(),
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an error status.
		s.logger.Debug("upgrade failed", "error", err)
		return
	}

	p := newPlayer(conn, s.cfg, s.deps)
	s.registry.Register(p.feed)
	defer s.registry.Unregister(p.id)

	p.logger.Info("player connected", "remote", r.RemoteAddr)
	p.run(s.ctx)
	p.logger.Info("player disconnected")
}

// Serve accepts connections on l until Shutdown.
func (s *Server) Serve(l net.Listener) error {
	err := s.http.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// ListenAndServe starts the server and blocks until interrupted.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("starting web server", "address", l.Addr().String())

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		errc <- s.Serve(l)
	}()

	select {
	case err := <-errc:
		return err
	case <-done:
	}

	s.logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown closes every websocket session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	err := s.http.Shutdown(ctx)
	if s.deps.Store != nil {
		if cerr := s.deps.Store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
