package narrative

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zone-arena/internal/games/arena"
)

// Environment variables read by FromEnv.
const (
	EnvAPIKey  = "GEMINI_API_KEY"
	EnvModel   = "ARENA_NARRATIVE_MODEL"
	EnvBaseURL = "ARENA_NARRATIVE_URL"
)

// Service wraps a Generator so that callers always get displayable text.
// Failures are logged and replaced by the fixed fallbacks.
type Service struct {
	gen     Generator
	logger  *log.Logger
	timeout time.Duration
}

// NewService creates a service around gen. A nil logger discards.
func NewService(gen Generator, logger *log.Logger) *Service {
	if gen == nil {
		gen = Offline{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		gen:     gen,
		logger:  logger,
		timeout: 20 * time.Second,
	}
}

// FromEnv builds a service from the environment. Without an API key the
// service is offline and always returns fallbacks.
func FromEnv(logger *log.Logger) *Service {
	key := os.Getenv(EnvAPIKey)
	if key == "" {
		return NewService(Offline{}, logger)
	}
	return NewService(NewClient(os.Getenv(EnvBaseURL), key, os.Getenv(EnvModel)), logger)
}

// Online reports whether the service talks to a remote generator.
func (s *Service) Online() bool {
	_, offline := s.gen.(Offline)
	return !offline
}

// Briefing returns a mission briefing, falling back on any failure.
func (s *Service) Briefing(ctx context.Context) Briefing {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	b, err := s.gen.Briefing(ctx)
	switch {
	case errors.Is(err, ErrEmpty):
		s.logger.Warn("narrative briefing empty, using fallback")
		return EmptyBriefing
	case err != nil:
		s.logger.Warn("narrative briefing failed, using fallback", "err", err)
		return ErrorBriefing
	}
	return b
}

// Report returns an after-action report for stats, falling back on any failure.
func (s *Service) Report(ctx context.Context, stats arena.GameOverStats) Report {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	r, err := s.gen.Report(ctx, stats)
	switch {
	case errors.Is(err, ErrEmpty):
		s.logger.Warn("narrative report empty, using fallback")
		return EmptyReport
	case err != nil:
		s.logger.Warn("narrative report failed, using fallback", "err", err)
		return ErrorReport
	}
	return r
}

// AsyncBriefing runs Briefing in the background. The channel receives exactly
// one value and is then closed.
func (s *Service) AsyncBriefing(ctx context.Context) <-chan Briefing {
	ch := make(chan Briefing, 1)
	go func() {
		defer close(ch)
		ch <- s.Briefing(ctx)
	}()
	return ch
}

// AsyncReport runs Report in the background. The channel receives exactly one
// value and is then closed.
func (s *Service) AsyncReport(ctx context.Context, stats arena.GameOverStats) <-chan Report {
	ch := make(chan Report, 1)
	go func() {
		defer close(ch)
		ch <- s.Report(ctx, stats)
	}()
	return ch
}
