package arena

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
)

// Session states
const (
	StateIdle     = "idle"     // Created, not started
	StatePlaying  = "playing"  // Ticking
	StatePaused   = "paused"   // Suspended, timestamps compensated on resume
	StateGameOver = "gameover" // Player died, no more ticks
)

// Hooks are the callbacks a host receives from the simulation.
// Both run synchronously inside Tick and must not call back into the session.
type Hooks struct {
	OnScore    func(ScoreUpdate)
	OnGameOver func(GameOverStats)
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the lifecycle logger. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRandom replaces the seeded generator.
func WithRandom(r Random) Option {
	return func(s *Session) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithInput sets the held-input source read at the start of every tick.
func WithInput(src core.InputSource) Option {
	return func(s *Session) {
		if src != nil {
			s.input = src
		}
	}
}

type noInput struct{}

func (noInput) Load() core.InputFrame { return core.InputFrame{} }

// Session is the simulation clock. It owns the World exclusively and runs one
// tick at a time. A Session is not safe for concurrent use; hosts drive it from
// a single goroutine and share only the input source.
type Session struct {
	cfg    config.ArenaConfig
	bounds core.Bounds
	hooks  Hooks
	input  core.InputSource
	rng    Random
	logger *log.Logger

	setup    Setup
	world    *World
	env      *Env
	state    string
	pausedAt time.Duration
	lastNow  time.Duration
	final    *GameOverStats
}

// NewSession creates an idle session. Arena size comes from rt when set and
// from cfg otherwise.
func NewSession(cfg config.ArenaConfig, rt core.RuntimeConfig, hooks Hooks, opts ...Option) *Session {
	bounds := rt.Bounds()
	if bounds.W <= 0 || bounds.H <= 0 {
		bounds = core.Bounds{W: cfg.Arena.Width, H: cfg.Arena.Height}
	}

	s := &Session{
		cfg:    cfg,
		bounds: bounds,
		hooks:  hooks,
		input:  noInput{},
		logger: log.New(io.Discard),
		state:  StateIdle,
		setup:  DefaultSetup(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRandom(rt.Seed)
	}
	return s
}

// Start resets every entity and timer for setup and begins ticking.
// The new world replaces the old one whole before the next tick.
func (s *Session) Start(setup Setup, now time.Duration) {
	s.setup = setup
	s.world = NewWorld(s.cfg, s.bounds, setup, now)
	s.env = NewEnv(s.cfg, setup.Difficulty, s.rng)
	s.state = StatePlaying
	s.final = nil
	s.lastNow = now

	if r, ok := s.input.(interface{ Reset() }); ok {
		r.Reset()
	}

	s.logger.Info("session started",
		"difficulty", setup.Difficulty,
		"class", setup.Class,
		"gender", setup.Gender,
	)
}

// Restart starts a new session with the previous setup.
func (s *Session) Restart(now time.Duration) {
	s.Start(s.setup, now)
}

// Pause suspends ticking. It has no effect unless playing.
func (s *Session) Pause(now time.Duration) {
	if s.state != StatePlaying {
		return
	}
	s.state = StatePaused
	s.pausedAt = now
	s.logger.Debug("session paused", "tick", s.world.Tick)
}

// Resume continues a paused session, shifting every timestamp forward by the
// time spent paused.
func (s *Session) Resume(now time.Duration) {
	if s.state != StatePaused {
		return
	}
	d := now - s.pausedAt
	if d > 0 {
		s.world.Shift(d)
	}
	s.state = StatePlaying
	s.lastNow = now
	s.logger.Debug("session resumed", "paused", d)
}

// Tick runs one simulation step at now. It returns false without doing anything
// unless the session is playing, and false on the tick that ends the game.
func (s *Session) Tick(now time.Duration) bool {
	if s.state != StatePlaying {
		return false
	}
	if now < s.lastNow {
		now = s.lastNow
	}
	s.lastNow = now

	res := Step(s.world, s.env, s.input.Load(), now)

	if res.GameOver {
		s.state = StateGameOver
		s.final = &res.Stats
		s.logger.Info("game over",
			"kills", res.Stats.Kills,
			"survived", res.Stats.SurvivedSeconds,
			"score", res.Stats.Score,
			"class", res.Stats.Class,
		)
	}
	if s.hooks.OnScore != nil {
		s.hooks.OnScore(res.Score)
	}
	if res.GameOver {
		if s.hooks.OnGameOver != nil {
			s.hooks.OnGameOver(res.Stats)
		}
		return false
	}
	return true
}

// State returns the lifecycle state.
func (s *Session) State() string {
	return s.state
}

// Setup returns the setup of the current or last session.
func (s *Session) Setup() Setup {
	return s.setup
}

// Bounds returns the arena rectangle.
func (s *Session) Bounds() core.Bounds {
	return s.bounds
}

// Final returns the game-over report once the session has ended.
func (s *Session) Final() (GameOverStats, bool) {
	if s.final == nil {
		return GameOverStats{}, false
	}
	return *s.final, true
}

// Cooldowns reports skill recharge at now. While paused the values are frozen
// at the pause instant.
func (s *Session) Cooldowns(now time.Duration) Cooldowns {
	if s.world == nil {
		return Cooldowns{DashPct: 100, GrenadePct: 100}
	}
	if s.state == StatePaused {
		now = s.pausedAt
	}
	return SkillCooldowns(s.world, s.env, now)
}
