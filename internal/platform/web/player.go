package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/zone-arena/internal/core"
	"github.com/vovakirdan/zone-arena/internal/feed"
	"github.com/vovakirdan/zone-arena/internal/games/arena"
	"github.com/vovakirdan/zone-arena/internal/storage"
)

const commandBuffer = 8

var errNoSession = errors.New("no session started")

// command is a session request queued by the reader for the session loop.
type command struct {
	kind  string
	setup arena.Setup
}

// player is one websocket connection and the session it drives.
//
// Three goroutines share it: the reader stores input snapshots and queues
// commands, the loop owns the session, and the writer drains the feed into
// the socket. Only the loop touches session, score and final.
type player struct {
	id     feed.FeedID
	conn   *websocket.Conn
	feed   *feed.ChannelFeed
	input  *core.InputState
	cmds   chan command
	cfg    Config
	deps   Deps
	logger *log.Logger
	epoch  time.Time

	session *arena.Session
	score   arena.ScoreUpdate
	final   *arena.GameOverStats
	ticks   int
}

func newPlayer(conn *websocket.Conn, cfg Config, deps Deps) *player {
	id := feed.NewFeedID()
	return &player{
		id:     id,
		conn:   conn,
		feed:   feed.NewChannelFeed(id, cfg.BufferSize),
		input:  core.NewInputState(),
		cmds:   make(chan command, commandBuffer),
		cfg:    cfg,
		deps:   deps,
		logger: deps.Logger.With("conn", string(id)),
		epoch:  time.Now(),
	}
}

// run serves the connection until the client leaves or ctx is cancelled.
func (p *player) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		p.loop(ctx)
	}()
	go func() {
		defer wg.Done()
		p.write()
	}()

	go func() {
		if b, ok := <-p.deps.Narrative.AsyncBriefing(ctx); ok {
			p.feed.Send(feed.NewBriefingEvent(b))
		}
	}()

	p.read()
	p.feed.Close()
	wg.Wait()
	p.conn.Close()
}

func (p *player) now() time.Duration {
	return time.Since(p.epoch)
}

// read decodes client messages until the connection fails.
func (p *player) read() {
	p.conn.SetReadLimit(p.cfg.ReadLimit)
	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.logger.Warn("read failed", "error", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			p.feed.Send(ErrorEvent{Message: "malformed message"})
			continue
		}
		if err := p.dispatch(env); err != nil {
			p.feed.Send(ErrorEvent{Message: err.Error()})
		}
	}
}

// dispatch applies one client message. Input is stored directly; everything
// else is queued for the loop.
func (p *player) dispatch(env Envelope) error {
	switch env.Type {
	case TypeInput:
		var in InputPayload
		if err := json.Unmarshal(env.Payload, &in); err != nil {
			return fmt.Errorf("bad input payload: %w", err)
		}
		p.input.Store(in.Frame())
		return nil

	case TypeStart:
		var sp StartPayload
		if len(env.Payload) > 0 {
			if err := json.Unmarshal(env.Payload, &sp); err != nil {
				return fmt.Errorf("bad start payload: %w", err)
			}
		}
		setup, err := sp.Setup()
		if err != nil {
			return err
		}
		p.enqueue(command{kind: TypeStart, setup: setup})
		return nil

	case TypePause, TypeResume, TypeRestart:
		p.enqueue(command{kind: env.Type})
		return nil
	}
	return fmt.Errorf("unknown message type %q", env.Type)
}

func (p *player) enqueue(c command) {
	select {
	case p.cmds <- c:
	case <-p.feed.Done():
	}
}

// loop owns the session: it runs ticks and applies queued commands, one at a time.
func (p *player) loop(ctx context.Context) {
	ticker := time.NewTicker(p.deps.Runtime.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.tick(ctx)
		case c := <-p.cmds:
			if err := p.apply(ctx, c); err != nil {
				p.feed.Send(ErrorEvent{Message: err.Error()})
			}
		case <-p.feed.Done():
			return
		case <-ctx.Done():
			p.feed.Close()
			return
		}
	}
}

func (p *player) newSession() *arena.Session {
	hooks := arena.Hooks{
		OnScore: func(u arena.ScoreUpdate) { p.score = u },
		OnGameOver: func(s arena.GameOverStats) {
			stats := s
			p.final = &stats
		},
	}
	return arena.NewSession(p.deps.Config, p.deps.Runtime, hooks,
		arena.WithInput(p.input),
		arena.WithLogger(p.logger),
	)
}

// apply runs a queued command against the session.
func (p *player) apply(ctx context.Context, c command) error {
	now := p.now()

	switch c.kind {
	case TypeStart:
		if p.session == nil {
			p.session = p.newSession()
		}
		p.begin(ctx, func() { p.session.Start(c.setup, now) })
		return nil
	}

	if p.session == nil {
		return errNoSession
	}
	switch c.kind {
	case TypeRestart:
		if p.session.State() == arena.StateIdle {
			return errNoSession
		}
		p.begin(ctx, func() { p.session.Restart(now) })
	case TypePause:
		p.session.Pause(now)
	case TypeResume:
		p.session.Resume(now)
	}
	p.feed.Send(feed.StateEvent{State: p.session.State()})
	return nil
}

// begin starts a fresh run and announces it.
func (p *player) begin(ctx context.Context, start func()) {
	start()
	pl := p.session.Snapshot().Player
	p.score = arena.ScoreUpdate{
		HP:         pl.HP,
		MaxHP:      pl.MaxHP,
		Armor:      pl.Armor,
		Survivors:  arena.ArenaPopulation,
		DashPct:    100,
		GrenadePct: 100,
	}
	p.final = nil
	p.ticks = 0
	p.deps.Metrics.SessionStarted(ctx, p.session.Setup())
	p.feed.Send(feed.StateEvent{State: p.session.State()})
	p.sendFrame()
}

// tick advances a playing session and streams frames at the configured rate.
func (p *player) tick(ctx context.Context) {
	if p.session == nil || p.session.State() != arena.StatePlaying {
		return
	}

	began := time.Now()
	p.session.Tick(p.now())
	p.deps.Metrics.TickDone(ctx, time.Since(began))

	p.ticks++
	if p.final != nil || p.ticks%p.cfg.FrameEvery == 0 {
		p.sendFrame()
	}
	if p.final != nil {
		p.finish(ctx, *p.final)
		p.final = nil
	}
}

func (p *player) sendFrame() {
	p.feed.Send(feed.NewScoreEvent(p.score))
	p.feed.Send(NewFrameEvent(p.session.Snapshot()))
}

// finish announces the game over, stores the run and fetches the report in
// the background.
func (p *player) finish(ctx context.Context, stats arena.GameOverStats) {
	p.feed.Send(feed.NewGameOverEvent(stats))
	p.feed.Send(feed.StateEvent{State: arena.StateGameOver})
	p.deps.Metrics.GameOver(ctx, stats)

	var runID string
	if p.deps.Store != nil {
		run := storage.NewRun(stats)
		if _, err := p.deps.Store.SaveRun(run); err != nil {
			p.logger.Warn("could not save run", "error", err)
		} else {
			runID = run.RunID
		}
	}

	reports := p.deps.Narrative.AsyncReport(ctx, stats)
	go func() {
		r, ok := <-reports
		if !ok {
			return
		}
		p.feed.Send(feed.NewReportEvent(r))
		if runID != "" {
			if err := p.deps.Store.UpdateRank(runID, r.Rank); err != nil {
				p.logger.Warn("could not update rank", "error", err)
			}
		}
	}()
}

// write drains the feed into the socket until the feed closes.
func (p *player) write() {
	defer p.conn.Close()

	for {
		select {
		case evt := <-p.feed.Events():
			data, err := encode(evt)
			if err != nil {
				p.logger.Warn("dropping event", "error", err)
				continue
			}
			if err := p.conn.SetWriteDeadline(time.Now().Add(p.cfg.WriteWait)); err != nil {
				p.feed.Close()
				return
			}
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				p.logger.Debug("write failed", "error", err)
				p.feed.Close()
				return
			}

		case <-p.feed.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = p.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(p.cfg.WriteWait))
			return
		}
	}
}
