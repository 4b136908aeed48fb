package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/zone-arena/internal/core"
	"github.com/vovakirdan/zone-arena/internal/games/arena"
	"github.com/vovakirdan/zone-arena/internal/narrative"
	"github.com/vovakirdan/zone-arena/internal/storage"
)

// Minimum terminal size that can show the arena.
const (
	minWidth  = 40
	minHeight = 12
)

// ReportMsg delivers the after-action report for the run it was requested for.
type ReportMsg struct {
	Run    int
	Report narrative.Report
}

// liveState is written by the session hooks during Tick. It sits behind a
// pointer so that copies of the value-receiver model share it.
type liveState struct {
	score  arena.ScoreUpdate
	final  *arena.GameOverStats
	report *narrative.Report
	runID  string
	run    int  // Incremented on every start so stale reports are ignored
	saved  bool // Game over handled
}

// GameModel runs one arena session inside a Bubble Tea program.
type GameModel struct {
	deps    Deps
	setup   arena.Setup
	session *arena.Session
	input   *core.InputState
	holds   *HoldTracker
	keys    *KeyMapper
	live    *liveState
	screen  *core.Screen
	view    Viewport
	epoch   time.Time
	firing  bool
	width   int
	height  int

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model for setup sized to the terminal.
func NewGameModel(deps Deps, setup arena.Setup, width, height int) GameModel {
	deps = deps.withDefaults()
	live := &liveState{}
	input := core.NewInputState()

	hooks := arena.Hooks{
		OnScore: func(u arena.ScoreUpdate) { live.score = u },
		OnGameOver: func(s arena.GameOverStats) {
			stats := s
			live.final = &stats
		},
	}
	session := arena.NewSession(deps.Config, deps.Runtime, hooks,
		arena.WithInput(input),
		arena.WithLogger(deps.Logger),
	)

	m := GameModel{
		deps:    deps,
		setup:   setup,
		session: session,
		input:   input,
		holds:   NewHoldTracker(deps.HoldWindow),
		keys:    NewKeyMapper(),
		live:    live,
		screen:  core.NewScreen(0, 0),
		epoch:   time.Now(),
	}
	m.resize(width, height)
	return m
}

// Init starts the session and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.start(m.now(time.Now()))
	return tickCmd(m.deps.Runtime.TickInterval())
}

func (m GameModel) now(t time.Time) time.Duration {
	return t.Sub(m.epoch)
}

func (m GameModel) start(now time.Duration) {
	m.session.Start(m.setup, now)
	p := m.session.Snapshot().Player
	score := arena.ScoreUpdate{
		HP:         p.HP,
		MaxHP:      p.MaxHP,
		Armor:      p.Armor,
		Survivors:  arena.ArenaPopulation,
		DashPct:    100,
		GrenadePct: 100,
	}
	*m.live = liveState{run: m.live.run + 1, score: score}
	m.holds.Release()
	m.deps.Metrics.SessionStarted(context.Background(), m.setup)
}

func (m *GameModel) resize(width, height int) {
	m.width = width
	m.height = height
	// HUD above and help below the boxed arena.
	m.screen.Resize(width, max(0, height-2))
	m.view = Viewport{
		Bounds: m.session.Bounds(),
		X:      1,
		Y:      1,
		Cols:   max(0, width-2),
		Rows:   max(0, height-4),
	}
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	case ReportMsg:
		return m.handleReport(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.keys.MapKey(msg)
	now := m.now(time.Now())
	state := m.session.State()

	switch cmd {
	case CommandQuit:
		m.quitting = true
		return m, tea.Quit
	case CommandPause:
		switch state {
		case arena.StatePlaying:
			m.session.Pause(now)
			m.holds.Release()
			m.firing = false
		case arena.StatePaused:
			m.session.Resume(now)
		}
		return m, nil
	case CommandRestart:
		if state == arena.StateGameOver {
			m.firing = false
			m.start(now)
		}
		return m, nil
	case CommandBack:
		if state == arena.StateGameOver || state == arena.StatePaused {
			m.backToMenu = true
		}
		return m, nil
	}

	if state == arena.StatePlaying {
		m.holds.Press(action, time.Now())
	}
	return m, nil
}

// handleMouse moves the pointer and toggles fire on the left button.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// The arena screen starts one row below the HUD line.
	x, y := msg.X, msg.Y-1
	if m.view.Contains(x, y) {
		p := m.view.ToWorld(x, y)
		m.input.Update(func(f *core.InputFrame) { f.Pointer = p })
	}

	if msg.Button == tea.MouseButtonLeft {
		switch msg.Action {
		case tea.MouseActionPress:
			m.firing = m.session.State() == arena.StatePlaying
		case tea.MouseActionRelease:
			m.firing = false
		}
	}
	return m, nil
}

// handleTick publishes held input and runs one simulation tick.
func (m GameModel) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	next := tickCmd(m.deps.Runtime.TickInterval())

	firing := m.firing
	m.input.Update(func(f *core.InputFrame) {
		m.holds.Apply(f, t)
		if firing {
			f.Set(core.ActionFire)
		}
	})

	began := time.Now()
	m.session.Tick(m.now(t))
	m.deps.Metrics.TickDone(context.Background(), time.Since(began))

	if m.live.final != nil && !m.live.saved {
		m.firing = false
		return m, tea.Batch(next, m.finish(*m.live.final))
	}
	return m, next
}

// finish records a finished run once and asks for the after-action report.
func (m GameModel) finish(stats arena.GameOverStats) tea.Cmd {
	m.live.saved = true
	m.deps.Metrics.GameOver(context.Background(), stats)

	if m.deps.Store != nil {
		run := storage.NewRun(stats)
		if _, err := m.deps.Store.SaveRun(run); err != nil {
			m.deps.Logger.Warn("could not save run", "error", err)
		} else {
			m.live.runID = run.RunID
		}
	}

	svc, id := m.deps.Narrative, m.live.run
	return func() tea.Msg {
		return ReportMsg{Run: id, Report: svc.Report(context.Background(), stats)}
	}
}

// handleReport attaches a report to the run it belongs to.
func (m GameModel) handleReport(msg ReportMsg) (tea.Model, tea.Cmd) {
	if msg.Run != m.live.run {
		return m, nil
	}
	r := msg.Report
	m.live.report = &r
	if m.deps.Store != nil && m.live.runID != "" {
		if err := m.deps.Store.UpdateRank(m.live.runID, r.Rank); err != nil {
			m.deps.Logger.Warn("could not update rank", "error", err)
		}
	}
	return m, nil
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width < minWidth || m.height < minHeight {
		return "Terminal too small for the arena.\nResize or press Q to quit."
	}

	if m.live.final != nil {
		return renderGameOver(*m.live.final, m.live.report, m.width, m.height)
	}

	now := m.now(time.Now())
	snap := m.session.Snapshot()

	m.screen.Clear()
	m.screen.DrawBox(core.NewRect(0, 0, m.width, m.screen.Height()))
	DrawSnapshot(m.screen, snap, m.view)

	help := "WASD: Move  Mouse/F: Fire  Space: Dash  E: Grenade  P: Pause  Q: Quit"
	if snap.State == arena.StatePaused {
		m.screen.DrawTextCentered(m.screen.Height()/2, "  P A U S E D  ")
		m.screen.DrawTextCentered(m.screen.Height()/2+1, " P: Resume  B: Menu ")
	}

	hud := renderHUD(m.live.score, m.session.Cooldowns(now), snap.Elapsed)
	return hud + "\n" + RenderScreen(m.screen) + "\n" + helpStyle.Render(help)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Session exposes the running session for tests.
func (m GameModel) Session() *arena.Session {
	return m.session
}
