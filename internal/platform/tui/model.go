package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
	"github.com/vovakirdan/zone-arena/internal/games/arena"
	"github.com/vovakirdan/zone-arena/internal/narrative"
	"github.com/vovakirdan/zone-arena/internal/storage"
	"github.com/vovakirdan/zone-arena/internal/telemetry"
)

// Deps are the collaborators shared by every screen of a terminal session.
// Zero values are usable: no store, offline narrative, discarded logs.
type Deps struct {
	Config     config.ArenaConfig
	Runtime    core.RuntimeConfig
	Store      *storage.Store
	Narrative  *narrative.Service
	Metrics    *telemetry.Metrics
	Logger     *log.Logger
	HoldWindow time.Duration
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

// screen identifies what the app model is showing.
type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
)

// AppModel manages the full terminal flow: setup menu -> game -> menu, with
// the scoreboard reachable from the menu. It is used locally and per SSH session.
type AppModel struct {
	deps   Deps
	setup  arena.Setup
	screen screen
	menu   MenuModel
	game   *GameModel
	scores ScoreboardModel
	width  int
	height int

	quitting bool
}

// NewAppModel creates the app model starting at the setup menu.
func NewAppModel(deps Deps, setup arena.Setup, width, height int) AppModel {
	deps = deps.withDefaults()
	return AppModel{
		deps:   deps,
		setup:  setup,
		menu:   NewMenuModel(deps, setup, width, height),
		width:  width,
		height: height,
	}
}

// Init initializes the menu.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.deps.Store, m.width, m.height)
		m.screen = screenScores
		m.menu.openScoreboard = false
		return m, m.scores.Init()

	case m.menu.Selected():
		m.setup = m.menu.Setup()
		game := NewGameModel(m.deps, m.setup, m.width, m.height)
		m.game = &game
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.screen = screenMenu
		// Pending ticks land on the menu and are ignored there.
		m.menu = NewMenuModel(m.deps, m.setup, m.width, m.height)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.screen = screenMenu
		return m, nil
	}
	return m, cmd
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Run starts a local Bubble Tea program for the arena.
func Run(deps Deps, setup arena.Setup, width, height int) error {
	model := NewAppModel(deps, setup, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Pointer aim needs motion without a button held
	)

	_, err := p.Run()
	return err
}
