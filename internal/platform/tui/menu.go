package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/games/arena"
	"github.com/vovakirdan/zone-arena/internal/narrative"
)

// BriefingMsg delivers the mission briefing to the setup menu.
type BriefingMsg narrative.Briefing

// Setup menu rows
const (
	rowDifficulty = iota
	rowClass
	rowGender
	rowStart
	rowCount
)

// MenuModel is the Bubble Tea model for the pre-session setup menu.
type MenuModel struct {
	cfg       config.ArenaConfig
	narrative *narrative.Service
	keyMapper *KeyMapper

	row        int
	difficulty int
	class      int
	gender     int
	briefing   *narrative.Briefing

	width          int
	height         int
	quitting       bool
	selected       bool
	openScoreboard bool
}

// NewMenuModel creates a setup menu preselected to setup.
func NewMenuModel(deps Deps, setup arena.Setup, width, height int) MenuModel {
	deps = deps.withDefaults()
	return MenuModel{
		cfg:        deps.Config,
		narrative:  deps.Narrative,
		keyMapper:  NewKeyMapper(),
		row:        rowStart,
		difficulty: max(0, slices.Index(config.Difficulties, setup.Difficulty)),
		class:      max(0, slices.Index(config.Classes, setup.Class)),
		gender:     max(0, slices.Index(config.Genders, setup.Gender)),
		width:      width,
		height:     height,
	}
}

// Init requests the mission briefing.
func (m MenuModel) Init() tea.Cmd {
	svc := m.narrative
	return func() tea.Msg {
		return BriefingMsg(svc.Briefing(context.Background()))
	}
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case BriefingMsg:
		b := narrative.Briefing(msg)
		m.briefing = &b
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.row = (m.row + rowCount - 1) % rowCount

	case MenuActionDown:
		m.row = (m.row + 1) % rowCount

	case MenuActionLeft:
		m.cycle(-1)

	case MenuActionRight:
		m.cycle(1)

	case MenuActionSelect:
		m.selected = true

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

// cycle moves the option on the current row by step, wrapping around.
func (m *MenuModel) cycle(step int) {
	wrap := func(i, n int) int { return ((i+step)%n + n) % n }
	switch m.row {
	case rowDifficulty:
		m.difficulty = wrap(m.difficulty, len(config.Difficulties))
	case rowClass:
		m.class = wrap(m.class, len(config.Classes))
	case rowGender:
		m.gender = wrap(m.gender, len(config.Genders))
	}
}

// Setup returns the currently chosen setup.
func (m MenuModel) Setup() arena.Setup {
	return arena.Setup{
		Difficulty: config.Difficulties[m.difficulty],
		Class:      config.Classes[m.class],
		Gender:     config.Genders[m.gender],
	}
}

// classSummary describes a class's stats in one line.
func classSummary(s config.ClassStats) string {
	shots := ""
	if s.BulletCount > 1 {
		shots = fmt.Sprintf(" x%d", s.BulletCount)
	}
	return fmt.Sprintf("HP %d  SPEED %.0f  DMG %d%s  RATE %dms", s.HP, s.MoveSpeed, s.BulletDamage, shots, s.FireRateMs)
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  Z O N E   A R E N A  "), m.width))
	b.WriteString("\n\n")

	if m.briefing != nil {
		text := lipgloss.NewStyle().Width(min(60, max(20, m.width-4))).Align(lipgloss.Center).Italic(true).Render(m.briefing.Text)
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, hudStyle.Render(m.briefing.Title)))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, text))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, helpStyle.Render("Contacting the host...")))
	}
	b.WriteString("\n\n")

	setup := m.Setup()
	rows := []string{
		fmt.Sprintf("Difficulty  < %s >", setup.Difficulty),
		fmt.Sprintf("Class       < %s >", setup.Class),
		fmt.Sprintf("Gender      < %s >", setup.Gender),
		"START",
	}
	for i, row := range rows {
		cursor := "  "
		if i == m.row {
			cursor = "> "
			row = titleStyle.Render(row)
		}
		b.WriteString(centerText(cursor+row, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(classSummary(m.cfg.Classes.Get(setup.Class))), m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Row  |  Left/Right: Change  |  Enter: Start  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns true once the user has chosen to start.
func (m MenuModel) Selected() bool {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width.
// Styled text is measured by its printable width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
