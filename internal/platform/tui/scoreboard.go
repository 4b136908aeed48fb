package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show the difficulty sidebar
	sidebarWidth       = 16  // Width of difficulty sidebar
	maxRuns            = 100 // Max runs to load
)

// boardFilter is one scoreboard tab. An empty difficulty shows every run.
type boardFilter struct {
	Difficulty string
	Title      string
}

func boardFilters() []boardFilter {
	filters := []boardFilter{{Difficulty: "", Title: "All"}}
	for _, d := range config.Difficulties {
		filters = append(filters, boardFilter{Difficulty: string(d), Title: strings.ToUpper(string(d[:1])) + string(d[1:])})
	}
	return filters
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Back    key.Binding
	Quit    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev difficulty"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next difficulty"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next difficulty"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev difficulty"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the run history screen.
type ScoreboardModel struct {
	filters     []boardFilter
	cursor      int
	store       *storage.Store
	runs        []storage.Run
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	standalone  bool // Quit the program on back
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		filters:     boardFilters(),
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadRuns()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Kills", Width: 6},
		{Title: "Class", Width: 8},
		{Title: "Time", Width: 6},
		{Title: "Rank", Width: 16},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	if fixed := 4 + 8 + 6 + 8 + 6 + 12; tableWidth > fixed+16 {
		columns[5].Width = min(24, tableWidth-fixed)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the best runs for the current tab.
func (m *ScoreboardModel) loadRuns() {
	m.runs = nil
	if m.store != nil {
		if runs, err := m.store.TopRuns(m.filters[m.cursor].Difficulty, maxRuns); err == nil {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Kills),
			r.Class,
			formatClock(secs(r.SurvivedSeconds)),
			r.Rank,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.Right):
			m.cursor = (m.cursor + 1) % len(m.filters)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab), key.Matches(msg, m.keys.Left):
			m.cursor = (m.cursor + len(m.filters) - 1) % len(m.filters)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("BEST RUNS - %s", m.filters[m.cursor].Title)
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the scoreboard with a sidebar of difficulties.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Difficulty\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, f := range m.filters {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + f.Title))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the scoreboard with tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.filters))
	for i, f := range m.filters {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(f.Title)
		} else {
			tabs[i] = tabStyle.Render(" " + f.Title + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nSurvive a round to get on the board!")
	}

	return m.table.View()
}

// Runs returns the runs shown on the current tab.
func (m ScoreboardModel) Runs() []storage.Run {
	return m.runs
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program.
func RunScoreboard(store *storage.Store, width, height int) error {
	model := NewScoreboardModel(store, width, height)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
