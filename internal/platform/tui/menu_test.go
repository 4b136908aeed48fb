package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/games/arena"
	"github.com/vovakirdan/zone-arena/internal/narrative"
)

func pressMenu(m MenuModel, msgs ...tea.KeyMsg) MenuModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

func TestMenuModelCyclesDifficulty(t *testing.T) {
	m := NewMenuModel(Deps{}, arena.DefaultSetup(), 100, 40)

	if m.row != rowStart {
		t.Fatalf("row = %d, expected the start row", m.row)
	}

	up := tea.KeyMsg{Type: tea.KeyUp}
	right := tea.KeyMsg{Type: tea.KeyRight}

	m = pressMenu(m, up, up, up)
	if m.row != rowDifficulty {
		t.Fatalf("row = %d, expected the difficulty row", m.row)
	}

	m = pressMenu(m, right)
	if d := m.Setup().Difficulty; d != config.DifficultyHard {
		t.Errorf("Difficulty = %q, expected %q", d, config.DifficultyHard)
	}

	m = pressMenu(m, right)
	if d := m.Setup().Difficulty; d != config.DifficultyEasy {
		t.Errorf("Difficulty = %q after wrap, expected %q", d, config.DifficultyEasy)
	}

	// Rows wrap too.
	m = pressMenu(m, up)
	if m.row != rowStart {
		t.Errorf("row = %d, expected wrap to the start row", m.row)
	}
}

func TestMenuModelCyclesClassBackwards(t *testing.T) {
	m := NewMenuModel(Deps{}, arena.DefaultSetup(), 100, 40)

	m = pressMenu(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyLeft})
	if c := m.Setup().Class; c != config.ClassHeavy {
		t.Errorf("Class = %q, expected %q", c, config.ClassHeavy)
	}
}

func TestMenuModelSelectAndScoreboard(t *testing.T) {
	m := NewMenuModel(Deps{}, arena.DefaultSetup(), 100, 40)

	m = pressMenu(m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should request the scoreboard")
	}

	m = pressMenu(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Selected() {
		t.Error("enter should select the setup")
	}

	m = pressMenu(m, runeKey("b"))
	if m.IsQuitting() {
		t.Error("back should not quit from the menu")
	}
}

func TestMenuModelBriefing(t *testing.T) {
	m := NewMenuModel(Deps{}, arena.DefaultSetup(), 100, 40)

	if !strings.Contains(m.View(), "Contacting the host") {
		t.Error("View() should show the waiting line before the briefing")
	}

	next, _ := m.Update(BriefingMsg(narrative.Briefing{Title: "Operation Ember", Text: "Hold the line."}))
	m = next.(MenuModel)

	view := m.View()
	if !strings.Contains(view, "Operation Ember") || !strings.Contains(view, "Hold the line.") {
		t.Errorf("View() = %q, expected the briefing", view)
	}
}

func TestMenuModelInitFetchesBriefing(t *testing.T) {
	m := NewMenuModel(Deps{}, arena.DefaultSetup(), 100, 40)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init should return a briefing command")
	}
	msg, ok := cmd().(BriefingMsg)
	if !ok {
		t.Fatalf("Init command produced %T, expected BriefingMsg", msg)
	}
	if msg.Title == "" || msg.Text == "" {
		t.Errorf("offline briefing = %+v, expected a fallback", msg)
	}
}
