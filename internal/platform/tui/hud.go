package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/zone-arena/internal/games/arena"
	"github.com/vovakirdan/zone-arena/internal/narrative"
)

var (
	hudStyle      = lipgloss.NewStyle().Bold(true)
	hpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	hpLowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	armorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	readyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	chargingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	panelStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(1, 3)
)

// skillLabel renders a cooldown as "ready" or the remaining seconds.
func skillLabel(name string, pct float64, remaining time.Duration) string {
	if pct >= 100 {
		return readyStyle.Render(name + " ready")
	}
	return chargingStyle.Render(fmt.Sprintf("%s %.1fs", name, remaining.Seconds()))
}

// renderHUD builds the status line shown above the arena.
func renderHUD(u arena.ScoreUpdate, cd arena.Cooldowns, elapsed time.Duration) string {
	hp := hpStyle
	if u.MaxHP > 0 && u.HP*4 <= u.MaxHP {
		hp = hpLowStyle
	}

	parts := []string{
		hp.Render(fmt.Sprintf("HP %d/%d", u.HP, u.MaxHP)),
		armorStyle.Render(fmt.Sprintf("AR %d", u.Armor)),
		hudStyle.Render(fmt.Sprintf("KILLS %d", u.Kills)),
		hudStyle.Render(fmt.Sprintf("SCORE %d", u.Score)),
		fmt.Sprintf("T%d", u.WeaponTier),
		fmt.Sprintf("%d LEFT", u.Survivors),
		skillLabel("DASH", cd.DashPct, cd.DashRemaining),
		skillLabel("NADE", cd.GrenadePct, cd.GrenadeRemaining),
		formatClock(elapsed),
	}
	return strings.Join(parts, "  ")
}

func secs(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// formatClock renders a duration as mm:ss.
func formatClock(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// renderGameOver builds the after-action panel. report is nil until the
// narrative service answers.
func renderGameOver(stats arena.GameOverStats, report *narrative.Report, width, height int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ELIMINATED"))
	b.WriteString("\n\n")

	rank := stats.Rank
	comment := helpStyle.Render("The host is reviewing your run...")
	if report != nil {
		rank = report.Rank
		comment = lipgloss.NewStyle().Italic(true).Width(44).Render(report.Comment)
	}
	b.WriteString(fmt.Sprintf("Rank:      %s\n", hudStyle.Render(rank)))
	b.WriteString(fmt.Sprintf("Kills:     %d\n", stats.Kills))
	b.WriteString(fmt.Sprintf("Damage:    %d\n", stats.DamageDealt))
	b.WriteString(fmt.Sprintf("Accuracy:  %.1f%%\n", stats.Accuracy*100))
	b.WriteString(fmt.Sprintf("Survived:  %s\n", formatClock(secs(stats.SurvivedSeconds))))
	b.WriteString(fmt.Sprintf("Score:     %d\n", stats.Score))
	b.WriteString(fmt.Sprintf("Setup:     %s / %s\n\n", stats.Difficulty, stats.Class))
	b.WriteString(comment)
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("R: Restart  |  B: Menu  |  Q: Quit"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panelStyle.Render(b.String()))
}
