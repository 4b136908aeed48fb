// Package tui provides the Bubble Tea host for the arena.
// It handles the terminal UI loop, input mapping, rendering and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick message after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
