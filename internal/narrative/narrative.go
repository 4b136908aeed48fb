// Package narrative produces the mission briefing shown before a session and the
// after-action report shown after game over. Text comes from an external
// generation service; every failure degrades to a fixed fallback and never
// reaches the simulation.
package narrative

import (
	"context"
	"errors"

	"github.com/vovakirdan/zone-arena/internal/games/arena"
)

// ErrEmpty is returned by a Generator when the service answered with no text.
var ErrEmpty = errors.New("narrative: empty response")

// Briefing is the pre-session mission text.
type Briefing struct {
	Title string `json:"title"`
	Text  string `json:"briefing"`
}

// Report is the host's verdict on a finished run.
type Report struct {
	Rank    string `json:"rank"`
	Comment string `json:"comment"`
}

// Generator produces narrative text.
type Generator interface {
	Briefing(ctx context.Context) (Briefing, error)
	Report(ctx context.Context, stats arena.GameOverStats) (Report, error)
}

// Fallbacks used when the generator returns no text.
var (
	EmptyBriefing = Briefing{
		Title: "Showtime!",
		Text:  "Welcome to the arena! Your energy is draining fast. Knock out the baddies to recharge and be the last one standing!",
	}
	EmptyReport = Report{
		Rank:    "Contestant",
		Comment: "Thanks for playing, better luck next time!",
	}
)

// Fallbacks used when the generator fails.
var (
	ErrorBriefing = Briefing{
		Title: "Survival Time!",
		Text:  "The safe zone is shrinking and your energy is leaking! Defeat enemies to recharge and win the grand prize!",
	}
	ErrorReport = Report{
		Rank:    "Challenger",
		Comment: "That was... way too close! Give it another shot!",
	}
)

// Offline is a Generator that never contacts a service.
type Offline struct{}

// Briefing returns the no-text fallback.
func (Offline) Briefing(context.Context) (Briefing, error) {
	return EmptyBriefing, nil
}

// Report returns the no-text fallback.
func (Offline) Report(context.Context, arena.GameOverStats) (Report, error) {
	return EmptyReport, nil
}
