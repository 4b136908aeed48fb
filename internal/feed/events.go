package feed

import (
	"github.com/vovakirdan/zone-arena/internal/games/arena"
	"github.com/vovakirdan/zone-arena/internal/narrative"
)

// Event types as they appear on the wire.
const (
	TypeScore    = "score"
	TypeGameOver = "game_over"
	TypeBriefing = "briefing"
	TypeReport   = "report"
	TypeState    = "state"
)

// Event is something a host shows its player.
type Event interface {
	// Type returns the wire name of the event.
	Type() string
}

// ScoreEvent carries the per-tick HUD numbers.
type ScoreEvent struct {
	Kills      int     `json:"kills"`
	HP         int     `json:"hp"`
	MaxHP      int     `json:"maxHp"`
	Armor      int     `json:"armor"`
	Score      int     `json:"score"`
	WeaponTier int     `json:"weaponTier"`
	Survivors  int     `json:"survivors"`
	DashPct    float64 `json:"dashPct"`
	GrenadePct float64 `json:"grenadePct"`
}

// Type implements Event.
func (ScoreEvent) Type() string { return TypeScore }

// NewScoreEvent converts a simulation score update.
func NewScoreEvent(u arena.ScoreUpdate) ScoreEvent {
	return ScoreEvent{
		Kills:      u.Kills,
		HP:         u.HP,
		MaxHP:      u.MaxHP,
		Armor:      u.Armor,
		Score:      u.Score,
		WeaponTier: u.WeaponTier,
		Survivors:  u.Survivors,
		DashPct:    u.DashPct,
		GrenadePct: u.GrenadePct,
	}
}

// GameOverEvent is sent once when the session ends.
type GameOverEvent struct {
	Kills           int     `json:"kills"`
	DamageDealt     int     `json:"damageDealt"`
	Accuracy        float64 `json:"accuracy"`
	SurvivedSeconds int     `json:"survivedSeconds"`
	Rank            string  `json:"rank"`
	Difficulty      string  `json:"difficulty"`
	Class           string  `json:"class"`
	Score           int     `json:"score"`
}

// Type implements Event.
func (GameOverEvent) Type() string { return TypeGameOver }

// NewGameOverEvent converts the final session report.
func NewGameOverEvent(s arena.GameOverStats) GameOverEvent {
	return GameOverEvent{
		Kills:           s.Kills,
		DamageDealt:     s.DamageDealt,
		Accuracy:        s.Accuracy,
		SurvivedSeconds: s.SurvivedSeconds,
		Rank:            s.Rank,
		Difficulty:      string(s.Difficulty),
		Class:           string(s.Class),
		Score:           s.Score,
	}
}

// BriefingEvent delivers the mission briefing.
type BriefingEvent struct {
	Title string `json:"title"`
	Text  string `json:"briefing"`
}

// Type implements Event.
func (BriefingEvent) Type() string { return TypeBriefing }

// NewBriefingEvent converts a narrative briefing.
func NewBriefingEvent(b narrative.Briefing) BriefingEvent {
	return BriefingEvent{Title: b.Title, Text: b.Text}
}

// ReportEvent delivers the after-action report.
type ReportEvent struct {
	Rank    string `json:"rank"`
	Comment string `json:"comment"`
}

// Type implements Event.
func (ReportEvent) Type() string { return TypeReport }

// NewReportEvent converts a narrative report.
func NewReportEvent(r narrative.Report) ReportEvent {
	return ReportEvent{Rank: r.Rank, Comment: r.Comment}
}

// StateEvent reports a session lifecycle change.
type StateEvent struct {
	State string `json:"state"`
}

// Type implements Event.
func (StateEvent) Type() string { return TypeState }
