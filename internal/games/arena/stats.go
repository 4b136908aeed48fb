package arena

import (
	"time"

	"github.com/vovakirdan/zone-arena/internal/config"
)

// DefaultRank is the rank reported at game over before any narrative rating.
const DefaultRank = "Soldier"

// ArenaPopulation is the contestant count the survivor estimate counts down from.
const ArenaPopulation = 99

// ScoreUpdate is the per-tick HUD snapshot.
type ScoreUpdate struct {
	Kills      int
	HP         int
	MaxHP      int
	Armor      int
	Score      int
	WeaponTier int
	Survivors  int     // Estimated contestants left, never below zero
	DashPct    float64 // 0-100
	GrenadePct float64 // 0-100
}

// GameOverStats is the terminal report of a session.
type GameOverStats struct {
	Kills           int
	DamageDealt     int
	Accuracy        float64 // Hits per shot fired, 0 if nothing was fired
	SurvivedSeconds int
	Rank            string
	Difficulty      config.Difficulty
	Class           config.PlayerClass
	Score           int
}

// Accuracy returns hits per shot fired. Multi-bullet shots can push it above 1.
func (s Stats) Accuracy() float64 {
	if s.ShotsFired == 0 {
		return 0
	}
	return float64(s.ShotsHit) / float64(s.ShotsFired)
}

func scoreUpdate(w *World, env *Env, now time.Duration) ScoreUpdate {
	cd := SkillCooldowns(w, env, now)
	return ScoreUpdate{
		Kills:      w.Stats.Kills,
		HP:         w.Player.HP,
		MaxHP:      w.Player.MaxHP,
		Armor:      w.Player.Armor,
		Score:      w.Player.Score,
		WeaponTier: w.Player.WeaponTier,
		Survivors:  max(0, ArenaPopulation-w.Stats.Kills),
		DashPct:    cd.DashPct,
		GrenadePct: cd.GrenadePct,
	}
}

func gameOverStats(w *World, now time.Duration) GameOverStats {
	return GameOverStats{
		Kills:           w.Stats.Kills,
		DamageDealt:     w.Stats.DamageDealt,
		Accuracy:        w.Stats.Accuracy(),
		SurvivedSeconds: int(w.Elapsed(now) / time.Second),
		Rank:            DefaultRank,
		Difficulty:      w.Difficulty,
		Class:           w.Player.Class,
		Score:           w.Player.Score,
	}
}
