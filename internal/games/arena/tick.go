package arena

import (
	"time"

	"github.com/vovakirdan/zone-arena/internal/core"
)

// StepResult is the outcome of one tick.
type StepResult struct {
	Score    ScoreUpdate
	GameOver bool
	Stats    GameOverStats // Set only when GameOver is true
}

// Step advances the world by one tick in fixed order. The input frame is read,
// never written.
func Step(w *World, env *Env, in core.InputFrame, now time.Duration) StepResult {
	w.Tick++

	ShrinkZone(&w.Zone)
	UseSkills(w, env, in, now)
	MovePlayer(w, env, in, now)
	Aim(&w.Player, in.Pointer)
	Fire(w, env, in, now)
	Bleed(w, env, now)
	AdvanceBullets(w)
	TrySpawnEnemy(w, env, now, w.Elapsed(now).Seconds())
	RunEnemies(w, env, now)
	ResolveCollisions(w, env, now)
	ApplyZoneDamage(w, env, now)
	CollectLoot(w, env)
	Cleanup(w)

	var res StepResult
	if w.Player.HP <= 0 {
		w.Player.HP = 0
		res.GameOver = true
		res.Stats = gameOverStats(w, now)
	}
	res.Score = scoreUpdate(w, env, now)
	return res
}
