package arena

import (
	"slices"
	"time"

	"github.com/vovakirdan/zone-arena/internal/core"
)

// AdvanceBullets moves every bullet and destroys those that left the arena.
func AdvanceBullets(w *World) {
	for i := range w.Bullets {
		b := &w.Bullets[i]
		b.Pos = b.Pos.Add(b.Velocity)
		if !w.Bounds.Contains(b.Pos) {
			b.Destroyed = true
		}
	}
}

// ResolveCollisions runs every collision test of the tick. Destroyed entities are
// only flagged here and still take part in every test; Cleanup purges them once
// all resolvers have seen them.
func ResolveCollisions(w *World, env *Env, now time.Duration) {
	dashing := w.Dashing(now)

	for i := range w.Bullets {
		if w.Bullets[i].FromPlayer {
			hitEnemy(w, env, i)
			continue
		}
		b := &w.Bullets[i]
		if dashing {
			continue
		}
		if core.CirclesOverlap(b.Pos, b.Radius, w.Player.Pos, w.Player.Radius) {
			b.Destroyed = true
			damagePlayer(w, env, b.Damage)
		}
	}

	detonate(w, env)
}

// hitEnemy tests player bullet bi against every enemy. The bullet damages each
// one it overlaps, enemies already destroyed this tick included; only the kill
// reward is limited to the first crossing below zero.
func hitEnemy(w *World, env *Env, bi int) {
	b := &w.Bullets[bi]
	for j := range w.Enemies {
		e := &w.Enemies[j]
		if !core.CirclesOverlap(b.Pos, b.Radius, e.Pos, e.Radius) {
			continue
		}

		b.Destroyed = true
		e.HP -= b.Damage
		w.Stats.ShotsHit++
		w.Stats.DamageDealt += b.Damage
		e.Pos = e.Pos.Add(core.Polar(b.Angle, env.Config.Enemies.Knockback))

		if e.HP <= 0 {
			killEnemy(w, env, j)
		}
	}
}

// detonate applies damage of explosions on their first tick, then ages all of them.
// Explosions created by kills during this pass start aging next tick.
func detonate(w *World, env *Env) {
	n := len(w.Explosions)
	for i := 0; i < n; i++ {
		x := w.Explosions[i]
		if x.Age == 0 && x.Damage > 0 {
			for j := range w.Enemies {
				e := &w.Enemies[j]
				if e.Destroyed || x.Pos.Dist(e.Pos) >= x.MaxRadius {
					continue
				}
				e.HP -= x.Damage
				if e.HP > 0 {
					continue
				}
				if env.Config.Rules.CreditExplosionKills {
					killEnemy(w, env, j)
				} else {
					e.Destroyed = true
				}
			}
		}
		w.Explosions[i].Age++
	}
}

// killEnemy marks enemy j destroyed and awards the kill. It is the only place
// kills are counted; an enemy already destroyed earns nothing.
func killEnemy(w *World, env *Env, j int) {
	e := &w.Enemies[j]
	if e.Destroyed {
		return
	}
	e.Destroyed = true
	pos := e.Pos

	w.Stats.Kills++
	w.Player.Score += e.ScoreValue * 100
	healPlayer(&w.Player, env.Config.Player.KillHeal)

	spawnExplosion(w, env, pos, 0, env.Config.Explosion.DeathRadius)
	if env.Rand.Float64() > env.Config.Loot.DropAbove {
		TrySpawnLoot(w, env, pos)
	}
}

// Cleanup purges destroyed bullets and enemies, expired explosions and collected loot.
func Cleanup(w *World) {
	w.Bullets = slices.DeleteFunc(w.Bullets, func(b Bullet) bool { return b.Destroyed })
	w.Enemies = slices.DeleteFunc(w.Enemies, func(e Enemy) bool { return e.Destroyed })
	w.Explosions = slices.DeleteFunc(w.Explosions, Explosion.Expired)
	w.Loot = slices.DeleteFunc(w.Loot, func(l LootCrate) bool { return l.Collected })
}
