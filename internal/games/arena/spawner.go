package arena

import (
	"math"
	"time"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
)

// Arena edges an enemy can spawn behind.
const (
	edgeTop = iota
	edgeRight
	edgeBottom
	edgeLeft
	edgeCount
)

// SpawnInterval returns the gate between enemy spawns after elapsed seconds of play,
// scaled by the difficulty spawn multiplier.
func SpawnInterval(env *Env, elapsedSeconds float64) time.Duration {
	base := env.Config.Enemies.Spawn.Interval(elapsedSeconds)
	return time.Duration(float64(base) * env.Mult.SpawnInterval)
}

// TrySpawnEnemy adds at most one enemy just outside a random arena edge.
// It returns true if an enemy was spawned.
//
// Draw order is edge, coordinate along the edge, then the type roll.
func TrySpawnEnemy(w *World, env *Env, now time.Duration, elapsedSeconds float64) bool {
	if !w.Timers.Spawn.Ready(now, SpawnInterval(env, elapsedSeconds)) {
		return false
	}
	w.Timers.Spawn.Trigger(now)

	pos := spawnPosition(w.Bounds, env)
	kind := rollEnemyKind(env, env.Rand.Float64(), elapsedSeconds)
	w.Enemies = append(w.Enemies, newEnemy(env, kind, pos))
	return true
}

func spawnPosition(b core.Bounds, env *Env) core.Vec2 {
	buffer := env.Config.Enemies.Spawn.EdgeBuffer

	edge := int(env.Rand.Float64() * edgeCount)
	if edge >= edgeCount {
		edge = edgeCount - 1
	}
	r := env.Rand.Float64()

	switch edge {
	case edgeTop:
		return core.V(r*b.W, -buffer)
	case edgeRight:
		return core.V(b.W+buffer, r*b.H)
	case edgeBottom:
		return core.V(r*b.W, b.H+buffer)
	default:
		return core.V(-buffer, r*b.H)
	}
}

// rollEnemyKind picks the first kind in spawn order whose roll threshold is
// exceeded and whose minimum play time has passed. The last kind is the fallback.
func rollEnemyKind(env *Env, roll, elapsedSeconds float64) config.EnemyKind {
	last := len(config.SpawnOrder) - 1
	for i, kind := range config.SpawnOrder {
		if i == last {
			return kind
		}
		s := env.Config.Enemies.Types.Get(kind)
		if roll > s.RollAbove && (s.MinElapsedS == 0 || elapsedSeconds > s.MinElapsedS) {
			return kind
		}
	}
	return config.EnemyGrunt
}

func newEnemy(env *Env, kind config.EnemyKind, pos core.Vec2) Enemy {
	s := env.Config.Enemies.Types.Get(kind)
	hp := int(math.Floor(float64(s.HP) * env.Mult.EnemyStats))
	if hp < 1 {
		hp = 1
	}
	return Enemy{
		Pos:        pos,
		Radius:     s.Radius,
		Color:      core.ParseColor(s.Color),
		HP:         hp,
		MaxHP:      hp,
		Kind:       kind,
		ScoreValue: s.Score,
	}
}

// TrySpawnLoot drops a crate at pos. The caller has already won the drop roll;
// this only rolls the crate type.
func TrySpawnLoot(w *World, env *Env, pos core.Vec2) LootKind {
	lc := env.Config.Loot
	roll := env.Rand.Float64()

	kind := LootHealth
	switch {
	case roll > lc.WeaponAbove:
		kind = LootWeapon
	case roll > lc.ArmorAbove:
		kind = LootArmor
	}

	w.Loot = append(w.Loot, LootCrate{
		Pos:    pos,
		Radius: lc.Radius,
		Kind:   kind,
	})
	return kind
}
