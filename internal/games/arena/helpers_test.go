package arena

import (
	"time"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
)

var testBounds = core.Bounds{W: 1280, H: 720}

func msec(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// testConfig returns the defaults with weapon jitter disabled.
func testConfig() config.ArenaConfig {
	cfg := config.DefaultArenaConfig()
	cfg.Weapons.Jitter = 0
	return cfg
}

func newTestWorld(class config.PlayerClass, d config.Difficulty, draws ...float64) (*World, *Env, *ScriptedRandom) {
	cfg := testConfig()
	rng := NewScriptedRandom(draws...)
	setup := Setup{Difficulty: d, Class: class, Gender: config.GenderMale}
	return NewWorld(cfg, testBounds, setup, 0), NewEnv(cfg, d, rng), rng
}

func placeEnemy(w *World, env *Env, kind config.EnemyKind, pos core.Vec2) *Enemy {
	w.Enemies = append(w.Enemies, newEnemy(env, kind, pos))
	return &w.Enemies[len(w.Enemies)-1]
}

func playerBulletAt(w *World, pos core.Vec2) {
	p := w.Player
	w.Bullets = append(w.Bullets, Bullet{
		Pos:        pos,
		Radius:     4,
		Damage:     p.BulletDamage,
		FromPlayer: true,
		Speed:      p.BulletSpeed,
	})
}

func enemyBulletAt(w *World, pos core.Vec2, damage int) {
	w.Bullets = append(w.Bullets, Bullet{
		Pos:    pos,
		Radius: 4,
		Damage: damage,
		Speed:  4,
	})
}

func held(pointer core.Vec2, actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	f.Pointer = pointer
	return f
}
