package arena

import (
	"math"
	"testing"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
)

func TestScoutDiesOnSecondAssaultBullet(t *testing.T) {
	w, env, rng := newTestWorld(config.ClassAssault, config.DifficultyNormal, 0.5)
	w.Player.HP = 50
	pos := core.V(900, 360)
	placeEnemy(w, env, config.EnemyScout, pos)

	playerBulletAt(w, pos)
	ResolveCollisions(w, env, 0)

	e := w.Enemies[0]
	if e.HP != 3 || e.Destroyed {
		t.Fatalf("after first hit HP = %d destroyed = %v, expected 3 alive", e.HP, e.Destroyed)
	}
	if w.Stats.Kills != 0 {
		t.Errorf("Kills = %d, expected 0", w.Stats.Kills)
	}

	Cleanup(w)
	playerBulletAt(w, w.Enemies[0].Pos)
	ResolveCollisions(w, env, msec(16))

	e = w.Enemies[0]
	if !e.Destroyed {
		t.Fatal("scout should be destroyed by the second hit")
	}
	if w.Stats.Kills != 1 {
		t.Errorf("Kills = %d, expected 1", w.Stats.Kills)
	}
	if w.Player.Score != 200 {
		t.Errorf("Score = %d, expected 200", w.Player.Score)
	}
	if w.Player.HP != 60 {
		t.Errorf("HP = %d, expected 60 after kill heal", w.Player.HP)
	}
	if w.Stats.ShotsHit != 2 || w.Stats.DamageDealt != 44 {
		t.Errorf("hits = %d damage = %d, expected 2 and 44", w.Stats.ShotsHit, w.Stats.DamageDealt)
	}
	if rng.Draws() != 1 {
		t.Errorf("loot rolls = %d, expected exactly 1", rng.Draws())
	}
}

func TestEveryOverlappingBulletHitsButKillCountsOnce(t *testing.T) {
	w, env, rng := newTestWorld(config.ClassAssault, config.DifficultyNormal, 0.9, 0.1)
	w.Player.HP = 95
	pos := core.V(900, 360)
	placeEnemy(w, env, config.EnemyGrunt, pos)

	for range 4 {
		playerBulletAt(w, pos)
	}
	ResolveCollisions(w, env, 0)

	if w.Stats.Kills != 1 {
		t.Errorf("Kills = %d, expected 1", w.Stats.Kills)
	}
	if w.Player.Score != 100 {
		t.Errorf("Score = %d, expected 100", w.Player.Score)
	}
	if w.Player.HP != 100 {
		t.Errorf("HP = %d, expected heal capped at 100", w.Player.HP)
	}
	if w.Stats.ShotsHit != 4 || w.Stats.DamageDealt != 88 {
		t.Errorf("hits = %d damage = %d, expected 4 and 88", w.Stats.ShotsHit, w.Stats.DamageDealt)
	}
	for i, b := range w.Bullets {
		if !b.Destroyed {
			t.Errorf("bullet %d should be spent on the destroyed grunt", i)
		}
	}
	if rng.Draws() != 2 {
		t.Errorf("Draws() = %d, expected drop roll plus type roll", rng.Draws())
	}
	if len(w.Loot) != 1 || w.Loot[0].Kind != LootHealth {
		t.Errorf("Loot = %+v, expected one health crate", w.Loot)
	}

	var death int
	for _, x := range w.Explosions {
		if x.Damage == 0 && x.MaxRadius == 30 {
			death++
		}
	}
	if death != 1 {
		t.Errorf("death explosions = %d, expected 1", death)
	}

	Cleanup(w)
	if len(w.Enemies) != 0 {
		t.Errorf("len(Enemies) = %d after cleanup, expected 0", len(w.Enemies))
	}
	if len(w.Bullets) != 0 {
		t.Errorf("len(Bullets) = %d after cleanup, expected 0", len(w.Bullets))
	}
}

func TestSecondBulletStopsAtCorpse(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal, 0.1)
	pos := core.V(900, 360)
	scout := placeEnemy(w, env, config.EnemyScout, pos)
	scout.HP = 10

	playerBulletAt(w, pos)
	playerBulletAt(w, pos)
	ResolveCollisions(w, env, 0)

	if w.Stats.Kills != 1 {
		t.Errorf("Kills = %d, expected 1", w.Stats.Kills)
	}
	if w.Stats.ShotsHit != 2 || w.Stats.DamageDealt != 44 {
		t.Errorf("hits = %d damage = %d, expected 2 and 44", w.Stats.ShotsHit, w.Stats.DamageDealt)
	}
	if !w.Bullets[0].Destroyed || !w.Bullets[1].Destroyed {
		t.Error("both bullets should be destroyed")
	}
}

func TestBulletHitsEveryOverlappingEnemy(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal, 0.1)
	pos := core.V(900, 360)
	placeEnemy(w, env, config.EnemyGrunt, pos)
	placeEnemy(w, env, config.EnemyGrunt, pos)

	playerBulletAt(w, pos)
	ResolveCollisions(w, env, 0)

	if w.Enemies[0].HP != 28 || w.Enemies[1].HP != 28 {
		t.Errorf("HP = %d, %d, expected 28, 28", w.Enemies[0].HP, w.Enemies[1].HP)
	}
	if w.Stats.ShotsHit != 2 || w.Stats.DamageDealt != 44 {
		t.Errorf("hits = %d damage = %d, expected 2 and 44", w.Stats.ShotsHit, w.Stats.DamageDealt)
	}
}

func TestKnockback(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal)
	placeEnemy(w, env, config.EnemyHeavy, core.V(900, 360))
	playerBulletAt(w, core.V(900, 360))
	w.Bullets[0].Angle = 0

	ResolveCollisions(w, env, 0)

	if got := w.Enemies[0].Pos; got != core.V(905, 360) {
		t.Errorf("Pos = %v, expected (905, 360)", got)
	}
}

func TestExplosionAndBulletSameTickSingleKill(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal, 0.1)
	pos := core.V(900, 360)
	placeEnemy(w, env, config.EnemyScout, pos)
	playerBulletAt(w, pos)
	playerBulletAt(w, pos)
	spawnExplosion(w, env, pos, 100, 100)

	ResolveCollisions(w, env, 0)

	if w.Stats.Kills != 1 {
		t.Errorf("Kills = %d, expected 1", w.Stats.Kills)
	}
	if w.Player.Score != 200 {
		t.Errorf("Score = %d, expected 200", w.Player.Score)
	}
}

func TestExplosionKillCredit(t *testing.T) {
	tests := []struct {
		credit bool
		kills  int
		score  int
	}{
		{true, 1, 100},
		{false, 0, 0},
	}

	for _, tc := range tests {
		w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal, 0.1)
		env.Config.Rules.CreditExplosionKills = tc.credit
		placeEnemy(w, env, config.EnemyGrunt, core.V(300, 300))
		spawnExplosion(w, env, core.V(310, 300), 100, 100)

		ResolveCollisions(w, env, 0)

		if !w.Enemies[0].Destroyed {
			t.Errorf("credit=%v: enemy should be destroyed", tc.credit)
		}
		if w.Stats.Kills != tc.kills || w.Player.Score != tc.score {
			t.Errorf("credit=%v: kills = %d score = %d, expected %d and %d",
				tc.credit, w.Stats.Kills, w.Player.Score, tc.kills, tc.score)
		}
	}
}

func TestExplosionsAgeAndExpire(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal)
	spawnExplosion(w, env, core.V(0, 0), 0, 30)

	for range 24 {
		ResolveCollisions(w, env, 0)
		Cleanup(w)
	}
	if len(w.Explosions) != 1 {
		t.Fatalf("explosion expired early at age %d", w.Explosions[0].Age)
	}
	if r := w.Explosions[0].DrawRadius(); math.Abs(r-33.8) > eps {
		t.Errorf("DrawRadius() = %v, expected 33.8", r)
	}

	ResolveCollisions(w, env, 0)
	Cleanup(w)
	if len(w.Explosions) != 0 {
		t.Errorf("explosion should expire at age 25")
	}
}

func TestEnemyBulletHitsPlayer(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal)
	enemyBulletAt(w, w.Player.Pos.Add(core.V(23, 0)), 5) // 23 < 20 + 4
	enemyBulletAt(w, w.Player.Pos.Add(core.V(24, 0)), 5) // touching only

	ResolveCollisions(w, env, 0)

	if w.Player.HP != 95 {
		t.Errorf("HP = %d, expected 95", w.Player.HP)
	}
	if !w.Bullets[0].Destroyed || w.Bullets[1].Destroyed {
		t.Error("only the overlapping bullet should be destroyed")
	}
}

func TestArmorAbsorbsDamageWhenEnabled(t *testing.T) {
	tests := []struct {
		absorbs bool
		hp      int
		armor   int
	}{
		{false, 70, 20},
		{true, 90, 0},
	}

	for _, tc := range tests {
		w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal)
		env.Config.Rules.ArmorAbsorbsDamage = tc.absorbs
		w.Player.Armor = 20
		enemyBulletAt(w, w.Player.Pos, 30)

		ResolveCollisions(w, env, 0)

		if w.Player.HP != tc.hp || w.Player.Armor != tc.armor {
			t.Errorf("absorbs=%v: hp = %d armor = %d, expected %d and %d",
				tc.absorbs, w.Player.HP, w.Player.Armor, tc.hp, tc.armor)
		}
	}
}

func TestAdvanceBullets(t *testing.T) {
	w, _, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal)
	w.Bullets = []Bullet{
		{Pos: core.V(10, 10), Velocity: core.V(5, 0)},
		{Pos: core.V(2, 10), Velocity: core.V(-5, 0)},
		{Pos: core.V(640, 718), Velocity: core.V(0, 2)},
	}

	AdvanceBullets(w)

	if w.Bullets[0].Pos != core.V(15, 10) || w.Bullets[0].Destroyed {
		t.Errorf("bullet 0 = %+v", w.Bullets[0])
	}
	if !w.Bullets[1].Destroyed {
		t.Error("bullet leaving the left edge should be destroyed")
	}
	if w.Bullets[2].Destroyed {
		t.Error("bullet on the bottom edge is still inside")
	}
}
