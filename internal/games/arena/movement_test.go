package arena

import (
	"math"
	"testing"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
)

const eps = 1e-9

func TestDirection(t *testing.T) {
	tests := []struct {
		name     string
		actions  []core.Action
		expected core.Vec2
	}{
		{"none", nil, core.V(0, 0)},
		{"up", []core.Action{core.ActionMoveUp}, core.V(0, -1)},
		{"right", []core.Action{core.ActionMoveRight}, core.V(1, 0)},
		{"opposite cancel", []core.Action{core.ActionMoveLeft, core.ActionMoveRight}, core.V(0, 0)},
		{"diagonal", []core.Action{core.ActionMoveDown, core.ActionMoveRight}, core.V(math.Sqrt2/2, math.Sqrt2/2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Direction(held(core.V(0, 0), tc.actions...))
			if math.Abs(got.X-tc.expected.X) > eps || math.Abs(got.Y-tc.expected.Y) > eps {
				t.Errorf("Direction() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestMovePlayerDiagonalSpeedEqualsAxisSpeed(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal)
	start := w.Player.Pos

	MovePlayer(w, env, held(core.V(0, 0), core.ActionMoveUp, core.ActionMoveLeft), 0)

	if d := w.Player.Pos.Dist(start); math.Abs(d-4) > eps {
		t.Errorf("diagonal displacement = %v, expected 4", d)
	}
}

func TestMovePlayerClampsToArena(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal)
	w.Player.Pos = core.V(22, 1278)
	w.Bounds = core.Bounds{W: 1280, H: 1280}

	MovePlayer(w, env, held(core.V(0, 0), core.ActionMoveLeft, core.ActionMoveDown), 0)

	if w.Player.Pos != core.V(20, 1260) {
		t.Errorf("Pos = %v, expected (20, 1260)", w.Player.Pos)
	}
}

func TestAim(t *testing.T) {
	p := Player{Pos: core.V(100, 100)}
	Aim(&p, core.V(100, 200))
	if math.Abs(p.Angle-math.Pi/2) > eps {
		t.Errorf("Angle = %v, expected pi/2", p.Angle)
	}
}

func TestDashWindowTriplesSpeed(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal)
	in := held(core.V(0, 0), core.ActionDash, core.ActionMoveRight)
	start := w.Player.Pos

	UseSkills(w, env, in, 0)
	MovePlayer(w, env, in, 0)
	if d := w.Player.Pos.X - start.X; math.Abs(d-12) > eps {
		t.Errorf("dash displacement = %v, expected 12", d)
	}
	if w.Timers.DashUntil != msec(200) {
		t.Errorf("DashUntil = %v, expected 200ms", w.Timers.DashUntil)
	}

	// Window closes, cooldown still running
	x := w.Player.Pos.X
	UseSkills(w, env, in, msec(200))
	MovePlayer(w, env, in, msec(200))
	if d := w.Player.Pos.X - x; math.Abs(d-4) > eps {
		t.Errorf("post-dash displacement = %v, expected 4", d)
	}
	if w.Timers.Dash.Last() != 0 {
		t.Error("dash must not retrigger before its cooldown elapses")
	}

	UseSkills(w, env, in, msec(3001))
	if !w.Dashing(msec(3001)) {
		t.Error("dash should retrigger after 3000ms")
	}
}

func TestDashInvulnerability(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal)
	UseSkills(w, env, held(core.V(0, 0), core.ActionDash), 0)

	for range 5 {
		enemyBulletAt(w, w.Player.Pos, 30)
	}
	ResolveCollisions(w, env, msec(150))

	if w.Player.HP != 100 {
		t.Errorf("HP = %d while dashing, expected 100", w.Player.HP)
	}
	for _, b := range w.Bullets {
		if b.Destroyed {
			t.Error("bullets pass through a dashing player")
		}
	}

	ResolveCollisions(w, env, msec(250))
	if w.Player.HP != 100-5*30 {
		t.Errorf("HP = %d after dash, expected %d", w.Player.HP, 100-5*30)
	}
}

func TestGrenade(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal, 0.1)
	placeEnemy(w, env, config.EnemyGrunt, core.V(350, 300))
	placeEnemy(w, env, config.EnemyGrunt, core.V(400, 300)) // exactly at radius

	in := held(core.V(300, 300), core.ActionGrenade)
	UseSkills(w, env, in, 0)

	if len(w.Explosions) != 1 {
		t.Fatalf("len(Explosions) = %d, expected 1", len(w.Explosions))
	}
	x := w.Explosions[0]
	if x.Damage != 100 || x.MaxRadius != 100 || x.Radius != 5 || x.MaxAge != 25 {
		t.Errorf("grenade explosion = %+v", x)
	}

	hp := w.Player.HP
	ResolveCollisions(w, env, 0)
	if !w.Enemies[0].Destroyed {
		t.Error("enemy inside the blast should be destroyed")
	}
	if w.Enemies[1].Destroyed || w.Enemies[1].HP != 50 {
		t.Errorf("enemy at the blast edge = %+v, expected untouched", w.Enemies[1])
	}
	// Blast kills are not credited by default.
	if w.Stats.Kills != 0 || w.Player.Score != 0 || w.Player.HP != hp {
		t.Errorf("kills = %d score = %d hp = %d, expected 0, 0, %d",
			w.Stats.Kills, w.Player.Score, w.Player.HP, hp)
	}
	if len(w.Explosions) != 1 {
		t.Errorf("len(Explosions) = %d, expected no death explosion", len(w.Explosions))
	}

	// Damage is applied on the first tick only
	w.Enemies[1].Pos = core.V(300, 300)
	ResolveCollisions(w, env, msec(16))
	if w.Enemies[1].HP != 50 {
		t.Errorf("aged explosion dealt damage, HP = %d", w.Enemies[1].HP)
	}

	UseSkills(w, env, in, msec(8000))
	UseSkills(w, env, in, msec(8001))
	var grenades int
	for _, x := range w.Explosions {
		if x.Damage > 0 {
			grenades++
		}
	}
	if grenades != 2 {
		t.Errorf("grenades = %d, expected 2 (cooldown is strictly 8000ms)", grenades)
	}
}

func TestHeavySpreadEvenlySpaced(t *testing.T) {
	w, env, rng := newTestWorld(config.ClassHeavy, config.DifficultyNormal)
	w.Player.Angle = 0.3

	n := Fire(w, env, held(core.V(0, 0), core.ActionFire), 0)
	if n != 5 || len(w.Bullets) != 5 {
		t.Fatalf("Fire() = %d bullets (%d in world), expected 5", n, len(w.Bullets))
	}
	if rng.Draws() != 0 {
		t.Errorf("zero jitter should draw nothing, drew %d", rng.Draws())
	}

	spread := 0.35
	for i, b := range w.Bullets {
		expected := 0.3 - spread/2 + spread/4*float64(i)
		if math.Abs(b.Angle-expected) > eps {
			t.Errorf("bullet %d angle = %v, expected %v", i, b.Angle, expected)
		}
	}
	if span := w.Bullets[4].Angle - w.Bullets[0].Angle; math.Abs(span-spread) > eps {
		t.Errorf("spread span = %v, expected %v", span, spread)
	}
	if w.Stats.ShotsFired != 1 {
		t.Errorf("ShotsFired = %d, expected one trigger pull", w.Stats.ShotsFired)
	}
}

func TestSingleBulletFiresOnAim(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal)
	Aim(&w.Player, core.V(w.Player.Pos.X+100, w.Player.Pos.Y))

	Fire(w, env, held(core.V(0, 0), core.ActionFire), 0)

	b := w.Bullets[0]
	if b.Angle != 0 {
		t.Errorf("Angle = %v, expected 0", b.Angle)
	}
	muzzle := w.Player.Pos.Add(core.V(20, 0))
	if b.Pos.Dist(muzzle) > eps {
		t.Errorf("Pos = %v, expected muzzle %v", b.Pos, muzzle)
	}
	if b.Damage != 22 || !b.FromPlayer || b.Radius != 4 {
		t.Errorf("bullet = %+v", b)
	}
}

func TestFireJitterBounds(t *testing.T) {
	tests := []struct {
		name     string
		class    config.PlayerClass
		draw     float64
		expected float64
		draws    int
	}{
		{"assault low", config.ClassAssault, 0, -0.025, 1},
		{"assault high", config.ClassAssault, 0.75, 0.0125, 1},
		{"rusher adds spread jitter", config.ClassRusher, 0.75, 0.0125 + 0.05, 2},
		{"rusher low", config.ClassRusher, 0, -0.025 - 0.1, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, env, rng := newTestWorld(tc.class, config.DifficultyNormal, tc.draw)
			env.Config.Weapons.Jitter = 0.05

			Fire(w, env, held(core.V(0, 0), core.ActionFire), 0)

			if got := w.Bullets[0].Angle; math.Abs(got-tc.expected) > eps {
				t.Errorf("Angle = %v, expected %v", got, tc.expected)
			}
			if rng.Draws() != tc.draws {
				t.Errorf("Draws() = %d, expected %d", rng.Draws(), tc.draws)
			}
		})
	}
}

func TestFireRespectsFireRate(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassSniper, config.DifficultyNormal)
	in := held(core.V(0, 0), core.ActionFire)

	tests := []struct {
		now      int
		expected int
	}{
		{0, 1},
		{899, 0},
		{900, 0},
		{901, 1},
		{1500, 0},
	}

	for _, tc := range tests {
		if got := Fire(w, env, in, msec(tc.now)); got != tc.expected {
			t.Errorf("Fire(%dms) = %d, expected %d", tc.now, got, tc.expected)
		}
	}

	if n := Fire(w, env, held(core.V(0, 0)), msec(5000)); n != 0 {
		t.Error("released trigger must not fire")
	}
}
