package arena

import (
	"math"
	"time"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
)

// Setup is the player's choice at session start.
type Setup struct {
	Difficulty config.Difficulty
	Class      config.PlayerClass
	Gender     config.Gender
}

// DefaultSetup returns normal difficulty with the assault class.
func DefaultSetup() Setup {
	return Setup{
		Difficulty: config.DifficultyNormal,
		Class:      config.ClassAssault,
		Gender:     config.GenderMale,
	}
}

// Env bundles the read-only inputs every resolver needs.
type Env struct {
	Config config.ArenaConfig
	Mult   config.Multipliers
	Rand   Random
}

// NewEnv creates an Env for the given difficulty.
func NewEnv(cfg config.ArenaConfig, d config.Difficulty, rng Random) *Env {
	return &Env{
		Config: cfg,
		Mult:   cfg.Difficulty.Get(d),
		Rand:   rng,
	}
}

// Timers holds every timestamp-based gate of a session.
type Timers struct {
	Spawn      Cooldown
	Shot       Cooldown
	Bleed      Cooldown // First use records the baseline only
	Dash       Cooldown
	DashUntil  time.Duration
	Grenade    Cooldown
	ZoneDamage Cooldown
}

// Stats accumulates the bookkeeping reported at game over.
type Stats struct {
	Start       time.Duration
	ShotsFired  int // Trigger pulls, not projectiles
	ShotsHit    int
	DamageDealt int
	Kills       int
}

// World is the complete mutable state of one session.
type World struct {
	Bounds     core.Bounds
	Difficulty config.Difficulty

	Player     Player
	Enemies    []Enemy
	Bullets    []Bullet
	Explosions []Explosion
	Loot       []LootCrate
	Zone       SafeZone

	Timers Timers
	Stats  Stats
	Tick   uint64
}

// NewWorld builds a fresh world for setup starting at now.
func NewWorld(cfg config.ArenaConfig, bounds core.Bounds, setup Setup, now time.Duration) *World {
	class := cfg.Classes.Get(setup.Class)

	return &World{
		Bounds:     bounds,
		Difficulty: setup.Difficulty,
		Player: Player{
			Pos:          bounds.Center(),
			Radius:       cfg.Player.Radius,
			Color:        core.ParseColor(class.Color),
			HP:           class.HP,
			MaxHP:        class.HP,
			Class:        setup.Class,
			Gender:       setup.Gender,
			MoveSpeed:    class.MoveSpeed,
			FireRate:     class.FireRate(),
			BulletDamage: class.BulletDamage,
			BulletSpeed:  class.BulletSpeed,
			BulletCount:  class.BulletCount,
			Spread:       class.Spread,
			SpreadJitter: class.SpreadJitter,
			WeaponTier:   1,
		},
		Zone: SafeZone{
			Center:       bounds.Center(),
			Radius:       math.Max(bounds.W, bounds.H) * cfg.Zone.InitialFactor,
			TargetRadius: cfg.Zone.TargetRadius,
			ShrinkSpeed:  cfg.Zone.ShrinkSpeed,
		},
		Stats: Stats{Start: now},
	}
}

// Elapsed returns the play time at now.
func (w *World) Elapsed(now time.Duration) time.Duration {
	return now - w.Stats.Start
}

// Dashing reports whether the dash window is open at now.
func (w *World) Dashing(now time.Duration) bool {
	return w.Timers.Dash.Used() && now < w.Timers.DashUntil
}

// Shift moves every timestamp forward by d, as if the time in between never happened.
func (w *World) Shift(d time.Duration) {
	w.Stats.Start += d
	w.Timers.Spawn.Shift(d)
	w.Timers.Shot.Shift(d)
	w.Timers.Bleed.Shift(d)
	w.Timers.Dash.Shift(d)
	if w.Timers.Dash.Used() {
		w.Timers.DashUntil += d
	}
	w.Timers.Grenade.Shift(d)
	w.Timers.ZoneDamage.Shift(d)
	for i := range w.Enemies {
		w.Enemies[i].Attack.Shift(d)
	}
}

// damagePlayer applies incoming damage. With armor absorption enabled the
// armor pool soaks damage first, point for point.
func damagePlayer(w *World, env *Env, amount int) {
	if amount <= 0 {
		return
	}
	if env.Config.Rules.ArmorAbsorbsDamage && w.Player.Armor > 0 {
		absorbed := min(w.Player.Armor, amount)
		w.Player.Armor -= absorbed
		amount -= absorbed
	}
	w.Player.HP -= amount
}

// healPlayer restores hp, capped at max.
func healPlayer(p *Player, amount int) {
	p.HP = min(p.MaxHP, p.HP+amount)
}
