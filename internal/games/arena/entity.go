// Package arena implements the zone arena survival simulation: a player-controlled
// character fights waves of enemies inside a shrinking safe zone until hp reaches zero.
//
// All simulation state lives in a World owned by a Session. The resolvers in this
// package (spawner, movement, skills, AI, combat, zone, loot) are plain functions over
// a *World and an *Env so they can be exercised one at a time without running the loop.
package arena

import (
	"time"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
)

// Player is the single player-controlled character of a session.
type Player struct {
	Pos      core.Vec2
	Radius   float64
	Velocity core.Vec2 // Displacement applied this tick
	Angle    float64   // Aim angle in radians
	Color    core.Color

	HP, MaxHP int
	Armor     int
	Score     int

	Class  config.PlayerClass
	Gender config.Gender

	MoveSpeed    float64
	FireRate     time.Duration
	BulletDamage int
	BulletSpeed  float64
	BulletCount  int
	Spread       float64
	SpreadJitter bool
	WeaponTier   int
}

// Enemy is a hostile unit that approaches and shoots at the player.
type Enemy struct {
	Pos        core.Vec2
	Radius     float64
	Velocity   core.Vec2 // Unused; enemies move by direct angle-based displacement
	Angle      float64
	Color      core.Color
	HP, MaxHP  int
	Kind       config.EnemyKind
	ScoreValue int
	Attack     Cooldown // Last shot; a fresh enemy may fire immediately
	Destroyed  bool
}

// Bullet is a projectile fired by the player or an enemy.
type Bullet struct {
	Pos        core.Vec2
	Radius     float64
	Velocity   core.Vec2
	Angle      float64
	Color      core.Color
	Damage     int
	FromPlayer bool
	Speed      float64
	Destroyed  bool
}

// Explosion is an expanding blast. Damage is applied once, on its first tick.
type Explosion struct {
	Pos       core.Vec2
	Radius    float64
	MaxRadius float64
	Age       int
	MaxAge    int
	Damage    int
}

// DrawRadius returns the visual radius, growing with age.
func (e Explosion) DrawRadius() float64 {
	if e.MaxAge <= 0 {
		return e.Radius
	}
	return e.Radius + float64(e.Age)/float64(e.MaxAge)*e.MaxRadius
}

// Expired reports whether the explosion has lived out its age.
func (e Explosion) Expired() bool {
	return e.Age >= e.MaxAge
}

// LootKind identifies a loot crate's effect.
type LootKind int

const (
	LootHealth LootKind = iota
	LootArmor
	LootWeapon
)

// String returns the wire name of the loot kind.
func (k LootKind) String() string {
	switch k {
	case LootHealth:
		return "health"
	case LootArmor:
		return "armor"
	case LootWeapon:
		return "weapon"
	default:
		return "unknown"
	}
}

// LootCrate is a pickup dropped by a killed enemy.
type LootCrate struct {
	Pos       core.Vec2
	Radius    float64
	Kind      LootKind
	Collected bool
}

// SafeZone is the shrinking circle outside of which the player takes damage.
type SafeZone struct {
	Center       core.Vec2
	Radius       float64
	TargetRadius float64
	ShrinkSpeed  float64 // Units per tick
}

// Contains reports whether p is inside or on the zone edge.
func (z SafeZone) Contains(p core.Vec2) bool {
	return p.Dist(z.Center) <= z.Radius
}
