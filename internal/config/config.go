// Package config provides YAML-based arena configuration loading and
// difficulty management. Every tunable constant of the simulation lives here.
package config

import "time"

// ArenaConfig contains all configuration for the arena simulation.
type ArenaConfig struct {
	Arena      ArenaSize       `yaml:"arena"`
	Player     PlayerConfig    `yaml:"player"`
	Classes    ClassTable      `yaml:"classes"`
	Skills     SkillsConfig    `yaml:"skills"`
	Weapons    WeaponsConfig   `yaml:"weapons"`
	Enemies    EnemiesConfig   `yaml:"enemies"`
	Zone       ZoneConfig      `yaml:"zone"`
	Loot       LootConfig      `yaml:"loot"`
	Explosion  ExplosionConfig `yaml:"explosion"`
	Difficulty DifficultyTable `yaml:"difficulty"`
	Rules      RulesConfig     `yaml:"rules"`
}

// ArenaSize is the playfield in world units.
type ArenaSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines class-independent player parameters.
type PlayerConfig struct {
	Radius          float64 `yaml:"radius"`
	MuzzleOffset    float64 `yaml:"muzzle_offset"` // Bullets spawn this far ahead along aim
	BulletRadius    float64 `yaml:"bullet_radius"`
	KillHeal        int     `yaml:"kill_heal"`
	BleedDamage     int     `yaml:"bleed_damage"`
	BleedIntervalMs int     `yaml:"bleed_interval_ms"`
}

// BleedInterval returns the passive hp loss interval.
func (p PlayerConfig) BleedInterval() time.Duration {
	return ms(p.BleedIntervalMs)
}

// ClassStats defines the base stats a player class starts with.
type ClassStats struct {
	HP           int     `yaml:"hp"`
	MoveSpeed    float64 `yaml:"move_speed"`
	Color        string  `yaml:"color"`
	FireRateMs   int     `yaml:"fire_rate_ms"`
	BulletDamage int     `yaml:"bullet_damage"`
	BulletSpeed  float64 `yaml:"bullet_speed"`
	BulletCount  int     `yaml:"bullet_count"`
	Spread       float64 `yaml:"spread"`        // Radians covered by a multi-bullet shot
	SpreadJitter bool    `yaml:"spread_jitter"` // Adds up to ±spread/2 of random deviation per bullet
}

// FireRate returns the minimum time between trigger pulls.
func (c ClassStats) FireRate() time.Duration {
	return ms(c.FireRateMs)
}

// ClassTable holds the stats of every playable class.
type ClassTable struct {
	Assault ClassStats `yaml:"assault"`
	Rusher  ClassStats `yaml:"rusher"`
	Sniper  ClassStats `yaml:"sniper"`
	Heavy   ClassStats `yaml:"heavy"`
}

// Get returns the stats for a class. Unknown classes get the assault stats.
func (t ClassTable) Get(c PlayerClass) ClassStats {
	switch c {
	case ClassRusher:
		return t.Rusher
	case ClassSniper:
		return t.Sniper
	case ClassHeavy:
		return t.Heavy
	default:
		return t.Assault
	}
}

// SkillsConfig defines the cooldown-gated player skills.
type SkillsConfig struct {
	Dash    DashConfig    `yaml:"dash"`
	Grenade GrenadeConfig `yaml:"grenade"`
}

// DashConfig defines the dash skill.
type DashConfig struct {
	CooldownMs      int     `yaml:"cooldown_ms"`
	DurationMs      int     `yaml:"duration_ms"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// Cooldown returns the dash cooldown.
func (d DashConfig) Cooldown() time.Duration { return ms(d.CooldownMs) }

// Duration returns how long a dash lasts.
func (d DashConfig) Duration() time.Duration { return ms(d.DurationMs) }

// GrenadeConfig defines the grenade skill.
type GrenadeConfig struct {
	CooldownMs int     `yaml:"cooldown_ms"`
	Damage     int     `yaml:"damage"`
	Radius     float64 `yaml:"radius"`
}

// Cooldown returns the grenade cooldown.
func (g GrenadeConfig) Cooldown() time.Duration { return ms(g.CooldownMs) }

// WeaponsConfig defines shot perturbation shared by all classes.
type WeaponsConfig struct {
	Jitter float64 `yaml:"jitter"` // Full width of the uniform per-bullet angle jitter
}

// EnemiesConfig defines spawning, AI and the per-kind stat table.
type EnemiesConfig struct {
	Spawn        SpawnConfig `yaml:"spawn"`
	AttackRange  float64     `yaml:"attack_range"`
	Knockback    float64     `yaml:"knockback"`
	BulletRadius float64     `yaml:"bullet_radius"`
	Types        EnemyTable  `yaml:"types"`
}

// SpawnConfig defines the enemy spawn cadence.
type SpawnConfig struct {
	BaseIntervalMs   int     `yaml:"base_interval_ms"`
	MinIntervalMs    int     `yaml:"min_interval_ms"`
	DecayMsPerSecond float64 `yaml:"decay_ms_per_second"`
	EdgeBuffer       float64 `yaml:"edge_buffer"`
}

// Interval returns the un-multiplied spawn interval after elapsed seconds of play.
// It shrinks linearly with match duration and is floored at the minimum.
func (s SpawnConfig) Interval(elapsedSeconds float64) time.Duration {
	v := float64(s.BaseIntervalMs) - elapsedSeconds*s.DecayMsPerSecond
	if v < float64(s.MinIntervalMs) {
		v = float64(s.MinIntervalMs)
	}
	return time.Duration(v * float64(time.Millisecond))
}

// EnemyStats defines one enemy kind.
type EnemyStats struct {
	HP          int     `yaml:"hp"`
	Score       int     `yaml:"score"`
	Radius      float64 `yaml:"radius"`
	Speed       float64 `yaml:"speed"`
	FireRateMs  int     `yaml:"fire_rate_ms"`
	BulletSpeed float64 `yaml:"bullet_speed"`
	Damage      int     `yaml:"damage"`
	Color       string  `yaml:"color"`
	RollAbove   float64 `yaml:"roll_above"`    // Type roll threshold; grunt is the fallback
	MinElapsedS float64 `yaml:"min_elapsed_s"` // Seconds of play before this kind can appear

	// Range keeping. Zero HoldMax disables it.
	HoldMin      float64 `yaml:"hold_min"`
	HoldMax      float64 `yaml:"hold_max"`
	RetreatSpeed float64 `yaml:"retreat_speed"`
}

// FireRate returns the minimum time between enemy shots.
func (e EnemyStats) FireRate() time.Duration {
	return ms(e.FireRateMs)
}

// EnemyTable holds the stats of every enemy kind.
type EnemyTable struct {
	Grunt  EnemyStats `yaml:"grunt"`
	Scout  EnemyStats `yaml:"scout"`
	Sniper EnemyStats `yaml:"sniper"`
	Heavy  EnemyStats `yaml:"heavy"`
}

// Get returns the stats for an enemy kind. Unknown kinds get the grunt stats.
func (t EnemyTable) Get(k EnemyKind) EnemyStats {
	switch k {
	case EnemyScout:
		return t.Scout
	case EnemySniper:
		return t.Sniper
	case EnemyHeavy:
		return t.Heavy
	default:
		return t.Grunt
	}
}

// ZoneConfig defines the shrinking safe zone.
type ZoneConfig struct {
	InitialFactor float64 `yaml:"initial_factor"` // Initial radius = max(width, height) * factor
	TargetRadius  float64 `yaml:"target_radius"`
	ShrinkSpeed   float64 `yaml:"shrink_speed"` // Units per tick
	Damage        int     `yaml:"damage"`
	IntervalMs    int     `yaml:"interval_ms"`
}

// Interval returns the minimum time between zone damage applications.
func (z ZoneConfig) Interval() time.Duration {
	return ms(z.IntervalMs)
}

// LootConfig defines loot drops and pickup effects.
type LootConfig struct {
	DropAbove    float64 `yaml:"drop_above"`
	Radius       float64 `yaml:"radius"`
	WeaponAbove  float64 `yaml:"weapon_above"`
	ArmorAbove   float64 `yaml:"armor_above"`
	HealthAmount int     `yaml:"health_amount"`
	ArmorAmount  int     `yaml:"armor_amount"`
}

// ExplosionConfig defines explosion lifetime and the cosmetic death burst.
type ExplosionConfig struct {
	MaxAge        int     `yaml:"max_age"` // Ticks
	InitialRadius float64 `yaml:"initial_radius"`
	DeathRadius   float64 `yaml:"death_radius"`
}

// RulesConfig toggles rule variants.
type RulesConfig struct {
	ArmorAbsorbsDamage   bool `yaml:"armor_absorbs_damage"`
	CreditExplosionKills bool `yaml:"credit_explosion_kills"`
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
