package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultArenaYAML))
	copy(out, defaultArenaYAML)
	return out
}

// DefaultArenaConfig returns the default arena configuration.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Arena: ArenaSize{
			Width:  1280,
			Height: 720,
		},
		Player: PlayerConfig{
			Radius:          20,
			MuzzleOffset:    20,
			BulletRadius:    4,
			KillHeal:        10,
			BleedDamage:     1,
			BleedIntervalMs: 1000,
		},
		Classes: ClassTable{
			Assault: ClassStats{HP: 100, MoveSpeed: 4, Color: "blue", FireRateMs: 150, BulletDamage: 22, BulletSpeed: 12, BulletCount: 1, Spread: 0.05},
			Rusher:  ClassStats{HP: 75, MoveSpeed: 5.5, Color: "yellow", FireRateMs: 80, BulletDamage: 12, BulletSpeed: 13, BulletCount: 1, Spread: 0.2, SpreadJitter: true},
			Sniper:  ClassStats{HP: 60, MoveSpeed: 3.5, Color: "green", FireRateMs: 900, BulletDamage: 120, BulletSpeed: 25, BulletCount: 1, Spread: 0},
			Heavy:   ClassStats{HP: 160, MoveSpeed: 2.8, Color: "red", FireRateMs: 750, BulletDamage: 18, BulletSpeed: 10, BulletCount: 5, Spread: 0.35},
		},
		Skills: SkillsConfig{
			Dash:    DashConfig{CooldownMs: 3000, DurationMs: 200, SpeedMultiplier: 3},
			Grenade: GrenadeConfig{CooldownMs: 8000, Damage: 100, Radius: 100},
		},
		Weapons: WeaponsConfig{
			Jitter: 0.05,
		},
		Enemies: EnemiesConfig{
			Spawn: SpawnConfig{
				BaseIntervalMs:   2000,
				MinIntervalMs:    500,
				DecayMsPerSecond: 25,
				EdgeBuffer:       50,
			},
			AttackRange:  500,
			Knockback:    5,
			BulletRadius: 4,
			Types: EnemyTable{
				Grunt:  EnemyStats{HP: 50, Score: 1, Radius: 18, Speed: 1.5, FireRateMs: 1500, BulletSpeed: 4, Damage: 5, Color: "red"},
				Scout:  EnemyStats{HP: 25, Score: 2, Radius: 14, Speed: 2.5, FireRateMs: 1500, BulletSpeed: 4, Damage: 5, Color: "orange", RollAbove: 0.4},
				Sniper: EnemyStats{HP: 40, Score: 5, Radius: 18, Speed: 1.2, FireRateMs: 3000, BulletSpeed: 8, Damage: 30, Color: "purple", RollAbove: 0.6, MinElapsedS: 20, HoldMin: 200, HoldMax: 400, RetreatSpeed: -1},
				Heavy:  EnemyStats{HP: 250, Score: 10, Radius: 30, Speed: 0.8, FireRateMs: 2000, BulletSpeed: 4, Damage: 15, Color: "dark_red", RollAbove: 0.85, MinElapsedS: 40},
			},
		},
		Zone: ZoneConfig{
			InitialFactor: 1.2,
			TargetRadius:  100,
			ShrinkSpeed:   0.2,
			Damage:        5,
			IntervalMs:    1000,
		},
		Loot: LootConfig{
			DropAbove:    0.8,
			Radius:       15,
			WeaponAbove:  0.8,
			ArmorAbove:   0.5,
			HealthAmount: 30,
			ArmorAmount:  50,
		},
		Explosion: ExplosionConfig{
			MaxAge:        25,
			InitialRadius: 5,
			DeathRadius:   30,
		},
		Difficulty: DifficultyTable{
			Easy:   Multipliers{SpawnInterval: 1.3, EnemyStats: 0.7, EnemyDamage: 0.7},
			Normal: Multipliers{SpawnInterval: 1.0, EnemyStats: 1.0, EnemyDamage: 1.0},
			Hard:   Multipliers{SpawnInterval: 0.7, EnemyStats: 1.3, EnemyDamage: 1.3},
		},
		Rules: RulesConfig{
			ArmorAbsorbsDamage:   false,
			CreditExplosionKills: false,
		},
	}
}
