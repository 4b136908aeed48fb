package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation and parse-name error.
var ErrInvalid = errors.New("config: invalid")

// Validate reports the first value that would make the simulation meaningless.
func (c ArenaConfig) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("%w: arena size %vx%v must be positive", ErrInvalid, c.Arena.Width, c.Arena.Height)
	}
	if c.Player.Radius <= 0 {
		return fmt.Errorf("%w: player radius must be positive", ErrInvalid)
	}
	if 2*c.Player.Radius > c.Arena.Width || 2*c.Player.Radius > c.Arena.Height {
		return fmt.Errorf("%w: player radius %v does not fit the arena", ErrInvalid, c.Player.Radius)
	}

	for _, class := range Classes {
		s := c.Classes.Get(class)
		if s.HP <= 0 {
			return fmt.Errorf("%w: class %s hp must be positive", ErrInvalid, class)
		}
		if s.BulletCount <= 0 {
			return fmt.Errorf("%w: class %s bullet_count must be positive", ErrInvalid, class)
		}
		if s.FireRateMs < 0 || s.Spread < 0 {
			return fmt.Errorf("%w: class %s fire_rate_ms and spread must not be negative", ErrInvalid, class)
		}
	}

	for _, kind := range SpawnOrder {
		s := c.Enemies.Types.Get(kind)
		if s.HP <= 0 {
			return fmt.Errorf("%w: enemy %s hp must be positive", ErrInvalid, kind)
		}
		if s.Radius <= 0 {
			return fmt.Errorf("%w: enemy %s radius must be positive", ErrInvalid, kind)
		}
		if s.HoldMax < s.HoldMin {
			return fmt.Errorf("%w: enemy %s hold_max below hold_min", ErrInvalid, kind)
		}
	}

	if c.Enemies.Spawn.MinIntervalMs <= 0 || c.Enemies.Spawn.BaseIntervalMs < c.Enemies.Spawn.MinIntervalMs {
		return fmt.Errorf("%w: spawn intervals must satisfy 0 < min <= base", ErrInvalid)
	}
	if c.Zone.TargetRadius < 0 || c.Zone.ShrinkSpeed < 0 || c.Zone.InitialFactor <= 0 {
		return fmt.Errorf("%w: zone settings out of range", ErrInvalid)
	}
	if c.Explosion.MaxAge <= 0 {
		return fmt.Errorf("%w: explosion max_age must be positive", ErrInvalid)
	}

	for _, d := range Difficulties {
		m := c.Difficulty.Get(d)
		if m.SpawnInterval <= 0 || m.EnemyStats <= 0 || m.EnemyDamage < 0 {
			return fmt.Errorf("%w: difficulty %s multipliers", ErrInvalid, d)
		}
	}
	return nil
}
