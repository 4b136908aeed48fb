package arena

import (
	"math"
	"time"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
)

// ApproachSpeed returns how far an enemy of the given stats moves toward the
// player this tick. Range-keeping kinds hold position inside (HoldMin, HoldMax)
// and back off at or below HoldMin.
func ApproachSpeed(s config.EnemyStats, dist float64) float64 {
	if s.HoldMax > 0 {
		if dist < s.HoldMax && dist > s.HoldMin {
			return 0
		}
		if dist <= s.HoldMin {
			return s.RetreatSpeed
		}
	}
	return s.Speed
}

// RunEnemies moves every enemy toward the player and lets those in range shoot.
func RunEnemies(w *World, env *Env, now time.Duration) {
	target := w.Player.Pos
	for i := range w.Enemies {
		e := &w.Enemies[i]
		if e.Destroyed {
			continue
		}
		s := env.Config.Enemies.Types.Get(e.Kind)

		dist := e.Pos.Dist(target)
		angle := e.Pos.AngleTo(target)
		e.Angle = angle
		e.Pos = e.Pos.Add(core.Polar(angle, ApproachSpeed(s, dist)))

		if e.Attack.Ready(now, s.FireRate()) && dist < env.Config.Enemies.AttackRange {
			w.Bullets = append(w.Bullets, Bullet{
				Pos:      e.Pos,
				Radius:   env.Config.Enemies.BulletRadius,
				Velocity: core.Polar(angle, s.BulletSpeed),
				Angle:    angle,
				Color:    e.Color,
				Damage:   int(math.Floor(float64(s.Damage) * env.Mult.EnemyDamage)),
				Speed:    s.BulletSpeed,
			})
			e.Attack.Trigger(now)
		}
	}
}
