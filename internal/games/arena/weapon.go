package arena

import (
	"time"

	"github.com/vovakirdan/zone-arena/internal/core"
)

// Fire emits the player's shot when the trigger is held and the fire rate allows.
// It returns the number of bullets created. A shot counts once in the stats
// however many bullets it carries.
//
// Bullets are spread evenly across the class spread centered on the aim angle
// (a single bullet fires exactly on aim), then each is perturbed by jitter.
func Fire(w *World, env *Env, in core.InputFrame, now time.Duration) int {
	p := &w.Player
	if !in.Has(core.ActionFire) || !w.Timers.Shot.Ready(now, p.FireRate) {
		return 0
	}

	count := p.BulletCount
	muzzle := p.Pos.Add(core.Polar(p.Angle, env.Config.Player.MuzzleOffset))
	for i := range count {
		angle := SpreadAngle(p.Angle, p.Spread, count, i)
		angle += jitter(env.Rand, env.Config.Weapons.Jitter)
		if p.SpreadJitter {
			angle += jitter(env.Rand, p.Spread)
		}

		w.Bullets = append(w.Bullets, Bullet{
			Pos:        muzzle,
			Radius:     env.Config.Player.BulletRadius,
			Velocity:   core.Polar(angle, p.BulletSpeed),
			Angle:      angle,
			Color:      core.ColorBrightYellow,
			Damage:     p.BulletDamage,
			FromPlayer: true,
			Speed:      p.BulletSpeed,
		})
	}

	w.Timers.Shot.Trigger(now)
	w.Stats.ShotsFired++
	return count
}

// SpreadAngle returns the undeviated angle of bullet i of count.
func SpreadAngle(aim, spread float64, count, i int) float64 {
	if count <= 1 {
		return aim
	}
	step := spread / float64(count-1)
	return aim - spread/2 + step*float64(i)
}

// jitter returns a uniform offset in [-width/2, width/2). Zero width draws nothing.
func jitter(rng Random, width float64) float64 {
	if width == 0 {
		return 0
	}
	return (rng.Float64() - 0.5) * width
}
