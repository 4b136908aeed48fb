package arena

import (
	"time"

	"github.com/vovakirdan/zone-arena/internal/core"
)

// UseSkills triggers dash and grenade when their keys are held and their
// cooldowns have elapsed.
func UseSkills(w *World, env *Env, in core.InputFrame, now time.Duration) {
	sk := env.Config.Skills

	if in.Has(core.ActionDash) && w.Timers.Dash.Ready(now, sk.Dash.Cooldown()) {
		w.Timers.Dash.Trigger(now)
		w.Timers.DashUntil = now + sk.Dash.Duration()
	}

	if in.Has(core.ActionGrenade) && w.Timers.Grenade.Ready(now, sk.Grenade.Cooldown()) {
		w.Timers.Grenade.Trigger(now)
		spawnExplosion(w, env, in.Pointer, sk.Grenade.Damage, sk.Grenade.Radius)
	}
}

func spawnExplosion(w *World, env *Env, pos core.Vec2, damage int, radius float64) {
	w.Explosions = append(w.Explosions, Explosion{
		Pos:       pos,
		Radius:    env.Config.Explosion.InitialRadius,
		MaxRadius: radius,
		MaxAge:    env.Config.Explosion.MaxAge,
		Damage:    damage,
	})
}

// Cooldowns is the recharge state of both skills.
type Cooldowns struct {
	DashPct          float64 // 0-100, 100 is ready
	GrenadePct       float64
	DashRemaining    time.Duration
	GrenadeRemaining time.Duration
	Dashing          bool
}

// SkillCooldowns reports the recharge state at now.
func SkillCooldowns(w *World, env *Env, now time.Duration) Cooldowns {
	sk := env.Config.Skills
	return Cooldowns{
		DashPct:          w.Timers.Dash.Percent(now, sk.Dash.Cooldown()),
		GrenadePct:       w.Timers.Grenade.Percent(now, sk.Grenade.Cooldown()),
		DashRemaining:    w.Timers.Dash.Remaining(now, sk.Dash.Cooldown()),
		GrenadeRemaining: w.Timers.Grenade.Remaining(now, sk.Grenade.Cooldown()),
		Dashing:          w.Dashing(now),
	}
}
