package arena

import "time"

// ShrinkZone moves the zone radius toward its target without undershooting it.
func ShrinkZone(z *SafeZone) {
	if z.Radius <= z.TargetRadius {
		return
	}
	z.Radius -= z.ShrinkSpeed
	if z.Radius < z.TargetRadius {
		z.Radius = z.TargetRadius
	}
}

// ApplyZoneDamage hurts the player when outside the zone, at most once per
// damage interval. It returns true if damage was applied.
func ApplyZoneDamage(w *World, env *Env, now time.Duration) bool {
	if w.Zone.Contains(w.Player.Pos) {
		return false
	}
	zc := env.Config.Zone
	if !w.Timers.ZoneDamage.Ready(now, zc.Interval()) {
		return false
	}
	damagePlayer(w, env, zc.Damage)
	w.Timers.ZoneDamage.Trigger(now)
	return true
}

// Bleed drains player hp over time. The first call only records the baseline so
// the session does not start with a large catch-up loss.
func Bleed(w *World, env *Env, now time.Duration) {
	t := &w.Timers.Bleed
	if !t.Used() {
		t.Trigger(now)
		return
	}
	pc := env.Config.Player
	if now-t.Last() > pc.BleedInterval() {
		w.Player.HP = max(0, w.Player.HP-pc.BleedDamage)
		t.Trigger(now)
	}
}
