package arena

import (
	"time"

	"github.com/vovakirdan/zone-arena/internal/core"
)

// Direction returns the normalized 8-way movement intent of the held keys.
// Opposite keys cancel out; no keys yields the zero vector.
func Direction(in core.InputFrame) core.Vec2 {
	var d core.Vec2
	if in.Has(core.ActionMoveUp) {
		d.Y--
	}
	if in.Has(core.ActionMoveDown) {
		d.Y++
	}
	if in.Has(core.ActionMoveLeft) {
		d.X--
	}
	if in.Has(core.ActionMoveRight) {
		d.X++
	}
	if l := d.Len(); l > 0 {
		d = d.Scale(1 / l)
	}
	return d
}

// MovePlayer applies held movement to the player and clamps it inside the arena.
func MovePlayer(w *World, env *Env, in core.InputFrame, now time.Duration) {
	p := &w.Player

	speed := p.MoveSpeed
	if w.Dashing(now) {
		speed *= env.Config.Skills.Dash.SpeedMultiplier
	}

	p.Velocity = Direction(in).Scale(speed)
	p.Pos = w.Bounds.ClampInset(p.Pos.Add(p.Velocity), p.Radius)
}

// Aim turns the player toward the pointer.
func Aim(p *Player, pointer core.Vec2) {
	p.Angle = p.Pos.AngleTo(pointer)
}
