package arena

import (
	"math/rand"
	"time"
)

// Random is the source of uniform draws in [0, 1) used by the spawner,
// weapon jitter and loot rolls.
type Random interface {
	Float64() float64
}

// NewRandom returns a seeded generator. Seed 0 seeds from the clock.
func NewRandom(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// ScriptedRandom replays a fixed sequence of draws, cycling when exhausted.
// An empty script always returns 0.
type ScriptedRandom struct {
	values []float64
	pos    int
}

// NewScriptedRandom creates a generator that returns values in order.
func NewScriptedRandom(values ...float64) *ScriptedRandom {
	return &ScriptedRandom{values: values}
}

// Float64 returns the next scripted value.
func (r *ScriptedRandom) Float64() float64 {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.pos%len(r.values)]
	r.pos++
	return v
}

// Draws returns how many values have been consumed.
func (r *ScriptedRandom) Draws() int {
	return r.pos
}
