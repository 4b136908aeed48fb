package core

import "time"

// RuntimeConfig contains host-supplied settings passed to a session at start.
// Arena dimensions are in world units, independent of any screen.
type RuntimeConfig struct {
	ArenaW   float64 // Arena width in world units
	ArenaH   float64 // Arena height in world units
	TickRate int     // Simulation ticks per second (default 60)
	Seed     int64   // RNG seed; 0 means seed from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ArenaW:   1280,
		ArenaH:   720,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Bounds returns the arena rectangle.
func (c RuntimeConfig) Bounds() Bounds {
	return Bounds{W: c.ArenaW, H: c.ArenaH}
}

// TickInterval returns the wall-clock duration of one tick.
func (c RuntimeConfig) TickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}
