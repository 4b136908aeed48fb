package arena

import "time"

// Cooldown tracks the timestamp of the last use of a timed action.
// A cooldown that was never used is always ready.
type Cooldown struct {
	last time.Duration
	used bool
}

// Ready reports whether more than period has elapsed since the last use.
func (c Cooldown) Ready(now, period time.Duration) bool {
	return !c.used || now-c.last > period
}

// Trigger records a use at now.
func (c *Cooldown) Trigger(now time.Duration) {
	c.last = now
	c.used = true
}

// Used reports whether the cooldown has ever been triggered.
func (c Cooldown) Used() bool {
	return c.used
}

// Last returns the timestamp of the last use.
func (c Cooldown) Last() time.Duration {
	return c.last
}

// Shift moves the last use forward by d. Unused cooldowns stay unused.
func (c *Cooldown) Shift(d time.Duration) {
	if c.used {
		c.last += d
	}
}

// Percent returns recharge progress in [0, 100].
func (c Cooldown) Percent(now, period time.Duration) float64 {
	if !c.used || period <= 0 {
		return 100
	}
	pct := float64(now-c.last) / float64(period) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// Remaining returns the time left until the cooldown is ready.
func (c Cooldown) Remaining(now, period time.Duration) time.Duration {
	if !c.used {
		return 0
	}
	r := period - (now - c.last)
	if r < 0 {
		return 0
	}
	return r
}
