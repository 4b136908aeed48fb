package arena

import (
	"slices"
	"time"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
)

// Snapshot is a read-only copy of the world for presentation layers and tests.
// Mutating it never affects the session.
type Snapshot struct {
	Tick       uint64
	State      string
	Bounds     core.Bounds
	Difficulty config.Difficulty
	Elapsed    time.Duration
	Dashing    bool

	Player     Player
	Enemies    []Enemy
	Bullets    []Bullet
	Explosions []Explosion
	Loot       []LootCrate
	Zone       SafeZone
	Stats      Stats
}

// Snapshot returns a deep copy of the current world.
// Before the first Start it holds only the state and bounds.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{State: s.state, Bounds: s.bounds}
	w := s.world
	if w == nil {
		return snap
	}

	now := s.lastNow
	if s.state == StatePaused {
		now = s.pausedAt
	}

	snap.Tick = w.Tick
	snap.Difficulty = w.Difficulty
	snap.Elapsed = w.Elapsed(now)
	snap.Dashing = w.Dashing(now)
	snap.Player = w.Player
	snap.Enemies = slices.Clone(w.Enemies)
	snap.Bullets = slices.Clone(w.Bullets)
	snap.Explosions = slices.Clone(w.Explosions)
	snap.Loot = slices.Clone(w.Loot)
	snap.Zone = w.Zone
	snap.Stats = w.Stats
	return snap
}

// Survivors returns the HUD survivor estimate for the snapshot.
func (s Snapshot) Survivors() int {
	return max(0, ArenaPopulation-s.Stats.Kills)
}
