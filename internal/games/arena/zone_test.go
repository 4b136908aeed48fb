package arena

import (
	"math"
	"testing"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
)

func TestInitialZone(t *testing.T) {
	w, _, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal)

	if math.Abs(w.Zone.Radius-1536) > eps {
		t.Errorf("Radius = %v, expected 1280*1.2", w.Zone.Radius)
	}
	if w.Zone.Center != core.V(640, 360) || w.Zone.TargetRadius != 100 || w.Zone.ShrinkSpeed != 0.2 {
		t.Errorf("Zone = %+v", w.Zone)
	}
}

func TestShrinkZoneConvergesWithoutUndershoot(t *testing.T) {
	z := SafeZone{Radius: 101, TargetRadius: 100, ShrinkSpeed: 0.3}

	prev := z.Radius
	for i := range 10 {
		ShrinkZone(&z)
		if z.Radius > prev {
			t.Fatalf("tick %d: radius grew from %v to %v", i, prev, z.Radius)
		}
		if z.Radius < z.TargetRadius {
			t.Fatalf("tick %d: radius %v undershot target", i, z.Radius)
		}
		prev = z.Radius
	}
	if z.Radius != 100 {
		t.Errorf("Radius = %v, expected exactly 100", z.Radius)
	}
}

func TestApplyZoneDamage(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal)
	w.Zone.Radius = 50
	w.Player.Pos = core.V(640, 300) // 60 from center

	tests := []struct {
		now      int
		applied  bool
		expected int
	}{
		{0, true, 95},
		{500, false, 95},
		{1000, false, 95},
		{1001, true, 90},
	}

	for _, tc := range tests {
		if got := ApplyZoneDamage(w, env, msec(tc.now)); got != tc.applied {
			t.Errorf("ApplyZoneDamage(%dms) = %v, expected %v", tc.now, got, tc.applied)
		}
		if w.Player.HP != tc.expected {
			t.Errorf("after %dms HP = %d, expected %d", tc.now, w.Player.HP, tc.expected)
		}
	}

	w.Player.Pos = core.V(640, 320) // 40 from center
	if ApplyZoneDamage(w, env, msec(5000)) {
		t.Error("no damage inside the zone")
	}
}

func TestBleedBaseline(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal)

	tests := []struct {
		now      int
		expected int
	}{
		{60000, 100}, // baseline only, no catch-up loss
		{61000, 100},
		{61001, 99},
		{62001, 99},
		{62002, 98},
	}

	for _, tc := range tests {
		Bleed(w, env, msec(tc.now))
		if w.Player.HP != tc.expected {
			t.Errorf("Bleed(%dms) HP = %d, expected %d", tc.now, w.Player.HP, tc.expected)
		}
	}

	w.Player.HP = 0
	Bleed(w, env, msec(70000))
	if w.Player.HP != 0 {
		t.Errorf("bleed drove HP to %d, expected floor 0", w.Player.HP)
	}
}

func TestCollectLoot(t *testing.T) {
	w, env, _ := newTestWorld(config.ClassAssault, config.DifficultyNormal)
	w.Player.HP = 90
	p := w.Player.Pos
	w.Loot = []LootCrate{
		{Pos: p, Radius: 15, Kind: LootHealth},
		{Pos: p.Add(core.V(10, 0)), Radius: 15, Kind: LootArmor},
		{Pos: p.Add(core.V(0, 20)), Radius: 15, Kind: LootWeapon},
		{Pos: p.Add(core.V(35, 0)), Radius: 15, Kind: LootHealth}, // touching only
	}

	picked := CollectLoot(w, env)

	if len(picked) != 3 {
		t.Errorf("picked = %v, expected 3 crates", picked)
	}
	if w.Player.HP != 100 {
		t.Errorf("HP = %d, expected heal capped at 100", w.Player.HP)
	}
	if w.Player.Armor != 50 {
		t.Errorf("Armor = %d, expected 50", w.Player.Armor)
	}
	if w.Player.WeaponTier != 2 {
		t.Errorf("WeaponTier = %d, expected 2", w.Player.WeaponTier)
	}
	if w.Player.BulletDamage != 22 || w.Player.FireRate != msec(150) {
		t.Error("weapon loot has no stat effect")
	}

	Cleanup(w)
	if len(w.Loot) != 1 || w.Loot[0].Collected {
		t.Errorf("Loot after cleanup = %+v, expected only the untouched crate", w.Loot)
	}
}
