package arena

import "github.com/vovakirdan/zone-arena/internal/core"

// CollectLoot applies every crate the player overlaps and marks it collected.
// It returns the kinds picked up this tick.
func CollectLoot(w *World, env *Env) []LootKind {
	var picked []LootKind
	p := &w.Player
	lc := env.Config.Loot

	for i := range w.Loot {
		l := &w.Loot[i]
		if l.Collected || !core.CirclesOverlap(l.Pos, l.Radius, p.Pos, p.Radius) {
			continue
		}
		switch l.Kind {
		case LootHealth:
			healPlayer(p, lc.HealthAmount)
		case LootArmor:
			p.Armor += lc.ArmorAmount
		case LootWeapon:
			p.WeaponTier++
		}
		l.Collected = true
		picked = append(picked, l.Kind)
	}
	return picked
}
