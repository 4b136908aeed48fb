package narrative

import (
	"fmt"

	"github.com/vovakirdan/zone-arena/internal/games/arena"
)

const briefingPrompt = "Write a fun, high-energy opening line for a battle royale variety show. " +
	"The player is a cartoon contestant in an ever-shrinking arena. Their hype (health) keeps draining " +
	"and they must defeat enemies to stay in the game! Theme: quirky cartoon survival challenge. " +
	"Keep it short and punchy, under 40 words."

func reportPrompt(s arena.GameOverStats) string {
	return fmt.Sprintf(`Analyze the stats of this cartoon battle:
Kills: %d
Chaos caused (damage): %d
Accuracy: %.1f%%
Survival time: %d seconds.

Play a goofy variety show host. Based on the performance give a funny title (for example "Couch Potato", "Party Animal", "Arena Champion", "Cartoon Legend") and a one sentence comment on how they did.`,
		s.Kills, s.DamageDealt, s.Accuracy*100, s.SurvivedSeconds)
}
