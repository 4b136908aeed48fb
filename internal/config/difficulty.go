package config

import (
	"fmt"
	"strings"
)

// Difficulty represents a named difficulty preset.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the presets in menu order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParseDifficulty resolves a preset name. Matching is case-insensitive.
func ParseDifficulty(name string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(name))); d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, name)
	}
}

// Multipliers are the paired scalars a difficulty applies to the simulation.
type Multipliers struct {
	SpawnInterval float64 `yaml:"spawn_interval"` // > 1 spawns slower
	EnemyStats    float64 `yaml:"enemy_stats"`    // Scales enemy hp
	EnemyDamage   float64 `yaml:"enemy_damage"`   // Scales enemy bullet damage
}

// DifficultyTable holds the multipliers of every preset.
type DifficultyTable struct {
	Easy   Multipliers `yaml:"easy"`
	Normal Multipliers `yaml:"normal"`
	Hard   Multipliers `yaml:"hard"`
}

// Get returns the multipliers for a preset. Unknown presets get normal.
func (t DifficultyTable) Get(d Difficulty) Multipliers {
	switch d {
	case DifficultyEasy:
		return t.Easy
	case DifficultyHard:
		return t.Hard
	default:
		return t.Normal
	}
}
