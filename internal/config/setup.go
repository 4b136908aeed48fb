package config

import (
	"fmt"
	"strings"
)

// PlayerClass selects the player's base stats.
type PlayerClass string

const (
	ClassAssault PlayerClass = "assault"
	ClassRusher  PlayerClass = "rusher"
	ClassSniper  PlayerClass = "sniper"
	ClassHeavy   PlayerClass = "heavy"
)

// Classes lists the playable classes in menu order.
var Classes = []PlayerClass{ClassAssault, ClassRusher, ClassSniper, ClassHeavy}

// ParseClass resolves a class name. Matching is case-insensitive.
func ParseClass(name string) (PlayerClass, error) {
	switch c := PlayerClass(strings.ToLower(strings.TrimSpace(name))); c {
	case ClassAssault, ClassRusher, ClassSniper, ClassHeavy:
		return c, nil
	default:
		return "", fmt.Errorf("%w: unknown class %q", ErrInvalid, name)
	}
}

// Gender is cosmetic only.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Genders lists the selectable genders in menu order.
var Genders = []Gender{GenderMale, GenderFemale}

// ParseGender resolves a gender name. Matching is case-insensitive.
func ParseGender(name string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(name))); g {
	case GenderMale, GenderFemale:
		return g, nil
	default:
		return "", fmt.Errorf("%w: unknown gender %q", ErrInvalid, name)
	}
}

// EnemyKind identifies an enemy archetype.
type EnemyKind string

const (
	EnemyGrunt  EnemyKind = "grunt"
	EnemyScout  EnemyKind = "scout"
	EnemySniper EnemyKind = "sniper"
	EnemyHeavy  EnemyKind = "heavy"
)

// SpawnOrder lists the kinds in type-roll evaluation order.
// The last entry is the fallback when no threshold matches.
var SpawnOrder = []EnemyKind{EnemyHeavy, EnemySniper, EnemyScout, EnemyGrunt}
