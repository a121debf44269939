// Package character defines the ability-score and experience model shared by
// the player and every monster.
package character

import "github.com/cory-johannsen/tombs/internal/game/dice"

// AbilityScores holds the six ability score values of an actor.
type AbilityScores struct {
	Strength     int `yaml:"strength" json:"strength"`
	Dexterity    int `yaml:"dexterity" json:"dexterity"`
	Constitution int `yaml:"constitution" json:"constitution"`
	Intelligence int `yaml:"intelligence" json:"intelligence"`
	Wisdom       int `yaml:"wisdom" json:"wisdom"`
	Charisma     int `yaml:"charisma" json:"charisma"`
}

// DefaultAbilityScores returns all six scores at 10.
func DefaultAbilityScores() AbilityScores {
	return AbilityScores{
		Strength:     10,
		Dexterity:    10,
		Constitution: 10,
		Intelligence: 10,
		Wisdom:       10,
		Charisma:     10,
	}
}

// RollAbilityScores rolls 3d6 for each score, in declaration order.
//
// Postcondition: every score is in [3, 18].
func RollAbilityScores(src dice.Source) AbilityScores {
	return AbilityScores{
		Strength:     dice.Attribute(src),
		Dexterity:    dice.Attribute(src),
		Constitution: dice.Attribute(src),
		Intelligence: dice.Attribute(src),
		Wisdom:       dice.Attribute(src),
		Charisma:     dice.Attribute(src),
	}
}

// Modifier maps a score onto the banded modifier table:
//
//	>=18 +4, >=16 +3, >=14 +2, >=12 +1, >=10 0, >=8 -1, >=6 -2, >=4 -3, else -4
//
// Postcondition: -4 <= result <= 4 and result is non-decreasing in score.
func Modifier(score int) int {
	switch {
	case score >= 18:
		return 4
	case score >= 16:
		return 3
	case score >= 14:
		return 2
	case score >= 12:
		return 1
	case score >= 10:
		return 0
	case score >= 8:
		return -1
	case score >= 6:
		return -2
	case score >= 4:
		return -3
	default:
		return -4
	}
}

// FloorModifier returns floor((score-10)/2). Unlike Modifier it is unbounded.
//
// Postcondition: FloorModifier(9) == -1.
func FloorModifier(score int) int {
	d := score - 10
	if d < 0 {
		return -((-d + 1) / 2)
	}
	return d / 2
}

// StrMod is the strength modifier used by attack and damage rolls.
func (a AbilityScores) StrMod() int { return FloorModifier(a.Strength) }

// DexMod is the dexterity modifier used by armor class.
func (a AbilityScores) DexMod() int { return FloorModifier(a.Dexterity) }

// ConMod uses the banded table.
func (a AbilityScores) ConMod() int { return Modifier(a.Constitution) }

// IntMod uses the banded table.
func (a AbilityScores) IntMod() int { return Modifier(a.Intelligence) }

// WisMod uses the banded table.
func (a AbilityScores) WisMod() int { return Modifier(a.Wisdom) }

// ChaMod uses the banded table.
func (a AbilityScores) ChaMod() int { return Modifier(a.Charisma) }
