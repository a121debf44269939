package inventory

import (
	"fmt"

	"github.com/cory-johannsen/tombs/internal/game/dice"
)

// EquipmentType names the slot an equippable item occupies.
type EquipmentType string

const (
	TypeWeapon EquipmentType = "weapon"
	TypeArmor  EquipmentType = "armor"
)

// Default damage dice for an equippable that does not specify its own.
const (
	DefaultDamageDiceNum   = 1
	DefaultDamageDiceSides = 4
)

// Equippable is the combat modifier carried by a weapon or armor item.
//
// Invariant: DamageDiceNum >= 1 and DamageDiceSides >= 1.
type Equippable struct {
	Type            EquipmentType `json:"type"`
	PowerBonus      int           `json:"power_bonus"`
	DefenseBonus    int           `json:"defense_bonus"`
	DamageDiceNum   int           `json:"damage_dice_num"`
	DamageDiceSides int           `json:"damage_dice_sides"`
}

// NewEquippable returns an Equippable of type t with the default 1d4 damage dice.
func NewEquippable(t EquipmentType) Equippable {
	return Equippable{Type: t, DamageDiceNum: DefaultDamageDiceNum, DamageDiceSides: DefaultDamageDiceSides}
}

// Dagger is the +2 power weapon preset.
func Dagger() Equippable {
	e := NewEquippable(TypeWeapon)
	e.PowerBonus = 2
	return e
}

// Sword is the +4 power weapon preset.
func Sword() Equippable {
	e := NewEquippable(TypeWeapon)
	e.PowerBonus = 4
	return e
}

// LeatherArmor is the +1 defense armor preset.
func LeatherArmor() Equippable {
	e := NewEquippable(TypeArmor)
	e.DefenseBonus = 1
	return e
}

// ChainMail is the +3 defense armor preset.
func ChainMail() Equippable {
	e := NewEquippable(TypeArmor)
	e.DefenseBonus = 3
	return e
}

// Validate checks the Equippable invariants.
func (e Equippable) Validate() error {
	if e.Type != TypeWeapon && e.Type != TypeArmor {
		return fmt.Errorf("equippable type must be weapon or armor; got %q", e.Type)
	}
	if e.DamageDiceNum < 1 || e.DamageDiceSides < 1 {
		return fmt.Errorf("equippable damage dice must be >= 1d1; got %dd%d", e.DamageDiceNum, e.DamageDiceSides)
	}
	return nil
}

// MinRoll is the lowest the damage dice can show.
func (e Equippable) MinRoll() int {
	return e.DamageDiceNum
}

// MaxRoll is the highest the damage dice can show.
func (e Equippable) MaxRoll() int {
	return e.DamageDiceNum * e.DamageDiceSides
}

// RollDamage draws DamageDiceNum independent dice over [1, DamageDiceSides].
//
// Postcondition: MinRoll() <= result <= MaxRoll().
func (e Equippable) RollDamage(src dice.Source) int {
	return dice.Roll(src, e.DamageDiceNum, e.DamageDiceSides)
}
