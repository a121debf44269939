package inventory

import (
	"errors"
	"fmt"
)

// ErrNotEquippable is returned when a non-equippable item is offered to ToggleEquip.
var ErrNotEquippable = errors.New("inventory: item is not equippable")

// Equipment holds an actor's equipped weapon and armor. Both are borrowed
// references to items that live in the actor's Inventory.
type Equipment struct {
	Weapon *Item
	Armor  *Item
}

// WeaponModifier returns the equipped weapon's modifier, or nil when unarmed.
func (e *Equipment) WeaponModifier() *Equippable {
	if e == nil || e.Weapon == nil {
		return nil
	}
	return e.Weapon.Equippable
}

// DefenseBonus returns the equipped armor's DefenseBonus. A weapon's
// DefenseBonus never counts toward armor class.
func (e *Equipment) DefenseBonus() int {
	if e == nil || e.Armor == nil || e.Armor.Equippable == nil {
		return 0
	}
	return e.Armor.Equippable.DefenseBonus
}

// IsEquipped reports whether it occupies either slot.
func (e *Equipment) IsEquipped(it *Item) bool {
	return it != nil && (e.Weapon == it || e.Armor == it)
}

// Unequip clears whichever slot holds it and returns the removal message,
// or "" when it was not equipped.
func (e *Equipment) Unequip(it *Item) string {
	switch {
	case it == nil:
		return ""
	case e.Weapon == it:
		e.Weapon = nil
	case e.Armor == it:
		e.Armor = nil
	default:
		return ""
	}
	return fmt.Sprintf("You remove the %s.", it.Name)
}

// ToggleEquip unequips it if already equipped, otherwise equips it into the
// slot its type names, replacing the current occupant. It returns the messages
// describing the change in order.
//
// Postcondition: returns ErrNotEquippable when it has no Equippable.
func (e *Equipment) ToggleEquip(it *Item) ([]string, error) {
	if it == nil || it.Equippable == nil {
		return nil, ErrNotEquippable
	}
	if e.IsEquipped(it) {
		return []string{e.Unequip(it)}, nil
	}

	var msgs []string
	slot := &e.Armor
	if it.Equippable.Type == TypeWeapon {
		slot = &e.Weapon
	}
	if *slot != nil {
		msgs = append(msgs, e.Unequip(*slot))
	}
	*slot = it
	return append(msgs, fmt.Sprintf("You equip the %s.", it.Name)), nil
}
