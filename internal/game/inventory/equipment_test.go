package inventory_test

import (
	"testing"

	"github.com/cory-johannsen/tombs/internal/game/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(name string, e inventory.Equippable) *inventory.Item {
	return &inventory.Item{ID: name, Name: name, Equippable: &e}
}

func TestEquipment_ToggleEquip(t *testing.T) {
	var eq inventory.Equipment
	dagger := item("Dagger", inventory.Dagger())
	sword := item("Sword", inventory.Sword())
	mail := item("Chain Mail", inventory.ChainMail())

	msgs, err := eq.ToggleEquip(dagger)
	require.NoError(t, err)
	assert.Equal(t, []string{"You equip the Dagger."}, msgs)
	assert.Same(t, dagger, eq.Weapon)

	msgs, err = eq.ToggleEquip(sword)
	require.NoError(t, err)
	assert.Equal(t, []string{"You remove the Dagger.", "You equip the Sword."}, msgs)
	assert.Same(t, sword, eq.Weapon)
	assert.False(t, eq.IsEquipped(dagger))

	_, err = eq.ToggleEquip(mail)
	require.NoError(t, err)
	assert.Same(t, mail, eq.Armor)
	assert.Equal(t, 3, eq.DefenseBonus())
	assert.Same(t, sword.Equippable, eq.WeaponModifier())

	msgs, err = eq.ToggleEquip(sword)
	require.NoError(t, err)
	assert.Equal(t, []string{"You remove the Sword."}, msgs)
	assert.Nil(t, eq.WeaponModifier())
}

func TestEquipment_DefenseBonusCountsArmorOnly(t *testing.T) {
	var eq inventory.Equipment
	parrying := item("Parrying Dagger", inventory.Equippable{Type: inventory.TypeWeapon, DamageDiceNum: 1, DamageDiceSides: 4, DefenseBonus: 2})
	_, err := eq.ToggleEquip(parrying)
	require.NoError(t, err)
	assert.Zero(t, eq.DefenseBonus())

	leather := item("Leather Armor", inventory.Equippable{Type: inventory.TypeArmor, DefenseBonus: 1})
	_, err = eq.ToggleEquip(leather)
	require.NoError(t, err)
	assert.Equal(t, 1, eq.DefenseBonus())
}

func TestEquipment_RejectsNonEquippable(t *testing.T) {
	var eq inventory.Equipment
	_, err := eq.ToggleEquip(&inventory.Item{Name: "Health Potion"})
	assert.ErrorIs(t, err, inventory.ErrNotEquippable)
	_, err = eq.ToggleEquip(nil)
	assert.ErrorIs(t, err, inventory.ErrNotEquippable)
}

func TestEquipment_NilIsUnarmed(t *testing.T) {
	var eq *inventory.Equipment
	assert.Nil(t, eq.WeaponModifier())
	assert.Zero(t, eq.DefenseBonus())
}

func TestInventory_AddRemove(t *testing.T) {
	inv := inventory.New(2)
	a := &inventory.Item{ID: "a"}
	b := &inventory.Item{ID: "b"}
	require.NoError(t, inv.Add(a))
	require.NoError(t, inv.Add(b))
	assert.True(t, inv.Full())
	assert.ErrorIs(t, inv.Add(&inventory.Item{ID: "c"}), inventory.ErrInventoryFull)
	assert.Len(t, inv.Items, 2)

	assert.Same(t, b, inv.Find("b"))
	assert.True(t, inv.Remove(a))
	assert.False(t, inv.Remove(a))
	assert.Equal(t, []*inventory.Item{b}, inv.Items)
	assert.Nil(t, inv.Find("a"))
}
