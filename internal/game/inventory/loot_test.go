package inventory_test

import (
	"testing"

	"github.com/cory-johannsen/tombs/internal/game/dice"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLootTable_Validate(t *testing.T) {
	assert.NoError(t, (&inventory.LootTable{}).Validate())
	bad := []inventory.ItemDrop{
		{ItemID: "", Chance: 0.5, MinQty: 1, MaxQty: 1},
		{ItemID: "x", Chance: 0, MinQty: 1, MaxQty: 1},
		{ItemID: "x", Chance: 1.5, MinQty: 1, MaxQty: 1},
		{ItemID: "x", Chance: 0.5, MinQty: 0, MaxQty: 1},
		{ItemID: "x", Chance: 0.5, MinQty: 3, MaxQty: 2},
	}
	for _, d := range bad {
		lt := inventory.LootTable{Items: []inventory.ItemDrop{d}}
		assert.Error(t, lt.Validate(), "%+v", d)
	}
}

func TestGenerateLoot_CertainDropAlwaysAppears(t *testing.T) {
	lt := inventory.LootTable{Items: []inventory.ItemDrop{{ItemID: "health_potion", Chance: 1, MinQty: 1, MaxQty: 1}}}
	got := inventory.GenerateLoot(lt, dice.NewSeededSource(3))
	require.Len(t, got, 1)
	assert.Equal(t, inventory.LootItem{ItemDefID: "health_potion", Quantity: 1}, got[0])
}

func TestGenerateLoot_QuantityWithinRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(1, 5).Draw(rt, "min")
		hi := rapid.IntRange(lo, 10).Draw(rt, "max")
		lt := inventory.LootTable{Items: []inventory.ItemDrop{{ItemID: "x", Chance: 0.5, MinQty: lo, MaxQty: hi}}}
		for _, li := range inventory.GenerateLoot(lt, dice.NewSeededSource(rapid.Int64().Draw(rt, "seed"))) {
			assert.GreaterOrEqual(rt, li.Quantity, lo)
			assert.LessOrEqual(rt, li.Quantity, hi)
		}
	})
}
