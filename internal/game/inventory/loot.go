package inventory

import (
	"fmt"

	"github.com/cory-johannsen/tombs/internal/game/dice"
)

// ItemDrop defines a single item entry in a loot table with a drop chance.
type ItemDrop struct {
	ItemID string  `yaml:"item" json:"item"`
	Chance float64 `yaml:"chance" json:"chance"`
	MinQty int     `yaml:"min_qty" json:"min_qty"`
	MaxQty int     `yaml:"max_qty" json:"max_qty"`
}

// LootTable defines the items a monster may drop on death.
type LootTable struct {
	Items []ItemDrop `yaml:"items" json:"items"`
}

// Validate checks that the loot table satisfies its invariants.
//
// Postcondition: Returns nil iff all item constraints hold; an empty table is valid.
func (lt *LootTable) Validate() error {
	for i, item := range lt.Items {
		if item.ItemID == "" {
			return fmt.Errorf("loot table: item[%d] must have a non-empty item id", i)
		}
		if item.Chance <= 0 || item.Chance > 1.0 {
			return fmt.Errorf("loot table: item[%d] chance must be in (0, 1.0], got %f", i, item.Chance)
		}
		if item.MinQty < 1 {
			return fmt.Errorf("loot table: item[%d] min_qty must be >= 1, got %d", i, item.MinQty)
		}
		if item.MinQty > item.MaxQty {
			return fmt.Errorf("loot table: item[%d] min_qty (%d) must be <= max_qty (%d)", i, item.MinQty, item.MaxQty)
		}
	}
	return nil
}

// LootItem is one rolled drop.
type LootItem struct {
	ItemDefID string
	Quantity  int
}

const chanceResolution = 10000

// GenerateLoot rolls lt using src.
//
// Precondition: lt must have passed Validate().
// Postcondition: each returned Quantity is in [MinQty, MaxQty].
func GenerateLoot(lt LootTable, src dice.Source) []LootItem {
	var out []LootItem
	for _, item := range lt.Items {
		if src.Intn(chanceResolution) >= int(item.Chance*chanceResolution) {
			continue
		}
		qty := item.MinQty
		if spread := item.MaxQty - item.MinQty; spread > 0 {
			qty += src.Intn(spread + 1)
		}
		out = append(out, LootItem{ItemDefID: item.ItemID, Quantity: qty})
	}
	return out
}
