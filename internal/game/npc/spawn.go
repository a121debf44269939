package npc

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/tombs/internal/game/character"
	"github.com/cory-johannsen/tombs/internal/game/combat"
	"github.com/cory-johannsen/tombs/internal/game/dice"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
	"github.com/cory-johannsen/tombs/internal/game/world"
)

// AIFactory builds the policy named by a template.
type AIFactory interface {
	New(kind string, actor *world.Actor) (world.AI, error)
}

// Spawn creates a live actor from t at (x, y). The actor is not added to any map.
//
// Precondition: t passed Validate; factory and src must not be nil.
// Postcondition: HP equals MaxHP; the actor has a fresh ID and an AI.
func Spawn(t *Template, factory AIFactory, src dice.Source, x, y int) (*world.Actor, error) {
	abilities := character.DefaultAbilityScores()
	if t.Abilities != nil {
		abilities = *t.Abilities
	}
	order := world.RenderActor
	if t.Player {
		order = world.RenderPlayer
	}
	a := &world.Actor{
		Entity: world.Entity{
			ID:             uuid.NewString(),
			X:              x,
			Y:              y,
			Glyph:          []rune(t.Glyph)[0],
			Color:          t.Color,
			Name:           t.Name,
			BlocksMovement: true,
			RenderOrder:    order,
		},
		TemplateID: t.ID,
		Abilities:  abilities,
		Equipment:  &inventory.Equipment{},
		Inventory:  inventory.New(t.InventoryCapacity),
		Level:      character.NewLevel(t.LevelUpBase, t.XPGiven),
	}
	if t.Loot != nil {
		a.Loot = inventory.LootTable{Items: append([]inventory.ItemDrop(nil), t.Loot.Items...)}
	}
	a.Fighter = combat.NewFighter(t.Fighter, &a.Abilities, a.Equipment, src)

	policy, err := factory.New(t.AI, a)
	if err != nil {
		return nil, fmt.Errorf("npc: spawning %q: %w", t.ID, err)
	}
	if policy == nil {
		return nil, fmt.Errorf("npc: spawning %q: template ai %q produced no policy", t.ID, t.AI)
	}
	a.AI = policy
	return a, nil
}
