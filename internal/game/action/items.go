package action

import (
	"errors"
	"fmt"
	"math"

	"github.com/cory-johannsen/tombs/internal/game/color"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
	"github.com/cory-johannsen/tombs/internal/game/world"
)

// Pickup moves the first item under the actor into its inventory.
type Pickup struct {
	Actor *world.Actor
}

// Perform implements Action.
func (a Pickup) Perform(e world.Engine) error {
	here := e.Map().ItemsAt(a.Actor.X, a.Actor.Y)
	if len(here) == 0 {
		return Impossible("There is nothing here to pick up.")
	}
	gi := here[0]
	if err := a.Actor.Inventory.Add(gi.Item); err != nil {
		if errors.Is(err, inventory.ErrInventoryFull) {
			return Impossible("Your inventory is full.")
		}
		return err
	}
	e.Map().RemoveItem(gi)
	e.Log().Add(fmt.Sprintf("You picked up the %s!", gi.Item.Name), color.White, true)
	return nil
}

// Drop places a carried item on the floor, unequipping it first.
type Drop struct {
	Actor *world.Actor
	Item  *inventory.Item
}

// Perform implements Action.
func (a Drop) Perform(e world.Engine) error {
	if a.Item == nil || a.Actor.Inventory.Find(a.Item.ID) == nil {
		return Impossible("You are not carrying that.")
	}
	if msg := a.Actor.Equipment.Unequip(a.Item); msg != "" {
		e.Log().Add(msg, color.White, true)
	}
	a.Actor.Inventory.Remove(a.Item)
	e.Map().AddItem(&world.GroundItem{X: a.Actor.X, Y: a.Actor.Y, Item: a.Item})
	e.Log().Add(fmt.Sprintf("You dropped the %s.", a.Item.Name), color.White, true)
	return nil
}

// Equip toggles a carried item in or out of its equipment slot.
type Equip struct {
	Actor *world.Actor
	Item  *inventory.Item
}

// Perform implements Action.
func (a Equip) Perform(e world.Engine) error {
	msgs, err := a.Actor.Equipment.ToggleEquip(a.Item)
	if errors.Is(err, inventory.ErrNotEquippable) {
		return Impossible(fmt.Sprintf("The %s cannot be equipped.", itemName(a.Item)))
	}
	if err != nil {
		return err
	}
	for _, m := range msgs {
		e.Log().Add(m, color.White, true)
	}
	return nil
}

// UseItem activates a carried consumable. Target is required for area and
// single-target effects.
type UseItem struct {
	Actor  *world.Actor
	Item   *inventory.Item
	Target *world.Point
}

// Perform implements Action.
func (a UseItem) Perform(e world.Engine) error {
	if a.Item == nil || a.Item.Consumable == nil {
		return Impossible(fmt.Sprintf("The %s cannot be used.", itemName(a.Item)))
	}
	c := a.Item.Consumable
	var err error
	switch c.Kind {
	case inventory.ConsumableHealing:
		err = a.heal(e, c)
	case inventory.ConsumableLightning:
		err = a.lightning(e, c)
	case inventory.ConsumableFireball:
		err = a.fireball(e, c)
	case inventory.ConsumableConfusion:
		err = a.confuse(e, c)
	default:
		err = fmt.Errorf("action: unknown consumable kind %q", c.Kind)
	}
	if err != nil {
		return err
	}
	a.Actor.Equipment.Unequip(a.Item)
	a.Actor.Inventory.Remove(a.Item)
	return nil
}

func (a UseItem) heal(e world.Engine, c *inventory.Consumable) error {
	recovered := a.Actor.Fighter.Heal(c.Amount)
	if recovered == 0 {
		return Impossible("Your health is already full.")
	}
	e.Log().Add(fmt.Sprintf("You consume the %s, and recover %d HP!", a.Item.Name, recovered), color.HealthRecovered, true)
	return nil
}

func (a UseItem) lightning(e world.Engine, c *inventory.Consumable) error {
	m := e.Map()
	var target *world.Actor
	closest := float64(c.Range) + 1.0
	for _, other := range m.LivingActors() {
		if other == a.Actor || !m.Visible.At(other.X, other.Y) {
			continue
		}
		if d := a.Actor.Distance(other.X, other.Y); d < closest {
			target, closest = other, d
		}
	}
	if target == nil {
		return Impossible("No enemy is close enough to strike.")
	}
	e.Log().Add(fmt.Sprintf("A lightning bolt strikes the %s with a loud thunder, for %d damage!", target.Name, c.Damage), color.White, true)
	if ev := target.TakeDamage(c.Damage); ev != nil {
		e.ResolveDeath(ev)
	}
	return nil
}

func (a UseItem) fireball(e world.Engine, c *inventory.Consumable) error {
	m := e.Map()
	if a.Target == nil {
		return Impossible("You must select an area to target.")
	}
	if !m.Visible.At(a.Target.X, a.Target.Y) {
		return Impossible("You cannot target an area that you cannot see.")
	}
	hit := false
	for _, other := range m.LivingActors() {
		if math.Hypot(float64(other.X-a.Target.X), float64(other.Y-a.Target.Y)) > float64(c.Radius) {
			continue
		}
		hit = true
		e.Log().Add(fmt.Sprintf("The %s is engulfed in a fiery explosion, taking %d damage!", other.Name, c.Damage), color.White, true)
		if ev := other.TakeDamage(c.Damage); ev != nil {
			e.ResolveDeath(ev)
		}
	}
	if !hit {
		return Impossible("There are no targets in the radius.")
	}
	return nil
}

func (a UseItem) confuse(e world.Engine, c *inventory.Consumable) error {
	m := e.Map()
	if a.Target == nil {
		return Impossible("You must select an enemy to target.")
	}
	if !m.Visible.At(a.Target.X, a.Target.Y) {
		return Impossible("You cannot target an area that you cannot see.")
	}
	target := m.ActorAt(a.Target.X, a.Target.Y)
	if target == nil {
		return Impossible("You must select an enemy to target.")
	}
	if target == a.Actor {
		return Impossible("You cannot confuse yourself!")
	}
	e.Log().Add(fmt.Sprintf("The eyes of the %s look vacant, as it starts to stumble around!", target.Name), color.StatusEffect, true)
	e.Confuse(target, c.Turns)
	return nil
}

func itemName(it *inventory.Item) string {
	if it == nil {
		return "nothing"
	}
	return it.Name
}
