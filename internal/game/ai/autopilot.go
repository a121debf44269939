package ai

import (
	"github.com/cory-johannsen/tombs/internal/game/action"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
	"github.com/cory-johannsen/tombs/internal/game/world"
)

// DefaultHealBelow is the HP fraction under which the autopilot drinks a
// healing item.
const DefaultHealBelow = 0.5

// Autopilot chooses the player's actions for unattended play. In priority
// order it heals, fights visible enemies, picks up and equips better gear,
// explores, and finally takes the stairs.
type Autopilot struct {
	HealBelow float64
}

// NewAutopilot returns an Autopilot with DefaultHealBelow.
func NewAutopilot() *Autopilot {
	return &Autopilot{HealBelow: DefaultHealBelow}
}

// Next returns the player's next action. It never returns nil.
func (p *Autopilot) Next(e world.Engine) action.Action {
	pl := e.Player()
	m := e.Map()

	if float64(pl.Fighter.HP()) < p.HealBelow*float64(pl.Fighter.MaxHP) {
		if it := findConsumable(pl, inventory.ConsumableHealing); it != nil {
			return action.UseItem{Actor: pl, Item: it}
		}
	}

	if enemy := nearestVisibleEnemy(m, pl); enemy != nil {
		dx, dy := enemy.X-pl.X, enemy.Y-pl.Y
		if chebyshev(0, 0, dx, dy) <= 1 {
			return action.Melee{Actor: pl, DX: dx, DY: dy}
		}
		if path := PathTo(m, pl.X, pl.Y, enemy.X, enemy.Y); len(path) > 0 {
			return stepTo(pl, path[0])
		}
	}

	if it := upgrade(pl); it != nil {
		return action.Equip{Actor: pl, Item: it}
	}
	if len(m.ItemsAt(pl.X, pl.Y)) > 0 && !pl.Inventory.Full() {
		return action.Pickup{Actor: pl}
	}

	wantItems := !pl.Inventory.Full()
	explore := func(x, y int) bool {
		return !m.Explored.At(x, y) || (wantItems && len(m.ItemsAt(x, y)) > 0)
	}
	if step, ok := firstStep(m, pl, explore); ok {
		return stepTo(pl, step)
	}

	stairs := m.Downstairs
	if pl.X == stairs.X && pl.Y == stairs.Y {
		return action.TakeStairs{Actor: pl}
	}
	if step, ok := firstStep(m, pl, func(x, y int) bool { return x == stairs.X && y == stairs.Y }); ok {
		return stepTo(pl, step)
	}
	return action.Wait{Actor: pl}
}

func stepTo(a *world.Actor, p world.Point) action.Action {
	return action.Bump{Actor: a, DX: p.X - a.X, DY: p.Y - a.Y}
}

func findConsumable(a *world.Actor, kind inventory.ConsumableKind) *inventory.Item {
	for _, it := range a.Inventory.Items {
		if it.Consumable != nil && it.Consumable.Kind == kind {
			return it
		}
	}
	return nil
}

func nearestVisibleEnemy(m *world.GameMap, pl *world.Actor) *world.Actor {
	var best *world.Actor
	bestDist := 0
	for _, a := range m.LivingActors() {
		if a == pl || !m.Visible.At(a.X, a.Y) {
			continue
		}
		if d := chebyshev(pl.X, pl.Y, a.X, a.Y); best == nil || d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}

// upgrade returns a carried, unequipped item that beats what is worn in its
// slot.
func upgrade(a *world.Actor) *inventory.Item {
	eq := a.Equipment
	for _, it := range a.Inventory.Items {
		e := it.Equippable
		if e == nil || eq.IsEquipped(it) {
			continue
		}
		switch e.Type {
		case inventory.TypeWeapon:
			if eq.Weapon == nil || e.PowerBonus > eq.Weapon.Equippable.PowerBonus {
				return it
			}
		case inventory.TypeArmor:
			if eq.Armor == nil || e.DefenseBonus > eq.Armor.Equippable.DefenseBonus {
				return it
			}
		}
	}
	return nil
}

// firstStep runs a breadth-first search over walkable cells from a and
// returns the first step toward the nearest cell satisfying goal. Cells held
// by blocking actors are avoided.
func firstStep(m *world.GameMap, a *world.Actor, goal func(x, y int) bool) (world.Point, bool) {
	start := world.Point{X: a.X, Y: a.Y}
	parent := map[world.Point]world.Point{start: start}
	queue := []world.Point{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur != start && goal(cur.X, cur.Y) {
			for parent[cur] != start {
				cur = parent[cur]
			}
			return cur, true
		}
		for _, d := range world.StandardDirections {
			dx, dy := d.Delta()
			next := world.Point{X: cur.X + dx, Y: cur.Y + dy}
			if _, seen := parent[next]; seen || !m.Walkable(next.X, next.Y) {
				continue
			}
			if other := m.BlockingActorAt(next.X, next.Y); other != nil && other != a {
				continue
			}
			parent[next] = cur
			queue = append(queue, next)
		}
	}
	return world.Point{}, false
}
