package action

import (
	"fmt"

	"github.com/cory-johannsen/tombs/internal/game/color"
	"github.com/cory-johannsen/tombs/internal/game/combat"
	"github.com/cory-johannsen/tombs/internal/game/world"
)

// Movement steps the actor by (DX, DY).
type Movement struct {
	Actor  *world.Actor
	DX, DY int
}

// Perform implements Action.
func (a Movement) Perform(e world.Engine) error {
	x, y := a.Actor.X+a.DX, a.Actor.Y+a.DY
	m := e.Map()
	if !m.InBounds(x, y) || !m.Walkable(x, y) || m.BlockingActorAt(x, y) != nil {
		return Impossible("That way is blocked.")
	}
	a.Actor.Move(a.DX, a.DY)
	return nil
}

// Melee attacks the living actor at offset (DX, DY).
type Melee struct {
	Actor  *world.Actor
	DX, DY int
}

// Perform implements Action.
func (a Melee) Perform(e world.Engine) error {
	target := e.Map().ActorAt(a.Actor.X+a.DX, a.Actor.Y+a.DY)
	if target == nil || target == a.Actor {
		return Impossible("Nothing to attack.")
	}

	res := combat.ResolveAttack(a.Actor.Fighter, target.Fighter, e.Dice())
	desc := fmt.Sprintf("%s attacks %s", a.Actor.Name, target.Name)
	c := color.EnemyAtk
	if a.Actor == e.Player() {
		c = color.PlayerAtk
	}
	switch {
	case !res.Hit:
		e.Log().Add(desc+" but misses.", c, true)
		return nil
	case res.Damage > 0:
		e.Log().Add(fmt.Sprintf("%s for %d hit points.", desc, res.Damage), c, true)
	default:
		e.Log().Add(desc+" but does no damage.", c, true)
	}
	if ev := target.TakeDamage(res.Damage); ev != nil {
		e.ResolveDeath(ev)
	}
	return nil
}

// Bump attacks whatever lives at the offset, or moves there.
type Bump struct {
	Actor  *world.Actor
	DX, DY int
}

// Perform implements Action.
func (a Bump) Perform(e world.Engine) error {
	if t := e.Map().ActorAt(a.Actor.X+a.DX, a.Actor.Y+a.DY); t != nil && t != a.Actor {
		return Melee(a).Perform(e)
	}
	return Movement(a).Perform(e)
}

// Toward returns a Bump one step in dir.
func Toward(actor *world.Actor, dir world.Direction) Bump {
	dx, dy := dir.Delta()
	return Bump{Actor: actor, DX: dx, DY: dy}
}

// TakeStairs descends when the actor stands on the down staircase.
type TakeStairs struct {
	Actor *world.Actor
}

// Perform implements Action.
func (a TakeStairs) Perform(e world.Engine) error {
	stairs := e.Map().Downstairs
	if a.Actor.X != stairs.X || a.Actor.Y != stairs.Y {
		return Impossible("There are no stairs here.")
	}
	if err := e.Descend(); err != nil {
		return err
	}
	e.Log().Add("You descend the staircase.", color.Descend, true)
	return nil
}
