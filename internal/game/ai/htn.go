package ai

import (
	"github.com/cory-johannsen/tombs/internal/game/action"
	"github.com/cory-johannsen/tombs/internal/game/world"
)

// HTNEnemy asks its Planner what to do each turn and performs the first
// planned action. Only the first action is used; the plan is rebuilt every
// turn from a fresh WorldState.
type HTNEnemy struct {
	Actor   *world.Actor
	Planner *Planner
}

// NewHTN returns an HTNEnemy driving actor with planner.
//
// Precondition: actor and planner must not be nil.
func NewHTN(actor *world.Actor, planner *Planner) *HTNEnemy {
	if planner == nil {
		panic("ai.NewHTN: planner must not be nil")
	}
	return &HTNEnemy{Actor: actor, Planner: planner}
}

// Kind implements world.AI.
func (h *HTNEnemy) Kind() string { return htnPrefix + h.Planner.DomainID() }

// Perform implements world.AI.
func (h *HTNEnemy) Perform(e world.Engine) error {
	ws := BuildState(e, h.Actor)
	plan, err := h.Planner.Plan(ws)
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		return action.Wait{Actor: h.Actor}.Perform(e)
	}

	step := plan[0]
	target := ws.Combatant(step.Target)
	switch step.Action {
	case OpAttack:
		if target == nil {
			return action.Impossible("Nothing to attack.")
		}
		dx, dy := target.X-h.Actor.X, target.Y-h.Actor.Y
		if chebyshev(0, 0, dx, dy) > 1 {
			return action.Impossible("Nothing to attack.")
		}
		return action.Melee{Actor: h.Actor, DX: dx, DY: dy}.Perform(e)
	case OpApproach:
		if target == nil {
			return action.Wait{Actor: h.Actor}.Perform(e)
		}
		path := PathTo(e.Map(), h.Actor.X, h.Actor.Y, target.X, target.Y)
		if len(path) == 0 {
			return action.Wait{Actor: h.Actor}.Perform(e)
		}
		return action.Movement{Actor: h.Actor, DX: path[0].X - h.Actor.X, DY: path[0].Y - h.Actor.Y}.Perform(e)
	case OpFlee:
		if target == nil {
			return action.Wait{Actor: h.Actor}.Perform(e)
		}
		return h.flee(e, target)
	default:
		return action.Wait{Actor: h.Actor}.Perform(e)
	}
}

// flee steps to the open neighbouring cell that is farthest from threat.
// Ties keep the first direction in StandardDirections order.
func (h *HTNEnemy) flee(e world.Engine, threat *CombatantState) error {
	m := e.Map()
	best := h.Actor.Distance(threat.X, threat.Y)
	bestDX, bestDY, found := 0, 0, false
	for _, d := range world.StandardDirections {
		dx, dy := d.Delta()
		nx, ny := h.Actor.X+dx, h.Actor.Y+dy
		if !m.InBounds(nx, ny) || !m.Walkable(nx, ny) || m.BlockingActorAt(nx, ny) != nil {
			continue
		}
		p := world.Entity{X: nx, Y: ny}
		if dist := p.Distance(threat.X, threat.Y); dist > best {
			best, bestDX, bestDY, found = dist, dx, dy, true
		}
	}
	if !found {
		return action.Impossible("There is nowhere to run.")
	}
	return action.Movement{Actor: h.Actor, DX: bestDX, DY: bestDY}.Perform(e)
}
