package ai

import (
	"github.com/cory-johannsen/tombs/internal/game/action"
	"github.com/cory-johannsen/tombs/internal/game/world"
)

// Policy kinds.
const (
	KindHostile          = "hostile"
	KindConfused         = "confused"
	KindPlayerControlled = "player"
	htnPrefix            = "htn:"
)

// HostileEnemy chases the player while the player can see it and attacks
// when adjacent. It keeps following its last path after losing sight.
type HostileEnemy struct {
	Actor *world.Actor
	path  []world.Point
}

// NewHostile returns a HostileEnemy driving actor.
func NewHostile(actor *world.Actor) *HostileEnemy {
	return &HostileEnemy{Actor: actor}
}

// Kind implements world.AI.
func (h *HostileEnemy) Kind() string { return KindHostile }

// Perform implements world.AI.
func (h *HostileEnemy) Perform(e world.Engine) error {
	target := e.Player()
	m := e.Map()
	if m.Visible.At(h.Actor.X, h.Actor.Y) {
		dx, dy := target.X-h.Actor.X, target.Y-h.Actor.Y
		if chebyshev(0, 0, dx, dy) <= 1 {
			return action.Melee{Actor: h.Actor, DX: dx, DY: dy}.Perform(e)
		}
		h.path = PathTo(m, h.Actor.X, h.Actor.Y, target.X, target.Y)
	}
	if len(h.path) > 0 {
		next := h.path[0]
		h.path = h.path[1:]
		return action.Movement{Actor: h.Actor, DX: next.X - h.Actor.X, DY: next.Y - h.Actor.Y}.Perform(e)
	}
	return action.Wait{Actor: h.Actor}.Perform(e)
}

// PlayerControlled marks the player's actor. The engine never asks it to act;
// it exists so that the player's death is detected like any other actor's.
type PlayerControlled struct{}

// Kind implements world.AI.
func (PlayerControlled) Kind() string { return KindPlayerControlled }

// Perform implements world.AI.
func (PlayerControlled) Perform(world.Engine) error { return nil }
