package ai

import (
	"fmt"

	"github.com/cory-johannsen/tombs/internal/game/action"
	"github.com/cory-johannsen/tombs/internal/game/color"
	"github.com/cory-johannsen/tombs/internal/game/world"
)

// ConfusedEnemy staggers in random directions for a number of turns, then
// hands control back to the policy it replaced.
type ConfusedEnemy struct {
	Actor          *world.Actor
	Previous       world.AI
	TurnsRemaining int
}

// NewConfused wraps previous for turns turns.
//
// Precondition: actor must not be nil.
func NewConfused(actor *world.Actor, previous world.AI, turns int) *ConfusedEnemy {
	return &ConfusedEnemy{Actor: actor, Previous: previous, TurnsRemaining: turns}
}

// Kind implements world.AI.
func (c *ConfusedEnemy) Kind() string { return KindConfused }

// Perform implements world.AI. Stumbling into a wall is an impossible action
// which the turn loop ignores; stumbling into another actor attacks it.
//
// Postcondition: when TurnsRemaining reaches zero the actor's AI is Previous.
func (c *ConfusedEnemy) Perform(e world.Engine) error {
	if c.TurnsRemaining <= 0 {
		e.Log().Add(fmt.Sprintf("The %s is no longer confused.", c.Actor.Name), color.StatusEffect, true)
		c.Actor.AI = c.Previous
		return nil
	}
	c.TurnsRemaining--
	dir := world.StandardDirections[e.Dice().Intn(len(world.StandardDirections))]
	return action.Toward(c.Actor, dir).Perform(e)
}
