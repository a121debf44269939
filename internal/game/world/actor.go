package world

import (
	"github.com/cory-johannsen/tombs/internal/game/character"
	"github.com/cory-johannsen/tombs/internal/game/color"
	"github.com/cory-johannsen/tombs/internal/game/combat"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
)

// CorpseGlyph is drawn for every dead actor.
const CorpseGlyph = '%'

// AI is an actor's turn policy.
type AI interface {
	// Perform takes one turn on behalf of the owning actor.
	Perform(e Engine) error
	// Kind names the policy for persistence, e.g. "hostile".
	Kind() string
}

// Actor is anything that fights: the player or a monster. An Actor with a
// nil AI is a corpse.
type Actor struct {
	Entity

	TemplateID string
	Abilities  character.AbilityScores
	Fighter    *combat.Fighter
	Equipment  *inventory.Equipment
	Inventory  *inventory.Inventory
	Level      character.Level
	AI         AI
	Loot       inventory.LootTable
}

// DeathEvent reports that an actor has just died. The engine applies it.
type DeathEvent struct {
	Actor   *Actor
	Name    string // name before the corpse rename
	XPGiven int
}

// IsAlive reports whether the actor still has a turn policy.
func (a *Actor) IsAlive() bool {
	return a.AI != nil
}

// SetHP writes hp through the fighter and returns a DeathEvent when this
// write is the one that kills the actor.
//
// Postcondition: a non-nil event is returned at most once per actor.
func (a *Actor) SetHP(hp int) *DeathEvent {
	a.Fighter.SetHP(hp)
	return a.checkDeath()
}

// TakeDamage applies amount and returns a DeathEvent on the killing blow.
func (a *Actor) TakeDamage(amount int) *DeathEvent {
	a.Fighter.TakeDamage(amount)
	return a.checkDeath()
}

func (a *Actor) checkDeath() *DeathEvent {
	if a.Fighter.HP() > 0 || a.AI == nil {
		return nil
	}
	return a.die()
}

func (a *Actor) die() *DeathEvent {
	ev := &DeathEvent{Actor: a, Name: a.Name, XPGiven: a.Level.XPGiven}
	a.Glyph = CorpseGlyph
	a.Color = color.Corpse
	a.BlocksMovement = false
	a.AI = nil
	a.Name = "remains of " + a.Name
	a.RenderOrder = RenderCorpse
	return ev
}

// GroundItem is an item lying on the map.
type GroundItem struct {
	X, Y int
	Item *inventory.Item
}
