package world

import (
	"github.com/cory-johannsen/tombs/internal/game/dice"
	"github.com/cory-johannsen/tombs/internal/game/messagelog"
)

// Engine is the view of a running game that actions and AI policies act through.
type Engine interface {
	Map() *GameMap
	Player() *Actor
	Dice() dice.Source
	Log() *messagelog.Log
	// ResolveDeath applies a DeathEvent: message, experience and loot.
	ResolveDeath(ev *DeathEvent)
	// Confuse replaces target's AI with a confused policy for turns turns.
	Confuse(target *Actor, turns int)
	// Descend moves the player to a freshly generated next floor.
	Descend() error
}
