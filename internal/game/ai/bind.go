package ai

import (
	"github.com/cory-johannsen/tombs/internal/game/world"
	"github.com/cory-johannsen/tombs/internal/scripting"
)

// Bind points mgr's engine.actor module at the actors of e's current floor.
//
// Precondition: mgr and e must not be nil.
func Bind(mgr *scripting.Manager, e world.Engine) {
	mgr.GetActor = func(uid string) *scripting.ActorInfo {
		for _, a := range e.Map().Actors {
			if a.ID == uid {
				return ActorInfo(e, a)
			}
		}
		return nil
	}
	mgr.GetPlayer = func() *scripting.ActorInfo {
		return ActorInfo(e, e.Player())
	}
}

// ActorInfo describes a relative to the player for Lua scripts.
func ActorInfo(e world.Engine, a *world.Actor) *scripting.ActorInfo {
	if a == nil {
		return nil
	}
	p := e.Player()
	return &scripting.ActorInfo{
		UID:        a.ID,
		Name:       a.Name,
		HP:         a.Fighter.HP(),
		MaxHP:      a.Fighter.MaxHP,
		AC:         a.Fighter.ArmorClass(),
		X:          a.X,
		Y:          a.Y,
		Distance:   a.Distance(p.X, p.Y),
		Adjacent:   a != p && chebyshev(a.X, a.Y, p.X, p.Y) <= 1,
		SeesPlayer: e.Map().Visible.At(a.X, a.Y),
		IsPlayer:   a == p,
	}
}
