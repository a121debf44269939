package ai

import (
	"github.com/cory-johannsen/tombs/internal/game/world"
)

// Combatant kinds.
const (
	CombatantPlayer = "player"
	CombatantNPC    = "npc"
)

// CombatantState captures an actor's combat-relevant state at planning time.
type CombatantState struct {
	UID      string
	Name     string
	Kind     string // CombatantPlayer or CombatantNPC
	HP       int
	MaxHP    int
	AC       int
	X, Y     int
	Distance float64 // from the planning NPC
	Dead     bool
}

// HPPercent returns current HP as a percentage of MaxHP; 0 if MaxHP == 0.
func (c *CombatantState) HPPercent() float64 {
	if c.MaxHP <= 0 {
		return 0
	}
	return float64(c.HP) / float64(c.MaxHP) * 100
}

// NPCState captures the planning NPC's own state.
type NPCState struct {
	UID   string
	Name  string
	Kind  string // always CombatantNPC
	HP    int
	MaxHP int
	X, Y  int
}

// WorldState is the snapshot passed to the HTN planner for one NPC.
//
// Invariant: NPC must not be nil.
type WorldState struct {
	NPC        *NPCState
	Combatants []*CombatantState // every living actor on the floor, in spawn order
}

// BuildState snapshots the floor from self's point of view.
//
// Precondition: e and self must not be nil; self must have a Fighter.
// Postcondition: ws.NPC.UID == self.ID.
func BuildState(e world.Engine, self *world.Actor) *WorldState {
	ws := &WorldState{
		NPC: &NPCState{
			UID:   self.ID,
			Name:  self.Name,
			Kind:  CombatantNPC,
			HP:    self.Fighter.HP(),
			MaxHP: self.Fighter.MaxHP,
			X:     self.X,
			Y:     self.Y,
		},
	}
	player := e.Player()
	for _, a := range e.Map().LivingActors() {
		kind := CombatantNPC
		if a == player {
			kind = CombatantPlayer
		}
		ws.Combatants = append(ws.Combatants, &CombatantState{
			UID:      a.ID,
			Name:     a.Name,
			Kind:     kind,
			HP:       a.Fighter.HP(),
			MaxHP:    a.Fighter.MaxHP,
			AC:       a.Fighter.ArmorClass(),
			X:        a.X,
			Y:        a.Y,
			Distance: self.Distance(a.X, a.Y),
			Dead:     !a.IsAlive(),
		})
	}
	return ws
}

// EnemiesOf returns all living combatants of the opposite kind from uid.
//
// Precondition: uid must be the NPC's UID; ws.NPC must not be nil.
// Postcondition: returned slice contains no dead combatants and no same-kind combatants.
func (ws *WorldState) EnemiesOf(uid string) []*CombatantState {
	var out []*CombatantState
	for _, c := range ws.Combatants {
		if !c.Dead && c.UID != uid && c.Kind != ws.NPC.Kind {
			out = append(out, c)
		}
	}
	return out
}

// HasLivingEnemies returns true when at least one living enemy exists.
//
// Postcondition: equivalent to len(EnemiesOf(uid)) > 0.
func (ws *WorldState) HasLivingEnemies(uid string) bool {
	return len(ws.EnemiesOf(uid)) > 0
}

// NearestEnemy returns the living enemy with the smallest Distance, or nil.
//
// Postcondition: nil if no living enemies exist; ties broken by order in Combatants.
func (ws *WorldState) NearestEnemy(uid string) *CombatantState {
	enemies := ws.EnemiesOf(uid)
	if len(enemies) == 0 {
		return nil
	}
	nearest := enemies[0]
	for _, e := range enemies[1:] {
		if e.Distance < nearest.Distance {
			nearest = e
		}
	}
	return nearest
}

// WeakestEnemy returns the living enemy with the lowest HP percentage, or nil.
//
// Postcondition: nil if no living enemies exist; ties broken by order in Combatants.
func (ws *WorldState) WeakestEnemy(uid string) *CombatantState {
	enemies := ws.EnemiesOf(uid)
	if len(enemies) == 0 {
		return nil
	}
	weakest := enemies[0]
	for _, e := range enemies[1:] {
		if e.HPPercent() < weakest.HPPercent() {
			weakest = e
		}
	}
	return weakest
}

// AlliesOf returns all living combatants of the same kind as the NPC (excluding self).
//
// Postcondition: returned slice excludes the NPC itself and dead combatants.
func (ws *WorldState) AlliesOf(uid string) []*CombatantState {
	var out []*CombatantState
	for _, c := range ws.Combatants {
		if !c.Dead && c.UID != uid && c.Kind == ws.NPC.Kind {
			out = append(out, c)
		}
	}
	return out
}

// ResolveTarget maps a target token to a combatant UID.
//
// Precondition: ws.NPC must not be nil.
// Postcondition: tokens "nearest_enemy"/"weakest_enemy"/"self" are resolved to UIDs;
// unknown tokens are returned as-is; empty string returned if target is nil.
func (ws *WorldState) ResolveTarget(token string) string {
	switch token {
	case "nearest_enemy":
		if e := ws.NearestEnemy(ws.NPC.UID); e != nil {
			return e.UID
		}
		return ""
	case "weakest_enemy":
		if e := ws.WeakestEnemy(ws.NPC.UID); e != nil {
			return e.UID
		}
		return ""
	case "self":
		return ws.NPC.UID
	default:
		return token
	}
}

// Combatant returns the combatant with uid, or nil.
func (ws *WorldState) Combatant(uid string) *CombatantState {
	for _, c := range ws.Combatants {
		if c.UID == uid {
			return c
		}
	}
	return nil
}
