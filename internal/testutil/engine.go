package testutil

import (
	"fmt"

	"github.com/cory-johannsen/tombs/internal/game/character"
	"github.com/cory-johannsen/tombs/internal/game/color"
	"github.com/cory-johannsen/tombs/internal/game/combat"
	"github.com/cory-johannsen/tombs/internal/game/dice"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
	"github.com/cory-johannsen/tombs/internal/game/messagelog"
	"github.com/cory-johannsen/tombs/internal/game/world"
)

// Engine is an in-memory world.Engine that records what actions ask of it.
type Engine struct {
	GameMap   *world.GameMap
	PlayerA   *world.Actor
	Src       dice.Source
	MsgLog    *messagelog.Log
	Deaths    []*world.DeathEvent
	Confused  map[*world.Actor]int
	Descents  int
	DescendFn func() error
}

// NewEngine returns an Engine over an open w by h floor with player placed at
// (px, py) and every cell visible.
func NewEngine(w, h, px, py int, src dice.Source) *Engine {
	m := world.NewGameMap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetTile(x, y, world.FloorTile)
			m.Visible.Set(x, y, true)
			m.Explored.Set(x, y, true)
		}
	}
	player := NewActor("Player", combat.Config{HP: 30, BaseDamageDie: 1}, StillAI{}, src)
	player.RenderOrder = world.RenderPlayer
	player.Inventory = inventory.New(26)
	player.Level = character.NewLevel(200, 0)
	player.Place(px, py)
	m.AddActor(player)
	return &Engine{
		GameMap:  m,
		PlayerA:  player,
		Src:      src,
		MsgLog:   messagelog.New(),
		Confused: make(map[*world.Actor]int),
	}
}

func (e *Engine) Map() *world.GameMap  { return e.GameMap }
func (e *Engine) Player() *world.Actor { return e.PlayerA }
func (e *Engine) Dice() dice.Source    { return e.Src }
func (e *Engine) Log() *messagelog.Log { return e.MsgLog }

// ResolveDeath records ev and credits experience to the player.
func (e *Engine) ResolveDeath(ev *world.DeathEvent) {
	e.Deaths = append(e.Deaths, ev)
	e.MsgLog.Add(fmt.Sprintf("%s is dead!", ev.Name), color.EnemyDie, true)
	e.PlayerA.Level.AddXP(ev.XPGiven)
}

// Confuse records the request without swapping the AI.
func (e *Engine) Confuse(target *world.Actor, turns int) {
	e.Confused[target] = turns
}

// Descend counts the call and runs DescendFn when set.
func (e *Engine) Descend() error {
	e.Descents++
	if e.DescendFn != nil {
		return e.DescendFn()
	}
	return nil
}

// StillAI is an AI that does nothing; it marks an actor as alive.
type StillAI struct{}

func (StillAI) Perform(world.Engine) error { return nil }
func (StillAI) Kind() string               { return "still" }

// NewActor builds a blocking actor with default abilities, empty equipment and
// a zero-capacity inventory.
func NewActor(name string, cfg combat.Config, ai world.AI, src dice.Source) *world.Actor {
	a := &world.Actor{
		Entity: world.Entity{
			ID:             name,
			Name:           name,
			Glyph:          []rune(name)[0],
			Color:          color.White,
			BlocksMovement: true,
			RenderOrder:    world.RenderActor,
		},
		Abilities: character.DefaultAbilityScores(),
		Equipment: &inventory.Equipment{},
		Inventory: inventory.New(0),
		Level:     character.NewLevel(0, 0),
		AI:        ai,
	}
	a.Fighter = combat.NewFighter(cfg, &a.Abilities, a.Equipment, src)
	return a
}

// Spawn builds an actor with NewActor, places it at (x, y) and adds it to the map.
func (e *Engine) Spawn(name string, cfg combat.Config, ai world.AI, x, y int) *world.Actor {
	a := NewActor(name, cfg, ai, e.Src)
	a.Place(x, y)
	e.GameMap.AddActor(a)
	return a
}
