package engine_test

import (
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tombs/internal/game/ai"
	"github.com/cory-johannsen/tombs/internal/game/dice"
	"github.com/cory-johannsen/tombs/internal/game/engine"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
	"github.com/cory-johannsen/tombs/internal/game/npc"
	"github.com/cory-johannsen/tombs/internal/game/world"
	"github.com/cory-johannsen/tombs/internal/scripting"
)

type tb interface {
	require.TestingT
	Helper()
}

// placement puts a monster built from a template on every generated floor.
type placement struct {
	id   string
	x, y int
}

// arena is a Generator that builds a single open room with the player in the
// top-left corner and the stairs in the bottom-right corner.
type arena struct {
	w, h      int
	monsters  []placement
	templates *npc.Registry
	policies  npc.AIFactory
	src       dice.Source
	floors    []int
}

func (g *arena) Generate(floor int, player *world.Actor) (*world.GameMap, error) {
	g.floors = append(g.floors, floor)
	m := world.NewGameMap(g.w, g.h)
	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			m.SetTile(x, y, world.FloorTile)
		}
	}
	m.Downstairs = world.Point{X: g.w - 2, Y: g.h - 2}
	m.SetTile(g.w-2, g.h-2, world.DownStairsTile)
	player.Place(1, 1)
	m.AddActor(player)
	for _, p := range g.monsters {
		tmpl, ok := g.templates.Template(p.id)
		if !ok {
			continue
		}
		a, err := npc.Spawn(tmpl, g.policies, g.src, p.x, p.y)
		if err != nil {
			return nil, err
		}
		m.AddActor(a)
	}
	return m, nil
}

// newDeps wires the built-in content around an arena generator.
func newDeps(t tb, src dice.Source, monsters ...placement) (engine.Deps, *arena) {
	t.Helper()
	items, err := inventory.DefaultRegistry()
	require.NoError(t, err)
	templates, err := npc.DefaultRegistry()
	require.NoError(t, err)

	mgr := scripting.NewManager(dice.NewLoggedRoller(src, zap.NewNop()), zap.NewNop())
	reg, err := ai.LoadDefaultRegistry(mgr, 0)
	require.NoError(t, err)
	policies := ai.NewFactory(reg)

	gen := &arena{w: 12, h: 10, monsters: monsters, templates: templates, policies: policies, src: src}
	return engine.Deps{
		Generator: gen,
		Templates: templates,
		Items:     items,
		Policies:  policies,
		Scripts:   mgr,
		Dice:      src,
		Logger:    zap.NewNop(),
	}, gen
}

func newGame(t tb, src dice.Source, monsters ...placement) (*engine.Engine, *arena) {
	t.Helper()
	deps, gen := newDeps(t, src, monsters...)
	e, err := engine.NewGame(deps)
	require.NoError(t, err)
	return e, gen
}

// monsterAt returns the actor standing at (x, y) other than the player.
func monsterAt(t tb, e *engine.Engine, x, y int) *world.Actor {
	t.Helper()
	a := e.Map().ActorAt(x, y)
	require.NotNil(t, a)
	require.NotSame(t, e.Player(), a)
	return a
}

// scriptedAI returns err from every turn and counts its calls into order.
type scriptedAI struct {
	name  string
	err   error
	order *[]string
}

func (s scriptedAI) Kind() string { return "scripted" }

func (s scriptedAI) Perform(world.Engine) error {
	*s.order = append(*s.order, s.name)
	return s.err
}

func actorByID(t tb, e *engine.Engine, id string) *world.Actor {
	t.Helper()
	for _, a := range e.Map().Actors {
		if a.ID == id {
			return a
		}
	}
	require.Failf(t, "actor not found", "id %q", id)
	return nil
}
