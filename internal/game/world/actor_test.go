package world_test

import (
	"testing"

	"github.com/cory-johannsen/tombs/internal/game/character"
	"github.com/cory-johannsen/tombs/internal/game/color"
	"github.com/cory-johannsen/tombs/internal/game/combat"
	"github.com/cory-johannsen/tombs/internal/game/dice"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
	"github.com/cory-johannsen/tombs/internal/game/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type stubAI struct{}

func (stubAI) Perform(world.Engine) error { return nil }
func (stubAI) Kind() string               { return "stub" }

func newActor(name string, cfg combat.Config, ai world.AI) *world.Actor {
	a := &world.Actor{
		Entity: world.Entity{
			ID:             name,
			Name:           name,
			Glyph:          'T',
			Color:          color.White,
			BlocksMovement: true,
			RenderOrder:    world.RenderActor,
		},
		Abilities: character.DefaultAbilityScores(),
		Equipment: &inventory.Equipment{},
		Inventory: inventory.New(0),
		Level:     character.NewLevel(0, 100),
		AI:        ai,
	}
	a.Fighter = combat.NewFighter(cfg, &a.Abilities, a.Equipment, dice.NewSeededSource(1))
	return a
}

func TestActor_TrollScenario(t *testing.T) {
	troll := newActor("Troll", combat.Config{HP: 16, ArmorValue: 2, BaseDamageDie: 4}, stubAI{})
	require.Equal(t, 16, troll.Fighter.MaxHP)

	ev := troll.TakeDamage(20)
	require.NotNil(t, ev)
	assert.Equal(t, 0, troll.Fighter.HP())
	assert.Same(t, troll, ev.Actor)
	assert.Equal(t, "Troll", ev.Name)
	assert.Equal(t, 100, ev.XPGiven)

	assert.False(t, troll.IsAlive())
	assert.Nil(t, troll.AI)
	assert.False(t, troll.BlocksMovement)
	assert.Equal(t, world.RenderCorpse, troll.RenderOrder)
	assert.Equal(t, "remains of Troll", troll.Name)
	assert.Equal(t, world.CorpseGlyph, troll.Glyph)
	assert.Equal(t, color.Corpse, troll.Color)
}

func TestActor_DeathFiresOnce(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := newActor("Orc", combat.Config{HP: rapid.IntRange(1, 50).Draw(rt, "hp")}, stubAI{})
		events := 0
		hits := rapid.SliceOfN(rapid.IntRange(-10, 60), 1, 30).Draw(rt, "hits")
		for _, h := range hits {
			var ev *world.DeathEvent
			if h < 0 {
				ev = a.SetHP(-h)
			} else {
				ev = a.TakeDamage(h)
			}
			if ev != nil {
				events++
			}
		}
		assert.LessOrEqual(rt, events, 1)
		assert.Equal(rt, events == 1, !a.IsAlive())
		if a.Fighter.HP() == 0 {
			assert.Equal(rt, 1, events, "reaching zero with an AI must kill")
		}
	})
}

func TestActor_NoDeathWithoutAI(t *testing.T) {
	a := newActor("Statue", combat.Config{HP: 5}, nil)
	assert.Nil(t, a.TakeDamage(10))
	assert.Equal(t, 0, a.Fighter.HP())
	assert.Equal(t, "Statue", a.Name)
}

func TestActor_SetHPZeroKills(t *testing.T) {
	a := newActor("Orc", combat.Config{HP: 5}, stubAI{})
	assert.Nil(t, a.SetHP(3))
	require.NotNil(t, a.SetHP(0))
	assert.Nil(t, a.SetHP(0))
}

func TestEntity_MoveAndDistance(t *testing.T) {
	e := world.Entity{X: 1, Y: 1}
	e.Move(2, 3)
	assert.Equal(t, 3, e.X)
	assert.Equal(t, 4, e.Y)
	assert.InDelta(t, 5.0, e.Distance(0, 0), 1e-9)
	e.Place(0, 0)
	assert.Zero(t, e.Distance(0, 0))
}

func TestDirection(t *testing.T) {
	for _, d := range world.StandardDirections {
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		assert.Equal(t, -dx, ox)
		assert.Equal(t, -dy, oy)
		back, ok := world.DirectionFromDelta(dx, dy)
		require.True(t, ok)
		assert.Equal(t, d, back)
	}
	_, ok := world.DirectionFromDelta(0, 0)
	assert.False(t, ok)
}

func TestRenderOrder_String(t *testing.T) {
	assert.Equal(t, "corpse", world.RenderCorpse.String())
	assert.Equal(t, "player", world.RenderPlayer.String())
	assert.Less(t, int(world.RenderCorpse), int(world.RenderItem))
	assert.Less(t, int(world.RenderActor), int(world.RenderPlayer))
}
