package world_test

import (
	"testing"

	"github.com/cory-johannsen/tombs/internal/game/combat"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
	"github.com/cory-johannsen/tombs/internal/game/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMap(w, h int) *world.GameMap {
	m := world.NewGameMap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetTile(x, y, world.FloorTile)
		}
	}
	return m
}

func TestGameMap_Bounds(t *testing.T) {
	m := world.NewGameMap(10, 5)
	assert.True(t, m.InBounds(0, 0))
	assert.True(t, m.InBounds(9, 4))
	assert.False(t, m.InBounds(10, 0))
	assert.False(t, m.InBounds(0, -1))
	assert.False(t, m.Walkable(3, 3))
	assert.False(t, m.Transparent(-1, 0))
	m.SetTile(3, 3, world.FloorTile)
	assert.True(t, m.Walkable(3, 3))
}

func TestGameMap_ActorLookups(t *testing.T) {
	m := openMap(10, 10)
	orc := newActor("Orc", combat.Config{HP: 5}, stubAI{})
	orc.Place(2, 2)
	troll := newActor("Troll", combat.Config{HP: 5}, stubAI{})
	troll.Place(3, 3)
	m.AddActor(orc)
	m.AddActor(troll)

	assert.Same(t, orc, m.BlockingActorAt(2, 2))
	assert.Same(t, troll, m.ActorAt(3, 3))
	assert.Nil(t, m.ActorAt(4, 4))
	assert.Equal(t, []*world.Actor{orc, troll}, m.LivingActors())

	require.NotNil(t, orc.TakeDamage(50))
	assert.Nil(t, m.BlockingActorAt(2, 2), "corpses do not block")
	assert.Nil(t, m.ActorAt(2, 2), "corpses are not living actors")
	assert.Equal(t, []*world.Actor{troll}, m.LivingActors())
	assert.Len(t, m.Actors, 2)

	assert.True(t, m.RemoveActor(orc))
	assert.False(t, m.RemoveActor(orc))
}

func TestGameMap_Items(t *testing.T) {
	m := openMap(5, 5)
	a := &world.GroundItem{X: 1, Y: 1, Item: &inventory.Item{Name: "a"}}
	b := &world.GroundItem{X: 1, Y: 1, Item: &inventory.Item{Name: "b"}}
	c := &world.GroundItem{X: 2, Y: 1, Item: &inventory.Item{Name: "c"}}
	m.AddItem(a)
	m.AddItem(b)
	m.AddItem(c)
	assert.Equal(t, []*world.GroundItem{a, b}, m.ItemsAt(1, 1))
	assert.True(t, m.RemoveItem(a))
	assert.Equal(t, []*world.GroundItem{b}, m.ItemsAt(1, 1))
	assert.False(t, m.RemoveItem(a))
}

func TestGameMap_Validate(t *testing.T) {
	m := openMap(5, 5)
	require.NoError(t, m.Validate())

	m.Visible.Set(1, 1, true)
	assert.Error(t, m.Validate(), "visible cell not explored")
	m.Explored.Set(1, 1, true)
	require.NoError(t, m.Validate())

	m.Downstairs = world.Point{X: 9, Y: 9}
	assert.Error(t, m.Validate())

	bad := openMap(5, 5)
	bad.Tiles = bad.Tiles[:3]
	assert.Error(t, bad.Validate())
}

func TestGrid(t *testing.T) {
	g := world.NewGrid(3, 2)
	g.Set(2, 1, true)
	g.Set(5, 5, true)
	assert.True(t, g.At(2, 1))
	assert.False(t, g.At(5, 5))
	assert.Equal(t, 1, g.Count())

	h := world.NewGrid(3, 2)
	assert.True(t, g.Covers(h))
	assert.False(t, h.Covers(g))
	assert.False(t, g.Covers(world.NewGrid(2, 2)))
	g.Clear()
	assert.Zero(t, g.Count())
}
