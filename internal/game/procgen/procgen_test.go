package procgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tombs/internal/game/ai"
	"github.com/cory-johannsen/tombs/internal/game/dice"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
	"github.com/cory-johannsen/tombs/internal/game/npc"
	"github.com/cory-johannsen/tombs/internal/game/procgen"
	"github.com/cory-johannsen/tombs/internal/game/world"
	"github.com/cory-johannsen/tombs/internal/scripting"
)

var smallParams = procgen.Params{Width: 40, Height: 30, MaxRooms: 8, RoomMinSize: 4, RoomMaxSize: 7}

// tb is satisfied by both *testing.T and *rapid.T.
type tb interface {
	require.TestingT
	Helper()
}

type fixture struct {
	templates *npc.Registry
	items     *inventory.Registry
	factory   *ai.Factory
}

func newFixture(t testing.TB) fixture {
	t.Helper()
	templates, err := npc.DefaultRegistry()
	require.NoError(t, err)
	items, err := inventory.DefaultRegistry()
	require.NoError(t, err)
	logger := zap.NewNop()
	mgr := scripting.NewManager(dice.NewLoggedRoller(dice.NewSeededSource(1), logger), logger)
	t.Cleanup(mgr.Close)
	reg, err := ai.LoadDefaultRegistry(mgr, 0)
	require.NoError(t, err)
	return fixture{templates: templates, items: items, factory: ai.NewFactory(reg)}
}

func (f fixture) generator(t tb, src dice.Source) *procgen.RoomsAndCorridors {
	t.Helper()
	tables, err := procgen.DefaultTables()
	require.NoError(t, err)
	g, err := procgen.NewRoomsAndCorridors(smallParams, tables, f.templates, f.items, f.factory, src, zap.NewNop())
	require.NoError(t, err)
	return g
}

func (f fixture) player(t tb, src dice.Source) *world.Actor {
	t.Helper()
	tmpl, _ := f.templates.Template(npc.PlayerID)
	p, err := npc.Spawn(tmpl, f.factory, src, 0, 0)
	require.NoError(t, err)
	return p
}

func TestGenerate_FloorInvariants(t *testing.T) {
	f := newFixture(t)
	src := dice.NewSeededSource(42)
	player := f.player(t, src)
	m, err := f.generator(t, src).Generate(1, player)
	require.NoError(t, err)

	require.NotEmpty(t, m.Actors)
	assert.Same(t, player, m.Actors[0])
	assert.True(t, m.Walkable(player.X, player.Y))
	assert.True(t, m.TileAt(m.Downstairs.X, m.Downstairs.Y).Stairs)
	assert.NoError(t, m.Validate())
}

func TestProperty_Generate_EverythingReachable(t *testing.T) {
	f := newFixture(t)
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		floor := rapid.IntRange(1, 8).Draw(rt, "floor")
		src := dice.NewSeededSource(seed)
		player := f.player(rt, src)
		m, err := f.generator(rt, src).Generate(floor, player)
		require.NoError(rt, err)

		seen := map[world.Point]bool{}
		for _, a := range m.Actors {
			pt := world.Point{X: a.X, Y: a.Y}
			if seen[pt] {
				rt.Fatalf("two actors share %v", pt)
			}
			seen[pt] = true
			if !m.Walkable(a.X, a.Y) {
				rt.Fatalf("%s stands in a wall at %v", a.Name, pt)
			}
			if !a.IsAlive() {
				rt.Fatalf("%s spawned dead", a.Name)
			}
		}
		for _, gi := range m.Items {
			if !m.Walkable(gi.X, gi.Y) {
				rt.Fatalf("%s lies in a wall", gi.Item.Name)
			}
		}
		if player.X != m.Downstairs.X || player.Y != m.Downstairs.Y {
			if ai.PathTo(m, player.X, player.Y, m.Downstairs.X, m.Downstairs.Y) == nil {
				rt.Fatal("stairs unreachable from the player")
			}
		}
	})
}

func TestGenerate_SameSeedSameLayout(t *testing.T) {
	f := newFixture(t)
	gen := func() *world.GameMap {
		src := dice.NewSeededSource(7)
		m, err := f.generator(t, src).Generate(3, f.player(t, src))
		require.NoError(t, err)
		return m
	}
	a, b := gen(), gen()
	assert.Equal(t, a.Tiles, b.Tiles)
	assert.Equal(t, a.Downstairs, b.Downstairs)
	require.Equal(t, len(a.Actors), len(b.Actors))
	for i := range a.Actors {
		assert.Equal(t, a.Actors[i].TemplateID, b.Actors[i].TemplateID)
		assert.Equal(t, a.Actors[i].X, b.Actors[i].X)
	}
}

func TestNewRoomsAndCorridors_RejectsUnknownIDs(t *testing.T) {
	f := newFixture(t)
	tables := procgen.Tables{
		Enemies: []procgen.Chance{{Floor: 0, ID: "dragon", Weight: 1}},
		Items:   []procgen.Chance{{Floor: 0, ID: "wand", Weight: 1}},
	}
	_, err := procgen.NewRoomsAndCorridors(smallParams, tables, f.templates, f.items, f.factory, dice.NewSeededSource(1), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dragon")
	assert.Contains(t, err.Error(), "wand")
}

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, procgen.DefaultParams().Validate())
	assert.Error(t, procgen.Params{Width: 5, Height: 5, MaxRooms: 1, RoomMinSize: 6, RoomMaxSize: 10}.Validate())
	assert.Error(t, procgen.Params{Width: 50, Height: 50, MaxRooms: 0, RoomMinSize: 6, RoomMaxSize: 4}.Validate())
}

func TestRoom_Geometry(t *testing.T) {
	r := procgen.NewRoom(2, 3, 6, 4)
	assert.Equal(t, world.Point{X: 5, Y: 5}, r.Center())
	assert.True(t, r.Intersects(procgen.NewRoom(8, 7, 3, 3)))
	assert.False(t, r.Intersects(procgen.NewRoom(9, 3, 3, 3)))
}

func TestMaxForFloor(t *testing.T) {
	tables, err := procgen.DefaultTables()
	require.NoError(t, err)
	cases := map[int]int{1: 2, 3: 2, 4: 3, 5: 3, 6: 5, 20: 5}
	for floor, want := range cases {
		assert.Equal(t, want, procgen.MaxForFloor(tables.MaxMonstersByFloor, floor), "floor %d", floor)
	}
	assert.Equal(t, 0, procgen.MaxForFloor(tables.MaxItemsByFloor, 0))
	assert.Equal(t, 2, procgen.MaxForFloor(tables.MaxItemsByFloor, 9))
}

func TestChooseAtRandom_WeightsByFloor(t *testing.T) {
	tables, err := procgen.DefaultTables()
	require.NoError(t, err)

	// Floor 1 only knows orcs.
	assert.Equal(t, []string{"orc", "orc"}, procgen.ChooseAtRandom(tables.Enemies, 2, 1, dice.NewSeededSource(3)))

	// Floor 7: orc 80, goblin 20, troll 60. A draw of 100 lands in the troll band.
	got := procgen.ChooseAtRandom(tables.Enemies, 1, 7, dice.NewFixedSource(101))
	assert.Equal(t, []string{"troll"}, got)
	got = procgen.ChooseAtRandom(tables.Enemies, 1, 7, dice.NewFixedSource(80))
	assert.Equal(t, []string{"orc"}, got)
	got = procgen.ChooseAtRandom(tables.Enemies, 1, 7, dice.NewFixedSource(81))
	assert.Equal(t, []string{"goblin"}, got)

	assert.Nil(t, procgen.ChooseAtRandom(nil, 3, 1, dice.NewSeededSource(1)))
	assert.Nil(t, procgen.ChooseAtRandom(tables.Enemies, 0, 1, dice.NewSeededSource(1)))
}

func TestParseTables_Invalid(t *testing.T) {
	_, err := procgen.ParseTables([]byte(`
max_items_by_floor:
  - {floor: 4, value: 1}
  - {floor: 1, value: 2}
items:
  - {floor: 0, id: "", weight: -1}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "increasing")
	assert.Contains(t, err.Error(), "id must not be empty")
}
