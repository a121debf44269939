package npc_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tombs/internal/game/ai"
	"github.com/cory-johannsen/tombs/internal/game/color"
	"github.com/cory-johannsen/tombs/internal/game/dice"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
	"github.com/cory-johannsen/tombs/internal/game/npc"
	"github.com/cory-johannsen/tombs/internal/game/world"
)

const ratYAML = `
id: rat
name: Giant Rat
glyph: r
color: [127, 127, 0]
fighter:
  hp: 4
  base_damage_die: 2
xp_given: 5
ai: hostile
`

func TestLoadTemplateFromBytes_Valid(t *testing.T) {
	tmpl, err := npc.LoadTemplateFromBytes([]byte(ratYAML))
	require.NoError(t, err)
	assert.Equal(t, "rat", tmpl.ID)
	assert.Equal(t, color.Color{R: 127, G: 127}, tmpl.Color)
	assert.Equal(t, 4, tmpl.Fighter.HP)
	assert.Nil(t, tmpl.Abilities)
}

func TestTemplate_Validate_CollectsViolations(t *testing.T) {
	tmpl := &npc.Template{Glyph: "ab"}
	err := tmpl.Validate()
	require.Error(t, err)
	for _, want := range []string{"id must not be empty", "name must not be empty", "glyph", "hit_dice", "ai must not be empty"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestTemplate_Validate_BadLoot(t *testing.T) {
	tmpl, err := npc.LoadTemplateFromBytes([]byte(ratYAML))
	require.NoError(t, err)
	tmpl.Loot = &inventory.LootTable{Items: []inventory.ItemDrop{{ItemID: "health_potion", Chance: 2, MinQty: 1, MaxQty: 1}}}
	assert.ErrorContains(t, tmpl.Validate(), "chance")
}

func TestLoadTemplateFromBytes_BadYAML(t *testing.T) {
	_, err := npc.LoadTemplateFromBytes([]byte("id: [unterminated"))
	assert.Error(t, err)
}

func TestLoadTemplates_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rat.yaml"), []byte(ratYAML), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a template"), 0644))
	tmpls, err := npc.LoadTemplates(dir)
	require.NoError(t, err)
	require.Len(t, tmpls, 1)
	assert.Equal(t, "Giant Rat", tmpls[0].Name)
}

func TestDefaultRegistry_MatchesBuiltIns(t *testing.T) {
	reg, err := npc.DefaultRegistry()
	require.NoError(t, err)
	assert.Equal(t, []string{"goblin", "orc", "player", "troll"}, reg.IDs())

	player, ok := reg.Template(npc.PlayerID)
	require.True(t, ok)
	assert.True(t, player.Player)
	assert.Equal(t, 10, player.Fighter.HitDice)
	assert.Equal(t, 200, player.LevelUpBase)
	assert.Equal(t, 26, player.InventoryCapacity)
	assert.Equal(t, 18, player.Abilities.Strength)

	orc, _ := reg.Template(npc.OrcID)
	assert.Equal(t, 2, orc.Fighter.HitDice)
	assert.Equal(t, 2, orc.Fighter.BaseDamageDie)
	assert.Equal(t, 35, orc.XPGiven)
	assert.Equal(t, 12, orc.Abilities.Strength)

	troll, _ := reg.Template(npc.TrollID)
	assert.Equal(t, 16, troll.Fighter.HP)
	assert.Equal(t, 2, troll.Fighter.ArmorValue)
	assert.Equal(t, 4, troll.Fighter.BaseDamageDie)
	assert.Equal(t, 100, troll.XPGiven)
}

func TestRegistry_RegisterCollision(t *testing.T) {
	reg := npc.NewRegistry()
	tmpl, err := npc.LoadTemplateFromBytes([]byte(ratYAML))
	require.NoError(t, err)
	require.NoError(t, reg.Register(tmpl))
	assert.Error(t, reg.Register(tmpl))

	changed := *tmpl
	changed.Name = "Rat King"
	reg.Override(&changed)
	got, _ := reg.Template("rat")
	assert.Equal(t, "Rat King", got.Name)
}

func TestSpawn_Troll(t *testing.T) {
	reg, err := npc.DefaultRegistry()
	require.NoError(t, err)
	troll, _ := reg.Template(npc.TrollID)

	a, err := npc.Spawn(troll, ai.NewFactory(nil), dice.NewFixedSource(1), 3, 4)
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Troll", a.Name)
	assert.Equal(t, 'T', a.Glyph)
	assert.Equal(t, 3, a.X)
	assert.Equal(t, 4, a.Y)
	assert.True(t, a.BlocksMovement)
	assert.Equal(t, world.RenderActor, a.RenderOrder)
	assert.Equal(t, 16, a.Fighter.MaxHP)
	assert.Equal(t, 16, a.Fighter.HP())
	assert.Equal(t, 12, a.Fighter.ArmorClass())
	assert.Equal(t, 100, a.Level.XPGiven)
	assert.Equal(t, ai.KindHostile, a.AI.Kind())
	assert.True(t, a.IsAlive())
}

func TestSpawn_PlayerRollsHitDice(t *testing.T) {
	reg, err := npc.DefaultRegistry()
	require.NoError(t, err)
	tmpl, _ := reg.Template(npc.PlayerID)

	a, err := npc.Spawn(tmpl, ai.NewFactory(nil), dice.NewFixedSource(8), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 80, a.Fighter.MaxHP)
	assert.Equal(t, world.RenderPlayer, a.RenderOrder)
	assert.Equal(t, 26, a.Inventory.Capacity)
	assert.Equal(t, ai.KindPlayerControlled, a.AI.Kind())
}

func TestSpawn_UnknownAIFails(t *testing.T) {
	tmpl, err := npc.LoadTemplateFromBytes([]byte(ratYAML))
	require.NoError(t, err)
	tmpl.AI = "htn:missing"
	_, err = npc.Spawn(tmpl, ai.NewFactory(ai.NewRegistry()), dice.NewFixedSource(1), 0, 0)
	assert.Error(t, err)
}

func TestSpawn_CopiesLoot(t *testing.T) {
	reg, err := npc.DefaultRegistry()
	require.NoError(t, err)
	tmpl, _ := reg.Template(npc.GoblinID)
	tmpl2 := *tmpl
	tmpl2.AI = ai.KindHostile

	a, err := npc.Spawn(&tmpl2, ai.NewFactory(nil), dice.NewFixedSource(1), 0, 0)
	require.NoError(t, err)
	require.Len(t, a.Loot.Items, 1)
	a.Loot.Items[0].Chance = 1
	assert.Equal(t, 0.25, tmpl.Loot.Items[0].Chance)
}

func TestProperty_Spawn_HitDiceWithinBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hd := rapid.IntRange(1, 12).Draw(rt, "hit_dice")
		seed := rapid.Int64().Draw(rt, "seed")
		tmpl := &npc.Template{ID: "x", Name: "X", Glyph: "x", AI: ai.KindHostile}
		tmpl.Fighter.HitDice = hd
		require.NoError(rt, tmpl.Validate())

		a, err := npc.Spawn(tmpl, ai.NewFactory(nil), dice.NewSeededSource(seed), 0, 0)
		require.NoError(rt, err)
		if a.Fighter.MaxHP < hd || a.Fighter.MaxHP > hd*8 {
			rt.Fatalf("MaxHP %d outside [%d, %d]", a.Fighter.MaxHP, hd, hd*8)
		}
	})
}
