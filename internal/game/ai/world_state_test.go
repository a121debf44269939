package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tombs/internal/game/ai"
	"github.com/cory-johannsen/tombs/internal/game/combat"
	"github.com/cory-johannsen/tombs/internal/game/dice"
	"github.com/cory-johannsen/tombs/internal/testutil"
)

func TestWorldState_EnemiesOf_ReturnsOnlyOppositeKind(t *testing.T) {
	ws := &ai.WorldState{
		NPC: &ai.NPCState{UID: "n1", Kind: ai.CombatantNPC},
		Combatants: []*ai.CombatantState{
			{UID: "p1", Kind: ai.CombatantPlayer, HP: 20},
			{UID: "n1", Kind: ai.CombatantNPC, HP: 15},
			{UID: "n2", Kind: ai.CombatantNPC, HP: 10},
		},
	}
	enemies := ws.EnemiesOf("n1")
	require.Len(t, enemies, 1)
	assert.Equal(t, "p1", enemies[0].UID)
	allies := ws.AlliesOf("n1")
	require.Len(t, allies, 1)
	assert.Equal(t, "n2", allies[0].UID)
}

func TestWorldState_EnemiesOf_ExcludesDead(t *testing.T) {
	ws := &ai.WorldState{
		NPC: &ai.NPCState{UID: "n1", Kind: ai.CombatantNPC},
		Combatants: []*ai.CombatantState{
			{UID: "p1", Kind: ai.CombatantPlayer, HP: 0, Dead: true},
			{UID: "p2", Kind: ai.CombatantPlayer, HP: 20},
		},
	}
	enemies := ws.EnemiesOf("n1")
	require.Len(t, enemies, 1)
	assert.Equal(t, "p2", enemies[0].UID)
}

func TestWorldState_NearestEnemy_ByDistance(t *testing.T) {
	ws := &ai.WorldState{
		NPC: &ai.NPCState{UID: "n1", Kind: ai.CombatantNPC},
		Combatants: []*ai.CombatantState{
			{UID: "p1", Kind: ai.CombatantPlayer, HP: 30, Distance: 5},
			{UID: "p2", Kind: ai.CombatantPlayer, HP: 20, Distance: 2},
		},
	}
	nearest := ws.NearestEnemy("n1")
	require.NotNil(t, nearest)
	assert.Equal(t, "p2", nearest.UID)
	assert.Equal(t, "p2", ws.ResolveTarget("nearest_enemy"))
	assert.Equal(t, "n1", ws.ResolveTarget("self"))
	assert.Equal(t, "literal", ws.ResolveTarget("literal"))
}

func TestWorldState_WeakestEnemy_ReturnsLowestHP(t *testing.T) {
	ws := &ai.WorldState{
		NPC: &ai.NPCState{UID: "n1", Kind: ai.CombatantNPC},
		Combatants: []*ai.CombatantState{
			{UID: "p1", Kind: ai.CombatantPlayer, HP: 30, MaxHP: 30},
			{UID: "p2", Kind: ai.CombatantPlayer, HP: 5, MaxHP: 30},
		},
	}
	weakest := ws.WeakestEnemy("n1")
	require.NotNil(t, weakest)
	assert.Equal(t, "p2", weakest.UID)
	assert.True(t, ws.HasLivingEnemies("n1"))
}

func TestBuildState_DescribesFloor(t *testing.T) {
	eng := testutil.NewEngine(10, 10, 1, 1, dice.NewFixedSource(1))
	orc := eng.Spawn("Orc", combat.Config{HP: 10, BaseDamageDie: 1}, testutil.StillAI{}, 4, 5)
	troll := eng.Spawn("Troll", combat.Config{HP: 16, BaseDamageDie: 4}, testutil.StillAI{}, 4, 1)

	ws := ai.BuildState(eng, orc)
	assert.Equal(t, orc.ID, ws.NPC.UID)
	assert.Equal(t, 10, ws.NPC.MaxHP)
	require.Len(t, ws.Combatants, 3)
	assert.Equal(t, ai.CombatantPlayer, ws.Combatants[0].Kind)
	assert.Equal(t, 5.0, ws.Combatants[0].Distance)
	assert.Equal(t, troll.ID, ws.Combatants[2].UID)
	assert.Equal(t, eng.PlayerA.ID, ws.ResolveTarget("nearest_enemy"))
}

func TestProperty_WorldState_NearestEnemy_NilWhenNoEnemies(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 5).Draw(rt, "allies")
		ws := &ai.WorldState{NPC: &ai.NPCState{UID: "n0", Kind: ai.CombatantNPC}}
		for i := 0; i < n; i++ {
			ws.Combatants = append(ws.Combatants, &ai.CombatantState{
				UID:  string(rune('a' + i)),
				Kind: ai.CombatantNPC,
				HP:   rapid.IntRange(0, 20).Draw(rt, "hp"),
			})
		}
		if ws.NearestEnemy("n0") != nil {
			rt.Fatal("expected nil nearest enemy when no opponents")
		}
		if ws.ResolveTarget("weakest_enemy") != "" {
			rt.Fatal("expected empty target when no opponents")
		}
	})
}
