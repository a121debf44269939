package action_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cory-johannsen/tombs/internal/game/action"
	"github.com/cory-johannsen/tombs/internal/game/combat"
	"github.com/cory-johannsen/tombs/internal/game/dice"
	"github.com/cory-johannsen/tombs/internal/game/world"
	"github.com/cory-johannsen/tombs/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpossible_IsClassified(t *testing.T) {
	err := action.Impossible("That way is blocked.")
	assert.ErrorIs(t, err, action.ErrImpossible)
	assert.Equal(t, "That way is blocked.", err.Error())

	wrapped := fmt.Errorf("turn: %w", err)
	assert.ErrorIs(t, wrapped, action.ErrImpossible)
	assert.Equal(t, "That way is blocked.", action.Message(wrapped))

	assert.Empty(t, action.Message(errors.New("boom")))
	assert.NotErrorIs(t, errors.New("boom"), action.ErrImpossible)
}

func TestWait(t *testing.T) {
	e := testutil.NewEngine(5, 5, 2, 2, dice.NewSeededSource(1))
	assert.NoError(t, action.Wait{Actor: e.PlayerA}.Perform(e))
}

func TestMovement(t *testing.T) {
	e := testutil.NewEngine(5, 5, 2, 2, dice.NewSeededSource(1))
	p := e.PlayerA

	require.NoError(t, action.Movement{Actor: p, DX: 1, DY: 0}.Perform(e))
	assert.Equal(t, 3, p.X)

	e.GameMap.SetTile(4, 2, world.WallTile)
	err := action.Movement{Actor: p, DX: 1}.Perform(e)
	assert.ErrorIs(t, err, action.ErrImpossible)
	assert.Equal(t, 3, p.X)

	p.Place(0, 0)
	assert.ErrorIs(t, action.Movement{Actor: p, DX: -1}.Perform(e), action.ErrImpossible)

	e.Spawn("Orc", combat.Config{HP: 5}, testutil.StillAI{}, 1, 0)
	assert.ErrorIs(t, action.Movement{Actor: p, DX: 1}.Perform(e), action.ErrImpossible)
}

func TestMelee_HitKillsAndResolvesDeath(t *testing.T) {
	// d20 of 20 always hits; damage die shows 1, plus StrMod 0.
	e := testutil.NewEngine(5, 5, 2, 2, dice.NewFixedSource(20, 1))
	orc := e.Spawn("Orc", combat.Config{HP: 1}, testutil.StillAI{}, 3, 2)
	orc.Level.XPGiven = 35

	require.NoError(t, action.Melee{Actor: e.PlayerA, DX: 1}.Perform(e))
	require.Len(t, e.Deaths, 1)
	assert.Same(t, orc, e.Deaths[0].Actor)
	assert.False(t, orc.IsAlive())
	assert.Equal(t, 35, e.PlayerA.Level.CurrentXP)

	msgs := e.MsgLog.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Player attacks Orc for 1 hit points.", msgs[0].Text)
	assert.Equal(t, "Orc is dead!", msgs[1].Text)
}

func TestMelee_MissLeavesTargetUntouched(t *testing.T) {
	e := testutil.NewEngine(5, 5, 2, 2, dice.NewFixedSource(1))
	orc := e.Spawn("Orc", combat.Config{HP: 5}, testutil.StillAI{}, 3, 2)
	require.NoError(t, action.Melee{Actor: e.PlayerA, DX: 1}.Perform(e))
	assert.Equal(t, 5, orc.Fighter.HP())
	assert.Equal(t, "Player attacks Orc but misses.", e.MsgLog.Messages()[0].Text)
}

func TestMelee_NoTarget(t *testing.T) {
	e := testutil.NewEngine(5, 5, 2, 2, dice.NewSeededSource(1))
	err := action.Melee{Actor: e.PlayerA, DX: 1}.Perform(e)
	assert.ErrorIs(t, err, action.ErrImpossible)
	assert.Equal(t, "Nothing to attack.", action.Message(err))
}

func TestBump_AttacksOrMoves(t *testing.T) {
	// Natural 20, then the player's 1d1 unarmed die.
	e := testutil.NewEngine(5, 5, 2, 2, dice.NewFixedSource(20, 1))
	orc := e.Spawn("Orc", combat.Config{HP: 10}, testutil.StillAI{}, 3, 2)

	require.NoError(t, action.Toward(e.PlayerA, world.East).Perform(e))
	assert.Equal(t, 9, orc.Fighter.HP())
	assert.Equal(t, 2, e.PlayerA.X, "attacking does not move")

	require.NoError(t, action.Toward(e.PlayerA, world.South).Perform(e))
	assert.Equal(t, 3, e.PlayerA.Y)
}

func TestTakeStairs(t *testing.T) {
	e := testutil.NewEngine(5, 5, 2, 2, dice.NewSeededSource(1))
	e.GameMap.Downstairs = world.Point{X: 4, Y: 4}

	err := action.TakeStairs{Actor: e.PlayerA}.Perform(e)
	assert.ErrorIs(t, err, action.ErrImpossible)
	assert.Zero(t, e.Descents)

	e.PlayerA.Place(4, 4)
	require.NoError(t, action.TakeStairs{Actor: e.PlayerA}.Perform(e))
	assert.Equal(t, 1, e.Descents)

	boom := errors.New("generator failed")
	e.DescendFn = func() error { return boom }
	assert.ErrorIs(t, action.TakeStairs{Actor: e.PlayerA}.Perform(e), boom)
}
