package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tombs/internal/game/dice"
	"github.com/cory-johannsen/tombs/internal/scripting"
)

// runScript loads luaSrc into a fresh scope and calls hook.
func runScript(t *testing.T, mgr *scripting.Manager, luaSrc, hook string, args ...lua.LValue) lua.LValue {
	t.Helper()
	require.NoError(t, mgr.LoadString("test", "test.lua", luaSrc, 0))
	ret, err := mgr.CallHook("test", hook, args...)
	require.NoError(t, err)
	return ret
}

func TestEngineLog_WritesToLogger(t *testing.T) {
	mgr, logs := newTestManager(t)
	defer mgr.Close()
	runScript(t, mgr, `function go_log() engine.log.info("hello from lua") end`, "go_log")
	entries := logs.FilterMessage("hello from lua").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
}

func TestEngineLog_AllLevels(t *testing.T) {
	mgr, logs := newTestManager(t)
	defer mgr.Close()
	runScript(t, mgr, `
		function go_log()
			engine.log.debug("d")
			engine.log.info("i")
			engine.log.warn("w")
			engine.log.error("e")
		end
	`, "go_log")
	assert.Equal(t, zap.DebugLevel, logs.FilterMessage("d").All()[0].Level)
	assert.Equal(t, zap.InfoLevel, logs.FilterMessage("i").All()[0].Level)
	assert.Equal(t, zap.WarnLevel, logs.FilterMessage("w").All()[0].Level)
	assert.Equal(t, zap.ErrorLevel, logs.FilterMessage("e").All()[0].Level)
}

func TestEngineDice_Roll_ReturnsTable(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()
	ret := runScript(t, mgr, `
		function roll()
			local r = engine.dice.roll("2d6+3")
			assert(#r.dice == 2, "expected two dice")
			assert(r.modifier == 3, "expected modifier 3")
			return r.total
		end
	`, "roll")
	n, ok := ret.(lua.LNumber)
	require.True(t, ok)
	assert.GreaterOrEqual(t, int(n), 5)
	assert.LessOrEqual(t, int(n), 15)
}

func TestEngineDice_Roll_BadExpressionIsRuntimeError(t *testing.T) {
	mgr, logs := newTestManager(t)
	defer mgr.Close()
	ret := runScript(t, mgr, `function roll() return engine.dice.roll("banana") end`, "roll")
	assert.Equal(t, lua.LNil, ret)
	assert.Equal(t, 1, logs.FilterMessage("scripting: Lua runtime error").Len())
}

func TestEngineDice_D20_Fixed(t *testing.T) {
	core, _ := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	roller := dice.NewLoggedRoller(dice.NewFixedSource(17), logger)
	mgr := scripting.NewManager(roller, logger)
	defer mgr.Close()
	ret := runScript(t, mgr, `function d() return engine.dice.d20() end`, "d")
	assert.Equal(t, lua.LNumber(17), ret)
}

func TestProperty_DiceRoll_TotalEqualsDicePlusModifier(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()
	require.NoError(t, mgr.LoadString("test", "sum.lua", `
		function check(expr)
			local r = engine.dice.roll(expr)
			local sum = r.modifier
			for _, d in ipairs(r.dice) do sum = sum + d end
			return sum == r.total
		end
	`, 0))
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 6).Draw(rt, "count")
		sides := rapid.SampledFrom([]int{4, 6, 8, 10, 12, 20}).Draw(rt, "sides")
		mod := rapid.IntRange(0, 5).Draw(rt, "mod")
		expr := dice.Expression{Count: count, Sides: sides, Modifier: mod}.String()
		ret, err := mgr.CallHook("test", "check", lua.LString(expr))
		require.NoError(rt, err)
		assert.Equal(rt, lua.LTrue, ret)
	})
}

func TestEngineActor_Get_NilCallback_ReturnsNil(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()
	ret := runScript(t, mgr, `function g() return engine.actor.get("x") == nil end`, "g")
	assert.Equal(t, lua.LTrue, ret)
}

func TestEngineActor_Get_WithCallback(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()
	mgr.GetActor = func(uid string) *scripting.ActorInfo {
		if uid != "orc-1" {
			return nil
		}
		return &scripting.ActorInfo{UID: uid, Name: "Orc", HP: 4, MaxHP: 10, AC: 10, Adjacent: true, SeesPlayer: true}
	}
	ret := runScript(t, mgr, `
		function g(uid)
			local a = engine.actor.get(uid)
			if a == nil then return "none" end
			return a.name .. ":" .. a.hp .. "/" .. a.max_hp .. ":" .. tostring(a.adjacent)
		end
	`, "g", lua.LString("orc-1"))
	assert.Equal(t, lua.LString("Orc:4/10:true"), ret)

	ret, err := mgr.CallHook("test", "g", lua.LString("ghost"))
	require.NoError(t, err)
	assert.Equal(t, lua.LString("none"), ret)
}

func TestEngineActor_Player_WithCallback(t *testing.T) {
	mgr, _ := newTestManager(t)
	defer mgr.Close()
	mgr.GetPlayer = func() *scripting.ActorInfo {
		return &scripting.ActorInfo{UID: "p", Name: "Player", HP: 30, MaxHP: 30, IsPlayer: true}
	}
	ret := runScript(t, mgr, `function p() return engine.actor.player().is_player end`, "p")
	assert.Equal(t, lua.LTrue, ret)
}
