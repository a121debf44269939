package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules installs the engine table into L:
//
//	engine.log.debug/info/warn/error(msg)
//	engine.dice.roll(expr) -> {total, modifier, dice = {...}}
//	engine.dice.d20() -> number
//	engine.actor.get(uid) -> actor table or nil
//	engine.actor.player() -> actor table or nil
//
// Precondition: L must be from NewSandboxedState.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L))
	L.SetField(engine, "dice", m.diceModule(L))
	L.SetField(engine, "actor", m.actorModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}
	for name, fn := range levels {
		logFn := fn
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			logFn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	return mod
}

func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "roll", L.NewFunction(func(L *lua.LState) int {
		res, err := m.roller.RollExpr(L.CheckString(1))
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		t := L.NewTable()
		L.SetField(t, "total", lua.LNumber(res.Total()))
		L.SetField(t, "modifier", lua.LNumber(res.Modifier))
		rolled := L.NewTable()
		for _, d := range res.Dice {
			rolled.Append(lua.LNumber(d))
		}
		L.SetField(t, "dice", rolled)
		L.Push(t)
		return 1
	}))
	L.SetField(mod, "d20", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(m.roller.D20()))
		return 1
	}))
	return mod
}

func (m *Manager) actorModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "get", L.NewFunction(func(L *lua.LState) int {
		uid := L.CheckString(1)
		if m.GetActor == nil {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(actorToTable(L, m.GetActor(uid)))
		return 1
	}))
	L.SetField(mod, "player", L.NewFunction(func(L *lua.LState) int {
		if m.GetPlayer == nil {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(actorToTable(L, m.GetPlayer()))
		return 1
	}))
	return mod
}

// actorToTable converts info to a Lua table; nil converts to LNil.
func actorToTable(L *lua.LState, info *ActorInfo) lua.LValue {
	if info == nil {
		return lua.LNil
	}
	t := L.NewTable()
	L.SetField(t, "uid", lua.LString(info.UID))
	L.SetField(t, "name", lua.LString(info.Name))
	L.SetField(t, "hp", lua.LNumber(info.HP))
	L.SetField(t, "max_hp", lua.LNumber(info.MaxHP))
	L.SetField(t, "ac", lua.LNumber(info.AC))
	L.SetField(t, "x", lua.LNumber(info.X))
	L.SetField(t, "y", lua.LNumber(info.Y))
	L.SetField(t, "distance", lua.LNumber(info.Distance))
	L.SetField(t, "adjacent", lua.LBool(info.Adjacent))
	L.SetField(t, "sees_player", lua.LBool(info.SeesPlayer))
	L.SetField(t, "is_player", lua.LBool(info.IsPlayer))
	return t
}
