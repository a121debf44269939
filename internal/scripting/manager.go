package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tombs/internal/game/dice"
)

// GlobalScope is the reserved key for shared scripts loaded via LoadGlobal.
// CallHook falls back to this VM when no scope VM is found.
const GlobalScope = "__global__"

// ActorInfo is a snapshot of an actor passed to Lua as a table.
type ActorInfo struct {
	UID        string
	Name       string
	HP         int
	MaxHP      int
	AC         int
	X, Y       int
	Distance   float64 // Euclidean distance to the player
	Adjacent   bool    // within one step of the player
	SeesPlayer bool    // standing in the player's field of view
	IsPlayer   bool
}

type scopeVM struct {
	L     *lua.LState
	limit int
}

// Manager owns one sandboxed LState per scope and exposes hook dispatch.
//
// Manager is safe for concurrent use; calls into the same VM are serialized.
type Manager struct {
	mu     sync.Mutex
	vms    map[string]*scopeVM
	roller *dice.Roller
	logger *zap.Logger

	// Injected after construction. nil = engine.actor.* returns nil.
	GetActor  func(uid string) *ActorInfo
	GetPlayer func() *ActorInfo
}

// NewManager creates a Manager.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no VMs.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		vms:    make(map[string]*scopeVM),
		roller: roller,
		logger: logger,
	}
}

// LoadScope creates a sandboxed VM for scope, registers the engine.* modules,
// then executes every *.lua file in scriptDir in lexicographic order.
//
// Precondition: scope must be non-empty; scriptDir must be a readable directory.
// Postcondition: the scope VM is registered, replacing any previous one.
func (m *Manager) LoadScope(scope, scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, scope, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	return m.load(scope, instLimit, func(L *lua.LState) error {
		for _, path := range luaFiles {
			if err := L.DoFile(path); err != nil {
				return fmt.Errorf("scripting: loading %q for %q: %w", path, scope, err)
			}
		}
		return nil
	})
}

// LoadGlobal loads scriptDir into the GlobalScope VM.
func (m *Manager) LoadGlobal(scriptDir string, instLimit int) error {
	return m.LoadScope(GlobalScope, scriptDir, instLimit)
}

// LoadString executes src in a fresh VM for scope. name labels errors.
//
// Postcondition: the scope VM is registered, replacing any previous one.
func (m *Manager) LoadString(scope, name, src string, instLimit int) error {
	return m.load(scope, instLimit, func(L *lua.LState) error {
		if err := L.DoString(src); err != nil {
			return fmt.Errorf("scripting: loading %q for %q: %w", name, scope, err)
		}
		return nil
	})
}

func (m *Manager) load(scope string, instLimit int, run func(L *lua.LState) error) error {
	L := NewSandboxedState(instLimit)
	m.RegisterModules(L)
	if err := run(L); err != nil {
		L.Close()
		return err
	}
	L.RemoveContext()

	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.vms[scope]; ok {
		old.L.Close()
	}
	m.vms[scope] = &scopeVM{L: L, limit: instLimit}
	return nil
}

// HasScope reports whether a VM is registered for scope.
func (m *Manager) HasScope(scope string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.vms[scope]
	return ok
}

// CallHook calls the named Lua global function in scope's VM. If the scope
// has no VM, the GlobalScope VM is tried as a fallback. Returns (LNil, nil) if
// the hook is not defined or no VM exists. Lua runtime errors, including an
// exhausted instruction budget, are logged at Warn level and never propagated.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(scope, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vm, ok := m.vms[scope]
	if !ok {
		vm = m.vms[GlobalScope]
	}
	if vm == nil {
		m.logger.Info("scripting: no VM for scope",
			zap.String("scope", scope),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	fn := vm.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	cancel := ResetInstructionBudget(vm.L, vm.limit)
	defer func() {
		cancel()
		vm.L.RemoveContext()
	}()

	if err := vm.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("scope", scope),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := vm.L.Get(-1)
	vm.L.Pop(1)
	return ret, nil
}

// Close releases every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for scope, vm := range m.vms {
		vm.L.Close()
		delete(m.vms, scope)
	}
}
