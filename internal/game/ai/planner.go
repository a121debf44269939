package ai

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// ScriptCaller evaluates precondition hooks. A missing hook yields (LNil, nil).
type ScriptCaller interface {
	CallHook(scope, hook string, args ...lua.LValue) (lua.LValue, error)
}

// PlannedAction is one operator with its target resolved to an actor UID.
// Target is empty when the operator has no target or it could not be resolved.
type PlannedAction struct {
	Action string
	Target string
}

// Planner turns one Domain into per-turn plans for a monster. Preconditions
// run in the Lua scope named scope.
type Planner struct {
	domain *Domain
	caller ScriptCaller
	scope  string
}

// NewPlanner constructs a Planner.
//
// Precondition: domain and caller must not be nil.
func NewPlanner(domain *Domain, caller ScriptCaller, scope string) *Planner {
	if domain == nil {
		panic("ai.NewPlanner: domain must not be nil")
	}
	if caller == nil {
		panic("ai.NewPlanner: caller must not be nil")
	}
	return &Planner{domain: domain, caller: caller, scope: scope}
}

// DomainID returns the ID of the planner's domain.
func (p *Planner) DomainID() string { return p.domain.ID }

// maxExpansions bounds decomposition so a recursive domain cannot loop forever.
const maxExpansions = 32

// Plan decomposes the domain's root task against state, depth first, and
// returns the operators it reaches in order. A task with no applicable method
// contributes nothing. Lua errors count as a failed precondition.
//
// Precondition: state and state.NPC must not be nil.
// Postcondition: the result is non-nil.
func (p *Planner) Plan(state *WorldState) ([]PlannedAction, error) {
	if state == nil || state.NPC == nil {
		return nil, fmt.Errorf("ai.Planner.Plan: state and state.NPC must not be nil")
	}

	plan := []PlannedAction{}
	// Stack top is the last element; subtasks are pushed in reverse.
	stack := []string{p.domain.RootTask()}
	for n := 0; len(stack) > 0 && n < maxExpansions; n++ {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if op, ok := p.domain.OperatorByID(id); ok {
			plan = append(plan, PlannedAction{Action: op.Action, Target: state.ResolveTarget(op.Target)})
			continue
		}
		m := p.choose(id, state)
		if m == nil {
			continue
		}
		for i := len(m.Subtasks) - 1; i >= 0; i-- {
			stack = append(stack, m.Subtasks[i])
		}
	}
	return plan, nil
}

// choose returns the first method for task whose precondition holds.
func (p *Planner) choose(task string, state *WorldState) *Method {
	for _, m := range p.domain.MethodsForTask(task) {
		if m.Precondition == "" {
			return m
		}
		ok, err := p.caller.CallHook(p.scope, m.Precondition, lua.LString(state.NPC.UID))
		if err == nil && ok == lua.LTrue {
			return m
		}
	}
	return nil
}
