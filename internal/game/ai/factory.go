package ai

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/tombs/internal/game/world"
)

// State is the persistable description of a policy. Previous is only set for
// a confused policy and describes the policy it will restore. Path is the
// remaining route of a hostile policy that has lost sight of its target.
type State struct {
	Kind     string        `json:"kind"`
	Turns    int           `json:"turns,omitempty"`
	Previous *State        `json:"previous,omitempty"`
	Path     []world.Point `json:"path,omitempty"`
}

// Factory builds policies from their kind names.
type Factory struct {
	registry *Registry
}

// NewFactory returns a Factory. A nil registry disables "htn:" kinds.
func NewFactory(registry *Registry) *Factory {
	return &Factory{registry: registry}
}

// New builds the policy named kind for actor. The empty kind yields a nil
// policy, i.e. a corpse.
//
// Precondition: actor must not be nil.
// Postcondition: returns an error for unknown kinds and unregistered HTN domains.
func (f *Factory) New(kind string, actor *world.Actor) (world.AI, error) {
	switch {
	case kind == "":
		return nil, nil
	case kind == KindHostile:
		return NewHostile(actor), nil
	case kind == KindPlayerControlled:
		return PlayerControlled{}, nil
	case strings.HasPrefix(kind, htnPrefix):
		id := strings.TrimPrefix(kind, htnPrefix)
		if f.registry == nil {
			return nil, fmt.Errorf("ai.Factory: no planner registry for %q", kind)
		}
		p, ok := f.registry.PlannerFor(id)
		if !ok {
			return nil, fmt.Errorf("ai.Factory: unknown HTN domain %q", id)
		}
		return NewHTN(actor, p), nil
	case kind == KindConfused:
		return nil, fmt.Errorf("ai.Factory: %q needs a previous policy; use Restore", kind)
	default:
		return nil, fmt.Errorf("ai.Factory: unknown policy kind %q", kind)
	}
}

// Describe captures a policy for persistence; nil yields nil.
func Describe(policy world.AI) *State {
	if policy == nil {
		return nil
	}
	if c, ok := policy.(*ConfusedEnemy); ok {
		return &State{Kind: KindConfused, Turns: c.TurnsRemaining, Previous: Describe(c.Previous)}
	}
	if h, ok := policy.(*HostileEnemy); ok && len(h.path) > 0 {
		return &State{Kind: KindHostile, Path: append([]world.Point(nil), h.path...)}
	}
	return &State{Kind: policy.Kind()}
}

// Restore rebuilds a policy from its State; nil yields nil.
//
// Precondition: actor's position must already be set.
// Postcondition: a stored path must start next to actor and advance one
// square per step.
func (f *Factory) Restore(s *State, actor *world.Actor) (world.AI, error) {
	if s == nil {
		return nil, nil
	}
	if len(s.Path) > 0 && s.Kind != KindHostile {
		return nil, fmt.Errorf("ai.Factory: %q policy cannot carry a path", s.Kind)
	}
	if s.Kind == KindHostile {
		return restoreHostile(s.Path, actor)
	}
	if s.Kind != KindConfused {
		return f.New(s.Kind, actor)
	}
	if s.Turns < 0 {
		return nil, fmt.Errorf("ai.Factory: confused turns %d must not be negative", s.Turns)
	}
	prev, err := f.Restore(s.Previous, actor)
	if err != nil {
		return nil, err
	}
	return NewConfused(actor, prev, s.Turns), nil
}

func restoreHostile(path []world.Point, actor *world.Actor) (world.AI, error) {
	x, y := actor.X, actor.Y
	for i, p := range path {
		dx, dy := p.X-x, p.Y-y
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
			return nil, fmt.Errorf("ai.Factory: path step %d (%d, %d) is not adjacent to (%d, %d)", i, p.X, p.Y, x, y)
		}
		x, y = p.X, p.Y
	}
	h := NewHostile(actor)
	h.path = append([]world.Point(nil), path...)
	return h, nil
}
