package npc

import (
	_ "embed"
	"fmt"
	"sort"
)

//go:embed content/templates.yaml
var builtinTemplates []byte

// Template IDs the engine relies on.
const (
	PlayerID = "player"
	OrcID    = "orc"
	TrollID  = "troll"
	GoblinID = "goblin"
)

// Registry holds actor templates indexed by ID.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// DefaultRegistry returns a Registry holding the built-in player and monsters.
//
// Postcondition: returns a populated Registry or an error if the embedded content is invalid.
func DefaultRegistry() (*Registry, error) {
	tmpls, err := LoadTemplatesFromBytes(builtinTemplates)
	if err != nil {
		return nil, fmt.Errorf("npc: built-in templates: %w", err)
	}
	r := NewRegistry()
	for _, t := range tmpls {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds t to the registry.
//
// Postcondition: returns error if t.ID is already registered.
func (r *Registry) Register(t *Template) error {
	if _, exists := r.templates[t.ID]; exists {
		return fmt.Errorf("npc: template %q already registered", t.ID)
	}
	r.templates[t.ID] = t
	return nil
}

// Override adds t, replacing any template with the same ID.
func (r *Registry) Override(t *Template) {
	r.templates[t.ID] = t
}

// Template returns the template with id.
func (r *Registry) Template(id string) (*Template, bool) {
	t, ok := r.templates[id]
	return t, ok
}

// IDs returns every registered template ID in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
