package inventory

import (
	_ "embed"
	"fmt"
	"sort"
)

//go:embed content/items.yaml
var builtinItems []byte

// Registry holds item definitions indexed by ID.
type Registry struct {
	items map[string]*ItemDef
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*ItemDef)}
}

// DefaultRegistry returns a Registry holding the built-in potions, scrolls,
// weapons and armor.
//
// Postcondition: returns a populated Registry or an error if the embedded content is invalid.
func DefaultRegistry() (*Registry, error) {
	defs, err := LoadItemsFromBytes(builtinItems)
	if err != nil {
		return nil, fmt.Errorf("inventory: built-in items: %w", err)
	}
	r := NewRegistry()
	for _, d := range defs {
		if err := r.RegisterItem(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RegisterItem adds d to the registry.
//
// Precondition:  d must not be nil.
// Postcondition: Item(d.ID) returns (d, true); returns error if d.ID already registered.
func (r *Registry) RegisterItem(d *ItemDef) error {
	if _, exists := r.items[d.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterItem: item ID %q already registered", d.ID)
	}
	r.items[d.ID] = d
	return nil
}

// Override adds d, replacing any definition already registered under d.ID.
func (r *Registry) Override(d *ItemDef) {
	r.items[d.ID] = d
}

// Item returns the ItemDef for the given id and whether it was found.
func (r *Registry) Item(id string) (*ItemDef, bool) {
	d, ok := r.items[id]
	return d, ok
}

// AllItems returns every registered ItemDef sorted by ID.
func (r *Registry) AllItems() []*ItemDef {
	out := make([]*ItemDef, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NewItem instantiates the definition registered under id.
//
// Postcondition: returns a fresh Item or an error if id is unknown.
func (r *Registry) NewItem(id string) (*Item, error) {
	d, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("inventory: unknown item %q", id)
	}
	return NewItem(d)
}
