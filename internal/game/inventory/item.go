package inventory

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/tombs/internal/game/color"
	"github.com/cory-johannsen/tombs/internal/game/dice"
)

// EquippableDef is the YAML form of an Equippable. DamageDice is a plain
// "NdS" expression; modifiers belong in PowerBonus.
type EquippableDef struct {
	Type         EquipmentType `yaml:"type"`
	PowerBonus   int           `yaml:"power_bonus"`
	DefenseBonus int           `yaml:"defense_bonus"`
	DamageDice   string        `yaml:"damage_dice"`
}

// ItemDef defines the static properties of an item loaded from YAML.
//
// Invariant: at most one of Equippable and Consumable is set.
type ItemDef struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name"`
	Glyph      string         `yaml:"glyph"`
	Color      color.Color    `yaml:"color"`
	Equippable *EquippableDef `yaml:"equippable"`
	Consumable *Consumable    `yaml:"consumable"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid; otherwise every violation is reported.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if len([]rune(d.Glyph)) != 1 {
		errs = append(errs, fmt.Errorf("Glyph must be a single character; got %q", d.Glyph))
	}
	if d.Equippable != nil && d.Consumable != nil {
		errs = append(errs, errors.New("an item cannot be both equippable and consumable"))
	}
	if d.Equippable != nil {
		if _, err := d.Equippable.build(); err != nil {
			errs = append(errs, err)
		}
	}
	if d.Consumable != nil {
		if err := d.Consumable.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q validation failed: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

func (d *EquippableDef) build() (Equippable, error) {
	e := NewEquippable(d.Type)
	e.PowerBonus = d.PowerBonus
	e.DefenseBonus = d.DefenseBonus
	if d.DamageDice != "" {
		expr, err := dice.Parse(d.DamageDice)
		if err != nil {
			return Equippable{}, err
		}
		if expr.Modifier != 0 || expr.KeepHighest != 0 {
			return Equippable{}, fmt.Errorf("damage_dice %q must be a plain NdS expression", d.DamageDice)
		}
		e.DamageDiceNum = expr.Count
		e.DamageDiceSides = expr.Sides
	}
	return e, e.Validate()
}

// Item is a concrete item instance, on the floor or in an inventory.
type Item struct {
	ID         string      `json:"id"`
	DefID      string      `json:"def_id"`
	Name       string      `json:"name"`
	Glyph      rune        `json:"glyph"`
	Color      color.Color `json:"color"`
	Equippable *Equippable `json:"equippable,omitempty"`
	Consumable *Consumable `json:"consumable,omitempty"`
}

// NewItem instantiates d with a fresh instance ID.
//
// Precondition: d passed Validate.
func NewItem(d *ItemDef) (*Item, error) {
	it := &Item{
		ID:    uuid.NewString(),
		DefID: d.ID,
		Name:  d.Name,
		Glyph: []rune(d.Glyph)[0],
		Color: d.Color,
	}
	if d.Equippable != nil {
		e, err := d.Equippable.build()
		if err != nil {
			return nil, fmt.Errorf("inventory: NewItem %q: %w", d.ID, err)
		}
		it.Equippable = &e
	}
	if d.Consumable != nil {
		c := *d.Consumable
		it.Consumable = &c
	}
	return it, nil
}

// Validate checks the item's equippable and consumable parts.
func (it *Item) Validate() error {
	var errs []error
	if it.Equippable != nil {
		if err := it.Equippable.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if it.Consumable != nil {
		if err := it.Consumable.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q: %w", it.ID, errors.Join(errs...))
	}
	return nil
}

// Clone returns a deep copy of it; nil yields nil.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	c := *it
	if it.Equippable != nil {
		e := *it.Equippable
		c.Equippable = &e
	}
	if it.Consumable != nil {
		cons := *it.Consumable
		c.Consumable = &cons
	}
	return &c
}

// LoadItemsFromBytes parses one or more YAML documents, each an ItemDef.
//
// Postcondition: returns every valid ItemDef or the first error encountered.
func LoadItemsFromBytes(data []byte) ([]*ItemDef, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var defs []*ItemDef
	for {
		var d ItemDef
		err := dec.Decode(&d)
		if errors.Is(err, io.EOF) {
			return defs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("inventory: parsing item: %w", err)
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		defs = append(defs, &d)
	}
}

// LoadItems reads all *.yaml and *.yml files from dir and returns the
// validated item definitions they contain.
//
// Precondition: dir is a readable directory path.
func LoadItems(dir string) ([]*ItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var items []*ItemDef
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		defs, err := LoadItemsFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: invalid item in %q: %w", path, err)
		}
		items = append(items, defs...)
	}
	return items, nil
}
