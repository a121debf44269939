// Package npc provides actor templates: the YAML archetypes from which the
// player and every monster are spawned.
package npc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/tombs/internal/game/character"
	"github.com/cory-johannsen/tombs/internal/game/color"
	"github.com/cory-johannsen/tombs/internal/game/combat"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
)

// Template defines a reusable actor archetype loaded from YAML.
type Template struct {
	ID    string      `yaml:"id"`
	Name  string      `yaml:"name"`
	Glyph string      `yaml:"glyph"`
	Color color.Color `yaml:"color"`
	// Player marks the template the player is spawned from; it renders above
	// everything else.
	Player bool `yaml:"player"`
	// Abilities defaults to all 10s when omitted.
	Abilities         *character.AbilityScores `yaml:"abilities"`
	Fighter           combat.Config            `yaml:"fighter"`
	LevelUpBase       int                      `yaml:"level_up_base"`
	XPGiven           int                      `yaml:"xp_given"`
	InventoryCapacity int                      `yaml:"inventory_capacity"`
	// AI names the policy, e.g. "hostile", "player" or "htn:cautious".
	AI   string               `yaml:"ai"`
	Loot *inventory.LootTable `yaml:"loot"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff every field is usable by Spawn; otherwise
// returns every violation joined.
func (t *Template) Validate() error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if t.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if utf8.RuneCountInString(t.Glyph) != 1 {
		errs = append(errs, fmt.Errorf("glyph %q must be exactly one character", t.Glyph))
	}
	if t.Fighter.HitDice <= 0 && t.Fighter.HP <= 0 {
		errs = append(errs, errors.New("fighter needs hit_dice > 0 or hp > 0"))
	}
	if t.Fighter.HitDice < 0 || t.Fighter.HP < 0 || t.Fighter.ArmorValue < 0 || t.Fighter.BaseDamageDie < 0 {
		errs = append(errs, errors.New("fighter values must not be negative"))
	}
	if t.LevelUpBase < 0 || t.XPGiven < 0 {
		errs = append(errs, errors.New("level_up_base and xp_given must not be negative"))
	}
	if t.InventoryCapacity < 0 {
		errs = append(errs, errors.New("inventory_capacity must not be negative"))
	}
	if t.AI == "" {
		errs = append(errs, errors.New("ai must not be empty"))
	}
	if t.Loot != nil {
		if err := t.Loot.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("npc template %q: %w", t.ID, errors.Join(errs...))
	}
	return nil
}

// LoadTemplateFromBytes parses a single actor template from raw YAML bytes.
//
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplatesFromBytes parses one or more YAML documents, each a Template.
func LoadTemplatesFromBytes(data []byte) ([]*Template, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []*Template
	for {
		var tmpl Template
		err := dec.Decode(&tmpl)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parsing template YAML: %w", err)
		}
		if err := tmpl.Validate(); err != nil {
			return nil, err
		}
		out = append(out, &tmpl)
	}
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading npc dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpls, err := LoadTemplatesFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpls...)
	}
	return templates, nil
}
