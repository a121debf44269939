package procgen

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/tombs/internal/game/dice"
)

//go:embed content/tables.yaml
var builtinTables []byte

// FloorValue is a value that applies from Floor downwards until a deeper
// entry replaces it.
type FloorValue struct {
	Floor int `yaml:"floor"`
	Value int `yaml:"value"`
}

// Chance weights an item or template ID from Floor downwards. A deeper entry
// for the same ID replaces the weight.
type Chance struct {
	Floor  int    `yaml:"floor"`
	ID     string `yaml:"id"`
	Weight int    `yaml:"weight"`
}

// Tables controls how many things are placed per room and which ones.
type Tables struct {
	MaxItemsByFloor    []FloorValue `yaml:"max_items_by_floor"`
	MaxMonstersByFloor []FloorValue `yaml:"max_monsters_by_floor"`
	Items              []Chance     `yaml:"items"`
	Enemies            []Chance     `yaml:"enemies"`
}

// DefaultTables returns the built-in spawn tables.
func DefaultTables() (Tables, error) {
	return ParseTables(builtinTables)
}

// ParseTables decodes and validates YAML spawn tables.
func ParseTables(data []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("procgen: parsing tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

// Validate checks that the tables are usable.
//
// Postcondition: returns every violation joined, or nil.
func (t Tables) Validate() error {
	var errs []error
	for name, fv := range map[string][]FloorValue{
		"max_items_by_floor":    t.MaxItemsByFloor,
		"max_monsters_by_floor": t.MaxMonstersByFloor,
	} {
		for i, v := range fv {
			if v.Floor < 0 || v.Value < 0 {
				errs = append(errs, fmt.Errorf("%s[%d]: floor and value must not be negative", name, i))
			}
			if i > 0 && v.Floor <= fv[i-1].Floor {
				errs = append(errs, fmt.Errorf("%s[%d]: floors must be increasing", name, i))
			}
		}
	}
	for name, cs := range map[string][]Chance{"items": t.Items, "enemies": t.Enemies} {
		for i, c := range cs {
			if c.ID == "" {
				errs = append(errs, fmt.Errorf("%s[%d]: id must not be empty", name, i))
			}
			if c.Floor < 0 || c.Weight < 0 {
				errs = append(errs, fmt.Errorf("%s[%d]: floor and weight must not be negative", name, i))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("procgen: tables: %w", errors.Join(errs...))
	}
	return nil
}

// MaxForFloor returns the value of the deepest entry at or above floor, or 0.
func MaxForFloor(values []FloorValue, floor int) int {
	current := 0
	for _, v := range values {
		if v.Floor > floor {
			break
		}
		current = v.Value
	}
	return current
}

// weighted is one candidate with its effective weight.
type weighted struct {
	id     string
	weight int
}

// effectiveWeights folds chances down to floor, later entries for an ID
// replacing earlier ones. The result is ordered by first appearance.
func effectiveWeights(chances []Chance, floor int) []weighted {
	sorted := append([]Chance(nil), chances...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Floor < sorted[j].Floor })

	index := make(map[string]int)
	var out []weighted
	for _, c := range sorted {
		if c.Floor > floor {
			break
		}
		if i, ok := index[c.ID]; ok {
			out[i].weight = c.Weight
			continue
		}
		index[c.ID] = len(out)
		out = append(out, weighted{id: c.ID, weight: c.Weight})
	}
	return out
}

// ChooseAtRandom draws n IDs with replacement, weighted by the chances in
// effect on floor. It returns nil when nothing has positive weight.
func ChooseAtRandom(chances []Chance, n, floor int, src dice.Source) []string {
	candidates := effectiveWeights(chances, floor)
	total := 0
	for _, c := range candidates {
		total += c.weight
	}
	if total <= 0 || n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		r := src.Intn(total)
		for _, c := range candidates {
			if r < c.weight {
				out = append(out, c.id)
				break
			}
			r -= c.weight
		}
	}
	return out
}
