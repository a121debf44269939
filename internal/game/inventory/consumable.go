package inventory

import (
	"errors"
	"fmt"
)

// ConsumableKind selects the effect a consumable applies when used.
type ConsumableKind string

const (
	ConsumableHealing   ConsumableKind = "healing"
	ConsumableLightning ConsumableKind = "lightning"
	ConsumableFireball  ConsumableKind = "fireball"
	ConsumableConfusion ConsumableKind = "confusion"
)

// Consumable describes a single-use item effect. Only the fields relevant to
// Kind are meaningful.
type Consumable struct {
	Kind   ConsumableKind `yaml:"kind" json:"kind"`
	Amount int            `yaml:"amount,omitempty" json:"amount,omitempty"` // healing
	Damage int            `yaml:"damage,omitempty" json:"damage,omitempty"` // lightning, fireball
	Range  int            `yaml:"range,omitempty" json:"range,omitempty"`   // lightning
	Radius int            `yaml:"radius,omitempty" json:"radius,omitempty"` // fireball
	Turns  int            `yaml:"turns,omitempty" json:"turns,omitempty"`   // confusion
}

// NeedsTarget reports whether using the consumable requires a target cell.
func (c Consumable) NeedsTarget() bool {
	return c.Kind == ConsumableFireball || c.Kind == ConsumableConfusion
}

// Validate checks that the fields required by Kind are positive.
func (c Consumable) Validate() error {
	var errs []error
	switch c.Kind {
	case ConsumableHealing:
		if c.Amount <= 0 {
			errs = append(errs, errors.New("healing amount must be > 0"))
		}
	case ConsumableLightning:
		if c.Damage <= 0 {
			errs = append(errs, errors.New("lightning damage must be > 0"))
		}
		if c.Range <= 0 {
			errs = append(errs, errors.New("lightning range must be > 0"))
		}
	case ConsumableFireball:
		if c.Damage <= 0 {
			errs = append(errs, errors.New("fireball damage must be > 0"))
		}
		if c.Radius <= 0 {
			errs = append(errs, errors.New("fireball radius must be > 0"))
		}
	case ConsumableConfusion:
		if c.Turns <= 0 {
			errs = append(errs, errors.New("confusion turns must be > 0"))
		}
	default:
		errs = append(errs, fmt.Errorf("consumable kind must be one of healing, lightning, fireball, confusion; got %q", c.Kind))
	}
	return errors.Join(errs...)
}
