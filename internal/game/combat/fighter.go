// Package combat implements the per-actor combat profile and attack resolution.
package combat

import (
	"fmt"

	"github.com/cory-johannsen/tombs/internal/game/dice"
	"github.com/cory-johannsen/tombs/internal/game/inventory"
)

// Stats is the read-only view of the owner's ability modifiers a Fighter needs.
type Stats interface {
	StrMod() int
	DexMod() int
}

// Gear is the read-only view of the owner's equipped items a Fighter needs.
type Gear interface {
	// WeaponModifier returns the equipped weapon's modifier, or nil when unarmed.
	WeaponModifier() *inventory.Equippable
	// DefenseBonus returns the equipped armor's defense bonus.
	DefenseBonus() int
}

// Config holds the construction parameters of a Fighter.
type Config struct {
	HitDice       int `yaml:"hit_dice"`
	HP            int `yaml:"hp"`
	ArmorValue    int `yaml:"armor_value"`
	BaseDamageDie int `yaml:"base_damage_die"`
}

// Fighter is an actor's combat profile: hit points, natural armor and damage.
//
// Invariant: 0 <= HP() <= MaxHP.
type Fighter struct {
	MaxHP         int
	ArmorValue    int
	BaseDamageDie int
	HitDice       int

	hp    int
	stats Stats
	gear  Gear
	src   dice.Source
}

// NewFighter builds a Fighter. MaxHP is rolled as HitDice d8 when HitDice > 0,
// otherwise taken from cfg.HP. A BaseDamageDie below 1 is raised to 1.
//
// Precondition: stats, gear and src are non-nil.
// Postcondition: HP() == MaxHP.
func NewFighter(cfg Config, stats Stats, gear Gear, src dice.Source) *Fighter {
	maxHP := cfg.HP
	if cfg.HitDice > 0 {
		maxHP = dice.Roll(src, cfg.HitDice, 8)
	}
	if maxHP < 0 {
		maxHP = 0
	}
	return &Fighter{
		MaxHP:         maxHP,
		ArmorValue:    cfg.ArmorValue,
		BaseDamageDie: max(1, cfg.BaseDamageDie),
		HitDice:       cfg.HitDice,
		hp:            maxHP,
		stats:         stats,
		gear:          gear,
		src:           src,
	}
}

// HP returns the current hit points.
func (f *Fighter) HP() int { return f.hp }

// SetHP writes v clamped into [0, MaxHP].
func (f *Fighter) SetHP(v int) {
	f.hp = max(0, min(v, f.MaxHP))
}

// TakeDamage subtracts amount through the clamping setter.
func (f *Fighter) TakeDamage(amount int) {
	f.SetHP(f.hp - amount)
}

// Heal restores up to amount hit points and returns how many were recovered.
//
// Postcondition: returns 0 when already at MaxHP.
func (f *Fighter) Heal(amount int) int {
	if f.hp == f.MaxHP {
		return 0
	}
	before := f.hp
	f.SetHP(f.hp + amount)
	return f.hp - before
}

// IncreaseMaxHP raises MaxHP by amount and heals the same amount.
func (f *Fighter) IncreaseMaxHP(amount int) {
	f.MaxHP += amount
	f.SetHP(f.hp + amount)
}

// ArmorClass returns 10 + DexMod + equipped DefenseBonus + ArmorValue.
func (f *Fighter) ArmorClass() int {
	return 10 + f.stats.DexMod() + f.gear.DefenseBonus() + f.ArmorValue
}

// Power rolls the damage of one attack. Every call rolls anew.
//
// Postcondition: MinDamage() <= result <= MaxDamage().
func (f *Fighter) Power() int {
	if w := f.gear.WeaponModifier(); w != nil {
		return w.RollDamage(f.src) + f.stats.StrMod() + w.PowerBonus
	}
	return dice.Roll(f.src, 1, f.BaseDamageDie) + f.stats.StrMod()
}

// MinDamage is the lowest value Power can return. It never rolls.
func (f *Fighter) MinDamage() int {
	if w := f.gear.WeaponModifier(); w != nil {
		return w.MinRoll() + f.stats.StrMod() + w.PowerBonus
	}
	return 1 + f.stats.StrMod()
}

// MaxDamage is the highest value Power can return. It never rolls.
func (f *Fighter) MaxDamage() int {
	if w := f.gear.WeaponModifier(); w != nil {
		return w.MaxRoll() + f.stats.StrMod() + w.PowerBonus
	}
	return f.BaseDamageDie + f.stats.StrMod()
}

// State is the persisted form of a Fighter.
type State struct {
	MaxHP         int `json:"max_hp"`
	HP            int `json:"hp"`
	ArmorValue    int `json:"armor_value"`
	BaseDamageDie int `json:"base_damage_die"`
	HitDice       int `json:"hit_dice"`
}

// State captures f for persistence.
func (f *Fighter) State() State {
	return State{
		MaxHP:         f.MaxHP,
		HP:            f.hp,
		ArmorValue:    f.ArmorValue,
		BaseDamageDie: f.BaseDamageDie,
		HitDice:       f.HitDice,
	}
}

// RestoreFighter rebuilds a Fighter from persisted state without rolling.
//
// Postcondition: returns an error when s violates 0 <= HP <= MaxHP.
func RestoreFighter(s State, stats Stats, gear Gear, src dice.Source) (*Fighter, error) {
	if s.MaxHP < 0 || s.HP < 0 || s.HP > s.MaxHP {
		return nil, fmt.Errorf("combat: invalid fighter state hp=%d max_hp=%d", s.HP, s.MaxHP)
	}
	return &Fighter{
		MaxHP:         s.MaxHP,
		ArmorValue:    s.ArmorValue,
		BaseDamageDie: max(1, s.BaseDamageDie),
		HitDice:       s.HitDice,
		hp:            s.HP,
		stats:         stats,
		gear:          gear,
		src:           src,
	}, nil
}
