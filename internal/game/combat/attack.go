package combat

import "github.com/cory-johannsen/tombs/internal/game/dice"

// AttackResult holds the outcome of a single melee attack.
type AttackResult struct {
	// Roll is the natural d20.
	Roll int
	// Total is Roll plus the attacker's strength modifier.
	Total int
	// TargetAC is the armor class the total was compared against.
	TargetAC int
	// Hit reports whether the attack connected.
	Hit bool
	// Damage is the damage dealt; zero on a miss.
	Damage int
}

// Critical reports a natural 20.
func (r AttackResult) Critical() bool { return r.Roll == 20 }

// Fumble reports a natural 1.
func (r AttackResult) Fumble() bool { return r.Roll == 1 }

// ResolveAttack rolls d20 + StrMod against the target's armor class. A
// natural 20 always hits and a natural 1 always misses. On a hit the
// attacker's Power is rolled and floored at zero. The target is not mutated.
//
// Precondition: attacker, target and src are non-nil.
// Postcondition: Damage >= 0, and Damage == 0 when !Hit.
func ResolveAttack(attacker, target *Fighter, src dice.Source) AttackResult {
	roll := dice.D20(src)
	res := AttackResult{
		Roll:     roll,
		Total:    roll + attacker.stats.StrMod(),
		TargetAC: target.ArmorClass(),
	}
	switch {
	case res.Critical():
		res.Hit = true
	case res.Fumble():
		res.Hit = false
	default:
		res.Hit = res.Total >= res.TargetAC
	}
	if res.Hit {
		res.Damage = max(0, attacker.Power())
	}
	return res
}
