package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tombs/internal/game/color"
)

// LevelUpChoice is the stat a player improves when advancing a level.
type LevelUpChoice string

const (
	ChooseConstitution LevelUpChoice = "constitution"
	ChooseStrength     LevelUpChoice = "strength"
	ChooseDexterity    LevelUpChoice = "dexterity"
)

// ConstitutionBonus is the max HP gained by choosing constitution.
const ConstitutionBonus = 20

// NeedsLevelUp reports whether the player has banked enough experience to
// advance.
func (e *Engine) NeedsLevelUp() bool {
	return e.player.Level.RequiresLevelUp()
}

// LevelUp advances the player one level and applies choice.
//
// Precondition: NeedsLevelUp() is true.
func (e *Engine) LevelUp(choice LevelUpChoice) error {
	if e.gameOver {
		return ErrPlayerDead
	}
	if !e.NeedsLevelUp() {
		return fmt.Errorf("engine: level up: not enough experience")
	}
	p := e.player
	switch choice {
	case ChooseConstitution:
		p.Fighter.IncreaseMaxHP(ConstitutionBonus)
		e.log.Add("Your health improves!", color.White, true)
	case ChooseStrength:
		p.Abilities.Strength++
		e.log.Add("You feel stronger!", color.White, true)
	case ChooseDexterity:
		p.Abilities.Dexterity++
		e.log.Add("Your movements are getting swifter!", color.White, true)
	default:
		return fmt.Errorf("engine: level up: unknown choice %q", choice)
	}
	p.Level.IncreaseLevel()
	e.logger.Info("player levelled up",
		zap.Int("level", p.Level.CurrentLevel),
		zap.String("choice", string(choice)),
	)
	return nil
}
