package character

// DefaultLevelUpFactor is the per-level increment of the experience threshold.
const DefaultLevelUpFactor = 150

// Level tracks an actor's experience. Monsters carry only XPGiven; the player
// carries a non-zero LevelUpBase and accumulates CurrentXP.
type Level struct {
	CurrentLevel  int `json:"current_level"`
	CurrentXP     int `json:"current_xp"`
	LevelUpBase   int `json:"level_up_base"`
	LevelUpFactor int `json:"level_up_factor"`
	XPGiven       int `json:"xp_given"`
}

// NewLevel returns a level-1 tracker.
func NewLevel(levelUpBase, xpGiven int) Level {
	return Level{
		CurrentLevel:  1,
		LevelUpBase:   levelUpBase,
		LevelUpFactor: DefaultLevelUpFactor,
		XPGiven:       xpGiven,
	}
}

// ExperienceToNextLevel returns LevelUpBase + CurrentLevel*LevelUpFactor.
func (l *Level) ExperienceToNextLevel() int {
	return l.LevelUpBase + l.CurrentLevel*l.LevelUpFactor
}

// RequiresLevelUp reports whether CurrentXP has crossed the threshold.
func (l *Level) RequiresLevelUp() bool {
	return l.LevelUpBase > 0 && l.CurrentXP > l.ExperienceToNextLevel()
}

// AddXP credits xp and reports whether it was applied. Zero amounts and
// trackers without a LevelUpBase are ignored.
func (l *Level) AddXP(xp int) bool {
	if xp == 0 || l.LevelUpBase == 0 {
		return false
	}
	l.CurrentXP += xp
	return true
}

// IncreaseLevel consumes the current threshold and advances one level.
//
// Precondition: RequiresLevelUp() is true.
func (l *Level) IncreaseLevel() {
	l.CurrentXP -= l.ExperienceToNextLevel()
	l.CurrentLevel++
}
