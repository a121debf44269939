package messagelog_test

import (
	"testing"

	"github.com/cory-johannsen/tombs/internal/game/color"
	"github.com/cory-johannsen/tombs/internal/game/messagelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_Stacking(t *testing.T) {
	l := messagelog.New()
	l.Add("Orc attacks", color.EnemyAtk, true)
	l.Add("Orc attacks", color.EnemyAtk, true)
	l.Add("Orc attacks", color.EnemyAtk, true)
	l.Add("You hit", color.PlayerAtk, true)
	l.Add("You hit", color.PlayerAtk, false)

	msgs := l.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "Orc attacks (x3)", msgs[0].FullText())
	assert.Equal(t, "You hit", msgs[1].FullText())
	assert.Equal(t, color.PlayerAtk, msgs[2].Color)
}

func TestLog_LastAndRestore(t *testing.T) {
	l := messagelog.New()
	for _, s := range []string{"a", "b", "c"} {
		l.Add(s, color.White, true)
	}
	last := l.Last(2)
	require.Len(t, last, 2)
	assert.Equal(t, "b", last[0].Text)
	assert.Len(t, l.Last(10), 3)

	other := messagelog.New()
	other.Restore(l.Messages())
	assert.Equal(t, l.Messages(), other.Messages())
	assert.Equal(t, 3, other.Len())
}
