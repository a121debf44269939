package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/tombs/internal/game/ai"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := ai.NewRegistry()
	require.NoError(t, reg.Register(skirmisherDomain(), &stubCaller{}, "skirmisher"))
	require.NoError(t, reg.Register(minimalDomain(), &stubCaller{}, "test"))

	p, ok := reg.PlannerFor("skirmisher")
	require.True(t, ok)
	assert.Equal(t, "skirmisher", p.DomainID())
	assert.Equal(t, []string{"skirmisher", "test"}, reg.DomainIDs())

	_, ok = reg.PlannerFor("missing")
	assert.False(t, ok)
}

func TestRegistry_RejectsDuplicateID(t *testing.T) {
	reg := ai.NewRegistry()
	require.NoError(t, reg.Register(skirmisherDomain(), &stubCaller{}, "skirmisher"))
	assert.ErrorContains(t, reg.Register(skirmisherDomain(), &stubCaller{}, "skirmisher"), "already registered")
}

func TestRegistry_RejectsInvalidDomain(t *testing.T) {
	reg := ai.NewRegistry()
	d := minimalDomain()
	d.Operators[0].Action = "reload"
	assert.Error(t, reg.Register(d, &stubCaller{}, "test"))
	assert.Empty(t, reg.DomainIDs())
}
