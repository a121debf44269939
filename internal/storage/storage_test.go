package storage_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tombs/internal/storage"
)

func TestValidateSlot(t *testing.T) {
	for _, ok := range []string{"default", "slot-1", "A_b", strings.Repeat("x", 64)} {
		assert.NoError(t, storage.ValidateSlot(ok), ok)
	}
	for _, bad := range []string{"", "../etc", "a b", "a/b", "a.tomb", strings.Repeat("x", 65)} {
		assert.ErrorIs(t, storage.ValidateSlot(bad), storage.ErrInvalidSlot, bad)
	}
}

func TestPropertyValidSlotsHaveNoPathSeparators(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		slot := rapid.String().Draw(t, "slot")
		if storage.ValidateSlot(slot) == nil && strings.ContainsAny(slot, `/\.`) {
			t.Fatalf("slot %q accepted with a path character", slot)
		}
	})
}
