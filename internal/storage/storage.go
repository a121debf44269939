// Package storage defines where saved games live. Backends store opaque save
// blobs under a slot name; encoding is the engine's concern.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrSaveNotFound is returned when a slot holds no save.
var ErrSaveNotFound = errors.New("storage: save not found")

// ErrInvalidSlot is returned for slot names outside [A-Za-z0-9_-]{1,64}.
var ErrInvalidSlot = errors.New("storage: invalid slot name")

var slotPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// SaveInfo describes one stored save.
type SaveInfo struct {
	Slot      string
	Size      int
	UpdatedAt time.Time
}

// SaveStore persists save blobs by slot.
type SaveStore interface {
	// Save writes blob to slot, replacing any previous save.
	Save(ctx context.Context, slot string, blob []byte) error
	// Load returns the blob in slot, or ErrSaveNotFound.
	Load(ctx context.Context, slot string) ([]byte, error)
	// Delete removes slot, or returns ErrSaveNotFound.
	Delete(ctx context.Context, slot string) error
	// List returns every save ordered by slot name.
	List(ctx context.Context) ([]SaveInfo, error)
}

// ValidateSlot checks that slot is usable as a file name and a key.
//
// Postcondition: returns an error wrapping ErrInvalidSlot, or nil.
func ValidateSlot(slot string) error {
	if !slotPattern.MatchString(slot) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return nil
}
