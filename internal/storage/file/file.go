// Package file stores saved games as one file per slot in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cory-johannsen/tombs/internal/storage"
)

// Ext is the file extension of a save.
const Ext = ".tomb"

// Store is a directory of save files.
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating it when missing.
//
// Postcondition: dir exists and is a directory, or an error is returned.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("file store: dir must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file store: creating %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(slot string) string {
	return filepath.Join(s.dir, slot+Ext)
}

// Save implements storage.SaveStore. The write goes to a temporary file that
// is renamed over the slot, so a crash never leaves a torn save.
func (s *Store) Save(ctx context.Context, slot string, blob []byte) error {
	if err := storage.ValidateSlot(slot); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("file store: saving %q: %w", slot, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("file store: saving %q: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file store: saving %q: %w", slot, err)
	}
	if err := os.Rename(tmp.Name(), s.path(slot)); err != nil {
		return fmt.Errorf("file store: saving %q: %w", slot, err)
	}
	return nil
}

// Load implements storage.SaveStore.
func (s *Store) Load(ctx context.Context, slot string) ([]byte, error) {
	if err := storage.ValidateSlot(slot); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	blob, err := os.ReadFile(s.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", storage.ErrSaveNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("file store: loading %q: %w", slot, err)
	}
	return blob, nil
}

// Delete implements storage.SaveStore.
func (s *Store) Delete(ctx context.Context, slot string) error {
	if err := storage.ValidateSlot(slot); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(s.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q", storage.ErrSaveNotFound, slot)
	}
	if err != nil {
		return fmt.Errorf("file store: deleting %q: %w", slot, err)
	}
	return nil
}

// List implements storage.SaveStore. Files that are not saves are ignored.
func (s *Store) List(ctx context.Context) ([]storage.SaveInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("file store: listing: %w", err)
	}
	var out []storage.SaveInfo
	for _, e := range entries {
		slot, ok := strings.CutSuffix(e.Name(), Ext)
		if !ok || e.IsDir() || storage.ValidateSlot(slot) != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("file store: listing %q: %w", e.Name(), err)
		}
		out = append(out, storage.SaveInfo{Slot: slot, Size: int(info.Size()), UpdatedAt: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}
