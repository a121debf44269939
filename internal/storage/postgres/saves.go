package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/tombs/internal/storage"
)

// SaveRepository is a storage.SaveStore over the saves table.
type SaveRepository struct {
	db *pgxpool.Pool
}

// NewSaveRepository creates a SaveRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSaveRepository(db *pgxpool.Pool) *SaveRepository {
	return &SaveRepository{db: db}
}

// Save upserts blob into slot.
//
// Postcondition: the row's updated_at is the transaction time.
func (r *SaveRepository) Save(ctx context.Context, slot string, blob []byte) error {
	if err := storage.ValidateSlot(slot); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO saves (slot, blob)
		 VALUES ($1, $2)
		 ON CONFLICT (slot) DO UPDATE
		 SET blob = EXCLUDED.blob, updated_at = NOW()`,
		slot, blob,
	)
	if err != nil {
		return fmt.Errorf("saving %q: %w", slot, err)
	}
	return nil
}

// Load returns the blob stored in slot.
//
// Postcondition: Returns ErrSaveNotFound if no row exists.
func (r *SaveRepository) Load(ctx context.Context, slot string) ([]byte, error) {
	if err := storage.ValidateSlot(slot); err != nil {
		return nil, err
	}
	var blob []byte
	err := r.db.QueryRow(ctx, `SELECT blob FROM saves WHERE slot = $1`, slot).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", storage.ErrSaveNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", slot, err)
	}
	return blob, nil
}

// Delete removes slot.
//
// Postcondition: Returns ErrSaveNotFound if no row was deleted.
func (r *SaveRepository) Delete(ctx context.Context, slot string) error {
	if err := storage.ValidateSlot(slot); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM saves WHERE slot = $1`, slot)
	if err != nil {
		return fmt.Errorf("deleting %q: %w", slot, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", storage.ErrSaveNotFound, slot)
	}
	return nil
}

// List returns every save ordered by slot.
func (r *SaveRepository) List(ctx context.Context) ([]storage.SaveInfo, error) {
	rows, err := r.db.Query(ctx,
		`SELECT slot, octet_length(blob), updated_at FROM saves ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}
	defer rows.Close()

	var out []storage.SaveInfo
	for rows.Next() {
		var info storage.SaveInfo
		if err := rows.Scan(&info.Slot, &info.Size, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning save: %w", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}
	return out, nil
}
