package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const (
	SelectMetadataQuery = `
		SELECT
			metadata
		FROM
			orders
		WHERE
			id = $1
	`
	UpdateMetadataQuery = `
		UPDATE
			orders
		SET
			metadata = $2,
			updated_at = now()
		WHERE
			id = $1
	`
)

// Metadata is the per-order key-value blob. Every key holds a list of values;
// keys written with unique=true hold a single-element list that is replaced
// on every write. The shape matches the data stored by earlier plugin
// versions, so existing orders stay readable.
type Metadata map[string][]json.RawMessage

// GetMetadata returns the values stored under key, or an empty list.
func (d *Database) GetMetadata(ctx context.Context, orderID, key string) ([]json.RawMessage, error) {
	meta, err := d.readMetadata(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return meta[key], nil
}

// SaveMetadata appends value under key, or overwrites the key when unique is
// set. The blob is read and written as a whole; the last writer wins.
func (d *Database) SaveMetadata(ctx context.Context, orderID, key string, value interface{}, unique bool) error {
	meta, err := d.readMetadata(ctx, orderID)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata value: %w", err)
	}

	if unique {
		meta[key] = []json.RawMessage{raw}
	} else {
		meta[key] = append(meta[key], raw)
	}

	blob, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if _, err := d.db.Exec(ctx, UpdateMetadataQuery, orderID, blob); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	return nil
}

func (d *Database) readMetadata(ctx context.Context, orderID string) (Metadata, error) {
	var blob []byte

	err := d.db.QueryRow(ctx, SelectMetadataQuery, orderID).Scan(&blob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderMissing
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	meta := Metadata{}
	if len(blob) > 0 {
		if err := json.Unmarshal(blob, &meta); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return meta, nil
}
