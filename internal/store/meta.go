// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"portfolio/internal/models"
)

// MetaStore manages free-form portfolio copy in the database.
type MetaStore struct {
	db *sql.DB
}

// NewMetaStore returns a new MetaStore backed by the given database.
func NewMetaStore(db *sql.DB) *MetaStore {
	return &MetaStore{db: db}
}

const metaColumns = `id, meta_key, meta_value, meta_json, updated_at`

func scanMeta(row scanner) (*models.Meta, error) {
	var m models.Meta
	if err := row.Scan(&m.ID, &m.Key, &m.Value, &m.JSON, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns every entry ordered by key.
func (s *MetaStore) List(ctx context.Context) ([]models.Meta, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+metaColumns+` FROM portfolio_meta ORDER BY meta_key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list meta: %w", err)
	}
	defer rows.Close()

	items := []models.Meta{}
	for rows.Next() {
		m, err := scanMeta(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meta: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// Get returns a single entry by key.
func (s *MetaStore) Get(ctx context.Context, key string) (*models.Meta, error) {
	m, err := scanMeta(s.db.QueryRowContext(ctx,
		`SELECT `+metaColumns+` FROM portfolio_meta WHERE meta_key = $1`, key))
	if err != nil {
		return nil, fmt.Errorf("get meta %q: %w", key, notFound(err))
	}
	return m, nil
}

// Upsert creates the key if it doesn't exist. For an existing key, fields
// absent from the patch keep their stored value.
func (s *MetaStore) Upsert(ctx context.Context, key string, patch models.MetaPatch) (*models.Meta, error) {
	m, err := scanMeta(s.db.QueryRowContext(ctx, `
		INSERT INTO portfolio_meta (meta_key, meta_value, meta_json)
		VALUES ($1, $2, $3)
		ON CONFLICT (meta_key) DO UPDATE SET
			meta_value = COALESCE(EXCLUDED.meta_value, portfolio_meta.meta_value),
			meta_json = COALESCE(EXCLUDED.meta_json, portfolio_meta.meta_json),
			updated_at = NOW()
		RETURNING `+metaColumns,
		key, patch.Value, patch.JSON,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert meta %q: %w", key, err)
	}
	return m, nil
}
