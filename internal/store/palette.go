// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"portfolio/internal/models"
)

// PaletteStore handles all palette database operations.
type PaletteStore struct {
	db *sql.DB
}

// NewPaletteStore creates a new PaletteStore.
func NewPaletteStore(db *sql.DB) *PaletteStore {
	return &PaletteStore{db: db}
}

const paletteColumns = `id, name, slug, colors, content, is_active, created_at`

func scanPalette(row scanner) (*models.Palette, error) {
	var p models.Palette
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Colors, &p.Content, &p.IsActive, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PaletteStore) list(ctx context.Context, op, query string) ([]models.Palette, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := []models.Palette{}
	for rows.Next() {
		p, err := scanPalette(rows)
		if err != nil {
			return nil, fmt.Errorf("scan palette: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// ListPublic returns all palettes with the active one first.
func (s *PaletteStore) ListPublic(ctx context.Context) ([]models.Palette, error) {
	return s.list(ctx, "list public palettes", `
		SELECT `+paletteColumns+` FROM palettes
		ORDER BY is_active DESC, name ASC`)
}

// ListAll returns all palettes by name.
func (s *PaletteStore) ListAll(ctx context.Context) ([]models.Palette, error) {
	return s.list(ctx, "list palettes", `
		SELECT `+paletteColumns+` FROM palettes
		ORDER BY name ASC`)
}

// Get retrieves a palette by its UUID.
func (s *PaletteStore) Get(ctx context.Context, id uuid.UUID) (*models.Palette, error) {
	p, err := scanPalette(s.db.QueryRowContext(ctx,
		`SELECT `+paletteColumns+` FROM palettes WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get palette: %w", notFound(err))
	}
	return p, nil
}

// Active returns the currently active palette.
func (s *PaletteStore) Active(ctx context.Context) (*models.Palette, error) {
	p, err := scanPalette(s.db.QueryRowContext(ctx,
		`SELECT `+paletteColumns+` FROM palettes WHERE is_active = TRUE LIMIT 1`))
	if err != nil {
		return nil, fmt.Errorf("find active palette: %w", notFound(err))
	}
	return p, nil
}

// deactivateOthers clears is_active on every palette except keep.
func deactivateOthers(ctx context.Context, tx *sql.Tx, keep uuid.UUID) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE palettes SET is_active = FALSE WHERE is_active = TRUE AND id <> $1`, keep); err != nil {
		return fmt.Errorf("deactivate palettes: %w", err)
	}
	return nil
}

// Create inserts a new palette. An active palette replaces the current one.
func (s *PaletteStore) Create(ctx context.Context, p models.Palette) (*models.Palette, error) {
	var out *models.Palette
	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		if p.IsActive {
			if err := deactivateOthers(ctx, tx, uuid.Nil); err != nil {
				return err
			}
		}
		var err error
		out, err = scanPalette(tx.QueryRowContext(ctx, `
			INSERT INTO palettes (name, slug, colors, content, is_active)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+paletteColumns,
			p.Name, p.Slug, p.Colors, p.Content, p.IsActive,
		))
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create palette: %w", ErrConflict)
		}
		return nil, fmt.Errorf("create palette: %w", err)
	}
	return out, nil
}

// Update merges the patch into the stored palette. Setting is_active
// deactivates every other palette within the same transaction.
func (s *PaletteStore) Update(ctx context.Context, id uuid.UUID, patch models.PalettePatch) (*models.Palette, error) {
	var out *models.Palette
	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		p, err := scanPalette(tx.QueryRowContext(ctx,
			`SELECT `+paletteColumns+` FROM palettes WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return notFound(err)
		}
		patch.Apply(p)

		if patch.Activates() {
			if err := deactivateOthers(ctx, tx, id); err != nil {
				return err
			}
		}

		out, err = scanPalette(tx.QueryRowContext(ctx, `
			UPDATE palettes SET name = $1, slug = $2, colors = $3, content = $4, is_active = $5
			WHERE id = $6
			RETURNING `+paletteColumns,
			p.Name, p.Slug, p.Colors, p.Content, p.IsActive, id,
		))
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("update palette: %w", ErrConflict)
		}
		return nil, fmt.Errorf("update palette: %w", err)
	}
	return out, nil
}

// Delete removes a palette by ID. Deleting the active palette leaves the
// site with no active palette.
func (s *PaletteStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM palettes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete palette: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("delete palette: %w", err)
	}
	return nil
}
