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

// ExperienceStore handles all experience database operations.
type ExperienceStore struct {
	db *sql.DB
}

// NewExperienceStore creates a new ExperienceStore.
func NewExperienceStore(db *sql.DB) *ExperienceStore {
	return &ExperienceStore{db: db}
}

const experienceColumns = `id, title, company, location, start_date, end_date, is_current,
	description, technologies, type, sort_order, created_at`

func scanExperience(row scanner) (*models.Experience, error) {
	var e models.Experience
	err := row.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.StartDate, &e.EndDate, &e.IsCurrent,
		&e.Description, &e.Technologies, &e.Type, &e.SortOrder, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *ExperienceStore) list(ctx context.Context, op, query string) ([]models.Experience, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := []models.Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

// ListPublic returns the timeline with current positions first.
func (s *ExperienceStore) ListPublic(ctx context.Context) ([]models.Experience, error) {
	return s.list(ctx, "list public experiences", `
		SELECT `+experienceColumns+` FROM experiences
		ORDER BY is_current DESC, start_date DESC NULLS LAST`)
}

// ListAll returns the timeline newest first.
func (s *ExperienceStore) ListAll(ctx context.Context) ([]models.Experience, error) {
	return s.list(ctx, "list experiences", `
		SELECT `+experienceColumns+` FROM experiences
		ORDER BY start_date DESC NULLS LAST`)
}

// Get retrieves an experience by its UUID.
func (s *ExperienceStore) Get(ctx context.Context, id uuid.UUID) (*models.Experience, error) {
	e, err := scanExperience(s.db.QueryRowContext(ctx,
		`SELECT `+experienceColumns+` FROM experiences WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get experience: %w", notFound(err))
	}
	return e, nil
}

// Create inserts a new experience.
func (s *ExperienceStore) Create(ctx context.Context, e models.Experience) (*models.Experience, error) {
	out, err := scanExperience(s.db.QueryRowContext(ctx, `
		INSERT INTO experiences (title, company, location, start_date, end_date, is_current,
			description, technologies, type, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+experienceColumns,
		e.Title, e.Company, e.Location, e.StartDate, e.EndDate, e.IsCurrent,
		e.Description, e.Technologies, e.Type, e.SortOrder,
	))
	if err != nil {
		return nil, fmt.Errorf("create experience: %w", err)
	}
	return out, nil
}

// Update merges the patch into the stored experience.
func (s *ExperienceStore) Update(ctx context.Context, id uuid.UUID, patch models.ExperiencePatch) (*models.Experience, error) {
	var out *models.Experience
	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		e, err := scanExperience(tx.QueryRowContext(ctx,
			`SELECT `+experienceColumns+` FROM experiences WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return notFound(err)
		}
		patch.Apply(e)

		out, err = scanExperience(tx.QueryRowContext(ctx, `
			UPDATE experiences SET title = $1, company = $2, location = $3, start_date = $4,
				end_date = $5, is_current = $6, description = $7, technologies = $8,
				type = $9, sort_order = $10
			WHERE id = $11
			RETURNING `+experienceColumns,
			e.Title, e.Company, e.Location, e.StartDate, e.EndDate, e.IsCurrent,
			e.Description, e.Technologies, e.Type, e.SortOrder, id,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update experience: %w", err)
	}
	return out, nil
}

// Delete removes an experience by ID.
func (s *ExperienceStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}
	return nil
}
