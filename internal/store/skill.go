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

// SkillStore handles all skill database operations.
type SkillStore struct {
	db *sql.DB
}

// NewSkillStore creates a new SkillStore.
func NewSkillStore(db *sql.DB) *SkillStore {
	return &SkillStore{db: db}
}

const skillColumns = `id, name, category, level, icon, description, sort_order, created_at`

func scanSkill(row scanner) (*models.Skill, error) {
	var sk models.Skill
	err := row.Scan(&sk.ID, &sk.Name, &sk.Category, &sk.Level, &sk.Icon, &sk.Description, &sk.SortOrder, &sk.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sk, nil
}

func (s *SkillStore) list(ctx context.Context, op, query string, args ...any) ([]models.Skill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := []models.Skill{}
	for rows.Next() {
		sk, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		items = append(items, *sk)
	}
	return items, rows.Err()
}

// ListPublic returns skills in display order, optionally filtered by category.
func (s *SkillStore) ListPublic(ctx context.Context, category string) ([]models.Skill, error) {
	if category != "" {
		return s.list(ctx, "list skills by category", `
			SELECT `+skillColumns+` FROM skills
			WHERE category = $1
			ORDER BY sort_order ASC, level DESC`, category)
	}
	return s.list(ctx, "list public skills", `
		SELECT `+skillColumns+` FROM skills
		ORDER BY sort_order ASC, level DESC`)
}

// ListAll returns every skill grouped by category.
func (s *SkillStore) ListAll(ctx context.Context) ([]models.Skill, error) {
	return s.list(ctx, "list skills", `
		SELECT `+skillColumns+` FROM skills
		ORDER BY category ASC, sort_order ASC`)
}

// Get retrieves a skill by its UUID.
func (s *SkillStore) Get(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	sk, err := scanSkill(s.db.QueryRowContext(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get skill: %w", notFound(err))
	}
	return sk, nil
}

// Create inserts a new skill.
func (s *SkillStore) Create(ctx context.Context, sk models.Skill) (*models.Skill, error) {
	out, err := scanSkill(s.db.QueryRowContext(ctx, `
		INSERT INTO skills (name, category, level, icon, description, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+skillColumns,
		sk.Name, sk.Category, sk.Level, sk.Icon, sk.Description, sk.SortOrder,
	))
	if err != nil {
		return nil, fmt.Errorf("create skill: %w", err)
	}
	return out, nil
}

// Update merges the patch into the stored skill.
func (s *SkillStore) Update(ctx context.Context, id uuid.UUID, patch models.SkillPatch) (*models.Skill, error) {
	var out *models.Skill
	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		sk, err := scanSkill(tx.QueryRowContext(ctx,
			`SELECT `+skillColumns+` FROM skills WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return notFound(err)
		}
		patch.Apply(sk)

		out, err = scanSkill(tx.QueryRowContext(ctx, `
			UPDATE skills SET name = $1, category = $2, level = $3, icon = $4,
				description = $5, sort_order = $6
			WHERE id = $7
			RETURNING `+skillColumns,
			sk.Name, sk.Category, sk.Level, sk.Icon, sk.Description, sk.SortOrder, id,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update skill: %w", err)
	}
	return out, nil
}

// Delete removes a skill by ID.
func (s *SkillStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	return nil
}
