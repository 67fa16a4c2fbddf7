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

// ProjectStore handles all project database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = `id, title, short_description, description, image_url, live_url, github_url,
	technologies, categories, highlights, featured, published, sort_order, created_at, updated_at`

func scanProject(row scanner) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.ShortDescription, &p.Description, &p.ImageURL, &p.LiveURL, &p.GithubURL,
		&p.Technologies, &p.Categories, &p.Highlights, &p.Featured, &p.Published, &p.SortOrder,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProjectStore) list(ctx context.Context, op, query string) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// ListPublic returns published projects, featured first.
func (s *ProjectStore) ListPublic(ctx context.Context) ([]models.Project, error) {
	return s.list(ctx, "list public projects", `
		SELECT `+projectColumns+` FROM projects
		WHERE published = TRUE
		ORDER BY featured DESC, sort_order ASC, created_at DESC`)
}

// ListAll returns every project, drafts included.
func (s *ProjectStore) ListAll(ctx context.Context) ([]models.Project, error) {
	return s.list(ctx, "list projects", `
		SELECT `+projectColumns+` FROM projects
		ORDER BY sort_order ASC, created_at DESC`)
}

// Get retrieves a project by its UUID.
func (s *ProjectStore) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get project: %w", notFound(err))
	}
	return p, nil
}

// Create inserts a new project and returns it with the generated ID.
func (s *ProjectStore) Create(ctx context.Context, p models.Project) (*models.Project, error) {
	out, err := scanProject(s.db.QueryRowContext(ctx, `
		INSERT INTO projects (title, short_description, description, image_url, live_url, github_url,
			technologies, categories, highlights, featured, published, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+projectColumns,
		p.Title, p.ShortDescription, p.Description, p.ImageURL, p.LiveURL, p.GithubURL,
		p.Technologies, p.Categories, p.Highlights, p.Featured, p.Published, p.SortOrder,
	))
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return out, nil
}

// Update merges the patch into the stored project. The row is locked for
// the read-modify-write so concurrent patches do not lose fields.
func (s *ProjectStore) Update(ctx context.Context, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error) {
	var out *models.Project
	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		p, err := scanProject(tx.QueryRowContext(ctx,
			`SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return notFound(err)
		}
		patch.Apply(p)

		out, err = scanProject(tx.QueryRowContext(ctx, `
			UPDATE projects SET
				title = $1, short_description = $2, description = $3, image_url = $4,
				live_url = $5, github_url = $6, technologies = $7, categories = $8,
				highlights = $9, featured = $10, published = $11, sort_order = $12,
				updated_at = NOW()
			WHERE id = $13
			RETURNING `+projectColumns,
			p.Title, p.ShortDescription, p.Description, p.ImageURL,
			p.LiveURL, p.GithubURL, p.Technologies, p.Categories,
			p.Highlights, p.Featured, p.Published, p.SortOrder, id,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return out, nil
}

// Delete removes a project by ID.
func (s *ProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
