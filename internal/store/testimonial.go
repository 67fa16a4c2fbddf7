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

// TestimonialStore handles all testimonial database operations.
type TestimonialStore struct {
	db *sql.DB
}

// NewTestimonialStore creates a new TestimonialStore.
func NewTestimonialStore(db *sql.DB) *TestimonialStore {
	return &TestimonialStore{db: db}
}

const testimonialColumns = `id, author, role, company, text, avatar_url, rating, featured, published, created_at`

func scanTestimonial(row scanner) (*models.Testimonial, error) {
	var t models.Testimonial
	err := row.Scan(&t.ID, &t.Author, &t.Role, &t.Company, &t.Text, &t.AvatarURL,
		&t.Rating, &t.Featured, &t.Published, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TestimonialStore) list(ctx context.Context, op, query string) ([]models.Testimonial, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := []models.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// ListPublic returns published testimonials, featured first.
func (s *TestimonialStore) ListPublic(ctx context.Context) ([]models.Testimonial, error) {
	return s.list(ctx, "list public testimonials", `
		SELECT `+testimonialColumns+` FROM testimonials
		WHERE published = TRUE
		ORDER BY featured DESC, created_at DESC`)
}

// ListAll returns every testimonial, newest first.
func (s *TestimonialStore) ListAll(ctx context.Context) ([]models.Testimonial, error) {
	return s.list(ctx, "list testimonials", `
		SELECT `+testimonialColumns+` FROM testimonials
		ORDER BY created_at DESC`)
}

// Get retrieves a testimonial by its UUID.
func (s *TestimonialStore) Get(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	t, err := scanTestimonial(s.db.QueryRowContext(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get testimonial: %w", notFound(err))
	}
	return t, nil
}

// Create inserts a new testimonial.
func (s *TestimonialStore) Create(ctx context.Context, t models.Testimonial) (*models.Testimonial, error) {
	out, err := scanTestimonial(s.db.QueryRowContext(ctx, `
		INSERT INTO testimonials (author, role, company, text, avatar_url, rating, featured, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+testimonialColumns,
		t.Author, t.Role, t.Company, t.Text, t.AvatarURL, t.Rating, t.Featured, t.Published,
	))
	if err != nil {
		return nil, fmt.Errorf("create testimonial: %w", err)
	}
	return out, nil
}

// Update merges the patch into the stored testimonial.
func (s *TestimonialStore) Update(ctx context.Context, id uuid.UUID, patch models.TestimonialPatch) (*models.Testimonial, error) {
	var out *models.Testimonial
	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		t, err := scanTestimonial(tx.QueryRowContext(ctx,
			`SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return notFound(err)
		}
		patch.Apply(t)

		out, err = scanTestimonial(tx.QueryRowContext(ctx, `
			UPDATE testimonials SET author = $1, role = $2, company = $3, text = $4,
				avatar_url = $5, rating = $6, featured = $7, published = $8
			WHERE id = $9
			RETURNING `+testimonialColumns,
			t.Author, t.Role, t.Company, t.Text, t.AvatarURL, t.Rating, t.Featured, t.Published, id,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update testimonial: %w", err)
	}
	return out, nil
}

// Delete removes a testimonial by ID.
func (s *TestimonialStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	return nil
}
