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

// PersonalInfoStore manages the singleton owner profile row.
type PersonalInfoStore struct {
	db *sql.DB
}

// NewPersonalInfoStore returns a new PersonalInfoStore.
func NewPersonalInfoStore(db *sql.DB) *PersonalInfoStore {
	return &PersonalInfoStore{db: db}
}

const personalInfoColumns = `id, name, title, email, phone, location, bio, avatar_url, resume_url, socials, updated_at`

func scanPersonalInfo(row scanner) (*models.PersonalInfo, error) {
	var p models.PersonalInfo
	err := row.Scan(&p.ID, &p.Name, &p.Title, &p.Email, &p.Phone, &p.Location,
		&p.Bio, &p.AvatarURL, &p.ResumeURL, &p.Socials, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Get returns the profile, or ErrNotFound before the first upsert.
func (s *PersonalInfoStore) Get(ctx context.Context) (*models.PersonalInfo, error) {
	p, err := scanPersonalInfo(s.db.QueryRowContext(ctx,
		`SELECT `+personalInfoColumns+` FROM personal_info WHERE singleton`))
	if err != nil {
		return nil, fmt.Errorf("get personal info: %w", notFound(err))
	}
	return p, nil
}

// Upsert creates the profile on first write and merges the patch into it
// afterwards. The empty row is inserted first so the FOR UPDATE select
// always has a row to lock, and concurrent first writes serialize on it.
func (s *PersonalInfoStore) Upsert(ctx context.Context, patch models.PersonalInfoPatch) (*models.PersonalInfo, error) {
	var out *models.PersonalInfo
	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO personal_info (singleton) VALUES (TRUE) ON CONFLICT (singleton) DO NOTHING`); err != nil {
			return err
		}

		p, err := scanPersonalInfo(tx.QueryRowContext(ctx,
			`SELECT `+personalInfoColumns+` FROM personal_info WHERE singleton FOR UPDATE`))
		if err != nil {
			return err
		}
		patch.Apply(p)

		out, err = scanPersonalInfo(tx.QueryRowContext(ctx, `
			UPDATE personal_info SET
				name = $1, title = $2, email = $3, phone = $4, location = $5, bio = $6,
				avatar_url = $7, resume_url = $8, socials = $9, updated_at = NOW()
			WHERE singleton
			RETURNING `+personalInfoColumns,
			p.Name, p.Title, p.Email, p.Phone, p.Location, p.Bio,
			p.AvatarURL, p.ResumeURL, p.Socials,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("upsert personal info: %w", err)
	}
	return out, nil
}
