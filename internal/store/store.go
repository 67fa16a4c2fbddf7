// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store defines the content repository used by the HTTP layer and
// its PostgreSQL implementation. The filestore subpackage implements the
// same interfaces on top of a JSON file.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"portfolio/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("already exists")
)

// UserRepository is the credential store.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, email, password, name string, role models.Role) (*models.User, error)
	Count(ctx context.Context) (int, error)
	SetTOTPSecret(ctx context.Context, id uuid.UUID, secret string) error
	EnableTOTP(ctx context.Context, id uuid.UUID) error
}

// ProjectRepository stores portfolio projects.
type ProjectRepository interface {
	// ListPublic returns published projects, featured first.
	ListPublic(ctx context.Context) ([]models.Project, error)
	// ListAll returns every project in admin order.
	ListAll(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Create(ctx context.Context, p models.Project) (*models.Project, error)
	Update(ctx context.Context, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SkillRepository stores skills.
type SkillRepository interface {
	// ListPublic returns skills in display order, optionally restricted to
	// one category. An empty category matches all.
	ListPublic(ctx context.Context, category string) ([]models.Skill, error)
	ListAll(ctx context.Context) ([]models.Skill, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Skill, error)
	Create(ctx context.Context, s models.Skill) (*models.Skill, error)
	Update(ctx context.Context, id uuid.UUID, patch models.SkillPatch) (*models.Skill, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TestimonialRepository stores testimonials.
type TestimonialRepository interface {
	ListPublic(ctx context.Context) ([]models.Testimonial, error)
	ListAll(ctx context.Context) ([]models.Testimonial, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Testimonial, error)
	Create(ctx context.Context, t models.Testimonial) (*models.Testimonial, error)
	Update(ctx context.Context, id uuid.UUID, patch models.TestimonialPatch) (*models.Testimonial, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExperienceRepository stores timeline entries.
type ExperienceRepository interface {
	ListPublic(ctx context.Context) ([]models.Experience, error)
	ListAll(ctx context.Context) ([]models.Experience, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Experience, error)
	Create(ctx context.Context, e models.Experience) (*models.Experience, error)
	Update(ctx context.Context, id uuid.UUID, patch models.ExperiencePatch) (*models.Experience, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaletteRepository stores colour themes. Implementations keep at most one
// palette active: creating or updating a palette with is_active set clears
// the flag on every other palette in the same unit of work.
type PaletteRepository interface {
	ListPublic(ctx context.Context) ([]models.Palette, error)
	ListAll(ctx context.Context) ([]models.Palette, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Palette, error)
	Active(ctx context.Context) (*models.Palette, error)
	Create(ctx context.Context, p models.Palette) (*models.Palette, error)
	Update(ctx context.Context, id uuid.UUID, patch models.PalettePatch) (*models.Palette, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MetaRepository stores free-form site copy keyed by name.
type MetaRepository interface {
	List(ctx context.Context) ([]models.Meta, error)
	Get(ctx context.Context, key string) (*models.Meta, error)
	// Upsert creates the key or merges the patch into the stored entry.
	Upsert(ctx context.Context, key string, patch models.MetaPatch) (*models.Meta, error)
}

// PersonalInfoRepository stores the singleton owner profile.
type PersonalInfoRepository interface {
	Get(ctx context.Context) (*models.PersonalInfo, error)
	Upsert(ctx context.Context, patch models.PersonalInfoPatch) (*models.PersonalInfo, error)
}

// Repositories bundles one implementation of every repository.
type Repositories struct {
	Users        UserRepository
	Projects     ProjectRepository
	Skills       SkillRepository
	Testimonials TestimonialRepository
	Experiences  ExperienceRepository
	Palettes     PaletteRepository
	Meta         MetaRepository
	PersonalInfo PersonalInfoRepository
}

// NewPostgres returns repositories backed by the given database.
func NewPostgres(db *sql.DB) Repositories {
	return Repositories{
		Users:        NewUserStore(db),
		Projects:     NewProjectStore(db),
		Skills:       NewSkillStore(db),
		Testimonials: NewTestimonialStore(db),
		Experiences:  NewExperienceStore(db),
		Palettes:     NewPaletteStore(db),
		Meta:         NewMetaStore(db),
		PersonalInfo: NewPersonalInfoStore(db),
	}
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// notFound maps sql.ErrNoRows to ErrNotFound and leaves other errors alone.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// checkAffected returns ErrNotFound when a write touched no rows.
func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// inTx runs fn inside a transaction, committing when fn returns nil.
func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
