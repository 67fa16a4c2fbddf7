// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package filestore

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"portfolio/internal/models"
	"portfolio/internal/store"
)

// --- users ---

type users struct{ s *Store }

func (r *users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	var out *models.User
	err := r.s.read(func(d *document) error {
		for _, u := range d.Users {
			if u.Email == email {
				out = u.user()
				return nil
			}
		}
		return store.ErrNotFound
	})
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return out, nil
}

func (r *users) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	var out *models.User
	err := r.s.read(func(d *document) error {
		i := indexOf(d.Users, id, func(u userRecord) uuid.UUID { return u.ID })
		if i < 0 {
			return store.ErrNotFound
		}
		out = d.Users[i].user()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return out, nil
}

func (r *users) Count(_ context.Context) (int, error) {
	var n int
	err := r.s.read(func(d *document) error {
		n = len(d.Users)
		return nil
	})
	return n, err
}

func (r *users) Create(_ context.Context, email, password, name string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("create user: invalid role %q", role)
	}
	hash, err := store.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var out *models.User
	err = r.s.write(func(d *document) error {
		for _, u := range d.Users {
			if u.Email == email {
				return store.ErrConflict
			}
		}
		now := r.s.now()
		rec := userRecord{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: hash,
			Name:         name,
			Role:         role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		d.Users = append(d.Users, rec)
		out = rec.user()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return out, nil
}

func (r *users) modify(id uuid.UUID, fn func(u *userRecord) error) error {
	return r.s.write(func(d *document) error {
		i := indexOf(d.Users, id, func(u userRecord) uuid.UUID { return u.ID })
		if i < 0 {
			return store.ErrNotFound
		}
		if err := fn(&d.Users[i]); err != nil {
			return err
		}
		d.Users[i].UpdatedAt = r.s.now()
		return nil
	})
}

func (r *users) SetTOTPSecret(_ context.Context, id uuid.UUID, secret string) error {
	err := r.modify(id, func(u *userRecord) error {
		u.TOTPSecret = &secret
		u.TOTPEnabled = false
		return nil
	})
	if err != nil {
		return fmt.Errorf("set totp secret: %w", err)
	}
	return nil
}

func (r *users) EnableTOTP(_ context.Context, id uuid.UUID) error {
	err := r.modify(id, func(u *userRecord) error {
		if u.TOTPSecret == nil {
			return store.ErrNotFound
		}
		u.TOTPEnabled = true
		return nil
	})
	if err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}
	return nil
}

// --- projects ---

type projects struct{ s *Store }

func projectID(p models.Project) uuid.UUID { return p.ID }

func (r *projects) ListPublic(_ context.Context) ([]models.Project, error) {
	out := []models.Project{}
	err := r.s.read(func(d *document) error {
		for _, p := range d.Projects {
			if p.Published {
				out = append(out, p)
			}
		}
		return nil
	})
	slices.SortStableFunc(out, projectPublicOrder)
	return out, err
}

func (r *projects) ListAll(_ context.Context) ([]models.Project, error) {
	var out []models.Project
	err := r.s.read(func(d *document) error {
		out = append([]models.Project{}, d.Projects...)
		return nil
	})
	slices.SortStableFunc(out, projectAdminOrder)
	return out, err
}

func (r *projects) Get(_ context.Context, id uuid.UUID) (*models.Project, error) {
	var out models.Project
	err := r.s.read(func(d *document) error {
		i := indexOf(d.Projects, id, projectID)
		if i < 0 {
			return store.ErrNotFound
		}
		out = d.Projects[i]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &out, nil
}

func (r *projects) Create(_ context.Context, p models.Project) (*models.Project, error) {
	err := r.s.write(func(d *document) error {
		now := r.s.now()
		p.ID = uuid.New()
		p.CreatedAt, p.UpdatedAt = now, now
		normalizeList(&p.Technologies)
		normalizeList(&p.Categories)
		normalizeList(&p.Highlights)
		d.Projects = append(d.Projects, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &p, nil
}

func (r *projects) Update(_ context.Context, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error) {
	var out models.Project
	err := r.s.write(func(d *document) error {
		i := indexOf(d.Projects, id, projectID)
		if i < 0 {
			return store.ErrNotFound
		}
		patch.Apply(&d.Projects[i])
		d.Projects[i].UpdatedAt = r.s.now()
		out = d.Projects[i]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return &out, nil
}

func (r *projects) Delete(_ context.Context, id uuid.UUID) error {
	err := r.s.write(func(d *document) error {
		return remove(&d.Projects, id, projectID)
	})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// --- skills ---

type skills struct{ s *Store }

func skillID(sk models.Skill) uuid.UUID { return sk.ID }

func (r *skills) ListPublic(_ context.Context, category string) ([]models.Skill, error) {
	out := []models.Skill{}
	err := r.s.read(func(d *document) error {
		for _, sk := range d.Skills {
			if category == "" || sk.Category == category {
				out = append(out, sk)
			}
		}
		return nil
	})
	slices.SortStableFunc(out, skillPublicOrder)
	return out, err
}

func (r *skills) ListAll(_ context.Context) ([]models.Skill, error) {
	var out []models.Skill
	err := r.s.read(func(d *document) error {
		out = append([]models.Skill{}, d.Skills...)
		return nil
	})
	slices.SortStableFunc(out, skillAdminOrder)
	return out, err
}

func (r *skills) Get(_ context.Context, id uuid.UUID) (*models.Skill, error) {
	var out models.Skill
	err := r.s.read(func(d *document) error {
		i := indexOf(d.Skills, id, skillID)
		if i < 0 {
			return store.ErrNotFound
		}
		out = d.Skills[i]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get skill: %w", err)
	}
	return &out, nil
}

func (r *skills) Create(_ context.Context, sk models.Skill) (*models.Skill, error) {
	err := r.s.write(func(d *document) error {
		sk.ID = uuid.New()
		sk.CreatedAt = r.s.now()
		d.Skills = append(d.Skills, sk)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create skill: %w", err)
	}
	return &sk, nil
}

func (r *skills) Update(_ context.Context, id uuid.UUID, patch models.SkillPatch) (*models.Skill, error) {
	var out models.Skill
	err := r.s.write(func(d *document) error {
		i := indexOf(d.Skills, id, skillID)
		if i < 0 {
			return store.ErrNotFound
		}
		patch.Apply(&d.Skills[i])
		out = d.Skills[i]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update skill: %w", err)
	}
	return &out, nil
}

func (r *skills) Delete(_ context.Context, id uuid.UUID) error {
	err := r.s.write(func(d *document) error {
		return remove(&d.Skills, id, skillID)
	})
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	return nil
}

// --- testimonials ---

type testimonials struct{ s *Store }

func testimonialID(t models.Testimonial) uuid.UUID { return t.ID }

func (r *testimonials) ListPublic(_ context.Context) ([]models.Testimonial, error) {
	out := []models.Testimonial{}
	err := r.s.read(func(d *document) error {
		for _, t := range d.Testimonials {
			if t.Published {
				out = append(out, t)
			}
		}
		return nil
	})
	slices.SortStableFunc(out, testimonialPublicOrder)
	return out, err
}

func (r *testimonials) ListAll(_ context.Context) ([]models.Testimonial, error) {
	var out []models.Testimonial
	err := r.s.read(func(d *document) error {
		out = append([]models.Testimonial{}, d.Testimonials...)
		return nil
	})
	slices.SortStableFunc(out, testimonialAdminOrder)
	return out, err
}

func (r *testimonials) Get(_ context.Context, id uuid.UUID) (*models.Testimonial, error) {
	var out models.Testimonial
	err := r.s.read(func(d *document) error {
		i := indexOf(d.Testimonials, id, testimonialID)
		if i < 0 {
			return store.ErrNotFound
		}
		out = d.Testimonials[i]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get testimonial: %w", err)
	}
	return &out, nil
}

func (r *testimonials) Create(_ context.Context, t models.Testimonial) (*models.Testimonial, error) {
	err := r.s.write(func(d *document) error {
		t.ID = uuid.New()
		t.CreatedAt = r.s.now()
		d.Testimonials = append(d.Testimonials, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create testimonial: %w", err)
	}
	return &t, nil
}

func (r *testimonials) Update(_ context.Context, id uuid.UUID, patch models.TestimonialPatch) (*models.Testimonial, error) {
	var out models.Testimonial
	err := r.s.write(func(d *document) error {
		i := indexOf(d.Testimonials, id, testimonialID)
		if i < 0 {
			return store.ErrNotFound
		}
		patch.Apply(&d.Testimonials[i])
		out = d.Testimonials[i]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update testimonial: %w", err)
	}
	return &out, nil
}

func (r *testimonials) Delete(_ context.Context, id uuid.UUID) error {
	err := r.s.write(func(d *document) error {
		return remove(&d.Testimonials, id, testimonialID)
	})
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	return nil
}

// --- experiences ---

type experiences struct{ s *Store }

func experienceID(e models.Experience) uuid.UUID { return e.ID }

func (r *experiences) ListPublic(_ context.Context) ([]models.Experience, error) {
	var out []models.Experience
	err := r.s.read(func(d *document) error {
		out = append([]models.Experience{}, d.Experiences...)
		return nil
	})
	slices.SortStableFunc(out, experiencePublicOrder)
	return out, err
}

func (r *experiences) ListAll(_ context.Context) ([]models.Experience, error) {
	var out []models.Experience
	err := r.s.read(func(d *document) error {
		out = append([]models.Experience{}, d.Experiences...)
		return nil
	})
	slices.SortStableFunc(out, experienceAdminOrder)
	return out, err
}

func (r *experiences) Get(_ context.Context, id uuid.UUID) (*models.Experience, error) {
	var out models.Experience
	err := r.s.read(func(d *document) error {
		i := indexOf(d.Experiences, id, experienceID)
		if i < 0 {
			return store.ErrNotFound
		}
		out = d.Experiences[i]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get experience: %w", err)
	}
	return &out, nil
}

func (r *experiences) Create(_ context.Context, e models.Experience) (*models.Experience, error) {
	err := r.s.write(func(d *document) error {
		e.ID = uuid.New()
		e.CreatedAt = r.s.now()
		normalizeList(&e.Technologies)
		d.Experiences = append(d.Experiences, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create experience: %w", err)
	}
	return &e, nil
}

func (r *experiences) Update(_ context.Context, id uuid.UUID, patch models.ExperiencePatch) (*models.Experience, error) {
	var out models.Experience
	err := r.s.write(func(d *document) error {
		i := indexOf(d.Experiences, id, experienceID)
		if i < 0 {
			return store.ErrNotFound
		}
		patch.Apply(&d.Experiences[i])
		out = d.Experiences[i]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update experience: %w", err)
	}
	return &out, nil
}

func (r *experiences) Delete(_ context.Context, id uuid.UUID) error {
	err := r.s.write(func(d *document) error {
		return remove(&d.Experiences, id, experienceID)
	})
	if err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}
	return nil
}

// --- palettes ---

type palettes struct{ s *Store }

func paletteID(p models.Palette) uuid.UUID { return p.ID }

// slugTaken reports whether another palette already uses slug.
func slugTaken(d *document, slug string, self uuid.UUID) bool {
	for _, p := range d.Palettes {
		if p.Slug == slug && p.ID != self {
			return true
		}
	}
	return false
}

// activateOnly clears is_active on every palette but keep.
func activateOnly(d *document, keep uuid.UUID) {
	for i := range d.Palettes {
		if d.Palettes[i].ID != keep {
			d.Palettes[i].IsActive = false
		}
	}
}

func (r *palettes) ListPublic(_ context.Context) ([]models.Palette, error) {
	var out []models.Palette
	err := r.s.read(func(d *document) error {
		out = append([]models.Palette{}, d.Palettes...)
		return nil
	})
	slices.SortStableFunc(out, palettePublicOrder)
	return out, err
}

func (r *palettes) ListAll(_ context.Context) ([]models.Palette, error) {
	var out []models.Palette
	err := r.s.read(func(d *document) error {
		out = append([]models.Palette{}, d.Palettes...)
		return nil
	})
	slices.SortStableFunc(out, paletteAdminOrder)
	return out, err
}

func (r *palettes) Get(_ context.Context, id uuid.UUID) (*models.Palette, error) {
	var out models.Palette
	err := r.s.read(func(d *document) error {
		i := indexOf(d.Palettes, id, paletteID)
		if i < 0 {
			return store.ErrNotFound
		}
		out = d.Palettes[i]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get palette: %w", err)
	}
	return &out, nil
}

func (r *palettes) Active(_ context.Context) (*models.Palette, error) {
	var out models.Palette
	err := r.s.read(func(d *document) error {
		for _, p := range d.Palettes {
			if p.IsActive {
				out = p
				return nil
			}
		}
		return store.ErrNotFound
	})
	if err != nil {
		return nil, fmt.Errorf("find active palette: %w", err)
	}
	return &out, nil
}

func (r *palettes) Create(_ context.Context, p models.Palette) (*models.Palette, error) {
	err := r.s.write(func(d *document) error {
		if slugTaken(d, p.Slug, uuid.Nil) {
			return store.ErrConflict
		}
		p.ID = uuid.New()
		p.CreatedAt = r.s.now()
		if p.Colors == nil {
			p.Colors = models.ColorMap{}
		}
		if p.IsActive {
			activateOnly(d, p.ID)
		}
		d.Palettes = append(d.Palettes, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create palette: %w", err)
	}
	return &p, nil
}

func (r *palettes) Update(_ context.Context, id uuid.UUID, patch models.PalettePatch) (*models.Palette, error) {
	var out models.Palette
	err := r.s.write(func(d *document) error {
		i := indexOf(d.Palettes, id, paletteID)
		if i < 0 {
			return store.ErrNotFound
		}
		if patch.Slug != nil && slugTaken(d, *patch.Slug, id) {
			return store.ErrConflict
		}
		patch.Apply(&d.Palettes[i])
		if patch.Activates() {
			activateOnly(d, id)
		}
		out = d.Palettes[i]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update palette: %w", err)
	}
	return &out, nil
}

func (r *palettes) Delete(_ context.Context, id uuid.UUID) error {
	err := r.s.write(func(d *document) error {
		return remove(&d.Palettes, id, paletteID)
	})
	if err != nil {
		return fmt.Errorf("delete palette: %w", err)
	}
	return nil
}

// --- meta ---

type meta struct{ s *Store }

func (r *meta) List(_ context.Context) ([]models.Meta, error) {
	var out []models.Meta
	err := r.s.read(func(d *document) error {
		out = append([]models.Meta{}, d.Meta...)
		return nil
	})
	slices.SortStableFunc(out, func(a, b models.Meta) int {
		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		}
		return 0
	})
	return out, err
}

func (r *meta) Get(_ context.Context, key string) (*models.Meta, error) {
	var out models.Meta
	err := r.s.read(func(d *document) error {
		for _, m := range d.Meta {
			if m.Key == key {
				out = m
				return nil
			}
		}
		return store.ErrNotFound
	})
	if err != nil {
		return nil, fmt.Errorf("get meta %q: %w", key, err)
	}
	return &out, nil
}

func (r *meta) Upsert(_ context.Context, key string, patch models.MetaPatch) (*models.Meta, error) {
	var out models.Meta
	err := r.s.write(func(d *document) error {
		now := r.s.now()
		for i := range d.Meta {
			if d.Meta[i].Key == key {
				patch.Apply(&d.Meta[i])
				d.Meta[i].UpdatedAt = now
				out = d.Meta[i]
				return nil
			}
		}
		m := models.Meta{ID: uuid.New(), Key: key, UpdatedAt: now}
		patch.Apply(&m)
		d.Meta = append(d.Meta, m)
		out = m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("upsert meta %q: %w", key, err)
	}
	return &out, nil
}

// --- personal info ---

type personalInfo struct{ s *Store }

func (r *personalInfo) Get(_ context.Context) (*models.PersonalInfo, error) {
	var out models.PersonalInfo
	err := r.s.read(func(d *document) error {
		if d.PersonalInfo == nil {
			return store.ErrNotFound
		}
		out = *d.PersonalInfo
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get personal info: %w", err)
	}
	return &out, nil
}

func (r *personalInfo) Upsert(_ context.Context, patch models.PersonalInfoPatch) (*models.PersonalInfo, error) {
	var out models.PersonalInfo
	err := r.s.write(func(d *document) error {
		if d.PersonalInfo == nil {
			d.PersonalInfo = &models.PersonalInfo{ID: uuid.New(), Socials: models.Socials{}}
		}
		patch.Apply(d.PersonalInfo)
		d.PersonalInfo.UpdatedAt = r.s.now()
		out = *d.PersonalInfo
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("upsert personal info: %w", err)
	}
	return &out, nil
}

func normalizeList(l *models.StringList) {
	if *l == nil {
		*l = models.StringList{}
	}
}
