// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seed populates an empty store with the initial admin account and,
// optionally, sample portfolio content. It works on any store backend.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"portfolio/internal/models"
	"portfolio/internal/store"
)

// Options controls what Run creates.
type Options struct {
	AdminEmail    string
	AdminPassword string
	// Content adds sample projects, skills and the rest when the store
	// has no palettes yet.
	Content bool
}

// Run creates the admin user if no user exists, then seeds sample content
// when requested. Calling it again on a seeded store is a no-op.
func Run(ctx context.Context, repos store.Repositories, opts Options) error {
	count, err := repos.Users.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count == 0 {
		if _, err := repos.Users.Create(ctx, opts.AdminEmail, opts.AdminPassword, "Admin", models.RoleAdmin); err != nil {
			return fmt.Errorf("seed insert admin: %w", err)
		}
		slog.Info("seeded admin user", "email", opts.AdminEmail)
	}

	if !opts.Content {
		return nil
	}

	existing, err := repos.Palettes.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("seed check palettes: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("content already seeded, skipping")
		return nil
	}

	if err := seedContent(ctx, repos); err != nil {
		return err
	}
	slog.Info("seeded sample content")
	return nil
}

func seedContent(ctx context.Context, repos store.Repositories) error {
	if _, err := repos.PersonalInfo.Upsert(ctx, sampleProfile()); err != nil {
		return fmt.Errorf("seed personal info: %w", err)
	}

	for _, p := range samplePalettes() {
		if _, err := repos.Palettes.Create(ctx, models.NewPalette(p)); err != nil {
			return fmt.Errorf("seed palette %q: %w", *p.Name, err)
		}
	}
	for _, p := range sampleProjects() {
		if _, err := repos.Projects.Create(ctx, models.NewProject(p)); err != nil {
			return fmt.Errorf("seed project %q: %w", *p.Title, err)
		}
	}
	for _, s := range sampleSkills() {
		if _, err := repos.Skills.Create(ctx, models.NewSkill(s)); err != nil {
			return fmt.Errorf("seed skill %q: %w", *s.Name, err)
		}
	}
	for _, t := range sampleTestimonials() {
		if _, err := repos.Testimonials.Create(ctx, models.NewTestimonial(t)); err != nil {
			return fmt.Errorf("seed testimonial %q: %w", *t.Author, err)
		}
	}
	for _, e := range sampleExperiences() {
		if _, err := repos.Experiences.Create(ctx, models.NewExperience(e)); err != nil {
			return fmt.Errorf("seed experience %q: %w", *e.Title, err)
		}
	}
	for key, value := range sampleMeta() {
		v := value
		if _, err := repos.Meta.Upsert(ctx, key, models.MetaPatch{Value: &v}); err != nil {
			return fmt.Errorf("seed meta %q: %w", key, err)
		}
	}
	return nil
}
