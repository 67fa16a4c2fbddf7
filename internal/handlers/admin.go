// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"portfolio/internal/cache"
	"portfolio/internal/models"
	"portfolio/internal/store"
)

// Admin serves the authenticated content management API.
type Admin struct {
	repos store.Repositories
	cache cache.Store
}

// NewAdmin creates the admin handler group. Successful writes flush c so
// the public API never serves stale content.
func NewAdmin(repos store.Repositories, c cache.Store) *Admin {
	return &Admin{repos: repos, cache: c}
}

// invalidate drops every cached public response.
func (a *Admin) invalidate(ctx context.Context) {
	if a.cache != nil {
		a.cache.InvalidateAll(ctx)
	}
}

// repository is the CRUD surface shared by every id-addressed entity store.
type repository[T, P any] interface {
	ListAll(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, v T) (*T, error)
	Update(ctx context.Context, id uuid.UUID, patch P) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Resource exposes list/get/create/update/delete handlers for one entity
// type. T is the entity, P its partial-update patch.
type Resource[T, P any] struct {
	name     string
	repo     repository[T, P]
	build    func(P) T
	validate func(p *P, creating bool) fieldErrors
	decode   func(w http.ResponseWriter, r *http.Request) (P, fieldErrors, error)
	written  func(ctx context.Context)
}

// decodePatch is the default body decoder: the JSON maps straight onto P.
func decodePatch[P any](w http.ResponseWriter, r *http.Request) (P, fieldErrors, error) {
	var p P
	err := decodeJSON(w, r, &p)
	return p, nil, err
}

func newResource[T, P any](a *Admin, name string, repo repository[T, P], build func(P) T, validate func(*P, bool) fieldErrors) *Resource[T, P] {
	return &Resource[T, P]{
		name:     name,
		repo:     repo,
		build:    build,
		validate: validate,
		decode:   decodePatch[P],
		written:  a.invalidate,
	}
}

func (a *Admin) Projects() *Resource[models.Project, models.ProjectPatch] {
	return newResource[models.Project, models.ProjectPatch](a, "Project", a.repos.Projects, models.NewProject, validateProject)
}

func (a *Admin) Skills() *Resource[models.Skill, models.SkillPatch] {
	return newResource[models.Skill, models.SkillPatch](a, "Skill", a.repos.Skills, models.NewSkill, validateSkill)
}

func (a *Admin) Testimonials() *Resource[models.Testimonial, models.TestimonialPatch] {
	return newResource[models.Testimonial, models.TestimonialPatch](a, "Testimonial", a.repos.Testimonials, models.NewTestimonial, validateTestimonial)
}

func (a *Admin) Experiences() *Resource[models.Experience, models.ExperiencePatch] {
	res := newResource[models.Experience, models.ExperiencePatch](a, "Experience", a.repos.Experiences, models.NewExperience, validateExperience)
	res.decode = decodeExperience
	return res
}

func (a *Admin) Palettes() *Resource[models.Palette, models.PalettePatch] {
	return newResource[models.Palette, models.PalettePatch](a, "Palette", a.repos.Palettes, models.NewPalette, validatePalette)
}

// List returns every entity, including unpublished ones.
func (res *Resource[T, P]) List(w http.ResponseWriter, r *http.Request) {
	items, err := res.repo.ListAll(r.Context())
	if err != nil {
		writeStoreError(w, r, res.name, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (res *Resource[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, res.name+" not found")
		return
	}
	item, err := res.repo.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, res.name, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (res *Resource[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	patch, ok := res.readPatch(w, r, true)
	if !ok {
		return
	}
	item, err := res.repo.Create(r.Context(), res.build(patch))
	if err != nil {
		writeStoreError(w, r, res.name, err)
		return
	}
	res.written(r.Context())
	writeJSON(w, http.StatusCreated, item)
}

// Update applies a partial update. Fields absent from the body keep their
// stored values.
func (res *Resource[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, res.name+" not found")
		return
	}
	patch, ok := res.readPatch(w, r, false)
	if !ok {
		return
	}
	item, err := res.repo.Update(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, r, res.name, err)
		return
	}
	res.written(r.Context())
	writeJSON(w, http.StatusOK, item)
}

func (res *Resource[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, res.name+" not found")
		return
	}
	if err := res.repo.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, res.name, err)
		return
	}
	res.written(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{
		"message": res.name + " deleted",
		"id":      id.String(),
	})
}

// readPatch decodes and validates the request body, writing the 400
// response itself on failure.
func (res *Resource[T, P]) readPatch(w http.ResponseWriter, r *http.Request, creating bool) (P, bool) {
	patch, fe, err := res.decode(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return patch, false
	}
	fe = append(fe, res.validate(&patch, creating)...)
	if len(fe) > 0 {
		fe.write(w)
		return patch, false
	}
	return patch, true
}

// experienceRequest carries the date fields as text so format errors can
// be reported per field, and so an explicit "end_date": null can clear the
// stored end date.
type experienceRequest struct {
	Title        *string                `json:"title"`
	Company      *string                `json:"company"`
	Location     *string                `json:"location"`
	StartDate    *string                `json:"start_date"`
	EndDate      json.RawMessage        `json:"end_date"`
	IsCurrent    *bool                  `json:"is_current"`
	Description  *string                `json:"description"`
	Technologies *[]string              `json:"technologies"`
	Type         *models.ExperienceType `json:"type"`
	SortOrder    *int                   `json:"sort_order"`
}

func decodeExperience(w http.ResponseWriter, r *http.Request) (models.ExperiencePatch, fieldErrors, error) {
	var req experienceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return models.ExperiencePatch{}, nil, err
	}

	p := models.ExperiencePatch{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		IsCurrent:    req.IsCurrent,
		Description:  req.Description,
		Technologies: req.Technologies,
		Type:         req.Type,
		SortOrder:    req.SortOrder,
	}

	var fe fieldErrors
	if req.StartDate != nil {
		d, err := models.ParseDate(*req.StartDate)
		if err != nil {
			fe.add("start_date", "start_date must be a date in YYYY-MM-DD format")
		} else {
			p.StartDate = &d
		}
	}
	if len(req.EndDate) > 0 {
		if string(req.EndDate) == "null" {
			p.ClearEndDate = true
		} else {
			var d models.Date
			if err := json.Unmarshal(req.EndDate, &d); err != nil {
				fe.add("end_date", "end_date must be a date in YYYY-MM-DD format or null")
			} else {
				p.EndDate = &d
			}
		}
	}
	return p, fe, nil
}

// --- Meta ---

// MetaList returns every meta entry ordered by key.
func (a *Admin) MetaList(w http.ResponseWriter, r *http.Request) {
	list, err := a.repos.Meta.List(r.Context())
	if err != nil {
		writeStoreError(w, r, "Meta key", err)
		return
	}
	if list == nil {
		list = []models.Meta{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *Admin) MetaGet(w http.ResponseWriter, r *http.Request) {
	m, err := a.repos.Meta.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeStoreError(w, r, "Meta key", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// MetaUpsert creates the key or updates it. Omitted value or json fields
// keep what is stored.
func (a *Admin) MetaUpsert(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	var patch models.MetaPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if fe := validateMeta(key, &patch); len(fe) > 0 {
		fe.write(w)
		return
	}
	m, err := a.repos.Meta.Upsert(r.Context(), key, patch)
	if err != nil {
		writeStoreError(w, r, "Meta key", err)
		return
	}
	a.invalidate(r.Context())
	writeJSON(w, http.StatusOK, m)
}

// --- Personal info ---

// PersonalInfoGet returns the profile, or {} before one has been saved.
func (a *Admin) PersonalInfoGet(w http.ResponseWriter, r *http.Request) {
	info, err := a.repos.PersonalInfo.Get(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	if err != nil {
		writeStoreError(w, r, "Personal info", err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (a *Admin) PersonalInfoUpsert(w http.ResponseWriter, r *http.Request) {
	var patch models.PersonalInfoPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if fe := validatePersonalInfo(&patch); len(fe) > 0 {
		fe.write(w)
		return
	}
	info, err := a.repos.PersonalInfo.Upsert(r.Context(), patch)
	if err != nil {
		writeStoreError(w, r, "Personal info", err)
		return
	}
	a.invalidate(r.Context())
	writeJSON(w, http.StatusOK, info)
}
