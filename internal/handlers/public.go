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

	"portfolio/internal/cache"
	"portfolio/internal/markdown"
	"portfolio/internal/models"
	"portfolio/internal/store"
)

// Public serves the read-only API used by the portfolio front end. Only
// published content is exposed, and responses are cached until the next
// admin write.
type Public struct {
	repos store.Repositories
	cache cache.Store
}

// NewPublic creates the public handler group. A nil cache disables caching.
func NewPublic(repos store.Repositories, c cache.Store) *Public {
	return &Public{repos: repos, cache: c}
}

// Views adding rendered Markdown next to the source field.

type projectView struct {
	models.Project
	DescriptionHTML string `json:"description_html"`
}

type experienceView struct {
	models.Experience
	DescriptionHTML string `json:"description_html"`
}

type personalInfoView struct {
	models.PersonalInfo
	BioHTML string `json:"bio_html"`
}

// loader fetches the response payload for a public route.
type loader func(ctx context.Context) (any, error)

// serve answers from the cache when possible, otherwise runs load and
// caches a successful body. The cache generation is read before load, so
// a body that raced an admin write is filed under the old generation.
// Every 200 carries an ETag and a conditional request with a matching
// If-None-Match gets a 304.
func (p *Public) serve(w http.ResponseWriter, r *http.Request, notFound string, load loader) {
	key := r.URL.RequestURI()

	var (
		body   []byte
		gen    uint64
		cached bool
	)
	if p.cache != nil {
		gen, cached = p.cache.Generation(r.Context())
	}
	if cached {
		body, _ = p.cache.Get(r.Context(), gen, key)
	}

	if body == nil {
		data, err := load(r.Context())
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, notFound)
			return
		}
		if err != nil {
			writeInternal(w, r, "public "+r.URL.Path, err)
			return
		}
		body, err = json.Marshal(data)
		if err != nil {
			writeInternal(w, r, "encode "+r.URL.Path, err)
			return
		}
		if cached {
			p.cache.Set(r.Context(), gen, key, body)
		}
	}

	etag := cache.ETag(body)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if cache.Matches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Projects lists published projects, featured first.
func (p *Public) Projects(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "Project not found", func(ctx context.Context) (any, error) {
		return p.repos.Projects.ListPublic(ctx)
	})
}

// Project returns a single published project with its description rendered.
func (p *Public) Project(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	p.serve(w, r, "Project not found", func(ctx context.Context) (any, error) {
		proj, err := p.repos.Projects.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !proj.Published {
			return nil, store.ErrNotFound
		}
		return projectView{Project: *proj, DescriptionHTML: markdown.Render(proj.Description)}, nil
	})
}

// Skills lists skills, optionally narrowed with ?category=.
func (p *Public) Skills(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	p.serve(w, r, "Skill not found", func(ctx context.Context) (any, error) {
		return p.repos.Skills.ListPublic(ctx, category)
	})
}

func (p *Public) Testimonials(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "Testimonial not found", func(ctx context.Context) (any, error) {
		return p.repos.Testimonials.ListPublic(ctx)
	})
}

func (p *Public) Experiences(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "Experience not found", func(ctx context.Context) (any, error) {
		list, err := p.repos.Experiences.ListPublic(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]experienceView, len(list))
		for i, e := range list {
			out[i] = experienceView{Experience: e, DescriptionHTML: markdown.Render(e.Description)}
		}
		return out, nil
	})
}

func (p *Public) Palettes(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "Palette not found", func(ctx context.Context) (any, error) {
		return p.repos.Palettes.ListPublic(ctx)
	})
}

// ActivePalette returns the palette the site is currently themed with.
func (p *Public) ActivePalette(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "No active palette found", func(ctx context.Context) (any, error) {
		return p.repos.Palettes.Active(ctx)
	})
}

// Meta returns every meta entry as a single key → value object.
func (p *Public) Meta(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "Meta key not found", func(ctx context.Context) (any, error) {
		list, err := p.repos.Meta.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, len(list))
		for _, m := range list {
			out[m.Key] = m.Resolved()
		}
		return out, nil
	})
}

func (p *Public) MetaKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	p.serve(w, r, "Meta key not found", func(ctx context.Context) (any, error) {
		return p.repos.Meta.Get(ctx, key)
	})
}

func (p *Public) PersonalInfo(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "Personal info not found", func(ctx context.Context) (any, error) {
		info, err := p.repos.PersonalInfo.Get(ctx)
		if err != nil {
			return nil, err
		}
		return personalInfoView{PersonalInfo: *info, BioHTML: markdown.Render(info.Bio)}, nil
	})
}
