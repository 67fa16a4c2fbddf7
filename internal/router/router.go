// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// portfolio API. It organizes routes into auth, public and admin groups
// with appropriate middleware stacks.
package router

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"portfolio/internal/handlers"
	"portfolio/internal/middleware"
	"portfolio/internal/models"
)

// Deps are the handler groups and settings the router wires together.
type Deps struct {
	Tokens  middleware.TokenVerifier
	Auth    *handlers.Auth
	Public  *handlers.Public
	Admin   *handlers.Admin
	Uploads *handlers.Uploads
	Health  http.Handler

	// LoginLimiter throttles POST /api/auth/login. Nil disables throttling.
	LoginLimiter *middleware.RateLimiter

	CORSOrigins []string

	// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a reverse proxy that overwrites those headers.
	TrustProxy bool

	// UploadsDir, when set, is served read-only at /uploads/.
	UploadsDir string
}

// crud is the handler set of one admin resource.
type crud interface {
	List(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	if d.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "If-None-Match"},
		ExposedHeaders:   []string{"ETag"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	if d.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadsDir)))
		r.Get("/uploads/*", noDirListing(fs))
	}

	r.Route("/api", func(r chi.Router) {
		if d.Health != nil {
			r.Method(http.MethodGet, "/health", d.Health)
		}

		// Auth
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if d.LoginLimiter != nil {
					r.Use(d.LoginLimiter.Middleware)
				}
				r.Post("/login", d.Auth.Login)
			})
			r.Post("/refresh", d.Auth.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(d.Tokens))
				r.Get("/me", d.Auth.Me)
				r.Post("/logout", d.Auth.Logout)
				r.Post("/2fa/setup", d.Auth.TwoFASetup)
				r.Post("/2fa/enable", d.Auth.TwoFAEnable)
			})
		})

		// Public read API
		r.Get("/projects", d.Public.Projects)
		r.Get("/projects/{id}", d.Public.Project)
		r.Get("/skills", d.Public.Skills)
		r.Get("/testimonials", d.Public.Testimonials)
		r.Get("/experiences", d.Public.Experiences)
		r.Get("/palettes", d.Public.Palettes)
		r.Get("/palettes/active", d.Public.ActivePalette)
		r.Get("/meta", d.Public.Meta)
		r.Get("/meta/{key}", d.Public.MetaKey)
		r.Get("/personal-info", d.Public.PersonalInfo)

		// Admin API, admin role only.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth(d.Tokens))
			r.Use(middleware.RequireRole(models.RoleAdmin))

			mount(r, "/projects", d.Admin.Projects())
			mount(r, "/skills", d.Admin.Skills())
			mount(r, "/testimonials", d.Admin.Testimonials())
			mount(r, "/experiences", d.Admin.Experiences())
			mount(r, "/palettes", d.Admin.Palettes())

			r.Get("/meta", d.Admin.MetaList)
			r.Get("/meta/{key}", d.Admin.MetaGet)
			r.Put("/meta/{key}", d.Admin.MetaUpsert)

			r.Get("/personal-info", d.Admin.PersonalInfoGet)
			r.Put("/personal-info", d.Admin.PersonalInfoUpsert)

			if d.Uploads != nil {
				r.Post("/uploads", d.Uploads.Upload)
				r.Delete("/uploads/*", d.Uploads.Delete)
			}
		})
	})

	return r
}

// mount registers the five CRUD routes of a resource under prefix.
func mount(r chi.Router, prefix string, h crud) {
	r.Route(prefix, func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// noDirListing hides directory indexes of the upload tree.
func noDirListing(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			writeError(w, http.StatusNotFound, "Endpoint not found")
			return
		}
		next.ServeHTTP(w, r)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
