// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Every test runs against a seeded JSON file store in a temp directory and
// the in-process response cache, so no external services are needed.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/middleware"
	"portfolio/internal/models"
	"portfolio/internal/seed"
	"portfolio/internal/store"
	"portfolio/internal/store/filestore"
)

const (
	testAdminEmail    = "admin@portfolio.dev"
	testAdminPassword = "admin123"
)

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	Repos  store.Repositories
	Cache  *cache.MemoryStore
	Tokens *auth.Service
	Auth   *Auth
	Public *Public
	Admin  *Admin
}

// newTestEnv creates a seeded environment. With content=false only the
// admin user exists.
func newTestEnv(t *testing.T, content bool) *testEnv {
	t.Helper()

	fs, err := filestore.Open(filepath.Join(t.TempDir(), "portfolio.json"))
	if err != nil {
		t.Fatalf("filestore.Open: %v", err)
	}
	repos := fs.Repositories()
	if err := seed.Run(context.Background(), repos, seed.Options{
		AdminEmail:    testAdminEmail,
		AdminPassword: testAdminPassword,
		Content:       content,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	c := cache.NewMemoryStore(time.Minute)
	tokens := auth.NewService("handler-test-secret", time.Hour, 24*time.Hour)
	return &testEnv{
		Repos:  repos,
		Cache:  c,
		Tokens: tokens,
		Auth:   NewAuth(repos.Users, tokens),
		Public: NewPublic(repos, c),
		Admin:  NewAdmin(repos, c),
	}
}

// cached reports whether key has a body in the current cache generation.
func (e *testEnv) cached(key string) bool {
	ctx := context.Background()
	gen, _ := e.Cache.Generation(ctx)
	_, ok := e.Cache.Get(ctx, gen, key)
	return ok
}

// admin returns the seeded admin user.
func (e *testEnv) admin(t *testing.T) *models.User {
	t.Helper()
	u, err := e.Repos.Users.FindByEmail(context.Background(), testAdminEmail)
	if err != nil {
		t.Fatalf("find admin: %v", err)
	}
	return u
}

// jsonRequest builds a request with a JSON body. A nil body sends none.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withIdentity attaches the token identity of u, as RequireAuth would.
func withIdentity(r *http.Request, u *models.User) *http.Request {
	id := &auth.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
	return r.WithContext(context.WithValue(r.Context(), middleware.IdentityKey, id))
}

// decode unmarshals the recorded response body into v.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// errorFields returns the field names of a 400 validation response.
func errorFields(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var body struct {
		Errors []fieldError `json:"errors"`
	}
	decode(t, rec, &body)
	fields := make([]string, len(body.Errors))
	for i, e := range body.Errors {
		fields[i] = e.Field
	}
	return fields
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, rec, &body)
	return body.Error
}
