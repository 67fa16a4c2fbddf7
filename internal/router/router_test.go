// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the end-to-end request flows across handler groups.
package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/handlers"
	"portfolio/internal/middleware"
	"portfolio/internal/models"
	"portfolio/internal/seed"
	"portfolio/internal/storage"
	"portfolio/internal/store"
	"portfolio/internal/store/filestore"
)

const (
	adminEmail    = "admin@portfolio.dev"
	adminPassword = "admin123"
	testOrigin    = "http://localhost:4200"
)

type testServer struct {
	*httptest.Server
	repos      store.Repositories
	tokens     *auth.Service
	uploadsDir string
}

func newTestServer(t *testing.T, loginLimit int, opts ...func(*Deps)) *testServer {
	t.Helper()

	dir := t.TempDir()
	fs, err := filestore.Open(filepath.Join(dir, "portfolio.json"))
	if err != nil {
		t.Fatal(err)
	}
	repos := fs.Repositories()
	if err := seed.Run(context.Background(), repos, seed.Options{
		AdminEmail: adminEmail, AdminPassword: adminPassword, Content: true,
	}); err != nil {
		t.Fatal(err)
	}

	uploadsDir := filepath.Join(dir, "uploads")
	local, err := storage.NewLocal(uploadsDir, "/uploads")
	if err != nil {
		t.Fatal(err)
	}

	c := cache.NewMemoryStore(time.Minute)
	tokens := auth.NewService("router-test-secret", time.Hour, 24*time.Hour)
	limiter := middleware.NewRateLimiter(loginLimit, time.Minute)
	t.Cleanup(limiter.Stop)

	deps := Deps{
		Tokens:       tokens,
		Auth:         handlers.NewAuth(repos.Users, tokens),
		Public:       handlers.NewPublic(repos, c),
		Admin:        handlers.NewAdmin(repos, c),
		Uploads:      handlers.NewUploads(local),
		Health:       handlers.NewHealth("file", nil),
		LoginLimiter: limiter,
		CORSOrigins:  []string{testOrigin},
		UploadsDir:   uploadsDir,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	srv := httptest.NewServer(New(deps))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, repos: repos, tokens: tokens, uploadsDir: uploadsDir}
}

// do sends a request with an optional JSON body and bearer token.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": adminEmail, "password": adminPassword})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: got %d", resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	readJSON(t, resp, &body)
	return body.Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 10)
	resp := s.do(t, http.MethodGet, "/api/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	readJSON(t, resp, &body)
	if body["status"] != "ok" || body["store"] != "file" {
		t.Errorf("body: %v", body)
	}
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, 10)

	resp := s.do(t, http.MethodGet, "/api/nope", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown route: got %d", resp.StatusCode)
	}
	var body map[string]string
	readJSON(t, resp, &body)
	if body["error"] != "Endpoint not found" {
		t.Errorf("error: got %q", body["error"])
	}

	resp = s.do(t, http.MethodDelete, "/api/projects", "", nil)
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("wrong method: got %d", resp.StatusCode)
	}
	readJSON(t, resp, &body)
	if body["error"] != "Method not allowed" {
		t.Errorf("error: got %q", body["error"])
	}
}

func TestLoginThenMe(t *testing.T) {
	s := newTestServer(t, 10)
	token := s.login(t)

	resp := s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: got %d", resp.StatusCode)
	}
	var body struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	readJSON(t, resp, &body)
	if body.User.Email != adminEmail || body.User.Role != "admin" {
		t.Errorf("me: %+v", body.User)
	}

	if resp := s.do(t, http.MethodPost, "/api/auth/logout", token, nil); resp.StatusCode != http.StatusOK {
		t.Errorf("logout: got %d", resp.StatusCode)
	}
}

func TestAuthGates(t *testing.T) {
	s := newTestServer(t, 10)
	editor, err := s.repos.Users.Create(context.Background(), "editor@portfolio.dev", "pw", "Ed", models.RoleEditor)
	if err != nil {
		t.Fatal(err)
	}
	editorToken, _ := s.tokens.IssueAccess(editor)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"me without token", http.MethodGet, "/api/auth/me", "", http.StatusUnauthorized},
		{"me with garbage", http.MethodGet, "/api/auth/me", "garbage", http.StatusUnauthorized},
		{"admin without token", http.MethodGet, "/api/admin/projects", "", http.StatusUnauthorized},
		{"admin as editor", http.MethodGet, "/api/admin/projects", editorToken, http.StatusForbidden},
		{"upload as editor", http.MethodPost, "/api/admin/uploads", editorToken, http.StatusForbidden},
		{"public without token", http.MethodGet, "/api/projects", "", http.StatusOK},
		{"editor can read me", http.MethodGet, "/api/auth/me", editorToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if resp := s.do(t, tt.method, tt.path, tt.token, nil); resp.StatusCode != tt.want {
				t.Errorf("got %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestAdminFlowThroughRouter(t *testing.T) {
	s := newTestServer(t, 10)
	token := s.login(t)

	resp := s.do(t, http.MethodPost, "/api/admin/projects", token, map[string]string{"title": "X", "description": "Y"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got %d", resp.StatusCode)
	}
	var created models.Project
	readJSON(t, resp, &created)
	if created.Published {
		t.Error("new project must be unpublished")
	}

	if resp := s.do(t, http.MethodGet, "/api/projects/"+created.ID.String(), "", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unpublished detail: got %d, want 404", resp.StatusCode)
	}
	if resp := s.do(t, http.MethodGet, "/api/admin/projects/"+created.ID.String(), token, nil); resp.StatusCode != http.StatusOK {
		t.Errorf("admin detail: got %d, want 200", resp.StatusCode)
	}

	resp = s.do(t, http.MethodPut, "/api/admin/projects/"+created.ID.String(), token, map[string]bool{"published": true})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("publish: got %d", resp.StatusCode)
	}
	if resp := s.do(t, http.MethodGet, "/api/projects/"+created.ID.String(), "", nil); resp.StatusCode != http.StatusOK {
		t.Errorf("published detail: got %d, want 200", resp.StatusCode)
	}

	if resp := s.do(t, http.MethodDelete, "/api/admin/projects/"+created.ID.String(), token, nil); resp.StatusCode != http.StatusOK {
		t.Errorf("delete: got %d", resp.StatusCode)
	}
	if resp := s.do(t, http.MethodGet, "/api/projects/"+created.ID.String(), "", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("after delete: got %d, want 404", resp.StatusCode)
	}
}

func TestLoginRateLimited(t *testing.T) {
	s := newTestServer(t, 2)
	bad := map[string]string{"email": adminEmail, "password": "wrong"}

	for i := 0; i < 2; i++ {
		if resp := s.do(t, http.MethodPost, "/api/auth/login", "", bad); resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("attempt %d: got %d, want 401", i+1, resp.StatusCode)
		}
	}
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", bad)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("third attempt: got %d, want 429", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}

	// Other endpoints are not throttled.
	if resp := s.do(t, http.MethodGet, "/api/skills", "", nil); resp.StatusCode != http.StatusOK {
		t.Errorf("public route: got %d", resp.StatusCode)
	}
}

func TestLoginRateLimitForwardedFor(t *testing.T) {
	bad := map[string]string{"email": adminEmail, "password": "wrong"}
	b, _ := json.Marshal(bad)
	loginAs := func(t *testing.T, s *testServer, forwardedFor string) int {
		t.Helper()
		req, err := http.NewRequest(http.MethodPost, s.URL+"/api/auth/login", bytes.NewReader(b))
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwardedFor)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	t.Run("untrusted", func(t *testing.T) {
		s := newTestServer(t, 1)
		loginAs(t, s, "203.0.113.1")
		if code := loginAs(t, s, "203.0.113.2"); code != http.StatusTooManyRequests {
			t.Errorf("forged header bypassed the limit: got %d, want 429", code)
		}
	})

	t.Run("trusted proxy", func(t *testing.T) {
		s := newTestServer(t, 1, func(d *Deps) { d.TrustProxy = true })
		loginAs(t, s, "203.0.113.1")
		if code := loginAs(t, s, "203.0.113.2"); code != http.StatusUnauthorized {
			t.Errorf("distinct forwarded clients: got %d, want 401", code)
		}
		if code := loginAs(t, s, "203.0.113.1"); code != http.StatusTooManyRequests {
			t.Errorf("repeat client: got %d, want 429", code)
		}
	})
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, 10)

	req, _ := http.NewRequest(http.MethodOptions, s.URL+"/api/admin/projects", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != testOrigin {
		t.Errorf("Allow-Origin: got %q, want %q", got, testOrigin)
	}

	req, _ = http.NewRequest(http.MethodGet, s.URL+"/api/skills", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if got := resp2.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}

func TestUploadsServed(t *testing.T) {
	s := newTestServer(t, 10)
	if err := os.MkdirAll(filepath.Join(s.uploadsDir, "media"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.uploadsDir, "media", "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	resp := s.do(t, http.MethodGet, "/uploads/media/a.txt", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	if string(b) != "hello" {
		t.Errorf("body: got %q", b)
	}

	if resp := s.do(t, http.MethodGet, "/uploads/media/", "", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("directory listing: got %d, want 404", resp.StatusCode)
	}
}

func TestPublicETagThroughRouter(t *testing.T) {
	s := newTestServer(t, 10)

	resp := s.do(t, http.MethodGet, "/api/palettes/active", "", nil)
	etag := resp.Header.Get("ETag")
	if resp.StatusCode != http.StatusOK || etag == "" {
		t.Fatalf("got %d etag=%q", resp.StatusCode, etag)
	}

	req, _ := http.NewRequest(http.MethodGet, s.URL+"/api/palettes/active", nil)
	req.Header.Set("If-None-Match", etag)
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotModified {
		t.Errorf("conditional GET: got %d, want 304", resp2.StatusCode)
	}
}
