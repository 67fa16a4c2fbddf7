// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"portfolio/internal/auth"
	"portfolio/internal/models"
)

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

func newTokens() *auth.Service {
	return auth.NewService("middleware-secret", time.Hour, 24*time.Hour)
}

func issue(t *testing.T, svc *auth.Service, role models.Role) (string, *models.User) {
	t.Helper()
	u := &models.User{ID: uuid.New(), Email: "user@portfolio.dev", Role: role}
	pair, err := svc.IssuePair(u)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	return pair.Access, u
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %q", rr.Body.String())
	}
	return body["error"]
}

// ---------- IdentityFromCtx ----------

func TestIdentityFromCtx(t *testing.T) {
	t.Run("returns identity when present", func(t *testing.T) {
		id := &auth.Identity{UserID: uuid.New(), Email: "a@b.c", Role: models.RoleAdmin}
		ctx := context.WithValue(context.Background(), IdentityKey, id)
		if got := IdentityFromCtx(ctx); got == nil || got.Email != id.Email {
			t.Errorf("got %+v, want %+v", got, id)
		}
	})

	t.Run("returns nil when not present", func(t *testing.T) {
		if got := IdentityFromCtx(context.Background()); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("returns nil for wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), IdentityKey, "not-an-identity")
		if got := IdentityFromCtx(ctx); got != nil {
			t.Errorf("expected nil for wrong type, got %+v", got)
		}
	})
}

// ---------- RequireAuth ----------

func TestRequireAuth(t *testing.T) {
	svc := newTokens()
	token, user := issue(t, svc, models.RoleAdmin)
	pair, _ := svc.IssuePair(user)

	expired := auth.NewService("middleware-secret", time.Hour, time.Hour).
		WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	oldToken, err := expired.IssueAccess(user)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"no header", "", http.StatusUnauthorized, "Access token required"},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, "Access token required"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "Access token required"},
		{"garbage token", "Bearer nope", http.StatusUnauthorized, "Invalid token"},
		{"refresh token", "Bearer " + pair.Refresh, http.StatusUnauthorized, "Invalid token"},
		{"expired token", "Bearer " + oldToken, http.StatusUnauthorized, "Token expired"},
		{"valid token", "Bearer " + token, http.StatusOK, ""},
		{"lowercase scheme", "bearer " + token, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *auth.Identity
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = IdentityFromCtx(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			RequireAuth(svc)(inner).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				if msg := errorBody(t, rr); msg != tt.wantError {
					t.Errorf("error: got %q, want %q", msg, tt.wantError)
				}
				return
			}
			if got == nil || got.UserID != user.ID || got.Role != models.RoleAdmin {
				t.Errorf("identity not attached: %+v", got)
			}
		})
	}
}

// ---------- RequireRole ----------

func TestRequireRole(t *testing.T) {
	svc := newTokens()
	adminToken, _ := issue(t, svc, models.RoleAdmin)
	editorToken, _ := issue(t, svc, models.RoleEditor)

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"admin allowed", adminToken, http.StatusOK},
		{"editor forbidden", editorToken, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, called := okHandler()
			handler := RequireAuth(svc)(RequireRole(models.RoleAdmin)(inner))

			req := httptest.NewRequest(http.MethodGet, "/api/admin/projects", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantStatus)
			}
			if *called != (tt.wantStatus == http.StatusOK) {
				t.Errorf("next called = %v", *called)
			}
		})
	}

	t.Run("without RequireAuth", func(t *testing.T) {
		inner, called := okHandler()
		rr := httptest.NewRecorder()
		RequireRole(models.RoleAdmin)(inner).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if rr.Code != http.StatusUnauthorized || *called {
			t.Errorf("status %d, called %v", rr.Code, *called)
		}
	})
}
