// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"time"
)

// Health reports liveness and which store backend is serving.
type Health struct {
	store string
	ping  func(ctx context.Context) error
}

// NewHealth creates the health handler. ping may be nil when the backend
// has nothing to check.
func NewHealth(store string, ping func(ctx context.Context) error) *Health {
	return &Health{store: store, ping: ping}
}

func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			status, code = "unavailable", http.StatusServiceUnavailable
		}
	}
	writeJSON(w, code, map[string]string{
		"status":    status,
		"store":     h.store,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
