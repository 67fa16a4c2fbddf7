// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"portfolio/internal/store"
)

// maxBodySize caps JSON request bodies.
const maxBodySize = 1 << 20

// errInvalidBody is returned by decodeJSON for unreadable or malformed bodies.
var errInvalidBody = errors.New("invalid JSON body")

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeInternal logs err and sends a generic 500.
func writeInternal(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error(op+" failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimw.GetReqID(r.Context()),
	)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// writeStoreError maps repository errors onto responses. entity names the
// resource in the 404 message, e.g. "Project".
func writeStoreError(w http.ResponseWriter, r *http.Request, entity string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, entity+" already exists")
	default:
		writeInternal(w, r, fmt.Sprintf("%s store", entity), err)
	}
}

// decodeJSON reads a JSON request body of at most maxBodySize into dst.
// An empty body decodes as {}. Anything but whitespace after the first
// value is rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

// pathID parses the {id} URL parameter. A malformed id cannot name any
// stored row, so callers answer 404 when ok is false.
func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}
