// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package filestore implements the store repositories on top of a single
// JSON document on disk. It backs the mock server mode, where the API runs
// without PostgreSQL, and the handler tests.
//
// Every write works on a private copy of the document, persists it with a
// temp-file-and-rename, and only then swaps it in, so a failed write leaves
// both the file and the in-memory state untouched.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"portfolio/internal/models"
	"portfolio/internal/store"
)

// userRecord is the on-disk form of a user. models.User hides the hash and
// TOTP secret from JSON, so they need their own fields here.
type userRecord struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"password_hash"`
	Name         string      `json:"name"`
	Role         models.Role `json:"role"`
	TOTPSecret   *string     `json:"totp_secret,omitempty"`
	TOTPEnabled  bool        `json:"totp_enabled"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (r userRecord) user() *models.User {
	return &models.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Name:         r.Name,
		Role:         r.Role,
		TOTPSecret:   r.TOTPSecret,
		TOTPEnabled:  r.TOTPEnabled,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// document is the whole persisted state.
type document struct {
	Users        []userRecord         `json:"users"`
	Projects     []models.Project     `json:"projects"`
	Skills       []models.Skill       `json:"skills"`
	Testimonials []models.Testimonial `json:"testimonials"`
	Experiences  []models.Experience  `json:"experiences"`
	Palettes     []models.Palette     `json:"palettes"`
	Meta         []models.Meta        `json:"meta"`
	PersonalInfo *models.PersonalInfo `json:"personal_info,omitempty"`
}

// clone returns a deep copy of the document.
func (d *document) clone() (*document, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	out := &document{}
	if err := json.Unmarshal(b, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Store is a JSON-file backed content store. It is safe for concurrent use.
type Store struct {
	path string

	mu  sync.RWMutex
	doc *document

	now func() time.Time
}

// Open loads the document at path, or starts empty when the file does not
// exist yet. The parent directory is created on first write.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		doc:  &document{},
		now:  func() time.Time { return time.Now().UTC() },
	}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("filestore: read %s: %w", path, err)
	}

	if len(b) > 0 {
		if err := json.Unmarshal(b, s.doc); err != nil {
			return nil, fmt.Errorf("filestore: parse %s: %w", path, err)
		}
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

// Repositories returns every repository backed by this store.
func (s *Store) Repositories() store.Repositories {
	return store.Repositories{
		Users:        &users{s},
		Projects:     &projects{s},
		Skills:       &skills{s},
		Testimonials: &testimonials{s},
		Experiences:  &experiences{s},
		Palettes:     &palettes{s},
		Meta:         &meta{s},
		PersonalInfo: &personalInfo{s},
	}
}

// read runs fn with the current document under the read lock. fn must not
// retain or modify the document.
func (s *Store) read(fn func(d *document) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.doc)
}

// write runs fn on a copy of the document and persists the result. The
// copy replaces the live document only after it has been saved.
func (s *Store) write(fn func(d *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.doc.clone()
	if err != nil {
		return fmt.Errorf("filestore: copy document: %w", err)
	}
	if err := fn(next); err != nil {
		return err
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

// save writes doc atomically: readers of the file see either the old or
// the new content, never a partial write.
func (s *Store) save(doc *document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("filestore: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("filestore: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("filestore: rename: %w", err)
	}
	return nil
}

// indexOf returns the position of the element whose id matches, or -1.
func indexOf[T any](items []T, id uuid.UUID, idOf func(T) uuid.UUID) int {
	for i := range items {
		if idOf(items[i]) == id {
			return i
		}
	}
	return -1
}

// remove deletes the element with the given id in place.
func remove[T any](items *[]T, id uuid.UUID, idOf func(T) uuid.UUID) error {
	i := indexOf(*items, id, idOf)
	if i < 0 {
		return store.ErrNotFound
	}
	*items = append((*items)[:i], (*items)[i+1:]...)
	return nil
}
