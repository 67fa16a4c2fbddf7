// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage stores uploaded files (project images, avatars, resumes)
// either in an S3-compatible bucket or on local disk.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidKey is returned for object keys that would escape the storage root.
var ErrInvalidKey = errors.New("invalid object key")

// Storage is implemented by every upload backend.
type Storage interface {
	// Put stores body under key and returns the public URL of the object.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
	// Name identifies the backend in logs and health output.
	Name() string
}
