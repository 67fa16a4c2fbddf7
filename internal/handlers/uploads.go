// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"portfolio/internal/storage"
)

// maxUploadSize is the largest accepted file (10 MB).
const maxUploadSize = 10 << 20

// uploadPrefix is the key namespace for uploaded files.
const uploadPrefix = "media/"

// allowedUploadTypes are the sniffed MIME types accepted for upload.
var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"application/pdf": true,
}

// Uploads stores project images, avatars and resumes.
type Uploads struct {
	storage storage.Storage
	now     func() time.Time
}

func NewUploads(s storage.Storage) *Uploads {
	return &Uploads{storage: s, now: time.Now}
}

// Upload accepts a multipart "file" field and stores it under a fresh key.
func (u *Uploads) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10 MB.")
			return
		}
		writeError(w, http.StatusBadRequest, "Expected a multipart form with a file field")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10 MB.")
		return
	}

	sniff := make([]byte, 512)
	n, err := file.Read(sniff)
	if err != nil && err != io.EOF {
		writeInternal(w, r, "read upload", err)
		return
	}
	contentType := http.DetectContentType(sniff[:n])

	// DetectContentType reports SVG as text/xml or text/plain.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}

	if !allowedUploadTypes[contentType] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("File type %q is not allowed", contentType))
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeInternal(w, r, "rewind upload", err)
		return
	}

	now := u.now()
	key := fmt.Sprintf("%s%d/%02d/%s%s", uploadPrefix, now.Year(), now.Month(), uuid.NewString(), extensionFromType(contentType))

	url, err := u.storage.Put(r.Context(), key, contentType, file, header.Size)
	if err != nil {
		writeInternal(w, r, "store upload", err)
		return
	}

	slog.Info("file uploaded", "key", key, "content_type", contentType, "size", header.Size, "backend", u.storage.Name())
	writeJSON(w, http.StatusCreated, map[string]any{
		"url":          url,
		"key":          key,
		"content_type": contentType,
		"size":         header.Size,
	})
}

// Delete removes a previously uploaded file. The key is the wildcard
// remainder of the path, e.g. media/2026/03/<uuid>.png.
func (u *Uploads) Delete(w http.ResponseWriter, r *http.Request) {
	key := path.Clean(chi.URLParam(r, "*"))
	if !strings.HasPrefix(key, uploadPrefix) {
		writeError(w, http.StatusNotFound, "Upload not found")
		return
	}
	if err := u.storage.Delete(r.Context(), key); err != nil {
		if errors.Is(err, storage.ErrInvalidKey) {
			writeError(w, http.StatusNotFound, "Upload not found")
			return
		}
		writeInternal(w, r, "delete upload", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Upload deleted", "key": key})
}

// extensionFromType returns a file extension for the given MIME type.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	case "application/pdf":
		return ".pdf"
	default:
		return ""
	}
}
