// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(filepath.Join(dir, "uploads"), "/uploads/")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()

	url, err := l.Put(ctx, "images/2026/avatar.png", "image/png", strings.NewReader("png-bytes"), 9)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "/uploads/images/2026/avatar.png" {
		t.Errorf("url: got %q", url)
	}

	data, err := os.ReadFile(filepath.Join(l.Dir(), "images", "2026", "avatar.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("content: got %q", data)
	}

	if err := l.Delete(ctx, "images/2026/avatar.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(l.Dir(), "images", "2026", "avatar.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file should be gone, stat err = %v", err)
	}
	// Deleting twice is not an error.
	if err := l.Delete(ctx, "images/2026/avatar.png"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestLocalRejectsTraversal(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"", "../escape.txt", "a/../../escape.txt", "/etc/passwd", ".."} {
		t.Run(key, func(t *testing.T) {
			if _, err := l.Put(context.Background(), key, "text/plain", strings.NewReader("x"), 1); !errors.Is(err, ErrInvalidKey) {
				t.Errorf("Put(%q): got %v, want ErrInvalidKey", key, err)
			}
		})
	}
}

func TestLocalName(t *testing.T) {
	var s Storage
	l, _ := NewLocal(t.TempDir(), "/uploads")
	s = l
	if s.Name() != "local" {
		t.Errorf("Name: got %q", s.Name())
	}
}

func TestNewS3RequiresCredentials(t *testing.T) {
	if _, err := NewS3("http://localhost:9000", "us-east-1", "", "", "media", ""); err == nil {
		t.Error("expected error without credentials")
	}
}

func TestS3FileURL(t *testing.T) {
	tests := []struct {
		name      string
		endpoint  string
		publicURL string
		want      string
	}{
		{"public url", "http://minio:9000", "https://cdn.example.com/", "https://cdn.example.com/a.png"},
		{"path style", "http://minio:9000/", "", "http://minio:9000/media/a.png"},
		{"aws default", "", "", "https://media.s3.amazonaws.com/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewS3(tt.endpoint, "us-east-1", "ak", "sk", "media", tt.publicURL)
			if err != nil {
				t.Fatal(err)
			}
			if got := c.FileURL("a.png"); got != tt.want {
				t.Errorf("FileURL = %q, want %q", got, tt.want)
			}
			if c.Name() != "s3" {
				t.Errorf("Name: got %q", c.Name())
			}
		})
	}
}
