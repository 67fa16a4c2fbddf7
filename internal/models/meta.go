// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Meta is a free-form site copy entry (hero text, SEO fields, toggles),
// holding a text value, a JSON value, or both.
type Meta struct {
	ID        uuid.UUID `json:"id"`
	Key       string    `json:"key"`
	Value     *string   `json:"value"`
	JSON      JSONMap   `json:"json"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Resolved returns the text value, or the JSON value when no text is set.
func (m Meta) Resolved() any {
	if m.Value != nil {
		return *m.Value
	}
	if m.JSON != nil {
		return m.JSON
	}
	return nil
}

// MetaPatch is the upsert body for a meta key. A nil field keeps the
// stored value.
type MetaPatch struct {
	Value *string `json:"value"`
	JSON  JSONMap `json:"json"`
}

// Apply copies every set field of the patch onto dst.
func (p MetaPatch) Apply(dst *Meta) {
	if p.Value != nil {
		v := *p.Value
		dst.Value = &v
	}
	if p.JSON != nil {
		dst.JSON = p.JSON
	}
}
