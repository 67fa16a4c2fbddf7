// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ColorSlots are the named colour slots every palette defines.
var ColorSlots = []string{
	"bgPrimary",
	"bgSecondary",
	"bgTertiary",
	"accentPrimary",
	"accentSecondary",
	"accentTertiary",
	"textPrimary",
	"textSecondary",
}

// IsColorSlot reports whether name is one of ColorSlots.
func IsColorSlot(name string) bool {
	for _, s := range ColorSlots {
		if s == name {
			return true
		}
	}
	return false
}

// ColorMap maps colour slot names to CSS colour values.
type ColorMap map[string]string

// Value implements driver.Valuer. A nil map is stored as SQL NULL.
func (c ColorMap) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal colors: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (c *ColorMap) Scan(src any) error {
	b, ok, err := jsonBytes(src)
	if err != nil || !ok {
		*c = ColorMap{}
		return err
	}
	out := ColorMap{}
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("scan colors: %w", err)
	}
	*c = out
	return nil
}

// Palette is a colour theme for the public site. At most one palette is
// active at a time.
type Palette struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Colors    ColorMap  `json:"colors"`
	Content   JSONMap   `json:"content"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// PalettePatch is the admin request body for creating or updating a
// palette. Colors are merged slot by slot; Content replaces the stored map.
type PalettePatch struct {
	Name     *string  `json:"name"`
	Slug     *string  `json:"slug"`
	Colors   ColorMap `json:"colors"`
	Content  JSONMap  `json:"content"`
	IsActive *bool    `json:"is_active"`
}

// Apply copies every set field of the patch onto dst.
func (p PalettePatch) Apply(dst *Palette) {
	setString(&dst.Name, p.Name)
	setString(&dst.Slug, p.Slug)
	if p.Colors != nil {
		merged := make(ColorMap, len(dst.Colors)+len(p.Colors))
		for k, v := range dst.Colors {
			merged[k] = v
		}
		for k, v := range p.Colors {
			merged[k] = v
		}
		dst.Colors = merged
	}
	if p.Content != nil {
		dst.Content = p.Content
	}
	setBool(&dst.IsActive, p.IsActive)
}

// Activates reports whether applying the patch turns the palette on.
func (p PalettePatch) Activates() bool {
	return p.IsActive != nil && *p.IsActive
}

// NewPalette builds a palette from a create request.
func NewPalette(p PalettePatch) Palette {
	pal := Palette{Colors: ColorMap{}}
	p.Apply(&pal)
	return pal
}
