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

// Social is a link to one of the owner's profiles.
type Social struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

// Socials is stored as a JSONB array.
type Socials []Social

// Value implements driver.Valuer.
func (s Socials) Value() (driver.Value, error) {
	if s == nil {
		s = Socials{}
	}
	b, err := json.Marshal([]Social(s))
	if err != nil {
		return nil, fmt.Errorf("marshal socials: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *Socials) Scan(src any) error {
	b, ok, err := jsonBytes(src)
	if err != nil || !ok {
		*s = Socials{}
		return err
	}
	out := Socials{}
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("scan socials: %w", err)
	}
	*s = out
	return nil
}

// MarshalJSON keeps an empty list as [].
func (s Socials) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Social(s))
}

// PersonalInfo is the site owner's profile. There is exactly zero or one
// row.
type PersonalInfo struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	ResumeURL string    `json:"resume_url"`
	Socials   Socials   `json:"socials"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PersonalInfoPatch is the upsert body for the profile.
type PersonalInfoPatch struct {
	Name      *string   `json:"name"`
	Title     *string   `json:"title"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Location  *string   `json:"location"`
	Bio       *string   `json:"bio"`
	AvatarURL *string   `json:"avatar_url"`
	ResumeURL *string   `json:"resume_url"`
	Socials   *[]Social `json:"socials"`
}

// Apply copies every set field of the patch onto dst.
func (p PersonalInfoPatch) Apply(dst *PersonalInfo) {
	setString(&dst.Name, p.Name)
	setString(&dst.Title, p.Title)
	setString(&dst.Email, p.Email)
	setString(&dst.Phone, p.Phone)
	setString(&dst.Location, p.Location)
	setString(&dst.Bio, p.Bio)
	setString(&dst.AvatarURL, p.AvatarURL)
	setString(&dst.ResumeURL, p.ResumeURL)
	if p.Socials != nil {
		dst.Socials = append(Socials{}, (*p.Socials)...)
	}
}
