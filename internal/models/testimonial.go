// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRating is used when a testimonial is created without a rating.
const DefaultRating = 5

// Testimonial is a quote from a client or colleague.
type Testimonial struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Role      string    `json:"role"`
	Company   string    `json:"company"`
	Text      string    `json:"text"`
	AvatarURL string    `json:"avatar_url"`
	Rating    int       `json:"rating"`
	Featured  bool      `json:"featured"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
}

// TestimonialPatch is the admin request body for creating or updating a
// testimonial.
type TestimonialPatch struct {
	Author    *string `json:"author"`
	Role      *string `json:"role"`
	Company   *string `json:"company"`
	Text      *string `json:"text"`
	AvatarURL *string `json:"avatar_url"`
	Rating    *int    `json:"rating"`
	Featured  *bool   `json:"featured"`
	Published *bool   `json:"published"`
}

// Apply copies every set field of the patch onto dst.
func (p TestimonialPatch) Apply(dst *Testimonial) {
	setString(&dst.Author, p.Author)
	setString(&dst.Role, p.Role)
	setString(&dst.Company, p.Company)
	setString(&dst.Text, p.Text)
	setString(&dst.AvatarURL, p.AvatarURL)
	setInt(&dst.Rating, p.Rating)
	setBool(&dst.Featured, p.Featured)
	setBool(&dst.Published, p.Published)
}

// NewTestimonial builds a testimonial from a create request. Unlike
// projects, testimonials are published unless the request says otherwise.
func NewTestimonial(p TestimonialPatch) Testimonial {
	t := Testimonial{Rating: DefaultRating, Published: true}
	p.Apply(&t)
	return t
}
