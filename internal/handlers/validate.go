// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"portfolio/internal/models"
	"portfolio/internal/slug"
)

// Validation limits for content fields.
const (
	maxTitleLen     = 300
	maxShortTextLen = 1_000
	maxBodyLen      = 100_000
	maxNameLen      = 200
	maxMetaKeyLen   = 100
	maxListItems    = 50
)

// fieldError is one entry of a validation failure response.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldErrors collects every problem with a request body.
type fieldErrors []fieldError

func (fe *fieldErrors) add(field, format string, args ...any) {
	*fe = append(*fe, fieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// write sends the collected errors as a 400 response.
func (fe fieldErrors) write(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fe})
}

// text checks an optional string field. When required is set, the field
// must be present and non-blank; when present, it must fit in max runes.
func (fe *fieldErrors) text(field string, v *string, required bool, max int) {
	if v == nil {
		if required {
			fe.add(field, "%s is required", field)
		}
		return
	}
	trimmed := strings.TrimSpace(*v)
	if required && trimmed == "" {
		fe.add(field, "%s must not be empty", field)
		return
	}
	if utf8.RuneCountInString(*v) > max {
		fe.add(field, "%s is too long (max %d characters)", field, max)
	}
}

// nonBlank rejects a present-but-empty value, for required fields on update.
func (fe *fieldErrors) nonBlank(field string, v *string, max int) {
	if v != nil {
		fe.text(field, v, true, max)
	}
}

func (fe *fieldErrors) intRange(field string, v *int, lo, hi int) {
	if v != nil && (*v < lo || *v > hi) {
		fe.add(field, "%s must be between %d and %d", field, lo, hi)
	}
}

func (fe *fieldErrors) list(field string, v *[]string) {
	if v == nil {
		return
	}
	if len(*v) > maxListItems {
		fe.add(field, "%s has too many entries (max %d)", field, maxListItems)
	}
	for i, s := range *v {
		if strings.TrimSpace(s) == "" {
			fe.add(field, "%s[%d] must not be empty", field, i)
		}
	}
}

// --- Per-entity rules ---

func validateProject(p *models.ProjectPatch, creating bool) fieldErrors {
	var fe fieldErrors
	if creating {
		fe.text("title", p.Title, true, maxTitleLen)
		fe.text("description", p.Description, true, maxBodyLen)
	} else {
		fe.nonBlank("title", p.Title, maxTitleLen)
		fe.nonBlank("description", p.Description, maxBodyLen)
	}
	fe.text("short_description", p.ShortDescription, false, maxShortTextLen)
	fe.list("technologies", p.Technologies)
	fe.list("categories", p.Categories)
	fe.list("highlights", p.Highlights)
	return fe
}

func validateSkill(p *models.SkillPatch, creating bool) fieldErrors {
	var fe fieldErrors
	if creating {
		fe.text("name", p.Name, true, maxNameLen)
		fe.text("category", p.Category, true, maxNameLen)
	} else {
		fe.nonBlank("name", p.Name, maxNameLen)
		fe.nonBlank("category", p.Category, maxNameLen)
	}
	fe.intRange("level", p.Level, 1, 100)
	fe.text("description", p.Description, false, maxShortTextLen)
	return fe
}

func validateTestimonial(p *models.TestimonialPatch, creating bool) fieldErrors {
	var fe fieldErrors
	if creating {
		fe.text("author", p.Author, true, maxNameLen)
		fe.text("text", p.Text, true, maxBodyLen)
	} else {
		fe.nonBlank("author", p.Author, maxNameLen)
		fe.nonBlank("text", p.Text, maxBodyLen)
	}
	fe.intRange("rating", p.Rating, 1, 5)
	return fe
}

func validateExperience(p *models.ExperiencePatch, creating bool) fieldErrors {
	var fe fieldErrors
	if creating {
		fe.text("title", p.Title, true, maxTitleLen)
	} else {
		fe.nonBlank("title", p.Title, maxTitleLen)
	}
	fe.text("description", p.Description, false, maxBodyLen)
	fe.list("technologies", p.Technologies)
	if p.Type != nil && !p.Type.Valid() {
		fe.add("type", "type must be one of work, education, freelance, other")
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(p.StartDate.Time) {
		fe.add("end_date", "end_date must not be before start_date")
	}
	return fe
}

// validatePalette also derives a missing or empty slug from the name on
// create.
func validatePalette(p *models.PalettePatch, creating bool) fieldErrors {
	var fe fieldErrors
	if creating {
		fe.text("name", p.Name, true, maxNameLen)
		if len(p.Colors) == 0 {
			fe.add("colors", "colors is required")
		}
		if (p.Slug == nil || *p.Slug == "") && p.Name != nil {
			derived := slug.Generate(*p.Name)
			if derived == "" {
				fe.add("slug", "slug cannot be derived from name, set one explicitly")
			}
			p.Slug = &derived
		}
	} else {
		fe.nonBlank("name", p.Name, maxNameLen)
	}
	if p.Slug != nil && *p.Slug != "" && !slug.Valid(*p.Slug) {
		fe.add("slug", "slug may contain only lowercase letters, digits and single hyphens")
	} else if p.Slug != nil && *p.Slug == "" && (!creating || p.Name == nil) {
		fe.add("slug", "slug must not be empty")
	}
	for name, value := range p.Colors {
		if !models.IsColorSlot(name) {
			fe.add("colors."+name, "unknown colour slot %q", name)
		} else if strings.TrimSpace(value) == "" {
			fe.add("colors."+name, "colour value must not be empty")
		}
	}
	return fe
}

func validateMeta(key string, p *models.MetaPatch) fieldErrors {
	var fe fieldErrors
	if strings.TrimSpace(key) == "" {
		fe.add("key", "key must not be empty")
	} else if utf8.RuneCountInString(key) > maxMetaKeyLen {
		fe.add("key", "key is too long (max %d characters)", maxMetaKeyLen)
	}
	if p.Value == nil && p.JSON == nil {
		fe.add("value", "value or json is required")
	}
	fe.text("value", p.Value, false, maxBodyLen)
	return fe
}

func validatePersonalInfo(p *models.PersonalInfoPatch) fieldErrors {
	var fe fieldErrors
	fe.text("name", p.Name, false, maxNameLen)
	fe.text("title", p.Title, false, maxTitleLen)
	fe.text("bio", p.Bio, false, maxBodyLen)
	if p.Email != nil && *p.Email != "" {
		if _, err := mail.ParseAddress(*p.Email); err != nil {
			fe.add("email", "email must be a valid address")
		}
	}
	if p.Socials != nil {
		for i, s := range *p.Socials {
			if strings.TrimSpace(s.Name) == "" {
				fe.add(fmt.Sprintf("socials[%d].name", i), "name must not be empty")
			}
			if strings.TrimSpace(s.URL) == "" {
				fe.add(fmt.Sprintf("socials[%d].url", i), "url must not be empty")
			}
		}
	}
	return fe
}

// validEmail is the login-form check: a bare address, no display name.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
