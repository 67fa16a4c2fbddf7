// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSkillLevel is used when a skill is created without a level.
const DefaultSkillLevel = 80

// Skill is a named competency with a 1–100 proficiency level.
type Skill struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Level       int       `json:"level"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

// SkillPatch is the admin request body for creating or updating a skill.
type SkillPatch struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Level       *int    `json:"level"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
}

// Apply copies every set field of the patch onto dst.
func (p SkillPatch) Apply(dst *Skill) {
	setString(&dst.Name, p.Name)
	setString(&dst.Category, p.Category)
	setInt(&dst.Level, p.Level)
	setString(&dst.Icon, p.Icon)
	setString(&dst.Description, p.Description)
	setInt(&dst.SortOrder, p.SortOrder)
}

// NewSkill builds a skill from a create request.
func NewSkill(p SkillPatch) Skill {
	s := Skill{Level: DefaultSkillLevel}
	p.Apply(&s)
	return s
}
