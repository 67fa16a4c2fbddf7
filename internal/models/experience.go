// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ExperienceType classifies a timeline entry.
type ExperienceType string

const (
	ExperienceWork      ExperienceType = "work"
	ExperienceEducation ExperienceType = "education"
	ExperienceFreelance ExperienceType = "freelance"
	ExperienceOther     ExperienceType = "other"
)

// Valid reports whether t is one of the known experience types.
func (t ExperienceType) Valid() bool {
	switch t {
	case ExperienceWork, ExperienceEducation, ExperienceFreelance, ExperienceOther:
		return true
	}
	return false
}

// Experience is a timeline entry: a job, a degree, a freelance engagement.
// When IsCurrent is set, EndDate carries no meaning but is kept as stored.
type Experience struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Company      string         `json:"company"`
	Location     string         `json:"location"`
	StartDate    *Date          `json:"start_date"`
	EndDate      *Date          `json:"end_date"`
	IsCurrent    bool           `json:"is_current"`
	Description  string         `json:"description"`
	Technologies StringList     `json:"technologies"`
	Type         ExperienceType `json:"type"`
	SortOrder    int            `json:"sort_order"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ExperiencePatch is a partial experience update. ClearEndDate removes a
// stored end date; it wins over EndDate.
type ExperiencePatch struct {
	Title        *string
	Company      *string
	Location     *string
	StartDate    *Date
	EndDate      *Date
	ClearEndDate bool
	IsCurrent    *bool
	Description  *string
	Technologies *[]string
	Type         *ExperienceType
	SortOrder    *int
}

// Apply copies every set field of the patch onto dst.
func (p ExperiencePatch) Apply(dst *Experience) {
	setString(&dst.Title, p.Title)
	setString(&dst.Company, p.Company)
	setString(&dst.Location, p.Location)
	if p.StartDate != nil {
		d := *p.StartDate
		dst.StartDate = &d
	}
	if p.ClearEndDate {
		dst.EndDate = nil
	} else if p.EndDate != nil {
		d := *p.EndDate
		dst.EndDate = &d
	}
	setBool(&dst.IsCurrent, p.IsCurrent)
	setString(&dst.Description, p.Description)
	setList(&dst.Technologies, p.Technologies)
	if p.Type != nil {
		dst.Type = *p.Type
	}
	setInt(&dst.SortOrder, p.SortOrder)
}

// NewExperience builds an experience from a create request.
func NewExperience(p ExperiencePatch) Experience {
	e := Experience{Type: ExperienceWork}
	p.Apply(&e)
	ensureList(&e.Technologies)
	return e
}
