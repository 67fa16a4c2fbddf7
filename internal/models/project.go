// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a portfolio entry. Unpublished projects are drafts visible
// only through the admin API.
type Project struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	ShortDescription string     `json:"short_description"`
	Description      string     `json:"description"`
	ImageURL         string     `json:"image_url"`
	LiveURL          string     `json:"live_url"`
	GithubURL        string     `json:"github_url"`
	Technologies     StringList `json:"technologies"`
	Categories       StringList `json:"categories"`
	Highlights       StringList `json:"highlights"`
	Featured         bool       `json:"featured"`
	Published        bool       `json:"published"`
	SortOrder        int        `json:"sort_order"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ProjectPatch is the admin request body for creating or updating a project.
type ProjectPatch struct {
	Title            *string   `json:"title"`
	ShortDescription *string   `json:"short_description"`
	Description      *string   `json:"description"`
	ImageURL         *string   `json:"image_url"`
	LiveURL          *string   `json:"live_url"`
	GithubURL        *string   `json:"github_url"`
	Technologies     *[]string `json:"technologies"`
	Categories       *[]string `json:"categories"`
	Highlights       *[]string `json:"highlights"`
	Featured         *bool     `json:"featured"`
	Published        *bool     `json:"published"`
	SortOrder        *int      `json:"sort_order"`
}

// Apply copies every set field of the patch onto dst.
func (p ProjectPatch) Apply(dst *Project) {
	setString(&dst.Title, p.Title)
	setString(&dst.ShortDescription, p.ShortDescription)
	setString(&dst.Description, p.Description)
	setString(&dst.ImageURL, p.ImageURL)
	setString(&dst.LiveURL, p.LiveURL)
	setString(&dst.GithubURL, p.GithubURL)
	setList(&dst.Technologies, p.Technologies)
	setList(&dst.Categories, p.Categories)
	setList(&dst.Highlights, p.Highlights)
	setBool(&dst.Featured, p.Featured)
	setBool(&dst.Published, p.Published)
	setInt(&dst.SortOrder, p.SortOrder)
}

// NewProject builds a project from a create request. Projects start as
// unpublished, non-featured drafts.
func NewProject(p ProjectPatch) Project {
	var pr Project
	p.Apply(&pr)
	ensureList(&pr.Technologies)
	ensureList(&pr.Categories)
	ensureList(&pr.Highlights)
	return pr
}
