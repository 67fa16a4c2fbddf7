// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package seed

import "portfolio/internal/models"

func str(s string) *string { return &s }
func flag(b bool) *bool    { return &b }
func num(i int) *int       { return &i }
func list(s ...string) *[]string {
	if s == nil {
		s = []string{}
	}
	return &s
}

func date(s string) *models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func sampleProfile() models.PersonalInfoPatch {
	return models.PersonalInfoPatch{
		Name:     str("Alex Morgan"),
		Title:    str("Full Stack Developer"),
		Email:    str("alex@example.com"),
		Location: str("Bucharest, Romania"),
		Bio: str("Developer with more than five years of experience building fast, " +
			"accessible web applications.\n\nI care about **clean APIs**, good tooling and shipping."),
		Socials: &[]models.Social{
			{Name: "GitHub", Icon: "github", URL: "https://github.com/"},
			{Name: "LinkedIn", Icon: "linkedin", URL: "https://linkedin.com/in/"},
			{Name: "Twitter", Icon: "twitter", URL: "https://twitter.com/"},
		},
	}
}

func samplePalettes() []models.PalettePatch {
	return []models.PalettePatch{
		{
			Name: str("Violet Dreams"),
			Slug: str("default"),
			Colors: models.ColorMap{
				"bgPrimary": "#1a1a3e", "bgSecondary": "#252558", "bgTertiary": "#0f0f24",
				"accentPrimary": "#9D4EDD", "accentSecondary": "#00D9FF", "accentTertiary": "#00B8CC",
				"textPrimary": "#FFFFFF", "textSecondary": "#A1A1A6",
			},
			IsActive: flag(true),
		},
		{
			Name: str("Minimalist Light"),
			Slug: str("light"),
			Colors: models.ColorMap{
				"bgPrimary": "#ffffff", "bgSecondary": "#f8f9fa", "bgTertiary": "#f0f1f3",
				"accentPrimary": "#7c3aed", "accentSecondary": "#0891b2", "accentTertiary": "#0d9488",
				"textPrimary": "#1a1a2e", "textSecondary": "#6b7280",
			},
		},
		{
			Name: str("Neon Futurism"),
			Slug: str("neon"),
			Colors: models.ColorMap{
				"bgPrimary": "#0A0E27", "bgSecondary": "#0f1433", "bgTertiary": "#050811",
				"accentPrimary": "#FF006E", "accentSecondary": "#00F5FF", "accentTertiary": "#B537F2",
				"textPrimary": "#f0f0ff", "textSecondary": "#a0a0b0",
			},
		},
	}
}

func sampleProjects() []models.ProjectPatch {
	return []models.ProjectPatch{
		{
			Title:            str("E-Commerce Platform"),
			ShortDescription: str("Full e-commerce platform with a Go API"),
			Description:      str("A storefront with product management, cart, Stripe payments and an admin dashboard."),
			Technologies:     list("Go", "PostgreSQL", "Stripe", "Tailwind CSS"),
			Categories:       list("fullstack", "backend"),
			Highlights:       list("Secure payments", "1000+ products", "Analytics dashboard"),
			Featured:         flag(true),
			Published:        flag(true),
		},
		{
			Title:            str("Task Management App"),
			ShortDescription: str("Kanban board with drag and drop"),
			Description:      str("Task management with a Kanban board, drag and drop and real-time collaboration."),
			Technologies:     list("TypeScript", "WebSockets", "Valkey"),
			Categories:       list("frontend"),
			Highlights:       list("Real-time sync", "Drag and drop", "Team collaboration"),
			Featured:         flag(true),
			Published:        flag(true),
		},
		{
			Title:            str("REST API Backend"),
			ShortDescription: str("Scalable REST API"),
			Description:      str("API with JWT authentication, rate limiting, response caching and OpenAPI docs."),
			Technologies:     list("Go", "chi", "PostgreSQL", "Valkey"),
			Categories:       list("backend"),
			Highlights:       list("JWT auth", "Rate limiting", "API documentation"),
			Published:        flag(true),
		},
	}
}

func sampleSkills() []models.SkillPatch {
	type s struct {
		name, category, icon string
		level                int
	}
	raw := []s{
		{"TypeScript", "frontend", "typescript", 90},
		{"Tailwind CSS", "frontend", "tailwind", 90},
		{"Go", "backend", "go", 90},
		{"PostgreSQL", "backend", "postgresql", 85},
		{"Valkey", "backend", "redis", 75},
		{"Git", "tools", "git", 90},
		{"Docker", "tools", "docker", 80},
		{"Communication", "soft", "chat", 90},
		{"Problem Solving", "soft", "lightbulb", 95},
	}
	out := make([]models.SkillPatch, 0, len(raw))
	for _, r := range raw {
		out = append(out, models.SkillPatch{
			Name: str(r.name), Category: str(r.category), Icon: str(r.icon), Level: num(r.level),
		})
	}
	return out
}

func sampleTestimonials() []models.TestimonialPatch {
	return []models.TestimonialPatch{
		{
			Author:   str("Maria Popescu"),
			Role:     str("CEO"),
			Company:  str("TechStart"),
			Text:     str("Working with Alex was exceptional. The application exceeded every expectation."),
			Featured: flag(true),
		},
		{
			Author:   str("Laura White"),
			Role:     str("Product Manager"),
			Company:  str("InnovateTech"),
			Text:     str("A professional with a deep understanding of client needs. Flawless delivery."),
			Featured: flag(true),
		},
		{
			Author:  str("Daniel Green"),
			Role:    str("CTO"),
			Company: str("StartupHub"),
			Text:    str("Top technical skills and excellent problem solving. Highly recommended."),
		},
	}
}

func sampleExperiences() []models.ExperiencePatch {
	education := models.ExperienceEducation
	return []models.ExperiencePatch{
		{
			Title:        str("Senior Backend Developer"),
			Company:      str("TechCorp"),
			Location:     str("Bucharest"),
			StartDate:    date("2022-01-01"),
			IsCurrent:    flag(true),
			Description:  str("Building **enterprise APIs** in Go and leading a team of four."),
			Technologies: list("Go", "PostgreSQL", "Kubernetes"),
		},
		{
			Title:        str("Full Stack Developer"),
			Company:      str("StartupXYZ"),
			Location:     str("Cluj-Napoca"),
			StartDate:    date("2020-03-01"),
			EndDate:      date("2021-12-31"),
			Description:  str("Full stack development of SaaS platforms."),
			Technologies: list("TypeScript", "Go", "Docker"),
		},
		{
			Title:       str("BSc Computer Science"),
			Company:     str("University"),
			StartDate:   date("2016-09-01"),
			EndDate:     date("2020-02-28"),
			Description: str("Computer science degree with a focus on distributed systems."),
			Type:        &education,
		},
	}
}

func sampleMeta() map[string]string {
	return map[string]string{
		"hero_greeting": "Welcome to my portfolio",
		"hero_name":     "Alex Morgan",
		"hero_title":    "Full Stack Developer",
		"hero_subtitle": "I build fast, reliable digital products",
		"hero_cta":      "See my work",
		"about_title":   "About me",
		"about_intro":   "Turning ideas into software",
	}
}
