// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package filestore

import (
	"cmp"
	"time"

	"portfolio/internal/models"
)

// The comparators below reproduce the ORDER BY clauses of the PostgreSQL
// repositories so both backends list content identically.

func chain[T any](cmps ...func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		for _, c := range cmps {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

// trueFirst orders true before false (ORDER BY flag DESC).
func trueFirst(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

func newestFirst(a, b time.Time) int { return b.Compare(a) }

// latestDateFirst orders dates descending with missing dates last.
func latestDateFirst(a, b *models.Date) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return b.Compare(a.Time)
	}
}

var (
	projectPublicOrder = chain(
		func(a, b models.Project) int { return trueFirst(a.Featured, b.Featured) },
		func(a, b models.Project) int { return cmp.Compare(a.SortOrder, b.SortOrder) },
		func(a, b models.Project) int { return newestFirst(a.CreatedAt, b.CreatedAt) },
	)
	projectAdminOrder = chain(
		func(a, b models.Project) int { return cmp.Compare(a.SortOrder, b.SortOrder) },
		func(a, b models.Project) int { return newestFirst(a.CreatedAt, b.CreatedAt) },
	)

	skillPublicOrder = chain(
		func(a, b models.Skill) int { return cmp.Compare(a.SortOrder, b.SortOrder) },
		func(a, b models.Skill) int { return cmp.Compare(b.Level, a.Level) },
	)
	skillAdminOrder = chain(
		func(a, b models.Skill) int { return cmp.Compare(a.Category, b.Category) },
		func(a, b models.Skill) int { return cmp.Compare(a.SortOrder, b.SortOrder) },
	)

	testimonialPublicOrder = chain(
		func(a, b models.Testimonial) int { return trueFirst(a.Featured, b.Featured) },
		func(a, b models.Testimonial) int { return newestFirst(a.CreatedAt, b.CreatedAt) },
	)
	testimonialAdminOrder = func(a, b models.Testimonial) int {
		return newestFirst(a.CreatedAt, b.CreatedAt)
	}

	experiencePublicOrder = chain(
		func(a, b models.Experience) int { return trueFirst(a.IsCurrent, b.IsCurrent) },
		func(a, b models.Experience) int { return latestDateFirst(a.StartDate, b.StartDate) },
	)
	experienceAdminOrder = func(a, b models.Experience) int {
		return latestDateFirst(a.StartDate, b.StartDate)
	}

	palettePublicOrder = chain(
		func(a, b models.Palette) int { return trueFirst(a.IsActive, b.IsActive) },
		func(a, b models.Palette) int { return cmp.Compare(a.Name, b.Name) },
	)
	paletteAdminOrder = func(a, b models.Palette) int { return cmp.Compare(a.Name, b.Name) }
)
