// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models holds the portfolio entities, their defaults and the
// partial-update patches the admin API applies to them.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role gates the admin API. Only RoleAdmin may write content; editors can
// sign in and read their own profile.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// Valid reports whether r is one of the roles the users table accepts.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor
}

// User is an account of the admin API. The password hash and TOTP secret
// never leave the server.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	TOTPSecret   *string   `json:"-"` // set by 2FA setup, before it is enabled
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RequiresTOTP reports whether login must be confirmed with a TOTP code.
func (u *User) RequiresTOTP() bool {
	return u.TOTPEnabled && u.TOTPSecret != nil && *u.TOTPSecret != ""
}
