// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRoleValid(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleEditor, true},
		{"", false},
		{"ADMIN", false},
		{"owner", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.Valid(); got != tt.want {
				t.Errorf("Role(%q).Valid() = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestUserRequiresTOTP(t *testing.T) {
	secret := "JBSWY3DPEHPK3PXP"
	empty := ""

	tests := []struct {
		name    string
		secret  *string
		enabled bool
		want    bool
	}{
		{name: "no secret, disabled", secret: nil, enabled: false, want: false},
		{name: "secret set, not yet enabled", secret: &secret, enabled: false, want: false},
		{name: "enabled without secret", secret: nil, enabled: true, want: false},
		{name: "enabled with empty secret", secret: &empty, enabled: true, want: false},
		{name: "enabled with secret", secret: &secret, enabled: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{TOTPSecret: tt.secret, TOTPEnabled: tt.enabled}
			if got := u.RequiresTOTP(); got != tt.want {
				t.Errorf("RequiresTOTP() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestUserJSONHidesSecrets ensures credentials never leak into API responses.
func TestUserJSONHidesSecrets(t *testing.T) {
	secret := "JBSWY3DPEHPK3PXP"
	u := User{Email: "a@b.c", PasswordHash: "$2a$10$hash", TOTPSecret: &secret}

	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(b)
	if strings.Contains(out, "$2a$10$hash") {
		t.Errorf("password hash leaked: %s", out)
	}
	if strings.Contains(out, secret) {
		t.Errorf("totp secret leaked: %s", out)
	}
}
