// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Palette and project names ---
		{"simple two words", "Violet Dreams", "violet-dreams"},
		{"name with year", "Portfolio 2026", "portfolio-2026"},
		{"single word", "Neon", "neon"},
		{"already a slug", "minimalist-light", "minimalist-light"},

		// --- Special characters ---
		{"punctuation marks", "Hello, World! How's it going?", "hello-world-hows-it-going"},
		{"ampersand and at sign", "Rock & Roll @ the Arena", "rock-roll-the-arena"},
		{"parentheses and brackets", "Version (2.0) [Beta]", "version-20-beta"},
		{"slashes and pipes", "Frontend/Backend | Full Stack", "frontendbackend-full-stack"},
		{"hash and dollar", "Issue #42 costs $100", "issue-42-costs-100"},

		// --- Accents ---
		{"romanian diacritics", "Brîză de Vară în Cluj", "briza-de-vara-in-cluj"},
		{"french accents", "Café Résumé Noël", "cafe-resume-noel"},
		{"german umlauts", "Über die Brücke", "uber-die-brucke"},
		{"chinese characters dropped", "Hello 世界 World", "hello-world"},
		{"emoji dropped", "Sunset 🌅 Glow", "sunset-glow"},

		// --- Whitespace and hyphens ---
		{"leading and trailing spaces", "  hello world  ", "hello-world"},
		{"multiple spaces collapsed", "hello    world", "hello-world"},
		{"tabs and newlines", "hello\tdark\nworld", "hello-dark-world"},
		{"hyphen runs", "  --hello -- world--  ", "hello-world"},
		{"single hyphen preserved", "well-known fact", "well-known-fact"},

		// --- Edge cases ---
		{"empty string", "", ""},
		{"only spaces", "     ", ""},
		{"only hyphens", "-----", ""},
		{"only special characters", "!@#$%^&*()", ""},
		{"single character", "A", "a"},
		{"date-like string", "2026-02-25", "2026-02-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that generating a slug from an already
// valid slug produces the same result.
func TestGenerate_Idempotent(t *testing.T) {
	for _, s := range []string{"violet-dreams", "neon-2026", "a", "123"} {
		t.Run(s, func(t *testing.T) {
			if got := Generate(s); got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"default", true},
		{"dark-mode-2", true},
		{"", false},
		{"Dark Mode", false},
		{"-edge-", false},
		{"a--b", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Valid(tt.in); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
