// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Patch types carry partial updates: a nil field means "leave unchanged".
// The helpers below apply one field at a time.

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setList(dst *StringList, v *[]string) {
	if v != nil {
		*dst = cloneList(*v)
	}
}

func cloneList(in []string) StringList {
	out := make(StringList, len(in))
	copy(out, in)
	return out
}

// ensureList replaces a nil list with an empty one.
func ensureList(l *StringList) {
	if *l == nil {
		*l = StringList{}
	}
}
