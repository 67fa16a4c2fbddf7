// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

func TestNewProjectDefaults(t *testing.T) {
	p := NewProject(ProjectPatch{Title: strPtr("X"), Description: strPtr("Y")})

	if p.Published {
		t.Error("new project should default to unpublished")
	}
	if p.Featured {
		t.Error("new project should default to not featured")
	}
	if p.Technologies == nil || p.Categories == nil || p.Highlights == nil {
		t.Error("list fields should default to empty, not nil")
	}
	if p.Title != "X" || p.Description != "Y" {
		t.Errorf("fields not applied: %+v", p)
	}
}

func TestNewSkillDefaults(t *testing.T) {
	s := NewSkill(SkillPatch{Name: strPtr("Go"), Category: strPtr("Backend")})
	if s.Level != DefaultSkillLevel {
		t.Errorf("level: got %d, want %d", s.Level, DefaultSkillLevel)
	}

	s = NewSkill(SkillPatch{Name: strPtr("Go"), Level: intPtr(42)})
	if s.Level != 42 {
		t.Errorf("explicit level: got %d, want 42", s.Level)
	}
}

func TestNewTestimonialDefaults(t *testing.T) {
	tm := NewTestimonial(TestimonialPatch{Author: strPtr("Ann"), Text: strPtr("Great")})
	if tm.Rating != DefaultRating {
		t.Errorf("rating: got %d, want %d", tm.Rating, DefaultRating)
	}
	if !tm.Published {
		t.Error("testimonials should default to published")
	}

	tm = NewTestimonial(TestimonialPatch{Published: boolPtr(false)})
	if tm.Published {
		t.Error("explicit published=false must be honoured")
	}
}

func TestNewExperienceDefaults(t *testing.T) {
	e := NewExperience(ExperiencePatch{Title: strPtr("Dev")})
	if e.Type != ExperienceWork {
		t.Errorf("type: got %q, want work", e.Type)
	}
	if e.Technologies == nil {
		t.Error("technologies should default to empty")
	}
}

// TestEmptyPatchLeavesEntityUnchanged covers the merge-update contract:
// applying a patch with no fields set is a no-op for every entity.
func TestEmptyPatchLeavesEntityUnchanged(t *testing.T) {
	start, _ := ParseDate("2020-01-01")
	end, _ := ParseDate("2021-06-30")
	val := "hello"

	t.Run("project", func(t *testing.T) {
		before := NewProject(ProjectPatch{
			Title: strPtr("T"), Description: strPtr("D"),
			Technologies: &[]string{"Go"}, Featured: boolPtr(true), SortOrder: intPtr(3),
		})
		after := before
		ProjectPatch{}.Apply(&after)
		if !reflect.DeepEqual(before, after) {
			t.Errorf("got %+v, want %+v", after, before)
		}
	})

	t.Run("skill", func(t *testing.T) {
		before := NewSkill(SkillPatch{Name: strPtr("Go"), Category: strPtr("Lang")})
		after := before
		SkillPatch{}.Apply(&after)
		if !reflect.DeepEqual(before, after) {
			t.Errorf("got %+v, want %+v", after, before)
		}
	})

	t.Run("testimonial", func(t *testing.T) {
		before := NewTestimonial(TestimonialPatch{Author: strPtr("A"), Text: strPtr("B")})
		after := before
		TestimonialPatch{}.Apply(&after)
		if !reflect.DeepEqual(before, after) {
			t.Errorf("got %+v, want %+v", after, before)
		}
	})

	t.Run("experience", func(t *testing.T) {
		before := NewExperience(ExperiencePatch{Title: strPtr("Dev"), StartDate: &start, EndDate: &end})
		after := before
		ExperiencePatch{}.Apply(&after)
		if !reflect.DeepEqual(before, after) {
			t.Errorf("got %+v, want %+v", after, before)
		}
	})

	t.Run("palette", func(t *testing.T) {
		before := NewPalette(PalettePatch{Name: strPtr("P"), Slug: strPtr("p"), Colors: ColorMap{"bgPrimary": "#000"}})
		after := before
		PalettePatch{}.Apply(&after)
		if !reflect.DeepEqual(before, after) {
			t.Errorf("got %+v, want %+v", after, before)
		}
	})

	t.Run("meta", func(t *testing.T) {
		before := Meta{Key: "k", Value: &val, JSON: JSONMap{"a": 1.0}}
		after := before
		MetaPatch{}.Apply(&after)
		if !reflect.DeepEqual(before, after) {
			t.Errorf("got %+v, want %+v", after, before)
		}
	})

	t.Run("personal info", func(t *testing.T) {
		before := PersonalInfo{Name: "N", Socials: Socials{{Name: "GitHub", URL: "https://github.com/x"}}}
		after := before
		PersonalInfoPatch{}.Apply(&after)
		if !reflect.DeepEqual(before, after) {
			t.Errorf("got %+v, want %+v", after, before)
		}
	})
}

func TestExperiencePatchClearEndDate(t *testing.T) {
	end, _ := ParseDate("2021-06-30")
	e := Experience{EndDate: &end}

	ExperiencePatch{ClearEndDate: true, EndDate: &end}.Apply(&e)
	if e.EndDate != nil {
		t.Errorf("end date should be cleared, got %v", e.EndDate)
	}
}

func TestPalettePatchMergesColors(t *testing.T) {
	p := Palette{Colors: ColorMap{"bgPrimary": "#000", "textPrimary": "#fff"}}
	PalettePatch{Colors: ColorMap{"textPrimary": "#eee"}}.Apply(&p)

	want := ColorMap{"bgPrimary": "#000", "textPrimary": "#eee"}
	if !reflect.DeepEqual(p.Colors, want) {
		t.Errorf("colors: got %v, want %v", p.Colors, want)
	}
}

func TestPalettePatchActivates(t *testing.T) {
	if (PalettePatch{}).Activates() {
		t.Error("empty patch must not activate")
	}
	if (PalettePatch{IsActive: boolPtr(false)}).Activates() {
		t.Error("is_active=false must not activate")
	}
	if !(PalettePatch{IsActive: boolPtr(true)}).Activates() {
		t.Error("is_active=true must activate")
	}
}

func TestIsColorSlot(t *testing.T) {
	if !IsColorSlot("accentPrimary") {
		t.Error("accentPrimary should be a slot")
	}
	if IsColorSlot("border") {
		t.Error("border should not be a slot")
	}
}

func TestExperienceTypeValid(t *testing.T) {
	for _, typ := range []ExperienceType{"work", "education", "freelance", "other"} {
		if !typ.Valid() {
			t.Errorf("%q should be valid", typ)
		}
	}
	for _, typ := range []ExperienceType{"", "Work", "hobby"} {
		if typ.Valid() {
			t.Errorf("%q should be invalid", typ)
		}
	}
}

func TestMetaResolved(t *testing.T) {
	v := "text"
	if got := (Meta{Value: &v, JSON: JSONMap{"a": 1.0}}).Resolved(); got != "text" {
		t.Errorf("text wins: got %v", got)
	}
	got := (Meta{JSON: JSONMap{"a": 1.0}}).Resolved()
	if m, ok := got.(JSONMap); !ok || m["a"] != 1.0 {
		t.Errorf("json fallback: got %#v", got)
	}
	if got := (Meta{}).Resolved(); got != nil {
		t.Errorf("empty: got %v, want nil", got)
	}
}

func TestDateJSON(t *testing.T) {
	d, err := ParseDate("2022-03-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	b, _ := json.Marshal(d)
	if string(b) != `"2022-03-15"` {
		t.Errorf("marshal: got %s", b)
	}

	var back Date
	if err := json.Unmarshal([]byte(`"2022-03-15T10:00:00Z"`), &back); err != nil {
		t.Fatalf("unmarshal RFC3339: %v", err)
	}
	if back.String() != "2022-03-15" {
		t.Errorf("unmarshal RFC3339: got %s", back)
	}

	if err := json.Unmarshal([]byte(`"15/03/2022"`), &back); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2020, 5, 4, 13, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2020-05-04" {
		t.Errorf("scan time: got %s", d)
	}
	if err := d.Scan("2019-01-02"); err != nil || d.String() != "2019-01-02" {
		t.Errorf("scan string: got %s, err %v", d, err)
	}
	if err := d.Scan(42); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestStringListScan(t *testing.T) {
	var l StringList
	if err := l.Scan(`{Go,"Node.js","Tailwind CSS"}`); err != nil {
		t.Fatalf("scan: %v", err)
	}
	want := StringList{"Go", "Node.js", "Tailwind CSS"}
	if !reflect.DeepEqual(l, want) {
		t.Errorf("scan: got %v, want %v", l, want)
	}

	if err := l.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if l == nil || len(l) != 0 {
		t.Errorf("scan nil: got %#v, want empty list", l)
	}
}

func TestStringListValueRoundTrip(t *testing.T) {
	in := StringList{"a", "b c", `quo"te`}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var out StringList
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan(%v): %v", v, err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip: got %v, want %v", out, in)
	}
}

func TestStringListMarshalNil(t *testing.T) {
	b, _ := json.Marshal(struct {
		L StringList `json:"l"`
	}{})
	if string(b) != `{"l":[]}` {
		t.Errorf("nil list: got %s", b)
	}
}

func TestJSONMapScanValue(t *testing.T) {
	var m JSONMap
	if err := m.Scan([]byte(`{"title":"Hi","nested":{"n":2}}`)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if m["title"] != "Hi" {
		t.Errorf("title: got %v", m["title"])
	}
	nested, ok := m["nested"].(map[string]any)
	if !ok || nested["n"] != 2.0 {
		t.Errorf("nested: got %#v", m["nested"])
	}

	if err := m.Scan(nil); err != nil || m != nil {
		t.Errorf("scan nil: got %v, err %v", m, err)
	}

	v, err := JSONMap(nil).Value()
	if err != nil || v != nil {
		t.Errorf("nil value: got %v, err %v", v, err)
	}
}

func TestSocialsScan(t *testing.T) {
	var s Socials
	if err := s.Scan(`[{"name":"GitHub","url":"https://github.com/x","icon":"github"}]`); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(s) != 1 || s[0].Icon != "github" {
		t.Errorf("got %+v", s)
	}
	if err := s.Scan(nil); err != nil || s == nil {
		t.Errorf("scan nil: got %#v, err %v", s, err)
	}
}
