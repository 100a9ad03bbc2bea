package slug

import (
	"strings"
	"testing"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Senior Architect!! (Remote)", "senior-architect-remote"},
		{"Hillside Residence", "hillside-residence"},
		{"  Leading   Whitespace  ", "leading-whitespace"},
		{"UPPERCASE", "uppercase"},
		{"already-valid-slug", "already-valid-slug"},
		{"Mixed-Case Slug", "mixed-case-slug"},
		{"a - b", "a-b"},
		{"---", ""},
		{"", ""},
		{"Café & Atelier", "caf-atelier"},
		{"2024 Year in Review", "2024-year-in-review"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Derive(tt.input)
			if got != tt.want {
				t.Errorf("Derive(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDeriveIdempotent(t *testing.T) {
	titles := []string{
		"Senior Architect!! (Remote)",
		"Hillside   Residence — Phase 2",
		"plain",
		"",
		"A!@#$%^&*()B",
	}
	for _, title := range titles {
		once := Derive(title)
		twice := Derive(once)
		if once != twice {
			t.Errorf("Derive not idempotent for %q: first %q, second %q", title, once, twice)
		}
	}
}

func TestDeriveCharacterSet(t *testing.T) {
	titles := []string{
		"Senior Architect!! (Remote)",
		"  SHOUTING   with   runs  ",
		"punctuation, everywhere. yes?",
	}
	for _, title := range titles {
		got := Derive(title)
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
			t.Errorf("Derive(%q) = %q has leading/trailing hyphen", title, got)
		}
		if strings.Contains(got, "--") {
			t.Errorf("Derive(%q) = %q contains a hyphen run", title, got)
		}
		for _, r := range got {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			if !valid {
				t.Errorf("Derive(%q) = %q contains invalid rune %q", title, got, r)
			}
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("hillside-residence") {
		t.Error("expected canonical slug to be valid")
	}
	if IsValid("Hillside Residence") {
		t.Error("expected raw title to be invalid")
	}
	if IsValid("") {
		t.Error("expected empty string to be invalid")
	}
}
