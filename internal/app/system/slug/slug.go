// Package slug derives URL-safe identifiers from human titles.
//
// A slug is derived once, when a record is created without an explicit
// slug. It is never re-derived on update: a published slug is a public
// URL, and regenerating it from an edited title would break links.
package slug

import "strings"

// Derive normalizes a title into a URL-safe slug: lowercase, characters
// outside [a-z0-9 -] stripped, whitespace runs collapsed to a single
// hyphen, repeated hyphens collapsed, leading/trailing hyphens trimmed.
//
// Derive is idempotent: Derive(Derive(t)) == Derive(t).
func Derive(title string) string {
	lower := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case r == '-':
			b.WriteByte('-')
		}
		// everything else is dropped
	}

	// Whitespace runs become a single hyphen.
	fields := strings.Fields(b.String())
	s := strings.Join(fields, "-")

	// Collapse hyphen runs left over from adjacent separators.
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}

	return strings.Trim(s, "-")
}

// IsValid reports whether s is already in canonical slug form.
func IsValid(s string) bool {
	return s != "" && s == Derive(s)
}
