// Package normalize holds small canonicalization helpers applied to user
// input before it is validated or persisted.
package normalize

import "strings"

// Email lowercases and trims an email address. Email comparisons and the
// unique index on users.email both assume this form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}
