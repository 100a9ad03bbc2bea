// Package status defines the publish lifecycle shared by all content
// entities. A draft record is invisible on the public API; a published
// record is live. Users reuse the same vocabulary with "active"
// standing in for published and "disabled" for draft.
package status

const (
	Published = "published"
	Draft     = "draft"

	// Account statuses (users collection).
	Active   = "active"
	Disabled = "disabled"
)

// IsValid reports whether s is a recognized content status.
func IsValid(s string) bool {
	return s == Published || s == Draft
}

// IsValidAccount reports whether s is a recognized account status.
func IsValidAccount(s string) bool {
	return s == Active || s == Disabled
}
