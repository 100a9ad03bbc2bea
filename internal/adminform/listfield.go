// internal/adminform/listfield.go
package adminform

import "strings"

// ListField is an ordered sequence of free-text entries backing one
// repeatable form field (requirements, gallery URLs, specializations).
//
// The field always holds at least one entry so a form can render at
// least one input row. That minimum is a presentation concern: Clean
// strips empty entries before the value is submitted, so it never
// reaches the store.
type ListField struct {
	items []string
}

// NewListField builds a field from existing values. A nil or empty
// slice yields a single empty entry.
func NewListField(items []string) *ListField {
	f := &ListField{items: make([]string, len(items))}
	copy(f.items, items)
	if len(f.items) == 0 {
		f.items = []string{""}
	}
	return f
}

// Add appends an empty entry.
func (f *ListField) Add() {
	f.items = append(f.items, "")
}

// Update replaces the entry at index i. Out-of-bounds indexes are
// ignored.
func (f *ListField) Update(i int, value string) {
	if i < 0 || i >= len(f.items) {
		return
	}
	f.items[i] = value
}

// Remove deletes the entry at index i. Removing the last remaining
// entry resets the field to a single empty entry instead of leaving it
// empty. Out-of-bounds indexes are ignored.
func (f *ListField) Remove(i int) {
	if i < 0 || i >= len(f.items) {
		return
	}
	f.items = append(f.items[:i], f.items[i+1:]...)
	if len(f.items) == 0 {
		f.items = []string{""}
	}
}

// Items returns a copy of the current entries, placeholder rows
// included.
func (f *ListField) Items() []string {
	out := make([]string, len(f.items))
	copy(out, f.items)
	return out
}

// Len returns the number of entries, placeholder rows included.
func (f *ListField) Len() int {
	return len(f.items)
}

// Clean returns the entries with whitespace-only values stripped, in
// order. The result is never nil, so an all-placeholder field submits
// as [] rather than null.
func (f *ListField) Clean() []string {
	out := make([]string, 0, len(f.items))
	for _, item := range f.items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
