// Package htmlsanitize cleans rich-text input from the admin panel
// before it is stored. Project descriptions, service bodies, and
// article bodies come from a WYSIWYG editor and must never carry
// script or event-handler payloads into the public API.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.UGCPolicy()

// Sanitize strips unsafe HTML, keeping the formatting tags a rich-text
// editor produces (headings, lists, links, emphasis, images).
func Sanitize(html string) string {
	return policy.Sanitize(html)
}
