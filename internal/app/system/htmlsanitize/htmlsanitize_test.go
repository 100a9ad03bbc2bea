package htmlsanitize

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
		excludes string
	}{
		{
			name:     "keeps formatting",
			input:    "<p>A <strong>concrete</strong> pavilion</p>",
			contains: "<strong>concrete</strong>",
		},
		{
			name:     "strips script",
			input:    `<p>hi</p><script>alert("x")</script>`,
			contains: "<p>hi</p>",
			excludes: "<script>",
		},
		{
			name:     "strips event handlers",
			input:    `<a href="https://example.com" onclick="steal()">site</a>`,
			contains: "site",
			excludes: "onclick",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if tt.contains != "" && !strings.Contains(got, tt.contains) {
				t.Errorf("Sanitize(%q) = %q, expected to contain %q", tt.input, got, tt.contains)
			}
			if tt.excludes != "" && strings.Contains(got, tt.excludes) {
				t.Errorf("Sanitize(%q) = %q, expected to exclude %q", tt.input, got, tt.excludes)
			}
		})
	}
}
