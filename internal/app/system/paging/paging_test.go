package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		url       string
		wantPage  int
		wantLimit int
	}{
		{"/api/public/projects", 1, DefaultLimit},
		{"/api/public/projects?page=3", 3, DefaultLimit},
		{"/api/public/projects?page=3&limit=10", 3, 10},
		{"/api/public/projects?page=0", 1, DefaultLimit},
		{"/api/public/projects?page=-2&limit=-5", 1, DefaultLimit},
		{"/api/public/projects?page=abc&limit=xyz", 1, DefaultLimit},
		{"/api/public/projects?limit=5000", 1, MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p := Parse(r)
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit {
				t.Errorf("Parse(%q) = {Page:%d Limit:%d}, want {Page:%d Limit:%d}",
					tt.url, p.Page, p.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	p := Params{Page: 3, Limit: 20}
	if got := p.Skip(); got != 40 {
		t.Errorf("Skip() = %d, want 40", got)
	}
}

func TestEnvelope(t *testing.T) {
	tests := []struct {
		name      string
		params    Params
		total     int64
		wantPages int
	}{
		{"exact multiple", Params{Page: 1, Limit: 10}, 30, 3},
		{"partial last page", Params{Page: 1, Limit: 10}, 31, 4},
		{"empty collection", Params{Page: 1, Limit: 10}, 0, 1},
		{"single row", Params{Page: 1, Limit: 10}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := tt.params.Envelope(tt.total)
			if env.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", env.TotalPages, tt.wantPages)
			}
			if env.Total != tt.total {
				t.Errorf("Total = %d, want %d", env.Total, tt.total)
			}
		})
	}
}
