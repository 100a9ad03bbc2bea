// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/forma-studio/forma/internal/app/system/httpapi"
)

// DefaultLimit is the page size used when the request does not ask for one.
const DefaultLimit = 20

// MaxLimit caps the page size a client can request.
const MaxLimit = 100

// Params holds the parsed page/limit pair from a list request.
type Params struct {
	Page  int
	Limit int
}

// Parse extracts "page" and "limit" query parameters, clamping them to
// sane values. Invalid or missing values fall back to page 1 and
// DefaultLimit.
func Parse(r *http.Request) Params {
	p := Params{Page: 1, Limit: DefaultLimit}

	if s := query.Get(r, "page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Page = n
		}
	}
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Limit = n
			if p.Limit > MaxLimit {
				p.Limit = MaxLimit
			}
		}
	}
	return p
}

// Skip returns the number of documents to skip for this page.
func (p Params) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Envelope builds the response pagination block for a total row count.
// TotalPages is at least 1 so clients can render page controls even for
// an empty collection.
func (p Params) Envelope(total int64) httpapi.Pagination {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	if pages < 1 {
		pages = 1
	}
	return httpapi.Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: pages,
	}
}
