// internal/adminform/coordinator.go
package adminform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/forma-studio/forma/internal/app/system/slug"
)

// ErrTimedOut is returned when the create request exceeds its client
// deadline. Callers show it as "timed out, retry" rather than a server
// fault; note the retry can create a duplicate since requests carry no
// idempotency key.
var ErrTimedOut = errors.New("request timed out, please retry")

// ValidationError is a field-level failure found before any network
// call is made.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

// APIError is a non-2xx response from the admin API, carrying the
// server's error message verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Result is a successful submission: the record the server returned
// and where to navigate next.
type Result struct {
	Record   map[string]any
	Redirect string
}

// DefaultCreateTimeout is the client-side deadline on create requests.
const DefaultCreateTimeout = 30 * time.Second

// Coordinator drives the create/update round trip for one admin form:
// local validation, payload assembly, exactly one HTTP call, and
// error-body interpretation. The draft is never modified, so a failed
// submission can be retried without re-entering data.
type Coordinator struct {
	Client  *http.Client
	BaseURL string // admin API prefix, e.g. "https://host/api/admin"

	// CreateTimeout overrides DefaultCreateTimeout when positive.
	// Updates carry no client deadline beyond the caller's context.
	CreateTimeout time.Duration
}

// NewCoordinator builds a coordinator against an admin API prefix.
func NewCoordinator(baseURL string) *Coordinator {
	return &Coordinator{
		Client:  http.DefaultClient,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Create validates the draft, derives a slug from the title when none
// was supplied, and POSTs the payload to the entity's collection
// endpoint. On success the caller is redirected to the entity list.
func (c *Coordinator) Create(ctx context.Context, entity string, d *Draft, required ...string) (*Result, error) {
	if err := checkRequired(d, required); err != nil {
		return nil, err
	}

	payload := d.Payload()
	if s, _ := payload["slug"].(string); strings.TrimSpace(s) == "" {
		if title := d.GetString("title"); title != "" {
			payload["slug"] = slug.Derive(title)
		}
	}

	timeout := c.CreateTimeout
	if timeout <= 0 {
		timeout = DefaultCreateTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := c.send(ctx, http.MethodPost, c.BaseURL+"/"+entity, payload)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimedOut
		}
		return nil, err
	}
	res.Redirect = "/admin/" + entity
	return res, nil
}

// Update validates the draft and PUTs the payload to the entity's item
// endpoint. The stored slug is left alone: it is never re-derived once
// set.
func (c *Coordinator) Update(ctx context.Context, entity, id string, d *Draft, required ...string) (*Result, error) {
	if err := checkRequired(d, required); err != nil {
		return nil, err
	}

	res, err := c.send(ctx, http.MethodPut, c.BaseURL+"/"+entity+"/"+id, d.Payload())
	if err != nil {
		return nil, err
	}
	res.Redirect = "/admin/" + entity
	return res, nil
}

func checkRequired(d *Draft, required []string) error {
	for _, field := range required {
		if strings.TrimSpace(d.GetString(field)) == "" {
			return &ValidationError{Field: field}
		}
	}
	return nil
}

// send issues the single HTTP call for a submission and maps the
// response: 2xx decodes into a Result, anything else becomes an
// APIError built from the body's "error" field, falling back to a
// generic message when the body is not usable.
func (c *Coordinator) send(ctx context.Context, method, url string, payload map[string]any) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var record map[string]any
		// A body that fails to decode still counts as success; the
		// admin refetches the list after redirect anyway.
		_ = json.NewDecoder(resp.Body).Decode(&record)
		return &Result{Record: record}, nil
	}

	apiErr := &APIError{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("request failed with status %d", resp.StatusCode),
	}
	var errBody struct {
		Error string `json:"error"`
	}
	if derr := json.NewDecoder(resp.Body).Decode(&errBody); derr == nil && errBody.Error != "" {
		apiErr.Message = errBody.Error
	}
	return nil, apiErr
}
