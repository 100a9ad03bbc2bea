// Package httpapi implements the JSON wire conventions shared by every
// API handler: the error body shape, the pagination envelope, and
// encode/decode helpers.
//
// Error bodies always carry an "error" field; "details", "hint" and
// "code" are optional diagnostics the client may display but must not
// interpret.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrorBody is the JSON error shape for all API responses.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ListEnvelope wraps list responses: { data: [...], pagination: {...} }.
type ListEnvelope[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewListEnvelope builds the envelope, guaranteeing data is [] rather
// than null when the page is empty.
func NewListEnvelope[T any](data []T, p Pagination) ListEnvelope[T] {
	if data == nil {
		data = []T{}
	}
	return ListEnvelope[T]{Data: data, Pagination: p}
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorBody with the given status and message.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorBody{Error: msg})
}

// WriteErrorBody writes a fully specified ErrorBody.
func WriteErrorBody(w http.ResponseWriter, status int, body ErrorBody) {
	WriteJSON(w, status, body)
}

// WriteServerError logs err and writes a 500 with diagnostic fields
// populated from the underlying database error where available.
func WriteServerError(w http.ResponseWriter, log *zap.Logger, msg string, err error) {
	if log != nil {
		log.Error(msg, zap.Error(err))
	}

	body := ErrorBody{Error: msg}
	if err != nil {
		body.Details = err.Error()

		var ce mongo.CommandError
		if errors.As(err, &ce) {
			body.Code = fmt.Sprintf("%d", ce.Code)
			body.Hint = ce.Name
		}
		var we mongo.WriteException
		if errors.As(err, &we) && len(we.WriteErrors) > 0 {
			body.Code = fmt.Sprintf("%d", we.WriteErrors[0].Code)
		}
	}
	WriteJSON(w, http.StatusInternalServerError, body)
}

// Decode reads the request body as JSON into v. The body is capped at
// 1 MiB; media uploads go through multipart handlers, not this path.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(v)
}
