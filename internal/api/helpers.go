// Package api exposes splitpal's JSON HTTP surface. Handlers decode and
// validate requests, call the services, and translate domain errors into
// HTTP statuses; no business logic lives here.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// maxBodyBytes caps request bodies at 1 MiB.
const maxBodyBytes = 1 << 20

// DecodeJSON parses the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// errorBody is the JSON error envelope: {"error": {"code", "message", "field"}}.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// RespondWithJSON writes payload as JSON with the given status.
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// RespondWithError writes the error envelope with the given status and code.
func RespondWithError(w http.ResponseWriter, status int, code, message, field string) {
	RespondWithJSON(w, status, errorBody{Error: errorDetail{
		Code:    code,
		Message: message,
		Field:   field,
	}})
}

// badRequest writes a 400 with a generic validation code.
func badRequest(w http.ResponseWriter, err error) {
	RespondWithError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "")
}

// internalError logs err and writes an opaque 500. Storage failures are the
// only errors a caller may retry: the underlying write was never applied.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal error", "error", err)
	RespondWithError(w, http.StatusInternalServerError, "STORAGE_ERROR", "internal error", "")
}

// notFound writes a 404 for a missing entity.
func notFound(w http.ResponseWriter, err error) {
	RespondWithError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), "")
}

// forbidden writes a 403.
func forbidden(w http.ResponseWriter, err error) {
	RespondWithError(w, http.StatusForbidden, "FORBIDDEN", err.Error(), "")
}

// is reports whether err matches any of the targets.
func is(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
