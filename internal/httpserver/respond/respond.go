// Package respond writes JSON bodies and the error envelope shared by handlers and middlewares.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/starfav/internal/domain"
)

// ErrorBody is the error envelope: {"error": {...}}.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one failed request.
type ErrorDetail struct {
	Kind       string             `json:"kind"`
	Message    string             `json:"message"`
	Violations []domain.Violation `json:"violations,omitempty"`
	RequestID  string             `json:"request_id,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the error envelope. kind is free-form outside the domain
// taxonomy (ex: "forbidden", "rate_limited", "not_found").
func Error(w http.ResponseWriter, r *http.Request, status int, kind, message string, violations ...domain.Violation) {
	JSON(w, status, ErrorBody{Error: ErrorDetail{
		Kind:       kind,
		Message:    message,
		Violations: violations,
		RequestID:  middleware.GetReqID(r.Context()),
	}})
}

// Status maps a core error to its HTTP status.
func Status(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge
		}
		return http.StatusBadRequest
	case domain.KindStore:
		return http.StatusInternalServerError
	case domain.KindUpstream:
		if ue, ok := asUpstream(err); ok && ue.Timeout() {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// DomainError writes err using the status and message of its kind.
// Validation errors carry every violation. Store and upstream details stay in the logs.
func DomainError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	status := Status(err)

	switch kind {
	case domain.KindValidation:
		ve, _ := asValidation(err)
		Error(w, r, status, kind.String(), err.Error(), ve.Violations...)
	case domain.KindStore:
		Error(w, r, status, kind.String(), "favorites store unavailable")
	case domain.KindUpstream:
		msg := "catalog unavailable"
		if status == http.StatusGatewayTimeout {
			msg = "catalog timed out"
		}
		Error(w, r, status, kind.String(), msg)
	default:
		Error(w, r, status, "internal", http.StatusText(status))
	}
}
