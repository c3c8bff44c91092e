package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
)

// ViolationResponse is one entry of the 400 response body.
type ViolationResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ToViolationResponses converts domain violations, keeping their order. The
// result is never nil so it always encodes as a JSON array.
func ToViolationResponses(violations []domain.Violation) []ViolationResponse {
	out := make([]ViolationResponse, len(violations))
	for i, v := range violations {
		out[i] = ViolationResponse(v)
	}
	return out
}

// TodoNotFound returns the error reported when no todo has the given id. Its
// message is the 404 response body.
func TodoNotFound(id int64) error {
	return fmt.Errorf("todo %d %w", id, domain.ErrNotFound)
}

// WriteErrorResponse maps err to a status code and body:
//
//	validation   400  JSON array of {code, message}
//	not found    404  text/plain error message
//	conflict     409  text/plain error message
//	unavailable  503  empty
//	anything     500  empty
//
// Server-side failures are logged; their details never reach the client.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := domainErrorToStatus(err)

	switch status {
	case http.StatusBadRequest:
		var verr *domain.ValidationError
		violations := []domain.Violation{}
		if errors.As(err, &verr) {
			violations = verr.Violations
		}
		WriteJSON(w, r, status, ToViolationResponses(violations))

	case http.StatusNotFound, http.StatusConflict:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(err.Error()))

	default:
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "request failed",
			slog.Int("status", status),
			logging.Err(err),
		)
		w.WriteHeader(status)
	}
}

// WriteJSON writes v as the JSON response body with the given status code.
// Encoding failures are logged with the request's logger.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode response",
			logging.Err(err),
		)
	}
}

// domainErrorToStatus maps domain sentinel errors to HTTP status codes.
func domainErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
