package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dkaplan/tripweaver/backend/internal/domain"
)

// ErrorResponse is the JSON envelope for every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code plus a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a domain error to its HTTP status and body. Errors
// outside the taxonomy become an opaque 500 — the detail goes to the log,
// not the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "trip not found"))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", unwrapMessage(err)))
	case errors.Is(err, domain.ErrGenerationInFlight):
		writeJSON(w, http.StatusConflict, errorBody("generation_in_flight", "a generation request for this trip is already in progress"))
	case errors.Is(err, domain.ErrTimeout):
		writeJSON(w, http.StatusGatewayTimeout, errorBody("generation_timeout", "plan generation did not finish in time"))
	case errors.Is(err, domain.ErrWorkerFailed),
		errors.Is(err, domain.ErrMalformedOutput),
		errors.Is(err, domain.ErrInvalidPlan):
		writeJSON(w, http.StatusBadGateway, errorBody("generation_failed", "plan generation failed"))
	case errors.Is(err, domain.ErrAuthRequired):
		writeJSON(w, http.StatusUnauthorized, errorBody("auth_required", "authentication required"))
	default:
		slog.ErrorContext(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}

// requestError rejects a request before it reaches the service layer
// (missing body, malformed UUID, bad day number).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", message))
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: destination is required"
// → "destination is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, "validation error: "); i >= 0 {
		return msg[i+len("validation error: "):]
	}
	return msg
}
