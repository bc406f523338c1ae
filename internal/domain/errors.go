package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// trip does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing destination, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDateParse is returned by the span resolver when the primary trip dates
// cannot be parsed. Callers recover locally with a length-1 fallback span;
// this error never crosses the HTTP boundary.
var ErrDateParse = errors.New("unparseable date")

// ErrTimeout is returned when a generation request exceeds its budget
// (180s for full regeneration, 90s for a single day). The previously
// stored itinerary is left untouched. Handlers map this to HTTP 504.
var ErrTimeout = errors.New("generation timed out")

// ErrWorkerFailed is returned when the generation worker process exits
// non-zero or cannot be started. The worker's stderr is attached to the
// wrapped message. Handlers map this to HTTP 502.
var ErrWorkerFailed = errors.New("generation worker failed")

// ErrMalformedOutput is returned when the worker exits zero but its stdout
// is not a single valid JSON document. Handlers map this to HTTP 502.
var ErrMalformedOutput = errors.New("malformed worker output")

// ErrInvalidPlan is returned when the worker's JSON parses but fails shape
// validation (missing or empty dailyItinerary, non-numeric total, missing
// day fragment). This is a terminal failure of the call, not something the
// caller repairs. Handlers map this to HTTP 502.
var ErrInvalidPlan = errors.New("invalid generated plan")

// ErrGenerationInFlight is returned when a single-day generation request
// arrives while another one is outstanding for the same trip. The second
// request is rejected immediately, never queued. Handlers map this to
// HTTP 409 Conflict.
var ErrGenerationInFlight = errors.New("generation already in progress")

// ErrAuthRequired is surfaced by the auth collaborator and passed through
// unchanged. Handlers map this to HTTP 401.
var ErrAuthRequired = errors.New("authentication required")
