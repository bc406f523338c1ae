// Package handler implements the HTTP handlers for the TripWeaver API.
// All handlers are methods on Server. Methods are split into files by
// concern (health.go, trip.go, generate.go) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dkaplan/tripweaver/backend/internal/domain"
	"github.com/dkaplan/tripweaver/backend/internal/generation"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Days(ctx context.Context, id uuid.UUID) ([]domain.DayRecord, error)
}

// Generator defines the generation operations the handlers depend on.
type Generator interface {
	Regenerate(ctx context.Context, tripID uuid.UUID, overrides domain.ContextOverrides) (domain.Trip, error)
	GenerateDay(ctx context.Context, tripID uuid.UUID, day int, overrides domain.ContextOverrides, existingDays []domain.DayRecord) (domain.Trip, error)
	Status(tripID uuid.UUID) (generation.Stage, bool)
}

// Server holds the dependencies for all API endpoints.
type Server struct {
	trips     TripServicer
	generator Generator
	spec      []byte // embedded OpenAPI document, served at /openapi.yaml
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, generator Generator, spec []byte) *Server {
	return &Server{trips: trips, generator: generator, spec: spec}
}

// Routes registers every endpoint on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Get("/days", s.GetTripDays)
			r.Post("/regenerate", s.RegenerateTripPlan)
			r.Post("/generate-day/{dayNumber}", s.GenerateDayItinerary)
			r.Get("/generation-status", s.GetGenerationStatus)
		})
	})
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// tripIDParam extracts and parses the {id} path parameter.
func tripIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
