package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dkaplan/tripweaver/backend/internal/domain"
	"github.com/dkaplan/tripweaver/backend/internal/span"
)

// tripRequest is the body for POST /trips and PUT /trips/{id}. Dates are
// strings in any of the recognized formats; the span parser normalizes
// them before they reach the service layer.
type tripRequest struct {
	Name         string                      `json:"name"`
	Destination  string                      `json:"destination"`
	StartDate    string                      `json:"startDate"`
	EndDate      string                      `json:"endDate"`
	Budget       *float64                    `json:"budget"`
	Travelers    int                         `json:"numberOfTravelers"`
	Destinations []domain.DestinationSegment `json:"destinations"`
	Preferences  domain.Preferences          `json:"preferences"`
	Status       domain.TripStatus           `json:"status"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := decodeTrip(w, r)
	if !ok {
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	trips, total, err := s.trips.List(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": trips,
		"pagination": map[string]any{
			"page":  params.Page,
			"limit": params.Limit,
			"total": total,
		},
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := tripIDParam(r)
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := tripIDParam(r)
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	trip, ok := decodeTrip(w, r)
	if !ok {
		return
	}
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := tripIDParam(r)
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetTripDays handles GET /trips/{id}/days: the synthesized, gap-free day
// sequence for the trip's resolved span.
func (s *Server) GetTripDays(w http.ResponseWriter, r *http.Request) {
	id, err := tripIDParam(r)
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	days, err := s.trips.Days(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

// --- mapping helpers --------------------------------------------------------

// decodeTrip parses and converts a trip request body. On failure it writes
// the error response itself and returns ok=false.
func decodeTrip(w http.ResponseWriter, r *http.Request) (domain.Trip, bool) {
	var body tripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		requestError(w, "request body is required")
		return domain.Trip{}, false
	}

	trip := domain.Trip{
		Name:         body.Name,
		Destination:  body.Destination,
		Budget:       body.Budget,
		Travelers:    body.Travelers,
		Destinations: body.Destinations,
		Preferences:  body.Preferences,
		Status:       body.Status,
	}

	var err error
	if trip.StartDate, err = span.ParseDate(body.StartDate); err != nil {
		requestError(w, "startDate is missing or unparseable")
		return domain.Trip{}, false
	}
	if trip.EndDate, err = span.ParseDate(body.EndDate); err != nil {
		requestError(w, "endDate is missing or unparseable")
		return domain.Trip{}, false
	}

	return trip, true
}

// queryInt parses an optional integer query parameter, returning nil when
// absent or malformed.
func queryInt(r *http.Request, key string) *int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
