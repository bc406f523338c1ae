package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dkaplan/tripweaver/backend/internal/domain"
)

// regenerateRequest is the body for POST /trips/{id}/regenerate.
// Modifications is accepted for forward compatibility and currently
// ignored; tripData fields override the stored record for this request
// only, without being saved.
type regenerateRequest struct {
	Modifications json.RawMessage         `json:"modifications,omitempty"`
	TripData      domain.ContextOverrides `json:"tripData"`
}

// generateDayRequest is the body for POST /trips/{id}/generate-day/{dayNumber}.
// ExistingDays gives the worker the other days' already-generated content
// so it does not regenerate the whole plan.
type generateDayRequest struct {
	TripData     domain.ContextOverrides `json:"tripData"`
	ExistingDays []domain.DayRecord      `json:"existingDays"`
}

// RegenerateTripPlan handles POST /trips/{id}/regenerate. On success the
// trip's entire itinerary has been replaced by freshly generated content.
// The call blocks for up to the full-generation budget (180s by default).
func (s *Server) RegenerateTripPlan(w http.ResponseWriter, r *http.Request) {
	id, err := tripIDParam(r)
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	var body regenerateRequest
	if r.Body != nil {
		// An empty body means "regenerate from the stored record".
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	updated, err := s.generator.Regenerate(r.Context(), id, body.TripData)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// GenerateDayItinerary handles POST /trips/{id}/generate-day/{dayNumber}.
// On success only the targeted day record and the day ordering changed;
// flights, accommodations, costs, and other days are untouched.
func (s *Server) GenerateDayItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := tripIDParam(r)
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	day, err := strconv.Atoi(chi.URLParam(r, "dayNumber"))
	if err != nil || day < 1 {
		requestError(w, "dayNumber must be a positive integer")
		return
	}

	var body generateDayRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		requestError(w, "request body with tripData is required")
		return
	}

	updated, err := s.generator.GenerateDay(r.Context(), id, day, body.TripData, body.ExistingDays)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// GetGenerationStatus handles GET /trips/{id}/generation-status, exposing
// the last recorded progress stage. Stages between "contacting" and
// "finalizing" are cosmetic and advance on a timer, not on real progress.
func (s *Server) GetGenerationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := tripIDParam(r)
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	stage, ok := s.generator.Status(id)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"active": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"active":  !stage.Terminal(),
		"stage":   stage,
		"message": stage.Message(),
	})
}
