// Package service contains the business logic for the TripWeaver API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dkaplan/tripweaver/backend/internal/domain"
	"github.com/dkaplan/tripweaver/backend/internal/itinerary"
	"github.com/dkaplan/tripweaver/backend/internal/repo"
	"github.com/dkaplan/tripweaver/backend/internal/span"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip. The itinerary starts as an
// empty scaffold; day records are synthesized on read and populated only
// by generation requests. Unnamed trips get a derived default name.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	if trip.Status == "" {
		trip.Status = domain.StatusPlanning
	}
	if trip.Travelers < 1 {
		trip.Travelers = 1
	}
	if strings.TrimSpace(trip.Name) == "" {
		trip.Name = trip.DefaultName()
	}
	trip.Itinerary = domain.EmptyItinerary()

	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of trips plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and persists changes to an existing trip. The itinerary
// document is not writable through this path — it belongs to the
// generation flow — so the stored one is preserved.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	current, err := s.repo.GetByID(ctx, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	trip.Itinerary = current.Itinerary
	if trip.Status == "" {
		trip.Status = current.Status
	}
	if trip.Travelers < 1 {
		trip.Travelers = current.Travelers
	}

	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Days returns the complete synthesized day sequence for a trip: one
// record per day of the resolved span, with previously generated content
// carried over. Span resolution failures degrade to a length-1 fallback
// span so the day view never renders empty.
func (s *TripService) Days(ctx context.Context, id uuid.UUID) ([]domain.DayRecord, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Days: %w", err)
	}

	sp, err := span.Resolve(
		trip.StartDate.Format(domain.DateOnly),
		trip.EndDate.Format(domain.DateOnly),
		trip.Destinations,
	)
	if err != nil {
		sp = span.Fallback()
	}

	return itinerary.Synthesize(sp, trip.Itinerary.DailyItinerary, trip.Destinations, trip.Preferences.PlacesToVisit), nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Destination must be non-empty (whitespace-only is rejected).
//   - EndDate must not be before StartDate.
//   - Status, when set, must be a known lifecycle state.
//   - Segments carrying both dates must not have start after end.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	if trip.Status != "" && !trip.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, trip.Status)
	}
	for _, seg := range trip.Destinations {
		if strings.TrimSpace(seg.Location) == "" {
			return fmt.Errorf("%w: destination segment location is required", domain.ErrValidation)
		}
		if seg.StartDate == "" || seg.EndDate == "" {
			continue // partially specified segments are tolerated, see internal/span
		}
		segStart, err1 := span.ParseDate(seg.StartDate)
		segEnd, err2 := span.ParseDate(seg.EndDate)
		if err1 != nil || err2 != nil {
			continue // unparseable dates are skipped during resolution, not rejected
		}
		if segEnd.Before(segStart) {
			return fmt.Errorf("%w: segment %q ends before it starts", domain.ErrValidation, seg.Location)
		}
	}
	return nil
}
